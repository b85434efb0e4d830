package model

type Kind string

const (
	KindGroup     Kind = "group"
	KindAttribute Kind = "attribute"
	KindFooter    Kind = "footer"
)

type TreeRole string

const TreeRoleRoot TreeRole = "root"

// Attribute is the payload of an attribute leaf: `name operator value`.
type Attribute struct {
	Name     string `json:"name" yaml:"name"`
	Value    string `json:"value" yaml:"value"`
	Operator string `json:"operator" yaml:"operator"`
}

// AttributePatch is a partial Attribute. Nil fields are left untouched.
type AttributePatch struct {
	Name     *string `json:"name,omitempty"`
	Value    *string `json:"value,omitempty"`
	Operator *string `json:"operator,omitempty"`
}

// Apply returns a copy of a with the non-nil patch fields applied.
func (p AttributePatch) Apply(a Attribute) Attribute {
	if p.Name != nil {
		a.Name = *p.Name
	}
	if p.Value != nil {
		a.Value = *p.Value
	}
	if p.Operator != nil {
		a.Operator = *p.Operator
	}
	return a
}

func (p AttributePatch) Empty() bool {
	return p.Name == nil && p.Value == nil && p.Operator == nil
}

// FooterActions are the UI callbacks carried by footer rows. They are never
// serialized and never take part in structural edits.
type FooterActions struct {
	OnClick func(add Kind)
	OnFocus func()
}

type Node struct {
	ID       string   `json:"id" yaml:"id"`
	Type     Kind     `json:"type" yaml:"type"`
	Children []Node   `json:"children" yaml:"children,omitempty"`
	Open     bool     `json:"open,omitempty" yaml:"open,omitempty"`
	TreeRole TreeRole `json:"treeRole,omitempty" yaml:"treeRole,omitempty"`

	Attribute *Attribute     `json:"attribute,omitempty" yaml:"attribute,omitempty"`
	Footer    *FooterActions `json:"-" yaml:"-"`
}

// Tree is the ordered sequence of top-level nodes.
type Tree []Node

func (n Node) HasChildren() bool { return len(n.Children) > 0 }

// IsDraggable reports whether n may be picked up as a drag source.
func (n Node) IsDraggable() bool {
	switch n.Type {
	case KindGroup, KindAttribute:
		return true
	default:
		return false
	}
}

// AcceptsChildren reports whether n may receive children (make-child, insert-as-child).
func (n Node) AcceptsChildren() bool { return n.Type == KindGroup }

func (n Node) IsRoot() bool { return n.TreeRole == TreeRoleRoot }

// Label is the short human name used in announcements and previews.
func (n Node) Label() string { return "Item " + n.ID }

func NewGroup(id string, children ...Node) Node {
	if children == nil {
		children = []Node{}
	}
	return Node{ID: id, Type: KindGroup, Children: children}
}

func NewAttribute(id string, attr Attribute) Node {
	a := attr
	return Node{ID: id, Type: KindAttribute, Children: []Node{}, Attribute: &a}
}

// DefaultAttribute is the payload given to attributes created without one.
func DefaultAttribute() Attribute {
	return Attribute{Name: "New Attribute", Value: "", Operator: "="}
}

// DefaultOperators is the operator set offered by the editor.
var DefaultOperators = []string{"=", ">", "<", ">=", "<=", "!="}
