// Package outline holds the read-only queries and the copy-on-write edit
// primitives over a model.Tree. Nothing here mutates its input.
package outline

import "filtertree/internal/model"

// RootID is the virtual id of the top level.
const RootID = ""

// Find returns the first node with id in depth-first pre-order.
func Find(nodes []model.Node, id string) (model.Node, bool) {
	for _, n := range nodes {
		if n.ID == id {
			return n, true
		}
		if n.HasChildren() {
			if found, ok := Find(n.Children, id); ok {
				return found, true
			}
		}
	}
	return model.Node{}, false
}

// PathToItem returns the ids of targetID's ancestors, top level first.
// The target itself is not included; a top-level target yields an empty path.
func PathToItem(nodes []model.Node, targetID string) ([]string, bool) {
	return pathToItem(nodes, targetID, []string{})
}

func pathToItem(nodes []model.Node, targetID string, parentIDs []string) ([]string, bool) {
	for _, n := range nodes {
		if n.ID == targetID {
			return parentIDs, true
		}
		next := make([]string, len(parentIDs), len(parentIDs)+1)
		copy(next, parentIDs)
		if path, ok := pathToItem(n.Children, targetID, append(next, n.ID)); ok {
			return path, true
		}
	}
	return nil, false
}

// ChildrenOf returns the children of id, or the top level for RootID.
// An unknown id is a contract violation.
func ChildrenOf(nodes []model.Node, id string) ([]model.Node, error) {
	if id == RootID {
		return nodes, nil
	}
	n, ok := Find(nodes, id)
	if !ok {
		return nil, ContractError{Op: "children", ID: id, Reason: "no such item"}
	}
	return n.Children, nil
}

// MoveTargets lists every node that excludeID could be moved next to or into:
// everything except excludeID's own subtree and footer rows. Attributes are
// listed but never descended into. Order is not significant.
func MoveTargets(nodes []model.Node, excludeID string) []model.Node {
	targets := []model.Node{}
	stack := append([]model.Node(nil), nodes...)
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if n.ID == excludeID || n.Type == model.KindFooter {
			continue
		}
		targets = append(targets, n)
		if n.Type == model.KindAttribute {
			continue
		}
		stack = append(stack, n.Children...)
	}
	return targets
}

// ParentID returns the id of id's parent, RootID for top-level nodes.
func ParentID(nodes []model.Node, id string) (string, bool) {
	path, ok := PathToItem(nodes, id)
	if !ok {
		return "", false
	}
	if len(path) == 0 {
		return RootID, true
	}
	return path[len(path)-1], true
}

// Depth is the number of ancestors of id (0 for top-level nodes).
func Depth(nodes []model.Node, id string) (int, bool) {
	path, ok := PathToItem(nodes, id)
	return len(path), ok
}

// IndexOf returns the position of id among its siblings.
func IndexOf(nodes []model.Node, id string) (int, bool) {
	parent, ok := ParentID(nodes, id)
	if !ok {
		return -1, false
	}
	sibs, err := ChildrenOf(nodes, parent)
	if err != nil {
		return -1, false
	}
	for i, n := range sibs {
		if n.ID == id {
			return i, true
		}
	}
	return -1, false
}

// Contains reports whether id is root itself or one of its descendants.
func Contains(root model.Node, id string) bool {
	if root.ID == id {
		return true
	}
	_, ok := Find(root.Children, id)
	return ok
}

// Walk visits nodes in pre-order. Returning false from fn skips the node's children.
func Walk(nodes []model.Node, fn func(n model.Node, depth int) bool) {
	walk(nodes, 0, fn)
}

func walk(nodes []model.Node, depth int, fn func(model.Node, int) bool) {
	for _, n := range nodes {
		if fn(n, depth) {
			walk(n.Children, depth+1, fn)
		}
	}
}

// Count returns the number of nodes in the tree.
func Count(nodes []model.Node) int {
	c := 0
	Walk(nodes, func(model.Node, int) bool {
		c++
		return true
	})
	return c
}

// Equal reports whether a and b hold the same nodes in the same order. Nil and
// empty child lists compare equal, and footer callbacks are ignored.
func Equal(a, b []model.Node) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		x, y := a[i], b[i]
		if x.ID != y.ID || x.Type != y.Type || x.Open != y.Open || x.TreeRole != y.TreeRole {
			return false
		}
		if (x.Attribute == nil) != (y.Attribute == nil) || (x.Attribute != nil && *x.Attribute != *y.Attribute) {
			return false
		}
		if !Equal(x.Children, y.Children) {
			return false
		}
	}
	return true
}
