package outline

import "filtertree/internal/model"

// splice rebuilds nodes, replacing every node fn accepts with the nodes fn
// returns and recursing into the children of the others. Slices that end up
// unchanged are returned as-is so untouched subtrees stay shared.
func splice(nodes []model.Node, fn func(model.Node) ([]model.Node, bool)) ([]model.Node, bool) {
	var out []model.Node
	changed := false
	begin := func(i int) {
		if !changed {
			out = make([]model.Node, 0, len(nodes)+1)
			out = append(out, nodes[:i]...)
			changed = true
		}
	}
	for i, n := range nodes {
		if repl, ok := fn(n); ok {
			begin(i)
			out = append(out, repl...)
			continue
		}
		if n.HasChildren() {
			if kids, ok := splice(n.Children, fn); ok {
				begin(i)
				n.Children = kids
				out = append(out, n)
				continue
			}
		}
		if changed {
			out = append(out, n)
		}
	}
	if !changed {
		return nodes, false
	}
	return out, true
}

// Remove drops every node with id, at any depth.
func Remove(nodes []model.Node, id string) []model.Node {
	out, _ := splice(nodes, func(n model.Node) ([]model.Node, bool) {
		return nil, n.ID == id
	})
	return out
}

// InsertBefore places node immediately before targetID. No-op if targetID is absent.
func InsertBefore(nodes []model.Node, targetID string, node model.Node) []model.Node {
	out, _ := splice(nodes, func(n model.Node) ([]model.Node, bool) {
		if n.ID != targetID {
			return nil, false
		}
		return []model.Node{node, n}, true
	})
	return out
}

// InsertAfter places node immediately after targetID. No-op if targetID is absent.
func InsertAfter(nodes []model.Node, targetID string, node model.Node) []model.Node {
	out, _ := splice(nodes, func(n model.Node) ([]model.Node, bool) {
		if n.ID != targetID {
			return nil, false
		}
		return []model.Node{n, node}, true
	})
	return out
}

// InsertChild makes node the first child of targetID and opens targetID so the
// new child is visible. No-op if targetID is absent.
func InsertChild(nodes []model.Node, targetID string, node model.Node) []model.Node {
	out, _ := splice(nodes, func(n model.Node) ([]model.Node, bool) {
		if n.ID != targetID {
			return nil, false
		}
		kids := make([]model.Node, 0, len(n.Children)+1)
		kids = append(kids, node)
		kids = append(kids, n.Children...)
		n.Children = kids
		n.Open = true
		return []model.Node{n}, true
	})
	return out
}

// Update replaces the node with id by fn(node). No-op if id is absent.
func Update(nodes []model.Node, id string, fn func(model.Node) model.Node) []model.Node {
	out, _ := splice(nodes, func(n model.Node) ([]model.Node, bool) {
		if n.ID != id {
			return nil, false
		}
		return []model.Node{fn(n)}, true
	})
	return out
}

// UpdateAttribute applies patch to the attribute leaf id.
// It is a contract violation to call it on anything but an attribute.
func UpdateAttribute(nodes []model.Node, id string, patch model.AttributePatch) ([]model.Node, error) {
	n, ok := Find(nodes, id)
	if !ok {
		return nodes, nil
	}
	if n.Type != model.KindAttribute {
		return nodes, ContractError{Op: "update attribute", ID: id, Reason: "not an attribute (" + string(n.Type) + ")"}
	}
	return Update(nodes, id, func(n model.Node) model.Node {
		cur := model.Attribute{}
		if n.Attribute != nil {
			cur = *n.Attribute
		}
		next := patch.Apply(cur)
		n.Attribute = &next
		return n
	}), nil
}
