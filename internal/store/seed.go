package store

import "filtertree/internal/model"

// DefaultSeed is the tree the editor starts with when no seed file is given.
func DefaultSeed() model.Tree {
	attr := func(id, name, value string) model.Node {
		return model.NewAttribute(id, model.Attribute{Name: name, Value: value, Operator: "="})
	}

	chain := model.NewGroup("1.3.1",
		model.NewGroup("1.3.9",
			model.NewGroup("1.3.32",
				attr("1.3.211", "attribute 1", "value 1"),
			),
		),
	)

	group := model.NewGroup("1.3", chain, attr("1.3.2", "attribute 2", "value 2"))
	group.Open = true

	root := model.NewGroup("1", group, attr("1.4", "attribute 3", "value 3"))
	root.Open = true
	root.TreeRole = model.TreeRoleRoot

	return model.Tree{root}
}
