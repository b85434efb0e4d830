package cli

import (
	"filtertree/internal/format"
	"filtertree/internal/model"
	"filtertree/internal/outline"

	"github.com/spf13/cobra"
)

func newShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the tree",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tree, err := app.loadTree()
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, tree)
		},
	}
}

func newFindCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "find <id>",
		Short: "Print one node and its subtree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tree, err := app.loadTree()
			if err != nil {
				return writeErr(cmd, err)
			}
			n, ok := outline.Find(tree, args[0])
			if !ok {
				return writeErr(cmd, errItemNotFound(args[0]))
			}
			return writeOut(cmd, app, n)
		},
	}
}

func newPathCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "path <id>",
		Short: "Print the ids of a node's ancestors, top level first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tree, err := app.loadTree()
			if err != nil {
				return writeErr(cmd, err)
			}
			path, ok := outline.PathToItem(tree, args[0])
			if !ok {
				return writeErr(cmd, errItemNotFound(args[0]))
			}
			return writeOut(cmd, app, path)
		},
	}
}

func newChildrenCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "children [id]",
		Short: "Print the children of a node (the top level when no id is given)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tree, err := app.loadTree()
			if err != nil {
				return writeErr(cmd, err)
			}
			id := outline.RootID
			if len(args) == 1 {
				id = args[0]
			}
			kids, err := outline.ChildrenOf(tree, id)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeNodes(cmd, app, kids)
		},
	}
}

func newTargetsCmd(app *App) *cobra.Command {
	var groups bool

	cmd := &cobra.Command{
		Use:   "targets <id>",
		Short: "List the nodes an item can be moved next to or into",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tree, err := app.loadTree()
			if err != nil {
				return writeErr(cmd, err)
			}
			if _, ok := outline.Find(tree, args[0]); !ok {
				return writeErr(cmd, errItemNotFound(args[0]))
			}
			targets := outline.MoveTargets(tree, args[0])
			if groups {
				kept := targets[:0]
				for _, t := range targets {
					if t.AcceptsChildren() {
						kept = append(kept, t)
					}
				}
				targets = kept
			}
			return writeNodes(cmd, app, targets)
		},
	}

	cmd.Flags().BoolVar(&groups, "groups", false, "Only list nodes that can take children")

	return cmd
}

func newValidateCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check the seed tree's structure",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tree, err := app.loadTree()
			if err != nil {
				return writeErr(cmd, err)
			}
			if app.Format == "text" {
				return writeOut(cmd, app, "ok")
			}
			return writeOut(cmd, app, map[string]any{"valid": true, "nodes": outline.Count(tree)})
		},
	}
}

// writeNodes prints a flat node list. Text output is one line per node
// without subtrees.
func writeNodes(cmd *cobra.Command, app *App, nodes []model.Node) error {
	if app.Format != "text" {
		return writeOut(cmd, app, nodes)
	}
	lines := make([]string, 0, len(nodes))
	for _, n := range nodes {
		lines = append(lines, n.ID+"\t"+format.NodeLine(n))
	}
	return writeOut(cmd, app, lines)
}
