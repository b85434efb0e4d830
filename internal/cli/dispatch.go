package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"filtertree/internal/format"
	"filtertree/internal/model"
	"filtertree/internal/mutate"
	"filtertree/internal/outline"

	"github.com/spf13/cobra"
)

func newDispatchCmd(app *App) *cobra.Command {
	var (
		diff     bool
		announce bool
	)

	cmd := &cobra.Command{
		Use:   "dispatch [action-json...]",
		Short: "Apply actions to the seed tree and print the result",
		Long: strings.TrimSpace(`
Apply actions in order and print the resulting tree. Actions are JSON objects
given as arguments, or one per line on stdin when there are none. See
"filtertree docs actions" for the format.

The first action that violates a contract stops the run with a non-zero exit.
`),
		Example: strings.TrimSpace(`
  filtertree dispatch '{"type":"add-group","targetId":"1.3"}'
  filtertree dispatch --diff < actions.jsonl
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			tree, err := app.loadTree()
			if err != nil {
				return writeErr(cmd, err)
			}
			raw := args
			if len(raw) == 0 {
				raw, err = readLines(cmd.InOrStdin())
				if err != nil {
					return writeErr(cmd, fmt.Errorf("read actions: %w", err))
				}
			}

			holder := app.newHolder(tree)
			closeJournal, err := app.attachJournal(cmd, holder)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer closeJournal()

			var announcements []string
			for i, line := range raw {
				action, err := model.DecodeAction([]byte(line))
				if err != nil {
					return writeErr(cmd, fmt.Errorf("action %d: %w", i+1, err))
				}
				before := holder.Tree()
				if err := holder.Dispatch(action); err != nil {
					return writeErr(cmd, fmt.Errorf("action %d (%s): %w", i+1, action.Type(), err))
				}
				// Only announce edits that changed something.
				if outline.Equal(before, holder.Tree()) {
					continue
				}
				if text := mutate.Announce(action, holder.Tree()); text != "" {
					announcements = append(announcements, text)
				}
			}
			after := holder.Tree()

			if diff {
				d, err := format.Diff(tree, after, format.GlyphSet(app.cfg.Glyphs))
				if err != nil {
					return writeErr(cmd, err)
				}
				_, err = io.WriteString(cmd.OutOrStdout(), d)
				return err
			}
			if !announce {
				return writeOut(cmd, app, after)
			}
			if app.Format == "text" {
				if err := writeOut(cmd, app, after); err != nil {
					return err
				}
				return writeOut(cmd, app, announcements)
			}
			if announcements == nil {
				announcements = []string{}
			}
			return writeOut(cmd, app, map[string]any{"tree": after, "announcements": announcements})
		},
	}

	cmd.Flags().BoolVar(&diff, "diff", false, "Print a unified diff of the outline instead of the tree")
	cmd.Flags().BoolVar(&announce, "announce", false, "Include the announcement for each structural action")

	return cmd
}

// readLines returns the non-blank lines of r.
func readLines(r io.Reader) ([]string, error) {
	var out []string
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		out = append(out, line)
	}
	return out, sc.Err()
}
