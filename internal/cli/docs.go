package cli

import (
	"fmt"

	"filtertree/internal/docs"

	"github.com/spf13/cobra"
)

func newDocsCmd(app *App) *cobra.Command {
	var (
		raw   bool
		width int
		style string
	)

	cmd := &cobra.Command{
		Use:   "docs [topic]",
		Short: "Show help topics",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				topics := docs.Topics()
				if app.Format == "text" {
					lines := make([]string, 0, len(topics))
					for _, t := range topics {
						lines = append(lines, t.Name+"\t"+t.Title)
					}
					return writeOut(cmd, app, lines)
				}
				return writeOut(cmd, app, map[string]any{"topics": topics})
			}

			topic := args[0]
			body, ok := docs.Get(topic)
			if !ok {
				return writeErr(cmd, fmt.Errorf("unknown docs topic: %q (run `filtertree docs` to list topics)", topic))
			}
			if raw {
				_, err := fmt.Fprint(cmd.OutOrStdout(), body)
				return err
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), docs.Render(body, width, style))
			return err
		},
	}

	cmd.Flags().BoolVar(&raw, "raw", false, "Print raw markdown")
	cmd.Flags().IntVar(&width, "width", 80, "Wrap width for rendered output")
	cmd.Flags().StringVar(&style, "style", envOr("FILTERTREE_DOCS_STYLE", "dark"), "Rendering style (dark|light|notty)")

	return cmd
}
