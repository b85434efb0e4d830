package cli

import (
	"fmt"
	"time"

	"filtertree/internal/model"
	"filtertree/internal/mutate"
	"filtertree/internal/store"

	"github.com/spf13/cobra"
)

// journalPath resolves --journal: "" disables it, "default" is the file in
// the config dir.
func (app *App) journalPath() (string, error) {
	if app.JournalPath == "default" {
		return store.DefaultJournalPath()
	}
	return app.JournalPath, nil
}

// attachJournal records every committed action of holder when a journal is
// configured. The returned func detaches and closes it.
func (app *App) attachJournal(cmd *cobra.Command, holder *mutate.Holder) (func(), error) {
	path, err := app.journalPath()
	if err != nil {
		return nil, err
	}
	if path == "" {
		return func() {}, nil
	}
	ctx := cmd.Context()
	j, err := store.OpenJournal(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("open journal: %w", err)
	}
	app.log.Debug("journal attached", "path", path, "session", j.SessionID())

	unregister := holder.OnCommit(func(action model.Action, _, after model.Tree) {
		if err := j.Append(ctx, action, after); err != nil {
			app.log.Error("journal append", "type", action.Type(), "err", err)
		}
	})
	return func() {
		unregister()
		if err := j.Close(); err != nil {
			app.log.Warn("journal close", "err", err)
		}
	}, nil
}

func newJournalCmd(app *App) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "journal",
		Short: "List recently recorded actions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := app.journalPath()
			if err != nil {
				return writeErr(cmd, err)
			}
			if path == "" {
				if path, err = store.DefaultJournalPath(); err != nil {
					return writeErr(cmd, err)
				}
			}
			j, err := store.OpenJournal(cmd.Context(), path)
			if err != nil {
				return writeErr(cmd, fmt.Errorf("open journal: %w", err))
			}
			defer j.Close()

			entries, err := j.Recent(cmd.Context(), limit)
			if err != nil {
				return writeErr(cmd, err)
			}
			if app.Format == "text" {
				lines := make([]string, 0, len(entries))
				for _, e := range entries {
					lines = append(lines, fmt.Sprintf("%d\t%s\t%s\t%s\t%d nodes",
						e.Seq, e.At.Local().Format(time.DateTime), e.Type, e.SubjectID, e.NodeCount))
				}
				return writeOut(cmd, app, lines)
			}
			if entries == nil {
				entries = []store.JournalEntry{}
			}
			return writeOut(cmd, app, entries)
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Number of entries to show")

	return cmd
}
