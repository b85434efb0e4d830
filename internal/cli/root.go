package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"filtertree/internal/format"
	"filtertree/internal/model"
	"filtertree/internal/mutate"
	"filtertree/internal/store"
	"filtertree/internal/tui"

	"github.com/spf13/cobra"
)

type App struct {
	SeedPath    string
	ConfigPath  string
	JournalPath string
	PrettyJSON  bool
	Format      string

	LogLevel  string
	LogFormat string
	LogFile   string

	cfg store.Config
	log *slog.Logger
	// closeLog releases the log file opened for this invocation, if any.
	closeLog func() error
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "filtertree",
		Short:        "Interactive editor for nested attribute filters",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start the interactive editor on the built-in seed
  filtertree

  # Edit a tree loaded from a file
  filtertree --seed filters.hcl

  # Apply actions from a script and show what changed
  echo '{"type":"toggle","itemId":"1.3"}' | filtertree dispatch --diff
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return runTUI(cmd, app)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return app.setup(cmd)
	}
	cmd.PersistentPostRunE = func(cmd *cobra.Command, args []string) error {
		if app.closeLog != nil {
			return app.closeLog()
		}
		return nil
	}

	cmd.PersistentFlags().StringVar(&app.SeedPath, "seed", envOr("FILTERTREE_SEED", ""), "Seed tree file (.json, .yaml, .hcl); default is the built-in seed")
	cmd.PersistentFlags().StringVar(&app.ConfigPath, "config", envOr("FILTERTREE_CONFIG", ""), "Config file (default: <user config dir>/filtertree/config.yaml)")
	cmd.PersistentFlags().StringVar(&app.JournalPath, "journal", envOr("FILTERTREE_JOURNAL", ""), "Record dispatched actions in this SQLite file ('default' for the config dir)")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON/EDN output")
	cmd.PersistentFlags().StringVar(&app.Format, "format", envOr("FILTERTREE_FORMAT", "json"), "Output format (json|edn|text)")
	cmd.PersistentFlags().StringVar(&app.LogLevel, "log-level", envOr("FILTERTREE_LOG_LEVEL", ""), "Log level (debug|info|warn|error)")
	cmd.PersistentFlags().StringVar(&app.LogFormat, "log-format", envOr("FILTERTREE_LOG_FORMAT", ""), "Log format (text|json)")
	cmd.PersistentFlags().StringVar(&app.LogFile, "log-file", envOr("FILTERTREE_LOG_FILE", ""), "Write logs to this file (the editor discards logs otherwise)")

	cmd.AddCommand(newShowCmd(app))
	cmd.AddCommand(newFindCmd(app))
	cmd.AddCommand(newPathCmd(app))
	cmd.AddCommand(newChildrenCmd(app))
	cmd.AddCommand(newTargetsCmd(app))
	cmd.AddCommand(newValidateCmd(app))
	cmd.AddCommand(newDispatchCmd(app))
	cmd.AddCommand(newJournalCmd(app))
	cmd.AddCommand(newDocsCmd(app))
	cmd.AddCommand(newConfigCmd(app))

	return cmd
}

// setup resolves the config file and fills every setting the flags and the
// environment left empty.
func (app *App) setup(cmd *cobra.Command) error {
	path := app.ConfigPath
	if path == "" {
		p, err := store.ConfigPath()
		if err != nil {
			return err
		}
		path = p
	}
	cfg, err := store.LoadConfig(path)
	if err != nil {
		return writeErr(cmd, err)
	}
	app.ConfigPath = path
	app.cfg = cfg

	app.SeedPath = firstNonEmpty(app.SeedPath, cfg.Seed)
	app.JournalPath = firstNonEmpty(app.JournalPath, cfg.Journal)
	app.LogLevel = firstNonEmpty(app.LogLevel, cfg.LogLevel)
	app.LogFormat = firstNonEmpty(app.LogFormat, cfg.LogFormat)
	app.LogFile = firstNonEmpty(app.LogFile, cfg.LogFile)

	switch app.Format {
	case "json", "edn", "text":
	default:
		return writeErr(cmd, fmt.Errorf("unknown format: %s (want json|edn|text)", app.Format))
	}

	// Subcommands log to stderr; the editor owns the terminal, so it only
	// logs when a file is given.
	var out io.Writer = cmd.ErrOrStderr()
	if cmd == cmd.Root() {
		out = io.Discard
	}
	if app.LogFile != "" {
		f, err := os.OpenFile(app.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return writeErr(cmd, fmt.Errorf("open log file: %w", err))
		}
		out = f
		app.closeLog = f.Close
	}
	app.log = newLogger(app.LogLevel, app.LogFormat, out)
	return nil
}

func (app *App) loadTree() (model.Tree, error) {
	tree, err := store.LoadSeed(app.SeedPath)
	if err != nil {
		return nil, err
	}
	app.log.Debug("seed loaded", "path", app.SeedPath, "nodes", len(tree))
	return tree, nil
}

func (app *App) newHolder(tree model.Tree) *mutate.Holder {
	return mutate.NewHolder(tree, mutate.Reducer{Log: app.log})
}

func runTUI(cmd *cobra.Command, app *App) error {
	tree, err := app.loadTree()
	if err != nil {
		return writeErr(cmd, err)
	}
	holder := app.newHolder(tree)
	closeJournal, err := app.attachJournal(cmd, holder)
	if err != nil {
		return writeErr(cmd, err)
	}
	defer closeJournal()

	return tui.Run(cmd.Context(), tui.Options{
		Tree:   tree,
		Config: app.cfg,
		Log:    app.log,
		Holder: holder,
	})
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

// writeOut writes v in the selected format. JSON and EDN wrap it in a
// {"data": ...} envelope; text renders it directly.
func writeOut(cmd *cobra.Command, app *App, v any) error {
	if app.Format == "text" {
		return format.WriteText(cmd.OutOrStdout(), v, format.GlyphSet(app.cfg.Glyphs))
	}
	return format.Write(cmd.OutOrStdout(), map[string]any{"data": v}, app.Format, app.PrettyJSON)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}
