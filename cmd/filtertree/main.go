package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"filtertree/internal/cli"
)

// isNodeID reports whether s looks like a dotted numeric node id ("1.3.2").
func isNodeID(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	for _, part := range strings.Split(s, ".") {
		if part == "" {
			return false
		}
		for _, r := range part {
			if r < '0' || r > '9' {
				return false
			}
		}
	}
	return true
}

// rewriteDirectFindArgs turns `filtertree <id>` into `filtertree find <id>`.
// Cobra treats the first positional token as a subcommand, so argv is
// rewritten before parsing. Persistent flags may come first.
func rewriteDirectFindArgs(argv []string) []string {
	if len(argv) < 2 {
		return argv
	}

	valueFlags := map[string]bool{
		"--seed":       true,
		"--config":     true,
		"--journal":    true,
		"--format":     true,
		"--log-level":  true,
		"--log-format": true,
		"--log-file":   true,
	}

	insert := func(i int) []string {
		out := make([]string, 0, len(argv)+1)
		out = append(out, argv[:i]...)
		out = append(out, "find")
		return append(out, argv[i:]...)
	}

	for i := 1; i < len(argv); i++ {
		a := strings.TrimSpace(argv[i])
		if a == "" {
			continue
		}
		if a == "--" {
			if i+1 < len(argv) && isNodeID(argv[i+1]) {
				return insert(i + 1)
			}
			return argv
		}
		if strings.HasPrefix(a, "-") {
			if !strings.Contains(a, "=") && valueFlags[a] {
				i++
			}
			continue
		}
		if isNodeID(a) {
			return insert(i)
		}
		return argv
	}
	return argv
}

func main() {
	os.Args = rewriteDirectFindArgs(os.Args)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := cli.NewRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}
