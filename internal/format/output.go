package format

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"filtertree/internal/model"
)

// Write writes output in the requested format.
//
// Supported formats:
// - json (default)
// - edn
// - text (trees, nodes and string lists only)
func Write(w io.Writer, v any, format string, pretty bool) error {
	switch format {
	case "", "json":
		return WriteJSON(w, v, pretty)
	case "edn":
		return WriteEDN(w, v, pretty)
	case "text":
		return WriteText(w, v, Unicode)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// WriteJSON writes strict JSON output for CLI commands.
func WriteJSON(w io.Writer, v any, pretty bool) error {
	var b []byte
	var err error
	if pretty {
		b, err = json.MarshalIndent(v, "", "  ")
	} else {
		b, err = json.Marshal(v)
	}
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, string(b))
	return err
}

// WriteText writes a human-readable rendering of v.
func WriteText(w io.Writer, v any, g Glyphs) error {
	var s string
	switch t := v.(type) {
	case model.Tree:
		s = Outline(t, g)
	case []model.Node:
		s = Outline(t, g)
	case model.Node:
		s = Outline([]model.Node{t}, g)
	case []string:
		s = strings.Join(t, "\n")
	case string:
		s = t
	default:
		return fmt.Errorf("text format not supported for %T", v)
	}
	if s != "" && !strings.HasSuffix(s, "\n") {
		s += "\n"
	}
	_, err := io.WriteString(w, s)
	return err
}
