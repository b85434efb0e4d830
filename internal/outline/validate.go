package outline

import (
	"fmt"
	"strings"

	"filtertree/internal/model"
)

// ValidationError lists every structural problem found in a tree.
type ValidationError struct {
	Problems []string
}

func (e ValidationError) Error() string {
	return "invalid tree: " + strings.Join(e.Problems, "; ")
}

// Validate checks the structural invariants: unique non-empty ids, attributes
// without children, and at most one top-level root.
func Validate(nodes []model.Node) error {
	var problems []string
	seen := map[string]bool{}
	roots := 0
	for _, n := range nodes {
		if n.IsRoot() {
			roots++
		}
	}
	if roots > 1 {
		problems = append(problems, fmt.Sprintf("%d top-level nodes marked root", roots))
	}

	Walk(nodes, func(n model.Node, depth int) bool {
		switch {
		case strings.TrimSpace(n.ID) == "":
			problems = append(problems, "node with empty id")
		case seen[n.ID]:
			problems = append(problems, fmt.Sprintf("duplicate id %q", n.ID))
		}
		seen[n.ID] = true

		switch n.Type {
		case model.KindGroup:
		case model.KindAttribute:
			if n.HasChildren() {
				problems = append(problems, fmt.Sprintf("attribute %q has children", n.ID))
			}
			if n.Attribute == nil {
				problems = append(problems, fmt.Sprintf("attribute %q has no payload", n.ID))
			}
		case model.KindFooter:
			if n.HasChildren() {
				problems = append(problems, fmt.Sprintf("footer %q has children", n.ID))
			}
		default:
			problems = append(problems, fmt.Sprintf("node %q has unknown type %q", n.ID, n.Type))
		}
		if n.IsRoot() && depth > 0 {
			problems = append(problems, fmt.Sprintf("nested node %q marked root", n.ID))
		}
		return true
	})

	if len(problems) > 0 {
		return ValidationError{Problems: problems}
	}
	return nil
}
