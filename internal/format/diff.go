package format

import (
	"filtertree/internal/model"

	"github.com/pmezard/go-difflib/difflib"
)

// Diff returns a unified diff of the outline text of before and after, or ""
// when they render the same.
func Diff(before, after model.Tree, g Glyphs) (string, error) {
	a, b := Outline(before, g), Outline(after, g)
	if a == b {
		return "", nil
	}
	return difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(a),
		B:        difflib.SplitLines(b),
		FromFile: "before",
		ToFile:   "after",
		Context:  2,
	})
}
