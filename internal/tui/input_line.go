package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
)

// inputField is a field label over its single-line input.
func (m appModel) inputField(label string, f editFocus, in textinput.Model, bodyW int) string {
	return m.editLabel(label, f) + "\n" + inputLine(bodyW, in.View())
}

// inputLine renders a text input on one line of exactly bodyW cells.
func inputLine(bodyW int, view string) string {
	bodyW = max(bodyW, 10)
	view = strings.NewReplacer("\r", " ", "\n", " ").Replace(view)

	line := lipgloss.PlaceHorizontal(
		bodyW,
		lipgloss.Left,
		" "+view+" ",
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceBackground(colorInputBg),
	)
	if xansi.StringWidth(line) > bodyW {
		// Reset styling so the cursor colour does not bleed past the modal.
		line = xansi.Cut(line, 0, bodyW) + "\x1b[0m"
	}
	return line
}
