package tui

type modalKind int

const (
	modalNone modalKind = iota
	modalMovePickParent
	modalMovePickPosition
	modalEditAttribute
	modalHelp
)

type flashDoneMsg struct{ seq int }

// expandDueMsg is posted by the auto-expand timer.
type expandDueMsg struct{ itemID string }

type minibufferClearMsg struct{ seq int }

// rowKind distinguishes tree rows from the footer rows drawn under open groups.
type rowKind int

const (
	rowNode rowKind = iota
	rowFooter
)

const (
	// nodeRowHeight is three lines: reorder-above band, content, reorder-below band.
	nodeRowHeight   = 3
	footerRowHeight = 1

	headerLines = 1
	footerLines = 2
)
