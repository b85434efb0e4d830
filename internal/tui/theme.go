package tui

import (
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// The editor must stay readable on light and dark backgrounds, so colors are
// adaptive and faint styling is only used on dark backgrounds.

func ac(light, dark string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: light, Dark: dark}
}

func faintIfDark(st lipgloss.Style) lipgloss.Style {
	if lipgloss.HasDarkBackground() {
		return st.Faint(true)
	}
	return st
}

var (
	colorMuted      = ac("240", "243")
	colorSelectedBg = ac("#e9e9e9", "#262626")
	colorSelectedFg = ac("235", "255")
	colorSurfaceFg  = ac("235", "252")
	colorControlBg  = ac("252", "235")
	colorInputBg    = ac("254", "234")
	colorAccent     = ac("27", "62")
	colorAccentFg   = ac("255", "235")
	colorFlashBg    = ac("186", "58")
	colorError      = ac("160", "203")
	colorBorder     = ac("250", "243")
)

func styleMuted() lipgloss.Style {
	return faintIfDark(lipgloss.NewStyle().Foreground(colorMuted))
}

func styleSelected() lipgloss.Style {
	return lipgloss.NewStyle().Background(colorSelectedBg).Foreground(colorSelectedFg)
}

func styleFlash() lipgloss.Style {
	return lipgloss.NewStyle().Background(colorFlashBg).Foreground(colorSurfaceFg)
}

// styleParent marks the group a drop would land in.
func styleParent() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
}

// styleDropChild marks the row that would receive the dragged item as a child.
func styleDropChild() lipgloss.Style {
	return lipgloss.NewStyle().Background(colorAccent).Foreground(colorAccentFg)
}

func styleDropLine(allowed bool) lipgloss.Style {
	if !allowed {
		return lipgloss.NewStyle().Foreground(colorError)
	}
	return lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
}

func styleModal() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorBorder).
		Padding(0, 1)
}

func styleModalTitle() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Background(colorControlBg).Foreground(colorSurfaceFg).Padding(0, 1)
}

// applyColorProfilePreference sets Lip Gloss's color profile. Only NO_COLOR is
// honored; termenv.EnvColorProfile would also obey CLICOLOR, which is meant for
// piped output rather than a full-screen program.
func applyColorProfilePreference() {
	if strings.TrimSpace(os.Getenv("NO_COLOR")) != "" {
		lipgloss.SetColorProfile(termenv.Ascii)
		return
	}
	profile := termenv.ColorProfile()
	term := strings.ToLower(strings.TrimSpace(os.Getenv("TERM")))
	colorterm := strings.ToLower(strings.TrimSpace(os.Getenv("COLORTERM")))
	switch {
	case strings.Contains(colorterm, "truecolor") || strings.Contains(colorterm, "24bit"):
		if profile != termenv.Ascii {
			profile = termenv.TrueColor
		}
	case strings.Contains(term, "256color"):
		if profile == termenv.Ascii || profile == termenv.ANSI {
			profile = termenv.ANSI256
		}
	}
	lipgloss.SetColorProfile(profile)
}

// themePreference resolves the background: FILTERTREE_THEME=light|dark|auto,
// then FILTERTREE_DARKBG=true|false, then COLORFGBG. ok is false when nothing
// decided and Lip Gloss should keep its own detection.
func themePreference() (dark, ok bool) {
	switch strings.ToLower(strings.TrimSpace(os.Getenv("FILTERTREE_THEME"))) {
	case "light":
		return false, true
	case "dark":
		return true, true
	}
	if v := strings.TrimSpace(os.Getenv("FILTERTREE_DARKBG")); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b, true
		}
	}
	// COLORFGBG is "fg;bg", sometimes with more segments; bg is last.
	if v := strings.TrimSpace(os.Getenv("COLORFGBG")); v != "" {
		parts := strings.Split(v, ";")
		if bg, err := strconv.Atoi(strings.TrimSpace(parts[len(parts)-1])); err == nil {
			return bg < 7, true
		}
	}
	return false, false
}

func applyThemePreference() {
	if dark, ok := themePreference(); ok {
		lipgloss.SetHasDarkBackground(dark)
	}
}

// markdownStyle picks the glamour style matching the background.
func markdownStyle() string {
	dark, ok := themePreference()
	if !ok {
		dark = lipgloss.HasDarkBackground()
	}
	if dark {
		return "dark"
	}
	return "light"
}
