package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme selects the terminal palette.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// ParseTheme accepts "light" or "dark" in any case.
func ParseTheme(s string) (Theme, bool) {
	switch Theme(strings.ToLower(strings.TrimSpace(s))) {
	case ThemeLight:
		return ThemeLight, true
	case ThemeDark:
		return ThemeDark, true
	}
	return "", false
}

// Toggle returns the other theme.
func (t Theme) Toggle() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

type palette struct {
	brand   lipgloss.Color
	text    lipgloss.Color
	muted   lipgloss.Color
	border  lipgloss.Color
	success lipgloss.Color
	danger  lipgloss.Color
	warning lipgloss.Color
	info    lipgloss.Color
}

// Catppuccin Latte for light terminals, Mocha for dark ones.
var palettes = map[Theme]palette{
	ThemeLight: {
		brand:   "#1e66f5",
		text:    "#4c4f69",
		muted:   "#8c8fa1",
		border:  "#bcc0cc",
		success: "#40a02b",
		danger:  "#d20f39",
		warning: "#df8e1d",
		info:    "#7287fd",
	},
	ThemeDark: {
		brand:   "#89b4fa",
		text:    "#cdd6f4",
		muted:   "#7f849c",
		border:  "#45475a",
		success: "#a6e3a1",
		danger:  "#f38ba8",
		warning: "#f9e2af",
		info:    "#b4befe",
	},
}

type styles struct {
	title   lipgloss.Style
	label   lipgloss.Style
	muted   lipgloss.Style
	header  lipgloss.Style
	cell    lipgloss.Style
	border  lipgloss.Style
	success lipgloss.Style
	danger  lipgloss.Style
	warning lipgloss.Style

	badgePaid    lipgloss.Style
	badgeOverdue lipgloss.Style
	badgePending lipgloss.Style
}

func newStyles(r *lipgloss.Renderer, t Theme) styles {
	p, ok := palettes[t]
	if !ok {
		p = palettes[ThemeLight]
	}
	badge := r.NewStyle().Bold(true).Padding(0, 1)
	return styles{
		title:   r.NewStyle().Foreground(p.brand).Bold(true),
		label:   r.NewStyle().Foreground(p.muted),
		muted:   r.NewStyle().Foreground(p.muted),
		header:  r.NewStyle().Foreground(p.muted).Bold(true).Padding(0, 1),
		cell:    r.NewStyle().Foreground(p.text).Padding(0, 1),
		border:  r.NewStyle().Foreground(p.border),
		success: r.NewStyle().Foreground(p.success),
		danger:  r.NewStyle().Foreground(p.danger),
		warning: r.NewStyle().Foreground(p.warning),

		badgePaid:    badge.Foreground(p.success),
		badgeOverdue: badge.Foreground(p.danger),
		badgePending: badge.Foreground(p.warning),
	}
}
