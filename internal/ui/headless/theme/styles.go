package theme

import (
	"github.com/charmbracelet/lipgloss"

	"apc-panel/internal/apc"
)

const (
	ColorGood    = lipgloss.Color("10")
	ColorAverage = lipgloss.Color("214")
	ColorBad     = lipgloss.Color("9")
	ColorMuted   = lipgloss.Color("245")
	ColorDim     = lipgloss.Color("240")
)

var (
	PanelStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	TitleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("69"))
	SectionStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("252")).Underline(true)
	LabelStyle   = lipgloss.NewStyle().Foreground(ColorMuted)
	FocusStyle   = lipgloss.NewStyle().Foreground(ColorGood)
	ErrorStyle   = lipgloss.NewStyle().Foreground(ColorBad).Bold(true)
	HelpStyle    = lipgloss.NewStyle().Foreground(ColorMuted)
	TooltipStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("250")).Italic(true)

	ModalBackdrop = lipgloss.NewStyle().Foreground(ColorDim)

	ButtonStyle         = lipgloss.NewStyle().Padding(0, 1).Foreground(lipgloss.Color("252")).Background(lipgloss.Color("237"))
	ButtonHoverStyle    = ButtonStyle.Background(lipgloss.Color("239"))
	ButtonDisabledStyle = lipgloss.NewStyle().Padding(0, 1).Foreground(ColorDim).Background(lipgloss.Color("235"))
	SegmentOnStyle      = ButtonStyle.Bold(true).Foreground(lipgloss.Color("0")).Background(lipgloss.Color("69"))
	FocusMarkStyle      = lipgloss.NewStyle().Bold(true).Foreground(ColorGood)
)

// Color maps a panel color class to its terminal color. The default class
// has no color of its own.
func Color(c apc.Color) (lipgloss.Color, bool) {
	switch c {
	case apc.ColorGood:
		return ColorGood, true
	case apc.ColorAverage:
		return ColorAverage, true
	case apc.ColorBad:
		return ColorBad, true
	default:
		return "", false
	}
}

// TextStyle styles a panel text span.
func TextStyle(t apc.Text) lipgloss.Style {
	style := lipgloss.NewStyle().Bold(t.Bold || t.Large)
	if color, ok := Color(t.Color); ok {
		style = style.Foreground(color)
	}
	return style
}

var glyphs = map[string]string{
	"times":                "✕",
	"power-off":            "⏻",
	"sync":                 "⟳",
	"lightbulb-o":          "☀",
	"lock":                 "🔒",
	"unlock":               "🔓",
	"terminal":             ">_",
	"repeat":               "↻",
	"exclamation-triangle": "⚠",
}

// Glyph returns the terminal stand-in for a panel icon name.
func Glyph(icon string) string {
	return glyphs[icon]
}
