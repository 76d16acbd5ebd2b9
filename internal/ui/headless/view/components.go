package view

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	zone "github.com/lrstanley/bubblezone"

	"apc-panel/internal/apc"
	"apc-panel/internal/ui/headless/theme"
)

const (
	minComponentWidth = 1
	scrollbarMinThumb = 0
)

func RenderStatus(status string, kind int) string {
	switch kind {
	case StatusConnected:
		return lipgloss.NewStyle().Foreground(theme.ColorGood).Render(status)
	case StatusConnecting:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Render(status)
	case StatusError:
		return lipgloss.NewStyle().Foreground(theme.ColorBad).Render(status)
	default:
		return lipgloss.NewStyle().Foreground(theme.ColorMuted).Render(status)
	}
}

// RenderButton draws a panel button. Focus is shown as brackets so the
// button keeps its width whether or not it has focus.
func RenderButton(button apc.Button, focused bool, hovered bool) string {
	label := button.Label
	if glyph := theme.Glyph(button.Icon); glyph != "" {
		label = glyph + " " + label
	}

	var body string
	switch {
	case button.Disabled:
		body = theme.ButtonDisabledStyle.Render(label)
	case button.Selected:
		style := theme.SegmentOnStyle
		if color, ok := theme.Color(button.Color); ok {
			style = style.Background(color)
		}
		body = style.Render(label)
	default:
		style := theme.ButtonStyle
		if hovered {
			style = theme.ButtonHoverStyle
		}
		if color, ok := theme.Color(button.Color); ok {
			style = style.Foreground(color)
		}
		body = style.Render(label)
	}

	left, right := " ", " "
	if focused {
		left, right = theme.FocusMarkStyle.Render("["), theme.FocusMarkStyle.Render("]")
	}
	return zone.Mark(button.ID, left+body+right)
}

// RenderChromeButton draws one of the host controls (logs, debug, quit).
func RenderChromeButton(id string, label string, focused bool, hovered bool) string {
	return RenderButton(apc.Button{ID: id, Label: label}, focused, hovered)
}

func RenderActionsRow(segments []string, maxWidth int) string {
	if maxWidth <= 0 {
		maxWidth = minComponentWidth
	}
	lines := make([]string, 0, len(segments))
	rowParts := make([]string, 0, len(segments))
	for _, seg := range segments {
		if len(rowParts) == 0 {
			rowParts = append(rowParts, seg)
			continue
		}
		candidate := strings.Join(append(append([]string(nil), rowParts...), seg), "")
		if lipgloss.Width(candidate) <= maxWidth {
			rowParts = append(rowParts, seg)
			continue
		}
		lines = append(lines, strings.Join(rowParts, ""))
		rowParts = []string{seg}
	}
	if len(rowParts) > 0 {
		lines = append(lines, strings.Join(rowParts, ""))
	}
	return strings.Join(lines, "\n")
}

// RenderCellBar draws a charge bar. The bar is clamped to [0, 1]; the
// percentage shows the raw value.
func RenderCellBar(bar progress.Model, p apc.Progress) string {
	fill := math.Min(math.Max(p.Value, 0), 1)
	percent := fmt.Sprintf("%d%%", int(math.Round(p.Value*100)))
	style := lipgloss.NewStyle()
	if color, ok := theme.Color(p.Color); ok {
		style = style.Foreground(color)
	}
	return bar.ViewAs(fill) + " " + style.Render(percent)
}

func WithScrollBar(content string, width int, height int, percent float64) string {
	if height <= 0 {
		return content
	}
	width = max(width, minComponentWidth)
	lines := strings.Split(content, "\n")
	for len(lines) < height {
		lines = append(lines, "")
	}
	if len(lines) > height {
		lines = lines[:height]
	}

	thumb := max(int(percent*float64(height-1)), scrollbarMinThumb)
	if thumb >= height {
		thumb = height - 1
	}
	barInactive := lipgloss.NewStyle().Foreground(lipgloss.Color("238")).Render("┊")
	barActive := lipgloss.NewStyle().Foreground(lipgloss.Color("250")).Render("▯")

	out := make([]string, 0, height)
	for i := range height {
		bar := barInactive
		if i == thumb {
			bar = barActive
		}
		text := ansi.Cut(lines[i], 0, width)
		if pad := width - ansi.StringWidth(text); pad > 0 {
			text += strings.Repeat(" ", pad)
		}
		out = append(out, text+" "+bar)
	}
	return strings.Join(out, "\n")
}

func wrapLogText(text string, width int) string {
	if width <= 0 || text == "" {
		return text
	}
	return ansi.Wrap(text, width, "")
}
