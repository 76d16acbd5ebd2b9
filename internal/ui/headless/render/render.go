package render

import (
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

var alarmColors = [...]lipgloss.Color{"9", "214"}

// Frame wraps content in panelStyle at the given outer width. With alarm
// set, the border alternates warning colors that march with phase.
func Frame(content string, width int, alarm bool, phase int, panelStyle lipgloss.Style) string {
	innerWidth := max(width-panelStyle.GetHorizontalFrameSize(), 1)
	framed := panelStyle.Width(innerWidth).Render(content)
	if !alarm {
		return framed
	}
	return alarmFrameBorders(framed, phase)
}

func alarmFrameBorders(framed string, phase int) string {
	lines := strings.Split(framed, "\n")
	out := make([]string, len(lines))
	last := len(lines) - 1
	for y, line := range lines {
		if y == 0 || y == last {
			out[y] = colorizeHorizontalBorder(line, y, phase)
			continue
		}
		out[y] = colorizeVerticalEdges(line, y, phase)
	}
	return strings.Join(out, "\n")
}

func colorizeHorizontalBorder(line string, y int, phase int) string {
	var b strings.Builder
	x := 0
	for _, r := range line {
		ch := string(r)
		if isFrameBorderRune(r) {
			ch = colorizeBorderChar(ch, x, y, phase)
		}
		b.WriteString(ch)
		x++
	}
	return b.String()
}

func colorizeVerticalEdges(line string, y int, phase int) string {
	leftRune, leftSize := utf8.DecodeRuneInString(line)
	if leftRune != '│' {
		return line
	}
	rightIdx := strings.LastIndex(line, "│")
	if rightIdx <= 0 {
		return line
	}
	rightX := ansi.StringWidth(line[:rightIdx])
	return colorizeBorderChar("│", 0, y, phase) + line[leftSize:rightIdx] + colorizeBorderChar("│", rightX, y, phase)
}

func isFrameBorderRune(r rune) bool {
	switch r {
	case '╭', '╮', '╰', '╯', '─', '│':
		return true
	default:
		return false
	}
}

func colorizeBorderChar(ch string, x int, y int, phase int) string {
	band := ((x+y)/4 + phase) % len(alarmColors)
	return lipgloss.NewStyle().Foreground(alarmColors[band]).Render(ch)
}

func TruncateDisplayWidth(value string, width int) string {
	if width <= 0 {
		return ""
	}
	if ansi.StringWidth(value) <= width {
		return value
	}
	if width == 1 {
		return "…"
	}
	return ansi.Truncate(value, width, "…")
}

// PadRight pads an ANSI-styled string with spaces to width display cells.
func PadRight(value string, width int) string {
	if pad := width - ansi.StringWidth(value); pad > 0 {
		return value + strings.Repeat(" ", pad)
	}
	return value
}
