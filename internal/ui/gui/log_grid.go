//go:build !headless

package gui

import (
	"image/color"
	"log/slog"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/widget"
	"github.com/charmbracelet/x/ansi"

	"apc-panel/internal/logging"
)

const (
	maxLogLines      = 1000
	defaultLogWidth  = 120
	minLogColumns    = 40
	maxLogColumns    = 240
	logColumnsMargin = 2
)

var (
	logDebugColor = color.NRGBA{R: 140, G: 140, B: 140, A: 255}
	logInfoColor  = color.NRGBA{R: 220, G: 220, B: 220, A: 255}
	logWarnColor  = color.NRGBA{R: 229, G: 192, B: 16, A: 255}
	logErrorColor = color.NRGBA{R: 241, G: 76, B: 76, A: 255}
)

type logLine struct {
	level slog.Level
	text  string
}

func logLineFromEvent(event logging.Event) logLine {
	return logLine{level: event.Level, text: strings.TrimRight(logging.FormatEventLine(event), "\n")}
}

// appendLogLines keeps at most limit lines, dropping the oldest.
func appendLogLines(lines []logLine, next logLine, limit int) []logLine {
	lines = append(lines, next)
	if len(lines) > limit {
		lines = append([]logLine(nil), lines[len(lines)-limit:]...)
	}
	return lines
}

func wrapLogLines(lines []logLine, columns int) []logLine {
	if columns <= 1 {
		return append([]logLine(nil), lines...)
	}
	out := make([]logLine, 0, len(lines))
	for _, line := range lines {
		for _, part := range strings.Split(ansi.Wrap(line.text, columns, ""), "\n") {
			out = append(out, logLine{level: line.level, text: part})
		}
	}
	return out
}

func logGridRow(line logLine) widget.TextGridRow {
	style := logLevelStyle(line.level)
	row := widget.TextGridRow{Cells: make([]widget.TextGridCell, 0, len(line.text))}
	for _, r := range line.text {
		row.Cells = append(row.Cells, widget.TextGridCell{Rune: r, Style: style})
	}
	if len(row.Cells) == 0 {
		row.Cells = append(row.Cells, widget.TextGridCell{Rune: ' ', Style: style})
	}
	return row
}

var logLevelStyles = map[slog.Level]*widget.CustomTextGridStyle{
	slog.LevelDebug: {FGColor: logDebugColor, TextStyle: fyne.TextStyle{Monospace: true}},
	slog.LevelInfo:  {FGColor: logInfoColor, TextStyle: fyne.TextStyle{Monospace: true}},
	slog.LevelWarn:  {FGColor: logWarnColor, TextStyle: fyne.TextStyle{Monospace: true, Bold: true}},
	slog.LevelError: {FGColor: logErrorColor, TextStyle: fyne.TextStyle{Monospace: true, Bold: true}},
}

func logLevelStyle(level slog.Level) widget.TextGridStyle {
	switch {
	case level >= slog.LevelError:
		return logLevelStyles[slog.LevelError]
	case level >= slog.LevelWarn:
		return logLevelStyles[slog.LevelWarn]
	case level >= slog.LevelInfo:
		return logLevelStyles[slog.LevelInfo]
	default:
		return logLevelStyles[slog.LevelDebug]
	}
}

func logColumnsFor(widthPx float32, charWidth float32) int {
	if widthPx <= 0 || charWidth <= 0 {
		return defaultLogWidth
	}
	cols := min(max(int(widthPx/charWidth), minLogColumns), maxLogColumns)
	return cols - logColumnsMargin
}
