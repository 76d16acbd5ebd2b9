package logging

import (
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

var colorProfileOnce sync.Once

var (
	timeStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	msgStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("252"))
	keyStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	valueStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	panelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("111"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	payloadStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Italic(true)
)

var levelStyles = map[string]lipgloss.Style{
	"DEBUG": lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	"INFO ": lipgloss.NewStyle().Foreground(lipgloss.Color("114")),
	"WARN ": lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214")),
	"ERROR": lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
}

func colorTerminal() bool {
	if termenv.EnvNoColor() {
		return false
	}
	return termenv.NewOutput(os.Stderr).ColorProfile() != termenv.Ascii
}

// FormatEventANSI renders one event with color. Panel keys (apc, action,
// button) share an accent, errors are red, and raw payloads go on an
// indented second line. The terminal panel log pane uses the same output.
func FormatEventANSI(event Event) string {
	colorProfileOnce.Do(func() {
		lipgloss.SetColorProfile(termenv.ANSI256)
	})

	label := LevelLabel(event.Level)
	var b strings.Builder
	b.WriteString(timeStyle.Render(event.Time.Format("15:04:05.000")))
	b.WriteByte(' ')
	b.WriteString(levelStyles[label].Render(label))
	b.WriteByte(' ')
	b.WriteString(msgStyle.Render(event.Message))

	var payloads []string
	for _, attr := range orderAttrs(event.Fields) {
		if payloadKeys[attr.Key] {
			payloads = append(payloads, keyStyle.Render(attr.Key+":")+" "+payloadStyle.Render(formatValue(attr)))
			continue
		}
		b.WriteByte(' ')
		b.WriteString(keyStyle.Render(attr.Key + "="))
		b.WriteString(ansiValueStyle(attr.Key, event.Level).Render(formatValue(attr)))
	}
	for _, payload := range payloads {
		b.WriteString("\n    ")
		b.WriteString(payload)
	}
	b.WriteByte('\n')
	return b.String()
}

func ansiValueStyle(key string, level slog.Level) lipgloss.Style {
	switch key {
	case KeyAPC, KeyAction, KeyButton:
		return panelStyle
	case KeyError:
		if level >= slog.LevelWarn {
			return errorStyle
		}
	}
	return valueStyle
}
