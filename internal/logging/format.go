package logging

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"
)

// LevelLabel is the fixed-width tag both formatters print.
func LevelLabel(level slog.Level) string {
	switch {
	case level <= slog.LevelDebug:
		return "DEBUG"
	case level <= slog.LevelInfo:
		return "INFO "
	case level <= slog.LevelWarn:
		return "WARN "
	default:
		return "ERROR"
	}
}

// FormatEventLine renders one event as a single plain line:
//
//	09:30:00 WARN  panel action failed apc=engineering action=breaker error="timeout"
func FormatEventLine(event Event) string {
	var b strings.Builder
	b.WriteString(event.Time.Format("15:04:05"))
	b.WriteByte(' ')
	b.WriteString(LevelLabel(event.Level))
	b.WriteByte(' ')
	b.WriteString(event.Message)
	for _, attr := range orderAttrs(event.Fields) {
		b.WriteByte(' ')
		b.WriteString(attr.Key)
		b.WriteByte('=')
		b.WriteString(formatValue(attr))
	}
	b.WriteByte('\n')
	return b.String()
}

func formatValue(attr Attr) string {
	if attr.Value == nil {
		return "<nil>"
	}
	text, ok := attr.Value.(string)
	if !ok {
		return fmt.Sprintf("%v", attr.Value)
	}
	if payloadKeys[attr.Key] {
		return text
	}
	if text == "" || strings.ContainsAny(text, " \t\n\"=") {
		return strconv.Quote(text)
	}
	return text
}
