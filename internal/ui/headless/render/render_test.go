package render

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

func TestTruncateDisplayWidth(t *testing.T) {
	tests := []struct {
		value string
		width int
		want  string
	}{
		{value: "Equipment", width: 20, want: "Equipment"},
		{value: "Environmental", width: 6, want: "Envir…"},
		{value: "Lighting", width: 1, want: "…"},
		{value: "Lighting", width: 0, want: ""},
	}
	for _, tt := range tests {
		if got := TruncateDisplayWidth(tt.value, tt.width); got != tt.want {
			t.Fatalf("TruncateDisplayWidth(%q, %d) = %q, want %q", tt.value, tt.width, got, tt.want)
		}
	}
}

func TestFrameKeepsWidthWithAlarm(t *testing.T) {
	style := lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	plain := Frame("SYSTEM FAILURE", 30, false, 0, style)
	alarm := Frame("SYSTEM FAILURE", 30, true, 3, style)
	if lipgloss.Width(plain) != lipgloss.Width(alarm) || lipgloss.Width(plain) > 30 {
		t.Fatalf("widths = %d, %d", lipgloss.Width(plain), lipgloss.Width(alarm))
	}
	if ansi.Strip(alarm) != ansi.Strip(plain) {
		t.Fatalf("alarm frame changed content:\n%s\n%s", ansi.Strip(alarm), ansi.Strip(plain))
	}
}

func TestPadRight(t *testing.T) {
	if got := PadRight("On", 5); got != "On   " {
		t.Fatalf("PadRight() = %q", got)
	}
	if got := PadRight("Overload", 3); !strings.HasPrefix(got, "Overload") {
		t.Fatalf("PadRight() = %q", got)
	}
}
