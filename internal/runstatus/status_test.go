package runstatus

import "testing"

func TestLive(t *testing.T) {
	tests := []struct {
		status string
		want   bool
	}{
		{status: Connected, want: true},
		{status: " watching FILE ", want: true},
		{status: Reconnecting, want: false},
		{status: DisconnectedAuth, want: false},
		{status: "", want: false},
	}
	for _, tt := range tests {
		if got := Live(tt.status); got != tt.want {
			t.Fatalf("Live(%q) = %v, want %v", tt.status, got, tt.want)
		}
	}
}
