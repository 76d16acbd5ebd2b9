package runstatus

import "strings"

const (
	Connecting       = "Connecting"
	Connected        = "Connected"
	Reconnecting     = "Reconnecting"
	Disconnected     = "Disconnected"
	DisconnectedAuth = "Disconnected (auth)"
	WatchingFile     = "Watching file"
)

const (
	KeyConnecting       = "connecting"
	KeyConnected        = "connected"
	KeyReconnecting     = "reconnecting"
	KeyDisconnected     = "disconnected"
	KeyDisconnectedAuth = "disconnected (auth)"
	KeyWatchingFile     = "watching file"
)

func Key(status string) string {
	return strings.ToLower(strings.TrimSpace(status))
}

// Live reports whether the status means snapshots are currently flowing.
func Live(status string) bool {
	switch Key(status) {
	case KeyConnected, KeyWatchingFile:
		return true
	default:
		return false
	}
}
