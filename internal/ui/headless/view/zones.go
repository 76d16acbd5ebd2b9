package view

const (
	zoneLogsToggle  = "ui-logs"
	zoneDebugToggle = "ui-debug"
	zoneQuit        = "ui-quit"
	zoneLogPane     = "ui-log-pane"
)

// Panel buttons use their apc.Button ID as the zone ID.
func chromeControls(showLogs bool) []string {
	if showLogs {
		return []string{zoneLogsToggle, zoneDebugToggle, zoneQuit}
	}
	return []string{zoneLogsToggle, zoneQuit}
}
