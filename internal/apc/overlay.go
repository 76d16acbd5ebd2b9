package apc

import "fmt"

func gridCheckNotice() *Notice {
	return &Notice{
		Title: "System Failure",
		Icon:  "exclamation-triangle",
		Lines: []Text{
			{Value: "Power surge detected, grid check in effect...", Bold: true, Large: true},
		},
	}
}

func failureNotice(s Snapshot) *Notice {
	seconds := 0.0
	if s.FailTime != nil {
		seconds = *s.FailTime
	}
	notice := &Notice{
		Lines: []Text{
			{Value: "SYSTEM FAILURE", Color: ColorBad, Bold: true, Large: true},
			{Value: "I/O regulators malfunction detected! Waiting for system reboot...", Color: ColorAverage, Bold: true},
			{Value: fmt.Sprintf("Automatic reboot in %s seconds...", formatNumber(seconds)), Color: ColorGood},
		},
	}
	if s.InterfaceLocked() {
		notice.Footer = &Text{Value: "Swipe an ID card for manual reboot.", Color: ColorBad}
		return notice
	}
	notice.Button = &Button{
		ID:     buttonReboot,
		Icon:   "repeat",
		Label:  "Restart Now",
		Color:  ColorGood,
		Action: Action{Name: ActionReboot},
	}
	return notice
}
