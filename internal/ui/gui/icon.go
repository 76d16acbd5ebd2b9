//go:build !headless

package gui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

const appIconSVG = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 64 64">
<rect x="4" y="4" width="56" height="56" rx="10" fill="#2b2f36"/>
<path d="M36 8 L16 36 H30 L26 56 L48 26 H34 Z" fill="#f5c542"/>
</svg>`

var appIcon = fyne.NewStaticResource("apc-panel.svg", []byte(appIconSVG))

func AppIconResource() fyne.Resource {
	return appIcon
}

// iconResource maps a panel icon name to a theme icon. Unknown names get no
// icon.
func iconResource(name string) fyne.Resource {
	switch name {
	case "times":
		return theme.CancelIcon()
	case "power-off":
		return theme.ConfirmIcon()
	case "sync":
		return theme.ViewRefreshIcon()
	case "lightbulb-o":
		return theme.VisibilityIcon()
	case "lock":
		return theme.CheckButtonCheckedIcon()
	case "unlock":
		return theme.CheckButtonIcon()
	case "terminal":
		return theme.ComputerIcon()
	case "repeat":
		return theme.MediaReplayIcon()
	case "exclamation-triangle":
		return theme.WarningIcon()
	default:
		return nil
	}
}
