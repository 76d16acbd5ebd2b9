//go:build !headless

package gui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"apc-panel/internal/apc"
)

// panelTheme pins the default theme to its dark variant.
type panelTheme struct {
	base fyne.Theme
}

func newPanelTheme() fyne.Theme {
	return &panelTheme{base: theme.DefaultTheme()}
}

func (t *panelTheme) Color(name fyne.ThemeColorName, _ fyne.ThemeVariant) color.Color {
	return t.base.Color(name, theme.VariantDark)
}

func (t *panelTheme) Font(style fyne.TextStyle) fyne.Resource {
	return t.base.Font(style)
}

func (t *panelTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return t.base.Icon(name)
}

func (t *panelTheme) Size(name fyne.ThemeSizeName) float32 {
	return t.base.Size(name)
}

// colorName maps a panel color class to a theme color. The default class
// uses the foreground color.
func colorName(c apc.Color) fyne.ThemeColorName {
	switch c {
	case apc.ColorGood:
		return theme.ColorNameSuccess
	case apc.ColorAverage:
		return theme.ColorNameWarning
	case apc.ColorBad:
		return theme.ColorNameError
	default:
		return theme.ColorNameForeground
	}
}

func buttonImportance(button apc.Button) widget.Importance {
	switch {
	case button.Selected && button.Color == apc.ColorBad:
		return widget.DangerImportance
	case button.Selected:
		return widget.HighImportance
	case button.Color == apc.ColorBad:
		return widget.WarningImportance
	default:
		return widget.MediumImportance
	}
}
