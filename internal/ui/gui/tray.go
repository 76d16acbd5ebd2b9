//go:build !headless

package gui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"

	"apc-panel/internal/apc"
)

func (c *controller) setupTray() {
	if _, ok := c.app.(desktop.App); !ok {
		return
	}
	c.refreshTrayMenu()
}

func (c *controller) refreshTrayMenu() {
	if c.shuttingDown {
		return
	}
	desk, ok := c.app.(desktop.App)
	if !ok {
		return
	}

	desk.SetSystemTrayIcon(AppIconResource())

	openItem := fyne.NewMenuItem("Open Window", func() {
		c.win.Show()
		c.win.RequestFocus()
	})
	showLogsItem := fyne.NewMenuItem("Show Logs", func() {
		c.setLogVisibility(!c.logWindowOpen)
		c.refreshTrayMenu()
	})
	showLogsItem.Checked = c.logWindowOpen

	debugItem := fyne.NewMenuItem("Debug Logging", func() {
		c.debugToggle.SetChecked(!c.debugToggle.Checked)
		c.refreshTrayMenu()
	})
	debugItem.Checked = c.debugToggle.Checked

	exitItem := fyne.NewMenuItem("Exit", c.quitApp)

	tray := fyne.NewMenu(apc.WindowTitle,
		openItem,
		showLogsItem,
		debugItem,
		fyne.NewMenuItemSeparator(),
		exitItem,
	)
	desk.SetSystemTrayMenu(tray)
}
