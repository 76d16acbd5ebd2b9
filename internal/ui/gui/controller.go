//go:build !headless

package gui

import (
	"context"
	"image/color"
	"path/filepath"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"apc-panel/internal/apc"
	"apc-panel/internal/config"
	"apc-panel/internal/logging"
	"apc-panel/internal/runstatus"
	"apc-panel/internal/runtime"
)

const (
	tooltipCursorGap = 10
	cleanupWait      = 2 * time.Second
	runnerStopWait   = 3 * time.Second
)

type controller struct {
	app    fyne.App
	opts   config.Options
	win    fyne.Window
	logger *logging.Logger
	runner *runtime.Controller

	statusBadge *statusBadge
	panelBox    *fyne.Container
	panelScroll *container.Scroll
	waiting     *widget.Label
	view        apc.View
	hasView     bool

	logWindow     fyne.Window
	logWindowOpen bool
	logGrid       *widget.TextGrid
	logScroll     *container.Scroll
	debugToggle   *sliderToggle
	followButton  *widget.Button
	followEnabled bool
	followJumping bool
	logLines      []logLine
	logCols       int

	hoverTipLayer *fyne.Container
	hoverTipCard  *fyne.Container
	hoverTipLabel *widget.Label

	settingsSaved bool
	cleanupOnce   sync.Once
	quitOnce      sync.Once
	bgWG          sync.WaitGroup
	unsubscribe   func()
	appCtx        context.Context
	appCancel     context.CancelFunc
	shuttingDown  bool
}

// Run shows the APC window and blocks until it closes.
func Run(rootCtx context.Context, buildVersion string, opts config.Options) error {
	uiApp := app.New()
	uiApp.Settings().SetTheme(newPanelTheme())
	c := newController(rootCtx, uiApp, opts)
	c.logger.Info("starting APC window", logging.Field("version", buildVersion), logging.APC(opts.APC))
	return c.run()
}

func newController(rootCtx context.Context, uiApp fyne.App, opts config.Options) *controller {
	logger := logging.New(opts.Debug)
	if logger == nil {
		panic("gui.newController: logging.New returned nil")
	}
	if err := logger.EnableFilePersistence(0); err != nil {
		logger.Warn("failed to enable file log persistence", logging.Err(err))
	}
	if rootCtx == nil {
		rootCtx = context.Background()
	}
	appCtx, appCancel := context.WithCancel(rootCtx)

	c := &controller{
		app:       uiApp,
		opts:      opts,
		logger:    logger,
		runner:    runtime.NewController(appCtx),
		appCtx:    appCtx,
		appCancel: appCancel,
	}

	uiApp.SetIcon(AppIconResource())
	c.win = uiApp.NewWindow(windowTitle(opts))
	c.win.SetMaster()
	c.win.Resize(fyne.NewSize(apc.WindowWidth, apc.WindowHeight))
	c.win.SetFixedSize(!apc.WindowResizable)
	c.buildUI()
	c.bindLogs()
	c.setupTray()
	c.app.Lifecycle().SetOnStopped(func() {
		c.logger.Debug("app lifecycle OnStopped hook triggered")
		c.cleanup()
	})
	return c
}

func windowTitle(opts config.Options) string {
	if opts.OfflineMode() {
		return apc.WindowTitle + " - " + filepath.Base(opts.SnapshotFile)
	}
	if opts.APC == "" {
		return apc.WindowTitle
	}
	return apc.WindowTitle + " - " + opts.APC
}

func (c *controller) run() error {
	go func() {
		<-c.appCtx.Done()
		fyne.Do(func() {
			if c.shuttingDown {
				return
			}
			c.logger.Info("root context canceled; closing APC window")
			c.quitApp()
		})
	}()
	c.win.SetCloseIntercept(c.quitApp)

	c.win.Show()
	c.startRunner()
	c.app.Run()
	_ = c.logger.Close()
	return nil
}

func (c *controller) buildUI() {
	c.statusBadge = newStatusBadge(tooltipHandlers{
		Show: c.showHoverTooltip,
		Move: c.moveHoverTooltip,
		Hide: c.hideHoverTooltip,
	})
	c.setStatus(runstatus.Connecting)

	logsButton := widget.NewButtonWithIcon("Logs", theme.DocumentIcon(), func() {
		c.setLogVisibility(true)
		c.refreshTrayMenu()
	})
	header := container.NewBorder(nil, nil, c.statusBadge, logsButton)

	c.waiting = widget.NewLabel("Waiting for APC data...")
	c.waiting.Alignment = fyne.TextAlignCenter
	c.panelBox = container.NewVBox(container.NewCenter(c.waiting))
	c.panelScroll = container.NewVScroll(c.panelBox)

	c.hoverTipLabel = widget.NewLabel("")
	c.hoverTipLabel.Wrapping = fyne.TextWrapOff
	tipBG := canvas.NewRectangle(color.NRGBA{R: 44, G: 44, B: 44, A: 250})
	c.hoverTipCard = container.NewStack(tipBG, container.NewPadded(c.hoverTipLabel))
	c.hoverTipCard.Hide()
	c.hoverTipLayer = container.NewWithoutLayout(c.hoverTipCard)

	c.initLogWindow()
	body := container.NewBorder(container.NewPadded(header), nil, nil, nil, c.panelScroll)
	c.win.SetContent(container.NewStack(body, c.hoverTipLayer))
}

func (c *controller) setStatus(status string) {
	fill := theme.Color(theme.ColorNameDisabled)
	switch runstatus.Key(status) {
	case runstatus.KeyConnected, runstatus.KeyWatchingFile:
		fill = theme.Color(theme.ColorNameSuccess)
	case runstatus.KeyConnecting, runstatus.KeyReconnecting:
		fill = theme.Color(theme.ColorNameWarning)
	case runstatus.KeyDisconnectedAuth:
		fill = theme.Color(theme.ColorNameError)
	}
	tooltip := c.opts.BaseURL
	if c.opts.OfflineMode() {
		tooltip = c.opts.SnapshotFile
	}
	c.statusBadge.SetStatus(fill, status, tooltip)
}

func (c *controller) applyRuntimeStatus(status string) {
	c.setStatus(status)
	if runstatus.Key(status) == runstatus.KeyConnected {
		c.persistSettings()
	}
}

// persistSettings remembers a backend once it has accepted a connection.
func (c *controller) persistSettings() {
	if c.settingsSaved || c.opts.OfflineMode() {
		return
	}
	c.settingsSaved = true
	settings := config.SettingsFromOptions(c.opts)
	settings.Debug = c.logger.DebugEnabled()
	if err := config.SaveSettings(settings); err != nil {
		c.logger.Warn("failed to save panel settings", logging.Err(err))
	}
}

func (c *controller) showHoverTooltip(text string, anchor fyne.Position) {
	c.hoverTipLabel.SetText(text)
	size := c.hoverTipCard.MinSize()
	c.hoverTipCard.Resize(size)
	c.hoverTipCard.Move(c.hoverTooltipPosition(anchor, size))
	c.hoverTipCard.Show()
	c.hoverTipLayer.Refresh()
}

func (c *controller) moveHoverTooltip(anchor fyne.Position) {
	if !c.hoverTipCard.Visible() {
		return
	}
	c.hoverTipCard.Move(c.hoverTooltipPosition(anchor, c.hoverTipCard.Size()))
	c.hoverTipLayer.Refresh()
}

func (c *controller) hideHoverTooltip() {
	c.hoverTipCard.Hide()
	c.hoverTipLayer.Refresh()
}

func (c *controller) hoverTooltipPosition(anchor fyne.Position, size fyne.Size) fyne.Position {
	const pad = float32(4)
	canvasSize := c.win.Canvas().Size()
	maxX := max(pad, canvasSize.Width-size.Width-pad)
	maxY := max(pad, canvasSize.Height-size.Height-pad)
	x := min(max(pad, anchor.X+tooltipCursorGap), maxX)
	y := min(max(pad, anchor.Y+tooltipCursorGap), maxY)
	return fyne.NewPos(x, y)
}

func (c *controller) cleanup() {
	c.cleanupOnce.Do(func() {
		c.shuttingDown = true
		c.logger.Debug("gui cleanup started")
		if c.appCancel != nil {
			c.appCancel()
		}
		if c.unsubscribe != nil {
			c.unsubscribe()
		}
		if ok := waitGroupWithTimeout(&c.bgWG, cleanupWait); !ok {
			c.logger.Warn("GUI background work did not stop within timeout")
		}
		if ok := c.runner.StopAndWait(runnerStopWait); !ok {
			c.logger.Warn("runtime controller did not stop within timeout")
		}
		c.logger.Debug("gui cleanup complete")
	})
}

func (c *controller) quitApp() {
	c.quitOnce.Do(func() {
		c.logger.Debug("quit requested")
		c.cleanup()
		c.app.Quit()
	})
}
