//go:build !headless

package gui

import (
	"context"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"apc-panel/internal/apc"
	"apc-panel/internal/logging"
	"apc-panel/internal/runctx"
	"apc-panel/internal/runstatus"
	"apc-panel/internal/runtime"
)

const (
	dispatchTimeout   = 10 * time.Second
	logWrapPollPeriod = 250 * time.Millisecond
)

func waitGroupWithTimeout(wg *sync.WaitGroup, timeout time.Duration) bool {
	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	if timeout <= 0 {
		<-done
		return true
	}
	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case <-done:
		return true
	case <-timer.C:
		return false
	}
}

func (c *controller) startBackgroundLoop(name string, fn func(context.Context)) {
	c.bgWG.Go(func() {
		c.logger.Debug("background loop started", logging.Field("loop", name))
		fn(c.appCtx)
		c.logger.Debug("background loop stopped", logging.Field("loop", name))
	})
}

func (c *controller) startRunner() {
	err := c.runner.Start(c.opts, c.logger, runtime.StartHooks{
		OnSnapshot: func(snapshot apc.Snapshot) {
			view := apc.Build(snapshot)
			fyne.Do(func() {
				c.applyView(view)
			})
		},
		OnStatus: func(status string) {
			fyne.Do(func() {
				c.applyRuntimeStatus(status)
			})
		},
		OnExit: func(runErr error) {
			fyne.Do(func() {
				if c.shuttingDown {
					return
				}
				if runErr != nil {
					c.setStatus(runstatus.Disconnected)
					dialog.ShowError(runErr, c.win)
				}
			})
		},
	})
	if err != nil {
		c.setStatus(runstatus.Disconnected)
		dialog.ShowError(err, c.win)
	}
}

// dispatch sends a pressed button's action in the background. The panel
// only changes when the next snapshot arrives.
func (c *controller) dispatch(button apc.Button) {
	c.logger.Debug("panel button pressed", logging.Button(button), logging.Action(button.Action.Name))
	c.bgWG.Go(func() {
		ctx, cancel := context.WithTimeout(c.appCtx, dispatchTimeout)
		defer cancel()
		if err := c.runner.Dispatch(ctx, button); err != nil {
			c.logger.Warn("panel action failed", logging.Action(button.Action.Name), logging.Err(err))
		}
	})
}

func (c *controller) bindLogs() {
	logCh := make(chan logging.Event, 256)
	c.unsubscribe = c.logger.Subscribe(func(event logging.Event) {
		select {
		case logCh <- event:
		default:
			select {
			case <-logCh:
			default:
			}
			logCh <- event
		}
	})

	c.startBackgroundLoop("gui log pump", func(ctx context.Context) {
		for {
			event, ok := runctx.RecvOrDone(ctx, "GUI log pump", c.logger, logCh)
			if !ok {
				return
			}
			line := logLineFromEvent(event)
			fyne.Do(func() {
				c.appendLog(line)
			})
		}
	})
}

func (c *controller) initLogWindow() {
	c.logGrid = widget.NewTextGrid()
	c.logGrid.Scroll = fyne.ScrollNone
	c.logScroll = container.NewVScroll(c.logGrid)
	c.followEnabled = true
	c.logCols = c.logWrapColumns()

	c.debugToggle = newSliderToggle("Debug", func(v bool) {
		c.logger.SetDebugEnabled(v)
	})
	c.debugToggle.SetChecked(c.logger.DebugEnabled())

	c.followButton = widget.NewButton("Following", func() {
		c.setFollowEnabled(true)
		c.scrollLogsToBottom()
	})
	c.followButton.Disable()
	clearButton := widget.NewButtonWithIcon("Clear", theme.DeleteIcon(), func() {
		c.logLines = nil
		c.refreshLogView()
	})

	c.logWindow = c.app.NewWindow(apc.WindowTitle + " Logs")
	c.logWindow.Resize(fyne.NewSize(900, 520))
	header := container.NewBorder(nil, nil, clearButton, c.followButton, container.NewHBox(c.debugToggle, layout.NewSpacer()))
	c.logScroll.OnScrolled = func(pos fyne.Position) {
		if c.followJumping {
			return
		}
		if !c.logAtBottom(pos) {
			c.setFollowEnabled(false)
		}
	}
	c.logWindow.SetContent(container.NewBorder(header, nil, nil, nil, c.logScroll))
	c.logWindow.SetCloseIntercept(func() {
		if c.shuttingDown {
			return
		}
		c.setLogVisibility(false)
		c.refreshTrayMenu()
	})

	c.watchLogGridWidth()
}

func (c *controller) setLogVisibility(visible bool) {
	c.logWindowOpen = visible
	if visible {
		c.logWindow.Show()
		c.logWindow.RequestFocus()
		return
	}
	c.logWindow.Hide()
}

func (c *controller) appendLog(line logLine) {
	c.logLines = appendLogLines(c.logLines, line, maxLogLines)
	c.refreshLogView()
	if c.followEnabled {
		c.scrollLogsToBottom()
	}
}

func (c *controller) refreshLogView() {
	wrapped := wrapLogLines(c.logLines, c.logCols)
	rows := make([]widget.TextGridRow, 0, len(wrapped))
	for _, line := range wrapped {
		rows = append(rows, logGridRow(line))
	}
	c.logGrid.Rows = rows
	c.logGrid.Refresh()
}

func (c *controller) logWrapColumns() int {
	if c.logScroll == nil {
		return defaultLogWidth
	}
	charSize := fyne.MeasureText("M", theme.TextSize(), fyne.TextStyle{Monospace: true})
	return logColumnsFor(c.logScroll.Size().Width, charSize.Width)
}

func (c *controller) watchLogGridWidth() {
	c.startBackgroundLoop("log wrap watcher", func(ctx context.Context) {
		ticker := time.NewTicker(logWrapPollPeriod)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				fyne.Do(func() {
					next := c.logWrapColumns()
					if next == c.logCols {
						return
					}
					c.logCols = next
					c.refreshLogView()
					if c.followEnabled {
						c.scrollLogsToBottom()
					}
				})
			}
		}
	})
}

func (c *controller) setFollowEnabled(enabled bool) {
	c.followEnabled = enabled
	if enabled {
		c.followButton.SetText("Following")
		c.followButton.Disable()
		return
	}
	c.followButton.SetText("Follow")
	c.followButton.Enable()
}

func (c *controller) scrollLogsToBottom() {
	c.followJumping = true
	c.logScroll.ScrollToBottom()
	c.followJumping = false
}

func (c *controller) logAtBottom(pos fyne.Position) bool {
	contentHeight := c.logGrid.MinSize().Height
	viewportHeight := c.logScroll.Size().Height
	if contentHeight <= viewportHeight+1 {
		return true
	}
	return pos.Y+viewportHeight >= contentHeight-1
}
