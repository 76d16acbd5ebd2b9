//go:build !headless

package gui

import (
	"image/color"
	"sync/atomic"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

const (
	badgeDotSize      = float32(10)
	badgeHoverTarget  = float32(22)
	badgeTooltipDelay = 180 * time.Millisecond
	badgeHideDelay    = 120 * time.Millisecond
)

// statusBadge is a colored dot with an optional caption. Hovering it shows
// its tooltip through the window's tooltip layer.
type statusBadge struct {
	widget.BaseWidget

	tooltip string
	dot     *canvas.Circle
	caption *canvas.Text

	handlers tooltipHandlers

	hoverTimer *time.Timer
	hideTimer  *time.Timer
	hoverSeq   atomic.Uint64
	shown      bool
	hovered    bool
	hoverPos   fyne.Position
}

var _ desktop.Hoverable = (*statusBadge)(nil)

type tooltipHandlers struct {
	Show func(string, fyne.Position)
	Move func(fyne.Position)
	Hide func()
}

func newStatusBadge(handlers tooltipHandlers) *statusBadge {
	b := &statusBadge{
		handlers: handlers,
		dot:      canvas.NewCircle(theme.Color(theme.ColorNameDisabled)),
		caption:  canvas.NewText("", theme.Color(theme.ColorNameForeground)),
	}
	b.ExtendBaseWidget(b)
	return b
}

func (b *statusBadge) SetStatus(fill color.Color, caption string, tooltip string) {
	b.dot.FillColor = fill
	b.dot.Refresh()
	b.caption.Text = caption
	b.caption.Color = fill
	b.caption.Refresh()
	b.tooltip = tooltip
	if tooltip == "" {
		b.hideTooltip()
		return
	}
	if b.shown {
		b.showTooltipNow()
	}
	b.Refresh()
}

func (b *statusBadge) CreateRenderer() fyne.WidgetRenderer {
	anchor := canvas.NewRectangle(color.Transparent)
	anchor.SetMinSize(fyne.NewSize(badgeHoverTarget, badgeHoverTarget))
	dot := container.NewStack(anchor, container.NewCenter(container.NewGridWrap(fyne.NewSize(badgeDotSize, badgeDotSize), b.dot)))
	return widget.NewSimpleRenderer(container.NewHBox(dot, b.caption))
}

func (b *statusBadge) MouseIn(ev *desktop.MouseEvent) {
	b.hovered = true
	b.cancelHideTimer()
	b.trackPointer(ev)
	b.scheduleTooltip()
}

func (b *statusBadge) MouseMoved(ev *desktop.MouseEvent) {
	b.hovered = true
	b.cancelHideTimer()
	b.trackPointer(ev)
	if b.shown {
		if b.handlers.Move != nil {
			b.handlers.Move(b.hoverPos)
		}
		return
	}
	b.scheduleTooltip()
}

func (b *statusBadge) MouseOut() {
	b.hovered = false
	b.cancelTooltipTimer()
	b.cancelHideTimer()
	b.hideTimer = time.AfterFunc(badgeHideDelay, func() {
		fyne.Do(func() {
			b.hideTimer = nil
			if !b.hovered {
				b.hideTooltip()
			}
		})
	})
}

func (b *statusBadge) trackPointer(ev *desktop.MouseEvent) {
	if ev == nil {
		return
	}
	b.hoverPos = ev.AbsolutePosition
}

func (b *statusBadge) scheduleTooltip() {
	if b.tooltip == "" || b.shown || b.hoverTimer != nil {
		return
	}
	seq := b.hoverSeq.Add(1)
	b.hoverTimer = time.AfterFunc(badgeTooltipDelay, func() {
		fyne.Do(func() {
			b.hoverTimer = nil
			if b.hoverSeq.Load() != seq {
				return
			}
			b.showTooltipNow()
		})
	})
}

func (b *statusBadge) cancelTooltipTimer() {
	b.hoverSeq.Add(1)
	if b.hoverTimer != nil {
		b.hoverTimer.Stop()
		b.hoverTimer = nil
	}
}

func (b *statusBadge) cancelHideTimer() {
	if b.hideTimer != nil {
		b.hideTimer.Stop()
		b.hideTimer = nil
	}
}

func (b *statusBadge) showTooltipNow() {
	if b.tooltip == "" {
		b.hideTooltip()
		return
	}
	if b.handlers.Show != nil {
		b.handlers.Show(b.tooltip, b.hoverPos)
	}
	b.shown = true
}

func (b *statusBadge) hideTooltip() {
	if b.shown && b.handlers.Hide != nil {
		b.handlers.Hide()
	}
	b.shown = false
}
