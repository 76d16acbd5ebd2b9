//go:build !headless

package gui

import (
	"fmt"
	"math"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"apc-panel/internal/apc"
)

const (
	largeTextScale  = 1.4
	noticeIconSize  = float32(48)
	sectionGap      = float32(6)
	channelBadgeTip = "Channel status code %d"
)

// applyView rebuilds the panel from a fresh view. Every snapshot replaces
// the whole panel.
func (c *controller) applyView(view apc.View) {
	c.view = view
	c.hasView = true
	c.panelBox.Objects = c.buildPanel(view)
	c.panelBox.Refresh()
}

func (c *controller) buildPanel(view apc.View) []fyne.CanvasObject {
	if view.Notice != nil {
		return []fyne.CanvasObject{c.buildNotice(*view.Notice)}
	}

	var objects []fyne.CanvasObject
	if len(view.LockNotice) > 0 {
		objects = append(objects, container.NewCenter(textLines(view.LockNotice, fyne.TextAlignCenter)))
	}
	for _, section := range view.Sections {
		objects = append(objects, c.buildSection(section), verticalGap(sectionGap))
	}
	return objects
}

func (c *controller) buildSection(section apc.Section) fyne.CanvasObject {
	title := widget.NewLabelWithStyle(section.Title, fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
	var actions []fyne.CanvasObject
	for _, button := range section.Buttons {
		actions = append(actions, c.panelButton(button))
	}
	header := container.NewBorder(nil, nil, title, container.NewHBox(actions...))

	form := container.New(layout.NewFormLayout())
	for _, row := range section.Rows {
		label := widget.NewLabel(row.Label)
		label.Truncation = fyne.TextTruncateEllipsis
		form.Add(label)
		form.Add(c.buildRow(row))
	}
	return container.NewVBox(header, widget.NewSeparator(), form)
}

func (c *controller) buildRow(row apc.Row) fyne.CanvasObject {
	var parts []fyne.CanvasObject
	if row.Progress != nil {
		return cellBar(*row.Progress)
	}
	if row.Value.Value != "" {
		parts = append(parts, panelText(row.Value))
	}
	if row.Indicator != nil {
		badge := newStatusBadge(tooltipHandlers{
			Show: c.showHoverTooltip,
			Move: c.moveHoverTooltip,
			Hide: c.hideHoverTooltip,
		})
		badge.SetStatus(theme.Color(colorName(row.Indicator.Color)), row.Indicator.Value, "")
		parts = append(parts, badge)
	}
	parts = append(parts, layout.NewSpacer())
	for _, button := range row.Buttons {
		parts = append(parts, c.panelButton(button))
		if button.Tooltip != "" {
			hint := newStatusBadge(tooltipHandlers{
				Show: c.showHoverTooltip,
				Move: c.moveHoverTooltip,
				Hide: c.hideHoverTooltip,
			})
			hint.SetStatus(theme.Color(theme.ColorNameDisabled), "", button.Tooltip)
			parts = append(parts, hint)
		}
	}
	return container.NewHBox(parts...)
}

func (c *controller) buildNotice(notice apc.Notice) fyne.CanvasObject {
	var objects []fyne.CanvasObject
	if icon := iconResource(notice.Icon); icon != nil {
		img := widget.NewIcon(theme.NewErrorThemedResource(icon))
		objects = append(objects, container.NewCenter(container.NewGridWrap(fyne.NewSize(noticeIconSize, noticeIconSize), img)))
	}
	if notice.Title != "" {
		objects = append(objects, widget.NewLabelWithStyle(notice.Title, fyne.TextAlignCenter, fyne.TextStyle{Bold: true}))
	}
	objects = append(objects, textLines(notice.Lines, fyne.TextAlignCenter))
	if notice.Button != nil {
		objects = append(objects, container.NewCenter(c.panelButton(*notice.Button)))
	}
	if notice.Footer != nil {
		objects = append(objects, container.NewCenter(panelText(*notice.Footer)))
	}
	return container.NewVBox(layout.NewSpacer(), container.NewVBox(objects...), layout.NewSpacer())
}

func (c *controller) panelButton(button apc.Button) fyne.CanvasObject {
	pressed := button
	b := widget.NewButtonWithIcon(button.Label, iconResource(button.Icon), func() {
		c.dispatch(pressed)
	})
	b.Importance = buttonImportance(button)
	if button.Disabled {
		b.Disable()
	}
	return b
}

func cellBar(p apc.Progress) fyne.CanvasObject {
	bar := widget.NewProgressBar()
	bar.TextFormatter = func() string {
		return percentText(p.Value)
	}
	bar.SetValue(math.Min(math.Max(p.Value, 0), 1))
	return bar
}

// percentText shows the raw fraction as a rounded percentage, unclamped.
func percentText(value float64) string {
	return fmt.Sprintf("%d%%", int(math.Round(value*100)))
}

func panelText(t apc.Text) *canvas.Text {
	text := canvas.NewText(t.Value, theme.Color(colorName(t.Color)))
	text.TextStyle = fyne.TextStyle{Bold: t.Bold || t.Large}
	text.TextSize = theme.TextSize()
	if t.Large {
		text.TextSize *= largeTextScale
	}
	return text
}

func textLines(texts []apc.Text, align fyne.TextAlign) fyne.CanvasObject {
	box := container.NewVBox()
	for _, t := range texts {
		text := panelText(t)
		text.Alignment = align
		box.Add(text)
	}
	return box
}

func verticalGap(height float32) fyne.CanvasObject {
	spacer := canvas.NewRectangle(nil)
	spacer.SetMinSize(fyne.NewSize(1, height))
	return spacer
}
