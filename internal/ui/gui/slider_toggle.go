//go:build !headless

package gui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

const (
	sliderToggleWidth  = float32(40)
	sliderToggleHeight = float32(20)
	sliderThumbInset   = float32(3)
)

var sliderTrackOff = color.NRGBA{R: 96, G: 96, B: 96, A: 255}

// sliderToggle is an on/off switch with a caption to its right.
type sliderToggle struct {
	widget.BaseWidget

	Checked   bool
	OnChanged func(bool)

	track   *canvas.Rectangle
	thumb   *canvas.Circle
	caption *canvas.Text
}

func newSliderToggle(caption string, onChanged func(bool)) *sliderToggle {
	t := &sliderToggle{
		OnChanged: onChanged,
		track:     canvas.NewRectangle(sliderTrackOff),
		thumb:     canvas.NewCircle(theme.Color(theme.ColorNameForeground)),
		caption:   canvas.NewText(caption, theme.Color(theme.ColorNameForeground)),
	}
	t.ExtendBaseWidget(t)
	return t
}

func (t *sliderToggle) SetChecked(checked bool) {
	if t.Checked == checked {
		return
	}
	t.Checked = checked
	if t.OnChanged != nil {
		t.OnChanged(checked)
	}
	t.Refresh()
}

func (t *sliderToggle) Tapped(*fyne.PointEvent) {
	t.SetChecked(!t.Checked)
}

func (t *sliderToggle) CreateRenderer() fyne.WidgetRenderer {
	return &sliderToggleRenderer{toggle: t, objs: []fyne.CanvasObject{t.track, t.thumb, t.caption}}
}

type sliderToggleRenderer struct {
	toggle *sliderToggle
	objs   []fyne.CanvasObject
}

func (r *sliderToggleRenderer) Layout(size fyne.Size) {
	top := max((size.Height-sliderToggleHeight)/2, 0)
	r.toggle.track.CornerRadius = sliderToggleHeight / 2
	r.toggle.track.Resize(fyne.NewSize(sliderToggleWidth, sliderToggleHeight))
	r.toggle.track.Move(fyne.NewPos(0, top))

	diameter := sliderToggleHeight - 2*sliderThumbInset
	x := sliderThumbInset
	if r.toggle.Checked {
		x = sliderToggleWidth - diameter - sliderThumbInset
	}
	r.toggle.thumb.Resize(fyne.NewSize(diameter, diameter))
	r.toggle.thumb.Move(fyne.NewPos(x, top+sliderThumbInset))

	captionSize := r.toggle.caption.MinSize()
	r.toggle.caption.Resize(captionSize)
	r.toggle.caption.Move(fyne.NewPos(sliderToggleWidth+theme.Padding(), (size.Height-captionSize.Height)/2))
}

func (r *sliderToggleRenderer) MinSize() fyne.Size {
	captionSize := r.toggle.caption.MinSize()
	return fyne.NewSize(sliderToggleWidth+theme.Padding()+captionSize.Width, max(sliderToggleHeight, captionSize.Height))
}

func (r *sliderToggleRenderer) Refresh() {
	r.Layout(r.toggle.Size())
	r.toggle.track.FillColor = sliderTrackOff
	if r.toggle.Checked {
		r.toggle.track.FillColor = theme.Color(theme.ColorNamePrimary)
	}
	r.toggle.thumb.FillColor = theme.Color(theme.ColorNameForeground)
	r.toggle.caption.Color = theme.Color(theme.ColorNameForeground)
	canvas.Refresh(r.toggle.track)
	canvas.Refresh(r.toggle.thumb)
	canvas.Refresh(r.toggle.caption)
}

func (r *sliderToggleRenderer) Objects() []fyne.CanvasObject {
	return r.objs
}

func (r *sliderToggleRenderer) Destroy() {}
