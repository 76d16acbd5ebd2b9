package apc

import (
	"strconv"
)

const (
	WindowTitle     = "Area Power Controller"
	WindowWidth     = 450
	WindowHeight    = 390
	WindowResizable = true
)

// Body is which of the three mutually exclusive screens the panel shows.
type Body int

const (
	BodyControlPanel Body = iota
	BodyGridCheck
	BodyFailure
)

func (b Body) String() string {
	switch b {
	case BodyGridCheck:
		return "grid-check"
	case BodyFailure:
		return "failure"
	default:
		return "control-panel"
	}
}

// Text is a styled run of text. Large marks overlay headlines.
type Text struct {
	Value string
	Color Color
	Bold  bool
	Large bool
}

// Button is one clickable control. Disabled buttons render but never dispatch.
type Button struct {
	// ID is unique within one View and stable across snapshots with the same
	// channel layout; renderers use it for hit zones and focus tracking.
	ID       string
	Icon     string
	Label    string
	Color    Color
	Tooltip  string
	Selected bool
	Disabled bool
	Action   Action
}

// Progress is a horizontal bar, used for the power cell charge.
type Progress struct {
	// Value is the fraction of a full cell. It is not clamped.
	Value float64
	Color Color
}

// Row is one labeled line of a section. Value, Indicator, Progress and
// Buttons are each optional.
type Row struct {
	Key       string
	Label     string
	Value     Text
	Indicator *Text
	Progress  *Progress
	Buttons   []Button
}

// Section is a titled group of rows. Buttons sit in the section header.
type Section struct {
	Title   string
	Buttons []Button
	Rows    []Row
}

// Notice is a fullscreen overlay that replaces the control panel.
type Notice struct {
	Title  string
	Icon   string
	Lines  []Text
	Button *Button
	Footer *Text
}

// View is the render tree for one snapshot. Sections are set for the
// control panel body, Notice for the two overlays.
type View struct {
	Body       Body
	LockNotice []Text
	Sections   []Section
	Notice     *Notice
}

// SelectBody picks which body the panel shows. Grid check wins over a
// running failure timer.
func SelectBody(s Snapshot) Body {
	if s.GridCheck {
		return BodyGridCheck
	}
	if s.Failing() {
		return BodyFailure
	}
	return BodyControlPanel
}

// Build renders s into the tree the hosts draw.
func Build(s Snapshot) View {
	body := SelectBody(s)
	switch body {
	case BodyGridCheck:
		return View{Body: body, Notice: gridCheckNotice()}
	case BodyFailure:
		return View{Body: body, Notice: failureNotice(s)}
	default:
		return buildControlPanel(s)
	}
}

// Buttons flattens the view into focus order: sections top to bottom with
// header buttons before row buttons, then any overlay button.
func (v View) Buttons() []Button {
	var out []Button
	for _, section := range v.Sections {
		out = append(out, section.Buttons...)
		for _, row := range section.Rows {
			out = append(out, row.Buttons...)
		}
	}
	if v.Notice != nil && v.Notice.Button != nil {
		out = append(out, *v.Notice.Button)
	}
	return out
}

// FindButton returns the button with the given ID.
func (v View) FindButton(id string) (Button, bool) {
	for _, button := range v.Buttons() {
		if button.ID == id {
			return button, true
		}
	}
	return Button{}, false
}

func formatNumber(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}

func watts(value float64) string {
	return formatNumber(value) + " W"
}
