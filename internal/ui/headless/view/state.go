package view

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"

	"apc-panel/internal/apc"
	"apc-panel/internal/ui/headless/keyboard"
	"apc-panel/internal/ui/headless/theme"
)

const (
	StatusIdle = iota
	StatusConnecting
	StatusConnected
	StatusError
)

const (
	defaultViewWidth   = 80
	defaultViewHeight  = 20
	maxAnimPhaseValue  = 1_000_000_000
	headerRows         = 1
	helpRows           = 1
	fullHelpRows       = 3
	frameRows          = 2
	logToolbarRows     = 1
	minPanelRows       = 4
	minLogRows         = 3
	logShareDivisor    = 3
	frameInnerInset    = 4
	scrollBarColumns   = 2
	cellBarWidth       = 20
	minViewportColumns = 10
)

// Runtime is the read-only model data a frame is rendered from.
type Runtime struct {
	BuildVersion string
	APC          string
	Status       string
	StatusKind   int
	HasSnapshot  bool
	View         apc.View
}

type State struct {
	FocusID   string
	HoverZone string

	HelpView help.Model
	Keys     keyboard.Map

	ShowLogs   bool
	FollowLogs bool
	DebugOn    bool

	LogText   string
	LogView   viewport.Model
	PanelView viewport.Model
	CellBar   progress.Model

	Width     int
	Height    int
	AnimPhase int

	ErrorModalText string
}

func NewState(debug bool) State {
	helpView := help.New()
	helpView.Styles.ShortKey = lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Bold(true)
	helpView.Styles.FullKey = helpView.Styles.ShortKey
	helpView.Styles.ShortDesc = theme.HelpStyle
	helpView.Styles.FullDesc = theme.HelpStyle
	helpView.Styles.ShortSeparator = lipgloss.NewStyle().Foreground(theme.ColorDim)
	helpView.Styles.FullSeparator = helpView.Styles.ShortSeparator

	bar := progress.New(progress.WithSolidFill(string(theme.ColorGood)), progress.WithoutPercentage())
	bar.Width = cellBarWidth

	return State{
		HelpView:   helpView,
		Keys:       keyboard.New(),
		DebugOn:    debug,
		FollowLogs: true,
		LogView:    viewport.New(defaultViewWidth, defaultViewHeight),
		PanelView:  viewport.New(defaultViewWidth, defaultViewHeight),
		CellBar:    bar,
	}
}

func (s State) WithWindowSize(width int, height int) State {
	s.Width = width
	s.Height = height
	s.Resize()
	return s
}

func (s State) WithTick() State {
	s.AnimPhase++
	if s.AnimPhase > maxAnimPhaseValue {
		s.AnimPhase = 0
	}
	return s
}

// Resize splits the window between the panel and the optional log pane.
func (s *State) Resize() {
	if s.Width <= 0 || s.Height <= 0 {
		return
	}
	inner := max(s.Width-frameInnerInset, minViewportColumns)
	helpHeight := helpRows
	if s.HelpView.ShowAll {
		helpHeight = fullHelpRows
	}
	available := s.Height - headerRows - helpHeight - frameRows

	logRows := 0
	if s.ShowLogs {
		logRows = max(available/logShareDivisor, minLogRows)
		available -= logRows + frameRows + logToolbarRows
	}

	s.PanelView.Width = inner
	s.PanelView.Height = max(available, minPanelRows)
	s.LogView.Width = max(inner-scrollBarColumns, minViewportColumns)
	s.LogView.Height = max(logRows, minLogRows)
	s.SetLogViewportContent()
}

func (s *State) SetLogViewportContent() {
	s.LogView.SetContent(wrapLogText(s.LogText, max(s.LogView.Width, 1)))
	if s.FollowLogs {
		s.LogView.GotoBottom()
	}
}

func (s State) withLogsToggled() State {
	s.ShowLogs = !s.ShowLogs
	if s.ShowLogs {
		s.FollowLogs = true
	}
	s.Resize()
	return s
}
