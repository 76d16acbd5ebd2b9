package headless

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"apc-panel/internal/apc"
	"apc-panel/internal/logging"
	"apc-panel/internal/runstatus"
	headlessview "apc-panel/internal/ui/headless/view"
)

func (m *headlessModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.quitting {
		if _, ok := msg.(quitNowMsg); ok {
			m.cleanup()
			return m, tea.Quit
		}
		return m, nil
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ui = m.ui.WithWindowSize(msg.Width, msg.Height)
		return m, nil
	case logMsg:
		wasAtBottom := m.ui.LogView.AtBottom()
		m.ui.LogText = appendLogLinesWithLimit(m.ui.LogText, string(msg), headlessLogLineLimit)
		m.ui.SetLogViewportContent()
		if m.ui.FollowLogs || wasAtBottom {
			m.ui.LogView.GotoBottom()
			m.ui.FollowLogs = true
		}
		return m, waitForLog(m.logCh)
	case snapshotMsg:
		m.view = apc.Build(apc.Snapshot(msg))
		m.hasSnapshot = true
		m.ui = headlessview.ReconcileFocus(m.ui, m.runtimeView())
		return m, waitForSnapshot(m.snapCh)
	case statusMsg:
		m.applyRuntimeStatus(string(msg))
		return m, waitForStatus(m.statusCh)
	case startResultMsg:
		if msg.err != nil {
			m.status = runstatus.Disconnected
			m.kind = headlessview.StatusError
			m.ui.ErrorModalText = msg.err.Error()
			return m, nil
		}
		m.running = true
		return m, nil
	case runDoneMsg:
		m.running = false
		if msg.err != nil {
			if runstatus.Key(m.status) != runstatus.KeyDisconnectedAuth {
				m.status = runstatus.Disconnected
			}
			m.kind = headlessview.StatusError
			m.ui.ErrorModalText = msg.err.Error()
			return m, nil
		}
		m.status = runstatus.Disconnected
		m.kind = headlessview.StatusIdle
		return m, nil
	case dispatchResultMsg:
		if msg.err != nil {
			m.logger.Warn("panel action failed", logging.Action(msg.action), logging.Err(msg.err))
		}
		return m, nil
	case tickMsg:
		m.ui = m.ui.WithTick()
		return m, tickCmd()
	case tea.MouseMsg:
		return m.updateMouseMsg(msg)
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	}
	return m, nil
}

func (m *headlessModel) updateMouseMsg(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	next, cmd, effect := headlessview.ReduceMouse(m.ui, msg, m.runtimeView())
	m.ui = next
	if effect == headlessview.MouseEffectActivateFocused {
		return m, tea.Batch(cmd, m.activateFocusedControl())
	}
	return m, cmd
}

func (m *headlessModel) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	next, effect := headlessview.ReduceKey(m.ui, msg, m.runtimeView())
	m.ui = next
	switch effect {
	case headlessview.KeyEffectRequestQuit:
		return m, m.beginQuitCmd()
	case headlessview.KeyEffectActivateFocused:
		return m, m.activateFocusedControl()
	default:
		return m, nil
	}
}

func (m *headlessModel) activateFocusedControl() tea.Cmd {
	next, effect := headlessview.ReduceActivate(m.ui, m.runtimeView())
	m.ui = next
	switch effect {
	case headlessview.ActivateEffectDispatch:
		button, ok := m.view.FindButton(m.ui.FocusID)
		if !ok {
			return nil
		}
		m.logger.Debug("panel button pressed", logging.Button(button), logging.Action(button.Action.Name))
		return m.dispatchCmd(button)
	case headlessview.ActivateEffectRequestQuit:
		return m.beginQuitCmd()
	case headlessview.ActivateEffectDebugLevelChanged:
		m.logger.SetDebugEnabled(m.ui.DebugOn)
		return nil
	default:
		return nil
	}
}

func quitProgramCmd() tea.Cmd {
	return tea.Sequence(func() tea.Msg {
		return tea.DisableMouse()
	}, waitForMouseDrainCmd(), func() tea.Msg {
		return quitNowMsg{}
	})
}

func waitForMouseDrainCmd() tea.Cmd {
	return func() tea.Msg {
		time.Sleep(120 * time.Millisecond)
		return nil
	}
}

func appendLogLinesWithLimit(current string, next string, limit int) string {
	if limit <= 0 {
		return ""
	}
	lines := splitLogLines(current)
	lines = append(lines, splitLogLines(next)...)
	if len(lines) > limit {
		lines = append([]string(nil), lines[len(lines)-limit:]...)
	}
	return strings.Join(lines, "\n")
}

func splitLogLines(input string) []string {
	if input == "" {
		return nil
	}
	normalized := strings.ReplaceAll(input, "\r\n", "\n")
	normalized = strings.ReplaceAll(normalized, "\r", "\n")
	lines := strings.Split(normalized, "\n")
	if len(lines) > 1 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

func (m *headlessModel) beginQuitCmd() tea.Cmd {
	m.quitting = true
	return quitProgramCmd()
}
