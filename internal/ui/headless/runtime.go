package headless

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"apc-panel/internal/apc"
	"apc-panel/internal/config"
	"apc-panel/internal/logging"
	"apc-panel/internal/runstatus"
	"apc-panel/internal/runtime"
	headlessview "apc-panel/internal/ui/headless/view"
)

const dispatchTimeout = 10 * time.Second

func (m *headlessModel) startRunnerCmd() tea.Cmd {
	opts := m.opts
	return func() tea.Msg {
		err := m.runner.Start(opts, m.logger, runtime.StartHooks{
			OnSnapshot: m.onRuntimeSnapshot,
			OnStatus:   m.onRuntimeStatus,
			OnExit:     m.onRuntimeExit,
		})
		return startResultMsg{err: err}
	}
}

func (m *headlessModel) onRuntimeSnapshot(snapshot apc.Snapshot) {
	sendLatest(m.snapCh, snapshot)
}

func (m *headlessModel) onRuntimeStatus(status string) {
	sendLatest(m.statusCh, status)
}

func (m *headlessModel) onRuntimeExit(runErr error) {
	if m.program == nil {
		return
	}
	m.program.Send(runDoneMsg{err: runErr})
}

// dispatchCmd sends a button's action off the update loop. Failures are
// logged; the next snapshot is the only feedback the panel gets.
func (m *headlessModel) dispatchCmd(button apc.Button) tea.Cmd {
	ctx := m.rootCtx
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, dispatchTimeout)
		defer cancel()
		return dispatchResultMsg{action: button.Action.Name, err: m.runner.Dispatch(ctx, button)}
	}
}

func (m *headlessModel) applyRuntimeStatus(status string) {
	m.status = status
	switch runstatus.Key(status) {
	case runstatus.KeyConnecting, runstatus.KeyReconnecting:
		m.kind = headlessview.StatusConnecting
	case runstatus.KeyConnected:
		m.kind = headlessview.StatusConnected
		m.persistSettings()
	case runstatus.KeyWatchingFile:
		m.kind = headlessview.StatusConnected
	case runstatus.KeyDisconnectedAuth:
		m.kind = headlessview.StatusError
	default:
		m.kind = headlessview.StatusIdle
	}
}

// persistSettings remembers a backend once it has accepted a connection.
func (m *headlessModel) persistSettings() {
	if m.settingsSaved || m.opts.OfflineMode() {
		return
	}
	m.settingsSaved = true
	settings := config.SettingsFromOptions(m.opts)
	settings.Debug = m.ui.DebugOn
	if err := config.SaveSettings(settings); err != nil {
		m.logger.Warn("failed to save panel settings", logging.Err(err))
	}
}

func (m *headlessModel) cleanup() {
	m.cleanupOnce.Do(func() {
		m.logger.Debug("headless cleanup started")

		if m.rootCancel != nil {
			m.rootCancel()
		}
		if m.unsubscribe != nil {
			m.unsubscribe()
		}
		m.runner.Stop()

		m.logger.Debug("headless cleanup complete")
	})
}
