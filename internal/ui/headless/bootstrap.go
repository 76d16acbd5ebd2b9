package headless

import (
	"context"
	"errors"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"

	"apc-panel/internal/apc"
	"apc-panel/internal/config"
	"apc-panel/internal/logging"
	"apc-panel/internal/runstatus"
	"apc-panel/internal/runtime"
	headlessview "apc-panel/internal/ui/headless/view"
)

const (
	logChannelBufferSize      = 512
	snapshotChannelBufferSize = 1
	statusChannelBufferSize   = 16
	updateTickInterval        = 120 * time.Millisecond
	shutdownWait              = 2 * time.Second
)

// Run drives the terminal panel until the user quits or rootCtx ends.
func Run(rootCtx context.Context, buildVersion string, opts config.Options) error {
	defer forceDisableMouseTracking()

	logger := logging.New(opts.Debug)
	if logger == nil {
		panic("headless.Run: logging.New returned nil")
	}
	if err := logger.EnableFilePersistence(0); err != nil {
		logger.Warn("failed to enable file log persistence", logging.Err(err))
	}
	logger.SetTerminalOutputEnabled(false)
	defer func() { _ = logger.Close() }()
	logger.Info("starting APC terminal panel", logging.Field("version", buildVersion), logging.APC(opts.APC))

	m := newHeadlessModel(rootCtx, buildVersion, opts, logger)
	zone.NewGlobal()
	program := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion(), tea.WithContext(rootCtx))
	m.program = program
	result, runErr := program.Run()
	if model, _ := result.(*headlessModel); model != nil {
		model.cleanup()
	} else {
		m.cleanup()
	}
	m.runner.Wait(shutdownWait)
	if errors.Is(runErr, tea.ErrProgramKilled) && rootCtx.Err() != nil {
		return nil
	}
	return runErr
}

func forceDisableMouseTracking() {
	_, _ = os.Stdout.WriteString("\x1b[?1000l\x1b[?1002l\x1b[?1003l\x1b[?1006l\x1b[?1015l")
}

func newHeadlessModel(rootCtx context.Context, buildVersion string, opts config.Options, logger *logging.Logger) *headlessModel {
	if rootCtx == nil {
		rootCtx = context.Background()
	}
	runCtx, runCancel := context.WithCancel(rootCtx)

	m := &headlessModel{
		buildVersion: buildVersion,
		opts:         opts,
		modelDeps: modelDeps{
			runner:     runtime.NewController(runCtx),
			logger:     logger,
			rootCtx:    runCtx,
			rootCancel: runCancel,
		},
		modelChannels: modelChannels{
			logCh:    make(chan string, logChannelBufferSize),
			snapCh:   make(chan apc.Snapshot, snapshotChannelBufferSize),
			statusCh: make(chan string, statusChannelBufferSize),
		},
		modelRuntime: modelRuntime{
			status: runstatus.Connecting,
			kind:   headlessview.StatusConnecting,
		},
		ui: headlessview.NewState(opts.Debug),
	}
	m.ui = headlessview.ReconcileFocus(m.ui, m.runtimeView())

	m.unsubscribe = logger.Subscribe(func(event logging.Event) {
		sendLatest(m.logCh, logging.FormatEventANSI(event))
	})

	return m
}

func (m *headlessModel) Init() tea.Cmd {
	return tea.Batch(
		waitForLog(m.logCh),
		waitForSnapshot(m.snapCh),
		waitForStatus(m.statusCh),
		tickCmd(),
		m.startRunnerCmd(),
	)
}

// sendLatest never blocks: a full buffer drops its oldest entry.
func sendLatest[T any](ch chan T, value T) {
	for {
		select {
		case ch <- value:
			return
		default:
		}
		select {
		case <-ch:
		default:
		}
	}
}

func waitForLog(ch <-chan string) tea.Cmd {
	return func() tea.Msg {
		line, ok := <-ch
		if !ok {
			return nil
		}
		return logMsg(line)
	}
}

func waitForSnapshot(ch <-chan apc.Snapshot) tea.Cmd {
	return func() tea.Msg {
		snapshot, ok := <-ch
		if !ok {
			return nil
		}
		return snapshotMsg(snapshot)
	}
}

func waitForStatus(ch <-chan string) tea.Cmd {
	return func() tea.Msg {
		status, ok := <-ch
		if !ok {
			return nil
		}
		return statusMsg(status)
	}
}

func tickCmd() tea.Cmd {
	return tea.Tick(updateTickInterval, func(time.Time) tea.Msg {
		return tickMsg{}
	})
}
