package headless

import (
	"context"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"apc-panel/internal/apc"
	"apc-panel/internal/config"
	"apc-panel/internal/logging"
	"apc-panel/internal/runtime"
	headlessview "apc-panel/internal/ui/headless/view"
)

const headlessLogLineLimit = 2_000

type logMsg string
type statusMsg string
type snapshotMsg apc.Snapshot
type tickMsg struct{}

type runDoneMsg struct {
	err error
}

type startResultMsg struct {
	err error
}

type dispatchResultMsg struct {
	action string
	err    error
}

type quitNowMsg struct{}

type modelDeps struct {
	runner      *runtime.Controller
	logger      *logging.Logger
	unsubscribe func()
	rootCtx     context.Context
	rootCancel  context.CancelFunc
	program     *tea.Program
}

type modelChannels struct {
	logCh    chan string
	snapCh   chan apc.Snapshot
	statusCh chan string
}

type modelRuntime struct {
	running       bool
	quitting      bool
	settingsSaved bool
	status        string
	kind          int
	hasSnapshot   bool
	view          apc.View
}

type headlessModel struct {
	buildVersion string
	opts         config.Options
	modelDeps
	modelChannels
	modelRuntime
	cleanupOnce sync.Once
	ui          headlessview.State
}
