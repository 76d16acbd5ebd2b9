package app

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"apc-panel/internal/apc"
	"apc-panel/internal/backend"
	"apc-panel/internal/config"
	"apc-panel/internal/logging"
	"apc-panel/internal/runctx"
	"apc-panel/internal/runstatus"
	"apc-panel/internal/source"
)

// PanelApp feeds snapshots for one APC to the UI, from either the live
// backend or a watched snapshot file.
type PanelApp struct {
	opts   config.Options
	client *backend.Client
	logger *logging.Logger
	hooks  Callbacks
	status runtimeStatusState
}

type Callbacks struct {
	OnSnapshot     func(apc.Snapshot)
	OnStatusChange func(string)
}

// New builds a live panel. client may be nil only for snapshot-file runs.
func New(opts config.Options, client *backend.Client, logger *logging.Logger, hooks Callbacks) *PanelApp {
	if logger == nil {
		panic("app.New: logger must not be nil")
	}
	if client == nil && !opts.OfflineMode() {
		panic("app.New: client must not be nil")
	}
	return &PanelApp{opts: opts, client: client, logger: logger, hooks: hooks}
}

// Dispatcher returns where panel actions go for this run.
func (a *PanelApp) Dispatcher() apc.Dispatcher {
	if a.client == nil {
		return source.LogDispatcher{Logger: a.logger}
	}
	return a.client
}

func (a *PanelApp) RunContext(ctx context.Context) error {
	if a.opts.OfflineMode() {
		return a.runFile(ctx)
	}
	return a.runLive(ctx)
}

func (a *PanelApp) runLive(ctx context.Context) error {
	a.logger.Info("panel starting", logging.APC(a.opts.APC))
	a.setRuntimeStatus(runstatus.Connecting)

	initial, err := a.client.FetchSnapshot(ctx)
	if err != nil {
		if backend.IsUnauthorized(err) {
			a.setRuntimeStatus(runstatus.DisconnectedAuth)
		} else {
			a.setRuntimeStatus(runstatus.Disconnected)
		}
		return fmt.Errorf("%w: %w", ErrInitialSnapshot, err)
	}
	a.notifySnapshot(initial)

	updates := a.client.StreamSnapshots(ctx, backend.SyncHooks{
		OnConnected: func() {
			a.setRuntimeStatus(runstatus.Connected)
		},
		OnDisconnected: func(err error) {
			if ctx.Err() != nil {
				return
			}
			if backend.IsUnauthorized(err) {
				a.setRuntimeStatus(runstatus.DisconnectedAuth)
				return
			}
			a.setRuntimeStatus(runstatus.Reconnecting)
		},
	})
	a.forwardSnapshots(ctx, updates)

	if a.status.get() != runstatus.DisconnectedAuth {
		a.setRuntimeStatus(runstatus.Disconnected)
	}
	a.logger.Info("panel stopped")
	return nil
}

func (a *PanelApp) runFile(ctx context.Context) error {
	a.logger.Info("panel starting from snapshot file", logging.Field("path", a.opts.SnapshotFile))
	watcher := source.NewWatcher(source.WatcherOptions{Path: a.opts.SnapshotFile}, a.logger)
	updates, err := watcher.Snapshots(ctx)
	if err != nil {
		a.setRuntimeStatus(runstatus.Disconnected)
		return fmt.Errorf("%w: %w", ErrSnapshotSource, err)
	}
	a.setRuntimeStatus(runstatus.WatchingFile)
	a.forwardSnapshots(ctx, updates)
	a.setRuntimeStatus(runstatus.Disconnected)
	return nil
}

func (a *PanelApp) forwardSnapshots(ctx context.Context, updates <-chan apc.Snapshot) {
	for {
		snapshot, ok := runctx.RecvOrDone(ctx, "snapshot forwarder", a.logger, updates)
		if !ok {
			return
		}
		a.logger.Debug("snapshot received", logging.Snapshot(snapshot))
		a.notifySnapshot(snapshot)
	}
}

func (a *PanelApp) notifySnapshot(snapshot apc.Snapshot) {
	if a.hooks.OnSnapshot == nil {
		return
	}
	a.hooks.OnSnapshot(snapshot)
}

type runtimeStatusState struct {
	mu      sync.Mutex
	current string
}

func (s *runtimeStatusState) update(status string) (string, string, bool) {
	trimmed := strings.TrimSpace(status)
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == trimmed {
		return s.current, trimmed, false
	}
	previous := s.current
	s.current = trimmed
	return previous, trimmed, true
}

func (s *runtimeStatusState) get() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

func (a *PanelApp) setRuntimeStatus(status string) {
	previous, next, changed := a.status.update(status)
	if !changed {
		return
	}
	a.logger.Debug("runtime status transition",
		logging.Field("from", previous),
		logging.Field("to", next),
	)
	if a.hooks.OnStatusChange != nil {
		a.hooks.OnStatusChange(next)
	}
}
