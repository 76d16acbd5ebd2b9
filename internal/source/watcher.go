package source

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"apc-panel/internal/apc"
	"apc-panel/internal/logging"
	"apc-panel/internal/runctx"
)

const defaultRescanPeriod = 2 * time.Second

type WatcherOptions struct {
	Path         string
	RescanPeriod time.Duration
}

// Watcher republishes a snapshot JSON file each time its content changes.
// The parent directory is watched so editors that replace the file on save
// are still seen; a periodic rescan covers filesystems without events.
type Watcher struct {
	opts    WatcherOptions
	logger  *logging.Logger
	path    string
	last    []byte
	publish func(apc.Snapshot)
}

func NewWatcher(opts WatcherOptions, logger *logging.Logger) *Watcher {
	if logger == nil {
		panic("source.NewWatcher: logger must not be nil")
	}
	if opts.RescanPeriod <= 0 {
		opts.RescanPeriod = defaultRescanPeriod
	}
	return &Watcher{opts: opts, logger: logger, path: filepath.Clean(opts.Path)}
}

// Snapshots loads the file once, then streams changes until ctx ends. An
// unreadable or malformed initial file is an error; later bad writes are
// logged and the last good snapshot stays on screen.
func (w *Watcher) Snapshots(ctx context.Context) (<-chan apc.Snapshot, error) {
	initial, err := w.load()
	if err != nil {
		return nil, err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize fsnotify watcher: %w", err)
	}
	dir := filepath.Dir(w.path)
	if err := watcher.Add(dir); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("failed to watch snapshot directory %s: %w", dir, err)
	}

	updates := make(chan apc.Snapshot, 1)
	updates <- initial
	w.publish = func(s apc.Snapshot) {
		runctx.SendOrDone(ctx, "snapshot watcher", w.logger, updates, s)
	}
	w.logger.Info("watching snapshot file", logging.Field("path", w.path))

	go func() {
		defer close(updates)
		defer watcher.Close()

		rescan := time.NewTicker(w.opts.RescanPeriod)
		defer rescan.Stop()

		for {
			select {
			case <-ctx.Done():
				w.logger.Debug("stopping snapshot watcher: context canceled")
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				w.handleWatcherEvent(event)
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				w.logger.Warn("watcher error", logging.Err(err))
			case <-rescan.C:
				w.reload()
			}
		}
	}()

	return updates, nil
}

func (w *Watcher) handleWatcherEvent(event fsnotify.Event) {
	if filepath.Clean(event.Name) != w.path {
		return
	}
	w.logger.Debugf("fsnotify event: op=%s path=%s", event.Op.String(), event.Name)
	if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) != 0 {
		w.reload()
	}
}

func (w *Watcher) reload() {
	data, err := os.ReadFile(w.path)
	if err != nil {
		w.logger.Debug("snapshot file not readable", logging.Err(err))
		return
	}
	if bytes.Equal(data, w.last) {
		return
	}
	snapshot, err := apc.DecodeSnapshot(data)
	if err != nil {
		// Editors often save in several writes; keep the last good content.
		w.logger.Warn("ignoring malformed snapshot file", logging.Field("path", w.path), logging.Err(err))
		return
	}
	w.last = data
	w.logger.Debug("snapshot file changed", logging.Field("path", w.path))
	if w.publish != nil {
		w.publish(snapshot)
	}
}

func (w *Watcher) load() (apc.Snapshot, error) {
	data, err := os.ReadFile(w.path)
	if err != nil {
		return apc.Snapshot{}, fmt.Errorf("read snapshot file: %w", err)
	}
	snapshot, err := apc.DecodeSnapshot(data)
	if err != nil {
		return apc.Snapshot{}, err
	}
	w.last = data
	return snapshot, nil
}
