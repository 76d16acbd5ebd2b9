package runtime

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"apc-panel/internal/apc"
	"apc-panel/internal/config"
	"apc-panel/internal/logging"
)

func TestController_SnapshotFileLifecycle(t *testing.T) {
	path := filepath.Join(t.TempDir(), "apc.json")
	if err := os.WriteFile(path, []byte(`{"failTime": 5, "locked": false}`), 0o600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	logger := logging.New(false)
	logger.SetTerminalOutputEnabled(false)

	snapshots := make(chan apc.Snapshot, 2)
	exited := make(chan error, 1)
	c := NewController(context.Background())
	err := c.Start(config.Options{SnapshotFile: path}, logger, StartHooks{
		OnSnapshot: func(s apc.Snapshot) { snapshots <- s },
		OnExit:     func(err error) { exited <- err },
	})
	if err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if err := c.Start(config.Options{SnapshotFile: path}, logger, StartHooks{}); err == nil {
		t.Fatalf("second Start() should fail while running")
	}

	var snapshot apc.Snapshot
	select {
	case snapshot = <-snapshots:
	case <-time.After(3 * time.Second):
		t.Fatalf("no snapshot")
	}
	view := apc.Build(snapshot)
	if view.Notice == nil || view.Notice.Button == nil {
		t.Fatalf("failure view missing reboot control: %#v", view)
	}
	if err := c.Dispatch(context.Background(), *view.Notice.Button); err != nil {
		t.Fatalf("Dispatch() error = %v", err)
	}

	if !c.StopAndWait(3 * time.Second) {
		t.Fatalf("StopAndWait() timed out")
	}
	if err := <-exited; err != nil {
		t.Fatalf("OnExit err = %v", err)
	}
	if c.IsRunning() || c.Dispatcher() != nil {
		t.Fatalf("controller still reports running")
	}
	if err := c.Dispatch(context.Background(), *view.Notice.Button); err == nil {
		t.Fatalf("Dispatch() after stop should fail")
	}
}

func TestNewService_RequiresBackendOrFile(t *testing.T) {
	logger := logging.New(false)
	logger.SetTerminalOutputEnabled(false)
	if _, err := NewService(config.Options{}, logger); err == nil {
		t.Fatalf("NewService() expected validation error")
	}
	if _, err := NewService(config.Options{BaseURL: "ftp://x", APC: "bridge"}, logger); err == nil {
		t.Fatalf("NewService() expected endpoint error")
	}
}
