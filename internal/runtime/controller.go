package runtime

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"apc-panel/internal/apc"
	"apc-panel/internal/config"
	"apc-panel/internal/logging"
)

type Controller struct {
	rootCtx    context.Context
	mu         sync.Mutex
	cancel     context.CancelFunc
	running    bool
	dispatcher apc.Dispatcher
	wg         sync.WaitGroup
}

type StartHooks struct {
	OnSnapshot func(apc.Snapshot)
	OnStatus   func(string)
	OnExit     func(error)
}

func NewController(rootCtx context.Context) *Controller {
	if rootCtx == nil {
		rootCtx = context.Background()
	}
	return &Controller{rootCtx: rootCtx}
}

func (c *Controller) Start(opts config.Options, logger *logging.Logger, hooks StartHooks) error {
	if logger == nil {
		panic("runtime.Controller.Start: logger must not be nil")
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.running {
		return fmt.Errorf("panel is already running")
	}
	logger.Debug("runtime start requested",
		logging.APC(opts.APC),
		logging.Field("snapshot_file", opts.SnapshotFile),
	)

	service, err := NewServiceWithHooks(opts, logger, hooks)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(c.rootCtx)
	c.cancel = cancel
	c.running = true
	c.dispatcher = service.Dispatcher()
	c.wg.Go(func() {
		defer cancel()
		runErr := service.RunContext(ctx)
		if errors.Is(runErr, context.Canceled) || errors.Is(runErr, context.DeadlineExceeded) {
			logger.Debug("runtime service exited due to context cancellation", logging.Err(runErr))
		} else if runErr != nil {
			logger.Warn("runtime service exited with error", logging.Err(runErr))
		} else {
			logger.Info("runtime service exited")
		}
		c.mu.Lock()
		c.running = false
		c.cancel = nil
		c.dispatcher = nil
		c.mu.Unlock()

		if hooks.OnExit != nil {
			hooks.OnExit(runErr)
		}
	})

	return nil
}

// Dispatcher returns the action target of the running session, or nil
// when nothing is running.
func (c *Controller) Dispatcher() apc.Dispatcher {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.dispatcher
}

// Dispatch sends a panel button's action through the running session.
func (c *Controller) Dispatch(ctx context.Context, button apc.Button) error {
	d := c.Dispatcher()
	if d == nil {
		return errors.New("panel is not running")
	}
	return apc.Dispatch(ctx, d, button)
}

func (c *Controller) Stop() {
	c.mu.Lock()
	cancel := c.cancel
	c.mu.Unlock()
	if cancel != nil {
		cancel()
	}
}

func (c *Controller) Wait(timeout time.Duration) bool {
	waitDone := make(chan struct{})
	go func() {
		c.wg.Wait()
		close(waitDone)
	}()
	if timeout <= 0 {
		<-waitDone
		return true
	}
	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case <-waitDone:
		return true
	case <-timer.C:
		return false
	}
}

func (c *Controller) StopAndWait(timeout time.Duration) bool {
	c.Stop()
	return c.Wait(timeout)
}

func (c *Controller) IsRunning() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.running
}
