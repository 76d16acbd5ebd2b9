package apc

import (
	"context"
	"encoding/json"
)

const (
	ActionBreaker  = "breaker"
	ActionCharge   = "charge"
	ActionChannel  = "channel"
	ActionCover    = "cover"
	ActionOverload = "overload"
	ActionReboot   = "reboot"
	ActionHack     = "hack"
)

// Action is a named message for the backend. Payload is nil for actions that
// carry none.
type Action struct {
	Name    string
	Payload json.RawMessage
}

// Dispatcher delivers actions to whatever owns the simulation. Callers treat
// it as fire-and-forget: the returned error is only for logging.
type Dispatcher interface {
	Act(ctx context.Context, name string, payload json.RawMessage) error
}

type DispatcherFunc func(ctx context.Context, name string, payload json.RawMessage) error

func (f DispatcherFunc) Act(ctx context.Context, name string, payload json.RawMessage) error {
	return f(ctx, name, payload)
}

// Dispatch sends a button's action, ignoring disabled buttons.
func Dispatch(ctx context.Context, d Dispatcher, button Button) error {
	if d == nil || button.Disabled || button.Action.Name == "" {
		return nil
	}
	return d.Act(ctx, button.Action.Name, button.Action.Payload)
}
