package source

import (
	"context"
	"encoding/json"

	"apc-panel/internal/apc"
	"apc-panel/internal/logging"
)

// LogDispatcher records actions from a panel with no backend behind it.
type LogDispatcher struct {
	Logger *logging.Logger
}

func (d LogDispatcher) Act(_ context.Context, action string, params json.RawMessage) error {
	d.Logger.Info("action (offline, not sent)",
		logging.Action(action),
		logging.Payload("params", params),
	)
	return nil
}

var _ apc.Dispatcher = LogDispatcher{}
