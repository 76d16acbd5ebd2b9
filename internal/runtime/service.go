package runtime

import (
	"context"
	"net/http"
	"time"

	"apc-panel/internal/apc"
	"apc-panel/internal/app"
	"apc-panel/internal/backend"
	"apc-panel/internal/config"
	"apc-panel/internal/logging"
)

const defaultHTTPTimeout = 10 * time.Second

type Service interface {
	RunContext(ctx context.Context) error
	Dispatcher() apc.Dispatcher
}

func NewService(opts config.Options, logger *logging.Logger) (Service, error) {
	return NewServiceWithHooks(opts, logger, StartHooks{})
}

func NewServiceWithHooks(opts config.Options, logger *logging.Logger, hooks StartHooks) (Service, error) {
	if logger == nil {
		panic("runtime.NewServiceWithHooks: logger must not be nil")
	}
	if err := config.ValidateRequired(opts); err != nil {
		return nil, err
	}
	callbacks := app.Callbacks{
		OnSnapshot:     hooks.OnSnapshot,
		OnStatusChange: hooks.OnStatus,
	}
	if opts.OfflineMode() {
		return app.New(opts, nil, logger, callbacks), nil
	}

	endpoints, err := config.BuildEndpoints(opts.BaseURL, opts.APC)
	if err != nil {
		return nil, err
	}
	logger.Debug("constructed API endpoints",
		logging.Field("snapshot_url", endpoints.SnapshotURL),
		logging.Field("events_url", endpoints.EventsURL),
		logging.Field("act_url", endpoints.ActURL),
	)

	httpClient := &http.Client{Timeout: defaultHTTPTimeout}
	return app.New(opts, backend.New(httpClient, opts.Token, endpoints, logger), logger, callbacks), nil
}
