package backend

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/cenkalti/backoff/v5"

	"apc-panel/internal/apc"
	"apc-panel/internal/logging"
	"apc-panel/internal/runctx"
)

type SyncHooks struct {
	OnConnected    func()
	OnDisconnected func(error)
}

// StreamSnapshots keeps the events stream alive and publishes every
// snapshot it carries. Unexpected disconnects trigger a direct fetch so the
// panel does not go stale while reconnects back off. Auth failures stop the
// loop. The returned channel closes when ctx ends or retrying gives up.
func (c *Client) StreamSnapshots(ctx context.Context, hooks SyncHooks) <-chan apc.Snapshot {
	updates := make(chan apc.Snapshot, 1)

	publish := func(snapshot apc.Snapshot) {
		runctx.SendOrDone(ctx, "snapshot stream", c.logger, updates, snapshot)
	}

	go func() {
		defer close(updates)

		fallbackFetch := func() {
			c.logger.Debug("running fallback snapshot fetch")
			snapshot, err := c.FetchSnapshot(ctx)
			if err != nil {
				c.logger.Warn("fallback snapshot fetch failed", logging.Err(err))
				return
			}
			publish(snapshot)
		}

		retry := backoff.NewExponentialBackOff()
		retry.InitialInterval = reconnectDelay
		retry.MaxInterval = reconnectMaxDelay
		retry.Reset()

		_, retryErr := backoff.Retry(ctx, func() (struct{}, error) {
			err := c.RunStream(ctx, StreamHandlers{
				OnConnected: func() {
					retry.Reset()
					c.logger.Info("event stream connected", logging.Field("url", c.endpoints.EventsURL))
					if hooks.OnConnected != nil {
						hooks.OnConnected()
					}
				},
				OnSnapshot: publish,
				OnUnhandled: func(event Event) {
					c.logger.Debug("ignoring stream event",
						logging.Field("event", event.Name),
						logging.Payload("data", event.Data),
					)
				},
			})
			if err == nil {
				err = io.EOF
			}
			if ctxErr := ctx.Err(); ctxErr != nil {
				return struct{}{}, backoff.Permanent(ctxErr)
			}
			if hooks.OnDisconnected != nil {
				hooks.OnDisconnected(err)
			}
			if IsUnauthorized(err) {
				return struct{}{}, backoff.Permanent(err)
			}
			if errors.Is(err, io.EOF) {
				c.logger.Debug("event stream closed by server, reconnecting")
				return struct{}{}, err
			}

			c.logger.Warn("event stream disconnected", logging.Err(err))
			fallbackFetch()
			return struct{}{}, err
		},
			backoff.WithBackOff(retry),
			backoff.WithMaxElapsedTime(0),
			backoff.WithNotify(func(err error, next time.Duration) {
				c.logger.Debug("retrying event stream",
					logging.Err(err),
					logging.Field("next_retry", next.String()))
			}),
		)
		if retryErr != nil && !errors.Is(retryErr, context.Canceled) && !errors.Is(retryErr, context.DeadlineExceeded) {
			c.logger.Warn("snapshot stream stopped", logging.Err(retryErr))
			return
		}
		c.logger.Debug("snapshot stream stopped", logging.Err(ctx.Err()))
	}()

	return updates
}
