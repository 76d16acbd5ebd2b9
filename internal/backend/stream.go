package backend

import (
	"context"
	"io"
	"net/http"

	"apc-panel/internal/apc"
	"apc-panel/internal/logging"
)

const EventSnapshot = "snapshot"

type StreamHandlers struct {
	OnConnected func()
	OnSnapshot  func(apc.Snapshot)
	OnUnhandled func(Event)
}

// RunStream holds one events connection open until the server closes it,
// the transport fails, or ctx is canceled. A clean close returns io.EOF.
func (c *Client) RunStream(ctx context.Context, handlers StreamHandlers) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoints.EventsURL, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "text/event-stream")
	req.Header.Set("Cache-Control", "no-cache")
	c.authorize(req)

	// The stream outlives any whole-request timeout.
	streamHTTP := *c.http
	streamHTTP.Timeout = 0

	resp, err := streamHTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= http.StatusBadRequest {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		c.logger.Warn("event stream connect failed",
			logging.Field("status", resp.Status),
			logging.Payload("response", data),
		)
		return &HTTPStatusError{StatusCode: resp.StatusCode, Status: resp.Status}
	}
	if handlers.OnConnected != nil {
		handlers.OnConnected()
	}

	done := make(chan struct{})
	defer close(done)
	events := make(chan Event, 16)
	streamErrs := make(chan error, 1)
	go readSSEEvents(resp.Body, events, streamErrs, done)

	for {
		select {
		case <-ctx.Done():
			c.logger.Debug("stopping event stream: context canceled", logging.Err(ctx.Err()))
			return ctx.Err()
		case event, ok := <-events:
			if !ok {
				return <-streamErrs
			}
			if event.Name != EventSnapshot {
				if handlers.OnUnhandled != nil {
					handlers.OnUnhandled(event)
				}
				continue
			}
			snapshot, decodeErr := apc.DecodeSnapshot(event.Data)
			if decodeErr != nil {
				// One bad frame does not end the stream.
				c.logger.Warn("dropping undecodable snapshot event",
					logging.Err(decodeErr),
					logging.Payload("data", event.Data),
				)
				continue
			}
			if handlers.OnSnapshot != nil {
				handlers.OnSnapshot(snapshot)
			}
		}
	}
}
