package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"apc-panel/internal/apc"
	"apc-panel/internal/config"
	"apc-panel/internal/logging"
)

const (
	reconnectDelay    = time.Second
	reconnectMaxDelay = 15 * time.Second
	maxSnapshotBytes  = 1 << 20
)

// Client talks to the simulation backend for a single APC.
type Client struct {
	http      *http.Client
	token     string
	endpoints config.APIEndpoints
	logger    *logging.Logger
}

func New(httpClient *http.Client, token string, endpoints config.APIEndpoints, logger *logging.Logger) *Client {
	if logger == nil {
		panic("backend.New: logger must not be nil")
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{http: httpClient, token: strings.TrimSpace(token), endpoints: endpoints, logger: logger}
}

func (c *Client) authorize(req *http.Request) {
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
}

func (c *Client) FetchSnapshot(ctx context.Context) (apc.Snapshot, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoints.SnapshotURL, nil)
	if err != nil {
		return apc.Snapshot{}, err
	}
	req.Header.Set("Accept", "application/json")
	c.authorize(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return apc.Snapshot{}, err
	}
	defer resp.Body.Close()
	c.logger.Debugf("GET %s -> %s", c.endpoints.SnapshotURL, resp.Status)

	data, _ := io.ReadAll(io.LimitReader(resp.Body, maxSnapshotBytes))
	if resp.StatusCode >= http.StatusBadRequest {
		c.logger.Warn("snapshot request failed",
			logging.Field("status", resp.Status),
			logging.Payload("response", data),
		)
		return apc.Snapshot{}, &HTTPStatusError{StatusCode: resp.StatusCode, Status: resp.Status}
	}
	return apc.DecodeSnapshot(data)
}

type actRequest struct {
	Action string          `json:"action"`
	Params json.RawMessage `json:"params"`
}

// Act sends one user action. It is never retried; a lost action is
// reported to the caller and the next snapshot shows the real state.
func (c *Client) Act(ctx context.Context, action string, params json.RawMessage) error {
	if len(params) == 0 {
		params = json.RawMessage("null")
	}
	body, err := json.Marshal(actRequest{Action: action, Params: params})
	if err != nil {
		return err
	}
	c.logger.Debug("sending action",
		logging.Action(action),
		logging.Payload("params", params),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoints.ActURL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	c.authorize(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	c.logger.Debugf("POST %s -> %s", c.endpoints.ActURL, resp.Status)

	if resp.StatusCode >= http.StatusBadRequest {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		c.logger.Warn("action rejected",
			logging.Action(action),
			logging.Field("status", resp.Status),
			logging.Payload("response", data),
		)
		return fmt.Errorf("action %s rejected: %w", action, &HTTPStatusError{StatusCode: resp.StatusCode, Status: resp.Status})
	}
	return nil
}

var _ apc.Dispatcher = (*Client)(nil)
