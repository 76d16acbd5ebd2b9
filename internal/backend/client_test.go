package backend

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"sync/atomic"
	"testing"

	"apc-panel/internal/config"
	"apc-panel/internal/logging"
)

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

func testEndpoints() config.APIEndpoints {
	return config.APIEndpoints{
		BaseURL:     "https://example.test/api",
		SnapshotURL: "https://example.test/api/apc/bridge",
		EventsURL:   "https://example.test/api/apc/bridge/events",
		ActURL:      "https://example.test/api/apc/bridge/act",
	}
}

func testLogger() *logging.Logger {
	logger := logging.New(false)
	logger.SetTerminalOutputEnabled(false)
	return logger
}

func textResponse(r *http.Request, code int, status string, body string) *http.Response {
	return &http.Response{
		StatusCode: code,
		Status:     status,
		Header:     make(http.Header),
		Body:       io.NopCloser(strings.NewReader(body)),
		Request:    r,
	}
}

const bridgeSnapshot = `{"locked":false,"externalPower":2,"chargingStatus":1,"powerCellStatus":64,"totalLoad":320,
"powerChannels":[{"title":"Equipment","status":2,"powerLoad":320,"topicParams":{"auto":{"eqp":3},"on":{"eqp":2},"off":{"eqp":1}}}]}`

func TestFetchSnapshot_SetsHeadersAndDecodes(t *testing.T) {
	httpClient := &http.Client{
		Transport: roundTripFunc(func(r *http.Request) (*http.Response, error) {
			if r.Method != http.MethodGet || r.URL.Path != "/api/apc/bridge" {
				t.Fatalf("request = %s %s", r.Method, r.URL.Path)
			}
			if got := r.Header.Get("Authorization"); got != "Bearer tok" {
				t.Fatalf("Authorization = %q", got)
			}
			return textResponse(r, http.StatusOK, "200 OK", bridgeSnapshot), nil
		}),
	}

	c := New(httpClient, " tok ", testEndpoints(), testLogger())
	snapshot, err := c.FetchSnapshot(context.Background())
	if err != nil {
		t.Fatalf("FetchSnapshot() error = %v", err)
	}
	if snapshot.ExternalPower != 2 || len(snapshot.PowerChannels) != 1 || snapshot.PowerChannels[0].Title != "Equipment" {
		t.Fatalf("snapshot = %#v", snapshot)
	}
}

func TestFetchSnapshot_UnauthorizedTypedError(t *testing.T) {
	httpClient := &http.Client{
		Transport: roundTripFunc(func(r *http.Request) (*http.Response, error) {
			return textResponse(r, http.StatusUnauthorized, "401 Unauthorized", `{"message":"bad token"}`), nil
		}),
	}
	c := New(httpClient, "tok", testEndpoints(), testLogger())
	_, err := c.FetchSnapshot(context.Background())
	if !IsUnauthorized(err) {
		t.Fatalf("FetchSnapshot() error = %v, want unauthorized", err)
	}
}

func TestAct_PostsActionAndParams(t *testing.T) {
	httpClient := &http.Client{
		Transport: roundTripFunc(func(r *http.Request) (*http.Response, error) {
			if r.Method != http.MethodPost || r.URL.Path != "/api/apc/bridge/act" {
				t.Fatalf("request = %s %s", r.Method, r.URL.Path)
			}
			if got := r.Header.Get("Content-Type"); got != "application/json" {
				t.Fatalf("Content-Type = %q", got)
			}
			var body struct {
				Action string          `json:"action"`
				Params json.RawMessage `json:"params"`
			}
			if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
				t.Fatalf("decode body: %v", err)
			}
			if body.Action != "channel" || string(body.Params) != `{"eqp":1}` {
				t.Fatalf("body = %s %s", body.Action, body.Params)
			}
			return textResponse(r, http.StatusNoContent, "204 No Content", ""), nil
		}),
	}
	c := New(httpClient, "tok", testEndpoints(), testLogger())
	if err := c.Act(context.Background(), "channel", json.RawMessage(`{"eqp":1}`)); err != nil {
		t.Fatalf("Act() error = %v", err)
	}
}

func TestAct_NilParamsSendNull(t *testing.T) {
	httpClient := &http.Client{
		Transport: roundTripFunc(func(r *http.Request) (*http.Response, error) {
			data, _ := io.ReadAll(r.Body)
			if string(data) != `{"action":"breaker","params":null}` {
				t.Fatalf("body = %s", data)
			}
			return textResponse(r, http.StatusOK, "200 OK", ""), nil
		}),
	}
	c := New(httpClient, "", testEndpoints(), testLogger())
	if err := c.Act(context.Background(), "breaker", nil); err != nil {
		t.Fatalf("Act() error = %v", err)
	}
}

func TestAct_FailureIsNotRetried(t *testing.T) {
	var calls atomic.Int32
	httpClient := &http.Client{
		Transport: roundTripFunc(func(r *http.Request) (*http.Response, error) {
			calls.Add(1)
			return textResponse(r, http.StatusInternalServerError, "500 Internal Server Error", `{"error":"boom"}`), nil
		}),
	}
	c := New(httpClient, "tok", testEndpoints(), testLogger())
	err := c.Act(context.Background(), "reboot", nil)
	if err == nil {
		t.Fatalf("Act() expected error")
	}
	var statusErr *HTTPStatusError
	if !errors.As(err, &statusErr) || statusErr.StatusCode != http.StatusInternalServerError {
		t.Fatalf("Act() error = %v", err)
	}
	if calls.Load() != 1 {
		t.Fatalf("calls = %d, want 1", calls.Load())
	}
}

func TestIsUnauthorized(t *testing.T) {
	if !IsUnauthorized(&HTTPStatusError{StatusCode: http.StatusForbidden}) {
		t.Fatalf("403 should count as unauthorized")
	}
	if IsUnauthorized(&HTTPStatusError{StatusCode: http.StatusBadGateway}) {
		t.Fatalf("502 should not count as unauthorized")
	}
	if IsUnauthorized(errors.New("plain")) {
		t.Fatalf("plain error should not count as unauthorized")
	}
}
