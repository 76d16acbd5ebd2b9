package logging

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"apc-panel/internal/apc"
)

// Keys the formatters know about. They lead every line in this order, ahead
// of ad hoc fields, so lines about the same APC and action line up.
const (
	KeyAPC    = "apc"
	KeyAction = "action"
	KeyButton = "button"
	KeyStatus = "status"
	KeyError  = "error"
)

var leadingKeys = []string{KeyAPC, KeyAction, KeyButton, KeyStatus, KeyError}

// Raw request and response bodies. They trail the line and are never quoted.
var payloadKeys = map[string]bool{
	"response": true,
	"data":     true,
	"params":   true,
}

const payloadClip = 240

// Attr is one resolved field of an Event. Group fields are flattened into
// dotted keys.
type Attr struct {
	Key   string
	Value any
}

func Field(key string, value any) slog.Attr {
	return slog.Any(key, value)
}

func Err(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "<nil>")
	}
	return slog.String(KeyError, err.Error())
}

func APC(ref string) slog.Attr {
	return slog.String(KeyAPC, ref)
}

func Action(name string) slog.Attr {
	return slog.String(KeyAction, name)
}

func Button(button apc.Button) slog.Attr {
	return slog.String(KeyButton, button.ID)
}

// Payload attaches a raw HTTP or SSE body. JSON bodies are compacted onto a
// single line and everything is clipped.
func Payload(key string, raw []byte) slog.Attr {
	return slog.String(key, compactPayload(raw))
}

// Snapshot summarizes what the panel will show for s.
func Snapshot(s apc.Snapshot) slog.Attr {
	return slog.Group("snapshot",
		slog.String("body", apc.SelectBody(s).String()),
		slog.Int("channels", len(s.PowerChannels)),
		slog.Float64("cell", s.PowerCellStatus),
		slog.Float64("load", s.TotalLoad),
		slog.Bool("locked", s.InterfaceLocked()),
	)
}

func compactPayload(raw []byte) string {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return "<empty>"
	}
	var quoted string
	if err := json.Unmarshal(trimmed, &quoted); err == nil {
		trimmed = bytes.TrimSpace([]byte(quoted))
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, trimmed); err == nil {
		trimmed = buf.Bytes()
	}
	text := strings.Join(strings.Fields(string(trimmed)), " ")
	if text == "" {
		return "<empty>"
	}
	if len(text) > payloadClip {
		return text[:payloadClip] + "..."
	}
	return text
}

func flattenAttrs(prefix string, attrs []slog.Attr, out []Attr) []Attr {
	for _, attr := range attrs {
		if attr.Key == "" {
			continue
		}
		key := attr.Key
		if prefix != "" {
			key = prefix + "." + key
		}
		value := attr.Value.Resolve()
		if value.Kind() == slog.KindGroup {
			out = flattenAttrs(key, value.Group(), out)
			continue
		}
		out = append(out, Attr{Key: key, Value: plainValue(value.Any())})
	}
	return out
}

func plainValue(value any) any {
	switch v := value.(type) {
	case nil:
		return nil
	case error:
		return v.Error()
	case []byte:
		return string(v)
	case slog.Level:
		return v.String()
	case fmt.Stringer:
		return v.String()
	default:
		return v
	}
}

// orderAttrs puts the well-known keys first and payloads last, keeping call
// order within each group.
func orderAttrs(attrs []Attr) []Attr {
	if len(attrs) < 2 {
		return attrs
	}
	out := make([]Attr, 0, len(attrs))
	used := make([]bool, len(attrs))
	for _, key := range leadingKeys {
		for i, attr := range attrs {
			if !used[i] && attr.Key == key {
				out = append(out, attr)
				used[i] = true
			}
		}
	}
	var payloads []Attr
	for i, attr := range attrs {
		if used[i] {
			continue
		}
		if payloadKeys[attr.Key] {
			payloads = append(payloads, attr)
			continue
		}
		out = append(out, attr)
	}
	return append(out, payloads...)
}
