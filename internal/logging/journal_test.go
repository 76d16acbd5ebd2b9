package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoggerDebugReachesJournalButNotSubscribersWhenDisabled(t *testing.T) {
	tmp := t.TempDir()
	logger := New(false)
	logger.SetTerminalOutputEnabled(false)
	if err := logger.EnableFilePersistenceIn(tmp, 0); err != nil {
		t.Fatalf("EnableFilePersistenceIn() error = %v", err)
	}

	var published []string
	unsubscribe := logger.Subscribe(func(e Event) {
		published = append(published, e.Message)
	})
	logger.Debug("hidden detail", Action("breaker"))
	logger.Info("visible")
	unsubscribe()
	logger.Info("after unsubscribe")
	if err := logger.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	if len(published) != 1 || published[0] != "visible" {
		t.Fatalf("published = %v", published)
	}
	data, err := os.ReadFile(filepath.Join(tmp, journalName))
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if !strings.Contains(string(data), `"msg":"hidden detail","action":"breaker"`) {
		t.Fatalf("debug event missing from journal: %s", data)
	}
}

func TestLoggerTerminalOutput(t *testing.T) {
	var buf bytes.Buffer
	logger := New(true)
	logger.color = false
	logger.out = &buf

	logger.Debug("snapshot received", Field("channels", 3))
	logger.SetTerminalOutputEnabled(false)
	logger.Info("hidden while the panel owns the screen")

	got := buf.String()
	if !strings.Contains(got, "DEBUG snapshot received channels=3") {
		t.Fatalf("terminal output = %q", got)
	}
	if strings.Contains(got, "hidden") {
		t.Fatalf("terminal output after disable = %q", got)
	}
}

func TestDefaultLogDirPathSuffix(t *testing.T) {
	path, err := DefaultLogDirPath()
	if err != nil {
		t.Fatalf("DefaultLogDirPath() error = %v", err)
	}
	if got, want := path, filepath.Join("apc-panel", "logs"); !strings.HasSuffix(got, want) {
		t.Fatalf("DefaultLogDirPath() = %q, want suffix %q", got, want)
	}
}

func TestJournalRollsOverAndKeepsBackups(t *testing.T) {
	tmp := t.TempDir()
	j, err := openJournal(tmp, 180)
	if err != nil {
		t.Fatalf("openJournal() error = %v", err)
	}

	event := Event{
		Time:    time.Unix(1700000000, 123456789),
		Level:   slog.LevelDebug,
		Message: "snapshot received",
		Fields:  []Attr{{Key: "snapshot.body", Value: "control-panel"}, {Key: "snapshot.channels", Value: int64(3)}},
	}
	for i := 0; i < 12; i++ {
		if err := j.Write(event); err != nil {
			t.Fatalf("Write() error = %v", err)
		}
	}
	if err := j.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if err := j.Write(event); err != os.ErrClosed {
		t.Fatalf("Write() after Close err = %v, want os.ErrClosed", err)
	}

	entries, err := os.ReadDir(tmp)
	if err != nil {
		t.Fatalf("ReadDir() error = %v", err)
	}
	names := map[string]bool{}
	for _, entry := range entries {
		names[entry.Name()] = true
	}
	for _, want := range []string{"panel.jsonl", "panel.1.jsonl", "panel.2.jsonl", "panel.3.jsonl"} {
		if !names[want] {
			t.Fatalf("missing %s in %v", want, names)
		}
	}
	if len(names) != journalBackups+1 {
		t.Fatalf("journal files = %v", names)
	}

	for name := range names {
		data, err := os.ReadFile(filepath.Join(tmp, name))
		if err != nil {
			t.Fatalf("ReadFile(%q) error = %v", name, err)
		}
		for _, line := range strings.Split(strings.TrimSpace(string(data)), "\n") {
			var decoded map[string]any
			if err := json.Unmarshal([]byte(line), &decoded); err != nil {
				t.Fatalf("invalid json line %q: %v", line, err)
			}
			if decoded["level"] != "DEBUG" || decoded["snapshot.channels"] != float64(3) {
				t.Fatalf("decoded line = %#v", decoded)
			}
		}
	}
}

func TestJournalLinePrefixesReservedKeys(t *testing.T) {
	line, err := encodeJournalLine(Event{
		Time:    time.Unix(0, 0),
		Level:   slog.LevelInfo,
		Message: "status changed",
		Fields:  []Attr{{Key: "msg", Value: "shadow"}, {Key: "from", Value: "Connecting"}},
	})
	if err != nil {
		t.Fatalf("encodeJournalLine() error = %v", err)
	}
	want := `{"time":"1970-01-01T00:00:00Z","level":"INFO","msg":"status changed","field.msg":"shadow","from":"Connecting"}` + "\n"
	if string(line) != want {
		t.Fatalf("encodeJournalLine() = %s, want %s", line, want)
	}
}

func TestLoggerCloseStopsFilePersistence(t *testing.T) {
	tmp := t.TempDir()
	logger := New(true)
	logger.SetTerminalOutputEnabled(false)
	if err := logger.EnableFilePersistenceIn(tmp, 1024); err != nil {
		t.Fatalf("EnableFilePersistenceIn() error = %v", err)
	}

	logger.Info("before close")
	if err := logger.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	logger.Info("after close")

	data, err := os.ReadFile(filepath.Join(tmp, journalName))
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if !strings.Contains(string(data), "before close") || strings.Contains(string(data), "after close") {
		t.Fatalf("journal = %s", data)
	}
}
