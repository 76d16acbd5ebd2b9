package logging

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

const (
	journalName       = "panel.jsonl"
	journalBackups    = 3
	defaultJournalMax = 2 * 1024 * 1024
)

// journal appends events as JSON lines to panel.jsonl. Past maxBytes the
// file rolls over to panel.1.jsonl, shifting older backups up to
// panel.3.jsonl; the oldest is dropped.
type journal struct {
	mu       sync.Mutex
	dir      string
	maxBytes int64
	file     *os.File
	size     int64
	closed   bool
}

func DefaultLogDirPath() (string, error) {
	root, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(root, "apc-panel", "logs"), nil
}

func openJournal(dir string, maxBytes int64) (*journal, error) {
	if maxBytes <= 0 {
		maxBytes = defaultJournalMax
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	j := &journal{dir: dir, maxBytes: maxBytes}
	if err := j.openLocked(); err != nil {
		return nil, err
	}
	if j.size >= j.maxBytes {
		if err := j.rollLocked(); err != nil {
			_ = j.file.Close()
			return nil, err
		}
	}
	return j, nil
}

func (j *journal) Write(event Event) error {
	if j == nil {
		return nil
	}
	line, err := encodeJournalLine(event)
	if err != nil {
		return err
	}

	j.mu.Lock()
	defer j.mu.Unlock()
	if j.closed {
		return os.ErrClosed
	}
	if j.size > 0 && j.size+int64(len(line)) > j.maxBytes {
		if err := j.rollLocked(); err != nil {
			return err
		}
	}
	n, err := j.file.Write(line)
	j.size += int64(n)
	return err
}

func (j *journal) Close() error {
	if j == nil {
		return nil
	}
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.closed {
		return nil
	}
	j.closed = true
	return j.file.Close()
}

func (j *journal) openLocked() error {
	f, err := os.OpenFile(filepath.Join(j.dir, journalName), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return err
	}
	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return err
	}
	j.file = f
	j.size = info.Size()
	return nil
}

func (j *journal) rollLocked() error {
	if err := j.file.Close(); err != nil {
		return err
	}
	for i := journalBackups - 1; i >= 1; i-- {
		from := backupPath(j.dir, i)
		if _, err := os.Stat(from); err == nil {
			if err := os.Rename(from, backupPath(j.dir, i+1)); err != nil {
				return err
			}
		}
	}
	if err := os.Rename(filepath.Join(j.dir, journalName), backupPath(j.dir, 1)); err != nil {
		return err
	}
	return j.openLocked()
}

func backupPath(dir string, n int) string {
	base := strings.TrimSuffix(journalName, ".jsonl")
	return filepath.Join(dir, fmt.Sprintf("%s.%d.jsonl", base, n))
}

// encodeJournalLine writes the fields flat next to time, level and msg,
// keeping their log order. Keys that collide with those three get a
// "field." prefix.
func encodeJournalLine(event Event) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(`{"time":`)
	if err := writeJSON(&buf, event.Time.UTC().Format(time.RFC3339Nano)); err != nil {
		return nil, err
	}
	buf.WriteString(`,"level":`)
	if err := writeJSON(&buf, strings.TrimSpace(LevelLabel(event.Level))); err != nil {
		return nil, err
	}
	buf.WriteString(`,"msg":`)
	if err := writeJSON(&buf, event.Message); err != nil {
		return nil, err
	}
	for _, attr := range event.Fields {
		key := attr.Key
		switch key {
		case "time", "level", "msg":
			key = "field." + key
		}
		buf.WriteByte(',')
		if err := writeJSON(&buf, key); err != nil {
			return nil, err
		}
		buf.WriteByte(':')
		if err := writeJSON(&buf, attr.Value); err != nil {
			if err := writeJSON(&buf, fmt.Sprintf("%v", attr.Value)); err != nil {
				return nil, err
			}
		}
	}
	buf.WriteString("}\n")
	return buf.Bytes(), nil
}

func writeJSON(buf *bytes.Buffer, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	buf.Write(data)
	return nil
}
