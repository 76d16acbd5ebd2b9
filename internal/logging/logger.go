package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
	"sync/atomic"
	"time"
)

// Event is one log record as the sinks and UI subscribers see it.
type Event struct {
	Time    time.Time
	Level   slog.Level
	Message string
	Fields  []Attr
}

// Value returns the first field with key.
func (e Event) Value(key string) (any, bool) {
	for _, attr := range e.Fields {
		if attr.Key == key {
			return attr.Value, true
		}
	}
	return nil, false
}

type subscriber struct {
	id int
	fn func(Event)
}

// Logger writes every event to the journal when one is open. Debug events
// reach the terminal and subscribers only while debug output is on.
type Logger struct {
	debug    atomic.Bool
	terminal atomic.Bool
	color    bool
	out      io.Writer

	mu      sync.RWMutex
	journal *journal
	subs    []subscriber
	nextSub int
}

func New(debug bool) *Logger {
	l := &Logger{color: colorTerminal(), out: os.Stderr}
	l.debug.Store(debug)
	l.terminal.Store(true)
	return l
}

func (l *Logger) SetDebugEnabled(enabled bool) {
	if l != nil {
		l.debug.Store(enabled)
	}
}

func (l *Logger) DebugEnabled() bool {
	return l != nil && l.debug.Load()
}

// SetTerminalOutputEnabled toggles stderr output. The terminal panel turns
// it off while it owns the screen.
func (l *Logger) SetTerminalOutputEnabled(enabled bool) {
	if l != nil {
		l.terminal.Store(enabled)
	}
}

// EnableFilePersistence opens the journal under DefaultLogDirPath.
func (l *Logger) EnableFilePersistence(maxBytes int64) error {
	if l == nil {
		return nil
	}
	dir, err := DefaultLogDirPath()
	if err != nil {
		return err
	}
	return l.EnableFilePersistenceIn(dir, maxBytes)
}

func (l *Logger) EnableFilePersistenceIn(dir string, maxBytes int64) error {
	if l == nil {
		return nil
	}
	j, err := openJournal(dir, maxBytes)
	if err != nil {
		return fmt.Errorf("open log journal: %w", err)
	}
	l.mu.Lock()
	previous := l.journal
	l.journal = j
	l.mu.Unlock()
	return previous.Close()
}

func (l *Logger) Close() error {
	if l == nil {
		return nil
	}
	l.mu.Lock()
	j := l.journal
	l.journal = nil
	l.mu.Unlock()
	return j.Close()
}

func (l *Logger) Debugf(format string, args ...any) {
	l.Debug(fmt.Sprintf(format, args...))
}

func (l *Logger) Debug(msg string, fields ...slog.Attr) {
	l.record(slog.LevelDebug, msg, fields)
}

func (l *Logger) Info(msg string, fields ...slog.Attr) {
	l.record(slog.LevelInfo, msg, fields)
}

func (l *Logger) Warn(msg string, fields ...slog.Attr) {
	l.record(slog.LevelWarn, msg, fields)
}

func (l *Logger) Error(msg string, fields ...slog.Attr) {
	l.record(slog.LevelError, msg, fields)
}

// Subscribe registers fn for every published event and returns the
// matching unsubscribe func.
func (l *Logger) Subscribe(fn func(Event)) func() {
	if l == nil {
		panic("logging.Logger.Subscribe: logger must not be nil")
	}
	if fn == nil {
		panic("logging.Logger.Subscribe: callback must not be nil")
	}
	l.mu.Lock()
	id := l.nextSub
	l.nextSub++
	l.subs = append(l.subs, subscriber{id: id, fn: fn})
	l.mu.Unlock()

	return func() {
		l.mu.Lock()
		defer l.mu.Unlock()
		for i, sub := range l.subs {
			if sub.id == id {
				l.subs = append(l.subs[:i:i], l.subs[i+1:]...)
				return
			}
		}
	}
}

func (l *Logger) record(level slog.Level, msg string, fields []slog.Attr) {
	if l == nil {
		return
	}
	event := Event{
		Time:    time.Now(),
		Level:   level,
		Message: msg,
		Fields:  flattenAttrs("", fields, nil),
	}

	l.mu.RLock()
	j := l.journal
	subs := l.subs
	l.mu.RUnlock()

	_ = j.Write(event)
	if level <= slog.LevelDebug && !l.debug.Load() {
		return
	}
	if l.terminal.Load() {
		l.writeTerminal(event)
	}
	for _, sub := range subs {
		sub.fn(event)
	}
}

func (l *Logger) writeTerminal(event Event) {
	line := FormatEventLine(event)
	if l.color {
		line = FormatEventANSI(event)
	}
	_, _ = io.WriteString(l.out, line)
}
