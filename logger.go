package kaboom

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

// LogKind distinguishes overlay entries.
type LogKind uint8

const (
	LogInfo  LogKind = iota // neutral message
	LogWarn                 // recoverable problem
	LogError                // missing resource or failed operation
)

// LogEntry is one line of the on-screen log.
type LogEntry struct {
	Kind LogKind
	Msg  string
	Time float64 // clock reading when logged, in seconds
}

// Logger writes to the console and keeps the most recent entries for the
// on-screen overlay. Entries expire after maxAge seconds of clock time and
// at most max entries are retained.
type Logger struct {
	console *log.Logger
	clock   func() float64

	max     int
	maxAge  float64
	entries []LogEntry
}

func newLogger(w io.Writer, conf LoggingConfig, clock func() float64) *Logger {
	if w == nil {
		w = os.Stderr
	}
	l := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.TimeOnly,
		Prefix:          "kaboom",
	})
	if lvl, err := log.ParseLevel(conf.Level); err == nil {
		l.SetLevel(lvl)
	}
	if conf.Max <= 0 {
		conf.Max = defaultLogMax
	}
	if conf.Time <= 0 {
		conf.Time = defaultLogTime
	}
	return &Logger{
		console: l,
		clock:   clock,
		max:     conf.Max,
		maxAge:  conf.Time,
		entries: make([]LogEntry, 0, conf.Max),
	}
}

// Console returns the underlying structured logger.
func (l *Logger) Console() *log.Logger { return l.console }

func (l *Logger) Debug(msg string, keyvals ...any) {
	l.console.Debug(msg, keyvals...)
}

func (l *Logger) Info(msg string, keyvals ...any) {
	l.console.Info(msg, keyvals...)
	l.push(LogInfo, msg, keyvals)
}

func (l *Logger) Warn(msg string, keyvals ...any) {
	l.console.Warn(msg, keyvals...)
	l.push(LogWarn, msg, keyvals)
}

func (l *Logger) Error(msg string, keyvals ...any) {
	l.console.Error(msg, keyvals...)
	l.push(LogError, msg, keyvals)
}

func (l *Logger) push(kind LogKind, msg string, keyvals []any) {
	if len(l.entries) == l.max {
		copy(l.entries, l.entries[1:])
		l.entries = l.entries[:len(l.entries)-1]
	}
	l.entries = append(l.entries, LogEntry{
		Kind: kind,
		Msg:  formatEntry(msg, keyvals),
		Time: l.now(),
	})
}

// prune drops entries older than maxAge.
func (l *Logger) prune() {
	now := l.now()
	n := 0
	for _, e := range l.entries {
		if now-e.Time <= l.maxAge {
			l.entries[n] = e
			n++
		}
	}
	clear(l.entries[n:])
	l.entries = l.entries[:n]
}

// Entries returns the live overlay entries, oldest first.
func (l *Logger) Entries() []LogEntry {
	l.prune()
	out := make([]LogEntry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Clear drops all overlay entries.
func (l *Logger) Clear() {
	l.entries = l.entries[:0]
}

func (l *Logger) now() float64 {
	if l.clock == nil {
		return 0
	}
	return l.clock()
}

func formatEntry(msg string, keyvals []any) string {
	if len(keyvals) == 0 {
		return msg
	}
	var b strings.Builder
	b.WriteString(msg)
	for i := 0; i+1 < len(keyvals); i += 2 {
		fmt.Fprintf(&b, " %v=%v", keyvals[i], keyvals[i+1])
	}
	return b.String()
}
