package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// DefaultPath is the editor log file, relative to the working directory.
const DefaultPath = "logs/terminal.txt"

// Level orders log entries by severity.
type Level int

const (
	LevelInfo Level = iota
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	}
	return "INFO"
}

// ParseLevel maps "info", "warn" and "error" to a Level. Anything else is LevelInfo.
func ParseLevel(s string) Level {
	switch s {
	case "warn", "warning", "WARN":
		return LevelWarn
	case "error", "ERROR":
		return LevelError
	}
	return LevelInfo
}

// Logger stores lines in memory (for the terminal and overlay) and appends them to a file on disk.
type Logger struct {
	mu    sync.Mutex
	path  string
	min   Level
	lines []string
	now   func() time.Time
}

// New returns a Logger writing to path. An empty path keeps lines in memory only.
func New(path string) *Logger {
	if path != "" {
		_ = os.MkdirAll(filepath.Dir(path), 0755)
	}
	return &Logger{path: path, lines: make([]string, 0), now: time.Now}
}

// SetLevel drops entries below min.
func (l *Logger) SetLevel(min Level) {
	l.mu.Lock()
	l.min = min
	l.mu.Unlock()
}

// Log appends a plain line. Each entry is prefixed with [timestamp].
func (l *Logger) Log(line string) {
	l.write(LevelInfo, line)
}

func (l *Logger) Info(format string, args ...any) {
	l.write(LevelInfo, fmt.Sprintf(format, args...))
}

func (l *Logger) Warn(format string, args ...any) {
	l.write(LevelWarn, fmt.Sprintf(format, args...))
}

func (l *Logger) Error(format string, args ...any) {
	l.write(LevelError, fmt.Sprintf(format, args...))
}

func (l *Logger) write(lvl Level, msg string) {
	if l == nil {
		return
	}
	l.mu.Lock()
	if lvl < l.min {
		l.mu.Unlock()
		return
	}
	ts := l.now().Format("2006-01-02 15:04:05")
	stamped := "[" + ts + "] " + msg
	if lvl != LevelInfo {
		stamped = "[" + ts + "] " + lvl.String() + " " + msg
	}
	l.lines = append(l.lines, stamped)
	path := l.path
	l.mu.Unlock()

	if path == "" {
		return
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return
	}
	_, _ = f.WriteString(stamped + "\n")
	_ = f.Close()
}

// Lines returns a copy of all stored lines.
func (l *Logger) Lines() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]string, len(l.lines))
	copy(out, l.lines)
	return out
}

// Last returns up to n of the most recent lines.
func (l *Logger) Last(n int) []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	if n > len(l.lines) {
		n = len(l.lines)
	}
	out := make([]string, n)
	copy(out, l.lines[len(l.lines)-n:])
	return out
}
