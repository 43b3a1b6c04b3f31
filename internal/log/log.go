// Package log provides structured logging for pagedeck.
// Entries carry a level, a category and key=value fields. They are written to an
// optional file sink (enabled via --debug or PAGEDECK_DEBUG), kept in a bounded
// in-memory buffer for the simulator's diagnostics panel, and fanned out to
// subscribers through a pubsub broker.
package log

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/zjrosen/pagedeck/internal/pubsub"
)

// Level represents log severity.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel maps a level name to a Level. Unknown names map to LevelInfo.
func ParseLevel(s string) Level {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return LevelDebug
	case "WARN", "WARNING":
		return LevelWarn
	case "ERROR":
		return LevelError
	default:
		return LevelInfo
	}
}

// Category groups related log messages.
type Category string

const (
	CatConfig   Category = "config"   // Configuration loading/saving
	CatRegistry Category = "registry" // Page registration and sorting
	CatNav      Category = "nav"      // Navigation engine transitions
	CatSync     Category = "sync"     // Select state synchronization
	CatInput    Category = "input"    // Momentary button presses
	CatAction   Category = "action"   // Navigation actions
	CatScript   Category = "script"   // Script loading and execution
	CatRender   Category = "render"   // Display rendering
	CatWatcher  Category = "watcher"  // Script directory watcher events
	CatCache    Category = "cache"    // Template cache operations
	CatTrace    Category = "trace"    // Tracing provider
	CatUI       Category = "ui"       // Simulator UI updates
)

const defaultBufferSize = 500

// Logger provides structured logging.
type Logger struct {
	mu       sync.Mutex
	file     *os.File
	writer   io.Writer
	enabled  bool
	minLevel Level
	buffer   []string
	bufSize  int
	broker   *pubsub.Broker[string]
}

var (
	defaultLogger = newMemoryLogger()
	once          sync.Once
)

// newMemoryLogger returns a logger that only feeds the in-memory buffer and
// subscribers. It is the default until Init attaches a file.
func newMemoryLogger() *Logger {
	return &Logger{
		enabled:  true,
		minLevel: LevelDebug,
		bufSize:  defaultBufferSize,
		broker:   pubsub.NewBroker[string](),
	}
}

// Init attaches a file sink to the global logger.
// Returns a cleanup function to close the log file.
func Init(path string) (func(), error) {
	var initErr error
	once.Do(func() {
		f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644) //nolint:gosec // G304: path is user-controlled debug log path
		if err != nil {
			initErr = err
			return
		}
		defaultLogger.mu.Lock()
		defaultLogger.file = f
		defaultLogger.writer = f
		defaultLogger.mu.Unlock()
	})
	if initErr != nil {
		return nil, initErr
	}
	return func() {
		defaultLogger.mu.Lock()
		defer defaultLogger.mu.Unlock()
		if defaultLogger.file != nil {
			_ = defaultLogger.file.Close()
			defaultLogger.file = nil
			defaultLogger.writer = nil
		}
	}, nil
}

// InitWithTeaLog uses tea.LogToFile for initialization.
func InitWithTeaLog(path string, prefix string) (func(), error) {
	f, err := tea.LogToFile(path, prefix)
	if err != nil {
		return nil, err
	}

	defaultLogger.mu.Lock()
	defaultLogger.file = f
	defaultLogger.writer = f
	defaultLogger.mu.Unlock()

	return func() { _ = f.Close() }, nil
}

// SetOutput redirects the file sink to w. Passing nil disables the sink.
func SetOutput(w io.Writer) {
	defaultLogger.mu.Lock()
	defaultLogger.writer = w
	defaultLogger.mu.Unlock()
}

// SetEnabled toggles logging on/off.
func SetEnabled(enabled bool) {
	defaultLogger.mu.Lock()
	defaultLogger.enabled = enabled
	defaultLogger.mu.Unlock()
}

// SetMinLevel sets the minimum log level.
func SetMinLevel(level Level) {
	defaultLogger.mu.Lock()
	defaultLogger.minLevel = level
	defaultLogger.mu.Unlock()
}

// Debug logs at debug level.
func Debug(cat Category, msg string, fields ...any) {
	log(LevelDebug, cat, msg, fields...)
}

// Info logs at info level.
func Info(cat Category, msg string, fields ...any) {
	log(LevelInfo, cat, msg, fields...)
}

// Warn logs at warning level.
func Warn(cat Category, msg string, fields ...any) {
	log(LevelWarn, cat, msg, fields...)
}

// Error logs at error level.
func Error(cat Category, msg string, fields ...any) {
	log(LevelError, cat, msg, fields...)
}

// ErrorErr logs an error with the error value.
func ErrorErr(cat Category, msg string, err error, fields ...any) {
	if err != nil {
		fields = append(fields, "error", err.Error())
	} else {
		fields = append(fields, "error", "<nil>")
	}
	log(LevelError, cat, msg, fields...)
}

func log(level Level, cat Category, msg string, fields ...any) {
	l := defaultLogger
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.enabled || level < l.minLevel {
		return
	}

	// Format: 2025-12-06T10:45:00 [WARN] [nav] message key=value key2=value2
	var b strings.Builder
	b.WriteString(time.Now().Format("2006-01-02T15:04:05"))
	fmt.Fprintf(&b, " [%s] [%s] %s", level, cat, msg)

	for i := 0; i+1 < len(fields); i += 2 {
		fmt.Fprintf(&b, " %v=%v", fields[i], fields[i+1])
	}
	// Odd field count: orphan key with no value
	if len(fields)%2 != 0 {
		fmt.Fprintf(&b, " %v=<missing>", fields[len(fields)-1])
	}
	entry := b.String()

	if l.writer != nil {
		_, _ = io.WriteString(l.writer, entry+"\n")
	}

	l.buffer = append(l.buffer, entry)
	if len(l.buffer) > l.bufSize {
		l.buffer = l.buffer[len(l.buffer)-l.bufSize:]
	}

	// Non-blocking fan-out
	l.broker.Publish(pubsub.CreatedEvent, entry)
}

// GetRecentLogs returns up to n of the most recent entries, oldest first.
func GetRecentLogs(n int) []string {
	defaultLogger.mu.Lock()
	defer defaultLogger.mu.Unlock()

	if n <= 0 || len(defaultLogger.buffer) == 0 {
		return nil
	}
	start := max(len(defaultLogger.buffer)-n, 0)
	out := make([]string, len(defaultLogger.buffer)-start)
	copy(out, defaultLogger.buffer[start:])
	return out
}

// ClearBuffer drops all buffered entries.
func ClearBuffer() {
	defaultLogger.mu.Lock()
	defaultLogger.buffer = nil
	defaultLogger.mu.Unlock()
}

// LogEvent is a pubsub event containing a log entry.
type LogEvent = pubsub.Event[string]

// LogListener wraps a continuous listener for log events.
type LogListener = pubsub.ContinuousListener[string]

// NewListener creates a new log event listener.
// The listener is automatically cleaned up when the context is cancelled.
func NewListener(ctx context.Context) *LogListener {
	return pubsub.NewContinuousListener[string](ctx, defaultLogger.broker)
}
