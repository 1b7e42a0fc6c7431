package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	clog "github.com/charmbracelet/log"
	"github.com/fisto/crm-sync/internal/colors"
)

// Logger is the structured logging interface used across crm-sync.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
	// With returns a child logger that adds args to every entry.
	With(args ...any) Logger
	// Shutdown closes the underlying file, if any.
	Shutdown() error
}

type fileLogger struct {
	mu       *sync.RWMutex
	clogger  *clog.Logger
	closer   io.Closer
	redactor *redactor
	fields   []any
	path     string
}

// Init returns a JSON file logger for cfg, or a no-op logger when logging is disabled.
// Old files are rotated out before the new file is opened.
func Init(cfg Config) (Logger, error) {
	if !cfg.Enabled {
		return noopLogger{}, nil
	}
	dir, err := LogDir()
	if err != nil {
		return nil, fmt.Errorf("determine log directory: %w", err)
	}
	if err := rotate(dir, cfg.MaxFiles); err != nil {
		fmt.Fprintf(os.Stderr, "log rotation failed: %v\n", err)
	}

	name := fmt.Sprintf("%s%s_PID%d_%s.log",
		filePrefix,
		time.Now().Format("20060102_150405"),
		cfg.PID,
		strings.ReplaceAll(cfg.Command, " ", "_"))
	path := filepath.Join(dir, name)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}

	l := newJSONLogger(f, cfg.Level).(*fileLogger)
	l.clogger = l.clogger.With("pid", cfg.PID, "command", cfg.Command)
	l.closer = f
	l.path = path
	return l, nil
}

// NewWriter returns a JSON logger writing to w. Shutdown does not close w.
func NewWriter(w io.Writer, level string) Logger {
	return newJSONLogger(w, level)
}

func newJSONLogger(w io.Writer, level string) Logger {
	clogger := clog.NewWithOptions(w, clog.Options{
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339Nano,
		Level:           parseLevel(level),
	})
	clogger.SetFormatter(clog.JSONFormatter)
	return &fileLogger{
		mu:       &sync.RWMutex{},
		clogger:  clogger,
		redactor: newRedactor(),
	}
}

func parseLevel(level string) clog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return clog.DebugLevel
	case "warn", "warning":
		return clog.WarnLevel
	case "error":
		return clog.ErrorLevel
	default:
		return clog.InfoLevel
	}
}

func (l *fileLogger) Debug(msg string, args ...any) { l.log(clog.DebugLevel, msg, args) }
func (l *fileLogger) Info(msg string, args ...any)  { l.log(clog.InfoLevel, msg, args) }
func (l *fileLogger) Warn(msg string, args ...any)  { l.log(clog.WarnLevel, msg, args) }
func (l *fileLogger) Error(msg string, args ...any) { l.log(clog.ErrorLevel, msg, args) }

func (l *fileLogger) log(level clog.Level, msg string, args []any) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	all := make([]any, 0, len(l.fields)+len(args))
	all = append(all, l.fields...)
	all = append(all, args...)
	l.clogger.Log(level, msg, l.redactor.redact(all)...)
}

func (l *fileLogger) With(args ...any) Logger {
	fields := make([]any, 0, len(l.fields)+len(args))
	fields = append(fields, l.fields...)
	for i := 0; i+1 < len(args); i += 2 {
		if _, ok := args[i].(string); ok {
			fields = append(fields, args[i], args[i+1])
		}
	}
	return &fileLogger{
		mu:       l.mu,
		clogger:  l.clogger,
		closer:   l.closer,
		redactor: l.redactor,
		fields:   fields,
		path:     l.path,
	}
}

func (l *fileLogger) Shutdown() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closer == nil {
		return nil
	}
	err := l.closer.Close()
	l.closer = nil
	return err
}

type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
func (n noopLogger) With(...any) Logger { return n }
func (noopLogger) Shutdown() error      { return nil }

// Nop returns a logger that discards everything.
func Nop() Logger { return noopLogger{} }

var (
	globalMu     sync.RWMutex
	globalLogger Logger
	globalOnce   sync.Once
)

// InitGlobal initializes the process-wide logger from the loaded configuration
// and mirrors console messages into it. Only the first call has an effect.
func InitGlobal() error {
	var err error
	globalOnce.Do(func() {
		var l Logger
		l, err = Init(FromGlobalConfig())
		if err != nil {
			return
		}
		globalMu.Lock()
		globalLogger = l
		globalMu.Unlock()
		colors.SetLogger(l)
		if path := CurrentLogFile(); path != "" {
			colors.Debug("Logging to file:", path)
		}
	})
	return err
}

// GetGlobal returns the process-wide logger, or a no-op logger before InitGlobal.
func GetGlobal() Logger {
	globalMu.RLock()
	defer globalMu.RUnlock()
	if globalLogger == nil {
		return noopLogger{}
	}
	return globalLogger
}

func Debug(msg string, args ...any) { GetGlobal().Debug(msg, args...) }
func Info(msg string, args ...any)  { GetGlobal().Info(msg, args...) }
func Warn(msg string, args ...any)  { GetGlobal().Warn(msg, args...) }
func Error(msg string, args ...any) { GetGlobal().Error(msg, args...) }

// With returns a child of the global logger.
func With(args ...any) Logger { return GetGlobal().With(args...) }

// ShutdownGlobal closes the global logger's file.
func ShutdownGlobal() error {
	globalMu.Lock()
	defer globalMu.Unlock()
	if globalLogger == nil {
		return nil
	}
	return globalLogger.Shutdown()
}

// CurrentLogFile returns the active global log file path, or "" when logging to no file.
func CurrentLogFile() string {
	globalMu.RLock()
	defer globalMu.RUnlock()
	if l, ok := globalLogger.(*fileLogger); ok {
		return l.path
	}
	return ""
}
