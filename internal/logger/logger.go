package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	lumberjack "gopkg.in/natefinch/lumberjack.v2"
)

// Fields is an alias for logrus.Fields so callers need not import logrus.
type Fields = logrus.Fields

// Log wraps logrus.Logger with component helpers.
type Log struct {
	*logrus.Logger

	mu     sync.Mutex
	closer io.Closer
}

var (
	globalMu sync.RWMutex
	global   = New()
)

// New creates a JSON logger writing to stderr at info level. The level can
// be overridden with LOG_LEVEL before Configure is called.
func New() *Log {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetLevel(logrus.InfoLevel)
	if lvl, err := logrus.ParseLevel(strings.ToLower(os.Getenv("LOG_LEVEL"))); err == nil {
		l.SetLevel(lvl)
	}
	l.SetFormatter(jsonFormatter())
	return &Log{Logger: l}
}

// Get returns the process-wide logger.
func Get() *Log {
	globalMu.RLock()
	defer globalMu.RUnlock()
	return global
}

// Set replaces the process-wide logger. Intended for tests.
func Set(l *Log) {
	globalMu.Lock()
	global = l
	globalMu.Unlock()
}

// WithComponent tags entries with the emitting component.
func (l *Log) WithComponent(component string) *logrus.Entry {
	return l.Logger.WithField("component", component)
}

// Configure applies level, format ("json" or "text") and output. An empty
// file keeps stderr; otherwise output goes to a rotating file.
func (l *Log) Configure(level, format, file string, maxSizeMB, maxAgeDays int) error {
	lvl, err := logrus.ParseLevel(strings.ToLower(level))
	if err != nil {
		return fmt.Errorf("log level %q: %w", level, err)
	}

	var formatter logrus.Formatter
	switch strings.ToLower(format) {
	case "", "json":
		formatter = jsonFormatter()
	case "text":
		formatter = &logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: time.RFC3339Nano,
		}
	default:
		return fmt.Errorf("log format %q: want json or text", format)
	}

	var out io.Writer = os.Stderr
	var closer io.Closer
	if file != "" {
		if err := os.MkdirAll(filepath.Dir(file), 0o755); err != nil {
			return fmt.Errorf("create log directory: %w", err)
		}
		lj := &lumberjack.Logger{
			Filename: file,
			MaxSize:  maxSizeMB,
			MaxAge:   maxAgeDays,
			Compress: true,
		}
		out = io.MultiWriter(os.Stderr, lj)
		closer = lj
	}

	l.SetLevel(lvl)
	l.SetFormatter(formatter)
	l.SetOutput(out)

	l.mu.Lock()
	prev := l.closer
	l.closer = closer
	l.mu.Unlock()
	if prev != nil {
		prev.Close()
	}
	return nil
}

// Close releases the rotating file, if any.
func (l *Log) Close() error {
	l.mu.Lock()
	c := l.closer
	l.closer = nil
	l.mu.Unlock()
	if c == nil {
		return nil
	}
	return c.Close()
}

func jsonFormatter() *logrus.JSONFormatter {
	return &logrus.JSONFormatter{
		TimestampFormat: time.RFC3339Nano,
		FieldMap: logrus.FieldMap{
			logrus.FieldKeyTime:  "timestamp",
			logrus.FieldKeyLevel: "level",
			logrus.FieldKeyMsg:   "message",
		},
		CallerPrettyfier: func(f *runtime.Frame) (string, string) {
			return "", fmt.Sprintf("%s:%d", filepath.Base(f.File), f.Line)
		},
	}
}
