package logger

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"syscall"

	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type loggerContextKey struct{}

const (
	TimeStampKey = "timestamp"
	MessageKey   = "message"
	ComponentKey = "component"
)

var (
	mu sync.Mutex

	// globalZapLogger backs Sync(); globalLogrLogger is what callers use.
	globalZapLogger  *zap.Logger
	globalLogrLogger *logr.Logger
	logFile          *os.File

	defaultNoopLogger logr.Logger = logr.Discard()
)

// Options controls where and how verbosely the logger writes
type Options struct {
	// Path of a log file to append to. Empty means stderr.
	Path string
	// Verbosity maps to logr V-levels: 0 is info, 1 is debug.
	Verbosity int
}

// Setup builds the global zap-backed logr.Logger. A second call replaces the
// previous logger and closes its file.
func Setup(opts Options) (*logr.Logger, error) {
	mu.Lock()
	defer mu.Unlock()

	var sink io.Writer = os.Stderr
	var file *os.File
	if opts.Path != "" {
		f, err := os.OpenFile(opts.Path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return &defaultNoopLogger, fmt.Errorf("failed to open log file: %w", err)
		}
		sink = f
		file = f
	}

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderCfg.TimeKey = TimeStampKey
	encoderCfg.MessageKey = MessageKey

	// logr V(n) maps to zap level -n
	level := zapcore.Level(-int8(opts.Verbosity))

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderCfg),
		zapcore.Lock(zapcore.AddSync(sink)),
		zap.NewAtomicLevelAt(level),
	)

	zl := zap.New(core,
		zap.AddCaller(),
		zap.AddStacktrace(zap.ErrorLevel),
	)

	if globalZapLogger != nil {
		_ = globalZapLogger.Sync()
	}
	if logFile != nil {
		_ = logFile.Close()
	}

	globalZapLogger = zl
	logFile = file
	gl := zapr.NewLogger(zl)
	globalLogrLogger = &gl
	return globalLogrLogger, nil
}

// WithLogger returns a new context carrying log
func WithLogger(ctx context.Context, log *logr.Logger) context.Context {
	if lp, ok := ctx.Value(loggerContextKey{}).(*logr.Logger); ok && lp == log {
		return ctx
	}
	return context.WithValue(ctx, loggerContextKey{}, log)
}

// FromContext returns the logger stored in ctx, the global logger, or a
// no-op logger if Setup was never called.
func FromContext(ctx context.Context) *logr.Logger {
	if log, ok := ctx.Value(loggerContextKey{}).(*logr.Logger); ok {
		return log
	}
	return Global()
}

// Global returns the configured logger or a no-op logger
func Global() *logr.Logger {
	mu.Lock()
	defer mu.Unlock()
	if globalLogrLogger != nil {
		return globalLogrLogger
	}
	return &defaultNoopLogger
}

// Noop returns a logger that discards everything
func Noop() *logr.Logger {
	return &defaultNoopLogger
}

// Component returns log with a component name attached
func Component(log *logr.Logger, name string) logr.Logger {
	if log == nil {
		return defaultNoopLogger
	}
	return log.WithValues(ComponentKey, name)
}

// Sync flushes buffered entries and closes the log file
func Sync() {
	mu.Lock()
	defer mu.Unlock()

	if globalZapLogger != nil {
		if err := globalZapLogger.Sync(); err != nil && !isIgnorableSyncError(err) {
			fmt.Fprintf(os.Stderr, "WARNING: failed to sync zap logger: %v\n", err)
		}
	}
	if logFile != nil {
		_ = logFile.Close()
		logFile = nil
	}
}

// isIgnorableSyncError returns true for common Sync errors on pipes/TTYs.
func isIgnorableSyncError(err error) bool {
	if errors.Is(err, syscall.ENOTTY) || errors.Is(err, syscall.EINVAL) || errors.Is(err, syscall.EIO) || errors.Is(err, syscall.EBADF) {
		return true
	}
	return strings.Contains(err.Error(), "The handle is invalid")
}
