package log

import (
	"fmt"
	"io"
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Level represents the severity of a log message
type Level int

const (
	// LevelDebug is for verbose debugging information
	LevelDebug Level = iota
	// LevelInfo is for important operational events
	LevelInfo
	// LevelWarn is for warnings that don't prevent operation
	LevelWarn
	// LevelError is for errors that may affect functionality
	LevelError
)

const prefix = "[JSXT]"

var (
	mu       sync.Mutex
	output   io.Writer = os.Stderr
	minLevel           = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	logger             = build(output)
)

func (l Level) zap() zapcore.Level {
	switch l {
	case LevelDebug:
		return zapcore.DebugLevel
	case LevelWarn:
		return zapcore.WarnLevel
	case LevelError:
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

func build(w io.Writer) *zap.Logger {
	if w == nil {
		return zap.NewNop()
	}
	cfg := zap.NewDevelopmentEncoderConfig()
	cfg.TimeKey = ""
	cfg.CallerKey = ""
	cfg.StacktraceKey = ""
	cfg.EncodeLevel = zapcore.CapitalLevelEncoder
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(cfg), zapcore.AddSync(w), minLevel)
	return zap.New(core).Named(prefix)
}

// SetOutput sets the output destination (primarily for testing).
// A nil writer silences logging.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
	logger = build(w)
}

// SetLevel sets the minimum log level to display
func SetLevel(level Level) {
	minLevel.SetLevel(level.zap())
}

// GetLevel returns the current minimum log level
func GetLevel() Level {
	switch minLevel.Level() {
	case zapcore.DebugLevel:
		return LevelDebug
	case zapcore.WarnLevel:
		return LevelWarn
	case zapcore.ErrorLevel:
		return LevelError
	default:
		return LevelInfo
	}
}

// Logger returns the underlying structured logger.
func Logger() *zap.Logger {
	mu.Lock()
	defer mu.Unlock()
	return logger
}

// Flush writes out any buffered entries.
func Flush() {
	_ = Logger().Sync()
}

// Debug logs a debug message (verbose debugging information)
func Debug(format string, args ...any) {
	write(zapcore.DebugLevel, format, args...)
}

// Info logs an info message (important operational events)
func Info(format string, args ...any) {
	write(zapcore.InfoLevel, format, args...)
}

// Warn logs a warning message (warnings that don't prevent operation)
func Warn(format string, args ...any) {
	write(zapcore.WarnLevel, format, args...)
}

// Error logs an error message (errors that may affect functionality)
func Error(format string, args ...any) {
	write(zapcore.ErrorLevel, format, args...)
}

func write(level zapcore.Level, format string, args ...any) {
	l := Logger()
	if ce := l.Check(level, fmt.Sprintf(format, args...)); ce != nil {
		ce.Write()
	}
}
