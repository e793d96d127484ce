// Package logger provides structured logging for lintconf.
package logger

import (
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Fields is a set of key/value pairs attached to a log entry.
type Fields map[string]interface{}

// Logger is the logging interface used across lintconf.
type Logger interface {
	// Debug logs at debug level. Only shown when verbosity >= 1
	Debug(msg string)

	// Info logs at info level.
	Info(msg string)

	// Warn logs at warn level.
	Warn(msg string)

	// Error logs at error level.
	Error(msg string)

	// Trace logs at debug level with a TRACE prefix. Only shown when verbosity >= 2
	Trace(msg string)

	// WithFields returns a Logger that adds fields to every entry.
	WithFields(fields Fields) Logger

	// WithError is shorthand for WithFields(Fields{"error": err}).
	WithError(err error) Logger

	// Sync flushes buffered entries.
	Sync() error
}

// Encoding selects the output encoding.
type Encoding string

const (
	// EncodingJSON writes one JSON object per entry.
	EncodingJSON Encoding = "json"

	// EncodingConsole writes human readable lines.
	EncodingConsole Encoding = "console"
)

// Config holds the configuration for creating a new logger instance.
type Config struct {
	// Verbosity determines the logging level:
	// 0: Info, Warn, Error (default)
	// 1: Debug + Level 0
	// 2: Trace + Level 1
	Verbosity int

	// Output specifies where logs are written. Defaults to os.Stderr.
	Output io.Writer

	// Encoding defaults to EncodingJSON.
	Encoding Encoding
}

type logger struct {
	zap       *zap.Logger
	verbosity int
}

// NewLogger creates a Logger from config.
//
//	log := logger.NewLogger(logger.Config{Verbosity: 1})
//	log.WithFields(logger.Fields{"path": "lintconf.yml"}).Debug("Loading configuration")
func NewLogger(config Config) Logger {
	if config.Output == nil {
		config.Output = os.Stderr
	}

	encoderConfig := zapcore.EncoderConfig{
		TimeKey:        "ts",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		MessageKey:     "message",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.SecondsDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}

	var encoder zapcore.Encoder
	if config.Encoding == EncodingConsole {
		encoder = zapcore.NewConsoleEncoder(encoderConfig)
	} else {
		encoder = zapcore.NewJSONEncoder(encoderConfig)
	}

	core := zapcore.NewCore(encoder, zapcore.AddSync(config.Output), levelFor(config.Verbosity))

	return &logger{
		zap:       zap.New(core),
		verbosity: config.Verbosity,
	}
}

// Nop returns a Logger that discards everything.
func Nop() Logger {
	return &logger{zap: zap.NewNop()}
}

func levelFor(verbosity int) zapcore.LevelEnabler {
	if verbosity <= 0 {
		return zapcore.InfoLevel
	}
	return zapcore.DebugLevel
}

func (l *logger) Debug(msg string) {
	l.zap.Debug(msg)
}

func (l *logger) Info(msg string) {
	l.zap.Info(msg)
}

func (l *logger) Warn(msg string) {
	l.zap.Warn(msg)
}

func (l *logger) Error(msg string) {
	l.zap.Error(msg)
}

func (l *logger) Trace(msg string) {
	if l.verbosity >= 2 {
		l.zap.Debug("TRACE: " + msg)
	}
}

func (l *logger) WithFields(fields Fields) Logger {
	zapFields := make([]zap.Field, 0, len(fields))
	for k, v := range fields {
		zapFields = append(zapFields, zap.Any(k, v))
	}

	return &logger{
		zap:       l.zap.With(zapFields...),
		verbosity: l.verbosity,
	}
}

func (l *logger) WithError(err error) Logger {
	return &logger{
		zap:       l.zap.With(zap.Error(err)),
		verbosity: l.verbosity,
	}
}

func (l *logger) Sync() error {
	return l.zap.Sync()
}
