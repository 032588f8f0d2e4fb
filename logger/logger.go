package logger

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Logger represents a structured logger
type Logger struct {
	logger zerolog.Logger
}

// Fields represents log fields
type Fields map[string]interface{}

// Options controls how Init builds the default logger
type Options struct {
	// Level overrides the environment-derived level when set
	Level string
	// Environment selects the default level and output format
	Environment string
	// File, when set, also writes JSON logs to a rotated file
	File string
}

var (
	// Default is the default logger instance
	Default *Logger
)

// Init initializes the logger with the given configuration
func Init(opts Options) {
	level := getLogLevel(opts)

	// Configure zerolog
	zerolog.TimeFieldFormat = time.RFC3339
	zerolog.SetGlobalLevel(level)

	var output io.Writer = zerolog.ConsoleWriter{
		Out:        os.Stdout,
		TimeFormat: time.RFC3339,
	}
	if opts.Environment == "production" {
		output = os.Stdout
	}

	if opts.File != "" {
		output = io.MultiWriter(output, &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    50, // megabytes
			MaxBackups: 5,
			MaxAge:     28, // days
			Compress:   true,
		})
	}

	logger := zerolog.New(output).With().Timestamp().Logger()

	Default = &Logger{logger: logger}

	Default.Debug().
		Str("level", level.String()).
		Msg("Logger initialized")
}

// New wraps an existing zerolog logger, mostly useful in tests
func New(l zerolog.Logger) *Logger {
	return &Logger{logger: l}
}

// getLogLevel returns the log level from the options
func getLogLevel(opts Options) zerolog.Level {
	if opts.Level == "" {
		if opts.Environment == "production" {
			return zerolog.InfoLevel
		}
		return zerolog.DebugLevel
	}

	level, err := zerolog.ParseLevel(opts.Level)
	if err != nil {
		return zerolog.InfoLevel
	}
	return level
}

func ensure() {
	if Default == nil {
		Init(Options{Level: os.Getenv("LOG_LEVEL"), Environment: os.Getenv("GJIRAFA_ENVIRONMENT")})
	}
}

// WithFields creates a new logger with fields
func (l *Logger) WithFields(fields Fields) *Logger {
	newLogger := l.logger.With()
	for k, v := range fields {
		newLogger = newLogger.Interface(k, v)
	}
	return &Logger{logger: newLogger.Logger()}
}

// WithField creates a new logger with a single field
func (l *Logger) WithField(key string, value interface{}) *Logger {
	return &Logger{logger: l.logger.With().Interface(key, value).Logger()}
}

// WithError adds an error to the logger
func (l *Logger) WithError(err error) *Logger {
	return &Logger{logger: l.logger.With().Err(err).Logger()}
}

// Debug returns a debug event
func (l *Logger) Debug() *zerolog.Event {
	return l.logger.Debug()
}

// Info returns an info event
func (l *Logger) Info() *zerolog.Event {
	return l.logger.Info()
}

// Warn returns a warn event
func (l *Logger) Warn() *zerolog.Event {
	return l.logger.Warn()
}

// Error returns an error event
func (l *Logger) Error() *zerolog.Event {
	return l.logger.Error()
}

// Fatal returns a fatal event
func (l *Logger) Fatal() *zerolog.Event {
	return l.logger.Fatal()
}

// Package-level helpers on the default logger

// Info logs an info message
func Info(format string, v ...interface{}) {
	ensure()
	Default.Info().Msgf(format, v...)
}

// IsDebugEnabled returns true if debug logging is enabled
func IsDebugEnabled() bool {
	ensure()
	return zerolog.GlobalLevel() <= zerolog.DebugLevel && Default.logger.GetLevel() <= zerolog.DebugLevel
}

// ForScraper creates a logger for the upstream scraper
func ForScraper(site string) *Logger {
	ensure()
	return Default.WithField("scraper", site)
}

// ForComponent creates a logger tagged with a component name
func ForComponent(component string) *Logger {
	ensure()
	return Default.WithField("component", component)
}

// ForWorker creates a logger for the refresh worker
func ForWorker() *Logger {
	return ForComponent("worker")
}

// ForPublisher creates a logger for the publisher
func ForPublisher() *Logger {
	return ForComponent("publisher")
}

// ForServer creates a logger for the HTTP server
func ForServer() *Logger {
	return ForComponent("server")
}

// LogError is a convenience method for logging errors with context
func LogError(component string, err error, format string, v ...interface{}) {
	ensure()
	msg := fmt.Sprintf(format, v...)
	Default.Error().
		Str("component", component).
		Err(err).
		Msg(msg)
}

// LogInfo is a convenience method for logging info with context
func LogInfo(component string, format string, v ...interface{}) {
	ensure()
	msg := fmt.Sprintf(format, v...)
	Default.Info().
		Str("component", component).
		Msg(msg)
}
