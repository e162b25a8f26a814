// Package logger provides the shared charmbracelet/log logger. The TUI owns the
// terminal, so while it runs logs go to a file or nowhere.
package logger

import (
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
)

// EnvLevel names the environment variable consulted when no level flag is given
const EnvLevel = "OTTO_ADMIN_LOG_LEVEL"

// Logger is the global logger instance
var Logger *log.Logger

// file is the log file opened by the last Configure, if any
var file *os.File

func init() {
	Logger = log.New(os.Stderr)
	Logger.SetTimeFormat("")
	Logger.SetLevel(log.InfoLevel)
}

// Configure sets the level and destination.
// Level precedence: argument > OTTO_ADMIN_LOG_LEVEL > info.
func Configure(level string, logFile string) error {
	if level == "" {
		level = os.Getenv(EnvLevel)
	}

	var output io.Writer = os.Stderr
	var opened *os.File
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
		if err != nil {
			return err
		}
		opened, output = f, f
	}
	if file != nil {
		_ = file.Close()
	}
	file = opened

	Logger = log.NewWithOptions(output, log.Options{
		Level:           parseLevel(level),
		ReportTimestamp: logFile != "",
	})
	return nil
}

// Discard silences logging unless a log file was configured
func Discard(logFile string) {
	if logFile != "" {
		return
	}
	Logger.SetOutput(io.Discard)
}

func parseLevel(level string) log.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return log.DebugLevel
	case "warn", "warning":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	case "fatal":
		return log.FatalLevel
	default:
		return log.InfoLevel
	}
}

// Debug logs a debug message with optional key-value pairs.
func Debug(msg interface{}, keyvals ...interface{}) {
	Logger.Debug(msg, keyvals...)
}

// Info logs an info message with optional key-value pairs.
func Info(msg interface{}, keyvals ...interface{}) {
	Logger.Info(msg, keyvals...)
}

// Warn logs a warning message with optional key-value pairs.
func Warn(msg interface{}, keyvals ...interface{}) {
	Logger.Warn(msg, keyvals...)
}

// Error logs an error message with optional key-value pairs.
func Error(msg interface{}, keyvals ...interface{}) {
	Logger.Error(msg, keyvals...)
}

// Request logs an outgoing API request at debug level
func Request(method, path string, keyvals ...interface{}) {
	Logger.Debug("API request", append([]interface{}{"method", method, "path", path}, keyvals...)...)
}
