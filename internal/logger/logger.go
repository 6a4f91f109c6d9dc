// Package logger provides the global zerolog logger for shed.
//
// Console output goes to stderr in human-readable form; file output (when
// enabled) is JSON with rotation handled by lumberjack. The build-time
// generator uses console-only logging, the shed binary may enable file
// logging through its settings.
package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/term"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Log is the global logger instance.
var Log zerolog.Logger

// fileWriter is the file output for logging (with rotation).
var fileWriter *lumberjack.Logger

// LoggingConfig holds configuration for file-based logging.
type LoggingConfig struct {
	MaxSizeMB  int
	MaxAgeDays int
	MaxBackups int
}

// GetMaxSizeMB returns the max size in MB, defaulting to 10 if not set.
func (c *LoggingConfig) GetMaxSizeMB() int {
	if c.MaxSizeMB <= 0 {
		return 10
	}
	return c.MaxSizeMB
}

// GetMaxAgeDays returns the max age in days, defaulting to 7 if not set.
func (c *LoggingConfig) GetMaxAgeDays() int {
	if c.MaxAgeDays <= 0 {
		return 7
	}
	return c.MaxAgeDays
}

// GetMaxBackups returns the max backups, defaulting to 3 if not set.
func (c *LoggingConfig) GetMaxBackups() int {
	if c.MaxBackups <= 0 {
		return 3
	}
	return c.MaxBackups
}

// consoleWriter returns the stderr console writer. Color is disabled when
// stderr is not a terminal (CI, build logs, pipes).
func consoleWriter() zerolog.ConsoleWriter {
	return zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
		NoColor:    !term.IsTerminal(int(os.Stderr.Fd())),
	}
}

// Init initializes the global logger with console-only output.
// Use InitWithFile for file logging.
func Init(debug bool) {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}

	Log = zerolog.New(consoleWriter()).
		Level(level).
		With().
		Timestamp().
		Logger()
}

// InitWithFile initializes the logger with console output plus a rotating
// log file in logsDir. If logsDir is empty or cfg is nil this behaves like
// Init (console-only).
func InitWithFile(debug bool, logsDir string, cfg *LoggingConfig) error {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}

	console := consoleWriter()

	if logsDir == "" || cfg == nil {
		Log = zerolog.New(console).
			Level(level).
			With().
			Timestamp().
			Logger()
		return nil
	}

	if err := os.MkdirAll(logsDir, 0o755); err != nil {
		return fmt.Errorf("creating logs directory: %w", err)
	}

	fileWriter = &lumberjack.Logger{
		Filename:   filepath.Join(logsDir, "shed.log"),
		MaxSize:    cfg.GetMaxSizeMB(),
		MaxAge:     cfg.GetMaxAgeDays(),
		MaxBackups: cfg.GetMaxBackups(),
		LocalTime:  true,
	}

	// Console is human-readable, file is JSON.
	multi := io.MultiWriter(console, fileWriter)

	Log = zerolog.New(multi).
		Level(level).
		With().
		Timestamp().
		Logger()

	return nil
}

// CloseFileWriter closes the file writer if it exists.
// Call this on program shutdown for clean log file closure.
func CloseFileWriter() error {
	if fileWriter != nil {
		err := fileWriter.Close()
		fileWriter = nil
		return err
	}
	return nil
}

// GetLogFilePath returns the path to the current log file, or empty string
// if file logging is disabled.
func GetLogFilePath() string {
	if fileWriter != nil {
		return fileWriter.Filename
	}
	return ""
}

// Debug logs a debug message.
func Debug() *zerolog.Event {
	return Log.Debug()
}

// Info logs an info message.
func Info() *zerolog.Event {
	return Log.Info()
}

// Warn logs a warning message.
func Warn() *zerolog.Event {
	return Log.Warn()
}

// Error logs an error message.
func Error() *zerolog.Event {
	return Log.Error()
}

// Fatal logs a fatal message and exits.
func Fatal() *zerolog.Event {
	return Log.Fatal()
}
