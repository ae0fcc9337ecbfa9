// Package logging wires zerolog for the dotfm CLI. Console output goes to
// stderr and a copy of every record is appended to a log file under the
// XDG state directory.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	appDir  = "dotfm"
	logName = "dotfm.log"

	// DefaultLevel applies until SetupLogger runs
	DefaultLevel = zerolog.WarnLevel
)

func init() {
	zerolog.SetGlobalLevel(DefaultLevel)
}

// levels maps the -v count to a zerolog level. Counts past the end of the
// table stay at the last entry.
var levels = []zerolog.Level{
	zerolog.WarnLevel,
	zerolog.InfoLevel,
	zerolog.DebugLevel,
	zerolog.TraceLevel,
}

func levelFor(verbosity int) zerolog.Level {
	if verbosity < 0 {
		verbosity = 0
	}
	if verbosity >= len(levels) {
		return levels[len(levels)-1]
	}
	return levels[verbosity]
}

// SetupLogger installs the global logger for the given verbosity.
func SetupLogger(verbosity int) {
	zerolog.SetGlobalLevel(levelFor(verbosity))

	console := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.Kitchen,
		NoColor:    !isatty.IsTerminal(os.Stderr.Fd()),
	}

	sinks := []io.Writer{console}
	logPath := getLogFilePath()
	file, fileErr := openLogFile(logPath)
	if fileErr == nil {
		sinks = append(sinks, file)
	}

	ctx := zerolog.New(io.MultiWriter(sinks...)).With().Timestamp()
	if verbosity >= 2 {
		ctx = ctx.Caller()
	}
	log.Logger = ctx.Logger()

	if fileErr != nil {
		log.Warn().Err(fileErr).Str("path", logPath).Msg("Log file unavailable, console only")
	}
	log.Debug().
		Int("verbosity", verbosity).
		Str("logFile", logPath).
		Msg("Logger initialized")
}

// GetLogger returns a child of the global logger tagged with component.
func GetLogger(component string) zerolog.Logger {
	return log.With().Str("component", component).Logger()
}

// getLogFilePath resolves $XDG_STATE_HOME/dotfm/dotfm.log, re-reading the
// environment so that overrides made after process start are honoured.
func getLogFilePath() string {
	xdg.Reload()
	if xdg.StateHome == "" {
		return logName
	}
	return filepath.Join(xdg.StateHome, appDir, logName)
}

func openLogFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("creating log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}
	return f, nil
}

// LogCommand records an external process about to be started.
func LogCommand(name string, args []string, dir string) {
	log.Debug().
		Str("command", name).
		Strs("args", args).
		Str("dir", dir).
		Msg("Executing command")
}

// LogOperationStart logs the beginning of operation on logger. Call the
// returned func when the operation finishes to log its duration.
func LogOperationStart(logger zerolog.Logger, operation string) func() {
	start := time.Now()
	logger.Debug().Str("operation", operation).Msg("Operation started")
	return func() {
		logger.Debug().
			Str("operation", operation).
			Dur("duration", time.Since(start)).
			Msg("Operation completed")
	}
}
