// Package logger builds the process-wide zerolog logger.
//
// Init is called once by the CLI; its result is passed to services by
// constructor. With a file path set, JSON entries are also appended to a
// size-rotated file.
package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

const defaultService = "helpconnect"

// Options controls the logger built by Init.
type Options struct {
	// Level is one of trace, debug, info, warn, error. Unknown values mean info.
	Level string
	// Pretty switches stdout to the coloured console format.
	Pretty bool
	// Output replaces os.Stdout.
	Output io.Writer
	// Service is attached to every entry. Defaults to "helpconnect".
	Service string
	File    FileOptions
}

// FileOptions configures the rotating log file. An empty Path disables it.
type FileOptions struct {
	Path       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

var (
	mu       sync.Mutex
	built    bool
	instance zerolog.Logger
)

// Init builds the logger on first use and returns the same logger on every
// later call, whatever the options.
func Init(opts Options) zerolog.Logger {
	mu.Lock()
	defer mu.Unlock()
	if built {
		return instance
	}

	zerolog.TimeFieldFormat = time.RFC3339Nano
	lvl := parseLevel(opts.Level)
	zerolog.SetGlobalLevel(lvl)

	service := opts.Service
	if service == "" {
		service = defaultService
	}

	instance = zerolog.New(writer(opts)).
		Level(lvl).
		With().
		Timestamp().
		Str("service", service).
		Logger()
	built = true
	return instance
}

// Reset forgets the built logger. Tests only.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	built = false
	instance = zerolog.Logger{}
}

func writer(opts Options) io.Writer {
	var out io.Writer = os.Stdout
	if opts.Output != nil {
		out = opts.Output
	}
	if opts.Pretty {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.Kitchen}
	}

	if opts.File.Path == "" {
		return out
	}
	fw, err := rotatingFile(opts.File)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: file output disabled: %v\n", err)
		return out
	}
	return zerolog.MultiLevelWriter(out, fw)
}

func rotatingFile(f FileOptions) (*lumberjack.Logger, error) {
	if err := os.MkdirAll(filepath.Dir(f.Path), 0o755); err != nil {
		return nil, err
	}
	return &lumberjack.Logger{
		Filename:   f.Path,
		MaxSize:    positiveOr(f.MaxSizeMB, 50),
		MaxBackups: positiveOr(f.MaxBackups, 5),
		MaxAge:     positiveOr(f.MaxAgeDays, 30),
		Compress:   f.Compress,
	}, nil
}

func positiveOr(v, def int) int {
	if v > 0 {
		return v
	}
	return def
}

func parseLevel(s string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
