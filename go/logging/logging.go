// Package logging configures log/slog from command line options.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

const (
	// Level types
	LevelDebug = "debug"
	LevelInfo  = "info"
	LevelWarn  = "warn"
	LevelError = "error"

	// Format types
	FormatJSON = "json"
	FormatText = "text"
)

// Opts holds logging configuration options.
type Opts struct {
	Fields   []string `long:"field" env:"FIELD" env-delim:"," description:"Inject fields at the topline level, using k:v"`
	Level    string   `long:"level" env:"LEVEL" description:"Log level: debug, info, warn, error" default:"info"`
	Format   string   `long:"format" env:"FORMAT" description:"Log format: json, text" default:"json"`
	FilePath string   `long:"file" env:"FILE" description:"Log to file instead of stderr"`
}

// Init sets the default slog logger from opts.
func Init(opts *Opts, extract ExtractFromContextFn) error {
	logger, err := NewLogger(opts, extract)
	if err != nil {
		return err
	}
	slog.SetDefault(logger)
	return nil
}

// NewLogger returns a logger configured by opts. When extract is non nil, every
// record also carries the attributes it returns for the record's context.
func NewLogger(opts *Opts, extract ExtractFromContextFn) (*slog.Logger, error) {
	writer := io.Writer(os.Stderr)
	if opts.FilePath != "" {
		file, err := os.OpenFile(opts.FilePath, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("opening log file: %w", err)
		}
		writer = file
	}
	return newLogger(opts, writer, extract)
}

func newLogger(opts *Opts, writer io.Writer, extract ExtractFromContextFn) (*slog.Logger, error) {
	level, err := parseLevel(opts.Level)
	if err != nil {
		return nil, err
	}
	handlerOpts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	switch opts.Format {
	case FormatJSON, "":
		handler = slog.NewJSONHandler(writer, handlerOpts)
	case FormatText:
		handler = slog.NewTextHandler(writer, handlerOpts)
	default:
		return nil, fmt.Errorf("unrecognized format: %s", opts.Format)
	}
	if extract != nil {
		handler = NewContextHandler(handler, extract)
	}

	logger := slog.New(handler)
	for _, field := range opts.Fields {
		key, value, ok := strings.Cut(field, ":")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid field format: %s", field)
		}
		logger = logger.With(key, value)
	}
	return logger, nil
}

var levelToSlogLevel = map[string]slog.Level{
	LevelDebug: slog.LevelDebug,
	LevelInfo:  slog.LevelInfo,
	LevelWarn:  slog.LevelWarn,
	LevelError: slog.LevelError,
}

func parseLevel(level string) (slog.Level, error) {
	if level == "" {
		return slog.LevelInfo, nil
	}
	if l, ok := levelToSlogLevel[strings.ToLower(level)]; ok {
		return l, nil
	}
	return 0, fmt.Errorf("unrecognized level: %s", level)
}
