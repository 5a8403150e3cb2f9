// Package logging builds the application logger. The terminal belongs to the
// editor, so logs go to a rotating file under the XDG state directory.
package logging

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options configures New.
type Options struct {
	// Path of the log file. Empty means DefaultPath().
	Path string
	// Level is a zerolog level name; unknown or empty falls back to info.
	Level string
	// Console additionally writes human-readable output to this writer.
	Console io.Writer
}

// DefaultPath returns $XDG_STATE_HOME/fieldedit/fieldedit.log, falling back to
// ~/.local/state.
func DefaultPath() (string, error) {
	base := os.Getenv("XDG_STATE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, ".local", "state")
	}
	return filepath.Join(base, "fieldedit", "fieldedit.log"), nil
}

// New returns a logger writing JSON lines to a size-rotated file. The returned
// closer flushes and closes the file.
func New(opts Options) (zerolog.Logger, io.Closer, error) {
	path := opts.Path
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return zerolog.Nop(), nil, err
		}
		path = p
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return zerolog.Nop(), nil, err
	}

	rotator := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    5, // megabytes
		MaxBackups: 3,
		MaxAge:     14, // days
		Compress:   true,
	}

	var out io.Writer = rotator
	if opts.Console != nil {
		out = zerolog.MultiLevelWriter(rotator, zerolog.ConsoleWriter{Out: opts.Console, TimeFormat: time.Kitchen})
	}

	log := zerolog.New(out).
		Level(ParseLevel(opts.Level)).
		With().
		Timestamp().
		Logger()
	return log, rotator, nil
}

// ParseLevel maps a level name to a zerolog level, defaulting to info.
func ParseLevel(name string) zerolog.Level {
	lvl, err := zerolog.ParseLevel(name)
	if err != nil || name == "" {
		return zerolog.InfoLevel
	}
	return lvl
}
