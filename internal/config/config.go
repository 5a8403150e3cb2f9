package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
)

// Config holds all configurable fieldedit settings.
type Config struct {
	MediaDir       string `json:"media_dir"`      // base for relative media references
	NoteTypesPath  string `json:"notetypes_path"` // YAML note type file; empty disables lookups
	ShellPath      string `json:"shell_path"`     // override the embedded editor shell
	ResultFormat   string `json:"result_format" validate:"omitempty,oneof=json yaml yml"`
	LogLevel       string `json:"log_level" validate:"omitempty,oneof=trace debug info warn error disabled"`
	WatchNoteTypes *bool  `json:"watch_notetypes"`
}

// Defaults returns sensible default configuration values.
func Defaults() Config {
	watch := true
	return Config{
		MediaDir:       ".",
		ResultFormat:   "json",
		LogLevel:       "info",
		WatchNoteTypes: &watch,
	}
}

// Dir returns ~/.config/fieldedit.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "fieldedit"), nil
}

// LoadGlobal reads ~/.config/fieldedit/config.json.
// Returns defaults if the file is absent.
func LoadGlobal() (*Config, error) {
	dir, err := Dir()
	if err != nil {
		return nil, err
	}
	return loadFile(filepath.Join(dir, "config.json"), true)
}

// LoadProject reads .fieldeditconfig in the current working directory.
// Returns nil (no error) if the file is absent.
func LoadProject() (*Config, error) {
	return loadFile(".fieldeditconfig", false)
}

// loadFile reads and parses a JSON config file at path.
// If returnDefaults is true, returns defaults when the file is absent.
// If returnDefaults is false, returns nil when the file is absent.
func loadFile(path string, returnDefaults bool) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			if returnDefaults {
				d := Defaults()
				return &d, nil
			}
			return nil, nil
		}
		return nil, err
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	if err := validate.Struct(cfg); err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	return &cfg, nil
}

var validate = validator.New()

// Merge combines global and project configs, with project taking precedence.
// Missing keys fall back to global, then defaults.
func Merge(global, project *Config) Config {
	result := Defaults()
	apply(&result, global)
	apply(&result, project)
	return result
}

func apply(dst, src *Config) {
	if src == nil {
		return
	}
	if src.MediaDir != "" {
		dst.MediaDir = src.MediaDir
	}
	if src.NoteTypesPath != "" {
		dst.NoteTypesPath = src.NoteTypesPath
	}
	if src.ShellPath != "" {
		dst.ShellPath = src.ShellPath
	}
	if src.ResultFormat != "" {
		dst.ResultFormat = src.ResultFormat
	}
	if src.LogLevel != "" {
		dst.LogLevel = src.LogLevel
	}
	if src.WatchNoteTypes != nil {
		watch := *src.WatchNoteTypes
		dst.WatchNoteTypes = &watch
	}
}

// Watch reports whether the note type file should be watched for changes.
func (c Config) Watch() bool {
	return c.WatchNoteTypes == nil || *c.WatchNoteTypes
}

// ParseError is returned when a config file exists but cannot be parsed.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return "failed to parse config file " + e.Path + ": " + e.Err.Error()
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
