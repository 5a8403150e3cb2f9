// Package payload reads startup payloads and writes session results in the
// formats the host can exchange with the editor.
package payload

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Format is a wire format for payloads and results.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat accepts "json", "yaml" or "yml", case-insensitively.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unknown format %q: must be json or yaml", name)
	}
}

// FormatFromPath guesses the format from a file extension, falling back to
// fallback when the extension says nothing.
func FormatFromPath(path string, fallback Format) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".json":
		return FormatJSON
	default:
		return fallback
	}
}
