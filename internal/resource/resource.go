// Package resource supplies the editor shell document and the base URL used to
// resolve media references inside a field.
package resource

import (
	"embed"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
)

//go:embed assets/visual_editor.html
var assets embed.FS

const shellPath = "assets/visual_editor.html"

// Loader is what the editor needs from the resource layer.
type Loader interface {
	Shell() (string, error)
	BaseURL() string
}

// Bundle serves the embedded shell document. ShellOverride, when set, is read
// from disk instead, which lets a host ship its own shell.
type Bundle struct {
	MediaDir      string
	ShellOverride string
}

var _ Loader = Bundle{}

func (b Bundle) Shell() (string, error) {
	if b.ShellOverride != "" {
		data, err := os.ReadFile(b.ShellOverride)
		if err != nil {
			return "", fmt.Errorf("reading editor shell: %w", err)
		}
		return string(data), nil
	}
	data, err := assets.ReadFile(shellPath)
	if err != nil {
		return "", fmt.Errorf("reading embedded editor shell: %w", err)
	}
	return string(data), nil
}

// BaseURL returns a file:// URL for the media directory, with a trailing
// slash so relative references resolve inside it.
func (b Bundle) BaseURL() string {
	return BaseURL(b.MediaDir)
}

// BaseURL converts a media directory into a file:// base URL.
func BaseURL(dir string) string {
	if dir == "" {
		return ""
	}
	if abs, err := filepath.Abs(dir); err == nil {
		dir = abs
	}
	u := url.URL{Scheme: "file", Path: filepath.ToSlash(dir) + "/"}
	return u.String()
}
