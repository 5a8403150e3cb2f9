package payload

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/fakeyudi/fieldedit/internal/session"
)

// Renderer serializes a session result.
type Renderer interface {
	Render(r session.Result) ([]byte, error)
}

// JSONRenderer renders a result as indented JSON.
type JSONRenderer struct{}

func (r *JSONRenderer) Render(res session.Result) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(res); err != nil {
		return nil, fmt.Errorf("marshal result: %w", err)
	}
	return buf.Bytes(), nil
}

// YAMLRenderer renders a result as YAML.
type YAMLRenderer struct{}

func (r *YAMLRenderer) Render(res session.Result) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(res); err != nil {
		return nil, fmt.Errorf("marshal result: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("marshal result: %w", err)
	}
	return buf.Bytes(), nil
}

// NewRenderer returns the renderer for f.
func NewRenderer(f Format) Renderer {
	if f == FormatYAML {
		return &YAMLRenderer{}
	}
	return &JSONRenderer{}
}

// WriteResult renders res and writes it to path, or to w when path is empty.
// Files are written through a temp file and renamed into place.
func WriteResult(path string, w io.Writer, f Format, res session.Result) error {
	data, err := NewRenderer(f).Render(res)
	if err != nil {
		return err
	}
	if path == "" {
		_, err := w.Write(data)
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".fieldedit-result-*")
	if err != nil {
		return fmt.Errorf("creating result file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing result file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing result file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("renaming result file: %w", err)
	}
	return nil
}
