package payload

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/fakeyudi/fieldedit/internal/session"
)

// Parser decodes a startup payload. Decoding does not validate; that happens
// when the session starts. A payload that cannot be decoded is reported as a
// *session.StartupError, the same as one that fails validation.
type Parser interface {
	Parse(data []byte) (session.Payload, error)
}

// JSONParser parses a JSON payload.
type JSONParser struct{}

func (p *JSONParser) Parse(data []byte) (session.Payload, error) {
	var pl session.Payload
	if err := json.Unmarshal(data, &pl); err != nil {
		return session.Payload{}, malformed("JSON", err)
	}
	return pl, nil
}

// YAMLParser parses a YAML payload.
type YAMLParser struct{}

func (p *YAMLParser) Parse(data []byte) (session.Payload, error) {
	var pl session.Payload
	if err := yaml.Unmarshal(data, &pl); err != nil {
		return session.Payload{}, malformed("YAML", err)
	}
	return pl, nil
}

func malformed(format string, err error) error {
	return &session.StartupError{
		Reason: fmt.Sprintf("failed to parse %s payload: %v", format, err),
		Err:    err,
	}
}

// NewParser returns the parser for f.
func NewParser(f Format) Parser {
	if f == FormatYAML {
		return &YAMLParser{}
	}
	return &JSONParser{}
}

// ReadFile reads and parses the payload at path, picking the parser from the
// file extension.
func ReadFile(path string) (session.Payload, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return session.Payload{}, fmt.Errorf("reading payload: %w", err)
	}
	return NewParser(FormatFromPath(path, FormatJSON)).Parse(data)
}

// ReadStream decodes one JSON payload from the front of r and returns a reader
// over everything after it, so a payload and an event stream can share stdin.
func ReadStream(r io.Reader) (session.Payload, io.Reader, error) {
	dec := json.NewDecoder(r)
	var pl session.Payload
	if err := dec.Decode(&pl); err != nil {
		return session.Payload{}, io.MultiReader(dec.Buffered(), r), malformed("JSON", err)
	}
	return pl, io.MultiReader(dec.Buffered(), r), nil
}
