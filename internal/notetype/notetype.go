// Package notetype looks up note types (models): their card CSS and whether
// they are cloze types.
package notetype

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"gopkg.in/yaml.v3"
)

// ErrNotFound is returned when no note type has the requested id.
var ErrNotFound = errors.New("note type not found")

// Provider is the lookup the editor needs.
type Provider interface {
	ModelCSS(id int64) (string, error)
	IsCloze(id int64) (bool, error)
}

// Kind is the note type's template kind.
type Kind string

const (
	KindStandard Kind = "standard"
	KindCloze    Kind = "cloze"
)

// NoteType is one entry of the note type file.
type NoteType struct {
	ID   int64   `yaml:"id"`
	Name string  `yaml:"name"`
	Kind Kind    `yaml:"type"`
	CSS  *string `yaml:"css"`
}

type file struct {
	NoteTypes []NoteType `yaml:"notetypes"`
}

// FileProvider serves note types from a YAML file. Reload re-reads the file;
// lookups and reloads may run on different goroutines.
type FileProvider struct {
	path string

	mu    sync.RWMutex
	types map[int64]NoteType
}

var _ Provider = (*FileProvider)(nil)

// Open reads the note type file at path.
func Open(path string) (*FileProvider, error) {
	p := &FileProvider{path: path}
	if err := p.Reload(); err != nil {
		return nil, err
	}
	return p, nil
}

// Path returns the file the provider reads from.
func (p *FileProvider) Path() string { return p.path }

// Reload re-reads the file. On error the previous note types are kept.
func (p *FileProvider) Reload() error {
	data, err := os.ReadFile(p.path)
	if err != nil {
		return fmt.Errorf("reading note types: %w", err)
	}
	types, err := Parse(data)
	if err != nil {
		return fmt.Errorf("parsing note types %s: %w", p.path, err)
	}
	p.mu.Lock()
	p.types = types
	p.mu.Unlock()
	return nil
}

// Parse decodes a note type document keyed by id. Duplicate ids are an error.
func Parse(data []byte) (map[int64]NoteType, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, err
	}
	types := make(map[int64]NoteType, len(f.NoteTypes))
	for _, nt := range f.NoteTypes {
		if _, dup := types[nt.ID]; dup {
			return nil, fmt.Errorf("duplicate note type id %d", nt.ID)
		}
		if nt.Kind == "" {
			nt.Kind = KindStandard
		}
		types[nt.ID] = nt
	}
	return types, nil
}

func (p *FileProvider) lookup(id int64) (NoteType, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	nt, ok := p.types[id]
	if !ok {
		return NoteType{}, fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	return nt, nil
}

// ModelCSS returns the note type's CSS. A note type without a css key is an
// error, not an empty stylesheet.
func (p *FileProvider) ModelCSS(id int64) (string, error) {
	nt, err := p.lookup(id)
	if err != nil {
		return "", err
	}
	if nt.CSS == nil {
		return "", fmt.Errorf("note type %d has no css", id)
	}
	return *nt.CSS, nil
}

func (p *FileProvider) IsCloze(id int64) (bool, error) {
	nt, err := p.lookup(id)
	if err != nil {
		return false, err
	}
	return nt.Kind == KindCloze, nil
}
