package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// ErrNoDraft is returned by Load when no draft file exists on disk.
var ErrNoDraft = errors.New("no open draft")

// Store persists the drafts of open EditSessions so an interrupted edit can
// be resumed. Each session has its own draft, keyed by session ID, so
// concurrent sessions never touch each other's files.
type Store interface {
	Save(s *EditSession) error
	Load(id string) (*EditSession, error) // returns ErrNoDraft if none exists
	// List returns every draft, most recently updated first.
	List() ([]*EditSession, error)
	Delete(id string) error
}

// Latest returns the most recently updated draft in st, or ErrNoDraft.
func Latest(st Store) (*EditSession, error) {
	drafts, err := st.List()
	if err != nil {
		return nil, err
	}
	if len(drafts) == 0 {
		return nil, ErrNoDraft
	}
	return drafts[0], nil
}

// diskStore is the concrete Store that writes to the XDG data directory.
type diskStore struct {
	dir string
}

// NewStore returns a Store backed by the XDG data directory.
// Path: $XDG_DATA_HOME/fieldedit/draft-<id>.json or ~/.local/share/fieldedit/draft-<id>.json
func NewStore() (Store, error) {
	dir, err := DataDir()
	if err != nil {
		return nil, fmt.Errorf("resolving data directory: %w", err)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}
	return &diskStore{dir: dir}, nil
}

const (
	draftPrefix = "draft-"
	draftSuffix = ".json"
)

func (d *diskStore) path(id string) (string, error) {
	if id == "" || id == "." || id == ".." || filepath.Base(id) != id {
		return "", fmt.Errorf("invalid draft id %q", id)
	}
	return filepath.Join(d.dir, draftPrefix+id+draftSuffix), nil
}

// DataDir returns the fieldedit-specific XDG data directory.
func DataDir() (string, error) {
	base := os.Getenv("XDG_DATA_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(base, "fieldedit"), nil
}

// Save marshals s to JSON and writes it atomically via a temp file + os.Rename.
func (d *diskStore) Save(s *EditSession) (err error) {
	path, err := d.path(s.ID)
	if err != nil {
		return err
	}
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to persist draft: %w", err)
	}

	tmp, err := os.CreateTemp(d.dir, ".draft-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to persist draft: %w", err)
	}
	tmpName := tmp.Name()

	defer func() {
		if err != nil {
			os.Remove(tmpName)
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to persist draft: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("failed to persist draft: %w", err)
	}

	if err = os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("failed to persist draft: %w", err)
	}
	return nil
}

// Load reads and unmarshals the draft of session id.
// Returns ErrNoDraft if the file does not exist.
func (d *diskStore) Load(id string) (*EditSession, error) {
	path, err := d.path(id)
	if err != nil {
		return nil, err
	}
	return readDraft(path)
}

func readDraft(path string) (*EditSession, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNoDraft
		}
		return nil, fmt.Errorf("failed to read draft: %w", err)
	}

	var s EditSession
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse draft: %w", err)
	}
	return &s, nil
}

// List reads every draft in the data directory.
func (d *diskStore) List() ([]*EditSession, error) {
	paths, err := filepath.Glob(filepath.Join(d.dir, draftPrefix+"*"+draftSuffix))
	if err != nil {
		return nil, fmt.Errorf("listing drafts: %w", err)
	}
	drafts := make([]*EditSession, 0, len(paths))
	for _, p := range paths {
		s, err := readDraft(p)
		if errors.Is(err, ErrNoDraft) {
			// Finished between Glob and read.
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("%s: %w", filepath.Base(p), err)
		}
		drafts = append(drafts, s)
	}
	sort.SliceStable(drafts, func(i, j int) bool {
		return drafts[i].UpdatedAt.After(drafts[j].UpdatedAt)
	})
	return drafts, nil
}

// Delete removes the draft of session id from disk.
func (d *diskStore) Delete(id string) error {
	path, err := d.path(id)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to delete draft: %w", err)
	}
	return nil
}
