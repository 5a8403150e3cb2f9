package notetype

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

const sample = `
notetypes:
  - id: 1
    name: Basic
    css: |
      .card { font-family: arial; }
  - id: 2
    name: Cloze
    type: cloze
    css: ".card { color: red; }"
  - id: 3
    name: Bare
`

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func openSample(t *testing.T) *FileProvider {
	t.Helper()
	path := filepath.Join(t.TempDir(), "notetypes.yaml")
	writeFile(t, path, sample)
	p, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	return p
}

func TestModelCSS(t *testing.T) {
	p := openSample(t)

	css, err := p.ModelCSS(1)
	if err != nil {
		t.Fatalf("ModelCSS(1): %v", err)
	}
	if css != ".card { font-family: arial; }\n" {
		t.Errorf("ModelCSS(1) = %q", css)
	}

	if _, err := p.ModelCSS(3); err == nil {
		t.Error("expected error for note type without css")
	}
	if _, err := p.ModelCSS(99); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestIsCloze(t *testing.T) {
	p := openSample(t)

	tests := []struct {
		id   int64
		want bool
	}{
		{1, false},
		{2, true},
		{3, false},
	}
	for _, tt := range tests {
		got, err := p.IsCloze(tt.id)
		if err != nil {
			t.Fatalf("IsCloze(%d): %v", tt.id, err)
		}
		if got != tt.want {
			t.Errorf("IsCloze(%d) = %v, want %v", tt.id, got, tt.want)
		}
	}
	if _, err := p.IsCloze(42); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestParseRejectsDuplicateIDs(t *testing.T) {
	_, err := Parse([]byte("notetypes:\n  - id: 1\n  - id: 1\n"))
	if err == nil {
		t.Fatal("expected duplicate id error")
	}
}

func TestReloadKeepsPreviousOnError(t *testing.T) {
	p := openSample(t)
	writeFile(t, p.Path(), "notetypes: [this is: not valid")

	if err := p.Reload(); err == nil {
		t.Fatal("expected parse error")
	}
	if _, err := p.ModelCSS(1); err != nil {
		t.Errorf("previous note types should survive a failed reload: %v", err)
	}
}

func TestOpenMissingFile(t *testing.T) {
	if _, err := Open(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestWatchReloadsOnWrite(t *testing.T) {
	p := openSample(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changed := make(chan struct{}, 16)
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, p, zerolog.Nop(), func() { changed <- struct{}{} })
	}()

	updated := "notetypes:\n  - id: 1\n    css: \".card { color: blue; }\"\n"
	deadline := time.After(5 * time.Second)
	tick := time.NewTicker(50 * time.Millisecond)
	defer tick.Stop()

	// The watcher registers asynchronously, so keep writing until it notices.
loop:
	for {
		select {
		case <-changed:
			break loop
		case <-tick.C:
			writeFile(t, p.Path(), updated)
		case <-deadline:
			t.Fatal("watcher did not report a change")
		}
	}

	css, err := p.ModelCSS(1)
	if err != nil {
		t.Fatalf("ModelCSS after reload: %v", err)
	}
	if css != ".card { color: blue; }" {
		t.Errorf("css after reload = %q", css)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Watch returned %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Watch did not return after cancel")
	}
}
