package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zerolog.Level
	}{
		{"", zerolog.InfoLevel},
		{"debug", zerolog.DebugLevel},
		{"warn", zerolog.WarnLevel},
		{"nonsense", zerolog.InfoLevel},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNewWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "fieldedit.log")

	log, closer, err := New(Options{Path: path, Level: "debug"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	log.Debug().Str("k", "v").Msg("hello")
	if err := closer.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading log: %v", err)
	}
	if !strings.Contains(string(data), `"message":"hello"`) || !strings.Contains(string(data), `"k":"v"`) {
		t.Errorf("unexpected log contents: %s", data)
	}
}

func TestDefaultPathUsesXDGState(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("XDG_STATE_HOME", tmp)

	got, err := DefaultPath()
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join(tmp, "fieldedit", "fieldedit.log"); got != want {
		t.Errorf("DefaultPath = %q, want %q", got, want)
	}
}

func TestNewMirrorsToConsole(t *testing.T) {
	var console bytes.Buffer
	log, closer, err := New(Options{Path: filepath.Join(t.TempDir(), "f.log"), Console: &console})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer closer.Close()

	log.Debug().Msg("hidden")
	log.Warn().Msg("visible")
	if out := console.String(); !strings.Contains(out, "visible") || strings.Contains(out, "hidden") {
		t.Errorf("console output = %q", out)
	}
}
