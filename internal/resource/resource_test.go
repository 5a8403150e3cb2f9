package resource

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestEmbeddedShell(t *testing.T) {
	shell, err := Bundle{}.Shell()
	if err != nil {
		t.Fatalf("Shell: %v", err)
	}
	for _, want := range []string{`class="note-editable"`, "window.insertCloze", "window.deleteImage"} {
		if !strings.Contains(shell, want) {
			t.Errorf("shell missing %q", want)
		}
	}
}

func TestShellOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shell.html")
	if err := os.WriteFile(path, []byte("<html>custom</html>"), 0o644); err != nil {
		t.Fatal(err)
	}
	shell, err := Bundle{ShellOverride: path}.Shell()
	if err != nil {
		t.Fatalf("Shell: %v", err)
	}
	if shell != "<html>custom</html>" {
		t.Errorf("Shell = %q", shell)
	}

	if _, err := (Bundle{ShellOverride: path + ".missing"}).Shell(); err == nil {
		t.Error("expected error for missing override")
	}
}

func TestBaseURL(t *testing.T) {
	if got := BaseURL(""); got != "" {
		t.Errorf("BaseURL(\"\") = %q, want empty", got)
	}

	dir := t.TempDir()
	got := BaseURL(dir)
	if !strings.HasPrefix(got, "file://") || !strings.HasSuffix(got, "/") {
		t.Errorf("BaseURL(%q) = %q", dir, got)
	}

	got = BaseURL("/media/my collection")
	if got != "file:///media/my%20collection/" {
		t.Errorf("BaseURL with space = %q", got)
	}
}
