// Package profile manages the user's presentation preferences.
// The profile is stored at ~/.config/fieldedit/profile.json and is created
// once via the interactive setup flow, then applied to every editor session.
package profile

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/fakeyudi/fieldedit/internal/style"
)

// Profile holds user-level preferences set during first-run setup.
type Profile struct {
	FontFamily string `json:"font_family"` // empty keeps the note type's font
	CardZoom   int    `json:"card_zoom"`   // percent
	NightMode  bool   `json:"night_mode"`
}

// Default is the profile used before setup has run.
func Default() Profile {
	return Profile{CardZoom: 100}
}

// Appearance converts the profile into the editor's base stylesheet input.
func (p Profile) Appearance() style.Appearance {
	return style.Appearance{FontFamily: p.FontFamily, CardZoom: p.CardZoom, NightMode: p.NightMode}
}

// profilePath returns the path to the profile file.
func profilePath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "profile.json"), nil
}

// ConfigDir returns the fieldedit config directory.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "fieldedit"), nil
}

// Exists reports whether a profile file is present on disk.
func Exists() bool {
	p, err := profilePath()
	if err != nil {
		return false
	}
	_, err = os.Stat(p)
	return err == nil
}

// Load reads the profile from disk. Returns an error if the file is missing or malformed.
func Load() (*Profile, error) {
	p, err := profilePath()
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(p)
	if err != nil {
		return nil, fmt.Errorf("profile not found, run 'fieldedit setup' to configure: %w", err)
	}
	var prof Profile
	if err := json.Unmarshal(data, &prof); err != nil {
		return nil, fmt.Errorf("malformed profile at %s: %w", p, err)
	}
	return &prof, nil
}

// Save writes the profile to disk, creating the config directory if needed.
func Save(prof *Profile) error {
	p, err := profilePath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(prof, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(p, data, 0o644)
}

// Setup runs the setup wizard reading answers from in and writing prompts to
// out. If existing is non-nil, it seeds each prompt's default. The caller
// saves the result.
func Setup(in io.Reader, out io.Writer, existing *Profile) (*Profile, error) {
	r := bufio.NewReader(in)

	ask := func(prompt, defaultVal string) (string, error) {
		if defaultVal != "" {
			fmt.Fprintf(out, "%s [%s]: ", prompt, defaultVal)
		} else {
			fmt.Fprintf(out, "%s: ", prompt)
		}
		line, err := r.ReadString('\n')
		if err != nil && !(err == io.EOF && line != "") {
			return "", err
		}
		line = strings.TrimSpace(line)
		if line == "" {
			return defaultVal, nil
		}
		return line, nil
	}

	askBool := func(prompt string, defaultVal bool) (bool, error) {
		def := "n"
		if defaultVal {
			def = "y"
		}
		ans, err := ask(prompt+" (y/n)", def)
		if err != nil {
			return false, err
		}
		return strings.ToLower(ans) == "y" || strings.ToLower(ans) == "yes", nil
	}

	prof := Default()
	if existing != nil {
		prof = *existing
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "  ┌─────────────────────────────────┐")
	fmt.Fprintln(out, "  │   fieldedit · first-time setup  │")
	fmt.Fprintln(out, "  └─────────────────────────────────┘")
	fmt.Fprintln(out)

	var err error

	prof.FontFamily, err = ask("  Editor font family (blank keeps the note type's)", prof.FontFamily)
	if err != nil {
		return nil, err
	}

	zoom, err := ask("  Card zoom in percent", strconv.Itoa(prof.CardZoom))
	if err != nil {
		return nil, err
	}
	if z, convErr := strconv.Atoi(strings.TrimSuffix(zoom, "%")); convErr == nil && z > 0 {
		prof.CardZoom = z
	} else {
		fmt.Fprintf(out, "  Ignoring invalid zoom %q, keeping %d%%\n", zoom, prof.CardZoom)
	}

	prof.NightMode, err = askBool("  Night mode", prof.NightMode)
	if err != nil {
		return nil, err
	}

	fmt.Fprintln(out)
	return &prof, nil
}
