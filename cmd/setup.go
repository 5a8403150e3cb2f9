package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/fakeyudi/fieldedit/internal/profile"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Configure editor appearance (re-run anytime to edit settings)",
	// Setup must work before a profile exists.
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSetup(cmd.InOrStdin(), cmd.OutOrStdout(), false)
	},
}

// runSetup asks for appearance preferences, seeded from the saved profile,
// and saves the answers.
func runSetup(in io.Reader, out io.Writer, firstRun bool) error {
	if firstRun {
		fmt.Fprintln(out)
		fmt.Fprintln(out, "  Welcome to fieldedit! Let's pick how fields look while you edit them.")
	}

	var existing *profile.Profile
	if profile.Exists() {
		if p, err := profile.Load(); err == nil {
			existing = p
		}
	}

	prof, err := profile.Setup(in, out, existing)
	if err != nil {
		return fmt.Errorf("setup cancelled: %w", err)
	}
	if err := profile.Save(prof); err != nil {
		return fmt.Errorf("saving profile: %w", err)
	}

	font := prof.FontFamily
	if font == "" {
		font = "note type default"
	}
	mode := "day"
	if prof.NightMode {
		mode = "night"
	}
	fmt.Fprintf(out, "  ✓ Saved: %s, %d%% zoom, %s mode.\n", font, prof.CardZoom, mode)
	fmt.Fprintln(out, "  Edit a field with: fieldedit edit --payload <file>")
	return nil
}

func init() {
	rootCmd.AddCommand(setupCmd)
}
