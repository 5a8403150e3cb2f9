package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/x/term"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/fakeyudi/fieldedit/internal/config"
	"github.com/fakeyudi/fieldedit/internal/logging"
	"github.com/fakeyudi/fieldedit/internal/profile"
)

// cfg holds the merged configuration, populated in PersistentPreRunE.
var cfg config.Config

// activeProfile holds the loaded user profile.
var activeProfile *profile.Profile

// logger is the application logger, populated in PersistentPreRunE.
var logger = zerolog.Nop()

var logCloser io.Closer

var (
	logLevel string
	verbose  bool
)

var rootCmd = &cobra.Command{
	Use:           "fieldedit",
	Short:         "Edit a single rich-text flashcard field",
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip setup check for the setup command itself.
		if cmd.Name() == "setup" {
			return nil
		}

		// First-run: profile missing → run setup wizard automatically.
		// Only do this when stdin is an interactive terminal and the command
		// does not own stdin.
		if !profile.Exists() && cmd.Name() != "serve" {
			if term.IsTerminal(os.Stdin.Fd()) {
				if err := runSetup(cmd.InOrStdin(), cmd.OutOrStdout(), true); err != nil {
					return err
				}
			}
			// Non-interactive (tests, pipes): continue with defaults, no profile required.
		}

		// Load profile (optional, may not exist in non-interactive environments).
		activeProfile = nil
		if profile.Exists() {
			p, err := profile.Load()
			if err != nil {
				return fmt.Errorf("loading profile: %w", err)
			}
			activeProfile = p
		}

		// Load and merge config files.
		global, err := config.LoadGlobal()
		if err != nil {
			return fmt.Errorf("loading global config: %w", err)
		}
		project, err := config.LoadProject()
		if err != nil {
			return fmt.Errorf("loading project config: %w", err)
		}
		cfg = config.Merge(global, project)
		if logLevel != "" {
			cfg.LogLevel = logLevel
		}

		opts := logging.Options{Level: cfg.LogLevel}
		if verbose {
			opts.Console = cmd.ErrOrStderr()
		}
		log, closer, err := logging.New(opts)
		if err != nil {
			return fmt.Errorf("opening log: %w", err)
		}
		logger, logCloser = log, closer
		logger.Debug().Str("command", cmd.Name()).Msg("starting")
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if logCloser == nil {
			return nil
		}
		err := logCloser.Close()
		logCloser = nil
		return err
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "override the configured log level")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "also log to stderr")
}

// Execute runs the root command. Exits with code 1 on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// GetConfig returns the merged configuration for use by subcommands.
func GetConfig() config.Config {
	return cfg
}

// GetProfile returns the active user profile, or the default one before
// setup has run.
func GetProfile() profile.Profile {
	if activeProfile == nil {
		return profile.Default()
	}
	return *activeProfile
}
