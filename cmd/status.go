package cmd

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/fakeyudi/fieldedit/internal/cloze"
	"github.com/fakeyudi/fieldedit/internal/session"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the open editing drafts, most recent first",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := session.NewStore()
		if err != nil {
			return err
		}

		drafts, err := store.List()
		if err != nil {
			return err
		}
		if len(drafts) == 0 {
			cmd.Println("no open draft")
			return nil
		}

		for i, s := range drafts {
			if i > 0 {
				cmd.Println()
			}
			cmd.Printf("Session: %s\n", s.ID)
			cmd.Printf("Started: %s\n", s.StartedAt.Format(time.RFC3339))
			cmd.Printf("Last edit: %s ago\n", time.Since(s.UpdatedAt).Round(time.Second).String())
			cmd.Printf("Field: %d of %d\n", s.FieldIndex+1, len(s.AllFields))
			cmd.Printf("Note type: %d\n", s.ModelID)
			cmd.Printf("Characters: %d\n", len([]rune(s.CurrentText)))
			cmd.Printf("Next cloze: %d\n", cloze.NextIndexFor(s.AllFields, s.FieldIndex, s.CurrentText))
			cmd.Printf("Resume with: fieldedit edit --resume=%s\n", s.ID)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
