package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fakeyudi/fieldedit/internal/cloze"
)

var nextClozePayload string

var nextClozeCmd = &cobra.Command{
	Use:   "next-cloze",
	Short: "Print the next free cloze number for a note",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := loadStartup(nextClozePayload, "", cmd.InOrStdin())
		if err != nil {
			return err
		}
		p := st.payload
		if err := p.Validate(); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), cloze.NextIndexFor(p.AllFields, *p.FieldIndex, *p.FieldText))
		return nil
	},
}

func init() {
	nextClozeCmd.Flags().StringVarP(&nextClozePayload, "payload", "p", "", "startup payload file (json or yaml, - for a JSON payload on stdin)")
	rootCmd.AddCommand(nextClozeCmd)
}
