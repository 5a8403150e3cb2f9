package cmd

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/fakeyudi/fieldedit/internal/editor"
	"github.com/fakeyudi/fieldedit/internal/payload"
	"github.com/fakeyudi/fieldedit/internal/session"
	"github.com/fakeyudi/fieldedit/internal/tui"
)

var (
	editPayload string
	editOut     string
	editFormat  string
	editResume  string
)

var editCmd = &cobra.Command{
	Use:   "edit",
	Short: "Edit a field in the terminal editor",
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := resultFormat(editFormat)
		if err != nil {
			return err
		}

		types := openNoteTypes()
		surf := tui.NewSurface(logger)
		result := session.Cancelled()

		deps := baseDeps(types)
		deps.Menu = surf
		deps.Notifier = surf
		deps.Results = editor.ResultFunc(func(r session.Result) { result = r })

		st, err := loadStartup(editPayload, editResume, cmd.InOrStdin())
		var ctrl *editor.Controller
		if err != nil {
			err = editor.Abort(err, deps)
		} else {
			ctrl, err = editor.Start(st.payload, surf, deps)
		}
		if err != nil {
			if werr := payload.WriteResult(editOut, cmd.OutOrStdout(), format, result); werr != nil {
				logger.Error().Err(werr).Msg("writing cancelled result")
			}
			return err
		}
		retireDraft(st.resumed)

		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()

		opts := []tea.ProgramOption{tea.WithContext(ctx)}
		if editPayload == "-" {
			// Stdin carried the payload; keys come from the terminal.
			opts = append(opts, tea.WithInputTTY())
		}
		prog := tui.NewProgram(tui.New(ctrl, surf), opts...)
		watchNoteTypes(ctx, types, func() { prog.Send(tui.RefreshStyleMsg{}) })

		if _, err := prog.Run(); err != nil {
			_ = ctrl.Cancel()
			return fmt.Errorf("running editor: %w", err)
		}
		if !ctrl.Done() {
			_ = ctrl.Cancel()
		}
		return payload.WriteResult(editOut, cmd.OutOrStdout(), format, result)
	},
}

func init() {
	editCmd.Flags().StringVarP(&editPayload, "payload", "p", "", "startup payload file (json or yaml, - for a JSON payload on stdin)")
	editCmd.Flags().StringVarP(&editOut, "out", "o", "", "write the result here instead of stdout")
	editCmd.Flags().StringVar(&editFormat, "format", "", "result format: json or yaml")
	editCmd.Flags().StringVar(&editResume, "resume", "", "resume a draft instead of reading a payload (the latest, or --resume=ID)")
	editCmd.Flags().Lookup("resume").NoOptDefVal = latestDraft
	rootCmd.AddCommand(editCmd)
}
