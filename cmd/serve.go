package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/fakeyudi/fieldedit/internal/editor"
	"github.com/fakeyudi/fieldedit/internal/surface/jsonl"
)

var (
	servePayload string
	serveResume  string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Drive an external rendering surface over JSON lines on stdio",
	Long: `serve writes surface commands to stdout as one JSON object per line and
reads surface events and user actions from stdin the same way. The last line
written is the session result.

With --payload -, the payload is the first JSON value on stdin and the events
follow it on the same stream.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		types := openNoteTypes()
		conn := jsonl.NewConn(cmd.OutOrStdout())

		deps := baseDeps(types)
		deps.Menu = conn
		deps.Notifier = conn
		deps.Results = conn

		st, err := loadStartup(servePayload, serveResume, cmd.InOrStdin())
		if err != nil {
			return editor.Abort(err, deps)
		}

		ctrl, err := editor.Start(st.payload, conn, deps)
		if err != nil {
			// The cancelled result has already been written.
			return err
		}
		retireDraft(st.resumed)

		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()

		tasks := make(chan func())
		watchNoteTypes(ctx, types, func() {
			select {
			case tasks <- func() { _ = ctrl.RefreshModelStyle() }:
			case <-ctx.Done():
			}
		})

		return jsonl.Serve(ctx, st.rest, conn, ctrl, tasks, logger)
	},
}

func init() {
	serveCmd.Flags().StringVarP(&servePayload, "payload", "p", "", "startup payload file (json or yaml, - for the first JSON value on stdin)")
	serveCmd.Flags().StringVar(&serveResume, "resume", "", "resume a draft instead of reading a payload (the latest, or --resume=ID)")
	serveCmd.Flags().Lookup("resume").NoOptDefVal = latestDraft
	rootCmd.AddCommand(serveCmd)
}
