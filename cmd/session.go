package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/fakeyudi/fieldedit/internal/editor"
	"github.com/fakeyudi/fieldedit/internal/notetype"
	"github.com/fakeyudi/fieldedit/internal/payload"
	"github.com/fakeyudi/fieldedit/internal/resource"
	"github.com/fakeyudi/fieldedit/internal/session"
)

// latestDraft is the --resume value used when the flag is given without an id.
const latestDraft = "latest"

// startup is what a command needs to open a session.
type startup struct {
	payload session.Payload
	// rest is stdin after the payload, when the payload was read from it.
	rest io.Reader
	// resumed is the id of the draft the payload came from.
	resumed string
}

// loadStartup reads the startup payload from path, or from a draft when
// resume is set ("latest" picks the most recently edited one). A path of "-"
// reads the payload as the first JSON value on stdin and leaves the rest of
// the stream in startup.rest.
func loadStartup(path, resume string, stdin io.Reader) (startup, error) {
	st := startup{rest: stdin}
	if resume != "" {
		store, err := session.NewStore()
		if err != nil {
			return st, err
		}
		var draft *session.EditSession
		if resume == latestDraft {
			draft, err = session.Latest(store)
		} else {
			draft, err = store.Load(resume)
		}
		if err != nil {
			return st, fmt.Errorf("resuming draft: %w", err)
		}
		logger.Info().Str("session", draft.ID).Msg("resuming draft")
		st.payload, st.resumed = draft.Payload(), draft.ID
		return st, nil
	}

	var err error
	switch path {
	case "":
		err = fmt.Errorf("--payload is required (or --resume)")
	case "-":
		st.payload, st.rest, err = payload.ReadStream(stdin)
	default:
		st.payload, err = payload.ReadFile(path)
	}
	return st, err
}

// retireDraft removes the draft a session was resumed from. The new session
// has already written its own draft by then.
func retireDraft(id string) {
	if id == "" {
		return
	}
	store, err := session.NewStore()
	if err == nil {
		err = store.Delete(id)
	}
	if err != nil {
		logger.Warn().Err(err).Str("session", id).Msg("failed to remove resumed draft")
	}
}

// resultFormat picks the output format: the flag wins over config.
func resultFormat(flag string) (payload.Format, error) {
	if flag != "" {
		return payload.ParseFormat(flag)
	}
	return payload.ParseFormat(cfg.ResultFormat)
}

// openNoteTypes opens the configured note type file. A missing setting or an
// unreadable file yields nil, and the editor falls back to the default
// stylesheet without cloze support.
func openNoteTypes() *notetype.FileProvider {
	if cfg.NoteTypesPath == "" {
		return nil
	}
	p, err := notetype.Open(cfg.NoteTypesPath)
	if err != nil {
		logger.Warn().Err(err).Str("path", cfg.NoteTypesPath).Msg("note types unavailable")
		return nil
	}
	return p
}

// baseDeps wires the collaborators shared by every host.
func baseDeps(types *notetype.FileProvider) editor.Deps {
	deps := editor.Deps{
		Appearance: GetProfile().Appearance(),
		Resources:  resource.Bundle{MediaDir: cfg.MediaDir, ShellOverride: cfg.ShellPath},
		Log:        logger,
	}
	if types != nil {
		deps.NoteTypes = types
	}
	if store, err := session.NewStore(); err == nil {
		deps.Drafts = store
	} else {
		logger.Warn().Err(err).Msg("drafts disabled")
	}
	return deps
}

// watchNoteTypes calls onChange after each reload of the note type file until
// ctx is cancelled.
func watchNoteTypes(ctx context.Context, types *notetype.FileProvider, onChange func()) {
	if types == nil || !cfg.Watch() {
		return
	}
	go func() {
		if err := notetype.Watch(ctx, types, logger, onChange); err != nil {
			logger.Warn().Err(err).Msg("note type watcher stopped")
		}
	}()
}
