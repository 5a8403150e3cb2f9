package editor

import (
	"errors"

	"github.com/rs/zerolog"

	"github.com/fakeyudi/fieldedit/internal/notetype"
	"github.com/fakeyudi/fieldedit/internal/notify"
	"github.com/fakeyudi/fieldedit/internal/resource"
	"github.com/fakeyudi/fieldedit/internal/session"
	"github.com/fakeyudi/fieldedit/internal/style"
)

// ResultSink receives the terminal result of a session, exactly once.
type ResultSink interface {
	Deliver(r session.Result)
}

// ResultFunc adapts a function to ResultSink.
type ResultFunc func(session.Result)

func (f ResultFunc) Deliver(r session.Result) { f(r) }

// MenuHost is told when the contextual menu must be recomputed. The host then
// asks the controller for Menu().
type MenuHost interface {
	InvalidateMenu()
}

// MenuFunc adapts a function to MenuHost.
type MenuFunc func()

func (f MenuFunc) InvalidateMenu() { f() }

// Deps are the collaborators a Controller talks to. Zero values are replaced
// with inert defaults by Start.
type Deps struct {
	NoteTypes  notetype.Provider
	Appearance style.Appearance
	Resources  resource.Loader
	Notifier   notify.Notifier
	Menu       MenuHost
	Results    ResultSink
	// Drafts, when set, mirrors the session to disk after each text change.
	Drafts session.Store
	Log    zerolog.Logger
}

var errNoNoteTypes = errors.New("no note type provider configured")

type noNoteTypes struct{}

func (noNoteTypes) ModelCSS(int64) (string, error) { return "", errNoNoteTypes }
func (noNoteTypes) IsCloze(int64) (bool, error)    { return false, errNoNoteTypes }

func (d Deps) withDefaults() Deps {
	if d.NoteTypes == nil {
		d.NoteTypes = noNoteTypes{}
	}
	if d.Resources == nil {
		d.Resources = resource.Bundle{}
	}
	if d.Notifier == nil {
		d.Notifier = notify.Discard
	}
	if d.Menu == nil {
		d.Menu = MenuFunc(func() {})
	}
	if d.Results == nil {
		d.Results = ResultFunc(func(session.Result) {})
	}
	return d
}
