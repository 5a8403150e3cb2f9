// Package editor implements the editor session controller: it owns the state
// of one field edit, drives the rendering surface, derives the contextual menu
// and produces the save/cancel result.
//
// A Controller is not safe for concurrent use. The host must deliver surface
// events and user actions from a single goroutine, one at a time.
package editor

import (
	"errors"
	"fmt"
	"reflect"
	"slices"
	"time"

	"github.com/rs/zerolog"

	"github.com/fakeyudi/fieldedit/internal/cloze"
	"github.com/fakeyudi/fieldedit/internal/selection"
	"github.com/fakeyudi/fieldedit/internal/session"
	"github.com/fakeyudi/fieldedit/internal/style"
	"github.com/fakeyudi/fieldedit/internal/surface"
)

var (
	// ErrSessionClosed is returned by every command once a result was emitted.
	ErrSessionClosed = errors.New("editor session is closed")
	// ErrClozeUnavailable is returned by InsertCloze for non-cloze note types.
	ErrClozeUnavailable = errors.New("cloze deletion is not available for this note type")
	// ErrUnknownFunction is returned for formatting functions the shell lacks.
	ErrUnknownFunction = errors.New("unknown formatting function")
)

const (
	msgStartFailed     = "Unable to start visual editor"
	msgTemplateCSSFail = "Failed to load template CSS"
)

// Controller is the editor session controller.
type Controller struct {
	sess    *session.EditSession
	surface surface.Surface
	deps    Deps
	log     zerolog.Logger

	baseURL        string
	clozeAvailable bool
	done           bool

	// menu is derived once per selection change.
	menu selection.MenuID
}

// Start validates p and opens a session on s. Validation is all-or-nothing:
// on failure the caller is notified, a Cancelled result is delivered, no
// command reaches the surface, and a *session.StartupError is returned. A nil
// s, including a typed nil pointer, counts as an unresolvable surface.
func Start(p session.Payload, s surface.Surface, deps Deps) (*Controller, error) {
	deps = deps.withDefaults()
	log := deps.Log.With().Str("component", "editor").Logger()

	sess, err := session.New(p)
	if err == nil && isNil(s) {
		err = &session.StartupError{Reason: "no rendering surface", Err: session.ErrSurfaceUnavailable}
	}
	var shell string
	if err == nil {
		if shell, err = deps.Resources.Shell(); err != nil {
			err = &session.StartupError{Reason: "editor shell unavailable", Err: err}
		}
	}
	if err != nil {
		return nil, Abort(err, deps)
	}

	c := &Controller{
		sess:    sess,
		surface: s,
		deps:    deps,
		log:     log.With().Str("session", sess.ID).Logger(),
		baseURL: deps.Resources.BaseURL(),
	}
	c.setup(shell)
	return c, nil
}

// Abort reports a session that could not start: the notice is shown and a
// Cancelled result delivered through deps, exactly as Start does for an
// invalid payload. Hosts use it when the payload cannot even be read. The
// returned error is a *session.StartupError wrapping err.
func Abort(err error, deps Deps) error {
	deps = deps.withDefaults()
	var se *session.StartupError
	if !errors.As(err, &se) {
		err = &session.StartupError{Reason: err.Error(), Err: err}
	}
	deps.Log.Warn().Str("component", "editor").Err(err).Msg("failed to start visual editor")
	deps.Notifier.ShowTransientMessage(msgStartFailed)
	deps.Results.Deliver(session.Cancelled())
	return err
}

func isNil(s surface.Surface) bool {
	if s == nil {
		return true
	}
	switch v := reflect.ValueOf(s); v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return v.IsNil()
	}
	return false
}

// setup loads the shell, styles and content into the surface, in that order,
// then publishes the initial menu.
func (c *Controller) setup(shell string) {
	s := c.surface
	s.SetListener(c.HandleEvent)

	c.issue("init", s.Init(shell, c.baseURL))
	c.issue("injectStyle", s.InjectStyle(c.deps.Appearance.CSS()))
	c.injectModelStyle()
	c.issue("setContent", s.SetContent(c.sess.CurrentText, c.baseURL))
	c.issue("setFontSize", s.SetFontSize(style.DynamicFontSize(c.sess.CurrentText)))

	c.clozeAvailable = c.detectCloze()
	c.saveDraft()
	c.invalidateMenu()
}

func (c *Controller) detectCloze() bool {
	ok, err := c.deps.NoteTypes.IsCloze(c.sess.ModelID)
	if err != nil {
		c.log.Warn().Err(err).Int64("model", c.sess.ModelID).Msg("cloze detection failed, hiding cloze button")
		return false
	}
	if ok {
		c.log.Debug().Msg("cloze detected, enabling cloze button")
	}
	return ok
}

func (c *Controller) injectModelStyle() {
	raw, lookupErr := c.deps.NoteTypes.ModelCSS(c.sess.ModelID)
	css, err := style.Resolve(c.sess.ModelID, raw, lookupErr)
	if err != nil {
		c.log.Warn().Err(err).Msg("using default stylesheet")
		c.deps.Notifier.ShowTransientMessage(msgTemplateCSSFail)
	}
	c.issue("injectStyle", c.surface.InjectStyle(css))
}

// issue logs a failed surface command. Commands are never retried.
func (c *Controller) issue(name string, err error) {
	if err != nil {
		c.log.Warn().Err(err).Str("command", name).Msg("surface command failed")
	}
}

// HandleEvent applies one surface event. Events arriving after the session
// finished are dropped.
func (c *Controller) HandleEvent(ev surface.Event) {
	if c.done {
		c.log.Debug().Type("event", ev).Msg("dropping event after session end")
		return
	}
	switch ev := ev.(type) {
	case surface.TextChanged:
		c.sess.CurrentText = ev.Text
		c.sess.UpdatedAt = time.Now()
		c.saveDraft()
	case surface.SelectionChanged:
		c.setSelection(ev.Selection)
	default:
		c.log.Warn().Type("event", ev).Msg("unhandled surface event")
	}
}

func (c *Controller) setSelection(s selection.State) {
	previous := c.sess.Selection
	c.sess.Selection = s
	if s != previous {
		c.invalidateMenu()
	}
}

// resetSelection forces the Regular state. The surface does not reliably
// report a selection change after an image is deleted, so the state is
// corrected here instead of waiting for an event.
func (c *Controller) resetSelection() {
	c.sess.Selection = selection.Regular()
	c.invalidateMenu()
}

func (c *Controller) invalidateMenu() {
	c.menu = selection.MenuFor(c.sess.Selection, c.log)
	c.deps.Menu.InvalidateMenu()
}

// Menu returns the contextual menu for the current selection.
func (c *Controller) Menu() selection.MenuID { return c.menu }

// Actions lists the menu actions currently exposed. It is empty once the
// session has finished.
func (c *Controller) Actions() []selection.Action {
	if c.done {
		return nil
	}
	return c.menu.Actions()
}

// Dispatch runs a menu action. It returns false when the action is not
// handled in the current state, leaving it to the host's default handling.
func (c *Controller) Dispatch(a selection.Action) bool {
	if c.done {
		return false
	}
	switch a {
	case selection.ActionSave:
		if !c.menu.Exposes(selection.ActionSave) {
			c.log.Debug().Msg("save is not reachable from the current menu")
			return false
		}
		c.log.Info().Msg("save button pressed")
		return c.Save() == nil
	case selection.ActionDeleteImage:
		if c.sess.Selection.Kind() != selection.KindImage {
			return false
		}
		c.deleteSelectedImage()
		return true
	}
	return false
}

func (c *Controller) deleteSelectedImage() {
	guid := c.sess.Selection.GUID()
	c.issue("deleteImage", c.surface.DeleteImage(guid))
	c.resetSelection()
}

// ApplyFormatting sends a formatting command to the surface.
func (c *Controller) ApplyFormatting(fn surface.Function) error {
	if c.done {
		return ErrSessionClosed
	}
	if _, ok := fn.JSName(); !ok {
		c.log.Debug().Str("function", string(fn)).Msg("skipping functionality")
		return fmt.Errorf("%w: %q", ErrUnknownFunction, fn)
	}
	c.issue("applyFormatting", c.surface.ApplyFormatting(fn))
	return nil
}

// ClozeAvailable reports whether the note type is a cloze type, which gates
// the cloze affordance.
func (c *Controller) ClozeAvailable() bool { return c.clozeAvailable }

// NextClozeIndex computes the next free cloze group across all fields, using
// the edit buffer in place of the stale snapshot of the edited field.
func (c *Controller) NextClozeIndex() int {
	return cloze.NextIndexFor(c.sess.AllFields, c.sess.FieldIndex, c.sess.CurrentText)
}

// InsertCloze computes the next cloze index and asks the surface to insert a
// cloze deletion with it.
func (c *Controller) InsertCloze() (int, error) {
	if c.done {
		return 0, ErrSessionClosed
	}
	if !c.clozeAvailable {
		return 0, ErrClozeUnavailable
	}
	idx := c.NextClozeIndex()
	c.issue("insertCloze", c.surface.InsertCloze(idx))
	return idx, nil
}

// RefreshModelStyle resolves the note type's CSS again and injects it. Hosts
// call this when the note type definition changes on disk.
func (c *Controller) RefreshModelStyle() error {
	if c.done {
		return ErrSessionClosed
	}
	c.injectModelStyle()
	return nil
}

// Save finishes the session with the current text.
func (c *Controller) Save() error {
	if c.done {
		return ErrSessionClosed
	}
	c.finish(session.Saved(c.sess.CurrentText, c.sess.FieldIndex))
	return nil
}

// Cancel finishes the session without a text result.
func (c *Controller) Cancel() error {
	if c.done {
		return ErrSessionClosed
	}
	c.finish(session.Cancelled())
	return nil
}

func (c *Controller) finish(r session.Result) {
	c.done = true
	if c.deps.Drafts != nil {
		if err := c.deps.Drafts.Delete(c.sess.ID); err != nil {
			c.log.Warn().Err(err).Msg("failed to delete draft")
		}
	}
	c.log.Info().Bool("saved", r.Saved).Msg("session finished")
	c.deps.Results.Deliver(r)
}

func (c *Controller) saveDraft() {
	if c.deps.Drafts == nil {
		return
	}
	if err := c.deps.Drafts.Save(c.sess); err != nil {
		c.log.Warn().Err(err).Msg("failed to save draft")
	}
}

// Done reports whether the result has been emitted.
func (c *Controller) Done() bool { return c.done }

// Text returns the current edit buffer.
func (c *Controller) Text() string { return c.sess.CurrentText }

func (c *Controller) FieldIndex() int { return c.sess.FieldIndex }

func (c *Controller) Selection() selection.State { return c.sess.Selection }

// Snapshot returns a copy of the session state.
func (c *Controller) Snapshot() session.EditSession {
	s := *c.sess
	s.AllFields = slices.Clone(c.sess.AllFields)
	return s
}
