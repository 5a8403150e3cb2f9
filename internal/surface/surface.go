// Package surface defines the boundary with the rich-text rendering surface.
//
// The surface is an opaque engine. The controller sends it commands and never
// waits for acknowledgement; the surface reports back through events delivered
// to a single Listener, one at a time, on the host's event sequence.
package surface

import "github.com/fakeyudi/fieldedit/internal/selection"

// Surface is the command side of the protocol. Errors are informational only:
// the caller logs them and carries on.
type Surface interface {
	// Init loads the editor shell document. baseURL resolves relative media
	// references.
	Init(shell, baseURL string) error
	SetContent(html, baseURL string) error
	InjectStyle(css string) error
	ApplyFormatting(fn Function) error
	InsertCloze(index int) error
	DeleteImage(guid string) error
	// SetFontSize applies the default font size hint, in px.
	SetFontSize(px int) error
	// SetListener registers the single receiver of events. A nil listener
	// discards events.
	SetListener(l Listener)
}

// Listener receives events from the surface.
type Listener func(Event)

// Event is either TextChanged or SelectionChanged.
type Event interface {
	event()
}

// TextChanged carries the full new text of the field.
type TextChanged struct {
	Text string
}

// SelectionChanged carries the new selection classification.
type SelectionChanged struct {
	Selection selection.State
}

func (TextChanged) event()      {}
func (SelectionChanged) event() {}
