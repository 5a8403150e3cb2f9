// Package jsonl drives an out-of-process rendering surface over a stream of
// JSON lines. Commands to the surface are written as one object per line;
// events and user actions are read back the same way.
package jsonl

import (
	"encoding/json"
	"fmt"
	"io"
	"sync"

	"github.com/fakeyudi/fieldedit/internal/selection"
	"github.com/fakeyudi/fieldedit/internal/session"
	"github.com/fakeyudi/fieldedit/internal/surface"
)

// Command is one line written to the peer.
type Command struct {
	Command  string             `json:"command"`
	Shell    string             `json:"shell,omitempty"`
	BaseURL  string             `json:"baseUrl,omitempty"`
	HTML     *string            `json:"html,omitempty"`
	CSS      string             `json:"css,omitempty"`
	Function string             `json:"function,omitempty"`
	Script   string             `json:"script,omitempty"`
	Index    int                `json:"index,omitempty"`
	GUID     string             `json:"guid,omitempty"`
	Size     int                `json:"size,omitempty"`
	Text     string             `json:"text,omitempty"`
	Menu     selection.MenuID   `json:"menu,omitempty"`
	Actions  []selection.Action `json:"actions,omitempty"`
	Cloze    *bool              `json:"cloze,omitempty"`
	Result   *session.Result    `json:"result,omitempty"`
	Error    string             `json:"error,omitempty"`
}

// Conn is a surface.Surface backed by a JSON-lines writer. It also serves as
// the menu host, notifier and result sink for the session, so a single peer
// sees everything the editor emits. Writes are serialized.
type Conn struct {
	mu       sync.Mutex
	enc      *json.Encoder
	listener surface.Listener
}

var _ surface.Surface = (*Conn)(nil)

// NewConn returns a Conn writing to w.
func NewConn(w io.Writer) *Conn {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	return &Conn{enc: enc}
}

func (c *Conn) send(cmd Command) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.enc.Encode(cmd); err != nil {
		return fmt.Errorf("writing %s command: %w", cmd.Command, err)
	}
	return nil
}

func (c *Conn) Init(shell, baseURL string) error {
	return c.send(Command{Command: "init", Shell: shell, BaseURL: baseURL})
}

func (c *Conn) SetContent(html, baseURL string) error {
	return c.send(Command{Command: "setContent", HTML: &html, BaseURL: baseURL})
}

func (c *Conn) InjectStyle(css string) error {
	return c.send(Command{Command: "injectStyle", CSS: css})
}

func (c *Conn) ApplyFormatting(fn surface.Function) error {
	script, ok := fn.JSName()
	if !ok {
		return fmt.Errorf("no shell entry point for %q", fn)
	}
	return c.send(Command{Command: "applyFormatting", Function: string(fn), Script: script})
}

func (c *Conn) InsertCloze(index int) error {
	return c.send(Command{Command: "insertCloze", Index: index})
}

func (c *Conn) DeleteImage(guid string) error {
	return c.send(Command{Command: "deleteImage", GUID: guid})
}

func (c *Conn) SetFontSize(px int) error {
	return c.send(Command{Command: "setFontSize", Size: px})
}

func (c *Conn) SetListener(l surface.Listener) {
	c.mu.Lock()
	c.listener = l
	c.mu.Unlock()
}

func (c *Conn) emit(ev surface.Event) {
	c.mu.Lock()
	l := c.listener
	c.mu.Unlock()
	if l != nil {
		l(ev)
	}
}

// InvalidateMenu tells the peer the menu is stale. The peer answers with a
// "menu" request.
func (c *Conn) InvalidateMenu() {
	_ = c.send(Command{Command: "invalidateMenu"})
}

// ShowTransientMessage forwards a notice to the peer.
func (c *Conn) ShowTransientMessage(text string) {
	_ = c.send(Command{Command: "toast", Text: text})
}

// Deliver writes the session result.
func (c *Conn) Deliver(r session.Result) {
	_ = c.send(Command{Command: "result", Result: &r})
}
