// Package surfacetest provides an in-memory Surface that records every command
// it receives, for use in tests.
package surfacetest

import (
	"fmt"

	"github.com/fakeyudi/fieldedit/internal/surface"
)

// Command is one recorded call.
type Command struct {
	Name string
	Args []any
}

func (c Command) String() string {
	return fmt.Sprintf("%s%v", c.Name, c.Args)
}

// Recorder is a surface.Surface that records commands. Set Fail to make a
// named command return an error.
type Recorder struct {
	Commands []Command
	Fail     map[string]error

	listener surface.Listener
}

var _ surface.Surface = (*Recorder)(nil)

func (r *Recorder) record(name string, args ...any) error {
	r.Commands = append(r.Commands, Command{Name: name, Args: args})
	return r.Fail[name]
}

func (r *Recorder) Init(shell, baseURL string) error { return r.record("init", shell, baseURL) }
func (r *Recorder) SetContent(html, baseURL string) error {
	return r.record("setContent", html, baseURL)
}
func (r *Recorder) InjectStyle(css string) error { return r.record("injectStyle", css) }
func (r *Recorder) ApplyFormatting(fn surface.Function) error {
	return r.record("applyFormatting", fn)
}
func (r *Recorder) InsertCloze(index int) error  { return r.record("insertCloze", index) }
func (r *Recorder) DeleteImage(guid string) error { return r.record("deleteImage", guid) }
func (r *Recorder) SetFontSize(px int) error      { return r.record("setFontSize", px) }

func (r *Recorder) SetListener(l surface.Listener) { r.listener = l }

// Emit delivers ev to the registered listener, as the real surface would.
func (r *Recorder) Emit(ev surface.Event) {
	if r.listener != nil {
		r.listener(ev)
	}
}

// Named returns the recorded commands called name, in order.
func (r *Recorder) Named(name string) []Command {
	var out []Command
	for _, c := range r.Commands {
		if c.Name == name {
			out = append(out, c)
		}
	}
	return out
}

// Reset forgets recorded commands but keeps the listener.
func (r *Recorder) Reset() { r.Commands = nil }
