package jsonl

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"github.com/fakeyudi/fieldedit/internal/selection"
	"github.com/fakeyudi/fieldedit/internal/surface"
)

// Message is one line read from the peer.
type Message struct {
	Type      string `json:"type"`
	Text      string `json:"text,omitempty"`
	Selection string `json:"selection,omitempty"`
	GUID      string `json:"guid,omitempty"`
	Action    string `json:"action,omitempty"`
	Function  string `json:"function,omitempty"`
}

// Controller is the part of the editor session Serve drives.
type Controller interface {
	Menu() selection.MenuID
	ClozeAvailable() bool
	Dispatch(a selection.Action) bool
	ApplyFormatting(fn surface.Function) error
	InsertCloze() (int, error)
	Cancel() error
	Done() bool
}

const maxLineSize = 4 * 1024 * 1024

// Serve reads messages from r until the session finishes, the input ends or
// ctx is cancelled. Messages, and any function received on tasks, run on the
// calling goroutine one at a time. End of input before the session finished
// cancels it. Saving goes through the "action" message so it stays gated by
// the current menu. Cancel ctx after Serve returns to release the reader.
func Serve(ctx context.Context, r io.Reader, conn *Conn, ctrl Controller, tasks <-chan func(), log zerolog.Logger) error {
	lines := make(chan []byte)
	readErr := make(chan error, 1)
	go func() {
		scanner := bufio.NewScanner(r)
		scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
		for scanner.Scan() {
			line := append([]byte(nil), scanner.Bytes()...)
			select {
			case lines <- line:
			case <-ctx.Done():
				return
			}
		}
		readErr <- scanner.Err()
	}()

	for !ctrl.Done() {
		select {
		case <-ctx.Done():
			_ = ctrl.Cancel()
			return ctx.Err()
		case task := <-tasks:
			task()
		case line := <-lines:
			if len(line) == 0 {
				continue
			}
			var msg Message
			if err := json.Unmarshal(line, &msg); err != nil {
				log.Warn().Err(err).Msg("malformed message")
				_ = conn.send(Command{Command: "error", Error: fmt.Sprintf("malformed message: %v", err)})
				continue
			}
			if err := handle(conn, ctrl, msg); err != nil {
				log.Debug().Err(err).Str("type", msg.Type).Msg("message rejected")
				_ = conn.send(Command{Command: "error", Error: err.Error()})
			}
		case err := <-readErr:
			if !ctrl.Done() {
				log.Info().Msg("input closed, cancelling session")
				_ = ctrl.Cancel()
			}
			if err != nil {
				return fmt.Errorf("reading surface messages: %w", err)
			}
			return nil
		}
	}
	return nil
}

var errUnhandled = errors.New("action not available")

func handle(conn *Conn, ctrl Controller, msg Message) error {
	switch msg.Type {
	case "textChanged":
		conn.emit(surface.TextChanged{Text: msg.Text})
	case "selectionChanged":
		conn.emit(surface.SelectionChanged{Selection: selection.FromTag(msg.Selection, msg.GUID)})
	case "menu":
		m := ctrl.Menu()
		cloze := ctrl.ClozeAvailable()
		return conn.send(Command{Command: "menu", Menu: m, Actions: m.Actions(), Cloze: &cloze})
	case "action":
		if !ctrl.Dispatch(selection.Action(msg.Action)) {
			return fmt.Errorf("%w: %q", errUnhandled, msg.Action)
		}
	case "format":
		return ctrl.ApplyFormatting(surface.Function(msg.Function))
	case "cloze":
		_, err := ctrl.InsertCloze()
		return err
	case "cancel":
		return ctrl.Cancel()
	default:
		return fmt.Errorf("unknown message type %q", msg.Type)
	}
	return nil
}
