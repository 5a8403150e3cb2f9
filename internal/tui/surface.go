package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/fakeyudi/fieldedit/internal/selection"
	"github.com/fakeyudi/fieldedit/internal/surface"
)

// Surface is a terminal rendering surface: the field markup is edited as
// source in a textarea. It also hosts the menu and transient messages for the
// editor session, since both are drawn by the same program.
//
// All methods run on the Bubble Tea update goroutine.
type Surface struct {
	area     textarea.Model
	listener surface.Listener
	log      zerolog.Logger

	baseURL  string
	styles   []string
	fontSize int

	// guids holds one id per <img> in document order.
	guids    []string
	lastSel  selection.State
	lastText string

	menuDirty bool
	toast     string
	toastSeq  int
}

var _ surface.Surface = (*Surface)(nil)

// NewSurface returns a focused, empty surface.
func NewSurface(log zerolog.Logger) *Surface {
	ta := textarea.New()
	ta.ShowLineNumbers = true
	ta.Prompt = "  "
	ta.CharLimit = 0 // No limit
	ta.MaxHeight = 0
	ta.Placeholder = "Empty field"
	ta.SetWidth(80)
	ta.SetHeight(20)
	ta.Focus()
	return &Surface{
		area:    ta,
		log:     log.With().Str("component", "tui").Logger(),
		lastSel: selection.Regular(),
	}
}

func (s *Surface) Init(shell, baseURL string) error {
	if !strings.Contains(shell, "note-editable") {
		return fmt.Errorf("editor shell has no editable region")
	}
	s.baseURL = baseURL
	return nil
}

func (s *Surface) SetContent(html, baseURL string) error {
	s.baseURL = baseURL
	s.area.SetValue(html)
	s.lastText = s.area.Value()
	s.reindexImages()
	return nil
}

func (s *Surface) InjectStyle(css string) error {
	s.styles = append(s.styles, css)
	return nil
}

func (s *Surface) ApplyFormatting(fn surface.Function) error {
	if fn == surface.ClearFormatting {
		s.area.SetValue(stripFormatting(s.area.Value()))
		s.changed()
		return nil
	}
	sn, ok := snippets[fn]
	if !ok {
		return fmt.Errorf("formatting %q is not supported in the terminal", fn)
	}
	s.insertAround(sn.open, sn.close)
	return nil
}

func (s *Surface) InsertCloze(index int) error {
	s.insertAround(fmt.Sprintf("{{c%d::", index), "}}")
	return nil
}

func (s *Surface) DeleteImage(guid string) error {
	doc := s.area.Value()
	spans := imageSpans(doc)
	for i, id := range s.guids {
		if id != guid || i >= len(spans) {
			continue
		}
		sp := spans[i]
		s.guids = append(s.guids[:i], s.guids[i+1:]...)
		s.area.SetValue(doc[:sp.start] + doc[sp.end:])
		s.changed()
		return nil
	}
	return fmt.Errorf("no image with id %q", guid)
}

func (s *Surface) SetFontSize(px int) error {
	s.fontSize = px
	return nil
}

func (s *Surface) SetListener(l surface.Listener) { s.listener = l }

// InvalidateMenu marks the menu for redraw.
func (s *Surface) InvalidateMenu() { s.menuDirty = true }

// ShowTransientMessage shows text in the status bar until it expires.
func (s *Surface) ShowTransientMessage(text string) {
	s.toast = text
	s.toastSeq++
}

// insertAround inserts open+close at the cursor and leaves the cursor between
// them. Snippets never contain newlines.
func (s *Surface) insertAround(open, close string) {
	s.area.InsertString(open + close)
	if n := len([]rune(close)); n > 0 {
		s.area.SetCursor(s.column() - n)
	}
	s.changed()
}

// column is the cursor's rune column in the current logical line.
func (s *Surface) column() int {
	li := s.area.LineInfo()
	return li.StartColumn + li.ColumnOffset
}

// cursorOffset converts the cursor position into a byte offset of Value().
func (s *Surface) cursorOffset() int {
	lines := strings.Split(s.area.Value(), "\n")
	row := s.area.Line()
	if row >= len(lines) {
		row = len(lines) - 1
	}
	off := 0
	for _, l := range lines[:row] {
		off += len(l) + 1
	}
	line := []rune(lines[row])
	col := min(max(s.column(), 0), len(line))
	return off + len(string(line[:col]))
}

// changed reports the edit buffer to the listener when it differs from the
// last reported text.
func (s *Surface) changed() {
	text := s.area.Value()
	if text == s.lastText {
		return
	}
	s.lastText = text
	s.reindexImages()
	s.emit(surface.TextChanged{Text: text})
}

func (s *Surface) reindexImages() {
	n := len(imageSpans(s.area.Value()))
	for len(s.guids) < n {
		s.guids = append(s.guids, uuid.NewString())
	}
	s.guids = s.guids[:n]
}

// syncSelection reports an image selection when the cursor sits on an <img>
// tag, and a regular one otherwise.
func (s *Surface) syncSelection() {
	sel := selection.Regular()
	off := s.cursorOffset()
	for i, sp := range imageSpans(s.area.Value()) {
		if sp.contains(off) && i < len(s.guids) {
			sel = selection.Image(s.guids[i])
			break
		}
	}
	if sel == s.lastSel {
		return
	}
	s.lastSel = sel
	s.emit(surface.SelectionChanged{Selection: sel})
}

func (s *Surface) emit(ev surface.Event) {
	if s.listener != nil {
		s.listener(ev)
	}
}

// update forwards a key or other message to the textarea and reports what
// changed.
func (s *Surface) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	s.area, cmd = s.area.Update(msg)
	s.changed()
	s.syncSelection()
	return cmd
}

func (s *Surface) setSize(width, height int) {
	s.area.SetWidth(width)
	s.area.SetHeight(max(height, 1))
}

// Value returns the current markup.
func (s *Surface) Value() string { return s.area.Value() }
