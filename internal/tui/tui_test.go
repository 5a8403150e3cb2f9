package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fakeyudi/fieldedit/internal/editor"
	"github.com/fakeyudi/fieldedit/internal/selection"
	"github.com/fakeyudi/fieldedit/internal/session"
)

type noteTypes struct{ cloze bool }

func (noteTypes) ModelCSS(int64) (string, error) { return ".card { font-size: 12px; }", nil }
func (n noteTypes) IsCloze(int64) (bool, error)  { return n.cloze, nil }

type fixture struct {
	m      Model
	surf   *Surface
	ctrl   *editor.Controller
	result *session.Result
}

func newFixture(t *testing.T, text string, cloze bool) *fixture {
	t.Helper()
	f := &fixture{surf: NewSurface(zerolog.Nop())}
	idx, model := 0, int64(9)
	ctrl, err := editor.Start(session.Payload{
		FieldText:  &text,
		FieldIndex: &idx,
		AllFields:  []string{text},
		ModelID:    &model,
	}, f.surf, editor.Deps{
		NoteTypes: noteTypes{cloze: cloze},
		Menu:      f.surf,
		Notifier:  f.surf,
		Results:   editor.ResultFunc(func(r session.Result) { f.result = &r }),
	})
	require.NoError(t, err)
	f.ctrl = ctrl
	f.m = New(ctrl, f.surf)
	f.send(tea.WindowSizeMsg{Width: 100, Height: 30})
	return f
}

func (f *fixture) send(msg tea.Msg) tea.Cmd {
	next, cmd := f.m.Update(msg)
	f.m = next.(Model)
	return cmd
}

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

func alt(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s), Alt: true} }

func TestTypingReachesController(t *testing.T) {
	f := newFixture(t, "hello", false)
	f.send(runes("!"))
	assert.Equal(t, "hello!", f.ctrl.Text())
}

func TestSaveQuitsWithLatestText(t *testing.T) {
	f := newFixture(t, "a", false)
	f.send(runes("b"))
	cmd := f.send(tea.KeyMsg{Type: tea.KeyCtrlS})

	require.NotNil(t, f.result)
	assert.True(t, f.result.Saved)
	assert.Equal(t, "ab", *f.result.Text)
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestEscapeCancels(t *testing.T) {
	f := newFixture(t, "a", false)
	f.send(runes("b"))
	f.send(tea.KeyMsg{Type: tea.KeyEsc})

	require.NotNil(t, f.result)
	assert.False(t, f.result.Saved)
	assert.Nil(t, f.result.Text)
}

func TestBoldInsertsSnippet(t *testing.T) {
	f := newFixture(t, "hi ", false)
	f.send(alt("b"))
	assert.Equal(t, "hi <b></b>", f.ctrl.Text())

	f.send(runes("x"))
	assert.Equal(t, "hi <b>x</b>", f.ctrl.Text(), "cursor is left inside the tag")
}

func TestClearFormatting(t *testing.T) {
	f := newFixture(t, "<b>bold</b> <div>block</div>", false)
	f.send(alt("x"))
	assert.Equal(t, "bold <div>block</div>", f.ctrl.Text())
}

func TestImageSelectionSwitchesMenu(t *testing.T) {
	f := newFixture(t, `ab<img src="x.png">cd`, false)
	f.surf.area.SetCursor(4)
	f.send(tea.KeyMsg{Type: tea.KeyRight})

	assert.Equal(t, selection.KindImage, f.ctrl.Selection().Kind())
	assert.Equal(t, selection.MenuImage, f.m.Menu())

	f.send(tea.KeyMsg{Type: tea.KeyCtrlS})
	assert.Nil(t, f.result, "save is not offered on the image menu")
	assert.NotEmpty(t, f.surf.toast)

	f.send(tea.KeyMsg{Type: tea.KeyCtrlD})
	assert.Equal(t, "abcd", f.ctrl.Text())
	assert.Equal(t, selection.Regular(), f.ctrl.Selection())
	assert.Equal(t, selection.MenuStandard, f.m.Menu())
}

func TestCtrlDOutsideImageDeletesCharacter(t *testing.T) {
	f := newFixture(t, "abc", false)
	f.surf.area.SetCursor(1)
	f.send(tea.KeyMsg{Type: tea.KeyCtrlD})
	assert.Equal(t, "ac", f.ctrl.Text())
}

func TestClozeKey(t *testing.T) {
	f := newFixture(t, "", true)
	f.send(alt("c"))
	assert.Equal(t, "{{c1::}}", f.ctrl.Text())

	f.send(runes("a"))
	assert.Equal(t, "{{c1::a}}", f.ctrl.Text())
}

func TestClozeKeyWithoutClozeType(t *testing.T) {
	f := newFixture(t, "x", false)
	f.send(alt("c"))
	assert.Equal(t, "x", f.ctrl.Text())
	assert.Contains(t, f.surf.toast, "cloze")
}

func TestRefreshStyleReinjects(t *testing.T) {
	f := newFixture(t, "x", false)
	before := len(f.surf.styles)
	f.send(RefreshStyleMsg{})
	assert.Len(t, f.surf.styles, before+1)
	assert.Contains(t, f.surf.styles[len(f.surf.styles)-1], ".note-editable")
}

func TestToastExpires(t *testing.T) {
	f := newFixture(t, "x", false)
	f.surf.ShowTransientMessage("hello")
	f.send(toastExpiredMsg{seq: f.surf.toastSeq - 1})
	assert.Equal(t, "hello", f.surf.toast, "stale expiry keeps the newer toast")
	f.send(toastExpiredMsg{seq: f.surf.toastSeq})
	assert.Empty(t, f.surf.toast)
}

func TestViewShowsMenu(t *testing.T) {
	f := newFixture(t, "x", true)
	f.send(tea.WindowSizeMsg{Width: 300, Height: 30})
	v := f.m.View()
	assert.Contains(t, v, "save")
	assert.Contains(t, v, "cloze")
	assert.Contains(t, v, "note type 9")
}

func TestInitRejectsShellWithoutEditable(t *testing.T) {
	s := NewSurface(zerolog.Nop())
	assert.Error(t, s.Init("<html></html>", ""))
}

func TestImageSpans(t *testing.T) {
	doc := `a<IMG src="1.png"><b>x</b><img src='2.png'/>`
	spans := imageSpans(doc)
	require.Len(t, spans, 2)
	assert.Equal(t, `<IMG src="1.png">`, doc[spans[0].start:spans[0].end])
	assert.Equal(t, `<img src='2.png'/>`, doc[spans[1].start:spans[1].end])
}

func TestStripFormattingKeepsOtherMarkup(t *testing.T) {
	in := `<DIV class="x"><STRONG>a</STRONG> <span style="color:red">b</span> <img src=a.png> {{c1::c}}</DIV>`
	assert.Equal(t, `<DIV class="x">a b <img src=a.png> {{c1::c}}</DIV>`, stripFormatting(in))
}

func TestDeleteImageUnknownGUID(t *testing.T) {
	s := NewSurface(zerolog.Nop())
	require.NoError(t, s.SetContent(`<img src="a.png">`, ""))
	assert.Error(t, s.DeleteImage("missing"))
	assert.Len(t, s.guids, 1)
}
