// Package tui provides a Bubble Tea host for an editor session, with the
// field markup edited in a terminal rendering surface.
package tui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/fakeyudi/fieldedit/internal/editor"
	"github.com/fakeyudi/fieldedit/internal/selection"
	"github.com/fakeyudi/fieldedit/internal/surface"
)

// ── Styles ────────────

var (
	// Title bar at the very top
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("62")).
			Padding(0, 2)

	// Menu bar under the title
	menuBarStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("235")).
			Foreground(lipgloss.Color("245"))

	menuKeyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("62")).
			Padding(0, 1)

	menuLabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			Background(lipgloss.Color("235")).
			Padding(0, 1)

	imageMenuStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("214")).
			Background(lipgloss.Color("235")).
			Padding(0, 1)

	statusBarStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("235")).
			Foreground(lipgloss.Color("245")).
			Padding(0, 1)

	toastStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("178"))
)

const toastTTL = 3 * time.Second

// RefreshStyleMsg asks the session to re-inject the note type stylesheet.
// Send it when the note type file changes.
type RefreshStyleMsg struct{}

type toastExpiredMsg struct{ seq int }

// ── Model ────────────────────

// Model is the root Bubble Tea model for an editor session.
type Model struct {
	ctrl  *editor.Controller
	surf  *Surface
	keys  KeyMap
	title string

	width  int
	height int
	ready  bool

	menu      selection.MenuID
	seenToast int
}

// New creates a model for a started session whose surface is surf.
func New(ctrl *editor.Controller, surf *Surface) Model {
	snap := ctrl.Snapshot()
	return Model{
		ctrl:  ctrl,
		surf:  surf,
		keys:  DefaultKeyMap(),
		title: fmt.Sprintf("field %d of %d · note type %d", snap.FieldIndex+1, len(snap.AllFields), snap.ModelID),
		menu:  ctrl.Menu(),
	}
}

// ── Bubble Tea interface ───────────────

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{textarea.Blink}
	if m.surf.toast != "" {
		cmds = append(cmds, expireToast(m.surf.toastSeq))
	}
	return tea.Batch(cmds...)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.KeyMsg:
		cmd = m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		// title(1) + menu(1) + status(1) = 3 fixed rows
		m.surf.setSize(m.width, m.height-3)
		return m, nil

	case RefreshStyleMsg:
		_ = m.ctrl.RefreshModelStyle()

	case toastExpiredMsg:
		if msg.seq == m.surf.toastSeq {
			m.surf.toast = ""
		}
		return m, nil

	default:
		cmd = m.surf.update(msg)
	}
	return m.after(cmd)
}

func (m Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		_ = m.ctrl.Cancel()
		return nil
	case key.Matches(msg, m.keys.Save):
		if !m.ctrl.Dispatch(selection.ActionSave) {
			m.surf.ShowTransientMessage("Save is unavailable while an image is selected")
		}
		return nil
	case key.Matches(msg, m.keys.DeleteImage) && m.ctrl.Dispatch(selection.ActionDeleteImage):
		m.surf.syncSelection()
		return nil
	case key.Matches(msg, m.keys.Cloze):
		if _, err := m.ctrl.InsertCloze(); errors.Is(err, editor.ErrClozeUnavailable) {
			m.surf.ShowTransientMessage("Cloze deletion needs a cloze note type")
		}
		m.surf.syncSelection()
		return nil
	}
	for fn, b := range m.keys.Format {
		if key.Matches(msg, b) {
			if err := m.ctrl.ApplyFormatting(fn); err != nil {
				m.surf.ShowTransientMessage(err.Error())
			}
			m.surf.syncSelection()
			return nil
		}
	}
	return m.surf.update(msg)
}

// after quits once the session is finished and picks up menu and toast
// changes made while handling the message.
func (m Model) after(cmd tea.Cmd) (tea.Model, tea.Cmd) {
	if m.ctrl.Done() {
		return m, tea.Quit
	}
	if m.surf.menuDirty {
		m.menu = m.ctrl.Menu()
		m.surf.menuDirty = false
	}
	if m.surf.toastSeq != m.seenToast {
		m.seenToast = m.surf.toastSeq
		cmd = tea.Batch(cmd, expireToast(m.seenToast))
	}
	return m, cmd
}

func expireToast(seq int) tea.Cmd {
	return tea.Tick(toastTTL, func(time.Time) tea.Msg { return toastExpiredMsg{seq: seq} })
}

func (m Model) View() string {
	if !m.ready {
		return "Loading…"
	}

	// ── Row 1: title bar ──────────────────────────────────────────────────────
	title := titleStyle.Width(m.width).Render("  fieldedit  " + m.title)

	// ── Row 2: menu bar ───────────────────────────────────────────────────────
	menuRow := menuBarStyle.Width(m.width).Render(m.renderMenu())

	// ── Row 3…N-1: editable field ────────────────────────────────────────────
	content := m.surf.area.View()

	// ── Row N: status bar ─────────────────────────────────────────────────────
	left := "  esc cancel"
	if m.surf.toast != "" {
		left += "  " + toastStyle.Render(m.surf.toast)
	}
	right := fmt.Sprintf("%dpx", m.surf.fontSize)
	pad := m.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if pad < 1 {
		pad = 1
	}
	statusBar := statusBarStyle.Width(m.width).Render(left + strings.Repeat(" ", pad) + right)

	return lipgloss.JoinVertical(lipgloss.Left, title, menuRow, content, statusBar)
}

// renderMenu draws the menu derived for the current selection.
func (m Model) renderMenu() string {
	var parts []string
	if m.menu == selection.MenuImage {
		parts = append(parts, imageMenuStyle.Render("image"))
	}
	for _, a := range m.menu.Actions() {
		if b, ok := m.actionBinding(a); ok {
			parts = append(parts, item(b))
		}
	}
	if m.menu == selection.MenuStandard {
		for _, fn := range surface.Functions() {
			if b, ok := m.keys.Format[fn]; ok {
				parts = append(parts, item(b))
			}
		}
		if m.ctrl.ClozeAvailable() {
			parts = append(parts, item(m.keys.Cloze))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m Model) actionBinding(a selection.Action) (key.Binding, bool) {
	switch a {
	case selection.ActionSave:
		return m.keys.Save, true
	case selection.ActionDeleteImage:
		return m.keys.DeleteImage, true
	}
	return key.Binding{}, false
}

func item(b key.Binding) string {
	h := b.Help()
	return menuKeyStyle.Render(h.Key) + menuLabelStyle.Render(h.Desc)
}

// Menu returns the menu currently drawn.
func (m Model) Menu() selection.MenuID { return m.menu }

// NewProgram wraps m in a full-screen program.
func NewProgram(m Model, opts ...tea.ProgramOption) *tea.Program {
	return tea.NewProgram(m, append([]tea.ProgramOption{tea.WithAltScreen()}, opts...)...)
}
