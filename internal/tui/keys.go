package tui

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/fakeyudi/fieldedit/internal/surface"
)

// KeyMap defines the editor host bindings. Anything not bound here goes to the
// textarea.
type KeyMap struct {
	Save        key.Binding
	Cancel      key.Binding
	DeleteImage key.Binding
	Cloze       key.Binding
	Format      map[surface.Function]key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Save:        key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save")),
		Cancel:      key.NewBinding(key.WithKeys("esc", "ctrl+c"), key.WithHelp("esc", "cancel")),
		DeleteImage: key.NewBinding(key.WithKeys("ctrl+d"), key.WithHelp("ctrl+d", "delete image")),
		Cloze:       key.NewBinding(key.WithKeys("alt+c"), key.WithHelp("alt+c", "cloze")),
		Format: map[surface.Function]key.Binding{
			surface.Bold:            key.NewBinding(key.WithKeys("alt+b"), key.WithHelp("alt+b", "bold")),
			surface.Italic:          key.NewBinding(key.WithKeys("alt+i"), key.WithHelp("alt+i", "italic")),
			surface.Underline:       key.NewBinding(key.WithKeys("alt+u"), key.WithHelp("alt+u", "underline")),
			surface.ClearFormatting: key.NewBinding(key.WithKeys("alt+x"), key.WithHelp("alt+x", "clear")),
			surface.UnorderedList:   key.NewBinding(key.WithKeys("alt+l"), key.WithHelp("alt+l", "list")),
			surface.OrderedList:     key.NewBinding(key.WithKeys("alt+o"), key.WithHelp("alt+o", "numbered")),
			surface.HorizontalRule:  key.NewBinding(key.WithKeys("alt+h"), key.WithHelp("alt+h", "rule")),
			surface.AlignLeft:       key.NewBinding(key.WithKeys("alt+1"), key.WithHelp("alt+1", "left")),
			surface.AlignCenter:     key.NewBinding(key.WithKeys("alt+2"), key.WithHelp("alt+2", "center")),
			surface.AlignRight:      key.NewBinding(key.WithKeys("alt+3"), key.WithHelp("alt+3", "right")),
			surface.AlignJustify:    key.NewBinding(key.WithKeys("alt+4"), key.WithHelp("alt+4", "justify")),
		},
	}
}
