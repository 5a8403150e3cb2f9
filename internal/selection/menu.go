package selection

import "github.com/rs/zerolog"

// MenuID names the options menu shown for a selection.
type MenuID string

const (
	// MenuStandard carries formatting and save.
	MenuStandard MenuID = "visual_editor"
	// MenuImage carries image actions. Save is withheld while an image is
	// selected since saving would not change the field.
	MenuImage MenuID = "visual_editor_image"
)

// Action is a menu entry the host can dispatch back to the controller.
type Action string

const (
	ActionSave        Action = "save"
	ActionDeleteImage Action = "delete-image"
)

var menuActions = map[MenuID][]Action{
	MenuStandard: {ActionSave},
	MenuImage:    {ActionDeleteImage},
}

// Actions returns the actions exposed by m, in display order.
func (m MenuID) Actions() []Action {
	out := make([]Action, len(menuActions[m]))
	copy(out, menuActions[m])
	return out
}

// Exposes reports whether a is reachable from m.
func (m MenuID) Exposes(a Action) bool {
	for _, got := range menuActions[m] {
		if got == a {
			return true
		}
	}
	return false
}

// MenuFor derives the menu for s. Every known Kind has its own arm; new kinds
// land in the default arm, which falls back to the standard menu and records
// one warning.
func MenuFor(s State, log zerolog.Logger) MenuID {
	switch s.Kind() {
	case KindImage:
		log.Info().Msg("displaying image options menu")
		return MenuImage
	case KindRegular:
		log.Info().Msg("displaying regular options menu")
		return MenuStandard
	default:
		log.Warn().Str("selection", s.Tag()).Msg("unknown options menu type, displaying regular menu")
		return MenuStandard
	}
}
