package style

import (
	"fmt"
	"strings"
)

// Appearance holds the presentation preferences applied once when a session
// opens.
type Appearance struct {
	FontFamily string
	CardZoom   int // percent, 0 means 100
	NightMode  bool
}

// CSS renders the base stylesheet for a.
func (a Appearance) CSS() string {
	var sb strings.Builder
	zoom := a.CardZoom
	if zoom <= 0 {
		zoom = 100
	}
	fmt.Fprintf(&sb, "body { zoom: %.2f; }\n", float64(zoom)/100)
	if a.FontFamily != "" {
		fmt.Fprintf(&sb, "%s { font-family: %q; }\n", EditableSelector, a.FontFamily)
	}
	if a.NightMode {
		sb.WriteString("body, " + EditableSelector + " { background-color: #303030; color: #ffffff; }\n")
		sb.WriteString(EditableSelector + " a { color: #8ab4f8; }\n")
	}
	return sb.String()
}
