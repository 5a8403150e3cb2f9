// Package selection classifies what the user currently has selected inside the
// editable surface and derives the contextual menu from it.
package selection

// Kind identifies which variant of State is active.
type Kind int

const (
	KindRegular Kind = iota
	KindImage
	// KindUnknown stands in for selection tags reported by a newer surface.
	KindUnknown
)

// String returns the wire tag for k.
func (k Kind) String() string {
	switch k {
	case KindRegular:
		return "regular"
	case KindImage:
		return "image"
	default:
		return "unknown"
	}
}

// ParseKind maps a wire tag to a Kind. Unrecognised tags map to KindUnknown.
func ParseKind(tag string) Kind {
	switch tag {
	case "regular", "":
		return KindRegular
	case "image":
		return KindImage
	default:
		return KindUnknown
	}
}

// State is the current selection. It is a plain value: comparing two States
// with == tells whether the selection changed.
type State struct {
	kind Kind
	guid string
	tag  string // raw tag, kept for diagnostics when kind is KindUnknown
}

// Regular is the state when nothing special is selected.
func Regular() State { return State{kind: KindRegular} }

// Image is the state when an image element is selected. guid identifies the
// element for deletion.
func Image(guid string) State { return State{kind: KindImage, guid: guid} }

// FromTag builds a State from a surface-reported tag and guid. The guid is
// dropped for every kind except KindImage.
func FromTag(tag, guid string) State {
	switch k := ParseKind(tag); k {
	case KindImage:
		return Image(guid)
	case KindRegular:
		return Regular()
	default:
		return State{kind: k, tag: tag}
	}
}

func (s State) Kind() Kind { return s.kind }

// GUID returns the selected image's identifier, or "" for other kinds.
func (s State) GUID() string { return s.guid }

// Tag returns the wire tag the state was built from.
func (s State) Tag() string {
	if s.kind == KindUnknown {
		return s.tag
	}
	return s.kind.String()
}

func (s State) String() string {
	if s.kind == KindImage {
		return "image(" + s.guid + ")"
	}
	return s.Tag()
}
