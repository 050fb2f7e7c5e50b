package trigger

import "fmt"

// NoteKind selects the sound a trigger point produces when the moving point passes it.
type NoteKind int

const (
	// Regular is the default click.
	Regular NoteKind = iota
	// Accent is the higher pitched click.
	Accent
)

// DefaultNoteKind is the kind given to trigger points placed without an explicit kind.
const DefaultNoteKind = Regular

func (k NoteKind) String() string {
	switch k {
	case Regular:
		return "regular"
	case Accent:
		return "accent"
	default:
		return fmt.Sprintf("NoteKind(%d)", int(k))
	}
}

// ParseNoteKind converts the names produced by String back into a NoteKind.
func ParseNoteKind(s string) (NoteKind, error) {
	switch s {
	case "regular":
		return Regular, nil
	case "accent":
		return Accent, nil
	default:
		return DefaultNoteKind, fmt.Errorf("unknown note kind: %q", s)
	}
}

// Point is a user-placed position on the loop that produces a beat when the moving point passes it.
type Point struct {
	// ID uniquely identifies the point for its lifetime in a Registry.
	ID string

	// Angle is the position of the point in degrees, always normalized to [0,360).
	Angle float64

	// Kind is the note the point produces.
	Kind NoteKind
}
