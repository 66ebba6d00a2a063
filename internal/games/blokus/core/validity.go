package core

// Validity classifies a cell for a given color. It is UI feedback only;
// placement legality is always re-derived from occupancy.
type Validity uint8

const (
	Valid   Validity = iota // empty and not edge-touching the color
	Invalid                 // occupied or edge-touching the color
	Anchor                  // valid and a legal touch point
)

// Char returns the rune used in text renderings of a validity map.
func (v Validity) Char() rune {
	switch v {
	case Invalid:
		return 'x'
	case Anchor:
		return '+'
	default:
		return '.'
	}
}

func (v Validity) String() string {
	switch v {
	case Invalid:
		return "invalid"
	case Anchor:
		return "anchor"
	default:
		return "valid"
	}
}
