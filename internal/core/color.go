package core

// BinaryColor is the state of a single monochrome pixel.
type BinaryColor bool

// Pixel states.
const (
	Off BinaryColor = false
	On  BinaryColor = true
)

// String returns "on" or "off".
func (c BinaryColor) String() string {
	if c {
		return "on"
	}
	return "off"
}
