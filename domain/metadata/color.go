package metadata

import (
	"encoding/hex"

	"golang.org/x/xerrors"
)

// Color is an RGB background colour, written as six hex digits without a
// leading '#'.
type Color struct {
	R, G, B uint8
}

func ParseColor(s string) (Color, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return Color{}, xerrors.Errorf("invalid color %q: %w", s, err)
	}
	if len(b) != 3 {
		return Color{}, xerrors.Errorf("invalid color %q: expected 6 hex digits", s)
	}
	return Color{R: b[0], G: b[1], B: b[2]}, nil
}

func (c Color) String() string {
	return hex.EncodeToString([]byte{c.R, c.G, c.B})
}
