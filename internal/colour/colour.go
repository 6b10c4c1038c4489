// Package colour implements rhyton's colour-scheme core: conversions between
// colour representations, curated and generated palettes, gradient
// interpolation, and the named key-to-colour scheme tables persisted in the
// host document.
package colour

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Sentinel errors surfaced by the colour core.
var (
	// ErrInvalidColorFormat reports a malformed hex colour string.
	ErrInvalidColorFormat = errors.New("invalid colour format")

	// ErrTooManyKeys reports a colour request beyond the distinguishable
	// ceiling (MaxDistinct).
	ErrTooManyKeys = errors.New("too many keys, colours are indistinguishable")

	// ErrInvalidArgument reports an out-of-range count or endpoint.
	ErrInvalidArgument = errors.New("invalid argument")
)

// RGB represents a colour with 8-bit channels.
type RGB struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// String returns the colour as "rgb(r, g, b)".
func (c RGB) String() string {
	return fmt.Sprintf("rgb(%d, %d, %d)", c.R, c.G, c.B)
}

// Hex returns the colour as a 6-digit lowercase hex string without a leading
// '#'. This is the canonical form stored in the document.
func (c RGB) Hex() string {
	return fmt.Sprintf("%02x%02x%02x", c.R, c.G, c.B)
}

// ParseHex parses a hex colour string into an RGB. A leading '#' is
// optional; the remainder must be exactly 6 hex digits. Returns
// ErrInvalidColorFormat otherwise.
func ParseHex(hex string) (RGB, error) {
	hex = strings.TrimPrefix(hex, "#")

	if len(hex) != 6 {
		return RGB{}, fmt.Errorf("%w: expected 6 hex digits, got %q", ErrInvalidColorFormat, hex)
	}

	r, err := strconv.ParseUint(hex[0:2], 16, 8)
	if err != nil {
		return RGB{}, fmt.Errorf("%w: bad red component in %q", ErrInvalidColorFormat, hex)
	}

	g, err := strconv.ParseUint(hex[2:4], 16, 8)
	if err != nil {
		return RGB{}, fmt.Errorf("%w: bad green component in %q", ErrInvalidColorFormat, hex)
	}

	b, err := strconv.ParseUint(hex[4:6], 16, 8)
	if err != nil {
		return RGB{}, fmt.Errorf("%w: bad blue component in %q", ErrInvalidColorFormat, hex)
	}

	return RGB{R: uint8(r), G: uint8(g), B: uint8(b)}, nil
}

// NormalizeHex returns the canonical lowercase no-'#' form of a hex colour
// string, validating it on the way.
func NormalizeHex(hex string) (string, error) {
	c, err := ParseHex(hex)
	if err != nil {
		return "", err
	}
	return c.Hex(), nil
}

// FromHSV converts an HSV colour to RGB. Hue, saturation and value are each
// in [0, 1]. Channels round half-up; HSV is a generation-only representation
// and is never reconstructed from hex.
func FromHSV(h, s, v float64) RGB {
	r, g, b := colorful.Hsv(h*360, s, v).RGB255()
	return RGB{R: r, G: g, B: b}
}
