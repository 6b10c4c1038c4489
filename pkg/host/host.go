// Package host defines the narrow interfaces rhyton expects from a CAD host
// integration. The core never talks to the host scripting API directly; it
// goes through these contracts so the same code runs against Rhino, a test
// double, or the file-backed document in internal/document.
//
// All colour values crossing this boundary are 6-digit lowercase hex strings
// without a leading '#'. Object identifiers are opaque strings (the host's
// guids).
package host

// ConfigStore persists JSON-compatible data in the host document, keyed by a
// flag string. This is the single source of truth for colour schemes and
// settings across sessions.
type ConfigStore interface {
	// Get unmarshals the value stored under flag into out. It returns false
	// with a nil error when the flag has never been saved.
	Get(flag string, out any) (bool, error)

	// Save persists value under flag, overwriting any prior value.
	Save(flag string, value any) error
}

// UserText reads and writes key/value pairs tagged onto host objects. The
// host stores all values as strings.
type UserText interface {
	// Value returns the tagged value for key on a single object. It returns
	// false with a nil error when the object carries no such key.
	Value(id, key string) (string, bool, error)

	// SetValue tags an object with a key/value pair.
	SetValue(id, key, value string) error

	// RemoveValue removes a key from an object. Removing an absent key is a
	// no-op.
	RemoveValue(id, key string) error

	// Keys lists all user text keys present on an object.
	Keys(id string) ([]string, error)
}

// Overrides controls the display colour of host objects.
type Overrides interface {
	// Color returns the object's current display colour.
	Color(id string) (string, error)

	// SetColor overrides the object's display colour.
	SetColor(id, hex string) error

	// ResetColor restores the object's display colour to the host default
	// (colour by layer or equivalent).
	ResetColor(id string) error
}

// Point is a location in document model space.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Box is an axis-aligned bounding box.
type Box struct {
	Min Point `json:"min"`
	Max Point `json:"max"`
}

// TopCenter returns the centre of the box's top face, where text dots are
// placed.
func (b Box) TopCenter() Point {
	return Point{
		X: (b.Min.X + b.Max.X) / 2,
		Y: (b.Min.Y + b.Max.Y) / 2,
		Z: b.Max.Z,
	}
}

// Geometry exposes the spatial queries rhyton needs for annotation placement.
type Geometry interface {
	// BoundingBox returns the combined bounding box of the given objects.
	BoundingBox(ids []string) (Box, error)
}

// TextDots creates and removes text-dot annotation objects.
type TextDots interface {
	// AddTextDot places a text dot and returns the id of the created object.
	AddTextDot(location Point, text, hex string) (string, error)

	// DeleteObject removes an object (used for text dot cleanup).
	DeleteObject(id string) error
}

// Groups manages host object groups.
type Groups interface {
	// CreateGroup groups the given objects under a new group and returns the
	// group identifier.
	CreateGroup(name string, ids []string) (string, error)

	// DissolveGroup removes a group, leaving its members in place.
	DissolveGroup(group string) error
}

// Document bundles every host capability rhyton uses. Integrations may
// implement the smaller interfaces individually; the high-level services take
// the narrowest one they need.
type Document interface {
	ConfigStore
	UserText
	Overrides
	Geometry
	TextDots
	Groups
}
