// Package rhyton carries the shared configuration for the rhyton data-tagging
// and visualization library. Every service takes an explicit Config instead
// of reading process-wide state, so two extensions can coexist in the same
// document without interfering.
package rhyton

import (
	"fmt"

	"github.com/rhyton-cad/rhyton/pkg/host"
)

// Storage flag suffixes. Each extension namespaces its document storage by
// prefixing these with its extension name.
const (
	suffixColorSchemes   = ".colorSchemes"
	suffixSettings       = ".settings"
	suffixOriginalColors = ".originalColors"
	suffixTextDots       = ".textDots"
	suffixGroups         = ".group"
)

// Shared constants used across records and exports.
const (
	// DefaultExtension is the namespace used when no extension name is given.
	DefaultExtension = "rhyton"

	// GUIDKey is the record field holding object identifiers.
	GUIDKey = "guid"

	// ColorKey is the record field holding assigned hex colours.
	ColorKey = "color"

	// NotAvailable marks objects that carry no value for the visualized key.
	NotAvailable = "n/a"

	// HexWhite is the neutral colour assigned to objects without a value.
	HexWhite = "ffffff"
)

// Config holds the per-extension settings that the original implementation
// kept in mutable class-level state. Values are plain data; derive storage
// flags through the accessor methods.
type Config struct {
	// Extension names the storage namespace inside the host document.
	Extension string `json:"-"`

	// UnitSuffix is appended to formatted numbers ("m" yields "12.5 m",
	// "12.5 m2" for areas).
	UnitSuffix string `json:"unit_suffix"`

	// RoundingDecimals is the display precision for formatted numbers. Zero
	// formats as integers.
	RoundingDecimals int `json:"rounding_decimals"`
}

// DefaultConfig returns the stock configuration for the given extension
// name. An empty name falls back to DefaultExtension.
func DefaultConfig(extension string) Config {
	if extension == "" {
		extension = DefaultExtension
	}
	return Config{
		Extension:        extension,
		UnitSuffix:       "m",
		RoundingDecimals: 2,
	}
}

// LoadConfig reads the extension settings from the document, or persists and
// returns the defaults when the document has none yet.
func LoadConfig(store host.ConfigStore, extension string) (Config, error) {
	cfg := DefaultConfig(extension)
	found, err := store.Get(cfg.SettingsFlag(), &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("loading settings %q: %w", cfg.SettingsFlag(), err)
	}
	if !found {
		if err := store.Save(cfg.SettingsFlag(), cfg); err != nil {
			return Config{}, fmt.Errorf("saving default settings %q: %w", cfg.SettingsFlag(), err)
		}
	}
	return cfg, nil
}

// SchemesFlag is the storage flag for the colour scheme table.
func (c Config) SchemesFlag() string { return c.Extension + suffixColorSchemes }

// SettingsFlag is the storage flag for the extension settings.
func (c Config) SettingsFlag() string { return c.Extension + suffixSettings }

// OriginalColorsFlag is the storage flag for stashed pre-override colours.
func (c Config) OriginalColorsFlag() string { return c.Extension + suffixOriginalColors }

// TextDotsFlag is the storage flag for ids of text dots rhyton created.
func (c Config) TextDotsFlag() string { return c.Extension + suffixTextDots }

// GroupsFlag is the storage flag for ids of groups rhyton created.
func (c Config) GroupsFlag() string { return c.Extension + suffixGroups }
