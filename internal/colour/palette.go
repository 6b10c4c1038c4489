package colour

import (
	"math/rand"
	"time"
)

// MaxDistinct is the practical ceiling for visually distinguishable hues.
// Requests at or beyond it fail with ErrTooManyKeys.
const MaxDistinct = 100

// Hue-spaced generation uses a fixed saturation and value so generated
// palettes stay in one perceptual band.
const (
	generateSaturation = 0.5
	generateValue      = 0.9
)

// defaultColors is the small curated tier, assigned before anything else.
var defaultColors = []string{
	"f44336", "e91e63", "9c27b0", "673ab7",
	"3f51b5", "2196f3", "03a9f4", "00bcd4",
	"009688", "4caf50", "8bc34a", "cddc39",
	"ffeb3b", "ffc107", "ff9800", "ff5722",
	"795548", "607d8b",
}

// additionalColors extends the default tier with darker variants.
var additionalColors = []string{
	"d32f2f", "c2185b", "7b1fa2", "512da8",
	"303f9f", "1976d2", "0288d1", "0097a7",
	"00796b", "388e3c", "689f38", "afb42b",
	"fbc02d", "ffa000", "f57c00", "e64a19",
	"5d4037", "616161", "455a64",
}

// DefaultColors returns the small curated tier of preset hex colours.
func DefaultColors() []string {
	out := make([]string, len(defaultColors))
	copy(out, defaultColors)
	return out
}

// ExtendedColors returns the default tier followed by the additional curated
// colours.
func ExtendedColors() []string {
	out := make([]string, 0, len(defaultColors)+len(additionalColors))
	out = append(out, defaultColors...)
	out = append(out, additionalColors...)
	return out
}

// Palette selects colours for scheme allocation. Selection within a tier is
// random; inject a seeded rand.Rand for reproducible tests.
type Palette struct {
	rng *rand.Rand
}

// NewPalette returns a palette with a time-seeded random source.
func NewPalette() *Palette {
	return NewPaletteWithRand(rand.New(rand.NewSource(time.Now().UnixNano())))
}

// NewPaletteWithRand returns a palette drawing from the given random source.
func NewPaletteWithRand(rng *rand.Rand) *Palette {
	return &Palette{rng: rng}
}

// Generate returns count hex colours sampled evenly around the hue circle at
// fixed saturation and value. Used when a request outgrows the curated
// tiers.
func (p *Palette) Generate(count int) []string {
	colors := make([]string, 0, count)
	for i := 0; i < count; i++ {
		h := float64(i) / float64(count)
		colors = append(colors, FromHSV(h, generateSaturation, generateValue).Hex())
	}
	return colors
}

// Pick returns count distinct hex colours, none of which appear in exclude.
// It draws from the default tier while it fits, then the extended tier, then
// evenly hue-spaced generated colours. Requests that cannot be satisfied
// below MaxDistinct fail with ErrTooManyKeys.
//
// Selection within a tier is a uniform random sample, so repeated calls for
// the same count may return different colours; the no-duplicate and
// no-excluded guarantees always hold.
func (p *Palette) Pick(count int, exclude []string) ([]string, error) {
	if count == 0 {
		return []string{}, nil
	}
	if count < 0 {
		return nil, ErrInvalidArgument
	}
	if count >= MaxDistinct {
		return nil, ErrTooManyKeys
	}

	excluded := make(map[string]struct{}, len(exclude))
	for _, hex := range exclude {
		if norm, err := NormalizeHex(hex); err == nil {
			excluded[norm] = struct{}{}
		}
	}

	if eligible := filterColors(defaultColors, excluded); count <= len(eligible) {
		return p.sample(eligible, count), nil
	}
	if eligible := filterColors(ExtendedColors(), excluded); count <= len(eligible) {
		return p.sample(eligible, count), nil
	}

	// Widen the generated palette until enough colours survive the
	// exclusion set. The widening is bounded by the same distinctness
	// ceiling as the request itself.
	for n := count; n < MaxDistinct; n++ {
		if eligible := filterColors(p.Generate(n), excluded); count <= len(eligible) {
			return p.sample(eligible, count), nil
		}
	}
	return nil, ErrTooManyKeys
}

// sample returns a uniform random sample of count elements without repeats.
func (p *Palette) sample(colors []string, count int) []string {
	out := make([]string, 0, count)
	for _, idx := range p.rng.Perm(len(colors))[:count] {
		out = append(out, colors[idx])
	}
	return out
}

func filterColors(colors []string, excluded map[string]struct{}) []string {
	if len(excluded) == 0 {
		return colors
	}
	out := make([]string, 0, len(colors))
	for _, hex := range colors {
		if _, skip := excluded[hex]; !skip {
			out = append(out, hex)
		}
	}
	return out
}
