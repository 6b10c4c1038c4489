package colour

import (
	"fmt"
	"sort"

	"github.com/hashicorp/go-hclog"

	"github.com/rhyton-cad/rhyton/pkg/host"
)

// Schemes is the persisted scheme table: scheme name to key/colour mapping.
// Colours are canonical hex strings.
type Schemes map[string]map[string]string

// SchemeManager owns the named colour schemes stored in the host document.
// The document is the source of truth; every operation reads the table,
// applies its change in memory and writes the table back in one call.
type SchemeManager struct {
	store   host.ConfigStore
	flag    string
	palette *Palette
	log     hclog.Logger
}

// NewSchemeManager returns a manager persisting schemes under flag in the
// given store.
func NewSchemeManager(store host.ConfigStore, flag string) *SchemeManager {
	return &SchemeManager{
		store:   store,
		flag:    flag,
		palette: NewPalette(),
		log:     hclog.NewNullLogger(),
	}
}

// WithPalette replaces the colour source. Tests pass a palette with a seeded
// random source.
func (m *SchemeManager) WithPalette(p *Palette) *SchemeManager {
	m.palette = p
	return m
}

// WithLogger replaces the manager's logger.
func (m *SchemeManager) WithLogger(log hclog.Logger) *SchemeManager {
	m.log = log.Named("scheme")
	return m
}

// Load returns the named scheme's key/colour mapping. An absent scheme
// returns false, not an error.
func (m *SchemeManager) Load(name string) (map[string]string, bool, error) {
	schemes, err := m.loadAll()
	if err != nil {
		return nil, false, err
	}
	scheme, ok := schemes[name]
	if !ok {
		return nil, false, nil
	}
	return scheme, true, nil
}

// Names lists the stored scheme names in sorted order, skipping any in
// exclude.
func (m *SchemeManager) Names(exclude ...string) ([]string, error) {
	schemes, err := m.loadAll()
	if err != nil {
		return nil, err
	}

	skip := make(map[string]struct{}, len(exclude))
	for _, name := range exclude {
		skip[name] = struct{}{}
	}

	names := make([]string, 0, len(schemes))
	for name := range schemes {
		if _, ok := skip[name]; !ok {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names, nil
}

// Generate allocates colours for a fresh set of keys without touching the
// store. Keys are deduplicated and sorted before they are zipped with the
// colour sequence, so a given key set always maps keys to the same ordinal
// slots regardless of input order. Colours in exclude are never allocated.
func (m *SchemeManager) Generate(keys []string, exclude []string) (map[string]string, error) {
	sorted := sortedUnique(keys)
	colors, err := m.palette.Pick(len(sorted), exclude)
	if err != nil {
		return nil, err
	}
	return zipKeyColors(sorted, colors), nil
}

// GenerateGradient maps the sorted key domain onto a linear interpolation
// between two endpoint colours. The result is ephemeral: gradient mappings
// are recomputed in full on every call and never persisted, because a key's
// gradient position depends on the whole observed range.
func (m *SchemeManager) GenerateGradient(keys []string, start, end RGB) (map[string]string, error) {
	sorted := sortedUnique(keys)
	if len(sorted) == 0 {
		return map[string]string{}, nil
	}

	rgbs, err := Interpolate(len(sorted), start, end)
	if err != nil {
		return nil, err
	}

	colors := make([]string, len(rgbs))
	for i, c := range rgbs {
		colors[i] = c.Hex()
	}
	return zipKeyColors(sorted, colors), nil
}

// Update merges colours for previously unseen keys into the named scheme and
// persists the result. Existing key colours are never altered, and newly
// allocated colours never collide with colours already in the scheme. When
// every key is already present the call is a no-op and nothing is re-saved.
// A missing scheme is created.
func (m *SchemeManager) Update(name string, keys []string) (map[string]string, error) {
	schemes, err := m.loadAll()
	if err != nil {
		return nil, err
	}

	existing := schemes[name]
	var newKeys []string
	for _, key := range sortedUnique(keys) {
		if _, ok := existing[key]; !ok {
			newKeys = append(newKeys, key)
		}
	}
	if len(newKeys) == 0 {
		return existing, nil
	}

	exclude := make([]string, 0, len(existing))
	for _, hex := range existing {
		exclude = append(exclude, hex)
	}

	allocated, err := m.Generate(newKeys, exclude)
	if err != nil {
		m.log.Warn("colour allocation failed, scheme left unchanged",
			"scheme", name, "keys", len(keys), "error", err)
		return nil, err
	}

	merged := make(map[string]string, len(existing)+len(allocated))
	for key, hex := range existing {
		merged[key] = hex
	}
	for key, hex := range allocated {
		merged[key] = hex
	}

	schemes[name] = merged
	if err := m.persist(schemes); err != nil {
		return nil, err
	}
	m.log.Debug("scheme updated", "scheme", name, "added", len(allocated), "total", len(merged))
	return merged, nil
}

// Save merges the given key/colour pairs into the named scheme and persists
// the whole table. Colours are validated and normalized to canonical hex.
func (m *SchemeManager) Save(name string, keyColors map[string]string) error {
	schemes, err := m.loadAll()
	if err != nil {
		return err
	}

	scheme := schemes[name]
	if scheme == nil {
		scheme = make(map[string]string, len(keyColors))
	}
	for key, hex := range keyColors {
		norm, err := NormalizeHex(hex)
		if err != nil {
			return fmt.Errorf("scheme %q key %q: %w", name, key, err)
		}
		scheme[key] = norm
	}

	schemes[name] = scheme
	return m.persist(schemes)
}

// Delete removes the named scheme. Deleting an absent scheme is a no-op.
func (m *SchemeManager) Delete(name string) error {
	schemes, err := m.loadAll()
	if err != nil {
		return err
	}
	if _, ok := schemes[name]; !ok {
		return nil
	}
	delete(schemes, name)
	return m.persist(schemes)
}

func (m *SchemeManager) loadAll() (Schemes, error) {
	schemes := Schemes{}
	if _, err := m.store.Get(m.flag, &schemes); err != nil {
		return nil, fmt.Errorf("loading schemes %q: %w", m.flag, err)
	}
	return schemes, nil
}

func (m *SchemeManager) persist(schemes Schemes) error {
	if err := m.store.Save(m.flag, schemes); err != nil {
		return fmt.Errorf("saving schemes %q: %w", m.flag, err)
	}
	return nil
}

// sortedUnique returns the distinct input keys in sorted order. Sorting
// before assignment is the tie-break rule that makes key-to-slot mapping
// reproducible.
func sortedUnique(keys []string) []string {
	seen := make(map[string]struct{}, len(keys))
	out := make([]string, 0, len(keys))
	for _, key := range keys {
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, key)
	}
	sort.Strings(out)
	return out
}

func zipKeyColors(sortedKeys, colors []string) map[string]string {
	keyColors := make(map[string]string, len(sortedKeys))
	for i, key := range sortedKeys {
		keyColors[key] = colors[i]
	}
	return keyColors
}
