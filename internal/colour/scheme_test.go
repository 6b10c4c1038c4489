package colour

import (
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// memStore is an in-memory ConfigStore holding marshalled JSON, mirroring
// how the document stores config blobs as text.
type memStore struct {
	data  map[string]json.RawMessage
	saves int
}

func newMemStore() *memStore {
	return &memStore{data: make(map[string]json.RawMessage)}
}

func (s *memStore) Get(flag string, out any) (bool, error) {
	raw, ok := s.data[flag]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, out)
}

func (s *memStore) Save(flag string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	s.data[flag] = raw
	s.saves++
	return nil
}

const testFlag = "rhyton.colorSchemes"

func testManager(store *memStore, seed int64) *SchemeManager {
	return NewSchemeManager(store, testFlag).
		WithPalette(NewPaletteWithRand(rand.New(rand.NewSource(seed))))
}

func TestLoadAbsentScheme(t *testing.T) {
	m := testManager(newMemStore(), 1)

	scheme, ok, err := m.Load("ghost")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if ok || scheme != nil {
		t.Errorf("Load(absent) = %v, %v; want nil, false", scheme, ok)
	}
}

func TestUpdateCreatesScheme(t *testing.T) {
	store := newMemStore()
	m := testManager(store, 1)

	scheme, err := m.Update("floor_material", []string{"concrete", "wood", "concrete"})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if len(scheme) != 2 {
		t.Fatalf("scheme has %d entries, want 2: %v", len(scheme), scheme)
	}
	if scheme["concrete"] == "" || scheme["wood"] == "" {
		t.Fatalf("missing keys in scheme: %v", scheme)
	}
	if scheme["concrete"] == scheme["wood"] {
		t.Errorf("concrete and wood share colour %s", scheme["concrete"])
	}

	// The scheme round-trips through the store.
	loaded, ok, err := m.Load("floor_material")
	if err != nil || !ok {
		t.Fatalf("Load() = %v, %v, %v", loaded, ok, err)
	}
	if diff := cmp.Diff(scheme, loaded); diff != "" {
		t.Errorf("persisted scheme differs (-want +got):\n%s", diff)
	}
}

func TestUpdatePreservesExistingColours(t *testing.T) {
	store := newMemStore()
	m := testManager(store, 2)

	if err := m.Save("materials", map[string]string{"steel": "ff0000"}); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	scheme, err := m.Update("materials", []string{"steel", "glass"})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if scheme["steel"] != "ff0000" {
		t.Errorf("steel colour changed to %s, want ff0000", scheme["steel"])
	}
	if scheme["glass"] == "" || scheme["glass"] == "ff0000" {
		t.Errorf("glass colour %q must be set and distinct from steel", scheme["glass"])
	}
}

func TestUpdateIsIdempotent(t *testing.T) {
	store := newMemStore()
	m := testManager(store, 3)

	keys := []string{"a", "b", "c"}
	first, err := m.Update("s", keys)
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	savesAfterFirst := store.saves
	second, err := m.Update("s", keys)
	if err != nil {
		t.Fatalf("second Update() error = %v", err)
	}

	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("repeat update changed scheme (-first +second):\n%s", diff)
	}
	if store.saves != savesAfterFirst {
		t.Errorf("repeat update with no new keys re-saved the table (%d -> %d saves)",
			savesAfterFirst, store.saves)
	}
}

func TestUpdateNeverReusesExistingColours(t *testing.T) {
	store := newMemStore()
	m := testManager(store, 4)

	// Seed a scheme occupying ten default-tier colours.
	seeded := make(map[string]string, 10)
	for i, hex := range DefaultColors()[:10] {
		seeded[fmt.Sprintf("key%02d", i)] = hex
	}
	if err := m.Save("busy", seeded); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	keys := make([]string, 0, 15)
	for k := range seeded {
		keys = append(keys, k)
	}
	keys = append(keys, "n1", "n2", "n3", "n4", "n5")

	scheme, err := m.Update("busy", keys)
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	used := make(map[string]string)
	for key, hex := range scheme {
		if prev, ok := used[hex]; ok {
			t.Errorf("colour %s assigned to both %s and %s", hex, prev, key)
		}
		used[hex] = key
	}
}

func TestUpdateTooManyKeysLeavesStateUntouched(t *testing.T) {
	store := newMemStore()
	m := testManager(store, 5)

	if err := m.Save("s", map[string]string{"k": "ff0000"}); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	savesBefore := store.saves

	keys := make([]string, 120)
	for i := range keys {
		keys[i] = fmt.Sprintf("key%03d", i)
	}

	if _, err := m.Update("s", keys); !errors.Is(err, ErrTooManyKeys) {
		t.Fatalf("Update() error = %v, want ErrTooManyKeys", err)
	}
	if store.saves != savesBefore {
		t.Errorf("failed allocation persisted a partial write")
	}

	scheme, ok, err := m.Load("s")
	if err != nil || !ok {
		t.Fatalf("Load() = %v, %v", ok, err)
	}
	if diff := cmp.Diff(map[string]string{"k": "ff0000"}, scheme); diff != "" {
		t.Errorf("prior scheme changed (-want +got):\n%s", diff)
	}
}

func TestGenerateAssignsSortedKeysToOrdinalSlots(t *testing.T) {
	m := testManager(newMemStore(), 6)

	// With a gradient the colour at each ordinal slot is deterministic, so
	// the sorted-keys contract is directly observable: the key that sorts
	// first gets index 0 (the exact start colour) regardless of input order.
	start := RGB{R: 200, G: 200, B: 255}
	end := RGB{R: 50, G: 50, B: 255}

	orders := [][]string{
		{"10", "20", "30"},
		{"30", "10", "20"},
		{"20", "30", "10"},
	}

	var first map[string]string
	for _, keys := range orders {
		scheme, err := m.GenerateGradient(keys, start, end)
		if err != nil {
			t.Fatalf("GenerateGradient(%v) error = %v", keys, err)
		}
		if scheme["10"] != start.Hex() {
			t.Errorf("lowest key colour = %s, want exact start %s", scheme["10"], start.Hex())
		}
		if first == nil {
			first = scheme
			continue
		}
		if diff := cmp.Diff(first, scheme); diff != "" {
			t.Errorf("insertion order changed assignment (-first +got):\n%s", diff)
		}
	}
}

func TestGenerateGradientMapsDomainEnds(t *testing.T) {
	m := testManager(newMemStore(), 7)

	start := RGB{R: 200, G: 200, B: 255}
	end := RGB{R: 50, G: 50, B: 255}

	scheme, err := m.GenerateGradient([]string{"10", "20", "30"}, start, end)
	if err != nil {
		t.Fatalf("GenerateGradient() error = %v", err)
	}

	// Truncated interpolation: 200, 150, 100 on R and G; B constant.
	want := map[string]string{
		"10": "c8c8ff",
		"20": "9696ff",
		"30": "6464ff",
	}
	if diff := cmp.Diff(want, scheme); diff != "" {
		t.Errorf("gradient mapping (-want +got):\n%s", diff)
	}
}

func TestSaveNormalizesAndValidates(t *testing.T) {
	m := testManager(newMemStore(), 8)

	if err := m.Save("s", map[string]string{"a": "#FF0000"}); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	scheme, _, err := m.Load("s")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if scheme["a"] != "ff0000" {
		t.Errorf("stored colour = %s, want normalized ff0000", scheme["a"])
	}

	if err := m.Save("s", map[string]string{"b": "not-a-colour"}); !errors.Is(err, ErrInvalidColorFormat) {
		t.Errorf("Save(bad hex) error = %v, want ErrInvalidColorFormat", err)
	}
}

func TestSaveMergesIntoExistingScheme(t *testing.T) {
	m := testManager(newMemStore(), 9)

	if err := m.Save("s", map[string]string{"a": "ff0000"}); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if err := m.Save("s", map[string]string{"b": "00ff00"}); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	scheme, _, err := m.Load("s")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	want := map[string]string{"a": "ff0000", "b": "00ff00"}
	if diff := cmp.Diff(want, scheme); diff != "" {
		t.Errorf("merged scheme (-want +got):\n%s", diff)
	}
}

func TestDeleteScheme(t *testing.T) {
	store := newMemStore()
	m := testManager(store, 10)

	if err := m.Save("gone", map[string]string{"a": "ff0000"}); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if err := m.Delete("gone"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, ok, _ := m.Load("gone"); ok {
		t.Errorf("scheme still present after delete")
	}

	// Deleting an absent scheme is a no-op and does not write.
	savesBefore := store.saves
	if err := m.Delete("never-existed"); err != nil {
		t.Fatalf("Delete(absent) error = %v", err)
	}
	if store.saves != savesBefore {
		t.Errorf("Delete(absent) persisted the table")
	}
}

func TestNames(t *testing.T) {
	m := testManager(newMemStore(), 11)

	for _, name := range []string{"zeta", "alpha", "mid"} {
		if err := m.Save(name, map[string]string{"k": "ff0000"}); err != nil {
			t.Fatalf("Save(%s) error = %v", name, err)
		}
	}

	names, err := m.Names()
	if err != nil {
		t.Fatalf("Names() error = %v", err)
	}
	if diff := cmp.Diff([]string{"alpha", "mid", "zeta"}, names); diff != "" {
		t.Errorf("Names() (-want +got):\n%s", diff)
	}

	names, err = m.Names("mid")
	if err != nil {
		t.Fatalf("Names(exclude) error = %v", err)
	}
	if diff := cmp.Diff([]string{"alpha", "zeta"}, names); diff != "" {
		t.Errorf("Names(exclude mid) (-want +got):\n%s", diff)
	}
}
