// Package visualize applies colour schemes and gradients to document
// objects, keeps enough bookkeeping to undo everything it changed, and
// places text-dot summaries per key group.
package visualize

import (
	"fmt"

	"github.com/hashicorp/go-hclog"

	"github.com/rhyton-cad/rhyton"
	"github.com/rhyton-cad/rhyton/internal/colour"
	"github.com/rhyton-cad/rhyton/pkg/host"
)

// ObjectColor is the per-object result of an apply operation.
type ObjectColor struct {
	ID    string `json:"guid"`
	Value string `json:"value"`
	Color string `json:"color"`
}

// Visualizer wires the scheme core to a host document.
type Visualizer struct {
	doc     host.Document
	cfg     rhyton.Config
	schemes *colour.SchemeManager
	log     hclog.Logger
}

// New returns a visualizer for the given document and extension config.
func New(doc host.Document, cfg rhyton.Config, log hclog.Logger) *Visualizer {
	if log == nil {
		log = hclog.NewNullLogger()
	}
	return &Visualizer{
		doc:     doc,
		cfg:     cfg,
		schemes: colour.NewSchemeManager(doc, cfg.SchemesFlag()).WithLogger(log),
		log:     log.Named("visualize"),
	}
}

// WithPalette replaces the colour source used for allocation. Tests inject a
// seeded palette here.
func (v *Visualizer) WithPalette(p *colour.Palette) *Visualizer {
	v.schemes.WithPalette(p)
	return v
}

// Schemes exposes the underlying scheme manager for listing, saving and
// deleting schemes.
func (v *Visualizer) Schemes() *colour.SchemeManager {
	return v.schemes
}

// Apply colours the given objects by their value for schemeName. The first
// call for an unseen scheme allocates it; later calls extend it with any new
// values while keeping existing assignments. Objects without a value get the
// neutral white colour and the "n/a" marker instead of failing the batch.
//
// Allocation failure (too many distinct values) leaves the document
// untouched and is returned to the caller.
func (v *Visualizer) Apply(ids []string, schemeName string) ([]ObjectColor, error) {
	values, keys, err := v.readValues(ids, schemeName)
	if err != nil {
		return nil, err
	}

	keyColors, found, err := v.schemes.Load(schemeName)
	if err != nil {
		return nil, err
	}
	if !found {
		keyColors, err = v.schemes.Generate(keys, nil)
		if err == nil {
			err = v.schemes.Save(schemeName, keyColors)
		}
	} else {
		keyColors, err = v.schemes.Update(schemeName, keys)
	}
	if err != nil {
		v.log.Warn("no colour scheme produced, document left unchanged",
			"scheme", schemeName, "error", err)
		return nil, err
	}

	records := buildRecords(ids, values, keyColors)
	if err := v.applyOverrides(records); err != nil {
		return nil, err
	}
	return records, nil
}

// ApplyGradient colours objects by interpolating between two endpoint
// colours across the sorted value domain. The mapping is recomputed in full
// on every call and never persisted: gradient position is relative to the
// whole observed range.
func (v *Visualizer) ApplyGradient(ids []string, schemeName string, start, end colour.RGB) ([]ObjectColor, error) {
	values, keys, err := v.readValues(ids, schemeName)
	if err != nil {
		return nil, err
	}

	keyColors, err := v.schemes.GenerateGradient(keys, start, end)
	if err != nil {
		return nil, err
	}

	records := buildRecords(ids, values, keyColors)
	if err := v.applyOverrides(records); err != nil {
		return nil, err
	}
	return records, nil
}

// Summarize groups the objects by their value for schemeName, creates one
// text dot per group at the group's bounding-box top, groups each set of
// objects with its dot, and returns the created dot ids. Dots and groups are
// recorded in the document so Clear can remove them later.
func (v *Visualizer) Summarize(ids []string, schemeName string) ([]string, error) {
	values, _, err := v.readValues(ids, schemeName)
	if err != nil {
		return nil, err
	}

	keyColors, _, err := v.schemes.Load(schemeName)
	if err != nil {
		return nil, err
	}

	byValue := make(map[string][]string)
	var order []string
	for _, id := range ids {
		value, ok := values[id]
		if !ok {
			value = rhyton.NotAvailable
		}
		if _, seen := byValue[value]; !seen {
			order = append(order, value)
		}
		byValue[value] = append(byValue[value], id)
	}

	var dotIDs []string
	for _, value := range order {
		members := byValue[value]
		box, err := v.doc.BoundingBox(members)
		if err != nil {
			return nil, err
		}

		hex := keyColors[value]
		if hex == "" {
			hex = rhyton.HexWhite
		}

		text := fmt.Sprintf("%s: %d", value, len(members))
		dotID, err := v.doc.AddTextDot(box.TopCenter(), text, hex)
		if err != nil {
			return nil, err
		}
		dotIDs = append(dotIDs, dotID)

		group, err := v.doc.CreateGroup(schemeName+"."+value, append(members, dotID))
		if err != nil {
			return nil, err
		}
		if err := v.record(v.cfg.GroupsFlag(), []string{group}); err != nil {
			return nil, err
		}
	}

	if err := v.record(v.cfg.TextDotsFlag(), dotIDs); err != nil {
		return nil, err
	}
	return dotIDs, nil
}

// Clear undoes rhyton's changes: restores stashed original colours, deletes
// recorded text dots and dissolves recorded groups. With no ids given it
// clears every object rhyton touched.
func (v *Visualizer) Clear(ids []string) error {
	stash := map[string]string{}
	if _, err := v.doc.Get(v.cfg.OriginalColorsFlag(), &stash); err != nil {
		return err
	}

	targets := ids
	if len(targets) == 0 {
		targets = make([]string, 0, len(stash))
		for id := range stash {
			targets = append(targets, id)
		}
	}

	for _, id := range targets {
		original, stashed := stash[id]
		if !stashed {
			continue
		}
		var err error
		if original == "" {
			err = v.doc.ResetColor(id)
		} else {
			err = v.doc.SetColor(id, original)
		}
		if err != nil {
			// The object may have been deleted since it was coloured.
			v.log.Warn("could not restore colour", "object", id, "error", err)
		}
		delete(stash, id)
	}
	if err := v.doc.Save(v.cfg.OriginalColorsFlag(), stash); err != nil {
		return err
	}

	if len(ids) > 0 {
		return nil
	}

	// A full clear also removes annotation and grouping leftovers.
	var dots []string
	if _, err := v.doc.Get(v.cfg.TextDotsFlag(), &dots); err != nil {
		return err
	}
	for _, dot := range dots {
		if err := v.doc.DeleteObject(dot); err != nil {
			return err
		}
	}
	if err := v.doc.Save(v.cfg.TextDotsFlag(), []string{}); err != nil {
		return err
	}

	var groups []string
	if _, err := v.doc.Get(v.cfg.GroupsFlag(), &groups); err != nil {
		return err
	}
	for _, group := range groups {
		if err := v.doc.DissolveGroup(group); err != nil {
			return err
		}
	}
	return v.doc.Save(v.cfg.GroupsFlag(), []string{})
}

// readValues reads each object's value for key, returning the per-object
// values and the distinct non-empty keys.
func (v *Visualizer) readValues(ids []string, key string) (map[string]string, []string, error) {
	values := make(map[string]string, len(ids))
	seen := make(map[string]struct{})
	var keys []string

	for _, id := range ids {
		value, ok, err := v.doc.Value(id, key)
		if err != nil {
			return nil, nil, err
		}
		if !ok || value == "" {
			continue
		}
		values[id] = value
		if _, dup := seen[value]; !dup {
			seen[value] = struct{}{}
			keys = append(keys, value)
		}
	}
	return values, keys, nil
}

// applyOverrides stashes each object's current colour (first touch only, so
// repeated applies keep the true original) and sets the assigned colour.
func (v *Visualizer) applyOverrides(records []ObjectColor) error {
	stash := map[string]string{}
	if _, err := v.doc.Get(v.cfg.OriginalColorsFlag(), &stash); err != nil {
		return err
	}

	for _, rec := range records {
		if _, stashed := stash[rec.ID]; !stashed {
			current, err := v.doc.Color(rec.ID)
			if err != nil {
				return err
			}
			stash[rec.ID] = current
		}
	}
	if err := v.doc.Save(v.cfg.OriginalColorsFlag(), stash); err != nil {
		return err
	}

	for _, rec := range records {
		if err := v.doc.SetColor(rec.ID, rec.Color); err != nil {
			return err
		}
	}
	return nil
}

// record appends ids to the string list stored under flag.
func (v *Visualizer) record(flag string, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	var existing []string
	if _, err := v.doc.Get(flag, &existing); err != nil {
		return err
	}
	return v.doc.Save(flag, append(existing, ids...))
}

func buildRecords(ids []string, values, keyColors map[string]string) []ObjectColor {
	records := make([]ObjectColor, 0, len(ids))
	for _, id := range ids {
		value, ok := values[id]
		if !ok {
			records = append(records, ObjectColor{
				ID:    id,
				Value: rhyton.NotAvailable,
				Color: rhyton.HexWhite,
			})
			continue
		}
		records = append(records, ObjectColor{
			ID:    id,
			Value: value,
			Color: keyColors[value],
		})
	}
	return records
}
