// Package document provides a file-backed implementation of the host
// interfaces in pkg/host. It keeps a whole document in one JSON sidecar
// file, which makes the library usable from the CLI and testable without a
// running CAD host. Host integrations replace this package with calls into
// the real scripting API.
package document

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"

	"github.com/rhyton-cad/rhyton/internal/colour"
	"github.com/rhyton-cad/rhyton/pkg/host"
)

// Object is one model object in the document.
type Object struct {
	Name     string            `json:"name,omitempty"`
	UserText map[string]string `json:"userText,omitempty"`
	Color    string            `json:"color,omitempty"`
	BBox     host.Box          `json:"boundingBox"`
	Dot      *TextDot          `json:"textDot,omitempty"`
	Group    string            `json:"group,omitempty"`
}

// TextDot is the annotation payload carried by text-dot objects.
type TextDot struct {
	Location host.Point `json:"location"`
	Text     string     `json:"text"`
}

type fileData struct {
	Config  map[string]json.RawMessage `json:"config"`
	Objects map[string]*Object         `json:"objects"`
	Groups  map[string]string          `json:"groups,omitempty"`
}

// Document is a JSON-file document satisfying host.Document. Mutations are
// written through to disk immediately; the file is the source of truth
// across sessions, exactly like the host's document text storage.
type Document struct {
	path string
	log  hclog.Logger
	data *fileData
}

// Open loads the document at path, creating an empty one when the file does
// not exist yet.
func Open(path string, log hclog.Logger) (*Document, error) {
	if log == nil {
		log = hclog.NewNullLogger()
	}
	d := &Document{
		path: path,
		log:  log.Named("document"),
		data: emptyData(),
	}

	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return d, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading document %q: %w", path, err)
	}
	if err := json.Unmarshal(raw, d.data); err != nil {
		return nil, fmt.Errorf("parsing document %q: %w", path, err)
	}
	if d.data.Config == nil {
		d.data.Config = make(map[string]json.RawMessage)
	}
	if d.data.Objects == nil {
		d.data.Objects = make(map[string]*Object)
	}
	return d, nil
}

// NewInMemory returns a document that never touches disk. Used in tests and
// by callers that only need scratch state.
func NewInMemory() *Document {
	return &Document{
		log:  hclog.NewNullLogger(),
		data: emptyData(),
	}
}

func emptyData() *fileData {
	return &fileData{
		Config:  make(map[string]json.RawMessage),
		Objects: make(map[string]*Object),
	}
}

// Get implements host.ConfigStore.
func (d *Document) Get(flag string, out any) (bool, error) {
	raw, ok := d.data.Config[flag]
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return false, fmt.Errorf("config %q: %w", flag, err)
	}
	return true, nil
}

// Save implements host.ConfigStore.
func (d *Document) Save(flag string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("config %q: %w", flag, err)
	}
	d.data.Config[flag] = raw
	return d.persist()
}

// Value implements host.UserText.
func (d *Document) Value(id, key string) (string, bool, error) {
	obj, err := d.object(id)
	if err != nil {
		return "", false, err
	}
	value, ok := obj.UserText[key]
	return value, ok, nil
}

// SetValue implements host.UserText.
func (d *Document) SetValue(id, key, value string) error {
	obj, err := d.object(id)
	if err != nil {
		return err
	}
	if obj.UserText == nil {
		obj.UserText = make(map[string]string)
	}
	obj.UserText[key] = value
	return d.persist()
}

// RemoveValue implements host.UserText.
func (d *Document) RemoveValue(id, key string) error {
	obj, err := d.object(id)
	if err != nil {
		return err
	}
	if _, ok := obj.UserText[key]; !ok {
		return nil
	}
	delete(obj.UserText, key)
	return d.persist()
}

// Keys implements host.UserText.
func (d *Document) Keys(id string) ([]string, error) {
	obj, err := d.object(id)
	if err != nil {
		return nil, err
	}
	keys := make([]string, 0, len(obj.UserText))
	for key := range obj.UserText {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys, nil
}

// Color implements host.Overrides.
func (d *Document) Color(id string) (string, error) {
	obj, err := d.object(id)
	if err != nil {
		return "", err
	}
	return obj.Color, nil
}

// SetColor implements host.Overrides.
func (d *Document) SetColor(id, hex string) error {
	obj, err := d.object(id)
	if err != nil {
		return err
	}
	norm, err := colour.NormalizeHex(hex)
	if err != nil {
		return fmt.Errorf("object %s: %w", id, err)
	}
	obj.Color = norm
	return d.persist()
}

// ResetColor implements host.Overrides. An empty colour means "by layer".
func (d *Document) ResetColor(id string) error {
	obj, err := d.object(id)
	if err != nil {
		return err
	}
	obj.Color = ""
	return d.persist()
}

// BoundingBox implements host.Geometry by unioning the objects' boxes.
func (d *Document) BoundingBox(ids []string) (host.Box, error) {
	if len(ids) == 0 {
		return host.Box{}, fmt.Errorf("bounding box of no objects")
	}

	var box host.Box
	for i, id := range ids {
		obj, err := d.object(id)
		if err != nil {
			return host.Box{}, err
		}
		if i == 0 {
			box = obj.BBox
			continue
		}
		box.Min.X = min(box.Min.X, obj.BBox.Min.X)
		box.Min.Y = min(box.Min.Y, obj.BBox.Min.Y)
		box.Min.Z = min(box.Min.Z, obj.BBox.Min.Z)
		box.Max.X = max(box.Max.X, obj.BBox.Max.X)
		box.Max.Y = max(box.Max.Y, obj.BBox.Max.Y)
		box.Max.Z = max(box.Max.Z, obj.BBox.Max.Z)
	}
	return box, nil
}

// AddTextDot implements host.TextDots. The dot is a regular object carrying
// annotation data, coloured like the objects it describes.
func (d *Document) AddTextDot(location host.Point, text, hex string) (string, error) {
	norm, err := colour.NormalizeHex(hex)
	if err != nil {
		return "", err
	}

	id := uuid.NewString()
	d.data.Objects[id] = &Object{
		Color: norm,
		Dot:   &TextDot{Location: location, Text: text},
		BBox:  host.Box{Min: location, Max: location},
	}
	if err := d.persist(); err != nil {
		return "", err
	}
	return id, nil
}

// DeleteObject implements host.TextDots. Deleting an absent object is a
// no-op.
func (d *Document) DeleteObject(id string) error {
	if _, ok := d.data.Objects[id]; !ok {
		return nil
	}
	delete(d.data.Objects, id)
	return d.persist()
}

// CreateGroup implements host.Groups.
func (d *Document) CreateGroup(name string, ids []string) (string, error) {
	for _, id := range ids {
		if _, err := d.object(id); err != nil {
			return "", err
		}
	}

	group := uuid.NewString()
	if d.data.Groups == nil {
		d.data.Groups = make(map[string]string)
	}
	d.data.Groups[group] = name
	for _, id := range ids {
		d.data.Objects[id].Group = group
	}
	if err := d.persist(); err != nil {
		return "", err
	}
	return group, nil
}

// DissolveGroup implements host.Groups, leaving former members in place.
func (d *Document) DissolveGroup(group string) error {
	if _, ok := d.data.Groups[group]; !ok {
		return nil
	}
	delete(d.data.Groups, group)
	for _, obj := range d.data.Objects {
		if obj.Group == group {
			obj.Group = ""
		}
	}
	return d.persist()
}

// AddObject inserts a model object and returns its generated id. Not part of
// the host contracts; the CLI and tests use it to build documents.
func (d *Document) AddObject(name string, box host.Box) (string, error) {
	id := uuid.NewString()
	d.data.Objects[id] = &Object{Name: name, BBox: box}
	if err := d.persist(); err != nil {
		return "", err
	}
	return id, nil
}

// ObjectIDs returns all object ids in sorted order, excluding text dots.
func (d *Document) ObjectIDs() []string {
	ids := make([]string, 0, len(d.data.Objects))
	for id, obj := range d.data.Objects {
		if obj.Dot == nil {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids
}

// Object returns the object record for id.
func (d *Document) Object(id string) (*Object, error) {
	return d.object(id)
}

func (d *Document) object(id string) (*Object, error) {
	obj, ok := d.data.Objects[id]
	if !ok {
		return nil, fmt.Errorf("unknown object %s", id)
	}
	return obj, nil
}

// persist writes the document file. In-memory documents skip the write.
func (d *Document) persist() error {
	if d.path == "" {
		return nil
	}

	raw, err := json.MarshalIndent(d.data, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding document: %w", err)
	}
	if dir := filepath.Dir(d.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating document directory: %w", err)
		}
	}
	if err := os.WriteFile(d.path, raw, 0o644); err != nil {
		return fmt.Errorf("writing document %q: %w", d.path, err)
	}
	return nil
}
