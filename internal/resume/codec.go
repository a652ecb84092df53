package resume

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed schema/document.schema.json
var documentSchema []byte

var loadSchema = sync.OnceValues(func() (*gojsonschema.Schema, error) {
	return gojsonschema.NewSchema(gojsonschema.NewBytesLoader(documentSchema))
})

var errNotObject = errors.New("document must be a JSON object")

// Encode serializes the document with two-space indentation.
func Encode(doc Document) ([]byte, error) {
	doc = doc.Clone()
	doc.normalize()
	return json.MarshalIndent(doc, "", "  ")
}

// MergeWithDefaults parses raw JSON and deep-merges it onto a fresh default
// document, so fields missing from raw fall back to their defaults.
func MergeWithDefaults(raw []byte) (Document, error) {
	partial, err := decodeObject(raw)
	if err != nil {
		return Document{}, err
	}
	defaults, err := toMap(Default())
	if err != nil {
		return Document{}, err
	}
	merged := DeepMerge(defaults, partial)
	if err := validateShape(merged); err != nil {
		return Document{}, err
	}
	return fromMap(merged)
}

// validateShape checks that a document-shaped map has the structural types the
// document expects. Missing fields are allowed.
func validateShape(m map[string]any) error {
	schema, err := loadSchema()
	if err != nil {
		return fmt.Errorf("load document schema: %w", err)
	}
	res, err := schema.Validate(gojsonschema.NewGoLoader(m))
	if err != nil {
		return fmt.Errorf("validate document: %w", err)
	}
	if res.Valid() {
		return nil
	}
	msgs := make([]string, 0, len(res.Errors()))
	for _, e := range res.Errors() {
		msgs = append(msgs, e.String())
	}
	return &shapeError{details: msgs}
}

type shapeError struct {
	details []string
}

func (e *shapeError) Error() string {
	return "schema validation failed: " + strings.Join(e.details, "; ")
}

func decodeObject(raw []byte) (map[string]any, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	if dec.More() {
		return nil, errors.New("unexpected data after document")
	}
	m, ok := v.(map[string]any)
	if !ok {
		return nil, errNotObject
	}
	return m, nil
}

func toMap(doc Document) (map[string]any, error) {
	doc.normalize()
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, err
	}
	return decodeObject(raw)
}

func fromMap(m map[string]any) (Document, error) {
	raw, err := json.Marshal(m)
	if err != nil {
		return Document{}, err
	}
	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return Document{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	doc.normalize()
	assignIDs(&doc)
	return doc, nil
}

// assignIDs gives every list entry without an id, or with an id already used
// earlier in its list, a fresh one.
func assignIDs(doc *Document) {
	seen := map[ItemID]bool{}
	for i := range doc.Experience {
		doc.Experience[i].ID = uniqueID(seen, doc.Experience[i].ID)
	}
	seen = map[ItemID]bool{}
	for i := range doc.Education {
		doc.Education[i].ID = uniqueID(seen, doc.Education[i].ID)
	}
	seen = map[ItemID]bool{}
	for i := range doc.Projects {
		doc.Projects[i].ID = uniqueID(seen, doc.Projects[i].ID)
	}
}

func uniqueID(seen map[ItemID]bool, id ItemID) ItemID {
	if id == "" || seen[id] {
		id = NewItemID()
	}
	seen[id] = true
	return id
}
