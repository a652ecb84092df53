package resume

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

var ignoreIDs = cmpopts.IgnoreFields(Experience{}, "ID")

func TestMergeWithDefaultsFillsMissingSections(t *testing.T) {
	doc, err := MergeWithDefaults([]byte(`{"personal":{"firstName":"Ada"}}`))
	if err != nil {
		t.Fatalf("merge: %v", err)
	}
	def := Default()
	if doc.Personal.FirstName != "Ada" {
		t.Fatalf("expected first name Ada, got %q", doc.Personal.FirstName)
	}
	if diff := cmp.Diff(def.Skills, doc.Skills); diff != "" {
		t.Fatalf("skills should fall back to defaults (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(def.Settings, doc.Settings); diff != "" {
		t.Fatalf("settings should fall back to defaults (-want +got):\n%s", diff)
	}
	if len(doc.Experience) != 1 || doc.Experience[0].ID == "" {
		t.Fatalf("expected placeholder experience with id, got %+v", doc.Experience)
	}
}

func TestMergeWithDefaultsAcceptsNumericIDs(t *testing.T) {
	raw := `{"experience":[{"id":1700000000000,"company":"Acme"},{"id":1700000000000,"company":"Beta"},{"company":"Gamma"}]}`
	doc, err := MergeWithDefaults([]byte(raw))
	if err != nil {
		t.Fatalf("merge: %v", err)
	}
	if len(doc.Experience) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(doc.Experience))
	}
	if doc.Experience[0].ID != "1700000000000" {
		t.Fatalf("expected numeric id kept as text, got %q", doc.Experience[0].ID)
	}
	seen := map[ItemID]bool{}
	for _, e := range doc.Experience {
		if e.ID == "" || seen[e.ID] {
			t.Fatalf("ids must be unique and non-empty: %+v", doc.Experience)
		}
		seen[e.ID] = true
	}
	if doc.Experience[2].Achievements == nil {
		t.Fatalf("expected normalized achievements")
	}
}

func TestMergeWithDefaultsRejects(t *testing.T) {
	cases := []struct {
		name  string
		raw   string
		shape bool
	}{
		{name: "syntax", raw: `{"personal":`},
		{name: "trailing", raw: `{} {}`},
		{name: "array", raw: `[1,2]`, shape: true},
		{name: "wrong type", raw: `{"experience":"none"}`, shape: true},
		{name: "scalar section", raw: `{"personal":"Ada"}`, shape: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := MergeWithDefaults([]byte(tc.raw))
			if err == nil {
				t.Fatalf("expected error")
			}
			var shape *shapeError
			isShape := errors.As(err, &shape) || errors.Is(err, errNotObject)
			if isShape != tc.shape {
				t.Fatalf("shape classification = %v, want %v (%v)", isShape, tc.shape, err)
			}
		})
	}
}

func TestEncodeRoundTripsThroughMerge(t *testing.T) {
	doc := Default()
	doc.Personal.FirstName = "Ada"
	doc.Experience[0].Achievements = []string{"Note G"}
	doc.Skills.Languages = []string{"English", "French"}

	raw, err := Encode(doc)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if !strings.Contains(string(raw), "\n  \"personal\"") {
		t.Fatalf("expected two-space indentation:\n%s", raw)
	}
	got, err := MergeWithDefaults(raw)
	if err != nil {
		t.Fatalf("merge: %v", err)
	}
	if diff := cmp.Diff(doc, got); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestEncodeEmitsEmptyLists(t *testing.T) {
	doc := Default()
	doc.Projects = nil
	raw, err := Encode(doc)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	var m map[string]json.RawMessage
	if err := json.Unmarshal(raw, &m); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if string(m["projects"]) != "[]" {
		t.Fatalf("expected empty projects list, got %s", m["projects"])
	}
	if doc.Projects != nil {
		t.Fatalf("encode must not modify its argument")
	}
}

func TestCloneSharesNothing(t *testing.T) {
	pic := "data:image/png;base64,AAAA"
	doc := Default()
	doc.Personal.ProfilePicture = &pic
	doc.Skills.Technical = []string{"Go"}

	clone := doc.Clone()
	clone.Experience[0].Achievements[0] = "changed"
	clone.Skills.Technical[0] = "changed"
	*clone.Personal.ProfilePicture = "changed"
	clone.Education[0].Degree = "changed"

	if doc.Experience[0].Achievements[0] != "" || doc.Skills.Technical[0] != "Go" ||
		*doc.Personal.ProfilePicture != pic || doc.Education[0].Degree != "" {
		t.Fatalf("clone shares state with original: %+v", doc)
	}
	if diff := cmp.Diff(doc.Experience, clone.Experience, ignoreIDs, cmpopts.IgnoreFields(Experience{}, "Achievements")); diff != "" {
		t.Fatalf("unexpected experience diff:\n%s", diff)
	}
}
