package resume

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDeepMergeOverlaysNestedObjects(t *testing.T) {
	defaults := map[string]any{
		"personal": map[string]any{"firstName": "", "email": ""},
		"skills":   map[string]any{"technical": []any{}},
		"template": map[string]any{"name": "modern", "layout": "single-column"},
	}
	partial := map[string]any{
		"personal": map[string]any{"firstName": "Ada"},
		"template": map[string]any{"name": "creative"},
		"extra":    "kept",
	}

	got := DeepMerge(defaults, partial)
	want := map[string]any{
		"personal": map[string]any{"firstName": "Ada", "email": ""},
		"skills":   map[string]any{"technical": []any{}},
		"template": map[string]any{"name": "creative", "layout": "single-column"},
		"extra":    "kept",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("merge mismatch (-want +got):\n%s", diff)
	}
}

func TestDeepMergeReplacesArrays(t *testing.T) {
	defaults := map[string]any{"experience": []any{map[string]any{"id": "a"}, map[string]any{"id": "b"}}}
	partial := map[string]any{"experience": []any{map[string]any{"company": "Acme"}}}

	got := DeepMerge(defaults, partial)
	want := []any{map[string]any{"company": "Acme"}}
	if diff := cmp.Diff(want, got["experience"]); diff != "" {
		t.Fatalf("arrays should be replaced (-want +got):\n%s", diff)
	}
}

func TestDeepMergeNullKeepsObjectDefault(t *testing.T) {
	defaults := map[string]any{
		"colors":   map[string]any{"primary": "#3B82F6"},
		"personal": map[string]any{"profilePicture": nil, "phone": "1"},
	}
	partial := map[string]any{
		"colors":   nil,
		"personal": map[string]any{"phone": nil},
	}

	got := DeepMerge(defaults, partial)
	if diff := cmp.Diff(map[string]any{"primary": "#3B82F6"}, got["colors"]); diff != "" {
		t.Fatalf("null must not wipe object default (-want +got):\n%s", diff)
	}
	personal := got["personal"].(map[string]any)
	if personal["phone"] != nil {
		t.Fatalf("null should replace a scalar, got %v", personal["phone"])
	}
}

func TestDeepMergeDoesNotModifyInputs(t *testing.T) {
	defaults := map[string]any{"personal": map[string]any{"firstName": ""}}
	partial := map[string]any{"personal": map[string]any{"firstName": "Ada"}, "list": []any{"x"}}

	got := DeepMerge(defaults, partial)
	got["personal"].(map[string]any)["firstName"] = "changed"
	got["list"].([]any)[0] = "changed"

	if defaults["personal"].(map[string]any)["firstName"] != "" {
		t.Fatalf("defaults were modified")
	}
	if partial["personal"].(map[string]any)["firstName"] != "Ada" || partial["list"].([]any)[0] != "x" {
		t.Fatalf("partial was modified")
	}
}

func TestDeepMergeNilInputs(t *testing.T) {
	got := DeepMerge(nil, map[string]any{"a": float64(1)})
	if diff := cmp.Diff(map[string]any{"a": float64(1)}, got); diff != "" {
		t.Fatalf("unexpected result (-want +got):\n%s", diff)
	}
	if got := DeepMerge(map[string]any{"a": "b"}, nil); got["a"] != "b" {
		t.Fatalf("expected defaults with nil partial, got %v", got)
	}
}
