package resume

import "testing"

func TestDefaultStyleMatchesDefaultDocument(t *testing.T) {
	doc := Default()
	if doc.Colors != DefaultColors() {
		t.Fatalf("Default colors %+v differ from DefaultColors %+v", doc.Colors, DefaultColors())
	}
	if doc.Colors != colorSchemes[0].Colors {
		t.Fatalf("default colors should be the %q preset", colorSchemes[0].ID)
	}
	if doc.Settings.FontFamily != DefaultFontFamily {
		t.Fatalf("font family = %q, want %q", doc.Settings.FontFamily, DefaultFontFamily)
	}
}
