package export

import (
	"strings"
	"testing"

	"resume-builder/internal/resume"
)

func newTestRenderer(t *testing.T) *Renderer {
	t.Helper()
	r, err := NewRenderer()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	return r
}

func TestRenderDefaultDocument(t *testing.T) {
	html, err := newTestRenderer(t).Render(resume.Default())
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	for _, want := range []string{"<!DOCTYPE html>", "template-modern", "Your Name", "width: 794px", "#3B82F6"} {
		if !strings.Contains(html, want) {
			t.Fatalf("expected %q in output", want)
		}
	}
}

func TestRenderSelectsTemplate(t *testing.T) {
	r := newTestRenderer(t)
	cases := map[string]string{
		resume.TemplateModern:   "template-modern",
		resume.TemplateClassic:  "template-classic",
		resume.TemplateCreative: "template-creative",
		"brutalist":             "template-modern",
		"":                      "template-modern",
	}
	for name, marker := range cases {
		doc := resume.Default()
		doc.Template.Name = name
		html, err := r.Render(doc)
		if err != nil {
			t.Fatalf("render %q: %v", name, err)
		}
		if !strings.Contains(html, marker) {
			t.Fatalf("template %q: expected %q", name, marker)
		}
	}
}

func TestRenderCurrentEntryEndsAtPresent(t *testing.T) {
	doc := resume.Default()
	doc.Experience = []resume.Experience{{
		ID:           "1",
		Company:      "Analytical Engines Ltd",
		Position:     "Engineer",
		StartDate:    "2020-01",
		EndDate:      "2022-05",
		Current:      true,
		Achievements: []string{"Wrote the first program", ""},
	}}
	html, err := newTestRenderer(t).Render(doc)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(html, "Jan 2020 - Present") {
		t.Fatalf("expected present range in output")
	}
	if strings.Contains(html, "May 2022") {
		t.Fatalf("end date of a current entry must not render")
	}
	if strings.Count(html, "<li>") != 1 {
		t.Fatalf("blank achievements must be skipped")
	}
}

func TestRenderEscapesContent(t *testing.T) {
	doc := resume.Default()
	doc.Personal.FirstName = "<script>alert(1)</script>"
	html, err := newTestRenderer(t).Render(doc)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if strings.Contains(html, "<script>alert(1)</script>") {
		t.Fatalf("personal fields must be escaped")
	}
	if !strings.Contains(html, "&lt;script&gt;") {
		t.Fatalf("expected escaped name")
	}
}

func TestRenderFallsBackOnUnsafeStyle(t *testing.T) {
	doc := resume.Default()
	doc.Template.Name = resume.TemplateCreative
	doc.Colors.Primary = "red;} body{display:none"
	doc.Settings.FontFamily = "Arial; background:url(x)"
	doc.Settings.FontSize = "huge"
	html, err := newTestRenderer(t).Render(doc)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if strings.Contains(html, "display:none") || strings.Contains(html, "url(x)") {
		t.Fatalf("unsafe style values must not render")
	}
	if !strings.Contains(html, "font-family: Arial, sans-serif") || !strings.Contains(html, "font-size: 16px") {
		t.Fatalf("expected default font settings")
	}
	if !strings.Contains(html, "background: "+resume.DefaultColors().Primary) {
		t.Fatalf("expected the default primary color")
	}
}

func TestRenderProfilePicture(t *testing.T) {
	pic := "data:image/png;base64,iVBORw0KGgo="
	doc := resume.Default()
	doc.Personal.ProfilePicture = &pic

	r := newTestRenderer(t)
	html, err := r.Render(doc)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(html, `src="data:image/png;base64,iVBORw0KGgo="`) {
		t.Fatalf("expected inline picture")
	}

	doc.Settings.ShowProfilePicture = false
	html, err = r.Render(doc)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if strings.Contains(html, "iVBORw0KGgo") {
		t.Fatalf("hidden picture must not render")
	}

	bad := "javascript:alert(1)"
	doc.Settings.ShowProfilePicture = true
	doc.Personal.ProfilePicture = &bad
	html, err = r.Render(doc)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if strings.Contains(html, "javascript:") {
		t.Fatalf("non-image payload must not render")
	}
}

func TestFormatDate(t *testing.T) {
	cases := map[string]string{
		"":                     "",
		"2021-03":              "Mar 2021",
		"2021-03-15":           "Mar 2021",
		"2021-12-01T00:00:00Z": "Dec 2021",
		"someday":              "someday",
	}
	for in, want := range cases {
		if got := formatDate(in); got != want {
			t.Fatalf("formatDate(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestDateRange(t *testing.T) {
	cases := []struct {
		start, end string
		current    bool
		want       string
	}{
		{"", "", false, ""},
		{"2020-01", "", false, "Jan 2020"},
		{"", "", true, "Present"},
		{"2020-01", "2021-06", false, "Jan 2020 - Jun 2021"},
		{"2020-01", "2021-06", true, "Jan 2020 - Present"},
	}
	for _, tc := range cases {
		if got := dateRange(tc.start, tc.end, tc.current); got != tc.want {
			t.Fatalf("dateRange(%q, %q, %v) = %q, want %q", tc.start, tc.end, tc.current, got, tc.want)
		}
	}
}
