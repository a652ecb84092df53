package export

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"regexp"
	"strings"
	"time"

	"resume-builder/internal/resume"
)

// PageWidthPx is the rendered content width: A4 at 96 dpi.
const PageWidthPx = 794

//go:embed templates/*.html.tmpl
var templateFS embed.FS

var (
	hexColorRe   = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)
	fontFamilyRe = regexp.MustCompile(`^[A-Za-z0-9 ,\-]+$`)
	dataImageRe  = regexp.MustCompile(`^data:image/(?:png|jpeg|jpg|gif|webp);base64,[A-Za-z0-9+/=]+$`)
)

var fontSizes = map[string]string{
	"small":  "14px",
	"medium": "16px",
	"large":  "18px",
	"xl":     "20px",
}

var spacings = map[string]string{
	"compact":  "1.3",
	"normal":   "1.5",
	"relaxed":  "1.7",
	"spacious": "1.9",
}

// Renderer turns a document into a standalone HTML page.
type Renderer struct {
	tmpl *template.Template
}

// NewRenderer parses the embedded templates.
func NewRenderer() (*Renderer, error) {
	tmpl, err := template.New("resume").Funcs(template.FuncMap{
		"dateRange": dateRange,
		"nonBlank":  nonBlank,
		"join":      strings.Join,
	}).ParseFS(templateFS, "templates/*.html.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &Renderer{tmpl: tmpl}, nil
}

// Render executes the template named by the document. Unknown names render
// with the modern template.
func (r *Renderer) Render(doc resume.Document) (string, error) {
	name := doc.Template.Name
	if _, ok := resume.LookupTemplate(name); !ok {
		name = resume.TemplateModern
	}
	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, name+".html.tmpl", newView(doc)); err != nil {
		return "", fmt.Errorf("render %s: %w", name, err)
	}
	return buf.String(), nil
}

type contact struct {
	Kind     string
	Value    string
	ShowIcon bool
}

type skillGroup struct {
	Title string
	Items []string
}

type style struct {
	Primary    template.CSS
	Secondary  template.CSS
	Accent     template.CSS
	Background template.CSS
	Text       template.CSS
	FontFamily template.CSS
	FontSize   template.CSS
	LineHeight template.CSS
	Width      int
}

type view struct {
	Name       string
	Personal   resume.Personal
	Picture    template.URL
	Contacts   []contact
	Experience []resume.Experience
	Education  []resume.Education
	Projects   []resume.Project
	Skills     []skillGroup
	Style      style
}

func newView(doc resume.Document) view {
	defaultColors := resume.DefaultColors()
	v := view{
		Name:       doc.Personal.FullName(),
		Personal:   doc.Personal,
		Contacts:   contacts(doc.Personal, doc.Settings.ShowIcons),
		Experience: doc.Experience,
		Education:  doc.Education,
		Projects:   doc.Projects,
		Skills:     skillGroups(doc.Skills),
		Style: style{
			Primary:    cssColor(doc.Colors.Primary, defaultColors.Primary),
			Secondary:  cssColor(doc.Colors.Secondary, defaultColors.Secondary),
			Accent:     cssColor(doc.Colors.Accent, defaultColors.Accent),
			Background: cssColor(doc.Colors.Background, defaultColors.Background),
			Text:       cssColor(doc.Colors.Text, defaultColors.Text),
			FontFamily: fontFamily(doc.Settings.FontFamily, resume.DefaultFontFamily),
			FontSize:   lookupCSS(fontSizes, doc.Settings.FontSize, "medium"),
			LineHeight: lookupCSS(spacings, doc.Settings.Spacing, "normal"),
			Width:      PageWidthPx,
		},
	}
	if v.Name == "" {
		v.Name = "Your Name"
	}
	if doc.Settings.ShowProfilePicture && doc.Personal.ProfilePicture != nil {
		if pic := strings.TrimSpace(*doc.Personal.ProfilePicture); dataImageRe.MatchString(pic) {
			v.Picture = template.URL(pic)
		}
	}
	return v
}

func contacts(p resume.Personal, icons bool) []contact {
	fields := []contact{
		{Kind: "email", Value: p.Email},
		{Kind: "phone", Value: p.Phone},
		{Kind: "location", Value: p.Location},
		{Kind: "website", Value: p.Website},
		{Kind: "linkedin", Value: p.LinkedIn},
		{Kind: "github", Value: p.GitHub},
	}
	out := make([]contact, 0, len(fields))
	for _, f := range fields {
		if v := strings.TrimSpace(f.Value); v != "" {
			out = append(out, contact{Kind: f.Kind, Value: v, ShowIcon: icons})
		}
	}
	return out
}

func skillGroups(s resume.Skills) []skillGroup {
	groups := []skillGroup{
		{Title: "Technical", Items: nonBlank(s.Technical)},
		{Title: "Soft Skills", Items: nonBlank(s.Soft)},
		{Title: "Languages", Items: nonBlank(s.Languages)},
		{Title: "Certifications", Items: nonBlank(s.Certifications)},
	}
	out := groups[:0]
	for _, g := range groups {
		if len(g.Items) > 0 {
			out = append(out, g)
		}
	}
	return out
}

func cssColor(value, fallback string) template.CSS {
	if hexColorRe.MatchString(value) {
		return template.CSS(value)
	}
	return template.CSS(fallback)
}

func fontFamily(value, fallback string) template.CSS {
	if fontFamilyRe.MatchString(value) {
		return template.CSS(value)
	}
	return template.CSS(fallback)
}

func lookupCSS(table map[string]string, key, fallback string) template.CSS {
	if v, ok := table[key]; ok {
		return template.CSS(v)
	}
	return template.CSS(table[fallback])
}

func nonBlank(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if strings.TrimSpace(item) != "" {
			out = append(out, item)
		}
	}
	return out
}

var dateLayouts = []string{"2006-01", "2006-01-02", time.RFC3339}

// formatDate renders a stored date as "Jan 2006". Unparseable values are
// shown as entered.
func formatDate(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC().Format("Jan 2006")
		}
	}
	return value
}

// dateRange formats start and end the way every template shows them. A
// current entry ends at "Present" regardless of any stored end date.
func dateRange(start, end string, current bool) string {
	from := formatDate(start)
	to := formatDate(end)
	if current {
		to = "Present"
	}
	switch {
	case from == "" && to == "":
		return ""
	case from == "":
		return to
	case to == "":
		return from
	}
	return from + " - " + to
}
