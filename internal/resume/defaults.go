package resume

// Template names and layouts.
const (
	TemplateModern   = "modern"
	TemplateClassic  = "classic"
	TemplateCreative = "creative"

	LayoutSingleColumn = "single-column"
	LayoutTwoColumn    = "two-column"
)

// DefaultStorageKey is the key the document is persisted under.
const DefaultStorageKey = "resume-builder-data"

// DefaultFontFamily is the font stack of a new document.
const DefaultFontFamily = "Arial, sans-serif"

// TemplateInfo describes a selectable template.
type TemplateInfo struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Layout      string   `json:"layout"`
	Features    []string `json:"features"`
}

// ColorScheme is a named preset for the colors section.
type ColorScheme struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Colors      Colors `json:"colors"`
}

var templates = []TemplateInfo{
	{
		ID:          TemplateModern,
		Name:        "Modern",
		Description: "Clean, minimalist design with bold typography",
		Layout:      LayoutSingleColumn,
		Features:    []string{"Bold typography", "Clean layout", "Professional look"},
	},
	{
		ID:          TemplateClassic,
		Name:        "Classic",
		Description: "Traditional resume format with timeless appeal",
		Layout:      LayoutSingleColumn,
		Features:    []string{"Traditional format", "Easy to read", "Widely accepted"},
	},
	{
		ID:          TemplateCreative,
		Name:        "Creative",
		Description: "Unique design with visual elements and modern flair",
		Layout:      LayoutTwoColumn,
		Features:    []string{"Visual elements", "Modern flair", "Stand out"},
	},
}

var colorSchemes = []ColorScheme{
	{
		ID:          "professional",
		Name:        "Professional",
		Description: "Classic blue and gray for corporate environments",
		Colors:      Colors{Primary: "#3B82F6", Secondary: "#1F2937", Accent: "#10B981", Background: "#FFFFFF", Text: "#1F2937"},
	},
	{
		ID:          "modern",
		Name:        "Modern",
		Description: "Purple and amber for creative industries",
		Colors:      Colors{Primary: "#8B5CF6", Secondary: "#374151", Accent: "#F59E0B", Background: "#FFFFFF", Text: "#111827"},
	},
	{
		ID:          "minimal",
		Name:        "Minimal",
		Description: "Black and white for clean, minimal look",
		Colors:      Colors{Primary: "#000000", Secondary: "#6B7280", Accent: "#000000", Background: "#FFFFFF", Text: "#000000"},
	},
	{
		ID:          "warm",
		Name:        "Warm",
		Description: "Warm reds and oranges for energetic feel",
		Colors:      Colors{Primary: "#DC2626", Secondary: "#7C2D12", Accent: "#EA580C", Background: "#FFFFFF", Text: "#1F2937"},
	},
	{
		ID:          "cool",
		Name:        "Cool",
		Description: "Cool blues and teals for tech and science",
		Colors:      Colors{Primary: "#0891B2", Secondary: "#0F766E", Accent: "#06B6D4", Background: "#FFFFFF", Text: "#0F172A"},
	},
	{
		ID:          "nature",
		Name:        "Nature",
		Description: "Green tones for environmental and health sectors",
		Colors:      Colors{Primary: "#059669", Secondary: "#166534", Accent: "#65A30D", Background: "#FFFFFF", Text: "#1F2937"},
	},
}

// Templates returns the selectable templates.
func Templates() []TemplateInfo {
	out := make([]TemplateInfo, len(templates))
	copy(out, templates)
	return out
}

// ColorSchemes returns the color presets.
func ColorSchemes() []ColorScheme {
	out := make([]ColorScheme, len(colorSchemes))
	copy(out, colorSchemes)
	return out
}

// LookupTemplate finds a template by id.
func LookupTemplate(id string) (TemplateInfo, bool) {
	for _, t := range templates {
		if t.ID == id {
			return t, true
		}
	}
	return TemplateInfo{}, false
}

// LookupColorScheme finds a color preset by id.
func LookupColorScheme(id string) (ColorScheme, bool) {
	for _, s := range colorSchemes {
		if s.ID == id {
			return s, true
		}
	}
	return ColorScheme{}, false
}

// DefaultColors returns the colors of the first preset.
func DefaultColors() Colors {
	return colorSchemes[0].Colors
}

// Default returns a fresh default document. Each call assigns new ids to the
// placeholder entries.
func Default() Document {
	doc := Document{
		Experience: []Experience{{
			ID:           NewItemID(),
			Achievements: []string{""},
		}},
		Education: []Education{{
			ID: NewItemID(),
		}},
		Projects: []Project{{
			ID:           NewItemID(),
			Technologies: []string{},
		}},
		Skills: Skills{
			Technical:      []string{},
			Soft:           []string{},
			Languages:      []string{},
			Certifications: []string{},
		},
		Template: Template{Name: TemplateModern, Layout: LayoutSingleColumn},
		Colors:   DefaultColors(),
		Settings: Settings{
			FontSize:           "medium",
			FontFamily:         DefaultFontFamily,
			Spacing:            "normal",
			ShowProfilePicture: true,
			ShowIcons:          true,
		},
	}
	return doc
}
