package resume

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Section names of the top-level document fields.
const (
	SectionPersonal   = "personal"
	SectionExperience = "experience"
	SectionEducation  = "education"
	SectionSkills     = "skills"
	SectionProjects   = "projects"
	SectionTemplate   = "template"
	SectionColors     = "colors"
	SectionSettings   = "settings"
)

// Skill categories. The set is closed.
const (
	SkillsTechnical      = "technical"
	SkillsSoft           = "soft"
	SkillsLanguages      = "languages"
	SkillsCertifications = "certifications"
)

// SkillCategories lists the skill categories in display order.
var SkillCategories = []string{SkillsTechnical, SkillsSoft, SkillsLanguages, SkillsCertifications}

// ItemID identifies an entry of a list section.
type ItemID string

// NewItemID returns a fresh time-ordered identifier.
func NewItemID() ItemID {
	id, err := uuid.NewV7()
	if err != nil {
		return ItemID(uuid.NewString())
	}
	return ItemID(id.String())
}

// UnmarshalJSON accepts both strings and the numeric ids older documents carry.
func (id *ItemID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ItemID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("item id: %w", err)
	}
	*id = ItemID(n.String())
	return nil
}

// Document is the complete resume aggregate.
type Document struct {
	Personal   Personal     `json:"personal"`
	Experience []Experience `json:"experience"`
	Education  []Education  `json:"education"`
	Skills     Skills       `json:"skills"`
	Projects   []Project    `json:"projects"`
	Template   Template     `json:"template"`
	Colors     Colors       `json:"colors"`
	Settings   Settings     `json:"settings"`
}

// Personal holds contact fields and the optional profile image payload.
type Personal struct {
	FirstName      string  `json:"firstName"`
	LastName       string  `json:"lastName"`
	Email          string  `json:"email"`
	Phone          string  `json:"phone"`
	Location       string  `json:"location"`
	Website        string  `json:"website"`
	LinkedIn       string  `json:"linkedin"`
	GitHub         string  `json:"github"`
	Summary        string  `json:"summary"`
	ProfilePicture *string `json:"profilePicture"`
}

// FullName joins first and last name.
func (p Personal) FullName() string {
	return strings.TrimSpace(strings.TrimSpace(p.FirstName) + " " + strings.TrimSpace(p.LastName))
}

// Experience is one work history entry.
type Experience struct {
	ID           ItemID   `json:"id"`
	Company      string   `json:"company"`
	Position     string   `json:"position"`
	Location     string   `json:"location"`
	StartDate    string   `json:"startDate"`
	EndDate      string   `json:"endDate"`
	Current      bool     `json:"current"`
	Description  string   `json:"description"`
	Achievements []string `json:"achievements"`
}

// EffectiveEndDate is empty while the position is current.
func (e Experience) EffectiveEndDate() string {
	if e.Current {
		return ""
	}
	return e.EndDate
}

// Education is one education entry.
type Education struct {
	ID          ItemID `json:"id"`
	Institution string `json:"institution"`
	Degree      string `json:"degree"`
	Field       string `json:"field"`
	Location    string `json:"location"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	Current     bool   `json:"current"`
	GPA         string `json:"gpa"`
	Description string `json:"description"`
}

// EffectiveEndDate is empty while the entry is current.
func (e Education) EffectiveEndDate() string {
	if e.Current {
		return ""
	}
	return e.EndDate
}

// Project is one portfolio entry.
type Project struct {
	ID           ItemID   `json:"id"`
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Technologies []string `json:"technologies"`
	Link         string   `json:"link"`
	GitHub       string   `json:"github"`
	StartDate    string   `json:"startDate"`
	EndDate      string   `json:"endDate"`
	Current      bool     `json:"current"`
}

// EffectiveEndDate is empty while the project is current.
func (p Project) EffectiveEndDate() string {
	if p.Current {
		return ""
	}
	return p.EndDate
}

// Skills maps each closed category to its ordered entries.
type Skills struct {
	Technical      []string `json:"technical"`
	Soft           []string `json:"soft"`
	Languages      []string `json:"languages"`
	Certifications []string `json:"certifications"`
}

// Category returns a pointer to the named category list.
func (s *Skills) Category(name string) (*[]string, bool) {
	switch name {
	case SkillsTechnical:
		return &s.Technical, true
	case SkillsSoft:
		return &s.Soft, true
	case SkillsLanguages:
		return &s.Languages, true
	case SkillsCertifications:
		return &s.Certifications, true
	default:
		return nil, false
	}
}

// Total counts skills across all categories.
func (s Skills) Total() int {
	return len(s.Technical) + len(s.Soft) + len(s.Languages) + len(s.Certifications)
}

// Template selects the visual template and its layout.
type Template struct {
	Name   string `json:"name"`
	Layout string `json:"layout"`
}

// Colors is the five-color scheme used by templates.
type Colors struct {
	Primary    string `json:"primary"`
	Secondary  string `json:"secondary"`
	Accent     string `json:"accent"`
	Background string `json:"background"`
	Text       string `json:"text"`
}

// Settings are display preferences.
type Settings struct {
	FontSize           string `json:"fontSize"`
	FontFamily         string `json:"fontFamily"`
	Spacing            string `json:"spacing"`
	ShowProfilePicture bool   `json:"showProfilePicture"`
	ShowIcons          bool   `json:"showIcons"`
}

// Clone returns a deep copy that shares no slices or pointers with d.
func (d Document) Clone() Document {
	out := d
	if d.Personal.ProfilePicture != nil {
		pic := *d.Personal.ProfilePicture
		out.Personal.ProfilePicture = &pic
	}
	if d.Experience != nil {
		out.Experience = make([]Experience, len(d.Experience))
		for i, exp := range d.Experience {
			exp.Achievements = cloneStrings(exp.Achievements)
			out.Experience[i] = exp
		}
	}
	out.Education = append([]Education(nil), d.Education...)
	if d.Projects != nil {
		out.Projects = make([]Project, len(d.Projects))
		for i, p := range d.Projects {
			p.Technologies = cloneStrings(p.Technologies)
			out.Projects[i] = p
		}
	}
	out.Skills = Skills{
		Technical:      cloneStrings(d.Skills.Technical),
		Soft:           cloneStrings(d.Skills.Soft),
		Languages:      cloneStrings(d.Skills.Languages),
		Certifications: cloneStrings(d.Skills.Certifications),
	}
	return out
}

// normalize replaces nil lists with empty ones so the JSON form is stable.
func (d *Document) normalize() {
	if d.Experience == nil {
		d.Experience = []Experience{}
	}
	if d.Education == nil {
		d.Education = []Education{}
	}
	if d.Projects == nil {
		d.Projects = []Project{}
	}
	for i := range d.Experience {
		if d.Experience[i].Achievements == nil {
			d.Experience[i].Achievements = []string{}
		}
	}
	for i := range d.Projects {
		if d.Projects[i].Technologies == nil {
			d.Projects[i].Technologies = []string{}
		}
	}
	for _, name := range SkillCategories {
		list, _ := d.Skills.Category(name)
		if *list == nil {
			*list = []string{}
		}
	}
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
