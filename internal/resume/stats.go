package resume

import (
	"math"
	"strings"
)

// Section weights of the completion percentage.
const (
	weightPersonal   = 0.20
	weightExperience = 0.30
	weightEducation  = 0.20
	weightSkills     = 0.15
	weightProjects   = 0.15
)

// Stats summarizes the document for the editor. CompletionPercentage is a
// fill-rate heuristic for user feedback only.
type Stats struct {
	ExperienceCount      int           `json:"experienceCount"`
	EducationCount       int           `json:"educationCount"`
	ProjectCount         int           `json:"projectCount"`
	TotalSkills          int           `json:"totalSkills"`
	CompletionPercentage int           `json:"completionPercentage"`
	Sections             SectionScores `json:"sections"`
}

// SectionScores are the per-section sub-scores on a 0-100 scale.
type SectionScores struct {
	Personal   float64 `json:"personal"`
	Experience float64 `json:"experience"`
	Education  float64 `json:"education"`
	Skills     float64 `json:"skills"`
	Projects   float64 `json:"projects"`
}

// CompletionStats computes the statistics of doc.
func CompletionStats(doc Document) Stats {
	scores := SectionScores{
		Personal: fillRate(1, func(int) []string {
			p := doc.Personal
			return []string{p.FirstName, p.LastName, p.Email, p.Summary}
		}),
		Experience: fillRate(len(doc.Experience), func(i int) []string {
			e := doc.Experience[i]
			return []string{e.Company, e.Position, e.Description}
		}),
		Education: fillRate(len(doc.Education), func(i int) []string {
			e := doc.Education[i]
			return []string{e.Institution, e.Degree, e.Field}
		}),
		Skills: math.Min(float64(doc.Skills.Total())*10, 100),
		Projects: fillRate(len(doc.Projects), func(i int) []string {
			p := doc.Projects[i]
			return []string{p.Name, p.Description}
		}),
	}

	total := scores.Personal*weightPersonal +
		scores.Experience*weightExperience +
		scores.Education*weightEducation +
		scores.Skills*weightSkills +
		scores.Projects*weightProjects

	return Stats{
		ExperienceCount:      len(doc.Experience),
		EducationCount:       len(doc.Education),
		ProjectCount:         len(doc.Projects),
		TotalSkills:          doc.Skills.Total(),
		CompletionPercentage: int(math.Floor(total + 0.5)),
		Sections:             scores,
	}
}

// fillRate returns the share of non-blank checklist fields over n entries,
// scaled to 0-100. An empty list scores 0.
func fillRate(n int, fields func(i int) []string) float64 {
	if n == 0 {
		return 0
	}
	var filled, total int
	for i := 0; i < n; i++ {
		for _, v := range fields(i) {
			total++
			if strings.TrimSpace(v) != "" {
				filled++
			}
		}
	}
	if total == 0 {
		return 0
	}
	return float64(filled) / float64(total) * 100
}
