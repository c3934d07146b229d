// Package resume parses plain-text resumes into sections and derives
// deterministic analytics from them: employment gaps, tenure stability,
// leadership signals, section strength, and keyword coverage against a
// job description. Snapshots live in an in-memory registry and are
// referenced by interview sessions at start time.
package resume

import "time"

// Contact holds whatever contact details could be extracted from the text.
type Contact struct {
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	LinkedIn string `json:"linkedin,omitempty"`
	GitHub   string `json:"github,omitempty"`
}

// ExperienceEntry is one employment period cut out of the experience
// section. DateRange keeps the original text, e.g. "Jan 2020 - Mar 2022".
type ExperienceEntry struct {
	DateRange string `json:"date_range"`
	Content   string `json:"content"`
}

// Parsed is the structural breakdown of one resume text.
type Parsed struct {
	Text       string            `json:"-"`
	Sections   map[string]string `json:"sections"`
	Contact    Contact           `json:"contact_info"`
	Experience []ExperienceEntry `json:"experience_entries"`
	Skills     []string          `json:"skills"`
	WordCount  int               `json:"word_count"`
	CharCount  int               `json:"char_count"`
}

// SectionScore rates how strong a core section looks, 0 to 100.
type SectionScore struct {
	Score int `json:"score"`
}

// Keywords lists the technical terms a job description asks for, split by
// whether the resume mentions them.
type Keywords struct {
	Matched []string `json:"matched"`
	Missing []string `json:"missing"`
}

// Gap is a break of more than three months between consecutive jobs.
type Gap struct {
	Start          string `json:"start"`
	End            string `json:"end"`
	DurationMonths int    `json:"duration_months"`
	Between        string `json:"between"`
}

type GapAnalysis struct {
	HasGaps bool     `json:"has_gaps"`
	Gaps    []Gap    `json:"gaps"`
	Flags   []string `json:"flags"`
}

// ShortTenure is a role held for less than a year.
type ShortTenure struct {
	Company        string `json:"company"`
	DurationMonths int    `json:"duration_months"`
}

type Stability struct {
	JobHoppingRisk     bool          `json:"job_hopping_risk"`
	ShortTenures       []ShortTenure `json:"short_tenures"`
	AverageTenureYears float64       `json:"average_tenure_years"`
	Flags              []string      `json:"flags"`
}

type ExperienceAnalytics struct {
	GapAnalysis       GapAnalysis `json:"gap_analysis"`
	JobStability      Stability   `json:"job_stability"`
	LeadershipSignals []string    `json:"leadership_signals"`
}

// Analysis is the full derived view of a resume. Interview focus-area
// selection reads the weak sections, missing keywords, gaps, stability
// risk, and leadership signals from here.
type Analysis struct {
	Sections  map[string]SectionScore `json:"sections"`
	Keywords  Keywords                `json:"keywords"`
	Analytics ExperienceAnalytics     `json:"analytics"`
}

// Snapshot is a stored resume plus everything derived from it.
type Snapshot struct {
	ID string `json:"resume_id"`
	Parsed
	JobDescription string    `json:"-"`
	Analysis       *Analysis `json:"analysis"`
	CreatedAt      time.Time `json:"created_at"`
}
