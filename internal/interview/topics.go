package interview

import (
	"sort"
	"strings"

	"github.com/mockingbird-ai/mockingbird/internal/resume"
)

var allTopics = []string{
	"experience", "technical_skills", "problem_solving", "teamwork",
	"leadership", "communication", "motivation", "career_goals", "challenges",
}

// RemainingTopics lists up to three canonical topics not yet covered, or
// "wrap-up" once everything has been touched.
func RemainingTopics(covered []string) []string {
	seen := make(map[string]bool, len(covered))
	for _, c := range covered {
		seen[c] = true
	}
	var remaining []string
	for _, t := range allTopics {
		if seen[t] {
			continue
		}
		remaining = append(remaining, t)
		if len(remaining) == 3 {
			break
		}
	}
	if len(remaining) == 0 {
		return []string{"wrap-up"}
	}
	return remaining
}

// FocusAreas turns a resume analysis into a focus hint for the opening
// prompt: weak sections (sorted for stable output), unvalidated skills,
// gaps to explain, tenure concerns, and leadership claims to verify.
func FocusAreas(analysis *resume.Analysis) string {
	if analysis == nil {
		return "general skills and experience"
	}

	var areas []string

	var weak []string
	for name, sc := range analysis.Sections {
		if sc.Score < 70 {
			weak = append(weak, name)
		}
	}
	sort.Strings(weak)
	areas = append(areas, weak...)

	if missing := analysis.Keywords.Missing; len(missing) > 0 {
		areas = append(areas, "validate skills: "+strings.Join(firstN(missing, 3), ", "))
	}
	for _, gap := range analysis.Analytics.GapAnalysis.Gaps {
		areas = append(areas, "Explain resume gap: "+gap.Between)
	}
	if analysis.Analytics.JobStability.JobHoppingRisk {
		areas = append(areas, "Discuss frequent job changes/short tenure")
	}
	if lead := analysis.Analytics.LeadershipSignals; len(lead) > 0 {
		areas = append(areas, "Verify leadership experience: "+strings.Join(firstN(lead, 2), ", "))
	}

	if len(areas) == 0 {
		return "comprehensive assessment"
	}
	return strings.Join(areas, ", ")
}

func firstN(items []string, n int) []string {
	if len(items) <= n {
		return items
	}
	return items[:n]
}
