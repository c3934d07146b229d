package resume

import (
	"fmt"
	"math"
	"regexp"
	"sort"
	"strings"
	"time"
)

var dateLayouts = []string{"2006-01-02", "2006-01", "Jan 2006", "January 2006", "2006"}

var rangeSeparator = regexp.MustCompile(`\s*[-–]\s*`)

// Technical terms checked against the job description. Whole-word matches
// only, so "sql" inside "PostgreSQL" does not count.
var techKeywords = []string{
	"python", "java", "javascript", "typescript", "golang", "rust",
	"react", "angular", "node", "django", "spring",
	"aws", "gcp", "azure", "docker", "kubernetes", "terraform",
	"sql", "postgresql", "mysql", "mongodb", "redis", "kafka",
	"elasticsearch", "api", "rest", "graphql", "grpc",
	"git", "linux", "jenkins", "microservices",
}

type keywordPattern struct {
	term string
	re   *regexp.Regexp
}

var keywordPatterns = compileKeywords(techKeywords)

func compileKeywords(terms []string) []keywordPattern {
	out := make([]keywordPattern, 0, len(terms))
	for _, t := range terms {
		out = append(out, keywordPattern{term: t, re: regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(t) + `\b`)})
	}
	return out
}

var leadershipSignals = []struct{ pattern, label string }{
	{"managed team", "Managed a team"},
	{"led team", "Led a team"},
	{"mentored", "Mentored junior engineers"},
	{"hired", "Involved in hiring/recruiting"},
	{"spearheaded", "Spearheaded initiatives"},
	{"strategic", "Strategic planning detected"},
	{"stakeholder", "Stakeholder management detected"},
}

var degreeMarkers = []string{"bachelor", "master", "phd", "b.s", "m.s", "bsc", "msc", "degree"}

// Analyze derives the full analysis for a parsed resume. Open-ended jobs
// ("Present", "Current", unparseable end dates) are treated as running
// until now.
func Analyze(p Parsed, jobDescription string, now time.Time) *Analysis {
	jobs := buildTimeline(p.Experience, now)
	return &Analysis{
		Sections: scoreSections(p),
		Keywords: MatchKeywords(p.Text, jobDescription),
		Analytics: ExperienceAnalytics{
			GapAnalysis:       analyzeGaps(jobs),
			JobStability:      analyzeStability(jobs),
			LeadershipSignals: DetectLeadership(p.Text),
		},
	}
}

// job is one employment period reconstructed from an experience entry.
type job struct {
	company string
	start   time.Time
	end     time.Time
}

// buildTimeline turns experience entries into dated jobs, sorted by start
// date. Entries whose start date cannot be parsed are skipped.
func buildTimeline(entries []ExperienceEntry, now time.Time) []job {
	var jobs []job
	for _, e := range entries {
		startStr, endStr := splitDateRange(e.DateRange)
		start, ok := parseFlexibleDate(startStr)
		if !ok {
			continue
		}
		end, ok := parseFlexibleDate(endStr)
		if !ok {
			end = now
		}
		jobs = append(jobs, job{company: companyOf(e.Content), start: start, end: end})
	}
	sort.SliceStable(jobs, func(i, j int) bool { return jobs[i].start.Before(jobs[j].start) })
	return jobs
}

func splitDateRange(dr string) (string, string) {
	parts := rangeSeparator.Split(dr, 2)
	if len(parts) < 2 {
		return strings.TrimSpace(dr), ""
	}
	return strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])
}

func parseFlexibleDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(strings.ReplaceAll(s, ".", ""))
	if s == "" || strings.EqualFold(s, "present") || strings.EqualFold(s, "current") {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// companyOf takes the first non-empty line of an entry's content as the
// company name.
func companyOf(content string) string {
	for _, line := range strings.Split(content, "\n") {
		line = strings.Trim(line, " \t-•·|,")
		if line == "" {
			continue
		}
		if r := []rune(line); len(r) > 80 {
			line = string(r[:80])
		}
		return line
	}
	return "Unknown"
}

// analyzeGaps flags breaks longer than 90 days between consecutive jobs.
func analyzeGaps(jobs []job) GapAnalysis {
	ga := GapAnalysis{Gaps: []Gap{}, Flags: []string{}}
	for i := 0; i+1 < len(jobs); i++ {
		cur, next := jobs[i], jobs[i+1]
		gapDays := int(next.start.Sub(cur.end).Hours() / 24)
		if gapDays <= 90 {
			continue
		}
		months := gapDays / 30
		ga.Gaps = append(ga.Gaps, Gap{
			Start:          cur.end.Format("2006-01"),
			End:            next.start.Format("2006-01"),
			DurationMonths: months,
			Between:        cur.company + " and " + next.company,
		})
		ga.Flags = append(ga.Flags, fmt.Sprintf("Gap of %d months detected between %s and %s", months, cur.company, next.company))
	}
	ga.HasGaps = len(ga.Gaps) > 0
	return ga
}

// analyzeStability flags roles held under a year and computes average
// tenure. Two or more short roles count as job-hopping risk.
func analyzeStability(jobs []job) Stability {
	st := Stability{ShortTenures: []ShortTenure{}, Flags: []string{}}
	totalDays := 0
	for _, j := range jobs {
		days := int(j.end.Sub(j.start).Hours() / 24)
		totalDays += days
		if days < 365 {
			st.ShortTenures = append(st.ShortTenures, ShortTenure{Company: j.company, DurationMonths: days / 30})
		}
	}
	st.JobHoppingRisk = len(st.ShortTenures) >= 2
	if st.JobHoppingRisk {
		st.Flags = append(st.Flags, fmt.Sprintf("Job Hopping Risk: %d roles held for less than 1 year.", len(st.ShortTenures)))
	}
	if len(jobs) > 0 {
		st.AverageTenureYears = math.Round(float64(totalDays)/365/float64(len(jobs))*10) / 10
	}
	return st
}

// DetectLeadership scans the full text for leadership markers and returns
// their labels in lexicon order.
func DetectLeadership(text string) []string {
	lower := strings.ToLower(text)
	var signals []string
	for _, s := range leadershipSignals {
		if strings.Contains(lower, s.pattern) {
			signals = append(signals, s.label)
		}
	}
	return signals
}

// MatchKeywords checks which technical terms the job description asks for
// and whether the resume mentions them. Without a job description there
// is nothing to require, so both lists stay empty.
func MatchKeywords(resumeText, jobDescription string) Keywords {
	kw := Keywords{Matched: []string{}, Missing: []string{}}
	if strings.TrimSpace(jobDescription) == "" {
		return kw
	}
	for _, p := range keywordPatterns {
		if !p.re.MatchString(jobDescription) {
			continue
		}
		if p.re.MatchString(resumeText) {
			kw.Matched = append(kw.Matched, p.term)
		} else {
			kw.Missing = append(kw.Missing, p.term)
		}
	}
	return kw
}

func scoreSections(p Parsed) map[string]SectionScore {
	return map[string]SectionScore{
		"experience": {Score: scoreExperience(len(p.Experience), p.Sections["experience"])},
		"skills":     {Score: scoreSkills(len(p.Skills))},
		"education":  {Score: scoreEducation(p.Sections["education"])},
		"summary":    {Score: scoreSummary(p.Sections["summary"])},
	}
}

func scoreExperience(entries int, text string) int {
	switch {
	case entries >= 4:
		return 90
	case entries >= 2:
		return 80
	case entries == 1:
		return 65
	case len(strings.Fields(text)) >= 30:
		return 60
	default:
		return 40
	}
}

func scoreSkills(n int) int {
	switch {
	case n >= 15:
		return 95
	case n >= 10:
		return 85
	case n >= 5:
		return 70
	case n >= 1:
		return 55
	default:
		return 40
	}
}

func scoreEducation(text string) int {
	if strings.TrimSpace(text) == "" {
		return 45
	}
	lower := strings.ToLower(text)
	for _, m := range degreeMarkers {
		if strings.Contains(lower, m) {
			return 85
		}
	}
	return 65
}

func scoreSummary(text string) int {
	words := len(strings.Fields(text))
	switch {
	case words >= 30:
		return 80
	case words > 0:
		return 65
	default:
		return 50
	}
}
