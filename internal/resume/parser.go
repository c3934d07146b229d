package resume

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Section headings are matched against the start of a line, so
// "Professional Experience at Acme" still opens the experience section.
// Order matters: the first matching pattern wins.
var sectionPatterns = []struct {
	name string
	re   *regexp.Regexp
}{
	{"contact", regexp.MustCompile(`(?i)^(contact\s*info|contact\s*details|personal\s*info)`)},
	{"summary", regexp.MustCompile(`(?i)^(summary|profile|objective|about\s*me|professional\s*summary)`)},
	{"experience", regexp.MustCompile(`(?i)^(experience|work\s*history|employment|professional\s*experience|career\s*history)`)},
	{"education", regexp.MustCompile(`(?i)^(education|academic|qualifications|degrees)`)},
	{"skills", regexp.MustCompile(`(?i)^(skills|technical\s*skills|core\s*competencies|expertise|technologies)`)},
	{"projects", regexp.MustCompile(`(?i)^(projects|portfolio|key\s*projects)`)},
	{"certifications", regexp.MustCompile(`(?i)^(certifications|certificates|licenses|credentials)`)},
	{"awards", regexp.MustCompile(`(?i)^(awards|honors|achievements|recognition)`)},
	{"publications", regexp.MustCompile(`(?i)^(publications|papers|research)`)},
	{"languages", regexp.MustCompile(`(?i)^(languages|language\s*skills)`)},
	{"interests", regexp.MustCompile(`(?i)^(interests|hobbies|activities)`)},
}

var (
	emailPattern    = regexp.MustCompile(`[\w.-]+@[\w.-]+\.\w+`)
	phonePattern    = regexp.MustCompile(`\+?\(?[0-9]{1,3}\)?[-\s.]?\(?[0-9]{1,3}\)?[-\s.]?[0-9]{3,4}[-\s.]?[0-9]{3,4}`)
	linkedinPattern = regexp.MustCompile(`(?i)linkedin\.com/in/[\w-]+`)
	githubPattern   = regexp.MustCompile(`(?i)github\.com/[\w-]+`)

	horizontalRun = regexp.MustCompile(`[ \t]+`)
	trailingSpace = regexp.MustCompile(` +\n`)
	blankRun      = regexp.MustCompile(`\n{3,}`)

	monthYear        = `(?:Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)[a-z]*\.?\s*\d{4}`
	dateRangePattern = regexp.MustCompile(`\b(` + monthYear + `|\d{4})\s*[-–]\s*((?i:Present|Current)|` + monthYear + `|\d{4})\b`)
)

var skillSeparators = []string{",", "|", "•", "·", "-", "\n"}

// ParseText cleans raw resume text and extracts its structure. It never
// fails: a resume with no recognizable headings ends up as one "header"
// section with empty derived fields.
func ParseText(raw string) Parsed {
	text := CleanText(raw)
	sections := DetectSections(text)
	p := Parsed{
		Text:      text,
		Sections:  sections,
		Contact:   ExtractContact(text),
		WordCount: len(strings.Fields(text)),
		CharCount: utf8.RuneCountInString(text),
	}
	if exp, ok := sections["experience"]; ok {
		p.Experience = ExtractExperienceEntries(exp)
	}
	if sk, ok := sections["skills"]; ok {
		p.Skills = ExtractSkills(sk)
	}
	return p
}

// CleanText normalizes line endings, drops non-printable runes, collapses
// runs of spaces and tabs, and limits blank runs to one empty line. Line
// structure is preserved so section headings stay detectable.
func CleanText(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if r == '\n' || r == '\t' || unicode.IsPrint(r) {
			b.WriteRune(r)
		}
	}
	text = horizontalRun.ReplaceAllString(b.String(), " ")
	text = trailingSpace.ReplaceAllString(text, "\n")
	text = blankRun.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}

// DetectSections splits the text into named sections on heading lines.
// Everything before the first heading lands in "header". A repeated
// heading overwrites the earlier section of the same name.
func DetectSections(text string) map[string]string {
	sections := make(map[string]string)
	current := "header"
	var content []string
	flush := func() {
		if len(content) > 0 {
			sections[current] = strings.TrimSpace(strings.Join(content, "\n"))
		}
	}
	for _, line := range strings.Split(text, "\n") {
		if name := matchSectionHeading(strings.TrimSpace(line)); name != "" {
			flush()
			current = name
			content = nil
			continue
		}
		content = append(content, line)
	}
	flush()
	return sections
}

func matchSectionHeading(line string) string {
	for _, sp := range sectionPatterns {
		if sp.re.MatchString(line) {
			return sp.name
		}
	}
	return ""
}

// ExtractContact pulls email, phone, LinkedIn and GitHub handles out of
// the full text. Absent fields stay empty.
func ExtractContact(text string) Contact {
	return Contact{
		Email:    emailPattern.FindString(text),
		Phone:    phonePattern.FindString(text),
		LinkedIn: linkedinPattern.FindString(text),
		GitHub:   githubPattern.FindString(text),
	}
}

// ExtractExperienceEntries cuts the experience section into entries, one
// per date range. Text before the first date range is dropped; each
// entry's content runs until the next date range or the end of the text.
func ExtractExperienceEntries(text string) []ExperienceEntry {
	locs := dateRangePattern.FindAllStringIndex(text, -1)
	var entries []ExperienceEntry
	for i, loc := range locs {
		end := len(text)
		if i+1 < len(locs) {
			end = locs[i+1][0]
		}
		entries = append(entries, ExperienceEntry{
			DateRange: strings.TrimSpace(text[loc[0]:loc[1]]),
			Content:   strings.TrimSpace(text[loc[1]:end]),
		})
	}
	return entries
}

// ExtractSkills splits a skills section on the usual separators and keeps
// tokens longer than one character.
func ExtractSkills(text string) []string {
	parts := []string{text}
	for _, sep := range skillSeparators {
		var next []string
		for _, p := range parts {
			next = append(next, strings.Split(p, sep)...)
		}
		parts = next
	}
	var skills []string
	for _, s := range parts {
		s = strings.TrimSpace(s)
		if utf8.RuneCountInString(s) > 1 {
			skills = append(skills, s)
		}
	}
	return skills
}
