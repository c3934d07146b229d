package resume

import (
	"testing"
	"time"
)

var fixedNow = time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

func TestAnalyzeGapsFlagsLongBreaks(t *testing.T) {
	entries := []ExperienceEntry{
		{DateRange: "Jan 2018 - Dec 2018", Content: "Acme"},
		{DateRange: "Jun 2019 - Present", Content: "Globex"},
	}

	ga := analyzeGaps(buildTimeline(entries, fixedNow))

	if !ga.HasGaps || len(ga.Gaps) != 1 {
		t.Fatalf("gaps = %+v, want exactly one", ga)
	}
	gap := ga.Gaps[0]
	if gap.Start != "2018-12" || gap.End != "2019-06" {
		t.Fatalf("gap range = %s..%s, want 2018-12..2019-06", gap.Start, gap.End)
	}
	if gap.DurationMonths != 6 {
		t.Fatalf("DurationMonths = %d, want 6", gap.DurationMonths)
	}
	if gap.Between != "Acme and Globex" {
		t.Fatalf("Between = %q", gap.Between)
	}
	if len(ga.Flags) != 1 || ga.Flags[0] != "Gap of 6 months detected between Acme and Globex" {
		t.Fatalf("Flags = %v", ga.Flags)
	}
}

func TestAnalyzeGapsIgnoresShortBreaks(t *testing.T) {
	entries := []ExperienceEntry{
		{DateRange: "Jan 2018 - Dec 2018", Content: "Acme"},
		{DateRange: "Jan 2019 - Present", Content: "Globex"},
	}

	ga := analyzeGaps(buildTimeline(entries, fixedNow))

	if ga.HasGaps || len(ga.Gaps) != 0 {
		t.Fatalf("gaps = %+v, want none", ga)
	}
}

func TestAnalyzeStabilityFlagsJobHopping(t *testing.T) {
	entries := []ExperienceEntry{
		{DateRange: "Jan 2020 - Jun 2020", Content: "A"},
		{DateRange: "Jul 2020 - Dec 2020", Content: "B"},
	}

	st := analyzeStability(buildTimeline(entries, fixedNow))

	if !st.JobHoppingRisk {
		t.Fatalf("JobHoppingRisk = false, want true")
	}
	if len(st.ShortTenures) != 2 {
		t.Fatalf("ShortTenures = %+v, want 2", st.ShortTenures)
	}
	if st.ShortTenures[0].Company != "A" || st.ShortTenures[0].DurationMonths != 5 {
		t.Fatalf("ShortTenures[0] = %+v, want A for 5 months", st.ShortTenures[0])
	}
	if len(st.Flags) != 1 || st.Flags[0] != "Job Hopping Risk: 2 roles held for less than 1 year." {
		t.Fatalf("Flags = %v", st.Flags)
	}
	if st.AverageTenureYears != 0.4 {
		t.Fatalf("AverageTenureYears = %v, want 0.4", st.AverageTenureYears)
	}
}

func TestAnalyzeStabilitySteadyTenure(t *testing.T) {
	entries := []ExperienceEntry{
		{DateRange: "Jan 2020 - Jan 2023", Content: "Acme"},
	}

	st := analyzeStability(buildTimeline(entries, fixedNow))

	if st.JobHoppingRisk || len(st.ShortTenures) != 0 || len(st.Flags) != 0 {
		t.Fatalf("stability = %+v, want no risk", st)
	}
	if st.AverageTenureYears != 3.0 {
		t.Fatalf("AverageTenureYears = %v, want 3.0", st.AverageTenureYears)
	}
}

func TestParseFlexibleDate(t *testing.T) {
	cases := []struct {
		in   string
		want time.Time
		ok   bool
	}{
		{"2020-05-10", time.Date(2020, 5, 10, 0, 0, 0, 0, time.UTC), true},
		{"2020-05", time.Date(2020, 5, 1, 0, 0, 0, 0, time.UTC), true},
		{"May 2020", time.Date(2020, 5, 1, 0, 0, 0, 0, time.UTC), true},
		{"March 2021", time.Date(2021, 3, 1, 0, 0, 0, 0, time.UTC), true},
		{"Mar. 2021", time.Date(2021, 3, 1, 0, 0, 0, 0, time.UTC), true},
		{"2019", time.Date(2019, 1, 1, 0, 0, 0, 0, time.UTC), true},
		{"Present", time.Time{}, false},
		{"current", time.Time{}, false},
		{"Sept 2021", time.Time{}, false},
		{"", time.Time{}, false},
	}
	for _, tc := range cases {
		got, ok := parseFlexibleDate(tc.in)
		if ok != tc.ok {
			t.Fatalf("parseFlexibleDate(%q) ok = %v, want %v", tc.in, ok, tc.ok)
		}
		if ok && !got.Equal(tc.want) {
			t.Fatalf("parseFlexibleDate(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestDetectLeadershipLabels(t *testing.T) {
	got := DetectLeadership("I led team projects, mentored interns, and ran stakeholder reviews.")

	want := []string{"Led a team", "Mentored junior engineers", "Stakeholder management detected"}
	if len(got) != len(want) {
		t.Fatalf("DetectLeadership = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("DetectLeadership[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestMatchKeywords(t *testing.T) {
	kw := MatchKeywords(
		"Built services in Python with PostgreSQL on Linux.",
		"Looking for Python, Kafka, and Kubernetes experience.",
	)

	if len(kw.Matched) != 1 || kw.Matched[0] != "python" {
		t.Fatalf("Matched = %v, want [python]", kw.Matched)
	}
	want := []string{"kubernetes", "kafka"}
	if len(kw.Missing) != len(want) {
		t.Fatalf("Missing = %v, want %v", kw.Missing, want)
	}
	for i := range want {
		if kw.Missing[i] != want[i] {
			t.Fatalf("Missing[%d] = %q, want %q", i, kw.Missing[i], want[i])
		}
	}
}

func TestMatchKeywordsWithoutJobDescription(t *testing.T) {
	kw := MatchKeywords("Python everywhere.", "  ")
	if len(kw.Matched) != 0 || len(kw.Missing) != 0 {
		t.Fatalf("keywords = %+v, want empty", kw)
	}
}

func TestAnalyzeFullResume(t *testing.T) {
	p := ParseText(sampleResume)

	a := Analyze(p, "Need Python, Kafka, and Jenkins.", fixedNow)

	wantScores := map[string]int{"experience": 80, "skills": 70, "education": 85, "summary": 65}
	for name, want := range wantScores {
		if got := a.Sections[name].Score; got != want {
			t.Fatalf("Sections[%s].Score = %d, want %d", name, got, want)
		}
	}
	if len(a.Keywords.Matched) != 2 || a.Keywords.Matched[0] != "python" || a.Keywords.Matched[1] != "kafka" {
		t.Fatalf("Matched = %v", a.Keywords.Matched)
	}
	if len(a.Keywords.Missing) != 1 || a.Keywords.Missing[0] != "jenkins" {
		t.Fatalf("Missing = %v", a.Keywords.Missing)
	}
	if a.Analytics.GapAnalysis.HasGaps {
		t.Fatalf("HasGaps = true, want false: %+v", a.Analytics.GapAnalysis)
	}
	if a.Analytics.JobStability.JobHoppingRisk {
		t.Fatalf("JobHoppingRisk = true, want false")
	}
	wantLead := []string{"Led a team", "Mentored junior engineers", "Stakeholder management detected"}
	got := a.Analytics.LeadershipSignals
	if len(got) != len(wantLead) {
		t.Fatalf("LeadershipSignals = %v, want %v", got, wantLead)
	}
	for i := range wantLead {
		if got[i] != wantLead[i] {
			t.Fatalf("LeadershipSignals[%d] = %q, want %q", i, got[i], wantLead[i])
		}
	}
}
