package analytics

import (
	"errors"
	"testing"
)

func floatPtr(v float64) *float64 { return &v }

func TestAnalyzeSessionEmpty(t *testing.T) {
	if _, err := AnalyzeSession(nil); !errors.Is(err, ErrNoResponses) {
		t.Fatalf("err = %v, want ErrNoResponses", err)
	}
}

func TestAnalyzeSessionAggregates(t *testing.T) {
	analyses := []SpeechAnalysis{
		{
			FillerCount:     4,
			FillerBreakdown: map[string]int{"um": 3, "like": 1},
			FillerRate:      4.0,
			Confidence:      50,
			Clarity:         60,
			HedgingCount:    5,
			AssertiveCount:  1,
			RedFlags:        []string{"High filler word usage (5-8%)"},
		},
		{
			FillerCount:     2,
			FillerBreakdown: map[string]int{"um": 1, "basically": 1},
			FillerRate:      2.0,
			Confidence:      60,
			Clarity:         70,
			HedgingCount:    2,
			AssertiveCount:  2,
			SpeakingRateWPM: floatPtr(120),
		},
		{
			FillerCount:    0,
			FillerRate:     0,
			Confidence:     70,
			Clarity:        80,
			HedgingCount:   0,
			AssertiveCount: 4,
			RedFlags:       []string{"High filler word usage (5-8%)"},
		},
	}

	report, err := AnalyzeSession(analyses)
	if err != nil {
		t.Fatalf("AnalyzeSession: %v", err)
	}

	if report.Summary.OverallConfidence != 60 {
		t.Fatalf("OverallConfidence = %v, want 60", report.Summary.OverallConfidence)
	}
	if report.Summary.OverallClarity != 70 {
		t.Fatalf("OverallClarity = %v, want 70", report.Summary.OverallClarity)
	}
	// First half mean 50, second half mean 65: improving.
	if report.Summary.ConfidenceTrend != "improving" {
		t.Fatalf("ConfidenceTrend = %q, want improving", report.Summary.ConfidenceTrend)
	}
	if report.Summary.SpeakingRateWPM == nil || *report.Summary.SpeakingRateWPM != 120 {
		t.Fatalf("SpeakingRateWPM = %v, want 120", report.Summary.SpeakingRateWPM)
	}

	if report.FillerAnalysis.TotalFillers != 6 {
		t.Fatalf("TotalFillers = %d, want 6", report.FillerAnalysis.TotalFillers)
	}
	if report.FillerAnalysis.AverageRate != 2.0 {
		t.Fatalf("AverageRate = %v, want 2.0", report.FillerAnalysis.AverageRate)
	}
	if len(report.FillerAnalysis.TopFillers) == 0 || report.FillerAnalysis.TopFillers[0].Phrase != "um" {
		t.Fatalf("TopFillers = %v, want um first", report.FillerAnalysis.TopFillers)
	}
	if report.FillerAnalysis.TopFillers[0].Count != 4 {
		t.Fatalf("top filler count = %d, want 4", report.FillerAnalysis.TopFillers[0].Count)
	}

	if report.LanguagePatterns.HedgingHeavy != 1 {
		t.Fatalf("HedgingHeavy = %d, want 1", report.LanguagePatterns.HedgingHeavy)
	}
	if report.LanguagePatterns.AssertiveHeavy != 1 {
		t.Fatalf("AssertiveHeavy = %d, want 1", report.LanguagePatterns.AssertiveHeavy)
	}
	if report.LanguagePatterns.Balanced != 1 {
		t.Fatalf("Balanced = %d, want 1", report.LanguagePatterns.Balanced)
	}

	if len(report.RedFlags) != 1 {
		t.Fatalf("RedFlags = %v, want single deduplicated flag", report.RedFlags)
	}

	if len(report.PerResponse) != 3 {
		t.Fatalf("PerResponse = %d rows, want 3", len(report.PerResponse))
	}
	if report.PerResponse[2].ResponseNumber != 3 || report.PerResponse[2].Confidence != 70 {
		t.Fatalf("PerResponse[2] = %+v", report.PerResponse[2])
	}
}

func TestAnalyzeSessionTrendInsufficientData(t *testing.T) {
	report, err := AnalyzeSession([]SpeechAnalysis{
		{Confidence: 10}, {Confidence: 90},
	})
	if err != nil {
		t.Fatalf("AnalyzeSession: %v", err)
	}
	if report.Summary.ConfidenceTrend != "insufficient_data" {
		t.Fatalf("ConfidenceTrend = %q, want insufficient_data", report.Summary.ConfidenceTrend)
	}
}

func TestTrendOfDeclining(t *testing.T) {
	got := trendOf([]float64{80, 80, 60, 60})
	if got != "declining" {
		t.Fatalf("trendOf = %q, want declining", got)
	}
	if got := trendOf([]float64{70, 71, 70, 69}); got != "stable" {
		t.Fatalf("trendOf = %q, want stable", got)
	}
}

func TestRecommendationsDefaultMessage(t *testing.T) {
	report, err := AnalyzeSession([]SpeechAnalysis{
		{Confidence: 80, Clarity: 85, FillerRate: 1},
	})
	if err != nil {
		t.Fatalf("AnalyzeSession: %v", err)
	}
	if len(report.Recommendations) != 1 {
		t.Fatalf("Recommendations = %v, want single default", report.Recommendations)
	}
	if report.Recommendations[0] != "Strong communication skills demonstrated. Continue practicing to maintain this level of performance." {
		t.Fatalf("unexpected default recommendation: %q", report.Recommendations[0])
	}
}

func TestRecommendationsHedgingFlag(t *testing.T) {
	report, err := AnalyzeSession([]SpeechAnalysis{
		{Confidence: 80, Clarity: 85, FillerRate: 1,
			RedFlags: []string{"Excessive hedging language - may indicate uncertainty"}},
	})
	if err != nil {
		t.Fatalf("AnalyzeSession: %v", err)
	}
	found := false
	for _, r := range report.Recommendations {
		if r == "Reduce hedging phrases like 'kind of' or 'sort of'. Commit to your statements with confidence." {
			found = true
		}
	}
	if !found {
		t.Fatalf("missing hedging recommendation: %v", report.Recommendations)
	}
}

func TestAssessFillerUsageBands(t *testing.T) {
	cases := []struct {
		rate float64
		want string
	}{
		{1.5, "Excellent - minimal filler usage"},
		{3.0, "Good - occasional fillers, within normal range"},
		{5.0, "Moderate - noticeable filler usage, room for improvement"},
		{7.5, "High - frequent fillers may distract from content"},
		{9.0, "Excessive - significant filler usage affecting clarity"},
	}
	for _, tc := range cases {
		if got := assessFillerUsage(tc.rate); got != tc.want {
			t.Fatalf("assessFillerUsage(%v) = %q, want %q", tc.rate, got, tc.want)
		}
	}
}
