package analytics

import (
	"errors"
	"sort"
	"strings"
)

// ErrNoResponses is returned when a session has nothing to aggregate.
var ErrNoResponses = errors.New("no responses to analyze")

// SessionReport aggregates behavioral metrics across every response in a
// session.
type SessionReport struct {
	Summary          SessionSummary   `json:"summary"`
	FillerAnalysis   FillerAnalysis   `json:"filler_analysis"`
	LanguagePatterns LanguagePatterns `json:"language_patterns"`
	RedFlags         []string         `json:"red_flags"`
	PerResponse      []ResponseScore  `json:"per_response_scores"`
	Recommendations  []string         `json:"recommendations"`
}

type SessionSummary struct {
	OverallConfidence  float64  `json:"overall_confidence"`
	OverallClarity     float64  `json:"overall_clarity"`
	VocabularyRichness float64  `json:"vocabulary_richness"`
	SpeakingRateWPM    *float64 `json:"speaking_rate_wpm"`
	ConfidenceTrend    string   `json:"confidence_trend"`
}

type FillerAnalysis struct {
	TotalFillers int           `json:"total_fillers"`
	AverageRate  float64       `json:"average_rate_per_100_words"`
	TopFillers   []FillerUsage `json:"top_fillers"`
	Assessment   string        `json:"assessment"`
}

type FillerUsage struct {
	Phrase string `json:"phrase"`
	Count  int    `json:"count"`
}

type LanguagePatterns struct {
	HedgingHeavy   int `json:"hedging_heavy"`
	AssertiveHeavy int `json:"assertive_heavy"`
	Balanced       int `json:"balanced"`
}

type ResponseScore struct {
	ResponseNumber int     `json:"response_number"`
	Confidence     float64 `json:"confidence"`
	Clarity        float64 `json:"clarity"`
	FillerRate     float64 `json:"filler_rate"`
}

// AnalyzeSession aggregates the per-response analyses of a session.
func AnalyzeSession(analyses []SpeechAnalysis) (SessionReport, error) {
	if len(analyses) == 0 {
		return SessionReport{}, ErrNoResponses
	}
	n := float64(len(analyses))

	totalFillers := 0
	var sumRate, sumConfidence, sumClarity, sumVocab float64
	combined := map[string]int{}
	var allFlags []string
	var confidences []float64
	var rates []float64
	patterns := LanguagePatterns{}
	perResponse := make([]ResponseScore, 0, len(analyses))

	for i, a := range analyses {
		totalFillers += a.FillerCount
		sumRate += a.FillerRate
		sumConfidence += a.Confidence
		sumClarity += a.Clarity
		sumVocab += a.VocabularyDiversity
		for phrase, count := range a.FillerBreakdown {
			combined[phrase] += count
		}
		allFlags = append(allFlags, a.RedFlags...)
		confidences = append(confidences, a.Confidence)
		if a.SpeakingRateWPM != nil {
			rates = append(rates, *a.SpeakingRateWPM)
		}
		switch {
		case a.HedgingCount > a.AssertiveCount:
			patterns.HedgingHeavy++
		case a.AssertiveCount > a.HedgingCount:
			patterns.AssertiveHeavy++
		}
		if abs(a.HedgingCount-a.AssertiveCount) <= 1 {
			patterns.Balanced++
		}
		perResponse = append(perResponse, ResponseScore{
			ResponseNumber: i + 1,
			Confidence:     round1(a.Confidence),
			Clarity:        round1(a.Clarity),
			FillerRate:     round2(a.FillerRate),
		})
	}

	avgRate := sumRate / n
	avgConfidence := sumConfidence / n
	avgClarity := sumClarity / n

	var avgSpeakingRate *float64
	if len(rates) > 0 {
		var sum float64
		for _, r := range rates {
			sum += r
		}
		avg := round1(sum / float64(len(rates)))
		avgSpeakingRate = &avg
	}

	return SessionReport{
		Summary: SessionSummary{
			OverallConfidence:  round1(avgConfidence),
			OverallClarity:     round1(avgClarity),
			VocabularyRichness: round1(sumVocab / n),
			SpeakingRateWPM:    avgSpeakingRate,
			ConfidenceTrend:    trendOf(confidences),
		},
		FillerAnalysis: FillerAnalysis{
			TotalFillers: totalFillers,
			AverageRate:  round2(avgRate),
			TopFillers:   topFillers(combined, 5),
			Assessment:   assessFillerUsage(avgRate),
		},
		LanguagePatterns: patterns,
		RedFlags:         dedupe(allFlags),
		PerResponse:      perResponse,
		Recommendations:  recommendations(avgRate, avgConfidence, avgClarity, avgSpeakingRate, allFlags),
	}, nil
}

func topFillers(combined map[string]int, limit int) []FillerUsage {
	out := make([]FillerUsage, 0, len(combined))
	for phrase, count := range combined {
		out = append(out, FillerUsage{Phrase: phrase, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Phrase < out[j].Phrase
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

// trendOf compares first-half and second-half confidence means.
func trendOf(scores []float64) string {
	if len(scores) < 3 {
		return "insufficient_data"
	}
	half := len(scores) / 2
	var first, second float64
	for _, s := range scores[:half] {
		first += s
	}
	for _, s := range scores[half:] {
		second += s
	}
	first /= float64(half)
	second /= float64(len(scores) - half)

	diff := second - first
	switch {
	case diff > 5:
		return "improving"
	case diff < -5:
		return "declining"
	default:
		return "stable"
	}
}

func assessFillerUsage(rate float64) string {
	switch {
	case rate < 2:
		return "Excellent - minimal filler usage"
	case rate < 4:
		return "Good - occasional fillers, within normal range"
	case rate < 6:
		return "Moderate - noticeable filler usage, room for improvement"
	case rate < 8:
		return "High - frequent fillers may distract from content"
	default:
		return "Excessive - significant filler usage affecting clarity"
	}
}

func recommendations(fillerRate, confidence, clarity float64, speakingRate *float64, redFlags []string) []string {
	var recs []string

	if fillerRate > 4 {
		recs = append(recs, "Practice pausing instead of using filler words. A brief silence is more professional than 'um' or 'like'.")
	}
	if confidence < 60 {
		recs = append(recs, "Use more assertive language. Replace 'I think' with 'I know' or 'In my experience' when discussing your actual experience.")
	}
	if clarity < 60 {
		recs = append(recs, "Focus on structuring responses with clear beginning, middle, and end. Use the STAR method (Situation, Task, Action, Result) for behavioral questions.")
	}
	if speakingRate != nil && *speakingRate > 160 {
		recs = append(recs, "Slow down your speaking pace. Take a breath between thoughts to improve clarity and appear more composed.")
	}
	for _, flag := range redFlags {
		if strings.Contains(strings.ToLower(flag), "hedging") {
			recs = append(recs, "Reduce hedging phrases like 'kind of' or 'sort of'. Commit to your statements with confidence.")
			break
		}
	}
	if len(recs) == 0 {
		recs = append(recs, "Strong communication skills demonstrated. Continue practicing to maintain this level of performance.")
	}
	return recs
}

func dedupe(items []string) []string {
	seen := map[string]struct{}{}
	out := make([]string, 0, len(items))
	for _, it := range items {
		if _, ok := seen[it]; ok {
			continue
		}
		seen[it] = struct{}{}
		out = append(out, it)
	}
	return out
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
