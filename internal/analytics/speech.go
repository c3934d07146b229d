// Package analytics derives behavioral signals from interview responses:
// filler usage, hedging vs assertive language, clarity, vocabulary
// diversity, and red flags. All functions are pure.
package analytics

import (
	"math"
	"regexp"
	"strings"
	"unicode"
)

// SpeechAnalysis holds per-response behavioral metrics. FillerRate is per
// 100 words; Confidence, Clarity and VocabularyDiversity sit in [0,100];
// Sentiment is one of positive, neutral, uncertain.
type SpeechAnalysis struct {
	FillerCount         int            `json:"filler_word_count"`
	FillerBreakdown     map[string]int `json:"filler_words_found"`
	FillerRate          float64        `json:"filler_word_rate"`
	SpeakingRateWPM     *float64       `json:"speaking_rate_wpm"`
	Confidence          float64        `json:"confidence_score"`
	Clarity             float64        `json:"clarity_score"`
	VocabularyDiversity float64        `json:"vocabulary_diversity"`
	Sentiment           string         `json:"sentiment"`
	HedgingCount        int            `json:"hedging_language_count"`
	AssertiveCount      int            `json:"assertive_language_count"`
	RedFlags            []string       `json:"red_flags"`
}

var fillerPhrases = []string{
	"um", "uh", "uhh", "umm", "erm", "er", "ah", "ahh",
	"like", "you know", "i mean", "basically", "actually", "literally",
	"so yeah", "yeah so", "right so", "so like",
	"kind of", "sort of", "kinda", "sorta",
	"and stuff", "or something", "and things", "and whatnot",
	"you know what i mean", "if that makes sense",
}

var hedgingPhrases = []string{
	"i think", "i believe", "i guess", "maybe", "perhaps",
	"probably", "possibly", "might", "could be", "not sure",
	"i suppose", "it seems", "kind of", "sort of", "somewhat",
	"in a way", "to some extent", "more or less", "i feel like",
}

var assertivePhrases = []string{
	"i know", "i am certain", "definitely", "absolutely",
	"certainly", "clearly", "obviously", "without a doubt",
	"i'm confident", "i'm sure", "i can", "i will", "i did",
	"specifically", "precisely", "exactly", "in fact",
}

var negativePhrases = []string{
	"i can't", "i don't know", "i'm not sure", "i haven't",
	"i couldn't", "i wouldn't", "i didn't", "never done",
	"no experience", "not familiar", "not really",
}

type lexiconPattern struct {
	phrase string
	re     *regexp.Regexp
}

var (
	fillerLexicon    = compileLexicon(fillerPhrases)
	hedgingLexicon   = compileLexicon(hedgingPhrases)
	assertiveLexicon = compileLexicon(assertivePhrases)
	negativeLexicon  = compileLexicon(negativePhrases)

	sentenceBreaks = regexp.MustCompile(`[.!?]+`)
)

func compileLexicon(phrases []string) []lexiconPattern {
	out := make([]lexiconPattern, 0, len(phrases))
	for _, p := range phrases {
		out = append(out, lexiconPattern{
			phrase: p,
			re:     regexp.MustCompile(`\b` + regexp.QuoteMeta(p) + `\b`),
		})
	}
	return out
}

// AnalyzeResponse scores a single transcribed response. A non-positive
// duration means the speaking rate is unknown.
func AnalyzeResponse(text string, audioDurationSeconds float64) SpeechAnalysis {
	words := strings.Fields(text)
	wordCount := len(words)
	if wordCount == 0 {
		return emptyAnalysis()
	}

	lower := strings.ToLower(text)

	breakdown := map[string]int{}
	totalFillers := 0
	for _, lp := range fillerLexicon {
		n := len(lp.re.FindAllString(lower, -1))
		if n > 0 {
			breakdown[lp.phrase] = n
			totalFillers += n
		}
	}
	fillerRate := round2(float64(totalFillers) / float64(wordCount) * 100)

	hedging := countLexicon(lower, hedgingLexicon)
	assertive := countLexicon(lower, assertiveLexicon)
	negative := countLexicon(lower, negativeLexicon)

	var speakingRate *float64
	if audioDurationSeconds > 0 {
		r := float64(wordCount) / audioDurationSeconds * 60
		speakingRate = &r
	}

	return SpeechAnalysis{
		FillerCount:         totalFillers,
		FillerBreakdown:     breakdown,
		FillerRate:          fillerRate,
		SpeakingRateWPM:     speakingRate,
		Confidence:          confidenceScore(fillerRate, hedging, assertive, negative, wordCount),
		Clarity:             clarityScore(text, fillerRate, wordCount),
		VocabularyDiversity: vocabularyDiversity(words),
		Sentiment:           sentimentOf(hedging, assertive, negative, wordCount),
		HedgingCount:        hedging,
		AssertiveCount:      assertive,
		RedFlags:            redFlags(fillerRate, hedging, negative, wordCount, speakingRate),
	}
}

func countLexicon(lower string, lexicon []lexiconPattern) int {
	count := 0
	for _, lp := range lexicon {
		count += len(lp.re.FindAllString(lower, -1))
	}
	return count
}

func confidenceScore(fillerRate float64, hedging, assertive, negative, wordCount int) float64 {
	score := 70.0
	score -= fillerRate * 2
	score -= float64(hedging) / float64(wordCount) * 100 * 3
	score += float64(assertive) / float64(wordCount) * 100 * 2
	score -= float64(negative) / float64(wordCount) * 100 * 4
	return clampScore(score)
}

func clarityScore(text string, fillerRate float64, wordCount int) float64 {
	score := 80.0
	score -= fillerRate * 1.5

	if wordCount < 20 {
		score -= 15
	} else if wordCount < 50 {
		score -= 5
	}
	if wordCount > 300 {
		score -= 10
	} else if wordCount > 200 {
		score -= 5
	}

	sentences := len(sentenceBreaks.FindAllString(text, -1))
	if sentences > 0 {
		avg := float64(wordCount) / float64(sentences)
		// Optimal sentence length sits around 15-25 words.
		if avg > 40 {
			score -= 10
		} else if avg < 8 {
			score -= 5
		}
	}
	return clampScore(score)
}

// vocabularyDiversity maps the type-token ratio onto 0-100. Tokens with
// any non-letter rune are excluded before comparison.
func vocabularyDiversity(words []string) float64 {
	clean := make([]string, 0, len(words))
	for _, w := range words {
		if isAlphaToken(w) {
			clean = append(clean, strings.ToLower(w))
		}
	}
	if len(clean) == 0 {
		return 0
	}
	unique := map[string]struct{}{}
	for _, w := range clean {
		unique[w] = struct{}{}
	}
	ttr := float64(len(unique)) / float64(len(clean))
	return clampScore((ttr - 0.2) / 0.5 * 100)
}

func isAlphaToken(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

func sentimentOf(hedging, assertive, negative, wordCount int) string {
	if wordCount == 0 {
		return "neutral"
	}
	if float64(negative)/float64(wordCount) > 0.02 {
		return "uncertain"
	}
	if assertive > hedging+2 {
		return "positive"
	}
	if hedging > assertive+2 {
		return "uncertain"
	}
	return "neutral"
}

func redFlags(fillerRate float64, hedging, negative, wordCount int, speakingRate *float64) []string {
	var flags []string

	if fillerRate > 8 {
		flags = append(flags, "Excessive use of filler words (>8%)")
	} else if fillerRate > 5 {
		flags = append(flags, "High filler word usage (5-8%)")
	}

	if float64(hedging)/float64(wordCount)*100 > 5 {
		flags = append(flags, "Excessive hedging language - may indicate uncertainty")
	}
	if negative > 3 {
		flags = append(flags, "Multiple negative statements about capabilities")
	}
	if wordCount < 15 {
		flags = append(flags, "Very brief response - may indicate disengagement")
	}
	if speakingRate != nil {
		if *speakingRate > 180 {
			flags = append(flags, "Speaking too fast (>180 WPM) - may indicate nervousness")
		} else if *speakingRate < 80 {
			flags = append(flags, "Speaking too slowly (<80 WPM) - may indicate uncertainty")
		}
	}
	return flags
}

func emptyAnalysis() SpeechAnalysis {
	return SpeechAnalysis{
		FillerBreakdown: map[string]int{},
		Sentiment:       "neutral",
		RedFlags:        []string{"Empty response"},
	}
}

func clampScore(v float64) float64 {
	return math.Max(0, math.Min(100, v))
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
