package interview

import (
	"regexp"
	"strings"
)

// Answer depth classes, ordered roughly from worst to best.
const (
	DepthShallow             = "shallow"
	DepthUnclearContribution = "unclear_contribution"
	DepthMedium              = "medium"
	DepthAdequate            = "adequate"
)

// DepthAssessment is the heuristic's verdict on one answer.
type DepthAssessment struct {
	Depth          string `json:"depth"`
	NeedsFollowUp  bool   `json:"needs_follow_up"`
	Reason         string `json:"reason"`
	SuggestedProbe string `json:"suggested_probe,omitempty"`
}

var vagueMarkers = []string{
	"we did", "the team", "various", "many things", "a lot of", "stuff",
	"things like that", "etc", "you know", "basically", "kind of", "sort of",
}

var depthTechTerms = []string{
	"python", "java", "react", "aws", "docker", "kubernetes",
	"sql", "mongodb", "redis", "api", "rest", "graphql",
}

var (
	wordWe = regexp.MustCompile(`\bwe\b`)
	wordI  = regexp.MustCompile(`\bi\b`)
)

// AssessDepth classifies how thorough an answer is and whether it is worth
// probing, without any collaborator call. Rules run in order; the first
// match wins. The question is part of the contract but no current rule
// needs it.
func AssessDepth(question, response string) DepthAssessment {
	words := len(strings.Fields(response))
	lower := strings.ToLower(response)

	if words < 20 {
		return DepthAssessment{
			Depth:          DepthShallow,
			NeedsFollowUp:  true,
			Reason:         "Response is too brief - needs more detail",
			SuggestedProbe: "Could you walk me through that in more detail?",
		}
	}

	vague := 0
	for _, m := range vagueMarkers {
		if strings.Contains(lower, m) {
			vague++
		}
	}
	if words < 50 && vague >= 2 {
		return DepthAssessment{
			Depth:          DepthShallow,
			NeedsFollowUp:  true,
			Reason:         "Answer lacks specific details and uses vague language",
			SuggestedProbe: "That's interesting. Can you give me a specific example?",
		}
	}

	if wordWe.MatchString(lower) && !wordI.MatchString(lower) {
		return DepthAssessment{
			Depth:          DepthUnclearContribution,
			NeedsFollowUp:  true,
			Reason:         "Unclear about personal contribution vs team work",
			SuggestedProbe: "What was your specific role in that?",
		}
	}

	if words >= 50 && vague < 2 && (containsDigit(response) || mentionsTechTerm(lower)) {
		return DepthAssessment{
			Depth:         DepthAdequate,
			NeedsFollowUp: false,
			Reason:        "Response has sufficient depth and specificity",
		}
	}

	return DepthAssessment{
		Depth:          DepthMedium,
		NeedsFollowUp:  words < 80,
		Reason:         "Response is acceptable but could be deeper",
		SuggestedProbe: "What was the biggest challenge you faced there?",
	}
}

func containsDigit(s string) bool {
	return strings.ContainsAny(s, "0123456789")
}

func mentionsTechTerm(lower string) bool {
	for _, t := range depthTechTerms {
		if strings.Contains(lower, t) {
			return true
		}
	}
	return false
}
