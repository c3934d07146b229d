package genai

import (
	"context"
	"encoding/json"
	"sync/atomic"
)

// MockAdapter produces deterministic replies so the service runs fully
// offline. Question requests rotate through a fixed list to keep mock
// interviews from repeating themselves.
type MockAdapter struct {
	questionTurn atomic.Int64
}

func NewMockAdapter() *MockAdapter { return &MockAdapter{} }

type mockQuestion struct {
	Question         string   `json:"question"`
	Type             string   `json:"question_type"`
	Topic            string   `json:"topic"`
	ExpectedElements []string `json:"expected_elements"`
	Difficulty       string   `json:"difficulty"`
	FollowUpHints    []string `json:"follow_up_hints"`
}

var mockQuestions = []mockQuestion{
	{
		Question:         "Walk me through a recent project you are proud of and the role you played in it.",
		Type:             "behavioral",
		Topic:            "experience",
		ExpectedElements: []string{"situation", "actions taken", "measurable result"},
		Difficulty:       "mid",
		FollowUpHints:    []string{"Ask for the measurable impact"},
	},
	{
		Question:         "Describe a technical decision you made that you later had to revisit. What changed?",
		Type:             "technical",
		Topic:            "problem_solving",
		ExpectedElements: []string{"original constraint", "tradeoff", "revision"},
		Difficulty:       "mid",
		FollowUpHints:    []string{"Probe for what signal triggered the revisit"},
	},
	{
		Question:         "Tell me about a disagreement with a colleague and how you worked through it.",
		Type:             "behavioral",
		Topic:            "teamwork",
		ExpectedElements: []string{"the conflict", "your approach", "outcome"},
		Difficulty:       "mid",
		FollowUpHints:    []string{"Ask what they would do differently"},
	},
	{
		Question:         "What draws you to this position, and what would you want to accomplish in the first year?",
		Type:             "motivation",
		Topic:            "motivation",
		ExpectedElements: []string{"specific interest", "concrete goal"},
		Difficulty:       "mid",
		FollowUpHints:    []string{"Ask how they evaluated the fit"},
	},
	{
		Question:         "Describe a time you had to deliver under a deadline that felt unrealistic.",
		Type:             "situational",
		Topic:            "challenges",
		ExpectedElements: []string{"the constraint", "prioritization", "result"},
		Difficulty:       "mid",
		FollowUpHints:    []string{"Ask what was cut and why"},
	},
	{
		Question:         "How do you keep your skills current, and what are you learning right now?",
		Type:             "behavioral",
		Topic:            "career_goals",
		ExpectedElements: []string{"learning habit", "current focus"},
		Difficulty:       "mid",
		FollowUpHints:    []string{"Ask how they applied something recently learned"},
	},
}

func (a *MockAdapter) Generate(ctx context.Context, req Request) (Response, error) {
	select {
	case <-ctx.Done():
		return Response{}, ctx.Err()
	default:
	}

	switch req.Kind {
	case KindQuestion:
		turn := a.questionTurn.Add(1) - 1
		q := mockQuestions[int(turn)%len(mockQuestions)]
		return marshalResponse(q)
	case KindEvaluation:
		return marshalResponse(map[string]any{
			"scores": map[string]float64{
				"content":         6,
				"communication":   7,
				"analytical":      6,
				"technical_depth": 5,
				"star_method":     5,
				"authenticity":    7,
			},
			"overall_score":         6,
			"feedback":              "Solid answer with concrete details. Consider quantifying the outcome next time.",
			"strengths":             []string{"Clear structure"},
			"weaknesses":            []string{"Limited metrics"},
			"follow_up_recommended": false,
			"follow_up_question":    "",
		})
	case KindFollowUp:
		return Response{Text: "Could you give me a concrete example of how that played out?"}, nil
	case KindIntro:
		return Response{Text: "Welcome, and thanks for making the time today. We'll move through a handful of questions about your background; answer in as much detail as feels natural. Ready when you are."}, nil
	case KindClosing:
		return Response{Text: "That wraps up our session. You gave us a clear picture of your experience, and we'll follow up with detailed feedback shortly."}, nil
	case KindReport:
		return marshalResponse(map[string]any{
			"executive_summary":     "The candidate presented organized, example-backed answers across the session.",
			"strengths":             []string{"Structured answers", "Concrete examples"},
			"areas_for_improvement": []string{"Quantify outcomes more often"},
			"improvement_roadmap":   []string{"Practice STAR framing", "Collect metrics for key projects"},
			"interview_tips":        []string{"Lead with the result, then explain how you got there"},
		})
	default:
		return Response{Text: "Understood. Let's continue."}, nil
	}
}

func marshalResponse(v any) (Response, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return Response{}, err
	}
	return Response{Text: string(data)}, nil
}
