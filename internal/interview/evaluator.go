package interview

import (
	"context"
	"strings"

	"github.com/mockingbird-ai/mockingbird/internal/genai"
	"github.com/mockingbird-ai/mockingbird/internal/prompts"
	"github.com/mockingbird-ai/mockingbird/internal/session"
)

// ScoreDimensions are the fixed evaluation dimensions. Every evaluation
// carries all six; missing or unusable model values default to 5.
var ScoreDimensions = []string{
	"content", "communication", "analytical",
	"technical_depth", "star_method", "authenticity",
}

const defaultFeedback = "Thank you for your response."

// Evaluator scores candidate responses through the genai adapter.
type Evaluator struct {
	adapter genai.Adapter
}

func NewEvaluator(adapter genai.Adapter) *Evaluator {
	return &Evaluator{adapter: adapter}
}

type evaluationSchema struct {
	Scores              map[string]scoreValue `json:"scores"`
	OverallScore        scoreValue            `json:"overall_score"`
	Strengths           stringList            `json:"strengths"`
	Weaknesses          stringList            `json:"weaknesses"`
	Improvements        stringList            `json:"improvements"`
	MissingElements     stringList            `json:"missing_elements"`
	Feedback            string                `json:"feedback"`
	FollowUpRecommended flexBool              `json:"follow_up_recommended"`
	FollowUpQuestion    string                `json:"follow_up_question"`
}

// Evaluate scores one response. It never fails: unusable model output
// degrades to DefaultEvaluation.
func (e *Evaluator) Evaluate(ctx context.Context, q session.Question, response, resumeText string) session.Evaluation {
	var decoded evaluationSchema
	err := genai.GenerateStructured(ctx, e.adapter, genai.Request{
		Kind:   genai.KindEvaluation,
		System: prompts.SystemInterviewer,
		Prompt: prompts.EvaluationPrompt(prompts.EvaluationParams{
			Question:         q.Text,
			QuestionType:     q.Type,
			Topic:            q.Topic,
			ExpectedElements: q.ExpectedElements,
			Response:         response,
			ResumeText:       resumeText,
		}),
	}, &decoded)
	if err != nil {
		return DefaultEvaluation()
	}
	return toEvaluation(decoded)
}

func toEvaluation(decoded evaluationSchema) session.Evaluation {
	scores := make(map[string]float64, len(ScoreDimensions))
	var sum float64
	for _, dim := range ScoreDimensions {
		v := 5.0
		if sv, found := decoded.Scores[dim]; found && sv.ok {
			v = clampScore(sv.value)
		}
		scores[dim] = v
		sum += v
	}

	overall := sum / float64(len(ScoreDimensions))
	if decoded.OverallScore.ok {
		overall = clampScore(decoded.OverallScore.value)
	}

	weaknesses := []string(decoded.Weaknesses)
	if len(weaknesses) == 0 {
		weaknesses = []string(decoded.Improvements)
	}

	feedback := strings.TrimSpace(decoded.Feedback)
	if feedback == "" {
		feedback = defaultFeedback
	}

	ev := session.Evaluation{
		Scores:              scores,
		OverallScore:        overall,
		Feedback:            feedback,
		Strengths:           []string(decoded.Strengths),
		Weaknesses:          weaknesses,
		MissingElements:     []string(decoded.MissingElements),
		FollowUpRecommended: bool(decoded.FollowUpRecommended),
		FollowUpQuestion:    strings.TrimSpace(decoded.FollowUpQuestion),
	}
	if ev.Strengths == nil {
		ev.Strengths = []string{}
	}
	if ev.Weaknesses == nil {
		ev.Weaknesses = []string{}
	}
	return ev
}

// DefaultEvaluation is the neutral result substituted when the evaluator
// call or its output is unusable.
func DefaultEvaluation() session.Evaluation {
	scores := make(map[string]float64, len(ScoreDimensions))
	for _, dim := range ScoreDimensions {
		scores[dim] = 5
	}
	return session.Evaluation{
		Scores:       scores,
		OverallScore: 5,
		Feedback:     defaultFeedback,
		Strengths:    []string{"Response provided"},
		Weaknesses:   []string{"Evaluation unavailable"},
		Fallback:     true,
	}
}
