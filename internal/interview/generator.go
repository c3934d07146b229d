package interview

import (
	"context"
	"strings"

	"github.com/mockingbird-ai/mockingbird/internal/genai"
	"github.com/mockingbird-ai/mockingbird/internal/prompts"
	"github.com/mockingbird-ai/mockingbird/internal/session"
)

const fallbackFollowUpText = "Could you elaborate more on that?"

// Generator produces main and follow-up questions through the genai
// adapter, degrading to the static question bank when a call fails.
type Generator struct {
	adapter genai.Adapter
	bank    []prompts.BankQuestion
}

func NewGenerator(adapter genai.Adapter, bank []prompts.BankQuestion) *Generator {
	if len(bank) == 0 {
		bank = prompts.DefaultBank()
	}
	return &Generator{adapter: adapter, bank: bank}
}

type questionSchema struct {
	Question         string     `json:"question"`
	QuestionType     string     `json:"question_type"`
	Topic            string     `json:"topic"`
	ExpectedElements stringList `json:"expected_elements"`
	Difficulty       string     `json:"difficulty"`
	FollowUpHints    stringList `json:"follow_up_hints"`
}

// NextQuestion generates the next main question for the session. It never
// fails: a broken generation degrades to the bank entry for this turn.
func (g *Generator) NextQuestion(ctx context.Context, sess *session.Session) session.Question {
	previous := make([]string, 0, len(sess.Questions))
	for _, q := range sess.Questions {
		previous = append(previous, q.Text)
	}
	covered := sess.CoveredTopics()

	params := prompts.QuestionParams{
		ResumeText:        sess.ResumeText,
		JobDescription:    sess.JobDescription,
		PreviousQuestions: previous,
		CoveredTopics:     covered,
		RemainingTopics:   strings.Join(RemainingTopics(covered), ", "),
		Difficulty:        sess.Difficulty,
	}
	if n := len(sess.Evaluations); n > 0 {
		params.PreviousEvaluation = "Feedback on the previous answer: " + sess.Evaluations[n-1].Feedback
	}

	var decoded questionSchema
	err := genai.GenerateStructured(ctx, g.adapter, genai.Request{
		Kind:   genai.KindQuestion,
		System: prompts.SystemInterviewer,
		Prompt: prompts.QuestionPrompt(params),
	}, &decoded)
	if err != nil {
		return g.bankQuestion(len(sess.Questions), sess.Difficulty)
	}

	q := session.Question{
		Text:             strings.TrimSpace(decoded.Question),
		Type:             strings.TrimSpace(decoded.QuestionType),
		Topic:            strings.TrimSpace(decoded.Topic),
		ExpectedElements: []string(decoded.ExpectedElements),
		Difficulty:       strings.TrimSpace(decoded.Difficulty),
		FollowUpHints:    []string(decoded.FollowUpHints),
	}
	if q.Text == "" {
		q.Text = "Tell me about yourself."
	}
	if q.Type == "" {
		q.Type = "behavioral"
	}
	if q.Topic == "" {
		q.Topic = "general"
	}
	if q.Difficulty == "" {
		q.Difficulty = sess.Difficulty
	}
	return q
}

// FollowUp generates a probe into the gap the response left open.
func (g *Generator) FollowUp(ctx context.Context, original session.Question, response, reason string) session.Question {
	q := session.Question{
		Type:           "follow_up",
		Topic:          original.Topic,
		IsFollowUp:     true,
		ParentQuestion: original.Text,
	}
	if q.Topic == "" {
		q.Topic = "clarification"
	}

	resp, err := g.adapter.Generate(ctx, genai.Request{
		Kind:   genai.KindFollowUp,
		System: prompts.SystemInterviewer,
		Prompt: prompts.FollowUpPrompt(original.Text, response, reason),
	})
	text := ""
	if err == nil {
		text = strings.TrimSpace(genai.CleanMessage(resp.Text))
	}
	if text == "" {
		text = fallbackFollowUpText
		q.Topic = "clarification"
		q.Fallback = true
	}
	q.Text = text
	return q
}

func (g *Generator) bankQuestion(asked int, difficulty string) session.Question {
	idx := asked
	if idx >= len(g.bank) {
		idx = len(g.bank) - 1
	}
	if idx < 0 {
		idx = 0
	}
	entry := g.bank[idx]
	return session.Question{
		Text:       entry.Question,
		Type:       entry.Type,
		Topic:      entry.Topic,
		Difficulty: difficulty,
		Fallback:   true,
	}
}
