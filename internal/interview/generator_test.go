package interview

import (
	"context"
	"reflect"
	"strings"
	"testing"

	"github.com/mockingbird-ai/mockingbird/internal/genai"
	"github.com/mockingbird-ai/mockingbird/internal/session"
)

func TestGeneratorNextQuestionParsesReply(t *testing.T) {
	adapter := &scriptedAdapter{replies: map[string]string{
		genai.KindQuestion: `{
			"question": "Describe a production incident you handled end to end.",
			"question_type": "situational",
			"topic": "problem_solving",
			"expected_elements": ["situation", "resolution"],
			"difficulty": "senior",
			"follow_up_hints": ["What was the root cause?"]
		}`,
	}}
	g := NewGenerator(adapter, nil)

	sess := &session.Session{Difficulty: "mid"}
	got := g.NextQuestion(context.Background(), sess)

	if got.Text != "Describe a production incident you handled end to end." {
		t.Fatalf("Text = %q", got.Text)
	}
	if got.Type != "situational" || got.Topic != "problem_solving" {
		t.Fatalf("Type/Topic = %q/%q", got.Type, got.Topic)
	}
	if got.Difficulty != "senior" {
		t.Fatalf("Difficulty = %q, want senior", got.Difficulty)
	}
	if !reflect.DeepEqual(got.ExpectedElements, []string{"situation", "resolution"}) {
		t.Fatalf("ExpectedElements = %v", got.ExpectedElements)
	}
	if !reflect.DeepEqual(got.FollowUpHints, []string{"What was the root cause?"}) {
		t.Fatalf("FollowUpHints = %v", got.FollowUpHints)
	}
	if got.Fallback {
		t.Fatalf("Fallback = true for a parsed reply")
	}
}

func TestGeneratorNextQuestionDefaults(t *testing.T) {
	adapter := &scriptedAdapter{replies: map[string]string{genai.KindQuestion: `{}`}}
	g := NewGenerator(adapter, nil)

	got := g.NextQuestion(context.Background(), &session.Session{Difficulty: "junior"})

	if got.Text != "Tell me about yourself." {
		t.Fatalf("Text = %q", got.Text)
	}
	if got.Type != "behavioral" || got.Topic != "general" {
		t.Fatalf("Type/Topic = %q/%q", got.Type, got.Topic)
	}
	if got.Difficulty != "junior" {
		t.Fatalf("Difficulty = %q, want session difficulty", got.Difficulty)
	}
}

func TestGeneratorNextQuestionPromptCarriesLastFeedback(t *testing.T) {
	adapter := &scriptedAdapter{replies: map[string]string{genai.KindQuestion: `{}`}}
	g := NewGenerator(adapter, nil)

	sess := &session.Session{
		Difficulty: "mid",
		Questions:  []session.Question{{Text: "First question?", Topic: "experience"}},
		Evaluations: []session.Evaluation{
			{Feedback: "Good structure, thin on metrics."},
		},
	}
	g.NextQuestion(context.Background(), sess)

	calls := adapter.requests()
	if len(calls) != 1 {
		t.Fatalf("adapter calls = %d, want 1", len(calls))
	}
	prompt := calls[0].Prompt
	if !strings.Contains(prompt, "Feedback on the previous answer: Good structure, thin on metrics.") {
		t.Fatalf("prompt missing previous feedback:\n%s", prompt)
	}
	if !strings.Contains(prompt, "First question?") {
		t.Fatalf("prompt missing previous question:\n%s", prompt)
	}
}

func TestGeneratorNextQuestionFallsBackToBank(t *testing.T) {
	g := NewGenerator(&failingAdapter{}, nil)

	sess := &session.Session{Difficulty: "mid"}
	got := g.NextQuestion(context.Background(), sess)

	if got.Text != "Tell me about yourself and your background." {
		t.Fatalf("Text = %q, want first bank question", got.Text)
	}
	if got.Topic != "introduction" || got.Type != "behavioral" {
		t.Fatalf("Type/Topic = %q/%q", got.Type, got.Topic)
	}
	if got.Difficulty != "mid" {
		t.Fatalf("Difficulty = %q, want session difficulty", got.Difficulty)
	}
	if !got.Fallback {
		t.Fatalf("Fallback = false, want true")
	}

	// The bank index follows how many questions were already asked.
	sess.Questions = []session.Question{{}, {}}
	got = g.NextQuestion(context.Background(), sess)
	if got.Text != "Describe a challenging project you've worked on. How did you handle it?" {
		t.Fatalf("third bank question = %q", got.Text)
	}
}

func TestGeneratorBankIndexClampsToLastEntry(t *testing.T) {
	g := NewGenerator(&failingAdapter{}, nil)

	sess := &session.Session{Difficulty: "mid", Questions: make([]session.Question, 25)}
	got := g.NextQuestion(context.Background(), sess)

	if got.Text != "Is there anything else you'd like to share about your qualifications?" {
		t.Fatalf("Text = %q, want last bank question", got.Text)
	}
}

func TestGeneratorFollowUp(t *testing.T) {
	adapter := &scriptedAdapter{replies: map[string]string{
		genai.KindFollowUp: "What was your specific contribution to that outcome?",
	}}
	g := NewGenerator(adapter, nil)

	original := session.Question{Text: "Tell me about a team project.", Topic: "teamwork"}
	got := g.FollowUp(context.Background(), original, "We shipped it together.", "Unclear about personal contribution vs team work")

	if got.Text != "What was your specific contribution to that outcome?" {
		t.Fatalf("Text = %q", got.Text)
	}
	if !got.IsFollowUp || got.Type != "follow_up" {
		t.Fatalf("IsFollowUp/Type = %v/%q", got.IsFollowUp, got.Type)
	}
	if got.Topic != "teamwork" {
		t.Fatalf("Topic = %q, want parent topic", got.Topic)
	}
	if got.ParentQuestion != original.Text {
		t.Fatalf("ParentQuestion = %q", got.ParentQuestion)
	}
	if got.Fallback {
		t.Fatalf("Fallback = true for a generated follow-up")
	}
}

func TestGeneratorFollowUpFallback(t *testing.T) {
	g := NewGenerator(&failingAdapter{}, nil)

	original := session.Question{Text: "Tell me about a team project.", Topic: "teamwork"}
	got := g.FollowUp(context.Background(), original, "short", "Response is too brief - needs more detail")

	if got.Text != fallbackFollowUpText {
		t.Fatalf("Text = %q, want %q", got.Text, fallbackFollowUpText)
	}
	if got.Topic != "clarification" {
		t.Fatalf("Topic = %q, want clarification", got.Topic)
	}
	if !got.Fallback || !got.IsFollowUp {
		t.Fatalf("Fallback/IsFollowUp = %v/%v", got.Fallback, got.IsFollowUp)
	}
	if got.ParentQuestion != original.Text {
		t.Fatalf("ParentQuestion = %q", got.ParentQuestion)
	}
}
