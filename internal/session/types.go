// Package session holds interview session state and its in-process store.
// Sessions are data only; question generation and evaluation capabilities
// are injected where turns are processed.
package session

import (
	"time"

	"github.com/mockingbird-ai/mockingbird/internal/analytics"
)

type Status string

const (
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
)

// Question is a single interviewer prompt, either a main question or a
// follow-up probe tied to its parent.
type Question struct {
	Text             string   `json:"question"`
	Type             string   `json:"type"`
	Topic            string   `json:"topic"`
	IsFollowUp       bool     `json:"is_follow_up,omitempty"`
	ParentQuestion   string   `json:"parent_question,omitempty"`
	ExpectedElements []string `json:"expected_elements,omitempty"`
	Difficulty       string   `json:"difficulty,omitempty"`
	FollowUpHints    []string `json:"follow_up_hints,omitempty"`
	Fallback         bool     `json:"-"`
}

// Evaluation scores one response across the fixed dimensions. Fallback is
// true when defaults were substituted for an unusable evaluator result.
type Evaluation struct {
	Scores              map[string]float64        `json:"scores"`
	OverallScore        float64                   `json:"overall_score"`
	Feedback            string                    `json:"feedback"`
	Strengths           []string                  `json:"strengths"`
	Weaknesses          []string                  `json:"weaknesses"`
	MissingElements     []string                  `json:"missing_elements,omitempty"`
	FollowUpRecommended bool                      `json:"follow_up_recommended"`
	FollowUpQuestion    string                    `json:"follow_up_question,omitempty"`
	Fallback            bool                      `json:"fallback,omitempty"`
	Behavioral          *analytics.SpeechAnalysis `json:"behavioral,omitempty"`
}

// Session is the full state of one interview.
type Session struct {
	ID              string                     `json:"session_id"`
	ResumeID        string                     `json:"resume_id,omitempty"`
	ResumeText      string                     `json:"-"`
	JobDescription  string                     `json:"-"`
	InterviewType   string                     `json:"interview_type"`
	Difficulty      string                     `json:"difficulty"`
	TargetQuestions int                        `json:"target_questions"`
	Status          Status                     `json:"status"`
	IntroMessage    string                     `json:"intro_message,omitempty"`
	ClosingMessage  string                     `json:"closing_message,omitempty"`
	Questions       []Question                 `json:"questions"`
	Responses       []string                   `json:"responses"`
	Evaluations     []Evaluation               `json:"evaluations"`
	Analyses        []analytics.SpeechAnalysis `json:"-"`
	FollowUpCount   int                        `json:"-"`
	AggregateScores map[string]float64         `json:"aggregate_scores,omitempty"`
	OverallScore    float64                    `json:"overall_score,omitempty"`
	StartedAt       time.Time                  `json:"started_at"`
	LastActivityAt  time.Time                  `json:"last_activity_at"`
	EndedAt         *time.Time                 `json:"ended_at,omitempty"`

	turnInFlight bool
}

// MainQuestionCount counts questions that are not follow-up probes.
func (s *Session) MainQuestionCount() int {
	n := 0
	for _, q := range s.Questions {
		if !q.IsFollowUp {
			n++
		}
	}
	return n
}

// CurrentQuestion returns the most recently asked question.
func (s *Session) CurrentQuestion() (Question, bool) {
	if len(s.Questions) == 0 {
		return Question{}, false
	}
	return s.Questions[len(s.Questions)-1], true
}

// CoveredTopics lists the topics of asked main questions, in order.
func (s *Session) CoveredTopics() []string {
	var topics []string
	for _, q := range s.Questions {
		if q.IsFollowUp || q.Topic == "" {
			continue
		}
		topics = append(topics, q.Topic)
	}
	return topics
}

// Params carries the caller-provided fields for a new session.
type Params struct {
	ResumeID        string
	ResumeText      string
	JobDescription  string
	InterviewType   string
	Difficulty      string
	TargetQuestions int
}
