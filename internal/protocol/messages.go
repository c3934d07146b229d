// Package protocol defines the websocket message schema for live interview
// sessions. Client frames carry candidate answers and control actions; the
// server pushes questions, per-answer evaluations, and the completion frame.
package protocol

import (
	"encoding/json"
	"errors"
	"fmt"
)

// MessageType identifies websocket payload variants.
type MessageType string

const (
	TypeCandidateResponse   MessageType = "candidate_response"
	TypeClientControl       MessageType = "client_control"
	TypeInterviewerQuestion MessageType = "interviewer_question"
	TypeResponseEvaluation  MessageType = "response_evaluation"
	TypeSessionComplete     MessageType = "session_complete"
	TypeErrorEvent          MessageType = "error_event"
)

// ActionEnd asks the server to finish the interview early.
const ActionEnd = "end"

var ErrUnsupportedType = errors.New("unsupported message type")

type Envelope struct {
	Type MessageType `json:"type"`
}

// CandidateResponse carries one answer. The session is bound by the
// connection, so client frames do not repeat the session id.
// DurationSeconds is optional and feeds the speaking-rate estimate.
type CandidateResponse struct {
	Type            MessageType `json:"type"`
	Text            string      `json:"text"`
	DurationSeconds float64     `json:"duration_seconds,omitempty"`
}

type ClientControl struct {
	Type   MessageType `json:"type"`
	Action string      `json:"action"`
}

// InterviewerQuestion is pushed on connect and after each advance or
// follow-up decision. QuestionNumber is the display number: a follow-up
// repeats its parent's number.
type InterviewerQuestion struct {
	Type           MessageType `json:"type"`
	SessionID      string      `json:"session_id"`
	Text           string      `json:"question"`
	QuestionType   string      `json:"question_type"`
	Topic          string      `json:"topic"`
	QuestionNumber int         `json:"question_number"`
	TotalQuestions int         `json:"total_questions"`
	IsFollowUp     bool        `json:"is_follow_up,omitempty"`
}

type ResponseEvaluation struct {
	Type         MessageType        `json:"type"`
	SessionID    string             `json:"session_id"`
	Summary      string             `json:"summary"`
	Scores       map[string]float64 `json:"scores"`
	OverallScore float64            `json:"overall_score"`
}

type SessionComplete struct {
	Type            MessageType        `json:"type"`
	SessionID       string             `json:"session_id"`
	OverallScore    float64            `json:"overall_score"`
	AggregateScores map[string]float64 `json:"aggregate_scores"`
	ClosingMessage  string             `json:"closing_message"`
}

type ErrorEvent struct {
	Type      MessageType `json:"type"`
	SessionID string      `json:"session_id"`
	Code      string      `json:"code"`
	Detail    string      `json:"detail"`
}

// ParseClientMessage decodes one inbound frame into its typed form.
func ParseClientMessage(raw []byte) (any, error) {
	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("invalid envelope: %w", err)
	}

	switch env.Type {
	case TypeCandidateResponse:
		var msg CandidateResponse
		if err := json.Unmarshal(raw, &msg); err != nil {
			return nil, err
		}
		if msg.Text == "" || msg.DurationSeconds < 0 {
			return nil, errors.New("invalid candidate_response")
		}
		return msg, nil
	case TypeClientControl:
		var msg ClientControl
		if err := json.Unmarshal(raw, &msg); err != nil {
			return nil, err
		}
		if msg.Action == "" {
			return nil, errors.New("invalid client_control")
		}
		return msg, nil
	default:
		return nil, ErrUnsupportedType
	}
}
