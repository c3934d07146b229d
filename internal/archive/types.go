// Package archive persists interview transcripts. Turns are written
// best-effort after PII redaction; a lost turn never fails an interview.
package archive

import (
	"context"
	"time"
)

// Transcript roles.
const (
	RoleInterviewer = "interviewer"
	RoleCandidate   = "candidate"
)

// TurnRecord stores a single interviewer or candidate transcript turn.
type TurnRecord struct {
	ID          string    `json:"id"`
	SessionID   string    `json:"session_id"`
	Role        string    `json:"role"`
	Content     string    `json:"content"`
	PIIRedacted bool      `json:"pii_redacted"`
	CreatedAt   time.Time `json:"created_at"`
}

// Store persists and retrieves interview transcripts.
type Store interface {
	SaveTurn(ctx context.Context, record TurnRecord) error
	Transcript(ctx context.Context, sessionID string, limit int) ([]TurnRecord, error)
	Close() error
}
