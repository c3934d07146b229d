package archive

import (
	"context"
	"testing"
)

func TestInMemoryStoreSaveAndTranscript(t *testing.T) {
	store := NewInMemoryStore()
	ctx := context.Background()

	turns := []TurnRecord{
		{SessionID: "s1", Role: RoleInterviewer, Content: "Tell me about yourself."},
		{SessionID: "s1", Role: RoleCandidate, Content: "I built payment systems for five years."},
		{SessionID: "s2", Role: RoleInterviewer, Content: "Why this role?"},
	}
	for _, turn := range turns {
		if err := store.SaveTurn(ctx, turn); err != nil {
			t.Fatalf("SaveTurn() error = %v", err)
		}
	}

	got, err := store.Transcript(ctx, "s1", 0)
	if err != nil {
		t.Fatalf("Transcript() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len(transcript) = %d, want 2", len(got))
	}
	if got[0].Role != RoleInterviewer || got[1].Role != RoleCandidate {
		t.Fatalf("roles = %q, %q, want interviewer, candidate", got[0].Role, got[1].Role)
	}
	if got[0].ID == "" || got[0].CreatedAt.IsZero() {
		t.Fatalf("record missing generated ID or timestamp: %+v", got[0])
	}
}

func TestInMemoryStoreTranscriptLimitKeepsLatest(t *testing.T) {
	store := NewInMemoryStore()
	ctx := context.Background()

	for _, content := range []string{"one", "two", "three", "four"} {
		record := TurnRecord{SessionID: "s1", Role: RoleCandidate, Content: content}
		if err := store.SaveTurn(ctx, record); err != nil {
			t.Fatalf("SaveTurn() error = %v", err)
		}
	}

	got, err := store.Transcript(ctx, "s1", 2)
	if err != nil {
		t.Fatalf("Transcript() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len(transcript) = %d, want 2", len(got))
	}
	if got[0].Content != "three" || got[1].Content != "four" {
		t.Fatalf("contents = %q, %q, want three, four", got[0].Content, got[1].Content)
	}
}

func TestInMemoryStoreTranscriptUnknownSession(t *testing.T) {
	store := NewInMemoryStore()

	got, err := store.Transcript(context.Background(), "missing", 10)
	if err != nil {
		t.Fatalf("Transcript() error = %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("len(transcript) = %d, want 0", len(got))
	}
}
