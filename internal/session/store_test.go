package session

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestStoreCreateGet(t *testing.T) {
	st := NewStore(time.Minute, time.Hour)
	s := st.Create(Params{InterviewType: "behavioral", Difficulty: "mid", TargetQuestions: 5})
	if s.ID == "" {
		t.Fatalf("session ID should not be empty")
	}

	got, err := st.Get(s.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.InterviewType != "behavioral" || got.Status != StatusInProgress {
		t.Fatalf("unexpected session state: %+v", got)
	}
	if got.TargetQuestions != 5 {
		t.Fatalf("TargetQuestions = %d, want 5", got.TargetQuestions)
	}
}

func TestStoreGetReturnsClone(t *testing.T) {
	st := NewStore(time.Minute, time.Hour)
	s := st.Create(Params{TargetQuestions: 3})

	first, _ := st.Get(s.ID)
	first.Questions = append(first.Questions, Question{Text: "tampered"})
	first.Status = StatusCompleted

	second, _ := st.Get(s.ID)
	if len(second.Questions) != 0 {
		t.Fatalf("clone mutation leaked into store: %+v", second.Questions)
	}
	if second.Status != StatusInProgress {
		t.Fatalf("Status = %q, want %q", second.Status, StatusInProgress)
	}
}

func TestStoreBeginTurnRejectsConcurrent(t *testing.T) {
	st := NewStore(time.Minute, time.Hour)
	s := st.Create(Params{TargetQuestions: 3})

	if err := st.BeginTurn(s.ID); err != nil {
		t.Fatalf("BeginTurn() error = %v", err)
	}
	if err := st.BeginTurn(s.ID); !errors.Is(err, ErrTurnInFlight) {
		t.Fatalf("second BeginTurn() error = %v, want ErrTurnInFlight", err)
	}

	st.EndTurn(s.ID)
	if err := st.BeginTurn(s.ID); err != nil {
		t.Fatalf("BeginTurn() after EndTurn error = %v", err)
	}
}

func TestStoreBeginTurnAfterCompletion(t *testing.T) {
	st := NewStore(time.Minute, time.Hour)
	s := st.Create(Params{TargetQuestions: 3})

	err := st.Mutate(s.ID, func(live *Session) error {
		live.Status = StatusCompleted
		now := time.Now().UTC()
		live.EndedAt = &now
		return nil
	})
	if err != nil {
		t.Fatalf("Mutate() error = %v", err)
	}

	if err := st.BeginTurn(s.ID); !errors.Is(err, ErrCompleted) {
		t.Fatalf("BeginTurn() error = %v, want ErrCompleted", err)
	}
}

func TestStoreMutateUnknownSession(t *testing.T) {
	st := NewStore(time.Minute, time.Hour)
	err := st.Mutate("missing", func(*Session) error { return nil })
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("Mutate() error = %v, want ErrNotFound", err)
	}
}

func TestStoreJanitorCompletesIdleSessions(t *testing.T) {
	st := NewStore(30*time.Millisecond, time.Hour)
	s := st.Create(Params{TargetQuestions: 3})

	expired := make(chan string, 1)
	st.SetExpireHook(func(es *Session) { expired <- es.ID })

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	st.StartJanitor(ctx, 10*time.Millisecond)

	select {
	case id := <-expired:
		if id != s.ID {
			t.Fatalf("expired session = %q, want %q", id, s.ID)
		}
	case <-time.After(time.Second):
		t.Fatalf("janitor did not expire idle session")
	}

	got, err := st.Get(s.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.Status != StatusCompleted {
		t.Fatalf("Status = %q, want %q", got.Status, StatusCompleted)
	}
	if got.EndedAt == nil {
		t.Fatalf("EndedAt = nil, want set")
	}
}

func TestStoreJanitorDropsAfterRetention(t *testing.T) {
	st := NewStore(20*time.Millisecond, 40*time.Millisecond)
	s := st.Create(Params{TargetQuestions: 3})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	st.StartJanitor(ctx, 10*time.Millisecond)

	deadline := time.After(2 * time.Second)
	for {
		if _, err := st.Get(s.ID); errors.Is(err, ErrNotFound) {
			return
		}
		select {
		case <-deadline:
			t.Fatalf("session still present after retention window")
		case <-time.After(10 * time.Millisecond):
		}
	}
}

func TestStoreListNewestFirst(t *testing.T) {
	st := NewStore(time.Minute, time.Hour)
	st.Create(Params{InterviewType: "screening"})
	time.Sleep(2 * time.Millisecond)
	second := st.Create(Params{InterviewType: "technical"})

	list := st.List()
	if len(list) != 2 {
		t.Fatalf("List() = %d sessions, want 2", len(list))
	}
	if list[0].ID != second.ID {
		t.Fatalf("List()[0] = %q, want newest %q", list[0].ID, second.ID)
	}
}

func TestStoreActiveCount(t *testing.T) {
	st := NewStore(time.Minute, time.Hour)
	a := st.Create(Params{})
	st.Create(Params{})
	if got := st.ActiveCount(); got != 2 {
		t.Fatalf("ActiveCount() = %d, want 2", got)
	}

	_ = st.Mutate(a.ID, func(live *Session) error {
		live.Status = StatusCompleted
		return nil
	})
	if got := st.ActiveCount(); got != 1 {
		t.Fatalf("ActiveCount() after completion = %d, want 1", got)
	}
}
