package session

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mockingbird-ai/mockingbird/internal/analytics"
)

var (
	ErrNotFound     = errors.New("session not found")
	ErrCompleted    = errors.New("session already completed")
	ErrTurnInFlight = errors.New("a response is already being processed")
)

// Store keeps sessions in memory. Idle in-progress sessions are completed
// by the janitor after the inactivity timeout; completed sessions are
// dropped once the retention window passes.
type Store struct {
	mu                sync.RWMutex
	sessions          map[string]*Session
	inactivityTimeout time.Duration
	retention         time.Duration
	onExpire          func(*Session)
}

func NewStore(inactivityTimeout, retention time.Duration) *Store {
	if inactivityTimeout <= 0 {
		inactivityTimeout = 30 * time.Minute
	}
	if retention <= 0 {
		retention = time.Hour
	}
	return &Store{
		sessions:          make(map[string]*Session),
		inactivityTimeout: inactivityTimeout,
		retention:         retention,
	}
}

// SetExpireHook registers a callback invoked for each session the janitor
// completes. The hook runs outside the store lock.
func (st *Store) SetExpireHook(hook func(*Session)) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.onExpire = hook
}

func (st *Store) Create(p Params) *Session {
	now := time.Now().UTC()
	s := &Session{
		ID:              uuid.NewString(),
		ResumeID:        p.ResumeID,
		ResumeText:      p.ResumeText,
		JobDescription:  p.JobDescription,
		InterviewType:   p.InterviewType,
		Difficulty:      p.Difficulty,
		TargetQuestions: p.TargetQuestions,
		Status:          StatusInProgress,
		StartedAt:       now,
		LastActivityAt:  now,
	}

	st.mu.Lock()
	defer st.mu.Unlock()
	st.sessions[s.ID] = s
	return clone(s)
}

func (st *Store) Get(sessionID string) (*Session, error) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	s, ok := st.sessions[sessionID]
	if !ok {
		return nil, ErrNotFound
	}
	return clone(s), nil
}

// List returns all sessions, newest first.
func (st *Store) List() []*Session {
	st.mu.RLock()
	defer st.mu.RUnlock()
	out := make([]*Session, 0, len(st.sessions))
	for _, s := range st.sessions {
		out = append(out, clone(s))
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].StartedAt.After(out[j].StartedAt)
	})
	return out
}

// BeginTurn claims exclusive turn processing for a session. Every accepted
// claim must be released with EndTurn.
func (st *Store) BeginTurn(sessionID string) error {
	st.mu.Lock()
	defer st.mu.Unlock()
	s, ok := st.sessions[sessionID]
	if !ok {
		return ErrNotFound
	}
	if s.Status != StatusInProgress {
		return ErrCompleted
	}
	if s.turnInFlight {
		return ErrTurnInFlight
	}
	s.turnInFlight = true
	s.LastActivityAt = time.Now().UTC()
	return nil
}

func (st *Store) EndTurn(sessionID string) {
	st.mu.Lock()
	defer st.mu.Unlock()
	if s, ok := st.sessions[sessionID]; ok {
		s.turnInFlight = false
	}
}

// Mutate applies fn to the live session under the store lock and bumps the
// activity timestamp when fn succeeds.
func (st *Store) Mutate(sessionID string, fn func(*Session) error) error {
	st.mu.Lock()
	defer st.mu.Unlock()
	s, ok := st.sessions[sessionID]
	if !ok {
		return ErrNotFound
	}
	if err := fn(s); err != nil {
		return err
	}
	s.LastActivityAt = time.Now().UTC()
	return nil
}

func (st *Store) Touch(sessionID string) error {
	st.mu.Lock()
	defer st.mu.Unlock()
	s, ok := st.sessions[sessionID]
	if !ok {
		return ErrNotFound
	}
	s.LastActivityAt = time.Now().UTC()
	return nil
}

func (st *Store) StartJanitor(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				st.sweep()
			}
		}
	}()
}

func (st *Store) ActiveCount() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	count := 0
	for _, s := range st.sessions {
		if s.Status == StatusInProgress {
			count++
		}
	}
	return count
}

func (st *Store) sweep() {
	now := time.Now().UTC()
	var expired []*Session

	st.mu.Lock()
	for id, s := range st.sessions {
		switch s.Status {
		case StatusInProgress:
			if now.Sub(s.LastActivityAt) < st.inactivityTimeout {
				continue
			}
			s.Status = StatusCompleted
			s.turnInFlight = false
			ended := now
			s.EndedAt = &ended
			s.LastActivityAt = now
			expired = append(expired, clone(s))
		case StatusCompleted:
			if s.EndedAt != nil && now.Sub(*s.EndedAt) >= st.retention {
				delete(st.sessions, id)
			}
		}
	}
	hook := st.onExpire
	st.mu.Unlock()

	if hook != nil {
		for _, s := range expired {
			hook(s)
		}
	}
}

func clone(s *Session) *Session {
	c := *s
	c.Questions = append([]Question(nil), s.Questions...)
	c.Responses = append([]string(nil), s.Responses...)
	c.Evaluations = append([]Evaluation(nil), s.Evaluations...)
	c.Analyses = append([]analytics.SpeechAnalysis(nil), s.Analyses...)
	if s.EndedAt != nil {
		t := *s.EndedAt
		c.EndedAt = &t
	}
	if s.AggregateScores != nil {
		m := make(map[string]float64, len(s.AggregateScores))
		for k, v := range s.AggregateScores {
			m[k] = v
		}
		c.AggregateScores = m
	}
	return &c
}
