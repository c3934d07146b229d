package resume

import (
	"errors"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned when a resume id has no stored snapshot.
var ErrNotFound = errors.New("resume not found")

// Registry holds resume snapshots in memory, keyed by id. Snapshots are
// immutable once stored; reads return copies.
type Registry struct {
	mu        sync.RWMutex
	snapshots map[string]*Snapshot
}

func NewRegistry() *Registry {
	return &Registry{snapshots: make(map[string]*Snapshot)}
}

// Add parses and analyzes text and stores the result under a fresh id.
func (r *Registry) Add(text, jobDescription string) *Snapshot {
	parsed := ParseText(text)
	now := time.Now().UTC()
	snap := &Snapshot{
		ID:             uuid.NewString(),
		Parsed:         parsed,
		JobDescription: jobDescription,
		Analysis:       Analyze(parsed, jobDescription, now),
		CreatedAt:      now,
	}
	r.mu.Lock()
	r.snapshots[snap.ID] = snap
	r.mu.Unlock()
	return snap.clone()
}

func (r *Registry) Get(id string) (*Snapshot, error) {
	r.mu.RLock()
	snap, ok := r.snapshots[id]
	r.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	return snap.clone(), nil
}

func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.snapshots)
}

func (s *Snapshot) clone() *Snapshot {
	c := *s
	c.Sections = maps.Clone(s.Sections)
	c.Experience = slices.Clone(s.Experience)
	c.Skills = slices.Clone(s.Skills)
	if s.Analysis != nil {
		a := *s.Analysis
		a.Sections = maps.Clone(s.Analysis.Sections)
		a.Keywords.Matched = slices.Clone(s.Analysis.Keywords.Matched)
		a.Keywords.Missing = slices.Clone(s.Analysis.Keywords.Missing)
		a.Analytics.GapAnalysis.Gaps = slices.Clone(s.Analysis.Analytics.GapAnalysis.Gaps)
		a.Analytics.GapAnalysis.Flags = slices.Clone(s.Analysis.Analytics.GapAnalysis.Flags)
		a.Analytics.JobStability.ShortTenures = slices.Clone(s.Analysis.Analytics.JobStability.ShortTenures)
		a.Analytics.JobStability.Flags = slices.Clone(s.Analysis.Analytics.JobStability.Flags)
		a.Analytics.LeadershipSignals = slices.Clone(s.Analysis.Analytics.LeadershipSignals)
		c.Analysis = &a
	}
	return &c
}
