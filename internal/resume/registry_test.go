package resume

import (
	"errors"
	"testing"
)

func TestRegistryAddAndGet(t *testing.T) {
	reg := NewRegistry()

	snap := reg.Add(sampleResume, "Need Python.")
	if snap.ID == "" {
		t.Fatalf("snapshot has empty id")
	}
	if snap.Analysis == nil {
		t.Fatalf("snapshot has no analysis")
	}

	got, err := reg.Get(snap.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.ID != snap.ID {
		t.Fatalf("Get().ID = %q, want %q", got.ID, snap.ID)
	}
	if got.Contact.Email != "john.smith@example.com" {
		t.Fatalf("Get().Contact.Email = %q", got.Contact.Email)
	}

	if _, err := reg.Get("nope"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get(nope) error = %v, want ErrNotFound", err)
	}
}

func TestRegistryGetReturnsCopy(t *testing.T) {
	reg := NewRegistry()
	snap := reg.Add(sampleResume, "")

	first, err := reg.Get(snap.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	first.Sections["experience"] = "tampered"
	first.Skills[0] = "tampered"
	first.Analysis.Sections["skills"] = SectionScore{Score: -1}

	second, err := reg.Get(snap.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if second.Sections["experience"] == "tampered" {
		t.Fatalf("stored section mutated through returned copy")
	}
	if second.Skills[0] != "Python" {
		t.Fatalf("Skills[0] = %q, want Python", second.Skills[0])
	}
	if second.Analysis.Sections["skills"].Score == -1 {
		t.Fatalf("stored analysis mutated through returned copy")
	}
}

func TestRegistryCount(t *testing.T) {
	reg := NewRegistry()
	if reg.Count() != 0 {
		t.Fatalf("Count() = %d, want 0", reg.Count())
	}
	reg.Add(sampleResume, "")
	reg.Add(sampleResume, "")
	if reg.Count() != 2 {
		t.Fatalf("Count() = %d, want 2", reg.Count())
	}
}
