package transcribe

import (
	"context"
	"errors"
	"strings"
	"testing"
)

type stubTranscriber struct {
	text  string
	err   error
	calls int
}

func (s *stubTranscriber) Transcribe(context.Context, []byte) (string, error) {
	s.calls++
	return s.text, s.err
}

func TestFailoverSwitchesAndSticks(t *testing.T) {
	primary := &stubTranscriber{err: errors.New("primary unavailable")}
	fallback := &stubTranscriber{text: "from fallback"}
	tr := NewFailoverTranscriber(primary, fallback)
	ctx := context.Background()

	got, err := tr.Transcribe(ctx, []byte("wav"))
	if err != nil {
		t.Fatalf("Transcribe() error = %v", err)
	}
	if got != "from fallback" {
		t.Fatalf("text = %q", got)
	}

	// Fallback stays active: the broken primary is not retried per call.
	if _, err := tr.Transcribe(ctx, []byte("wav")); err != nil {
		t.Fatalf("Transcribe() on fallback error = %v", err)
	}
	if primary.calls != 1 {
		t.Fatalf("primary calls = %d, want 1", primary.calls)
	}
	if fallback.calls != 2 {
		t.Fatalf("fallback calls = %d, want 2", fallback.calls)
	}
}

func TestFailoverRecoversToPrimary(t *testing.T) {
	primary := &stubTranscriber{err: errors.New("down")}
	fallback := &stubTranscriber{text: "fb"}
	tr := NewFailoverTranscriber(primary, fallback)
	ctx := context.Background()

	if _, err := tr.Transcribe(ctx, []byte("wav")); err != nil {
		t.Fatalf("Transcribe() error = %v", err)
	}

	// Fallback breaks, primary has recovered: the wrapper retries primary
	// and deactivates the fallback.
	primary.err = nil
	primary.text = "from primary"
	fallback.err = errors.New("fallback down")

	got, err := tr.Transcribe(ctx, []byte("wav"))
	if err != nil {
		t.Fatalf("Transcribe() error = %v", err)
	}
	if got != "from primary" {
		t.Fatalf("text = %q", got)
	}

	fallbackCalls := fallback.calls
	if _, err := tr.Transcribe(ctx, []byte("wav")); err != nil {
		t.Fatalf("Transcribe() error = %v", err)
	}
	if fallback.calls != fallbackCalls {
		t.Fatalf("fallback called again after primary recovered")
	}
}

func TestFailoverBothFail(t *testing.T) {
	primary := &stubTranscriber{err: errors.New("primary down")}
	fallback := &stubTranscriber{err: errors.New("fallback down")}
	tr := NewFailoverTranscriber(primary, fallback)

	_, err := tr.Transcribe(context.Background(), []byte("wav"))
	if err == nil {
		t.Fatalf("Transcribe() error = nil, want joined failure")
	}
	if !strings.Contains(err.Error(), "primary down") || !strings.Contains(err.Error(), "fallback down") {
		t.Fatalf("error = %v, want both causes", err)
	}
}

func TestFailoverContextCancelPassthrough(t *testing.T) {
	primary := &stubTranscriber{err: context.Canceled}
	fallback := &stubTranscriber{text: "fb"}
	tr := NewFailoverTranscriber(primary, fallback)

	_, err := tr.Transcribe(context.Background(), []byte("wav"))
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("error = %v, want context.Canceled", err)
	}
	if fallback.calls != 0 {
		t.Fatalf("fallback tried despite cancellation")
	}
}

func TestNewTranscriberModes(t *testing.T) {
	tr, err := NewTranscriber(Config{})
	if err != nil {
		t.Fatalf("NewTranscriber() error = %v", err)
	}
	if _, ok := tr.(*MockTranscriber); !ok {
		t.Fatalf("auto without URL = %T, want *MockTranscriber", tr)
	}

	tr, err = NewTranscriber(Config{HTTPURL: "http://localhost:8081"})
	if err != nil {
		t.Fatalf("NewTranscriber() error = %v", err)
	}
	if _, ok := tr.(*HTTPTranscriber); !ok {
		t.Fatalf("auto with URL = %T, want *HTTPTranscriber", tr)
	}

	tr, err = NewTranscriber(Config{HTTPURL: "http://a:8081, http://b:8081"})
	if err != nil {
		t.Fatalf("NewTranscriber() error = %v", err)
	}
	if _, ok := tr.(*FailoverTranscriber); !ok {
		t.Fatalf("auto with two URLs = %T, want *FailoverTranscriber", tr)
	}

	if _, err := NewTranscriber(Config{Mode: "http"}); err == nil {
		t.Fatalf("http mode without URL accepted")
	}
	if _, err := NewTranscriber(Config{Mode: "nope"}); err == nil {
		t.Fatalf("unknown mode accepted")
	}

	tr, err = NewTranscriber(Config{Mode: "mock", HTTPURL: "http://ignored"})
	if err != nil {
		t.Fatalf("NewTranscriber() error = %v", err)
	}
	if _, ok := tr.(*MockTranscriber); !ok {
		t.Fatalf("mock mode = %T, want *MockTranscriber", tr)
	}
}

func TestMockTranscriber(t *testing.T) {
	m := NewMockTranscriber()

	got, err := m.Transcribe(context.Background(), []byte("RIFF"))
	if err != nil {
		t.Fatalf("Transcribe() error = %v", err)
	}
	if got == "" {
		t.Fatalf("mock transcript empty")
	}

	got, err = m.Transcribe(context.Background(), nil)
	if err != nil || got != "" {
		t.Fatalf("Transcribe(empty) = %q, %v", got, err)
	}
}
