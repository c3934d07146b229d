package transcribe

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
)

// FailoverTranscriber prefers the primary backend and switches to the
// fallback when a call fails. Once the fallback succeeds it stays active
// until it fails; then the primary is retried. Context cancellation is
// passed through without trying the fallback.
type FailoverTranscriber struct {
	fallbackActive atomic.Bool
	primary        Transcriber
	fallback       Transcriber
}

func NewFailoverTranscriber(primary, fallback Transcriber) *FailoverTranscriber {
	return &FailoverTranscriber{primary: primary, fallback: fallback}
}

func (t *FailoverTranscriber) Transcribe(ctx context.Context, wav []byte) (string, error) {
	if t.fallbackActive.Load() {
		text, fbErr := t.fallback.Transcribe(ctx, wav)
		if fbErr == nil {
			return text, nil
		}
		// Fallback failed after being active; try primary again.
		text, prErr := t.primary.Transcribe(ctx, wav)
		if prErr == nil {
			t.fallbackActive.Store(false)
			return text, nil
		}
		return "", fmt.Errorf("transcribe fallback failed: %v; primary failed: %w", fbErr, prErr)
	}

	text, prErr := t.primary.Transcribe(ctx, wav)
	if prErr == nil {
		return text, nil
	}
	if errors.Is(prErr, context.Canceled) || errors.Is(prErr, context.DeadlineExceeded) {
		return "", prErr
	}

	text, fbErr := t.fallback.Transcribe(ctx, wav)
	if fbErr != nil {
		return "", fmt.Errorf("transcribe primary failed: %v; fallback failed: %w", prErr, fbErr)
	}
	t.fallbackActive.Store(true)
	return text, nil
}
