// Package transcribe is the boundary to the speech-to-text provider used
// for audio candidate responses. Providers transcribe one complete WAV clip
// per call; a failed transcription surfaces as an error, never as
// substituted text, because these are the candidate's own words.
package transcribe

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

// Transcriber turns one WAV clip into text.
type Transcriber interface {
	Transcribe(ctx context.Context, wav []byte) (string, error)
}

// Config controls transcriber construction. HTTPURL may list several
// whisper-server base URLs separated by commas; extra URLs become sticky
// failover targets behind the first.
type Config struct {
	Mode    string
	HTTPURL string
	Timeout time.Duration
}

func NewTranscriber(cfg Config) (Transcriber, error) {
	mode := strings.ToLower(strings.TrimSpace(cfg.Mode))
	if mode == "" {
		mode = "auto"
	}
	urls := splitURLs(cfg.HTTPURL)

	switch mode {
	case "auto":
		if len(urls) == 0 {
			return NewMockTranscriber(), nil
		}
		return chainHTTP(urls, cfg.Timeout), nil
	case "http":
		if len(urls) == 0 {
			return nil, errors.New("transcriber HTTP url is required for http mode")
		}
		return chainHTTP(urls, cfg.Timeout), nil
	case "mock":
		return NewMockTranscriber(), nil
	default:
		return nil, fmt.Errorf("unsupported transcriber mode %q", cfg.Mode)
	}
}

func splitURLs(raw string) []string {
	var urls []string
	for _, part := range strings.Split(raw, ",") {
		if u := strings.TrimSpace(part); u != "" {
			urls = append(urls, u)
		}
	}
	return urls
}

func chainHTTP(urls []string, timeout time.Duration) Transcriber {
	t := Transcriber(NewHTTPTranscriber(urls[len(urls)-1], timeout))
	for i := len(urls) - 2; i >= 0; i-- {
		t = NewFailoverTranscriber(NewHTTPTranscriber(urls[i], timeout), t)
	}
	return t
}
