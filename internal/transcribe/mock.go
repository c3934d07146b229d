package transcribe

import "context"

const mockTranscript = "In my last role I led a small team that rebuilt our " +
	"reporting pipeline and cut processing time by roughly forty percent."

// MockTranscriber returns a canned transcript for local runs without a
// speech backend.
type MockTranscriber struct{}

func NewMockTranscriber() *MockTranscriber { return &MockTranscriber{} }

func (*MockTranscriber) Transcribe(_ context.Context, wav []byte) (string, error) {
	if len(wav) == 0 {
		return "", nil
	}
	return mockTranscript, nil
}
