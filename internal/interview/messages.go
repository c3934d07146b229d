package interview

import (
	"context"
	"fmt"
	"strings"

	"github.com/mockingbird-ai/mockingbird/internal/genai"
	"github.com/mockingbird-ai/mockingbird/internal/prompts"
)

const fallbackClosing = "Thank you for your time today. We appreciate your thoughtful responses and will be in touch soon regarding next steps."

// Intro produces the interviewer's opening message. The second return is
// true when the deterministic fallback was substituted.
func Intro(ctx context.Context, adapter genai.Adapter, p prompts.InitParams) (string, bool) {
	resp, err := adapter.Generate(ctx, genai.Request{
		Kind:   genai.KindIntro,
		System: prompts.SystemInterviewer,
		Prompt: prompts.InitPrompt(p),
	})
	if err == nil {
		if text := strings.TrimSpace(genai.CleanMessage(resp.Text)); text != "" {
			return text, false
		}
	}
	return fmt.Sprintf("Hello! Thank you for joining this %s interview. "+
		"I'll be asking you %d questions to understand your background and qualifications better. "+
		"Please take your time with each answer. Let's begin!",
		p.InterviewType, p.NumQuestions), true
}

// Closing produces the interviewer's sign-off message. The second return is
// true when the deterministic fallback was substituted.
func Closing(ctx context.Context, adapter genai.Adapter, numQuestions int, overall float64, strengths, improvements []string) (string, bool) {
	resp, err := adapter.Generate(ctx, genai.Request{
		Kind:   genai.KindClosing,
		System: prompts.SystemInterviewer,
		Prompt: prompts.ClosingPrompt(numQuestions, overall, strengths, improvements),
	})
	if err == nil {
		if text := strings.TrimSpace(genai.CleanMessage(resp.Text)); text != "" {
			return text, false
		}
	}
	return fallbackClosing, true
}
