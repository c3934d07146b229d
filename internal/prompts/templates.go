package prompts

import (
	"fmt"
	"sort"
	"strings"
)

// SystemInterviewer frames every generation call.
const SystemInterviewer = "You are a seasoned professional interviewer conducting a mock interview. " +
	"You ask one clear question at a time, ground your questions in the candidate's resume, " +
	"and evaluate answers fairly and constructively. Never mention that you are an AI or that this is a simulation."

// Truncate shortens text for prompt inclusion.
func Truncate(text string, maxLen int) string {
	if text == "" {
		return ""
	}
	if len(text) <= maxLen {
		return text
	}
	return text[:maxLen] + "..."
}

// InitParams feeds the interview-opening prompt.
type InitParams struct {
	ResumeText     string
	JobDescription string
	InterviewType  string
	NumQuestions   int
	Difficulty     string
	FocusAreas     string
}

func InitPrompt(p InitParams) string {
	jd := p.JobDescription
	if strings.TrimSpace(jd) == "" {
		jd = "General interview"
	}
	return fmt.Sprintf(`An interview session is starting.

Interview type: %s
Difficulty: %s
Number of questions: %d
Focus areas: %s

Candidate resume:
%s

Job description:
%s

Write a short, warm introduction (2-4 sentences) welcoming the candidate, telling them how many questions to expect, and inviting them to take their time. Respond with the introduction text only.`,
		p.InterviewType, p.Difficulty, p.NumQuestions, p.FocusAreas,
		Truncate(p.ResumeText, 1000), Truncate(jd, 500))
}

// QuestionParams feeds the next-question prompt.
type QuestionParams struct {
	ResumeText         string
	JobDescription     string
	PreviousQuestions  []string
	CoveredTopics      []string
	RemainingTopics    string
	PreviousEvaluation string
	Difficulty         string
}

func QuestionPrompt(p QuestionParams) string {
	covered := strings.Join(p.CoveredTopics, ", ")
	if covered == "" {
		covered = "None"
	}
	return fmt.Sprintf(`Generate the next interview question.

Candidate resume summary:
%s

Job description summary:
%s

Questions already asked:
%s

Topics covered: %s
Topics to prefer next: %s
Target difficulty: %s
%s

Pick an uncovered topic and ask one specific question about it. Respond with a JSON object:
{"question": string, "question_type": "behavioral"|"technical"|"situational"|"motivation", "topic": string, "expected_elements": [string], "difficulty": string, "follow_up_hints": [string]}`,
		Truncate(p.ResumeText, 500), Truncate(p.JobDescription, 300),
		strings.Join(p.PreviousQuestions, "\n"), covered, p.RemainingTopics,
		p.Difficulty, p.PreviousEvaluation)
}

// EvaluationParams feeds the response-evaluation prompt.
type EvaluationParams struct {
	Question         string
	QuestionType     string
	Topic            string
	ExpectedElements []string
	Response         string
	ResumeText       string
}

func EvaluationPrompt(p EvaluationParams) string {
	return fmt.Sprintf(`Evaluate the candidate's answer.

Question (%s, topic %s):
%s

Expected elements: %s

Candidate's answer:
%s

Resume summary for context:
%s

Score each dimension 0-10: content, communication, analytical, technical_depth, star_method, authenticity. Recommend a follow-up only when the answer leaves a significant gap worth probing. Respond with a JSON object:
{"scores": {"content": number, "communication": number, "analytical": number, "technical_depth": number, "star_method": number, "authenticity": number}, "overall_score": number, "strengths": [string], "weaknesses": [string], "missing_elements": [string], "feedback": string, "follow_up_recommended": bool, "follow_up_question": string}`,
		p.QuestionType, p.Topic, p.Question,
		strings.Join(p.ExpectedElements, ", "), p.Response, Truncate(p.ResumeText, 500))
}

func FollowUpPrompt(originalQuestion, response, reason string) string {
	return fmt.Sprintf(`The candidate was asked:
%s

They answered:
%s

Reason to probe deeper: %s

Ask one short follow-up question that digs into the gap. Respond with the question text only.`,
		originalQuestion, Truncate(response, 800), reason)
}

func ClosingPrompt(numQuestions int, overallScore float64, strengths, improvements []string) string {
	s := "Various areas"
	if len(strengths) > 0 {
		s = strings.Join(firstN(strengths, 3), ", ")
	}
	w := "Some areas"
	if len(improvements) > 0 {
		w = strings.Join(firstN(improvements, 3), ", ")
	}
	return fmt.Sprintf(`The interview is over after %d questions. Overall assessment: Score: %.1f/10.
Observed strengths: %s
Areas to improve: %s

Write a brief, gracious closing message (2-3 sentences) thanking the candidate and telling them feedback will follow. Do not reveal the score. Respond with the closing text only.`,
		numQuestions, overallScore, s, w)
}

// ReportParams feeds the final-report prompt.
type ReportParams struct {
	InterviewType   string
	QuestionCount   int
	OverallScore    float64
	AggregateScores map[string]float64
	Transcript      string
}

func ReportPrompt(p ReportParams) string {
	dims := make([]string, 0, len(p.AggregateScores))
	for dim := range p.AggregateScores {
		dims = append(dims, dim)
	}
	sort.Strings(dims)
	var scores strings.Builder
	for _, dim := range dims {
		fmt.Fprintf(&scores, "%s: %.1f/10\n", dim, p.AggregateScores[dim])
	}
	return fmt.Sprintf(`Write a hiring report for a completed %s interview of %d questions.

Dimension averages:
%s
Overall: %.1f/10

Interview transcript (truncated):
%s

Respond with a JSON object:
{"executive_summary": string, "strengths": [string], "areas_for_improvement": [string], "improvement_roadmap": [string], "interview_tips": [string]}`,
		p.InterviewType, p.QuestionCount, scores.String(), p.OverallScore,
		Truncate(p.Transcript, 4000))
}

func firstN(items []string, n int) []string {
	if len(items) <= n {
		return items
	}
	return items[:n]
}
