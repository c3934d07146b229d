package interview

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/mockingbird-ai/mockingbird/internal/analytics"
	"github.com/mockingbird-ai/mockingbird/internal/genai"
	"github.com/mockingbird-ai/mockingbird/internal/prompts"
	"github.com/mockingbird-ai/mockingbird/internal/session"
)

// Report is the hiring report for a completed interview. Scores are on a
// 0-100 scale except QuestionFeedback rows, which keep the evaluator's
// 0-10 per-response scale.
type Report struct {
	SessionID           string                   `json:"session_id"`
	InterviewType       string                   `json:"interview_type"`
	QuestionsAsked      int                      `json:"questions_asked"`
	QuestionsAnswered   int                      `json:"questions_answered"`
	DurationMinutes     float64                  `json:"duration_minutes"`
	OverallScore        float64                  `json:"overall_score"`
	Recommendation      string                   `json:"recommendation"`
	ExecutiveSummary    string                   `json:"executive_summary"`
	Strengths           []string                 `json:"strengths"`
	AreasForImprovement []string                 `json:"areas_for_improvement"`
	ImprovementRoadmap  []string                 `json:"improvement_roadmap,omitempty"`
	InterviewTips       []string                 `json:"interview_tips,omitempty"`
	PerformanceMetrics  map[string]float64       `json:"performance_metrics"`
	QuestionFeedback    []QuestionFeedback       `json:"question_feedback"`
	Behavioral          *analytics.SessionReport `json:"behavioral_analytics,omitempty"`
	Fallback            bool                     `json:"fallback,omitempty"`
}

// QuestionFeedback is one question-by-question row of the report.
type QuestionFeedback struct {
	QuestionNumber  int      `json:"question_number"`
	Question        string   `json:"question"`
	ResponseSummary string   `json:"response_summary"`
	Score           float64  `json:"score"`
	Strengths       []string `json:"strengths"`
	Improvements    []string `json:"improvements"`
}

type reportSchema struct {
	ExecutiveSummary    string     `json:"executive_summary"`
	Strengths           stringList `json:"strengths"`
	AreasForImprovement stringList `json:"areas_for_improvement"`
	ImprovementRoadmap  stringList `json:"improvement_roadmap"`
	InterviewTips       stringList `json:"interview_tips"`
}

// AggregateScores averages each dimension over the evaluations carrying it,
// 1dp, and adds an "overall" key holding the mean of the dimension averages.
// Scores stay on the evaluator's 0-10 scale.
func AggregateScores(evals []session.Evaluation) (map[string]float64, float64) {
	if len(evals) == 0 {
		return map[string]float64{"overall": 0}, 0
	}

	out := make(map[string]float64, len(ScoreDimensions)+1)
	var dimSum float64
	var dimCount int
	for _, dim := range ScoreDimensions {
		var sum float64
		var n int
		for _, ev := range evals {
			if v, ok := ev.Scores[dim]; ok {
				sum += v
				n++
			}
		}
		if n == 0 {
			continue
		}
		avg := round1(sum / float64(n))
		out[dim] = avg
		dimSum += avg
		dimCount++
	}

	overall := 0.0
	if dimCount > 0 {
		overall = round1(dimSum / float64(dimCount))
	}
	out["overall"] = overall
	return out, overall
}

// BuildReport assembles the final report for a completed session. Report
// prose comes from the model; every number is computed locally so a model
// outage only costs the narrative.
func BuildReport(ctx context.Context, adapter genai.Adapter, sess *session.Session) Report {
	aggregates := sess.AggregateScores
	overall := sess.OverallScore
	if len(aggregates) == 0 {
		aggregates, overall = AggregateScores(sess.Evaluations)
	}

	report := Report{
		SessionID:          sess.ID,
		InterviewType:      sess.InterviewType,
		QuestionsAsked:     len(sess.Questions),
		QuestionsAnswered:  len(sess.Responses),
		OverallScore:       round1(overall * 10),
		PerformanceMetrics: performanceMetrics(aggregates),
		QuestionFeedback:   questionFeedback(sess),
	}
	report.Recommendation = recommendationFor(report.OverallScore)
	if sess.EndedAt != nil {
		report.DurationMinutes = round1(sess.EndedAt.Sub(sess.StartedAt).Minutes())
	}

	var decoded reportSchema
	err := genai.GenerateStructured(ctx, adapter, genai.Request{
		Kind:   genai.KindReport,
		System: prompts.SystemInterviewer,
		Prompt: prompts.ReportPrompt(prompts.ReportParams{
			InterviewType:   sess.InterviewType,
			QuestionCount:   len(sess.Questions),
			OverallScore:    overall,
			AggregateScores: aggregates,
			Transcript:      transcriptText(sess),
		}),
	}, &decoded)
	if err != nil || strings.TrimSpace(decoded.ExecutiveSummary) == "" {
		report.ExecutiveSummary = "Interview completed. See detailed feedback below."
		report.Strengths = []string{"Completed the interview"}
		report.AreasForImprovement = []string{"Review detailed question feedback"}
		report.Fallback = true
	} else {
		report.ExecutiveSummary = strings.TrimSpace(decoded.ExecutiveSummary)
		report.Strengths = []string(decoded.Strengths)
		report.AreasForImprovement = []string(decoded.AreasForImprovement)
		report.ImprovementRoadmap = []string(decoded.ImprovementRoadmap)
		report.InterviewTips = []string(decoded.InterviewTips)
	}

	if behavioral, err := analytics.AnalyzeSession(sess.Analyses); err == nil {
		report.Behavioral = &behavioral
		report.InterviewTips = append(report.InterviewTips, behavioral.Recommendations...)
	}

	return report
}

func performanceMetrics(aggregates map[string]float64) map[string]float64 {
	out := make(map[string]float64, len(ScoreDimensions))
	for _, dim := range ScoreDimensions {
		if v, ok := aggregates[dim]; ok {
			out[dim] = round1(v * 10)
		}
	}
	return out
}

func questionFeedback(sess *session.Session) []QuestionFeedback {
	n := len(sess.Responses)
	if len(sess.Evaluations) < n {
		n = len(sess.Evaluations)
	}
	if len(sess.Questions) < n {
		n = len(sess.Questions)
	}

	rows := make([]QuestionFeedback, 0, n)
	for i := 0; i < n; i++ {
		ev := sess.Evaluations[i]
		rows = append(rows, QuestionFeedback{
			QuestionNumber:  i + 1,
			Question:        sess.Questions[i].Text,
			ResponseSummary: prompts.Truncate(sess.Responses[i], 200),
			Score:           ev.OverallScore,
			Strengths:       ev.Strengths,
			Improvements:    ev.Weaknesses,
		})
	}
	return rows
}

func transcriptText(sess *session.Session) string {
	var b strings.Builder
	for i, q := range sess.Questions {
		fmt.Fprintf(&b, "Q%d: %s\n", i+1, q.Text)
		if i < len(sess.Responses) {
			fmt.Fprintf(&b, "A%d: %s\n", i+1, sess.Responses[i])
		}
	}
	return b.String()
}

func recommendationFor(score float64) string {
	switch {
	case score >= 80:
		return "Strong Hire"
	case score >= 65:
		return "Hire"
	case score >= 50:
		return "Maybe"
	default:
		return "No Hire"
	}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
