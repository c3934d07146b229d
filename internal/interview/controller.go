// Package interview implements the adaptive mock-interview flow: the
// answer-depth heuristic, the per-turn follow-up decision, generator and
// evaluator call sites with deterministic fallbacks, and the controller
// that ties them to session storage, behavioral analytics, and the
// transcript archive.
package interview

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mockingbird-ai/mockingbird/internal/analytics"
	"github.com/mockingbird-ai/mockingbird/internal/archive"
	"github.com/mockingbird-ai/mockingbird/internal/genai"
	"github.com/mockingbird-ai/mockingbird/internal/observability"
	"github.com/mockingbird-ai/mockingbird/internal/policy"
	"github.com/mockingbird-ai/mockingbird/internal/prompts"
	"github.com/mockingbird-ai/mockingbird/internal/resume"
	"github.com/mockingbird-ai/mockingbird/internal/session"
)

var (
	ErrResumeRequired    = errors.New("resume_id or resume text is required")
	ErrNotCompleted      = errors.New("interview is not completed")
	ErrNoCurrentQuestion = errors.New("no current question")
)

const archiveSaveTimeout = 2 * time.Second

// Controller runs interviews end to end. All collaborator failures degrade
// to deterministic fallbacks; only not-found and invalid-state conditions
// surface as errors.
type Controller struct {
	store            *session.Store
	resumes          *resume.Registry
	generator        *Generator
	evaluator        *Evaluator
	adapter          genai.Adapter
	archive          archive.Store
	metrics          *observability.Metrics
	defaultQuestions int
	maxQuestions     int
}

func NewController(
	store *session.Store,
	resumes *resume.Registry,
	adapter genai.Adapter,
	bank []prompts.BankQuestion,
	archiveStore archive.Store,
	metrics *observability.Metrics,
	defaultQuestions int,
	maxQuestions int,
) *Controller {
	if defaultQuestions <= 0 {
		defaultQuestions = 5
	}
	if maxQuestions <= 0 {
		maxQuestions = 20
	}
	c := &Controller{
		store:            store,
		resumes:          resumes,
		generator:        NewGenerator(adapter, bank),
		evaluator:        NewEvaluator(adapter),
		adapter:          adapter,
		archive:          archiveStore,
		metrics:          metrics,
		defaultQuestions: defaultQuestions,
		maxQuestions:     maxQuestions,
	}
	store.SetExpireHook(func(s *session.Session) {
		metrics.ActiveSessions.Dec()
		metrics.SessionEvents.WithLabelValues("expired").Inc()
	})
	return c
}

// StartParams carries the caller-provided fields for a new interview.
type StartParams struct {
	ResumeID       string
	ResumeText     string
	JobDescription string
	InterviewType  string
	Difficulty     string
	QuestionCount  int
}

// StartResult is the reply to a successful session start.
type StartResult struct {
	SessionID      string           `json:"session_id"`
	Status         session.Status   `json:"status"`
	IntroMessage   string           `json:"intro_message"`
	FirstQuestion  session.Question `json:"first_question"`
	QuestionNumber int              `json:"question_number"`
	TotalQuestions int              `json:"total_questions"`
}

// StartSession creates a session, generates the intro message and the first
// question, and archives both.
func (c *Controller) StartSession(ctx context.Context, p StartParams) (StartResult, error) {
	resumeText := strings.TrimSpace(p.ResumeText)
	jobDescription := p.JobDescription
	var analysis *resume.Analysis

	if p.ResumeID != "" {
		snap, err := c.resumes.Get(p.ResumeID)
		if err != nil {
			return StartResult{}, err
		}
		resumeText = snap.Text
		analysis = snap.Analysis
		if jobDescription == "" {
			jobDescription = snap.JobDescription
		}
	}
	if resumeText == "" {
		return StartResult{}, ErrResumeRequired
	}

	interviewType := strings.TrimSpace(p.InterviewType)
	if interviewType == "" {
		interviewType = "comprehensive"
	}
	difficulty := strings.TrimSpace(p.Difficulty)
	if difficulty == "" {
		difficulty = "mid"
	}
	count := p.QuestionCount
	if count <= 0 {
		count = c.defaultQuestions
	}
	if count > c.maxQuestions {
		count = c.maxQuestions
	}

	sess := c.store.Create(session.Params{
		ResumeID:        p.ResumeID,
		ResumeText:      resumeText,
		JobDescription:  jobDescription,
		InterviewType:   interviewType,
		Difficulty:      difficulty,
		TargetQuestions: count,
	})
	c.metrics.ActiveSessions.Inc()
	c.metrics.SessionEvents.WithLabelValues("started").Inc()

	intro, introFallback := Intro(ctx, c.adapter, prompts.InitParams{
		ResumeText:     resumeText,
		JobDescription: jobDescription,
		InterviewType:  interviewType,
		NumQuestions:   count,
		Difficulty:     difficulty,
		FocusAreas:     FocusAreas(analysis),
	})
	if introFallback {
		c.metrics.ProviderErrors.WithLabelValues("genai", "intro_fallback").Inc()
	}

	first := c.generator.NextQuestion(ctx, sess)
	if first.Fallback {
		c.metrics.ProviderErrors.WithLabelValues("genai", "question_fallback").Inc()
	}

	err := c.store.Mutate(sess.ID, func(s *session.Session) error {
		s.IntroMessage = intro
		s.Questions = append(s.Questions, first)
		return nil
	})
	if err != nil {
		return StartResult{}, err
	}

	c.archiveTurn(sess.ID, archive.RoleInterviewer, intro)
	c.archiveTurn(sess.ID, archive.RoleInterviewer, first.Text)

	return StartResult{
		SessionID:      sess.ID,
		Status:         session.StatusInProgress,
		IntroMessage:   intro,
		FirstQuestion:  first,
		QuestionNumber: 1,
		TotalQuestions: count,
	}, nil
}

// SubmitParams carries one candidate response.
type SubmitParams struct {
	SessionID       string
	Response        string
	DurationSeconds float64
}

// TurnResult is the reply to one submitted response.
type TurnResult struct {
	SessionID         string             `json:"session_id"`
	EvaluationSummary string             `json:"evaluation_summary"`
	Scores            map[string]float64 `json:"scores"`
	Evaluation        session.Evaluation `json:"evaluation"`
	Depth             DepthAssessment    `json:"depth_assessment"`
	IsComplete        bool               `json:"is_complete"`
	NextQuestion      *session.Question  `json:"next_question,omitempty"`
	QuestionNumber    int                `json:"question_number,omitempty"`
	TotalQuestions    int                `json:"total_questions"`
	AggregateScores   map[string]float64 `json:"aggregate_scores,omitempty"`
	OverallScore      float64            `json:"overall_score,omitempty"`
	ClosingMessage    string             `json:"closing_message,omitempty"`
}

// SubmitResponse runs one turn: evaluate the response, decide between
// follow-up, advance, and complete, and apply the outcome. Turns against
// one session are serialized by the store's turn claim.
func (c *Controller) SubmitResponse(ctx context.Context, p SubmitParams) (TurnResult, error) {
	if err := c.store.BeginTurn(p.SessionID); err != nil {
		return TurnResult{}, err
	}
	defer c.store.EndTurn(p.SessionID)

	sess, err := c.store.Get(p.SessionID)
	if err != nil {
		return TurnResult{}, err
	}
	current, ok := sess.CurrentQuestion()
	if !ok {
		return TurnResult{}, ErrNoCurrentQuestion
	}

	turnStart := time.Now()

	// The evaluator suspends on the provider; the heuristic and analytics
	// are pure. Run them side by side and join before deciding.
	evalCh := make(chan session.Evaluation, 1)
	go func() {
		start := time.Now()
		ev := c.evaluator.Evaluate(ctx, current, p.Response, sess.ResumeText)
		c.metrics.ObserveTurnStage(observability.StageEvaluate, time.Since(start))
		evalCh <- ev
	}()

	analyzeStart := time.Now()
	depth := AssessDepth(current.Text, p.Response)
	analysis := analytics.AnalyzeResponse(p.Response, p.DurationSeconds)
	c.metrics.ObserveTurnStage(observability.StageAnalyze, time.Since(analyzeStart))

	evaluation := <-evalCh
	evaluation.Behavioral = &analysis
	if evaluation.Fallback {
		c.metrics.ProviderErrors.WithLabelValues("genai", "evaluation_fallback").Inc()
		c.metrics.ObserveTurnIndicator("evaluation_fallback")
	}

	mainCount := sess.MainQuestionCount()
	action := Decide(Snapshot{
		CurrentIsFollowUp: current.IsFollowUp,
		FollowUpCount:     sess.FollowUpCount,
		MainCount:         mainCount,
		Target:            sess.TargetQuestions,
	}, TurnInputs{
		NeedsFollowUp:       depth.NeedsFollowUp,
		FollowUpRecommended: evaluation.FollowUpRecommended,
	})

	// Grow the local snapshot first so question generation sees the turn
	// that was just answered.
	sess.Responses = append(sess.Responses, p.Response)
	sess.Evaluations = append(sess.Evaluations, evaluation)
	sess.Analyses = append(sess.Analyses, analysis)

	var next session.Question
	var aggregates map[string]float64
	var overall float64
	var closing string

	switch action {
	case ActionFollowUp:
		if evaluation.FollowUpQuestion != "" {
			next = session.Question{
				Text:           evaluation.FollowUpQuestion,
				Type:           "follow_up",
				Topic:          current.Topic,
				IsFollowUp:     true,
				ParentQuestion: current.Text,
			}
			if next.Topic == "" {
				next.Topic = "clarification"
			}
		} else {
			start := time.Now()
			next = c.generator.FollowUp(ctx, current, p.Response, depth.Reason)
			c.metrics.ObserveTurnStage(observability.StageGenerate, time.Since(start))
		}
	case ActionAdvance:
		start := time.Now()
		next = c.generator.NextQuestion(ctx, sess)
		c.metrics.ObserveTurnStage(observability.StageGenerate, time.Since(start))
	case ActionComplete:
		aggregates, overall = AggregateScores(sess.Evaluations)
		strengths, improvements := collectFeedback(sess.Evaluations)
		var closingFallback bool
		closing, closingFallback = Closing(ctx, c.adapter, len(sess.Responses), overall, strengths, improvements)
		if closingFallback {
			c.metrics.ProviderErrors.WithLabelValues("genai", "closing_fallback").Inc()
		}
	}
	if next.Fallback {
		c.metrics.ProviderErrors.WithLabelValues("genai", "question_fallback").Inc()
		c.metrics.ObserveTurnIndicator("question_fallback")
	}

	err = c.store.Mutate(p.SessionID, func(s *session.Session) error {
		if s.Status != session.StatusInProgress {
			return session.ErrCompleted
		}
		s.Responses = append(s.Responses, p.Response)
		s.Evaluations = append(s.Evaluations, evaluation)
		s.Analyses = append(s.Analyses, analysis)
		switch action {
		case ActionFollowUp:
			s.Questions = append(s.Questions, next)
			s.FollowUpCount++
		case ActionAdvance:
			s.Questions = append(s.Questions, next)
			s.FollowUpCount = 0
		case ActionComplete:
			now := time.Now().UTC()
			s.Status = session.StatusCompleted
			s.EndedAt = &now
			s.AggregateScores = aggregates
			s.OverallScore = overall
			s.ClosingMessage = closing
		}
		return nil
	})
	if err != nil {
		return TurnResult{}, err
	}

	c.metrics.TurnOutcomes.WithLabelValues(action.String()).Inc()
	c.metrics.ObserveTurnStage(observability.StageTurnTotal, time.Since(turnStart))

	c.archiveTurn(p.SessionID, archive.RoleCandidate, p.Response)

	result := TurnResult{
		SessionID:      p.SessionID,
		Scores:         evaluation.Scores,
		Evaluation:     evaluation,
		Depth:          depth,
		TotalQuestions: sess.TargetQuestions,
	}
	switch action {
	case ActionFollowUp:
		// Follow-ups keep the display number of the main question they probe.
		result.EvaluationSummary = "Let me dig a bit deeper... " + depth.Reason
		result.NextQuestion = &next
		result.QuestionNumber = mainCount
		c.archiveTurn(p.SessionID, archive.RoleInterviewer, next.Text)
	case ActionAdvance:
		result.EvaluationSummary = evaluation.Feedback
		result.NextQuestion = &next
		result.QuestionNumber = mainCount + 1
		c.archiveTurn(p.SessionID, archive.RoleInterviewer, next.Text)
	case ActionComplete:
		result.EvaluationSummary = evaluation.Feedback
		result.IsComplete = true
		result.AggregateScores = aggregates
		result.OverallScore = overall
		result.ClosingMessage = closing
		c.metrics.ActiveSessions.Dec()
		c.metrics.SessionEvents.WithLabelValues("completed").Inc()
		c.archiveTurn(p.SessionID, archive.RoleInterviewer, closing)
	}
	return result, nil
}

// EndResult is the reply to an end-session request.
type EndResult struct {
	SessionID         string             `json:"session_id"`
	Status            session.Status     `json:"status"`
	QuestionsAnswered int                `json:"questions_answered"`
	TotalQuestions    int                `json:"total_questions"`
	AggregateScores   map[string]float64 `json:"aggregate_scores"`
	OverallScore      float64            `json:"overall_score"`
	ClosingMessage    string             `json:"closing_message,omitempty"`
}

// EndSession completes a session immediately, computing aggregates over
// whatever responses exist. Ending an already-completed session is allowed
// and returns the stored result unchanged.
func (c *Controller) EndSession(ctx context.Context, sessionID string) (EndResult, error) {
	sess, err := c.store.Get(sessionID)
	if err != nil {
		return EndResult{}, err
	}
	if sess.Status == session.StatusCompleted {
		return endResultOf(sess), nil
	}

	aggregates, overall := AggregateScores(sess.Evaluations)
	strengths, improvements := collectFeedback(sess.Evaluations)
	closing, closingFallback := Closing(ctx, c.adapter, len(sess.Responses), overall, strengths, improvements)
	if closingFallback {
		c.metrics.ProviderErrors.WithLabelValues("genai", "closing_fallback").Inc()
	}

	completedNow := false
	err = c.store.Mutate(sessionID, func(s *session.Session) error {
		if s.Status == session.StatusCompleted {
			return nil
		}
		now := time.Now().UTC()
		s.Status = session.StatusCompleted
		s.EndedAt = &now
		s.AggregateScores = aggregates
		s.OverallScore = overall
		s.ClosingMessage = closing
		completedNow = true
		return nil
	})
	if err != nil {
		return EndResult{}, err
	}
	if completedNow {
		c.metrics.ActiveSessions.Dec()
		c.metrics.SessionEvents.WithLabelValues("ended_early").Inc()
		c.archiveTurn(sessionID, archive.RoleInterviewer, closing)
	}

	final, err := c.store.Get(sessionID)
	if err != nil {
		return EndResult{}, err
	}
	return endResultOf(final), nil
}

func endResultOf(sess *session.Session) EndResult {
	aggregates := sess.AggregateScores
	overall := sess.OverallScore
	if len(aggregates) == 0 {
		aggregates, overall = AggregateScores(sess.Evaluations)
	}
	return EndResult{
		SessionID:         sess.ID,
		Status:            sess.Status,
		QuestionsAnswered: len(sess.Responses),
		TotalQuestions:    sess.TargetQuestions,
		AggregateScores:   aggregates,
		OverallScore:      overall,
		ClosingMessage:    sess.ClosingMessage,
	}
}

// BehavioralReport aggregates the per-response behavioral analyses of a
// session. Returns analytics.ErrNoResponses when nothing was answered yet.
func (c *Controller) BehavioralReport(sessionID string) (analytics.SessionReport, error) {
	sess, err := c.store.Get(sessionID)
	if err != nil {
		return analytics.SessionReport{}, err
	}
	return analytics.AnalyzeSession(sess.Analyses)
}

// FinalReport builds the hiring report for a completed session.
func (c *Controller) FinalReport(ctx context.Context, sessionID string) (Report, error) {
	sess, err := c.store.Get(sessionID)
	if err != nil {
		return Report{}, err
	}
	if sess.Status != session.StatusCompleted {
		return Report{}, ErrNotCompleted
	}
	report := BuildReport(ctx, c.adapter, sess)
	if report.Fallback {
		c.metrics.ProviderErrors.WithLabelValues("genai", "report_fallback").Inc()
	}
	return report, nil
}

// Session returns a point-in-time copy of one session.
func (c *Controller) Session(sessionID string) (*session.Session, error) {
	return c.store.Get(sessionID)
}

// Sessions lists all sessions, newest first.
func (c *Controller) Sessions() []*session.Session {
	return c.store.List()
}

// CurrentQuestion returns the question awaiting an answer with its display
// number (follow-ups share their main question's number) and the target.
func (c *Controller) CurrentQuestion(sessionID string) (session.Question, int, int, error) {
	sess, err := c.store.Get(sessionID)
	if err != nil {
		return session.Question{}, 0, 0, err
	}
	q, ok := sess.CurrentQuestion()
	if !ok {
		return session.Question{}, 0, 0, ErrNoCurrentQuestion
	}
	return q, sess.MainQuestionCount(), sess.TargetQuestions, nil
}

// SessionTranscript returns the archived turns of a session.
func (c *Controller) SessionTranscript(ctx context.Context, sessionID string, limit int) ([]archive.TurnRecord, error) {
	if _, err := c.store.Get(sessionID); err != nil {
		return nil, err
	}
	if c.archive == nil {
		return nil, nil
	}
	return c.archive.Transcript(ctx, sessionID, limit)
}

// archiveTurn writes one transcript turn after PII redaction. Saves are
// best-effort: failures are counted, never surfaced.
func (c *Controller) archiveTurn(sessionID, role, content string) {
	if c.archive == nil || strings.TrimSpace(content) == "" {
		return
	}
	redacted, changed := policy.RedactPII(content)
	record := archive.TurnRecord{
		ID:          uuid.NewString(),
		SessionID:   sessionID,
		Role:        role,
		Content:     redacted,
		PIIRedacted: changed,
		CreatedAt:   time.Now().UTC(),
	}
	go func(r archive.TurnRecord) {
		saveCtx, cancel := context.WithTimeout(context.Background(), archiveSaveTimeout)
		defer cancel()
		if err := c.archive.SaveTurn(saveCtx, r); err != nil {
			c.metrics.ProviderErrors.WithLabelValues("archive", "save_failed").Inc()
		}
	}(record)
}

func collectFeedback(evals []session.Evaluation) (strengths, improvements []string) {
	seenStrength := map[string]bool{}
	seenImprovement := map[string]bool{}
	for _, ev := range evals {
		for _, s := range ev.Strengths {
			if s != "" && !seenStrength[s] {
				seenStrength[s] = true
				strengths = append(strengths, s)
			}
		}
		for _, w := range ev.Weaknesses {
			if w != "" && !seenImprovement[w] {
				seenImprovement[w] = true
				improvements = append(improvements, w)
			}
		}
	}
	return strengths, improvements
}
