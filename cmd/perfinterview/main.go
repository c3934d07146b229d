package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"github.com/mockingbird-ai/mockingbird/internal/protocol"
)

type options struct {
	baseURL        string
	resumeFile     string
	interviewType  string
	difficulty     string
	questions      int
	interTurnDelay time.Duration
	turnTimeout    time.Duration
	texts          []string
	verbose        bool
}

type createInterviewRequest struct {
	ResumeText     string `json:"resume_text"`
	InterviewType  string `json:"interview_type,omitempty"`
	Difficulty     string `json:"difficulty,omitempty"`
	QuestionCount  int    `json:"question_count,omitempty"`
	JobDescription string `json:"job_description,omitempty"`
}

type createInterviewResponse struct {
	SessionID string `json:"session_id"`
}

// wsFrame is the union of the server frame fields the replay cares about.
type wsFrame struct {
	Type           string  `json:"type"`
	Question       string  `json:"question"`
	QuestionNumber int     `json:"question_number"`
	TotalQuestions int     `json:"total_questions"`
	IsFollowUp     bool    `json:"is_follow_up"`
	Summary        string  `json:"summary"`
	OverallScore   float64 `json:"overall_score"`
	ClosingMessage string  `json:"closing_message"`
	Code           string  `json:"code"`
	Detail         string  `json:"detail"`
}

type stageStats struct {
	Stage   string  `json:"stage"`
	Samples int     `json:"samples"`
	AvgMS   float64 `json:"avg_ms"`
	P50MS   float64 `json:"p50_ms"`
	P95MS   float64 `json:"p95_ms"`
	P99MS   float64 `json:"p99_ms"`
}

type turnStatsResponse struct {
	WindowSize int          `json:"window_size"`
	Stages     []stageStats `json:"stages"`
}

const defaultResume = `Jordan Reyes
Summary: Backend engineer with seven years building payment and data platform services.
Experience: Led the Go rewrite of a settlement pipeline processing 2 million events per day.
Experience: Ran the on-call program for a 14 service platform team.
Skills: Go, Python, Postgres, Kafka, Kubernetes, Terraform.
Education: BS Computer Science.`

// Replay answers are long and concrete so every turn advances instead of
// drawing a follow-up probe.
var defaultAnswers = []string{
	"In my previous role I led the migration of our billing pipeline to Python services running on Kubernetes. I profiled the slowest queries, cut p95 latency from 900 milliseconds to 210, and documented the rollout plan for the platform group. I also mentored two junior engineers who now own the monitoring dashboards and the alerting rules.",
	"At my last company I designed a Postgres sharding scheme that took us from 4 thousand to 40 thousand writes per second. I benchmarked three partitioning strategies, wrote the migration tooling in Go, and ran the cutover with zero downtime across 12 services. Afterwards I trained the on-call rotation on the new failure modes.",
	"When our paging load spiked I built an alert triage service in Go that deduplicated 80 percent of incidents before they reached a human. I interviewed the six teams involved, agreed severity rules with each owner, and shipped the first version in three weeks. Weekly pages dropped from 120 to 30.",
	"I once disagreed with my tech lead about adopting Kafka for a queue that peaked at 50 messages per second. I wrote a one page comparison against Redis streams, prototyped both paths in two days, and argued for the simpler option. That service has now run for two years without a single incident.",
}

func main() {
	cfg, err := parseFlags()
	if err != nil {
		fmt.Fprintf(os.Stderr, "perfinterview: %v\n", err)
		os.Exit(2)
	}
	if err := run(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "perfinterview: %v\n", err)
		os.Exit(1)
	}
}

func parseFlags() (options, error) {
	var cfg options
	var textsRaw string
	var interTurnMS int
	var turnTimeoutMS int

	flag.StringVar(&cfg.baseURL, "base-url", "http://127.0.0.1:8080", "Mockingbird base URL")
	flag.StringVar(&cfg.resumeFile, "resume-file", "", "path to a plain text resume (optional)")
	flag.StringVar(&cfg.interviewType, "type", "comprehensive", "interview type (technical|behavioral|comprehensive)")
	flag.StringVar(&cfg.difficulty, "difficulty", "mid", "difficulty (junior|mid|senior)")
	flag.IntVar(&cfg.questions, "questions", 5, "number of questions to request")
	flag.IntVar(&interTurnMS, "inter-turn-ms", 150, "delay between turns in milliseconds")
	flag.IntVar(&turnTimeoutMS, "turn-timeout-ms", 30000, "timeout waiting for each server frame in milliseconds")
	flag.StringVar(&textsRaw, "texts", "", "answers separated by '|' (optional)")
	flag.BoolVar(&cfg.verbose, "verbose", true, "print replay progress")
	flag.Parse()

	cfg.baseURL = strings.TrimRight(strings.TrimSpace(cfg.baseURL), "/")
	if cfg.baseURL == "" {
		return options{}, fmt.Errorf("base-url is required")
	}
	if cfg.questions <= 0 {
		return options{}, fmt.Errorf("questions must be > 0")
	}
	if interTurnMS < 0 {
		interTurnMS = 0
	}
	if turnTimeoutMS < 1000 {
		turnTimeoutMS = 1000
	}
	cfg.interTurnDelay = time.Duration(interTurnMS) * time.Millisecond
	cfg.turnTimeout = time.Duration(turnTimeoutMS) * time.Millisecond

	if strings.TrimSpace(textsRaw) == "" {
		cfg.texts = append([]string(nil), defaultAnswers...)
	} else {
		for _, part := range strings.Split(textsRaw, "|") {
			if t := strings.TrimSpace(part); t != "" {
				cfg.texts = append(cfg.texts, t)
			}
		}
		if len(cfg.texts) == 0 {
			return options{}, fmt.Errorf("texts produced no non-empty answers")
		}
	}
	return cfg, nil
}

func run(cfg options) error {
	ctx, cancel := context.WithTimeout(context.Background(), 8*time.Minute)
	defer cancel()

	resumeText := defaultResume
	if cfg.resumeFile != "" {
		data, err := os.ReadFile(cfg.resumeFile)
		if err != nil {
			return fmt.Errorf("read resume: %w", err)
		}
		resumeText = string(data)
	}

	httpClient := &http.Client{Timeout: 45 * time.Second}
	sessionID, err := createInterview(ctx, httpClient, cfg, resumeText)
	if err != nil {
		return fmt.Errorf("create interview: %w", err)
	}
	defer func() {
		_ = endInterview(context.Background(), httpClient, cfg.baseURL, sessionID)
	}()

	if cfg.verbose {
		fmt.Printf("perfinterview: session=%s questions=%d type=%s difficulty=%s\n", sessionID, cfg.questions, cfg.interviewType, cfg.difficulty)
	}

	wsURL, err := wsURLForSession(cfg.baseURL, sessionID)
	if err != nil {
		return fmt.Errorf("build ws URL: %w", err)
	}
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, wsURL, nil)
	if err != nil {
		return fmt.Errorf("open websocket: %w", err)
	}
	defer conn.Close()

	// The server pushes the pending question as soon as the socket opens.
	frame, err := readFrame(conn, cfg.turnTimeout)
	if err != nil {
		return fmt.Errorf("await first question: %w", err)
	}
	if frame.Type != string(protocol.TypeInterviewerQuestion) {
		return fmt.Errorf("unexpected first frame %q", frame.Type)
	}
	if cfg.verbose {
		fmt.Printf("perfinterview: question %d/%d: %s\n", frame.QuestionNumber, frame.TotalQuestions, frame.Question)
	}

	var latencies []time.Duration
	maxTurns := 3 * cfg.questions
	for turn := 1; turn <= maxTurns; turn++ {
		answer := cfg.texts[(turn-1)%len(cfg.texts)]
		speakSeconds := float64(len(strings.Fields(answer))) / 2.5

		sentAt := time.Now()
		msg := protocol.CandidateResponse{
			Type:            protocol.TypeCandidateResponse,
			Text:            answer,
			DurationSeconds: speakSeconds,
		}
		if err := conn.WriteJSON(msg); err != nil {
			return fmt.Errorf("turn %d send answer: %w", turn, err)
		}

		eval, err := awaitFrame(conn, cfg.turnTimeout, string(protocol.TypeResponseEvaluation))
		if err != nil {
			return fmt.Errorf("turn %d await evaluation: %w", turn, err)
		}
		latency := time.Since(sentAt)
		latencies = append(latencies, latency)
		if cfg.verbose {
			fmt.Printf("perfinterview: turn %d evaluated in %s (overall=%.1f)\n", turn, latency.Round(time.Millisecond), eval.OverallScore)
		}

		next, err := readFrame(conn, cfg.turnTimeout)
		if err != nil {
			return fmt.Errorf("turn %d await next frame: %w", turn, err)
		}
		switch next.Type {
		case string(protocol.TypeSessionComplete):
			if cfg.verbose {
				fmt.Printf("perfinterview: session complete, overall=%.1f\n", next.OverallScore)
			}
			printLatencySummary(latencies)
			return printTurnStats(ctx, httpClient, cfg.baseURL)
		case string(protocol.TypeInterviewerQuestion):
			if cfg.verbose {
				follow := ""
				if next.IsFollowUp {
					follow = " (follow-up)"
				}
				fmt.Printf("perfinterview: question %d/%d%s: %s\n", next.QuestionNumber, next.TotalQuestions, follow, next.Question)
			}
		default:
			return fmt.Errorf("turn %d unexpected frame %q", turn, next.Type)
		}

		if cfg.interTurnDelay > 0 {
			time.Sleep(cfg.interTurnDelay)
		}
	}
	return fmt.Errorf("session did not complete within %d turns", maxTurns)
}

func createInterview(ctx context.Context, client *http.Client, cfg options, resumeText string) (string, error) {
	payload, err := json.Marshal(createInterviewRequest{
		ResumeText:    resumeText,
		InterviewType: cfg.interviewType,
		Difficulty:    cfg.difficulty,
		QuestionCount: cfg.questions,
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, cfg.baseURL+"/v1/interviews", bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := client.Do(req)
	if err != nil {
		return "", err
	}
	defer res.Body.Close()
	body, err := io.ReadAll(io.LimitReader(res.Body, 1<<20))
	if err != nil {
		return "", err
	}
	if res.StatusCode != http.StatusCreated {
		return "", fmt.Errorf("HTTP %d: %s", res.StatusCode, strings.TrimSpace(string(body)))
	}

	var out createInterviewResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return "", err
	}
	if strings.TrimSpace(out.SessionID) == "" {
		return "", fmt.Errorf("missing session_id in response")
	}
	return out.SessionID, nil
}

func endInterview(ctx context.Context, client *http.Client, baseURL, sessionID string) error {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return nil
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, baseURL+"/v1/interviews/"+url.PathEscape(sessionID)+"/end", nil)
	if err != nil {
		return err
	}
	res, err := client.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(res.Body, 1<<20))
	return nil
}

func wsURLForSession(baseURL, sessionID string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(baseURL))
	if err != nil {
		return "", err
	}
	switch strings.ToLower(u.Scheme) {
	case "http":
		u.Scheme = "ws"
	case "https":
		u.Scheme = "wss"
	default:
		return "", fmt.Errorf("unsupported base-url scheme %q", u.Scheme)
	}
	if strings.TrimSpace(u.Host) == "" {
		return "", fmt.Errorf("base-url host is required")
	}
	u.Path = strings.TrimRight(u.Path, "/") + "/v1/interviews/live"
	q := u.Query()
	q.Set("session_id", sessionID)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

func readFrame(conn *websocket.Conn, timeout time.Duration) (wsFrame, error) {
	if err := conn.SetReadDeadline(time.Now().Add(timeout)); err != nil {
		return wsFrame{}, err
	}
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return wsFrame{}, err
		}
		var frame wsFrame
		if err := json.Unmarshal(data, &frame); err != nil {
			continue
		}
		if frame.Type == string(protocol.TypeErrorEvent) {
			fmt.Fprintf(os.Stderr, "perfinterview: error_event code=%s detail=%s\n", frame.Code, frame.Detail)
			continue
		}
		return frame, nil
	}
}

// awaitFrame skips frames until one of the wanted type arrives.
func awaitFrame(conn *websocket.Conn, timeout time.Duration, wantType string) (wsFrame, error) {
	deadline := time.Now().Add(timeout)
	for {
		remaining := time.Until(deadline)
		if remaining <= 0 {
			return wsFrame{}, fmt.Errorf("timeout waiting for %s", wantType)
		}
		frame, err := readFrame(conn, remaining)
		if err != nil {
			return wsFrame{}, err
		}
		if frame.Type == wantType {
			return frame, nil
		}
	}
}

func printLatencySummary(latencies []time.Duration) {
	if len(latencies) == 0 {
		return
	}
	var total, max time.Duration
	min := latencies[0]
	for _, l := range latencies {
		total += l
		if l > max {
			max = l
		}
		if l < min {
			min = l
		}
	}
	avg := total / time.Duration(len(latencies))
	fmt.Printf("perfinterview: turns=%d avg=%s min=%s max=%s\n",
		len(latencies), avg.Round(time.Millisecond), min.Round(time.Millisecond), max.Round(time.Millisecond))
}

func printTurnStats(ctx context.Context, client *http.Client, baseURL string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL+"/v1/perf/turns", nil)
	if err != nil {
		return err
	}
	res, err := client.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	body, err := io.ReadAll(io.LimitReader(res.Body, 1<<20))
	if err != nil {
		return err
	}
	if res.StatusCode != http.StatusOK {
		return fmt.Errorf("perf stats HTTP %d: %s", res.StatusCode, strings.TrimSpace(string(body)))
	}

	var stats turnStatsResponse
	if err := json.Unmarshal(body, &stats); err != nil {
		return err
	}
	fmt.Printf("perfinterview: server stage latency (window=%d)\n", stats.WindowSize)
	for _, s := range stats.Stages {
		fmt.Printf("  %-12s samples=%-4d avg=%7.1fms p50=%7.1fms p95=%7.1fms p99=%7.1fms\n",
			s.Stage, s.Samples, s.AvgMS, s.P50MS, s.P95MS, s.P99MS)
	}
	return nil
}
