package httpapi

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"github.com/mockingbird-ai/mockingbird/internal/interview"
	"github.com/mockingbird-ai/mockingbird/internal/protocol"
	"github.com/mockingbird-ai/mockingbird/internal/session"
)

// handleLiveWS runs an interview over a websocket. Inbound frames are fed
// to runLive, which owns the outbound channel; a single writer goroutine
// keeps websocket writes serialized.
func (s *Server) handleLiveWS(w http.ResponseWriter, r *http.Request) {
	sessionID := strings.TrimSpace(r.URL.Query().Get("session_id"))
	if sessionID == "" {
		respondError(w, http.StatusBadRequest, "invalid_request", "query parameter session_id is required")
		return
	}
	if _, err := s.controller.Session(sessionID); err != nil {
		respondDomainError(w, err)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	s.metrics.SessionEvents.WithLabelValues("ws_connected").Inc()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	inbound := make(chan []byte, 64)
	outbound := make(chan any, 256)

	runDone := make(chan struct{})
	go func() {
		defer close(runDone)
		defer cancel()
		s.runLive(ctx, sessionID, inbound, outbound)
	}()

	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		writeFailed := false
		for msg := range outbound {
			// Drain queued messages even after a write error so runLive
			// never blocks on a dead connection.
			if writeFailed {
				continue
			}
			_ = conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := conn.WriteJSON(msg); err != nil {
				writeFailed = true
				cancel()
			}
		}
	}()

	conn.SetReadLimit(1 << 20)
	_ = conn.SetReadDeadline(time.Now().Add(120 * time.Second))
	conn.SetPongHandler(func(string) error {
		_ = conn.SetReadDeadline(time.Now().Add(120 * time.Second))
		return nil
	})

readLoop:
	for {
		msgType, data, err := conn.ReadMessage()
		if err != nil {
			break
		}
		if msgType != websocket.TextMessage {
			continue
		}
		select {
		case <-ctx.Done():
			break readLoop
		case inbound <- data:
		}
	}

	cancel()
	close(inbound)
	<-runDone
	<-writerDone
	s.metrics.SessionEvents.WithLabelValues("ws_disconnected").Inc()
}

// runLive drives one connection. It is the only sender on outbound and
// closes it on return, which lets the writer drain the completion frame
// before the connection goes away.
func (s *Server) runLive(ctx context.Context, sessionID string, inbound <-chan []byte, outbound chan<- any) {
	defer close(outbound)

	send := func(msg any) bool {
		select {
		case <-ctx.Done():
			return false
		case outbound <- msg:
			if t, ok := messageTypeOf(msg); ok {
				s.metrics.WSMessages.WithLabelValues("outbound", string(t)).Inc()
			}
			return true
		}
	}

	sess, err := s.controller.Session(sessionID)
	if err != nil {
		send(errorMessage(sessionID, err))
		return
	}
	if sess.Status == session.StatusCompleted {
		send(protocol.SessionComplete{
			Type:            protocol.TypeSessionComplete,
			SessionID:       sessionID,
			OverallScore:    sess.OverallScore,
			AggregateScores: sess.AggregateScores,
			ClosingMessage:  sess.ClosingMessage,
		})
		return
	}

	if q, number, total, err := s.controller.CurrentQuestion(sessionID); err == nil {
		if !send(questionMessage(sessionID, q, number, total)) {
			return
		}
	}

	for {
		select {
		case <-ctx.Done():
			return
		case raw, ok := <-inbound:
			if !ok {
				return
			}
			parsed, err := protocol.ParseClientMessage(raw)
			if err != nil {
				if !send(protocol.ErrorEvent{
					Type:      protocol.TypeErrorEvent,
					SessionID: sessionID,
					Code:      "invalid_client_message",
					Detail:    err.Error(),
				}) {
					return
				}
				continue
			}
			if t, ok := messageTypeOf(parsed); ok {
				s.metrics.WSMessages.WithLabelValues("inbound", string(t)).Inc()
			}

			switch m := parsed.(type) {
			case protocol.CandidateResponse:
				res, err := s.controller.SubmitResponse(ctx, interview.SubmitParams{
					SessionID:       sessionID,
					Response:        m.Text,
					DurationSeconds: m.DurationSeconds,
				})
				if err != nil {
					if !send(errorMessage(sessionID, err)) {
						return
					}
					continue
				}
				if !send(evaluationMessage(sessionID, res)) {
					return
				}
				if res.IsComplete {
					send(protocol.SessionComplete{
						Type:            protocol.TypeSessionComplete,
						SessionID:       sessionID,
						OverallScore:    res.OverallScore,
						AggregateScores: res.AggregateScores,
						ClosingMessage:  res.ClosingMessage,
					})
					return
				}
				if res.NextQuestion != nil {
					if !send(questionMessage(sessionID, *res.NextQuestion, res.QuestionNumber, res.TotalQuestions)) {
						return
					}
				}
			case protocol.ClientControl:
				if m.Action != protocol.ActionEnd {
					if !send(protocol.ErrorEvent{
						Type:      protocol.TypeErrorEvent,
						SessionID: sessionID,
						Code:      "unsupported_action",
						Detail:    "unsupported control action " + m.Action,
					}) {
						return
					}
					continue
				}
				end, err := s.controller.EndSession(ctx, sessionID)
				if err != nil {
					if !send(errorMessage(sessionID, err)) {
						return
					}
					continue
				}
				send(protocol.SessionComplete{
					Type:            protocol.TypeSessionComplete,
					SessionID:       sessionID,
					OverallScore:    end.OverallScore,
					AggregateScores: end.AggregateScores,
					ClosingMessage:  end.ClosingMessage,
				})
				return
			}
		}
	}
}

func questionMessage(sessionID string, q session.Question, number, total int) protocol.InterviewerQuestion {
	return protocol.InterviewerQuestion{
		Type:           protocol.TypeInterviewerQuestion,
		SessionID:      sessionID,
		Text:           q.Text,
		QuestionType:   q.Type,
		Topic:          q.Topic,
		QuestionNumber: number,
		TotalQuestions: total,
		IsFollowUp:     q.IsFollowUp,
	}
}

func evaluationMessage(sessionID string, res interview.TurnResult) protocol.ResponseEvaluation {
	return protocol.ResponseEvaluation{
		Type:         protocol.TypeResponseEvaluation,
		SessionID:    sessionID,
		Summary:      res.EvaluationSummary,
		Scores:       res.Scores,
		OverallScore: res.Evaluation.OverallScore,
	}
}

func errorMessage(sessionID string, err error) protocol.ErrorEvent {
	_, code := domainErrorCode(err)
	detail := err.Error()
	if code == "internal" {
		detail = "internal error"
	}
	return protocol.ErrorEvent{
		Type:      protocol.TypeErrorEvent,
		SessionID: sessionID,
		Code:      code,
		Detail:    detail,
	}
}

func messageTypeOf(v any) (protocol.MessageType, bool) {
	switch m := v.(type) {
	case protocol.CandidateResponse:
		return m.Type, true
	case protocol.ClientControl:
		return m.Type, true
	case protocol.InterviewerQuestion:
		return m.Type, true
	case protocol.ResponseEvaluation:
		return m.Type, true
	case protocol.SessionComplete:
		return m.Type, true
	case protocol.ErrorEvent:
		return m.Type, true
	default:
		return "", false
	}
}
