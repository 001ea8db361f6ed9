package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/goliatone/go-cardrender/pkg/designer"
	"github.com/goliatone/go-cardrender/pkg/render"
	"github.com/goliatone/go-cardrender/pkg/workflow"
)

const workflowErrorTitle = "Workflow request failed"

// handleWorkflow proxies to the workflow service. Generated or continued
// cards become the designer document, and the correlation id is kept on
// the designer session.
func (s *Server) handleWorkflow(w http.ResponseWriter, r *http.Request) {
	if s.workflow == nil {
		s.workflowFailed(w, http.StatusServiceUnavailable, workflow.ErrDisabled)
		return
	}

	ctx := r.Context()
	var (
		resp     any
		cardJSON map[string]any
		suggest  []string
		corrID   string
		err      error
	)

	switch op := chi.URLParam(r, "op"); op {
	case "generate":
		var payload workflow.GeneratePayload
		if err := s.decodePayload(w, r, &payload); err != nil {
			s.fail(w, http.StatusBadRequest, err)
			return
		}
		if payload.Mode == "" {
			payload.Mode = s.designer.State().Session.Mode
		}
		var out workflow.GenerateResponse
		out, err = s.workflow.Generate(ctx, payload)
		resp, cardJSON, suggest, corrID = out, out.CardJSON, out.ContinuationSuggestions, out.CorrelationID
	case "continue":
		var payload workflow.ContinuePayload
		if err := s.decodePayload(w, r, &payload); err != nil {
			s.fail(w, http.StatusBadRequest, err)
			return
		}
		state := s.designer.State()
		if payload.PriorContent == nil {
			payload.PriorContent = state.Document.CardJSON
		}
		if payload.JottID == "" {
			payload.JottID = state.Session.JottID
		}
		var out workflow.ContinueResponse
		out, err = s.workflow.Continue(ctx, payload)
		resp, cardJSON, suggest, corrID = out, out.UpdatedCardJSON, out.Suggestions, out.CorrelationID
	case "review":
		var payload workflow.ReviewPayload
		if err := s.decodePayload(w, r, &payload); err != nil {
			s.fail(w, http.StatusBadRequest, err)
			return
		}
		var out workflow.ReviewResponse
		out, err = s.workflow.Review(ctx, payload)
		resp, corrID = out, out.CorrelationID
	default:
		s.fail(w, http.StatusNotFound, fmt.Errorf("unknown workflow operation %q", op))
		return
	}

	var payloadErr *workflow.PayloadError
	switch {
	case err == nil:
	case errors.As(err, &payloadErr):
		s.fail(w, http.StatusBadRequest, err)
		return
	case errors.Is(err, workflow.ErrDisabled), errors.Is(err, workflow.ErrMissingBaseURL):
		s.workflowFailed(w, http.StatusServiceUnavailable, err)
		return
	default:
		s.workflowFailed(w, http.StatusBadGateway, err)
		return
	}

	s.recordWorkflowResult(ctx, cardJSON, suggest, corrID)
	if isForm(r) {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) recordWorkflowResult(ctx context.Context, cardJSON map[string]any, suggestions []string, correlationID string) {
	patch := designer.Patch{}
	if cardJSON != nil {
		patch.Document = &designer.DocumentPatch{CardJSON: cardJSON}
	}
	if suggestions != nil {
		patch.Suggestions = &suggestions
	}
	if correlationID != "" {
		patch.Session = &designer.SessionPatch{CorrelationID: &correlationID}
	}
	if err := s.designer.Update(ctx, patch); err != nil {
		s.logger.Warn("store workflow result", "err", err)
	}
}

// workflowFailed answers with the labeled error panel so the editor can
// show it in place.
func (s *Server) workflowFailed(w http.ResponseWriter, status int, err error) {
	s.logger.Warn("workflow request failed", "status", status, "err", err)
	panel := render.ErrorPanel(workflowErrorTitle, err.Error(), workflow.CorrelationID(err))
	writeBody(w, status, contentHTML, []byte(panel))
}

// decodePayload accepts JSON, or form fields for the editor's plain HTML
// forms.
func (s *Server) decodePayload(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxBody)
	if !isForm(r) {
		if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
			return fmt.Errorf("invalid JSON body: %w", err)
		}
		return nil
	}

	if err := r.ParseForm(); err != nil {
		return fmt.Errorf("invalid form body: %w", err)
	}
	switch payload := dst.(type) {
	case *workflow.GeneratePayload:
		payload.Prompt = r.PostForm.Get("prompt")
		payload.Mode = r.PostForm.Get("mode")
		if level := r.PostForm.Get("draftLevel"); level != "" {
			n, err := strconv.Atoi(level)
			if err != nil {
				return fmt.Errorf("invalid draftLevel: %w", err)
			}
			payload.DraftLevel = n
		}
	case *workflow.ContinuePayload:
		payload.JottID = r.PostForm.Get("jottId")
		payload.DesiredAction = r.PostForm.Get("desiredAction")
	case *workflow.ReviewPayload:
		payload.WorkflowID = r.PostForm.Get("workflowId")
		payload.Step = r.PostForm.Get("step")
		payload.Decision = r.PostForm.Get("decision")
		payload.Feedback = r.PostForm.Get("feedback")
	}
	return nil
}

func isForm(r *http.Request) bool {
	return strings.HasPrefix(r.Header.Get("Content-Type"), "application/x-www-form-urlencoded")
}
