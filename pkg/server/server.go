package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/goliatone/go-cardrender/pkg/card"
	"github.com/goliatone/go-cardrender/pkg/designer"
	"github.com/goliatone/go-cardrender/pkg/page"
	"github.com/goliatone/go-cardrender/pkg/render"
	"github.com/goliatone/go-cardrender/pkg/validation"
	"github.com/goliatone/go-cardrender/pkg/workflow"
)

const (
	defaultMaxBody = 1 << 20
	contentHTML    = "text/html; charset=utf-8"
	contentJSON    = "application/json"
)

// Server exposes rendering, validation, interactive sessions and the
// workflow proxy over HTTP.
type Server struct {
	designer *designer.Designer
	workflow *workflow.Client
	pages    *page.Renderer
	registry *render.Registry
	logger   *slog.Logger
	runtime  fs.FS
	maxBody  int64

	registerer prometheus.Registerer
	gatherer   prometheus.Gatherer
	requests   *prometheus.CounterVec

	sessions *sessionStore
}

// New builds a server. Without WithDesigner an in-memory designer is used;
// without WithWorkflow the workflow routes answer 503.
func New(options ...Option) (*Server, error) {
	s := &Server{
		registry: render.DefaultRegistry(),
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		maxBody:  defaultMaxBody,
		sessions: newSessionStore(),
	}
	for _, opt := range options {
		if opt != nil {
			opt(s)
		}
	}

	if s.pages == nil {
		pages, err := page.New()
		if err != nil {
			return nil, fmt.Errorf("server: %w", err)
		}
		s.pages = pages
	}
	if s.designer == nil {
		s.designer = designer.New(context.Background(), designer.NewMemoryStore(), designer.WithLogger(s.logger))
	}

	s.requests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "cardrender",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "HTTP requests by route pattern and status code.",
	}, []string{"route", "code"})
	if s.registerer != nil {
		if err := s.registerer.Register(s.requests); err != nil {
			return nil, fmt.Errorf("server: register metrics: %w", err)
		}
	}
	return s, nil
}

// Handler returns the routed handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.instrument)

	r.Get("/", s.handleEditor)

	r.Route("/api", func(r chi.Router) {
		r.Post("/render", s.handleRender)
		r.Post("/validate", s.handleValidate)
		r.Get("/registry", s.handleRegistry)

		r.Get("/designer", s.handleDesignerState)
		r.Put("/designer/card", s.handleDesignerCard)
		r.Delete("/designer/session", s.handleDesignerReset)

		r.Post("/sessions", s.handleCreateSession)
		r.Get("/sessions/{id}", s.handleGetSession)
		r.Post("/sessions/{id}/controls/{key}", s.handleActivate)
		r.Delete("/sessions/{id}", s.handleDeleteSession)

		r.Post("/workflows/{op}", s.handleWorkflow)
	})

	if s.gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	}
	if s.runtime != nil {
		r.Handle("/runtime/*", http.StripPrefix("/runtime/", http.FileServerFS(s.runtime)))
	}
	return r
}

func (s *Server) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		s.requests.WithLabelValues(route, strconv.Itoa(status)).Inc()
		s.logger.Debug("http request",
			"method", r.Method,
			"route", route,
			"status", status,
			"request_id", middleware.GetReqID(r.Context()),
			"duration", time.Since(start),
		)
	})
}

func (s *Server) renderOptions() []render.Option {
	return []render.Option{render.WithRegistry(s.registry), render.WithLogger(s.logger)}
}

func (s *Server) handleEditor(w http.ResponseWriter, r *http.Request) {
	state := s.designer.State()
	cardHTML := ""
	if state.Document.CardJSON != nil {
		cardHTML = render.RenderCard(card.Parse(state.Document.CardJSON), s.renderOptions()...)
	}
	out, err := s.pages.Editor(page.EditorView{
		State:           state,
		CardHTML:        cardHTML,
		WorkflowEnabled: s.workflow != nil && s.workflow.Enabled(),
	})
	if err != nil {
		s.fail(w, http.StatusInternalServerError, err)
		return
	}
	writeBody(w, http.StatusOK, contentHTML, out)
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	doc, err := s.decodeDocument(w, r)
	if err != nil {
		s.fail(w, http.StatusBadRequest, err)
		return
	}
	fragment := render.RenderCard(card.Parse(doc), s.renderOptions()...)

	if r.URL.Query().Get("page") == "1" {
		out, err := s.pages.Preview(r.URL.Query().Get("title"), fragment)
		if err != nil {
			s.fail(w, http.StatusInternalServerError, err)
			return
		}
		writeBody(w, http.StatusOK, contentHTML, out)
		return
	}
	writeBody(w, http.StatusOK, contentHTML, []byte(fragment))
}

func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	doc, err := s.decodeDocument(w, r)
	if err != nil {
		s.fail(w, http.StatusBadRequest, err)
		return
	}
	options := []validation.Option{validation.WithKnownTypes(s.registry.Tags()...)}
	if r.URL.Query().Get("strict") == "1" {
		options = append(options, validation.WithStructureCheck())
	}
	result := validation.Validate(doc, options...)
	if err := s.designer.SetValidation(r.Context(), result); err != nil {
		s.logger.Warn("store validation result", "err", err)
	}

	if r.URL.Query().Get("format") == "html" {
		out, err := s.pages.ValidationPanel(&result)
		if err != nil {
			s.fail(w, http.StatusInternalServerError, err)
			return
		}
		writeBody(w, http.StatusOK, contentHTML, out)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleRegistry(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"tags": s.registry.Tags()})
}

func (s *Server) handleDesignerState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.designer.State())
}

func (s *Server) handleDesignerCard(w http.ResponseWriter, r *http.Request) {
	doc, err := s.decodeDocument(w, r)
	if err != nil {
		s.fail(w, http.StatusBadRequest, err)
		return
	}
	var cardJSON map[string]any
	if doc != nil {
		m, ok := doc.(map[string]any)
		if !ok {
			s.fail(w, http.StatusBadRequest, errors.New("card must be a JSON object or null"))
			return
		}
		cardJSON = m
	}
	if err := s.designer.SetCard(r.Context(), cardJSON); err != nil {
		s.fail(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, s.designer.State())
}

func (s *Server) handleDesignerReset(w http.ResponseWriter, r *http.Request) {
	if err := s.designer.ResetSession(r.Context()); err != nil {
		s.fail(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, s.designer.State())
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	doc, err := s.decodeDocument(w, r)
	if err != nil {
		s.fail(w, http.StatusBadRequest, err)
		return
	}
	sess := s.sessions.create(card.Parse(doc), s.renderOptions()...)
	sess.mu.Lock()
	view := sess.view()
	sess.mu.Unlock()
	s.logger.Debug("session created", "session", sess.id, "sessions", s.sessions.len())
	writeJSON(w, http.StatusCreated, view)
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.sessions.get(chi.URLParam(r, "id"))
	if !ok {
		s.fail(w, http.StatusNotFound, errors.New("session not found"))
		return
	}
	sess.mu.Lock()
	view := sess.view()
	sess.mu.Unlock()
	writeJSON(w, http.StatusOK, view)
}

func (s *Server) handleActivate(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.sessions.get(chi.URLParam(r, "id"))
	if !ok {
		s.fail(w, http.StatusNotFound, errors.New("session not found"))
		return
	}

	sess.mu.Lock()
	err := sess.instance.Activate(chi.URLParam(r, "key"))
	view := sess.view()
	sess.mu.Unlock()

	if errors.Is(err, render.ErrUnknownControl) {
		s.fail(w, http.StatusNotFound, err)
		return
	}
	if err != nil {
		s.fail(w, http.StatusInternalServerError, err)
		return
	}
	if wantsHTML(r) {
		writeBody(w, http.StatusOK, contentHTML, []byte(view.HTML))
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	if !s.sessions.remove(chi.URLParam(r, "id")) {
		s.fail(w, http.StatusNotFound, errors.New("session not found"))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// decodeDocument reads a JSON body into generic values, the shape
// card.Parse and validation.Validate expect.
func (s *Server) decodeDocument(w http.ResponseWriter, r *http.Request) (any, error) {
	var doc any
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, s.maxBody)).Decode(&doc); err != nil {
		return nil, fmt.Errorf("invalid JSON body: %w", err)
	}
	return doc, nil
}

func (s *Server) fail(w http.ResponseWriter, status int, err error) {
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "status", status, "err", err)
	} else {
		s.logger.Debug("request rejected", "status", status, "err", err)
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func wantsHTML(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "text/html") || r.URL.Query().Get("format") == "html"
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	raw, err := json.Marshal(v)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeBody(w, status, contentJSON, raw)
}

func writeBody(w http.ResponseWriter, status int, contentType string, body []byte) {
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(status)
	_, _ = w.Write(body)
}
