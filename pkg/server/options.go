package server

import (
	"io/fs"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/goliatone/go-cardrender/pkg/designer"
	"github.com/goliatone/go-cardrender/pkg/page"
	"github.com/goliatone/go-cardrender/pkg/render"
	"github.com/goliatone/go-cardrender/pkg/workflow"
)

type Option func(*Server)

// WithDesigner backs the editor page and the /api/designer routes.
func WithDesigner(d *designer.Designer) Option {
	return func(s *Server) {
		if d != nil {
			s.designer = d
		}
	}
}

// WithWorkflow enables the /api/workflows proxy.
func WithWorkflow(client *workflow.Client) Option {
	return func(s *Server) {
		if client != nil {
			s.workflow = client
		}
	}
}

func WithPageRenderer(r *page.Renderer) Option {
	return func(s *Server) {
		if r != nil {
			s.pages = r
		}
	}
}

// WithRegistry renders with registry instead of the process-wide one.
func WithRegistry(registry *render.Registry) Option {
	return func(s *Server) {
		if registry != nil {
			s.registry = registry
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithMetrics registers the HTTP collectors with reg and serves gatherer
// on /metrics.
func WithMetrics(reg prometheus.Registerer, gatherer prometheus.Gatherer) Option {
	return func(s *Server) {
		s.registerer = reg
		s.gatherer = gatherer
	}
}

// WithRuntimeFS serves files on /runtime/.
func WithRuntimeFS(files fs.FS) Option {
	return func(s *Server) {
		s.runtime = files
	}
}

// WithMaxBodyBytes caps request bodies.
func WithMaxBodyBytes(n int64) Option {
	return func(s *Server) {
		if n > 0 {
			s.maxBody = n
		}
	}
}

// WithSessionLimits bounds the interactive sessions kept in memory. Sessions
// idle for longer than ttl expire; once max sessions exist the least
// recently used one is evicted. Zero disables the respective limit.
func WithSessionLimits(ttl time.Duration, max int) Option {
	return func(s *Server) {
		s.sessions.ttl = ttl
		s.sessions.max = max
	}
}
