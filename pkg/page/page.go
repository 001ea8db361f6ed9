package page

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"

	"github.com/goliatone/go-cardrender/pkg/designer"
	rendertemplate "github.com/goliatone/go-cardrender/pkg/render/template"
	"github.com/goliatone/go-cardrender/pkg/render/template/pongo"
	"github.com/goliatone/go-cardrender/pkg/validation"
)

// DefaultRuntimePath is where the card runtime script is served from.
const DefaultRuntimePath = "/runtime/card-runtime.js"

type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
	runtimePath      string
	stylesheet       string
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithRuntimePath changes the script URL; empty omits the script tag.
func WithRuntimePath(path string) Option {
	return func(cfg *config) {
		cfg.runtimePath = path
	}
}

// WithStylesheet links a stylesheet from every page.
func WithStylesheet(href string) Option {
	return func(cfg *config) {
		cfg.stylesheet = href
	}
}

// Renderer wraps rendered card fragments into HTML pages.
type Renderer struct {
	templates   rendertemplate.TemplateRenderer
	runtimePath string
	stylesheet  string
}

func New(options ...Option) (*Renderer, error) {
	cfg := config{templateFS: TemplatesFS(), runtimePath: DefaultRuntimePath}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		engine, err := pongo.New(
			pongo.WithFS(cfg.templateFS),
			pongo.WithExtension(".tmpl"),
		)
		if err != nil {
			return nil, fmt.Errorf("page: configure template renderer: %w", err)
		}
		renderer = engine
	}

	return &Renderer{templates: renderer, runtimePath: cfg.runtimePath, stylesheet: cfg.stylesheet}, nil
}

// Preview wraps a rendered card fragment in a standalone page.
func (r *Renderer) Preview(title, cardHTML string) ([]byte, error) {
	if title == "" {
		title = "Card preview"
	}
	return r.render(TemplatePreview, map[string]any{
		"title":     title,
		"card_html": cardHTML,
	})
}

// EditorView is everything the editor page shows.
type EditorView struct {
	State           designer.State
	CardHTML        string
	WorkflowEnabled bool
}

// Editor renders the designer page for view.
func (r *Renderer) Editor(view EditorView) ([]byte, error) {
	cardJSON := []byte("null")
	if view.State.Document.CardJSON != nil {
		raw, err := json.Marshal(view.State.Document.CardJSON)
		if err != nil {
			return nil, fmt.Errorf("page: encode card: %w", err)
		}
		cardJSON = raw
	}

	validationData, err := asMap(view.State.Validation)
	if err != nil {
		return nil, err
	}
	sessionData, err := asMap(view.State.Session)
	if err != nil {
		return nil, err
	}
	panels, err := asMap(view.State.UI.Panels)
	if err != nil {
		return nil, err
	}

	return r.render(TemplateEditor, map[string]any{
		"title":            "Card designer",
		"card_html":        view.CardHTML,
		"card_json":        string(cardJSON),
		"session":          sessionData,
		"panels":           panels,
		"suggestions":      view.State.Suggestions,
		"validation":       validationData,
		"workflow_enabled": view.WorkflowEnabled,
	})
}

// ValidationPanel renders the validation summary fragment. A nil result
// renders the "not validated" state.
func (r *Renderer) ValidationPanel(result *validation.Result) ([]byte, error) {
	data, err := asMap(result)
	if err != nil {
		return nil, err
	}
	return r.render(TemplateValidation, map[string]any{"validation": data})
}

func (r *Renderer) render(name string, data map[string]any) ([]byte, error) {
	if r.templates == nil {
		return nil, fmt.Errorf("page: template renderer is nil")
	}
	if _, ok := data["runtime"]; !ok {
		data["runtime"] = r.runtimePath
	}
	if _, ok := data["stylesheet"]; !ok {
		data["stylesheet"] = r.stylesheet
	}
	out, err := r.templates.RenderTemplate(name, data)
	if err != nil {
		return nil, fmt.Errorf("page: render %s: %w", name, err)
	}
	return []byte(out), nil
}

// asMap converts tagged structs into the map form templates index by JSON
// field name. A nil pointer yields nil.
func asMap(v any) (map[string]any, error) {
	switch typed := v.(type) {
	case nil:
		return nil, nil
	case *validation.Result:
		if typed == nil {
			return nil, nil
		}
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("page: encode view data: %w", err)
	}
	var out map[string]any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("page: decode view data: %w", err)
	}
	return out, nil
}
