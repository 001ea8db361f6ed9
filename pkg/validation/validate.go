// Package validation checks card documents before they are rendered. Errors
// describe roots that cannot be treated as a card; warnings point at content
// the renderer will degrade, such as unknown types or dangling toggle
// targets.
package validation

import (
	"fmt"

	"github.com/goliatone/go-cardrender/pkg/card"
)

// Supported schema versions.
const (
	SchemaV15 = "1.5"
	SchemaV16 = "1.6"
)

// Issue is a finding tied to a dotted path inside the document. The root is
// addressed by the empty path.
type Issue struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

// Result collects the findings for one document.
type Result struct {
	Schema   string  `json:"schema"`
	Errors   []Issue `json:"errors"`
	Warnings []Issue `json:"warnings"`
}

// Valid reports whether the document has no errors. Warnings do not count.
func (r Result) Valid() bool {
	return len(r.Errors) == 0
}

type Option func(*config)

type config struct {
	known     map[string]struct{}
	structure bool
}

// WithKnownTypes treats tags as recognised even though they are outside the
// built-in catalogue, typically the tags of registered overrides.
func WithKnownTypes(tags ...string) Option {
	return func(cfg *config) {
		for _, tag := range tags {
			cfg.known[tag] = struct{}{}
		}
	}
}

// Validate inspects a decoded JSON or YAML document.
func Validate(doc any, options ...Option) Result {
	cfg := config{known: make(map[string]struct{})}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}

	result := Result{Schema: SchemaV16, Errors: []Issue{}, Warnings: []Issue{}}

	root, ok := doc.(map[string]any)
	if !ok {
		result.Errors = append(result.Errors, Issue{Path: "", Message: "Card must be an object"})
		return result
	}

	if root["type"] != card.TypeAdaptiveCard {
		result.Errors = append(result.Errors, Issue{Path: "type", Message: "type must be AdaptiveCard"})
	}
	switch root["version"] {
	case SchemaV15:
		result.Schema = SchemaV15
	case SchemaV16:
	default:
		result.Errors = append(result.Errors, Issue{Path: "version", Message: "version must be 1.5 or 1.6"})
	}
	if _, ok := root["body"].([]any); !ok {
		result.Errors = append(result.Errors, Issue{Path: "body", Message: "body must be an array"})
	}

	w := walker{cfg: cfg}
	w.card(card.Parse(root), "")
	result.Warnings = append(result.Warnings, w.warnings...)
	if cfg.structure {
		result.Warnings = append(result.Warnings, CheckStructure(root)...)
	}
	return result
}

// walker collects warnings. Ids and toggle targets are scoped per card,
// matching how each mounted card owns its own visibility state.
type walker struct {
	cfg      config
	warnings []Issue
}

type scope struct {
	ids     map[string]string
	targets []targetRef
}

type targetRef struct {
	path string
	id   string
}

func (w *walker) warn(path, format string, args ...any) {
	w.warnings = append(w.warnings, Issue{Path: path, Message: fmt.Sprintf(format, args...)})
}

func (w *walker) card(c card.Card, prefix string) {
	s := &scope{ids: make(map[string]string)}
	for index, node := range c.Body {
		w.node(s, node, join(prefix, "body", index))
	}
	w.actions(s, c.Actions, join(prefix, "actions"))

	for _, target := range s.targets {
		if _, ok := s.ids[target.id]; !ok {
			w.warn(target.path, "toggle target %q does not match any element id", target.id)
		}
	}
}

func (w *walker) known(tag string) bool {
	_, ok := w.cfg.known[tag]
	return ok
}

func (w *walker) node(s *scope, node card.Node, path string) {
	if id := node.NodeID(); id != "" {
		if first, dup := s.ids[id]; dup {
			w.warn(path, "duplicate id %q (first used at %s)", id, first)
		} else {
			s.ids[id] = path
		}
	}

	switch n := node.(type) {
	case card.Unknown:
		switch {
		case n.Type == "":
			w.warn(path, "node type is missing")
		case !w.known(n.Type):
			w.warn(path, "unknown node type %q", n.Type)
		}
	case card.Container:
		for index, item := range n.Items {
			w.node(s, item, join(path, "items", index))
		}
	case card.ColumnSet:
		for index, column := range n.Columns {
			w.node(s, column, join(path, "columns", index))
		}
	case card.Column:
		for index, item := range n.Items {
			w.node(s, item, join(path, "items", index))
		}
	case card.ImageSet:
		for index, image := range n.Images {
			w.node(s, image, join(path, "images", index))
		}
	case card.ActionSet:
		w.actions(s, n.Actions, join(path, "actions"))
	}
}

func (w *walker) actions(s *scope, actions []card.Action, base string) {
	for index, action := range actions {
		path := join(base, index)
		switch a := action.(type) {
		case card.ShowCard:
			if a.Card != nil {
				w.card(*a.Card, join(path, "card"))
			}
		case card.ToggleVisibility:
			for targetIndex, target := range a.Targets {
				s.targets = append(s.targets, targetRef{
					path: join(path, "targetElements", targetIndex),
					id:   target.ElementID,
				})
			}
		case card.UnknownAction:
			if !w.known(a.Type) {
				w.warn(path, "unknown action type %q", a.Type)
			}
		}
	}
}

func join(prefix string, segments ...any) string {
	out := prefix
	for _, segment := range segments {
		if out != "" {
			out += "."
		}
		out += fmt.Sprint(segment)
	}
	return out
}
