package render

import (
	"io"
	"log/slog"

	"github.com/microcosm-cc/bluemonday"
)

type Option func(*config)

type config struct {
	registry *Registry
	policy   *bluemonday.Policy
	urls     *bluemonday.Policy
	logger   *slog.Logger
	classes  Classes
}

func newConfig(options []Option) config {
	cfg := config{
		registry: defaultRegistry,
		classes:  DefaultClasses(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	if cfg.urls == nil {
		cfg.urls = URLPolicy()
	}
	if cfg.logger == nil {
		cfg.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return cfg
}

// WithRegistry makes the instance consult registry instead of the process
// default. Nested ShowCard instances inherit it.
func WithRegistry(registry *Registry) Option {
	return func(cfg *config) {
		if registry != nil {
			cfg.registry = registry
		}
	}
}

// WithOverridePolicy sanitizes override output through policy before it is
// spliced into the card. Built-in output is never filtered.
func WithOverridePolicy(policy *bluemonday.Policy) Option {
	return func(cfg *config) {
		cfg.policy = policy
	}
}

// WithURLPolicy replaces the policy that filters link, image and media
// URLs. A URL is written only when policy keeps it as an anchor href.
func WithURLPolicy(policy *bluemonday.Policy) Option {
	return func(cfg *config) {
		cfg.urls = policy
	}
}

// WithLogger routes dispatch and activation diagnostics to logger.
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *config) {
		if logger != nil {
			cfg.logger = logger
		}
	}
}

// WithClasses replaces the attribute lookup tables.
func WithClasses(classes Classes) Option {
	return func(cfg *config) {
		cfg.classes = classes
	}
}

// OverridePolicy returns a bluemonday policy suited to override output: user
// generated content plus the class and data attributes card markup relies on.
func OverridePolicy() *bluemonday.Policy {
	policy := bluemonday.UGCPolicy()
	policy.AllowAttrs("class").Globally()
	policy.AllowDataAttributes()
	policy.AllowElements("video", "audio", "source", "button", "input", "select", "option", "textarea", "label")
	policy.AllowAttrs("src", "type").OnElements("source")
	policy.AllowAttrs("controls", "poster").OnElements("video", "audio")
	policy.AllowAttrs("type", "name", "value", "checked", "placeholder").OnElements("input")
	policy.AllowAttrs("name", "multiple").OnElements("select")
	policy.AllowAttrs("value", "selected").OnElements("option")
	return policy
}
