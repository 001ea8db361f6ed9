package render

import (
	"bytes"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-cardrender/pkg/card"
)

// NodeRenderer writes the presentation of a single node into buf. index is
// the node's position among its siblings. scope is bound to the instance
// being rendered; see Scope.Builtin.
type NodeRenderer func(scope *Scope, buf *bytes.Buffer, node card.Node, index int) error

// Registry maps node type tags to override renderers. Registering a tag that
// is already present replaces the previous entry.
type Registry struct {
	mu        sync.RWMutex
	renderers map[string]NodeRenderer
}

// NewRegistry creates an empty registry, isolated from the process default.
func NewRegistry() *Registry {
	return &Registry{
		renderers: make(map[string]NodeRenderer),
	}
}

// Register stores fn for tag. An empty tag or nil renderer is rejected.
func (r *Registry) Register(tag string, fn NodeRenderer) error {
	if strings.TrimSpace(tag) == "" {
		return fmt.Errorf("render: override tag is required")
	}
	if fn == nil {
		return fmt.Errorf("render: override renderer for %q is required", tag)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.renderers[tag] = fn
	return nil
}

// MustRegister panics on registration failure. Useful for init-time wiring.
func (r *Registry) MustRegister(tag string, fn NodeRenderer) {
	if err := r.Register(tag, fn); err != nil {
		panic(err)
	}
}

// Unregister removes the override for tag. It reports whether one existed.
func (r *Registry) Unregister(tag string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.renderers[tag]
	delete(r.renderers, tag)
	return ok
}

// Lookup returns the override registered for tag.
func (r *Registry) Lookup(tag string) (NodeRenderer, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	fn, ok := r.renderers[tag]
	return fn, ok
}

// Tags returns the registered tags in sorted order.
func (r *Registry) Tags() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tags := make([]string, 0, len(r.renderers))
	for tag := range r.renderers {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}

// Reset drops every override.
func (r *Registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.renderers = make(map[string]NodeRenderer)
}

var defaultRegistry = NewRegistry()

// DefaultRegistry returns the process-wide registry consulted by instances
// created without WithRegistry.
func DefaultRegistry() *Registry {
	return defaultRegistry
}

// Register installs an override in the process-wide registry.
func Register(tag string, fn NodeRenderer) error {
	return defaultRegistry.Register(tag, fn)
}

// Unregister removes an override from the process-wide registry.
func Unregister(tag string) bool {
	return defaultRegistry.Unregister(tag)
}

// Lookup consults the process-wide registry.
func Lookup(tag string) (NodeRenderer, bool) {
	return defaultRegistry.Lookup(tag)
}

// RegisteredTags lists the tags overridden in the process-wide registry.
func RegisteredTags() []string {
	return defaultRegistry.Tags()
}

// ResetRegistry clears the process-wide registry. Tests use it to avoid
// leaking overrides between cases.
func ResetRegistry() {
	defaultRegistry.Reset()
}
