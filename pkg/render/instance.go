package render

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/goliatone/go-cardrender/pkg/card"
)

// ErrUnknownControl is returned by Activate when no control carries the key.
var ErrUnknownControl = errors.New("render: unknown control")

// Control describes one functional action in the last render of an
// instance. Submit, OpenUrl and unknown actions are not controls.
type Control struct {
	Key   string `json:"key"`
	Type  string `json:"type"`
	Title string `json:"title"`
	// Expanded is set for ShowCard controls whose nested card is mounted.
	Expanded bool `json:"expanded,omitempty"`
	// Targets lists the element ids a ToggleVisibility control affects.
	Targets []string `json:"targets,omitempty"`
}

// Instance is one mounted card with its own visibility state and expanded
// ShowCard sub-instances. It is not safe for concurrent use.
type Instance struct {
	card   card.Card
	cfg    config
	prefix string

	visibility map[string]bool
	expanded   map[string]*Instance

	controls []Control
	handlers map[string]func()
	rendered bool
}

// New mounts c. The instance starts with every element visible and every
// ShowCard collapsed.
func New(c card.Card, options ...Option) *Instance {
	return newInstance(c, newConfig(options), "")
}

func newInstance(c card.Card, cfg config, prefix string) *Instance {
	return &Instance{
		card:       c,
		cfg:        cfg,
		prefix:     prefix,
		visibility: make(map[string]bool),
		expanded:   make(map[string]*Instance),
		handlers:   make(map[string]func()),
	}
}

// RenderCard renders c once with a throwaway instance.
func RenderCard(c card.Card, options ...Option) string {
	return New(c, options...).HTML()
}

// Card returns the mounted card.
func (i *Instance) Card() card.Card {
	return i.card
}

// Render writes the current presentation to w. Only writer failures are
// reported.
func (i *Instance) Render(w io.Writer) error {
	var buf bytes.Buffer
	i.render(&buf)
	if _, err := w.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("render: write card: %w", err)
	}
	return nil
}

// HTML returns the current presentation.
func (i *Instance) HTML() string {
	var buf bytes.Buffer
	i.render(&buf)
	return buf.String()
}

// Controls lists the functional controls of the current presentation,
// including those of expanded nested cards, in document order.
func (i *Instance) Controls() []Control {
	i.ensureRendered()
	out := make([]Control, len(i.controls))
	copy(out, i.controls)
	return out
}

// Activate applies the action behind key, as if the user pressed it.
func (i *Instance) Activate(key string) error {
	i.ensureRendered()
	handler, ok := i.handlers[key]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownControl, key)
	}
	i.cfg.logger.Debug("activate control", "key", key)
	handler()
	// Refresh the control table so controls of newly mounted cards resolve.
	i.render(&bytes.Buffer{})
	return nil
}

// Visible reports the resolved visibility of id in this instance. Ids that
// were never toggled are visible.
func (i *Instance) Visible(id string) bool {
	if shown, ok := i.visibility[id]; ok {
		return shown
	}
	return true
}

func (i *Instance) ensureRendered() {
	if !i.rendered {
		i.render(&bytes.Buffer{})
	}
}

func (i *Instance) render(buf *bytes.Buffer) {
	i.controls = i.controls[:0]
	i.handlers = make(map[string]func())
	i.rendered = true

	if i.card.Empty() {
		return
	}

	buf.WriteString(`<div`)
	writeClass(buf, ClassRoot)
	buf.WriteString(` data-card-root`)
	writeOptionalAttr(buf, "data-card-version", i.card.Version)
	buf.WriteString(`><div`)
	writeClass(buf, ClassBody)
	buf.WriteString(`>`)
	for index, node := range i.card.Body {
		i.renderNode(buf, node, index, joinKey(i.prefix, "body", index))
	}
	buf.WriteString(`</div>`)
	if len(i.card.Actions) > 0 {
		i.renderActionSet(buf, i.card.Actions, joinKey(i.prefix, "actions"))
	}
	buf.WriteString(`</div>`)
}

func (i *Instance) addControl(control Control, handler func()) {
	i.controls = append(i.controls, control)
	i.handlers[control.Key] = handler
}

// dropControls forgets the controls registered after mark, used when the
// markup that carried them is discarded.
func (i *Instance) dropControls(mark int) {
	for _, control := range i.controls[mark:] {
		delete(i.handlers, control.Key)
	}
	i.controls = i.controls[:mark]
}

// adopt merges the control table of a nested instance into this one.
func (i *Instance) adopt(nested *Instance) {
	i.controls = append(i.controls, nested.controls...)
	for key, handler := range nested.handlers {
		i.handlers[key] = handler
	}
}
