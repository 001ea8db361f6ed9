package render

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/goliatone/go-cardrender/pkg/card"
)

// renderNode resolves one node: hidden nodes are dropped, overrides win over
// built-ins, and anything else becomes a placeholder.
func (i *Instance) renderNode(buf *bytes.Buffer, node card.Node, index int, path string) {
	if node == nil {
		writePlaceholder(buf, "Unsupported node", "")
		return
	}
	if id := node.NodeID(); id != "" && !i.Visible(id) {
		return
	}
	if fn, ok := i.cfg.registry.Lookup(node.NodeType()); ok {
		i.renderOverride(buf, fn, node, index, path)
		return
	}
	i.renderBuiltin(buf, node, path)
}

func (i *Instance) renderOverride(buf *bytes.Buffer, fn NodeRenderer, node card.Node, index int, path string) {
	var out bytes.Buffer
	mark := len(i.controls)
	if err := callOverride(fn, &Scope{inst: i, path: path}, &out, node, index); err != nil {
		i.cfg.logger.Warn("override renderer failed", "type", node.NodeType(), "id", node.NodeID(), "err", err)
		i.dropControls(mark)
		writePlaceholder(buf, "Renderer failed", node.NodeType())
		return
	}
	if i.cfg.policy != nil {
		buf.WriteString(i.cfg.policy.Sanitize(out.String()))
		return
	}
	buf.Write(out.Bytes())
}

// callOverride contains panics raised by third-party renderers so one bad
// override only costs its own node.
func callOverride(fn NodeRenderer, scope *Scope, out *bytes.Buffer, node card.Node, index int) (err error) {
	defer func() {
		if recovered := recover(); recovered != nil {
			err = fmt.Errorf("render: override panicked: %v", recovered)
		}
	}()
	return fn(scope, out, node, index)
}

func (i *Instance) renderBuiltin(buf *bytes.Buffer, node card.Node, path string) {
	switch n := node.(type) {
	case card.TextBlock:
		i.renderTextBlock(buf, n)
	case card.Image:
		i.renderImage(buf, n, "")
	case card.Container:
		i.renderContainer(buf, n, path)
	case card.ColumnSet:
		i.renderColumnSet(buf, n, path)
	case card.Column:
		i.renderColumn(buf, n, path)
	case card.ActionSet:
		i.renderActionSet(buf, n.Actions, joinKey(path, "actions"))
	case card.FactSet:
		i.renderFactSet(buf, n)
	case card.ImageSet:
		i.renderImageSet(buf, n)
	case card.Media:
		i.renderMedia(buf, n)
	case card.RichTextBlock:
		i.renderRichText(buf, n)
	case card.InputText:
		i.renderInputText(buf, n)
	case card.InputNumber:
		i.renderInputNumber(buf, n)
	case card.InputToggle:
		i.renderInputToggle(buf, n)
	case card.InputChoiceSet:
		i.renderChoiceSet(buf, n)
	case card.InputDate:
		i.renderInputTemporal(buf, "date", n.Base, n.Placeholder, n.Value)
	case card.InputTime:
		i.renderInputTemporal(buf, "time", n.Base, n.Placeholder, n.Value)
	default:
		writePlaceholder(buf, "Unsupported node", node.NodeType())
	}
}

func writePlaceholder(buf *bytes.Buffer, label, tag string) {
	shown := tag
	if shown == "" {
		shown = "unknown"
	}
	buf.WriteString(`<div`)
	writeClass(buf, ClassPlaceholder)
	writeAttr(buf, "data-card-unsupported", shown)
	buf.WriteString(`>[`)
	writeText(buf, label)
	buf.WriteString(`: `)
	writeText(buf, shown)
	buf.WriteString(`]</div>`)
}

// Scope ties an override call to the instance rendering the node. Output
// produced through it follows that instance's visibility state and registry,
// and its controls can be activated on the instance.
type Scope struct {
	inst *Instance
	path string
}

// Path is the position of the node in the card, such as "body.2" or
// "actions.0.card.body.1".
func (s *Scope) Path() string {
	if s == nil {
		return ""
	}
	return s.path
}

// Builtin renders node with the built-in catalogue at the scope's position,
// bypassing any override registered for node's own tag. Children go through
// the full dispatch of the instance. Overrides use it to decorate the default
// presentation.
func (s *Scope) Builtin(buf *bytes.Buffer, node card.Node) error {
	if s == nil || s.inst == nil {
		return errors.New("render: builtin: scope is not bound to an instance")
	}
	if buf == nil {
		return errors.New("render: builtin: buffer is required")
	}
	if node == nil {
		writePlaceholder(buf, "Unsupported node", "")
		return nil
	}
	s.inst.renderBuiltin(buf, node, s.path)
	return nil
}
