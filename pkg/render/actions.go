package render

import (
	"bytes"
	"strconv"

	"github.com/goliatone/go-cardrender/pkg/card"
)

// renderActionSet writes actions as one horizontal group. base is the path
// prefix of the collection, e.g. "actions" or "body.2.actions".
func (i *Instance) renderActionSet(buf *bytes.Buffer, actions []card.Action, base string) {
	buf.WriteString(`<div`)
	writeClass(buf, ClassActionSet)
	buf.WriteString(`>`)
	var panels bytes.Buffer
	for index, action := range actions {
		i.renderAction(buf, &panels, action, joinKey(base, index))
	}
	buf.WriteString(`</div>`)
	buf.Write(panels.Bytes())
}

func (i *Instance) renderAction(buf, panels *bytes.Buffer, action card.Action, key string) {
	switch a := action.(type) {
	case card.OpenURL:
		href, ok := i.safeURL(a.URL)
		if !ok {
			writeInertButton(buf, a.Title)
			return
		}
		buf.WriteString(`<a`)
		writeAttr(buf, "href", href)
		buf.WriteString(` target="_blank" rel="noreferrer"`)
		writeClass(buf, ClassButton)
		buf.WriteString(`>`)
		writeText(buf, a.Title)
		buf.WriteString(`</a>`)
	case card.ShowCard:
		i.renderShowCard(buf, panels, a, key)
	case card.ToggleVisibility:
		i.renderToggle(buf, a, key)
	case nil:
		writeInertButton(buf, card.DefaultActionTitle)
	default:
		writeInertButton(buf, action.ActionTitle())
	}
}

func writeInertButton(buf *bytes.Buffer, title string) {
	buf.WriteString(`<button type="button"`)
	writeClass(buf, ClassButton)
	buf.WriteString(`>`)
	writeText(buf, title)
	buf.WriteString(`</button>`)
}

func writeControlButton(buf *bytes.Buffer, key, title string, attrs func(*bytes.Buffer)) {
	buf.WriteString(`<button type="button"`)
	writeClass(buf, ClassButton)
	writeAttr(buf, "data-card-control", key)
	if attrs != nil {
		attrs(buf)
	}
	buf.WriteString(`>`)
	writeText(buf, title)
	buf.WriteString(`</button>`)
}

// renderShowCard writes the toggle button into buf and the expanded nested
// card, if any, into panels beneath the action row.
func (i *Instance) renderShowCard(buf, panels *bytes.Buffer, a card.ShowCard, key string) {
	nested, expanded := i.expanded[key]

	i.addControl(Control{
		Key:      key,
		Type:     card.TypeActionShowCard,
		Title:    a.Title,
		Expanded: expanded,
	}, func() {
		if _, open := i.expanded[key]; open {
			delete(i.expanded, key)
			return
		}
		inner := card.Card{Body: []card.Node{}, Actions: []card.Action{}}
		if a.Card != nil {
			inner = *a.Card
		}
		i.expanded[key] = newInstance(inner, i.cfg, joinKey(key, "card"))
	})

	writeControlButton(buf, key, a.Title, func(b *bytes.Buffer) {
		writeAttr(b, "aria-expanded", strconv.FormatBool(expanded))
	})

	if !expanded {
		return
	}
	panels.WriteString(`<div`)
	writeClass(panels, ClassShowCardPanel)
	writeAttr(panels, "data-card-showcard", key)
	panels.WriteString(`>`)
	nested.render(panels)
	panels.WriteString(`</div>`)
	i.adopt(nested)
}

func (i *Instance) renderToggle(buf *bytes.Buffer, a card.ToggleVisibility, key string) {
	targets := make([]string, 0, len(a.Targets))
	for _, target := range a.Targets {
		targets = append(targets, target.ElementID)
	}

	i.addControl(Control{
		Key:     key,
		Type:    card.TypeActionToggleVisibility,
		Title:   a.Title,
		Targets: targets,
	}, func() {
		for _, target := range a.Targets {
			if target.IsVisible != nil {
				i.visibility[target.ElementID] = *target.IsVisible
				continue
			}
			i.visibility[target.ElementID] = !i.Visible(target.ElementID)
		}
	})

	writeControlButton(buf, key, a.Title, nil)
}
