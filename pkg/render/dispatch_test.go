package render

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/goliatone/go-cardrender/pkg/card"
)

func mustParse(t *testing.T, doc string) card.Card {
	t.Helper()
	parsed, err := card.ParseJSON([]byte(doc))
	if err != nil {
		t.Fatalf("parse card: %v", err)
	}
	return parsed
}

func TestRender_UnknownTypeRendersPlaceholder(t *testing.T) {
	c := mustParse(t, `{"type":"AdaptiveCard","body":[
		{"type":"Custom.Chart"},
		{"text":"no tag"},
		{"type":42},
		{"type":"TextBlock","text":"after"}
	]}`)

	out := RenderCard(c, WithRegistry(NewRegistry()))

	for _, want := range []string{
		"[Unsupported node: Custom.Chart]",
		"[Unsupported node: unknown]",
		"after",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
	if strings.Count(out, "[Unsupported node: unknown]") != 2 {
		t.Fatalf("expected missing and non-string tags to both render as unknown:\n%s", out)
	}
}

func TestRender_OverrideTakesPrecedenceOverBuiltin(t *testing.T) {
	t.Cleanup(ResetRegistry)
	c := mustParse(t, `{"type":"AdaptiveCard","body":[{"type":"TextBlock","text":"plain"}]}`)

	before := RenderCard(c)
	if !strings.Contains(before, "plain") {
		t.Fatalf("expected built-in output, got:\n%s", before)
	}

	registerDefault(t, card.TypeTextBlock, func(_ *Scope, buf *bytes.Buffer, node card.Node, _ int) error {
		block := node.(card.TextBlock)
		buf.WriteString(`<mark>` + strings.ToUpper(block.Text) + `</mark>`)
		return nil
	})

	after := RenderCard(c)
	if !strings.Contains(after, "<mark>PLAIN</mark>") {
		t.Fatalf("expected override output, got:\n%s", after)
	}
	if strings.Contains(after, ">plain<") {
		t.Fatalf("expected built-in output to be replaced, got:\n%s", after)
	}
}

func TestRender_OverrideForCustomTag(t *testing.T) {
	registry := NewRegistry()
	registry.MustRegister("Custom.Chart", func(_ *Scope, buf *bytes.Buffer, node card.Node, _ int) error {
		series, _ := node.(card.Unknown).Attr("series")
		buf.WriteString(`<figure data-points="`)
		buf.WriteString(strings.Repeat("*", len(series.([]any))))
		buf.WriteString(`"></figure>`)
		return nil
	})
	c := mustParse(t, `{"type":"AdaptiveCard","body":[{"type":"Custom.Chart","series":[1,2,3]}]}`)

	out := RenderCard(c, WithRegistry(registry))
	if !strings.Contains(out, `data-points="***"`) {
		t.Fatalf("expected override to read opaque attributes, got:\n%s", out)
	}
}

func TestRender_FailingOverrideIsIsolated(t *testing.T) {
	registry := NewRegistry()
	registry.MustRegister("Broken", func(_ *Scope, buf *bytes.Buffer, _ card.Node, _ int) error {
		buf.WriteString("<partial")
		return errors.New("boom")
	})
	registry.MustRegister("Panicky", func(*Scope, *bytes.Buffer, card.Node, int) error {
		panic("kaboom")
	})
	c := mustParse(t, `{"type":"AdaptiveCard","body":[
		{"type":"Broken"},
		{"type":"Panicky"},
		{"type":"TextBlock","text":"sibling"}
	]}`)

	out := RenderCard(c, WithRegistry(registry))

	for _, want := range []string{"[Renderer failed: Broken]", "[Renderer failed: Panicky]", "sibling"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
	if strings.Contains(out, "<partial") {
		t.Fatalf("expected partial override output to be discarded:\n%s", out)
	}
}

func TestRender_OverridePolicySanitizes(t *testing.T) {
	registry := NewRegistry()
	registry.MustRegister("Custom.Html", writeString(`<div class="note">ok</div><script>alert(1)</script>`))
	c := mustParse(t, `{"type":"AdaptiveCard","body":[{"type":"Custom.Html"}]}`)

	out := RenderCard(c, WithRegistry(registry), WithOverridePolicy(OverridePolicy()))
	if strings.Contains(out, "<script>") {
		t.Fatalf("expected script to be stripped:\n%s", out)
	}
	if !strings.Contains(out, `<div class="note">ok</div>`) {
		t.Fatalf("expected safe markup to survive:\n%s", out)
	}
}

func TestBuiltin_DecoratesDefaultPresentation(t *testing.T) {
	t.Cleanup(ResetRegistry)
	registerDefault(t, card.TypeTextBlock, func(scope *Scope, buf *bytes.Buffer, node card.Node, _ int) error {
		buf.WriteString(`<section>`)
		if err := scope.Builtin(buf, node); err != nil {
			return err
		}
		buf.WriteString(`</section>`)
		return nil
	})
	c := mustParse(t, `{"type":"AdaptiveCard","body":[{"type":"TextBlock","text":"wrapped"}]}`)

	out := RenderCard(c)
	if !strings.Contains(out, `<section><p`) || !strings.Contains(out, `wrapped</p></section>`) {
		t.Fatalf("expected decorated built-in output, got:\n%s", out)
	}
}

func wrappingContainerRegistry(t *testing.T) *Registry {
	t.Helper()
	registry := NewRegistry()
	registry.MustRegister(card.TypeContainer, func(scope *Scope, buf *bytes.Buffer, node card.Node, _ int) error {
		buf.WriteString(`<section data-wrapped="` + scope.Path() + `">`)
		if err := scope.Builtin(buf, node); err != nil {
			return err
		}
		buf.WriteString(`</section>`)
		return nil
	})
	registry.MustRegister(card.TypeTextBlock, func(_ *Scope, buf *bytes.Buffer, node card.Node, _ int) error {
		buf.WriteString(`<em>` + node.(card.TextBlock).Text + `</em>`)
		return nil
	})
	return registry
}

const wrappedCard = `{"type":"AdaptiveCard","version":"1.6",
	"body":[{"type":"Container","items":[
		{"type":"TextBlock","id":"t","text":"Hello"},
		{"type":"ActionSet","actions":[
			{"type":"Action.ShowCard","title":"More","card":{"type":"AdaptiveCard","body":[{"type":"TextBlock","text":"Inner"}]}}
		]}
	]}],
	"actions":[{"type":"Action.ToggleVisibility","title":"Hide","targetElements":["t"]}]
}`

func TestScopeBuiltin_ChildrenUseInstanceRegistry(t *testing.T) {
	inst := New(mustParse(t, wrappedCard), WithRegistry(wrappingContainerRegistry(t)))

	out := inst.HTML()
	if !strings.Contains(out, `<section data-wrapped="body.0">`) {
		t.Fatalf("expected wrapper with node path, got:\n%s", out)
	}
	if !strings.Contains(out, `<em>Hello</em>`) {
		t.Fatalf("expected child to resolve through the instance registry, got:\n%s", out)
	}
}

func TestScopeBuiltin_HiddenChildStaysHidden(t *testing.T) {
	inst := New(mustParse(t, wrappedCard), WithRegistry(wrappingContainerRegistry(t)))

	if err := inst.Activate("actions.0"); err != nil {
		t.Fatalf("activate toggle: %v", err)
	}
	if out := inst.HTML(); strings.Contains(out, "Hello") {
		t.Fatalf("expected hidden child to be absent, got:\n%s", out)
	}
}

func TestScopeBuiltin_NestedControlsActivate(t *testing.T) {
	inst := New(mustParse(t, wrappedCard), WithRegistry(wrappingContainerRegistry(t)))

	key := "body.0.items.1.actions.0"
	if out := inst.HTML(); !strings.Contains(out, `data-card-control="`+key+`"`) {
		t.Fatalf("expected control %q in markup, got:\n%s", key, out)
	}
	if err := inst.Activate(key); err != nil {
		t.Fatalf("activate nested show card: %v", err)
	}
	if out := inst.HTML(); !strings.Contains(out, "<em>Inner</em>") {
		t.Fatalf("expected expanded card inside the wrapper, got:\n%s", out)
	}
}

func TestScopeBuiltin_FailedOverrideDropsItsControls(t *testing.T) {
	registry := NewRegistry()
	registry.MustRegister(card.TypeContainer, func(scope *Scope, buf *bytes.Buffer, node card.Node, _ int) error {
		if err := scope.Builtin(buf, node); err != nil {
			return err
		}
		return errors.New("late failure")
	})
	inst := New(mustParse(t, wrappedCard), WithRegistry(registry))

	if out := inst.HTML(); !strings.Contains(out, "[Renderer failed: Container]") {
		t.Fatalf("expected failure placeholder, got:\n%s", out)
	}
	if err := inst.Activate("body.0.items.1.actions.0"); !errors.Is(err, ErrUnknownControl) {
		t.Fatalf("expected discarded control to be unknown, got %v", err)
	}
	if err := inst.Activate("actions.0"); err != nil {
		t.Fatalf("expected card-level control to survive: %v", err)
	}
}

func TestScopeBuiltin_UnboundScope(t *testing.T) {
	var scope *Scope
	if err := scope.Builtin(&bytes.Buffer{}, card.TextBlock{}); err == nil {
		t.Fatalf("expected an error from an unbound scope")
	}
}

func registerDefault(t *testing.T, tag string, fn NodeRenderer) {
	t.Helper()
	if err := Register(tag, fn); err != nil {
		t.Fatalf("register %s: %v", tag, err)
	}
}
