package render

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-cardrender/pkg/card"
)

func writeString(value string) NodeRenderer {
	return func(_ *Scope, buf *bytes.Buffer, _ card.Node, _ int) error {
		buf.WriteString(value)
		return nil
	}
}

func TestRegistry_RegisterLookupAndTags(t *testing.T) {
	registry := NewRegistry()
	registry.MustRegister("Zeta", writeString("z"))
	registry.MustRegister("Alpha", writeString("a"))

	if diff := cmp.Diff([]string{"Alpha", "Zeta"}, registry.Tags()); diff != "" {
		t.Fatalf("tags mismatch (-want +got):\n%s", diff)
	}
	if _, ok := registry.Lookup("Missing"); ok {
		t.Fatalf("expected lookup miss")
	}
}

func TestRegistry_LastWriteWins(t *testing.T) {
	registry := NewRegistry()
	registry.MustRegister("Chart", writeString("first"))
	registry.MustRegister("Chart", writeString("second"))

	fn, ok := registry.Lookup("Chart")
	if !ok {
		t.Fatalf("expected override")
	}
	var buf bytes.Buffer
	if err := fn(nil, &buf, card.Unknown{}, 0); err != nil {
		t.Fatalf("override: %v", err)
	}
	if buf.String() != "second" {
		t.Fatalf("expected replacement override, got %q", buf.String())
	}
}

func TestRegistry_UnregisterIsNoopWhenAbsent(t *testing.T) {
	registry := NewRegistry()
	if registry.Unregister("Chart") {
		t.Fatalf("expected unregister of absent tag to report false")
	}
	registry.MustRegister("Chart", writeString("x"))
	if !registry.Unregister("Chart") {
		t.Fatalf("expected unregister to report removal")
	}
	if len(registry.Tags()) != 0 {
		t.Fatalf("expected empty registry, got %v", registry.Tags())
	}
}

func TestRegistry_RejectsInvalidEntries(t *testing.T) {
	registry := NewRegistry()
	if err := registry.Register(" ", writeString("x")); err == nil {
		t.Fatalf("expected error for blank tag")
	}
	if err := registry.Register("Chart", nil); err == nil {
		t.Fatalf("expected error for nil renderer")
	}
}

func TestDefaultRegistry_PackageFunctions(t *testing.T) {
	t.Cleanup(ResetRegistry)

	if err := Register("Chart", writeString("chart")); err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, ok := Lookup("Chart"); !ok {
		t.Fatalf("expected global lookup hit")
	}
	if diff := cmp.Diff([]string{"Chart"}, RegisteredTags()); diff != "" {
		t.Fatalf("tags mismatch (-want +got):\n%s", diff)
	}
	if _, ok := NewRegistry().Lookup("Chart"); ok {
		t.Fatalf("expected isolated registry to ignore global entries")
	}

	Unregister("Chart")
	if len(RegisteredTags()) != 0 {
		t.Fatalf("expected global registry to be empty")
	}
}
