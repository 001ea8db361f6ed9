package render

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestInstance_EmptyCardRendersNothing(t *testing.T) {
	inst := New(mustParse(t, `{"type":"AdaptiveCard","body":[],"actions":[]}`))

	var buf bytes.Buffer
	if err := inst.Render(&buf); err != nil {
		t.Fatalf("render: %v", err)
	}
	if buf.Len() != 0 {
		t.Fatalf("expected empty presentation, got %q", buf.String())
	}
	if len(inst.Controls()) != 0 {
		t.Fatalf("expected no controls")
	}
}

func TestInstance_BareTargetDoubleToggleRestores(t *testing.T) {
	inst := New(mustParse(t, `{"type":"AdaptiveCard","body":[
		{"type":"TextBlock","id":"t1","text":"Hello"}
	],"actions":[
		{"type":"Action.ToggleVisibility","title":"Toggle","targetElements":["t1"]}
	]}`))

	if !strings.Contains(inst.HTML(), "Hello") {
		t.Fatalf("expected node visible by default")
	}
	if err := inst.Activate("actions.0"); err != nil {
		t.Fatalf("activate: %v", err)
	}
	if inst.Visible("t1") || strings.Contains(inst.HTML(), "Hello") {
		t.Fatalf("expected first activation to hide t1")
	}
	if err := inst.Activate("actions.0"); err != nil {
		t.Fatalf("activate: %v", err)
	}
	if !inst.Visible("t1") || !strings.Contains(inst.HTML(), "Hello") {
		t.Fatalf("expected second activation to restore t1")
	}
}

func TestInstance_ExplicitTargetIsIdempotent(t *testing.T) {
	inst := New(mustParse(t, `{"type":"AdaptiveCard","body":[
		{"type":"TextBlock","id":"t1","text":"Hello"}
	],"actions":[
		{"type":"Action.ToggleVisibility","title":"Hide","targetElements":[{"elementId":"t1","isVisible":false}]}
	]}`))

	for attempt := 0; attempt < 3; attempt++ {
		if err := inst.Activate("actions.0"); err != nil {
			t.Fatalf("activate: %v", err)
		}
		if inst.Visible("t1") {
			t.Fatalf("attempt %d: expected t1 to stay hidden", attempt)
		}
	}
	if strings.Contains(inst.HTML(), "Hello") {
		t.Fatalf("expected hidden node to be absent from output")
	}
}

func TestInstance_HidesNestedItems(t *testing.T) {
	inst := New(mustParse(t, `{"type":"AdaptiveCard","body":[
		{"type":"Container","items":[
			{"type":"TextBlock","id":"inner","text":"Deep"},
			{"type":"TextBlock","text":"Sibling"}
		]},
		{"type":"ActionSet","actions":[
			{"type":"Action.ToggleVisibility","title":"Toggle","targetElements":["inner"]}
		]}
	]}`))

	if err := inst.Activate("body.1.actions.0"); err != nil {
		t.Fatalf("activate: %v", err)
	}
	out := inst.HTML()
	if strings.Contains(out, "Deep") {
		t.Fatalf("expected container item to be hidden:\n%s", out)
	}
	if !strings.Contains(out, "Sibling") {
		t.Fatalf("expected sibling to remain:\n%s", out)
	}
}

func TestInstance_DanglingTargetDefaultsVisible(t *testing.T) {
	inst := New(mustParse(t, `{"type":"AdaptiveCard","body":[],"actions":[
		{"type":"Action.ToggleVisibility","targetElements":["ghost"]}
	]}`))

	if !inst.Visible("ghost") {
		t.Fatalf("expected unseen id to default visible")
	}
	if err := inst.Activate("actions.0"); err != nil {
		t.Fatalf("activate: %v", err)
	}
	if inst.Visible("ghost") {
		t.Fatalf("expected dangling id to flip to hidden")
	}
}

func TestInstance_ShowCardExpandsAndCollapses(t *testing.T) {
	inst := New(mustParse(t, `{"type":"AdaptiveCard","body":[],"actions":[
		{"type":"Action.ShowCard","title":"More","card":{"type":"AdaptiveCard","body":[
			{"type":"TextBlock","text":"Inner"}
		]}}
	]}`))

	before := inst.HTML()
	if !strings.Contains(before, "More") || strings.Contains(before, "Inner") {
		t.Fatalf("expected collapsed ShowCard, got:\n%s", before)
	}
	if err := inst.Activate("actions.0"); err != nil {
		t.Fatalf("activate: %v", err)
	}
	if !strings.Contains(inst.HTML(), "Inner") {
		t.Fatalf("expected nested card after first activation")
	}
	if err := inst.Activate("actions.0"); err != nil {
		t.Fatalf("activate: %v", err)
	}
	if strings.Contains(inst.HTML(), "Inner") {
		t.Fatalf("expected nested card to collapse after second activation")
	}
}

func TestInstance_NestedVisibilityIsIndependent(t *testing.T) {
	inst := New(mustParse(t, `{"type":"AdaptiveCard","body":[
		{"type":"TextBlock","id":"t1","text":"Outer"}
	],"actions":[
		{"type":"Action.ShowCard","title":"More","card":{"type":"AdaptiveCard","body":[
			{"type":"TextBlock","id":"t1","text":"Inner"}
		],"actions":[
			{"type":"Action.ToggleVisibility","title":"Hide","targetElements":["t1"]}
		]}}
	]}`))

	if err := inst.Activate("actions.0"); err != nil {
		t.Fatalf("expand: %v", err)
	}
	if err := inst.Activate("actions.0.card.actions.0"); err != nil {
		t.Fatalf("nested toggle: %v", err)
	}

	out := inst.HTML()
	if strings.Contains(out, "Inner") {
		t.Fatalf("expected nested toggle to hide the nested node:\n%s", out)
	}
	if !strings.Contains(out, "Outer") || !inst.Visible("t1") {
		t.Fatalf("expected parent visibility to be untouched:\n%s", out)
	}

	// Collapsing discards the nested state; reopening starts fresh.
	if err := inst.Activate("actions.0"); err != nil {
		t.Fatalf("collapse: %v", err)
	}
	if err := inst.Activate("actions.0"); err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if !strings.Contains(inst.HTML(), "Inner") {
		t.Fatalf("expected reopened card to start with default visibility")
	}
}

func TestInstance_ControlsFollowDocumentPaths(t *testing.T) {
	inst := New(mustParse(t, `{"type":"AdaptiveCard","body":[
		{"type":"ActionSet","actions":[
			{"type":"Action.Submit","title":"Send"},
			{"type":"Action.ToggleVisibility","title":"Toggle","targetElements":["a","b"]}
		]}
	],"actions":[
		{"type":"Action.OpenUrl","title":"Docs","url":"https://example.com"},
		{"type":"Action.ShowCard","title":"More","card":{"type":"AdaptiveCard","body":[],"actions":[
			{"type":"Action.ToggleVisibility","title":"Inner","targetElements":["c"]}
		]}}
	]}`))

	want := []Control{
		{Key: "body.0.actions.1", Type: "Action.ToggleVisibility", Title: "Toggle", Targets: []string{"a", "b"}},
		{Key: "actions.1", Type: "Action.ShowCard", Title: "More"},
	}
	if diff := cmp.Diff(want, inst.Controls()); diff != "" {
		t.Fatalf("controls mismatch (-want +got):\n%s", diff)
	}

	if err := inst.Activate("actions.1"); err != nil {
		t.Fatalf("activate: %v", err)
	}
	want = []Control{
		{Key: "body.0.actions.1", Type: "Action.ToggleVisibility", Title: "Toggle", Targets: []string{"a", "b"}},
		{Key: "actions.1", Type: "Action.ShowCard", Title: "More", Expanded: true},
		{Key: "actions.1.card.actions.0", Type: "Action.ToggleVisibility", Title: "Inner", Targets: []string{"c"}},
	}
	if diff := cmp.Diff(want, inst.Controls()); diff != "" {
		t.Fatalf("controls after expand mismatch (-want +got):\n%s", diff)
	}
	if !strings.Contains(inst.HTML(), `data-card-control="actions.1.card.actions.0"`) {
		t.Fatalf("expected nested control key in markup")
	}
}

func TestInstance_ActivateUnknownControl(t *testing.T) {
	inst := New(mustParse(t, `{"type":"AdaptiveCard","body":[],"actions":[{"type":"Action.Submit"}]}`))

	err := inst.Activate("actions.0")
	if !errors.Is(err, ErrUnknownControl) {
		t.Fatalf("expected ErrUnknownControl for submit action, got %v", err)
	}
	if err := inst.Activate("actions.9"); !errors.Is(err, ErrUnknownControl) {
		t.Fatalf("expected ErrUnknownControl, got %v", err)
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestInstance_RenderReportsWriterFailure(t *testing.T) {
	inst := New(mustParse(t, `{"type":"AdaptiveCard","body":[{"type":"TextBlock","text":"x"}]}`))
	if err := inst.Render(failingWriter{}); err == nil {
		t.Fatalf("expected writer failure to surface")
	}
}
