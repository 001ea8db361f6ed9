package interact

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-cardrender/pkg/card"
	"github.com/goliatone/go-cardrender/pkg/render"
	"github.com/goliatone/go-cardrender/pkg/testsupport"
)

type stubDriver struct {
	selectIdx    []int
	selectPos    int
	menus        [][]string
	infoMessages []string
}

func (s *stubDriver) Select(_ context.Context, cfg SelectConfig) (int, error) {
	s.menus = append(s.menus, cfg.Options)
	if s.selectPos >= len(s.selectIdx) {
		return -1, errors.New("no select scripted")
	}
	val := s.selectIdx[s.selectPos]
	s.selectPos++
	return val, nil
}

func (s *stubDriver) Info(_ context.Context, msg string) error {
	s.infoMessages = append(s.infoMessages, msg)
	return nil
}

func newPlainSession(t *testing.T, driver PromptDriver) *Session {
	t.Helper()
	s, err := New(WithPromptDriver(driver), WithPlain())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return s
}

func TestRun_ExpandsShowCardThenQuits(t *testing.T) {
	driver := &stubDriver{selectIdx: []int{1, 2}}
	inst := render.New(testsupport.Card(t, "showcase"))

	if err := newPlainSession(t, driver).Run(context.Background(), inst); err != nil {
		t.Fatalf("Run: %v", err)
	}

	wantMenus := [][]string{
		{"Toggle details [toggle: details]", "More [expand]", "Quit"},
		{"Toggle details [toggle: details]", "More [collapse]", "Quit"},
	}
	if diff := cmp.Diff(wantMenus, driver.menus); diff != "" {
		t.Fatalf("menus mismatch (-want +got):\n%s", diff)
	}

	if len(driver.infoMessages) != 4 {
		t.Fatalf("expected heading and outline per round, got %d messages", len(driver.infoMessages))
	}
	if driver.infoMessages[0] != "Card 1.6" {
		t.Fatalf("unexpected heading %q", driver.infoMessages[0])
	}
	if strings.Contains(driver.infoMessages[1], "Inner notes") {
		t.Fatalf("collapsed outline should not include the nested card")
	}
	if !strings.Contains(driver.infoMessages[3], "Inner notes") {
		t.Fatalf("expanded outline should include the nested card:\n%s", driver.infoMessages[3])
	}
}

func TestRun_ToggleHidesDetails(t *testing.T) {
	driver := &stubDriver{selectIdx: []int{0, 2}}
	inst := render.New(testsupport.Card(t, "showcase"))

	if err := newPlainSession(t, driver).Run(context.Background(), inst); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if inst.Visible("details") {
		t.Fatalf("expected details hidden after toggle")
	}
}

func TestRun_NoControlsReturnsAfterOutline(t *testing.T) {
	driver := &stubDriver{}
	inst := render.New(testsupport.Card(t, "greeting"))

	if err := newPlainSession(t, driver).Run(context.Background(), inst); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(driver.menus) != 0 {
		t.Fatalf("expected no prompt, got %v", driver.menus)
	}
	if got := driver.infoMessages[1]; !strings.Contains(got, "Hi & welcome") {
		t.Fatalf("outline should unescape entities, got %q", got)
	}
}

func TestRun_PropagatesDriverErrors(t *testing.T) {
	driver := &stubDriver{}
	inst := render.New(testsupport.Card(t, "showcase"))

	err := newPlainSession(t, driver).Run(context.Background(), inst)
	if err == nil || !strings.Contains(err.Error(), "no select scripted") {
		t.Fatalf("expected driver error, got %v", err)
	}
}

func TestLineDriver_ParsesChoices(t *testing.T) {
	var out bytes.Buffer
	driver := NewLineDriver(strings.NewReader("x\n2\n"), &out)

	idx, err := driver.Select(context.Background(), SelectConfig{Message: "Pick", Options: []string{"a", "b"}, DefaultIndex: -1})
	if err != nil {
		t.Fatalf("Select: %v", err)
	}
	if idx != 1 {
		t.Fatalf("expected index 1, got %d", idx)
	}
	if !strings.Contains(out.String(), `invalid choice "x"`) {
		t.Fatalf("expected invalid choice notice:\n%s", out.String())
	}

	_, err = driver.Select(context.Background(), SelectConfig{Message: "Pick", Options: []string{"a"}})
	if !errors.Is(err, ErrAborted) {
		t.Fatalf("expected ErrAborted at end of input, got %v", err)
	}
}

func TestRun_LineDriverEndToEnd(t *testing.T) {
	var out bytes.Buffer
	driver := NewLineDriver(strings.NewReader("2\nq\n"), &out)
	inst := render.New(testsupport.Card(t, "showcase"))

	if err := newPlainSession(t, driver).Run(context.Background(), inst); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !strings.Contains(out.String(), "Inner notes") {
		t.Fatalf("expected nested card in transcript:\n%s", out.String())
	}
}

func TestOutline_OneBlockPerLine(t *testing.T) {
	markup := `<div><p class="x">Hello &amp; bye</p><table><tr><td>Owner</td><td>Ana</td></tr></table><div>[Unsupported node: Widget]</div></div>`

	want := "Hello & bye\nOwner Ana\n[Unsupported node: Widget]"
	if got := Outline(markup); got != want {
		t.Fatalf("outline mismatch:\ngot  %q\nwant %q", got, want)
	}
}

func TestMarkdown_EmptyCard(t *testing.T) {
	if got := Markdown(card.Card{}, ""); got != "_empty card_" {
		t.Fatalf("unexpected markdown %q", got)
	}
}

func TestMarkdown_EscapesCardText(t *testing.T) {
	c := card.Card{Body: []card.Node{card.TextBlock{Text: "x"}}}
	markup := `<p># Launch *now* or_never</p><p>- not a list</p><p>1. nor this</p><p>[Unsupported node: Widget]</p>`

	want := "\\# Launch \\*now\\* or\\_never\n\n" +
		"\\- not a list\n\n" +
		"1\\. nor this\n\n" +
		"\\[Unsupported node: Widget\\]"
	if got := Markdown(c, markup); got != want {
		t.Fatalf("markdown mismatch:\ngot  %q\nwant %q", got, want)
	}
}

func TestPlainText_KeepsCardTextLiteral(t *testing.T) {
	c := card.Card{Body: []card.Node{card.TextBlock{Text: "x"}}}
	if got := PlainText(c, `<p>*stars* _kept_</p>`); got != "*stars* _kept_" {
		t.Fatalf("unexpected plain text %q", got)
	}
	if got := PlainText(card.Card{}, ""); got != "(empty card)" {
		t.Fatalf("unexpected empty text %q", got)
	}
}

func TestControlLabel(t *testing.T) {
	cases := map[string]render.Control{
		"More [expand]":      {Key: "actions.0", Type: card.TypeActionShowCard, Title: "More"},
		"More [collapse]":    {Key: "actions.0", Type: card.TypeActionShowCard, Title: "More", Expanded: true},
		"actions.1 [toggle]": {Key: "actions.1", Type: card.TypeActionToggleVisibility},
		"Flip [toggle: a, b]": {
			Key: "actions.2", Type: card.TypeActionToggleVisibility, Title: "Flip", Targets: []string{"a", "b"},
		},
	}
	for want, control := range cases {
		if got := ControlLabel(control); got != want {
			t.Fatalf("ControlLabel(%+v) = %q, want %q", control, got, want)
		}
	}
}
