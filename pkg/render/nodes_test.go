package render

import (
	"strings"
	"testing"
)

func renderBody(t *testing.T, body string) string {
	t.Helper()
	return RenderCard(mustParse(t, `{"type":"AdaptiveCard","body":[`+body+`]}`), WithRegistry(NewRegistry()))
}

func TestRender_TextBlockClasses(t *testing.T) {
	out := renderBody(t, `{"type":"TextBlock","text":"<b>hi</b>","size":"large","weight":"bolder","color":"attention","wrap":false}`)

	want := `<p class="text-lg font-bold text-red-600 whitespace-nowrap">&lt;b&gt;hi&lt;/b&gt;</p>`
	if !strings.Contains(out, want) {
		t.Fatalf("expected %s in output:\n%s", want, out)
	}

	defaults := renderBody(t, `{"type":"TextBlock"}`)
	if !strings.Contains(defaults, `<p class="text-base text-inherit whitespace-normal"></p>`) {
		t.Fatalf("expected default text classes, got:\n%s", defaults)
	}
}

func TestRender_ImageSizes(t *testing.T) {
	cases := map[string]string{
		`"small"`:   "w-16 h-auto object-contain",
		`"stretch"`: "w-full h-auto object-contain",
		`"giant"`:   "w-auto h-auto object-contain",
		`7`:         "w-auto h-auto object-contain",
	}
	for size, class := range cases {
		out := renderBody(t, `{"type":"Image","url":"https://x/y.png","size":`+size+`}`)
		if !strings.Contains(out, `alt="" class="`+class+`"`) {
			t.Fatalf("size %s: expected class %q in output:\n%s", size, class, out)
		}
	}
}

func TestRender_ColumnSetRendersEveryColumn(t *testing.T) {
	for _, align := range []string{"", "left", "center", "right", "diagonal"} {
		out := renderBody(t, `{"type":"ColumnSet","horizontalAlignment":"`+align+`","columns":[
			{"type":"Column","width":"auto","items":[{"type":"TextBlock","text":"Left"}]},
			{"type":"Column","width":40,"items":[{"type":"TextBlock","text":"Right"}]}
		]}`)
		if !strings.Contains(out, "Left") || !strings.Contains(out, "Right") {
			t.Fatalf("alignment %q: expected both column texts:\n%s", align, out)
		}
		if !strings.Contains(out, `class="px-2 grow-0 shrink-0 basis-[40%]" style="flex-basis:40%"`) {
			t.Fatalf("expected percentage column classes:\n%s", out)
		}
		if !strings.Contains(out, `class="px-2 flex-none"`) {
			t.Fatalf("expected auto column class:\n%s", out)
		}
	}
}

func TestRender_ExpandedMultiChoiceSet(t *testing.T) {
	out := renderBody(t, `{"type":"Input.ChoiceSet","id":"c","style":"expanded","isMultiSelect":true,"value":["a"],"choices":[
		{"title":"Alpha","value":"a"},
		{"title":"Bravo","value":"b"}
	]}`)

	if !strings.Contains(out, `<input type="checkbox" name="c" value="a" checked>Alpha`) {
		t.Fatalf("expected choice a checked:\n%s", out)
	}
	if !strings.Contains(out, `<input type="checkbox" name="c" value="b">Bravo`) {
		t.Fatalf("expected choice b unchecked:\n%s", out)
	}
}

func TestRender_ExpandedSingleChoiceSetUsesRadios(t *testing.T) {
	out := renderBody(t, `{"type":"Input.ChoiceSet","id":"c","style":"expanded","value":"b","choices":[
		{"title":"Alpha","value":"a"},
		{"title":"Bravo","value":"b"}
	]}`)
	if !strings.Contains(out, `role="radiogroup"`) || !strings.Contains(out, `type="radio" name="c" value="b" checked`) {
		t.Fatalf("expected radio group with b checked:\n%s", out)
	}
}

func TestRender_CompactChoiceSetSelectsValue(t *testing.T) {
	out := renderBody(t, `{"type":"Input.ChoiceSet","id":"c","style":"compact","value":"b","choices":[
		{"title":"Alpha","value":"a"},
		{"title":"Bravo","value":"b"}
	]}`)

	if !strings.Contains(out, `<option value="b" selected>Bravo</option>`) {
		t.Fatalf("expected b selected:\n%s", out)
	}
	if !strings.Contains(out, `<option value="a">Alpha</option>`) {
		t.Fatalf("expected a unselected:\n%s", out)
	}
	if strings.Contains(out, "multiple") {
		t.Fatalf("expected single select list:\n%s", out)
	}
}

func TestRender_ToggleCheckedOnlyForExactTrue(t *testing.T) {
	checked := renderBody(t, `{"type":"Input.Toggle","id":"agree","title":"Agree","value":"true"}`)
	if !strings.Contains(checked, `value="true" checked>`) {
		t.Fatalf("expected checked toggle:\n%s", checked)
	}
	for _, value := range []string{`"True"`, `true`, `"yes"`} {
		out := renderBody(t, `{"type":"Input.Toggle","id":"agree","value":`+value+`}`)
		if strings.Contains(out, "checked") {
			t.Fatalf("value %s: expected unchecked toggle:\n%s", value, out)
		}
	}
}

func TestRender_InputsPassThroughOptionalAttributes(t *testing.T) {
	out := renderBody(t, `
		{"type":"Input.Text","id":"name","placeholder":"Your name"},
		{"type":"Input.Text","id":"bio","isMultiline":true,"value":"hi"},
		{"type":"Input.Number","id":"qty","value":3,"min":1,"max":10},
		{"type":"Input.Date","id":"when","value":"2024-01-02"},
		{"type":"Input.Time","id":"at"}
	`)

	for _, want := range []string{
		`<input type="text" id="name" name="name" class="border rounded p-2 text-sm w-full" placeholder="Your name">`,
		`<textarea id="bio" name="bio" class="border rounded p-2 text-sm w-full">hi</textarea>`,
		`<input type="number" id="qty" name="qty" class="border rounded p-2 text-sm w-full" value="3" min="1" max="10">`,
		`<input type="date" id="when" name="when" class="border rounded p-2 text-sm w-full" value="2024-01-02">`,
		`<input type="time" id="at" name="at" class="border rounded p-2 text-sm w-full">`,
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %s in output:\n%s", want, out)
		}
	}
}

func TestRender_MediaSelectsPresentation(t *testing.T) {
	cases := []struct {
		name    string
		sources string
		want    string
	}{
		{name: "video wins", sources: `[{"mimeType":"audio/mpeg","url":"a.mp3"},{"mimeType":"video/mp4","url":"v.mp4"}]`, want: "<video"},
		{name: "audio only", sources: `[{"mimeType":"audio/mpeg","url":"a.mp3"}]`, want: "<audio"},
		{name: "unknown mime", sources: `[{"mimeType":"application/x","url":"x"}]`, want: "<video"},
		{name: "no sources", sources: `[]`, want: "<video"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			out := renderBody(t, `{"type":"Media","sources":`+tc.sources+`}`)
			if !strings.Contains(out, tc.want) {
				t.Fatalf("expected %s presentation:\n%s", tc.want, out)
			}
		})
	}

	flags := renderBody(t, `{"type":"Media","poster":"p.png","autoplay":true,"sources":[{"mimeType":"video/mp4","url":"v.mp4"}]}`)
	if !strings.Contains(flags, ` poster="p.png" autoplay>`) || strings.Contains(flags, " loop") {
		t.Fatalf("expected poster and autoplay only:\n%s", flags)
	}
}

func TestRender_RichTextRuns(t *testing.T) {
	out := renderBody(t, `{"type":"RichTextBlock","inlines":[
		"plain ",
		{"type":"TextRun","text":"bold","weight":"bolder"},
		{"type":"TextRun","text":"styled","italic":true,"underline":true,"size":"large"}
	]}`)

	for _, want := range []string{
		`<span>plain </span>`,
		`<span class="font-bold text-base">bold</span>`,
		`<span class="italic underline text-lg">styled</span>`,
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %s in output:\n%s", want, out)
		}
	}
}

func TestRender_FactSetAndImageSet(t *testing.T) {
	out := renderBody(t, `
		{"type":"FactSet","facts":[{"title":"Owner","value":"Ada"},{"title":"Status","value":"Open"}]},
		{"type":"ImageSet","images":[{"type":"Image","url":"a.png"},{"type":"Image","url":"b.png","size":"small"}]}
	`)

	if strings.Index(out, "Owner") > strings.Index(out, "Status") {
		t.Fatalf("expected fact order preserved:\n%s", out)
	}
	if strings.Count(out, "w-32 h-auto object-contain") != 2 {
		t.Fatalf("expected uniform medium image size:\n%s", out)
	}
}

func TestRender_ActionsMarkup(t *testing.T) {
	out := RenderCard(mustParse(t, `{"type":"AdaptiveCard","body":[],"actions":[
		{"type":"Action.OpenUrl","title":"Docs","url":"https://example.com/?a=1&b=2"},
		{"type":"Action.Submit"},
		{"type":"Action.Custom","title":"Later"}
	]}`))

	for _, want := range []string{
		`<a href="https://example.com/?a=1&amp;b=2" target="_blank" rel="noreferrer"`,
		`>Docs</a>`,
		`>Action</button>`,
		`>Later</button>`,
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %s in output:\n%s", want, out)
		}
	}
}

func TestRender_UnsafeURLsAreDropped(t *testing.T) {
	out := RenderCard(mustParse(t, `{"type":"AdaptiveCard","body":[
		{"type":"Image","url":"javascript:alert(2)","altText":"pic"},
		{"type":"Media","poster":"JavaScript:alert(3)","sources":[
			{"mimeType":"video/mp4","url":"javascript:alert(4)"},
			{"mimeType":"video/mp4","url":"/clips/ok.mp4"}
		]}
	],"actions":[
		{"type":"Action.OpenUrl","title":"Run","url":"javascript:alert(1)"},
		{"type":"Action.OpenUrl","title":"Mail","url":"mailto:team@example.com"},
		{"type":"Action.OpenUrl","title":"Relative","url":"/docs/start"}
	]}`))

	if strings.Contains(strings.ToLower(out), "javascript:") {
		t.Fatalf("expected javascript URLs to be dropped:\n%s", out)
	}
	for _, want := range []string{
		`<img alt="pic"`,
		`<source src="/clips/ok.mp4" type="video/mp4">`,
		`>Run</button>`,
		`<a href="mailto:team@example.com"`,
		`<a href="/docs/start"`,
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %s in output:\n%s", want, out)
		}
	}
	if strings.Contains(out, " poster=") {
		t.Fatalf("expected unsafe poster to be omitted:\n%s", out)
	}
}

func TestRender_URLPolicyCanBeReplaced(t *testing.T) {
	policy := URLPolicy()
	policy.AllowURLSchemes("ftp")
	c := mustParse(t, `{"type":"AdaptiveCard","body":[],"actions":[{"type":"Action.OpenUrl","title":"Files","url":"ftp://files.example.com/a"}]}`)

	if out := RenderCard(c); strings.Contains(out, "ftp://") {
		t.Fatalf("expected ftp to be rejected by default:\n%s", out)
	}
	if out := RenderCard(c, WithURLPolicy(policy)); !strings.Contains(out, `href="ftp://files.example.com/a"`) {
		t.Fatalf("expected custom policy to admit ftp:\n%s", out)
	}
}

func TestErrorPanel(t *testing.T) {
	if got := ErrorPanel("Oops", "", ""); got != "" {
		t.Fatalf("expected empty panel, got %q", got)
	}

	panel := ErrorPanel("", "HTTP 502", "corr-1")
	for _, want := range []string{`role="alert"`, `>Error</div>`, "HTTP 502", "correlationId: <code>corr-1</code>"} {
		if !strings.Contains(panel, want) {
			t.Fatalf("expected %s in panel:\n%s", want, panel)
		}
	}

	onlyID := ErrorPanel("Generate failed", "", "corr-2")
	if !strings.Contains(onlyID, "Generate failed") || !strings.Contains(onlyID, "corr-2") {
		t.Fatalf("expected correlation-only panel:\n%s", onlyID)
	}
}
