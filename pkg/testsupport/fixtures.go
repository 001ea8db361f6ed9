package testsupport

import (
	"bytes"
	"embed"
	"io"
	"os"
	"path"
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/goliatone/go-cardrender/pkg/card"
)

//go:embed cards/*.json
var cardFixtures embed.FS

// CardNames lists the bundled card fixtures.
func CardNames() []string {
	entries, err := cardFixtures.ReadDir("cards")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry.Name())
	}
	return names
}

// CardJSON returns the raw bytes of a bundled fixture such as "showcase.json".
// The extension may be omitted.
func CardJSON(t *testing.T, name string) []byte {
	t.Helper()

	if path.Ext(name) == "" {
		name += ".json"
	}
	data, err := cardFixtures.ReadFile(path.Join("cards", name))
	if err != nil {
		t.Fatalf("read card fixture %q: %v", name, err)
	}
	return data
}

// Card parses a bundled fixture.
func Card(t *testing.T, name string) card.Card {
	t.Helper()

	parsed, err := card.ParseJSON(CardJSON(t, name))
	if err != nil {
		t.Fatalf("parse card fixture %q: %v", name, err)
	}
	return parsed
}

// AssertGolden compares data with testdata/golden/<name>.golden relative to
// the calling package. Run tests with -update to rewrite the file.
func AssertGolden(t *testing.T, name string, data []byte) {
	t.Helper()

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, name, data)
}

// MustReadGolden reads a golden file and returns its raw bytes.
func MustReadGolden(t *testing.T, p string) []byte {
	t.Helper()
	data, err := os.ReadFile(p)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return data
}

// CaptureTemplateOutput executes a render function that writes to an io.Writer,
// returning both the string result and the writer contents.
func CaptureTemplateOutput(t *testing.T, render func(io.Writer) (string, error)) (string, string) {
	t.Helper()

	var buf bytes.Buffer
	out, err := render(&buf)
	if err != nil {
		t.Fatalf("render template: %v", err)
	}

	return out, buf.String()
}
