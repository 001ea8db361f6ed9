package cardrender

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goliatone/go-cardrender/pkg/card"
)

func writeCard(t *testing.T, name, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write card: %v", err)
	}
	return path
}

func TestLoadFile_JSONAndYAMLAgree(t *testing.T) {
	jsonPath := writeCard(t, "card.json", `{"type":"AdaptiveCard","version":"1.6","body":[{"type":"TextBlock","id":"t","text":"Hi"}]}`)
	yamlPath := writeCard(t, "card.yml", "type: AdaptiveCard\nversion: \"1.6\"\nbody:\n  - type: TextBlock\n    id: t\n    text: Hi\n")

	fromJSON, err := LoadFile(jsonPath)
	if err != nil {
		t.Fatalf("LoadFile json: %v", err)
	}
	fromYAML, err := LoadFile(yamlPath)
	if err != nil {
		t.Fatalf("LoadFile yaml: %v", err)
	}

	if len(fromYAML.Body) != 1 {
		t.Fatalf("expected one body node, got %d", len(fromYAML.Body))
	}
	if _, ok := fromYAML.Body[0].(card.TextBlock); !ok {
		t.Fatalf("expected TextBlock, got %T", fromYAML.Body[0])
	}

	jsonHTML, _ := RenderFile(jsonPath)
	yamlHTML, _ := RenderFile(yamlPath)
	if jsonHTML != yamlHTML {
		t.Fatalf("renders differ:\njson %s\nyaml %s", jsonHTML, yamlHTML)
	}
	if fromJSON.Version != "1.6" {
		t.Fatalf("unexpected version %q", fromJSON.Version)
	}
}

func TestLoadFile_Errors(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Fatalf("expected error for missing file")
	}
	if _, err := LoadFile(writeCard(t, "bad.json", "{")); err == nil || !strings.Contains(err.Error(), "decode") {
		t.Fatalf("expected decode error, got %v", err)
	}
}

func TestRenderJSON(t *testing.T) {
	out, err := RenderJSON([]byte(`{"type":"AdaptiveCard","body":[{"type":"TextBlock","text":"x"}]}`))
	if err != nil {
		t.Fatalf("RenderJSON: %v", err)
	}
	if !strings.Contains(out, "data-card-root") {
		t.Fatalf("expected card root, got %s", out)
	}
	if _, err := RenderJSON([]byte("nope")); err == nil {
		t.Fatalf("expected error for invalid JSON")
	}
}
