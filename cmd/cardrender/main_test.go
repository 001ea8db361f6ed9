package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(cfgPath, []byte("[log]\nlevel = \"error\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append(args, "--config", cfgPath))
	err := rootCmd.Execute()
	return out.String(), err
}

func writeCardFile(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "card.json")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write card: %v", err)
	}
	return path
}

func TestRenderCommand(t *testing.T) {
	path := writeCardFile(t, `{"type":"AdaptiveCard","version":"1.6","body":[{"type":"TextBlock","text":"CLI"}]}`)

	out, err := runCLI(t, "render", path)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(out, "CLI</p>") {
		t.Fatalf("unexpected output: %s", out)
	}
}

func TestValidateCommand(t *testing.T) {
	valid := writeCardFile(t, `{"type":"AdaptiveCard","version":"1.5","body":[]}`)
	out, err := runCLI(t, "validate", valid)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if !strings.Contains(out, "is valid (schema 1.5)") {
		t.Fatalf("unexpected output: %s", out)
	}

	invalid := writeCardFile(t, `{"type":"Card","body":{}}`)
	out, err = runCLI(t, "validate", invalid)
	if err == nil {
		t.Fatalf("expected validation failure")
	}
	for _, want := range []string{"has 3 errors", "type must be AdaptiveCard", "body must be an array"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
}

func TestWorkflowCommand_DisabledReportsError(t *testing.T) {
	_, err := runCLI(t, "workflow", "generate", "--prompt", "hi")
	if err == nil || !strings.Contains(err.Error(), "adapter disabled") {
		t.Fatalf("expected disabled adapter error, got %v", err)
	}
}

func TestValidateCommand_StrictReportsStructureWarnings(t *testing.T) {
	t.Cleanup(func() { _ = validateCmd.Flags().Set("strict", "false") })

	path := writeCardFile(t, `{"type":"AdaptiveCard","version":"1.6","body":[{"type":"TextBlock","isVisible":"no"}]}`)
	out, err := runCLI(t, "validate", path, "--strict")
	if err != nil {
		t.Fatalf("strict warnings must not fail validation: %v\n%s", err, out)
	}
	if !strings.Contains(out, "body.0.isVisible") {
		t.Fatalf("expected structure warning path, got:\n%s", out)
	}
}
