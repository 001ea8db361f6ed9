package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goliatone/go-cardrender"
	"github.com/goliatone/go-cardrender/pkg/page"
	"github.com/goliatone/go-cardrender/pkg/render"
)

// Renders every card fixture into a standalone HTML page for eyeballing
// markup changes in a browser.
func main() {
	var (
		fixtures = flag.String("fixtures", "pkg/testsupport/cards", "directory of card fixtures")
		output   = flag.String("output", "tmp/previews", "directory for the generated pages")
		sheet    = flag.String("stylesheet", "https://cdn.jsdelivr.net/npm/tailwindcss@2/dist/tailwind.min.css", "stylesheet linked from each page")
	)
	flag.Parse()

	if err := run(*fixtures, *output, *sheet); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(fixtures, output, stylesheet string) error {
	paths, err := filepath.Glob(filepath.Join(fixtures, "*.json"))
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return fmt.Errorf("no fixtures under %s", fixtures)
	}
	if err := os.MkdirAll(output, 0o755); err != nil {
		return err
	}

	pages, err := page.New(page.WithRuntimePath(""), page.WithStylesheet(stylesheet))
	if err != nil {
		return err
	}
	policy := render.WithOverridePolicy(render.OverridePolicy())

	for _, path := range paths {
		fragment, err := cardrender.RenderFile(path, policy)
		if err != nil {
			return err
		}
		name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		out, err := pages.Preview(name, fragment)
		if err != nil {
			return err
		}
		target := filepath.Join(output, name+".html")
		if err := os.WriteFile(target, out, 0o644); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", target)
	}
	return nil
}
