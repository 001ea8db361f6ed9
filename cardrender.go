// Package cardrender renders Adaptive Card documents to HTML. This root
// package holds file-level conveniences and the embedded browser runtime;
// the work happens in pkg/card, pkg/render and their siblings.
package cardrender

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-cardrender/pkg/card"
	"github.com/goliatone/go-cardrender/pkg/render"
)

// LoadDocument reads a card file into generic values. Files ending in .yaml
// or .yml are YAML; everything else is JSON.
func LoadDocument(path string) (any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cardrender: read %s: %w", path, err)
	}
	var doc any
	if isYAML(path) {
		err = yaml.Unmarshal(data, &doc)
	} else {
		err = json.Unmarshal(data, &doc)
	}
	if err != nil {
		return nil, fmt.Errorf("cardrender: decode %s: %w", path, err)
	}
	return doc, nil
}

// LoadFile reads and parses a card file.
func LoadFile(path string) (card.Card, error) {
	doc, err := LoadDocument(path)
	if err != nil {
		return card.Card{}, err
	}
	return card.Parse(doc), nil
}

// RenderJSON parses data and renders it once.
func RenderJSON(data []byte, options ...render.Option) (string, error) {
	c, err := card.ParseJSON(data)
	if err != nil {
		return "", err
	}
	return render.RenderCard(c, options...), nil
}

// RenderFile loads path and renders it once.
func RenderFile(path string, options ...render.Option) (string, error) {
	c, err := LoadFile(path)
	if err != nil {
		return "", err
	}
	return render.RenderCard(c, options...), nil
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}
