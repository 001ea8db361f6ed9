package card

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// TypeAdaptiveCard is the type tag carried by card roots.
const TypeAdaptiveCard = "AdaptiveCard"

// Card is the root of a document. Body and Actions are never nil after
// parsing.
type Card struct {
	Type    string
	Version string
	Body    []Node
	Actions []Action
	Attrs   map[string]any
}

// Empty reports whether the card has neither body nodes nor actions.
func (c Card) Empty() bool {
	return len(c.Body) == 0 && len(c.Actions) == 0
}

// Attributes returns the original root attribute map.
func (c Card) Attributes() map[string]any {
	return c.Attrs
}

// Parse converts a loosely typed document into a Card. Anything that is not
// an object yields an empty card.
func Parse(raw any) Card {
	attrs, ok := asMap(raw)
	if !ok {
		return Card{Body: []Node{}, Actions: []Action{}, Attrs: map[string]any{}}
	}
	return parseCard(attrs)
}

// ParseJSON decodes a JSON document and parses it. Only syntactically
// invalid JSON is reported as an error.
func ParseJSON(data []byte) (Card, error) {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return Card{}, fmt.Errorf("card: decode json: %w", err)
	}
	return Parse(raw), nil
}

// ParseYAML decodes a YAML document and parses it.
func ParseYAML(data []byte) (Card, error) {
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return Card{}, fmt.Errorf("card: decode yaml: %w", err)
	}
	return Parse(raw), nil
}

type cardAttrs struct {
	Type    *string `mapstructure:"type"`
	Version *string `mapstructure:"version"`
	Body    []any   `mapstructure:"body"`
	Actions []any   `mapstructure:"actions"`
}

func parseCard(attrs map[string]any) Card {
	var raw cardAttrs
	_ = decodeAttrs(attrs, &raw)

	return Card{
		Type:    stringOr(raw.Type, ""),
		Version: stringOr(raw.Version, ""),
		Body:    parseNodes(raw.Body),
		Actions: parseActions(raw.Actions),
		Attrs:   cloneAttrs(attrs),
	}
}
