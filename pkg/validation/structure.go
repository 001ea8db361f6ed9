package validation

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
)

//go:embed card.schema.json
var cardSchemaJSON []byte

var (
	cardSchemaOnce sync.Once
	cardSchema     *openapi3.Schema
	cardSchemaErr  error
)

func loadCardSchema() (*openapi3.Schema, error) {
	cardSchemaOnce.Do(func() {
		schema := &openapi3.Schema{}
		if err := json.Unmarshal(cardSchemaJSON, schema); err != nil {
			cardSchemaErr = fmt.Errorf("validation: parse card schema: %w", err)
			return
		}
		cardSchema = schema
	})
	return cardSchema, cardSchemaErr
}

// WithStructureCheck also matches the top-level elements and actions against
// the bundled card schema and reports every mismatch as a warning.
func WithStructureCheck() Option {
	return func(cfg *config) {
		cfg.structure = true
	}
}

// CheckStructure matches doc against the bundled card schema. Root-level
// type, version and body problems are left to Validate.
func CheckStructure(doc any) []Issue {
	schema, err := loadCardSchema()
	if err != nil {
		return []Issue{{Path: "", Message: err.Error()}}
	}
	err = schema.VisitJSON(doc, openapi3.MultiErrors())
	if err == nil {
		return nil
	}
	var issues []Issue
	collectSchemaIssues(err, &issues)
	return issues
}

func collectSchemaIssues(err error, out *[]Issue) {
	var multi openapi3.MultiError
	if errors.As(err, &multi) {
		for _, inner := range multi {
			collectSchemaIssues(inner, out)
		}
		return
	}
	var schemaErr *openapi3.SchemaError
	if errors.As(err, &schemaErr) {
		*out = append(*out, Issue{
			Path:    strings.Join(schemaErr.JSONPointer(), "."),
			Message: schemaErr.Reason,
		})
		return
	}
	*out = append(*out, Issue{Path: "", Message: err.Error()})
}
