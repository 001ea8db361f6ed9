package workflow

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"

	"github.com/getkin/kin-openapi/openapi3"
)

// Operation ids declared by the bundled contract.
const (
	OpGenerate = "jottGenerate"
	OpContinue = "jottContinue"
	OpReview   = "reviewApprove"
)

//go:embed openapi.yaml
var bundledContract []byte

// BundledContract returns the raw OpenAPI document shipped with the package.
func BundledContract() []byte {
	out := make([]byte, len(bundledContract))
	copy(out, bundledContract)
	return out
}

// Operation is one POST endpoint resolved from the contract.
type Operation struct {
	ID      string
	Method  string
	Path    string
	Summary string

	request *openapi3.SchemaRef
}

// Contract indexes the operations of an OpenAPI document by operationId.
type Contract struct {
	operations map[string]Operation
}

// LoadContract parses and validates an OpenAPI 3 document.
func LoadContract(ctx context.Context, raw []byte) (*Contract, error) {
	if len(raw) == 0 {
		return nil, errors.New("workflow contract: document payload is empty")
	}

	loader := &openapi3.Loader{Context: ctx}
	spec, err := loader.LoadFromData(raw)
	if err != nil {
		return nil, fmt.Errorf("workflow contract: load document: %w", err)
	}
	if err := spec.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
		return nil, fmt.Errorf("workflow contract: validate: %w", err)
	}
	if spec.Paths == nil || spec.Paths.Len() == 0 {
		return nil, errors.New("workflow contract: document does not contain any paths")
	}

	contract := &Contract{operations: make(map[string]Operation)}
	for path, item := range spec.Paths.Map() {
		if item == nil || item.Post == nil || item.Post.OperationID == "" {
			continue
		}
		op := Operation{
			ID:      item.Post.OperationID,
			Method:  http.MethodPost,
			Path:    path,
			Summary: item.Post.Summary,
		}
		if body := item.Post.RequestBody; body != nil && body.Value != nil {
			if media := body.Value.Content.Get("application/json"); media != nil {
				op.request = media.Schema
			}
		}
		contract.operations[op.ID] = op
	}
	if len(contract.operations) == 0 {
		return nil, errors.New("workflow contract: no operations extracted")
	}
	return contract, nil
}

// Operation returns the operation registered under id.
func (c *Contract) Operation(id string) (Operation, bool) {
	op, ok := c.operations[id]
	return op, ok
}

// OperationIDs lists the known operation ids in sorted order.
func (c *Contract) OperationIDs() []string {
	ids := make([]string, 0, len(c.operations))
	for id := range c.operations {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Encode marshals payload and validates it against the request schema.
func (op Operation) Encode(payload any) ([]byte, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, &PayloadError{Operation: op.ID, Err: err}
	}
	if op.request == nil || op.request.Value == nil {
		return body, nil
	}

	var generic any
	if err := json.Unmarshal(body, &generic); err != nil {
		return nil, &PayloadError{Operation: op.ID, Err: err}
	}
	if err := op.request.Value.VisitJSON(generic); err != nil {
		return nil, &PayloadError{Operation: op.ID, Err: err}
	}
	return body, nil
}
