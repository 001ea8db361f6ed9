package workflow

import "github.com/goliatone/go-cardrender/pkg/card"

// Status is the processing state reported by the workflow service.
type Status string

const (
	StatusOK      Status = "ok"
	StatusError   Status = "error"
	StatusPending Status = "pending"
)

// Generation modes.
const (
	ModeNoCode  = "no-code"
	ModeProCode = "pro-code"
)

// Continuation actions.
const (
	ActionExpand   = "expand"
	ActionAnalyze  = "analyze"
	ActionLateral  = "lateral"
	ActionTemporal = "temporal"
)

// Review decisions.
const (
	DecisionApprove = "approve"
	DecisionRevise  = "revise"
)

type GeneratePayload struct {
	Prompt      string         `json:"prompt"`
	Context     map[string]any `json:"context,omitempty"`
	Constraints map[string]any `json:"constraints,omitempty"`
	Mode        string         `json:"mode,omitempty"`
	DraftLevel  int            `json:"draftLevel,omitempty"`
}

type ContinuePayload struct {
	JottID        string         `json:"jottId,omitempty"`
	PriorContent  map[string]any `json:"priorContent,omitempty"`
	DesiredAction string         `json:"desiredAction,omitempty"`
	Context       map[string]any `json:"context,omitempty"`
}

type ReviewPayload struct {
	WorkflowID string `json:"workflowId"`
	Step       string `json:"step"`
	Decision   string `json:"decision"`
	Feedback   string `json:"feedback,omitempty"`
}

type GenerateResponse struct {
	CorrelationID           string           `json:"correlationId,omitempty"`
	Status                  Status           `json:"status"`
	CardJSON                map[string]any   `json:"cardJson,omitempty"`
	Assets                  []map[string]any `json:"assets,omitempty"`
	ContinuationSuggestions []string         `json:"continuationSuggestions,omitempty"`
	Trace                   []map[string]any `json:"trace,omitempty"`
}

// Card parses the generated card. ok is false when the response carries none.
func (r GenerateResponse) Card() (c card.Card, ok bool) {
	if r.CardJSON == nil {
		return card.Card{}, false
	}
	return card.Parse(r.CardJSON), true
}

type ContinueResponse struct {
	CorrelationID   string           `json:"correlationId,omitempty"`
	Status          Status           `json:"status"`
	UpdatedCardJSON map[string]any   `json:"updatedCardJson,omitempty"`
	NextJott        map[string]any   `json:"nextJott,omitempty"`
	Suggestions     []string         `json:"suggestions,omitempty"`
	Trace           []map[string]any `json:"trace,omitempty"`
}

// Card parses the updated card. ok is false when the response carries none.
func (r ContinueResponse) Card() (c card.Card, ok bool) {
	if r.UpdatedCardJSON == nil {
		return card.Card{}, false
	}
	return card.Parse(r.UpdatedCardJSON), true
}

type ReviewResponse struct {
	CorrelationID string         `json:"correlationId,omitempty"`
	Status        Status         `json:"status"`
	NextStep      string         `json:"nextStep,omitempty"`
	Links         map[string]any `json:"links,omitempty"`
}
