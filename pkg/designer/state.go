package designer

import "github.com/goliatone/go-cardrender/pkg/validation"

// StorageKey is the key the designer state is persisted under.
const StorageKey = "designer.state"

// DefaultMode is the generation mode of a fresh session.
const DefaultMode = "no-code"

// Session ties the editor to a workflow run.
type Session struct {
	CorrelationID string `json:"correlationId,omitempty"`
	JottID        string `json:"jottId,omitempty"`
	RunID         string `json:"runId,omitempty"`
	Mode          string `json:"mode"`
}

// Asset is a file or link attached to the document.
type Asset struct {
	Type string         `json:"type"`
	URL  string         `json:"url"`
	Meta map[string]any `json:"meta,omitempty"`
}

// Document is the card being edited. CardJSON is nil until a card is set.
type Document struct {
	CardJSON map[string]any `json:"cardJson"`
	Assets   []Asset        `json:"assets"`
}

// Panels records which editor panes are open.
type Panels struct {
	ComposerOpen bool `json:"composerOpen"`
	LayersOpen   bool `json:"layersOpen"`
	SidecarOpen  bool `json:"sidecarOpen"`
}

type UI struct {
	SelectedNodeID string `json:"selectedNodeId,omitempty"`
	Panels         Panels `json:"panels"`
}

// State is the complete designer snapshot.
type State struct {
	Session     Session            `json:"session"`
	Document    Document           `json:"document"`
	UI          UI                 `json:"ui"`
	Suggestions []string           `json:"suggestions"`
	Validation  *validation.Result `json:"validation,omitempty"`
}

// DefaultState returns the state of a fresh editor.
func DefaultState() State {
	return State{
		Session:     Session{Mode: DefaultMode},
		Document:    Document{Assets: []Asset{}},
		UI:          UI{Panels: Panels{ComposerOpen: true, LayersOpen: true, SidecarOpen: true}},
		Suggestions: []string{},
	}
}

// Patch is a partial update. Nil fields are left untouched; nested
// session, document and ui patches merge field by field.
type Patch struct {
	Session     *SessionPatch
	Document    *DocumentPatch
	UI          *UIPatch
	Suggestions *[]string
	Validation  *validation.Result
}

type SessionPatch struct {
	CorrelationID *string
	JottID        *string
	RunID         *string
	Mode          *string
}

type DocumentPatch struct {
	CardJSON map[string]any
	Assets   *[]Asset
}

type UIPatch struct {
	SelectedNodeID *string
	Panels         *Panels
}

func (s State) apply(p Patch) State {
	if sp := p.Session; sp != nil {
		if sp.CorrelationID != nil {
			s.Session.CorrelationID = *sp.CorrelationID
		}
		if sp.JottID != nil {
			s.Session.JottID = *sp.JottID
		}
		if sp.RunID != nil {
			s.Session.RunID = *sp.RunID
		}
		if sp.Mode != nil {
			s.Session.Mode = *sp.Mode
		}
	}
	if dp := p.Document; dp != nil {
		if dp.CardJSON != nil {
			s.Document.CardJSON = dp.CardJSON
		}
		if dp.Assets != nil {
			s.Document.Assets = append([]Asset(nil), (*dp.Assets)...)
		}
	}
	if up := p.UI; up != nil {
		if up.SelectedNodeID != nil {
			s.UI.SelectedNodeID = *up.SelectedNodeID
		}
		if up.Panels != nil {
			s.UI.Panels = *up.Panels
		}
	}
	if p.Suggestions != nil {
		s.Suggestions = append([]string(nil), (*p.Suggestions)...)
	}
	if p.Validation != nil {
		v := *p.Validation
		s.Validation = &v
	}
	return s
}

// clone copies the slices so callers cannot mutate stored state.
func (s State) clone() State {
	s.Document.Assets = append([]Asset{}, s.Document.Assets...)
	s.Suggestions = append([]string{}, s.Suggestions...)
	if s.Validation != nil {
		v := *s.Validation
		s.Validation = &v
	}
	return s
}
