package card

// Built-in action type tags.
const (
	TypeActionOpenURL          = "Action.OpenUrl"
	TypeActionSubmit           = "Action.Submit"
	TypeActionShowCard         = "Action.ShowCard"
	TypeActionToggleVisibility = "Action.ToggleVisibility"
)

// DefaultActionTitle labels actions whose title is absent or not a string.
const DefaultActionTitle = "Action"

// IsBuiltinAction reports whether tag is one of the built-in action types.
func IsBuiltinAction(tag string) bool {
	switch tag {
	case TypeActionOpenURL, TypeActionSubmit, TypeActionShowCard, TypeActionToggleVisibility:
		return true
	default:
		return false
	}
}

// Action is an interactive control declaration attached to a card or an
// ActionSet. The set of implementations is closed.
type Action interface {
	ActionType() string
	ActionID() string
	ActionTitle() string
	Attributes() map[string]any

	action()
}

// ActionBase carries the fields shared by every action.
type ActionBase struct {
	Type  string
	ID    string
	Title string
	Attrs map[string]any
}

func (a ActionBase) ActionType() string { return a.Type }

func (a ActionBase) ActionID() string { return a.ID }

func (a ActionBase) ActionTitle() string { return a.Title }

func (a ActionBase) Attributes() map[string]any { return a.Attrs }

func (ActionBase) action() {}

type OpenURL struct {
	ActionBase
	URL string
}

// Submit is rendered as a labelled control only; Data is kept for callers
// that wire submission themselves.
type Submit struct {
	ActionBase
	Data any
}

// ShowCard owns its nested card. Card is nil when the document omits it or
// supplies something other than an object.
type ShowCard struct {
	ActionBase
	Card *Card
}

// ToggleTarget names one element affected by a ToggleVisibility action. A
// nil IsVisible flips the current state.
type ToggleTarget struct {
	ElementID string
	IsVisible *bool
}

type ToggleVisibility struct {
	ActionBase
	Targets []ToggleTarget
}

// UnknownAction is the fallback for unrecognised action tags.
type UnknownAction struct {
	ActionBase
}
