package card

// Built-in node type tags.
const (
	TypeTextBlock      = "TextBlock"
	TypeImage          = "Image"
	TypeContainer      = "Container"
	TypeColumnSet      = "ColumnSet"
	TypeColumn         = "Column"
	TypeActionSet      = "ActionSet"
	TypeFactSet        = "FactSet"
	TypeImageSet       = "ImageSet"
	TypeMedia          = "Media"
	TypeRichTextBlock  = "RichTextBlock"
	TypeInputText      = "Input.Text"
	TypeInputNumber    = "Input.Number"
	TypeInputToggle    = "Input.Toggle"
	TypeInputChoiceSet = "Input.ChoiceSet"
	TypeInputDate      = "Input.Date"
	TypeInputTime      = "Input.Time"
)

// NodeTypes lists the built-in catalogue in declaration order.
func NodeTypes() []string {
	return []string{
		TypeTextBlock, TypeImage, TypeContainer, TypeColumnSet, TypeColumn,
		TypeActionSet, TypeFactSet, TypeImageSet, TypeMedia, TypeRichTextBlock,
		TypeInputText, TypeInputNumber, TypeInputToggle, TypeInputChoiceSet,
		TypeInputDate, TypeInputTime,
	}
}

// IsBuiltinNode reports whether tag belongs to the built-in catalogue.
func IsBuiltinNode(tag string) bool {
	for _, known := range NodeTypes() {
		if known == tag {
			return true
		}
	}
	return false
}

// Node is one element of a card body. The set of implementations is closed;
// documents carrying tags outside the catalogue parse into Unknown.
type Node interface {
	// NodeType returns the raw type tag, or "" when it was absent or not a
	// string.
	NodeType() string
	// NodeID returns the optional stable identifier.
	NodeID() string
	// Attributes exposes the original attribute map, including keys the
	// typed variant does not model.
	Attributes() map[string]any

	node()
}

// Base carries the fields shared by every node.
type Base struct {
	Type  string
	ID    string
	Attrs map[string]any
}

func (b Base) NodeType() string { return b.Type }

func (b Base) NodeID() string { return b.ID }

func (b Base) Attributes() map[string]any { return b.Attrs }

// Attr returns a single raw attribute.
func (b Base) Attr(key string) (any, bool) {
	if b.Attrs == nil {
		return nil, false
	}
	value, ok := b.Attrs[key]
	return value, ok
}

func (Base) node() {}

// Unknown is the fallback variant for tags outside the catalogue, or nodes
// with no usable tag at all.
type Unknown struct {
	Base
}

type TextBlock struct {
	Base
	Text   string
	Wrap   bool
	Size   string
	Weight string
	Color  string
}

type Image struct {
	Base
	URL     string
	AltText string
	Size    string
}

type Container struct {
	Base
	Items   []Node
	Spacing string
}

// WidthKind describes how a column claims horizontal space.
type WidthKind int

const (
	WidthStretch WidthKind = iota
	WidthAuto
	WidthPercent
)

// ColumnWidth is the resolved width of a column. Percent is only meaningful
// for WidthPercent and always lies within [0,100].
type ColumnWidth struct {
	Kind    WidthKind
	Percent float64
}

type Column struct {
	Base
	Width ColumnWidth
	Items []Node
}

type ColumnSet struct {
	Base
	Columns             []Column
	HorizontalAlignment string
}

type ActionSet struct {
	Base
	Actions []Action
}

type Fact struct {
	Title string
	Value string
}

type FactSet struct {
	Base
	Facts []Fact
}

type ImageSet struct {
	Base
	Images    []Image
	ImageSize string
}

type MediaSource struct {
	MimeType string
	URL      string
}

type Media struct {
	Base
	Sources  []MediaSource
	Poster   string
	AltText  string
	Autoplay bool
	Loop     bool
}

// TextRun is one inline of a RichTextBlock. Plain runs came from bare
// strings and carry no formatting.
type TextRun struct {
	Text      string
	Plain     bool
	Bold      bool
	Italic    bool
	Underline bool
	Size      string
}

type RichTextBlock struct {
	Base
	Inlines []TextRun
}

// InputText leaves Placeholder and Value nil when the document omits them.
type InputText struct {
	Base
	Placeholder *string
	Value       *string
	IsMultiline bool
}

type InputNumber struct {
	Base
	Placeholder *string
	Value       *float64
	Min         *float64
	Max         *float64
}

type InputToggle struct {
	Base
	Title string
	Value string
}

// Checked is true only for the exact stored value "true".
func (n InputToggle) Checked() bool {
	return n.Value == "true"
}

type Choice struct {
	Title string
	Value string
}

type InputChoiceSet struct {
	Base
	Placeholder   *string
	Style         string
	IsMultiSelect bool
	Choices       []Choice
	// Value holds the current selection: one entry at most for single-select,
	// any number for multi-select.
	Value []string
}

// Expanded reports whether choices render as individual radio or checkbox
// controls instead of a select list.
func (n InputChoiceSet) Expanded() bool {
	return n.Style == "expanded"
}

// Selected reports whether value is part of the current selection. Multi
// select uses membership, single select uses equality.
func (n InputChoiceSet) Selected(value string) bool {
	if !n.IsMultiSelect {
		return len(n.Value) == 1 && n.Value[0] == value
	}
	for _, current := range n.Value {
		if current == value {
			return true
		}
	}
	return false
}

type InputDate struct {
	Base
	Placeholder *string
	Value       *string
}

type InputTime struct {
	Base
	Placeholder *string
	Value       *string
}
