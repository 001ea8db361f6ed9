package card

import "strings"

// ParseNode converts one loosely typed node. Values that are not objects
// become an Unknown with an empty tag.
func ParseNode(raw any) Node {
	attrs, ok := asMap(raw)
	if !ok {
		return Unknown{Base: Base{Attrs: map[string]any{}}}
	}
	base := baseFrom(attrs)

	switch base.Type {
	case TypeTextBlock:
		return parseTextBlock(base)
	case TypeImage:
		return parseImage(base)
	case TypeContainer:
		return parseContainer(base)
	case TypeColumnSet:
		return parseColumnSet(base)
	case TypeColumn:
		return parseColumn(base)
	case TypeActionSet:
		return parseActionSet(base)
	case TypeFactSet:
		return parseFactSet(base)
	case TypeImageSet:
		return parseImageSet(base)
	case TypeMedia:
		return parseMedia(base)
	case TypeRichTextBlock:
		return parseRichTextBlock(base)
	case TypeInputText:
		return parseInputText(base)
	case TypeInputNumber:
		return parseInputNumber(base)
	case TypeInputToggle:
		return parseInputToggle(base)
	case TypeInputChoiceSet:
		return parseInputChoiceSet(base)
	case TypeInputDate:
		placeholder, value := parsePlaceholderValue(base)
		return InputDate{Base: base, Placeholder: placeholder, Value: value}
	case TypeInputTime:
		placeholder, value := parsePlaceholderValue(base)
		return InputTime{Base: base, Placeholder: placeholder, Value: value}
	default:
		return Unknown{Base: base}
	}
}

func parseNodes(raw []any) []Node {
	nodes := make([]Node, 0, len(raw))
	for _, item := range raw {
		nodes = append(nodes, ParseNode(item))
	}
	return nodes
}

func baseFrom(attrs map[string]any) Base {
	base := Base{Attrs: cloneAttrs(attrs)}
	if tag, ok := asString(attrs["type"]); ok {
		base.Type = tag
	}
	if id, ok := asString(attrs["id"]); ok {
		base.ID = id
	}
	return base
}

type textBlockAttrs struct {
	Text   any     `mapstructure:"text"`
	Wrap   *bool   `mapstructure:"wrap"`
	Size   *string `mapstructure:"size"`
	Weight *string `mapstructure:"weight"`
	Color  *string `mapstructure:"color"`
}

func parseTextBlock(base Base) TextBlock {
	var raw textBlockAttrs
	_ = decodeAttrs(base.Attrs, &raw)
	return TextBlock{
		Base:   base,
		Text:   scalarString(raw.Text),
		Wrap:   boolOr(raw.Wrap, true),
		Size:   stringOr(raw.Size, ""),
		Weight: stringOr(raw.Weight, ""),
		Color:  stringOr(raw.Color, ""),
	}
}

type imageAttrs struct {
	URL     *string `mapstructure:"url"`
	AltText *string `mapstructure:"altText"`
	Size    *string `mapstructure:"size"`
}

func parseImage(base Base) Image {
	var raw imageAttrs
	_ = decodeAttrs(base.Attrs, &raw)
	return Image{
		Base:    base,
		URL:     stringOr(raw.URL, ""),
		AltText: stringOr(raw.AltText, ""),
		Size:    stringOr(raw.Size, ""),
	}
}

type containerAttrs struct {
	Items   []any   `mapstructure:"items"`
	Spacing *string `mapstructure:"spacing"`
}

func parseContainer(base Base) Container {
	var raw containerAttrs
	_ = decodeAttrs(base.Attrs, &raw)
	return Container{
		Base:    base,
		Items:   parseNodes(raw.Items),
		Spacing: stringOr(raw.Spacing, ""),
	}
}

type columnSetAttrs struct {
	Columns             []any   `mapstructure:"columns"`
	HorizontalAlignment *string `mapstructure:"horizontalAlignment"`
}

func parseColumnSet(base Base) ColumnSet {
	var raw columnSetAttrs
	_ = decodeAttrs(base.Attrs, &raw)

	columns := make([]Column, 0, len(raw.Columns))
	for _, item := range raw.Columns {
		attrs, ok := asMap(item)
		if !ok {
			attrs = map[string]any{}
		}
		columns = append(columns, parseColumn(baseFrom(attrs)))
	}
	return ColumnSet{
		Base:                base,
		Columns:             columns,
		HorizontalAlignment: stringOr(raw.HorizontalAlignment, ""),
	}
}

type columnAttrs struct {
	Width any   `mapstructure:"width"`
	Items []any `mapstructure:"items"`
}

func parseColumn(base Base) Column {
	var raw columnAttrs
	_ = decodeAttrs(base.Attrs, &raw)
	return Column{
		Base:  base,
		Width: parseColumnWidth(raw.Width),
		Items: parseNodes(raw.Items),
	}
}

func parseColumnWidth(value any) ColumnWidth {
	if pct, ok := asFloat(value); ok {
		if pct < 0 {
			pct = 0
		}
		if pct > 100 {
			pct = 100
		}
		return ColumnWidth{Kind: WidthPercent, Percent: pct}
	}
	if keyword, ok := asString(value); ok && keyword == "auto" {
		return ColumnWidth{Kind: WidthAuto}
	}
	return ColumnWidth{Kind: WidthStretch}
}

type actionSetAttrs struct {
	Actions []any `mapstructure:"actions"`
}

func parseActionSet(base Base) ActionSet {
	var raw actionSetAttrs
	_ = decodeAttrs(base.Attrs, &raw)
	return ActionSet{Base: base, Actions: parseActions(raw.Actions)}
}

type factSetAttrs struct {
	Facts []any `mapstructure:"facts"`
}

func parseFactSet(base Base) FactSet {
	var raw factSetAttrs
	_ = decodeAttrs(base.Attrs, &raw)

	facts := make([]Fact, 0, len(raw.Facts))
	for _, item := range raw.Facts {
		attrs, ok := asMap(item)
		if !ok {
			continue
		}
		facts = append(facts, Fact{
			Title: scalarString(attrs["title"]),
			Value: scalarString(attrs["value"]),
		})
	}
	return FactSet{Base: base, Facts: facts}
}

type imageSetAttrs struct {
	Images    []any   `mapstructure:"images"`
	ImageSize *string `mapstructure:"imageSize"`
}

func parseImageSet(base Base) ImageSet {
	var raw imageSetAttrs
	_ = decodeAttrs(base.Attrs, &raw)

	images := make([]Image, 0, len(raw.Images))
	for _, item := range raw.Images {
		attrs, ok := asMap(item)
		if !ok {
			continue
		}
		images = append(images, parseImage(baseFrom(attrs)))
	}
	return ImageSet{
		Base:      base,
		Images:    images,
		ImageSize: stringOr(raw.ImageSize, "medium"),
	}
}

type mediaAttrs struct {
	Sources  []any   `mapstructure:"sources"`
	Poster   *string `mapstructure:"poster"`
	AltText  *string `mapstructure:"altText"`
	Autoplay *bool   `mapstructure:"autoplay"`
	Loop     *bool   `mapstructure:"loop"`
}

func parseMedia(base Base) Media {
	var raw mediaAttrs
	_ = decodeAttrs(base.Attrs, &raw)

	sources := make([]MediaSource, 0, len(raw.Sources))
	for _, item := range raw.Sources {
		attrs, ok := asMap(item)
		if !ok {
			continue
		}
		mime, _ := asString(attrs["mimeType"])
		url, _ := asString(attrs["url"])
		sources = append(sources, MediaSource{MimeType: mime, URL: url})
	}
	return Media{
		Base:     base,
		Sources:  sources,
		Poster:   stringOr(raw.Poster, ""),
		AltText:  stringOr(raw.AltText, ""),
		Autoplay: boolOr(raw.Autoplay, false),
		Loop:     boolOr(raw.Loop, false),
	}
}

type textRunAttrs struct {
	Text      any     `mapstructure:"text"`
	Bold      *bool   `mapstructure:"bold"`
	Weight    *string `mapstructure:"weight"`
	Italic    *bool   `mapstructure:"italic"`
	Underline *bool   `mapstructure:"underline"`
	Size      *string `mapstructure:"size"`
}

type richTextAttrs struct {
	Inlines []any `mapstructure:"inlines"`
}

func parseRichTextBlock(base Base) RichTextBlock {
	var raw richTextAttrs
	_ = decodeAttrs(base.Attrs, &raw)

	runs := make([]TextRun, 0, len(raw.Inlines))
	for _, item := range raw.Inlines {
		if text, ok := asString(item); ok {
			runs = append(runs, TextRun{Text: text, Plain: true})
			continue
		}
		attrs, ok := asMap(item)
		if !ok {
			continue
		}
		var run textRunAttrs
		_ = decodeAttrs(attrs, &run)
		runs = append(runs, TextRun{
			Text:      scalarString(run.Text),
			Bold:      boolOr(run.Bold, false) || stringOr(run.Weight, "") == "bolder",
			Italic:    boolOr(run.Italic, false),
			Underline: boolOr(run.Underline, false),
			Size:      stringOr(run.Size, ""),
		})
	}
	return RichTextBlock{Base: base, Inlines: runs}
}

type placeholderValueAttrs struct {
	Placeholder *string `mapstructure:"placeholder"`
	Value       *string `mapstructure:"value"`
}

func parsePlaceholderValue(base Base) (*string, *string) {
	var raw placeholderValueAttrs
	_ = decodeAttrs(base.Attrs, &raw)
	return raw.Placeholder, raw.Value
}

type inputTextAttrs struct {
	Placeholder *string `mapstructure:"placeholder"`
	Value       *string `mapstructure:"value"`
	IsMultiline *bool   `mapstructure:"isMultiline"`
}

func parseInputText(base Base) InputText {
	var raw inputTextAttrs
	_ = decodeAttrs(base.Attrs, &raw)
	return InputText{
		Base:        base,
		Placeholder: raw.Placeholder,
		Value:       raw.Value,
		IsMultiline: boolOr(raw.IsMultiline, false),
	}
}

type inputNumberAttrs struct {
	Placeholder *string  `mapstructure:"placeholder"`
	Value       *float64 `mapstructure:"value"`
	Min         *float64 `mapstructure:"min"`
	Max         *float64 `mapstructure:"max"`
}

func parseInputNumber(base Base) InputNumber {
	var raw inputNumberAttrs
	_ = decodeAttrs(base.Attrs, &raw)
	return InputNumber{
		Base:        base,
		Placeholder: raw.Placeholder,
		Value:       raw.Value,
		Min:         raw.Min,
		Max:         raw.Max,
	}
}

type inputToggleAttrs struct {
	Title any `mapstructure:"title"`
	Value any `mapstructure:"value"`
}

func parseInputToggle(base Base) InputToggle {
	var raw inputToggleAttrs
	_ = decodeAttrs(base.Attrs, &raw)
	value, _ := asString(raw.Value)
	return InputToggle{
		Base:  base,
		Title: scalarString(raw.Title),
		Value: value,
	}
}

type choiceSetAttrs struct {
	Placeholder   *string `mapstructure:"placeholder"`
	Style         *string `mapstructure:"style"`
	IsMultiSelect *bool   `mapstructure:"isMultiSelect"`
	Choices       []any   `mapstructure:"choices"`
	Value         any     `mapstructure:"value"`
}

func parseInputChoiceSet(base Base) InputChoiceSet {
	var raw choiceSetAttrs
	_ = decodeAttrs(base.Attrs, &raw)

	choices := make([]Choice, 0, len(raw.Choices))
	for _, item := range raw.Choices {
		attrs, ok := asMap(item)
		if !ok {
			continue
		}
		choices = append(choices, Choice{
			Title: scalarString(attrs["title"]),
			Value: scalarString(attrs["value"]),
		})
	}

	multi := boolOr(raw.IsMultiSelect, false)
	return InputChoiceSet{
		Base:          base,
		Placeholder:   raw.Placeholder,
		Style:         stringOr(raw.Style, ""),
		IsMultiSelect: multi,
		Choices:       choices,
		Value:         choiceValues(raw.Value, multi),
	}
}

// choiceValues normalises the current selection. Single select accepts a
// scalar only; multi select accepts a sequence or a comma separated string.
func choiceValues(value any, multi bool) []string {
	if value == nil {
		return nil
	}
	if !multi {
		if _, isList := asSlice(value); isList {
			return nil
		}
		if _, isMap := asMap(value); isMap {
			return nil
		}
		str := scalarString(value)
		if str == "" {
			return nil
		}
		return []string{str}
	}

	if items, ok := asSlice(value); ok {
		out := make([]string, 0, len(items))
		for _, item := range items {
			if str := scalarString(item); str != "" {
				out = append(out, str)
			}
		}
		return out
	}
	str, ok := asString(value)
	if !ok || str == "" {
		return nil
	}
	parts := strings.Split(str, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// ParseAction converts one loosely typed action.
func ParseAction(raw any) Action {
	attrs, ok := asMap(raw)
	if !ok {
		return UnknownAction{ActionBase: ActionBase{Title: DefaultActionTitle, Attrs: map[string]any{}}}
	}
	base := actionBaseFrom(attrs)

	switch base.Type {
	case TypeActionOpenURL:
		url, _ := asString(attrs["url"])
		return OpenURL{ActionBase: base, URL: url}
	case TypeActionSubmit:
		return Submit{ActionBase: base, Data: attrs["data"]}
	case TypeActionShowCard:
		action := ShowCard{ActionBase: base}
		if nested, ok := asMap(attrs["card"]); ok {
			inner := parseCard(nested)
			action.Card = &inner
		}
		return action
	case TypeActionToggleVisibility:
		return ToggleVisibility{ActionBase: base, Targets: parseToggleTargets(attrs["targetElements"])}
	default:
		return UnknownAction{ActionBase: base}
	}
}

func parseActions(raw []any) []Action {
	actions := make([]Action, 0, len(raw))
	for _, item := range raw {
		actions = append(actions, ParseAction(item))
	}
	return actions
}

func actionBaseFrom(attrs map[string]any) ActionBase {
	base := ActionBase{Title: DefaultActionTitle, Attrs: cloneAttrs(attrs)}
	if tag, ok := asString(attrs["type"]); ok {
		base.Type = tag
	}
	if id, ok := asString(attrs["id"]); ok {
		base.ID = id
	}
	if title, ok := asString(attrs["title"]); ok {
		base.Title = title
	}
	return base
}

type toggleTargetAttrs struct {
	ElementID *string `mapstructure:"elementId"`
	IsVisible *bool   `mapstructure:"isVisible"`
}

func parseToggleTargets(value any) []ToggleTarget {
	items, ok := asSlice(value)
	if !ok {
		return []ToggleTarget{}
	}
	targets := make([]ToggleTarget, 0, len(items))
	for _, item := range items {
		if id, ok := asString(item); ok {
			targets = append(targets, ToggleTarget{ElementID: id})
			continue
		}
		attrs, ok := asMap(item)
		if !ok {
			continue
		}
		var raw toggleTargetAttrs
		_ = decodeAttrs(attrs, &raw)
		if raw.ElementID == nil {
			continue
		}
		targets = append(targets, ToggleTarget{ElementID: *raw.ElementID, IsVisible: raw.IsVisible})
	}
	return targets
}
