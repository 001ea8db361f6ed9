package render

import (
	"bytes"

	"github.com/goliatone/go-cardrender/pkg/card"
)

// writeInputIdentity emits id and name from the node id so submitted values
// are keyed the same way the card addresses them.
func writeInputIdentity(buf *bytes.Buffer, base card.Base) {
	if base.ID == "" {
		return
	}
	writeAttr(buf, "id", base.ID)
	writeAttr(buf, "name", base.ID)
}

func (i *Instance) renderInputText(buf *bytes.Buffer, n card.InputText) {
	if n.IsMultiline {
		buf.WriteString(`<textarea`)
		writeInputIdentity(buf, n.Base)
		writeClass(buf, ClassInput)
		if n.Placeholder != nil {
			writeAttr(buf, "placeholder", *n.Placeholder)
		}
		buf.WriteString(`>`)
		writeText(buf, derefString(n.Value))
		buf.WriteString(`</textarea>`)
		return
	}
	buf.WriteString(`<input type="text"`)
	writeInputIdentity(buf, n.Base)
	writeClass(buf, ClassInput)
	if n.Placeholder != nil {
		writeAttr(buf, "placeholder", *n.Placeholder)
	}
	if n.Value != nil {
		writeAttr(buf, "value", *n.Value)
	}
	buf.WriteString(`>`)
}

func (i *Instance) renderInputNumber(buf *bytes.Buffer, n card.InputNumber) {
	buf.WriteString(`<input type="number"`)
	writeInputIdentity(buf, n.Base)
	writeClass(buf, ClassInput)
	if n.Placeholder != nil {
		writeAttr(buf, "placeholder", *n.Placeholder)
	}
	if n.Value != nil {
		writeAttr(buf, "value", formatNumber(*n.Value))
	}
	if n.Min != nil {
		writeAttr(buf, "min", formatNumber(*n.Min))
	}
	if n.Max != nil {
		writeAttr(buf, "max", formatNumber(*n.Max))
	}
	buf.WriteString(`>`)
}

func (i *Instance) renderInputToggle(buf *bytes.Buffer, n card.InputToggle) {
	buf.WriteString(`<label`)
	writeClass(buf, ClassChoiceLabel)
	buf.WriteString(`><input type="checkbox"`)
	writeInputIdentity(buf, n.Base)
	buf.WriteString(` value="true"`)
	writeBoolAttr(buf, "checked", n.Checked())
	buf.WriteString(`>`)
	writeText(buf, n.Title)
	buf.WriteString(`</label>`)
}

func (i *Instance) renderChoiceSet(buf *bytes.Buffer, n card.InputChoiceSet) {
	if n.Expanded() {
		i.renderExpandedChoices(buf, n)
		return
	}

	buf.WriteString(`<select`)
	writeInputIdentity(buf, n.Base)
	writeClass(buf, ClassInput)
	writeBoolAttr(buf, "multiple", n.IsMultiSelect)
	buf.WriteString(`>`)
	if n.Placeholder != nil && !n.IsMultiSelect {
		buf.WriteString(`<option value="" disabled`)
		writeBoolAttr(buf, "selected", len(n.Value) == 0)
		buf.WriteString(`>`)
		writeText(buf, *n.Placeholder)
		buf.WriteString(`</option>`)
	}
	for _, choice := range n.Choices {
		buf.WriteString(`<option`)
		writeAttr(buf, "value", choice.Value)
		writeBoolAttr(buf, "selected", n.Selected(choice.Value))
		buf.WriteString(`>`)
		writeText(buf, choice.Title)
		buf.WriteString(`</option>`)
	}
	buf.WriteString(`</select>`)
}

func (i *Instance) renderExpandedChoices(buf *bytes.Buffer, n card.InputChoiceSet) {
	kind, role := "radio", "radiogroup"
	if n.IsMultiSelect {
		kind, role = "checkbox", "group"
	}
	buf.WriteString(`<div`)
	writeOptionalAttr(buf, "id", n.ID)
	writeClass(buf, ClassChoiceGroup)
	writeAttr(buf, "role", role)
	buf.WriteString(`>`)
	for _, choice := range n.Choices {
		buf.WriteString(`<label`)
		writeClass(buf, ClassChoiceLabel)
		buf.WriteString(`><input`)
		writeAttr(buf, "type", kind)
		writeOptionalAttr(buf, "name", n.ID)
		writeAttr(buf, "value", choice.Value)
		writeBoolAttr(buf, "checked", n.Selected(choice.Value))
		buf.WriteString(`>`)
		writeText(buf, choice.Title)
		buf.WriteString(`</label>`)
	}
	buf.WriteString(`</div>`)
}

func (i *Instance) renderInputTemporal(buf *bytes.Buffer, kind string, base card.Base, placeholder, value *string) {
	buf.WriteString(`<input`)
	writeAttr(buf, "type", kind)
	writeInputIdentity(buf, base)
	writeClass(buf, ClassInput)
	if placeholder != nil {
		writeAttr(buf, "placeholder", *placeholder)
	}
	if value != nil {
		writeAttr(buf, "value", *value)
	}
	buf.WriteString(`>`)
}
