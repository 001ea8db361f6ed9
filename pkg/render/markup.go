package render

import (
	"bytes"
	"html"
	"strconv"
)

func writeAttr(buf *bytes.Buffer, name, value string) {
	buf.WriteString(` `)
	buf.WriteString(name)
	buf.WriteString(`="`)
	buf.WriteString(html.EscapeString(value))
	buf.WriteString(`"`)
}

// writeOptionalAttr skips empty values.
func writeOptionalAttr(buf *bytes.Buffer, name, value string) {
	if value == "" {
		return
	}
	writeAttr(buf, name, value)
}

func writeBoolAttr(buf *bytes.Buffer, name string, set bool) {
	if !set {
		return
	}
	buf.WriteString(` `)
	buf.WriteString(name)
}

func writeClass(buf *bytes.Buffer, classes string) {
	writeOptionalAttr(buf, "class", classes)
}

func writeText(buf *bytes.Buffer, text string) {
	buf.WriteString(html.EscapeString(text))
}

func formatNumber(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}

func derefString(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}

// joinKey builds control and node paths such as "body.2.actions.0".
func joinKey(prefix string, segments ...any) string {
	var buf bytes.Buffer
	buf.WriteString(prefix)
	for _, segment := range segments {
		if buf.Len() > 0 {
			buf.WriteByte('.')
		}
		switch value := segment.(type) {
		case int:
			buf.WriteString(strconv.Itoa(value))
		case string:
			buf.WriteString(value)
		}
	}
	return buf.String()
}
