package render

import (
	"bytes"
	"strings"
)

// DefaultErrorTitle labels error panels rendered without a title.
const DefaultErrorTitle = "Error"

// ErrorPanel renders a labelled alert for failures outside the card itself,
// such as workflow requests. It returns "" when there is nothing to show.
func ErrorPanel(title, details, correlationID string) string {
	details = strings.TrimSpace(details)
	correlationID = strings.TrimSpace(correlationID)
	if details == "" && correlationID == "" {
		return ""
	}
	if strings.TrimSpace(title) == "" {
		title = DefaultErrorTitle
	}

	var buf bytes.Buffer
	buf.WriteString(`<div`)
	writeClass(&buf, ClassErrorPanel)
	buf.WriteString(` role="alert"><div class="font-semibold">`)
	writeText(&buf, title)
	buf.WriteString(`</div>`)
	if details != "" {
		buf.WriteString(`<div class="mt-1 whitespace-pre-wrap">`)
		writeText(&buf, details)
		buf.WriteString(`</div>`)
	}
	if correlationID != "" {
		buf.WriteString(`<div class="mt-1 text-xs opacity-80">correlationId: <code>`)
		writeText(&buf, correlationID)
		buf.WriteString(`</code></div>`)
	}
	buf.WriteString(`</div>`)
	return buf.String()
}
