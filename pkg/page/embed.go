package page

import (
	"embed"
	"io/fs"
)

//go:embed templates/*.tmpl
var embeddedTemplates embed.FS

// Template names inside TemplatesFS.
const (
	TemplatePreview    = "templates/preview"
	TemplateEditor     = "templates/editor"
	TemplateValidation = "templates/validation"
)

// TemplatesFS exposes the built-in page templates so callers can extend or
// replace them.
func TemplatesFS() fs.FS {
	return embeddedTemplates
}
