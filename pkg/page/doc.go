// Package page renders the HTML pages around card fragments: a standalone
// preview, the designer editor and the validation summary. Templates are
// pongo2 files embedded in the package and may be replaced wholesale.
package page
