// Package designer holds the card editor's session state: the workflow run
// it is attached to, the card document, open panels, suggestions and the
// last validation result. Every change is written through to a Store.
package designer
