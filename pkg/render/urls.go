package render

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// URLPolicy returns the policy that decides which link, image and media
// URLs are written: http, https, mailto and relative URLs. Anything else,
// including javascript: and unparseable URLs, is dropped.
func URLPolicy() *bluemonday.Policy {
	policy := bluemonday.NewPolicy()
	policy.RequireParseableURLs(true)
	policy.AllowRelativeURLs(true)
	policy.AllowURLSchemes("http", "https", "mailto")
	policy.AllowAttrs("href").OnElements("a")
	return policy
}

// allowedURL returns raw trimmed when the URL policy keeps it as a link
// target.
func allowedURL(policy *bluemonday.Policy, raw string) (string, bool) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", false
	}
	probe := `<a href="` + html.EscapeString(trimmed) + `">.</a>`
	if !strings.Contains(policy.Sanitize(probe), "href=") {
		return "", false
	}
	return trimmed, true
}

func (i *Instance) safeURL(raw string) (string, bool) {
	return allowedURL(i.cfg.urls, raw)
}
