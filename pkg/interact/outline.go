package interact

import (
	"html"
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var blockBreaks = strings.NewReplacer(
	"</p>", "</p>\n",
	"</div>", "</div>\n",
	"</tr>", "</tr>\n",
	"</td>", "</td> ",
	"</th>", "</th> ",
	"</label>", "</label>\n",
	"</button>", "</button>\n",
	"</a>", "</a>\n",
	"</option>", "</option>\n",
	"<br>", "\n",
)

var strict = bluemonday.StrictPolicy()

// Outline reduces rendered card markup to its visible text, one block per
// line. Placeholders and button titles are kept as text.
func Outline(markup string) string {
	text := html.UnescapeString(strict.Sanitize(blockBreaks.Replace(markup)))
	lines := strings.Split(text, "\n")
	out := lines[:0]
	for _, line := range lines {
		line = strings.Join(strings.Fields(line), " ")
		if line != "" {
			out = append(out, line)
		}
	}
	return strings.Join(out, "\n")
}

var markdownEscaper = strings.NewReplacer(
	`\`, `\\`,
	"`", "\\`",
	"*", `\*`,
	"_", `\_`,
	"[", `\[`,
	"]", `\]`,
	"#", `\#`,
	"<", `\<`,
	">", `\>`,
	"|", `\|`,
	"~", `\~`,
)

var orderedMarker = regexp.MustCompile(`^(\d+)([.)])`)

// escapeMarkdown makes one line of card text render literally as markdown:
// inline markers are backslash-escaped, as are list markers at the start.
func escapeMarkdown(line string) string {
	line = markdownEscaper.Replace(line)
	switch {
	case strings.HasPrefix(line, "-"), strings.HasPrefix(line, "+"):
		return `\` + line
	case orderedMarker.MatchString(line):
		return orderedMarker.ReplaceAllString(line, `$1\$2`)
	}
	return line
}
