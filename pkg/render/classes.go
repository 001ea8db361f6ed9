package render

import (
	"strconv"

	"github.com/goliatone/go-cardrender/pkg/card"
)

// Structural classes applied by the built-in renderers.
const (
	ClassRoot          = "space-y-3"
	ClassBody          = "space-y-2"
	ClassActionSet     = "flex flex-row flex-wrap gap-2"
	ClassButton        = "px-3 py-1.5 rounded border text-sm hover:bg-gray-50"
	ClassInput         = "border rounded p-2 text-sm w-full"
	ClassChoiceGroup   = "flex flex-col gap-1"
	ClassChoiceLabel   = "inline-flex items-center gap-2 text-sm"
	ClassColumnSet     = "flex -mx-2 flex-row gap-0"
	ClassColumn        = "px-2"
	ClassFactSet       = "text-sm"
	ClassFactTitle     = "pr-4 text-gray-600 whitespace-nowrap"
	ClassImageSet      = "flex flex-row flex-wrap gap-2"
	ClassMedia         = "w-full"
	ClassShowCardPanel = "mt-2 p-2 border rounded"
	ClassPlaceholder   = "text-xs text-gray-500"
	ClassErrorPanel    = "mt-2 border border-red-200 bg-red-50 text-red-800 rounded p-2 text-sm"
)

// Classes holds the keyword lookup tables that translate card attributes into
// CSS class strings. Lookups fall back to the "default" entry of each table
// when a keyword is absent or unrecognised.
type Classes struct {
	TextSize   map[string]string
	TextWeight map[string]string
	TextColor  map[string]string
	HAlign     map[string]string
	Spacing    map[string]string
	ImageSize  map[string]string
	RunSize    map[string]string
	WrapOn     string
	WrapOff    string
}

// DefaultClasses returns the Tailwind-flavoured tables used unless
// WithClasses supplies replacements.
func DefaultClasses() Classes {
	return Classes{
		TextSize: map[string]string{
			"default":    "text-base",
			"small":      "text-sm",
			"medium":     "text-base",
			"large":      "text-lg",
			"extraLarge": "text-xl",
		},
		TextWeight: map[string]string{
			"default": "",
			"lighter": "font-light",
			"bolder":  "font-bold",
		},
		TextColor: map[string]string{
			"default":   "text-inherit",
			"accent":    "text-blue-600",
			"good":      "text-green-600",
			"warning":   "text-amber-600",
			"attention": "text-red-600",
		},
		HAlign: map[string]string{
			"default": "justify-start",
			"left":    "justify-start",
			"center":  "justify-center",
			"right":   "justify-end",
		},
		Spacing: map[string]string{
			"default":    "space-y-2",
			"none":       "space-y-0",
			"small":      "space-y-1",
			"medium":     "space-y-3",
			"large":      "space-y-4",
			"extraLarge": "space-y-6",
			"padding":    "space-y-4",
		},
		ImageSize: map[string]string{
			"default": "w-auto h-auto",
			"auto":    "w-auto h-auto",
			"small":   "w-16 h-auto",
			"medium":  "w-32 h-auto",
			"large":   "w-64 h-auto",
			"stretch": "w-full h-auto",
		},
		RunSize: map[string]string{
			"default": "text-base",
			"small":   "text-sm",
			"large":   "text-lg",
		},
		WrapOn:  "whitespace-normal",
		WrapOff: "whitespace-nowrap",
	}
}

func lookupClass(table map[string]string, keyword string) string {
	if class, ok := table[keyword]; ok {
		return class
	}
	return table["default"]
}

func (c Classes) textSize(keyword string) string   { return lookupClass(c.TextSize, keyword) }
func (c Classes) textWeight(keyword string) string { return lookupClass(c.TextWeight, keyword) }
func (c Classes) textColor(keyword string) string  { return lookupClass(c.TextColor, keyword) }
func (c Classes) hAlign(keyword string) string     { return lookupClass(c.HAlign, keyword) }
func (c Classes) spacing(keyword string) string    { return lookupClass(c.Spacing, keyword) }
func (c Classes) runSize(keyword string) string    { return lookupClass(c.RunSize, keyword) }

func (c Classes) imageSize(keyword string) string {
	return joinClasses(lookupClass(c.ImageSize, keyword), "object-contain")
}

func (c Classes) wrap(enabled bool) string {
	if enabled {
		return c.WrapOn
	}
	return c.WrapOff
}

func columnWidthClass(width card.ColumnWidth) string {
	switch width.Kind {
	case card.WidthAuto:
		return "flex-none"
	case card.WidthPercent:
		return "grow-0 shrink-0 basis-[" + strconv.FormatFloat(width.Percent, 'f', -1, 64) + "%]"
	default:
		return "flex-1"
	}
}

// joinClasses concatenates the non-empty class fragments with single spaces.
func joinClasses(parts ...string) string {
	out := make([]byte, 0, 64)
	for _, part := range parts {
		if part == "" {
			continue
		}
		if len(out) > 0 {
			out = append(out, ' ')
		}
		out = append(out, part...)
	}
	return string(out)
}
