package render

import (
	"bytes"
	"strings"

	"github.com/goliatone/go-cardrender/pkg/card"
)

func (i *Instance) renderTextBlock(buf *bytes.Buffer, n card.TextBlock) {
	classes := i.cfg.classes
	buf.WriteString(`<p`)
	writeOptionalAttr(buf, "data-card-id", n.ID)
	writeClass(buf, joinClasses(
		classes.textSize(n.Size),
		classes.textWeight(n.Weight),
		classes.textColor(n.Color),
		classes.wrap(n.Wrap),
	))
	buf.WriteString(`>`)
	writeText(buf, n.Text)
	buf.WriteString(`</p>`)
}

// renderImage uses n.Size unless sizeOverride is set, which is how ImageSet
// applies its uniform size.
func (i *Instance) renderImage(buf *bytes.Buffer, n card.Image, sizeOverride string) {
	size := n.Size
	if sizeOverride != "" {
		size = sizeOverride
	}
	buf.WriteString(`<img`)
	writeOptionalAttr(buf, "data-card-id", n.ID)
	if src, ok := i.safeURL(n.URL); ok {
		writeAttr(buf, "src", src)
	}
	writeAttr(buf, "alt", n.AltText)
	writeClass(buf, i.cfg.classes.imageSize(size))
	buf.WriteString(`>`)
}

func (i *Instance) renderContainer(buf *bytes.Buffer, n card.Container, path string) {
	buf.WriteString(`<div`)
	writeOptionalAttr(buf, "data-card-id", n.ID)
	writeClass(buf, i.cfg.classes.spacing(n.Spacing))
	buf.WriteString(`>`)
	for index, item := range n.Items {
		i.renderNode(buf, item, index, joinKey(path, "items", index))
	}
	buf.WriteString(`</div>`)
}

func (i *Instance) renderColumnSet(buf *bytes.Buffer, n card.ColumnSet, path string) {
	buf.WriteString(`<div`)
	writeOptionalAttr(buf, "data-card-id", n.ID)
	writeClass(buf, joinClasses(ClassColumnSet, i.cfg.classes.hAlign(n.HorizontalAlignment)))
	buf.WriteString(`>`)
	for index, column := range n.Columns {
		i.renderNode(buf, column, index, joinKey(path, "columns", index))
	}
	buf.WriteString(`</div>`)
}

func (i *Instance) renderColumn(buf *bytes.Buffer, n card.Column, path string) {
	buf.WriteString(`<div`)
	writeOptionalAttr(buf, "data-card-id", n.ID)
	writeClass(buf, joinClasses(ClassColumn, columnWidthClass(n.Width)))
	if n.Width.Kind == card.WidthPercent {
		writeAttr(buf, "style", "flex-basis:"+formatNumber(n.Width.Percent)+"%")
	}
	buf.WriteString(`>`)
	for index, item := range n.Items {
		i.renderNode(buf, item, index, joinKey(path, "items", index))
	}
	buf.WriteString(`</div>`)
}

func (i *Instance) renderFactSet(buf *bytes.Buffer, n card.FactSet) {
	buf.WriteString(`<table`)
	writeOptionalAttr(buf, "data-card-id", n.ID)
	writeClass(buf, ClassFactSet)
	buf.WriteString(`><tbody>`)
	for _, fact := range n.Facts {
		buf.WriteString(`<tr><td`)
		writeClass(buf, ClassFactTitle)
		buf.WriteString(`>`)
		writeText(buf, fact.Title)
		buf.WriteString(`</td><td>`)
		writeText(buf, fact.Value)
		buf.WriteString(`</td></tr>`)
	}
	buf.WriteString(`</tbody></table>`)
}

func (i *Instance) renderImageSet(buf *bytes.Buffer, n card.ImageSet) {
	buf.WriteString(`<div`)
	writeOptionalAttr(buf, "data-card-id", n.ID)
	writeClass(buf, ClassImageSet)
	buf.WriteString(`>`)
	for _, image := range n.Images {
		if image.ID != "" && !i.Visible(image.ID) {
			continue
		}
		i.renderImage(buf, image, n.ImageSize)
	}
	buf.WriteString(`</div>`)
}

// mediaElement picks the presentation from the first video source, then the
// first audio source, and otherwise falls back to video.
func mediaElement(sources []card.MediaSource) string {
	for _, source := range sources {
		if strings.HasPrefix(source.MimeType, "video/") {
			return "video"
		}
	}
	for _, source := range sources {
		if strings.HasPrefix(source.MimeType, "audio/") {
			return "audio"
		}
	}
	return "video"
}

func (i *Instance) renderMedia(buf *bytes.Buffer, n card.Media) {
	element := mediaElement(n.Sources)
	buf.WriteString(`<`)
	buf.WriteString(element)
	writeOptionalAttr(buf, "data-card-id", n.ID)
	writeClass(buf, ClassMedia)
	buf.WriteString(` controls`)
	if element == "video" {
		if poster, ok := i.safeURL(n.Poster); ok {
			writeAttr(buf, "poster", poster)
		}
	}
	writeBoolAttr(buf, "autoplay", n.Autoplay)
	writeBoolAttr(buf, "loop", n.Loop)
	writeOptionalAttr(buf, "aria-label", n.AltText)
	buf.WriteString(`>`)
	for _, source := range n.Sources {
		src, ok := i.safeURL(source.URL)
		if !ok {
			continue
		}
		buf.WriteString(`<source`)
		writeAttr(buf, "src", src)
		writeOptionalAttr(buf, "type", source.MimeType)
		buf.WriteString(`>`)
	}
	writeText(buf, n.AltText)
	buf.WriteString(`</`)
	buf.WriteString(element)
	buf.WriteString(`>`)
}

func (i *Instance) renderRichText(buf *bytes.Buffer, n card.RichTextBlock) {
	classes := i.cfg.classes
	buf.WriteString(`<p`)
	writeOptionalAttr(buf, "data-card-id", n.ID)
	writeClass(buf, joinClasses(classes.textSize(""), classes.wrap(true)))
	buf.WriteString(`>`)
	for _, run := range n.Inlines {
		if run.Plain {
			buf.WriteString(`<span>`)
			writeText(buf, run.Text)
			buf.WriteString(`</span>`)
			continue
		}
		var weight, style, decoration string
		if run.Bold {
			weight = "font-bold"
		}
		if run.Italic {
			style = "italic"
		}
		if run.Underline {
			decoration = "underline"
		}
		buf.WriteString(`<span`)
		writeClass(buf, joinClasses(weight, style, decoration, classes.runSize(run.Size)))
		buf.WriteString(`>`)
		writeText(buf, run.Text)
		buf.WriteString(`</span>`)
	}
	buf.WriteString(`</p>`)
}
