package render

import (
	"fmt"
	"net/url"
	"path"
	"strconv"
	"strings"

	"github.com/dgallion1/poemgen/internal/corpus"
	"github.com/dgallion1/poemgen/internal/media"
	"golang.org/x/net/html"
)

// Class names shared with the stylesheet.
const (
	classBlock     = "poem-block"
	classNumber    = "poem-number"
	classUnit      = "poem-unit"
	classLeftUnit  = "left-image"
	classTopRow    = "image-row"
	classLeftCol   = "image-column"
	classLinks     = "poem-links"
	unitSeparator  = "\n<br>\n"
	videoFallback  = "Your browser does not support the video tag."
	audioFallback  = "Your browser does not support the audio element."
	mediaPreload   = "metadata"
	anchorTarget   = "_blank"
	anchorRelation = "noopener"
)

var textEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

// EscapeText escapes &, < and > for use inside <pre>. Quotes are left alone.
func EscapeText(s string) string {
	return textEscaper.Replace(s)
}

// Anchor returns the element id of a poem.
func Anchor(number int) string {
	return strconv.Itoa(number)
}

// mediaSrc returns the percent-encoded relative URL of a media file, so names
// holding %, ? or # stay part of the path.
func mediaSrc(mediaDir, filename string) string {
	p := filename
	if mediaDir != "" {
		p = path.Join(mediaDir, filename)
	}
	return (&url.URL{Path: p}).String()
}

func writeMediaItem(sb *strings.Builder, mediaDir string, item corpus.MediaItem) {
	src := html.EscapeString(mediaSrc(mediaDir, item.Filename))
	style := ""
	if item.HasWidth {
		style = fmt.Sprintf(` style="width:%dpx"`, item.Width)
	}
	if media.IsVideo(item.Filename) {
		fmt.Fprintf(sb, `    <video controls loop preload="%s"%s><source src="%s" type="%s">%s</video>`+"\n",
			mediaPreload, style, src, media.VideoType(item.Filename), videoFallback)
		return
	}
	fmt.Fprintf(sb, `    <img src="%s" alt="%s"%s>`+"\n", src, html.EscapeString(media.Alt(item.Filename)), style)
}

func writeGroup(sb *strings.Builder, mediaDir string, g corpus.MediaGroup) {
	class := classTopRow
	if g.Placement == corpus.Left {
		class = classLeftCol
	}
	fmt.Fprintf(sb, "  <div class=\"%s\">\n", class)
	for _, item := range g.Items {
		writeMediaItem(sb, mediaDir, item)
	}
	sb.WriteString("  </div>\n")
}

// Unit renders one unit: links, then top media, then the unit container with
// left media and the poem text, then audio.
func Unit(u corpus.Unit, mediaDir string) string {
	var sb strings.Builder

	if len(u.Links) > 0 {
		fmt.Fprintf(&sb, "<div class=\"%s\">\n", classLinks)
		for _, link := range u.Links {
			href := html.EscapeString(link)
			fmt.Fprintf(&sb, "  <a href=\"%s\" target=\"%s\" rel=\"%s\">%s</a>\n", href, anchorTarget, anchorRelation, href)
		}
		sb.WriteString("</div>\n")
	}

	for _, g := range u.Groups(corpus.Top) {
		writeGroup(&sb, mediaDir, g)
	}

	class := classUnit
	if u.HasLeft() {
		class += " " + classLeftUnit
	}
	fmt.Fprintf(&sb, "<div class=\"%s\">\n", class)
	for _, g := range u.Groups(corpus.Left) {
		writeGroup(&sb, mediaDir, g)
	}
	if len(u.TextLines) > 0 {
		sb.WriteString("  <pre>")
		sb.WriteString(EscapeText(strings.Join(u.TextLines, "\n")))
		sb.WriteString("</pre>\n")
	}
	sb.WriteString("</div>")

	for _, a := range u.AudioFiles {
		fmt.Fprintf(&sb, "\n<audio controls preload=\"%s\"><source src=\"%s\" type=\"%s\">%s</audio>",
			mediaPreload, html.EscapeString(mediaSrc(mediaDir, a)), media.AudioType(a), audioFallback)
	}

	return sb.String()
}

// Block renders a poem as a container anchored by its number.
func Block(b corpus.Block, mediaDir string) string {
	units := make([]string, len(b.Units))
	for i, u := range b.Units {
		units[i] = Unit(u, mediaDir)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "<div class=\"%s\" id=\"%s\">\n", classBlock, Anchor(b.Number))
	fmt.Fprintf(&sb, "<div class=\"%s\">#%d</div>\n", classNumber, b.Number)
	sb.WriteString(strings.Join(units, unitSeparator))
	sb.WriteString("\n</div>")
	return sb.String()
}
