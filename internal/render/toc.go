package render

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
	"unicode"

	"github.com/dgallion1/poemgen/internal/corpus"
	"github.com/dgallion1/poemgen/internal/media"
	"github.com/dgallion1/poemgen/internal/paginate"
)

// PlaceholderExcerpt stands in for poems without any text.
const PlaceholderExcerpt = "(untitled)"

const ellipsis = "…"

// Thumbnail is a media-relative image shown next to a TOC entry.
type Thumbnail struct {
	Src string
	Alt string
}

// TOCEntry is one line of the table of contents.
type TOCEntry struct {
	Number  int
	Href    string
	Excerpt string
	Thumb   *Thumbnail
}

// Excerpt returns the first non-blank text line of the poem with trailing
// punctuation removed and an ellipsis appended.
func Excerpt(b corpus.Block) string {
	for _, u := range b.Units {
		for _, line := range u.TextLines {
			s := strings.TrimSpace(line)
			if s == "" {
				continue
			}
			s = strings.TrimRightFunc(s, func(r rune) bool {
				return unicode.IsPunct(r) || unicode.IsSpace(r)
			})
			return s + ellipsis
		}
	}
	return PlaceholderExcerpt
}

// FirstMedia returns the first media item of the poem across all units.
func FirstMedia(b corpus.Block) (corpus.MediaItem, bool) {
	for _, u := range b.Units {
		for _, g := range u.MediaGroups {
			if len(g.Items) > 0 {
				return g.Items[0], true
			}
		}
	}
	return corpus.MediaItem{}, false
}

// ThumbnailFile picks the TOC image for a poem. Images are used directly; for
// a video the prober is asked for a same-named still image.
func ThumbnailFile(b corpus.Block, prober media.SiblingImageProber) (string, bool) {
	item, ok := FirstMedia(b)
	if !ok {
		return "", false
	}
	switch media.Classify(item.Filename) {
	case media.Image:
		return item.Filename, true
	case media.Video:
		if prober == nil {
			return "", false
		}
		return prober.ProbeSiblingImage(media.StripExt(item.Filename))
	default:
		return "", false
	}
}

// PoemHref is the page-relative link to a poem at source position i.
func PoemHref(i int, b corpus.Block) string {
	return paginate.FileName(paginate.PageOf(i)) + "#" + Anchor(b.Number)
}

// TOCEntries lists every poem in source order.
func TOCEntries(c corpus.Corpus, prober media.SiblingImageProber, mediaDir string) []TOCEntry {
	entries := make([]TOCEntry, c.Len())
	for i, b := range c.Blocks() {
		e := TOCEntry{
			Number:  b.Number,
			Href:    PoemHref(i, b),
			Excerpt: Excerpt(b),
		}
		if name, ok := ThumbnailFile(b, prober); ok {
			e.Thumb = &Thumbnail{Src: mediaSrc(mediaDir, name), Alt: media.Alt(name)}
		}
		entries[i] = e
	}
	return entries
}

type tocData struct {
	Layout
	Intro   template.HTML
	Entries []TOCEntry
}

// TOC renders the table of contents document.
func TOC(c corpus.Corpus, prober media.SiblingImageProber, opts Options) ([]byte, error) {
	data := tocData{
		Layout:  opts.layout(),
		Intro:   opts.Intro,
		Entries: TOCEntries(c, prober, opts.MediaDir),
	}

	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, "toc.html", data); err != nil {
		return nil, fmt.Errorf("render toc: %w", err)
	}
	return buf.Bytes(), nil
}
