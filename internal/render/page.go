package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/url"

	"github.com/dgallion1/poemgen/internal/paginate"
)

// Output file names other than the paginated pages.
const (
	TOCFile  = "toc.html"
	FeedFile = "feed.xml"
)

// EndMarker closes the last page.
const EndMarker = "The end."

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

// Options carries the site identity and asset locations shared by every
// renderer.
type Options struct {
	Title      string
	BaseURL    string // absolute, with trailing slash
	Author     string
	MediaDir   string // relative to the output directory
	Stylesheet string
	Version    string // cache-busting token appended to the stylesheet URL
	Intro      template.HTML
}

// StylesheetHref returns the stylesheet URL with the cache-busting token.
func (o Options) StylesheetHref() string {
	if o.Version == "" {
		return o.Stylesheet
	}
	return o.Stylesheet + "?v=" + url.QueryEscape(o.Version)
}

// Layout is the header data common to every HTML document.
type Layout struct {
	Title      string
	Stylesheet string
	TOCFile    string
	FeedFile   string
	IndexFile  string
}

func (o Options) layout() Layout {
	return Layout{
		Title:      o.Title,
		Stylesheet: o.StylesheetHref(),
		TOCFile:    TOCFile,
		FeedFile:   FeedFile,
		IndexFile:  paginate.IndexFile,
	}
}

type pageData struct {
	Layout
	Blocks    []template.HTML
	Index     int
	Total     int
	Nav       paginate.Nav
	EndMarker string
}

// Page renders a full HTML document for one page.
func Page(p paginate.Page, opts Options) ([]byte, error) {
	data := pageData{
		Layout:    opts.layout(),
		Index:     p.Index,
		Total:     p.Total,
		Nav:       p.Nav(),
		EndMarker: EndMarker,
	}
	for _, b := range p.Blocks {
		data.Blocks = append(data.Blocks, template.HTML(Block(b, opts.MediaDir)))
	}

	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, "page.html", data); err != nil {
		return nil, fmt.Errorf("render page %d: %w", p.Index, err)
	}
	return buf.Bytes(), nil
}
