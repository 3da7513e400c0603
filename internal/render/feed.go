package render

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"net/url"
	"time"

	"github.com/dgallion1/poemgen/internal/corpus"
	"github.com/google/uuid"
)

const atomNamespace = "http://www.w3.org/2005/Atom"

// FeedEpoch is the base of the synthetic entry timestamps.
var FeedEpoch = time.Date(1970, time.January, 1, 0, 0, 0, 0, time.UTC)

// EntryTime is FeedEpoch plus one day per poem number, so entries sort by
// poem number regardless of when the feed was generated.
func EntryTime(number int) time.Time {
	return FeedEpoch.AddDate(0, 0, number)
}

type AtomFeed struct {
	XMLName xml.Name    `xml:"feed"`
	Xmlns   string      `xml:"xmlns,attr"`
	ID      string      `xml:"id"`
	Title   string      `xml:"title"`
	Updated string      `xml:"updated"`
	Author  AtomAuthor  `xml:"author"`
	Link    []AtomLink  `xml:"link"`
	Entry   []AtomEntry `xml:"entry"`
}

type AtomAuthor struct {
	Name string `xml:"name"`
	URI  string `xml:"uri,omitempty"`
}

type AtomEntry struct {
	ID        string     `xml:"id"`
	Title     string     `xml:"title"`
	Published string     `xml:"published"`
	Updated   string     `xml:"updated"`
	Link      []AtomLink `xml:"link"`
	Summary   AtomText   `xml:"summary"`
	Content   AtomCDATA  `xml:"content"`
}

type AtomLink struct {
	Href string `xml:"href,attr"`
	Rel  string `xml:"rel,attr"`
	Type string `xml:"type,attr,omitempty"`
}

type AtomText struct {
	Type    string `xml:"type,attr"`
	Content string `xml:",chardata"`
}

type AtomCDATA struct {
	Type    string `xml:"type,attr"`
	Content string `xml:",cdata"`
}

// FeedID is a stable identifier for the feed derived from the base URL.
func FeedID(baseURL string) string {
	return "urn:uuid:" + uuid.NewSHA1(uuid.NameSpaceURL, []byte(baseURL)).String()
}

// EntryID identifies a poem independently of the page it currently sits on.
func EntryID(host string, number int) string {
	return fmt.Sprintf("tag:%s,%s:poem-%d", host, FeedEpoch.Format(time.DateOnly), number)
}

func atomTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// BuildFeed assembles the Atom document for the corpus. Entry content is the
// poem's HTML with every media and link URL made absolute.
func BuildFeed(c corpus.Corpus, opts Options) (*AtomFeed, error) {
	base, err := url.Parse(opts.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}

	updated := FeedEpoch
	feed := &AtomFeed{
		Xmlns:  atomNamespace,
		ID:     FeedID(opts.BaseURL),
		Title:  opts.Title,
		Author: AtomAuthor{Name: opts.Author, URI: opts.BaseURL},
		Link: []AtomLink{{
			Href: opts.BaseURL + FeedFile,
			Rel:  "self",
			Type: "application/atom+xml",
		}, {
			Href: opts.BaseURL,
			Rel:  "alternate",
			Type: "text/html",
		}},
		Entry: make([]AtomEntry, c.Len()),
	}

	for i, b := range c.Blocks() {
		content, err := Absolutize(Block(b, opts.MediaDir), opts.BaseURL)
		if err != nil {
			return nil, fmt.Errorf("poem %d: %w", b.Number, err)
		}
		ts := EntryTime(b.Number)
		if ts.After(updated) {
			updated = ts
		}
		excerpt := Excerpt(b)
		feed.Entry[i] = AtomEntry{
			ID:        EntryID(base.Hostname(), b.Number),
			Title:     fmt.Sprintf("#%d %s", b.Number, excerpt),
			Published: atomTime(ts),
			Updated:   atomTime(ts),
			Link: []AtomLink{{
				Href: opts.BaseURL + PoemHref(i, b),
				Rel:  "alternate",
				Type: "text/html",
			}},
			Summary: AtomText{
				Type:    "text",
				Content: excerpt,
			},
			Content: AtomCDATA{
				Type:    "html",
				Content: content,
			},
		}
	}
	feed.Updated = atomTime(updated)

	return feed, nil
}

// Feed renders the Atom document.
func Feed(c corpus.Corpus, opts Options) ([]byte, error) {
	feed, err := BuildFeed(c, opts)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	encoder := xml.NewEncoder(&buf)
	encoder.Indent("", "  ")
	if err := encoder.Encode(feed); err != nil {
		return nil, fmt.Errorf("encode feed: %w", err)
	}
	buf.WriteString("\n")
	return buf.Bytes(), nil
}
