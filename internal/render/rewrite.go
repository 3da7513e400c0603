package render

import (
	"bytes"
	"fmt"
	"io"
	"net/url"
	"strings"

	"golang.org/x/net/html"
)

// urlAttrs lists the attributes holding a URL, per element.
var urlAttrs = map[string]string{
	"a":      "href",
	"img":    "src",
	"video":  "src",
	"audio":  "src",
	"source": "src",
}

// Absolutize resolves every relative href/src in an HTML fragment against
// base. Text is copied through untouched, so existing escapes are preserved.
func Absolutize(fragment, base string) (string, error) {
	baseURL, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("parse base url: %w", err)
	}

	var out bytes.Buffer
	tokenizer := html.NewTokenizer(strings.NewReader(fragment))
	for {
		tokenType := tokenizer.Next()
		switch tokenType {
		case html.ErrorToken:
			if err := tokenizer.Err(); err != io.EOF {
				return "", err
			}
			return out.String(), nil
		case html.StartTagToken, html.SelfClosingTagToken:
			if err := writeTag(&out, tokenizer, tokenType, baseURL); err != nil {
				return "", err
			}
		default:
			out.Write(tokenizer.Raw())
		}
	}
}

func writeTag(out *bytes.Buffer, tokenizer *html.Tokenizer, tokenType html.TokenType, baseURL *url.URL) error {
	name, moreAttr := tokenizer.TagName()
	tag := string(name)
	out.WriteString("<")
	out.WriteString(tag)

	rewritten := urlAttrs[tag]
	for moreAttr {
		var key, val []byte
		key, val, moreAttr = tokenizer.TagAttr()
		value := string(val)
		if rewritten != "" && string(key) == rewritten {
			ref, err := url.Parse(value)
			if err != nil {
				return fmt.Errorf("resolve %s %s: %w", tag, key, err)
			}
			value = baseURL.ResolveReference(ref).String()
		}
		out.WriteString(" ")
		out.Write(key)
		out.WriteString(`="`)
		out.WriteString(html.EscapeString(value))
		out.WriteString(`"`)
	}

	if tokenType == html.SelfClosingTagToken {
		out.WriteString("/>")
		return nil
	}
	out.WriteString(">")
	return nil
}
