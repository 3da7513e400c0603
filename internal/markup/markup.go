package markup

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/dgallion1/poemgen/internal/corpus"
)

const (
	blockDelimiter = "==="
	unitDelimiter  = "---"
)

// Directive prefixes recognised at the start of a unit line.
const (
	directiveLink  = "link"
	directiveAudio = "audio"
	directiveTop   = "top"
	directiveLeft  = "left"
)

// ErrInvalidMediaSpec is wrapped by every MarkupError.
var ErrInvalidMediaSpec = errors.New("invalid media spec")

// MarkupError reports a media token that does not match name or name[width].
type MarkupError struct {
	Line  int // 1-based source line
	Block int // 1-based block ordinal in source order
	Unit  int // 1-based unit ordinal within the block
	Token string
	Err   error
}

func (e *MarkupError) Error() string {
	return fmt.Sprintf("line %d (block %d, unit %d): %v: %q", e.Line, e.Block, e.Unit, e.Err, e.Token)
}

func (e *MarkupError) Unwrap() error { return e.Err }

var mediaSpecRe = regexp.MustCompile(`^([^\[\]]+)(?:\[(\d*)\])?$`)

// ParseMediaSpec parses a single `name` or `name[width]` token.
// An empty width (`name[]`) is treated as absent; `name[0]` keeps its zero width.
func ParseMediaSpec(token string) (corpus.MediaItem, error) {
	token = strings.TrimSpace(token)
	m := mediaSpecRe.FindStringSubmatch(token)
	if m == nil {
		return corpus.MediaItem{}, ErrInvalidMediaSpec
	}
	item := corpus.MediaItem{Filename: strings.TrimSpace(m[1])}
	if item.Filename == "" {
		return corpus.MediaItem{}, ErrInvalidMediaSpec
	}
	if m[2] != "" {
		w, err := strconv.Atoi(m[2])
		if err != nil {
			return corpus.MediaItem{}, fmt.Errorf("%w: width: %v", ErrInvalidMediaSpec, err)
		}
		item.Width = w
		item.HasWidth = true
	}
	return item, nil
}

// Parser turns poem markup into blocks of units.
type Parser struct{}

type sourceLine struct {
	n    int
	text string
}

// Parse reads the whole input and returns the units of every non-blank block
// in source order. Any MarkupError aborts the parse.
func (p *Parser) Parse(r io.Reader) ([][]corpus.Unit, error) {
	reader := bufio.NewReader(r)

	var (
		blocks [][]corpus.Unit
		block  []corpus.Unit
		lines  []sourceLine
		lineNo int
	)

	flushUnit := func() error {
		u, ok, err := parseUnit(lines, len(blocks)+1, len(block)+1)
		lines = lines[:0]
		if err != nil {
			return err
		}
		if ok {
			block = append(block, u)
		}
		return nil
	}
	flushBlock := func() {
		if len(block) > 0 {
			blocks = append(blocks, block)
			block = nil
		}
	}

	for {
		raw, readErr := reader.ReadString('\n')
		if readErr != nil && readErr != io.EOF {
			return nil, fmt.Errorf("read markup: %w", readErr)
		}
		if raw == "" && readErr == io.EOF {
			break
		}
		lineNo++
		line := strings.TrimSuffix(strings.TrimSuffix(raw, "\n"), "\r")
		switch strings.TrimSpace(line) {
		case blockDelimiter:
			if err := flushUnit(); err != nil {
				return nil, err
			}
			flushBlock()
		case unitDelimiter:
			if err := flushUnit(); err != nil {
				return nil, err
			}
		default:
			lines = append(lines, sourceLine{n: lineNo, text: line})
		}
		if readErr == io.EOF {
			break
		}
	}
	if err := flushUnit(); err != nil {
		return nil, err
	}
	flushBlock()

	return blocks, nil
}

// Parse parses markup and builds the numbered corpus.
func Parse(r io.Reader) (corpus.Corpus, error) {
	p := &Parser{}
	units, err := p.Parse(r)
	if err != nil {
		return corpus.Corpus{}, err
	}
	return corpus.Build(units), nil
}

// parseUnit returns ok=false for a unit that is blank after trimming.
func parseUnit(lines []sourceLine, blockNo, unitNo int) (corpus.Unit, bool, error) {
	first, last := 0, len(lines)-1
	for first <= last && strings.TrimSpace(lines[first].text) == "" {
		first++
	}
	for last >= first && strings.TrimSpace(lines[last].text) == "" {
		last--
	}
	if first > last {
		return corpus.Unit{}, false, nil
	}

	trimmed := make([]sourceLine, 0, last-first+1)
	trimmed = append(trimmed, lines[first:last+1]...)
	trimmed[0].text = strings.TrimLeftFunc(trimmed[0].text, unicode.IsSpace)
	trimmed[len(trimmed)-1].text = strings.TrimRightFunc(trimmed[len(trimmed)-1].text, unicode.IsSpace)

	var u corpus.Unit
	for _, l := range trimmed {
		prefix, rest, found := strings.Cut(l.text, ":")
		prefix = strings.TrimSpace(prefix)
		rest = strings.TrimSpace(rest)
		if !found || rest == "" {
			u.TextLines = append(u.TextLines, l.text)
			continue
		}

		switch prefix {
		case directiveLink:
			u.Links = append(u.Links, rest)
		case directiveAudio:
			u.AudioFiles = append(u.AudioFiles, rest)
		case directiveTop, directiveLeft:
			placement := corpus.Top
			if prefix == directiveLeft {
				placement = corpus.Left
			}
			group := corpus.MediaGroup{Placement: placement}
			for _, tok := range strings.Split(rest, ",") {
				tok = strings.TrimSpace(tok)
				if tok == "" {
					continue
				}
				item, err := ParseMediaSpec(tok)
				if err != nil {
					return corpus.Unit{}, false, &MarkupError{
						Line:  l.n,
						Block: blockNo,
						Unit:  unitNo,
						Token: tok,
						Err:   err,
					}
				}
				group.Items = append(group.Items, item)
			}
			// A list of only empty tokens still yields its (empty) group.
			u.MediaGroups = append(u.MediaGroups, group)
		default:
			u.TextLines = append(u.TextLines, l.text)
		}
	}
	return u, true, nil
}
