package corpus

import "slices"

// Placement is where a media group sits relative to the poem text.
type Placement int

const (
	Top  Placement = iota // full-width row above the unit
	Left                  // column beside the poem text
)

func (p Placement) String() string {
	if p == Left {
		return "left"
	}
	return "top"
}

// MediaItem is one image or video reference.
type MediaItem struct {
	Filename string
	Width    int // pixels, meaningful when HasWidth is set
	HasWidth bool
}

// MediaGroup is one `top:` or `left:` directive.
type MediaGroup struct {
	Placement Placement
	Items     []MediaItem
}

// Unit is the smallest addressable piece of a poem.
type Unit struct {
	Links       []string
	MediaGroups []MediaGroup
	AudioFiles  []string
	TextLines   []string
}

// HasLeft reports whether any media group is placed beside the text.
func (u Unit) HasLeft() bool {
	for _, g := range u.MediaGroups {
		if g.Placement == Left {
			return true
		}
	}
	return false
}

// Groups returns the unit's media groups with the given placement, in order.
func (u Unit) Groups(p Placement) []MediaGroup {
	var out []MediaGroup
	for _, g := range u.MediaGroups {
		if g.Placement == p {
			out = append(out, g)
		}
	}
	return out
}

// Block is one published poem.
type Block struct {
	Number int // poem number, highest for the first block in the source
	Units  []Unit
}

// Corpus is the ordered, read-only set of blocks in source order.
type Corpus struct {
	blocks []Block
}

// Build assigns poem numbers by reverse position and freezes the result.
// The first block in units gets len(units), the last gets 1.
func Build(units [][]Unit) Corpus {
	blocks := make([]Block, len(units))
	for i, u := range units {
		blocks[i] = Block{
			Number: len(units) - i,
			Units:  slices.Clone(u),
		}
	}
	return Corpus{blocks: blocks}
}

// Len returns the number of blocks.
func (c Corpus) Len() int { return len(c.blocks) }

// Block returns the block at source index i.
func (c Corpus) Block(i int) Block { return c.blocks[i] }

// Blocks returns a copy of the block slice in source order.
func (c Corpus) Blocks() []Block { return slices.Clone(c.blocks) }

// Slice returns a copy of blocks [start, end), clamped to the corpus bounds.
func (c Corpus) Slice(start, end int) []Block {
	start = max(0, min(start, len(c.blocks)))
	end = max(start, min(end, len(c.blocks)))
	return slices.Clone(c.blocks[start:end])
}
