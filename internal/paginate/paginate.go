package paginate

import (
	"fmt"

	"github.com/dgallion1/poemgen/internal/corpus"
)

// PageSize is the number of blocks per page.
const PageSize = 5

// IndexFile is the output file of page 1.
const IndexFile = "index.html"

// Page is a contiguous run of blocks.
type Page struct {
	Index  int // 1-based
	Total  int
	Blocks []corpus.Block
}

// Nav holds the navigation targets of one page. Empty strings mean no link.
type Nav struct {
	Prev   string
	Next   string
	IsLast bool
}

// TotalPages returns ceil(n / PageSize).
func TotalPages(n int) int {
	return (n + PageSize - 1) / PageSize
}

// FileName returns the output file for a 1-based page index.
func FileName(page int) string {
	if page <= 1 {
		return IndexFile
	}
	return fmt.Sprintf("page%d.html", page)
}

// PageOf returns the 1-based page holding the block at 0-based position i.
func PageOf(i int) int {
	return i/PageSize + 1
}

// Navigation depends only on the page index and the page count.
func Navigation(page, total int) Nav {
	var n Nav
	if page > 1 {
		n.Prev = FileName(page - 1)
	}
	if page < total {
		n.Next = FileName(page + 1)
	}
	n.IsLast = page == total
	return n
}

// Split partitions the corpus into pages without gaps or overlap.
func Split(c corpus.Corpus) []Page {
	total := TotalPages(c.Len())
	pages := make([]Page, total)
	for k := 1; k <= total; k++ {
		pages[k-1] = Page{
			Index:  k,
			Total:  total,
			Blocks: c.Slice((k-1)*PageSize, k*PageSize),
		}
	}
	return pages
}

// FileName returns this page's output file.
func (p Page) FileName() string { return FileName(p.Index) }

// Nav returns this page's navigation.
func (p Page) Nav() Nav { return Navigation(p.Index, p.Total) }
