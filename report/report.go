// Package report turns mined itemsets into ranked, human-readable patterns.
//
// For every itemset it recounts the literal support against the original
// multiset, translates item ids to terms, ranks by descending support and
// renders the result either as "support<TAB>terms" lines or as a table.
package report

import (
	"cmp"
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/katalvlaran/fpgrowth/dataset"
	"github.com/katalvlaran/fpgrowth/fptree"
	"github.com/ryanuber/columnize"
)

// ErrUnknownFormat is returned for an unsupported output format.
var ErrUnknownFormat = errors.New("report: unknown format")

// Format selects the rendering of Write.
type Format string

const (
	// FormatText writes one "support\tterms" line per pattern.
	FormatText Format = "text"

	// FormatTable writes an aligned two-column table with a header.
	FormatTable Format = "table"
)

// ParseFormat validates s as a Format.
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case FormatText, FormatTable:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// Pattern is one reported frequent itemset.
type Pattern struct {
	Items   fptree.Itemset
	Terms   []string
	Support int
}

// Text joins the terms with single spaces.
func (p Pattern) Text() string { return strings.Join(p.Terms, " ") }

// Counter recounts supports against a fixed multiset.
type Counter struct {
	sets   []mapset.Set[fptree.Item]
	counts []int
}

// NewCounter snapshots ms for repeated support queries.
func NewCounter(ms *fptree.Multiset) *Counter {
	c := &Counter{}
	for items, count := range ms.All() {
		c.sets = append(c.sets, mapset.NewThreadUnsafeSet[fptree.Item](items...))
		c.counts = append(c.counts, count)
	}

	return c
}

// Support returns the weighted number of transactions that contain every item of s.
func (c *Counter) Support(s fptree.Itemset) int {
	want := mapset.NewThreadUnsafeSet[fptree.Item](s...)
	total := 0
	for i, tx := range c.sets {
		if want.IsSubset(tx) {
			total += c.counts[i]
		}
	}

	return total
}

// Translate maps the items of s to terms, skipping ids absent from vocab.
// A nil vocab renders every id as its decimal form.
func Translate(s fptree.Itemset, vocab dataset.Vocabulary) []string {
	terms := make([]string, 0, len(s))
	for _, it := range s {
		if vocab == nil {
			terms = append(terms, strconv.Itoa(int(it)))
			continue
		}
		if term, ok := vocab[it]; ok {
			terms = append(terms, term)
		}
	}

	return terms
}

// Build recounts, translates and ranks itemsets.
//
// Itemsets that render to the same text collapse into one pattern; the one
// seen last wins. Patterns are ordered by descending support, then by text.
func Build(ms *fptree.Multiset, itemsets []fptree.Itemset, vocab dataset.Vocabulary) []Pattern {
	counter := NewCounter(ms)
	index := make(map[string]int, len(itemsets))
	patterns := make([]Pattern, 0, len(itemsets))
	for _, s := range itemsets {
		p := Pattern{
			Items:   s,
			Terms:   Translate(s, vocab),
			Support: counter.Support(s),
		}
		key := p.Text()
		if i, ok := index[key]; ok {
			patterns[i] = p
			continue
		}
		index[key] = len(patterns)
		patterns = append(patterns, p)
	}

	slices.SortStableFunc(patterns, func(a, b Pattern) int {
		if a.Support != b.Support {
			return cmp.Compare(b.Support, a.Support)
		}
		return strings.Compare(a.Text(), b.Text())
	})

	return patterns
}

// Write renders patterns to w in the given format.
func Write(w io.Writer, patterns []Pattern, format Format) error {
	switch format {
	case FormatText:
		for _, p := range patterns {
			if _, err := fmt.Fprintf(w, "%d\t%s\n", p.Support, p.Text()); err != nil {
				return err
			}
		}
		return nil
	case FormatTable:
		rows := make([]string, 0, len(patterns)+1)
		rows = append(rows, "Support\x1fPattern")
		for _, p := range patterns {
			rows = append(rows, strconv.Itoa(p.Support)+"\x1f"+p.Text())
		}
		conf := columnize.DefaultConfig()
		conf.Delim = "\x1f"
		_, err := io.WriteString(w, columnize.Format(rows, conf)+"\n")
		return err
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}
