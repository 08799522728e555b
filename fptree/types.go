// Package fptree defines items, itemsets, weighted transaction multisets and
// the error values shared by tree construction and pattern-base extraction.
package fptree

import (
	"errors"
	"fmt"
	"iter"
	"slices"
	"strconv"
	"strings"
)

// Sentinel errors for tree construction and traversal.
var (
	// ErrNilMultiset is returned when Build receives a nil *Multiset.
	ErrNilMultiset = errors.New("fptree: multiset is nil")

	// ErrInvalidThreshold is returned when the minimum support is not positive.
	ErrInvalidThreshold = errors.New("fptree: minimum support must be positive")

	// ErrInvalidTransaction is returned for a transaction with a non-positive
	// count or without any item.
	ErrInvalidTransaction = errors.New("fptree: invalid transaction")

	// ErrMissingHeaderEntry is returned when a pattern base is requested for an
	// item that has no header entry. It signals an internal mismatch between
	// the caller and the tree, never bad user input.
	ErrMissingHeaderEntry = errors.New("fptree: item has no header entry")
)

// Item identifies one discrete item (a term index in the usual text-mining setup).
type Item int

// Itemset is a set of items kept in canonical form: sorted ascending, no duplicates.
// Use NewItemset to build one from arbitrary input.
type Itemset []Item

// NewItemset returns the canonical Itemset for items. The input is not modified.
func NewItemset(items ...Item) Itemset {
	s := slices.Clone(items)
	slices.Sort(s)

	return slices.Compact(s)
}

// With returns a new Itemset holding s plus item. s is left untouched.
func (s Itemset) With(item Item) Itemset {
	i, found := slices.BinarySearch(s, item)
	if found {
		return slices.Clone(s)
	}
	out := make(Itemset, 0, len(s)+1)
	out = append(out, s[:i]...)
	out = append(out, item)

	return append(out, s[i:]...)
}

// Contains reports whether item is a member of s.
func (s Itemset) Contains(item Item) bool {
	_, found := slices.BinarySearch(s, item)

	return found
}

// Key returns a string uniquely identifying the set, usable as a map key.
func (s Itemset) Key() string {
	var b strings.Builder
	for i, it := range s {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Itoa(int(it)))
	}

	return b.String()
}

// String renders the set as {a b c}.
func (s Itemset) String() string {
	return "{" + strings.ReplaceAll(s.Key(), ",", " ") + "}"
}

// Transaction is one distinct itemset together with its occurrence count.
type Transaction struct {
	Items Itemset
	Count int
}

// Multiset is a TransactionMultiset: distinct itemsets mapped to positive
// occurrence counts. Identical itemsets added twice are merged by summing
// their counts. Iteration follows first-insertion order, which keeps tree
// construction reproducible.
//
// The zero value is an empty, ready to use Multiset.
type Multiset struct {
	entries []Transaction
	index   map[string]int
	total   int
}

// NewMultiset returns an empty Multiset.
func NewMultiset() *Multiset {
	return &Multiset{index: make(map[string]int)}
}

// Add merges count occurrences of items into the multiset.
// Items are canonicalized first, so order and duplicates in items are irrelevant.
// Returns ErrInvalidTransaction if count ≤ 0 or items is empty.
func (m *Multiset) Add(items []Item, count int) error {
	if count <= 0 {
		return fmt.Errorf("%w: count must be positive, got %d for %v", ErrInvalidTransaction, count, items)
	}
	set := NewItemset(items...)
	if len(set) == 0 {
		return fmt.Errorf("%w: itemset is empty", ErrInvalidTransaction)
	}
	if m.index == nil {
		m.index = make(map[string]int)
	}

	key := set.Key()
	if i, ok := m.index[key]; ok {
		m.entries[i].Count += count
	} else {
		m.index[key] = len(m.entries)
		m.entries = append(m.entries, Transaction{Items: set, Count: count})
	}
	m.total += count

	return nil
}

// Len returns the number of distinct itemsets.
func (m *Multiset) Len() int { return len(m.entries) }

// Total returns the weighted number of transactions (sum of all counts).
func (m *Multiset) Total() int { return m.total }

// Count returns the occurrence count of exactly items, or 0 if absent.
func (m *Multiset) Count(items []Item) int {
	i, ok := m.index[NewItemset(items...).Key()]
	if !ok {
		return 0
	}

	return m.entries[i].Count
}

// All yields every distinct itemset with its count in first-insertion order.
// The yielded Itemset is shared with the multiset and must not be modified.
func (m *Multiset) All() iter.Seq2[Itemset, int] {
	return func(yield func(Itemset, int) bool) {
		for _, tx := range m.entries {
			if !yield(tx.Items, tx.Count) {
				return
			}
		}
	}
}

// Transactions returns a copy of the entries in first-insertion order.
func (m *Multiset) Transactions() []Transaction {
	out := make([]Transaction, len(m.entries))
	for i, tx := range m.entries {
		out[i] = Transaction{Items: slices.Clone(tx.Items), Count: tx.Count}
	}

	return out
}

// NodeID addresses a node inside one Tree's arena.
type NodeID int32

const (
	// Root is the NodeID of the sentinel root of every Tree.
	Root NodeID = 0

	// NoNode marks an absent link (end of a chain, parent of the root).
	NoNode NodeID = -1
)

// HeaderEntry is the header-table record of one frequent item.
//
//   - Count: aggregate support of Item in the multiset the tree was built from.
//   - Head:  first node labeled Item, or NoNode while the chain is empty.
type HeaderEntry struct {
	Item  Item
	Count int
	Head  NodeID
}

// Node is a read-only view of one tree node.
type Node struct {
	ID     NodeID
	Item   Item
	Count  int
	Parent NodeID
	Next   NodeID
}
