package fptree

import "fmt"

// PatternBase returns the conditional pattern base of item.
//
// Every node on item's chain contributes the set of its ancestor items,
// weighted by the node's count. Equal ancestor sets coming from different
// nodes are merged by summing their weights. A node hanging directly below
// the root has no conditioning context and contributes nothing.
//
// Returns ErrMissingHeaderEntry if item is not frequent in t.
func (t *Tree) PatternBase(item Item) (*Multiset, error) {
	e, ok := t.Entry(item)
	if !ok {
		return nil, fmt.Errorf("%w: item %d", ErrMissingHeaderEntry, item)
	}

	base := NewMultiset()
	var path []Item
	for id := e.Head; id != NoNode; id = t.nodes[id].next {
		path = t.appendPath(path[:0], id)
		if len(path) == 0 {
			continue
		}
		// Add canonicalizes a copy, so path can be reused.
		if err := base.Add(path, t.nodes[id].count); err != nil {
			return nil, fmt.Errorf("fptree: pattern base of item %d: %w", item, err)
		}
	}

	return base, nil
}
