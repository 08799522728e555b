package fptree

import (
	"cmp"
	"fmt"
	"iter"
	"slices"
)

// node is one arena slot. parent and next are non-owning indices.
type node struct {
	item   Item
	count  int
	parent NodeID
	next   NodeID
}

// childKey resolves the child of parent labeled item.
type childKey struct {
	parent NodeID
	item   Item
}

// Tree is an FP-tree built once from a Multiset and never mutated afterwards.
type Tree struct {
	minSupport int
	nodes      []node // nodes[Root] is the sentinel
	children   map[childKey]NodeID
	header     []HeaderEntry // rank order: descending Count, then ascending Item
	rank       map[Item]int  // item → index into header
}

// Build constructs the FP-tree of ms at the given minimum support.
//
// Steps:
//  1. Count the weighted support of every item and keep those ≥ minSupport.
//  2. Freeze the header table in rank order (descending support, ascending Item).
//  3. If nothing survived, return a tree with an empty header table.
//  4. Insert every transaction, restricted to surviving items and sorted by
//     rank, sharing nodes with previously inserted prefixes. New nodes are
//     appended to the end of their item's chain.
//
// ms is only read. Returns ErrNilMultiset or ErrInvalidThreshold on bad input.
func Build(ms *Multiset, minSupport int) (*Tree, error) {
	if ms == nil {
		return nil, ErrNilMultiset
	}
	if minSupport <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidThreshold, minSupport)
	}

	t := &Tree{
		minSupport: minSupport,
		nodes:      []node{{parent: NoNode, next: NoNode}},
	}
	t.header, t.rank = buildHeader(ms, minSupport)
	if len(t.header) == 0 {
		return t, nil
	}

	t.children = make(map[childKey]NodeID)
	tails := make([]NodeID, len(t.header))
	for i := range tails {
		tails[i] = NoNode
	}

	ordered := make([]Item, 0, len(t.header))
	for items, count := range ms.All() {
		ordered = t.orderItems(ordered[:0], items)
		if len(ordered) == 0 {
			continue
		}
		t.insert(ordered, count, tails)
	}

	return t, nil
}

// buildHeader computes the frozen header table and its rank index.
func buildHeader(ms *Multiset, minSupport int) ([]HeaderEntry, map[Item]int) {
	support := make(map[Item]int)
	for items, count := range ms.All() {
		for _, it := range items {
			support[it] += count
		}
	}

	header := make([]HeaderEntry, 0, len(support))
	for it, c := range support {
		if c >= minSupport {
			header = append(header, HeaderEntry{Item: it, Count: c, Head: NoNode})
		}
	}
	slices.SortFunc(header, func(a, b HeaderEntry) int {
		if a.Count != b.Count {
			return cmp.Compare(b.Count, a.Count)
		}
		return cmp.Compare(a.Item, b.Item)
	})

	rank := make(map[Item]int, len(header))
	for i, e := range header {
		rank[e.Item] = i
	}

	return header, rank
}

// orderItems appends the frequent members of items to dst in rank order.
func (t *Tree) orderItems(dst []Item, items Itemset) []Item {
	for _, it := range items {
		if _, ok := t.rank[it]; ok {
			dst = append(dst, it)
		}
	}
	slices.SortFunc(dst, func(a, b Item) int {
		return cmp.Compare(t.rank[a], t.rank[b])
	})

	return dst
}

// insert threads path below the root, adding count to every node on it.
func (t *Tree) insert(path []Item, count int, tails []NodeID) {
	cur := Root
	for _, it := range path {
		key := childKey{parent: cur, item: it}
		child, ok := t.children[key]
		if ok {
			t.nodes[child].count += count
			cur = child
			continue
		}

		child = NodeID(len(t.nodes))
		t.nodes = append(t.nodes, node{item: it, count: count, parent: cur, next: NoNode})
		t.children[key] = child

		r := t.rank[it]
		if tails[r] == NoNode {
			t.header[r].Head = child
		} else {
			t.nodes[tails[r]].next = child
		}
		tails[r] = child
		cur = child
	}
}

// MinSupport returns the threshold the tree was built with.
func (t *Tree) MinSupport() int { return t.minSupport }

// Empty reports whether the header table is empty, i.e. no item was frequent.
func (t *Tree) Empty() bool { return len(t.header) == 0 }

// Len returns the number of item nodes, excluding the root sentinel.
func (t *Tree) Len() int { return len(t.nodes) - 1 }

// Header returns a copy of the header table in rank order
// (descending Count, ties by ascending Item).
func (t *Tree) Header() []HeaderEntry { return slices.Clone(t.header) }

// Entry returns the header entry of item.
func (t *Tree) Entry(item Item) (HeaderEntry, bool) {
	r, ok := t.rank[item]
	if !ok {
		return HeaderEntry{}, false
	}

	return t.header[r], true
}

// Node returns a view of node id. The root is reported with Item 0 and Parent NoNode.
func (t *Tree) Node(id NodeID) (Node, bool) {
	if id < 0 || int(id) >= len(t.nodes) {
		return Node{}, false
	}
	n := t.nodes[id]

	return Node{ID: id, Item: n.item, Count: n.count, Parent: n.parent, Next: n.next}, true
}

// Child returns the child of parent labeled item.
func (t *Tree) Child(parent NodeID, item Item) (NodeID, bool) {
	id, ok := t.children[childKey{parent: parent, item: item}]

	return id, ok
}

// Chain yields every node labeled item, starting at the header entry's head
// and following chain links, i.e. in branch-creation order.
// Yields nothing for an item without a header entry.
func (t *Tree) Chain(item Item) iter.Seq[NodeID] {
	return func(yield func(NodeID) bool) {
		e, ok := t.Entry(item)
		if !ok {
			return
		}
		for id := e.Head; id != NoNode; id = t.nodes[id].next {
			if !yield(id) {
				return
			}
		}
	}
}

// Path returns the items on the way from id up to the root, nearest first,
// excluding id's own item and the root. Returns nil for the root or an unknown id.
func (t *Tree) Path(id NodeID) []Item {
	if id <= Root || int(id) >= len(t.nodes) {
		return nil
	}

	return t.appendPath(nil, id)
}

// appendPath ascends from id and appends ancestor items to dst.
func (t *Tree) appendPath(dst []Item, id NodeID) []Item {
	for p := t.nodes[id].parent; p != Root; p = t.nodes[p].parent {
		dst = append(dst, t.nodes[p].item)
	}

	return dst
}
