package miner

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/hashicorp/go-hclog"
	"github.com/katalvlaran/fpgrowth/fptree"
)

// frame is one pending level of the depth-first walk: a conditional tree,
// the prefix it is conditioned on and the next header item to extend with.
type frame struct {
	tree   *fptree.Tree
	prefix fptree.Itemset
	order  []fptree.Item
	next   int
}

// walker encapsulates mutable mining state for one sequential walk.
type walker struct {
	minSupport int
	base       int // length of the starting prefix
	log        hclog.Logger
	out        []fptree.Itemset
	stats      Stats
	stack      []frame
}

// newWalker prepares a walker whose depth is measured from prefix.
func newWalker(minSupport int, prefix fptree.Itemset, log hclog.Logger) *walker {
	return &walker{
		minSupport: minSupport,
		base:       len(prefix),
		log:        log,
	}
}

// Mine appends to *out every frequent itemset of t extended from prefix.
//
// For each header item of t, by ascending support (ties by ascending Item),
// it emits prefix ∪ {item}, builds the conditional tree of item from its
// pattern base at minSupport and, if that tree has any frequent item, mines
// it before moving to the next item. Levels are kept on an explicit stack,
// so the depth of the walk never grows the goroutine stack.
//
// On error *out is left unchanged.
// Returns ErrNilTree, ErrNilOutput, fptree.ErrInvalidThreshold or
// ErrOptionViolation for bad input, and wraps any fptree error raised while
// building a conditional tree.
func Mine(t *fptree.Tree, minSupport int, prefix fptree.Itemset, out *[]fptree.Itemset, opts ...Option) error {
	if t == nil {
		return ErrNilTree
	}
	if out == nil {
		return ErrNilOutput
	}
	if minSupport <= 0 {
		return fmt.Errorf("%w: got %d", fptree.ErrInvalidThreshold, minSupport)
	}
	o, err := newOptions(opts)
	if err != nil {
		return err
	}

	_, err = mine(t, minSupport, fptree.NewItemset(prefix...), out, o)

	return err
}

// Run builds the FP-tree of ms and mines it from the empty prefix.
// Input is fully validated before any tree is built.
func Run(ms *fptree.Multiset, minSupport int, opts ...Option) (*Result, error) {
	o, err := newOptions(opts)
	if err != nil {
		return nil, err
	}
	t, err := fptree.Build(ms, minSupport)
	if err != nil {
		return nil, err
	}
	o.Logger.Debug("built tree",
		"transactions", ms.Len(),
		"weight", ms.Total(),
		"frequent_items", len(t.Header()),
		"nodes", t.Len())

	res := &Result{}
	stats, err := mine(t, minSupport, nil, &res.Itemsets, o)
	if err != nil {
		return nil, err
	}
	res.Stats = stats
	o.Logger.Debug("mining complete",
		"itemsets", len(res.Itemsets),
		"conditional_trees", stats.Trees,
		"max_depth", stats.MaxDepth)

	return res, nil
}

// mine dispatches to the sequential or the parallel walk.
func mine(t *fptree.Tree, minSupport int, prefix fptree.Itemset, out *[]fptree.Itemset, o Options) (Stats, error) {
	order := miningOrder(t)
	if o.Workers > 1 && len(order) > 1 {
		return mineParallel(t, minSupport, prefix, order, out, o)
	}

	w := newWalker(minSupport, prefix, o.Logger)
	w.stack = append(w.stack, frame{tree: t, prefix: prefix, order: order})
	if err := w.drain(); err != nil {
		return Stats{}, err
	}
	*out = append(*out, w.out...)

	return w.stats, nil
}

// drain processes frames until the stack is empty or an error occurs.
func (w *walker) drain() error {
	for len(w.stack) > 0 {
		top := &w.stack[len(w.stack)-1]
		if top.next == len(top.order) {
			// level exhausted: drop the tree with it
			w.stack[len(w.stack)-1] = frame{}
			w.stack = w.stack[:len(w.stack)-1]
			continue
		}
		item := top.order[top.next]
		top.next++
		// extend may grow w.stack; top is not used afterwards.
		if err := w.extend(top.tree, top.prefix, item); err != nil {
			return err
		}
	}

	return nil
}

// extend emits prefix ∪ {item} and pushes the conditional tree of item when
// it still has frequent items.
func (w *walker) extend(t *fptree.Tree, prefix fptree.Itemset, item fptree.Item) error {
	next := prefix.With(item)
	w.out = append(w.out, next)
	w.log.Trace("frequent itemset", "itemset", next)
	if d := len(next) - w.base; d > w.stats.MaxDepth {
		w.stats.MaxDepth = d
	}

	base, err := t.PatternBase(item)
	if err != nil {
		return fmt.Errorf("miner: extending %v: %w", prefix, err)
	}
	cond, err := fptree.Build(base, w.minSupport)
	if err != nil {
		return fmt.Errorf("miner: conditional tree of %v: %w", next, err)
	}
	w.stats.Trees++
	if cond.Empty() {
		return nil
	}

	w.log.Debug("conditional tree",
		"prefix", next,
		"frequent_items", len(cond.Header()),
		"nodes", cond.Len())
	w.stack = append(w.stack, frame{tree: cond, prefix: next, order: miningOrder(cond)})

	return nil
}

// miningOrder returns the header items of t by ascending support,
// ties broken by ascending Item.
func miningOrder(t *fptree.Tree) []fptree.Item {
	header := t.Header()
	slices.SortFunc(header, func(a, b fptree.HeaderEntry) int {
		if a.Count != b.Count {
			return cmp.Compare(a.Count, b.Count)
		}
		return cmp.Compare(a.Item, b.Item)
	})

	order := make([]fptree.Item, len(header))
	for i, e := range header {
		order[i] = e.Item
	}

	return order
}
