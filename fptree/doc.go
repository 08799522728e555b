// Package fptree implements the frequent-pattern tree (FP-tree): a prefix-sharing
// compression of a weighted transaction multiset, plus the header table that
// threads every node of one item into a single chain.
//
// What
//
//   - Multiset: deduplicated transactions (canonical Itemset → positive count).
//   - Build(ms, minSupport): two-phase construction.
//     Phase 1 counts item support and freezes the header table (items whose
//     support is below minSupport are dropped for good).
//     Phase 2 inserts every transaction, restricted to frequent items and
//     ordered by descending support, into the tree rooted at a sentinel root.
//   - Chain(item): walks the header chain of one item in branch-creation order.
//   - Path(id): ascends from a node to the root, collecting ancestor items.
//   - PatternBase(item): the conditional pattern base of item, itself a Multiset
//     ready to be fed back into Build.
//
// Representation
//
//	All nodes of one Tree live in a single arena slice addressed by NodeID.
//	Parent and chain links are indices into that arena, children are resolved
//	through one (parent, item) → child map. The root sentinel is always NodeID 0.
//	Dropping the *Tree releases every node at once.
//
// Ordering
//
//	Insertion order is descending aggregate count, ties broken by ascending
//	Item. The order never changes which itemsets are frequent, but it fixes the
//	shape of the tree and therefore every order derived from it.
//
// Complexity (T = Σ|transaction|, N = nodes)
//
//   - Build:       O(T log T) time, O(N + distinct items) memory.
//   - PatternBase: O(Σ depth over the item's chain).
//
// Errors
//
//   - ErrNilMultiset         if Build receives a nil multiset.
//   - ErrInvalidThreshold    if minSupport ≤ 0.
//   - ErrInvalidTransaction  if Multiset.Add receives a non-positive count or no items.
//   - ErrMissingHeaderEntry  if PatternBase is asked for an item that is not frequent
//     in this tree; this indicates a caller/tree mismatch.
package fptree
