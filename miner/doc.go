// Package miner enumerates frequent itemsets with FP-growth on top of fptree.
//
// What
//
//   - Mine(tree, minSupport, prefix, &out, opts...): for every frequent item of
//     tree, by ascending support, emit prefix ∪ {item}, derive the item's
//     conditional tree and mine it before the next item.
//   - Run(multiset, minSupport, opts...): validate, build the base tree and
//     mine it from the empty prefix; returns the itemsets plus Stats.
//
// Why
//
//	FP-growth never generates candidate itemsets. Each conditional tree only
//	holds transactions that contain the current prefix, so every level works
//	on strictly less data and the walk ends once a conditional tree has no
//	frequent item left.
//
// Determinism
//
//	Trees are built in a fixed rank order and header items are processed by
//	ascending support with ascending Item as tie-break. Mining the same input
//	twice emits the same itemsets in the same order, with or without workers.
//
// Concurrency
//
//	Top-level items are independent. WithWorkers(n) spreads them over n
//	goroutines (golang.org/x/sync/errgroup), each with a private accumulator;
//	results are merged in item order after all goroutines return.
//
// Support
//
//	Emitted itemsets carry no support. Recount it against the original
//	multiset (see package report); conditional tree counts are conditioned
//	frequencies, not joint supports.
//
// Options
//
//   - WithLogger(l):  hclog.Logger for Debug/Trace progress lines.
//   - WithWorkers(n): goroutines for the top level (0 = GOMAXPROCS, <0 invalid).
//
// Errors
//
//   - ErrNilTree, ErrNilOutput      for nil arguments to Mine.
//   - ErrOptionViolation            for invalid options.
//   - fptree.ErrInvalidThreshold    if minSupport ≤ 0.
//   - fptree.ErrNilMultiset         if Run receives a nil multiset.
//   - wrapped fptree.ErrMissingHeaderEntry on an internal tree mismatch.
package miner
