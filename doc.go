// Package fpgrowth is an in-memory toolkit for frequent itemset mining with
// the FP-growth algorithm.
//
// 🚀 What is FP-growth?
//
//	Given a multiset of transactions (sets of item ids) and a minimum support,
//	FP-growth finds every itemset contained in at least that many transactions.
//	It compresses the transactions into a prefix-sharing FP-tree and then, per
//	item, mines a smaller "conditional" tree restricted to the transactions
//	containing that item. No candidate itemsets are ever generated.
//
// Under the hood the module is organized in small packages:
//
//	fptree/       — Multiset, FP-tree construction, header chains, pattern bases
//	miner/        — the FP-growth walk (sequential or fanned out over workers)
//	dataset/      — transaction and vocabulary file parsing
//	report/       — support recount, term translation, ranking, text/table output
//	command/mine/ — the "fpgrowth mine" CLI command
//	cmd/fpgrowth/ — the CLI entry point
//
// Quick example:
//
//	ms := fptree.NewMultiset()
//	_ = ms.Add([]fptree.Item{1, 2, 3}, 2)
//	_ = ms.Add([]fptree.Item{1, 2}, 1)
//	res, err := miner.Run(ms, 2)
//
// From the command line:
//
//	fpgrowth mine -min-support=400 -vocab=vocab.txt -output-dir=output topic-1.txt
package fpgrowth
