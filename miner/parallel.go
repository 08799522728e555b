package miner

import (
	"context"

	"github.com/katalvlaran/fpgrowth/fptree"
	"golang.org/x/sync/errgroup"
)

// mineParallel hands each top-level item of t to its own walker. Walkers share
// nothing but the read-only tree t; each fills a private accumulator, and the
// accumulators are concatenated in item order once all of them finished, so
// the output equals the sequential one.
func mineParallel(t *fptree.Tree, minSupport int, prefix fptree.Itemset, order []fptree.Item, out *[]fptree.Itemset, o Options) (Stats, error) {
	parts := make([][]fptree.Itemset, len(order))
	stats := make([]Stats, len(order))

	g, ctx := errgroup.WithContext(context.Background())
	g.SetLimit(o.Workers)
	for i, item := range order {
		g.Go(func() error {
			// a sibling already failed
			if err := ctx.Err(); err != nil {
				return err
			}
			w := newWalker(minSupport, prefix, o.Logger)
			if err := w.extend(t, prefix, item); err != nil {
				return err
			}
			if err := w.drain(); err != nil {
				return err
			}
			parts[i] = w.out
			stats[i] = w.stats

			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Stats{}, err
	}

	var total Stats
	n := 0
	for i := range parts {
		total.merge(stats[i])
		n += len(parts[i])
	}
	merged := make([]fptree.Itemset, 0, len(*out)+n)
	merged = append(merged, *out...)
	for _, p := range parts {
		merged = append(merged, p...)
	}
	*out = merged
	o.Logger.Debug("parallel mining merged", "workers", o.Workers, "items", len(order), "itemsets", n)

	return total, nil
}
