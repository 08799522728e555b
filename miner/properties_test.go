package miner_test

import (
	"math/rand/v2"
	"slices"
	"testing"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/google/go-cmp/cmp"
	"github.com/katalvlaran/fpgrowth/fptree"
	"github.com/katalvlaran/fpgrowth/miner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// randomMultiset draws n non-empty transactions over items 0..vocab-1 with
// counts in 1..3. The generator is seeded, so inputs are reproducible.
func randomMultiset(seed uint64, vocab, n int) *fptree.Multiset {
	r := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	ms := fptree.NewMultiset()
	for added := 0; added < n; {
		var items []fptree.Item
		for it := 0; it < vocab; it++ {
			if r.IntN(3) == 0 {
				items = append(items, fptree.Item(it))
			}
		}
		if len(items) == 0 {
			continue
		}
		_ = ms.Add(items, 1+r.IntN(3))
		added++
	}

	return ms
}

// support counts the weighted transactions of ms that contain s.
func support(ms *fptree.Multiset, s fptree.Itemset) int {
	want := mapset.NewThreadUnsafeSet[fptree.Item](s...)
	total := 0
	for items, count := range ms.All() {
		if want.IsSubset(mapset.NewThreadUnsafeSet[fptree.Item](items...)) {
			total += count
		}
	}

	return total
}

// bruteForce enumerates every non-empty subset of the input's items and keeps
// the frequent ones, keyed by Itemset.Key.
func bruteForce(ms *fptree.Multiset, minSupport int) map[string]int {
	vocab := mapset.NewThreadUnsafeSet[fptree.Item]()
	for items := range ms.All() {
		for _, it := range items {
			vocab.Add(it)
		}
	}
	universe := vocab.ToSlice()
	slices.Sort(universe)

	frequent := map[string]int{}
	for mask := 1; mask < 1<<len(universe); mask++ {
		var s fptree.Itemset
		for i, it := range universe {
			if mask&(1<<i) != 0 {
				s = append(s, it)
			}
		}
		if sup := support(ms, s); sup >= minSupport {
			frequent[s.Key()] = sup
		}
	}

	return frequent
}

// recount pairs each mined itemset with its literal support.
func recount(t *testing.T, ms *fptree.Multiset, sets []fptree.Itemset) map[string]int {
	t.Helper()
	got := make(map[string]int, len(sets))
	for _, s := range sets {
		_, dup := got[s.Key()]
		require.False(t, dup, "itemset %v emitted twice", s)
		got[s.Key()] = support(ms, s)
	}

	return got
}

// TestRun_Completeness compares FP-growth with exhaustive enumeration.
func TestRun_Completeness(t *testing.T) {
	cases := []struct {
		name       string
		seed       uint64
		vocab, n   int
		minSupport int
	}{
		{"sparse", 1, 6, 20, 3},
		{"dense-low-threshold", 2, 7, 30, 2},
		{"dense", 3, 8, 60, 8},
		{"single-item", 4, 1, 5, 1},
		{"threshold-one", 5, 5, 12, 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ms := randomMultiset(tc.seed, tc.vocab, tc.n)
			res, err := miner.Run(ms, tc.minSupport)
			require.NoError(t, err)

			want := bruteForce(ms, tc.minSupport)
			got := recount(t, ms, res.Itemsets)
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("frequent itemsets mismatch (-brute +fpgrowth):\n%s", diff)
			}
		})
	}
}

// TestRun_AntiMonotone checks that every non-empty subset of an emitted
// itemset is emitted as well and has at least its support.
func TestRun_AntiMonotone(t *testing.T) {
	ms := randomMultiset(11, 7, 50)
	res, err := miner.Run(ms, 5)
	require.NoError(t, err)
	require.NotEmpty(t, res.Itemsets)

	got := recount(t, ms, res.Itemsets)
	for _, s := range res.Itemsets {
		for i := range s {
			sub := slices.Delete(slices.Clone(s), i, i+1)
			if len(sub) == 0 {
				continue
			}
			subSupport, ok := got[sub.Key()]
			require.True(t, ok, "subset %v of %v missing", sub, s)
			assert.GreaterOrEqual(t, subSupport, got[s.Key()])
		}
	}
}

// TestRun_DepthBound checks that the walk never goes deeper than the number
// of distinct items.
func TestRun_DepthBound(t *testing.T) {
	ms := randomMultiset(21, 6, 40)
	res, err := miner.Run(ms, 1)
	require.NoError(t, err)

	distinct := mapset.NewThreadUnsafeSet[fptree.Item]()
	for items := range ms.All() {
		for _, it := range items {
			distinct.Add(it)
		}
	}
	assert.LessOrEqual(t, res.MaxDepth, distinct.Cardinality())
	for _, s := range res.Itemsets {
		assert.LessOrEqual(t, len(s), res.MaxDepth)
	}
}

// TestRun_Parallel checks that workers do not change the output.
func TestRun_Parallel(t *testing.T) {
	ms := randomMultiset(31, 9, 80)
	seq, err := miner.Run(ms, 6)
	require.NoError(t, err)

	for _, workers := range []int{0, 2, 4, 16} {
		par, err := miner.Run(ms, 6, miner.WithWorkers(workers))
		require.NoError(t, err)
		assert.Equal(t, seq.Itemsets, par.Itemsets, "workers=%d", workers)
		assert.Equal(t, seq.Stats, par.Stats, "workers=%d", workers)
	}
}
