package miner_test

import (
	"bytes"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/katalvlaran/fpgrowth/fptree"
	"github.com/katalvlaran/fpgrowth/miner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scenario builds { {1,2,3}:2, {1,2}:1, {1,3}:1 }.
func scenario(t testing.TB) *fptree.Multiset {
	t.Helper()
	ms := fptree.NewMultiset()
	require.NoError(t, ms.Add([]fptree.Item{1, 2, 3}, 2))
	require.NoError(t, ms.Add([]fptree.Item{1, 2}, 1))
	require.NoError(t, ms.Add([]fptree.Item{1, 3}, 1))

	return ms
}

// TestMine_Errors verifies that invalid arguments are rejected up front.
func TestMine_Errors(t *testing.T) {
	tr, err := fptree.Build(scenario(t), 2)
	require.NoError(t, err)
	var out []fptree.Itemset

	assert.ErrorIs(t, miner.Mine(nil, 2, nil, &out), miner.ErrNilTree)
	assert.ErrorIs(t, miner.Mine(tr, 2, nil, nil), miner.ErrNilOutput)
	assert.ErrorIs(t, miner.Mine(tr, 0, nil, &out), fptree.ErrInvalidThreshold)
	assert.ErrorIs(t, miner.Mine(tr, 2, nil, &out, miner.WithWorkers(-1)), miner.ErrOptionViolation)
	assert.Empty(t, out, "nothing emitted for a rejected run")

	_, err = miner.Run(nil, 2)
	assert.ErrorIs(t, err, fptree.ErrNilMultiset)
	_, err = miner.Run(scenario(t), -1)
	assert.ErrorIs(t, err, fptree.ErrInvalidThreshold)
	_, err = miner.Run(scenario(t), 1, miner.WithWorkers(-4))
	assert.ErrorIs(t, err, miner.ErrOptionViolation)
}

// TestRun_Scenario pins the exact emission order of the reference scenario.
//
// Base header (ascending support, then item): 2(3), 3(3), 1(4).
//   - 2: base {1}:3            → {1,2}
//   - 3: base {1,2}:2, {1}:1   → conditional order 2(2), 1(3) → {2,3}, {1,2,3}, {1,3}
//   - 1: no context
func TestRun_Scenario(t *testing.T) {
	res, err := miner.Run(scenario(t), 2)
	require.NoError(t, err)

	assert.Equal(t, []fptree.Itemset{
		{2}, {1, 2},
		{3}, {2, 3}, {1, 2, 3}, {1, 3},
		{1},
	}, res.Itemsets)
	assert.Equal(t, 3, res.MaxDepth)
	// one per emitted itemset
	assert.Equal(t, len(res.Itemsets), res.Trees)
}

// TestRun_Empty covers empty input and a threshold above the total weight.
func TestRun_Empty(t *testing.T) {
	res, err := miner.Run(fptree.NewMultiset(), 1)
	require.NoError(t, err)
	assert.Empty(t, res.Itemsets)
	assert.Zero(t, res.Trees)

	ms := scenario(t)
	res, err = miner.Run(ms, ms.Total()+1)
	require.NoError(t, err)
	assert.Empty(t, res.Itemsets)
}

// TestMine_Prefix checks that the prefix is carried into every emitted set
// and that existing output is preserved.
func TestMine_Prefix(t *testing.T) {
	tr, err := fptree.Build(scenario(t), 3)
	require.NoError(t, err)

	out := []fptree.Itemset{{42}}
	require.NoError(t, miner.Mine(tr, 3, fptree.Itemset{7}, &out))

	// frequent at 3: {1}, {2}, {3}, {1,2}, {1,3}
	assert.Equal(t, []fptree.Itemset{
		{42},
		{2, 7}, {1, 2, 7},
		{3, 7}, {1, 3, 7},
		{1, 7},
	}, out)
}

// TestRun_Idempotent mines the same input twice.
func TestRun_Idempotent(t *testing.T) {
	ms := randomMultiset(7, 8, 40)
	a, err := miner.Run(ms, 4)
	require.NoError(t, err)
	b, err := miner.Run(ms, 4)
	require.NoError(t, err)
	assert.Equal(t, a.Itemsets, b.Itemsets)
	assert.Equal(t, a.Stats, b.Stats)
}

// TestRun_Logging makes sure progress goes to the supplied logger.
func TestRun_Logging(t *testing.T) {
	var buf bytes.Buffer
	logger := hclog.New(&hclog.LoggerOptions{
		Name:   "test",
		Level:  hclog.Trace,
		Output: &buf,
	})

	_, err := miner.Run(scenario(t), 2, miner.WithLogger(logger))
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "built tree")
	assert.Contains(t, out, "conditional tree")
	assert.Contains(t, out, "frequent itemset")
	assert.Contains(t, out, "mining complete")
}
