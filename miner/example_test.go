// Package miner_test demonstrates end-to-end mining of a small multiset.
package miner_test

import (
	"fmt"

	"github.com/katalvlaran/fpgrowth/fptree"
	"github.com/katalvlaran/fpgrowth/miner"
)

// ExampleRun mines four transactions at minimum support 2.
func ExampleRun() {
	ms := fptree.NewMultiset()
	_ = ms.Add([]fptree.Item{1, 2, 3}, 2)
	_ = ms.Add([]fptree.Item{1, 2}, 1)
	_ = ms.Add([]fptree.Item{1, 3}, 1)

	res, err := miner.Run(ms, 2)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	for _, s := range res.Itemsets {
		fmt.Println(s)
	}
	// Output:
	// {2}
	// {1 2}
	// {3}
	// {2 3}
	// {1 2 3}
	// {1 3}
	// {1}
}

// ExampleMine drives the walk on a prebuilt tree.
func ExampleMine() {
	ms := fptree.NewMultiset()
	_ = ms.Add([]fptree.Item{10, 20}, 3)
	_ = ms.Add([]fptree.Item{10}, 1)

	tree, _ := fptree.Build(ms, 3)
	var out []fptree.Itemset
	if err := miner.Mine(tree, 3, nil, &out); err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println(out)
	// Output: [{20} {10 20} {10}]
}
