// Package miner defines options, results and error values for FP-growth mining.
package miner

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/hashicorp/go-hclog"
	"github.com/katalvlaran/fpgrowth/fptree"
)

// Sentinel errors for mining.
var (
	// ErrNilTree is returned when Mine receives a nil tree.
	ErrNilTree = errors.New("miner: tree is nil")

	// ErrNilOutput is returned when Mine receives a nil output accumulator.
	ErrNilOutput = errors.New("miner: output accumulator is nil")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("miner: invalid option supplied")
)

// Option configures mining via functional arguments.
// Invalid values are recorded and surfaced as ErrOptionViolation when mining starts.
type Option func(*Options)

// Options holds the tunables of a mining run.
type Options struct {
	// Logger receives Debug lines per conditional tree and Trace lines per itemset.
	Logger hclog.Logger

	// Workers is the number of goroutines sharing the top-level items.
	// 1 mines sequentially. The emitted order does not depend on it.
	Workers int

	// internal error recorded during option parsing
	err error
}

// DefaultOptions returns Options with a null logger and sequential mining.
func DefaultOptions() Options {
	return Options{
		Logger:  hclog.NewNullLogger(),
		Workers: 1,
	}
}

// WithLogger sets the logger. A nil logger is ignored.
func WithLogger(l hclog.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// WithWorkers sets the number of mining goroutines.
//
//	n > 0:  use n workers
//	n == 0: use runtime.GOMAXPROCS(0)
//	n < 0:  invalid option → ErrOptionViolation
func WithWorkers(n int) Option {
	return func(o *Options) {
		switch {
		case n < 0:
			o.err = fmt.Errorf("%w: Workers cannot be negative (%d)", ErrOptionViolation, n)
		case n == 0:
			o.Workers = runtime.GOMAXPROCS(0)
		default:
			o.Workers = n
		}
	}
}

// newOptions applies opts over the defaults.
func newOptions(opts []Option) (Options, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	return o, o.err
}

// Stats summarizes one mining run.
type Stats struct {
	// Trees counts conditional trees built, including those that turned out empty.
	Trees int

	// MaxDepth is the largest number of items added to the starting prefix.
	// It never exceeds the number of distinct items of the input.
	MaxDepth int
}

// merge folds s2 into s.
func (s *Stats) merge(s2 Stats) {
	s.Trees += s2.Trees
	s.MaxDepth = max(s.MaxDepth, s2.MaxDepth)
}

// Result is the outcome of Run.
type Result struct {
	// Itemsets holds the frequent itemsets in emission order.
	// Support counts are not carried; recount them against the input multiset.
	Itemsets []fptree.Itemset

	Stats
}
