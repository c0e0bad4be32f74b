package resolver

import (
	"errors"

	"golang.org/x/time/rate"
)

// defaultSubqueries bounds the total number of recursive sub-queries (CNAME
// follows and glue-less NS follows) a single top-level resolution may
// spend, closing the gap spec.md §9 names: "a companion bound (total
// sub-queries per top-level call) should be added". 4 * MAX_DEPTH is
// generous enough that ordinary multi-hop CNAME chains never trip it.
const defaultSubqueries = 4 * maxDepth

// ErrTooManySubqueries is returned when a resolution's sub-query budget
// is exhausted: an adversarial zone fanning out glue-less delegations or
// CNAME chains without end cannot run the resolver out of stack instead.
var ErrTooManySubqueries = errors.New("resolver: too many sub-queries")

// Budget caps the number of recursive sub-queries one top-level Resolve
// call may spend; the same *Budget is passed to every recursive invocation
// it spawns.
//
// It is a rate.Limiter with a zero refill rate, so it behaves as a plain
// depleting counter rather than a rate: Allow() returns true exactly n
// times (the initial burst) and false forever after.
type Budget struct {
	limiter *rate.Limiter
}

// NewBudget creates a budget allowing n sub-queries total.
func NewBudget(n int) *Budget {
	return &Budget{limiter: rate.NewLimiter(0, n)}
}

// NewDefaultBudget creates a budget sized for ordinary resolutions.
func NewDefaultBudget() *Budget {
	return NewBudget(defaultSubqueries)
}

// Spend consumes one unit of the budget, failing with
// ErrTooManySubqueries once it is exhausted.
func (b *Budget) Spend() error {
	if !b.limiter.Allow() {
		return ErrTooManySubqueries
	}
	return nil
}
