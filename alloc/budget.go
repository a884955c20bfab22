// Package alloc provides htable.Allocator implementations.
package alloc

import (
	"sync/atomic"

	"github.com/pkg/errors"
	"golang.org/x/sync/semaphore"
)

// ErrExhausted is returned when a reservation does not fit in the budget.
var ErrExhausted = errors.New("alloc: budget exhausted")

// Budget caps the bytes reserved through it. It never blocks: a request that
// does not fit fails immediately. A Budget may be shared by several tables
// and used from several goroutines.
type Budget struct {
	sem   *semaphore.Weighted
	limit int64
	inUse atomic.Int64
}

// NewBudget returns a Budget of limit bytes.
func NewBudget(limit int64) *Budget {
	return &Budget{
		sem:   semaphore.NewWeighted(limit),
		limit: limit,
	}
}

// Reserve takes n bytes from the budget.
func (b *Budget) Reserve(n int) error {
	if n < 0 {
		return errors.Errorf("alloc: negative reservation %d", n)
	}
	if !b.sem.TryAcquire(int64(n)) {
		return errors.Wrapf(ErrExhausted, "%d bytes requested, %d of %d in use", n, b.inUse.Load(), b.limit)
	}
	b.inUse.Add(int64(n))
	return nil
}

// Release returns n bytes to the budget.
func (b *Budget) Release(n int) {
	if n <= 0 {
		return
	}
	b.inUse.Add(-int64(n))
	b.sem.Release(int64(n))
}

// InUse returns the bytes currently reserved.
func (b *Budget) InUse() int64 { return b.inUse.Load() }

// Limit returns the budget size.
func (b *Budget) Limit() int64 { return b.limit }
