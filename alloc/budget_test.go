package alloc

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBudgetReserveRelease(t *testing.T) {
	b := NewBudget(100)

	require.NoError(t, b.Reserve(60))
	require.NoError(t, b.Reserve(40))
	assert.EqualValues(t, 100, b.InUse())

	err := b.Reserve(1)
	require.ErrorIs(t, err, ErrExhausted)
	assert.EqualValues(t, 100, b.InUse())

	b.Release(40)
	require.NoError(t, b.Reserve(30))
	assert.EqualValues(t, 90, b.InUse())
	assert.EqualValues(t, 100, b.Limit())
}

func TestBudgetRejectsOversize(t *testing.T) {
	b := NewBudget(10)
	require.ErrorIs(t, b.Reserve(11), ErrExhausted)
	assert.Zero(t, b.InUse())
}

func TestBudgetNegative(t *testing.T) {
	b := NewBudget(10)
	require.Error(t, b.Reserve(-1))
	b.Release(0)
	b.Release(-5)
	assert.Zero(t, b.InUse())
}

func TestBudgetConcurrent(t *testing.T) {
	b := NewBudget(1 << 20)

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 1000; i++ {
				if err := b.Reserve(16); err == nil {
					b.Release(16)
				}
			}
		}()
	}
	wg.Wait()
	assert.Zero(t, b.InUse())
}
