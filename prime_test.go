package htable

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsPrime(t *testing.T) {
	primes := []int{2, 3, 5, 7, 11, 13, 17, 37, 79, 163, 331, 673, 1361, 10007}
	for _, p := range primes {
		assert.True(t, IsPrime(p), "%d", p)
	}

	// Squares of primes are the cases a strict i*i < x bound gets wrong.
	composites := []int{-7, 0, 1, 4, 9, 15, 25, 49, 121, 169, 1000, 10001}
	for _, c := range composites {
		assert.False(t, IsPrime(c), "%d", c)
	}
}

func TestNextPrime(t *testing.T) {
	tests := []struct {
		in, want int
	}{
		{-5, 2},
		{0, 2},
		{1, 2},
		{2, 2},
		{3, 3},
		{4, 5},
		{8, 11},
		{9, 11},
		{24, 29},
		{34, 37},
		{1000, 1009},
		{10_000, 10_007},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, NextPrime(tc.in), "NextPrime(%d)", tc.in)
	}
}

func TestNextPrimeBounds(t *testing.T) {
	assert.Equal(t, MaxCapacity, NextPrime(MaxCapacity))
	assert.Equal(t, MaxCapacity, NextPrime(MaxCapacity-1))
	assert.True(t, IsPrime(MaxCapacity))

	for _, x := range []int{MaxCapacity + 1, 1 << 62, math.MaxInt - 1, math.MaxInt} {
		assert.Zero(t, NextPrime(x), "NextPrime(%d)", x)
	}
}
