// Package combination enumerates the k-element subsets of n items.
//
// Subsets keep the relative order of the source items and are produced in
// lexicographic order of their indices, so each subset appears exactly once.
// Sequences are lazy and can be ranged over any number of times.
package combination

import (
	"iter"

	"github.com/izouxv/goShamir/bigint"
)

// Indices yields every k-subset of {0, ..., n-1} as an increasing index slice.
// Each yielded slice is freshly allocated and owned by the caller.
//
// k == 0 yields a single empty subset; k < 0 or k > n yields nothing.
func Indices(n, k int) iter.Seq[[]int] {
	return func(yield func([]int) bool) {
		if k < 0 || k > n {
			return
		}

		picked := make([]int, 0, k)
		var choose func(start, remain int) bool
		choose = func(start, remain int) bool {
			if remain == 0 {
				out := make([]int, len(picked))
				copy(out, picked)
				return yield(out)
			}
			// stop once the suffix is too short to complete the subset
			for i := start; i <= n-remain; i++ {
				picked = append(picked, i)
				if !choose(i+1, remain-1) {
					return false
				}
				picked = picked[:len(picked)-1]
			}
			return true
		}
		choose(0, k)
	}
}

// Of yields every k-subset of items.
func Of[T any](items []T, k int) iter.Seq[[]T] {
	return func(yield func([]T) bool) {
		for idx := range Indices(len(items), k) {
			subset := make([]T, len(idx))
			for i, j := range idx {
				subset[i] = items[j]
			}
			if !yield(subset) {
				return
			}
		}
	}
}

// Count returns the binomial coefficient C(n, k), or 0 when k is out of range.
func Count(n, k int) bigint.Int {
	if k < 0 || k > n {
		return bigint.Int{}
	}
	if k > n-k {
		k = n - k
	}

	// C(n, i) = C(n, i-1) * (n-i+1) / i and every intermediate is an integer
	c := bigint.New(1)
	for i := 1; i <= k; i++ {
		next, err := c.Mul(bigint.New(int64(n - i + 1))).ExactQuo(bigint.New(int64(i)))
		if err != nil {
			panic(err)
		}
		c = next
	}

	return c
}
