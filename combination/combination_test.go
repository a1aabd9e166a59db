package combination

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIndices(t *testing.T) {
	var got [][]int
	for idx := range Indices(4, 2) {
		got = append(got, idx)
	}

	assert.Equal(t, [][]int{
		{0, 1}, {0, 2}, {0, 3},
		{1, 2}, {1, 3},
		{2, 3},
	}, got)
}

func TestIndicesEdgeCases(t *testing.T) {
	t.Run("k is zero", func(t *testing.T) {
		var got [][]int
		for idx := range Indices(3, 0) {
			got = append(got, idx)
		}
		require.Len(t, got, 1)
		assert.Empty(t, got[0])
	})

	t.Run("k equals n", func(t *testing.T) {
		var got [][]int
		for idx := range Indices(3, 3) {
			got = append(got, idx)
		}
		assert.Equal(t, [][]int{{0, 1, 2}}, got)
	})

	t.Run("k out of range", func(t *testing.T) {
		for _, k := range []int{-1, 4} {
			count := 0
			for range Indices(3, k) {
				count++
			}
			assert.Zero(t, count, "k=%d", k)
		}
	})

	t.Run("early stop", func(t *testing.T) {
		count := 0
		for range Indices(10, 3) {
			count++
			if count == 5 {
				break
			}
		}
		assert.Equal(t, 5, count)
	})

	t.Run("restartable", func(t *testing.T) {
		seq := Indices(5, 3)
		first, second := 0, 0
		for range seq {
			first++
		}
		for range seq {
			second++
		}
		assert.Equal(t, 10, first)
		assert.Equal(t, first, second)
	})
}

func TestIndicesCountAndCoverage(t *testing.T) {
	for n := 1; n <= 10; n++ {
		for k := 1; k <= n; k++ {
			t.Run(fmt.Sprintf("C(%d,%d)", n, k), func(t *testing.T) {
				seen := map[string]bool{}
				covered := map[int]bool{}
				for idx := range Indices(n, k) {
					require.Len(t, idx, k)
					for i := 1; i < len(idx); i++ {
						require.Less(t, idx[i-1], idx[i], "indices must increase")
					}
					key := fmt.Sprint(idx)
					require.False(t, seen[key], "duplicate subset %v", idx)
					seen[key] = true
					for _, i := range idx {
						covered[i] = true
					}
				}

				assert.Equal(t, Count(n, k).String(), fmt.Sprint(len(seen)))
				assert.Len(t, covered, n)
			})
		}
	}
}

func TestOf(t *testing.T) {
	var got []string
	for subset := range Of([]string{"a", "b", "c"}, 2) {
		got = append(got, fmt.Sprint(subset))
	}
	assert.Equal(t, []string{"[a b]", "[a c]", "[b c]"}, got)
}

func TestOfYieldsIndependentSlices(t *testing.T) {
	var subsets [][]int
	for s := range Of([]int{10, 20, 30, 40}, 2) {
		subsets = append(subsets, s)
	}
	subsets[0][0] = -1
	assert.Equal(t, []int{10, 30}, subsets[1])
}

func TestCount(t *testing.T) {
	assert.Equal(t, "120", Count(10, 7).String())
	assert.Equal(t, "4", Count(4, 3).String())
	assert.Equal(t, "1", Count(5, 0).String())
	assert.Equal(t, "1", Count(5, 5).String())
	assert.Equal(t, "0", Count(5, 6).String())
	assert.Equal(t, "0", Count(5, -1).String())
	assert.Equal(t, "100891344545564193334812497256", Count(100, 50).String())
}

func TestTenChooseSevenIsFast(t *testing.T) {
	start := time.Now()
	count := 0
	for range Of([]int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, 7) {
		count++
	}
	assert.Equal(t, 120, count)
	assert.Less(t, time.Since(start), time.Second)
}
