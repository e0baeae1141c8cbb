package fold

import (
	"sort"
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPartition_DisjointCover(t *testing.T) {
	for _, tc := range []struct{ n, k int }{
		{10, 2}, {10, 5}, {10, 10}, {11, 3}, {97, 5}, {2, 2},
	} {
		splits, err := Partition(tc.n, tc.k, NewRand(42))
		require.NoError(t, err)
		require.Len(t, splits, tc.k)

		seen := make(map[int]int)
		for _, s := range splits {
			for _, i := range s.Validation {
				seen[i]++
			}
			assert.Empty(t, lo.Intersect(s.Train, s.Validation), "train and validation overlap")
			assert.Len(t, s.Train, tc.n-len(s.Validation))

			all := append(append([]int{}, s.Train...), s.Validation...)
			sort.Ints(all)
			assert.Equal(t, lo.Range(tc.n), all)
		}
		assert.Len(t, seen, tc.n, "n=%d k=%d: validation groups must cover every index", tc.n, tc.k)
		for i, c := range seen {
			assert.Equal(t, 1, c, "index %d appears in %d validation groups", i, c)
		}
	}
}

func TestPartition_TenRecordsFiveFolds(t *testing.T) {
	splits, err := Partition(10, 5, NewRand(42))
	require.NoError(t, err)

	for _, s := range splits {
		assert.Len(t, s.Validation, 2)
		assert.Len(t, s.Train, 8)
	}
}

func TestPartition_Remainder(t *testing.T) {
	splits, err := Partition(11, 3, NewRand(1))
	require.NoError(t, err)

	sizes := lo.Map(splits, func(s Split, _ int) int { return len(s.Validation) })
	assert.Equal(t, []int{4, 4, 3}, sizes)
}

func TestPartition_Reproducible(t *testing.T) {
	a, err := Partition(50, 5, NewRand(42))
	require.NoError(t, err)
	b, err := Partition(50, 5, NewRand(42))
	require.NoError(t, err)
	assert.Equal(t, a, b)

	c, err := Partition(50, 5, NewRand(7))
	require.NoError(t, err)
	assert.NotEqual(t, a, c)
}

func TestPartition_Errors(t *testing.T) {
	_, err := Partition(10, 1, NewRand(0))
	assert.Error(t, err)

	_, err = Partition(3, 4, NewRand(0))
	assert.Error(t, err)
}
