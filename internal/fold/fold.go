// Package fold generates k-fold cross-validation splits.
package fold

import (
	"fmt"
	"math/rand/v2"
)

// Split holds the record indices used for one fold.
type Split struct {
	Train      []int
	Validation []int
}

// Partition shuffles the indices 0..n-1 with rng and cuts them into k
// validation groups whose sizes differ by at most one. The first n%k groups
// get the extra record. Each Train slice is the complement of its
// Validation slice, in permutation order.
func Partition(n, k int, rng *rand.Rand) ([]Split, error) {
	if k < 2 {
		return nil, fmt.Errorf("need at least 2 folds, got %d", k)
	}
	if k > n {
		return nil, fmt.Errorf("%d folds for %d records", k, n)
	}

	perm := rng.Perm(n)
	splits := make([]Split, k)

	perFold := n / k
	remainder := n % k

	idx := 0
	for i := 0; i < k; i++ {
		size := perFold
		if i < remainder {
			size++
		}
		splits[i].Validation = make([]int, size)
		copy(splits[i].Validation, perm[idx:idx+size])

		splits[i].Train = make([]int, n-size)
		copy(splits[i].Train, perm[:idx])
		copy(splits[i].Train[idx:], perm[idx+size:])

		idx += size
	}
	if idx != n {
		panic("fold: partition did not cover all records")
	}
	return splits, nil
}

// NewRand returns the deterministic generator used for shuffling.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}
