package genetic

import (
	"github.com/packlab/binpack/pkg/utils"
)

// orderCrossover applies OX: a random slice of p1 is kept in place and the
// remaining positions are filled with p2's items in p2's order. The result
// is always a valid permutation of the same items.
func orderCrossover(rng *utils.RandSource, p1, p2 []int) []int {
	n := len(p1)
	if n < 2 {
		child := make([]int, n)
		copy(child, p1)
		return child
	}

	i := rng.Intn(n)
	j := rng.Intn(n)
	if i > j {
		i, j = j, i
	}

	child := make([]int, n)
	used := make([]bool, n)
	for k := i; k <= j; k++ {
		child[k] = p1[k]
		used[p1[k]] = true
	}

	pos := (j + 1) % n
	for k := 0; k < n; k++ {
		item := p2[(j+1+k)%n]
		if used[item] {
			continue
		}
		child[pos] = item
		pos = (pos + 1) % n
	}
	return child
}

// swapMutation exchanges two random positions in place.
func swapMutation(rng *utils.RandSource, perm []int) {
	n := len(perm)
	if n < 2 {
		return
	}
	i := rng.Intn(n)
	j := rng.Intn(n)
	perm[i], perm[j] = perm[j], perm[i]
}
