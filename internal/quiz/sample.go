package quiz

import "math/rand/v2"

// Sample draws n items from items uniformly without replacement, in draw
// order. When items has fewer than n entries all of them are returned in
// their original order. items is not modified.
func Sample[T any](r *rand.Rand, items []T, n int) []T {
	if len(items) < n {
		out := make([]T, len(items))
		copy(out, items)
		return out
	}
	if n <= 0 {
		return []T{}
	}

	// Partial Fisher-Yates over an index permutation.
	idx := make([]int, len(items))
	for i := range idx {
		idx[i] = i
	}
	out := make([]T, 0, n)
	for i := 0; i < n; i++ {
		j := i + r.IntN(len(idx)-i)
		idx[i], idx[j] = idx[j], idx[i]
		out = append(out, items[idx[i]])
	}
	return out
}
