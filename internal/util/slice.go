package util

import (
	"golang.org/x/exp/constraints"
	"sort"
)

// Duplicates returns every value that occurs more than once in s, in order of first repetition
func Duplicates(s []string) []string {
	seen := map[string]int{}
	var result []string
	for _, v := range s {
		seen[v]++
		if seen[v] == 2 {
			result = append(result, v)
		}
	}
	return result
}

func sortSlice[T constraints.Ordered](s []T) {
	sort.Slice(s, func(i, j int) bool {
		return s[i] < s[j]
	})
}

func SortedKeys[T constraints.Ordered, K any](input map[T]K) []T {
	result := make([]T, 0, len(input))
	for k := range input {
		result = append(result, k)
	}
	sortSlice(result)
	return result
}
