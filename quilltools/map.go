package quilltools

import (
	"cmp"
	"maps"
	"slices"
)

func Map[T any, Y any](input []T, transform func(T) Y) []Y {
	result := make([]Y, 0, len(input))
	for _, item := range input {
		result = append(result, transform(item))
	}

	return result
}

// SortedKeys returns the keys of the map in ascending order.
func SortedKeys[K cmp.Ordered, V any](input map[K]V) []K {
	return slices.Sorted(maps.Keys(input))
}
