package quilltools

func Filter[T any](input []T, keep func(T) bool) []T {
	result := []T{}
	for _, item := range input {
		if keep(item) {
			result = append(result, item)
		}
	}

	return result
}
