package utils

// FindIndex returns the index of the first element equal to item, or -1.
func FindIndex[T comparable](slice []T, item T) int {
	for i, v := range slice {
		if v == item {
			return i
		}
	}
	return -1
}

// Filter keeps the elements satisfying keep, reusing the backing array.
func Filter[T any](slice []T, keep func(T) bool) []T {
	out := slice[:0]
	for _, v := range slice {
		if keep(v) {
			out = append(out, v)
		}
	}
	return out
}
