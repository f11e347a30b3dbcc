package util

// Filter returns the elements matching p in a new slice, leaving s untouched
func Filter[T any](s []T, p func(T) bool) []T {
	filtered := make([]T, 0, len(s))
	for _, e := range s {
		if p(e) {
			filtered = append(filtered, e)
		}
	}

	return filtered
}

// FilterOrFallback behaves like Filter but returns all of s when nothing matches
func FilterOrFallback[T any](s []T, p func(T) bool) []T {
	filtered := Filter(s, p)
	if len(filtered) == 0 {
		return s
	}

	return filtered
}
