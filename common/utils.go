package common

// Coalesce returns the first non-zero value from the provided values, or the zero value if all are zero.
// Configuration uses it to layer file values over defaults.
//
// Parameters:
//   - values: a variadic list of values to check for non-zero status
//
// Returns:
//   - T: the first non-zero value from the input, or the zero value if all are zero
func Coalesce[T comparable](values ...T) T {
	var zero T
	for _, v := range values {
		if v != zero {
			return v
		}
	}
	return zero
}

// WrapIndex maps any integer index onto [0, n) with wraparound, so -1 yields n-1 and n yields 0.
// Returns -1 when n is not positive.
//
// Parameters:
//   - index: the index to wrap, may be negative or past the end
//   - n: the length of the sequence
//
// Returns:
//   - int: the wrapped index
func WrapIndex(index, n int) int {
	if n <= 0 {
		return -1
	}
	return ((index % n) + n) % n
}
