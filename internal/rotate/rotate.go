// Package rotate provides in-place rotation of slices using the three-reversal technique.
package rotate

// Reverse reverses s[start..end] (both inclusive) in place.
// A range with start >= end is left untouched.
func Reverse[S ~[]E, E any](s S, start, end int) {
	for start < end {
		s[start], s[end] = s[end], s[start]
		start++
		end--
	}
}

// Normalize returns the left shift in the range [0, n) that rotating a slice
// of length n by d positions amounts to. Negative d counts to the right.
func Normalize(n, d int) int {
	if n <= 0 {
		return 0
	}
	d %= n
	if d < 0 {
		d += n
	}
	return d
}

// Left rotates s left by d positions in place: the first d elements
// move to the end, keeping their relative order.
func Left[S ~[]E, E any](s S, d int) {
	if d == 0 {
		return
	}

	n := len(s)
	if n == 0 {
		return
	}

	d = Normalize(n, d)
	Reverse(s, 0, d-1)
	Reverse(s, d, n-1)
	Reverse(s, 0, n-1)
}

// Right rotates s right by d positions in place.
func Right[S ~[]E, E any](s S, d int) {
	Left(s, -d)
}
