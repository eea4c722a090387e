package search

// Distance returns the Levenshtein edit distance between a and b: the
// minimum number of single-character insertions, deletions, and
// substitutions that transform one into the other. Strings are compared
// rune by rune. The function is symmetric and Distance("", s) equals the
// rune length of s.
func Distance(a, b string) int {
	ra := []rune(a)
	rb := []rune(b)

	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	// Keep the shorter string on the inner loop so the rows stay small.
	if len(ra) < len(rb) {
		ra, rb = rb, ra
	}

	// Two-row dynamic programming; the full matrix is never materialized.
	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min(
				prev[j]+1,      // deletion
				curr[j-1]+1,    // insertion
				prev[j-1]+cost, // substitution
			)
		}
		prev, curr = curr, prev
	}

	return prev[len(rb)]
}

// NormalizedDistance returns the edit distance divided by the longer
// operand's rune length, bounding the result to [0, 1] so matches of
// different lengths are comparable. Two empty strings have distance 0.
func NormalizedDistance(a, b string) float64 {
	la := len([]rune(a))
	lb := len([]rune(b))
	if la == 0 && lb == 0 {
		return 0
	}
	return float64(Distance(a, b)) / float64(max(la, lb))
}
