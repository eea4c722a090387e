package search

// Suggest returns the candidate closest to query by normalized edit
// distance. Candidates are tried in order, so the first of several
// equally distant candidates wins. Returns ErrNoCandidates when the
// candidate set is empty; callers collecting candidates from an empty
// book must guard against this.
func Suggest(query string, candidates []string) (string, error) {
	if len(candidates) == 0 {
		return "", ErrNoCandidates
	}

	best := candidates[0]
	bestScore := NormalizedDistance(query, best)
	for _, candidate := range candidates[1:] {
		if score := NormalizedDistance(query, candidate); score < bestScore {
			best = candidate
			bestScore = score
		}
	}
	return best, nil
}
