// Package hyper provides exact combinatorics and hypergeometric
// probability primitives for draw analysis.
package hyper

// Combination returns the binomial coefficient C(n, k) as a float64.
// The iterative running product keeps intermediate magnitudes bounded,
// so deck sizes into the low hundreds stay well inside float64 range
// where a raw factorial would overflow.
func Combination(n, k int) float64 {
	if k < 0 || k > n {
		return 0
	}
	if k == 0 || k == n {
		return 1
	}
	// C(n,k) == C(n,n-k); iterate over the smaller of the two
	if k > n-k {
		k = n - k
	}

	result := 1.0
	for i := 1; i <= k; i++ {
		result = result * float64(n-k+i) / float64(i)
	}
	return result
}

// PMF returns the hypergeometric probability of drawing exactly k
// successes in n draws, without replacement, from a population of
// size total containing successes favourable cards.
func PMF(total, successes, draws, k int) float64 {
	if draws > total || k < 0 || k > draws || k > successes {
		return 0
	}
	return Combination(successes, k) *
		Combination(total-successes, draws-k) /
		Combination(total, draws)
}

// AtLeast returns P(X >= minHits) for the hypergeometric distribution
// with the given population, success count and number of draws.
func AtLeast(total, successes, draws, minHits int) float64 {
	if minHits <= 0 {
		return 1
	}
	maxHits := min(draws, successes)
	if minHits > maxHits {
		return 0
	}
	if minHits == 1 {
		// complement form avoids summing the whole tail
		return 1 - PMF(total, successes, draws, 0)
	}

	p := 0.0
	for k := minHits; k <= maxHits; k++ {
		p += PMF(total, successes, draws, k)
	}
	return p
}
