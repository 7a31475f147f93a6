// Package stats provides the small amount of sampling statistics the
// Monte Carlo aggregator reports alongside its rates.
package stats

import "math"

// Proportion is a sampled hit rate: hits successes out of n samples.
type Proportion struct {
	Hits int
	N    int
}

// Estimate returns the sampled rate.
func (p Proportion) Estimate() float64 {
	if p.N == 0 {
		return 0
	}
	return float64(p.Hits) / float64(p.N)
}

// StdError returns the standard error of the sampled rate under the
// binomial model.
func (p Proportion) StdError() float64 {
	if p.N == 0 {
		return 0
	}
	est := p.Estimate()
	return math.Sqrt(est * (1 - est) / float64(p.N))
}

// Margin95 returns the half-width of the 95% confidence interval.
func (p Proportion) Margin95() float64 {
	return 1.96 * p.StdError()
}

// ConfidenceInterval95 returns the 95% interval clamped to [0, 1].
func (p Proportion) ConfidenceInterval95() (float64, float64) {
	est := p.Estimate()
	margin := p.Margin95()
	return max(0, est-margin), min(1, est+margin)
}
