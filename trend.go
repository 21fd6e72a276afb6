package autodes

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// EstimateTrend fits an ordinary least squares line through the last
// tail scores, indexed by position, and classifies the slope in score
// points per day. A non-positive tail uses TrendTailDefault and tails
// below MinTrendSamples are raised to it. A series shorter than the
// tail yields TrendInsufficient rather than a fit over partial data.
func EstimateTrend(s MetricSeries, tail int) TrendResult {
	if tail <= 0 {
		tail = TrendTailDefault
	}
	if tail < MinTrendSamples {
		tail = MinTrendSamples
	}
	if len(s) < tail {
		return TrendResult{Label: TrendInsufficient, Samples: len(s)}
	}
	s = s[len(s)-tail:]

	xs := make([]float64, len(s))
	for i := range xs {
		xs[i] = float64(i)
	}
	_, slope := stat.LinearRegression(xs, s.Scores(), nil, false)
	if math.IsNaN(slope) || math.IsInf(slope, 0) {
		return TrendResult{Label: TrendInsufficient, Samples: len(s)}
	}

	return TrendResult{Label: classifyTrend(slope), Slope: slope, Samples: len(s)}
}

// classifyTrend buckets the slope. Boundary slopes land in the weaker
// bucket: exactly 2.0 reads as mild, exactly 0.5 as stable.
func classifyTrend(slope float64) TrendLabel {
	switch {
	case slope > TrendSlopeStrong:
		return TrendStrongPositive
	case slope > TrendSlopeMild:
		return TrendMildPositive
	case slope < -TrendSlopeStrong:
		return TrendStrongNegative
	case slope < -TrendSlopeMild:
		return TrendMildNegative
	default:
		return TrendStable
	}
}
