package autodes

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// CorrelationMetrics lists the inputs correlated against the daily
// score. Organization enters as the 1/0 adherence flag.
func CorrelationMetrics() []Metric {
	return []Metric{
		MetricStudy,
		MetricExercise,
		MetricSleep,
		MetricWellbeing,
		MetricNutrition,
		MetricMotivation,
		MetricRelationships,
		MetricOrganization,
	}
}

// Correlate computes the Pearson correlation of each input metric
// against the daily score. Metrics with zero variance are excluded so
// the result never carries NaN, and a flat score column yields an
// empty map.
func Correlate(s MetricSeries) map[Metric]float64 {
	out := make(map[Metric]float64)
	if len(s) < 2 {
		return out
	}
	scores := s.Scores()
	if !hasVariance(scores) {
		return out
	}
	for _, m := range CorrelationMetrics() {
		values := s.Values(m)
		if !hasVariance(values) {
			continue
		}
		out[m] = stat.Correlation(values, scores, nil)
	}
	return out
}

// Rank orders correlations by absolute strength, strongest first.
// Ties break alphabetically by metric name so output is stable.
func Rank(correlations map[Metric]float64) []Influence {
	out := make([]Influence, 0, len(correlations))
	for m, c := range correlations {
		out = append(out, Influence{Metric: m, Coefficient: c})
	}
	sort.Slice(out, func(i, j int) bool {
		ai, aj := math.Abs(out[i].Coefficient), math.Abs(out[j].Coefficient)
		if ai != aj {
			return ai > aj
		}
		return out[i].Metric < out[j].Metric
	})
	return out
}

// TopFactor returns the strongest influence, if any.
func TopFactor(correlations map[Metric]float64) (Influence, bool) {
	ranked := Rank(correlations)
	if len(ranked) == 0 {
		return Influence{}, false
	}
	return ranked[0], true
}

// BuildInsights assembles the correlation report. Below
// MinCorrelationSamples the report is marked insufficient and carries
// no ranking.
func BuildInsights(s MetricSeries) InsightsReport {
	report := InsightsReport{SampleSize: len(s)}
	if len(s) < MinCorrelationSamples {
		return report
	}
	report.Sufficient = true
	report.Ranking = Rank(Correlate(s))
	if len(report.Ranking) > 0 {
		top := report.Ranking[0]
		report.Top = &top
	}
	return report
}

func hasVariance(values []float64) bool {
	if len(values) == 0 {
		return false
	}
	for _, v := range values[1:] {
		if v != values[0] {
			return true
		}
	}
	return false
}
