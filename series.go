package autodes

import "time"

// MetricSeries is a run of daily records in ascending date order, the
// order Store.All returns. All series functions assume that ordering.
type MetricSeries []DailyRecord

// Window returns the sub-series covering the last N calendar days,
// measured back from the latest record. A non-positive N returns the
// whole series.
func (s MetricSeries) Window(days int) MetricSeries {
	if days <= 0 || len(s) == 0 {
		return s
	}
	cutoff := s[len(s)-1].Date.AddDate(0, 0, -(days - 1))
	for i, r := range s {
		if !r.Date.Before(cutoff) {
			return s[i:]
		}
	}
	return s[:0]
}

// Latest returns the most recent record.
func (s MetricSeries) Latest() (DailyRecord, bool) {
	if len(s) == 0 {
		return DailyRecord{}, false
	}
	return s[len(s)-1], true
}

// Scores extracts the daily scores in series order.
func (s MetricSeries) Scores() []float64 {
	out := make([]float64, len(s))
	for i, r := range s {
		out[i] = r.Score
	}
	return out
}

// Values extracts one metric across the series. Organization reads
// plan adherence as 1 or 0.
func (s MetricSeries) Values(m Metric) []float64 {
	out := make([]float64, len(s))
	for i, r := range s {
		out[i] = metricValue(r, m)
	}
	return out
}

func metricValue(r DailyRecord, m Metric) float64 {
	switch m {
	case MetricStudy:
		return r.StudyMinutes
	case MetricExercise:
		return r.ExerciseMinutes
	case MetricSleep:
		return r.SleepHours
	case MetricWellbeing:
		return r.Wellbeing
	case MetricNutrition:
		return r.Nutrition
	case MetricMotivation:
		return r.Motivation
	case MetricRelationships:
		return r.Relationships
	case MetricOrganization:
		if r.AdheredToPlan {
			return 1
		}
		return 0
	case MetricScore:
		return r.Score
	}
	return 0
}

// RollingAverage computes the trailing mean of the daily score. Early
// positions average over however many records exist, so the output is
// always the same length as the series.
func (s MetricSeries) RollingAverage(window int) []float64 {
	if window < 1 {
		window = 1
	}
	out := make([]float64, len(s))
	sum := 0.0
	for i, r := range s {
		sum += r.Score
		if i >= window {
			sum -= s[i-window].Score
		}
		n := i + 1
		if n > window {
			n = window
		}
		out[i] = sum / float64(n)
	}
	return out
}

// PeriodTotals aggregates the series into sums, means, and the count
// of plan-adherent days.
func (s MetricSeries) PeriodTotals() Totals {
	t := Totals{Records: len(s)}
	if len(s) == 0 {
		return t
	}

	var scoreSum float64
	for _, r := range s {
		t.StudyMinutes += r.StudyMinutes
		t.ExerciseMinutes += r.ExerciseMinutes
		t.SleepHours += r.SleepHours
		scoreSum += r.Score
		if r.AdheredToPlan {
			t.AdherentDays++
		}
	}

	n := float64(len(s))
	t.MeanStudyMinutes = t.StudyMinutes / n
	t.MeanExerciseMinutes = t.ExerciseMinutes / n
	t.MeanSleepHours = t.SleepHours / n
	t.MeanScore = scoreSum / n
	return t
}

// WeekdayBreakdown groups the series by day of week and computes
// per-weekday means. The result always holds seven rows, Monday
// first; weekdays with no records report zero means and Records 0.
func (s MetricSeries) WeekdayBreakdown() []WeekdayStats {
	type bucket struct {
		n                   int
		score, study, sleep float64
	}
	var buckets [7]bucket
	for _, r := range s {
		i := mondayIndex(r.Date.Weekday())
		buckets[i].n++
		buckets[i].score += r.Score
		buckets[i].study += r.StudyMinutes
		buckets[i].sleep += r.SleepHours
	}

	out := make([]WeekdayStats, 7)
	for i := range out {
		stats := WeekdayStats{Weekday: weekdayAt(i), Records: buckets[i].n}
		if buckets[i].n > 0 {
			n := float64(buckets[i].n)
			stats.MeanScore = buckets[i].score / n
			stats.MeanStudyMinutes = buckets[i].study / n
			stats.MeanSleepHours = buckets[i].sleep / n
		}
		out[i] = stats
	}
	return out
}

// ActivityHeatmap builds the ISO week by weekday score grid. Each cell
// holds the best daily score of that cell, and every week between the
// first and last record is present so gaps render as empty rows.
func (s MetricSeries) ActivityHeatmap() []HeatmapWeek {
	if len(s) == 0 {
		return nil
	}

	type weekKey struct{ year, week int }
	start := mondayOf(s[0].Date)
	end := mondayOf(s[len(s)-1].Date)

	index := make(map[weekKey]int)
	var weeks []HeatmapWeek
	for d := start; !d.After(end); d = d.AddDate(0, 0, 7) {
		year, week := d.ISOWeek()
		index[weekKey{year, week}] = len(weeks)
		weeks = append(weeks, HeatmapWeek{Year: year, Week: week})
	}

	for _, r := range s {
		year, week := r.Date.ISOWeek()
		i, ok := index[weekKey{year, week}]
		if !ok {
			continue
		}
		day := mondayIndex(r.Date.Weekday())
		if r.Score > weeks[i].Days[day] {
			weeks[i].Days[day] = r.Score
		}
	}
	return weeks
}

// mondayIndex maps time.Weekday (Sunday = 0) to a Monday-first index.
func mondayIndex(d time.Weekday) int {
	return (int(d) + 6) % 7
}

func weekdayAt(i int) time.Weekday {
	return time.Weekday((i + 1) % 7)
}

// mondayOf returns the Monday of the ISO week containing d.
func mondayOf(d time.Time) time.Time {
	return d.AddDate(0, 0, -mondayIndex(d.Weekday()))
}
