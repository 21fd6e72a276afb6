package main

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/RodrigoDSVDF/autodes"
	"github.com/spf13/cobra"
)

// outputAsJSON writes any value as formatted JSON to the command's stdout.
func outputAsJSON(cmd *cobra.Command, v interface{}) error {
	out := cmd.OutOrStdout()
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// outputError prints an error to stderr.
func outputError(w io.Writer, err error) {
	fmt.Fprintf(w, "Error: %s\n", err.Error())
}

// outputRecord prints a logged record in the configured format.
func outputRecord(cmd *cobra.Command, rec *autodes.DailyRecord) error {
	if outputJSON {
		return outputAsJSON(cmd, rec)
	}

	out := cmd.OutOrStdout()
	printSuccess(out, "Logged %s (score %.0f)", rec.Date.Format(autodes.DateLayout), rec.Score)
	fmt.Fprintf(out, "  Study: %.0f min   Exercise: %.0f min   Sleep: %.1f h\n",
		rec.StudyMinutes, rec.ExerciseMinutes, rec.SleepHours)
	fmt.Fprintf(out, "  Wellbeing %.0f  Nutrition %.0f  Motivation %.0f  Relationships %.0f\n",
		rec.Wellbeing, rec.Nutrition, rec.Motivation, rec.Relationships)
	adhered := "no"
	if rec.AdheredToPlan {
		adhered = "yes"
	}
	fmt.Fprintf(out, "  Plan adhered: %s\n", adhered)
	if rec.Notes != "" {
		fmt.Fprintf(out, "  Notes: %s\n", rec.Notes)
	}
	return nil
}

// outputDashboard prints the dashboard report.
func outputDashboard(cmd *cobra.Command, report *autodes.DashboardReport) error {
	if outputJSON {
		return outputAsJSON(cmd, report)
	}

	out := cmd.OutOrStdout()

	window := fmt.Sprintf("last %d days", report.WindowDays)
	if report.WindowDays <= 0 {
		window = "all time"
	}
	title := fmt.Sprintf("Dashboard (%s)", window)
	fmt.Fprintln(out, title)
	fmt.Fprintln(out, strings.Repeat("-", len(title)))

	if report.Latest == nil {
		printWarning(out, "No records yet. Log your first day with 'autodes log'.")
		return nil
	}

	delta := ""
	if report.HasDelta {
		arrow, style := "→", mutedStyle
		switch {
		case report.ScoreDelta > 0:
			arrow, style = "↑", successStyle
		case report.ScoreDelta < 0:
			arrow, style = "↓", errorStyle
		}
		delta = fmt.Sprintf(" (%s %+.1f vs previous)", arrow, report.ScoreDelta)
		if isTTY() {
			delta = fmt.Sprintf(" (%s %+.1f vs previous)", style.Render(arrow), report.ScoreDelta)
		}
	}
	fmt.Fprintf(out, "Latest score:   %.0f%s\n", report.Latest.Score, delta)
	fmt.Fprintf(out, "Mean score:     %.1f\n", report.Totals.MeanScore)
	fmt.Fprintf(out, "Study total:    %.1f h\n", report.Totals.StudyMinutes/60)
	fmt.Fprintf(out, "Exercise total: %.1f h\n", report.Totals.ExerciseMinutes/60)
	fmt.Fprintf(out, "Sleep mean:     %.1f h\n", report.Totals.MeanSleepHours)
	fmt.Fprintf(out, "Adherent days:  %d/%d\n", report.Totals.AdherentDays, report.Totals.Records)

	fmt.Fprintln(out)
	outputTrendLine(out, report.Trend)

	if len(report.Rolling) > 0 {
		fmt.Fprintln(out)
		fmt.Fprintf(out, "%d-day rolling score average:\n", report.RollingWindow)
		fmt.Fprintf(out, "  %s\n", formatSeriesTail(report.Rolling, 14))
	}

	if len(report.Weekdays) > 0 {
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Weekday score averages:")
		for _, day := range report.Weekdays {
			bar := renderBar(day.MeanScore, autodes.ScoreMax, 20)
			fmt.Fprintf(out, "  %-4s %s %5.1f (%d)\n", day.Weekday.String()[:3], bar, day.MeanScore, day.Records)
		}
	}

	if len(report.Heatmap) > 0 {
		fmt.Fprintln(out)
		renderHeatmap(out, report.Heatmap)
	}

	return nil
}

// outputTrendLine prints a one-line trend summary with the label's color.
func outputTrendLine(w io.Writer, trend autodes.TrendResult) {
	arrow := "→"
	switch trend.Label {
	case autodes.TrendStrongPositive, autodes.TrendMildPositive:
		arrow = "↑"
	case autodes.TrendStrongNegative, autodes.TrendMildNegative:
		arrow = "↓"
	case autodes.TrendInsufficient:
		arrow = "·"
	}

	label := string(trend.Label)
	if isTTY() {
		label = trendStyle(trend.Label).Render(label)
		arrow = trendStyle(trend.Label).Render(arrow)
	}

	if trend.Label == autodes.TrendInsufficient {
		fmt.Fprintf(w, "Score trend: %s %s (have %d records)\n", arrow, label, trend.Samples)
		return
	}
	fmt.Fprintf(w, "Score trend: %s %s (slope %+.2f/day over %d records)\n", arrow, label, trend.Slope, trend.Samples)
}

// outputTrend prints the trend command result.
func outputTrend(cmd *cobra.Command, trend autodes.TrendResult) error {
	if outputJSON {
		return outputAsJSON(cmd, trend)
	}
	outputTrendLine(cmd.OutOrStdout(), trend)
	return nil
}

// outputInsights prints the correlation ranking.
func outputInsights(cmd *cobra.Command, report *autodes.InsightsReport) error {
	if outputJSON {
		return outputAsJSON(cmd, report)
	}

	out := cmd.OutOrStdout()

	if !report.Sufficient {
		printWarning(out, "Not enough data for insights: %d records, need %d.",
			report.SampleSize, autodes.MinCorrelationSamples)
		printMuted(out, "Keep logging daily and come back.")
		return nil
	}

	if len(report.Ranking) == 0 {
		printWarning(out, "No metric varies enough to correlate yet.")
		return nil
	}

	fmt.Fprintf(out, "What moves your score (%d records):\n\n", report.SampleSize)
	for _, inf := range report.Ranking {
		bar := renderBar(absFloat(inf.Coefficient), 1, 16)
		sign := " "
		if inf.Coefficient < 0 {
			sign = "-"
		}
		fmt.Fprintf(out, "  %-14s %s%s %+.2f\n", inf.Metric, sign, bar, inf.Coefficient)
	}

	if report.Top != nil {
		fmt.Fprintln(out)
		direction := "lifts"
		if report.Top.Coefficient < 0 {
			direction = "drags"
		}
		printInfo(out, "%s %s your daily score the most (r = %+.2f).",
			titleCase(string(report.Top.Metric)), direction, report.Top.Coefficient)
	}
	return nil
}

// outputProgress prints the gamification state.
func outputProgress(cmd *cobra.Command, state *autodes.GamificationState) error {
	if outputJSON {
		return outputAsJSON(cmd, state)
	}

	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "Level %d", state.Level)
	if isTTY() {
		fmt.Fprintf(out, "  %s\n", labelStyle.Render(fmt.Sprintf("%d XP", state.XP)))
	} else {
		fmt.Fprintf(out, "  %d XP\n", state.XP)
	}
	bar := renderBar(state.LevelPct, 100, 24)
	fmt.Fprintf(out, "  %s %.0f%% to level %d (%d / %d XP)\n",
		bar, state.LevelPct, state.Level+1, state.XP-state.LevelFloor, state.NextLevelXP-state.LevelFloor)

	fmt.Fprintln(out)
	if state.Streak > 0 {
		printSuccess(out, "Goal streak: %d day(s) at or above target score", state.Streak)
	} else {
		printMuted(out, "Goal streak: none. Today is a good day to start one.")
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Achievements:")
	unlocked := make(map[autodes.Achievement]bool, len(state.Achievements))
	for _, a := range state.Achievements {
		unlocked[a] = true
	}
	for _, a := range autodes.ValidAchievements() {
		info := a.Info()
		line := fmt.Sprintf("%s (+%d XP)", info.Title, info.BonusXP)
		if unlocked[a] {
			if isTTY() {
				fmt.Fprintf(out, "  %s %s\n", successStyle.Render(iconSuccess), line)
			} else {
				fmt.Fprintf(out, "  %s %s\n", iconSuccess, line)
			}
		} else {
			printMuted(out, "  %s %s - locked", iconError, line)
		}
	}

	if len(state.Goals) > 0 {
		fmt.Fprintln(out)
		fmt.Fprintf(out, "Goals (last %d days):\n", autodes.RecentWindow)
		for _, g := range state.Goals {
			icon := iconError
			style := errorStyle
			if g.Met {
				icon = iconSuccess
				style = successStyle
			}
			line := fmt.Sprintf("%-14s target %6.1f   actual %6.1f", g.Metric, g.Target, g.Actual)
			if !g.Met {
				line += fmt.Sprintf("   gap %.1f", g.Gap)
			}
			if isTTY() {
				fmt.Fprintf(out, "  %s %s\n", style.Render(icon), line)
			} else {
				fmt.Fprintf(out, "  %s %s\n", icon, line)
			}
		}
	}
	return nil
}

// outputGoals prints the active goal set sorted by metric name.
func outputGoals(cmd *cobra.Command, goals autodes.GoalSet) error {
	if outputJSON {
		return outputAsJSON(cmd, goals)
	}

	out := cmd.OutOrStdout()

	metrics := make([]string, 0, len(goals))
	for m := range goals {
		metrics = append(metrics, string(m))
	}
	sort.Strings(metrics)

	fmt.Fprintln(out, "Active goals:")
	for _, m := range metrics {
		fmt.Fprintf(out, "  %-14s %g\n", m, goals[autodes.Metric(m)])
	}
	printMuted(out, "Change with: autodes goals set <metric> <target>")
	return nil
}

// outputHistory prints recent records, newest last.
func outputHistory(cmd *cobra.Command, series autodes.MetricSeries) error {
	if outputJSON {
		return outputAsJSON(cmd, series)
	}

	out := cmd.OutOrStdout()

	if len(series) == 0 {
		printWarning(out, "No records yet. Log your first day with 'autodes log'.")
		return nil
	}

	fmt.Fprintf(out, "%-12s %5s %7s %9s %6s  %s\n", "Date", "Score", "Study", "Exercise", "Sleep", "Plan")
	for _, rec := range series {
		adhered := iconError
		if rec.AdheredToPlan {
			adhered = iconSuccess
		}
		fmt.Fprintf(out, "%-12s %5.0f %6.0fm %8.0fm %5.1fh  %s\n",
			rec.Date.Format(autodes.DateLayout), rec.Score, rec.StudyMinutes,
			rec.ExerciseMinutes, rec.SleepHours, adhered)
		if rec.Notes != "" {
			for _, line := range strings.Split(renderMarkdown(rec.Notes), "\n") {
				printMuted(out, "    %s", line)
			}
		}
	}
	return nil
}

// outputImportResult prints an import summary.
func outputImportResult(cmd *cobra.Command, result *autodes.ImportResult, dryRun bool) error {
	if outputJSON {
		return outputAsJSON(cmd, result)
	}

	out := cmd.OutOrStdout()
	if dryRun {
		printInfo(out, "Dry run: nothing was written.")
	}
	printSuccess(out, "Processed %d records: %d created, %d merged, %d skipped",
		result.Total, result.Created, result.Merged, result.Skipped)
	if len(result.Errors) > 0 {
		printWarning(out, "%d rows failed:", len(result.Errors))
		for _, msg := range result.Errors {
			printMuted(out, "  %s", msg)
		}
	}
	return nil
}

// outputStats prints store statistics.
func outputStats(cmd *cobra.Command, stats *autodes.StoreStats) error {
	if outputJSON {
		return outputAsJSON(cmd, stats)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Store Statistics")
	fmt.Fprintln(out, "----------------")
	fmt.Fprintf(out, "Records:        %d\n", stats.RecordCount)
	fmt.Fprintf(out, "Adherent days:  %d\n", stats.AdherentDays)
	if !stats.FirstDate.IsZero() {
		fmt.Fprintf(out, "First record:   %s\n", stats.FirstDate.Format(autodes.DateLayout))
		fmt.Fprintf(out, "Last record:    %s\n", stats.LastDate.Format(autodes.DateLayout))
	}
	fmt.Fprintf(out, "Schema version: %s\n", stats.SchemaVersion)
	fmt.Fprintf(out, "Database:       %s (%s)\n", stats.DBPath, humanBytes(stats.DBSizeBytes))
	return nil
}

// renderHeatmap prints one row per ISO week, Monday first, one cell per day.
// Cell density follows the best score of that day.
func renderHeatmap(w io.Writer, weeks []autodes.HeatmapWeek) {
	fmt.Fprintln(w, "Weekly activity:")
	fmt.Fprintln(w, "           Mon Tue Wed Thu Fri Sat Sun")
	for _, week := range weeks {
		cells := make([]string, 7)
		for i, score := range week.Days {
			cells[i] = heatmapCell(score)
		}
		fmt.Fprintf(w, "  %d-W%02d  %s\n", week.Year, week.Week, strings.Join(cells, "   "))
	}
}

func heatmapCell(score float64) string {
	var ch string
	switch {
	case score <= 0:
		ch = "·"
	case score <= 25:
		ch = "░"
	case score <= 50:
		ch = "▒"
	case score <= 75:
		ch = "▓"
	default:
		ch = "█"
	}
	if isTTY() && score > 0 {
		return infoStyle.Render(ch)
	}
	return ch
}

// renderBar draws a fixed-width bar filled proportionally to value/max.
func renderBar(value, max float64, width int) string {
	if max <= 0 {
		max = 1
	}
	filled := int(value / max * float64(width))
	if filled < 0 {
		filled = 0
	}
	if filled > width {
		filled = width
	}
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	if isTTY() {
		return infoStyle.Render(bar)
	}
	return bar
}

// formatSeriesTail renders up to n trailing values of a series.
func formatSeriesTail(values []float64, n int) string {
	if len(values) > n {
		values = values[len(values)-n:]
	}
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = fmt.Sprintf("%.1f", v)
	}
	return strings.Join(parts, "  ")
}

func absFloat(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func humanBytes(n int64) string {
	switch {
	case n >= 1<<20:
		return fmt.Sprintf("%.1f MiB", float64(n)/(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%.1f KiB", float64(n)/(1<<10))
	default:
		return fmt.Sprintf("%d B", n)
	}
}
