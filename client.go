package autodes

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"
)

// Client is the main entry point for interacting with an Autodes journal.
type Client struct {
	store  *Store
	config Config
	debug  *DebugLogger

	mu       sync.Mutex
	series   MetricSeries
	loaded   bool
	loadedAt time.Time
}

// New creates a Client with the given configuration.
func New(cfg Config) (*Client, error) {
	cfg = cfg.WithDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("client: %w", err)
	}

	st, err := NewStore(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("client: %w", err)
	}

	debug, err := NewDebugLogger(cfg.Debug, cfg.DebugLogPath)
	if err != nil {
		st.Close()
		return nil, fmt.Errorf("client: %w", err)
	}

	return &Client{
		store:  st,
		config: cfg,
		debug:  debug,
	}, nil
}

// Log records one day of metrics. The daily score is computed from the
// subjective metrics and the adherence bonus; any caller-supplied score is
// ignored. A zero date means today. Logging the same date again adds a new
// record rather than overwriting the old one.
func (c *Client) Log(ctx context.Context, params LogParams) (*DailyRecord, error) {
	date := params.Date
	if date.IsZero() {
		date = time.Now().UTC()
	}
	date = time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)

	rec := DailyRecord{
		Date:            date,
		StudyMinutes:    clampRange(params.StudyMinutes, 0, MaxStudyMinutes),
		AdheredToPlan:   params.AdheredToPlan,
		ExerciseMinutes: clampRange(params.ExerciseMinutes, 0, MaxStudyMinutes),
		Wellbeing:       clampRange(params.Wellbeing, 0, SubjectiveScaleMax),
		Nutrition:       clampRange(params.Nutrition, 0, SubjectiveScaleMax),
		Motivation:      clampRange(params.Motivation, 0, SubjectiveScaleMax),
		Relationships:   clampRange(params.Relationships, 0, SubjectiveScaleMax),
		SleepHours:      clampRange(params.SleepHours, 0, MaxSleepHours),
		Notes:           strings.TrimSpace(params.Notes),
	}

	stored, err := c.store.Append(rec)
	if err != nil {
		c.debug.LogError("log", err)
		return nil, err
	}
	c.debug.LogStore("append", fmt.Sprintf("%s score %.0f", stored.Date.Format(DateLayout), stored.Score))

	c.mu.Lock()
	c.invalidateLocked("new record")
	c.mu.Unlock()

	return stored, nil
}

// Series returns every record in date order. Results are cached for the
// configured TTL; any write through this client drops the cache.
func (c *Client) Series(ctx context.Context) (MetricSeries, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.seriesLocked()
}

func (c *Client) seriesLocked() (MetricSeries, error) {
	if c.loaded && time.Since(c.loadedAt) < c.config.CacheTTL {
		c.debug.LogCache("hit", fmt.Sprintf("%d records, age %s", len(c.series), time.Since(c.loadedAt).Round(time.Millisecond)))
		return c.series, nil
	}

	series, err := c.store.All()
	if err != nil {
		c.debug.LogError("load series", err)
		return nil, err
	}
	c.debug.LogCache("miss", fmt.Sprintf("loaded %d records", len(series)))

	c.series = series
	c.loaded = true
	c.loadedAt = time.Now()
	return series, nil
}

// Refresh drops the cached series so the next read hits the store. Useful
// when another process wrote to the same database file.
func (c *Client) Refresh() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.invalidateLocked("manual refresh")
}

func (c *Client) invalidateLocked(reason string) {
	if c.loaded {
		c.debug.LogCache("invalidate", reason)
	}
	c.loaded = false
	c.series = nil
}

// Dashboard assembles the overview report for the last windowDays days,
// measured back from the most recent record. windowDays <= 0 means the whole
// history.
func (c *Client) Dashboard(ctx context.Context, windowDays int) (*DashboardReport, error) {
	series, err := c.Series(ctx)
	if err != nil {
		return nil, err
	}
	windowed := series.Window(windowDays)

	report := &DashboardReport{
		WindowDays:    windowDays,
		Totals:        windowed.PeriodTotals(),
		Rolling:       windowed.RollingAverage(RollingWindowDefault),
		RollingWindow: RollingWindowDefault,
		Weekdays:      windowed.WeekdayBreakdown(),
		Heatmap:       windowed.ActivityHeatmap(),
		Trend:         EstimateTrend(windowed, TrendTailDefault),
	}

	if latest, ok := windowed.Latest(); ok {
		rec := latest
		report.Latest = &rec
		if len(windowed) >= 2 {
			report.ScoreDelta = latest.Score - windowed[len(windowed)-2].Score
			report.HasDelta = true
		}
	}
	return report, nil
}

// Trend classifies the score trajectory over the last tail records.
// tail <= 0 uses the default window.
func (c *Client) Trend(ctx context.Context, tail int) (TrendResult, error) {
	series, err := c.Series(ctx)
	if err != nil {
		return TrendResult{}, err
	}
	return EstimateTrend(series, tail), nil
}

// Insights ranks each habit metric by how strongly it moves the daily score.
func (c *Client) Insights(ctx context.Context) (*InsightsReport, error) {
	series, err := c.Series(ctx)
	if err != nil {
		return nil, err
	}
	report := BuildInsights(series)
	return &report, nil
}

// Progress computes the gamification state: XP, level, streak, achievements
// and goal progress over the recent window.
func (c *Client) Progress(ctx context.Context) (*GamificationState, error) {
	series, err := c.Series(ctx)
	if err != nil {
		return nil, err
	}
	goals, err := c.Goals(ctx)
	if err != nil {
		return nil, err
	}
	state := Gamify(series, goals)
	return &state, nil
}

// Goals returns the active goal set: the defaults overlaid with any targets
// the user has changed.
func (c *Client) Goals(ctx context.Context) (GoalSet, error) {
	overrides, err := c.store.Goals()
	if err != nil {
		return nil, err
	}
	goals := DefaultGoals()
	for metric, target := range overrides {
		goals[metric] = target
	}
	return goals, nil
}

// SetGoal changes the target for one metric. The override persists across
// sessions.
func (c *Client) SetGoal(ctx context.Context, metric Metric, target float64) error {
	if err := c.store.SetGoal(metric, target); err != nil {
		c.debug.LogError("set goal", err)
		return err
	}
	c.debug.LogStore("set goal", fmt.Sprintf("%s = %g", metric, target))
	return nil
}

// History returns the last n records in date order. n <= 0 means all.
func (c *Client) History(ctx context.Context, n int) (MetricSeries, error) {
	series, err := c.Series(ctx)
	if err != nil {
		return nil, err
	}
	if n > 0 && len(series) > n {
		series = series[len(series)-n:]
	}
	return series, nil
}

// DeleteDate removes every record logged for the given calendar day and
// reports how many rows were deleted.
func (c *Client) DeleteDate(ctx context.Context, date time.Time) (int, error) {
	deleted, err := c.store.DeleteDate(date)
	if err != nil {
		c.debug.LogError("delete date", err)
		return 0, err
	}
	if deleted > 0 {
		c.mu.Lock()
		c.invalidateLocked("records deleted")
		c.mu.Unlock()
	}
	c.debug.LogStore("delete date", fmt.Sprintf("%s removed %d", date.Format(DateLayout), deleted))
	return deleted, nil
}

// Stats reports database-level statistics.
func (c *Client) Stats() (*StoreStats, error) {
	return c.store.Stats()
}

// Close releases the database and the debug log.
func (c *Client) Close() error {
	c.debug.Close()
	return c.store.Close()
}
