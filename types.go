package autodes

import "time"

// DailyRecord is a single normalized day of self-development metrics.
type DailyRecord struct {
	ID              string    `json:"id"`
	Date            time.Time `json:"date"`
	StudyMinutes    float64   `json:"study_minutes"`
	AdheredToPlan   bool      `json:"adhered_to_plan"`
	ExerciseMinutes float64   `json:"exercise_minutes"`
	Wellbeing       float64   `json:"wellbeing"`
	Nutrition       float64   `json:"nutrition"`
	Motivation      float64   `json:"motivation"`
	Relationships   float64   `json:"relationships"`
	SleepHours      float64   `json:"sleep_hours"`
	Score           float64   `json:"daily_score"`
	Notes           string    `json:"notes,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

// Metric identifies a tracked dimension of a DailyRecord.
type Metric string

const (
	MetricStudy         Metric = "study"
	MetricExercise      Metric = "exercise"
	MetricSleep         Metric = "sleep"
	MetricWellbeing     Metric = "wellbeing"
	MetricNutrition     Metric = "nutrition"
	MetricMotivation    Metric = "motivation"
	MetricRelationships Metric = "relationships"
	MetricOrganization  Metric = "organization"
	MetricScore         Metric = "score"
)

// ValidMetrics returns all tracked metrics.
func ValidMetrics() []Metric {
	return []Metric{
		MetricStudy,
		MetricExercise,
		MetricSleep,
		MetricWellbeing,
		MetricNutrition,
		MetricMotivation,
		MetricRelationships,
		MetricOrganization,
		MetricScore,
	}
}

// IsValid checks if the metric is a tracked metric.
func (m Metric) IsValid() bool {
	for _, valid := range ValidMetrics() {
		if m == valid {
			return true
		}
	}
	return false
}

// GoalSet maps metrics to daily or weekly targets.
// Study and exercise targets are minutes per day, sleep is hours per
// night, score is the daily score floor, nutrition and motivation are
// 1-10 self-ratings, organization is adherent days per week.
type GoalSet map[Metric]float64

// DefaultGoals returns the built-in targets used until the user
// overrides them.
func DefaultGoals() GoalSet {
	return GoalSet{
		MetricStudy:        240,
		MetricExercise:     60,
		MetricSleep:        8,
		MetricScore:        70,
		MetricNutrition:    7,
		MetricMotivation:   7,
		MetricOrganization: 5,
	}
}

// Target returns the goal for m, falling back to the built-in default
// when the set has no entry.
func (g GoalSet) Target(m Metric) float64 {
	if v, ok := g[m]; ok {
		return v
	}
	return DefaultGoals()[m]
}

// LogParams contains parameters for logging a new day.
type LogParams struct {
	Date            time.Time `json:"date"`
	StudyMinutes    float64   `json:"study_minutes"`
	AdheredToPlan   bool      `json:"adhered_to_plan"`
	ExerciseMinutes float64   `json:"exercise_minutes"`
	Wellbeing       float64   `json:"wellbeing"`
	Nutrition       float64   `json:"nutrition"`
	Motivation      float64   `json:"motivation"`
	Relationships   float64   `json:"relationships"`
	SleepHours      float64   `json:"sleep_hours"`
	Notes           string    `json:"notes,omitempty"`
}

// Totals aggregates a series over a window.
type Totals struct {
	Records             int     `json:"records"`
	StudyMinutes        float64 `json:"study_minutes"`
	ExerciseMinutes     float64 `json:"exercise_minutes"`
	SleepHours          float64 `json:"sleep_hours"`
	AdherentDays        int     `json:"adherent_days"`
	MeanStudyMinutes    float64 `json:"mean_study_minutes"`
	MeanExerciseMinutes float64 `json:"mean_exercise_minutes"`
	MeanSleepHours      float64 `json:"mean_sleep_hours"`
	MeanScore           float64 `json:"mean_score"`
}

// WeekdayStats summarizes all records falling on one day of the week.
type WeekdayStats struct {
	Weekday          time.Weekday `json:"weekday"`
	Records          int          `json:"records"`
	MeanScore        float64      `json:"mean_score"`
	MeanStudyMinutes float64      `json:"mean_study_minutes"`
	MeanSleepHours   float64      `json:"mean_sleep_hours"`
}

// HeatmapWeek is one ISO week row of the activity heatmap. Days holds
// the best daily score per weekday, Monday first; 0 marks an empty cell.
type HeatmapWeek struct {
	Year int        `json:"year"`
	Week int        `json:"week"`
	Days [7]float64 `json:"days"`
}

// TrendLabel classifies the direction of the score trend.
type TrendLabel string

const (
	TrendStrongPositive TrendLabel = "strong positive"
	TrendMildPositive   TrendLabel = "mild positive"
	TrendStable         TrendLabel = "stable"
	TrendMildNegative   TrendLabel = "mild negative"
	TrendStrongNegative TrendLabel = "strong negative"
	TrendInsufficient   TrendLabel = "insufficient data"
)

// Color returns a hex color hint for rendering the label.
func (l TrendLabel) Color() string {
	switch l {
	case TrendStrongPositive:
		return "#00CC96"
	case TrendMildPositive:
		return "#7ED9B5"
	case TrendStable:
		return "#F2B134"
	case TrendMildNegative:
		return "#F28B66"
	case TrendStrongNegative:
		return "#EF553B"
	default:
		return "#8B8B8B"
	}
}

// TrendResult describes the fitted score trajectory.
type TrendResult struct {
	Label   TrendLabel `json:"label"`
	Slope   float64    `json:"slope"`
	Samples int        `json:"samples"`
}

// Influence pairs a metric with its correlation against the daily score.
type Influence struct {
	Metric      Metric  `json:"metric"`
	Coefficient float64 `json:"coefficient"`
}

// Achievement identifies an unlocked milestone.
type Achievement string

const (
	AchievementConsistentWeek Achievement = "consistent_week"
	AchievementStudyMarathon  Achievement = "study_marathon"
	AchievementTrainingHabit  Achievement = "training_habit"
	AchievementIronDiscipline Achievement = "iron_discipline"
	AchievementMomentumShift  Achievement = "momentum_shift"
)

// ValidAchievements returns all achievements in display order.
func ValidAchievements() []Achievement {
	return []Achievement{
		AchievementConsistentWeek,
		AchievementStudyMarathon,
		AchievementTrainingHabit,
		AchievementIronDiscipline,
		AchievementMomentumShift,
	}
}

// AchievementInfo describes an achievement for presentation.
type AchievementInfo struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	BonusXP     int    `json:"bonus_xp"`
}

// Info returns the static metadata for the achievement.
func (a Achievement) Info() AchievementInfo {
	switch a {
	case AchievementConsistentWeek:
		return AchievementInfo{
			Title:       "Consistent Week",
			Description: "7 consecutive days scoring 70 or higher",
			BonusXP:     150,
		}
	case AchievementStudyMarathon:
		return AchievementInfo{
			Title:       "Study Marathon",
			Description: "10,000 lifetime study minutes",
			BonusXP:     300,
		}
	case AchievementTrainingHabit:
		return AchievementInfo{
			Title:       "Training Habit",
			Description: "3,000 lifetime exercise minutes",
			BonusXP:     200,
		}
	case AchievementIronDiscipline:
		return AchievementInfo{
			Title:       "Iron Discipline",
			Description: "50 days adhering to the plan",
			BonusXP:     250,
		}
	case AchievementMomentumShift:
		return AchievementInfo{
			Title:       "Momentum Shift",
			Description: "Last 7 days average more than 5 points above the 7 before",
			BonusXP:     100,
		}
	default:
		return AchievementInfo{Title: string(a)}
	}
}

// GoalProgress reports one goal against recent performance.
type GoalProgress struct {
	Metric Metric  `json:"metric"`
	Target float64 `json:"target"`
	Actual float64 `json:"actual"`
	Met    bool    `json:"met"`
	Gap    float64 `json:"gap"`
}

// GamificationState is the full progression snapshot derived from
// the complete history.
type GamificationState struct {
	XP           int            `json:"xp"`
	Level        int            `json:"level"`
	LevelFloor   int            `json:"level_floor"`
	NextLevelXP  int            `json:"next_level_xp"`
	LevelPct     float64        `json:"level_pct"`
	Streak       int            `json:"streak"`
	Achievements []Achievement  `json:"achievements"`
	Goals        []GoalProgress `json:"goals"`
}

// DashboardReport bundles the analytics shown on the dashboard.
type DashboardReport struct {
	WindowDays    int            `json:"window_days"`
	Totals        Totals         `json:"totals"`
	Latest        *DailyRecord   `json:"latest,omitempty"`
	ScoreDelta    float64        `json:"score_delta"`
	HasDelta      bool           `json:"has_delta"`
	Rolling       []float64      `json:"rolling"`
	RollingWindow int            `json:"rolling_window"`
	Weekdays      []WeekdayStats `json:"weekdays"`
	Heatmap       []HeatmapWeek  `json:"heatmap"`
	Trend         TrendResult    `json:"trend"`
}

// InsightsReport ranks metrics by correlation with the daily score.
type InsightsReport struct {
	SampleSize int         `json:"sample_size"`
	Sufficient bool        `json:"sufficient"`
	Ranking    []Influence `json:"ranking,omitempty"`
	Top        *Influence  `json:"top,omitempty"`
}

// StoreStats contains statistics about the local store.
type StoreStats struct {
	RecordCount   int       `json:"record_count"`
	FirstDate     time.Time `json:"first_date"`
	LastDate      time.Time `json:"last_date"`
	AdherentDays  int       `json:"adherent_days"`
	DBPath        string    `json:"db_path"`
	DBSizeBytes   int64     `json:"db_size_bytes"`
	SchemaVersion string    `json:"schema_version"`
}

// DateLayout is the canonical date-only format for records.
const DateLayout = "2006-01-02"

// Scoring constants.
const (
	ScoreScale     = 2.0
	ScoreMax       = 100.0
	AdherenceBonus = 10.0
)

// Input bounds applied during normalization.
const (
	MaxStudyMinutes    = 1440.0
	MaxSleepHours      = 24.0
	SubjectiveScaleMax = 10.0
)

// Analytics tuning.
const (
	DashboardWindowDefault = 30
	RollingWindowDefault   = 7
	TrendTailDefault       = 5
	TrendSlopeMild         = 0.5
	TrendSlopeStrong       = 2.0
	MinTrendSamples        = 3
	MinCorrelationSamples  = 10
	RecentWindow           = 7
)

// Gamification tuning.
const (
	XPMinutesPerPoint    = 30
	XPScorePerPoint      = 10
	LevelSize            = 500
	StudyMarathonMinutes = 10000.0
	TrainingHabitMinutes = 3000.0
	ConsistentWeekLength = 7
	ConsistentWeekScore  = 70.0
	IronDisciplineDays   = 50
	MomentumMinDelta     = 5.0
)
