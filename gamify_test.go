package autodes

import "testing"

func TestScoreStreak(t *testing.T) {
	tests := []struct {
		name   string
		scores []float64
		goal   float64
		want   int
	}{
		{
			name:   "streak stops at first miss",
			scores: []float64{80, 75, 60, 90, 95},
			goal:   70,
			want:   2,
		},
		{
			name:   "all above goal",
			scores: []float64{70, 71, 72},
			goal:   70,
			want:   3,
		},
		{
			name:   "latest below goal",
			scores: []float64{90, 90, 50},
			goal:   70,
			want:   0,
		},
		{
			name:   "empty history",
			scores: nil,
			goal:   70,
			want:   0,
		},
		{
			name:   "goal boundary counts",
			scores: []float64{69.9, 70},
			goal:   70,
			want:   1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ScoreStreak(seriesWithScores(tt.scores...), tt.goal)
			if got != tt.want {
				t.Errorf("ScoreStreak() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestGamify_XPFormula(t *testing.T) {
	s := MetricSeries{
		{Date: mustDate("2026-01-01"), StudyMinutes: 100, ExerciseMinutes: 70, Score: 60},
		{Date: mustDate("2026-01-02"), StudyMinutes: 50, ExerciseMinutes: 20, Score: 76},
	}

	state := Gamify(s, DefaultGoals())
	// floor(150/30) + floor(90/30) + floor(136/10) = 5 + 3 + 13
	if state.XP != 21 {
		t.Errorf("XP = %d, want 21", state.XP)
	}
	if state.Level != 1 {
		t.Errorf("Level = %d, want 1", state.Level)
	}
	if state.NextLevelXP != LevelSize {
		t.Errorf("NextLevelXP = %d, want %d", state.NextLevelXP, LevelSize)
	}
	if !almostEqual(state.LevelPct, 4.2) {
		t.Errorf("LevelPct = %v, want 4.2", state.LevelPct)
	}
}

func TestGamify_EmptyHistory(t *testing.T) {
	state := Gamify(nil, nil)
	if state.XP != 0 {
		t.Errorf("XP = %d, want 0", state.XP)
	}
	if state.Level != 1 {
		t.Errorf("Level = %d, want 1", state.Level)
	}
	if state.Streak != 0 {
		t.Errorf("Streak = %d, want 0", state.Streak)
	}
	if len(state.Achievements) != 0 {
		t.Errorf("Achievements = %v, want none", state.Achievements)
	}
	if len(state.Goals) == 0 {
		t.Error("Goals should still list default targets")
	}
	for _, g := range state.Goals {
		if g.Met {
			t.Errorf("goal %s met with no history", g.Metric)
		}
	}
}

func TestGamify_LevelBoundary(t *testing.T) {
	// 50 perfect scores: floor(5000/10) = 500 base XP, plus the
	// consistent week unlocked along the way.
	s := make(MetricSeries, 50)
	base := mustDate("2026-01-01")
	for i := range s {
		s[i] = DailyRecord{Date: base.AddDate(0, 0, i), Score: 100}
	}

	state := Gamify(s, DefaultGoals())
	wantXP := 500 + AchievementConsistentWeek.Info().BonusXP
	if state.XP != wantXP {
		t.Errorf("XP = %d, want %d", state.XP, wantXP)
	}
	if state.Level != 2 {
		t.Errorf("Level = %d, want 2", state.Level)
	}
	if state.LevelFloor != LevelSize {
		t.Errorf("LevelFloor = %d, want %d", state.LevelFloor, LevelSize)
	}
	if state.NextLevelXP != 2*LevelSize {
		t.Errorf("NextLevelXP = %d, want %d", state.NextLevelXP, 2*LevelSize)
	}
	if !almostEqual(state.LevelPct, float64(wantXP-LevelSize)/LevelSize*100) {
		t.Errorf("LevelPct = %v", state.LevelPct)
	}
	if state.Streak != 50 {
		t.Errorf("Streak = %d, want 50", state.Streak)
	}
}

func TestGamify_XPNeverDecreases(t *testing.T) {
	// Seven low days, seven high days, then a slump. The momentum
	// achievement unlocks during the high stretch and must survive
	// the slump.
	var scores []float64
	for i := 0; i < 7; i++ {
		scores = append(scores, 50)
	}
	for i := 0; i < 7; i++ {
		scores = append(scores, 90)
	}
	for i := 0; i < 7; i++ {
		scores = append(scores, 30)
	}
	s := seriesWithScores(scores...)

	prev := 0
	for n := 0; n <= len(s); n++ {
		state := Gamify(s[:n], DefaultGoals())
		if state.XP < prev {
			t.Fatalf("XP decreased at record %d: %d -> %d", n, prev, state.XP)
		}
		prev = state.XP
	}

	final := Gamify(s, DefaultGoals())
	if !hasAchievement(final.Achievements, AchievementMomentumShift) {
		t.Error("momentum shift should stay unlocked after the slump")
	}
}

func TestGamify_Achievements(t *testing.T) {
	tests := []struct {
		name    string
		series  MetricSeries
		want    Achievement
		blocked []Achievement
	}{
		{
			name:   "consistent week",
			series: seriesWithScores(70, 75, 80, 70, 90, 71, 70),
			want:   AchievementConsistentWeek,
		},
		{
			name: "study marathon",
			series: MetricSeries{
				{Date: mustDate("2026-01-01"), StudyMinutes: 6000},
				{Date: mustDate("2026-01-02"), StudyMinutes: 4000},
			},
			want: AchievementStudyMarathon,
		},
		{
			name: "training habit",
			series: MetricSeries{
				{Date: mustDate("2026-01-01"), ExerciseMinutes: 2999},
				{Date: mustDate("2026-01-02"), ExerciseMinutes: 1},
			},
			want: AchievementTrainingHabit,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state := Gamify(tt.series, DefaultGoals())
			if !hasAchievement(state.Achievements, tt.want) {
				t.Errorf("Achievements = %v, want %s unlocked", state.Achievements, tt.want)
			}
		})
	}
}

func TestGamify_MomentumShift(t *testing.T) {
	week := func(score float64) []float64 {
		return []float64{score, score, score, score, score, score, score}
	}

	tests := []struct {
		name   string
		scores []float64
		want   bool
	}{
		{
			name:   "clear jump over the prior week unlocks",
			scores: append(week(60), week(70)...),
			want:   true,
		},
		{
			name:   "a jump of exactly five points stays locked",
			scores: append(week(60), week(65)...),
			want:   false,
		},
		{
			name:   "needs two full weeks of history",
			scores: append(week(50)[:6], week(90)...),
			want:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state := Gamify(seriesWithScores(tt.scores...), DefaultGoals())
			got := hasAchievement(state.Achievements, AchievementMomentumShift)
			if got != tt.want {
				t.Errorf("momentum unlocked = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGamify_ConsistentWeekNeedsSevenInARow(t *testing.T) {
	// A miss on day four splits the run.
	s := seriesWithScores(80, 80, 80, 60, 80, 80, 80, 80)
	state := Gamify(s, DefaultGoals())
	if hasAchievement(state.Achievements, AchievementConsistentWeek) {
		t.Error("consistent week unlocked from a broken run")
	}
}

func TestGamify_IronDiscipline(t *testing.T) {
	s := make(MetricSeries, IronDisciplineDays)
	base := mustDate("2026-01-01")
	for i := range s {
		s[i] = DailyRecord{Date: base.AddDate(0, 0, i), AdheredToPlan: true}
	}

	state := Gamify(s, DefaultGoals())
	if !hasAchievement(state.Achievements, AchievementIronDiscipline) {
		t.Error("iron discipline not unlocked at the adherent day threshold")
	}

	state = Gamify(s[:IronDisciplineDays-1], DefaultGoals())
	if hasAchievement(state.Achievements, AchievementIronDiscipline) {
		t.Error("iron discipline unlocked below the threshold")
	}
}

func TestGoalReport(t *testing.T) {
	s := make(MetricSeries, RecentWindow)
	base := mustDate("2026-01-01")
	for i := range s {
		s[i] = DailyRecord{
			Date:          base.AddDate(0, 0, i),
			StudyMinutes:  250,
			SleepHours:    7,
			Score:         75,
			AdheredToPlan: i < 5,
		}
	}

	goals := GoalSet{
		MetricStudy:        240,
		MetricSleep:        8,
		MetricScore:        70,
		MetricOrganization: 5,
	}
	report := GoalReport(s, goals)
	if len(report) != len(goals) {
		t.Fatalf("GoalReport() rows = %d, want %d", len(report), len(goals))
	}

	byMetric := make(map[Metric]GoalProgress, len(report))
	for _, g := range report {
		byMetric[g.Metric] = g
	}

	study := byMetric[MetricStudy]
	if !study.Met || !almostEqual(study.Actual, 250) {
		t.Errorf("study = %+v, want met at 250", study)
	}
	sleep := byMetric[MetricSleep]
	if sleep.Met || !almostEqual(sleep.Gap, 1) {
		t.Errorf("sleep = %+v, want unmet with gap 1", sleep)
	}
	org := byMetric[MetricOrganization]
	if !org.Met || org.Actual != 5 {
		t.Errorf("organization = %+v, want 5 adherent days met", org)
	}
	score := byMetric[MetricScore]
	if !score.Met {
		t.Errorf("score = %+v, want met", score)
	}
}

func TestGoalReport_UsesRecentWindowOnly(t *testing.T) {
	// Old zero days must not drag the window mean down.
	s := make(MetricSeries, 20)
	base := mustDate("2026-01-01")
	for i := range s {
		minutes := 0.0
		if i >= 13 {
			minutes = 300
		}
		s[i] = DailyRecord{Date: base.AddDate(0, 0, i), StudyMinutes: minutes}
	}

	report := GoalReport(s, GoalSet{MetricStudy: 240})
	if len(report) != 1 {
		t.Fatalf("GoalReport() rows = %d, want 1", len(report))
	}
	if !report[0].Met || !almostEqual(report[0].Actual, 300) {
		t.Errorf("study = %+v, want window mean 300", report[0])
	}
}

func TestGoalSet_Target(t *testing.T) {
	goals := GoalSet{MetricStudy: 300}
	if got := goals.Target(MetricStudy); got != 300 {
		t.Errorf("Target(study) = %v, want 300", got)
	}
	if got := goals.Target(MetricScore); got != DefaultGoals()[MetricScore] {
		t.Errorf("Target(score) = %v, want default %v", got, DefaultGoals()[MetricScore])
	}
}

func hasAchievement(list []Achievement, want Achievement) bool {
	for _, a := range list {
		if a == want {
			return true
		}
	}
	return false
}
