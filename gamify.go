package autodes

import "gonum.org/v1/gonum/stat"

// Gamify derives the progression snapshot from the full history.
// Base XP accrues from lifetime study minutes, exercise minutes, and
// accumulated score; unlocked achievements add their bonus on top.
func Gamify(s MetricSeries, goals GoalSet) GamificationState {
	if goals == nil {
		goals = DefaultGoals()
	}

	var study, exercise, scoreSum float64
	for _, r := range s {
		study += r.StudyMinutes
		exercise += r.ExerciseMinutes
		scoreSum += r.Score
	}

	achievements := unlockedAchievements(s)
	xp := int(study/XPMinutesPerPoint) + int(exercise/XPMinutesPerPoint) + int(scoreSum/XPScorePerPoint)
	for _, a := range achievements {
		xp += a.Info().BonusXP
	}

	level := xp/LevelSize + 1
	floor := (level - 1) * LevelSize

	return GamificationState{
		XP:           xp,
		Level:        level,
		LevelFloor:   floor,
		NextLevelXP:  level * LevelSize,
		LevelPct:     float64(xp-floor) / float64(LevelSize) * 100,
		Streak:       ScoreStreak(s, goals.Target(MetricScore)),
		Achievements: achievements,
		Goals:        GoalReport(s, goals),
	}
}

// unlockedAchievements replays the history in order and keeps every
// achievement that was earned at any point. Once unlocked, a later
// slump cannot take an achievement back, so XP never moves backward
// when a new day is appended. The momentum check compares the last
// RecentWindow records against the RecentWindow before them, so it
// needs twice the window before it can fire.
func unlockedAchievements(s MetricSeries) []Achievement {
	unlocked := make(map[Achievement]bool)

	var study, exercise float64
	adherent := 0
	run := 0
	for i, r := range s {
		study += r.StudyMinutes
		exercise += r.ExerciseMinutes
		if r.AdheredToPlan {
			adherent++
		}
		if r.Score >= ConsistentWeekScore {
			run++
		} else {
			run = 0
		}

		if run >= ConsistentWeekLength {
			unlocked[AchievementConsistentWeek] = true
		}
		if study >= StudyMarathonMinutes {
			unlocked[AchievementStudyMarathon] = true
		}
		if exercise >= TrainingHabitMinutes {
			unlocked[AchievementTrainingHabit] = true
		}
		if adherent >= IronDisciplineDays {
			unlocked[AchievementIronDiscipline] = true
		}
		if n := i + 1; n >= 2*RecentWindow {
			recent := stat.Mean(s[n-RecentWindow:n].Scores(), nil)
			previous := stat.Mean(s[n-2*RecentWindow:n-RecentWindow].Scores(), nil)
			if recent-previous > MomentumMinDelta {
				unlocked[AchievementMomentumShift] = true
			}
		}
	}

	var out []Achievement
	for _, a := range ValidAchievements() {
		if unlocked[a] {
			out = append(out, a)
		}
	}
	return out
}

// ScoreStreak counts records from the latest backward while the score
// stays at or above goal.
func ScoreStreak(s MetricSeries, goal float64) int {
	streak := 0
	for i := len(s) - 1; i >= 0; i-- {
		if s[i].Score < goal {
			break
		}
		streak++
	}
	return streak
}

// GoalReport evaluates each goal against the last RecentWindow
// records. Organization counts adherent days in the window; every
// other metric compares the window mean against its target.
func GoalReport(s MetricSeries, goals GoalSet) []GoalProgress {
	if goals == nil {
		goals = DefaultGoals()
	}
	recent := s
	if len(recent) > RecentWindow {
		recent = recent[len(recent)-RecentWindow:]
	}

	var out []GoalProgress
	for _, m := range ValidMetrics() {
		target, ok := goals[m]
		if !ok {
			continue
		}

		actual := 0.0
		if len(recent) > 0 {
			if m == MetricOrganization {
				for _, r := range recent {
					if r.AdheredToPlan {
						actual++
					}
				}
			} else {
				actual = stat.Mean(recent.Values(m), nil)
			}
		}

		gap := target - actual
		if gap < 0 {
			gap = 0
		}
		out = append(out, GoalProgress{
			Metric: m,
			Target: target,
			Actual: actual,
			Met:    actual >= target,
			Gap:    gap,
		})
	}
	return out
}
