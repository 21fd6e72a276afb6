package main

import (
	"context"
	"fmt"
	"time"

	"github.com/RodrigoDSVDF/autodes"
	"github.com/spf13/cobra"
)

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "Log one day of metrics",
	Long: `Record one day of personal development metrics and compute its score.

Example:
  autodes log --study 120 --exercise 30 --sleep 7.5
  autodes log --date 2026-03-02 --adhered=false --wellbeing 4 --notes "Rough day"`,
	RunE: runLog,
}

var (
	logDate          string
	logStudy         float64
	logAdhered       bool
	logExercise      float64
	logWellbeing     float64
	logNutrition     float64
	logMotivation    float64
	logRelationships float64
	logSleep         float64
	logNotes         string
)

func init() {
	logCmd.Flags().StringVar(&logDate, "date", "", "Date to log (YYYY-MM-DD, default today)")
	logCmd.Flags().Float64Var(&logStudy, "study", 60, "Study minutes")
	logCmd.Flags().BoolVar(&logAdhered, "adhered", true, "Adhered to the plan")
	logCmd.Flags().Float64Var(&logExercise, "exercise", 45, "Exercise minutes")
	logCmd.Flags().Float64Var(&logWellbeing, "wellbeing", 7, "Wellbeing rating (1-10)")
	logCmd.Flags().Float64Var(&logNutrition, "nutrition", 7, "Nutrition rating (1-10)")
	logCmd.Flags().Float64Var(&logMotivation, "motivation", 7, "Motivation rating (1-10)")
	logCmd.Flags().Float64Var(&logRelationships, "relationships", 7, "Relationships rating (1-10)")
	logCmd.Flags().Float64Var(&logSleep, "sleep", 7, "Sleep hours")
	logCmd.Flags().StringVar(&logNotes, "notes", "", "Free-form notes (markdown supported)")
}

func runLog(cmd *cobra.Command, args []string) error {
	client, err := openClient()
	if err != nil {
		return err
	}
	defer client.Close()

	params := autodes.LogParams{
		StudyMinutes:    logStudy,
		AdheredToPlan:   logAdhered,
		ExerciseMinutes: logExercise,
		Wellbeing:       logWellbeing,
		Nutrition:       logNutrition,
		Motivation:      logMotivation,
		Relationships:   logRelationships,
		SleepHours:      logSleep,
		Notes:           logNotes,
	}
	if logDate != "" {
		date, err := time.ParseInLocation(autodes.DateLayout, logDate, time.UTC)
		if err != nil {
			return fmt.Errorf("parse date: %w", err)
		}
		params.Date = date
	}

	rec, err := client.Log(context.Background(), params)
	if err != nil {
		return fmt.Errorf("log record: %w", err)
	}

	return outputRecord(cmd, rec)
}
