package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/RodrigoDSVDF/autodes"
	"github.com/spf13/cobra"
)

var goalsCmd = &cobra.Command{
	Use:   "goals",
	Short: "Show and set metric targets",
	Long: `Display the active goal targets. Overrides persist in the store and
replace the built-in defaults metric by metric.

Example:
  autodes goals
  autodes goals set study 300
  autodes goals set sleep 7.5`,
	RunE: runGoals,
}

var goalsSetCmd = &cobra.Command{
	Use:   "set <metric> <target>",
	Short: "Set a goal target",
	Args:  cobra.ExactArgs(2),
	RunE:  runGoalsSet,
}

func init() {
	goalsCmd.AddCommand(goalsSetCmd)
}

func runGoals(cmd *cobra.Command, args []string) error {
	client, err := openClient()
	if err != nil {
		return err
	}
	defer client.Close()

	goals, err := client.Goals(context.Background())
	if err != nil {
		return fmt.Errorf("load goals: %w", err)
	}

	return outputGoals(cmd, goals)
}

func runGoalsSet(cmd *cobra.Command, args []string) error {
	target, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return fmt.Errorf("parse target: %w", err)
	}

	client, err := openClient()
	if err != nil {
		return err
	}
	defer client.Close()

	metric := autodes.Metric(args[0])
	if err := client.SetGoal(context.Background(), metric, target); err != nil {
		return fmt.Errorf("set goal: %w", err)
	}

	if outputJSON {
		return outputAsJSON(cmd, map[string]interface{}{"metric": metric, "target": target})
	}
	printSuccess(cmd.OutOrStdout(), "Goal updated: %s -> %g", metric, target)
	return nil
}
