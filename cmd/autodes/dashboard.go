package main

import (
	"context"
	"fmt"

	"github.com/RodrigoDSVDF/autodes"
	"github.com/spf13/cobra"
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Show the analytics dashboard",
	Long: `Summarize recent performance: totals, rolling score average, weekday
breakdown, activity heatmap and score trend.

Example:
  autodes dashboard
  autodes dashboard --window 90
  autodes dashboard --window 0
The last form covers all recorded history.`,
	RunE: runDashboard,
}

var dashboardWindow int

func init() {
	dashboardCmd.Flags().IntVar(&dashboardWindow, "window", autodes.DashboardWindowDefault, "Window in days ending at the latest record (0 = all time)")
}

func runDashboard(cmd *cobra.Command, args []string) error {
	client, err := openClient()
	if err != nil {
		return err
	}
	defer client.Close()

	report, err := client.Dashboard(context.Background(), dashboardWindow)
	if err != nil {
		return fmt.Errorf("build dashboard: %w", err)
	}

	return outputDashboard(cmd, report)
}
