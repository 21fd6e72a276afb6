package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var insightsCmd = &cobra.Command{
	Use:   "insights",
	Short: "Rank what moves your score",
	Long: `Correlate each tracked metric against the daily score and rank them
by strength. Needs a minimum number of records before it reports.

Example:
  autodes insights
  autodes insights --json`,
	RunE: runInsights,
}

func runInsights(cmd *cobra.Command, args []string) error {
	client, err := openClient()
	if err != nil {
		return err
	}
	defer client.Close()

	report, err := client.Insights(context.Background())
	if err != nil {
		return fmt.Errorf("build insights: %w", err)
	}

	return outputInsights(cmd, report)
}
