package main

import (
	"context"
	"fmt"

	"github.com/RodrigoDSVDF/autodes"
	"github.com/spf13/cobra"
)

var trendCmd = &cobra.Command{
	Use:   "trend",
	Short: "Show the score trend",
	Long: `Fit a line through recent daily scores and classify the direction.

Example:
  autodes trend
  autodes trend --tail 30`,
	RunE: runTrend,
}

var trendTail int

func init() {
	trendCmd.Flags().IntVar(&trendTail, "tail", autodes.TrendTailDefault, "Number of most recent records to fit")
}

func runTrend(cmd *cobra.Command, args []string) error {
	client, err := openClient()
	if err != nil {
		return err
	}
	defer client.Close()

	trend, err := client.Trend(context.Background(), trendTail)
	if err != nil {
		return fmt.Errorf("estimate trend: %w", err)
	}

	return outputTrend(cmd, trend)
}
