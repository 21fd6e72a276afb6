package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent records",
	Long: `List recorded days in chronological order, oldest first.

Example:
  autodes history
  autodes history --last 30
  autodes history --last 0
The last form lists everything.`,
	RunE: runHistory,
}

var historyLast int

func init() {
	historyCmd.Flags().IntVar(&historyLast, "last", 10, "Number of most recent records (0 = all)")
}

func runHistory(cmd *cobra.Command, args []string) error {
	client, err := openClient()
	if err != nil {
		return err
	}
	defer client.Close()

	series, err := client.History(context.Background(), historyLast)
	if err != nil {
		return fmt.Errorf("load history: %w", err)
	}

	return outputHistory(cmd, series)
}
