package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var progressCmd = &cobra.Command{
	Use:   "progress",
	Short: "Show XP, level, streak and achievements",
	Long: `Display the gamified progression derived from your full history:
experience points, level, goal streak, unlocked achievements and how
recent days measure against each goal.

Example:
  autodes progress`,
	RunE: runProgress,
}

func runProgress(cmd *cobra.Command, args []string) error {
	client, err := openClient()
	if err != nil {
		return err
	}
	defer client.Close()

	state, err := client.Progress(context.Background())
	if err != nil {
		return fmt.Errorf("compute progress: %w", err)
	}

	return outputProgress(cmd, state)
}
