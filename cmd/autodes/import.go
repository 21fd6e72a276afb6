package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/RodrigoDSVDF/autodes"
	"github.com/spf13/cobra"
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import records from a file",
	Long: `Load records from a JSON archive or a CSV sheet.

JSON rows are matched by record ID against existing entries and handled
per --strategy: skip keeps the stored row, replace overwrites it, merge
updates its metrics but keeps the original creation time. CSV rows are
appended as new records. Scores are recomputed on the way in.

Example:
  autodes import --input backup.json
  autodes import --input backup.json --strategy replace --dry-run
  autodes import --input sheet.csv`,
	RunE: runImport,
}

var (
	importInput    string
	importFormat   string
	importStrategy string
	importDryRun   bool
)

func init() {
	importCmd.Flags().StringVarP(&importInput, "input", "i", "", "Source file (required)")
	importCmd.Flags().StringVar(&importFormat, "format", "", "File format: json or csv (default: by extension)")
	importCmd.Flags().StringVar(&importStrategy, "strategy", "", "Conflict strategy for JSON archives: skip, replace or merge (default merge)")
	importCmd.Flags().BoolVar(&importDryRun, "dry-run", false, "Report what would change without writing (JSON only)")
	importCmd.MarkFlagRequired("input")
}

func runImport(cmd *cobra.Command, args []string) error {
	format, err := resolveFormat(importFormat, importInput)
	if err != nil {
		return err
	}
	if format == "csv" {
		if cmd.Flags().Changed("strategy") {
			return fmt.Errorf("--strategy applies to JSON archives only")
		}
		if importDryRun {
			return fmt.Errorf("--dry-run applies to JSON archives only")
		}
	}

	cfg, err := loadAndValidateConfig()
	if err != nil {
		return err
	}

	st, err := autodes.NewStore(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	f, err := os.Open(importInput)
	if err != nil {
		return fmt.Errorf("open input: %w", err)
	}
	defer f.Close()

	var result *autodes.ImportResult
	message := fmt.Sprintf("Importing %s", filepath.Base(importInput))
	err = runWithSpinner(cmd.ErrOrStderr(), message, func() error {
		ctx := context.Background()
		var opErr error
		switch format {
		case "json":
			result, opErr = st.ImportJSON(ctx, f, autodes.MergeStrategy(importStrategy), importDryRun)
		case "csv":
			result, opErr = st.ImportCSV(ctx, f)
		}
		return opErr
	})
	if err != nil {
		return fmt.Errorf("import: %w", err)
	}

	return outputImportResult(cmd, result, importDryRun)
}
