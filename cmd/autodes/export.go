package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/RodrigoDSVDF/autodes"
	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export records to a file",
	Long: `Write all records to a JSON archive or a CSV sheet.

JSON archives carry record IDs, creation times and goal overrides and
round-trip losslessly through import. CSV carries the metric columns
only and suits spreadsheets.

Example:
  autodes export --output backup.json
  autodes export --output sheet.csv
  autodes export --output data.txt --format json`,
	RunE: runExport,
}

var (
	exportOutput string
	exportFormat string
)

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Destination file (required)")
	exportCmd.Flags().StringVar(&exportFormat, "format", "", "File format: json or csv (default: by extension)")
	exportCmd.MarkFlagRequired("output")
}

func runExport(cmd *cobra.Command, args []string) error {
	format, err := resolveFormat(exportFormat, exportOutput)
	if err != nil {
		return err
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

	f, err := os.Create(exportOutput)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	defer f.Close()

	ctx := context.Background()
	switch format {
	case "json":
		err = st.ExportJSON(ctx, f)
	case "csv":
		err = st.ExportCSV(ctx, f)
	}
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("flush output: %w", err)
	}

	count, err := st.EntryCount()
	if err != nil {
		return fmt.Errorf("count records: %w", err)
	}

	if outputJSON {
		return outputAsJSON(cmd, map[string]interface{}{
			"output":  exportOutput,
			"format":  format,
			"records": count,
		})
	}
	printSuccess(cmd.OutOrStdout(), "Exported %d records to %s (%s)", count, exportOutput, format)
	return nil
}

// resolveFormat picks json or csv from an explicit flag or the file extension.
func resolveFormat(explicit, path string) (string, error) {
	if explicit != "" {
		f := strings.ToLower(explicit)
		if f != "json" && f != "csv" {
			return "", fmt.Errorf("%w: %q", autodes.ErrUnsupportedFormat, explicit)
		}
		return f, nil
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return "json", nil
	case ".csv":
		return "csv", nil
	}
	return "", fmt.Errorf("%w: cannot tell from %q, pass --format", autodes.ErrUnsupportedFormat, filepath.Base(path))
}
