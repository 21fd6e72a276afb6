package autodes

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"
)

// ExportVersion is the current version of the JSON export format.
const ExportVersion = "1.0"

// ExportFormat is the top-level structure for JSON exports.
type ExportFormat struct {
	Version    string        `json:"version"`
	ExportedAt time.Time     `json:"exported_at"`
	Goals      GoalSet       `json:"goals,omitempty"`
	Records    []DailyRecord `json:"records"`
}

// MergeStrategy defines how to handle conflicts during import.
type MergeStrategy string

const (
	// MergeStrategySkip skips records that already exist (by ID).
	MergeStrategySkip MergeStrategy = "skip"
	// MergeStrategyReplace replaces existing records with imported versions.
	MergeStrategyReplace MergeStrategy = "replace"
	// MergeStrategyMerge upserts records by ID, keeping the original
	// creation time (default).
	MergeStrategyMerge MergeStrategy = "merge"
)

// ImportResult summarizes an import operation.
type ImportResult struct {
	Total   int      `json:"total"`
	Created int      `json:"created"`
	Merged  int      `json:"merged"`
	Skipped int      `json:"skipped"`
	Errors  []string `json:"errors,omitempty"`
}

// csvColumns is the canonical column order for CSV interchange. It matches
// the spreadsheet layout the normalization table accepts, so an exported
// file can be imported back without translation.
var csvColumns = []string{
	"date",
	"study_minutes",
	"adhered_to_plan",
	"exercise_minutes",
	"wellbeing",
	"nutrition",
	"motivation",
	"relationships",
	"sleep_hours",
	"daily_score",
	"notes",
}

// ExportJSON streams the journal as a versioned JSON archive to the writer.
// The archive carries goal overrides and full records including IDs, so a
// restore reproduces the store exactly.
func (s *Store) ExportJSON(ctx context.Context, w io.Writer) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return ErrStoreClosed
	}

	goals, err := s.goalsLocked()
	if err != nil {
		return fmt.Errorf("load goals: %w", err)
	}
	goalsJSON, err := json.Marshal(goals)
	if err != nil {
		return fmt.Errorf("encode goals: %w", err)
	}

	header := fmt.Sprintf(`{"version":"%s","exported_at":"%s","goals":%s,"records":[`,
		ExportVersion,
		time.Now().UTC().Format(time.RFC3339),
		goalsJSON,
	)
	if _, err := io.WriteString(w, header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, date, study_minutes, adhered_to_plan, exercise_minutes,
		       wellbeing, nutrition, motivation, relationships, sleep_hours,
		       daily_score, notes, created_at
		FROM entries
		ORDER BY date ASC, created_at ASC, id ASC
	`)
	if err != nil {
		return fmt.Errorf("query entries: %w", err)
	}
	defer rows.Close()

	enc := json.NewEncoder(w)
	first := true

	for rows.Next() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		rec, err := scanEntry(rows)
		if err != nil {
			return fmt.Errorf("scan entry: %w", err)
		}

		if !first {
			if _, err := io.WriteString(w, ","); err != nil {
				return fmt.Errorf("write separator: %w", err)
			}
		}
		first = false

		if err := enc.Encode(rec); err != nil {
			return fmt.Errorf("encode entry: %w", err)
		}
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate entries: %w", err)
	}

	if _, err := io.WriteString(w, "]}"); err != nil {
		return fmt.Errorf("write footer: %w", err)
	}

	return nil
}

// ExportCSV writes the journal in the canonical spreadsheet layout. IDs and
// creation times are not part of the sheet format, so a CSV round trip mints
// fresh IDs on import.
func (s *Store) ExportCSV(ctx context.Context, w io.Writer) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return ErrStoreClosed
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(csvColumns); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, date, study_minutes, adhered_to_plan, exercise_minutes,
		       wellbeing, nutrition, motivation, relationships, sleep_hours,
		       daily_score, notes, created_at
		FROM entries
		ORDER BY date ASC, created_at ASC, id ASC
	`)
	if err != nil {
		return fmt.Errorf("query entries: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		rec, err := scanEntry(rows)
		if err != nil {
			return fmt.Errorf("scan entry: %w", err)
		}
		if err := cw.Write(csvRow(rec)); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate entries: %w", err)
	}

	cw.Flush()
	return cw.Error()
}

func csvRow(rec *DailyRecord) []string {
	return []string{
		rec.Date.Format(DateLayout),
		formatFloat(rec.StudyMinutes),
		strconv.FormatBool(rec.AdheredToPlan),
		formatFloat(rec.ExerciseMinutes),
		formatFloat(rec.Wellbeing),
		formatFloat(rec.Nutrition),
		formatFloat(rec.Motivation),
		formatFloat(rec.Relationships),
		formatFloat(rec.SleepHours),
		formatFloat(rec.Score),
		rec.Notes,
	}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// EntryCount returns the number of stored records.
func (s *Store) EntryCount() (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return 0, ErrStoreClosed
	}

	var count int
	err := s.db.QueryRow("SELECT COUNT(*) FROM entries").Scan(&count)
	return count, err
}
