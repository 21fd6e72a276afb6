package autodes

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"
)

// ImportJSON restores records from a JSON archive produced by ExportJSON.
// It streams the archive so large files never load fully into memory.
//
// Note: this function holds the store's write lock for the entire duration
// of the import. Consider dryRun=true first to preview the import scope.
func (s *Store) ImportJSON(ctx context.Context, r io.Reader, strategy MergeStrategy, dryRun bool) (*ImportResult, error) {
	switch strategy {
	case "":
		strategy = MergeStrategyMerge
	case MergeStrategySkip, MergeStrategyReplace, MergeStrategyMerge:
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidMergeStrategy, strategy)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, ErrStoreClosed
	}

	dec := json.NewDecoder(r)
	result := &ImportResult{}

	token, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("read opening token: %w", err)
	}
	if delim, ok := token.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("expected opening brace, got %v", token)
	}

	var version string
	for dec.More() {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		token, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("read field name: %w", err)
		}
		fieldName, ok := token.(string)
		if !ok {
			return nil, fmt.Errorf("expected field name, got %v", token)
		}

		switch fieldName {
		case "version":
			if err := dec.Decode(&version); err != nil {
				return nil, fmt.Errorf("decode version: %w", err)
			}
			if version != ExportVersion {
				return nil, fmt.Errorf("%w: %q (expected %q)", ErrUnsupportedVersion, version, ExportVersion)
			}

		case "goals":
			var goals map[Metric]float64
			if err := dec.Decode(&goals); err != nil {
				return nil, fmt.Errorf("decode goals: %w", err)
			}
			if !dryRun {
				for metric, target := range goals {
					if err := s.setGoalLocked(metric, target); err != nil {
						result.Errors = append(result.Errors, fmt.Sprintf("goal %s: %v", metric, err))
					}
				}
			}

		case "records":
			if err := s.importRecordsArray(ctx, dec, strategy, dryRun, result); err != nil {
				return result, fmt.Errorf("import records: %w", err)
			}

		default:
			// Skip unknown fields, including exported_at.
			var discard any
			if err := dec.Decode(&discard); err != nil {
				return nil, fmt.Errorf("decode field %s: %w", fieldName, err)
			}
		}
	}

	if version == "" {
		return nil, fmt.Errorf("missing version field in archive")
	}

	return result, nil
}

// importRecordsArray processes the records array from the JSON stream.
func (s *Store) importRecordsArray(ctx context.Context, dec *json.Decoder, strategy MergeStrategy, dryRun bool, result *ImportResult) error {
	token, err := dec.Token()
	if err != nil {
		return fmt.Errorf("read records array start: %w", err)
	}
	if delim, ok := token.(json.Delim); !ok || delim != '[' {
		return fmt.Errorf("expected records array, got %v", token)
	}

	for dec.More() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		var rec DailyRecord
		if err := dec.Decode(&rec); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("decode record: %v", err))
			continue
		}
		result.Total++

		rec = sanitizeImported(rec)
		if rec.Date.IsZero() {
			result.Errors = append(result.Errors, fmt.Sprintf("record %s: %v", rec.ID, ErrInvalidDate))
			continue
		}

		exists := false
		if rec.ID != "" {
			exists, err = s.entryExistsLocked(rec.ID)
			if err != nil {
				result.Errors = append(result.Errors, fmt.Sprintf("check existence %s: %v", rec.ID, err))
				continue
			}
		}

		if dryRun {
			if exists {
				switch strategy {
				case MergeStrategySkip:
					result.Skipped++
				case MergeStrategyReplace, MergeStrategyMerge:
					result.Merged++
				}
			} else {
				result.Created++
			}
			continue
		}

		created, err := s.importEntry(rec, strategy, exists)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("import %s: %v", rec.ID, err))
			continue
		}

		if created {
			result.Created++
		} else if strategy == MergeStrategySkip {
			result.Skipped++
		} else {
			result.Merged++
		}
	}

	token, err = dec.Token()
	if err != nil {
		return fmt.Errorf("read records array end: %w", err)
	}
	if delim, ok := token.(json.Delim); !ok || delim != ']' {
		return fmt.Errorf("expected records array end, got %v", token)
	}

	return nil
}

// sanitizeImported clamps imported metric values to their valid ranges and
// recomputes the daily score, so a hand-edited archive cannot smuggle in an
// inconsistent one.
func sanitizeImported(rec DailyRecord) DailyRecord {
	if !rec.Date.IsZero() {
		rec.Date = time.Date(rec.Date.Year(), rec.Date.Month(), rec.Date.Day(), 0, 0, 0, 0, time.UTC)
	}
	rec.StudyMinutes = clampRange(rec.StudyMinutes, 0, MaxStudyMinutes)
	rec.ExerciseMinutes = clampRange(rec.ExerciseMinutes, 0, MaxStudyMinutes)
	rec.Wellbeing = clampRange(rec.Wellbeing, 0, SubjectiveScaleMax)
	rec.Nutrition = clampRange(rec.Nutrition, 0, SubjectiveScaleMax)
	rec.Motivation = clampRange(rec.Motivation, 0, SubjectiveScaleMax)
	rec.Relationships = clampRange(rec.Relationships, 0, SubjectiveScaleMax)
	rec.SleepHours = clampRange(rec.SleepHours, 0, MaxSleepHours)
	rec.Notes = strings.TrimSpace(rec.Notes)
	rec.Score = ComputeScore(rec.Wellbeing, rec.Nutrition, rec.Motivation, rec.Relationships, rec.AdheredToPlan)
	return rec
}

func (s *Store) entryExistsLocked(id string) (bool, error) {
	var count int
	err := s.db.QueryRow("SELECT COUNT(*) FROM entries WHERE id = ?", id).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// importEntry imports a single record based on the merge strategy.
// Returns true if the record was created, false if it was merged or skipped.
func (s *Store) importEntry(rec DailyRecord, strategy MergeStrategy, exists bool) (bool, error) {
	if exists && strategy == MergeStrategySkip {
		return false, nil
	}

	if !exists {
		prepared, err := s.prepareRecord(rec)
		if err != nil {
			return false, err
		}
		return true, insertEntry(s.db, prepared)
	}

	switch strategy {
	case MergeStrategyReplace:
		return false, s.replaceEntry(rec)
	case MergeStrategyMerge:
		return false, s.mergeEntry(rec)
	default:
		return false, nil
	}
}

// replaceEntry overwrites an existing record completely, creation time
// included.
func (s *Store) replaceEntry(rec DailyRecord) error {
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.Exec(`
		UPDATE entries SET
			date = ?,
			study_minutes = ?,
			adhered_to_plan = ?,
			exercise_minutes = ?,
			wellbeing = ?,
			nutrition = ?,
			motivation = ?,
			relationships = ?,
			sleep_hours = ?,
			daily_score = ?,
			notes = ?,
			created_at = ?
		WHERE id = ?
	`,
		rec.Date.Format(DateLayout),
		rec.StudyMinutes,
		boolToInt(rec.AdheredToPlan),
		rec.ExerciseMinutes,
		rec.Wellbeing,
		rec.Nutrition,
		rec.Motivation,
		rec.Relationships,
		rec.SleepHours,
		rec.Score,
		rec.Notes,
		rec.CreatedAt.Format(time.RFC3339),
		rec.ID,
	)
	return err
}

// mergeEntry upserts a record by ID, keeping the original creation time.
func (s *Store) mergeEntry(rec DailyRecord) error {
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.Exec(`
		INSERT INTO entries (id, date, study_minutes, adhered_to_plan, exercise_minutes,
		                     wellbeing, nutrition, motivation, relationships, sleep_hours,
		                     daily_score, notes, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			date = excluded.date,
			study_minutes = excluded.study_minutes,
			adhered_to_plan = excluded.adhered_to_plan,
			exercise_minutes = excluded.exercise_minutes,
			wellbeing = excluded.wellbeing,
			nutrition = excluded.nutrition,
			motivation = excluded.motivation,
			relationships = excluded.relationships,
			sleep_hours = excluded.sleep_hours,
			daily_score = excluded.daily_score,
			notes = excluded.notes
	`,
		rec.ID,
		rec.Date.Format(DateLayout),
		rec.StudyMinutes,
		boolToInt(rec.AdheredToPlan),
		rec.ExerciseMinutes,
		rec.Wellbeing,
		rec.Nutrition,
		rec.Motivation,
		rec.Relationships,
		rec.SleepHours,
		rec.Score,
		rec.Notes,
		rec.CreatedAt.Format(time.RFC3339),
	)
	return err
}

// EntryExists checks if a record with the given ID exists.
func (s *Store) EntryExists(id string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return false, ErrStoreClosed
	}

	return s.entryExistsLocked(id)
}

// ImportCSV reads spreadsheet-style rows and appends them as new records.
// Each row goes through header normalization, so both canonical exports and
// the original Portuguese sheet layout import cleanly. Bad rows are reported
// and skipped; the remaining rows are written in one transaction.
func (s *Store) ImportCSV(ctx context.Context, r io.Reader) (*ImportResult, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("empty input")
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	result := &ImportResult{}
	var records []DailyRecord
	line := 0

	for {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				result.Errors = append(result.Errors, (&RowError{Line: line, Err: err}).Error())
				continue
			}
			return result, fmt.Errorf("read row: %w", err)
		}
		result.Total++

		raw := make(map[string]any, len(header))
		for i, name := range header {
			if i < len(row) {
				raw[name] = row[i]
			}
		}

		rec, err := Normalize(raw)
		if err != nil {
			result.Errors = append(result.Errors, (&RowError{Line: line, Err: err}).Error())
			continue
		}
		records = append(records, rec)
	}

	n, err := s.AppendBatch(records)
	if err != nil {
		return result, fmt.Errorf("append batch: %w", err)
	}
	result.Created = n

	return result, nil
}
