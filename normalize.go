package autodes

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// dateLayouts are accepted on input, tried in order. Day-first slash
// dates match the pt-BR spreadsheet exports this tool grew out of.
var dateLayouts = []string{
	DateLayout,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"02/01/2006",
}

// keyAliases maps lowercased legacy column names to canonical keys.
// The accented and plain forms of the spreadsheet headers are both
// listed so CSVs survive encoding mangling.
var keyAliases = map[string]string{
	"data":                    "date",
	"dia":                     "date",
	"study":                   "study_minutes",
	"horas de estudo":         "study_hours",
	"adhered":                 "adhered_to_plan",
	"cumpriu o planejamento?": "adhered_to_plan",
	"cumpriu o planejamento":  "adhered_to_plan",
	"exercise":                "exercise_minutes",
	"exercício físico (min)":  "exercise_minutes",
	"exercicio fisico (min)":  "exercise_minutes",
	"well_being":              "wellbeing",
	"bem-estar (1-10)":        "wellbeing",
	"bem-estar":               "wellbeing",
	"alimentação (1-10)":      "nutrition",
	"alimentacao (1-10)":      "nutrition",
	"alimentação":             "nutrition",
	"motivação (1-10)":        "motivation",
	"motivacao (1-10)":        "motivation",
	"motivação":               "motivation",
	"relacionamentos (1-10)":  "relationships",
	"relacionamentos":         "relationships",
	"sleep":                   "sleep_hours",
	"sono (horas)":            "sleep_hours",
	"sono":                    "sleep_hours",
	"notas":                   "notes",
	"observações":             "notes",
	"observacoes":             "notes",
	"pontuação diária":        "daily_score",
	"pontuacao diaria":        "daily_score",
	"score":                   "daily_score",
}

// Normalize converts one raw string-keyed row into a DailyRecord.
// Keys are matched case-insensitively and legacy aliases are honored,
// including study_hours (converted to minutes when study_minutes is
// absent). Numeric fields coerce malformed values to 0 and clamp to
// their documented ranges. Any daily_score in the input is discarded
// and recomputed from the subjective ratings. Only a missing or
// unparseable date rejects the row.
func Normalize(raw map[string]any) (DailyRecord, error) {
	fields := make(map[string]any, len(raw))
	for k, v := range raw {
		key := canonicalKey(k)
		if _, seen := fields[key]; !seen {
			fields[key] = v
		}
	}

	dv, ok := fields["date"]
	if !ok {
		return DailyRecord{}, ErrInvalidDate
	}
	date, err := coerceDate(dv)
	if err != nil {
		return DailyRecord{}, err
	}

	rec := DailyRecord{Date: date}
	if id, ok := fields["id"].(string); ok {
		rec.ID = strings.TrimSpace(id)
	}
	if v, ok := fields["created_at"]; ok {
		if ts, err := coerceDate(v); err == nil {
			rec.CreatedAt = ts
		}
	}

	rec.StudyMinutes = clampRange(coerceFloat(fields["study_minutes"]), 0, MaxStudyMinutes)
	if _, ok := fields["study_minutes"]; !ok {
		if hours, ok := fields["study_hours"]; ok {
			rec.StudyMinutes = clampRange(coerceFloat(hours)*60, 0, MaxStudyMinutes)
		}
	}
	rec.AdheredToPlan = coerceBool(fields["adhered_to_plan"])
	rec.ExerciseMinutes = clampRange(coerceFloat(fields["exercise_minutes"]), 0, MaxStudyMinutes)
	rec.Wellbeing = clampRange(coerceFloat(fields["wellbeing"]), 0, SubjectiveScaleMax)
	rec.Nutrition = clampRange(coerceFloat(fields["nutrition"]), 0, SubjectiveScaleMax)
	rec.Motivation = clampRange(coerceFloat(fields["motivation"]), 0, SubjectiveScaleMax)
	rec.Relationships = clampRange(coerceFloat(fields["relationships"]), 0, SubjectiveScaleMax)
	rec.SleepHours = clampRange(coerceFloat(fields["sleep_hours"]), 0, MaxSleepHours)
	if notes, ok := fields["notes"].(string); ok {
		rec.Notes = strings.TrimSpace(notes)
	}
	rec.Score = ComputeScore(rec.Wellbeing, rec.Nutrition, rec.Motivation, rec.Relationships, rec.AdheredToPlan)

	return rec, nil
}

// NormalizeBatch normalizes rows in order, returning the records that
// parsed and a RowError for each row that did not. Line numbers are
// zero-based positions in the input slice.
func NormalizeBatch(rows []map[string]any) ([]DailyRecord, []*RowError) {
	var records []DailyRecord
	var failures []*RowError
	for i, row := range rows {
		rec, err := Normalize(row)
		if err != nil {
			failures = append(failures, &RowError{Line: i, Err: err})
			continue
		}
		records = append(records, rec)
	}
	return records, failures
}

func canonicalKey(k string) string {
	key := strings.ToLower(strings.TrimSpace(k))
	if canonical, ok := keyAliases[key]; ok {
		return canonical
	}
	return key
}

func coerceDate(v any) (time.Time, error) {
	switch x := v.(type) {
	case time.Time:
		return time.Date(x.Year(), x.Month(), x.Day(), 0, 0, 0, 0, time.UTC), nil
	case string:
		s := strings.TrimSpace(x)
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
			}
		}
	}
	return time.Time{}, ErrInvalidDate
}

func coerceFloat(v any) float64 {
	switch x := v.(type) {
	case float64:
		return x
	case float32:
		return float64(x)
	case int:
		return float64(x)
	case int64:
		return float64(x)
	case json.Number:
		f, err := x.Float64()
		if err != nil {
			return 0
		}
		return f
	case string:
		s := strings.TrimSpace(x)
		if s == "" {
			return 0
		}
		// Decimal commas show up in pt-BR exports.
		s = strings.ReplaceAll(s, ",", ".")
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0
		}
		return f
	case bool:
		if x {
			return 1
		}
		return 0
	}
	return 0
}

func coerceBool(v any) bool {
	switch x := v.(type) {
	case bool:
		return x
	case float64:
		return x != 0
	case int:
		return x != 0
	case string:
		switch strings.ToLower(strings.TrimSpace(x)) {
		case "true", "t", "yes", "y", "1", "sim":
			return true
		}
	}
	return false
}

func clampRange(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
