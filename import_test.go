package autodes_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/RodrigoDSVDF/autodes"
)

func buildArchive(t *testing.T, goals autodes.GoalSet, records []autodes.DailyRecord) *strings.Reader {
	t.Helper()
	payload, err := json.Marshal(autodes.ExportFormat{
		Version:    autodes.ExportVersion,
		ExportedAt: time.Now().UTC(),
		Goals:      goals,
		Records:    records,
	})
	if err != nil {
		t.Fatalf("json.Marshal() returned error: %v", err)
	}
	return strings.NewReader(string(payload))
}

func archiveRecord(t *testing.T, id, date string, study float64) autodes.DailyRecord {
	t.Helper()
	return autodes.DailyRecord{
		ID:            id,
		Date:          parseDay(t, date),
		StudyMinutes:  study,
		AdheredToPlan: true,
		Wellbeing:     7,
		Nutrition:     7,
		Motivation:    7,
		Relationships: 7,
		SleepHours:    8,
		CreatedAt:     time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestImportJSON_Empty(t *testing.T) {
	st := openStore(t)

	result, err := st.ImportJSON(context.Background(), buildArchive(t, nil, nil), autodes.MergeStrategyMerge, false)
	if err != nil {
		t.Fatalf("ImportJSON() returned error: %v", err)
	}

	if result.Total != 0 {
		t.Errorf("Total = %d, want 0", result.Total)
	}
	if len(result.Errors) != 0 {
		t.Errorf("Errors = %v, want none", result.Errors)
	}
}

func TestImportJSON_NewRecords(t *testing.T) {
	st := openStore(t)

	archive := buildArchive(t, nil, []autodes.DailyRecord{
		archiveRecord(t, "01HQ000000000000000000000A", "2026-03-02", 120),
		archiveRecord(t, "01HQ000000000000000000000B", "2026-03-03", 90),
	})

	result, err := st.ImportJSON(context.Background(), archive, autodes.MergeStrategyMerge, false)
	if err != nil {
		t.Fatalf("ImportJSON() returned error: %v", err)
	}

	if result.Total != 2 {
		t.Errorf("Total = %d, want 2", result.Total)
	}
	if result.Created != 2 {
		t.Errorf("Created = %d, want 2", result.Created)
	}

	series, err := st.All()
	if err != nil {
		t.Fatalf("All() returned error: %v", err)
	}
	if len(series) != 2 {
		t.Fatalf("len(series) = %d, want 2", len(series))
	}
	if series[0].StudyMinutes != 120 {
		t.Errorf("StudyMinutes = %v, want 120", series[0].StudyMinutes)
	}
}

func TestImportJSON_ScoreRecomputed(t *testing.T) {
	st := openStore(t)

	rec := archiveRecord(t, "01HQ000000000000000000000A", "2026-03-02", 60)
	rec.Score = 999

	result, err := st.ImportJSON(context.Background(), buildArchive(t, nil, []autodes.DailyRecord{rec}), autodes.MergeStrategyMerge, false)
	if err != nil {
		t.Fatalf("ImportJSON() returned error: %v", err)
	}
	if result.Created != 1 {
		t.Fatalf("Created = %d, want 1", result.Created)
	}

	series, err := st.All()
	if err != nil {
		t.Fatalf("All() returned error: %v", err)
	}
	if series[0].Score != 76 {
		t.Errorf("Score = %v, want 76 (recomputed, archive value discarded)", series[0].Score)
	}
}

func TestImportJSON_MintsMissingIDs(t *testing.T) {
	st := openStore(t)

	result, err := st.ImportJSON(context.Background(), buildArchive(t, nil, []autodes.DailyRecord{
		archiveRecord(t, "", "2026-03-02", 60),
	}), autodes.MergeStrategyMerge, false)
	if err != nil {
		t.Fatalf("ImportJSON() returned error: %v", err)
	}
	if result.Created != 1 {
		t.Fatalf("Created = %d, want 1", result.Created)
	}

	series, err := st.All()
	if err != nil {
		t.Fatalf("All() returned error: %v", err)
	}
	if len(series[0].ID) != 26 {
		t.Errorf("minted ID length = %d, want 26 (ULID)", len(series[0].ID))
	}
}

func TestImportJSON_SkipStrategy(t *testing.T) {
	st := openStore(t)
	existing := seedEntry(t, st, "2026-03-02", 120, true)

	archive := buildArchive(t, nil, []autodes.DailyRecord{
		archiveRecord(t, existing.ID, "2026-03-02", 999),
	})

	result, err := st.ImportJSON(context.Background(), archive, autodes.MergeStrategySkip, false)
	if err != nil {
		t.Fatalf("ImportJSON() returned error: %v", err)
	}

	if result.Skipped != 1 {
		t.Errorf("Skipped = %d, want 1", result.Skipped)
	}
	if result.Created != 0 {
		t.Errorf("Created = %d, want 0", result.Created)
	}

	series, err := st.All()
	if err != nil {
		t.Fatalf("All() returned error: %v", err)
	}
	if series[0].StudyMinutes != 120 {
		t.Errorf("StudyMinutes = %v, want 120 (unchanged)", series[0].StudyMinutes)
	}
}

func TestImportJSON_ReplaceStrategy(t *testing.T) {
	st := openStore(t)
	existing := seedEntry(t, st, "2026-03-02", 120, true)

	archiveTime := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	archive := buildArchive(t, nil, []autodes.DailyRecord{
		archiveRecord(t, existing.ID, "2026-03-02", 200),
	})

	result, err := st.ImportJSON(context.Background(), archive, autodes.MergeStrategyReplace, false)
	if err != nil {
		t.Fatalf("ImportJSON() returned error: %v", err)
	}
	if result.Merged != 1 {
		t.Errorf("Merged = %d, want 1", result.Merged)
	}

	series, err := st.All()
	if err != nil {
		t.Fatalf("All() returned error: %v", err)
	}
	if series[0].StudyMinutes != 200 {
		t.Errorf("StudyMinutes = %v, want 200 (replaced)", series[0].StudyMinutes)
	}
	if !series[0].CreatedAt.Equal(archiveTime) {
		t.Errorf("CreatedAt = %v, want %v (replaced)", series[0].CreatedAt, archiveTime)
	}
}

func TestImportJSON_MergeStrategy(t *testing.T) {
	st := openStore(t)
	existing := seedEntry(t, st, "2026-03-02", 120, true)

	archiveTime := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	archive := buildArchive(t, nil, []autodes.DailyRecord{
		archiveRecord(t, existing.ID, "2026-03-02", 200),
	})

	result, err := st.ImportJSON(context.Background(), archive, autodes.MergeStrategyMerge, false)
	if err != nil {
		t.Fatalf("ImportJSON() returned error: %v", err)
	}
	if result.Merged != 1 {
		t.Errorf("Merged = %d, want 1", result.Merged)
	}

	series, err := st.All()
	if err != nil {
		t.Fatalf("All() returned error: %v", err)
	}
	if series[0].StudyMinutes != 200 {
		t.Errorf("StudyMinutes = %v, want 200 (merged)", series[0].StudyMinutes)
	}
	if series[0].CreatedAt.Equal(archiveTime) {
		t.Error("CreatedAt took the archive value, want original creation time kept")
	}
}

func TestImportJSON_DryRun(t *testing.T) {
	st := openStore(t)
	existing := seedEntry(t, st, "2026-03-02", 120, true)

	archive := buildArchive(t, autodes.GoalSet{autodes.MetricStudy: 300}, []autodes.DailyRecord{
		archiveRecord(t, existing.ID, "2026-03-02", 200),
		archiveRecord(t, "01HQ000000000000000000000B", "2026-03-03", 90),
	})

	result, err := st.ImportJSON(context.Background(), archive, autodes.MergeStrategyMerge, true)
	if err != nil {
		t.Fatalf("ImportJSON() returned error: %v", err)
	}

	if result.Total != 2 {
		t.Errorf("Total = %d, want 2", result.Total)
	}
	if result.Merged != 1 {
		t.Errorf("Merged = %d, want 1", result.Merged)
	}
	if result.Created != 1 {
		t.Errorf("Created = %d, want 1", result.Created)
	}

	// Nothing is written in dry run mode.
	series, err := st.All()
	if err != nil {
		t.Fatalf("All() returned error: %v", err)
	}
	if len(series) != 1 {
		t.Fatalf("len(series) = %d, want 1", len(series))
	}
	if series[0].StudyMinutes != 120 {
		t.Errorf("StudyMinutes = %v, want 120 (unchanged)", series[0].StudyMinutes)
	}

	goals, err := st.Goals()
	if err != nil {
		t.Fatalf("Goals() returned error: %v", err)
	}
	if len(goals) != 0 {
		t.Errorf("goal overrides = %v, want none in dry run", goals)
	}
}

func TestImportJSON_AppliesGoals(t *testing.T) {
	st := openStore(t)

	archive := buildArchive(t, autodes.GoalSet{autodes.MetricStudy: 300, autodes.MetricSleep: 7.5}, nil)
	if _, err := st.ImportJSON(context.Background(), archive, autodes.MergeStrategyMerge, false); err != nil {
		t.Fatalf("ImportJSON() returned error: %v", err)
	}

	goals, err := st.Goals()
	if err != nil {
		t.Fatalf("Goals() returned error: %v", err)
	}
	if goals[autodes.MetricStudy] != 300 {
		t.Errorf("Goals[study] = %v, want 300", goals[autodes.MetricStudy])
	}
	if goals[autodes.MetricSleep] != 7.5 {
		t.Errorf("Goals[sleep] = %v, want 7.5", goals[autodes.MetricSleep])
	}
}

func TestImportJSON_BadDateRowSkipped(t *testing.T) {
	st := openStore(t)

	bad := archiveRecord(t, "01HQ000000000000000000000A", "2026-03-02", 60)
	bad.Date = time.Time{}
	good := archiveRecord(t, "01HQ000000000000000000000B", "2026-03-03", 90)

	result, err := st.ImportJSON(context.Background(), buildArchive(t, nil, []autodes.DailyRecord{bad, good}), autodes.MergeStrategyMerge, false)
	if err != nil {
		t.Fatalf("ImportJSON() returned error: %v", err)
	}

	if result.Total != 2 {
		t.Errorf("Total = %d, want 2", result.Total)
	}
	if result.Created != 1 {
		t.Errorf("Created = %d, want 1", result.Created)
	}
	if len(result.Errors) != 1 {
		t.Fatalf("Errors = %v, want exactly one", result.Errors)
	}
}

func TestImportJSON_InvalidVersion(t *testing.T) {
	st := openStore(t)

	payload, err := json.Marshal(autodes.ExportFormat{Version: "2.0"})
	if err != nil {
		t.Fatalf("json.Marshal() returned error: %v", err)
	}

	_, err = st.ImportJSON(context.Background(), strings.NewReader(string(payload)), autodes.MergeStrategyMerge, false)
	if !errors.Is(err, autodes.ErrUnsupportedVersion) {
		t.Errorf("ImportJSON() error = %v, want ErrUnsupportedVersion", err)
	}
}

func TestImportJSON_MissingVersion(t *testing.T) {
	st := openStore(t)

	_, err := st.ImportJSON(context.Background(), strings.NewReader(`{"records":[]}`), autodes.MergeStrategyMerge, false)
	if err == nil {
		t.Fatal("ImportJSON() returned nil error for archive without version")
	}
	if !strings.Contains(err.Error(), "version") {
		t.Errorf("ImportJSON() error = %v, should mention version", err)
	}
}

func TestImportJSON_InvalidStrategy(t *testing.T) {
	st := openStore(t)

	_, err := st.ImportJSON(context.Background(), buildArchive(t, nil, nil), autodes.MergeStrategy("upsert"), false)
	if !errors.Is(err, autodes.ErrInvalidMergeStrategy) {
		t.Errorf("ImportJSON() error = %v, want ErrInvalidMergeStrategy", err)
	}
}

func TestImportJSON_MalformedJSON(t *testing.T) {
	st := openStore(t)

	_, err := st.ImportJSON(context.Background(), strings.NewReader("not json at all"), autodes.MergeStrategyMerge, false)
	if err == nil {
		t.Fatal("ImportJSON() returned nil error for malformed input")
	}
}

func TestImportJSON_Cancellation(t *testing.T) {
	st := openStore(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := st.ImportJSON(ctx, buildArchive(t, nil, []autodes.DailyRecord{
		archiveRecord(t, "01HQ000000000000000000000A", "2026-03-02", 60),
	}), autodes.MergeStrategyMerge, false)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("ImportJSON() error = %v, want context.Canceled", err)
	}
}

func TestExportImportRoundTrip(t *testing.T) {
	src := openStore(t)
	seedEntry(t, src, "2026-03-02", 120, true)
	seedEntry(t, src, "2026-03-03", 90, false)
	if err := src.SetGoal(autodes.MetricStudy, 300); err != nil {
		t.Fatalf("SetGoal() returned error: %v", err)
	}

	var buf bytes.Buffer
	if err := src.ExportJSON(context.Background(), &buf); err != nil {
		t.Fatalf("ExportJSON() returned error: %v", err)
	}

	dst := openStore(t)
	result, err := dst.ImportJSON(context.Background(), &buf, autodes.MergeStrategyMerge, false)
	if err != nil {
		t.Fatalf("ImportJSON() returned error: %v", err)
	}
	if result.Created != 2 {
		t.Errorf("Created = %d, want 2", result.Created)
	}

	want, err := src.All()
	if err != nil {
		t.Fatalf("All(src) returned error: %v", err)
	}
	got, err := dst.All()
	if err != nil {
		t.Fatalf("All(dst) returned error: %v", err)
	}
	if len(got) != len(want) {
		t.Fatalf("len(got) = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i].ID != want[i].ID {
			t.Errorf("records[%d].ID = %q, want %q", i, got[i].ID, want[i].ID)
		}
		if !got[i].Date.Equal(want[i].Date) {
			t.Errorf("records[%d].Date = %v, want %v", i, got[i].Date, want[i].Date)
		}
		if got[i].Score != want[i].Score {
			t.Errorf("records[%d].Score = %v, want %v", i, got[i].Score, want[i].Score)
		}
	}

	goals, err := dst.Goals()
	if err != nil {
		t.Fatalf("Goals(dst) returned error: %v", err)
	}
	if goals[autodes.MetricStudy] != 300 {
		t.Errorf("Goals[study] = %v, want 300", goals[autodes.MetricStudy])
	}
}

func TestEntryExists(t *testing.T) {
	st := openStore(t)
	existing := seedEntry(t, st, "2026-03-02", 120, true)

	ok, err := st.EntryExists(existing.ID)
	if err != nil {
		t.Fatalf("EntryExists() returned error: %v", err)
	}
	if !ok {
		t.Error("EntryExists() = false for stored record, want true")
	}

	ok, err = st.EntryExists("01HQ00000000000000000000ZZ")
	if err != nil {
		t.Fatalf("EntryExists() returned error: %v", err)
	}
	if ok {
		t.Error("EntryExists() = true for unknown ID, want false")
	}
}

func TestImportCSV(t *testing.T) {
	st := openStore(t)

	input := strings.Join([]string{
		"date,study_minutes,adhered_to_plan,exercise_minutes,wellbeing,nutrition,motivation,relationships,sleep_hours,daily_score,notes",
		"2026-03-02,120,true,30,7,7,7,7,8,999,first day",
		"not-a-date,60,true,0,5,5,5,5,7,0,broken row",
		"2026-03-03,90,false,45,8,6,7,5,7.5,0,second day",
	}, "\n")

	result, err := st.ImportCSV(context.Background(), strings.NewReader(input))
	if err != nil {
		t.Fatalf("ImportCSV() returned error: %v", err)
	}

	if result.Total != 3 {
		t.Errorf("Total = %d, want 3", result.Total)
	}
	if result.Created != 2 {
		t.Errorf("Created = %d, want 2", result.Created)
	}
	if len(result.Errors) != 1 {
		t.Fatalf("Errors = %v, want exactly one", result.Errors)
	}
	if !strings.Contains(result.Errors[0], "row 2") {
		t.Errorf("Errors[0] = %q, should name row 2", result.Errors[0])
	}

	series, err := st.All()
	if err != nil {
		t.Fatalf("All() returned error: %v", err)
	}
	if len(series) != 2 {
		t.Fatalf("len(series) = %d, want 2", len(series))
	}
	if series[0].Score != 76 {
		t.Errorf("Score = %v, want 76 (recomputed, sheet value discarded)", series[0].Score)
	}
	if series[0].Notes != "first day" {
		t.Errorf("Notes = %q, want %q", series[0].Notes, "first day")
	}
}

func TestImportCSV_PortugueseSheet(t *testing.T) {
	st := openStore(t)

	input := strings.Join([]string{
		"Data,Horas de Estudo,Cumpriu o Planejamento?,Exercício Físico (min),Bem-Estar (1-10),Alimentação (1-10),Motivação (1-10),Relacionamentos (1-10),Sono (horas)",
		`2026-03-02,"2,5",Sim,30,7,7,7,7,"7,5"`,
	}, "\n")

	result, err := st.ImportCSV(context.Background(), strings.NewReader(input))
	if err != nil {
		t.Fatalf("ImportCSV() returned error: %v", err)
	}
	if result.Created != 1 {
		t.Fatalf("Created = %d, want 1 (errors: %v)", result.Created, result.Errors)
	}

	series, err := st.All()
	if err != nil {
		t.Fatalf("All() returned error: %v", err)
	}
	rec := series[0]
	if rec.StudyMinutes != 150 {
		t.Errorf("StudyMinutes = %v, want 150 (2.5 hours converted)", rec.StudyMinutes)
	}
	if !rec.AdheredToPlan {
		t.Error("AdheredToPlan = false, want true for 'Sim'")
	}
	if rec.SleepHours != 7.5 {
		t.Errorf("SleepHours = %v, want 7.5", rec.SleepHours)
	}
}

func TestImportCSV_EmptyInput(t *testing.T) {
	st := openStore(t)

	_, err := st.ImportCSV(context.Background(), strings.NewReader(""))
	if err == nil {
		t.Fatal("ImportCSV() returned nil error for empty input")
	}
}
