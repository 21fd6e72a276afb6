package autodes

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/RodrigoDSVDF/autodes/internal/store/migrations"
	"github.com/oklog/ulid/v2"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"
)

const schemaVersion = "1"

// goalKeyPrefix namespaces goal overrides inside the metadata table.
const goalKeyPrefix = "goal."

// Store manages the local SQLite metrics database.
type Store struct {
	db     *sql.DB
	mu     sync.RWMutex
	closed bool
	path   string
}

// NewStore opens or creates a local metrics store.
func NewStore(path string) (*Store, error) {
	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create store directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Enable WAL mode for better concurrent access
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable WAL mode: %w", err)
	}

	store := &Store{db: db, path: path}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate schema: %w", err)
	}

	return store, nil
}

func (s *Store) migrate() error {
	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("store: set goose dialect: %w", err)
	}
	if err := goose.Up(s.db, "."); err != nil {
		return fmt.Errorf("store: run migrations: %w", err)
	}

	// Set schema version if not set
	_, err := s.db.Exec(`
		INSERT OR IGNORE INTO metadata (key, value) VALUES ('schema_version', ?)
	`, schemaVersion)
	return err
}

// Append stores a new daily record. An empty ID gets a fresh ULID and
// a zero CreatedAt gets the current time. The stored score is always
// recomputed from the subjective ratings, never taken from the input.
func (s *Store) Append(rec DailyRecord) (*DailyRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, ErrStoreClosed
	}

	prepared, err := s.prepareRecord(rec)
	if err != nil {
		return nil, err
	}

	if err := insertEntry(s.db, prepared); err != nil {
		return nil, fmt.Errorf("store: insert entry: %w", err)
	}
	return &prepared, nil
}

// AppendBatch stores records in a single transaction and reports how
// many were written. The whole batch fails together.
func (s *Store) AppendBatch(recs []DailyRecord) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return 0, ErrStoreClosed
	}
	if len(recs) == 0 {
		return 0, nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("store: begin transaction: %w", err)
	}
	defer tx.Rollback() // no-op if committed

	for _, rec := range recs {
		prepared, err := s.prepareRecord(rec)
		if err != nil {
			return 0, err
		}
		if err := insertEntry(tx, prepared); err != nil {
			return 0, fmt.Errorf("store: insert entry: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("store: commit batch: %w", err)
	}
	return len(recs), nil
}

func (s *Store) prepareRecord(rec DailyRecord) (DailyRecord, error) {
	if rec.Date.IsZero() {
		return DailyRecord{}, ErrInvalidDate
	}
	if rec.ID == "" {
		rec.ID = ulid.Make().String()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
	rec.Score = ComputeScore(rec.Wellbeing, rec.Nutrition, rec.Motivation, rec.Relationships, rec.AdheredToPlan)
	return rec, nil
}

// execer abstracts Exec shared by *sql.DB and *sql.Tx.
type execer interface {
	Exec(query string, args ...any) (sql.Result, error)
}

func insertEntry(e execer, rec DailyRecord) error {
	_, err := e.Exec(`
		INSERT INTO entries (id, date, study_minutes, adhered_to_plan, exercise_minutes,
		                     wellbeing, nutrition, motivation, relationships, sleep_hours,
		                     daily_score, notes, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
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

// All returns every record ordered by date, then insertion time, then
// ID, which is the order the series math expects.
func (s *Store) All() (MetricSeries, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, ErrStoreClosed
	}

	rows, err := s.db.Query(`
		SELECT id, date, study_minutes, adhered_to_plan, exercise_minutes,
		       wellbeing, nutrition, motivation, relationships, sleep_hours,
		       daily_score, notes, created_at
		FROM entries
		ORDER BY date ASC, created_at ASC, id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("store: query entries: %w", err)
	}
	defer rows.Close()

	var series MetricSeries
	for rows.Next() {
		rec, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		series = append(series, *rec)
	}

	return series, rows.Err()
}

// DatesPresent returns the set of dates that already have records,
// keyed by the canonical date string.
func (s *Store) DatesPresent() (map[string]struct{}, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, ErrStoreClosed
	}

	rows, err := s.db.Query("SELECT DISTINCT date FROM entries")
	if err != nil {
		return nil, fmt.Errorf("store: query dates: %w", err)
	}
	defer rows.Close()

	dates := make(map[string]struct{})
	for rows.Next() {
		var d string
		if err := rows.Scan(&d); err != nil {
			return nil, err
		}
		dates[d] = struct{}{}
	}

	return dates, rows.Err()
}

// DeleteDate removes all records logged for the given date and
// reports how many were deleted.
func (s *Store) DeleteDate(date time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return 0, ErrStoreClosed
	}

	res, err := s.db.Exec("DELETE FROM entries WHERE date = ?", date.Format(DateLayout))
	if err != nil {
		return 0, fmt.Errorf("store: delete date: %w", err)
	}
	n, _ := res.RowsAffected()
	return int(n), nil
}

// Goals returns the goal overrides stored in metadata. Metrics the
// user never touched are absent; merge with DefaultGoals for the full
// picture.
func (s *Store) Goals() (GoalSet, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, ErrStoreClosed
	}
	return s.goalsLocked()
}

func (s *Store) goalsLocked() (GoalSet, error) {
	rows, err := s.db.Query("SELECT key, value FROM metadata WHERE key LIKE ?", goalKeyPrefix+"%")
	if err != nil {
		return nil, fmt.Errorf("store: query goals: %w", err)
	}
	defer rows.Close()

	goals := GoalSet{}
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, err
		}
		metric := Metric(strings.TrimPrefix(key, goalKeyPrefix))
		if !metric.IsValid() {
			continue
		}
		target, err := strconv.ParseFloat(value, 64)
		if err != nil {
			continue
		}
		goals[metric] = target
	}

	return goals, rows.Err()
}

// SetGoal stores a goal override for the metric.
func (s *Store) SetGoal(metric Metric, target float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStoreClosed
	}
	return s.setGoalLocked(metric, target)
}

func (s *Store) setGoalLocked(metric Metric, target float64) error {
	if !metric.IsValid() {
		return ErrInvalidMetric
	}
	if target <= 0 {
		return ErrInvalidGoal
	}

	_, err := s.db.Exec(`
		INSERT OR REPLACE INTO metadata (key, value) VALUES (?, ?)
	`, goalKeyPrefix+string(metric), strconv.FormatFloat(target, 'f', -1, 64))
	if err != nil {
		return fmt.Errorf("store: set goal: %w", err)
	}
	return nil
}

// Meta reads a metadata value by key.
func (s *Store) Meta(key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return "", false, ErrStoreClosed
	}

	var value string
	err := s.db.QueryRow("SELECT value FROM metadata WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("store: read metadata: %w", err)
	}
	return value, true, nil
}

// SetMeta writes a metadata value.
func (s *Store) SetMeta(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStoreClosed
	}

	_, err := s.db.Exec(`
		INSERT OR REPLACE INTO metadata (key, value) VALUES (?, ?)
	`, key, value)
	if err != nil {
		return fmt.Errorf("store: write metadata: %w", err)
	}
	return nil
}

// Stats returns store statistics.
func (s *Store) Stats() (*StoreStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, ErrStoreClosed
	}

	var count int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM entries").Scan(&count); err != nil {
		return nil, err
	}

	var adherent int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM entries WHERE adhered_to_plan = 1").Scan(&adherent); err != nil {
		return nil, err
	}

	var first, last sql.NullString
	s.db.QueryRow("SELECT MIN(date), MAX(date) FROM entries").Scan(&first, &last)

	stats := &StoreStats{
		RecordCount:   count,
		AdherentDays:  adherent,
		DBPath:        s.path,
		SchemaVersion: schemaVersion,
	}
	if first.Valid {
		stats.FirstDate, _ = time.Parse(DateLayout, first.String)
	}
	if last.Valid {
		stats.LastDate, _ = time.Parse(DateLayout, last.String)
	}
	if version, _, err := s.metaLocked("schema_version"); err == nil && version != "" {
		stats.SchemaVersion = version
	}
	if info, err := os.Stat(s.path); err == nil {
		stats.DBSizeBytes = info.Size()
	}

	return stats, nil
}

// metaLocked reads metadata without taking the store lock; callers
// must hold it.
func (s *Store) metaLocked(key string) (string, bool, error) {
	var value string
	err := s.db.QueryRow("SELECT value FROM metadata WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// Close closes the store.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}

	s.closed = true
	return s.db.Close()
}

// scanner abstracts the Scan method shared by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(sc scanner) (*DailyRecord, error) {
	var (
		rec       DailyRecord
		date      string
		adhered   int
		createdAt string
	)

	err := sc.Scan(
		&rec.ID,
		&date,
		&rec.StudyMinutes,
		&adhered,
		&rec.ExerciseMinutes,
		&rec.Wellbeing,
		&rec.Nutrition,
		&rec.Motivation,
		&rec.Relationships,
		&rec.SleepHours,
		&rec.Score,
		&rec.Notes,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	rec.Date, _ = time.Parse(DateLayout, date)
	rec.AdheredToPlan = adhered != 0
	rec.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)

	return &rec, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
