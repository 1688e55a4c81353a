package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/cerdastangkas/transcription-checker/internal/config"
)

// Store manages catalog persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the catalog database.
func Open(cfg *config.Config) (*Store, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}

	dbPath := filepath.Join(cfg.Paths.LogDir, "catalog.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: dbPath}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}

	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the catalog database location.
func (s *Store) Path() string {
	if s == nil {
		return ""
	}
	return s.path
}

// Ensure returns the record for a source, inserting a pending one when the
// source has never been seen.
func (s *Store) Ensure(ctx context.Context, sourceID string) (*Record, error) {
	if sourceID == "" {
		return nil, errors.New("source id is empty")
	}
	existing, err := s.GetBySourceID(ctx, sourceID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	timestamp := time.Now().UTC().Format(time.RFC3339Nano)
	_, err = s.db.ExecContext(
		ctx,
		`INSERT INTO sources (source_id, status, created_at, updated_at) VALUES (?, ?, ?, ?)`,
		sourceID,
		StatusPending,
		timestamp,
		timestamp,
	)
	if err != nil {
		return nil, fmt.Errorf("insert source: %w", err)
	}
	return s.GetBySourceID(ctx, sourceID)
}

// GetBySourceID fetches a catalog record by source identifier. Returns nil
// when the source is unknown.
func (s *Store) GetBySourceID(ctx context.Context, sourceID string) (*Record, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+recordColumns+` FROM sources WHERE source_id = ?`, sourceID)
	record, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get source: %w", err)
	}
	return record, nil
}

// Update persists changes to an existing catalog record.
func (s *Store) Update(ctx context.Context, record *Record) error {
	if record == nil {
		return errors.New("record is nil")
	}
	if !record.Status.Valid() {
		return fmt.Errorf("unknown status %q", record.Status)
	}
	record.UpdatedAt = time.Now().UTC()
	_, err := s.db.ExecContext(
		ctx,
		`UPDATE sources
         SET status = ?, last_run_id = ?, segment_count = ?, unusual_count = ?,
             error_message = ?, updated_at = ?
         WHERE id = ?`,
		record.Status,
		nullableString(record.LastRunID),
		record.SegmentCount,
		record.UnusualCount,
		nullableString(record.ErrorMessage),
		record.UpdatedAt.Format(time.RFC3339Nano),
		record.ID,
	)
	if err != nil {
		return fmt.Errorf("update source: %w", err)
	}
	return nil
}

// SetStatus transitions a source to the given status, clearing any prior
// error message unless the status is failed.
func (s *Store) SetStatus(ctx context.Context, sourceID string, status Status, errorMessage string) error {
	if !status.Valid() {
		return fmt.Errorf("unknown status %q", status)
	}
	record, err := s.Ensure(ctx, sourceID)
	if err != nil {
		return err
	}
	record.Status = status
	if status == StatusFailed {
		record.ErrorMessage = errorMessage
	} else {
		record.ErrorMessage = ""
	}
	return s.Update(ctx, record)
}

// List returns catalog records filtered by status set, ordered by creation
// time. With no statuses, all records are returned.
func (s *Store) List(ctx context.Context, statuses ...Status) ([]*Record, error) {
	var (
		rows *sql.Rows
		err  error
	)

	baseQuery := `SELECT ` + recordColumns + ` FROM sources`
	orderClause := ` ORDER BY created_at`

	if len(statuses) == 0 {
		rows, err = s.db.QueryContext(ctx, baseQuery+orderClause)
	} else {
		placeholders := makePlaceholders(len(statuses))
		args := make([]any, len(statuses))
		for i, status := range statuses {
			args[i] = status
		}
		query := baseQuery + ` WHERE status IN (` + placeholders + `)` + orderClause
		rows, err = s.db.QueryContext(ctx, query, args...)
	}
	if err != nil {
		return nil, fmt.Errorf("list sources: %w", err)
	}
	defer rows.Close()

	var records []*Record
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

// Stats returns a count of sources grouped by status.
func (s *Store) Stats(ctx context.Context) (map[Status]int, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT status, COUNT(1) FROM sources GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("catalog stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[Status]int)
	for rows.Next() {
		var status Status
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		stats[status] = count
	}
	return stats, rows.Err()
}

// Health aggregates catalog state for diagnostic output.
func (s *Store) Health(ctx context.Context) (HealthSummary, error) {
	stats, err := s.Stats(ctx)
	if err != nil {
		return HealthSummary{}, err
	}
	health := HealthSummary{}
	for status, count := range stats {
		health.Total += count
		switch {
		case status == StatusPending:
			health.Pending += count
		case status == StatusFailed:
			health.Failed += count
		case status == StatusCompleted:
			health.Completed += count
		case status.Processing():
			health.Processing += count
		}
	}
	return health, nil
}

// ResetStuckProcessing moves sources left in processing states by an
// interrupted run back to their last settled state.
func (s *Store) ResetStuckProcessing(ctx context.Context) (int64, error) {
	timestamp := time.Now().UTC().Format(time.RFC3339Nano)
	var total int64
	for from, to := range map[Status]Status{
		StatusAnalyzing:    StatusPending,
		StatusTranscribing: StatusAnalyzed,
		StatusReconciling:  StatusTranscribed,
	} {
		res, err := s.db.ExecContext(
			ctx,
			`UPDATE sources SET status = ?, updated_at = ? WHERE status = ?`,
			to, timestamp, from,
		)
		if err != nil {
			return total, fmt.Errorf("reset stuck sources: %w", err)
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return total, fmt.Errorf("rows affected: %w", err)
		}
		total += affected
	}
	return total, nil
}

// Remove deletes a source record. Returns false when the source is unknown.
func (s *Store) Remove(ctx context.Context, sourceID string) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM sources WHERE source_id = ?`, sourceID)
	if err != nil {
		return false, fmt.Errorf("delete source: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return affected > 0, nil
}

const recordColumns = "id, source_id, status, last_run_id, segment_count, unusual_count, error_message, created_at, updated_at"

func scanRecord(scanner interface{ Scan(dest ...any) error }) (*Record, error) {
	var (
		id           int64
		sourceID     string
		statusStr    string
		lastRunID    sql.NullString
		segmentCount int
		unusualCount int
		errorMessage sql.NullString
		createdRaw   string
		updatedRaw   string
	)

	if err := scanner.Scan(
		&id,
		&sourceID,
		&statusStr,
		&lastRunID,
		&segmentCount,
		&unusualCount,
		&errorMessage,
		&createdRaw,
		&updatedRaw,
	); err != nil {
		return nil, err
	}

	record := &Record{
		ID:           id,
		SourceID:     sourceID,
		Status:       Status(statusStr),
		LastRunID:    lastRunID.String,
		SegmentCount: segmentCount,
		UnusualCount: unusualCount,
		ErrorMessage: errorMessage.String,
	}

	if created, err := time.Parse(time.RFC3339Nano, createdRaw); err == nil {
		record.CreatedAt = created
	}
	if updated, err := time.Parse(time.RFC3339Nano, updatedRaw); err == nil {
		record.UpdatedAt = updated
	}
	return record, nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

func makePlaceholders(count int) string {
	if count <= 0 {
		return ""
	}
	placeholders := make([]byte, 0, count*2)
	for i := 0; i < count; i++ {
		if i > 0 {
			placeholders = append(placeholders, ',')
		}
		placeholders = append(placeholders, '?')
	}
	return string(placeholders)
}
