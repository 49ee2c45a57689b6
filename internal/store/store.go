// Package store keeps a local SQLite history of the operations run against
// the Localize API.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/valpere/localize/internal"
)

type Store struct {
	db *sql.DB
}

func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate: %w", err)
	}

	return s, nil
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS operations (
		id TEXT PRIMARY KEY,
		operation TEXT NOT NULL,
		project_key TEXT NOT NULL,
		params TEXT NOT NULL DEFAULT '{}',
		status TEXT NOT NULL,
		detail TEXT,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	-- fetched_phrases stores the list returned by a get_phrases operation
	CREATE TABLE IF NOT EXISTS fetched_phrases (
		operation_id TEXT NOT NULL,
		position INTEGER NOT NULL,
		phrase TEXT NOT NULL,
		PRIMARY KEY (operation_id, position),
		FOREIGN KEY (operation_id) REFERENCES operations(id)
	);

	CREATE INDEX IF NOT EXISTS idx_operations_created ON operations(created_at);
	CREATE INDEX IF NOT EXISTS idx_operations_operation ON operations(operation);
	`

	_, err := s.db.Exec(schema)
	return err
}

func (s *Store) SaveOperation(ctx context.Context, rec internal.OperationRecord) error {
	params := rec.Params
	if params == nil {
		params = map[string]string{}
	}
	paramsJSON, err := json.Marshal(params)
	if err != nil {
		return fmt.Errorf("failed to encode params: %w", err)
	}
	ts := rec.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO operations (id, operation, project_key, params, status, detail, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.Operation, rec.ProjectKey, string(paramsJSON), rec.Status, rec.Detail, ts)
	return err
}

// SavePhrases stores the phrases fetched by an operation, keeping their order.
func (s *Store) SavePhrases(ctx context.Context, operationID string, phrases []string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT OR REPLACE INTO fetched_phrases (operation_id, position, phrase) VALUES (?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, p := range phrases {
		if _, err := stmt.ExecContext(ctx, operationID, i, p); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (s *Store) GetPhrases(ctx context.Context, operationID string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT phrase FROM fetched_phrases WHERE operation_id = ? ORDER BY position`, operationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	phrases := make([]string, 0)
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, err
		}
		phrases = append(phrases, p)
	}
	return phrases, rows.Err()
}

func (s *Store) GetOperation(ctx context.Context, id string) (*internal.OperationRecord, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, operation, project_key, params, status, detail, created_at FROM operations WHERE id = ?`, id)

	rec, err := scanOperation(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("operation not found: %s", id)
	}
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// ListOperations returns the most recent operations first. An empty
// operation name matches every operation; limit ≤ 0 means no limit.
func (s *Store) ListOperations(ctx context.Context, operation string, limit int) ([]internal.OperationRecord, error) {
	query := `SELECT id, operation, project_key, params, status, detail, created_at FROM operations`
	var args []interface{}
	if operation != "" {
		query += ` WHERE operation = ?`
		args = append(args, operation)
	}
	query += ` ORDER BY created_at DESC`
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []internal.OperationRecord
	for rows.Next() {
		rec, err := scanOperation(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *rec)
	}
	return records, rows.Err()
}

// DeleteOperation removes an operation and any phrases stored with it.
func (s *Store) DeleteOperation(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM fetched_phrases WHERE operation_id = ?`, id); err != nil {
		return err
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM operations WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("operation not found: %s", id)
	}
	return tx.Commit()
}

// ClearOperations removes the whole history and returns the number of
// operations deleted.
func (s *Store) ClearOperations(ctx context.Context) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM fetched_phrases`); err != nil {
		return 0, err
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM operations`)
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	return n, tx.Commit()
}

// OperationStats summarises the history of one operation name.
type OperationStats struct {
	Operation string
	Total     int
	Succeeded int
	Failed    int
	LastRun   time.Time
}

func (s *Store) Stats(ctx context.Context) ([]OperationStats, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT
			operation,
			COUNT(*),
			COALESCE(SUM(CASE WHEN status = 'ok' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN status != 'ok' THEN 1 ELSE 0 END), 0),
			MAX(created_at)
		FROM operations
		GROUP BY operation
		ORDER BY operation`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stats []OperationStats
	for rows.Next() {
		var st OperationStats
		var last sql.NullString
		if err := rows.Scan(&st.Operation, &st.Total, &st.Succeeded, &st.Failed, &last); err != nil {
			return nil, err
		}
		if last.Valid {
			st.LastRun = parseTimestamp(last.String)
		}
		stats = append(stats, st)
	}
	return stats, rows.Err()
}

func (s *Store) Close() error {
	return s.db.Close()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanOperation(row rowScanner) (*internal.OperationRecord, error) {
	var rec internal.OperationRecord
	var params string
	var detail sql.NullString
	if err := row.Scan(&rec.ID, &rec.Operation, &rec.ProjectKey, &params, &rec.Status, &detail, &rec.Timestamp); err != nil {
		return nil, err
	}
	rec.Detail = detail.String
	if err := json.Unmarshal([]byte(params), &rec.Params); err != nil {
		return nil, fmt.Errorf("failed to decode params of %s: %w", rec.ID, err)
	}
	return &rec, nil
}

// MAX() loses the column's declared type, so the driver hands back text.
func parseTimestamp(s string) time.Time {
	for _, layout := range []string{
		"2006-01-02 15:04:05.999999999-07:00",
		"2006-01-02T15:04:05.999999999-07:00",
		"2006-01-02 15:04:05.999999999 -0700 MST",
		"2006-01-02 15:04:05",
		time.RFC3339Nano,
	} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
