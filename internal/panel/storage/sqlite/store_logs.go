package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/louisbranch/constellation/internal/panel/domain"
	"github.com/louisbranch/constellation/internal/panel/storage"
)

const logColumns = "id, text, type, target, timestamp, created_at"

func scanLog(row rowScanner) (storage.LogRecord, error) {
	var record storage.LogRecord
	var createdAt int64
	err := row.Scan(
		&record.ID, &record.Text, &record.Type, &record.Target,
		&record.Timestamp, &createdAt,
	)
	if err != nil {
		return storage.LogRecord{}, err
	}
	record.CreatedAt = fromMillis(createdAt)
	return record, nil
}

// ListLogs returns log rows ordered by creation time ascending, narrowed by
// the filter.
func (s *Store) ListLogs(ctx context.Context, filter storage.LogFilter) ([]storage.LogRecord, error) {
	query := "SELECT " + logColumns + " FROM scenario_logs"
	var args []any
	if filter.Target != "" {
		query += " WHERE target = ? OR target = ?"
		args = append(args, domain.TargetAll, filter.Target)
	}
	query += " ORDER BY created_at ASC, id ASC"

	rows, err := s.sqlDB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list logs: %w", err)
	}
	defer rows.Close()

	var records []storage.LogRecord
	for rows.Next() {
		record, err := scanLog(rows)
		if err != nil {
			return nil, fmt.Errorf("scan log: %w", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read logs: %w", err)
	}
	return records, nil
}

// InsertLog appends one entry and returns it with its assigned id.
func (s *Store) InsertLog(ctx context.Context, record storage.LogRecord) (storage.LogRecord, error) {
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now().UTC()
	}

	result, err := s.sqlDB.ExecContext(ctx, `
INSERT INTO scenario_logs (text, type, target, timestamp, created_at)
VALUES (?, ?, ?, ?, ?)`,
		record.Text, record.Type, record.Target, record.Timestamp,
		toMillis(record.CreatedAt),
	)
	if err != nil {
		return storage.LogRecord{}, fmt.Errorf("insert log: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return storage.LogRecord{}, fmt.Errorf("log insert id: %w", err)
	}
	record.ID = id
	return record, nil
}

// DeleteAllLogs removes every log row and returns the deleted ids so stream
// decorators can publish one delete per row.
func (s *Store) DeleteAllLogs(ctx context.Context) ([]int64, error) {
	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin log purge: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	rows, err := tx.QueryContext(ctx, "SELECT id FROM scenario_logs ORDER BY id ASC")
	if err != nil {
		return nil, fmt.Errorf("list logs for purge: %w", err)
	}
	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan log id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("read log ids: %w", err)
	}
	rows.Close()

	if _, err := tx.ExecContext(ctx, "DELETE FROM scenario_logs"); err != nil {
		return nil, fmt.Errorf("purge logs: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit log purge: %w", err)
	}
	return ids, nil
}
