package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/thinkscotty/adalchemy/internal/creative"
)

// HistoryStore persists generation history in SQLite, keeping at most
// capacity rows.
type HistoryStore struct {
	db       *DB
	capacity int
}

func (db *DB) History(capacity int) *HistoryStore {
	if capacity <= 0 {
		capacity = 500
	}
	return &HistoryStore{db: db, capacity: capacity}
}

func (h *HistoryStore) Append(ctx context.Context, r creative.Record) error {
	_, err := h.db.conn.ExecContext(ctx, `
		INSERT INTO generations (generation_id, kind, status, target_audience, prompt, cultural_score, payload, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.Kind, r.Status, r.TargetAudience, r.Prompt, r.CulturalScore, string(r.Payload),
		r.CreatedAt.UTC().Format(timeLayout))
	if err != nil {
		return fmt.Errorf("insert generation: %w", err)
	}
	return h.prune(ctx)
}

func (h *HistoryStore) prune(ctx context.Context) error {
	_, err := h.db.conn.ExecContext(ctx, `
		DELETE FROM generations WHERE id NOT IN (
			SELECT id FROM generations ORDER BY id DESC LIMIT ?
		)`, h.capacity)
	if err != nil {
		return fmt.Errorf("prune generations: %w", err)
	}
	return nil
}

// Recent returns up to limit records, oldest first.
func (h *HistoryStore) Recent(ctx context.Context, limit int) ([]creative.Record, error) {
	if limit <= 0 {
		limit = creative.DefaultHistoryLimit
	}
	rows, err := h.db.conn.QueryContext(ctx, `
		SELECT generation_id, kind, status, target_audience, prompt, cultural_score, payload, created_at
		FROM (SELECT * FROM generations ORDER BY id DESC LIMIT ?)
		ORDER BY id ASC`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRecords(rows)
}

func (h *HistoryStore) Count(ctx context.Context) (int, error) {
	var n int
	err := h.db.conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM generations`).Scan(&n)
	return n, err
}

func scanRecords(rows *sql.Rows) ([]creative.Record, error) {
	records := []creative.Record{}
	for rows.Next() {
		var r creative.Record
		var payload, createdAt string
		if err := rows.Scan(&r.ID, &r.Kind, &r.Status, &r.TargetAudience, &r.Prompt,
			&r.CulturalScore, &payload, &createdAt); err != nil {
			return nil, err
		}
		if payload != "" {
			r.Payload = []byte(payload)
		}
		r.CreatedAt, _ = parseTime(createdAt)
		records = append(records, r)
	}
	return records, rows.Err()
}
