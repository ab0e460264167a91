package demo

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/AaaBinfinity/PortSentry/internal/state"
)

const alertSchema = `
CREATE TABLE IF NOT EXISTS alerts(
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	level TEXT NOT NULL,
	title TEXT NOT NULL,
	message TEXT NOT NULL,
	port INTEGER NOT NULL,
	ts TEXT NOT NULL,
	resolved INTEGER NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS idx_alerts_resolved ON alerts(resolved);`

// AlertStore persists demo alerts in sqlite so resolution survives
// restarts.
type AlertStore struct {
	db *sql.DB
}

// OpenAlertStore opens (and if needed creates) the alert database.
// Use ":memory:" for an ephemeral store.
func OpenAlertStore(path string) (*AlertStore, error) {
	dsn := "file:" + path + "?_pragma=busy_timeout=5000"
	if path == ":memory:" {
		dsn = path
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open alert db: %w", err)
	}
	db.SetMaxOpenConns(1)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if _, err := db.ExecContext(ctx, alertSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init alert schema: %w", err)
	}
	return &AlertStore{db: db}, nil
}

// Close releases the database handle.
func (s *AlertStore) Close() error { return s.db.Close() }

// Insert stores new alerts, ignoring the incoming IDs.
func (s *AlertStore) Insert(ctx context.Context, alerts []state.Alert) error {
	for _, alert := range alerts {
		_, err := s.db.ExecContext(ctx,
			`INSERT INTO alerts(level, title, message, port, ts, resolved) VALUES(?,?,?,?,?,?)`,
			alert.Level, alert.Title, alert.Message, alert.Port, alert.Timestamp, boolToInt(alert.Resolved))
		if err != nil {
			return fmt.Errorf("insert alert: %w", err)
		}
	}
	return nil
}

// List returns all alerts in insertion order.
func (s *AlertStore) List(ctx context.Context) ([]state.Alert, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, level, title, message, port, ts, resolved FROM alerts ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list alerts: %w", err)
	}
	defer rows.Close()

	var alerts []state.Alert
	for rows.Next() {
		var alert state.Alert
		var resolved int
		if err := rows.Scan(&alert.ID, &alert.Level, &alert.Title, &alert.Message, &alert.Port, &alert.Timestamp, &resolved); err != nil {
			return nil, fmt.Errorf("scan alert: %w", err)
		}
		alert.Resolved = resolved != 0
		alerts = append(alerts, alert)
	}
	return alerts, rows.Err()
}

// Resolve marks one alert resolved; the bool reports whether the ID
// matched an existing row.
func (s *AlertStore) Resolve(ctx context.Context, id int) (bool, error) {
	res, err := s.db.ExecContext(ctx, `UPDATE alerts SET resolved = 1 WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("resolve alert: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("resolve alert: %w", err)
	}
	return affected > 0, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
