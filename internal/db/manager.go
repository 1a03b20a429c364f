// Package db manages the PostgreSQL connection used by ad-hoc SQL
// exploration and converts query results into dataset frames.
package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/santiagoprado12/ML-e2e-challenge/internal/config"
	"github.com/santiagoprado12/ML-e2e-challenge/internal/dataset"
	"github.com/santiagoprado12/ML-e2e-challenge/pkg/errors"
)

// Manager wraps a SQL connection to the configured database.
type Manager struct {
	cfg config.Database
	db  *sql.DB
}

// NewManager creates a manager for the given database settings. The
// connection is opened lazily by Connect.
func NewManager(cfg config.Database) *Manager {
	return &Manager{cfg: cfg}
}

// NewManagerWithDB wraps an existing connection, used in tests.
func NewManagerWithDB(db *sql.DB) *Manager {
	return &Manager{db: db}
}

func buildDSN(cfg config.Database) string {
	parts := []string{
		fmt.Sprintf("host=%s", cfg.Host),
		fmt.Sprintf("port=%d", cfg.Port),
		fmt.Sprintf("dbname=%s", cfg.Name),
		fmt.Sprintf("user=%s", cfg.User),
	}
	if cfg.Password != "" {
		parts = append(parts, fmt.Sprintf("password=%s", cfg.Password))
	}
	if cfg.SSLMode != "" {
		parts = append(parts, fmt.Sprintf("sslmode=%s", cfg.SSLMode))
	}
	return strings.Join(parts, " ")
}

// Connect opens the connection and verifies it with a ping.
func (m *Manager) Connect(ctx context.Context) error {
	if m.db != nil {
		return nil
	}
	db, err := sql.Open("pgx", buildDSN(m.cfg))
	if err != nil {
		return errors.Wrap(err, "opening database connection")
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return errors.Wrap(err, "pinging database")
	}
	m.db = db
	return nil
}

// FetchFrame runs the query and scans every value into a string-typed
// frame, with NULL rendered as the empty string.
func (m *Manager) FetchFrame(ctx context.Context, query string) (*dataset.Frame, error) {
	if m.db == nil {
		return nil, errors.Newf("titanic: database is not connected")
	}

	rows, err := m.db.QueryContext(ctx, query)
	if err != nil {
		return nil, errors.Wrap(err, "executing query")
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, errors.Wrap(err, "reading result columns")
	}

	var records [][]string
	raw := make([]sql.NullString, len(cols))
	scan := make([]interface{}, len(cols))
	for i := range raw {
		scan[i] = &raw[i]
	}
	for rows.Next() {
		if err := rows.Scan(scan...); err != nil {
			return nil, errors.Wrap(err, "scanning result row")
		}
		record := make([]string, len(cols))
		for i, v := range raw {
			if v.Valid {
				record[i] = v.String
			}
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "iterating result rows")
	}

	return dataset.FromRows(cols, records)
}

// Close releases the underlying connection.
func (m *Manager) Close() error {
	if m.db == nil {
		return nil
	}
	return m.db.Close()
}
