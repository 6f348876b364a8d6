// Package load persists records into the relational target.
package load

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	"lakesync/internal/domain"
)

// Compile-time check: Loader implements the loader port.
var _ domain.RecordLoader = (*Loader)(nil)

// Loader writes records into a named target table. Each Load call opens one
// connection and one transaction; an individual insert failure is logged
// and skipped while the rest of the batch proceeds, and the transaction
// commits whatever subset succeeded. Only a connection-level failure is
// fatal to the call.
type Loader struct {
	driver string
	dsn    string
	logger *slog.Logger
}

// New creates a Loader for the given database/sql driver and DSN.
func New(driver, dsn string, logger *slog.Logger) *Loader {
	return &Loader{
		driver: driver,
		dsn:    dsn,
		logger: logger.With("component", "loader"),
	}
}

// Load inserts records into table. An empty batch is a no-op with a
// warning, not an error.
func (l *Loader) Load(ctx context.Context, records []domain.Record, table string) error {
	logger := l.logger.With("table", table)
	if len(records) == 0 {
		logger.Warn("no records to insert")
		return nil
	}

	db, err := sql.Open(l.driver, l.dsn)
	if err != nil {
		return domain.ErrConnection("open %s: %v", l.driver, err)
	}
	defer db.Close() //nolint:errcheck

	if err := db.PingContext(ctx); err != nil {
		return domain.ErrConnection("connect to %s: %v", l.driver, err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return domain.ErrConnection("begin transaction: %v", err)
	}

	inserted := 0
	for _, record := range records {
		stmt := insertStatement(table, record.Columns())
		if _, err := tx.ExecContext(ctx, stmt, record.Values()...); err != nil {
			logger.Error("insert failed, skipping record",
				"record", fmt.Sprintf("%+v", record), "error", err)
			continue
		}
		inserted++
	}

	if err := tx.Commit(); err != nil {
		return domain.ErrConnection("commit %s: %v", table, err)
	}

	logger.Info("records loaded", "inserted", inserted, "attempted", len(records))
	return nil
}

// insertStatement builds a positional-placeholder INSERT from the record's
// column names.
func insertStatement(table string, columns []string) string {
	quoted := make([]string, len(columns))
	placeholders := make([]string, len(columns))
	for i, c := range columns {
		quoted[i] = "`" + c + "`"
		placeholders[i] = "?"
	}
	return fmt.Sprintf("INSERT INTO `%s` (%s) VALUES (%s)",
		table, strings.Join(quoted, ", "), strings.Join(placeholders, ", "))
}
