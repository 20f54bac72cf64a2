// Package storage backs the session dataset with SQLite, letting large
// uploads live outside the process heap. The default DSN is an
// in-memory shared-cache database, so nothing survives the process.
package storage

import (
	"context"
	"database/sql"
	"fmt"

	"khata/internal/core"

	_ "modernc.org/sqlite"
)

// DefaultDSN keeps the records database in memory, shared across the
// repository and migration connections.
const DefaultDSN = "file:khata?mode=memory&cache=shared"

type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository opens and migrates the records database.
func NewSQLiteRepository(dsn string) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dsn); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Replace implements dataset.Replacer: one transaction clears the table
// and writes the new upload, so a failed swap leaves the old dataset.
func (r *SQLiteRepository) Replace(ctx context.Context, records []core.Record) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin replace: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM records`); err != nil {
		return fmt.Errorf("clear records: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO records (
			position, date, day, time, keyword, flow, amount,
			description, money_type, place,
			remaining_cash, remaining_online, whole_total
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, rec := range records {
		_, err := stmt.ExecContext(ctx,
			i, rec.Date, rec.Day, rec.Time, rec.Keyword, int(rec.Flow),
			rec.Amount.String(), rec.Description, int(rec.MoneyType),
			rec.Place, rec.RemainingCash.String(),
			rec.RemainingOnline.String(), rec.WholeTotal.String())
		if err != nil {
			return fmt.Errorf("insert record %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace: %w", err)
	}
	return nil
}

// Records implements dataset.Lister, returning rows in upload order.
func (r *SQLiteRepository) Records(ctx context.Context) ([]core.Record, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT date, day, time, keyword, flow, amount,
		       description, money_type, place,
		       remaining_cash, remaining_online, whole_total
		FROM records ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("query records: %w", err)
	}
	defer rows.Close()

	var records []core.Record
	for rows.Next() {
		var (
			rec                                  core.Record
			flow, moneyType                      int
			amount, remCash, remOnline, wholeTot string
		)
		err := rows.Scan(&rec.Date, &rec.Day, &rec.Time, &rec.Keyword,
			&flow, &amount, &rec.Description, &moneyType, &rec.Place,
			&remCash, &remOnline, &wholeTot)
		if err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		rec.Flow = core.FlowType(flow)
		rec.MoneyType = core.MoneyType(moneyType)
		rec.Amount = core.NormalizeMoney(amount)
		rec.RemainingCash = core.NormalizeMoney(remCash)
		rec.RemainingOnline = core.NormalizeMoney(remOnline)
		rec.WholeTotal = core.NormalizeMoney(wholeTot)
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate records: %w", err)
	}
	return records, nil
}
