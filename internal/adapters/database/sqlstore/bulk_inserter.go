package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/SscSPs/currency_exchange_tracker/internal/apperrors"
	"github.com/SscSPs/currency_exchange_tracker/internal/core/domain"
	"github.com/SscSPs/currency_exchange_tracker/internal/core/ports/repositories"
	"github.com/shopspring/decimal"
)

// RatePrecision is the number of decimal places stored per rate.
const RatePrecision = 4

// ImportRequest describes one CSV file to load into currency_rates<Year>.
type ImportRequest struct {
	Year       int
	SourceFile string
	Table      domain.RateTable
	// Force re-imports a file that was already recorded, replacing the rows in its date range.
	Force bool
}

// BulkInserter writes rate tables into the database.
type BulkInserter struct {
	db      *sql.DB
	dialect Dialect
	logger  *slog.Logger
	now     func() time.Time
}

// NewBulkInserter creates a BulkInserter.
func NewBulkInserter(db *sql.DB, dialect Dialect, logger *slog.Logger) *BulkInserter {
	if logger == nil {
		logger = slog.Default()
	}
	return &BulkInserter{db: db, dialect: dialect, logger: logger, now: func() time.Time { return time.Now().UTC() }}
}

// Import creates the year's table when needed and inserts every row of the
// request in a single transaction, recording the import in rate_imports.
// A file already imported into the same table is refused with
// apperrors.ErrDuplicate unless Force is set.
func (b *BulkInserter) Import(ctx context.Context, req ImportRequest) (repositories.RateImport, error) {
	if req.Year < 1000 || req.Year > 9999 {
		return repositories.RateImport{}, apperrors.NewValidationError(fmt.Sprintf("year %d is not a four digit year", req.Year))
	}
	if len(req.Table.Codes) == 0 {
		return repositories.RateImport{}, apperrors.NewValidationError("table has no currency columns")
	}
	if !req.Table.HasTemporalIndex() {
		return repositories.RateImport{}, apperrors.ErrMissingTemporalIndex
	}
	table := TableName(req.Year)
	logger := b.logger.With(slog.String("table", table), slog.String("file", req.SourceFile))

	tx, err := b.db.BeginTx(ctx, nil)
	if err != nil {
		return repositories.RateImport{}, fmt.Errorf("failed to begin import transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	imports := NewRateImportRepository(tx, b.dialect)
	if _, err := imports.FindImport(ctx, table, req.SourceFile); err == nil {
		if !req.Force {
			return repositories.RateImport{}, fmt.Errorf("%w: %s was already imported into %s", apperrors.ErrDuplicate, req.SourceFile, table)
		}
		logger.Warn("Re-importing previously imported file")
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return repositories.RateImport{}, err
	}

	if err := b.ensureTable(ctx, tx, table, req.Table.Codes); err != nil {
		return repositories.RateImport{}, err
	}
	if req.Force {
		if err := b.deleteRange(ctx, tx, table, req.Table); err != nil {
			return repositories.RateImport{}, err
		}
	}
	n, err := b.insertRows(ctx, tx, table, req.Table)
	if err != nil {
		return repositories.RateImport{}, err
	}

	imp := repositories.RateImport{
		TableName:  table,
		SourceFile: req.SourceFile,
		RowCount:   n,
		ImportedAt: b.now(),
	}
	if err := imports.SaveImport(ctx, imp); err != nil {
		return repositories.RateImport{}, err
	}
	if err := tx.Commit(); err != nil {
		return repositories.RateImport{}, fmt.Errorf("failed to commit import: %w", err)
	}
	logger.Info("Rate file imported", slog.Int("rows", n), slog.Int("currencies", len(req.Table.Codes)))
	return imp, nil
}

// ensureTable creates the table and adds any currency column it lacks.
func (b *BulkInserter) ensureTable(ctx context.Context, tx *sql.Tx, table string, codes []string) error {
	quotedTable, err := Quote(table)
	if err != nil {
		return err
	}
	dateCol, _ := Quote(domain.DateColumn)

	defs := []string{dateCol + " DATE"}
	for _, c := range codes {
		q, err := Quote(c)
		if err != nil {
			return err
		}
		defs = append(defs, q+" DECIMAL(10,4)")
	}
	create := fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (%s);", quotedTable, strings.Join(defs, ", "))
	if _, err := tx.ExecContext(ctx, create); err != nil {
		return fmt.Errorf("failed to create %s: %w", table, err)
	}

	existing, err := columnsOf(ctx, tx, quotedTable)
	if err != nil {
		return fmt.Errorf("failed to read columns of %s: %w", table, err)
	}
	for _, c := range codes {
		if _, ok := existing[c]; ok {
			continue
		}
		q, _ := Quote(c)
		if _, err := tx.ExecContext(ctx, fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s DECIMAL(10,4);", quotedTable, q)); err != nil {
			return fmt.Errorf("failed to add column %s to %s: %w", c, table, err)
		}
		b.logger.Info("Added currency column", slog.String("table", table), slog.String("currency", c))
	}
	return nil
}

func columnsOf(ctx context.Context, tx *sql.Tx, quotedTable string) (map[string]struct{}, error) {
	rows, err := tx.QueryContext(ctx, fmt.Sprintf("SELECT * FROM %s WHERE 1 = 0;", quotedTable))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}
	out := make(map[string]struct{}, len(cols))
	for _, c := range cols {
		out[strings.ToUpper(c)] = struct{}{}
	}
	return out, nil
}

func (b *BulkInserter) deleteRange(ctx context.Context, tx *sql.Tx, table string, t domain.RateTable) error {
	first, last, ok := t.DateRange()
	if !ok {
		return nil
	}
	quotedTable, _ := Quote(table)
	dateCol, _ := Quote(domain.DateColumn)
	query := fmt.Sprintf("DELETE FROM %s WHERE %s >= ? AND %s <= ?;", quotedTable, dateCol, dateCol)
	if _, err := tx.ExecContext(ctx, b.dialect.Rebind(query), first, last); err != nil {
		return fmt.Errorf("failed to clear %s for re-import: %w", table, err)
	}
	return nil
}

func (b *BulkInserter) insertRows(ctx context.Context, tx *sql.Tx, table string, t domain.RateTable) (int, error) {
	quotedTable, _ := Quote(table)
	dateCol, _ := Quote(domain.DateColumn)
	cols := []string{dateCol}
	for _, c := range t.Codes {
		q, _ := Quote(c)
		cols = append(cols, q)
	}
	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s);", quotedTable, strings.Join(cols, ", "), Placeholders(len(cols)))

	stmt, err := tx.PrepareContext(ctx, b.dialect.Rebind(query))
	if err != nil {
		return 0, fmt.Errorf("failed to prepare insert into %s: %w", table, err)
	}
	defer stmt.Close()

	args := make([]any, len(cols))
	for i, d := range t.Dates {
		args[0] = d
		for j, c := range t.Codes {
			args[j+1] = rateValue(t.Values[c][i])
		}
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return 0, fmt.Errorf("failed to insert %s row for %s: %w", table, d.Format("2006-01-02"), err)
		}
	}
	return len(t.Dates), nil
}

// rateValue maps a missing observation to SQL NULL and rounds the rest.
func rateValue(v float64) any {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return decimal.NewFromFloat(v).Round(RatePrecision)
}
