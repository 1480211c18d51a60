package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/SscSPs/currency_exchange_tracker/internal/apperrors"
	"github.com/SscSPs/currency_exchange_tracker/internal/core/domain"
	"github.com/SscSPs/currency_exchange_tracker/internal/core/ports/repositories"
)

// dateLayouts covers the textual DATE representations of both drivers.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04:05",
	time.RFC3339Nano,
}

// RateTableRepository loads currency_rates<year> tables.
type RateTableRepository struct {
	db      DBTX
	dialect Dialect
	years   []int
	imports repositories.RateImportReader
	logger  *slog.Logger
}

var _ repositories.RateTableSource = (*RateTableRepository)(nil)

// NewRateTableRepository creates a source over the given years. When years is
// empty the tables recorded in the import log are loaded instead.
func NewRateTableRepository(db DBTX, dialect Dialect, years []int, imports repositories.RateImportReader, logger *slog.Logger) *RateTableRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &RateTableRepository{db: db, dialect: dialect, years: years, imports: imports, logger: logger}
}

// Load reads every configured table, fills its gaps and merges the result.
// A table that cannot be read is logged and skipped.
func (r *RateTableRepository) Load(ctx context.Context) (domain.RateTable, error) {
	tables, err := r.tableNames(ctx)
	if err != nil {
		return domain.RateTable{}, err
	}

	loaded := make([]domain.RateTable, 0, len(tables))
	for _, name := range tables {
		t, err := r.LoadTable(ctx, name)
		if err != nil {
			if ctx.Err() != nil {
				return domain.RateTable{}, ctx.Err()
			}
			r.logger.Error("Skipping rate table", slog.String("table", name), slog.String("error", err.Error()))
			continue
		}
		loaded = append(loaded, t.FillMissing())
	}
	if len(loaded) == 0 {
		r.logger.Warn("No rate tables loaded", slog.Any("tables", tables))
		return domain.NewRateTable(), nil
	}

	merged := domain.MergeTables(loaded...).FillMissing()
	r.logger.Info("Rate table loaded",
		slog.Int("tables", len(loaded)),
		slog.Int("rows", merged.Len()),
		slog.Int("currencies", len(merged.Codes)),
	)
	return merged, nil
}

func (r *RateTableRepository) tableNames(ctx context.Context) ([]string, error) {
	if len(r.years) > 0 {
		names := make([]string, 0, len(r.years))
		for _, y := range r.years {
			names = append(names, TableName(y))
		}
		return names, nil
	}
	if r.imports == nil {
		return nil, nil
	}
	imports, err := r.imports.ListImports(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list rate tables: %w", err)
	}
	seen := map[string]struct{}{}
	var names []string
	for _, imp := range imports {
		if _, ok := seen[imp.TableName]; ok {
			continue
		}
		seen[imp.TableName] = struct{}{}
		names = append(names, imp.TableName)
	}
	sort.Strings(names)
	return names, nil
}

// LoadTable reads one rate table without filling gaps.
func (r *RateTableRepository) LoadTable(ctx context.Context, table string) (domain.RateTable, error) {
	quoted, err := Quote(table)
	if err != nil {
		return domain.RateTable{}, err
	}
	dateCol, _ := Quote(domain.DateColumn)

	rows, err := r.db.QueryContext(ctx, fmt.Sprintf("SELECT * FROM %s ORDER BY %s;", quoted, dateCol))
	if err != nil {
		return domain.RateTable{}, fmt.Errorf("failed to query %s: %w", table, err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return domain.RateTable{}, fmt.Errorf("failed to read columns of %s: %w", table, err)
	}
	dateIdx := -1
	var codes []string
	for i, c := range cols {
		if strings.EqualFold(c, domain.DateColumn) {
			dateIdx = i
			continue
		}
		codes = append(codes, strings.ToUpper(c))
	}
	if dateIdx < 0 {
		return domain.RateTable{}, fmt.Errorf("%s: %w", table, apperrors.ErrMissingTemporalIndex)
	}

	out := domain.NewRateTable(codes...)
	var rawDate any
	values := make([]sql.NullFloat64, len(cols))
	dest := make([]any, len(cols))
	for i := range cols {
		if i == dateIdx {
			dest[i] = &rawDate
			continue
		}
		dest[i] = &values[i]
	}

	for rows.Next() {
		if err := rows.Scan(dest...); err != nil {
			return domain.RateTable{}, fmt.Errorf("failed to scan %s row: %w", table, err)
		}
		date, err := toDate(rawDate)
		if err != nil {
			return domain.RateTable{}, &apperrors.DataFormatError{Source: table, Err: err}
		}
		rates := make(map[string]float64, len(codes))
		for i, c := range cols {
			if i == dateIdx {
				continue
			}
			if values[i].Valid {
				rates[strings.ToUpper(c)] = values[i].Float64
			} else {
				rates[strings.ToUpper(c)] = math.NaN()
			}
		}
		out.AppendRow(date, rates)
	}
	if err := rows.Err(); err != nil {
		return domain.RateTable{}, fmt.Errorf("error iterating %s: %w", table, err)
	}
	return out, nil
}

func toDate(v any) (time.Time, error) {
	switch d := v.(type) {
	case time.Time:
		return domain.TruncateDay(d), nil
	case string:
		return parseDate(d)
	case []byte:
		return parseDate(string(d))
	case nil:
		return time.Time{}, fmt.Errorf("null date")
	}
	return time.Time{}, fmt.Errorf("unsupported date value %T", v)
}

func parseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if d, err := time.Parse(layout, s); err == nil {
			return domain.TruncateDay(d), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised date %q", s)
}
