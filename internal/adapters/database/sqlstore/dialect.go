// Package sqlstore persists and loads yearly rate tables in a SQL database.
// PostgreSQL (through pgx) and SQLite are supported.
package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/SscSPs/currency_exchange_tracker/internal/apperrors"
	"github.com/SscSPs/currency_exchange_tracker/internal/core/domain"
	"github.com/SscSPs/currency_exchange_tracker/pkg/database"
)

// TablePrefix is prepended to the year to form a rate table name.
const TablePrefix = "currency_rates"

var (
	codeIdent  = regexp.MustCompile(`^[A-Z]{3}$`)
	tableIdent = regexp.MustCompile(`^` + TablePrefix + `\d{4}$`)
)

// DBTX is satisfied by both *sql.DB and *sql.Tx.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Dialect adapts queries written with '?' placeholders to a driver.
type Dialect struct {
	Driver string
}

// NewDialect returns the dialect of a supported driver.
func NewDialect(driver string) (Dialect, error) {
	switch driver {
	case database.DriverPgx, database.DriverSQLite3:
		return Dialect{Driver: driver}, nil
	}
	return Dialect{}, fmt.Errorf("%w: unsupported database driver %q", apperrors.ErrValidation, driver)
}

// Rebind rewrites '?' placeholders as $1, $2, ... for PostgreSQL.
func (d Dialect) Rebind(query string) string {
	if d.Driver != database.DriverPgx {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Placeholders returns n comma separated '?' markers.
func Placeholders(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}

// TableName returns the rate table name for a year.
func TableName(year int) string {
	return fmt.Sprintf("%s%04d", TablePrefix, year)
}

// Quote quotes a validated identifier. Table names must look like
// currency_rates<year>; column names must be Date or a three-letter code.
func Quote(ident string) (string, error) {
	if ident != domain.DateColumn && !codeIdent.MatchString(ident) && !tableIdent.MatchString(ident) {
		return "", fmt.Errorf("%w: invalid identifier %q", apperrors.ErrValidation, ident)
	}
	return `"` + ident + `"`, nil
}
