package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/currency_exchange_tracker/internal/core/domain"
)

// RateTableSource defines read access to historical rate tables.
type RateTableSource interface {
	// Load reads every available rate table and merges them into one, date ordered.
	Load(ctx context.Context) (domain.RateTable, error)
}

// RateProvider defines lookups of present-day exchange rates.
type RateProvider interface {
	// GetRate returns the amount of target currency one unit of base buys.
	// Any failure is reported as an error wrapping apperrors.ErrRateUnavailable.
	GetRate(ctx context.Context, base, target string) (float64, error)
}

// RateImport records one bulk import of a CSV file into a rate table.
type RateImport struct {
	TableName  string
	SourceFile string
	RowCount   int
	ImportedAt time.Time
}

// RateImportReader defines read operations for the import log.
type RateImportReader interface {
	// ListImports returns every recorded import ordered by table name.
	ListImports(ctx context.Context) ([]RateImport, error)
	// FindImport returns the import of sourceFile into tableName, or apperrors.ErrNotFound.
	FindImport(ctx context.Context, tableName, sourceFile string) (*RateImport, error)
}

// RateImportWriter defines write operations for the import log.
type RateImportWriter interface {
	// SaveImport records an import, replacing a previous record of the same file and table.
	SaveImport(ctx context.Context, imp RateImport) error
}

// RateImportRepositoryFacade combines the import log interfaces.
type RateImportRepositoryFacade interface {
	RateImportReader
	RateImportWriter
}
