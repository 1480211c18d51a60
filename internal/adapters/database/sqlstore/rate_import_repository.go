package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/SscSPs/currency_exchange_tracker/internal/apperrors"
	"github.com/SscSPs/currency_exchange_tracker/internal/core/ports/repositories"
)

// RateImportRepository stores the import log in the rate_imports table.
type RateImportRepository struct {
	db      DBTX
	dialect Dialect
}

var _ repositories.RateImportRepositoryFacade = (*RateImportRepository)(nil)

// NewRateImportRepository creates a repository over db, which may be a transaction.
func NewRateImportRepository(db DBTX, dialect Dialect) *RateImportRepository {
	return &RateImportRepository{db: db, dialect: dialect}
}

// ListImports returns every recorded import ordered by table and file.
func (r *RateImportRepository) ListImports(ctx context.Context) ([]repositories.RateImport, error) {
	query := `
		SELECT table_name, source_file, row_count, imported_at
		FROM rate_imports
		ORDER BY table_name, source_file;
	`
	rows, err := r.db.QueryContext(ctx, r.dialect.Rebind(query))
	if err != nil {
		return nil, fmt.Errorf("failed to list rate imports: %w", err)
	}
	defer rows.Close()

	var imports []repositories.RateImport
	for rows.Next() {
		var imp repositories.RateImport
		if err := rows.Scan(&imp.TableName, &imp.SourceFile, &imp.RowCount, &imp.ImportedAt); err != nil {
			return nil, fmt.Errorf("failed to scan rate import: %w", err)
		}
		imports = append(imports, imp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rate imports: %w", err)
	}
	return imports, nil
}

// FindImport returns the import of sourceFile into tableName.
func (r *RateImportRepository) FindImport(ctx context.Context, tableName, sourceFile string) (*repositories.RateImport, error) {
	query := `
		SELECT table_name, source_file, row_count, imported_at
		FROM rate_imports
		WHERE table_name = ? AND source_file = ?;
	`
	var imp repositories.RateImport
	err := r.db.QueryRowContext(ctx, r.dialect.Rebind(query), tableName, sourceFile).
		Scan(&imp.TableName, &imp.SourceFile, &imp.RowCount, &imp.ImportedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("no import of %s into %s", sourceFile, tableName))
		}
		return nil, fmt.Errorf("failed to find rate import %s/%s: %w", tableName, sourceFile, err)
	}
	return &imp, nil
}

// SaveImport records an import, replacing an earlier record for the same table and file.
func (r *RateImportRepository) SaveImport(ctx context.Context, imp repositories.RateImport) error {
	if imp.ImportedAt.IsZero() {
		imp.ImportedAt = time.Now().UTC()
	}
	query := `
		INSERT INTO rate_imports (table_name, source_file, row_count, imported_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (table_name, source_file) DO UPDATE SET
			row_count = EXCLUDED.row_count,
			imported_at = EXCLUDED.imported_at;
	`
	_, err := r.db.ExecContext(ctx, r.dialect.Rebind(query), imp.TableName, imp.SourceFile, imp.RowCount, imp.ImportedAt)
	if err != nil {
		return fmt.Errorf("failed to save rate import %s/%s: %w", imp.TableName, imp.SourceFile, err)
	}
	return nil
}
