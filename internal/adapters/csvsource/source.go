package csvsource

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sort"

	"github.com/SscSPs/currency_exchange_tracker/internal/core/domain"
	"github.com/SscSPs/currency_exchange_tracker/internal/core/ports/repositories"
)

// Source loads every *.csv report found in a directory.
type Source struct {
	dir    string
	logger *slog.Logger
}

var _ repositories.RateTableSource = (*Source)(nil)

// NewSource creates a Source reading from dir.
func NewSource(dir string, logger *slog.Logger) *Source {
	if logger == nil {
		logger = slog.Default()
	}
	return &Source{dir: dir, logger: logger}
}

// Load reads the reports in name order, fills the gaps of each one and merges
// them into a single date-ordered table. A report that fails to parse is
// logged and skipped. Files on disk are never modified.
func (s *Source) Load(ctx context.Context) (domain.RateTable, error) {
	files, err := filepath.Glob(filepath.Join(s.dir, "*.csv"))
	if err != nil {
		return domain.RateTable{}, fmt.Errorf("failed to list csv files in %s: %w", s.dir, err)
	}
	sort.Strings(files)

	tables := make([]domain.RateTable, 0, len(files))
	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return domain.RateTable{}, err
		}
		t, err := ReadFile(f)
		if err != nil {
			s.logger.Error("Skipping rate file", slog.String("file", f), slog.String("error", err.Error()))
			continue
		}
		s.logger.Debug("Loaded rate file",
			slog.String("file", f),
			slog.Int("rows", t.Len()),
			slog.Int("currencies", len(t.Codes)),
		)
		tables = append(tables, t.FillMissing())
	}
	if len(tables) == 0 {
		s.logger.Warn("No rate files loaded", slog.String("dir", s.dir))
		return domain.NewRateTable(), nil
	}

	merged := domain.MergeTables(tables...).FillMissing()
	s.logger.Info("Rate table loaded",
		slog.Int("files", len(tables)),
		slog.Int("rows", merged.Len()),
		slog.Int("currencies", len(merged.Codes)),
	)
	return merged, nil
}
