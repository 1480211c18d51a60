// Command cet_uploader loads yearly exchange rate CSV files into the
// currency_rates<YEAR> tables used by the SQL data source.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/SscSPs/currency_exchange_tracker/internal/adapters/csvsource"
	"github.com/SscSPs/currency_exchange_tracker/internal/adapters/database/sqlstore"
	"github.com/SscSPs/currency_exchange_tracker/internal/apperrors"
	"github.com/SscSPs/currency_exchange_tracker/internal/platform/config"
	"github.com/SscSPs/currency_exchange_tracker/internal/platform/logging"
	"github.com/SscSPs/currency_exchange_tracker/pkg/database"
	flag "github.com/spf13/pflag"
)

type options struct {
	files []string
	year  int
	force bool
}

func main() {
	var opts options
	flag.StringSliceVarP(&opts.files, "file", "f", nil, "CSV file to import (repeatable, or comma separated)")
	flag.IntVarP(&opts.year, "year", "y", 0, "target year; defaults to the _YYYY suffix of each file name")
	flag.BoolVar(&opts.force, "force", false, "re-import files that were already imported")
	flag.Parse()
	opts.files = append(opts.files, flag.Args()...)

	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger, closer := logging.New(cfg.LogLevel, cfg.LogFile)
	defer closer.Close()
	slog.SetDefault(logger)

	if len(opts.files) == 0 {
		fmt.Fprintln(os.Stderr, "usage: cet_uploader --file currency_rates_2023.csv [--year 2023] [--force]")
		flag.PrintDefaults()
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	failed, err := run(ctx, cfg, opts, logger)
	if err != nil {
		logger.Error("Upload aborted", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if failed > 0 {
		logger.Error("Some files failed to import", slog.Int("failed", failed), slog.Int("total", len(opts.files)))
		os.Exit(1)
	}
}

// run imports every file and returns how many failed. A failing file does not
// stop the others.
func run(ctx context.Context, cfg *config.Config, opts options, logger *slog.Logger) (int, error) {
	dialect, err := sqlstore.NewDialect(cfg.DBDriver)
	if err != nil {
		return 0, err
	}
	if err := sqlstore.Migrate(ctx, cfg.DBDriver, cfg.DatabaseURL, logger); err != nil {
		return 0, err
	}
	db, err := database.Open(ctx, cfg.DBDriver, cfg.DatabaseURL)
	if err != nil {
		return 0, err
	}
	defer database.Close(db, logger)

	inserter := sqlstore.NewBulkInserter(db, dialect, logger)

	failed := 0
	for _, path := range opts.files {
		if err := importFile(ctx, inserter, path, opts, logger); err != nil {
			failed++
			if errors.Is(err, apperrors.ErrDuplicate) {
				logger.Warn("File already imported, use --force to replace it", slog.String("file", path))
				continue
			}
			logger.Error("Failed to import file", slog.String("file", path), slog.String("error", err.Error()))
		}
	}
	return failed, nil
}

func importFile(ctx context.Context, inserter *sqlstore.BulkInserter, path string, opts options, logger *slog.Logger) error {
	year := opts.year
	if year == 0 {
		y, ok := csvsource.YearFromFilename(path)
		if !ok {
			return apperrors.NewValidationError(fmt.Sprintf("cannot infer year from %q, pass --year", filepath.Base(path)))
		}
		year = y
	}

	table, err := csvsource.ReadFile(path)
	if err != nil {
		return err
	}

	imp, err := inserter.Import(ctx, sqlstore.ImportRequest{
		Year:       year,
		SourceFile: filepath.Base(path),
		Table:      table,
		Force:      opts.force,
	})
	if err != nil {
		return err
	}
	logger.Info("File imported",
		slog.String("file", imp.SourceFile),
		slog.String("table", imp.TableName),
		slog.Int("rows", imp.RowCount))
	return nil
}
