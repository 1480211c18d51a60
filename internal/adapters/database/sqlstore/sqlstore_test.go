package sqlstore_test

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"math"
	"path/filepath"
	"testing"
	"time"

	"github.com/SscSPs/currency_exchange_tracker/internal/adapters/database/sqlstore"
	"github.com/SscSPs/currency_exchange_tracker/internal/apperrors"
	"github.com/SscSPs/currency_exchange_tracker/internal/core/domain"
	"github.com/SscSPs/currency_exchange_tracker/pkg/database"
	"github.com/stretchr/testify/suite"
)

type SQLStoreTestSuite struct {
	suite.Suite
	ctx      context.Context
	db       *sql.DB
	dialect  sqlstore.Dialect
	logger   *slog.Logger
	inserter *sqlstore.BulkInserter
	imports  *sqlstore.RateImportRepository
}

func (suite *SQLStoreTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	dsn := "file:" + filepath.Join(suite.T().TempDir(), "rates.db")

	suite.Require().NoError(sqlstore.Migrate(suite.ctx, database.DriverSQLite3, dsn, suite.logger))

	db, err := database.Open(suite.ctx, database.DriverSQLite3, dsn)
	suite.Require().NoError(err)
	suite.db = db

	suite.dialect, err = sqlstore.NewDialect(database.DriverSQLite3)
	suite.Require().NoError(err)
	suite.inserter = sqlstore.NewBulkInserter(db, suite.dialect, suite.logger)
	suite.imports = sqlstore.NewRateImportRepository(db, suite.dialect)
}

func (suite *SQLStoreTestSuite) TearDownTest() {
	database.Close(suite.db, suite.logger)
}

func table2022() domain.RateTable {
	t := domain.NewRateTable("EUR", "USD")
	t.AppendRow(domain.Date(2022, time.January, 3), map[string]float64{"EUR": 1.123456, "USD": 1})
	t.AppendRow(domain.Date(2022, time.January, 4), map[string]float64{"USD": 1})
	t.AppendRow(domain.Date(2022, time.January, 5), map[string]float64{"EUR": 1.13, "USD": 1})
	return t
}

func (suite *SQLStoreTestSuite) TestImportAndLoad() {
	imp, err := suite.inserter.Import(suite.ctx, sqlstore.ImportRequest{
		Year: 2022, SourceFile: "Exchange_Rate_Report_2022.csv", Table: table2022(),
	})
	suite.Require().NoError(err)
	suite.Equal("currency_rates2022", imp.TableName)
	suite.Equal(3, imp.RowCount)

	raw, err := sqlstore.NewRateTableRepository(suite.db, suite.dialect, nil, suite.imports, suite.logger).
		LoadTable(suite.ctx, "currency_rates2022")
	suite.Require().NoError(err)
	suite.Equal([]string{"EUR", "USD"}, raw.Codes)
	suite.Require().Equal(3, raw.Len())
	suite.Equal(domain.Date(2022, time.January, 4), raw.Dates[1])
	suite.InDelta(1.1235, raw.Values["EUR"][0], 1e-9, "rounded to four places")
	suite.True(math.IsNaN(raw.Values["EUR"][1]), "missing value stored as NULL")

	loaded, err := sqlstore.NewRateTableRepository(suite.db, suite.dialect, nil, suite.imports, suite.logger).Load(suite.ctx)
	suite.Require().NoError(err)
	suite.Equal(3, loaded.Len())
	suite.InDelta(1.1235, loaded.Values["EUR"][1], 1e-9, "forward filled")
}

func (suite *SQLStoreTestSuite) TestReimportRequiresForce() {
	req := sqlstore.ImportRequest{Year: 2022, SourceFile: "r.csv", Table: table2022()}
	_, err := suite.inserter.Import(suite.ctx, req)
	suite.Require().NoError(err)

	_, err = suite.inserter.Import(suite.ctx, req)
	suite.ErrorIs(err, apperrors.ErrDuplicate)

	// Forcing replaces the rows instead of duplicating them and adds new columns.
	wider := table2022()
	wider.Codes = append(wider.Codes, "GBP")
	wider.Values["GBP"] = []float64{0.84, 0.85, 0.86}
	req.Table = wider
	req.Force = true
	_, err = suite.inserter.Import(suite.ctx, req)
	suite.Require().NoError(err)

	loaded, err := sqlstore.NewRateTableRepository(suite.db, suite.dialect, []int{2022}, nil, suite.logger).Load(suite.ctx)
	suite.Require().NoError(err)
	suite.Equal(3, loaded.Len())
	suite.True(loaded.Has("GBP"))

	imports, err := suite.imports.ListImports(suite.ctx)
	suite.Require().NoError(err)
	suite.Len(imports, 1)
}

func (suite *SQLStoreTestSuite) TestFindImportNotFound() {
	_, err := suite.imports.FindImport(suite.ctx, "currency_rates2020", "x.csv")
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *SQLStoreTestSuite) TestLoadSkipsMissingTables() {
	loaded, err := sqlstore.NewRateTableRepository(suite.db, suite.dialect, []int{1999}, nil, suite.logger).Load(suite.ctx)
	suite.Require().NoError(err)
	suite.True(loaded.IsEmpty())
}

func (suite *SQLStoreTestSuite) TestImportValidation() {
	_, err := suite.inserter.Import(suite.ctx, sqlstore.ImportRequest{Year: 22, SourceFile: "r.csv", Table: table2022()})
	suite.ErrorIs(err, apperrors.ErrValidation)

	bad := domain.NewRateTable("usd; DROP TABLE rate_imports")
	bad.AppendRow(domain.Date(2022, time.January, 3), nil)
	_, err = suite.inserter.Import(suite.ctx, sqlstore.ImportRequest{Year: 2022, SourceFile: "r.csv", Table: bad})
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func TestSQLStoreTestSuite(t *testing.T) {
	suite.Run(t, new(SQLStoreTestSuite))
}

func TestDialect_Rebind(t *testing.T) {
	pg, err := sqlstore.NewDialect(database.DriverPgx)
	if err != nil {
		t.Fatal(err)
	}
	if got := pg.Rebind("SELECT ? , ?"); got != "SELECT $1 , $2" {
		t.Errorf("Rebind = %q", got)
	}
	lite, _ := sqlstore.NewDialect(database.DriverSQLite3)
	if got := lite.Rebind("a = ?"); got != "a = ?" {
		t.Errorf("Rebind = %q", got)
	}
	if _, err := sqlstore.NewDialect("mysql"); err == nil {
		t.Error("expected an error for an unsupported driver")
	}
}
