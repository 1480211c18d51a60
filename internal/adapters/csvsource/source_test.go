package csvsource_test

import (
	"context"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/SscSPs/currency_exchange_tracker/internal/adapters/csvsource"
	"github.com/SscSPs/currency_exchange_tracker/internal/apperrors"
	"github.com/SscSPs/currency_exchange_tracker/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const report2012 = `Date,Euro   (EUR),  U.S. dollar   (USD)  ,Notes
3-Jan-12,1.2945,1,
4-Jan-12,NULL,1,x
5-Jan-12,1.2960,,
`

const report2013 = `Date,Japanese yen   (JPY),U.S. dollar   (USD)
2-Jan-13,87.1,1
3-Jan-13,87.5,1
`

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	return p
}

func TestCodeFromLabel(t *testing.T) {
	assert.Equal(t, "USD", csvsource.CodeFromLabel("  U.S. dollar   (USD) "))
	assert.Equal(t, "EUR", csvsource.CodeFromLabel("Euro (eur)"))
	assert.Equal(t, "GBP", csvsource.CodeFromLabel("GBP"))
	assert.Equal(t, "", csvsource.CodeFromLabel("Notes"))
	assert.Equal(t, "", csvsource.CodeFromLabel("Peso (MEXN)"))
}

func TestParseDate(t *testing.T) {
	d, err := csvsource.ParseDate("3-Jan-12")
	require.NoError(t, err)
	assert.Equal(t, domain.Date(2012, time.January, 3), d)

	d, err = csvsource.ParseDate("2022-06-30")
	require.NoError(t, err)
	assert.Equal(t, domain.Date(2022, time.June, 30), d)

	_, err = csvsource.ParseDate("03/01/2012")
	assert.Error(t, err)
}

func TestYearFromFilename(t *testing.T) {
	y, ok := csvsource.YearFromFilename("/data/Exchange_Rate_Report_2022.csv")
	assert.True(t, ok)
	assert.Equal(t, 2022, y)

	_, ok = csvsource.YearFromFilename("rates.csv")
	assert.False(t, ok)
}

func TestRead_KeepsGapsAndDropsUnlabelledColumns(t *testing.T) {
	table, err := csvsource.Read(strings.NewReader(report2012), "r.csv")
	require.NoError(t, err)

	assert.Equal(t, []string{"EUR", "USD"}, table.Codes)
	require.Equal(t, 3, table.Len())
	assert.True(t, math.IsNaN(table.Values["EUR"][1]))
	assert.True(t, math.IsNaN(table.Values["USD"][2]))
}

func TestRead_BadDateIsFormatError(t *testing.T) {
	_, err := csvsource.Read(strings.NewReader("Date,(USD)\n2012/01/03,1\n"), "bad.csv")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrDataFormat)

	var dfe *apperrors.DataFormatError
	require.ErrorAs(t, err, &dfe)
	assert.Equal(t, "bad.csv", dfe.Source)
	assert.Equal(t, 2, dfe.Line)
}

func TestSource_LoadMergesAndFills(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, "Exchange_Rate_Report_2012.csv", report2012)
	writeFile(t, dir, "Exchange_Rate_Report_2013.csv", report2013)
	writeFile(t, dir, "Exchange_Rate_Report_2014.csv", "Date,(USD)\nnot-a-date,1\n")
	writeFile(t, dir, "readme.txt", "ignored")

	table, err := csvsource.NewSource(dir, nil).Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"EUR", "USD", "JPY"}, table.Codes)
	require.Equal(t, 5, table.Len())
	assert.Equal(t, []int{2012, 2013}, table.Years())

	// Forward fill inside the 2012 report.
	assert.Equal(t, 1.2945, table.Values["EUR"][1])
	assert.Equal(t, 1.0, table.Values["USD"][2])
	// Columns missing from a report are filled by the merged pass.
	assert.Equal(t, 1.2960, table.Values["EUR"][4])
	assert.InDelta(t, 87.3, table.Values["JPY"][0], 1e-9)

	raw, err := os.ReadFile(p)
	require.NoError(t, err)
	assert.Equal(t, report2012, string(raw), "files are not rewritten")
}

func TestSource_EmptyDirectory(t *testing.T) {
	table, err := csvsource.NewSource(t.TempDir(), nil).Load(context.Background())
	require.NoError(t, err)
	assert.True(t, table.IsEmpty())
}
