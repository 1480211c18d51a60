// Package export writes rate series to spreadsheet workbooks.
package export

import (
	"bytes"
	"fmt"
	"math"
	"time"

	"github.com/SscSPs/currency_exchange_tracker/internal/core/domain"
	"github.com/xuri/excelize/v2"
)

// SheetName is the worksheet holding the series.
const SheetName = "Series"

// Workbook renders t as an XLSX file with one row per date. The first column
// holds the date as text and each currency follows in table order. Missing
// values are left blank.
func Workbook(t domain.RateTable) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	header := make([]interface{}, 0, len(t.Codes)+1)
	header = append(header, domain.DateColumn)
	for _, c := range t.Codes {
		header = append(header, c)
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return nil, fmt.Errorf("failed to write header: %w", err)
	}

	for i, d := range t.Dates {
		row := make([]interface{}, 0, len(t.Codes)+1)
		row = append(row, d.Format(time.DateOnly))
		for _, c := range t.Codes {
			v := t.Values[c][i]
			if math.IsNaN(v) {
				row = append(row, nil)
				continue
			}
			row = append(row, v)
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
