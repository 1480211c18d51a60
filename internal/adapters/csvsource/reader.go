// Package csvsource reads yearly exchange-rate reports from CSV files.
//
// A report has a Date column followed by one column per currency whose header
// carries the ISO code in parentheses, e.g. "U.S. dollar   (USD)".
package csvsource

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/SscSPs/currency_exchange_tracker/internal/apperrors"
	"github.com/SscSPs/currency_exchange_tracker/internal/core/domain"
)

// DateLayouts are tried in order when parsing the Date column.
var DateLayouts = []string{"2-Jan-06", "02-Jan-06", "2006-01-02"}

var (
	codeInHeader = regexp.MustCompile(`\(([A-Za-z]{3})\)`)
	bareCode     = regexp.MustCompile(`^[A-Z]{3}$`)
	yearSuffix   = regexp.MustCompile(`_(\d{4})\.csv$`)
)

// missingTokens are cell values read as "no observation".
var missingTokens = map[string]struct{}{
	"": {}, "NULL": {}, "null": {}, "NaN": {}, "nan": {}, "-": {}, "NA": {}, "N/A": {},
}

// Header describes the columns of a report.
type Header struct {
	// Codes holds the currency code of each column, "" for dropped columns.
	// Index 0 is always the date column.
	Codes []string
}

// Currencies returns the currency codes kept from the header, in column order.
func (h Header) Currencies() []string {
	var out []string
	for _, c := range h.Codes[1:] {
		if c != "" {
			out = append(out, c)
		}
	}
	return out
}

// ParseHeader maps raw header labels to currency codes. The first column is
// the date axis. A label without a code is dropped, as is a repeated code.
func ParseHeader(labels []string) (Header, error) {
	if len(labels) < 2 {
		return Header{}, errors.New("header needs a date column and at least one currency")
	}
	h := Header{Codes: make([]string, len(labels))}
	h.Codes[0] = domain.DateColumn
	seen := map[string]struct{}{}
	for i, raw := range labels[1:] {
		code := CodeFromLabel(raw)
		if code == "" {
			continue
		}
		if _, dup := seen[code]; dup {
			continue
		}
		seen[code] = struct{}{}
		h.Codes[i+1] = code
	}
	if len(seen) == 0 {
		return Header{}, errors.New("no currency codes found in header")
	}
	return h, nil
}

// CodeFromLabel extracts the three-letter code of a header label, or "".
func CodeFromLabel(label string) string {
	label = strings.TrimSpace(strings.TrimPrefix(label, "\ufeff"))
	if m := codeInHeader.FindStringSubmatch(label); m != nil {
		return strings.ToUpper(m[1])
	}
	if bareCode.MatchString(label) {
		return label
	}
	return ""
}

// ParseDate parses a report date using DateLayouts.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range DateLayouts {
		if d, err := time.Parse(layout, s); err == nil {
			return domain.TruncateDay(d), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised date %q", s)
}

// ParseRate parses a numeric cell. ok is false for a missing observation.
func ParseRate(s string) (value float64, ok bool, err error) {
	s = strings.TrimSpace(s)
	if _, missing := missingTokens[s]; missing {
		return math.NaN(), false, nil
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
	if err != nil {
		return math.NaN(), false, err
	}
	return v, true, nil
}

// YearFromFilename returns the year encoded as a "_<year>.csv" suffix.
func YearFromFilename(path string) (int, bool) {
	m := yearSuffix.FindStringSubmatch(filepath.Base(path))
	if m == nil {
		return 0, false
	}
	y, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return y, true
}

// ReadFile parses one report without filling gaps.
func ReadFile(path string) (domain.RateTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return domain.RateTable{}, err
	}
	defer f.Close()
	return Read(f, filepath.Base(path))
}

// Read parses a report from r. name identifies the source in errors.
// Any malformed row fails the whole report with an *apperrors.DataFormatError.
func Read(r io.Reader, name string) (domain.RateTable, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	labels, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return domain.RateTable{}, &apperrors.DataFormatError{Source: name, Line: 1, Err: errors.New("empty file")}
	}
	if err != nil {
		return domain.RateTable{}, &apperrors.DataFormatError{Source: name, Line: 1, Err: err}
	}
	header, err := ParseHeader(labels)
	if err != nil {
		return domain.RateTable{}, &apperrors.DataFormatError{Source: name, Line: 1, Err: err}
	}

	table := domain.NewRateTable(header.Currencies()...)
	line := 1
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return domain.RateTable{}, &apperrors.DataFormatError{Source: name, Line: line, Err: err}
		}
		if blank(record) {
			continue
		}
		date, err := ParseDate(record[0])
		if err != nil {
			return domain.RateTable{}, &apperrors.DataFormatError{Source: name, Line: line, Err: err}
		}
		rates := make(map[string]float64, len(table.Codes))
		for i := 1; i < len(record) && i < len(header.Codes); i++ {
			code := header.Codes[i]
			if code == "" {
				continue
			}
			v, ok, err := ParseRate(record[i])
			if err != nil {
				return domain.RateTable{}, &apperrors.DataFormatError{
					Source: name, Line: line, Err: fmt.Errorf("column %s: %w", code, err),
				}
			}
			if ok {
				rates[code] = v
			}
		}
		table.AppendRow(date, rates)
	}
	return table, nil
}

func blank(record []string) bool {
	for _, f := range record {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}
