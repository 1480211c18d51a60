package dto

import (
	"fmt"
	"strings"
	"time"

	"github.com/SscSPs/currency_exchange_tracker/internal/apperrors"
	"github.com/SscSPs/currency_exchange_tracker/internal/core/domain"
)

// DateLayout is the wire format of dates in queries and responses.
const DateLayout = "2006-01-02"

// RateQueryParams are the query string parameters shared by the analysis endpoints.
type RateQueryParams struct {
	From    string `form:"from" binding:"required,currency_code"`
	To      string `form:"to" binding:"required,currency_code"`
	Year    int    `form:"year" binding:"omitempty,min=1900,max=9999"`
	Start   string `form:"start" binding:"omitempty,datetime=2006-01-02"`
	End     string `form:"end" binding:"omitempty,datetime=2006-01-02"`
	Cadence string `form:"cadence" binding:"omitempty,max=16"`
}

// ToRateQuery converts the parameters into a domain query. An empty cadence is Daily.
func (p RateQueryParams) ToRateQuery() (domain.RateQuery, error) {
	q := domain.RateQuery{
		From: strings.ToUpper(p.From),
		To:   strings.ToUpper(p.To),
		Year: p.Year,
	}
	var err error
	if p.Start != "" {
		if q.Start, err = time.Parse(DateLayout, p.Start); err != nil {
			return q, fmt.Errorf("%w: invalid start date %q", apperrors.ErrValidation, p.Start)
		}
	}
	if p.End != "" {
		if q.End, err = time.Parse(DateLayout, p.End); err != nil {
			return q, fmt.Errorf("%w: invalid end date %q", apperrors.ErrValidation, p.End)
		}
	}
	if !q.Start.IsZero() && !q.End.IsZero() && q.End.Before(q.Start) {
		return q, fmt.Errorf("%w: end date %s is before start date %s", apperrors.ErrValidation, p.End, p.Start)
	}
	if p.Cadence != "" {
		if q.Cadence, err = domain.ParseCadence(p.Cadence); err != nil {
			return q, err
		}
	}
	return q, nil
}

// formatDate renders a date, or "" for the zero time.
func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(DateLayout)
}
