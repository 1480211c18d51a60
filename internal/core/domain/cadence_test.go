package domain_test

import (
	"testing"
	"time"

	"github.com/SscSPs/currency_exchange_tracker/internal/apperrors"
	"github.com/SscSPs/currency_exchange_tracker/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCadence(t *testing.T) {
	tests := map[string]domain.Cadence{
		"Daily":     domain.Daily,
		"w":         domain.Weekly,
		" monthly ": domain.Monthly,
		"Q":         domain.Quarterly,
		"annual":    domain.Yearly,
	}
	for in, want := range tests {
		got, err := domain.ParseCadence(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := domain.ParseCadence("fortnightly")
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestCadence_PeriodEnd(t *testing.T) {
	tests := []struct {
		cadence domain.Cadence
		in      time.Time
		want    time.Time
	}{
		{domain.Daily, time.Date(2023, time.June, 7, 15, 30, 0, 0, time.UTC), domain.Date(2023, time.June, 7)},
		{domain.Weekly, domain.Date(2023, time.June, 7), domain.Date(2023, time.June, 11)},
		{domain.Weekly, domain.Date(2023, time.June, 11), domain.Date(2023, time.June, 11)},
		{domain.Weekly, domain.Date(2023, time.December, 28), domain.Date(2023, time.December, 31)},
		{domain.Monthly, domain.Date(2024, time.February, 3), domain.Date(2024, time.February, 29)},
		{domain.Monthly, domain.Date(2023, time.December, 3), domain.Date(2023, time.December, 31)},
		{domain.Quarterly, domain.Date(2023, time.May, 20), domain.Date(2023, time.June, 30)},
		{domain.Quarterly, domain.Date(2023, time.November, 1), domain.Date(2023, time.December, 31)},
		{domain.Yearly, domain.Date(2023, time.March, 1), domain.Date(2023, time.December, 31)},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.cadence.PeriodEnd(tt.in), "%s %s", tt.cadence, tt.in.Format("2006-01-02"))
	}
}

func TestCadence_TextRoundTrip(t *testing.T) {
	b, err := domain.Quarterly.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "Quarterly", string(b))

	var c domain.Cadence
	require.NoError(t, c.UnmarshalText([]byte("yearly")))
	assert.Equal(t, domain.Yearly, c)
	assert.Error(t, c.UnmarshalText([]byte("hourly")))
}
