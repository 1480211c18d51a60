package apperrors_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/SscSPs/currency_exchange_tracker/internal/apperrors"
	"github.com/stretchr/testify/assert"
)

func TestMissingColumnError_MatchesSentinel(t *testing.T) {
	err := fmt.Errorf("resample: %w", apperrors.NewMissingColumnError("XYZ"))

	assert.ErrorIs(t, err, apperrors.ErrMissingColumn)
	assert.Contains(t, err.Error(), "XYZ")

	var mce *apperrors.MissingColumnError
	assert.True(t, errors.As(err, &mce))
	assert.Equal(t, "XYZ", mce.Column)
}

func TestDataFormatError_UnwrapsCause(t *testing.T) {
	cause := errors.New("bad date")
	err := &apperrors.DataFormatError{Source: "rates_2022.csv", Line: 4, Err: cause}

	assert.ErrorIs(t, err, apperrors.ErrDataFormat)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "line 4")
}

func TestNewValidationError(t *testing.T) {
	err := apperrors.NewValidationError("weights must sum to 100")
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	assert.NotErrorIs(t, err, apperrors.ErrNotFound)
}
