package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrMissingColumn indicates that a requested currency code is not a column of the loaded rate table.
var ErrMissingColumn = errors.New("currency column not available")

// ErrMissingTemporalIndex indicates that a rate table has values but no date axis.
var ErrMissingTemporalIndex = errors.New("missing temporal index")

// ErrInsufficientData indicates that there are not enough observations to compute a result.
var ErrInsufficientData = errors.New("insufficient data")

// ErrRateUnavailable indicates that a rate provider could not supply a quote.
var ErrRateUnavailable = errors.New("rate unavailable")

// ErrDataFormat indicates that a source file could not be parsed.
var ErrDataFormat = errors.New("data format error")

// MissingColumnError names the currency column that was requested but not found.
type MissingColumnError struct {
	Column string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("%s: %s", ErrMissingColumn.Error(), e.Column)
}

// Is lets errors.Is(err, ErrMissingColumn) match.
func (e *MissingColumnError) Is(target error) bool {
	return target == ErrMissingColumn
}

// NewMissingColumnError creates a MissingColumnError for the given column.
func NewMissingColumnError(column string) error {
	return &MissingColumnError{Column: column}
}

// DataFormatError describes a source that failed to parse.
type DataFormatError struct {
	Source string
	Line   int
	Err    error
}

func (e *DataFormatError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s: %s line %d: %v", ErrDataFormat.Error(), e.Source, e.Line, e.Err)
	}
	return fmt.Sprintf("%s: %s: %v", ErrDataFormat.Error(), e.Source, e.Err)
}

func (e *DataFormatError) Unwrap() error { return e.Err }

// Is lets errors.Is(err, ErrDataFormat) match.
func (e *DataFormatError) Is(target error) bool {
	return target == ErrDataFormat
}

// NewValidationError wraps a message with ErrValidation.
func NewValidationError(msg string) error {
	return fmt.Errorf("%w: %s", ErrValidation, msg)
}

// NewNotFoundError wraps a message with ErrNotFound.
func NewNotFoundError(msg string) error {
	return fmt.Errorf("%w: %s", ErrNotFound, msg)
}
