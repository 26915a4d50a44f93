package models

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound indicates no requirement row matches the subcategory.
	ErrNotFound = errors.New("requirement row not found")
	// ErrSchemaMismatch indicates two requirement tables do not line up.
	ErrSchemaMismatch = errors.New("requirement table schema mismatch")
	// ErrNoWeightClasses indicates no requirement tables were loaded.
	ErrNoWeightClasses = errors.New("no weight classes available")
	// ErrUnauthenticated indicates the caller's session has not passed the password gate.
	ErrUnauthenticated = errors.New("session not authenticated")
	// ErrInvalidWeight indicates a non-positive target weight.
	ErrInvalidWeight = errors.New("target weight must be positive")
)

// DataLoadError reports reference data that could not be read or parsed.
type DataLoadError struct {
	Source string
	Err    error
}

func (e *DataLoadError) Error() string {
	return fmt.Sprintf("load %s: %v", e.Source, e.Err)
}

func (e *DataLoadError) Unwrap() error {
	return e.Err
}

// NewDataLoadError wraps err as a DataLoadError for source.
func NewDataLoadError(source string, err error) error {
	return &DataLoadError{Source: source, Err: err}
}

// IsDataLoadError reports whether err carries a DataLoadError.
func IsDataLoadError(err error) bool {
	var target *DataLoadError
	return errors.As(err, &target)
}
