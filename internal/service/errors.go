package service

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by single-entity lookups when nothing matches.
// Listing and search operations never return it.
var ErrNotFound = errors.New("not found")

// DataSourceError reports that the backing store was unreachable or rejected
// a query. Op names the service operation that failed.
type DataSourceError struct {
	Op  string
	Err error
}

func (e *DataSourceError) Error() string {
	return fmt.Sprintf("%s: data source error: %v", e.Op, e.Err)
}

func (e *DataSourceError) Unwrap() error {
	return e.Err
}

func dataSourceError(op string, err error) error {
	return &DataSourceError{Op: op, Err: err}
}

// IsDataSourceError reports whether err wraps a DataSourceError.
func IsDataSourceError(err error) bool {
	var dse *DataSourceError
	return errors.As(err, &dse)
}
