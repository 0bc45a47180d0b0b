package state

import (
	"errors"
	"fmt"
)

// ErrNewerSchema means the database was migrated by a newer release.
var ErrNewerSchema = errors.New("database schema is newer than this tidypass")

// DBError records an error and the operation and database file that caused it.
type DBError struct {
	Err  error
	Op   string
	Path string
}

func (e *DBError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *DBError) Unwrap() error {
	return e.Err
}

// NewDBError creates a new DBError
func NewDBError(op, path string, err error) *DBError {
	return &DBError{
		Op:   op,
		Path: path,
		Err:  err,
	}
}
