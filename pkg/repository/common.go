package repository

import (
	"context"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/go-pkgz/repeater/v2"
)

var (
	// ErrNotFound is returned when the requested record does not exist
	ErrNotFound = errors.New("not found")
	// ErrConflict is returned when a record changed since it was read, or a unique key is taken
	ErrConflict = errors.New("conflict")
)

// errNotRetryable stops the lock retry loop
var errNotRetryable = errors.New("not retryable")

// withLockRetry runs fn, retrying with backoff while sqlite reports a lock.
// Any other error stops the loop and is returned as is.
func withLockRetry(ctx context.Context, fn func() error) error {
	var last error
	retrier := repeater.NewBackoff(5, 50*time.Millisecond, repeater.WithMaxDelay(2*time.Second))
	err := retrier.Do(ctx, func() error {
		last = fn()
		if last != nil && !isLockError(last) {
			return errNotRetryable
		}
		return last
	}, errNotRetryable)
	if err != nil && last != nil {
		return last
	}
	return err
}

// isLockError checks if an error is a SQLite lock/busy error
func isLockError(err error) bool {
	if err == nil {
		return false
	}
	errStr := err.Error()
	return strings.Contains(errStr, "SQLITE_BUSY") ||
		strings.Contains(errStr, "database is locked") ||
		strings.Contains(errStr, "database table is locked")
}

// isUniqueError checks if an error is a unique constraint violation
func isUniqueError(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// stringsSQL is a JSON array of strings for SQL operations
type stringsSQL []string

// Value implements driver.Valuer for database storage
func (s stringsSQL) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	data, err := json.Marshal([]string(s))
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// Scan implements sql.Scanner for database retrieval
func (s *stringsSQL) Scan(value any) error {
	var data []byte
	switch v := value.(type) {
	case nil:
		*s = stringsSQL{}
		return nil
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		*s = stringsSQL{}
		return nil
	}
	return json.Unmarshal(data, (*[]string)(s))
}
