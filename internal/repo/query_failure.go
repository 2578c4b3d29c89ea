package repo

import (
	"errors"
	"fmt"
)

var (
	// ErrQueryFailure matches any *QueryFailure via errors.Is.
	ErrQueryFailure = errors.New("query failed")

	// ErrEpidemicNotFound means the query ran but matched no epidemic.
	ErrEpidemicNotFound = errors.New("epidemic not found")
)

// QueryFailure is returned when the store rejects or cannot execute a query.
type QueryFailure struct {
	Op  string
	Err error
}

func (e *QueryFailure) Error() string {
	return fmt.Sprintf("%s query failed: %v", e.Op, e.Err)
}

func (e *QueryFailure) Unwrap() error {
	return e.Err
}

func (e *QueryFailure) Is(target error) bool {
	return target == ErrQueryFailure
}
