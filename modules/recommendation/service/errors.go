package service

import (
	"errors"
	"fmt"
)

// DataUnavailableError means no fresh snapshot could be fetched and no
// usable stale one was allowed or present.
type DataUnavailableError struct {
	Date  string
	Cause error
}

func (e *DataUnavailableError) Error() string {
	return fmt.Sprintf("directory data unavailable for %s: %v", e.Date, e.Cause)
}

func (e *DataUnavailableError) Unwrap() error {
	return e.Cause
}

func IsDataUnavailable(err error) bool {
	var target *DataUnavailableError
	return errors.As(err, &target)
}
