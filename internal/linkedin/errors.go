package linkedin

import (
	"errors"
	"fmt"
)

// ErrNoIdentity is returned when publishing before the profile was fetched
var ErrNoIdentity = errors.New("member identity not fetched")

// StatusError reports an unexpected HTTP status from the API
type StatusError struct {
	Op         string
	StatusCode int
	Body       []byte
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: unexpected status %d: %s", e.Op, e.StatusCode, string(e.Body))
}
