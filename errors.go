package paladins

import (
	"errors"
	"fmt"
)

// Fatal request errors. These are never retried past the session-recreate
// path, and indicate that the call (or the whole day's quota) cannot succeed.
var (
	// ErrUnauthorized means the developer ID or authorization key were
	// rejected by the API.
	ErrUnauthorized = errors.New("invalid developer ID or authorization key")

	// ErrUnavailable means the API is in emergency/maintenance mode and
	// returned no data.
	ErrUnavailable = errors.New("API is unavailable")

	// ErrLimitReached means the daily request limit has been exhausted.
	ErrLimitReached = errors.New("daily request limit reached")

	// ErrPrivate means the requested profile has its privacy flag set.
	ErrPrivate = errors.New("player profile is private")
)

// errInvalidSession is an internal sentinel used to trigger a session
// recreate and retry of the same call. It never escapes the transport.
var errInvalidSession = errors.New("invalid session id")

// HTTPError wraps a transport or protocol level failure, after all retries
// have been exhausted. Unwrap exposes the original cause.
type HTTPError struct {
	// Status is the HTTP status code, or 0 when the request never
	// completed (connection or timeout errors).
	Status int
	cause  error
}

func newHTTPError(status int, cause error) *HTTPError {
	return &HTTPError{Status: status, cause: cause}
}

func (e *HTTPError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("request failed: %v", e.cause)
	}
	return fmt.Sprintf("request failed with status %d", e.Status)
}

func (e *HTTPError) Unwrap() error {
	return e.cause
}

// PrivateError means a looked-up profile has its privacy flag set. When the
// API leaked enough information, Player carries a private PartialPlayer that
// can still be compared against other players. Unwraps to ErrPrivate.
type PrivateError struct {
	Player *PartialPlayer
}

func (e *PrivateError) Error() string {
	return ErrPrivate.Error()
}

func (e *PrivateError) Unwrap() error {
	return ErrPrivate
}

// NotFoundError means the requested entity is absent upstream.
type NotFoundError struct {
	// Entity names what was being looked up, e.g. "Player" or "Match".
	Entity string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found", e.Entity)
}

func notFound(entity string) *NotFoundError {
	return &NotFoundError{Entity: entity}
}

// IsNotFound reports whether err is (or wraps) a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}
