package domain

import (
	"context"
	"errors"
)

// Sentinel errors for the data-access layer. Call sites wrap these with
// fmt.Errorf("%w: ...") so callers can classify with errors.Is.
var (
	// ErrInvalidURL indicates a request URL that is malformed or could not be built
	ErrInvalidURL = errors.New("invalid url")

	// ErrNetwork indicates a transport failure (connection, timeout, non-success status, unreadable body)
	ErrNetwork = errors.New("network error")

	// ErrDecoding indicates a payload that does not match the expected schema, or bytes that are not an image
	ErrDecoding = errors.New("decoding error")

	// ErrUnknown is the fallback for failures not raised by this module
	ErrUnknown = errors.New("unknown error")
)

// Classify returns the sentinel category of err. Untyped errors map to
// ErrUnknown. Context cancellation is returned unchanged so callers can
// tell an abandoned request apart from a failed one.
func Classify(err error) error {
	switch {
	case err == nil:
		return nil
	case IsCanceled(err):
		return err
	case errors.Is(err, ErrInvalidURL):
		return ErrInvalidURL
	case errors.Is(err, ErrNetwork):
		return ErrNetwork
	case errors.Is(err, ErrDecoding):
		return ErrDecoding
	default:
		return ErrUnknown
	}
}

// IsCanceled reports whether err is the result of the caller abandoning the request
func IsCanceled(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
