package library

import (
	"errors"

	"github.com/mmcdole/dex/internal/domain"
)

// User-facing messages, one per error category
const (
	MessageInvalidURL = "Invalid URL."
	MessageNetwork    = "Network error."
	MessageDecoding   = "Decoding error."
	MessageUnknown    = "Unknown error."
)

// ErrorMessage maps err to its user-facing message. Cancellation is not a
// failure and yields "".
func ErrorMessage(err error) string {
	switch {
	case err == nil, domain.IsCanceled(err):
		return ""
	case errors.Is(err, domain.ErrInvalidURL):
		return MessageInvalidURL
	case errors.Is(err, domain.ErrNetwork):
		return MessageNetwork
	case errors.Is(err, domain.ErrDecoding):
		return MessageDecoding
	default:
		return MessageUnknown
	}
}
