package main

import (
	"errors"
	"fmt"

	"github.com/mmcdole/dex/internal/domain"
	"github.com/mmcdole/dex/internal/library"
)

// Exit codes
const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess = 0

	// ExitGeneralError indicates an unspecified error occurred.
	ExitGeneralError = 1

	// ExitInvalidURL indicates a request URL could not be built or parsed.
	ExitInvalidURL = 2

	// ExitNetworkError indicates the API could not be reached or answered
	// with a failure status.
	ExitNetworkError = 3

	// ExitDecodingError indicates a response did not match the expected schema.
	ExitDecodingError = 4
)

func exitCode(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, domain.ErrInvalidURL):
		return ExitInvalidURL
	case errors.Is(err, domain.ErrNetwork):
		return ExitNetworkError
	case errors.Is(err, domain.ErrDecoding):
		return ExitDecodingError
	default:
		return ExitGeneralError
	}
}

// errorLine formats err for stderr. Catalog failures lead with the same
// message the TUI shows.
func errorLine(err error) string {
	if errors.Is(domain.Classify(err), domain.ErrUnknown) || domain.IsCanceled(err) {
		return fmt.Sprintf("Error: %v", err)
	}
	return fmt.Sprintf("%s (%v)", library.ErrorMessage(err), err)
}
