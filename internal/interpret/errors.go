// Package interpret turns a free-text project description into a
// models.ProjectConfig by asking a language model, either through the forge
// proxy or by calling the Anthropic Messages API directly.
package interpret

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors for interpretation.
var (
	// ErrEmptyDescription indicates a blank description was given.
	ErrEmptyDescription = errors.New("project description is required")

	// ErrMalformedJSON indicates the model reply was not valid JSON.
	ErrMalformedJSON = errors.New("failed to parse JSON from interpreter")

	// ErrInvalidConfig indicates the reply parsed but does not describe a
	// valid project configuration.
	ErrInvalidConfig = errors.New("invalid configuration from interpreter")

	// ErrService indicates the interpreter service failed or was unreachable.
	ErrService = errors.New("interpreter service error")

	// ErrQuotaExceeded indicates the service refused the request with 429.
	ErrQuotaExceeded = errors.New("interpreter quota exceeded")

	// ErrEmptyResponse indicates the reply carried no content blocks.
	ErrEmptyResponse = errors.New("empty response from interpreter")

	// ErrUnexpectedResponse indicates the first content block is not text
	// or the reply envelope could not be decoded.
	ErrUnexpectedResponse = errors.New("unexpected response from interpreter")

	// ErrMissingAPIKey indicates direct mode was selected without a key.
	ErrMissingAPIKey = errors.New("ANTHROPIC_API_KEY is required for direct interpretation, export ANTHROPIC_API_KEY=your-key")
)

// ServiceError is a non-2xx reply from the interpreter service.
type ServiceError struct {
	StatusCode int
	Message    string
}

// Error implements the error interface.
func (e *ServiceError) Error() string {
	if e.StatusCode == http.StatusTooManyRequests {
		msg := "Rate limit exceeded"
		if e.Message != "" {
			msg = e.Message
		}
		return fmt.Sprintf("%s (run forge without --from-prompt to use the interactive flow)", msg)
	}
	if e.Message == "" {
		return fmt.Sprintf("interpreter service error: HTTP %d", e.StatusCode)
	}
	return fmt.Sprintf("interpreter service error: HTTP %d: %s", e.StatusCode, e.Message)
}

// Is reports ErrService for every status and ErrQuotaExceeded for 429.
func (e *ServiceError) Is(target error) bool {
	switch target {
	case ErrService:
		return true
	case ErrQuotaExceeded:
		return e.StatusCode == http.StatusTooManyRequests
	}
	return false
}
