package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"time"
)

// ErrorType represents the type of error
type ErrorType string

const (
	// ErrorTypeInvalidURL represents a product URL outside the upstream domain
	ErrorTypeInvalidURL ErrorType = "invalid_url"
	// ErrorTypeUpstreamFetch represents a failed or non-success upstream request
	ErrorTypeUpstreamFetch ErrorType = "upstream_fetch"
	// ErrorTypeModelNotFound represents a missing embedded script model
	ErrorTypeModelNotFound ErrorType = "model_not_found"
	// ErrorTypeProductModelMissing represents a product page without its model
	ErrorTypeProductModelMissing ErrorType = "product_model_missing"
	// ErrorTypeUnauthorized represents a missing or unknown API key
	ErrorTypeUnauthorized ErrorType = "unauthorized"
	// ErrorTypeParsing represents HTML or JSON parsing errors
	ErrorTypeParsing ErrorType = "parsing"
	// ErrorTypeValidation represents request validation errors
	ErrorTypeValidation ErrorType = "validation"
	// ErrorTypePublisher represents publisher-related errors
	ErrorTypePublisher ErrorType = "publisher"
	// ErrorTypeConfiguration represents configuration errors
	ErrorTypeConfiguration ErrorType = "configuration"
)

// APIError represents an error raised while answering an API request
type APIError struct {
	Type    ErrorType
	Source  string
	Message string
	Err     error
	Time    time.Time
}

// Error implements the error interface
func (e *APIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %s - %v", e.Type, e.Source, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s: %s", e.Type, e.Source, e.Message)
}

// Unwrap returns the underlying error
func (e *APIError) Unwrap() error {
	return e.Err
}

// StatusCode maps the error type to the HTTP status returned to clients
func (e *APIError) StatusCode() int {
	switch e.Type {
	case ErrorTypeInvalidURL, ErrorTypeValidation:
		return http.StatusBadRequest
	case ErrorTypeUnauthorized:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// New creates a new APIError
func New(errType ErrorType, source, message string, err error) *APIError {
	return &APIError{
		Type:    errType,
		Source:  source,
		Message: message,
		Err:     err,
		Time:    time.Now(),
	}
}

// NewInvalidURL creates a new invalid URL error
func NewInvalidURL(source, rawURL string) *APIError {
	return New(ErrorTypeInvalidURL, source, fmt.Sprintf("invalid url %q", rawURL), nil)
}

// NewUpstreamFetch creates a new upstream fetch error
func NewUpstreamFetch(source, message string, err error) *APIError {
	return New(ErrorTypeUpstreamFetch, source, message, err)
}

// NewModelNotFound creates a new missing embedded model error
func NewModelNotFound(source, variable string) *APIError {
	return New(ErrorTypeModelNotFound, source, fmt.Sprintf("%s not found on the page", variable), nil)
}

// NewProductModelMissing creates a new missing product model error
func NewProductModelMissing(source string, err error) *APIError {
	return New(ErrorTypeProductModelMissing, source, "product model not found on the page", err)
}

// NewUnauthorized creates a new unauthorized access error
func NewUnauthorized(source string) *APIError {
	return New(ErrorTypeUnauthorized, source, "unauthorized access", nil)
}

// NewParsing creates a new parsing error
func NewParsing(source, message string, err error) *APIError {
	return New(ErrorTypeParsing, source, message, err)
}

// NewValidation creates a new validation error
func NewValidation(source, message string) *APIError {
	return New(ErrorTypeValidation, source, message, nil)
}

// NewPublisher creates a new publisher error
func NewPublisher(source, message string, err error) *APIError {
	return New(ErrorTypePublisher, source, message, err)
}

// NewConfiguration creates a new configuration error
func NewConfiguration(message string, err error) *APIError {
	return New(ErrorTypeConfiguration, "", message, err)
}

// Is reports whether any error in err's chain is an APIError of the given type
func Is(err error, errType ErrorType) bool {
	var apiErr *APIError
	if stderrors.As(err, &apiErr) {
		return apiErr.Type == errType
	}
	return false
}

// StatusCode returns the HTTP status for err, 500 for untyped errors
func StatusCode(err error) int {
	var apiErr *APIError
	if stderrors.As(err, &apiErr) {
		return apiErr.StatusCode()
	}
	return http.StatusInternalServerError
}
