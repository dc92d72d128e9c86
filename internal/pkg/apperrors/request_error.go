package apperrors

import "fmt"

// RequestError represents a failed API call with additional context
type RequestError struct {
	Err        error
	Operation  string
	Endpoint   string
	StatusCode int
	Body       string
}

// Error implements error interface
func (e *RequestError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s %s: status %d: %v", e.Operation, e.Endpoint, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Operation, e.Endpoint, e.Err)
}

// Unwrap implements errors.Unwrap interface
func (e *RequestError) Unwrap() error {
	return e.Err
}

// NewTransportError creates a RequestError for a failed transport attempt
func NewTransportError(operation, endpoint string, cause error) *RequestError {
	return &RequestError{
		Err:       fmt.Errorf("%w: %v", ErrTransport, cause),
		Operation: operation,
		Endpoint:  endpoint,
	}
}

// NewStatusError creates a RequestError for a non-2xx response
func NewStatusError(operation, endpoint string, status int, body string) *RequestError {
	return &RequestError{
		Err:        ErrStatus,
		Operation:  operation,
		Endpoint:   endpoint,
		StatusCode: status,
		Body:       body,
	}
}

// NewDecodeError creates a RequestError for an undecodable response body
func NewDecodeError(operation, endpoint string, cause error) *RequestError {
	return &RequestError{
		Err:       fmt.Errorf("%w: %v", ErrDecode, cause),
		Operation: operation,
		Endpoint:  endpoint,
	}
}
