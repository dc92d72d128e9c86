package apperrors

import "errors"

// Common errors
var (
	// Transport and response errors
	ErrTransport = errors.New("request transport failed")
	ErrStatus    = errors.New("unexpected response status")
	ErrDecode    = errors.New("failed to decode response body")

	// Authentication errors
	ErrNotAuthenticated   = errors.New("not authenticated")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid token")

	// Resource errors
	ErrResourceNotFound = errors.New("resource not found")
	ErrConflict         = errors.New("conflict")
	ErrBadRequest       = errors.New("bad request")

	// Authorization errors
	ErrPermissionDenied = errors.New("permission denied")
)

// Is returns whether target matches err or any of the errors in errList
func Is(err, target error, errList ...error) bool {
	if errors.Is(err, target) {
		return true
	}

	for _, e := range errList {
		if errors.Is(err, e) {
			return true
		}
	}

	return false
}
