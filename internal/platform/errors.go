package platform

import "errors"

// PlatformError is a custom error type for failures reported by the chat platform
type PlatformError string

// Error implements the error interface
func (e PlatformError) Error() string {
	return string(e)
}

// Define errors
const (
	// ErrNotFound means the addressed object does not exist
	ErrNotFound PlatformError = "platform object not found"

	// ErrResourceQuota means the platform refused to create more objects
	ErrResourceQuota PlatformError = "platform resource quota reached"

	// ErrTransient means the request may succeed if attempted later
	ErrTransient PlatformError = "transient platform error"
)

// IsNotFound reports whether err is, or wraps, ErrNotFound
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
