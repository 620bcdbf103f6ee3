package plan

import "fmt"

// UsageError is an illegal flag combination or value. The caller should
// show usage and exit without touching the filesystem or the network.
type UsageError struct {
	Message string
}

func (e *UsageError) Error() string {
	return e.Message
}

// ResourceError is a failure to open or read a URL or payload file.
// It is always fatal: no partial plan is ever produced.
type ResourceError struct {
	Path string
	Err  error
}

func (e *ResourceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e *ResourceError) Unwrap() error {
	return e.Err
}

// ValidationError is a value or invariant violation found after the raw
// flags parsed, such as a missing payload list for POST/PUT.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field '%s': %s", e.Field, e.Message)
}
