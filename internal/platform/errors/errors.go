package errors

// Domain is the error domain for Constellation errors.
const Domain = "github.com/louisbranch/constellation"

// Error is the domain error type with structured metadata.
type Error struct {
	Code     Code              // Machine-readable error code
	Message  string            // Internal message (for logs/telemetry)
	Metadata map[string]string // Additional context for callers
	Cause    error             // Wrapped underlying error
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Message
}

// Unwrap returns the underlying cause for error chain traversal.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error by code.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Code == t.Code
	}
	return false
}

// New creates a simple domain error with a code and message.
func New(code Code, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
	}
}

// WithMetadata creates a domain error with metadata for caller context.
func WithMetadata(code Code, message string, metadata map[string]string) *Error {
	return &Error{
		Code:     code,
		Message:  message,
		Metadata: metadata,
	}
}

// Wrap creates a domain error that wraps an underlying cause.
func Wrap(code Code, message string, cause error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// CodeOf extracts the domain code from an error chain, or CodeUnknown when
// the chain carries no domain error.
func CodeOf(err error) Code {
	for err != nil {
		if domainErr, ok := err.(*Error); ok {
			return domainErr.Code
		}
		unwrapper, ok := err.(interface{ Unwrap() error })
		if !ok {
			return CodeUnknown
		}
		err = unwrapper.Unwrap()
	}
	return CodeUnknown
}
