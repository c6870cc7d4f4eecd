package execution

import "fmt"

// UnsupportedLanguageError is returned before any network call when the
// language has no pinned runtime.
type UnsupportedLanguageError struct {
	Language string
}

func (e *UnsupportedLanguageError) Error() string {
	return fmt.Sprintf("language %q is not supported for execution", e.Language)
}

func (e *UnsupportedLanguageError) UnsupportedLanguage() bool { return true }

// RequestError means the request could not be built or encoded.
type RequestError struct {
	Cause error
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("could not build execution request: %v", e.Cause)
}

func (e *RequestError) Unwrap() error   { return e.Cause }
func (e *RequestError) Transport() bool { return true }

// NoResponseError means the service could not be reached.
type NoResponseError struct {
	Cause error
}

func (e *NoResponseError) Error() string {
	return fmt.Sprintf("no response from execution service: %v", e.Cause)
}

func (e *NoResponseError) Unwrap() error   { return e.Cause }
func (e *NoResponseError) Transport() bool { return true }

// StatusError means the service answered with a non-2xx status.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("execution service responded with status %d", e.StatusCode)
	}
	return fmt.Sprintf("execution service responded with status %d: %s", e.StatusCode, e.Message)
}

func (e *StatusError) Transport() bool { return true }

// DecodeError means the response body was not a valid result.
type DecodeError struct {
	Cause error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("invalid response from execution service: %v", e.Cause)
}

func (e *DecodeError) Unwrap() error   { return e.Cause }
func (e *DecodeError) Transport() bool { return true }
