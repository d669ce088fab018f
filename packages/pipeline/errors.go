package pipeline

import (
	"errors"
	"fmt"

	"repoinsight/packages/githost"
)

// Code identifies a pipeline failure class. Callers branch on codes instead
// of matching error strings.
type Code string

const (
	CodeHostNotFound               Code = "HOST_NOT_FOUND"
	CodeHostAccessDenied           Code = "HOST_ACCESS_DENIED"
	CodeHostRateLimited            Code = "HOST_RATE_LIMITED"
	CodeInvalidRepositoryReference Code = "INVALID_REPOSITORY_REFERENCE"
	CodeNoFilesReadable            Code = "NO_FILES_READABLE"
	CodeSelectionFailed            Code = "SELECTION_FAILED"

	// CodePerFileAnalysisFailed is never carried by a fatal Error: a failed
	// per-file analysis degrades to placeholder text and is only logged.
	CodePerFileAnalysisFailed Code = "PER_FILE_ANALYSIS_FAILED"
)

// Error is a classified pipeline failure. It wraps the underlying cause so
// errors.Is still reaches host sentinels.
type Error struct {
	Code    Code
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// classifyHostError maps host sentinel errors onto pipeline codes. Errors that
// match no sentinel keep their original shape.
func classifyHostError(err error, message string) error {
	switch {
	case errors.Is(err, githost.ErrInvalidRepo):
		return &Error{Code: CodeInvalidRepositoryReference, Message: message, Err: err}
	case errors.Is(err, githost.ErrNotFound):
		return &Error{Code: CodeHostNotFound, Message: message, Err: err}
	case errors.Is(err, githost.ErrAccessDenied):
		return &Error{Code: CodeHostAccessDenied, Message: message, Err: err}
	case errors.Is(err, githost.ErrRateLimited):
		return &Error{Code: CodeHostRateLimited, Message: message, Err: err}
	default:
		return fmt.Errorf("%s: %w", message, err)
	}
}
