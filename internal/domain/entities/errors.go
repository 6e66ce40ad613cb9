package entities

import (
	"context"
	"errors"
	"fmt"
	"net"
)

var (
	ErrNotFound             = errors.New("not found")
	ErrQuoteRequestNotFound = fmt.Errorf("quote request %w", ErrNotFound)
	ErrQuoteNotFound        = fmt.Errorf("quote %w", ErrNotFound)
	ErrContractNotFound     = fmt.Errorf("contract %w", ErrNotFound)

	ErrInvalidTransition      = errors.New("invalid transition")
	ErrEnvelopeCreationFailed = errors.New("envelope creation failed")
)

// InvalidTransitionError is returned when a compare-and-set transition is
// rejected, either because the edge is not allowed or because the stored
// status no longer matches the expected one.
type InvalidTransitionError struct {
	Kind    EntityKind
	ID      string
	From    string
	To      string
	Current string
}

func (e *InvalidTransitionError) Error() string {
	if e.Current != "" && e.Current != e.From {
		return fmt.Sprintf("invalid transition %s %s: expected %s, found %s (to %s)", e.Kind, e.ID, e.From, e.Current, e.To)
	}
	return fmt.Sprintf("invalid transition %s %s: %s -> %s", e.Kind, e.ID, e.From, e.To)
}

func (e *InvalidTransitionError) Is(target error) bool {
	return target == ErrInvalidTransition
}

// ExternalServiceError wraps network and HTTP failures from the CRM or the
// e-signature provider. It is always retryable.
type ExternalServiceError struct {
	System     ExternalSystem
	Operation  string
	StatusCode int
	Err        error
}

func (e *ExternalServiceError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s.%s: status %d: %v", e.System, e.Operation, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s.%s: %v", e.System, e.Operation, e.Err)
}

func (e *ExternalServiceError) Unwrap() error { return e.Err }

func (e *ExternalServiceError) Retryable() bool { return true }

// Timeout reports whether the call ran out of time. A timeout says nothing
// about whether the remote side applied the operation.
func (e *ExternalServiceError) Timeout() bool {
	if errors.Is(e.Err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(e.Err, &ne) && ne.Timeout()
}

func NewExternalServiceError(system ExternalSystem, op string, statusCode int, err error) *ExternalServiceError {
	return &ExternalServiceError{System: system, Operation: op, StatusCode: statusCode, Err: err}
}

// ArchiveError is a document store failure. The contract stays untouched so
// a later delivery or reconciliation pass can retry.
type ArchiveError struct {
	Bucket string
	Key    string
	Err    error
}

func (e *ArchiveError) Error() string {
	return fmt.Sprintf("archive %s/%s: %v", e.Bucket, e.Key, e.Err)
}

func (e *ArchiveError) Unwrap() error { return e.Err }

func (e *ArchiveError) Retryable() bool { return true }

// DataQualityError reports an external field that is missing or cannot be
// parsed. It never blocks the surrounding transition.
type DataQualityError struct {
	Field  string
	Value  string
	Reason string
}

func (e *DataQualityError) Error() string {
	if e.Value != "" {
		return fmt.Sprintf("data quality: %s=%q: %s", e.Field, e.Value, e.Reason)
	}
	return fmt.Sprintf("data quality: %s: %s", e.Field, e.Reason)
}

type ErrorClass string

const (
	ErrorClassNone              ErrorClass = ""
	ErrorClassNotFound          ErrorClass = "not_found"
	ErrorClassInvalidTransition ErrorClass = "invalid_transition"
	ErrorClassExternalService   ErrorClass = "external_service"
	ErrorClassArchive           ErrorClass = "archive"
	ErrorClassDataQuality       ErrorClass = "data_quality"
	ErrorClassInternal          ErrorClass = "internal"
)

func ClassifyError(err error) ErrorClass {
	if err == nil {
		return ErrorClassNone
	}
	var (
		ese *ExternalServiceError
		ae  *ArchiveError
		dqe *DataQualityError
	)
	switch {
	case errors.Is(err, ErrNotFound):
		return ErrorClassNotFound
	case errors.Is(err, ErrInvalidTransition):
		return ErrorClassInvalidTransition
	case errors.As(err, &ae):
		return ErrorClassArchive
	case errors.As(err, &dqe):
		return ErrorClassDataQuality
	case errors.As(err, &ese), errors.Is(err, ErrEnvelopeCreationFailed):
		return ErrorClassExternalService
	default:
		return ErrorClassInternal
	}
}

// IsRetryable reports whether orchestration code may retry the operation.
func IsRetryable(err error) bool {
	var r interface{ Retryable() bool }
	return errors.As(err, &r) && r.Retryable()
}
