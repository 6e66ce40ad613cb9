package usecase

import (
	"context"
	"errors"
	"time"

	"salespipeline/internal/domain/entities"
)

var (
	ErrInvalidID                = errors.New("invalid id")
	ErrInvalidQuoteRequestInput = errors.New("invalid quote request input")
	ErrInvalidAssignee          = errors.New("invalid assignee")
	ErrInvalidLineItems         = errors.New("invalid line items")
	ErrQuotePricingLocked       = errors.New("quote pricing is locked")
	ErrQuoteAlreadyContracted   = errors.New("quote already contracted")
	ErrInvalidSigner            = errors.New("invalid signer")
	ErrInvalidTemplateID        = errors.New("invalid template id")
	ErrSignedWithoutDocument    = errors.New("signed contract requires an archived document")
)

// Clock returns the current time. Use cases take one so tests can pin time.
type Clock func() time.Time

func systemClock() time.Time { return time.Now().UTC() }

// DefaultExternalCallTimeout bounds every CRM, e-signature and document store call.
const DefaultExternalCallTimeout = 15 * time.Second

func withCallTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		d = DefaultExternalCallTimeout
	}
	return context.WithTimeout(ctx, d)
}

func auditEntry(kind entities.EntityKind, id string, system entities.ExternalSystem, op string, dir entities.SyncDirection, err error) entities.SyncAuditEntry {
	e := entities.SyncAuditEntry{
		EntityKind:     kind,
		EntityID:       id,
		ExternalSystem: system,
		Operation:      op,
		Direction:      dir,
		Outcome:        entities.SyncOutcomeSuccess,
	}
	if err != nil {
		e.Outcome = entities.SyncOutcomeError
		e.ErrorClass = entities.ClassifyError(err)
		e.ErrorDetail = err.Error()
	}
	return e
}

// auditNote records a successful attempt that still deserves an operator note.
func auditNote(kind entities.EntityKind, id string, system entities.ExternalSystem, op string, dir entities.SyncDirection, note string) entities.SyncAuditEntry {
	e := auditEntry(kind, id, system, op, dir, nil)
	e.ErrorDetail = note
	return e
}
