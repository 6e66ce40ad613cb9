package usecase

import (
	"context"
	"log"
	"sync/atomic"
	"time"

	"salespipeline/internal/domain/entities"
	"salespipeline/internal/usecase/interfaces"

	"github.com/google/uuid"
)

const auditWriteTimeout = 5 * time.Second

// ISyncAuditLog records every sync attempt.
//
// Record never fails from the caller's point of view: a lost audit entry is
// less harmful than aborting the business operation that produced it.
type ISyncAuditLog interface {
	Record(ctx context.Context, e entities.SyncAuditEntry)
	List(ctx context.Context, filter entities.AuditFilter) ([]entities.SyncAuditEntry, error)
}

type SyncAuditLog struct {
	repo     interfaces.IAuditLogRepository
	now      Clock
	failures atomic.Int64
}

var _ ISyncAuditLog = (*SyncAuditLog)(nil)

func NewSyncAuditLog(repo interfaces.IAuditLogRepository) *SyncAuditLog {
	return &SyncAuditLog{repo: repo, now: systemClock}
}

func (l *SyncAuditLog) WithClock(c Clock) *SyncAuditLog {
	l.now = c
	return l
}

func (l *SyncAuditLog) Record(ctx context.Context, e entities.SyncAuditEntry) {
	defer func() {
		if r := recover(); r != nil {
			l.failures.Add(1)
			log.Printf("[audit] record panicked op=%s entity=%s/%s recovered=%v", e.Operation, e.EntityKind, e.EntityID, r)
		}
	}()

	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = l.now()
	}
	if l.repo == nil {
		l.failures.Add(1)
		log.Printf("[audit] repository not configured; dropping entry op=%s entity=%s/%s outcome=%s", e.Operation, e.EntityKind, e.EntityID, e.Outcome)
		return
	}

	// The entry must survive a cancelled request context.
	wctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), auditWriteTimeout)
	defer cancel()
	if err := l.repo.Append(wctx, e); err != nil {
		l.failures.Add(1)
		log.Printf("[audit] append failed op=%s entity=%s/%s outcome=%s err=%v", e.Operation, e.EntityKind, e.EntityID, e.Outcome, err)
		return
	}
	if e.Outcome == entities.SyncOutcomeError {
		log.Printf("[audit] %s %s/%s system=%s class=%s detail=%q", e.Operation, e.EntityKind, e.EntityID, e.ExternalSystem, e.ErrorClass, e.ErrorDetail)
	}
}

func (l *SyncAuditLog) List(ctx context.Context, filter entities.AuditFilter) ([]entities.SyncAuditEntry, error) {
	if l.repo == nil {
		return nil, nil
	}
	return l.repo.List(ctx, filter)
}

// Failures is the number of entries that could not be persisted.
func (l *SyncAuditLog) Failures() int64 {
	return l.failures.Load()
}
