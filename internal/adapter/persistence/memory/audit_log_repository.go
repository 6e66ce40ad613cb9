package memory

import (
	"context"
	"sync"

	"salespipeline/internal/domain/entities"
	"salespipeline/internal/usecase/interfaces"
)

type AuditLogRepository struct {
	mu      sync.RWMutex
	entries []entities.SyncAuditEntry
}

var _ interfaces.IAuditLogRepository = (*AuditLogRepository)(nil)

func NewAuditLogRepository() *AuditLogRepository {
	return &AuditLogRepository{}
}

func (r *AuditLogRepository) Append(_ context.Context, e entities.SyncAuditEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, e)
	return nil
}

// List returns matching entries newest first.
func (r *AuditLogRepository) List(_ context.Context, filter entities.AuditFilter) ([]entities.SyncAuditEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]entities.SyncAuditEntry, 0)
	for i := len(r.entries) - 1; i >= 0; i-- {
		if filter.Match(r.entries[i]) {
			out = append(out, r.entries[i])
			if filter.Limit > 0 && len(out) == filter.Limit {
				break
			}
		}
	}
	return out, nil
}
