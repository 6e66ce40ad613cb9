package interfaces

import (
	"context"
	"salespipeline/internal/domain/entities"
)

// IAuditLogRepository is an append-only store for sync audit entries.
// Implementations never update or delete rows.

type IAuditLogRepository interface {
	Append(ctx context.Context, e entities.SyncAuditEntry) error
	List(ctx context.Context, filter entities.AuditFilter) ([]entities.SyncAuditEntry, error)
}
