package response

import (
	"time"

	"salespipeline/internal/domain/entities"
	"salespipeline/internal/usecase"
)

type AuditEntryResponse struct {
	ID             string    `json:"id"`
	EntityKind     string    `json:"entity_kind"`
	EntityID       string    `json:"entity_id"`
	ExternalSystem string    `json:"external_system"`
	Operation      string    `json:"operation"`
	Direction      string    `json:"direction"`
	Outcome        string    `json:"outcome"`
	ErrorClass     string    `json:"error_class,omitempty"`
	ErrorDetail    string    `json:"error_detail,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

func FromAuditEntries(in []entities.SyncAuditEntry) []AuditEntryResponse {
	out := make([]AuditEntryResponse, 0, len(in))
	for _, e := range in {
		out = append(out, AuditEntryResponse{
			ID:             e.ID,
			EntityKind:     string(e.EntityKind),
			EntityID:       e.EntityID,
			ExternalSystem: string(e.ExternalSystem),
			Operation:      e.Operation,
			Direction:      string(e.Direction),
			Outcome:        string(e.Outcome),
			ErrorClass:     string(e.ErrorClass),
			ErrorDetail:    e.ErrorDetail,
			CreatedAt:      e.CreatedAt,
		})
	}
	return out
}

// WebhookResponse acknowledges a delivery.
type WebhookResponse struct {
	Outcome    string `json:"outcome"`
	ContractID string `json:"contract_id,omitempty"`
	QuoteID    string `json:"quote_id,omitempty"`
	Detail     string `json:"detail,omitempty"`
}

func FromDispatchResult(r usecase.DispatchResult) WebhookResponse {
	return WebhookResponse{
		Outcome:    string(r.Outcome),
		ContractID: r.ContractID,
		QuoteID:    r.QuoteID,
		Detail:     r.Detail,
	}
}

// SyncPendingResponse tells the sender to redeliver later.
type SyncPendingResponse struct {
	Status string `json:"status"`
	Detail string `json:"detail,omitempty"`
}

func SyncPending(detail string) SyncPendingResponse {
	return SyncPendingResponse{Status: "sync_pending", Detail: detail}
}
