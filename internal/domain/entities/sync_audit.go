package entities

import "time"

// EntityKind tags the record an audit entry points at. The audit log keeps
// (kind, id) pairs instead of per-kind foreign keys.
type EntityKind string

const (
	EntityKindQuoteRequest EntityKind = "quote_request"
	EntityKindQuote        EntityKind = "quote"
	EntityKindContract     EntityKind = "contract"
)

func ParseEntityKind(v string) (EntityKind, bool) {
	switch k := EntityKind(v); k {
	case EntityKindQuoteRequest, EntityKindQuote, EntityKindContract:
		return k, true
	}
	return "", false
}

type ExternalSystem string

const (
	ExternalSystemCRM           ExternalSystem = "crm"
	ExternalSystemESignature    ExternalSystem = "esignature"
	ExternalSystemDocumentStore ExternalSystem = "document_store"
	ExternalSystemLocal         ExternalSystem = "local"
)

type SyncDirection string

const (
	SyncDirectionOutbound SyncDirection = "outbound"
	SyncDirectionInbound  SyncDirection = "inbound"
)

type SyncOutcome string

const (
	SyncOutcomeSuccess SyncOutcome = "success"
	SyncOutcomeError   SyncOutcome = "error"
)

// SyncAuditEntry is append-only: never updated, never deleted.
//
// Storage model (PostgreSQL):
//   - table sync_audit_log, indexed by (entity_kind, entity_id)
type SyncAuditEntry struct {
	ID             string         `json:"id"`
	EntityKind     EntityKind     `json:"entity_kind"`
	EntityID       string         `json:"entity_id"`
	ExternalSystem ExternalSystem `json:"external_system"`
	Operation      string         `json:"operation"`
	Direction      SyncDirection  `json:"direction"`
	Outcome        SyncOutcome    `json:"outcome"`
	ErrorClass     ErrorClass     `json:"error_class,omitempty"`
	ErrorDetail    string         `json:"error_detail,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
}

type AuditFilter struct {
	EntityKind EntityKind
	EntityID   string
	Operation  string
	Limit      int
}

func (f AuditFilter) Match(e SyncAuditEntry) bool {
	if f.EntityKind != "" && e.EntityKind != f.EntityKind {
		return false
	}
	if f.EntityID != "" && e.EntityID != f.EntityID {
		return false
	}
	if f.Operation != "" && e.Operation != f.Operation {
		return false
	}
	return true
}
