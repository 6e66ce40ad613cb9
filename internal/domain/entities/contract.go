package entities

import (
	"fmt"
	"time"
)

type ContractStatus string

const (
	ContractStatusSent     ContractStatus = "sent"
	ContractStatusSigned   ContractStatus = "signed"
	ContractStatusDeclined ContractStatus = "declined"
	ContractStatusVoided   ContractStatus = "voided"
	ContractStatusExpired  ContractStatus = "expired"
)

// ContractValidity is fixed; expiration is never extended.
const ContractValidity = 30 * 24 * time.Hour

type Signer struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Company string `json:"company"`
}

// Contract is the signature artifact for a Quote.
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI (envelope_id-index): envelope_id
//   - GSI (quote_id-index): quote_id
type Contract struct {
	ID                   string         `json:"id"`
	ContractNumber       string         `json:"contract_number"`
	QuoteID              string         `json:"quote_id"`
	EnvelopeID           string         `json:"envelope_id"`
	TemplateID           string         `json:"template_id"`
	Status               ContractStatus `json:"status"`
	Signer               Signer         `json:"signer"`
	SignedAt             *time.Time     `json:"signed_at,omitempty"`
	ArchivedDocumentPath string         `json:"archived_document_path,omitempty"`
	CreatedAt            time.Time      `json:"created_at"`
	ExpiresAt            time.Time      `json:"expires_at"`
	UpdatedAt            time.Time      `json:"updated_at"`
}

func ContractExpiration(createdAt time.Time) time.Time {
	return createdAt.Add(ContractValidity)
}

// ContractNumberFor derives a contract number from the quote number and the
// 1-based sequence of contracts sent for that quote.
func ContractNumberFor(quoteNumber string, seq int) string {
	return fmt.Sprintf("%s-C%02d", quoteNumber, seq)
}

func (c Contract) IsExpired(now time.Time) bool {
	return !now.Before(c.ExpiresAt)
}

type ContractFilter struct {
	Status  ContractStatus
	QuoteID string
}

func (f ContractFilter) Match(c Contract) bool {
	if f.Status != "" && c.Status != f.Status {
		return false
	}
	if f.QuoteID != "" && c.QuoteID != f.QuoteID {
		return false
	}
	return true
}

// ContractPatch carries the fields written together with a status change.
type ContractPatch struct {
	SignedAt             *time.Time
	ArchivedDocumentPath string
}
