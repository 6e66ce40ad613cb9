package entities

import "time"

// QuoteStatus represents the lifecycle of a priced proposal.
//
// Besides the statuses the sales team drives directly (draft, sent, accepted,
// rejected, contracted), a quote can mirror the CRM deal stage it is linked
// to (pending, in_review, quoted, approved, contract_sent).
type QuoteStatus string

const (
	QuoteStatusDraft        QuoteStatus = "draft"
	QuoteStatusPending      QuoteStatus = "pending"
	QuoteStatusInReview     QuoteStatus = "in_review"
	QuoteStatusQuoted       QuoteStatus = "quoted"
	QuoteStatusApproved     QuoteStatus = "approved"
	QuoteStatusSent         QuoteStatus = "sent"
	QuoteStatusContractSent QuoteStatus = "contract_sent"
	QuoteStatusAccepted     QuoteStatus = "accepted"
	QuoteStatusRejected     QuoteStatus = "rejected"
	QuoteStatusContracted   QuoteStatus = "contracted"
)

const DefaultQuoteValidity = 30 * 24 * time.Hour

// ClientSnapshot is copied from the QuoteRequest when the quote is created.
// Later edits to the request do not flow into existing quotes.
type ClientSnapshot struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Company string `json:"company"`
}

type LineItem struct {
	Description string  `json:"description"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
}

func (l LineItem) Total() float64 {
	return float64(l.Quantity) * l.UnitPrice
}

func LineItemsTotal(items []LineItem) float64 {
	total := 0.0
	for _, it := range items {
		total += it.Total()
	}
	return total
}

// Quote is tied to exactly one QuoteRequest.
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI (external_deal_id-index): external_deal_id
//
// TotalAmount can only change while Status is draft.
type Quote struct {
	ID             string         `json:"id"`
	QuoteRequestID string         `json:"quote_request_id"`
	QuoteNumber    string         `json:"quote_number"`
	Client         ClientSnapshot `json:"client"`
	ServiceName    string         `json:"service_name"`
	LineItems      []LineItem     `json:"line_items"`
	TotalAmount    float64        `json:"total_amount"`
	Status         QuoteStatus    `json:"status"`
	ExternalDealID string         `json:"external_deal_id,omitempty"`
	ValidUntil     time.Time      `json:"valid_until"`
	CreatedBy      string         `json:"created_by"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

type QuoteFilter struct {
	Status         QuoteStatus
	QuoteRequestID string
}

func (f QuoteFilter) Match(q Quote) bool {
	if f.Status != "" && q.Status != f.Status {
		return false
	}
	if f.QuoteRequestID != "" && q.QuoteRequestID != f.QuoteRequestID {
		return false
	}
	return true
}
