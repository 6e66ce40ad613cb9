package response

import (
	"time"

	"salespipeline/internal/domain/entities"
)

type LineItemResponse struct {
	Description string  `json:"description"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	Total       float64 `json:"total"`
}

type ClientResponse struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Company string `json:"company,omitempty"`
}

type QuoteResponse struct {
	ID             string             `json:"id"`
	QuoteRequestID string             `json:"quote_request_id"`
	QuoteNumber    string             `json:"quote_number"`
	Client         ClientResponse     `json:"client"`
	ServiceName    string             `json:"service_name,omitempty"`
	LineItems      []LineItemResponse `json:"line_items"`
	TotalAmount    float64            `json:"total_amount"`
	Status         string             `json:"status"`
	ExternalDealID string             `json:"external_deal_id,omitempty"`
	ValidUntil     time.Time          `json:"valid_until"`
	CreatedBy      string             `json:"created_by"`
	CreatedAt      time.Time          `json:"created_at"`
	UpdatedAt      time.Time          `json:"updated_at"`
}

func FromQuote(q entities.Quote) QuoteResponse {
	items := make([]LineItemResponse, 0, len(q.LineItems))
	for _, li := range q.LineItems {
		items = append(items, LineItemResponse{
			Description: li.Description,
			Quantity:    li.Quantity,
			UnitPrice:   li.UnitPrice,
			Total:       li.Total(),
		})
	}
	return QuoteResponse{
		ID:             q.ID,
		QuoteRequestID: q.QuoteRequestID,
		QuoteNumber:    q.QuoteNumber,
		Client: ClientResponse{
			Name:    q.Client.Name,
			Email:   q.Client.Email,
			Company: q.Client.Company,
		},
		ServiceName:    q.ServiceName,
		LineItems:      items,
		TotalAmount:    q.TotalAmount,
		Status:         string(q.Status),
		ExternalDealID: q.ExternalDealID,
		ValidUntil:     q.ValidUntil,
		CreatedBy:      q.CreatedBy,
		CreatedAt:      q.CreatedAt,
		UpdatedAt:      q.UpdatedAt,
	}
}

func FromQuotes(in []entities.Quote) []QuoteResponse {
	out := make([]QuoteResponse, 0, len(in))
	for _, q := range in {
		out = append(out, FromQuote(q))
	}
	return out
}
