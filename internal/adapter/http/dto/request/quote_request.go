package request

import (
	"time"

	"salespipeline/internal/domain/entities"
	"salespipeline/internal/usecase"
)

type LineItemRequest struct {
	Description string  `json:"description" binding:"required"`
	Quantity    int     `json:"quantity" binding:"required"`
	UnitPrice   float64 `json:"unit_price"`
}

type CreateQuoteRequest struct {
	CreatedBy  string            `json:"created_by" binding:"required"`
	LineItems  []LineItemRequest `json:"line_items"`
	ValidUntil *time.Time        `json:"valid_until"`
}

func (r CreateQuoteRequest) ToInput() usecase.CreateQuoteInput {
	in := usecase.CreateQuoteInput{
		CreatedBy: r.CreatedBy,
		LineItems: toLineItems(r.LineItems),
	}
	if r.ValidUntil != nil {
		in.ValidUntil = r.ValidUntil.UTC()
	}
	return in
}

type UpdatePricingRequest struct {
	LineItems []LineItemRequest `json:"line_items" binding:"required"`
}

func (r UpdatePricingRequest) ToLineItems() []entities.LineItem {
	return toLineItems(r.LineItems)
}

func toLineItems(in []LineItemRequest) []entities.LineItem {
	out := make([]entities.LineItem, 0, len(in))
	for _, it := range in {
		out = append(out, entities.LineItem{
			Description: it.Description,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
		})
	}
	return out
}
