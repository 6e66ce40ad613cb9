package interfaces

import (
	"context"
	"salespipeline/internal/domain/entities"
)

// IQuoteRepository abstracts persistence for Quote.
//
// Same zero-value conventions as IQuoteRequestRepository. UpdatePricing is
// conditional on the quote still being draft.

type IQuoteRepository interface {
	Create(ctx context.Context, q entities.Quote) (entities.Quote, error)
	GetByID(ctx context.Context, id string) (entities.Quote, error)
	GetByExternalDealID(ctx context.Context, dealID string) (entities.Quote, error)
	List(ctx context.Context, filter entities.QuoteFilter) ([]entities.Quote, error)
	CompareAndSetStatus(ctx context.Context, id string, from, to entities.QuoteStatus) (entities.Quote, error)
	UpdatePricing(ctx context.Context, id string, items []entities.LineItem, total float64) (entities.Quote, error)
	SetExternalDealID(ctx context.Context, id, dealID string) (entities.Quote, error)
}
