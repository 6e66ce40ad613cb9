package interfaces

import (
	"context"
	"salespipeline/internal/domain/entities"
)

// IQuoteRequestRepository abstracts persistence for QuoteRequest.
//
// Lookups return a zero-value entity (empty ID) when the record does not exist.
// CompareAndSetStatus returns a zero-value entity when the stored status does
// not match `from`.

type IQuoteRequestRepository interface {
	Create(ctx context.Context, q entities.QuoteRequest) (entities.QuoteRequest, error)
	GetByID(ctx context.Context, id string) (entities.QuoteRequest, error)
	List(ctx context.Context, filter entities.QuoteRequestFilter) ([]entities.QuoteRequest, error)
	CompareAndSetStatus(ctx context.Context, id string, from, to entities.QuoteRequestStatus, patch entities.QuoteRequestPatch) (entities.QuoteRequest, error)
	SetExternalRefs(ctx context.Context, id, contactID, dealID string) (entities.QuoteRequest, error)
}
