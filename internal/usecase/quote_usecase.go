package usecase

import (
	"context"
	"log"
	"strings"
	"time"

	"salespipeline/internal/domain/entities"
)

type CreateQuoteInput struct {
	CreatedBy  string
	LineItems  []entities.LineItem
	ValidUntil time.Time
}

// IQuoteUseCase exposes quote operations for the employee portal.
type IQuoteUseCase interface {
	CreateFromQuoteRequest(ctx context.Context, quoteRequestID string, in CreateQuoteInput) (entities.Quote, error)
	UpdatePricing(ctx context.Context, id string, items []entities.LineItem) (entities.Quote, error)
	MarkSent(ctx context.Context, id string) (entities.Quote, error)
	GetByID(ctx context.Context, id string) (entities.Quote, error)
	List(ctx context.Context, filter entities.QuoteFilter) ([]entities.Quote, error)
}

type QuoteUseCase struct {
	store IEntityStore
}

var _ IQuoteUseCase = (*QuoteUseCase)(nil)

func NewQuoteUseCase(store IEntityStore) *QuoteUseCase {
	return &QuoteUseCase{store: store}
}

// CreateFromQuoteRequest moves the request to quoted and creates a draft
// quote carrying a snapshot of the client. The request transition comes first
// so that two employees quoting the same request cannot both win. A request
// already quoted but without a quote (a failed earlier attempt) is resumed.
func (u *QuoteUseCase) CreateFromQuoteRequest(ctx context.Context, quoteRequestID string, in CreateQuoteInput) (entities.Quote, error) {
	for _, it := range in.LineItems {
		if strings.TrimSpace(it.Description) == "" || it.Quantity <= 0 || it.UnitPrice < 0 {
			return entities.Quote{}, ErrInvalidLineItems
		}
	}

	qr, err := u.store.GetQuoteRequest(ctx, quoteRequestID)
	if err != nil {
		return entities.Quote{}, err
	}

	if qr.Status == entities.QuoteRequestStatusQuoted {
		existing, err := u.store.ListQuotes(ctx, entities.QuoteFilter{QuoteRequestID: qr.ID})
		if err != nil {
			return entities.Quote{}, err
		}
		if len(existing) > 0 {
			return entities.Quote{}, &entities.InvalidTransitionError{Kind: entities.EntityKindQuoteRequest, ID: qr.ID, From: string(qr.Status), To: string(entities.QuoteRequestStatusQuoted)}
		}
		log.Printf("[quote][usecase] resuming quote creation quote_request_id=%s", qr.ID)
	} else {
		qr, err = u.store.TransitionQuoteRequest(ctx, qr.ID, qr.Status, entities.QuoteRequestStatusQuoted, entities.QuoteRequestPatch{})
		if err != nil {
			return entities.Quote{}, err
		}
	}

	createdBy := strings.TrimSpace(in.CreatedBy)
	if createdBy == "" && qr.Assignee != nil {
		createdBy = qr.Assignee.EmployeeID
	}
	return u.store.CreateQuote(ctx, entities.Quote{
		QuoteRequestID: qr.ID,
		Client: entities.ClientSnapshot{
			Name:    qr.Name,
			Email:   qr.Email,
			Company: qr.Company,
		},
		ServiceName:    qr.PrimaryService(),
		LineItems:      in.LineItems,
		ExternalDealID: qr.ExternalDealID,
		ValidUntil:     in.ValidUntil,
		CreatedBy:      createdBy,
	})
}

func (u *QuoteUseCase) UpdatePricing(ctx context.Context, id string, items []entities.LineItem) (entities.Quote, error) {
	if len(items) == 0 {
		return entities.Quote{}, ErrInvalidLineItems
	}
	return u.store.UpdateQuotePricing(ctx, id, items)
}

func (u *QuoteUseCase) MarkSent(ctx context.Context, id string) (entities.Quote, error) {
	return u.store.TransitionQuote(ctx, id, entities.QuoteStatusDraft, entities.QuoteStatusSent)
}

func (u *QuoteUseCase) GetByID(ctx context.Context, id string) (entities.Quote, error) {
	return u.store.GetQuote(ctx, id)
}

func (u *QuoteUseCase) List(ctx context.Context, filter entities.QuoteFilter) ([]entities.Quote, error) {
	return u.store.ListQuotes(ctx, filter)
}
