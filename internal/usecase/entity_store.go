package usecase

import (
	"context"
	"log"
	"strings"

	"salespipeline/internal/domain/entities"
	"salespipeline/internal/usecase/interfaces"

	"github.com/google/uuid"
)

// IEntityStore is the only mutation path for QuoteRequest, Quote and Contract
// status. Every transition is a compare-and-set: it fails closed with an
// *entities.InvalidTransitionError when the edge is not in the allow-list or
// the stored status is no longer `from`.
type IEntityStore interface {
	CreateQuoteRequest(ctx context.Context, q entities.QuoteRequest) (entities.QuoteRequest, error)
	GetQuoteRequest(ctx context.Context, id string) (entities.QuoteRequest, error)
	ListQuoteRequests(ctx context.Context, filter entities.QuoteRequestFilter) ([]entities.QuoteRequest, error)
	TransitionQuoteRequest(ctx context.Context, id string, from, to entities.QuoteRequestStatus, patch entities.QuoteRequestPatch) (entities.QuoteRequest, error)
	SetQuoteRequestExternalRefs(ctx context.Context, id, contactID, dealID string) (entities.QuoteRequest, error)

	CreateQuote(ctx context.Context, q entities.Quote) (entities.Quote, error)
	GetQuote(ctx context.Context, id string) (entities.Quote, error)
	GetQuoteByDealID(ctx context.Context, dealID string) (entities.Quote, error)
	ListQuotes(ctx context.Context, filter entities.QuoteFilter) ([]entities.Quote, error)
	TransitionQuote(ctx context.Context, id string, from, to entities.QuoteStatus) (entities.Quote, error)
	UpdateQuotePricing(ctx context.Context, id string, items []entities.LineItem) (entities.Quote, error)
	ApplyExternalAmount(ctx context.Context, id string, amount float64) (entities.Quote, error)
	SetQuoteExternalDealID(ctx context.Context, id, dealID string) (entities.Quote, error)

	CreateContract(ctx context.Context, c entities.Contract) (entities.Contract, error)
	GetContract(ctx context.Context, id string) (entities.Contract, error)
	GetContractByEnvelopeID(ctx context.Context, envelopeID string) (entities.Contract, error)
	ListContracts(ctx context.Context, filter entities.ContractFilter) ([]entities.Contract, error)
	TransitionContract(ctx context.Context, id string, from, to entities.ContractStatus, patch entities.ContractPatch) (entities.Contract, error)
}

type EntityStore struct {
	quoteRequests interfaces.IQuoteRequestRepository
	quotes        interfaces.IQuoteRepository
	contracts     interfaces.IContractRepository
	now           Clock
}

var _ IEntityStore = (*EntityStore)(nil)

func NewEntityStore(quoteRequests interfaces.IQuoteRequestRepository, quotes interfaces.IQuoteRepository, contracts interfaces.IContractRepository) *EntityStore {
	return &EntityStore{quoteRequests: quoteRequests, quotes: quotes, contracts: contracts, now: systemClock}
}

func (s *EntityStore) WithClock(c Clock) *EntityStore {
	s.now = c
	return s
}

// --- QuoteRequest ---

func (s *EntityStore) CreateQuoteRequest(ctx context.Context, q entities.QuoteRequest) (entities.QuoteRequest, error) {
	now := s.now()
	if q.ID == "" {
		q.ID = uuid.NewString()
	}
	q.Email = strings.ToLower(strings.TrimSpace(q.Email))
	q.Services = entities.NormalizeServices(q.Services)
	q.Status = entities.QuoteRequestStatusNew
	q.CreatedAt = now
	q.UpdatedAt = now
	created, err := s.quoteRequests.Create(ctx, q)
	if err != nil {
		return entities.QuoteRequest{}, err
	}
	log.Printf("[store] quote request created id=%s email=%s", created.ID, created.Email)
	return created, nil
}

func (s *EntityStore) GetQuoteRequest(ctx context.Context, id string) (entities.QuoteRequest, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.QuoteRequest{}, ErrInvalidID
	}
	q, err := s.quoteRequests.GetByID(ctx, id)
	if err != nil {
		return entities.QuoteRequest{}, err
	}
	if q.ID == "" {
		return entities.QuoteRequest{}, entities.ErrQuoteRequestNotFound
	}
	return q, nil
}

func (s *EntityStore) ListQuoteRequests(ctx context.Context, filter entities.QuoteRequestFilter) ([]entities.QuoteRequest, error) {
	return s.quoteRequests.List(ctx, filter)
}

func (s *EntityStore) TransitionQuoteRequest(ctx context.Context, id string, from, to entities.QuoteRequestStatus, patch entities.QuoteRequestPatch) (entities.QuoteRequest, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.QuoteRequest{}, ErrInvalidID
	}
	if !entities.CanTransitionQuoteRequest(from, to) {
		return entities.QuoteRequest{}, &entities.InvalidTransitionError{Kind: entities.EntityKindQuoteRequest, ID: id, From: string(from), To: string(to)}
	}
	updated, err := s.quoteRequests.CompareAndSetStatus(ctx, id, from, to, patch)
	if err != nil {
		return entities.QuoteRequest{}, err
	}
	if updated.ID == "" {
		current, err := s.GetQuoteRequest(ctx, id)
		if err != nil {
			return entities.QuoteRequest{}, err
		}
		return entities.QuoteRequest{}, &entities.InvalidTransitionError{Kind: entities.EntityKindQuoteRequest, ID: id, From: string(from), To: string(to), Current: string(current.Status)}
	}
	log.Printf("[store] quote request transition id=%s from=%s to=%s", id, from, to)
	return updated, nil
}

func (s *EntityStore) SetQuoteRequestExternalRefs(ctx context.Context, id, contactID, dealID string) (entities.QuoteRequest, error) {
	updated, err := s.quoteRequests.SetExternalRefs(ctx, id, contactID, dealID)
	if err != nil {
		return entities.QuoteRequest{}, err
	}
	if updated.ID == "" {
		return entities.QuoteRequest{}, entities.ErrQuoteRequestNotFound
	}
	return updated, nil
}

// --- Quote ---

func (s *EntityStore) CreateQuote(ctx context.Context, q entities.Quote) (entities.Quote, error) {
	now := s.now()
	if q.ID == "" {
		q.ID = uuid.NewString()
	}
	if q.QuoteNumber == "" {
		q.QuoteNumber = newQuoteNumber(now)
	}
	if q.Status == "" {
		q.Status = entities.QuoteStatusDraft
	}
	if q.ValidUntil.IsZero() {
		q.ValidUntil = now.Add(entities.DefaultQuoteValidity)
	}
	q.TotalAmount = entities.LineItemsTotal(q.LineItems)
	q.CreatedAt = now
	q.UpdatedAt = now
	created, err := s.quotes.Create(ctx, q)
	if err != nil {
		return entities.Quote{}, err
	}
	log.Printf("[store] quote created id=%s quote_number=%s quote_request_id=%s", created.ID, created.QuoteNumber, created.QuoteRequestID)
	return created, nil
}

func (s *EntityStore) GetQuote(ctx context.Context, id string) (entities.Quote, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Quote{}, ErrInvalidID
	}
	q, err := s.quotes.GetByID(ctx, id)
	if err != nil {
		return entities.Quote{}, err
	}
	if q.ID == "" {
		return entities.Quote{}, entities.ErrQuoteNotFound
	}
	return q, nil
}

func (s *EntityStore) GetQuoteByDealID(ctx context.Context, dealID string) (entities.Quote, error) {
	dealID = strings.TrimSpace(dealID)
	if dealID == "" {
		return entities.Quote{}, ErrInvalidID
	}
	q, err := s.quotes.GetByExternalDealID(ctx, dealID)
	if err != nil {
		return entities.Quote{}, err
	}
	if q.ID == "" {
		return entities.Quote{}, entities.ErrQuoteNotFound
	}
	return q, nil
}

func (s *EntityStore) ListQuotes(ctx context.Context, filter entities.QuoteFilter) ([]entities.Quote, error) {
	return s.quotes.List(ctx, filter)
}

func (s *EntityStore) TransitionQuote(ctx context.Context, id string, from, to entities.QuoteStatus) (entities.Quote, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Quote{}, ErrInvalidID
	}
	if !entities.CanTransitionQuote(from, to) {
		return entities.Quote{}, &entities.InvalidTransitionError{Kind: entities.EntityKindQuote, ID: id, From: string(from), To: string(to)}
	}
	if to == entities.QuoteStatusContracted {
		signed, err := s.contracts.List(ctx, entities.ContractFilter{QuoteID: id, Status: entities.ContractStatusSigned})
		if err != nil {
			return entities.Quote{}, err
		}
		if len(signed) == 0 {
			log.Printf("[store] quote transition rejected id=%s to=%s reason=no signed contract", id, to)
			return entities.Quote{}, &entities.InvalidTransitionError{Kind: entities.EntityKindQuote, ID: id, From: string(from), To: string(to)}
		}
	}
	updated, err := s.quotes.CompareAndSetStatus(ctx, id, from, to)
	if err != nil {
		return entities.Quote{}, err
	}
	if updated.ID == "" {
		current, err := s.GetQuote(ctx, id)
		if err != nil {
			return entities.Quote{}, err
		}
		return entities.Quote{}, &entities.InvalidTransitionError{Kind: entities.EntityKindQuote, ID: id, From: string(from), To: string(to), Current: string(current.Status)}
	}
	log.Printf("[store] quote transition id=%s from=%s to=%s", id, from, to)
	return updated, nil
}

func (s *EntityStore) UpdateQuotePricing(ctx context.Context, id string, items []entities.LineItem) (entities.Quote, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Quote{}, ErrInvalidID
	}
	for _, it := range items {
		if strings.TrimSpace(it.Description) == "" || it.Quantity <= 0 || it.UnitPrice < 0 {
			return entities.Quote{}, ErrInvalidLineItems
		}
	}
	updated, err := s.quotes.UpdatePricing(ctx, id, items, entities.LineItemsTotal(items))
	if err != nil {
		return entities.Quote{}, err
	}
	if updated.ID == "" {
		if _, err := s.GetQuote(ctx, id); err != nil {
			return entities.Quote{}, err
		}
		return entities.Quote{}, ErrQuotePricingLocked
	}
	log.Printf("[store] quote pricing updated id=%s total=%.2f", id, updated.TotalAmount)
	return updated, nil
}

// ApplyExternalAmount overrides the total of a draft quote with an amount
// reported by the CRM, keeping its line items.
func (s *EntityStore) ApplyExternalAmount(ctx context.Context, id string, amount float64) (entities.Quote, error) {
	current, err := s.GetQuote(ctx, id)
	if err != nil {
		return entities.Quote{}, err
	}
	updated, err := s.quotes.UpdatePricing(ctx, current.ID, current.LineItems, amount)
	if err != nil {
		return entities.Quote{}, err
	}
	if updated.ID == "" {
		return entities.Quote{}, ErrQuotePricingLocked
	}
	log.Printf("[store] quote total set from crm id=%s total=%.2f", id, amount)
	return updated, nil
}

func (s *EntityStore) SetQuoteExternalDealID(ctx context.Context, id, dealID string) (entities.Quote, error) {
	updated, err := s.quotes.SetExternalDealID(ctx, id, dealID)
	if err != nil {
		return entities.Quote{}, err
	}
	if updated.ID == "" {
		return entities.Quote{}, entities.ErrQuoteNotFound
	}
	return updated, nil
}

// --- Contract ---

func (s *EntityStore) CreateContract(ctx context.Context, c entities.Contract) (entities.Contract, error) {
	now := s.now()
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	c.Status = entities.ContractStatusSent
	c.CreatedAt = now
	c.ExpiresAt = entities.ContractExpiration(now)
	c.UpdatedAt = now
	c.SignedAt = nil
	c.ArchivedDocumentPath = ""
	created, err := s.contracts.Create(ctx, c)
	if err != nil {
		return entities.Contract{}, err
	}
	log.Printf("[store] contract created id=%s contract_number=%s envelope_id=%s expires_at=%s", created.ID, created.ContractNumber, created.EnvelopeID, created.ExpiresAt.Format("2006-01-02T15:04:05Z07:00"))
	return created, nil
}

func (s *EntityStore) GetContract(ctx context.Context, id string) (entities.Contract, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Contract{}, ErrInvalidID
	}
	c, err := s.contracts.GetByID(ctx, id)
	if err != nil {
		return entities.Contract{}, err
	}
	if c.ID == "" {
		return entities.Contract{}, entities.ErrContractNotFound
	}
	return c, nil
}

func (s *EntityStore) GetContractByEnvelopeID(ctx context.Context, envelopeID string) (entities.Contract, error) {
	envelopeID = strings.TrimSpace(envelopeID)
	if envelopeID == "" {
		return entities.Contract{}, ErrInvalidID
	}
	c, err := s.contracts.GetByEnvelopeID(ctx, envelopeID)
	if err != nil {
		return entities.Contract{}, err
	}
	if c.ID == "" {
		return entities.Contract{}, entities.ErrContractNotFound
	}
	return c, nil
}

func (s *EntityStore) ListContracts(ctx context.Context, filter entities.ContractFilter) ([]entities.Contract, error) {
	return s.contracts.List(ctx, filter)
}

func (s *EntityStore) TransitionContract(ctx context.Context, id string, from, to entities.ContractStatus, patch entities.ContractPatch) (entities.Contract, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Contract{}, ErrInvalidID
	}
	if !entities.CanTransitionContract(from, to) {
		return entities.Contract{}, &entities.InvalidTransitionError{Kind: entities.EntityKindContract, ID: id, From: string(from), To: string(to)}
	}
	if to == entities.ContractStatusSigned {
		if strings.TrimSpace(patch.ArchivedDocumentPath) == "" {
			return entities.Contract{}, ErrSignedWithoutDocument
		}
		if patch.SignedAt == nil {
			now := s.now()
			patch.SignedAt = &now
		}
	}
	updated, err := s.contracts.CompareAndSetStatus(ctx, id, from, to, patch)
	if err != nil {
		return entities.Contract{}, err
	}
	if updated.ID == "" {
		current, err := s.GetContract(ctx, id)
		if err != nil {
			return entities.Contract{}, err
		}
		return entities.Contract{}, &entities.InvalidTransitionError{Kind: entities.EntityKindContract, ID: id, From: string(from), To: string(to), Current: string(current.Status)}
	}
	log.Printf("[store] contract transition id=%s from=%s to=%s", id, from, to)
	return updated, nil
}
