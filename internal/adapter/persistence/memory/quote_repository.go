package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"salespipeline/internal/domain/entities"
	"salespipeline/internal/usecase/interfaces"
)

type QuoteRepository struct {
	mu    sync.RWMutex
	items map[string]entities.Quote
	now   func() time.Time
}

var _ interfaces.IQuoteRepository = (*QuoteRepository)(nil)

func NewQuoteRepository() *QuoteRepository {
	return &QuoteRepository{items: map[string]entities.Quote{}, now: func() time.Time { return time.Now().UTC() }}
}

func (r *QuoteRepository) Create(_ context.Context, q entities.Quote) (entities.Quote, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[q.ID]; ok {
		return entities.Quote{}, ErrAlreadyExists
	}
	for _, existing := range r.items {
		if existing.QuoteNumber == q.QuoteNumber {
			return entities.Quote{}, ErrAlreadyExists
		}
	}
	r.items[q.ID] = cloneQuote(q)
	return cloneQuote(q), nil
}

func (r *QuoteRepository) GetByID(_ context.Context, id string) (entities.Quote, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return cloneQuote(r.items[id]), nil
}

func (r *QuoteRepository) GetByExternalDealID(_ context.Context, dealID string) (entities.Quote, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, q := range r.items {
		if dealID != "" && q.ExternalDealID == dealID {
			return cloneQuote(q), nil
		}
	}
	return entities.Quote{}, nil
}

func (r *QuoteRepository) List(_ context.Context, filter entities.QuoteFilter) ([]entities.Quote, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]entities.Quote, 0, len(r.items))
	for _, q := range r.items {
		if filter.Match(q) {
			out = append(out, cloneQuote(q))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *QuoteRepository) CompareAndSetStatus(_ context.Context, id string, from, to entities.QuoteStatus) (entities.Quote, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	q, ok := r.items[id]
	if !ok || q.Status != from {
		return entities.Quote{}, nil
	}
	q.Status = to
	q.UpdatedAt = r.now()
	r.items[id] = q
	return cloneQuote(q), nil
}

func (r *QuoteRepository) UpdatePricing(_ context.Context, id string, items []entities.LineItem, total float64) (entities.Quote, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	q, ok := r.items[id]
	if !ok || q.Status != entities.QuoteStatusDraft {
		return entities.Quote{}, nil
	}
	q.LineItems = append([]entities.LineItem(nil), items...)
	q.TotalAmount = total
	q.UpdatedAt = r.now()
	r.items[id] = q
	return cloneQuote(q), nil
}

func (r *QuoteRepository) SetExternalDealID(_ context.Context, id, dealID string) (entities.Quote, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	q, ok := r.items[id]
	if !ok {
		return entities.Quote{}, nil
	}
	q.ExternalDealID = dealID
	q.UpdatedAt = r.now()
	r.items[id] = q
	return cloneQuote(q), nil
}

func cloneQuote(q entities.Quote) entities.Quote {
	if q.LineItems != nil {
		q.LineItems = append([]entities.LineItem(nil), q.LineItems...)
	}
	return q
}
