package memory

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"salespipeline/internal/domain/entities"
	"salespipeline/internal/usecase/interfaces"
)

var ErrAlreadyExists = errors.New("record already exists")

type QuoteRequestRepository struct {
	mu    sync.RWMutex
	items map[string]entities.QuoteRequest
	now   func() time.Time
}

var _ interfaces.IQuoteRequestRepository = (*QuoteRequestRepository)(nil)

func NewQuoteRequestRepository() *QuoteRequestRepository {
	return &QuoteRequestRepository{items: map[string]entities.QuoteRequest{}, now: func() time.Time { return time.Now().UTC() }}
}

func (r *QuoteRequestRepository) Create(_ context.Context, q entities.QuoteRequest) (entities.QuoteRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[q.ID]; ok {
		return entities.QuoteRequest{}, ErrAlreadyExists
	}
	r.items[q.ID] = cloneQuoteRequest(q)
	return cloneQuoteRequest(q), nil
}

func (r *QuoteRequestRepository) GetByID(_ context.Context, id string) (entities.QuoteRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return cloneQuoteRequest(r.items[id]), nil
}

func (r *QuoteRequestRepository) List(_ context.Context, filter entities.QuoteRequestFilter) ([]entities.QuoteRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]entities.QuoteRequest, 0, len(r.items))
	for _, q := range r.items {
		if filter.Match(q) {
			out = append(out, cloneQuoteRequest(q))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *QuoteRequestRepository) CompareAndSetStatus(_ context.Context, id string, from, to entities.QuoteRequestStatus, patch entities.QuoteRequestPatch) (entities.QuoteRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	q, ok := r.items[id]
	if !ok || q.Status != from {
		return entities.QuoteRequest{}, nil
	}
	q.Status = to
	if patch.Assignee != nil {
		a := *patch.Assignee
		q.Assignee = &a
	}
	q.UpdatedAt = r.now()
	r.items[id] = q
	return cloneQuoteRequest(q), nil
}

func (r *QuoteRequestRepository) SetExternalRefs(_ context.Context, id, contactID, dealID string) (entities.QuoteRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	q, ok := r.items[id]
	if !ok {
		return entities.QuoteRequest{}, nil
	}
	q.ExternalContactID = contactID
	q.ExternalDealID = dealID
	q.UpdatedAt = r.now()
	r.items[id] = q
	return cloneQuoteRequest(q), nil
}

func cloneQuoteRequest(q entities.QuoteRequest) entities.QuoteRequest {
	if q.Services != nil {
		q.Services = append([]string(nil), q.Services...)
	}
	if q.Assignee != nil {
		a := *q.Assignee
		q.Assignee = &a
	}
	return q
}
