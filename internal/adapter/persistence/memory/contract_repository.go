package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"salespipeline/internal/domain/entities"
	"salespipeline/internal/usecase/interfaces"
)

type ContractRepository struct {
	mu    sync.RWMutex
	items map[string]entities.Contract
	now   func() time.Time
}

var _ interfaces.IContractRepository = (*ContractRepository)(nil)

func NewContractRepository() *ContractRepository {
	return &ContractRepository{items: map[string]entities.Contract{}, now: func() time.Time { return time.Now().UTC() }}
}

func (r *ContractRepository) Create(_ context.Context, c entities.Contract) (entities.Contract, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[c.ID]; ok {
		return entities.Contract{}, ErrAlreadyExists
	}
	for _, existing := range r.items {
		if existing.ContractNumber == c.ContractNumber || (c.EnvelopeID != "" && existing.EnvelopeID == c.EnvelopeID) {
			return entities.Contract{}, ErrAlreadyExists
		}
	}
	r.items[c.ID] = cloneContract(c)
	return cloneContract(c), nil
}

func (r *ContractRepository) GetByID(_ context.Context, id string) (entities.Contract, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return cloneContract(r.items[id]), nil
}

func (r *ContractRepository) GetByEnvelopeID(_ context.Context, envelopeID string) (entities.Contract, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, c := range r.items {
		if envelopeID != "" && c.EnvelopeID == envelopeID {
			return cloneContract(c), nil
		}
	}
	return entities.Contract{}, nil
}

func (r *ContractRepository) List(_ context.Context, filter entities.ContractFilter) ([]entities.Contract, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]entities.Contract, 0, len(r.items))
	for _, c := range r.items {
		if filter.Match(c) {
			out = append(out, cloneContract(c))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *ContractRepository) CompareAndSetStatus(_ context.Context, id string, from, to entities.ContractStatus, patch entities.ContractPatch) (entities.Contract, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.items[id]
	if !ok || c.Status != from {
		return entities.Contract{}, nil
	}
	c.Status = to
	if patch.SignedAt != nil {
		t := *patch.SignedAt
		c.SignedAt = &t
	}
	if patch.ArchivedDocumentPath != "" {
		c.ArchivedDocumentPath = patch.ArchivedDocumentPath
	}
	c.UpdatedAt = r.now()
	r.items[id] = c
	return cloneContract(c), nil
}

func cloneContract(c entities.Contract) entities.Contract {
	if c.SignedAt != nil {
		t := *c.SignedAt
		c.SignedAt = &t
	}
	return c
}
