package usecase

import (
	"context"

	"salespipeline/internal/domain/entities"
)

// IContractUseCase exposes read access to contracts for the employee portal.
// Contract mutations only happen through envelope sync, webhooks and
// reconciliation.
type IContractUseCase interface {
	GetByID(ctx context.Context, id string) (entities.Contract, error)
	List(ctx context.Context, filter entities.ContractFilter) ([]entities.Contract, error)
}

type ContractUseCase struct {
	store IEntityStore
}

var _ IContractUseCase = (*ContractUseCase)(nil)

func NewContractUseCase(store IEntityStore) *ContractUseCase {
	return &ContractUseCase{store: store}
}

func (u *ContractUseCase) GetByID(ctx context.Context, id string) (entities.Contract, error) {
	return u.store.GetContract(ctx, id)
}

func (u *ContractUseCase) List(ctx context.Context, filter entities.ContractFilter) ([]entities.Contract, error) {
	return u.store.ListContracts(ctx, filter)
}
