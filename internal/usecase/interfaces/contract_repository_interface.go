package interfaces

import (
	"context"
	"salespipeline/internal/domain/entities"
)

// IContractRepository abstracts persistence for Contract.

type IContractRepository interface {
	Create(ctx context.Context, c entities.Contract) (entities.Contract, error)
	GetByID(ctx context.Context, id string) (entities.Contract, error)
	GetByEnvelopeID(ctx context.Context, envelopeID string) (entities.Contract, error)
	List(ctx context.Context, filter entities.ContractFilter) ([]entities.Contract, error)
	CompareAndSetStatus(ctx context.Context, id string, from, to entities.ContractStatus, patch entities.ContractPatch) (entities.Contract, error)
}
