// Package storage holds the document store backends for signed contracts.
package storage

import (
	"context"
	"fmt"

	"salespipeline/internal/infrastructure/config"
	"salespipeline/internal/usecase/interfaces"
)

// New picks the document store named by cfg.Documents.Backend.
func New(ctx context.Context, cfg config.Config) (interfaces.IDocumentStore, error) {
	switch cfg.Documents.Backend {
	case config.DocumentStoreS3:
		return NewS3DocumentStore(ctx, cfg.AWS)
	case config.DocumentStoreMinIO:
		return NewMinioDocumentStore(cfg.Documents)
	case config.DocumentStoreMemory:
		return NewMemoryDocumentStore(), nil
	default:
		return nil, fmt.Errorf("unsupported document store %q", cfg.Documents.Backend)
	}
}
