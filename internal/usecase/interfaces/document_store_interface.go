package interfaces

import "context"

// IDocumentStore abstracts durable object storage for signed documents.
type IDocumentStore interface {
	Put(ctx context.Context, bucket, key string, data []byte, contentType string) error
}
