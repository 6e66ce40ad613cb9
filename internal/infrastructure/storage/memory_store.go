package storage

import (
	"context"
	"sync"

	"salespipeline/internal/usecase/interfaces"
)

type Object struct {
	Data        []byte
	ContentType string
}

// MemoryDocumentStore keeps objects in process memory (DOCUMENT_STORE=memory).
type MemoryDocumentStore struct {
	mu      sync.RWMutex
	objects map[string]Object
}

var _ interfaces.IDocumentStore = (*MemoryDocumentStore)(nil)

func NewMemoryDocumentStore() *MemoryDocumentStore {
	return &MemoryDocumentStore{objects: map[string]Object{}}
}

func (s *MemoryDocumentStore) Put(ctx context.Context, bucket, key string, data []byte, contentType string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[bucket+"/"+key] = Object{Data: append([]byte(nil), data...), ContentType: contentType}
	return nil
}

func (s *MemoryDocumentStore) Get(bucket, key string) (Object, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	o, ok := s.objects[bucket+"/"+key]
	return o, ok
}

func (s *MemoryDocumentStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.objects)
}
