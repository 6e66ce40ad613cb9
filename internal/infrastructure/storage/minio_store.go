package storage

import (
	"bytes"
	"context"
	"log"

	"salespipeline/internal/infrastructure/config"
	"salespipeline/internal/usecase/interfaces"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// MinioDocumentStore writes signed documents to a MinIO deployment.
type MinioDocumentStore struct {
	client *minio.Client
}

var _ interfaces.IDocumentStore = (*MinioDocumentStore)(nil)

func NewMinioDocumentStore(cfg config.Documents) (*MinioDocumentStore, error) {
	client, err := minio.New(cfg.MinIOEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinIOAccessKey, cfg.MinIOSecretKey, ""),
		Secure: cfg.MinIOUseSSL,
	})
	if err != nil {
		return nil, err
	}
	log.Printf("[storage][minio] client initialized endpoint=%s ssl=%t", cfg.MinIOEndpoint, cfg.MinIOUseSSL)
	return &MinioDocumentStore{client: client}, nil
}

func (s *MinioDocumentStore) Put(ctx context.Context, bucket, key string, data []byte, contentType string) error {
	_, err := s.client.PutObject(ctx, bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		log.Printf("[storage][minio] put failed bucket=%s key=%s err=%v", bucket, key, err)
		return err
	}
	return nil
}
