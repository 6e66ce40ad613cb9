package storage

import (
	"bytes"
	"context"
	"log"

	"salespipeline/internal/infrastructure/config"
	"salespipeline/internal/infrastructure/database"
	"salespipeline/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// s3Putter is the slice of the S3 API the store needs.
type s3Putter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3DocumentStore writes signed documents to Amazon S3 (or any S3-compatible
// endpoint when S3_ENDPOINT is set).
type S3DocumentStore struct {
	client s3Putter
}

var _ interfaces.IDocumentStore = (*S3DocumentStore)(nil)

func NewS3DocumentStore(ctx context.Context, cfg config.AWS) (*S3DocumentStore, error) {
	awsCfg, err := database.NewAWSConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.S3Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.S3Endpoint)
			o.UsePathStyle = true
		}
	})
	log.Printf("[storage][s3] client initialized region=%s endpoint=%s", cfg.Region, cfg.S3Endpoint)
	return &S3DocumentStore{client: client}, nil
}

func (s *S3DocumentStore) Put(ctx context.Context, bucket, key string, data []byte, contentType string) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(data))),
	})
	if err != nil {
		log.Printf("[storage][s3] put failed bucket=%s key=%s err=%v", bucket, key, err)
		return err
	}
	return nil
}
