package usecase

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"salespipeline/internal/domain/entities"
	"salespipeline/internal/usecase/interfaces"

	"github.com/gabriel-vasile/mimetype"
)

const (
	ContractsBucket = "contracts"
	pdfContentType  = "application/pdf"
)

// IDocumentArchiver stores signed contract documents.
//
// Upload failures are returned to the caller untouched by retries; the
// caller knows whether it is serving a fresh webhook or a reconciliation pass.
type IDocumentArchiver interface {
	Archive(ctx context.Context, contractNumber string, document []byte) (string, error)
}

type DocumentArchiver struct {
	store   interfaces.IDocumentStore
	bucket  string
	timeout time.Duration
}

var _ IDocumentArchiver = (*DocumentArchiver)(nil)

func NewDocumentArchiver(store interfaces.IDocumentStore, timeout time.Duration) *DocumentArchiver {
	return &DocumentArchiver{store: store, bucket: ContractsBucket, timeout: timeout}
}

// WithBucket overrides the target bucket. The recorded path follows it.
func (a *DocumentArchiver) WithBucket(bucket string) *DocumentArchiver {
	if b := strings.TrimSpace(bucket); b != "" {
		a.bucket = b
	}
	return a
}

func ArchiveKey(contractNumber string) string {
	return contractNumber + "_signed.pdf"
}

// ArchivePath is the durable path recorded on the contract.
func (a *DocumentArchiver) ArchivePath(contractNumber string) string {
	return a.bucket + "/" + ArchiveKey(strings.TrimSpace(contractNumber))
}

func (a *DocumentArchiver) Archive(ctx context.Context, contractNumber string, document []byte) (string, error) {
	contractNumber = strings.TrimSpace(contractNumber)
	key := ArchiveKey(contractNumber)
	if contractNumber == "" {
		return "", &entities.ArchiveError{Bucket: a.bucket, Key: key, Err: errors.New("empty contract number")}
	}
	if len(document) == 0 {
		return "", &entities.ArchiveError{Bucket: a.bucket, Key: key, Err: errors.New("empty document")}
	}
	if a.store == nil {
		return "", &entities.ArchiveError{Bucket: a.bucket, Key: key, Err: errors.New("document store not configured")}
	}

	contentType := pdfContentType
	if mt := mimetype.Detect(document); !mt.Is(pdfContentType) {
		log.Printf("[archive] document is not a pdf contract_number=%s detected=%s size=%d", contractNumber, mt.String(), len(document))
		contentType = mt.String()
	}

	cctx, cancel := withCallTimeout(ctx, a.timeout)
	defer cancel()
	if err := a.store.Put(cctx, a.bucket, key, document, contentType); err != nil {
		log.Printf("[archive] upload failed contract_number=%s key=%s err=%v", contractNumber, key, err)
		return "", &entities.ArchiveError{Bucket: a.bucket, Key: key, Err: err}
	}
	path := a.ArchivePath(contractNumber)
	log.Printf("[archive] upload success contract_number=%s path=%s size=%d", contractNumber, path, len(document))
	return path, nil
}
