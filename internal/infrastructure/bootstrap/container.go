// Package bootstrap constructs every client, repository and use case once at
// process start. The HTTP server and the CLI share it.
package bootstrap

import (
	"context"
	"fmt"
	"io"
	"log"

	"salespipeline/internal/adapter/persistence/memory"
	"salespipeline/internal/adapter/persistence/repository"
	"salespipeline/internal/infrastructure/config"
	"salespipeline/internal/infrastructure/crm"
	"salespipeline/internal/infrastructure/database"
	"salespipeline/internal/infrastructure/dedupe"
	"salespipeline/internal/infrastructure/esignature"
	"salespipeline/internal/infrastructure/storage"
	"salespipeline/internal/usecase"
	"salespipeline/internal/usecase/interfaces"
)

type Container struct {
	Config config.Config

	QuoteRequests usecase.IQuoteRequestUseCase
	Quotes        usecase.IQuoteUseCase
	Contracts     usecase.IContractUseCase
	Store         usecase.IEntityStore
	DealSync      usecase.IDealSyncUseCase
	EnvelopeSync  usecase.IEnvelopeSyncUseCase
	Dispatcher    usecase.IWebhookDispatcher
	Reconcile     usecase.IContractReconcileUseCase
	Audit         usecase.ISyncAuditLog

	closers []io.Closer
}

type repositories struct {
	quoteRequests interfaces.IQuoteRequestRepository
	quotes        interfaces.IQuoteRepository
	contracts     interfaces.IContractRepository
}

func New(ctx context.Context, cfg config.Config) (*Container, error) {
	c := &Container{Config: cfg}

	repos, err := newRepositories(cfg)
	if err != nil {
		return nil, err
	}
	auditRepo, err := c.newAuditRepository(cfg)
	if err != nil {
		return nil, err
	}
	crmGateway, err := crm.NewGateway(cfg.CRM, cfg.ExternalCallTimeout)
	if err != nil {
		return nil, fmt.Errorf("crm gateway: %w", err)
	}
	esignGateway, err := esignature.NewGateway(cfg.ESignature, cfg.ExternalCallTimeout)
	if err != nil {
		return nil, fmt.Errorf("e-signature gateway: %w", err)
	}
	docStore, err := storage.New(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("document store: %w", err)
	}
	deduper, err := c.newDeduper(ctx, cfg)
	if err != nil {
		return nil, err
	}

	store := usecase.NewEntityStore(repos.quoteRequests, repos.quotes, repos.contracts)
	audit := usecase.NewSyncAuditLog(auditRepo)
	archiver := usecase.NewDocumentArchiver(docStore, cfg.ExternalCallTimeout).WithBucket(cfg.Documents.Bucket)
	dealSync := usecase.NewDealSyncUseCase(store, crmGateway, audit, cfg.ExternalCallTimeout)
	dispatcher := usecase.NewWebhookDispatcherUseCase(store, esignGateway, archiver, dealSync, audit, cfg.ExternalCallTimeout).
		WithDeduper(deduper, cfg.WebhookDedupeTTL)

	c.Store = store
	c.Audit = audit
	c.QuoteRequests = usecase.NewQuoteRequestUseCase(store)
	c.Quotes = usecase.NewQuoteUseCase(store)
	c.Contracts = usecase.NewContractUseCase(store)
	c.DealSync = dealSync
	c.EnvelopeSync = usecase.NewEnvelopeSyncUseCase(store, esignGateway, audit, cfg.ExternalCallTimeout)
	c.Dispatcher = dispatcher
	c.Reconcile = usecase.NewContractReconcileUseCase(store, esignGateway, dispatcher, audit, cfg.ExternalCallTimeout)

	log.Printf("[bootstrap] container ready store=%s documents=%s crm_mock=%t esign_mock=%t",
		cfg.StoreBackend, cfg.Documents.Backend, cfg.CRM.Mock, cfg.ESignature.Mock)
	return c, nil
}

func newRepositories(cfg config.Config) (repositories, error) {
	switch cfg.StoreBackend {
	case config.StoreBackendMemory:
		log.Printf("[bootstrap] using in-memory entity store")
		return repositories{
			quoteRequests: memory.NewQuoteRequestRepository(),
			quotes:        memory.NewQuoteRepository(),
			contracts:     memory.NewContractRepository(),
		}, nil
	case config.StoreBackendDynamoDB:
		ddb := database.ConnectDynamoDB(cfg.AWS)
		return repositories{
			quoteRequests: repository.NewQuoteRequestDynamoRepository(ddb, cfg.Tables.QuoteRequests),
			quotes:        repository.NewQuoteDynamoRepository(ddb, cfg.Tables.Quotes),
			contracts:     repository.NewContractDynamoRepository(ddb, cfg.Tables.Contracts),
		}, nil
	default:
		return repositories{}, fmt.Errorf("unsupported store backend %q", cfg.StoreBackend)
	}
}

// newAuditRepository opens PostgreSQL lazily; a database that is down at boot
// only fails audit writes, which the audit log swallows.
func (c *Container) newAuditRepository(cfg config.Config) (interfaces.IAuditLogRepository, error) {
	if cfg.AuditDatabaseURL == "" {
		log.Printf("[bootstrap] AUDIT_DATABASE_URL not set, audit log kept in memory")
		return memory.NewAuditLogRepository(), nil
	}
	repo, err := repository.NewAuditLogPostgresRepository(cfg.AuditDatabaseURL, cfg.Tables.Audit)
	if err != nil {
		return nil, fmt.Errorf("audit repository: %w", err)
	}
	c.closers = append(c.closers, repo)
	return repo, nil
}

func (c *Container) newDeduper(ctx context.Context, cfg config.Config) (interfaces.IDeliveryDeduper, error) {
	if cfg.RedisAddr == "" {
		return dedupe.NewLocalDeliveryDeduper(), nil
	}
	client, err := dedupe.Connect(ctx, cfg.RedisAddr)
	if err != nil {
		return nil, fmt.Errorf("redis: %w", err)
	}
	c.closers = append(c.closers, client)
	return dedupe.NewRedisDeliveryDeduper(client), nil
}

func (c *Container) Close() error {
	var first error
	for _, cl := range c.closers {
		if err := cl.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
