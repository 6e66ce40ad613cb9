package usecase

import (
	"context"
	"testing"
	"time"

	"salespipeline/internal/adapter/persistence/memory"
	"salespipeline/internal/domain/entities"
)

var fixedNow = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

type fixture struct {
	store     *EntityStore
	auditRepo *memory.AuditLogRepository
	audit     *SyncAuditLog
}

func newFixture() *fixture {
	clock := func() time.Time { return fixedNow }
	repo := memory.NewAuditLogRepository()
	return &fixture{
		store:     NewEntityStore(memory.NewQuoteRequestRepository(), memory.NewQuoteRepository(), memory.NewContractRepository()).WithClock(clock),
		auditRepo: repo,
		audit:     NewSyncAuditLog(repo).WithClock(clock),
	}
}

func (f *fixture) quoteRequest(t *testing.T, email string) entities.QuoteRequest {
	t.Helper()
	qr, err := f.store.CreateQuoteRequest(context.Background(), entities.QuoteRequest{
		Name:     "Ana Souza",
		Email:    email,
		Company:  "Acme",
		Services: []string{"Web Design"},
	})
	if err != nil {
		t.Fatalf("create quote request: %v", err)
	}
	return qr
}

// quote creates a draft quote of 1500 for a fresh quote request.
func (f *fixture) quote(t *testing.T) entities.Quote {
	t.Helper()
	qr := f.quoteRequest(t, "ana@acme.com")
	q, err := NewQuoteUseCase(f.store).CreateFromQuoteRequest(context.Background(), qr.ID, CreateQuoteInput{
		CreatedBy: "emp-1",
		LineItems: []entities.LineItem{{Description: "Landing page", Quantity: 1, UnitPrice: 1500}},
	})
	if err != nil {
		t.Fatalf("create quote: %v", err)
	}
	return q
}

func (f *fixture) linkedQuote(t *testing.T, dealID string) entities.Quote {
	t.Helper()
	q := f.quote(t)
	q, err := f.store.SetQuoteExternalDealID(context.Background(), q.ID, dealID)
	if err != nil {
		t.Fatalf("link quote: %v", err)
	}
	return q
}

// sentContract records a contract out for signature and moves its quote to
// contract_sent.
func (f *fixture) sentContract(t *testing.T, q entities.Quote, seq int, envelopeID string) entities.Contract {
	t.Helper()
	ctx := context.Background()
	c, err := f.store.CreateContract(ctx, entities.Contract{
		ContractNumber: entities.ContractNumberFor(q.QuoteNumber, seq),
		QuoteID:        q.ID,
		EnvelopeID:     envelopeID,
		TemplateID:     "tpl-1",
		Signer:         entities.Signer{Name: "Ana Souza", Email: "ana@acme.com"},
	})
	if err != nil {
		t.Fatalf("create contract: %v", err)
	}
	current, err := f.store.GetQuote(ctx, q.ID)
	if err != nil {
		t.Fatalf("get quote: %v", err)
	}
	if current.Status != entities.QuoteStatusContractSent {
		if _, err := f.store.TransitionQuote(ctx, q.ID, current.Status, entities.QuoteStatusContractSent); err != nil {
			t.Fatalf("transition quote: %v", err)
		}
	}
	return c
}

// contractedQuote signs a contract for q and moves q to contracted.
func (f *fixture) contractedQuote(t *testing.T, q entities.Quote) entities.Quote {
	t.Helper()
	ctx := context.Background()
	c := f.sentContract(t, q, 1, "env-"+q.ID)
	if _, err := f.store.TransitionContract(ctx, c.ID, entities.ContractStatusSent, entities.ContractStatusSigned, entities.ContractPatch{ArchivedDocumentPath: "contracts/" + c.ContractNumber + "_signed.pdf"}); err != nil {
		t.Fatalf("sign contract: %v", err)
	}
	contracted, err := f.store.TransitionQuote(ctx, q.ID, entities.QuoteStatusContractSent, entities.QuoteStatusContracted)
	if err != nil {
		t.Fatalf("contract quote: %v", err)
	}
	return contracted
}

func (f *fixture) auditFor(t *testing.T, id, op string) []entities.SyncAuditEntry {
	t.Helper()
	entries, err := f.auditRepo.List(context.Background(), entities.AuditFilter{EntityID: id, Operation: op})
	if err != nil {
		t.Fatalf("list audit: %v", err)
	}
	return entries
}

func (f *fixture) mustQuote(t *testing.T, id string) entities.Quote {
	t.Helper()
	q, err := f.store.GetQuote(context.Background(), id)
	if err != nil {
		t.Fatalf("get quote: %v", err)
	}
	return q
}

func (f *fixture) mustContract(t *testing.T, id string) entities.Contract {
	t.Helper()
	c, err := f.store.GetContract(context.Background(), id)
	if err != nil {
		t.Fatalf("get contract: %v", err)
	}
	return c
}

var pdfDocument = []byte("%PDF-1.4\n1 0 obj\n<< /Type /Catalog >>\nendobj\n%%EOF\n")
