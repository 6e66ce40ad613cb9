package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"salespipeline/internal/domain/entities"
	mock_interfaces "salespipeline/internal/usecase/interfaces/mocks"

	"go.uber.org/mock/gomock"
)

type dispatcherDeps struct {
	esign   *mock_interfaces.MockIESignatureGateway
	docs    *mock_interfaces.MockIDocumentStore
	deduper *mock_interfaces.MockIDeliveryDeduper
}

func newDispatcher(t *testing.T, f *fixture, dealSync IDealSyncUseCase) (*WebhookDispatcherUseCase, dispatcherDeps) {
	t.Helper()
	ctrl := gomock.NewController(t)
	deps := dispatcherDeps{
		esign:   mock_interfaces.NewMockIESignatureGateway(ctrl),
		docs:    mock_interfaces.NewMockIDocumentStore(ctrl),
		deduper: mock_interfaces.NewMockIDeliveryDeduper(ctrl),
	}
	archiver := NewDocumentArchiver(deps.docs, 0)
	uc := NewWebhookDispatcherUseCase(f.store, deps.esign, archiver, dealSync, f.audit, 0).
		WithClock(func() time.Time { return fixedNow })
	return uc, deps
}

func TestWebhookDispatcher_HandleEnvelopeEvent(t *testing.T) {
	ctx := context.Background()
	completed := func(envelopeID string) EnvelopeEvent {
		return EnvelopeEvent{EnvelopeID: envelopeID, Status: "Completed"}
	}

	t.Run("completed envelope signs contract and quote", func(t *testing.T) {
		f := newFixture()
		uc, deps := newDispatcher(t, f, nil)
		q := f.quote(t)
		c := f.sentContract(t, q, 1, "env-1")

		deps.esign.EXPECT().DownloadCombinedDocument(gomock.Any(), "env-1").Return(pdfDocument, nil)
		deps.docs.EXPECT().Put(gomock.Any(), ContractsBucket, c.ContractNumber+"_signed.pdf", pdfDocument, "application/pdf").Return(nil)

		res := uc.HandleEnvelopeEvent(ctx, completed("env-1"))
		if res.Outcome != DispatchSigned || res.Retryable {
			t.Fatalf("unexpected result: %+v", res)
		}
		stored := f.mustContract(t, c.ID)
		if stored.Status != entities.ContractStatusSigned {
			t.Fatalf("expected signed, got %s", stored.Status)
		}
		if want := "contracts/" + c.ContractNumber + "_signed.pdf"; stored.ArchivedDocumentPath != want {
			t.Fatalf("expected path %s, got %s", want, stored.ArchivedDocumentPath)
		}
		if stored.SignedAt == nil || !stored.SignedAt.Equal(fixedNow) {
			t.Fatalf("expected signed_at %s, got %v", fixedNow, stored.SignedAt)
		}
		if got := f.mustQuote(t, q.ID).Status; got != entities.QuoteStatusContracted {
			t.Fatalf("expected contracted, got %s", got)
		}
		if entries := f.auditFor(t, q.ID, OpMarkQuoteContracted); len(entries) != 1 {
			t.Fatalf("expected cascade audit, got %+v", entries)
		}
	})

	t.Run("duplicate completion is idempotent", func(t *testing.T) {
		f := newFixture()
		uc, deps := newDispatcher(t, f, nil)
		q := f.quote(t)
		c := f.sentContract(t, q, 1, "env-1")

		deps.esign.EXPECT().DownloadCombinedDocument(gomock.Any(), "env-1").Return(pdfDocument, nil).Times(1)
		deps.docs.EXPECT().Put(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).Times(1)

		first := uc.HandleEnvelopeEvent(ctx, completed("env-1"))
		signed := f.mustContract(t, c.ID)
		second := uc.HandleEnvelopeEvent(ctx, completed("env-1"))

		if first.Outcome != DispatchSigned || second.Outcome != DispatchDuplicate {
			t.Fatalf("expected signed then duplicate, got %s then %s", first.Outcome, second.Outcome)
		}
		after := f.mustContract(t, c.ID)
		if !after.SignedAt.Equal(*signed.SignedAt) || after.ArchivedDocumentPath != signed.ArchivedDocumentPath {
			t.Fatalf("contract changed on redelivery: %+v", after)
		}
	})

	t.Run("unknown envelope is audited without mutation", func(t *testing.T) {
		f := newFixture()
		uc, _ := newDispatcher(t, f, nil)
		q := f.quote(t)
		c := f.sentContract(t, q, 1, "env-1")

		res := uc.HandleEnvelopeEvent(ctx, completed("env-unknown"))
		if res.Outcome != DispatchNotFound || res.Retryable {
			t.Fatalf("unexpected result: %+v", res)
		}
		entries := f.auditFor(t, "", OpEnvelopeStatus)
		if len(entries) != 1 || entries[0].ErrorClass != entities.ErrorClassNotFound {
			t.Fatalf("expected not_found entry, got %+v", entries)
		}
		if got := f.mustContract(t, c.ID).Status; got != entities.ContractStatusSent {
			t.Fatalf("expected sent, got %s", got)
		}
	})

	t.Run("non-completed status is ignored", func(t *testing.T) {
		f := newFixture()
		uc, _ := newDispatcher(t, f, nil)
		q := f.quote(t)
		c := f.sentContract(t, q, 1, "env-1")

		res := uc.HandleEnvelopeEvent(ctx, EnvelopeEvent{EnvelopeID: "env-1", Status: "delivered"})
		if res.Outcome != DispatchIgnored {
			t.Fatalf("expected ignored, got %s", res.Outcome)
		}
		if got := f.mustContract(t, c.ID).Status; got != entities.ContractStatusSent {
			t.Fatalf("expected sent, got %s", got)
		}
	})

	t.Run("download failure leaves contract sent", func(t *testing.T) {
		f := newFixture()
		uc, deps := newDispatcher(t, f, nil)
		q := f.quote(t)
		c := f.sentContract(t, q, 1, "env-1")

		deps.esign.EXPECT().DownloadCombinedDocument(gomock.Any(), "env-1").Return(nil, errors.New("503 from provider"))

		res := uc.HandleEnvelopeEvent(ctx, completed("env-1"))
		if res.Outcome != DispatchDownloadFailed || !res.Retryable {
			t.Fatalf("unexpected result: %+v", res)
		}
		stored := f.mustContract(t, c.ID)
		if stored.Status != entities.ContractStatusSent || stored.ArchivedDocumentPath != "" {
			t.Fatalf("contract mutated: %+v", stored)
		}
		if got := f.mustQuote(t, q.ID).Status; got != entities.QuoteStatusContractSent {
			t.Fatalf("expected contract_sent, got %s", got)
		}
		entries := f.auditFor(t, c.ID, OpDownloadDocument)
		if len(entries) != 1 || entries[0].ErrorClass != entities.ErrorClassExternalService {
			t.Fatalf("expected external_service entry, got %+v", entries)
		}
	})

	t.Run("archive failure leaves contract sent", func(t *testing.T) {
		f := newFixture()
		uc, deps := newDispatcher(t, f, nil)
		q := f.quote(t)
		c := f.sentContract(t, q, 1, "env-1")

		deps.esign.EXPECT().DownloadCombinedDocument(gomock.Any(), "env-1").Return(pdfDocument, nil)
		deps.docs.EXPECT().Put(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("bucket unavailable"))

		res := uc.HandleEnvelopeEvent(ctx, completed("env-1"))
		if res.Outcome != DispatchArchiveFailed || !res.Retryable {
			t.Fatalf("unexpected result: %+v", res)
		}
		if got := f.mustContract(t, c.ID).Status; got != entities.ContractStatusSent {
			t.Fatalf("expected sent, got %s", got)
		}
		entries := f.auditFor(t, c.ID, OpArchiveDocument)
		if len(entries) != 1 || entries[0].ErrorClass != entities.ErrorClassArchive {
			t.Fatalf("expected archive entry, got %+v", entries)
		}
	})

	t.Run("signed sibling blocks a second signature", func(t *testing.T) {
		f := newFixture()
		uc, _ := newDispatcher(t, f, nil)
		q := f.quote(t)
		first := f.sentContract(t, q, 1, "env-1")
		second := f.sentContract(t, q, 2, "env-2")
		if _, err := f.store.TransitionContract(ctx, first.ID, entities.ContractStatusSent, entities.ContractStatusSigned, entities.ContractPatch{ArchivedDocumentPath: "contracts/x_signed.pdf"}); err != nil {
			t.Fatalf("setup: %v", err)
		}

		res := uc.HandleEnvelopeEvent(ctx, completed("env-2"))
		if res.Outcome != DispatchIgnored {
			t.Fatalf("expected ignored, got %+v", res)
		}
		if got := f.mustContract(t, second.ID).Status; got != entities.ContractStatusSent {
			t.Fatalf("expected sent, got %s", got)
		}
	})

	t.Run("concurrent completions have one winner", func(t *testing.T) {
		f := newFixture()
		uc, deps := newDispatcher(t, f, nil)
		q := f.quote(t)
		c := f.sentContract(t, q, 1, "env-1")

		deps.esign.EXPECT().DownloadCombinedDocument(gomock.Any(), "env-1").Return(pdfDocument, nil).AnyTimes()
		deps.docs.EXPECT().Put(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

		const deliveries = 8
		results := make([]DispatchResult, deliveries)
		var wg sync.WaitGroup
		for i := 0; i < deliveries; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				results[i] = uc.HandleEnvelopeEvent(ctx, completed("env-1"))
			}(i)
		}
		wg.Wait()

		signed := 0
		for _, r := range results {
			switch r.Outcome {
			case DispatchSigned:
				signed++
			case DispatchDuplicate:
			default:
				t.Fatalf("unexpected outcome: %+v", r)
			}
		}
		if signed != 1 {
			t.Fatalf("expected exactly one winner, got %d", signed)
		}
		if got := f.mustContract(t, c.ID).Status; got != entities.ContractStatusSigned {
			t.Fatalf("expected signed, got %s", got)
		}
		if entries := f.auditFor(t, q.ID, OpMarkQuoteContracted); len(entries) != 1 {
			t.Fatalf("expected one cascade, got %d", len(entries))
		}
	})

	t.Run("held delivery is reported as duplicate", func(t *testing.T) {
		f := newFixture()
		uc, deps := newDispatcher(t, f, nil)
		uc.WithDeduper(deps.deduper, 0)
		q := f.quote(t)
		f.sentContract(t, q, 1, "env-1")

		deps.deduper.EXPECT().Claim(gomock.Any(), "envelope-completed:env-1", defaultDedupeTTL).Return(false, nil)

		if res := uc.HandleEnvelopeEvent(ctx, completed("env-1")); res.Outcome != DispatchDuplicate {
			t.Fatalf("expected duplicate, got %+v", res)
		}
	})

	t.Run("claim is released after a retryable failure", func(t *testing.T) {
		f := newFixture()
		uc, deps := newDispatcher(t, f, nil)
		uc.WithDeduper(deps.deduper, 0)
		q := f.quote(t)
		f.sentContract(t, q, 1, "env-1")

		deps.deduper.EXPECT().Claim(gomock.Any(), "envelope-completed:env-1", gomock.Any()).Return(true, nil)
		deps.esign.EXPECT().DownloadCombinedDocument(gomock.Any(), "env-1").Return(nil, nil)
		deps.deduper.EXPECT().Release(gomock.Any(), "envelope-completed:env-1").Return(nil)

		if res := uc.HandleEnvelopeEvent(ctx, completed("env-1")); res.Outcome != DispatchDownloadFailed {
			t.Fatalf("expected download_failed, got %+v", res)
		}
	})

	t.Run("deduper outage does not block delivery", func(t *testing.T) {
		f := newFixture()
		uc, deps := newDispatcher(t, f, nil)
		uc.WithDeduper(deps.deduper, 0)
		q := f.quote(t)
		f.sentContract(t, q, 1, "env-1")

		deps.deduper.EXPECT().Claim(gomock.Any(), gomock.Any(), gomock.Any()).Return(false, errors.New("redis down"))
		deps.esign.EXPECT().DownloadCombinedDocument(gomock.Any(), "env-1").Return(pdfDocument, nil)
		deps.docs.EXPECT().Put(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

		if res := uc.HandleEnvelopeEvent(ctx, completed("env-1")); res.Outcome != DispatchSigned {
			t.Fatalf("expected signed, got %+v", res)
		}
	})
}

type dealSyncStub struct {
	IDealSyncUseCase
	res DealSyncResult
	err error
}

func (s dealSyncStub) SyncDealFromCRM(context.Context, string) (DealSyncResult, error) {
	return s.res, s.err
}

func TestWebhookDispatcher_HandleDealEvent(t *testing.T) {
	ctx := context.Background()

	t.Run("synced", func(t *testing.T) {
		uc, _ := newDispatcher(t, newFixture(), dealSyncStub{res: DealSyncResult{QuoteID: "q-1", Outcome: DealSyncUpdated}})
		res, err := uc.HandleDealEvent(ctx, DealEvent{DealID: "d-1"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.Outcome != DispatchDealSynced || res.QuoteID != "q-1" || res.Detail != string(DealSyncUpdated) {
			t.Fatalf("unexpected result: %+v", res)
		}
	})

	t.Run("ignored deal", func(t *testing.T) {
		uc, _ := newDispatcher(t, newFixture(), dealSyncStub{res: DealSyncResult{Outcome: DealSyncIgnored}})
		res, _ := uc.HandleDealEvent(ctx, DealEvent{DealID: "d-1"})
		if res.Outcome != DispatchIgnored {
			t.Fatalf("expected ignored, got %s", res.Outcome)
		}
	})

	t.Run("external failure is retryable", func(t *testing.T) {
		cause := entities.NewExternalServiceError(entities.ExternalSystemCRM, "get_deal", 500, errors.New("boom"))
		uc, _ := newDispatcher(t, newFixture(), dealSyncStub{err: cause})
		res, err := uc.HandleDealEvent(ctx, DealEvent{DealID: "d-1"})
		if !errors.Is(err, cause) {
			t.Fatalf("expected cause, got %v", err)
		}
		if res.Outcome != DispatchFailed || !res.Retryable {
			t.Fatalf("unexpected result: %+v", res)
		}
	})

	t.Run("store failure is retryable", func(t *testing.T) {
		uc, _ := newDispatcher(t, newFixture(), dealSyncStub{err: errors.New("dynamodb: ProvisionedThroughputExceededException")})
		res, err := uc.HandleDealEvent(ctx, DealEvent{DealID: "d-1"})
		if err == nil || res.Outcome != DispatchFailed || !res.Retryable {
			t.Fatalf("expected retryable failure, got %+v err=%v", res, err)
		}
	})

	t.Run("unknown quote is not retryable", func(t *testing.T) {
		uc, _ := newDispatcher(t, newFixture(), dealSyncStub{err: entities.ErrQuoteNotFound})
		res, _ := uc.HandleDealEvent(ctx, DealEvent{DealID: "d-1"})
		if res.Retryable {
			t.Fatalf("expected non-retryable failure, got %+v", res)
		}
	})

	t.Run("data quality failure is not retryable", func(t *testing.T) {
		uc, _ := newDispatcher(t, newFixture(), dealSyncStub{err: &entities.DataQualityError{Field: "dealId", Reason: "missing"}})
		res, err := uc.HandleDealEvent(ctx, DealEvent{})
		if err == nil || res.Retryable {
			t.Fatalf("expected non-retryable failure, got %+v err=%v", res, err)
		}
	})
}
