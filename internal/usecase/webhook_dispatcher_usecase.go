package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"salespipeline/internal/domain/entities"
	"salespipeline/internal/usecase/interfaces"
)

const (
	OpEnvelopeStatus       = "envelope_status"
	OpDownloadDocument     = "download_document"
	OpArchiveDocument      = "archive_document"
	OpMarkContractSigned   = "mark_contract_signed"
	OpMarkQuoteContracted  = "mark_quote_contracted"
	EnvelopeStatusComplete = "completed"

	defaultDedupeTTL = 10 * time.Minute
)

type DispatchOutcome string

const (
	DispatchSigned         DispatchOutcome = "signed"
	DispatchIgnored        DispatchOutcome = "ignored"
	DispatchNotFound       DispatchOutcome = "not_found"
	DispatchDuplicate      DispatchOutcome = "duplicate"
	DispatchDownloadFailed DispatchOutcome = "download_failed"
	DispatchArchiveFailed  DispatchOutcome = "archive_failed"
	DispatchFailed         DispatchOutcome = "failed"
	DispatchDealSynced     DispatchOutcome = "deal_synced"
)

// DispatchResult is returned for every delivery. Retryable outcomes left the
// entities untouched so a redelivery or reconciliation can finish the work.
type DispatchResult struct {
	Outcome    DispatchOutcome `json:"outcome"`
	ContractID string          `json:"contract_id,omitempty"`
	QuoteID    string          `json:"quote_id,omitempty"`
	Retryable  bool            `json:"retryable"`
	Detail     string          `json:"detail,omitempty"`
}

type EnvelopeEvent struct {
	EnvelopeID string
	Status     string
}

type DealEvent struct {
	DealID     string
	Properties interfaces.CRMDealProperties
}

// IWebhookDispatcher handles inbound provider events, one delivery at a time.
// Deliveries are independent; no state is kept between calls.
type IWebhookDispatcher interface {
	HandleEnvelopeEvent(ctx context.Context, ev EnvelopeEvent) DispatchResult
	HandleDealEvent(ctx context.Context, ev DealEvent) (DispatchResult, error)
}

type WebhookDispatcherUseCase struct {
	store     IEntityStore
	esign     interfaces.IESignatureGateway
	archiver  IDocumentArchiver
	dealSync  IDealSyncUseCase
	audit     ISyncAuditLog
	deduper   interfaces.IDeliveryDeduper
	dedupeTTL time.Duration
	timeout   time.Duration
	now       Clock
}

var _ IWebhookDispatcher = (*WebhookDispatcherUseCase)(nil)

func NewWebhookDispatcherUseCase(store IEntityStore, esign interfaces.IESignatureGateway, archiver IDocumentArchiver, dealSync IDealSyncUseCase, audit ISyncAuditLog, timeout time.Duration) *WebhookDispatcherUseCase {
	return &WebhookDispatcherUseCase{
		store:     store,
		esign:     esign,
		archiver:  archiver,
		dealSync:  dealSync,
		audit:     audit,
		dedupeTTL: defaultDedupeTTL,
		timeout:   timeout,
		now:       systemClock,
	}
}

func (u *WebhookDispatcherUseCase) WithDeduper(d interfaces.IDeliveryDeduper, ttl time.Duration) *WebhookDispatcherUseCase {
	u.deduper = d
	if ttl > 0 {
		u.dedupeTTL = ttl
	}
	return u
}

func (u *WebhookDispatcherUseCase) WithClock(c Clock) *WebhookDispatcherUseCase {
	u.now = c
	return u
}

// HandleEnvelopeEvent only acts on completed envelopes: download, archive,
// sign the contract, then mark its quote contracted. Download and archive
// failures are audited and reported, never raised.
func (u *WebhookDispatcherUseCase) HandleEnvelopeEvent(ctx context.Context, ev EnvelopeEvent) DispatchResult {
	envelopeID := strings.TrimSpace(ev.EnvelopeID)
	status := strings.ToLower(strings.TrimSpace(ev.Status))
	log.Printf("[webhook][usecase] envelope event envelope_id=%s status=%s", envelopeID, status)

	contract, err := u.store.GetContractByEnvelopeID(ctx, envelopeID)
	if err != nil {
		if errors.Is(err, entities.ErrNotFound) {
			e := auditEntry(entities.EntityKindContract, "", entities.ExternalSystemESignature, OpEnvelopeStatus, entities.SyncDirectionInbound, err)
			e.ErrorDetail = fmt.Sprintf("envelope %s (status %s) has no local contract", envelopeID, status)
			u.audit.Record(ctx, e)
			return DispatchResult{Outcome: DispatchNotFound, Detail: e.ErrorDetail}
		}
		log.Printf("[webhook][usecase] contract lookup failed envelope_id=%s err=%v", envelopeID, err)
		return DispatchResult{Outcome: DispatchFailed, Retryable: true, Detail: err.Error()}
	}

	res := DispatchResult{ContractID: contract.ID, QuoteID: contract.QuoteID}
	if status != EnvelopeStatusComplete {
		u.audit.Record(ctx, auditNote(entities.EntityKindContract, contract.ID, entities.ExternalSystemESignature, OpEnvelopeStatus, entities.SyncDirectionInbound, "envelope status "+status))
		res.Outcome = DispatchIgnored
		return res
	}
	if contract.Status == entities.ContractStatusSigned {
		log.Printf("[webhook][usecase] duplicate completion contract_id=%s", contract.ID)
		u.audit.Record(ctx, auditNote(entities.EntityKindContract, contract.ID, entities.ExternalSystemESignature, OpEnvelopeStatus, entities.SyncDirectionInbound, "duplicate completion; already signed"))
		res.Outcome = DispatchDuplicate
		return res
	}
	if contract.Status != entities.ContractStatusSent {
		err := &entities.InvalidTransitionError{Kind: entities.EntityKindContract, ID: contract.ID, From: string(contract.Status), To: string(entities.ContractStatusSigned)}
		u.audit.Record(ctx, auditEntry(entities.EntityKindContract, contract.ID, entities.ExternalSystemESignature, OpMarkContractSigned, entities.SyncDirectionInbound, err))
		res.Outcome = DispatchIgnored
		res.Detail = err.Error()
		return res
	}

	if u.deduper != nil {
		key := "envelope-completed:" + envelopeID
		claimed, err := u.deduper.Claim(ctx, key, u.dedupeTTL)
		if err != nil {
			log.Printf("[webhook][usecase] dedupe claim failed envelope_id=%s err=%v", envelopeID, err)
		} else if !claimed {
			log.Printf("[webhook][usecase] delivery already in flight envelope_id=%s", envelopeID)
			res.Outcome = DispatchDuplicate
			return res
		} else {
			defer func() {
				if res.Retryable {
					if err := u.deduper.Release(context.WithoutCancel(ctx), key); err != nil {
						log.Printf("[webhook][usecase] dedupe release failed envelope_id=%s err=%v", envelopeID, err)
					}
				}
			}()
		}
	}

	res = u.completeContract(ctx, contract)
	return res
}

func (u *WebhookDispatcherUseCase) completeContract(ctx context.Context, contract entities.Contract) DispatchResult {
	res := DispatchResult{ContractID: contract.ID, QuoteID: contract.QuoteID}

	if sibling, err := u.signedSibling(ctx, contract); err != nil {
		log.Printf("[webhook][usecase] sibling lookup failed contract_id=%s err=%v", contract.ID, err)
		res.Outcome, res.Retryable, res.Detail = DispatchFailed, true, err.Error()
		return res
	} else if sibling != "" {
		err := &entities.InvalidTransitionError{Kind: entities.EntityKindContract, ID: contract.ID, From: string(contract.Status), To: string(entities.ContractStatusSigned)}
		e := auditEntry(entities.EntityKindContract, contract.ID, entities.ExternalSystemESignature, OpMarkContractSigned, entities.SyncDirectionInbound, err)
		e.ErrorDetail = fmt.Sprintf("quote %s already has signed contract %s", contract.QuoteID, sibling)
		u.audit.Record(ctx, e)
		res.Outcome, res.Detail = DispatchIgnored, e.ErrorDetail
		return res
	}

	if u.esign == nil {
		res.Outcome, res.Retryable, res.Detail = DispatchDownloadFailed, true, "e-signature gateway not configured"
		return res
	}
	cctx, cancel := withCallTimeout(ctx, u.timeout)
	document, err := u.esign.DownloadCombinedDocument(cctx, contract.EnvelopeID)
	cancel()
	if err == nil && len(document) == 0 {
		err = errors.New("empty document")
	}
	if err != nil {
		err = asExternal(entities.ExternalSystemESignature, "download_document", err)
		log.Printf("[webhook][usecase] download failed contract_id=%s envelope_id=%s err=%v", contract.ID, contract.EnvelopeID, err)
		u.audit.Record(ctx, auditEntry(entities.EntityKindContract, contract.ID, entities.ExternalSystemESignature, OpDownloadDocument, entities.SyncDirectionInbound, err))
		res.Outcome, res.Retryable, res.Detail = DispatchDownloadFailed, true, err.Error()
		return res
	}

	path, err := u.archiver.Archive(ctx, contract.ContractNumber, document)
	u.audit.Record(ctx, auditEntry(entities.EntityKindContract, contract.ID, entities.ExternalSystemDocumentStore, OpArchiveDocument, entities.SyncDirectionOutbound, err))
	if err != nil {
		res.Outcome, res.Retryable, res.Detail = DispatchArchiveFailed, true, err.Error()
		return res
	}

	signedAt := u.now()
	signed, err := u.store.TransitionContract(ctx, contract.ID, entities.ContractStatusSent, entities.ContractStatusSigned, entities.ContractPatch{
		SignedAt:             &signedAt,
		ArchivedDocumentPath: path,
	})
	u.audit.Record(ctx, auditEntry(entities.EntityKindContract, contract.ID, entities.ExternalSystemLocal, OpMarkContractSigned, entities.SyncDirectionInbound, err))
	if err != nil {
		if errors.Is(err, entities.ErrInvalidTransition) {
			// A concurrent delivery won the compare-and-set.
			log.Printf("[webhook][usecase] contract already transitioned contract_id=%s err=%v", contract.ID, err)
			res.Outcome, res.Detail = DispatchDuplicate, err.Error()
			return res
		}
		log.Printf("[webhook][usecase] contract transition failed contract_id=%s err=%v", contract.ID, err)
		res.Outcome, res.Retryable, res.Detail = DispatchFailed, true, err.Error()
		return res
	}
	log.Printf("[webhook][usecase] contract signed contract_id=%s path=%s", signed.ID, signed.ArchivedDocumentPath)

	res.Outcome = DispatchSigned
	if signed.QuoteID != "" {
		u.cascadeQuote(ctx, signed)
	}
	return res
}

// cascadeQuote moves the contract's quote to contracted whatever its current
// status is, as long as the allow-list has the edge.
func (u *WebhookDispatcherUseCase) cascadeQuote(ctx context.Context, contract entities.Contract) {
	quote, err := u.store.GetQuote(ctx, contract.QuoteID)
	if err == nil && quote.Status == entities.QuoteStatusContracted {
		return
	}
	if err == nil {
		_, err = u.store.TransitionQuote(ctx, quote.ID, quote.Status, entities.QuoteStatusContracted)
	}
	u.audit.Record(ctx, auditEntry(entities.EntityKindQuote, contract.QuoteID, entities.ExternalSystemLocal, OpMarkQuoteContracted, entities.SyncDirectionInbound, err))
	if err != nil {
		log.Printf("[webhook][usecase] quote cascade failed quote_id=%s contract_id=%s err=%v", contract.QuoteID, contract.ID, err)
	}
}

func (u *WebhookDispatcherUseCase) signedSibling(ctx context.Context, contract entities.Contract) (string, error) {
	if contract.QuoteID == "" {
		return "", nil
	}
	siblings, err := u.store.ListContracts(ctx, entities.ContractFilter{QuoteID: contract.QuoteID, Status: entities.ContractStatusSigned})
	if err != nil {
		return "", err
	}
	for _, s := range siblings {
		if s.ID != contract.ID {
			return s.ID, nil
		}
	}
	return "", nil
}

// HandleDealEvent routes CRM deal changes to the deal sync. The payload is
// only a trigger: properties are re-read from the CRM.
func (u *WebhookDispatcherUseCase) HandleDealEvent(ctx context.Context, ev DealEvent) (DispatchResult, error) {
	if u.dealSync == nil {
		return DispatchResult{Outcome: DispatchFailed}, errors.New("deal sync not configured")
	}
	r, err := u.dealSync.SyncDealFromCRM(ctx, ev.DealID)
	res := DispatchResult{QuoteID: r.QuoteID, Outcome: DispatchDealSynced, Detail: string(r.Outcome)}
	if r.Outcome == DealSyncIgnored {
		res.Outcome = DispatchIgnored
	}
	if err != nil {
		res.Outcome = DispatchFailed
		res.Retryable = dealFailureRetryable(err)
		res.Detail = err.Error()
		return res, err
	}
	return res, nil
}

// dealFailureRetryable asks the CRM to redeliver unless the event itself can
// never succeed. Store failures are transient and must not be acknowledged.
func dealFailureRetryable(err error) bool {
	var dqe *entities.DataQualityError
	switch {
	case errors.As(err, &dqe),
		errors.Is(err, entities.ErrNotFound),
		errors.Is(err, entities.ErrInvalidTransition),
		errors.Is(err, ErrInvalidID):
		return false
	}
	return true
}
