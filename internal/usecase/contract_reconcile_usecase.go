package usecase

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"salespipeline/internal/domain/entities"
	"salespipeline/internal/usecase/interfaces"
)

const (
	OpExpireContract    = "expire_contract"
	OpReconcileContract = "reconcile_contract"
)

type ReconcileReport struct {
	Checked  int `json:"checked"`
	Signed   int `json:"signed"`
	Expired  int `json:"expired"`
	Declined int `json:"declined"`
	Voided   int `json:"voided"`
	Pending  int `json:"pending"`
	Failed   int `json:"failed"`
}

// IContractReconcileUseCase resolves contracts left in sent: it expires the
// overdue ones and replays provider state for the rest.
type IContractReconcileUseCase interface {
	Reconcile(ctx context.Context) (ReconcileReport, error)
}

type ContractReconcileUseCase struct {
	store      IEntityStore
	esign      interfaces.IESignatureGateway
	dispatcher IWebhookDispatcher
	audit      ISyncAuditLog
	timeout    time.Duration
	now        Clock
}

var _ IContractReconcileUseCase = (*ContractReconcileUseCase)(nil)

func NewContractReconcileUseCase(store IEntityStore, esign interfaces.IESignatureGateway, dispatcher IWebhookDispatcher, audit ISyncAuditLog, timeout time.Duration) *ContractReconcileUseCase {
	return &ContractReconcileUseCase{store: store, esign: esign, dispatcher: dispatcher, audit: audit, timeout: timeout, now: systemClock}
}

func (u *ContractReconcileUseCase) WithClock(c Clock) *ContractReconcileUseCase {
	u.now = c
	return u
}

func (u *ContractReconcileUseCase) Reconcile(ctx context.Context) (ReconcileReport, error) {
	var report ReconcileReport
	pending, err := u.store.ListContracts(ctx, entities.ContractFilter{Status: entities.ContractStatusSent})
	if err != nil {
		return report, err
	}
	log.Printf("[reconcile][usecase] start sent_contracts=%d", len(pending))

	for _, c := range pending {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		report.Checked++
		u.reconcileOne(ctx, c, &report)
	}
	log.Printf("[reconcile][usecase] done checked=%d signed=%d expired=%d declined=%d voided=%d pending=%d failed=%d",
		report.Checked, report.Signed, report.Expired, report.Declined, report.Voided, report.Pending, report.Failed)
	return report, nil
}

func (u *ContractReconcileUseCase) reconcileOne(ctx context.Context, c entities.Contract, report *ReconcileReport) {
	status := ""
	if u.esign != nil && c.EnvelopeID != "" {
		cctx, cancel := withCallTimeout(ctx, u.timeout)
		s, err := u.esign.GetEnvelopeStatus(cctx, c.EnvelopeID)
		cancel()
		if err != nil {
			// Unknown provider state: the envelope may already be completed,
			// so the contract is neither expired nor closed on this pass.
			err = asExternal(entities.ExternalSystemESignature, "get_envelope_status", err)
			u.audit.Record(ctx, auditEntry(entities.EntityKindContract, c.ID, entities.ExternalSystemESignature, OpReconcileContract, entities.SyncDirectionInbound, err))
			log.Printf("[reconcile][usecase] status lookup failed contract_id=%s envelope_id=%s err=%v", c.ID, c.EnvelopeID, err)
			report.Failed++
			return
		}
		status = strings.ToLower(strings.TrimSpace(s))
	}

	// A signature that landed before the deadline wins over expiry.
	if status == EnvelopeStatusComplete && u.dispatcher != nil {
		res := u.dispatcher.HandleEnvelopeEvent(ctx, EnvelopeEvent{EnvelopeID: c.EnvelopeID, Status: status})
		switch res.Outcome {
		case DispatchSigned, DispatchDuplicate:
			report.Signed++
		default:
			report.Failed++
		}
		return
	}

	to := entities.ContractStatus("")
	op := OpReconcileContract
	switch {
	case c.IsExpired(u.now()):
		to, op = entities.ContractStatusExpired, OpExpireContract
	case status == "declined":
		to = entities.ContractStatusDeclined
	case status == "voided":
		to = entities.ContractStatusVoided
	default:
		report.Pending++
		return
	}

	_, err := u.store.TransitionContract(ctx, c.ID, entities.ContractStatusSent, to, entities.ContractPatch{})
	u.audit.Record(ctx, auditEntry(entities.EntityKindContract, c.ID, entities.ExternalSystemLocal, op, entities.SyncDirectionInbound, err))
	if err != nil {
		if !errors.Is(err, entities.ErrInvalidTransition) {
			report.Failed++
		}
		log.Printf("[reconcile][usecase] transition failed contract_id=%s to=%s err=%v", c.ID, to, err)
		return
	}
	switch to {
	case entities.ContractStatusExpired:
		report.Expired++
	case entities.ContractStatusDeclined:
		report.Declined++
	case entities.ContractStatusVoided:
		report.Voided++
	}
}

// RunContractSweep reconciles on every tick until ctx is cancelled.
func RunContractSweep(ctx context.Context, uc IContractReconcileUseCase, interval time.Duration) {
	if interval <= 0 {
		return
	}
	log.Printf("[reconcile] sweep started interval=%s", interval)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			log.Printf("[reconcile] sweep stopped")
			return
		case <-ticker.C:
			if _, err := uc.Reconcile(ctx); err != nil && !errors.Is(err, context.Canceled) {
				log.Printf("[reconcile] sweep failed err=%v", err)
			}
		}
	}
}
