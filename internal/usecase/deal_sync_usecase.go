package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"salespipeline/internal/domain/entities"
	"salespipeline/internal/domain/stagemapper"
	"salespipeline/internal/usecase/interfaces"
)

const (
	OpCreateDeal     = "create_deal"
	OpSyncDealStage  = "sync_deal_stage"
	OpSyncDealAmount = "sync_deal_amount"
)

var ErrQuoteNotLinkedToDeal = errors.New("quote is not linked to a crm deal")

type DealSyncOutcome string

const (
	DealSyncUpdated   DealSyncOutcome = "updated"
	DealSyncUnchanged DealSyncOutcome = "unchanged"
	DealSyncIgnored   DealSyncOutcome = "ignored"
)

// DealSyncResult describes what an inbound deal sync did. AmountError is set
// when the CRM amount could not be used; it never blocks the status update.
type DealSyncResult struct {
	DealID        string               `json:"deal_id"`
	QuoteID       string               `json:"quote_id,omitempty"`
	Outcome       DealSyncOutcome      `json:"outcome"`
	Status        entities.QuoteStatus `json:"status,omitempty"`
	StageMapped   bool                 `json:"stage_mapped"`
	AmountApplied bool                 `json:"amount_applied"`
	AmountError   error                `json:"-"`
}

// IDealSyncUseCase keeps QuoteRequests/Quotes and CRM contacts/deals aligned.
type IDealSyncUseCase interface {
	SyncQuoteRequestToDeal(ctx context.Context, quoteRequestID string) (entities.QuoteRequest, error)
	SyncDealFromCRM(ctx context.Context, dealID string) (DealSyncResult, error)
	SyncQuoteAmountToDeal(ctx context.Context, quoteID string) (entities.Quote, error)
}

type DealSyncUseCase struct {
	store   IEntityStore
	crm     interfaces.ICRMGateway
	audit   ISyncAuditLog
	timeout time.Duration
}

var _ IDealSyncUseCase = (*DealSyncUseCase)(nil)

func NewDealSyncUseCase(store IEntityStore, crm interfaces.ICRMGateway, audit ISyncAuditLog, timeout time.Duration) *DealSyncUseCase {
	return &DealSyncUseCase{store: store, crm: crm, audit: audit, timeout: timeout}
}

// SyncQuoteRequestToDeal upserts the contact by email and creates a deal for
// the request. Contacts are searched before being created so repeated syncs
// of the same email never duplicate them. Errors are audited and returned so
// callers can retry.
func (u *DealSyncUseCase) SyncQuoteRequestToDeal(ctx context.Context, quoteRequestID string) (entities.QuoteRequest, error) {
	log.Printf("[deal-sync][usecase] push start quote_request_id=%s", quoteRequestID)
	qr, err := u.store.GetQuoteRequest(ctx, quoteRequestID)
	if err != nil {
		if errors.Is(err, entities.ErrNotFound) {
			u.audit.Record(ctx, auditEntry(entities.EntityKindQuoteRequest, quoteRequestID, entities.ExternalSystemCRM, OpCreateDeal, entities.SyncDirectionOutbound, err))
		}
		return entities.QuoteRequest{}, err
	}
	if u.crm == nil {
		return entities.QuoteRequest{}, errors.New("crm gateway not configured")
	}

	contactID, err := u.upsertContact(ctx, qr)
	if err != nil {
		u.audit.Record(ctx, auditEntry(entities.EntityKindQuoteRequest, qr.ID, entities.ExternalSystemCRM, OpCreateDeal, entities.SyncDirectionOutbound, err))
		return entities.QuoteRequest{}, err
	}

	if qr.ExternalDealID != "" {
		log.Printf("[deal-sync][usecase] deal already linked quote_request_id=%s deal_id=%s", qr.ID, qr.ExternalDealID)
		if contactID != qr.ExternalContactID {
			if qr, err = u.store.SetQuoteRequestExternalRefs(ctx, qr.ID, contactID, qr.ExternalDealID); err != nil {
				return entities.QuoteRequest{}, err
			}
		}
		u.audit.Record(ctx, auditNote(entities.EntityKindQuoteRequest, qr.ID, entities.ExternalSystemCRM, OpCreateDeal, entities.SyncDirectionOutbound, "deal already linked; contact refreshed"))
		return qr, nil
	}

	ownerID := ""
	if qr.Assignee != nil {
		ownerID = qr.Assignee.CRMOwnerID
	}
	dealIn := interfaces.CRMDealInput{
		Name:      stagemapper.DealName(qr.Company, qr.Name, qr.PrimaryService()),
		Amount:    stagemapper.FormatAmount(stagemapper.DealAmount(nil)),
		OwnerID:   ownerID,
		ContactID: contactID,
	}
	cctx, cancel := withCallTimeout(ctx, u.timeout)
	dealID, err := u.crm.CreateDeal(cctx, dealIn)
	cancel()
	if err == nil && strings.TrimSpace(dealID) == "" {
		err = errors.New("crm returned an empty deal id")
	}
	if err != nil {
		err = asExternal(entities.ExternalSystemCRM, "create_deal", err)
		// Keep the contact link so the next attempt starts from it.
		if _, refErr := u.store.SetQuoteRequestExternalRefs(ctx, qr.ID, contactID, ""); refErr != nil {
			log.Printf("[deal-sync][usecase] failed storing contact ref quote_request_id=%s err=%v", qr.ID, refErr)
		}
		e := auditEntry(entities.EntityKindQuoteRequest, qr.ID, entities.ExternalSystemCRM, OpCreateDeal, entities.SyncDirectionOutbound, err)
		e.ErrorDetail = fmt.Sprintf("contact %s synced, deal creation failed: %v", contactID, err)
		u.audit.Record(ctx, e)
		return entities.QuoteRequest{}, err
	}

	updated, err := u.store.SetQuoteRequestExternalRefs(ctx, qr.ID, contactID, dealID)
	if err != nil {
		u.audit.Record(ctx, auditEntry(entities.EntityKindQuoteRequest, qr.ID, entities.ExternalSystemLocal, OpCreateDeal, entities.SyncDirectionOutbound, err))
		return entities.QuoteRequest{}, err
	}
	u.linkExistingQuotes(ctx, qr.ID, dealID)

	u.audit.Record(ctx, auditEntry(entities.EntityKindQuoteRequest, qr.ID, entities.ExternalSystemCRM, OpCreateDeal, entities.SyncDirectionOutbound, nil))
	log.Printf("[deal-sync][usecase] push success quote_request_id=%s contact_id=%s deal_id=%s", qr.ID, contactID, dealID)
	return updated, nil
}

func (u *DealSyncUseCase) upsertContact(ctx context.Context, qr entities.QuoteRequest) (string, error) {
	in := contactInput(qr)

	cctx, cancel := withCallTimeout(ctx, u.timeout)
	contact, found, err := u.crm.SearchContactByEmail(cctx, qr.Email)
	cancel()
	if err != nil {
		return "", asExternal(entities.ExternalSystemCRM, "search_contact", err)
	}

	if found {
		cctx, cancel := withCallTimeout(ctx, u.timeout)
		defer cancel()
		if err := u.crm.UpdateContact(cctx, contact.ID, in); err != nil {
			return "", asExternal(entities.ExternalSystemCRM, "update_contact", err)
		}
		log.Printf("[deal-sync][usecase] contact updated quote_request_id=%s contact_id=%s", qr.ID, contact.ID)
		return contact.ID, nil
	}

	cctx, cancel = withCallTimeout(ctx, u.timeout)
	defer cancel()
	id, err := u.crm.CreateContact(cctx, in)
	if err == nil && strings.TrimSpace(id) == "" {
		err = errors.New("crm returned an empty contact id")
	}
	if err != nil {
		return "", asExternal(entities.ExternalSystemCRM, "create_contact", err)
	}
	log.Printf("[deal-sync][usecase] contact created quote_request_id=%s contact_id=%s", qr.ID, id)
	return id, nil
}

func (u *DealSyncUseCase) linkExistingQuotes(ctx context.Context, quoteRequestID, dealID string) {
	quotes, err := u.store.ListQuotes(ctx, entities.QuoteFilter{QuoteRequestID: quoteRequestID})
	if err != nil {
		log.Printf("[deal-sync][usecase] failed listing quotes quote_request_id=%s err=%v", quoteRequestID, err)
		return
	}
	for _, q := range quotes {
		if q.ExternalDealID != "" {
			continue
		}
		if _, err := u.store.SetQuoteExternalDealID(ctx, q.ID, dealID); err != nil {
			log.Printf("[deal-sync][usecase] failed linking quote quote_id=%s deal_id=%s err=%v", q.ID, dealID, err)
		}
	}
}

// SyncDealFromCRM applies a CRM deal change to the linked quote. Deals that
// were not created by this pipeline are logged and ignored. Amount and status
// are independent: a bad amount is audited and the status still moves.
func (u *DealSyncUseCase) SyncDealFromCRM(ctx context.Context, dealID string) (DealSyncResult, error) {
	dealID = strings.TrimSpace(dealID)
	res := DealSyncResult{DealID: dealID}
	if dealID == "" {
		return res, &entities.DataQualityError{Field: "dealId", Reason: "missing"}
	}
	log.Printf("[deal-sync][usecase] inbound start deal_id=%s", dealID)

	quote, err := u.store.GetQuoteByDealID(ctx, dealID)
	if errors.Is(err, entities.ErrNotFound) {
		log.Printf("[deal-sync][usecase] no local quote for deal deal_id=%s", dealID)
		u.audit.Record(ctx, auditNote(entities.EntityKindQuote, "", entities.ExternalSystemCRM, OpSyncDealStage, entities.SyncDirectionInbound, fmt.Sprintf("deal %s has no local quote; discarded", dealID)))
		res.Outcome = DealSyncIgnored
		return res, nil
	}
	if err != nil {
		return res, err
	}
	res.QuoteID = quote.ID
	if u.crm == nil {
		return res, errors.New("crm gateway not configured")
	}

	cctx, cancel := withCallTimeout(ctx, u.timeout)
	deal, err := u.crm.GetDeal(cctx, dealID)
	cancel()
	if err != nil {
		err = asExternal(entities.ExternalSystemCRM, "get_deal", err)
		u.audit.Record(ctx, auditEntry(entities.EntityKindQuote, quote.ID, entities.ExternalSystemCRM, OpSyncDealStage, entities.SyncDirectionInbound, err))
		return res, err
	}

	quote = u.applyDealAmount(ctx, quote, deal.Properties.Amount, &res)

	target, known := stagemapper.ToLocalStatus(deal.Properties.DealStage)
	res.StageMapped = known
	res.Status = quote.Status
	if !known {
		u.audit.Record(ctx, auditNote(entities.EntityKindQuote, quote.ID, entities.ExternalSystemCRM, OpSyncDealStage, entities.SyncDirectionInbound, fmt.Sprintf("unmapped stage %q; using %s", deal.Properties.DealStage, target)))
	}
	if quote.Status == target {
		res.Outcome = DealSyncUnchanged
		if known {
			u.audit.Record(ctx, auditNote(entities.EntityKindQuote, quote.ID, entities.ExternalSystemCRM, OpSyncDealStage, entities.SyncDirectionInbound, "status already "+string(target)))
		}
		return res, nil
	}

	updated, err := u.store.TransitionQuote(ctx, quote.ID, quote.Status, target)
	if err != nil {
		u.audit.Record(ctx, auditEntry(entities.EntityKindQuote, quote.ID, entities.ExternalSystemCRM, OpSyncDealStage, entities.SyncDirectionInbound, err))
		if errors.Is(err, entities.ErrInvalidTransition) {
			log.Printf("[deal-sync][usecase] transition rejected quote_id=%s stage=%s err=%v", quote.ID, deal.Properties.DealStage, err)
			res.Outcome = DealSyncIgnored
			return res, nil
		}
		return res, err
	}
	if known {
		u.audit.Record(ctx, auditEntry(entities.EntityKindQuote, quote.ID, entities.ExternalSystemCRM, OpSyncDealStage, entities.SyncDirectionInbound, nil))
	}
	res.Outcome = DealSyncUpdated
	res.Status = updated.Status
	log.Printf("[deal-sync][usecase] inbound success deal_id=%s quote_id=%s status=%s", dealID, quote.ID, updated.Status)
	return res, nil
}

// applyDealAmount copies the CRM amount onto a draft quote. Priced quotes that
// left draft keep their total; a mismatch is only noted in the audit log.
func (u *DealSyncUseCase) applyDealAmount(ctx context.Context, quote entities.Quote, raw string, res *DealSyncResult) entities.Quote {
	amount, present, err := stagemapper.ParseAmount(raw)
	switch {
	case err != nil:
		res.AmountError = err
		log.Printf("[deal-sync][usecase] amount rejected quote_id=%s raw=%q err=%v", quote.ID, raw, err)
		u.audit.Record(ctx, auditEntry(entities.EntityKindQuote, quote.ID, entities.ExternalSystemCRM, OpSyncDealAmount, entities.SyncDirectionInbound, err))
		return quote
	case !present || amount == quote.TotalAmount:
		return quote
	case quote.Status != entities.QuoteStatusDraft:
		u.audit.Record(ctx, auditNote(entities.EntityKindQuote, quote.ID, entities.ExternalSystemCRM, OpSyncDealAmount, entities.SyncDirectionInbound,
			fmt.Sprintf("crm amount %s ignored; quote total %s is locked", stagemapper.FormatAmount(amount), stagemapper.FormatAmount(quote.TotalAmount))))
		return quote
	}

	updated, err := u.store.ApplyExternalAmount(ctx, quote.ID, amount)
	u.audit.Record(ctx, auditEntry(entities.EntityKindQuote, quote.ID, entities.ExternalSystemCRM, OpSyncDealAmount, entities.SyncDirectionInbound, err))
	if err != nil {
		res.AmountError = err
		log.Printf("[deal-sync][usecase] amount update failed quote_id=%s err=%v", quote.ID, err)
		return quote
	}
	res.AmountApplied = true
	return updated
}

// SyncQuoteAmountToDeal pushes the quote total to its linked deal.
func (u *DealSyncUseCase) SyncQuoteAmountToDeal(ctx context.Context, quoteID string) (entities.Quote, error) {
	quote, err := u.store.GetQuote(ctx, quoteID)
	if err != nil {
		return entities.Quote{}, err
	}
	if quote.ExternalDealID == "" {
		return entities.Quote{}, ErrQuoteNotLinkedToDeal
	}
	if u.crm == nil {
		return entities.Quote{}, errors.New("crm gateway not configured")
	}
	cctx, cancel := withCallTimeout(ctx, u.timeout)
	err = u.crm.UpdateDealAmount(cctx, quote.ExternalDealID, stagemapper.FormatAmount(stagemapper.DealAmount(&quote)))
	cancel()
	if err != nil {
		err = asExternal(entities.ExternalSystemCRM, "update_deal", err)
	}
	u.audit.Record(ctx, auditEntry(entities.EntityKindQuote, quote.ID, entities.ExternalSystemCRM, OpSyncDealAmount, entities.SyncDirectionOutbound, err))
	if err != nil {
		return entities.Quote{}, err
	}
	return quote, nil
}

func contactInput(qr entities.QuoteRequest) interfaces.CRMContactInput {
	first, last := splitName(qr.Name)
	return interfaces.CRMContactInput{
		Email:     qr.Email,
		FirstName: first,
		LastName:  last,
		Phone:     qr.Phone,
		Company:   qr.Company,
	}
}

func splitName(name string) (string, string) {
	parts := strings.Fields(name)
	switch len(parts) {
	case 0:
		return "", ""
	case 1:
		return parts[0], ""
	}
	return parts[0], strings.Join(parts[1:], " ")
}

// asExternal makes sure provider failures reach callers as retryable
// external service errors, whatever the gateway returned.
func asExternal(system entities.ExternalSystem, op string, err error) error {
	if err == nil {
		return nil
	}
	var ese *entities.ExternalServiceError
	if errors.As(err, &ese) {
		return err
	}
	return entities.NewExternalServiceError(system, op, 0, err)
}
