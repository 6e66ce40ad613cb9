package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/mail"
	"strings"
	"time"

	"salespipeline/internal/domain/entities"
	"salespipeline/internal/usecase/interfaces"
)

const (
	OpSendEnvelope = "send_envelope"

	SignerRoleName = "Client"

	TabClientName     = "client_name"
	TabClientCompany  = "client_company"
	TabContractAmount = "contract_amount"
)

// IEnvelopeSyncUseCase sends quotes' contracts to the e-signature provider.
type IEnvelopeSyncUseCase interface {
	SendContractForSignature(ctx context.Context, quoteID, templateID string, signer entities.Signer) (entities.Contract, error)
}

type EnvelopeSyncUseCase struct {
	store   IEntityStore
	esign   interfaces.IESignatureGateway
	audit   ISyncAuditLog
	timeout time.Duration
	now     Clock
}

var _ IEnvelopeSyncUseCase = (*EnvelopeSyncUseCase)(nil)

func NewEnvelopeSyncUseCase(store IEntityStore, esign interfaces.IESignatureGateway, audit ISyncAuditLog, timeout time.Duration) *EnvelopeSyncUseCase {
	return &EnvelopeSyncUseCase{store: store, esign: esign, audit: audit, timeout: timeout, now: systemClock}
}

func (u *EnvelopeSyncUseCase) WithClock(c Clock) *EnvelopeSyncUseCase {
	u.now = c
	return u
}

// SendContractForSignature creates an envelope from the template and records
// a sent Contract. No Contract row is written unless the provider returned an
// envelope id. An unexpired contract already out for signature is returned
// as-is, which makes retries after a timeout safe.
func (u *EnvelopeSyncUseCase) SendContractForSignature(ctx context.Context, quoteID, templateID string, signer entities.Signer) (entities.Contract, error) {
	templateID = strings.TrimSpace(templateID)
	if templateID == "" {
		return entities.Contract{}, ErrInvalidTemplateID
	}
	signer.Name = strings.TrimSpace(signer.Name)
	signer.Email = strings.TrimSpace(signer.Email)
	signer.Company = strings.TrimSpace(signer.Company)
	if signer.Name == "" || signer.Email == "" {
		return entities.Contract{}, ErrInvalidSigner
	}
	if _, err := mail.ParseAddress(signer.Email); err != nil {
		return entities.Contract{}, ErrInvalidSigner
	}
	log.Printf("[envelope-sync][usecase] send start quote_id=%s template_id=%s", quoteID, templateID)

	quote, err := u.store.GetQuote(ctx, quoteID)
	if err != nil {
		if errors.Is(err, entities.ErrNotFound) {
			u.audit.Record(ctx, auditEntry(entities.EntityKindQuote, quoteID, entities.ExternalSystemESignature, OpSendEnvelope, entities.SyncDirectionOutbound, err))
		}
		return entities.Contract{}, err
	}
	if quote.Status == entities.QuoteStatusContracted {
		return entities.Contract{}, ErrQuoteAlreadyContracted
	}
	if u.esign == nil {
		return entities.Contract{}, errors.New("e-signature gateway not configured")
	}

	existing, err := u.store.ListContracts(ctx, entities.ContractFilter{QuoteID: quote.ID})
	if err != nil {
		return entities.Contract{}, err
	}
	now := u.now()
	for _, c := range existing {
		switch {
		case c.Status == entities.ContractStatusSigned:
			return entities.Contract{}, ErrQuoteAlreadyContracted
		case c.Status == entities.ContractStatusSent && !c.IsExpired(now):
			log.Printf("[envelope-sync][usecase] unexpired contract already sent quote_id=%s contract_id=%s", quote.ID, c.ID)
			u.audit.Record(ctx, auditNote(entities.EntityKindContract, c.ID, entities.ExternalSystemESignature, OpSendEnvelope, entities.SyncDirectionOutbound, "unexpired contract already sent; not resent"))
			return c, nil
		}
	}

	if signer.Company == "" {
		signer.Company = quote.Client.Company
	}
	req := buildEnvelopeRequest(quote, templateID, signer)

	cctx, cancel := withCallTimeout(ctx, u.timeout)
	resp, err := u.esign.CreateEnvelope(cctx, req)
	cancel()
	if err != nil {
		err = asExternal(entities.ExternalSystemESignature, "create_envelope", err)
		log.Printf("[envelope-sync][usecase] create envelope failed quote_id=%s err=%v", quote.ID, err)
		u.audit.Record(ctx, auditEntry(entities.EntityKindQuote, quote.ID, entities.ExternalSystemESignature, OpSendEnvelope, entities.SyncDirectionOutbound, err))
		return entities.Contract{}, err
	}
	envelopeID := strings.TrimSpace(resp.EnvelopeID)
	if envelopeID == "" {
		log.Printf("[envelope-sync][usecase] provider returned no envelope id quote_id=%s status=%s", quote.ID, resp.Status)
		u.audit.Record(ctx, auditEntry(entities.EntityKindQuote, quote.ID, entities.ExternalSystemESignature, OpSendEnvelope, entities.SyncDirectionOutbound, entities.ErrEnvelopeCreationFailed))
		return entities.Contract{}, entities.ErrEnvelopeCreationFailed
	}

	contract, err := u.store.CreateContract(ctx, entities.Contract{
		ContractNumber: entities.ContractNumberFor(quote.QuoteNumber, len(existing)+1),
		QuoteID:        quote.ID,
		EnvelopeID:     envelopeID,
		TemplateID:     templateID,
		Signer:         signer,
	})
	if err != nil {
		log.Printf("[envelope-sync][usecase] contract create failed quote_id=%s envelope_id=%s err=%v", quote.ID, envelopeID, err)
		e := auditEntry(entities.EntityKindQuote, quote.ID, entities.ExternalSystemLocal, OpSendEnvelope, entities.SyncDirectionOutbound, err)
		e.ErrorDetail = fmt.Sprintf("envelope %s sent but contract not recorded: %v", envelopeID, err)
		u.audit.Record(ctx, e)
		return entities.Contract{}, err
	}

	if quote.Status != entities.QuoteStatusContractSent {
		if _, err := u.store.TransitionQuote(ctx, quote.ID, quote.Status, entities.QuoteStatusContractSent); err != nil {
			log.Printf("[envelope-sync][usecase] quote not moved to contract_sent quote_id=%s err=%v", quote.ID, err)
		}
	}

	u.audit.Record(ctx, auditEntry(entities.EntityKindContract, contract.ID, entities.ExternalSystemESignature, OpSendEnvelope, entities.SyncDirectionOutbound, nil))
	log.Printf("[envelope-sync][usecase] send success quote_id=%s contract_id=%s contract_number=%s envelope_id=%s", quote.ID, contract.ID, contract.ContractNumber, envelopeID)
	return contract, nil
}

// buildEnvelopeRequest binds the quote data to locked template tabs so the
// signer sees the terms but cannot alter them.
func buildEnvelopeRequest(quote entities.Quote, templateID string, signer entities.Signer) interfaces.EnvelopeRequest {
	company := firstNonEmpty(quote.Client.Company, signer.Company, quote.Client.Name)
	service := quote.ServiceName
	if service == "" && len(quote.LineItems) > 0 {
		service = quote.LineItems[0].Description
	}
	service = firstNonEmpty(service, "services")

	return interfaces.EnvelopeRequest{
		TemplateID:   templateID,
		EmailSubject: fmt.Sprintf("Contract for %s - %s", company, service),
		Signer: interfaces.EnvelopeRecipient{
			RoleName: SignerRoleName,
			Name:     signer.Name,
			Email:    signer.Email,
		},
		Tabs: []interfaces.TextTab{
			{Label: TabClientName, Value: firstNonEmpty(quote.Client.Name, signer.Name), Locked: true},
			{Label: TabClientCompany, Value: company, Locked: true},
			{Label: TabContractAmount, Value: fmt.Sprintf("%.2f", quote.TotalAmount), Locked: true},
		},
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
