package handlers

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	request "salespipeline/internal/adapter/http/dto/request"
	response "salespipeline/internal/adapter/http/dto/response"
	"salespipeline/internal/domain/entities"
	"salespipeline/internal/usecase"
	"salespipeline/pkg"

	"github.com/gin-gonic/gin"
)

const (
	HeaderCRMSignature        = "X-CRM-Signature"
	HeaderESignatureSignature = "X-Esignature-Signature"
)

var errInvalidSignature = pkg.NewDomainErrorSimple("INVALID_SIGNATURE", "Webhook signature mismatch", http.StatusUnauthorized)

// WebhookHandler receives provider callbacks. Every delivery is handled
// synchronously and acknowledged with the dispatch outcome.
type WebhookHandler struct {
	dispatcher  usecase.IWebhookDispatcher
	audit       usecase.ISyncAuditLog
	crmSecret   string
	esignSecret string
}

// NewWebhookHandler takes the HMAC secrets of each provider. An empty secret
// disables verification for that provider.
func NewWebhookHandler(dispatcher usecase.IWebhookDispatcher, audit usecase.ISyncAuditLog, crmSecret, esignSecret string) *WebhookHandler {
	return &WebhookHandler{dispatcher: dispatcher, audit: audit, crmSecret: crmSecret, esignSecret: esignSecret}
}

// HandleCRM godoc
// @Summary      CRM deal webhook
// @Tags         webhooks
// @Accept       json
// @Produce      json
// @Param        X-CRM-Signature  header  string                  false  "HMAC-SHA256 of the body, hex or base64"
// @Param        payload          body    request.CRMDealWebhook  true   "Deal event"
// @Success      200  {object}  response.WebhookResponse
// @Failure      400  {object}  pkg.HTTPError
// @Failure      401  {object}  pkg.HTTPError
// @Failure      503  {object}  response.SyncPendingResponse
// @Router       /webhooks/crm [post]
func (h *WebhookHandler) HandleCRM(c *gin.Context) {
	body, ok := h.readVerified(c, h.crmSecret, HeaderCRMSignature)
	if !ok {
		return
	}

	var payload request.CRMDealWebhook
	if err := decodeWebhook(body, &payload); err != nil {
		h.reject(c, entities.EntityKindQuote, entities.ExternalSystemCRM, usecase.OpSyncDealStage, err)
		return
	}
	if err := payload.Validate(); err != nil {
		h.reject(c, entities.EntityKindQuote, entities.ExternalSystemCRM, usecase.OpSyncDealStage, err)
		return
	}
	log.Printf("[webhook][handler] crm delivery deal_id=%s stage=%s", payload.DealID, payload.Properties.DealStage)

	res, err := h.dispatcher.HandleDealEvent(c.Request.Context(), payload.ToEvent())
	if err != nil {
		log.Printf("[webhook][handler] crm delivery failed deal_id=%s retryable=%t err=%v", payload.DealID, res.Retryable, err)
		var dqe *entities.DataQualityError
		if errors.As(err, &dqe) {
			respondError(c, pkg.NewDomainError("DATA_QUALITY", dqe.Error(), err, http.StatusBadRequest))
			return
		}
	}
	h.respond(c, res)
}

// HandleESignature godoc
// @Summary      E-signature envelope webhook
// @Tags         webhooks
// @Accept       json
// @Produce      json
// @Param        X-Esignature-Signature  header  string                   false  "HMAC-SHA256 of the body, hex or base64"
// @Param        payload                 body    request.EnvelopeWebhook  true   "Envelope event"
// @Success      200  {object}  response.WebhookResponse
// @Failure      400  {object}  pkg.HTTPError
// @Failure      401  {object}  pkg.HTTPError
// @Failure      503  {object}  response.SyncPendingResponse
// @Router       /webhooks/esignature [post]
func (h *WebhookHandler) HandleESignature(c *gin.Context) {
	body, ok := h.readVerified(c, h.esignSecret, HeaderESignatureSignature)
	if !ok {
		return
	}

	var payload request.EnvelopeWebhook
	if err := decodeWebhook(body, &payload); err != nil {
		h.reject(c, entities.EntityKindContract, entities.ExternalSystemESignature, usecase.OpEnvelopeStatus, err)
		return
	}
	if err := payload.Validate(); err != nil {
		h.reject(c, entities.EntityKindContract, entities.ExternalSystemESignature, usecase.OpEnvelopeStatus, err)
		return
	}
	log.Printf("[webhook][handler] esignature delivery envelope_id=%s status=%s", payload.EnvelopeID, payload.Status)

	res := h.dispatcher.HandleEnvelopeEvent(c.Request.Context(), payload.ToEvent())
	h.respond(c, res)
}

func (h *WebhookHandler) respond(c *gin.Context, res usecase.DispatchResult) {
	if res.Retryable {
		log.Printf("[webhook][handler] sync pending outcome=%s detail=%s", res.Outcome, res.Detail)
		c.JSON(http.StatusServiceUnavailable, response.SyncPending(string(res.Outcome)))
		return
	}
	log.Printf("[webhook][handler] delivery done outcome=%s contract_id=%s quote_id=%s", res.Outcome, res.ContractID, res.QuoteID)
	c.JSON(http.StatusOK, response.FromDispatchResult(res))
}

func (h *WebhookHandler) readVerified(c *gin.Context, secret, header string) ([]byte, bool) {
	body, err := c.GetRawData()
	if err != nil {
		log.Printf("[webhook][handler] read body failed path=%s err=%v", c.FullPath(), err)
		respondError(c, errInvalidRequest)
		return nil, false
	}
	if secret == "" {
		return body, true
	}
	if !VerifySignature(secret, body, c.GetHeader(header)) {
		log.Printf("[webhook][handler] signature mismatch path=%s header=%s", c.FullPath(), header)
		respondError(c, errInvalidSignature)
		return nil, false
	}
	return body, true
}

func (h *WebhookHandler) reject(c *gin.Context, kind entities.EntityKind, system entities.ExternalSystem, op string, err error) {
	log.Printf("[webhook][handler] rejected delivery system=%s err=%v", system, err)
	if h.audit != nil {
		h.audit.Record(c.Request.Context(), entities.SyncAuditEntry{
			EntityKind:     kind,
			ExternalSystem: system,
			Operation:      op,
			Direction:      entities.SyncDirectionInbound,
			Outcome:        entities.SyncOutcomeError,
			ErrorClass:     entities.ErrorClassDataQuality,
			ErrorDetail:    err.Error(),
		})
	}
	respondError(c, pkg.NewDomainError("DATA_QUALITY", "Malformed webhook payload", err, http.StatusBadRequest))
}

// decodeWebhook turns a syntax error into a DataQualityError. Unknown fields
// are ignored.
func decodeWebhook(body []byte, out any) error {
	if len(strings.TrimSpace(string(body))) == 0 {
		return &entities.DataQualityError{Field: "body", Reason: "empty payload"}
	}
	if err := json.Unmarshal(body, out); err != nil {
		return &entities.DataQualityError{Field: "body", Reason: err.Error()}
	}
	return nil
}

// VerifySignature checks an HMAC-SHA256 of body given as hex or standard
// base64. An optional "sha256=" prefix is accepted.
func VerifySignature(secret string, body []byte, signature string) bool {
	signature = strings.TrimSpace(signature)
	signature = strings.TrimPrefix(signature, "sha256=")
	if signature == "" {
		return false
	}
	mac := hmac.New(sha256.New, []byte(secret))
	_, _ = mac.Write(body)
	expected := mac.Sum(nil)

	if got, err := hex.DecodeString(signature); err == nil && hmac.Equal(got, expected) {
		return true
	}
	if got, err := base64.StdEncoding.DecodeString(signature); err == nil && hmac.Equal(got, expected) {
		return true
	}
	return false
}
