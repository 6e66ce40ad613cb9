package handlers

import (
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

// QuoteHandler serves quote pricing, CRM amount sync and contract dispatch.
type QuoteHandler struct {
	usecase      usecase.IQuoteUseCase
	dealSync     usecase.IDealSyncUseCase
	envelopeSync usecase.IEnvelopeSyncUseCase
}

func NewQuoteHandler(uc usecase.IQuoteUseCase, dealSync usecase.IDealSyncUseCase, envelopeSync usecase.IEnvelopeSyncUseCase) *QuoteHandler {
	return &QuoteHandler{usecase: uc, dealSync: dealSync, envelopeSync: envelopeSync}
}

// ListQuotes godoc
// @Summary      List quotes
// @Tags         quotes
// @Produce      json
// @Param        status            query  string  false  "Status"
// @Param        quote_request_id  query  string  false  "Quote request id"
// @Success      200  {array}  response.QuoteResponse
// @Router       /quotes [get]
func (h *QuoteHandler) ListQuotes(c *gin.Context) {
	filter := entities.QuoteFilter{
		Status:         entities.QuoteStatus(strings.TrimSpace(c.Query("status"))),
		QuoteRequestID: strings.TrimSpace(c.Query("quote_request_id")),
	}
	list, err := h.usecase.List(c.Request.Context(), filter)
	if err != nil {
		log.Printf("[quote][handler] list failed err=%v", err)
		respondError(c, mapQuoteError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromQuotes(list))
}

// GetQuote godoc
// @Summary      Get a quote
// @Tags         quotes
// @Produce      json
// @Param        id   path      string  true  "Quote id"
// @Success      200  {object}  response.QuoteResponse
// @Failure      404  {object}  pkg.HTTPError
// @Router       /quotes/{id} [get]
func (h *QuoteHandler) GetQuote(c *gin.Context) {
	q, err := h.usecase.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, mapQuoteError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromQuote(q))
}

// UpdatePricing godoc
// @Summary      Replace the line items of a draft quote
// @Tags         quotes
// @Accept       json
// @Produce      json
// @Param        id       path      string                        true  "Quote id"
// @Param        payload  body      request.UpdatePricingRequest  true  "Line items"
// @Success      200      {object}  response.QuoteResponse
// @Failure      409      {object}  pkg.HTTPError
// @Router       /quotes/{id}/pricing [patch]
func (h *QuoteHandler) UpdatePricing(c *gin.Context) {
	id := c.Param("id")
	var payload request.UpdatePricingRequest
	if !bindJSON(c, "quote", &payload) {
		return
	}

	q, err := h.usecase.UpdatePricing(c.Request.Context(), id, payload.ToLineItems())
	if err != nil {
		log.Printf("[quote][handler] pricing failed id=%s err=%v", id, err)
		respondError(c, mapQuoteError(err))
		return
	}
	log.Printf("[quote][handler] pricing success id=%s total=%.2f", id, q.TotalAmount)
	c.JSON(http.StatusOK, response.FromQuote(q))
}

// MarkSent godoc
// @Summary      Mark a draft quote as sent to the client
// @Tags         quotes
// @Produce      json
// @Param        id   path      string  true  "Quote id"
// @Success      200  {object}  response.QuoteResponse
// @Failure      409  {object}  pkg.HTTPError
// @Router       /quotes/{id}/send [post]
func (h *QuoteHandler) MarkSent(c *gin.Context) {
	q, err := h.usecase.MarkSent(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, mapQuoteError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromQuote(q))
}

// SyncDealAmount godoc
// @Summary      Push the quote total to the linked CRM deal
// @Tags         quotes
// @Produce      json
// @Param        id   path      string  true  "Quote id"
// @Success      200  {object}  response.QuoteResponse
// @Failure      503  {object}  pkg.HTTPError
// @Router       /quotes/{id}/deal-amount-sync [post]
func (h *QuoteHandler) SyncDealAmount(c *gin.Context) {
	id := c.Param("id")
	log.Printf("[quote][handler] deal amount sync start id=%s", id)

	q, err := h.dealSync.SyncQuoteAmountToDeal(c.Request.Context(), id)
	if err != nil {
		log.Printf("[quote][handler] deal amount sync failed id=%s err=%v", id, err)
		respondError(c, mapQuoteError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromQuote(q))
}

// SendContract godoc
// @Summary      Send the quote's contract for signature
// @Tags         quotes
// @Accept       json
// @Produce      json
// @Param        id       path      string                       true  "Quote id"
// @Param        payload  body      request.SendContractRequest  true  "Template and signer"
// @Success      201      {object}  response.ContractResponse
// @Failure      409      {object}  pkg.HTTPError
// @Failure      503      {object}  pkg.HTTPError
// @Router       /quotes/{id}/contracts [post]
func (h *QuoteHandler) SendContract(c *gin.Context) {
	id := c.Param("id")
	var payload request.SendContractRequest
	if !bindJSON(c, "contract", &payload) {
		return
	}
	log.Printf("[contract][handler] send start quote_id=%s template_id=%s", id, payload.TemplateID)

	contract, err := h.envelopeSync.SendContractForSignature(c.Request.Context(), id, payload.TemplateID, payload.ToSigner())
	if err != nil {
		log.Printf("[contract][handler] send failed quote_id=%s err=%v", id, err)
		respondError(c, mapQuoteError(err))
		return
	}
	log.Printf("[contract][handler] send success quote_id=%s contract_id=%s envelope_id=%s", id, contract.ID, contract.EnvelopeID)
	c.JSON(http.StatusCreated, response.FromContract(contract))
}

func mapQuoteError(err error) *pkg.AppError {
	if appErr, ok := mapSyncError(err); ok {
		return appErr
	}
	switch {
	case errors.Is(err, usecase.ErrInvalidLineItems), errors.Is(err, usecase.ErrInvalidSigner), errors.Is(err, usecase.ErrInvalidTemplateID):
		return errInvalidRequest
	case errors.Is(err, usecase.ErrQuotePricingLocked):
		return pkg.NewDomainErrorSimple("QUOTE_PRICING_LOCKED", "Quote pricing can only change while draft", http.StatusConflict)
	case errors.Is(err, usecase.ErrQuoteAlreadyContracted):
		return pkg.NewDomainErrorSimple("QUOTE_ALREADY_CONTRACTED", "Quote already has a signed contract", http.StatusConflict)
	case errors.Is(err, usecase.ErrQuoteNotLinkedToDeal):
		return pkg.NewDomainErrorSimple("QUOTE_NOT_LINKED", "Quote is not linked to a CRM deal", http.StatusConflict)
	case errors.Is(err, entities.ErrQuoteRequestNotFound):
		return pkg.NewDomainErrorSimple("QUOTE_REQUEST_NOT_FOUND", "Quote request not found", http.StatusNotFound)
	case errors.Is(err, entities.ErrNotFound):
		return pkg.NewDomainErrorSimple("QUOTE_NOT_FOUND", "Quote not found", http.StatusNotFound)
	default:
		return internalError(err)
	}
}
