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

// QuoteRequestHandler serves intake and the employee-side quote request flow.
type QuoteRequestHandler struct {
	usecase  usecase.IQuoteRequestUseCase
	quotes   usecase.IQuoteUseCase
	dealSync usecase.IDealSyncUseCase
}

func NewQuoteRequestHandler(uc usecase.IQuoteRequestUseCase, quotes usecase.IQuoteUseCase, dealSync usecase.IDealSyncUseCase) *QuoteRequestHandler {
	return &QuoteRequestHandler{usecase: uc, quotes: quotes, dealSync: dealSync}
}

// CreateQuoteRequest godoc
// @Summary      Submit a quote request
// @Tags         quote-requests
// @Accept       json
// @Produce      json
// @Param        payload  body      request.CreateQuoteRequestRequest  true  "Intake form"
// @Success      201      {object}  response.QuoteRequestResponse
// @Failure      400      {object}  pkg.HTTPError
// @Router       /quote-requests [post]
func (h *QuoteRequestHandler) CreateQuoteRequest(c *gin.Context) {
	var payload request.CreateQuoteRequestRequest
	if !bindJSON(c, "quote-request", &payload) {
		return
	}
	log.Printf("[quote-request][handler] create start email=%s", payload.Email)

	qr, err := h.usecase.Create(c.Request.Context(), payload.ToInput())
	if err != nil {
		log.Printf("[quote-request][handler] create failed err=%v", err)
		respondError(c, mapQuoteRequestError(err))
		return
	}
	log.Printf("[quote-request][handler] create success id=%s", qr.ID)
	c.JSON(http.StatusCreated, response.FromQuoteRequest(qr))
}

// GetQuoteRequest godoc
// @Summary      Get a quote request
// @Tags         quote-requests
// @Produce      json
// @Param        id   path      string  true  "Quote request id"
// @Success      200  {object}  response.QuoteRequestResponse
// @Failure      404  {object}  pkg.HTTPError
// @Router       /quote-requests/{id} [get]
func (h *QuoteRequestHandler) GetQuoteRequest(c *gin.Context) {
	qr, err := h.usecase.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, mapQuoteRequestError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromQuoteRequest(qr))
}

// ListQuoteRequests godoc
// @Summary      List quote requests
// @Tags         quote-requests
// @Produce      json
// @Param        status    query     string  false  "Status"
// @Param        assignee  query     string  false  "Assignee employee id"
// @Param        email     query     string  false  "Prospect email"
// @Success      200       {array}   response.QuoteRequestResponse
// @Router       /quote-requests [get]
func (h *QuoteRequestHandler) ListQuoteRequests(c *gin.Context) {
	filter := entities.QuoteRequestFilter{
		Status:     entities.QuoteRequestStatus(strings.TrimSpace(c.Query("status"))),
		AssigneeID: strings.TrimSpace(c.Query("assignee")),
		Email:      strings.TrimSpace(c.Query("email")),
	}
	list, err := h.usecase.List(c.Request.Context(), filter)
	if err != nil {
		log.Printf("[quote-request][handler] list failed err=%v", err)
		respondError(c, mapQuoteRequestError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromQuoteRequests(list))
}

// AssignQuoteRequest godoc
// @Summary      Assign a quote request to an employee
// @Tags         quote-requests
// @Accept       json
// @Produce      json
// @Param        id       path      string                             true  "Quote request id"
// @Param        payload  body      request.AssignQuoteRequestRequest  true  "Assignee"
// @Success      200      {object}  response.QuoteRequestResponse
// @Failure      409      {object}  pkg.HTTPError
// @Router       /quote-requests/{id}/assign [post]
func (h *QuoteRequestHandler) AssignQuoteRequest(c *gin.Context) {
	id := c.Param("id")
	var payload request.AssignQuoteRequestRequest
	if !bindJSON(c, "quote-request", &payload) {
		return
	}
	log.Printf("[quote-request][handler] assign start id=%s employee_id=%s", id, payload.EmployeeID)

	qr, err := h.usecase.Assign(c.Request.Context(), id, payload.ToAssignee())
	if err != nil {
		log.Printf("[quote-request][handler] assign failed id=%s err=%v", id, err)
		respondError(c, mapQuoteRequestError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromQuoteRequest(qr))
}

// StartReview godoc
// @Summary      Move an assigned quote request into review
// @Tags         quote-requests
// @Produce      json
// @Param        id   path      string  true  "Quote request id"
// @Success      200  {object}  response.QuoteRequestResponse
// @Failure      409  {object}  pkg.HTTPError
// @Router       /quote-requests/{id}/review [post]
func (h *QuoteRequestHandler) StartReview(c *gin.Context) {
	qr, err := h.usecase.StartReview(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, mapQuoteRequestError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromQuoteRequest(qr))
}

// CloseQuoteRequest godoc
// @Summary      Close a quote request
// @Tags         quote-requests
// @Produce      json
// @Param        id   path      string  true  "Quote request id"
// @Success      200  {object}  response.QuoteRequestResponse
// @Failure      409  {object}  pkg.HTTPError
// @Router       /quote-requests/{id}/close [post]
func (h *QuoteRequestHandler) CloseQuoteRequest(c *gin.Context) {
	qr, err := h.usecase.Close(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, mapQuoteRequestError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromQuoteRequest(qr))
}

// SyncDeal godoc
// @Summary      Push a quote request to the CRM as contact and deal
// @Tags         quote-requests
// @Produce      json
// @Param        id   path      string  true  "Quote request id"
// @Success      200  {object}  response.QuoteRequestResponse
// @Failure      503  {object}  pkg.HTTPError
// @Router       /quote-requests/{id}/deal-sync [post]
func (h *QuoteRequestHandler) SyncDeal(c *gin.Context) {
	id := c.Param("id")
	log.Printf("[quote-request][handler] deal sync start id=%s", id)

	qr, err := h.dealSync.SyncQuoteRequestToDeal(c.Request.Context(), id)
	if err != nil {
		log.Printf("[quote-request][handler] deal sync failed id=%s err=%v", id, err)
		respondError(c, mapQuoteRequestError(err))
		return
	}
	log.Printf("[quote-request][handler] deal sync success id=%s deal_id=%s", id, qr.ExternalDealID)
	c.JSON(http.StatusOK, response.FromQuoteRequest(qr))
}

// CreateQuote godoc
// @Summary      Create a draft quote from a quote request
// @Tags         quote-requests
// @Accept       json
// @Produce      json
// @Param        id       path      string                      true  "Quote request id"
// @Param        payload  body      request.CreateQuoteRequest  true  "Quote"
// @Success      201      {object}  response.QuoteResponse
// @Failure      409      {object}  pkg.HTTPError
// @Router       /quote-requests/{id}/quotes [post]
func (h *QuoteRequestHandler) CreateQuote(c *gin.Context) {
	id := c.Param("id")
	var payload request.CreateQuoteRequest
	if !bindJSON(c, "quote", &payload) {
		return
	}
	log.Printf("[quote][handler] create start quote_request_id=%s", id)

	q, err := h.quotes.CreateFromQuoteRequest(c.Request.Context(), id, payload.ToInput())
	if err != nil {
		log.Printf("[quote][handler] create failed quote_request_id=%s err=%v", id, err)
		respondError(c, mapQuoteError(err))
		return
	}
	log.Printf("[quote][handler] create success quote_request_id=%s quote_id=%s number=%s", id, q.ID, q.QuoteNumber)
	c.JSON(http.StatusCreated, response.FromQuote(q))
}

func mapQuoteRequestError(err error) *pkg.AppError {
	if appErr, ok := mapSyncError(err); ok {
		return appErr
	}
	switch {
	case errors.Is(err, usecase.ErrInvalidQuoteRequestInput), errors.Is(err, usecase.ErrInvalidAssignee):
		return errInvalidRequest
	case errors.Is(err, entities.ErrNotFound):
		return pkg.NewDomainErrorSimple("QUOTE_REQUEST_NOT_FOUND", "Quote request not found", http.StatusNotFound)
	default:
		return internalError(err)
	}
}
