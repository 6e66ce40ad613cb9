package handlers

import (
	"errors"
	"log"
	"net/http"
	"strings"

	response "salespipeline/internal/adapter/http/dto/response"
	"salespipeline/internal/domain/entities"
	"salespipeline/internal/usecase"
	"salespipeline/pkg"

	"github.com/gin-gonic/gin"
)

type ContractHandler struct {
	usecase   usecase.IContractUseCase
	reconcile usecase.IContractReconcileUseCase
}

func NewContractHandler(uc usecase.IContractUseCase, reconcile usecase.IContractReconcileUseCase) *ContractHandler {
	return &ContractHandler{usecase: uc, reconcile: reconcile}
}

// ListContracts godoc
// @Summary      List contracts
// @Tags         contracts
// @Produce      json
// @Param        quote_id  query  string  false  "Quote id"
// @Param        status    query  string  false  "Status"
// @Success      200  {array}  response.ContractResponse
// @Router       /contracts [get]
func (h *ContractHandler) ListContracts(c *gin.Context) {
	filter := entities.ContractFilter{
		QuoteID: strings.TrimSpace(c.Query("quote_id")),
		Status:  entities.ContractStatus(strings.TrimSpace(c.Query("status"))),
	}
	list, err := h.usecase.List(c.Request.Context(), filter)
	if err != nil {
		log.Printf("[contract][handler] list failed err=%v", err)
		respondError(c, mapContractError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromContracts(list))
}

// GetContract godoc
// @Summary      Get a contract
// @Tags         contracts
// @Produce      json
// @Param        id   path      string  true  "Contract id"
// @Success      200  {object}  response.ContractResponse
// @Failure      404  {object}  pkg.HTTPError
// @Router       /contracts/{id} [get]
func (h *ContractHandler) GetContract(c *gin.Context) {
	contract, err := h.usecase.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, mapContractError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromContract(contract))
}

// Reconcile godoc
// @Summary      Resolve contracts still out for signature
// @Description  Expires overdue contracts and replays completed, declined or voided envelopes.
// @Tags         contracts
// @Produce      json
// @Success      200  {object}  response.ReconcileResponse
// @Router       /contracts/reconcile [post]
func (h *ContractHandler) Reconcile(c *gin.Context) {
	log.Printf("[contract][handler] reconcile start")
	report, err := h.reconcile.Reconcile(c.Request.Context())
	if err != nil {
		log.Printf("[contract][handler] reconcile failed err=%v", err)
		respondError(c, mapContractError(err))
		return
	}
	log.Printf("[contract][handler] reconcile success checked=%d signed=%d expired=%d failed=%d", report.Checked, report.Signed, report.Expired, report.Failed)
	c.JSON(http.StatusOK, response.FromReconcileReport(report))
}

func mapContractError(err error) *pkg.AppError {
	if appErr, ok := mapSyncError(err); ok {
		return appErr
	}
	switch {
	case errors.Is(err, entities.ErrNotFound):
		return pkg.NewDomainErrorSimple("CONTRACT_NOT_FOUND", "Contract not found", http.StatusNotFound)
	default:
		return internalError(err)
	}
}
