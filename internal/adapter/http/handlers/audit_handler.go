package handlers

import (
	"log"
	"net/http"
	"strconv"
	"strings"

	response "salespipeline/internal/adapter/http/dto/response"
	"salespipeline/internal/domain/entities"
	"salespipeline/internal/usecase"
	"salespipeline/pkg"

	"github.com/gin-gonic/gin"
)

const maxAuditPage = 500

// AuditHandler is the operator-facing view of the sync audit log.
type AuditHandler struct {
	audit usecase.ISyncAuditLog
}

func NewAuditHandler(audit usecase.ISyncAuditLog) *AuditHandler {
	return &AuditHandler{audit: audit}
}

// ListAuditLog godoc
// @Summary      List sync audit entries, newest first
// @Tags         audit
// @Produce      json
// @Param        entity_kind  query  string  false  "quote_request, quote or contract"
// @Param        entity_id    query  string  false  "Entity id"
// @Param        operation    query  string  false  "Operation"
// @Param        limit        query  int     false  "Max entries"
// @Success      200  {array}   response.AuditEntryResponse
// @Failure      400  {object}  pkg.HTTPError
// @Router       /audit-log [get]
func (h *AuditHandler) ListAuditLog(c *gin.Context) {
	filter := entities.AuditFilter{
		EntityID:  strings.TrimSpace(c.Query("entity_id")),
		Operation: strings.TrimSpace(c.Query("operation")),
	}
	if raw := strings.TrimSpace(c.Query("entity_kind")); raw != "" {
		kind, ok := entities.ParseEntityKind(raw)
		if !ok {
			respondError(c, pkg.NewDomainErrorSimple("INVALID_ENTITY_KIND", "entity_kind must be quote_request, quote or contract", http.StatusBadRequest))
			return
		}
		filter.EntityKind = kind
	}
	if raw := strings.TrimSpace(c.Query("limit")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			respondError(c, errInvalidRequest)
			return
		}
		filter.Limit = min(n, maxAuditPage)
	}

	entries, err := h.audit.List(c.Request.Context(), filter)
	if err != nil {
		log.Printf("[audit][handler] list failed err=%v", err)
		respondError(c, internalError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromAuditEntries(entries))
}
