package handlers

import (
	"errors"
	"log"
	"net/http"

	"salespipeline/internal/domain/entities"
	"salespipeline/internal/usecase"
	"salespipeline/pkg"

	"github.com/gin-gonic/gin"
)

var (
	errInvalidRequest = pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
	errSyncPending    = pkg.NewDomainErrorSimple("SYNC_PENDING", "sync pending, will retry", http.StatusServiceUnavailable)
)

// mapSyncError covers the errors every handler can see. ok is false when the
// caller should fall back to its own mapping.
func mapSyncError(err error) (*pkg.AppError, bool) {
	var (
		ese *entities.ExternalServiceError
		ae  *entities.ArchiveError
		dqe *entities.DataQualityError
	)
	switch {
	case errors.Is(err, usecase.ErrInvalidID):
		return errInvalidRequest, true
	case errors.Is(err, entities.ErrInvalidTransition):
		return pkg.NewDomainError("INVALID_TRANSITION", "Status transition not allowed", err, http.StatusConflict), true
	case errors.As(err, &dqe):
		return pkg.NewDomainError("DATA_QUALITY", dqe.Error(), err, http.StatusBadRequest), true
	case errors.As(err, &ese), errors.As(err, &ae), errors.Is(err, entities.ErrEnvelopeCreationFailed):
		return pkg.NewDomainError(errSyncPending.Code, errSyncPending.Message, err, errSyncPending.HTTPStatus), true
	}
	return nil, false
}

func internalError(err error) *pkg.AppError {
	return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
}

func respondError(c *gin.Context, appErr *pkg.AppError) {
	c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
}

func bindJSON(c *gin.Context, area string, payload any) bool {
	if err := c.ShouldBindJSON(payload); err != nil {
		log.Printf("[%s][handler] invalid payload path=%s err=%v", area, c.FullPath(), err)
		respondError(c, errInvalidRequest)
		return false
	}
	return true
}
