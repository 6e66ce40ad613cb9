package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"salespipeline/internal/adapter/http/handlers/mocks"
	"salespipeline/internal/domain/entities"
	"salespipeline/internal/usecase"

	"github.com/gin-gonic/gin"
	"go.uber.org/mock/gomock"
)

func newContractRouter(t *testing.T) (*mocks.MockIContractUseCase, *mocks.MockIContractReconcileUseCase, *gin.Engine) {
	t.Helper()
	ctrl := gomock.NewController(t)
	uc := mocks.NewMockIContractUseCase(ctrl)
	rec := mocks.NewMockIContractReconcileUseCase(ctrl)
	h := NewContractHandler(uc, rec)

	r := gin.New()
	r.GET("/v1/contracts", h.ListContracts)
	r.GET("/v1/contracts/:id", h.GetContract)
	r.POST("/v1/contracts/reconcile", h.Reconcile)
	return uc, rec, r
}

func TestContractHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("list by quote and status", func(t *testing.T) {
		uc, _, r := newContractRouter(t)
		uc.EXPECT().List(gomock.Any(), entities.ContractFilter{QuoteID: "q-1", Status: entities.ContractStatusSent}).
			Return([]entities.Contract{{ID: "c-1", QuoteID: "q-1", Status: entities.ContractStatusSent}}, nil)

		w := serve(r, http.MethodGet, "/v1/contracts?quote_id=q-1&status=sent", "")
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})

	t.Run("get not found", func(t *testing.T) {
		uc, _, r := newContractRouter(t)
		uc.EXPECT().GetByID(gomock.Any(), "c-9").Return(entities.Contract{}, entities.ErrContractNotFound)

		w := serve(r, http.MethodGet, "/v1/contracts/c-9", "")
		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
	})

	t.Run("reconcile report", func(t *testing.T) {
		_, rec, r := newContractRouter(t)
		rec.EXPECT().Reconcile(gomock.Any()).Return(usecase.ReconcileReport{Checked: 3, Signed: 1, Expired: 1, Pending: 1}, nil)

		w := serve(r, http.MethodPost, "/v1/contracts/reconcile", "")
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		var body map[string]int
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("invalid json response: %v", err)
		}
		if body["checked"] != 3 || body["expired"] != 1 {
			t.Fatalf("unexpected report: %v", body)
		}
	})

	t.Run("reconcile failure", func(t *testing.T) {
		_, rec, r := newContractRouter(t)
		rec.EXPECT().Reconcile(gomock.Any()).Return(usecase.ReconcileReport{}, errors.New("db"))

		w := serve(r, http.MethodPost, "/v1/contracts/reconcile", "")
		if w.Code != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", w.Code)
		}
	})
}
