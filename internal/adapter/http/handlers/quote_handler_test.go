package handlers

import (
	"errors"
	"net/http"
	"testing"

	"salespipeline/internal/adapter/http/handlers/mocks"
	"salespipeline/internal/domain/entities"
	"salespipeline/internal/usecase"

	"github.com/gin-gonic/gin"
	"go.uber.org/mock/gomock"
)

type quoteDeps struct {
	uc           *mocks.MockIQuoteUseCase
	dealSync     *mocks.MockIDealSyncUseCase
	envelopeSync *mocks.MockIEnvelopeSyncUseCase
	router       *gin.Engine
}

func newQuoteRouter(t *testing.T) quoteDeps {
	t.Helper()
	ctrl := gomock.NewController(t)
	d := quoteDeps{
		uc:           mocks.NewMockIQuoteUseCase(ctrl),
		dealSync:     mocks.NewMockIDealSyncUseCase(ctrl),
		envelopeSync: mocks.NewMockIEnvelopeSyncUseCase(ctrl),
		router:       gin.New(),
	}
	h := NewQuoteHandler(d.uc, d.dealSync, d.envelopeSync)
	d.router.GET("/v1/quotes", h.ListQuotes)
	d.router.GET("/v1/quotes/:id", h.GetQuote)
	d.router.PATCH("/v1/quotes/:id/pricing", h.UpdatePricing)
	d.router.POST("/v1/quotes/:id/send", h.MarkSent)
	d.router.POST("/v1/quotes/:id/deal-amount-sync", h.SyncDealAmount)
	d.router.POST("/v1/quotes/:id/contracts", h.SendContract)
	return d
}

func TestQuoteHandler_ListAndGet(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("list by request", func(t *testing.T) {
		d := newQuoteRouter(t)
		d.uc.EXPECT().List(gomock.Any(), entities.QuoteFilter{QuoteRequestID: "qr-1"}).Return([]entities.Quote{{ID: "q-1"}}, nil)

		w := serve(d.router, http.MethodGet, "/v1/quotes?quote_request_id=qr-1", "")
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})

	t.Run("get not found", func(t *testing.T) {
		d := newQuoteRouter(t)
		d.uc.EXPECT().GetByID(gomock.Any(), "q-9").Return(entities.Quote{}, entities.ErrQuoteNotFound)

		w := serve(d.router, http.MethodGet, "/v1/quotes/q-9", "")
		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
	})
}

func TestQuoteHandler_UpdatePricing(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("missing line items", func(t *testing.T) {
		d := newQuoteRouter(t)
		w := serve(d.router, http.MethodPatch, "/v1/quotes/q-1/pricing", `{}`)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("locked after draft", func(t *testing.T) {
		d := newQuoteRouter(t)
		d.uc.EXPECT().UpdatePricing(gomock.Any(), "q-1", gomock.Any()).Return(entities.Quote{}, usecase.ErrQuotePricingLocked)

		w := serve(d.router, http.MethodPatch, "/v1/quotes/q-1/pricing", `{"line_items":[{"description":"Audit","quantity":2,"unit_price":10}]}`)
		if w.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", w.Code)
		}
	})

	t.Run("success", func(t *testing.T) {
		d := newQuoteRouter(t)
		items := []entities.LineItem{{Description: "Audit", Quantity: 2, UnitPrice: 10}}
		d.uc.EXPECT().UpdatePricing(gomock.Any(), "q-1", items).Return(entities.Quote{ID: "q-1", LineItems: items, TotalAmount: 20, Status: entities.QuoteStatusDraft}, nil)

		w := serve(d.router, http.MethodPatch, "/v1/quotes/q-1/pricing", `{"line_items":[{"description":"Audit","quantity":2,"unit_price":10}]}`)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})
}

func TestQuoteHandler_MarkSentAndDealAmount(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("mark sent invalid transition", func(t *testing.T) {
		d := newQuoteRouter(t)
		d.uc.EXPECT().MarkSent(gomock.Any(), "q-1").Return(entities.Quote{}, &entities.InvalidTransitionError{Kind: entities.EntityKindQuote, ID: "q-1", From: "contracted", To: "sent"})

		w := serve(d.router, http.MethodPost, "/v1/quotes/q-1/send", "")
		if w.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", w.Code)
		}
	})

	t.Run("deal amount without deal", func(t *testing.T) {
		d := newQuoteRouter(t)
		d.dealSync.EXPECT().SyncQuoteAmountToDeal(gomock.Any(), "q-1").Return(entities.Quote{}, usecase.ErrQuoteNotLinkedToDeal)

		w := serve(d.router, http.MethodPost, "/v1/quotes/q-1/deal-amount-sync", "")
		if w.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", w.Code)
		}
	})

	t.Run("deal amount success", func(t *testing.T) {
		d := newQuoteRouter(t)
		d.dealSync.EXPECT().SyncQuoteAmountToDeal(gomock.Any(), "q-1").Return(entities.Quote{ID: "q-1", ExternalDealID: "d-1"}, nil)

		w := serve(d.router, http.MethodPost, "/v1/quotes/q-1/deal-amount-sync", "")
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})
}

func TestQuoteHandler_SendContract(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("missing signer email", func(t *testing.T) {
		d := newQuoteRouter(t)
		w := serve(d.router, http.MethodPost, "/v1/quotes/q-1/contracts", `{"template_id":"tpl-1","signer":{"name":"Ana"}}`)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("already contracted", func(t *testing.T) {
		d := newQuoteRouter(t)
		d.envelopeSync.EXPECT().SendContractForSignature(gomock.Any(), "q-1", "tpl-1", gomock.Any()).Return(entities.Contract{}, usecase.ErrQuoteAlreadyContracted)

		w := serve(d.router, http.MethodPost, "/v1/quotes/q-1/contracts", `{"template_id":"tpl-1","signer":{"name":"Ana","email":"ana@acme.io"}}`)
		if w.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", w.Code)
		}
	})

	t.Run("provider failure is sync pending", func(t *testing.T) {
		d := newQuoteRouter(t)
		d.envelopeSync.EXPECT().SendContractForSignature(gomock.Any(), "q-1", "tpl-1", gomock.Any()).Return(entities.Contract{}, entities.ErrEnvelopeCreationFailed)

		w := serve(d.router, http.MethodPost, "/v1/quotes/q-1/contracts", `{"template_id":"tpl-1","signer":{"name":"Ana","email":"ana@acme.io"}}`)
		if w.Code != http.StatusServiceUnavailable {
			t.Fatalf("expected 503, got %d", w.Code)
		}
	})

	t.Run("unexpected error", func(t *testing.T) {
		d := newQuoteRouter(t)
		d.envelopeSync.EXPECT().SendContractForSignature(gomock.Any(), "q-1", "tpl-1", gomock.Any()).Return(entities.Contract{}, errors.New("boom"))

		w := serve(d.router, http.MethodPost, "/v1/quotes/q-1/contracts", `{"template_id":"tpl-1","signer":{"name":"Ana","email":"ana@acme.io"}}`)
		if w.Code != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", w.Code)
		}
	})

	t.Run("success", func(t *testing.T) {
		d := newQuoteRouter(t)
		signer := entities.Signer{Name: "Ana", Email: "ana@acme.io", Company: "Acme"}
		d.envelopeSync.EXPECT().SendContractForSignature(gomock.Any(), "q-1", "tpl-1", signer).
			Return(entities.Contract{ID: "c-1", QuoteID: "q-1", EnvelopeID: "env-1", Status: entities.ContractStatusSent, Signer: signer}, nil)

		w := serve(d.router, http.MethodPost, "/v1/quotes/q-1/contracts", `{"template_id":"tpl-1","signer":{"name":"Ana","email":"ana@acme.io","company":"Acme"}}`)
		if w.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d", w.Code)
		}
	})
}
