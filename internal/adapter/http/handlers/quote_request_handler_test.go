package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"salespipeline/internal/adapter/http/handlers/mocks"
	"salespipeline/internal/domain/entities"
	"salespipeline/internal/usecase"

	"github.com/gin-gonic/gin"
	"go.uber.org/mock/gomock"
)

type quoteRequestDeps struct {
	uc       *mocks.MockIQuoteRequestUseCase
	quotes   *mocks.MockIQuoteUseCase
	dealSync *mocks.MockIDealSyncUseCase
	router   *gin.Engine
}

func newQuoteRequestRouter(t *testing.T) quoteRequestDeps {
	t.Helper()
	ctrl := gomock.NewController(t)
	d := quoteRequestDeps{
		uc:       mocks.NewMockIQuoteRequestUseCase(ctrl),
		quotes:   mocks.NewMockIQuoteUseCase(ctrl),
		dealSync: mocks.NewMockIDealSyncUseCase(ctrl),
		router:   gin.New(),
	}
	h := NewQuoteRequestHandler(d.uc, d.quotes, d.dealSync)
	d.router.POST("/v1/quote-requests", h.CreateQuoteRequest)
	d.router.GET("/v1/quote-requests", h.ListQuoteRequests)
	d.router.GET("/v1/quote-requests/:id", h.GetQuoteRequest)
	d.router.POST("/v1/quote-requests/:id/assign", h.AssignQuoteRequest)
	d.router.POST("/v1/quote-requests/:id/review", h.StartReview)
	d.router.POST("/v1/quote-requests/:id/close", h.CloseQuoteRequest)
	d.router.POST("/v1/quote-requests/:id/deal-sync", h.SyncDeal)
	d.router.POST("/v1/quote-requests/:id/quotes", h.CreateQuote)
	return d
}

func serve(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestQuoteRequestHandler_CreateQuoteRequest(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("invalid json", func(t *testing.T) {
		d := newQuoteRequestRouter(t)
		w := serve(d.router, http.MethodPost, "/v1/quote-requests", "{")
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("missing email", func(t *testing.T) {
		d := newQuoteRequestRouter(t)
		w := serve(d.router, http.MethodPost, "/v1/quote-requests", `{"name":"Ana"}`)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("usecase rejects input", func(t *testing.T) {
		d := newQuoteRequestRouter(t)
		d.uc.EXPECT().Create(gomock.Any(), gomock.Any()).Return(entities.QuoteRequest{}, usecase.ErrInvalidQuoteRequestInput)

		w := serve(d.router, http.MethodPost, "/v1/quote-requests", `{"name":"Ana","email":"not-an-email"}`)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("success", func(t *testing.T) {
		d := newQuoteRequestRouter(t)
		now := time.Now().UTC()
		d.uc.EXPECT().Create(gomock.Any(), usecase.CreateQuoteRequestInput{
			Name: "Ana", Email: "ana@acme.io", Company: "Acme", Services: []string{"audit"}, Urgency: "high",
		}).Return(entities.QuoteRequest{ID: "qr-1", Name: "Ana", Email: "ana@acme.io", Status: entities.QuoteRequestStatusNew, CreatedAt: now, UpdatedAt: now}, nil)

		w := serve(d.router, http.MethodPost, "/v1/quote-requests", `{"name":"Ana","email":"ana@acme.io","company":"Acme","services":["audit"],"urgency":"high"}`)
		if w.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d", w.Code)
		}
		var body map[string]any
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("invalid json response: %v", err)
		}
		if body["id"] != "qr-1" || body["status"] != "new" {
			t.Fatalf("unexpected body: %v", body)
		}
	})
}

func TestQuoteRequestHandler_GetAndList(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("not found", func(t *testing.T) {
		d := newQuoteRequestRouter(t)
		d.uc.EXPECT().GetByID(gomock.Any(), "missing").Return(entities.QuoteRequest{}, entities.ErrQuoteRequestNotFound)

		w := serve(d.router, http.MethodGet, "/v1/quote-requests/missing", "")
		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
	})

	t.Run("list passes filter", func(t *testing.T) {
		d := newQuoteRequestRouter(t)
		d.uc.EXPECT().List(gomock.Any(), entities.QuoteRequestFilter{Status: entities.QuoteRequestStatusAssigned, AssigneeID: "emp-1"}).
			Return([]entities.QuoteRequest{{ID: "qr-1"}, {ID: "qr-2"}}, nil)

		w := serve(d.router, http.MethodGet, "/v1/quote-requests?status=assigned&assignee=emp-1", "")
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		var body []map[string]any
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("invalid json response: %v", err)
		}
		if len(body) != 2 {
			t.Fatalf("expected 2 items, got %d", len(body))
		}
	})

	t.Run("list internal error", func(t *testing.T) {
		d := newQuoteRequestRouter(t)
		d.uc.EXPECT().List(gomock.Any(), gomock.Any()).Return(nil, errors.New("db"))

		w := serve(d.router, http.MethodGet, "/v1/quote-requests", "")
		if w.Code != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", w.Code)
		}
	})
}

func TestQuoteRequestHandler_Transitions(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("assign invalid payload", func(t *testing.T) {
		d := newQuoteRequestRouter(t)
		w := serve(d.router, http.MethodPost, "/v1/quote-requests/qr-1/assign", `{"employee_id":"emp-1"}`)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("already assigned is a conflict", func(t *testing.T) {
		d := newQuoteRequestRouter(t)
		d.uc.EXPECT().Assign(gomock.Any(), "qr-1", entities.SalesAssignee{EmployeeID: "emp-1", Name: "Bo"}).
			Return(entities.QuoteRequest{}, &entities.InvalidTransitionError{Kind: entities.EntityKindQuoteRequest, ID: "qr-1", From: "assigned", To: "assigned"})

		w := serve(d.router, http.MethodPost, "/v1/quote-requests/qr-1/assign", `{"employee_id":"emp-1","name":"Bo"}`)
		if w.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", w.Code)
		}
	})

	t.Run("review success", func(t *testing.T) {
		d := newQuoteRequestRouter(t)
		d.uc.EXPECT().StartReview(gomock.Any(), "qr-1").Return(entities.QuoteRequest{ID: "qr-1", Status: entities.QuoteRequestStatusInReview}, nil)

		w := serve(d.router, http.MethodPost, "/v1/quote-requests/qr-1/review", "")
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})

	t.Run("close success", func(t *testing.T) {
		d := newQuoteRequestRouter(t)
		d.uc.EXPECT().Close(gomock.Any(), "qr-1").Return(entities.QuoteRequest{ID: "qr-1", Status: entities.QuoteRequestStatusClosed}, nil)

		w := serve(d.router, http.MethodPost, "/v1/quote-requests/qr-1/close", "")
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})
}

func TestQuoteRequestHandler_SyncDeal(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("crm unavailable is sync pending", func(t *testing.T) {
		d := newQuoteRequestRouter(t)
		d.dealSync.EXPECT().SyncQuoteRequestToDeal(gomock.Any(), "qr-1").
			Return(entities.QuoteRequest{}, entities.NewExternalServiceError(entities.ExternalSystemCRM, "create_deal", http.StatusBadGateway, errors.New("bad gateway")))

		w := serve(d.router, http.MethodPost, "/v1/quote-requests/qr-1/deal-sync", "")
		if w.Code != http.StatusServiceUnavailable {
			t.Fatalf("expected 503, got %d", w.Code)
		}
		if !bytes.Contains(w.Body.Bytes(), []byte("SYNC_PENDING")) {
			t.Fatalf("expected SYNC_PENDING body, got %s", w.Body.String())
		}
	})

	t.Run("success", func(t *testing.T) {
		d := newQuoteRequestRouter(t)
		d.dealSync.EXPECT().SyncQuoteRequestToDeal(gomock.Any(), "qr-1").
			Return(entities.QuoteRequest{ID: "qr-1", ExternalContactID: "c-1", ExternalDealID: "d-1"}, nil)

		w := serve(d.router, http.MethodPost, "/v1/quote-requests/qr-1/deal-sync", "")
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})
}

func TestQuoteRequestHandler_CreateQuote(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("missing created_by", func(t *testing.T) {
		d := newQuoteRequestRouter(t)
		w := serve(d.router, http.MethodPost, "/v1/quote-requests/qr-1/quotes", `{"line_items":[]}`)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("request not found", func(t *testing.T) {
		d := newQuoteRequestRouter(t)
		d.quotes.EXPECT().CreateFromQuoteRequest(gomock.Any(), "qr-9", gomock.Any()).Return(entities.Quote{}, entities.ErrQuoteRequestNotFound)

		w := serve(d.router, http.MethodPost, "/v1/quote-requests/qr-9/quotes", `{"created_by":"emp-1"}`)
		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
	})

	t.Run("success", func(t *testing.T) {
		d := newQuoteRequestRouter(t)
		d.quotes.EXPECT().CreateFromQuoteRequest(gomock.Any(), "qr-1", gomock.AssignableToTypeOf(usecase.CreateQuoteInput{})).DoAndReturn(
			func(_ context.Context, _ string, in usecase.CreateQuoteInput) (entities.Quote, error) {
				if in.CreatedBy != "emp-1" || len(in.LineItems) != 1 || in.LineItems[0].UnitPrice != 1500 {
					t.Fatalf("unexpected input: %+v", in)
				}
				return entities.Quote{ID: "q-1", QuoteRequestID: "qr-1", QuoteNumber: "Q-20250101-AAAAAA", TotalAmount: 1500, Status: entities.QuoteStatusDraft}, nil
			},
		)

		w := serve(d.router, http.MethodPost, "/v1/quote-requests/qr-1/quotes", `{"created_by":"emp-1","line_items":[{"description":"Audit","quantity":1,"unit_price":1500}]}`)
		if w.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d", w.Code)
		}
	})
}
