package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"salespipeline/internal/infrastructure/bootstrap"
	"salespipeline/internal/infrastructure/config"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, err := bootstrap.New(context.Background(), config.Config{
		Port:         8080,
		StoreBackend: config.StoreBackendMemory,
		CRM:          config.CRM{Mock: true},
		ESignature:   config.ESignature{Mock: true},
		Documents:    config.Documents{Backend: config.DocumentStoreMemory, Bucket: "contracts"},
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return NewRouter(c)
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any, out any) int {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if out != nil && w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), out), w.Body.String())
	}
	return w.Code
}

func TestPing(t *testing.T) {
	r := newTestRouter(t)
	var body map[string]string
	assert.Equal(t, http.StatusOK, doJSON(t, r, http.MethodGet, "/v1/ping", nil, &body))
	assert.Equal(t, "pong", body["message"])
}

func TestPipelineEndToEnd(t *testing.T) {
	r := newTestRouter(t)

	var qr map[string]any
	require.Equal(t, http.StatusCreated, doJSON(t, r, http.MethodPost, "/v1/quote-requests", map[string]any{
		"name": "Ada Lovelace", "email": "ada@acme.io", "company": "Acme", "services": []string{"Consulting"},
	}, &qr))
	qrID := qr["id"].(string)

	require.Equal(t, http.StatusOK, doJSON(t, r, http.MethodPost, "/v1/quote-requests/"+qrID+"/assign", map[string]any{
		"employee_id": "emp-1", "name": "Grace",
	}, &qr))
	assert.Equal(t, "assigned", qr["status"])

	require.Equal(t, http.StatusOK, doJSON(t, r, http.MethodPost, "/v1/quote-requests/"+qrID+"/deal-sync", nil, &qr))
	assert.NotEmpty(t, qr["external_deal_id"])

	var quote map[string]any
	require.Equal(t, http.StatusCreated, doJSON(t, r, http.MethodPost, "/v1/quote-requests/"+qrID+"/quotes", map[string]any{
		"created_by": "emp-1",
		"line_items": []map[string]any{{"description": "Consulting", "quantity": 2, "unit_price": 750}},
	}, &quote))
	quoteID := quote["id"].(string)
	assert.Equal(t, 1500.0, quote["total_amount"])
	assert.Equal(t, qr["external_deal_id"], quote["external_deal_id"])

	var contract map[string]any
	require.Equal(t, http.StatusCreated, doJSON(t, r, http.MethodPost, "/v1/quotes/"+quoteID+"/contracts", map[string]any{
		"template_id": "tpl-1",
		"signer":      map[string]any{"name": "Ada Lovelace", "email": "ada@acme.io"},
	}, &contract))
	assert.Equal(t, "sent", contract["status"])
	envelopeID := contract["envelope_id"].(string)
	contractNumber := contract["contract_number"].(string)

	var ack map[string]any
	require.Equal(t, http.StatusOK, doJSON(t, r, http.MethodPost, "/webhooks/esignature", map[string]any{
		"envelopeId": envelopeID, "status": "completed",
	}, &ack))
	assert.Equal(t, "signed", ack["outcome"])

	// Redelivery is acknowledged without a second effect.
	require.Equal(t, http.StatusOK, doJSON(t, r, http.MethodPost, "/webhooks/esignature", map[string]any{
		"envelopeId": envelopeID, "status": "completed",
	}, &ack))
	assert.Equal(t, "duplicate", ack["outcome"])

	require.Equal(t, http.StatusOK, doJSON(t, r, http.MethodGet, "/v1/contracts/"+contract["id"].(string), nil, &contract))
	assert.Equal(t, "signed", contract["status"])
	assert.Equal(t, "contracts/"+contractNumber+"_signed.pdf", contract["archived_document_path"])

	require.Equal(t, http.StatusOK, doJSON(t, r, http.MethodGet, "/v1/quotes/"+quoteID, nil, &quote))
	assert.Equal(t, "contracted", quote["status"])

	var audit []map[string]any
	require.Equal(t, http.StatusOK, doJSON(t, r, http.MethodGet, "/v1/audit-log?entity_kind=contract&entity_id="+contract["id"].(string), nil, &audit))
	assert.NotEmpty(t, audit)
}

func TestWebhookUnknownEnvelope(t *testing.T) {
	r := newTestRouter(t)
	var ack map[string]any
	require.Equal(t, http.StatusOK, doJSON(t, r, http.MethodPost, "/webhooks/esignature", map[string]any{
		"envelopeId": "nope", "status": "completed",
	}, &ack))
	assert.Equal(t, "not_found", ack["outcome"])

	require.Equal(t, http.StatusBadRequest, doJSON(t, r, http.MethodPost, "/webhooks/esignature", map[string]any{"status": "completed"}, nil))
}
