package esignature

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"salespipeline/internal/domain/entities"
	"salespipeline/internal/infrastructure/config"
	"salespipeline/internal/usecase/interfaces"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGateway(t *testing.T, h http.HandlerFunc) *Gateway {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	g, err := NewGateway(config.ESignature{BaseURL: srv.URL, AccountID: "acc-1", AccessToken: "tok"}, time.Second)
	require.NoError(t, err)
	return g
}

func TestNewGateway(t *testing.T) {
	_, err := NewGateway(config.ESignature{AccountID: "acc"}, time.Second)
	assert.ErrorIs(t, err, ErrMissingESignatureAccessToken)
	_, err = NewGateway(config.ESignature{AccessToken: "tok"}, time.Second)
	assert.ErrorIs(t, err, ErrMissingESignatureAccountID)
}

func TestGatewayCreateEnvelope(t *testing.T) {
	g := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v2.1/accounts/acc-1/envelopes", r.URL.Path)
		var def envelopeDefinition
		require.NoError(t, json.NewDecoder(r.Body).Decode(&def))
		assert.Equal(t, "tpl-1", def.TemplateID)
		assert.Equal(t, "sent", def.Status)
		require.Len(t, def.TemplateRoles, 1)
		role := def.TemplateRoles[0]
		assert.Equal(t, "Client", role.RoleName)
		require.Len(t, role.Tabs.TextTabs, 1)
		assert.Equal(t, "true", role.Tabs.TextTabs[0].Locked)
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"envelopeId":"env-1","status":"sent"}`))
	})

	resp, err := g.CreateEnvelope(context.Background(), interfaces.EnvelopeRequest{
		TemplateID:   "tpl-1",
		EmailSubject: "Contract",
		Signer:       interfaces.EnvelopeRecipient{RoleName: "Client", Name: "Ada", Email: "a@b.com"},
		Tabs:         []interfaces.TextTab{{Label: "contract_amount", Value: "1800.00", Locked: true}},
	})
	require.NoError(t, err)
	assert.Equal(t, "env-1", resp.EnvelopeID)
}

func TestGatewayStatusAndDocument(t *testing.T) {
	g := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v2.1/accounts/acc-1/envelopes/env-1":
			_, _ = w.Write([]byte(`{"envelopeId":"env-1","status":"Completed"}`))
		case "/v2.1/accounts/acc-1/envelopes/env-1/documents/combined":
			assert.Equal(t, "application/pdf", r.Header.Get("Accept"))
			_, _ = w.Write([]byte("%PDF-1.4 body"))
		case "/v2.1/accounts/acc-1/envelopes/env-2/documents/combined":
			w.WriteHeader(http.StatusOK)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})
	ctx := context.Background()

	status, err := g.GetEnvelopeStatus(ctx, "env-1")
	require.NoError(t, err)
	assert.Equal(t, "completed", status)

	doc, err := g.DownloadCombinedDocument(ctx, "env-1")
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4 body", string(doc))

	_, err = g.DownloadCombinedDocument(ctx, "env-2")
	assert.Equal(t, entities.ErrorClassExternalService, entities.ClassifyError(err))

	_, err = g.GetEnvelopeStatus(ctx, "env-404")
	assert.True(t, entities.IsRetryable(err))
}

func TestMockGateway(t *testing.T) {
	g, err := NewGateway(config.ESignature{Mock: true}, time.Second)
	require.NoError(t, err)
	ctx := context.Background()

	resp, err := g.CreateEnvelope(ctx, interfaces.EnvelopeRequest{TemplateID: "tpl", Signer: interfaces.EnvelopeRecipient{Email: "a@b.com"}})
	require.NoError(t, err)
	require.NotEmpty(t, resp.EnvelopeID)

	status, err := g.GetEnvelopeStatus(ctx, resp.EnvelopeID)
	require.NoError(t, err)
	assert.Equal(t, "sent", status)

	doc, err := g.DownloadCombinedDocument(ctx, resp.EnvelopeID)
	require.NoError(t, err)
	assert.Contains(t, string(doc), "%PDF-")
}
