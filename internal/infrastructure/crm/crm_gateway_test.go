package crm

import (
	"context"
	"encoding/json"
	"errors"
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
	g, err := NewGateway(config.CRM{BaseURL: srv.URL, AccessToken: "secret"}, time.Second)
	require.NoError(t, err)
	return g
}

func TestNewGateway(t *testing.T) {
	t.Run("requires token", func(t *testing.T) {
		_, err := NewGateway(config.CRM{BaseURL: "http://crm"}, time.Second)
		assert.ErrorIs(t, err, ErrMissingCRMAccessToken)
	})
	t.Run("mock mode needs no token", func(t *testing.T) {
		g, err := NewGateway(config.CRM{Mock: true}, time.Second)
		require.NoError(t, err)
		assert.NotNil(t, g.mock)
	})
}

func TestGatewaySearchContactByEmail(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		g := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/crm/v3/objects/contacts/search", r.URL.Path)
			var req searchRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			require.Len(t, req.FilterGroups, 1)
			assert.Equal(t, "a@b.com", req.FilterGroups[0].Filters[0].Value)
			_, _ = w.Write([]byte(`{"total":1,"results":[{"id":"501","properties":{"email":"a@b.com"}}]}`))
		})
		c, found, err := g.SearchContactByEmail(context.Background(), " A@B.com ")
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, "501", c.ID)
	})

	t.Run("not found is not an error", func(t *testing.T) {
		g := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"total":0,"results":[]}`))
		})
		_, found, err := g.SearchContactByEmail(context.Background(), "x@y.com")
		require.NoError(t, err)
		assert.False(t, found)
	})
}

func TestGatewayCreateDeal(t *testing.T) {
	t.Run("associates contact and owner", func(t *testing.T) {
		g := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/crm/v3/objects/deals", r.URL.Path)
			var req objectRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, "Acme - consulting", req.Properties["dealname"])
			assert.Equal(t, "0", req.Properties["amount"])
			assert.Equal(t, "owner-7", req.Properties["hubspot_owner_id"])
			require.Len(t, req.Associations, 1)
			assert.Equal(t, "501", req.Associations[0].To.ID)
			assert.Equal(t, dealToContactAssociationTypeID, req.Associations[0].Types[0].AssociationTypeID)
			w.WriteHeader(http.StatusCreated)
			_, _ = w.Write([]byte(`{"id":"9001"}`))
		})
		id, err := g.CreateDeal(context.Background(), interfaces.CRMDealInput{
			Name: "Acme - consulting", Amount: "0", OwnerID: "owner-7", ContactID: "501",
		})
		require.NoError(t, err)
		assert.Equal(t, "9001", id)
	})

	t.Run("missing id is an external failure", func(t *testing.T) {
		g := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{}`))
		})
		_, err := g.CreateDeal(context.Background(), interfaces.CRMDealInput{Name: "x"})
		var ese *entities.ExternalServiceError
		assert.True(t, errors.As(err, &ese))
	})
}

func TestGatewayGetDeal(t *testing.T) {
	g := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/crm/v3/objects/deals/9001", r.URL.Path)
		assert.Contains(t, r.URL.Query().Get("properties"), "dealstage")
		_, _ = w.Write([]byte(`{"id":"9001","properties":{"dealstage":"closedwon","amount":"1800","dealname":"Acme - consulting","closedate":"2025-01-31"}}`))
	})
	deal, err := g.GetDeal(context.Background(), "9001")
	require.NoError(t, err)
	assert.Equal(t, "closedwon", deal.Properties.DealStage)
	assert.Equal(t, "1800", deal.Properties.Amount)
	assert.Equal(t, "2025-01-31", deal.Properties.CloseDate)
}

func TestMockGateway(t *testing.T) {
	g, err := NewGateway(config.CRM{Mock: true}, time.Second)
	require.NoError(t, err)
	ctx := context.Background()

	_, found, err := g.SearchContactByEmail(ctx, "a@b.com")
	require.NoError(t, err)
	assert.False(t, found)

	contactID, err := g.CreateContact(ctx, interfaces.CRMContactInput{Email: "A@b.com"})
	require.NoError(t, err)
	c, found, err := g.SearchContactByEmail(ctx, "a@b.com")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, contactID, c.ID)
	require.NoError(t, g.UpdateContact(ctx, contactID, interfaces.CRMContactInput{Email: "a@b.com"}))

	dealID, err := g.CreateDeal(ctx, interfaces.CRMDealInput{Name: "Acme", Amount: "0", ContactID: contactID})
	require.NoError(t, err)
	require.NoError(t, g.UpdateDealAmount(ctx, dealID, "1800"))
	deal, err := g.GetDeal(ctx, dealID)
	require.NoError(t, err)
	assert.Equal(t, "appointmentscheduled", deal.Properties.DealStage)
	assert.Equal(t, "1800", deal.Properties.Amount)

	_, err = g.GetDeal(ctx, "missing")
	assert.True(t, entities.IsRetryable(err))
}
