package httpclient

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"salespipeline/internal/domain/entities"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(url string, retries int) *Client {
	return New(Options{
		System:     entities.ExternalSystemCRM,
		BaseURL:    url + "/",
		Token:      "tok",
		MaxRetries: retries,
		BaseDelay:  time.Millisecond,
		MaxDelay:   5 * time.Millisecond,
	})
}

func TestClientDoJSON(t *testing.T) {
	t.Run("sends bearer token and decodes body", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
			assert.Equal(t, "/things", r.URL.Path)
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"id":"42"}`))
		}))
		defer srv.Close()

		var out struct{ ID string }
		err := newTestClient(srv.URL, 0).DoJSON(context.Background(), "get_thing", http.MethodGet, "/things", nil, &out)
		require.NoError(t, err)
		assert.Equal(t, "42", out.ID)
	})

	t.Run("retries 5xx then succeeds", func(t *testing.T) {
		var calls atomic.Int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if calls.Add(1) < 3 {
				w.WriteHeader(http.StatusBadGateway)
				return
			}
			_, _ = w.Write([]byte(`{}`))
		}))
		defer srv.Close()

		err := newTestClient(srv.URL, 2).DoJSON(context.Background(), "op", http.MethodPost, "/x", map[string]string{"a": "b"}, nil)
		require.NoError(t, err)
		assert.Equal(t, int32(3), calls.Load())
	})

	t.Run("4xx is an external service error with status", func(t *testing.T) {
		var calls atomic.Int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"message":"bad property"}`))
		}))
		defer srv.Close()

		err := newTestClient(srv.URL, 3).DoJSON(context.Background(), "create_deal", http.MethodPost, "/x", nil, nil)
		var ese *entities.ExternalServiceError
		require.True(t, errors.As(err, &ese))
		assert.Equal(t, http.StatusBadRequest, ese.StatusCode)
		assert.Equal(t, "create_deal", ese.Operation)
		assert.Contains(t, ese.Error(), "bad property")
		assert.Equal(t, int32(1), calls.Load())
		assert.True(t, entities.IsRetryable(err))
	})

	t.Run("deadline is reported as timeout", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(50 * time.Millisecond)
		}))
		defer srv.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Millisecond)
		defer cancel()
		err := newTestClient(srv.URL, 0).DoJSON(ctx, "op", http.MethodGet, "/slow", nil, nil)
		var ese *entities.ExternalServiceError
		require.True(t, errors.As(err, &ese))
		assert.True(t, ese.Timeout())
	})

	t.Run("missing token fails without a request", func(t *testing.T) {
		c := New(Options{System: entities.ExternalSystemESignature, BaseURL: "http://127.0.0.1:1"})
		_, err := c.Do(context.Background(), "op", http.MethodGet, "/", nil, "application/json")
		assert.ErrorIs(t, err, ErrMissingToken)
	})
}
