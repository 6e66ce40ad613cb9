package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnv(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		for _, k := range []string{"PORT", "STORE_BACKEND", "DOCUMENT_STORE", "EXTERNAL_CALL_TIMEOUT", "CONTRACT_SWEEP_INTERVAL", "WEBHOOK_DEDUPE_TTL", "CRM_MOCK", "ESIGNATURE_MOCK", "MINIO_USE_SSL", "QUOTE_REQUESTS_TABLE", "QUOTES_TABLE", "CONTRACTS_TABLE", "AUDIT_TABLE"} {
			t.Setenv(k, "")
		}
		cfg, err := FromEnv()
		require.NoError(t, err)
		assert.Equal(t, 8080, cfg.Port)
		assert.Equal(t, StoreBackendDynamoDB, cfg.StoreBackend)
		assert.Equal(t, DocumentStoreS3, cfg.Documents.Backend)
		assert.Equal(t, 15*time.Second, cfg.ExternalCallTimeout)
		assert.Equal(t, time.Duration(0), cfg.ContractSweepInterval)
		assert.Equal(t, 10*time.Minute, cfg.WebhookDedupeTTL)
		assert.Equal(t, Tables{QuoteRequests: "quote_requests", Quotes: "quotes", Contracts: "contracts", Audit: "sync_audit_log"}, cfg.Tables)
	})

	t.Run("overrides", func(t *testing.T) {
		t.Setenv("PORT", "9090")
		t.Setenv("STORE_BACKEND", "Memory")
		t.Setenv("DOCUMENT_STORE", "minio")
		t.Setenv("MINIO_ENDPOINT", "localhost:9000")
		t.Setenv("CRM_MOCK", "true")
		t.Setenv("CONTRACT_SWEEP_INTERVAL", "5m")
		t.Setenv("QUOTES_TABLE", "staging_quotes")
		cfg, err := FromEnv()
		require.NoError(t, err)
		assert.Equal(t, 9090, cfg.Port)
		assert.Equal(t, StoreBackendMemory, cfg.StoreBackend)
		assert.Equal(t, DocumentStoreMinIO, cfg.Documents.Backend)
		assert.True(t, cfg.CRM.Mock)
		assert.Equal(t, 5*time.Minute, cfg.ContractSweepInterval)
		assert.Equal(t, "staging_quotes", cfg.Tables.Quotes)
	})

	t.Run("invalid values are reported together", func(t *testing.T) {
		t.Setenv("PORT", "abc")
		t.Setenv("STORE_BACKEND", "mongo")
		t.Setenv("EXTERNAL_CALL_TIMEOUT", "soon")
		_, err := FromEnv()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "PORT")
		assert.Contains(t, err.Error(), "STORE_BACKEND")
		assert.Contains(t, err.Error(), "EXTERNAL_CALL_TIMEOUT")
	})

	t.Run("minio requires endpoint", func(t *testing.T) {
		t.Setenv("DOCUMENT_STORE", "minio")
		t.Setenv("MINIO_ENDPOINT", "")
		_, err := FromEnv()
		require.Error(t, err)
	})
}
