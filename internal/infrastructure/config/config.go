package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	StoreBackendDynamoDB = "dynamodb"
	StoreBackendMemory   = "memory"

	DocumentStoreS3     = "s3"
	DocumentStoreMinIO  = "minio"
	DocumentStoreMemory = "memory"
)

type AWS struct {
	Region           string
	AccessKeyID      string
	SecretAccessKey  string
	DynamoDBEndpoint string
	S3Endpoint       string
}

type CRM struct {
	BaseURL       string
	AccessToken   string
	Mock          bool
	WebhookSecret string
}

type ESignature struct {
	BaseURL       string
	AccountID     string
	AccessToken   string
	Mock          bool
	WebhookSecret string
}

type Documents struct {
	Backend        string
	Bucket         string
	MinIOEndpoint  string
	MinIOAccessKey string
	MinIOSecretKey string
	MinIOUseSSL    bool
}

// Tables names the DynamoDB entity tables and the PostgreSQL audit table.
type Tables struct {
	QuoteRequests string
	Quotes        string
	Contracts     string
	Audit         string
}

// Config is the process configuration, read once from the environment.
type Config struct {
	Port                  int
	StoreBackend          string
	AuditDatabaseURL      string
	Tables                Tables
	AWS                   AWS
	CRM                   CRM
	ESignature            ESignature
	Documents             Documents
	ExternalCallTimeout   time.Duration
	ContractSweepInterval time.Duration
	RedisAddr             string
	WebhookDedupeTTL      time.Duration
}

// FromEnv builds a Config from environment variables. Unknown backends and
// malformed numbers or durations are reported as errors.
func FromEnv() (Config, error) {
	var errs []string
	cfg := Config{
		Port:             intEnv("PORT", 8080, &errs),
		StoreBackend:     strings.ToLower(getenvDefault("STORE_BACKEND", StoreBackendDynamoDB)),
		AuditDatabaseURL: os.Getenv("AUDIT_DATABASE_URL"),
		Tables: Tables{
			QuoteRequests: getenvDefault("QUOTE_REQUESTS_TABLE", "quote_requests"),
			Quotes:        getenvDefault("QUOTES_TABLE", "quotes"),
			Contracts:     getenvDefault("CONTRACTS_TABLE", "contracts"),
			Audit:         getenvDefault("AUDIT_TABLE", "sync_audit_log"),
		},
		AWS: AWS{
			Region:           getenvDefault("AWS_REGION", "us-east-1"),
			AccessKeyID:      getenvDefault("AWS_ACCESS_KEY_ID", "local"),
			SecretAccessKey:  getenvDefault("AWS_SECRET_ACCESS_KEY", "local"),
			DynamoDBEndpoint: os.Getenv("DYNAMODB_ENDPOINT"),
			S3Endpoint:       os.Getenv("S3_ENDPOINT"),
		},
		CRM: CRM{
			BaseURL:       getenvDefault("CRM_BASE_URL", "https://api.hubapi.com"),
			AccessToken:   os.Getenv("CRM_ACCESS_TOKEN"),
			Mock:          boolEnv("CRM_MOCK", false, &errs),
			WebhookSecret: os.Getenv("CRM_WEBHOOK_SECRET"),
		},
		ESignature: ESignature{
			BaseURL:       getenvDefault("ESIGNATURE_BASE_URL", "https://demo.docusign.net/restapi"),
			AccountID:     os.Getenv("ESIGNATURE_ACCOUNT_ID"),
			AccessToken:   os.Getenv("ESIGNATURE_ACCESS_TOKEN"),
			Mock:          boolEnv("ESIGNATURE_MOCK", false, &errs),
			WebhookSecret: os.Getenv("ESIGNATURE_WEBHOOK_SECRET"),
		},
		Documents: Documents{
			Backend:        strings.ToLower(getenvDefault("DOCUMENT_STORE", DocumentStoreS3)),
			Bucket:         getenvDefault("DOCUMENT_BUCKET", "contracts"),
			MinIOEndpoint:  os.Getenv("MINIO_ENDPOINT"),
			MinIOAccessKey: os.Getenv("MINIO_ACCESS_KEY"),
			MinIOSecretKey: os.Getenv("MINIO_SECRET_KEY"),
			MinIOUseSSL:    boolEnv("MINIO_USE_SSL", false, &errs),
		},
		ExternalCallTimeout:   durationEnv("EXTERNAL_CALL_TIMEOUT", 15*time.Second, &errs),
		ContractSweepInterval: durationEnv("CONTRACT_SWEEP_INTERVAL", 0, &errs),
		RedisAddr:             os.Getenv("REDIS_ADDR"),
		WebhookDedupeTTL:      durationEnv("WEBHOOK_DEDUPE_TTL", 10*time.Minute, &errs),
	}

	switch cfg.StoreBackend {
	case StoreBackendDynamoDB, StoreBackendMemory:
	default:
		errs = append(errs, fmt.Sprintf("STORE_BACKEND: unsupported value %q", cfg.StoreBackend))
	}
	switch cfg.Documents.Backend {
	case DocumentStoreS3, DocumentStoreMemory:
	case DocumentStoreMinIO:
		if cfg.Documents.MinIOEndpoint == "" {
			errs = append(errs, "MINIO_ENDPOINT: required when DOCUMENT_STORE=minio")
		}
	default:
		errs = append(errs, fmt.Sprintf("DOCUMENT_STORE: unsupported value %q", cfg.Documents.Backend))
	}

	if len(errs) > 0 {
		return Config{}, fmt.Errorf("invalid configuration: %s", strings.Join(errs, "; "))
	}
	return cfg, nil
}

func getenvDefault(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func intEnv(key string, def int, errs *[]string) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		*errs = append(*errs, fmt.Sprintf("%s: invalid integer %q", key, raw))
		return def
	}
	return v
}

func boolEnv(key string, def bool, errs *[]string) bool {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		*errs = append(*errs, fmt.Sprintf("%s: invalid boolean %q", key, raw))
		return def
	}
	return v
}

func durationEnv(key string, def time.Duration, errs *[]string) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	v, err := time.ParseDuration(raw)
	if err != nil || v < 0 {
		*errs = append(*errs, fmt.Sprintf("%s: invalid duration %q", key, raw))
		return def
	}
	return v
}
