package esignature

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"salespipeline/internal/domain/entities"
	"salespipeline/internal/infrastructure/config"
	"salespipeline/internal/infrastructure/httpclient"
	"salespipeline/internal/usecase/interfaces"
)

var (
	ErrMissingESignatureAccessToken = errors.New("missing ESIGNATURE_ACCESS_TOKEN")
	ErrMissingESignatureAccountID   = errors.New("missing ESIGNATURE_ACCOUNT_ID")
)

// Gateway talks to a DocuSign-style eSignature REST API (v2.1).
type Gateway struct {
	client    *httpclient.Client
	accountID string
	mock      *mockProvider
}

var _ interfaces.IESignatureGateway = (*Gateway)(nil)

func NewGateway(cfg config.ESignature, timeout time.Duration) (*Gateway, error) {
	if cfg.Mock {
		log.Printf("[esign][gateway] mock mode enabled")
		return &Gateway{mock: newMockProvider()}, nil
	}
	if strings.TrimSpace(cfg.AccessToken) == "" {
		log.Printf("[esign][gateway] missing ESIGNATURE_ACCESS_TOKEN")
		return nil, ErrMissingESignatureAccessToken
	}
	if strings.TrimSpace(cfg.AccountID) == "" {
		log.Printf("[esign][gateway] missing ESIGNATURE_ACCOUNT_ID")
		return nil, ErrMissingESignatureAccountID
	}
	log.Printf("[esign][gateway] client initialized base_url=%s account_id=%s", cfg.BaseURL, cfg.AccountID)
	return &Gateway{
		accountID: cfg.AccountID,
		client: httpclient.New(httpclient.Options{
			System:     entities.ExternalSystemESignature,
			BaseURL:    cfg.BaseURL,
			Token:      cfg.AccessToken,
			Timeout:    timeout,
			MaxRetries: 2,
		}),
	}, nil
}

type textTab struct {
	TabLabel string `json:"tabLabel"`
	Value    string `json:"value"`
	Locked   string `json:"locked"`
}

type templateRole struct {
	RoleName string `json:"roleName"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Tabs     struct {
		TextTabs []textTab `json:"textTabs"`
	} `json:"tabs"`
}

type envelopeDefinition struct {
	TemplateID    string         `json:"templateId"`
	EmailSubject  string         `json:"emailSubject"`
	TemplateRoles []templateRole `json:"templateRoles"`
	Status        string         `json:"status"`
}

type envelopeSummary struct {
	EnvelopeID string `json:"envelopeId"`
	Status     string `json:"status"`
}

func (g *Gateway) envelopesPath(parts ...string) string {
	p := "/v2.1/accounts/" + url.PathEscape(g.accountID) + "/envelopes"
	for _, part := range parts {
		p += "/" + url.PathEscape(part)
	}
	return p
}

// CreateEnvelope creates and immediately sends an envelope from a template.
func (g *Gateway) CreateEnvelope(ctx context.Context, req interfaces.EnvelopeRequest) (interfaces.EnvelopeResponse, error) {
	if g.mock != nil {
		return g.mock.createEnvelope(req), nil
	}

	role := templateRole{
		RoleName: req.Signer.RoleName,
		Name:     req.Signer.Name,
		Email:    req.Signer.Email,
	}
	for _, tab := range req.Tabs {
		role.Tabs.TextTabs = append(role.Tabs.TextTabs, textTab{
			TabLabel: tab.Label,
			Value:    tab.Value,
			Locked:   strconv.FormatBool(tab.Locked),
		})
	}
	def := envelopeDefinition{
		TemplateID:    req.TemplateID,
		EmailSubject:  req.EmailSubject,
		TemplateRoles: []templateRole{role},
		Status:        "sent",
	}

	var resp envelopeSummary
	if err := g.client.DoJSON(ctx, "create_envelope", http.MethodPost, g.envelopesPath(), def, &resp); err != nil {
		log.Printf("[esign][gateway] create envelope failed template_id=%s err=%v", req.TemplateID, err)
		return interfaces.EnvelopeResponse{}, err
	}
	log.Printf("[esign][gateway] envelope created envelope_id=%s status=%s", resp.EnvelopeID, resp.Status)
	return interfaces.EnvelopeResponse{EnvelopeID: resp.EnvelopeID, Status: resp.Status}, nil
}

func (g *Gateway) GetEnvelopeStatus(ctx context.Context, envelopeID string) (string, error) {
	if g.mock != nil {
		return g.mock.status(envelopeID)
	}
	var resp envelopeSummary
	if err := g.client.DoJSON(ctx, "get_envelope", http.MethodGet, g.envelopesPath(envelopeID), nil, &resp); err != nil {
		log.Printf("[esign][gateway] get envelope failed envelope_id=%s err=%v", envelopeID, err)
		return "", err
	}
	return strings.ToLower(resp.Status), nil
}

// DownloadCombinedDocument returns every document of the envelope merged into
// one PDF.
func (g *Gateway) DownloadCombinedDocument(ctx context.Context, envelopeID string) ([]byte, error) {
	if g.mock != nil {
		return g.mock.document(envelopeID)
	}
	body, err := g.client.Do(ctx, "download_document", http.MethodGet, g.envelopesPath(envelopeID, "documents", "combined"), nil, "application/pdf")
	if err != nil {
		log.Printf("[esign][gateway] download failed envelope_id=%s err=%v", envelopeID, err)
		return nil, err
	}
	if len(body) == 0 {
		return nil, entities.NewExternalServiceError(entities.ExternalSystemESignature, "download_document", 0, fmt.Errorf("envelope %s returned an empty document", envelopeID))
	}
	log.Printf("[esign][gateway] download success envelope_id=%s bytes=%d", envelopeID, len(body))
	return body, nil
}
