package response

import (
	"time"

	"salespipeline/internal/domain/entities"
	"salespipeline/internal/usecase"
)

type SignerResponse struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Company string `json:"company,omitempty"`
}

type ContractResponse struct {
	ID                   string         `json:"id"`
	ContractNumber       string         `json:"contract_number"`
	QuoteID              string         `json:"quote_id"`
	EnvelopeID           string         `json:"envelope_id"`
	TemplateID           string         `json:"template_id"`
	Status               string         `json:"status"`
	Signer               SignerResponse `json:"signer"`
	SignedAt             *time.Time     `json:"signed_at,omitempty"`
	ArchivedDocumentPath string         `json:"archived_document_path,omitempty"`
	CreatedAt            time.Time      `json:"created_at"`
	ExpiresAt            time.Time      `json:"expires_at"`
	UpdatedAt            time.Time      `json:"updated_at"`
}

func FromContract(c entities.Contract) ContractResponse {
	return ContractResponse{
		ID:             c.ID,
		ContractNumber: c.ContractNumber,
		QuoteID:        c.QuoteID,
		EnvelopeID:     c.EnvelopeID,
		TemplateID:     c.TemplateID,
		Status:         string(c.Status),
		Signer: SignerResponse{
			Name:    c.Signer.Name,
			Email:   c.Signer.Email,
			Company: c.Signer.Company,
		},
		SignedAt:             c.SignedAt,
		ArchivedDocumentPath: c.ArchivedDocumentPath,
		CreatedAt:            c.CreatedAt,
		ExpiresAt:            c.ExpiresAt,
		UpdatedAt:            c.UpdatedAt,
	}
}

func FromContracts(in []entities.Contract) []ContractResponse {
	out := make([]ContractResponse, 0, len(in))
	for _, c := range in {
		out = append(out, FromContract(c))
	}
	return out
}

type ReconcileResponse struct {
	Checked  int `json:"checked"`
	Signed   int `json:"signed"`
	Expired  int `json:"expired"`
	Declined int `json:"declined"`
	Voided   int `json:"voided"`
	Pending  int `json:"pending"`
	Failed   int `json:"failed"`
}

func FromReconcileReport(r usecase.ReconcileReport) ReconcileResponse {
	return ReconcileResponse(r)
}
