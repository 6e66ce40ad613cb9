package request

import "salespipeline/internal/domain/entities"

type SignerRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required"`
	Company string `json:"company"`
}

type SendContractRequest struct {
	TemplateID string        `json:"template_id" binding:"required"`
	Signer     SignerRequest `json:"signer"`
}

func (r SendContractRequest) ToSigner() entities.Signer {
	return entities.Signer{Name: r.Signer.Name, Email: r.Signer.Email, Company: r.Signer.Company}
}
