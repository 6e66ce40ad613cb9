package request

import (
	"strings"

	"salespipeline/internal/domain/entities"
	"salespipeline/internal/usecase"
)

// CreateQuoteRequestRequest is the intake form payload.
type CreateQuoteRequestRequest struct {
	Name     string   `json:"name" binding:"required"`
	Email    string   `json:"email" binding:"required"`
	Phone    string   `json:"phone"`
	Company  string   `json:"company"`
	Services []string `json:"services"`
	Urgency  string   `json:"urgency"`
}

func (r CreateQuoteRequestRequest) ToInput() usecase.CreateQuoteRequestInput {
	return usecase.CreateQuoteRequestInput{
		Name:     r.Name,
		Email:    r.Email,
		Phone:    r.Phone,
		Company:  r.Company,
		Services: r.Services,
		Urgency:  r.Urgency,
	}
}

type AssignQuoteRequestRequest struct {
	EmployeeID string `json:"employee_id" binding:"required"`
	Name       string `json:"name" binding:"required"`
	CRMOwnerID string `json:"crm_owner_id"`
}

func (r AssignQuoteRequestRequest) ToAssignee() entities.SalesAssignee {
	return entities.SalesAssignee{
		EmployeeID: strings.TrimSpace(r.EmployeeID),
		Name:       strings.TrimSpace(r.Name),
		CRMOwnerID: strings.TrimSpace(r.CRMOwnerID),
	}
}
