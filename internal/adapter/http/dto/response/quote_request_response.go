package response

import (
	"time"

	"salespipeline/internal/domain/entities"
)

type AssigneeResponse struct {
	EmployeeID string `json:"employee_id"`
	Name       string `json:"name"`
	CRMOwnerID string `json:"crm_owner_id,omitempty"`
}

type QuoteRequestResponse struct {
	ID                string            `json:"id"`
	Name              string            `json:"name"`
	Email             string            `json:"email"`
	Phone             string            `json:"phone,omitempty"`
	Company           string            `json:"company,omitempty"`
	Services          []string          `json:"services"`
	Urgency           string            `json:"urgency"`
	Status            string            `json:"status"`
	Assignee          *AssigneeResponse `json:"assignee,omitempty"`
	ExternalContactID string            `json:"external_contact_id,omitempty"`
	ExternalDealID    string            `json:"external_deal_id,omitempty"`
	CreatedAt         time.Time         `json:"created_at"`
	UpdatedAt         time.Time         `json:"updated_at"`
}

func FromQuoteRequest(q entities.QuoteRequest) QuoteRequestResponse {
	resp := QuoteRequestResponse{
		ID:                q.ID,
		Name:              q.Name,
		Email:             q.Email,
		Phone:             q.Phone,
		Company:           q.Company,
		Services:          q.Services,
		Urgency:           string(q.Urgency),
		Status:            string(q.Status),
		ExternalContactID: q.ExternalContactID,
		ExternalDealID:    q.ExternalDealID,
		CreatedAt:         q.CreatedAt,
		UpdatedAt:         q.UpdatedAt,
	}
	if resp.Services == nil {
		resp.Services = []string{}
	}
	if q.Assignee != nil {
		resp.Assignee = &AssigneeResponse{
			EmployeeID: q.Assignee.EmployeeID,
			Name:       q.Assignee.Name,
			CRMOwnerID: q.Assignee.CRMOwnerID,
		}
	}
	return resp
}

func FromQuoteRequests(in []entities.QuoteRequest) []QuoteRequestResponse {
	out := make([]QuoteRequestResponse, 0, len(in))
	for _, q := range in {
		out = append(out, FromQuoteRequest(q))
	}
	return out
}
