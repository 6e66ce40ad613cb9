package request

import (
	"strings"

	"salespipeline/internal/domain/entities"
	"salespipeline/internal/usecase"
	"salespipeline/internal/usecase/interfaces"
)

type CRMDealProperties struct {
	DealStage string `json:"dealstage"`
	Amount    string `json:"amount"`
	DealName  string `json:"dealname"`
	CloseDate string `json:"closedate"`
}

// CRMDealWebhook is the deal-stage change notification. Unknown fields are
// ignored.
type CRMDealWebhook struct {
	DealID     string            `json:"dealId"`
	Properties CRMDealProperties `json:"properties"`
}

// Validate reports the first missing required field.
func (w CRMDealWebhook) Validate() error {
	if strings.TrimSpace(w.DealID) == "" {
		return &entities.DataQualityError{Field: "dealId", Reason: "required"}
	}
	return nil
}

func (w CRMDealWebhook) ToEvent() usecase.DealEvent {
	return usecase.DealEvent{
		DealID: strings.TrimSpace(w.DealID),
		Properties: interfaces.CRMDealProperties{
			DealStage: w.Properties.DealStage,
			Amount:    w.Properties.Amount,
			DealName:  w.Properties.DealName,
			CloseDate: w.Properties.CloseDate,
		},
	}
}

type EnvelopeWebhook struct {
	EnvelopeID string `json:"envelopeId"`
	Status     string `json:"status"`
}

func (w EnvelopeWebhook) Validate() error {
	if strings.TrimSpace(w.EnvelopeID) == "" {
		return &entities.DataQualityError{Field: "envelopeId", Reason: "required"}
	}
	if strings.TrimSpace(w.Status) == "" {
		return &entities.DataQualityError{Field: "status", Reason: "required"}
	}
	return nil
}

func (w EnvelopeWebhook) ToEvent() usecase.EnvelopeEvent {
	return usecase.EnvelopeEvent{
		EnvelopeID: strings.TrimSpace(w.EnvelopeID),
		Status:     strings.ToLower(strings.TrimSpace(w.Status)),
	}
}
