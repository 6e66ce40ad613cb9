package request

import (
	"encoding/json"
	"errors"
	"testing"

	"salespipeline/internal/domain/entities"
)

func TestCRMDealWebhook(t *testing.T) {
	var w CRMDealWebhook
	raw := `{"dealId":" 9001 ","properties":{"dealstage":"closedwon","amount":"1800","dealname":"Acme","closedate":"2025-01-31"},"extra":true}`
	if err := json.Unmarshal([]byte(raw), &w); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := w.Validate(); err != nil {
		t.Fatalf("unexpected validation error: %v", err)
	}
	ev := w.ToEvent()
	if ev.DealID != "9001" {
		t.Fatalf("expected trimmed deal id, got %q", ev.DealID)
	}
	if ev.Properties.DealStage != "closedwon" || ev.Properties.Amount != "1800" {
		t.Fatalf("unexpected properties: %+v", ev.Properties)
	}

	var empty CRMDealWebhook
	var dqe *entities.DataQualityError
	if err := empty.Validate(); !errors.As(err, &dqe) || dqe.Field != "dealId" {
		t.Fatalf("expected data quality error on dealId, got %v", err)
	}
}

func TestEnvelopeWebhook(t *testing.T) {
	w := EnvelopeWebhook{EnvelopeID: "env-1", Status: " Completed "}
	if err := w.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := w.ToEvent().Status; got != "completed" {
		t.Fatalf("expected completed, got %q", got)
	}

	var dqe *entities.DataQualityError
	if err := (EnvelopeWebhook{Status: "completed"}).Validate(); !errors.As(err, &dqe) || dqe.Field != "envelopeId" {
		t.Fatalf("expected envelopeId error, got %v", err)
	}
	if err := (EnvelopeWebhook{EnvelopeID: "env-1"}).Validate(); !errors.As(err, &dqe) || dqe.Field != "status" {
		t.Fatalf("expected status error, got %v", err)
	}
}

func TestCreateQuoteRequest_ToInput(t *testing.T) {
	r := CreateQuoteRequest{
		CreatedBy: "emp-1",
		LineItems: []LineItemRequest{{Description: "Audit", Quantity: 2, UnitPrice: 900}},
	}
	in := r.ToInput()
	if len(in.LineItems) != 1 || in.LineItems[0].Total() != 1800 {
		t.Fatalf("unexpected line items: %+v", in.LineItems)
	}
	if !in.ValidUntil.IsZero() {
		t.Fatalf("expected zero valid until, got %v", in.ValidUntil)
	}
}
