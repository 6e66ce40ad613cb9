// Package stagemapper translates between CRM deal stages and local quote
// status. Everything here is pure: no I/O, no clock, no logging.
package stagemapper

import (
	"math"
	"strconv"
	"strings"

	"salespipeline/internal/domain/entities"
)

// Stage names of the CRM's default sales pipeline.
const (
	StageAppointmentScheduled  = "appointmentscheduled"
	StageQualifiedToBuy        = "qualifiedtobuy"
	StagePresentationScheduled = "presentationscheduled"
	StageDecisionMakerBoughtIn = "decisionmakerboughtin"
	StageContractSent          = "contractsent"
	StageClosedWon             = "closedwon"
	StageClosedLost            = "closedlost"
)

// UnmappedStatus is what any stage missing from the table maps to.
const UnmappedStatus = entities.QuoteStatusDraft

var inbound = map[string]entities.QuoteStatus{
	StageAppointmentScheduled:  entities.QuoteStatusPending,
	StageQualifiedToBuy:        entities.QuoteStatusInReview,
	StagePresentationScheduled: entities.QuoteStatusQuoted,
	StageDecisionMakerBoughtIn: entities.QuoteStatusApproved,
	StageContractSent:          entities.QuoteStatusContractSent,
	StageClosedWon:             entities.QuoteStatusAccepted,
	StageClosedLost:            entities.QuoteStatusRejected,
}

// ToLocalStatus maps a CRM deal stage to a quote status. known is false when
// the stage is not in the table and the draft fallback was used.
func ToLocalStatus(stage string) (status entities.QuoteStatus, known bool) {
	s, ok := inbound[strings.ToLower(strings.TrimSpace(stage))]
	if !ok {
		return UnmappedStatus, false
	}
	return s, true
}

// ParseAmount reads the CRM's string amount. An empty value is reported as
// absent; anything unparseable is a data quality error and the caller keeps
// its current amount.
func ParseAmount(raw string) (amount float64, present bool, err error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false, nil
	}
	v, perr := strconv.ParseFloat(strings.ReplaceAll(raw, ",", ""), 64)
	if perr != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, true, &entities.DataQualityError{Field: "amount", Value: raw, Reason: "not a number"}
	}
	if v < 0 {
		return 0, true, &entities.DataQualityError{Field: "amount", Value: raw, Reason: "negative amount"}
	}
	return v, true, nil
}

// DealAmount is the amount pushed to the CRM for a quote; 0 until priced.
func DealAmount(q *entities.Quote) float64 {
	if q == nil {
		return 0
	}
	return q.TotalAmount
}

// FormatAmount renders an amount the way the CRM stores it.
func FormatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// DealName builds "{company} - {service}".
func DealName(company, contactName, service string) string {
	company = strings.TrimSpace(company)
	if company == "" {
		company = strings.TrimSpace(contactName)
	}
	service = strings.TrimSpace(service)
	if service == "" {
		service = "general"
	}
	return company + " - " + service
}
