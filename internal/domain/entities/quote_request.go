package entities

import (
	"strings"
	"time"
)

// QuoteRequestStatus represents the lifecycle of a prospect's inbound request.
//
// Domain notes:
//   - Transitions only move forward (see transitions.go).
//   - closed is terminal and reachable from every other status.
type QuoteRequestStatus string

const (
	QuoteRequestStatusNew      QuoteRequestStatus = "new"
	QuoteRequestStatusAssigned QuoteRequestStatus = "assigned"
	QuoteRequestStatusInReview QuoteRequestStatus = "in_review"
	QuoteRequestStatusQuoted   QuoteRequestStatus = "quoted"
	QuoteRequestStatusClosed   QuoteRequestStatus = "closed"
)

type Urgency string

const (
	UrgencyLow    Urgency = "low"
	UrgencyNormal Urgency = "normal"
	UrgencyHigh   Urgency = "high"
	UrgencyUrgent Urgency = "urgent"
)

func ParseUrgency(v string) (Urgency, bool) {
	switch u := Urgency(strings.ToLower(strings.TrimSpace(v))); u {
	case "":
		return UrgencyNormal, true
	case UrgencyLow, UrgencyNormal, UrgencyHigh, UrgencyUrgent:
		return u, true
	}
	return "", false
}

// SalesAssignee is a snapshot of the employee handling a request.
// CRMOwnerID is the owner id the CRM knows this employee by.
type SalesAssignee struct {
	EmployeeID string `json:"employee_id"`
	Name       string `json:"name"`
	CRMOwnerID string `json:"crm_owner_id"`
}

// QuoteRequest is a prospect's inbound interest, created by the intake form.
//
// Storage model (DynamoDB):
//   - PK: id
//
// Never deleted, only closed.
type QuoteRequest struct {
	ID                string             `json:"id"`
	Name              string             `json:"name"`
	Email             string             `json:"email"`
	Phone             string             `json:"phone"`
	Company           string             `json:"company"`
	Services          []string           `json:"services"`
	Urgency           Urgency            `json:"urgency"`
	Status            QuoteRequestStatus `json:"status"`
	Assignee          *SalesAssignee     `json:"assignee,omitempty"`
	ExternalContactID string             `json:"external_contact_id,omitempty"`
	ExternalDealID    string             `json:"external_deal_id,omitempty"`
	CreatedAt         time.Time          `json:"created_at"`
	UpdatedAt         time.Time          `json:"updated_at"`
}

// PrimaryService is the first requested service tag, used for deal names
// and contract subjects.
func (q QuoteRequest) PrimaryService() string {
	if len(q.Services) == 0 {
		return ""
	}
	return q.Services[0]
}

// NormalizeServices trims, lower-cases and deduplicates service tags while
// preserving the order they were requested in.
func NormalizeServices(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, s := range in {
		s = strings.ToLower(strings.TrimSpace(s))
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

type QuoteRequestFilter struct {
	Status     QuoteRequestStatus
	AssigneeID string
	Email      string
}

func (f QuoteRequestFilter) Match(q QuoteRequest) bool {
	if f.Status != "" && q.Status != f.Status {
		return false
	}
	if f.AssigneeID != "" && (q.Assignee == nil || q.Assignee.EmployeeID != f.AssigneeID) {
		return false
	}
	if f.Email != "" && !strings.EqualFold(q.Email, f.Email) {
		return false
	}
	return true
}

// QuoteRequestPatch carries the fields written together with a status change.
type QuoteRequestPatch struct {
	Assignee *SalesAssignee
}
