package entities

import (
	"testing"
	"time"
)

var allQuoteRequestStatuses = []QuoteRequestStatus{
	QuoteRequestStatusNew, QuoteRequestStatusAssigned, QuoteRequestStatusInReview, QuoteRequestStatusQuoted, QuoteRequestStatusClosed,
}

func TestQuoteRequestTransitions_ForwardOnly(t *testing.T) {
	rank := map[QuoteRequestStatus]int{}
	for i, s := range allQuoteRequestStatuses {
		rank[s] = i
	}
	for _, from := range allQuoteRequestStatuses {
		for _, to := range allQuoteRequestStatuses {
			allowed := CanTransitionQuoteRequest(from, to)
			switch {
			case from == QuoteRequestStatusClosed:
				if allowed {
					t.Fatalf("closed must be terminal, got %s -> %s", from, to)
				}
			case to == QuoteRequestStatusClosed:
				if !allowed {
					t.Fatalf("closed must be reachable from %s", from)
				}
			case rank[to] <= rank[from]:
				if allowed {
					t.Fatalf("backwards edge allowed: %s -> %s", from, to)
				}
			}
		}
	}
}

func TestQuoteTransitions(t *testing.T) {
	if !CanTransitionQuote(QuoteStatusDraft, QuoteStatusAccepted) {
		t.Fatalf("expected draft -> accepted")
	}
	if !CanTransitionQuote(QuoteStatusAccepted, QuoteStatusDraft) {
		t.Fatalf("expected unmapped stage fallback to be reachable")
	}
	if CanTransitionQuote(QuoteStatusAccepted, QuoteStatusAccepted) {
		t.Fatalf("self edges must be rejected")
	}
	if !IsTerminalQuote(QuoteStatusContracted) {
		t.Fatalf("contracted must be terminal")
	}
	if CanTransitionQuote(QuoteStatusContracted, QuoteStatusDraft) {
		t.Fatalf("contracted -> draft must be rejected")
	}
}

func TestContractTransitions(t *testing.T) {
	for _, to := range []ContractStatus{ContractStatusSigned, ContractStatusDeclined, ContractStatusVoided, ContractStatusExpired} {
		if !CanTransitionContract(ContractStatusSent, to) {
			t.Fatalf("expected sent -> %s", to)
		}
		if !IsTerminalContract(to) {
			t.Fatalf("expected %s to be terminal", to)
		}
	}
	if CanTransitionContract(ContractStatusSigned, ContractStatusSigned) {
		t.Fatalf("signed -> signed must be rejected")
	}
}

func TestContractExpiration(t *testing.T) {
	created := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	want := time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC)
	if got := ContractExpiration(created); !got.Equal(want) {
		t.Fatalf("expected %s got %s", want, got)
	}
	c := Contract{ExpiresAt: want}
	if c.IsExpired(want.Add(-time.Second)) || !c.IsExpired(want) {
		t.Fatalf("unexpected expiry boundary")
	}
	if n := ContractNumberFor("Q-20250101-ABC123", 1); n != "Q-20250101-ABC123-C01" {
		t.Fatalf("unexpected contract number %s", n)
	}
}

func TestNormalizeServices(t *testing.T) {
	got := NormalizeServices([]string{" Roofing", "gutters", "roofing", ""})
	if len(got) != 2 || got[0] != "roofing" || got[1] != "gutters" {
		t.Fatalf("unexpected services %v", got)
	}
}
