package entities

// Allow-lists of status edges per entity kind. Any edge missing here is
// rejected by the entity store; there is no other mutation path for status.

var quoteRequestTransitions = map[QuoteRequestStatus][]QuoteRequestStatus{
	QuoteRequestStatusNew:      {QuoteRequestStatusAssigned, QuoteRequestStatusInReview, QuoteRequestStatusQuoted, QuoteRequestStatusClosed},
	QuoteRequestStatusAssigned: {QuoteRequestStatusInReview, QuoteRequestStatusQuoted, QuoteRequestStatusClosed},
	QuoteRequestStatusInReview: {QuoteRequestStatusQuoted, QuoteRequestStatusClosed},
	QuoteRequestStatusQuoted:   {QuoteRequestStatusClosed},
}

// crmQuoteStatuses are the statuses a linked CRM deal can move a quote
// between. The unmapped-stage fallback (draft) is reachable from all of them.
var crmQuoteStatuses = []QuoteStatus{
	QuoteStatusDraft,
	QuoteStatusPending,
	QuoteStatusInReview,
	QuoteStatusQuoted,
	QuoteStatusApproved,
	QuoteStatusSent,
	QuoteStatusContractSent,
	QuoteStatusAccepted,
	QuoteStatusRejected,
}

var quoteTransitions = buildQuoteTransitions()

func buildQuoteTransitions() map[QuoteStatus][]QuoteStatus {
	t := make(map[QuoteStatus][]QuoteStatus, len(crmQuoteStatuses))
	for _, from := range crmQuoteStatuses {
		edges := make([]QuoteStatus, 0, len(crmQuoteStatuses))
		for _, to := range crmQuoteStatuses {
			if to != from {
				edges = append(edges, to)
			}
		}
		// The entity store additionally requires a signed contract before it
		// takes any edge into contracted.
		t[from] = append(edges, QuoteStatusContracted)
	}
	return t
}

var contractTransitions = map[ContractStatus][]ContractStatus{
	ContractStatusSent: {ContractStatusSigned, ContractStatusDeclined, ContractStatusVoided, ContractStatusExpired},
}

func CanTransitionQuoteRequest(from, to QuoteRequestStatus) bool {
	return contains(quoteRequestTransitions[from], to)
}

func CanTransitionQuote(from, to QuoteStatus) bool {
	return contains(quoteTransitions[from], to)
}

func CanTransitionContract(from, to ContractStatus) bool {
	return contains(contractTransitions[from], to)
}

func IsTerminalQuoteRequest(s QuoteRequestStatus) bool {
	return len(quoteRequestTransitions[s]) == 0
}

func IsTerminalQuote(s QuoteStatus) bool {
	return len(quoteTransitions[s]) == 0
}

func IsTerminalContract(s ContractStatus) bool {
	return len(contractTransitions[s]) == 0
}

func contains[T comparable](list []T, v T) bool {
	for _, it := range list {
		if it == v {
			return true
		}
	}
	return false
}
