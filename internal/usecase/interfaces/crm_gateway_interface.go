package interfaces

import "context"

type CRMContactInput struct {
	Email     string
	FirstName string
	LastName  string
	Phone     string
	Company   string
}

type CRMContact struct {
	ID    string
	Email string
}

type CRMDealInput struct {
	Name      string
	Amount    string
	OwnerID   string
	ContactID string
}

// CRMDealProperties are the deal fields this service reads back. Amount is
// kept as the raw string the CRM returns.
type CRMDealProperties struct {
	DealStage string `json:"dealstage"`
	Amount    string `json:"amount"`
	DealName  string `json:"dealname"`
	CloseDate string `json:"closedate"`
}

type CRMDeal struct {
	ID         string
	Properties CRMDealProperties
}

// ICRMGateway abstracts the CRM (contacts + deals).
//
// Implementations return *entities.ExternalServiceError for transport and
// non-2xx failures. SearchContactByEmail reports found=false, not an error,
// when no contact matches.
type ICRMGateway interface {
	SearchContactByEmail(ctx context.Context, email string) (contact CRMContact, found bool, err error)
	CreateContact(ctx context.Context, in CRMContactInput) (string, error)
	UpdateContact(ctx context.Context, contactID string, in CRMContactInput) error
	CreateDeal(ctx context.Context, in CRMDealInput) (string, error)
	UpdateDealAmount(ctx context.Context, dealID, amount string) error
	GetDeal(ctx context.Context, dealID string) (CRMDeal, error)
}
