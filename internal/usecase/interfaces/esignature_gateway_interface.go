package interfaces

import "context"

// TextTab is a template text field pre-filled with contract data. Locked tabs
// are shown to the signer but cannot be edited.
type TextTab struct {
	Label  string
	Value  string
	Locked bool
}

type EnvelopeRecipient struct {
	RoleName string
	Name     string
	Email    string
}

type EnvelopeRequest struct {
	TemplateID   string
	EmailSubject string
	Signer       EnvelopeRecipient
	Tabs         []TextTab
}

type EnvelopeResponse struct {
	EnvelopeID string
	Status     string
}

// IESignatureGateway abstracts the e-signature provider.
//
// CreateEnvelope may return an empty EnvelopeID when the provider accepted the
// request but did not report an id; callers treat that as a failed send.
type IESignatureGateway interface {
	CreateEnvelope(ctx context.Context, req EnvelopeRequest) (EnvelopeResponse, error)
	GetEnvelopeStatus(ctx context.Context, envelopeID string) (string, error)
	DownloadCombinedDocument(ctx context.Context, envelopeID string) ([]byte, error)
}
