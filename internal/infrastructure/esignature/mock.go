package esignature

import (
	"errors"
	"fmt"
	"log"
	"sync"

	"salespipeline/internal/domain/entities"
	"salespipeline/internal/usecase/interfaces"

	"github.com/google/uuid"
)

// mockProvider backs ESIGNATURE_MOCK=true. Envelopes stay "sent"; completion
// is driven by posting to the webhook endpoint.
type mockProvider struct {
	mu        sync.Mutex
	envelopes map[string]interfaces.EnvelopeRequest
}

func newMockProvider() *mockProvider {
	return &mockProvider{envelopes: map[string]interfaces.EnvelopeRequest{}}
}

func (m *mockProvider) createEnvelope(req interfaces.EnvelopeRequest) interfaces.EnvelopeResponse {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := uuid.NewString()
	m.envelopes[id] = req
	log.Printf("[esign][gateway] mock envelope created envelope_id=%s template_id=%s", id, req.TemplateID)
	return interfaces.EnvelopeResponse{EnvelopeID: id, Status: "sent"}
}

func (m *mockProvider) status(envelopeID string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.envelopes[envelopeID]; !ok {
		return "", entities.NewExternalServiceError(entities.ExternalSystemESignature, "get_envelope", 404, errors.New("envelope not found"))
	}
	return "sent", nil
}

func (m *mockProvider) document(envelopeID string) ([]byte, error) {
	m.mu.Lock()
	req, ok := m.envelopes[envelopeID]
	m.mu.Unlock()
	if !ok {
		return nil, entities.NewExternalServiceError(entities.ExternalSystemESignature, "download_document", 404, errors.New("envelope not found"))
	}
	doc := fmt.Sprintf("%%PDF-1.4\n%% signed envelope %s for %s\n%%%%EOF\n", envelopeID, req.Signer.Email)
	return []byte(doc), nil
}
