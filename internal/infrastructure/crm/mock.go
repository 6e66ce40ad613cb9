package crm

import (
	"errors"
	"log"
	"strconv"
	"strings"
	"sync"

	"salespipeline/internal/domain/entities"
	"salespipeline/internal/domain/stagemapper"
	"salespipeline/internal/usecase/interfaces"
)

// mockCRM backs CRM_MOCK=true. New deals start in the pipeline's entry stage.
type mockCRM struct {
	mu       sync.Mutex
	seq      int
	contacts map[string]interfaces.CRMContact
	deals    map[string]interfaces.CRMDealProperties
}

func newMockCRM() *mockCRM {
	return &mockCRM{
		contacts: map[string]interfaces.CRMContact{},
		deals:    map[string]interfaces.CRMDealProperties{},
	}
}

func (m *mockCRM) nextID() string {
	m.seq++
	return strconv.Itoa(1000 + m.seq)
}

func (m *mockCRM) searchContact(email string) (interfaces.CRMContact, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.contacts[strings.ToLower(strings.TrimSpace(email))]
	return c, ok, nil
}

func (m *mockCRM) createContact(in interfaces.CRMContactInput) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	email := strings.ToLower(strings.TrimSpace(in.Email))
	c := interfaces.CRMContact{ID: m.nextID(), Email: email}
	m.contacts[email] = c
	log.Printf("[crm][gateway] mock contact created contact_id=%s", c.ID)
	return c.ID
}

func (m *mockCRM) updateContact(contactID string, _ interfaces.CRMContactInput) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.contacts {
		if c.ID == contactID {
			return nil
		}
	}
	return entities.NewExternalServiceError(entities.ExternalSystemCRM, "update_contact", 404, errors.New("contact not found"))
}

func (m *mockCRM) createDeal(in interfaces.CRMDealInput) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := m.nextID()
	m.deals[id] = interfaces.CRMDealProperties{
		DealStage: stagemapper.StageAppointmentScheduled,
		Amount:    in.Amount,
		DealName:  in.Name,
	}
	log.Printf("[crm][gateway] mock deal created deal_id=%s", id)
	return id
}

func (m *mockCRM) updateDealAmount(dealID, amount string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.deals[dealID]
	if !ok {
		return entities.NewExternalServiceError(entities.ExternalSystemCRM, "update_deal", 404, errors.New("deal not found"))
	}
	d.Amount = amount
	m.deals[dealID] = d
	return nil
}

func (m *mockCRM) getDeal(dealID string) (interfaces.CRMDeal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.deals[dealID]
	if !ok {
		return interfaces.CRMDeal{}, entities.NewExternalServiceError(entities.ExternalSystemCRM, "get_deal", 404, errors.New("deal not found"))
	}
	return interfaces.CRMDeal{ID: dealID, Properties: d}, nil
}
