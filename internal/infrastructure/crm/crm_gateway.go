package crm

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"salespipeline/internal/domain/entities"
	"salespipeline/internal/infrastructure/config"
	"salespipeline/internal/infrastructure/httpclient"
	"salespipeline/internal/usecase/interfaces"
)

var ErrMissingCRMAccessToken = errors.New("missing CRM_ACCESS_TOKEN")

// Association type id of the CRM's built-in deal → contact association.
const dealToContactAssociationTypeID = 3

// Gateway talks to a HubSpot-style CRM v3 objects API.
type Gateway struct {
	client *httpclient.Client
	mock   *mockCRM
}

var _ interfaces.ICRMGateway = (*Gateway)(nil)

// NewGateway builds the CRM gateway. With cfg.Mock set it never leaves the
// process and keeps contacts and deals in memory.
func NewGateway(cfg config.CRM, timeout time.Duration) (*Gateway, error) {
	if cfg.Mock {
		log.Printf("[crm][gateway] mock mode enabled")
		return &Gateway{mock: newMockCRM()}, nil
	}
	if strings.TrimSpace(cfg.AccessToken) == "" {
		log.Printf("[crm][gateway] missing CRM_ACCESS_TOKEN")
		return nil, ErrMissingCRMAccessToken
	}
	log.Printf("[crm][gateway] client initialized base_url=%s", cfg.BaseURL)
	return &Gateway{client: httpclient.New(httpclient.Options{
		System:     entities.ExternalSystemCRM,
		BaseURL:    cfg.BaseURL,
		Token:      cfg.AccessToken,
		Timeout:    timeout,
		MaxRetries: 2,
	})}, nil
}

type objectResponse struct {
	ID         string            `json:"id"`
	Properties map[string]string `json:"properties"`
}

type searchFilter struct {
	PropertyName string `json:"propertyName"`
	Operator     string `json:"operator"`
	Value        string `json:"value"`
}

type filterGroup struct {
	Filters []searchFilter `json:"filters"`
}

type searchRequest struct {
	FilterGroups []filterGroup `json:"filterGroups"`
	Properties []string `json:"properties"`
	Limit      int      `json:"limit"`
}

type searchResponse struct {
	Total   int              `json:"total"`
	Results []objectResponse `json:"results"`
}

type associationType struct {
	AssociationCategory string `json:"associationCategory"`
	AssociationTypeID   int    `json:"associationTypeId"`
}

type association struct {
	To struct {
		ID string `json:"id"`
	} `json:"to"`
	Types []associationType `json:"types"`
}

type objectRequest struct {
	Properties   map[string]string `json:"properties"`
	Associations []association     `json:"associations,omitempty"`
}

func (g *Gateway) SearchContactByEmail(ctx context.Context, email string) (interfaces.CRMContact, bool, error) {
	if g.mock != nil {
		return g.mock.searchContact(email)
	}
	req := searchRequest{
		FilterGroups: []filterGroup{{Filters: []searchFilter{{
			PropertyName: "email",
			Operator:     "EQ",
			Value:        strings.ToLower(strings.TrimSpace(email)),
		}}}},
		Properties: []string{"email"},
		Limit:      1,
	}

	var resp searchResponse
	if err := g.client.DoJSON(ctx, "search_contact", http.MethodPost, "/crm/v3/objects/contacts/search", req, &resp); err != nil {
		log.Printf("[crm][gateway] search contact failed err=%v", err)
		return interfaces.CRMContact{}, false, err
	}
	if len(resp.Results) == 0 {
		return interfaces.CRMContact{}, false, nil
	}
	hit := resp.Results[0]
	return interfaces.CRMContact{ID: hit.ID, Email: hit.Properties["email"]}, true, nil
}

func (g *Gateway) CreateContact(ctx context.Context, in interfaces.CRMContactInput) (string, error) {
	if g.mock != nil {
		return g.mock.createContact(in), nil
	}
	var resp objectResponse
	if err := g.client.DoJSON(ctx, "create_contact", http.MethodPost, "/crm/v3/objects/contacts", objectRequest{Properties: contactProperties(in)}, &resp); err != nil {
		log.Printf("[crm][gateway] create contact failed err=%v", err)
		return "", err
	}
	if resp.ID == "" {
		return "", entities.NewExternalServiceError(entities.ExternalSystemCRM, "create_contact", 0, errors.New("response carried no id"))
	}
	log.Printf("[crm][gateway] contact created contact_id=%s", resp.ID)
	return resp.ID, nil
}

func (g *Gateway) UpdateContact(ctx context.Context, contactID string, in interfaces.CRMContactInput) error {
	if g.mock != nil {
		return g.mock.updateContact(contactID, in)
	}
	path := "/crm/v3/objects/contacts/" + url.PathEscape(contactID)
	if err := g.client.DoJSON(ctx, "update_contact", http.MethodPatch, path, objectRequest{Properties: contactProperties(in)}, nil); err != nil {
		log.Printf("[crm][gateway] update contact failed contact_id=%s err=%v", contactID, err)
		return err
	}
	return nil
}

func (g *Gateway) CreateDeal(ctx context.Context, in interfaces.CRMDealInput) (string, error) {
	if g.mock != nil {
		return g.mock.createDeal(in), nil
	}
	props := map[string]string{
		"dealname": in.Name,
		"amount":   in.Amount,
	}
	if in.OwnerID != "" {
		props["hubspot_owner_id"] = in.OwnerID
	}
	req := objectRequest{Properties: props}
	if in.ContactID != "" {
		a := association{Types: []associationType{{AssociationCategory: "HUBSPOT_DEFINED", AssociationTypeID: dealToContactAssociationTypeID}}}
		a.To.ID = in.ContactID
		req.Associations = []association{a}
	}

	var resp objectResponse
	if err := g.client.DoJSON(ctx, "create_deal", http.MethodPost, "/crm/v3/objects/deals", req, &resp); err != nil {
		log.Printf("[crm][gateway] create deal failed err=%v", err)
		return "", err
	}
	if resp.ID == "" {
		return "", entities.NewExternalServiceError(entities.ExternalSystemCRM, "create_deal", 0, errors.New("response carried no id"))
	}
	log.Printf("[crm][gateway] deal created deal_id=%s contact_id=%s", resp.ID, in.ContactID)
	return resp.ID, nil
}

func (g *Gateway) UpdateDealAmount(ctx context.Context, dealID, amount string) error {
	if g.mock != nil {
		return g.mock.updateDealAmount(dealID, amount)
	}
	path := "/crm/v3/objects/deals/" + url.PathEscape(dealID)
	req := objectRequest{Properties: map[string]string{"amount": amount}}
	if err := g.client.DoJSON(ctx, "update_deal", http.MethodPatch, path, req, nil); err != nil {
		log.Printf("[crm][gateway] update deal failed deal_id=%s err=%v", dealID, err)
		return err
	}
	return nil
}

func (g *Gateway) GetDeal(ctx context.Context, dealID string) (interfaces.CRMDeal, error) {
	if g.mock != nil {
		return g.mock.getDeal(dealID)
	}
	q := url.Values{}
	q.Set("properties", "dealstage,amount,dealname,closedate")
	path := fmt.Sprintf("/crm/v3/objects/deals/%s?%s", url.PathEscape(dealID), q.Encode())

	var resp objectResponse
	if err := g.client.DoJSON(ctx, "get_deal", http.MethodGet, path, nil, &resp); err != nil {
		log.Printf("[crm][gateway] get deal failed deal_id=%s err=%v", dealID, err)
		return interfaces.CRMDeal{}, err
	}
	return interfaces.CRMDeal{
		ID: resp.ID,
		Properties: interfaces.CRMDealProperties{
			DealStage: resp.Properties["dealstage"],
			Amount:    resp.Properties["amount"],
			DealName:  resp.Properties["dealname"],
			CloseDate: resp.Properties["closedate"],
		},
	}, nil
}

func contactProperties(in interfaces.CRMContactInput) map[string]string {
	props := map[string]string{"email": strings.ToLower(strings.TrimSpace(in.Email))}
	set := func(k, v string) {
		if v = strings.TrimSpace(v); v != "" {
			props[k] = v
		}
	}
	set("firstname", in.FirstName)
	set("lastname", in.LastName)
	set("phone", in.Phone)
	set("company", in.Company)
	return props
}
