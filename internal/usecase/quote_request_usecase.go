package usecase

import (
	"context"
	"net/mail"
	"strings"

	"salespipeline/internal/domain/entities"
)

type CreateQuoteRequestInput struct {
	Name     string
	Email    string
	Phone    string
	Company  string
	Services []string
	Urgency  string
}

// IQuoteRequestUseCase exposes the intake and assignment operations the
// employee portal calls.
type IQuoteRequestUseCase interface {
	Create(ctx context.Context, in CreateQuoteRequestInput) (entities.QuoteRequest, error)
	GetByID(ctx context.Context, id string) (entities.QuoteRequest, error)
	List(ctx context.Context, filter entities.QuoteRequestFilter) ([]entities.QuoteRequest, error)
	Assign(ctx context.Context, id string, assignee entities.SalesAssignee) (entities.QuoteRequest, error)
	StartReview(ctx context.Context, id string) (entities.QuoteRequest, error)
	Close(ctx context.Context, id string) (entities.QuoteRequest, error)
}

type QuoteRequestUseCase struct {
	store IEntityStore
}

var _ IQuoteRequestUseCase = (*QuoteRequestUseCase)(nil)

func NewQuoteRequestUseCase(store IEntityStore) *QuoteRequestUseCase {
	return &QuoteRequestUseCase{store: store}
}

func (u *QuoteRequestUseCase) Create(ctx context.Context, in CreateQuoteRequestInput) (entities.QuoteRequest, error) {
	name := strings.TrimSpace(in.Name)
	email := strings.TrimSpace(in.Email)
	if name == "" || email == "" {
		return entities.QuoteRequest{}, ErrInvalidQuoteRequestInput
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return entities.QuoteRequest{}, ErrInvalidQuoteRequestInput
	}
	urgency, ok := entities.ParseUrgency(in.Urgency)
	if !ok {
		return entities.QuoteRequest{}, ErrInvalidQuoteRequestInput
	}
	return u.store.CreateQuoteRequest(ctx, entities.QuoteRequest{
		Name:     name,
		Email:    email,
		Phone:    strings.TrimSpace(in.Phone),
		Company:  strings.TrimSpace(in.Company),
		Services: in.Services,
		Urgency:  urgency,
	})
}

func (u *QuoteRequestUseCase) GetByID(ctx context.Context, id string) (entities.QuoteRequest, error) {
	return u.store.GetQuoteRequest(ctx, id)
}

func (u *QuoteRequestUseCase) List(ctx context.Context, filter entities.QuoteRequestFilter) ([]entities.QuoteRequest, error) {
	return u.store.ListQuoteRequests(ctx, filter)
}

// Assign only succeeds on a new request; an already assigned one surfaces
// as an invalid transition.
func (u *QuoteRequestUseCase) Assign(ctx context.Context, id string, assignee entities.SalesAssignee) (entities.QuoteRequest, error) {
	assignee.EmployeeID = strings.TrimSpace(assignee.EmployeeID)
	assignee.Name = strings.TrimSpace(assignee.Name)
	assignee.CRMOwnerID = strings.TrimSpace(assignee.CRMOwnerID)
	if assignee.EmployeeID == "" {
		return entities.QuoteRequest{}, ErrInvalidAssignee
	}
	return u.store.TransitionQuoteRequest(ctx, id, entities.QuoteRequestStatusNew, entities.QuoteRequestStatusAssigned, entities.QuoteRequestPatch{Assignee: &assignee})
}

func (u *QuoteRequestUseCase) StartReview(ctx context.Context, id string) (entities.QuoteRequest, error) {
	return u.store.TransitionQuoteRequest(ctx, id, entities.QuoteRequestStatusAssigned, entities.QuoteRequestStatusInReview, entities.QuoteRequestPatch{})
}

func (u *QuoteRequestUseCase) Close(ctx context.Context, id string) (entities.QuoteRequest, error) {
	current, err := u.store.GetQuoteRequest(ctx, id)
	if err != nil {
		return entities.QuoteRequest{}, err
	}
	return u.store.TransitionQuoteRequest(ctx, current.ID, current.Status, entities.QuoteRequestStatusClosed, entities.QuoteRequestPatch{})
}
