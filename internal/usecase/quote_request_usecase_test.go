package usecase

import (
	"context"
	"errors"
	"testing"

	"salespipeline/internal/domain/entities"
)

func TestQuoteRequestUseCase_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("normalizes input", func(t *testing.T) {
		uc := NewQuoteRequestUseCase(newFixture().store)
		qr, err := uc.Create(ctx, CreateQuoteRequestInput{
			Name:     " Ana Souza ",
			Email:    "Ana@Acme.com",
			Company:  "Acme",
			Services: []string{"SEO", " seo", "", "Ads"},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if qr.ID == "" || qr.Status != entities.QuoteRequestStatusNew {
			t.Fatalf("unexpected quote request: %+v", qr)
		}
		if qr.Name != "Ana Souza" || qr.Email != "ana@acme.com" || qr.Urgency != entities.UrgencyNormal {
			t.Fatalf("unexpected fields: %+v", qr)
		}
		if len(qr.Services) != 2 || qr.Services[0] != "seo" || qr.Services[1] != "ads" {
			t.Fatalf("unexpected services: %v", qr.Services)
		}
		if !qr.CreatedAt.Equal(fixedNow) {
			t.Fatalf("expected created_at %s, got %s", fixedNow, qr.CreatedAt)
		}
	})

	cases := []struct {
		name string
		in   CreateQuoteRequestInput
	}{
		{"missing name", CreateQuoteRequestInput{Email: "ana@acme.com"}},
		{"missing email", CreateQuoteRequestInput{Name: "Ana"}},
		{"bad email", CreateQuoteRequestInput{Name: "Ana", Email: "ana-at-acme"}},
		{"bad urgency", CreateQuoteRequestInput{Name: "Ana", Email: "ana@acme.com", Urgency: "yesterday"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			uc := NewQuoteRequestUseCase(newFixture().store)
			if _, err := uc.Create(ctx, tc.in); !errors.Is(err, ErrInvalidQuoteRequestInput) {
				t.Fatalf("expected ErrInvalidQuoteRequestInput, got %v", err)
			}
		})
	}
}

func TestQuoteRequestUseCase_Lifecycle(t *testing.T) {
	ctx := context.Background()
	assignee := entities.SalesAssignee{EmployeeID: "emp-1", Name: "Bruno", CRMOwnerID: "owner-7"}

	t.Run("assign then review then close", func(t *testing.T) {
		f := newFixture()
		uc := NewQuoteRequestUseCase(f.store)
		qr := f.quoteRequest(t, "ana@acme.com")

		assigned, err := uc.Assign(ctx, qr.ID, assignee)
		if err != nil {
			t.Fatalf("assign: %v", err)
		}
		if assigned.Status != entities.QuoteRequestStatusAssigned || assigned.Assignee == nil || assigned.Assignee.CRMOwnerID != "owner-7" {
			t.Fatalf("unexpected assigned request: %+v", assigned)
		}
		reviewing, err := uc.StartReview(ctx, qr.ID)
		if err != nil || reviewing.Status != entities.QuoteRequestStatusInReview {
			t.Fatalf("start review: %+v %v", reviewing, err)
		}
		closed, err := uc.Close(ctx, qr.ID)
		if err != nil || closed.Status != entities.QuoteRequestStatusClosed {
			t.Fatalf("close: %+v %v", closed, err)
		}
		if _, err := uc.Close(ctx, qr.ID); !errors.Is(err, entities.ErrInvalidTransition) {
			t.Fatalf("expected closed to be terminal, got %v", err)
		}
	})

	t.Run("second assignment is rejected", func(t *testing.T) {
		f := newFixture()
		uc := NewQuoteRequestUseCase(f.store)
		qr := f.quoteRequest(t, "ana@acme.com")

		if _, err := uc.Assign(ctx, qr.ID, assignee); err != nil {
			t.Fatalf("assign: %v", err)
		}
		other := entities.SalesAssignee{EmployeeID: "emp-2"}
		_, err := uc.Assign(ctx, qr.ID, other)
		var ite *entities.InvalidTransitionError
		if !errors.As(err, &ite) {
			t.Fatalf("expected InvalidTransitionError, got %v", err)
		}
		stored, _ := uc.GetByID(ctx, qr.ID)
		if stored.Assignee.EmployeeID != "emp-1" {
			t.Fatalf("assignee overwritten: %+v", stored.Assignee)
		}
	})

	t.Run("blank assignee", func(t *testing.T) {
		f := newFixture()
		uc := NewQuoteRequestUseCase(f.store)
		qr := f.quoteRequest(t, "ana@acme.com")
		if _, err := uc.Assign(ctx, qr.ID, entities.SalesAssignee{Name: "Bruno"}); !errors.Is(err, ErrInvalidAssignee) {
			t.Fatalf("expected ErrInvalidAssignee, got %v", err)
		}
	})

	t.Run("review requires assignment", func(t *testing.T) {
		f := newFixture()
		uc := NewQuoteRequestUseCase(f.store)
		qr := f.quoteRequest(t, "ana@acme.com")
		if _, err := uc.StartReview(ctx, qr.ID); !errors.Is(err, entities.ErrInvalidTransition) {
			t.Fatalf("expected ErrInvalidTransition, got %v", err)
		}
	})

	t.Run("list by assignee", func(t *testing.T) {
		f := newFixture()
		uc := NewQuoteRequestUseCase(f.store)
		a := f.quoteRequest(t, "a@acme.com")
		f.quoteRequest(t, "b@acme.com")
		if _, err := uc.Assign(ctx, a.ID, assignee); err != nil {
			t.Fatalf("assign: %v", err)
		}
		list, err := uc.List(ctx, entities.QuoteRequestFilter{AssigneeID: "emp-1"})
		if err != nil || len(list) != 1 || list[0].ID != a.ID {
			t.Fatalf("unexpected list: %+v %v", list, err)
		}
	})
}
