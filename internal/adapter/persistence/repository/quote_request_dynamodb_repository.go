package repository

import (
	"context"
	"sort"

	"salespipeline/internal/domain/entities"
	"salespipeline/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const defaultQuoteRequestsTableName = "quote_requests"

type assigneeItem struct {
	EmployeeID string `dynamodbav:"employee_id"`
	Name       string `dynamodbav:"name"`
	CRMOwnerID string `dynamodbav:"crm_owner_id,omitempty"`
}

type quoteRequestItem struct {
	ID                string        `dynamodbav:"id"`
	Name              string        `dynamodbav:"name"`
	Email             string        `dynamodbav:"email"`
	Phone             string        `dynamodbav:"phone,omitempty"`
	Company           string        `dynamodbav:"company,omitempty"`
	Services          []string      `dynamodbav:"services"`
	Urgency           string        `dynamodbav:"urgency"`
	Status            string        `dynamodbav:"status"`
	Assignee          *assigneeItem `dynamodbav:"assignee,omitempty"`
	ExternalContactID string        `dynamodbav:"external_contact_id,omitempty"`
	ExternalDealID    string        `dynamodbav:"external_deal_id,omitempty"`
	CreatedAt         string        `dynamodbav:"created_at"`
	UpdatedAt         string        `dynamodbav:"updated_at"`
}

// QuoteRequestDynamoRepository persists QuoteRequest entities in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
type QuoteRequestDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.IQuoteRequestRepository = (*QuoteRequestDynamoRepository)(nil)

func NewQuoteRequestDynamoRepository(ddb *dynamodb.Client, tableName string) *QuoteRequestDynamoRepository {
	return &QuoteRequestDynamoRepository{
		ddb:       ddb,
		tableName: tableOrDefault(tableName, defaultQuoteRequestsTableName),
	}
}

func (r *QuoteRequestDynamoRepository) Create(ctx context.Context, q entities.QuoteRequest) (entities.QuoteRequest, error) {
	av, err := attributevalue.MarshalMap(toQuoteRequestItem(q))
	if err != nil {
		return entities.QuoteRequest{}, err
	}
	if err := putIfAbsent(ctx, r.ddb, r.tableName, av); err != nil {
		return entities.QuoteRequest{}, err
	}
	return q, nil
}

func (r *QuoteRequestDynamoRepository) GetByID(ctx context.Context, id string) (entities.QuoteRequest, error) {
	raw, err := getByID(ctx, r.ddb, r.tableName, id)
	if err != nil || len(raw) == 0 {
		return entities.QuoteRequest{}, err
	}
	return decodeQuoteRequest(raw)
}

func (r *QuoteRequestDynamoRepository) List(ctx context.Context, filter entities.QuoteRequestFilter) ([]entities.QuoteRequest, error) {
	raws, err := scanAll(ctx, r.ddb, r.tableName)
	if err != nil {
		return nil, err
	}
	out := make([]entities.QuoteRequest, 0, len(raws))
	for _, raw := range raws {
		q, err := decodeQuoteRequest(raw)
		if err != nil {
			return nil, err
		}
		if filter.Match(q) {
			out = append(out, q)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *QuoteRequestDynamoRepository) CompareAndSetStatus(
	ctx context.Context,
	id string,
	from, to entities.QuoteRequestStatus,
	patch entities.QuoteRequestPatch,
) (entities.QuoteRequest, error) {
	raw, err := conditionalUpdate(ctx, r.ddb, r.tableName, id, statusCondition, func(now string) (string, map[string]types.AttributeValue, map[string]string) {
		expr := "SET #status = :status, #updated_at = :updated_at"
		vals := statusValues(string(from), string(to), now)
		names := map[string]string{
			"#status":     "status",
			"#updated_at": "updated_at",
		}
		if patch.Assignee != nil {
			av, err := attributevalue.MarshalMap(toAssigneeItem(patch.Assignee))
			if err == nil {
				expr += ", #assignee = :assignee"
				vals[":assignee"] = &types.AttributeValueMemberM{Value: av}
				names["#assignee"] = "assignee"
			}
		}
		return expr, vals, names
	})
	if err != nil || raw == nil {
		return entities.QuoteRequest{}, err
	}
	return decodeQuoteRequest(raw)
}

func (r *QuoteRequestDynamoRepository) SetExternalRefs(ctx context.Context, id, contactID, dealID string) (entities.QuoteRequest, error) {
	raw, err := conditionalUpdate(ctx, r.ddb, r.tableName, id, "attribute_exists(#id)", func(now string) (string, map[string]types.AttributeValue, map[string]string) {
		expr := "SET #contact = :contact, #deal = :deal, #updated_at = :updated_at"
		vals := map[string]types.AttributeValue{
			":contact":    &types.AttributeValueMemberS{Value: contactID},
			":deal":       &types.AttributeValueMemberS{Value: dealID},
			":updated_at": &types.AttributeValueMemberS{Value: now},
		}
		names := map[string]string{
			"#contact":    "external_contact_id",
			"#deal":       "external_deal_id",
			"#updated_at": "updated_at",
		}
		return expr, vals, names
	})
	if err != nil || raw == nil {
		return entities.QuoteRequest{}, err
	}
	return decodeQuoteRequest(raw)
}

func decodeQuoteRequest(raw map[string]types.AttributeValue) (entities.QuoteRequest, error) {
	var it quoteRequestItem
	if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
		return entities.QuoteRequest{}, err
	}
	return fromQuoteRequestItem(it), nil
}

func toAssigneeItem(a *entities.SalesAssignee) *assigneeItem {
	if a == nil {
		return nil
	}
	return &assigneeItem{EmployeeID: a.EmployeeID, Name: a.Name, CRMOwnerID: a.CRMOwnerID}
}

func toQuoteRequestItem(q entities.QuoteRequest) quoteRequestItem {
	return quoteRequestItem{
		ID:                q.ID,
		Name:              q.Name,
		Email:             q.Email,
		Phone:             q.Phone,
		Company:           q.Company,
		Services:          q.Services,
		Urgency:           string(q.Urgency),
		Status:            string(q.Status),
		Assignee:          toAssigneeItem(q.Assignee),
		ExternalContactID: q.ExternalContactID,
		ExternalDealID:    q.ExternalDealID,
		CreatedAt:         formatTime(q.CreatedAt),
		UpdatedAt:         formatTime(q.UpdatedAt),
	}
}

func fromQuoteRequestItem(it quoteRequestItem) entities.QuoteRequest {
	q := entities.QuoteRequest{
		ID:                it.ID,
		Name:              it.Name,
		Email:             it.Email,
		Phone:             it.Phone,
		Company:           it.Company,
		Services:          it.Services,
		Urgency:           entities.Urgency(it.Urgency),
		Status:            entities.QuoteRequestStatus(it.Status),
		ExternalContactID: it.ExternalContactID,
		ExternalDealID:    it.ExternalDealID,
		CreatedAt:         parseTime(it.CreatedAt),
		UpdatedAt:         parseTime(it.UpdatedAt),
	}
	if it.Assignee != nil {
		q.Assignee = &entities.SalesAssignee{
			EmployeeID: it.Assignee.EmployeeID,
			Name:       it.Assignee.Name,
			CRMOwnerID: it.Assignee.CRMOwnerID,
		}
	}
	return q
}
