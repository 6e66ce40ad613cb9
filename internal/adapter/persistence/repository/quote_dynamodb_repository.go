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

const (
	defaultQuotesTableName      = "quotes"
	quotesExternalDealIDIndex   = "external_deal_id-index"
	quotesExternalDealAttribute = "external_deal_id"
)

type lineItemItem struct {
	Description string `dynamodbav:"description"`
	Quantity    int    `dynamodbav:"quantity"`
	UnitPrice   string `dynamodbav:"unit_price"`
}

type quoteItem struct {
	ID             string         `dynamodbav:"id"`
	QuoteRequestID string         `dynamodbav:"quote_request_id"`
	QuoteNumber    string         `dynamodbav:"quote_number"`
	ClientName     string         `dynamodbav:"client_name"`
	ClientEmail    string         `dynamodbav:"client_email"`
	ClientCompany  string         `dynamodbav:"client_company,omitempty"`
	ServiceName    string         `dynamodbav:"service_name,omitempty"`
	LineItems      []lineItemItem `dynamodbav:"line_items"`
	TotalAmount    string         `dynamodbav:"total_amount"`
	Status         string         `dynamodbav:"status"`
	ExternalDealID string         `dynamodbav:"external_deal_id,omitempty"`
	ValidUntil     string         `dynamodbav:"valid_until"`
	CreatedBy      string         `dynamodbav:"created_by"`
	CreatedAt      string         `dynamodbav:"created_at"`
	UpdatedAt      string         `dynamodbav:"updated_at"`
}

// QuoteDynamoRepository persists Quote entities in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//   - GSI: external_deal_id-index (PK: external_deal_id)
//
// external_deal_id is omitted until the quote is linked, which keeps unlinked
// quotes out of the sparse index.
type QuoteDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.IQuoteRepository = (*QuoteDynamoRepository)(nil)

func NewQuoteDynamoRepository(ddb *dynamodb.Client, tableName string) *QuoteDynamoRepository {
	return &QuoteDynamoRepository{
		ddb:       ddb,
		tableName: tableOrDefault(tableName, defaultQuotesTableName),
	}
}

func (r *QuoteDynamoRepository) Create(ctx context.Context, q entities.Quote) (entities.Quote, error) {
	av, err := attributevalue.MarshalMap(toQuoteItem(q))
	if err != nil {
		return entities.Quote{}, err
	}
	if err := putIfAbsent(ctx, r.ddb, r.tableName, av); err != nil {
		return entities.Quote{}, err
	}
	return q, nil
}

func (r *QuoteDynamoRepository) GetByID(ctx context.Context, id string) (entities.Quote, error) {
	raw, err := getByID(ctx, r.ddb, r.tableName, id)
	if err != nil || len(raw) == 0 {
		return entities.Quote{}, err
	}
	return decodeQuote(raw)
}

// GetByExternalDealID reads through the GSI, which is eventually consistent.
// A quote linked a moment ago may not be visible yet.
func (r *QuoteDynamoRepository) GetByExternalDealID(ctx context.Context, dealID string) (entities.Quote, error) {
	if dealID == "" {
		return entities.Quote{}, nil
	}
	raws, err := queryIndex(ctx, r.ddb, r.tableName, quotesExternalDealIDIndex, quotesExternalDealAttribute, dealID)
	if err != nil || len(raws) == 0 {
		return entities.Quote{}, err
	}
	quotes, err := decodeQuotes(raws)
	if err != nil {
		return entities.Quote{}, err
	}
	return quotes[0], nil
}

func (r *QuoteDynamoRepository) List(ctx context.Context, filter entities.QuoteFilter) ([]entities.Quote, error) {
	raws, err := scanAll(ctx, r.ddb, r.tableName)
	if err != nil {
		return nil, err
	}
	all, err := decodeQuotes(raws)
	if err != nil {
		return nil, err
	}
	out := make([]entities.Quote, 0, len(all))
	for _, q := range all {
		if filter.Match(q) {
			out = append(out, q)
		}
	}
	return out, nil
}

func (r *QuoteDynamoRepository) CompareAndSetStatus(ctx context.Context, id string, from, to entities.QuoteStatus) (entities.Quote, error) {
	raw, err := conditionalUpdate(ctx, r.ddb, r.tableName, id, statusCondition, func(now string) (string, map[string]types.AttributeValue, map[string]string) {
		expr := "SET #status = :status, #updated_at = :updated_at"
		names := map[string]string{
			"#status":     "status",
			"#updated_at": "updated_at",
		}
		return expr, statusValues(string(from), string(to), now), names
	})
	if err != nil || raw == nil {
		return entities.Quote{}, err
	}
	return decodeQuote(raw)
}

// UpdatePricing only writes while the quote is still draft.
func (r *QuoteDynamoRepository) UpdatePricing(ctx context.Context, id string, items []entities.LineItem, total float64) (entities.Quote, error) {
	lineItems, err := attributevalue.Marshal(toLineItemItems(items))
	if err != nil {
		return entities.Quote{}, err
	}
	raw, err := conditionalUpdate(ctx, r.ddb, r.tableName, id, statusCondition, func(now string) (string, map[string]types.AttributeValue, map[string]string) {
		expr := "SET #line_items = :line_items, #total = :total, #updated_at = :updated_at"
		vals := map[string]types.AttributeValue{
			":expected":   &types.AttributeValueMemberS{Value: string(entities.QuoteStatusDraft)},
			":line_items": lineItems,
			":total":      &types.AttributeValueMemberS{Value: floatToString(total)},
			":updated_at": &types.AttributeValueMemberS{Value: now},
		}
		names := map[string]string{
			"#status":     "status",
			"#line_items": "line_items",
			"#total":      "total_amount",
			"#updated_at": "updated_at",
		}
		return expr, vals, names
	})
	if err != nil || raw == nil {
		return entities.Quote{}, err
	}
	return decodeQuote(raw)
}

func (r *QuoteDynamoRepository) SetExternalDealID(ctx context.Context, id, dealID string) (entities.Quote, error) {
	raw, err := conditionalUpdate(ctx, r.ddb, r.tableName, id, "attribute_exists(#id)", func(now string) (string, map[string]types.AttributeValue, map[string]string) {
		expr := "SET #deal = :deal, #updated_at = :updated_at"
		vals := map[string]types.AttributeValue{
			":deal":       &types.AttributeValueMemberS{Value: dealID},
			":updated_at": &types.AttributeValueMemberS{Value: now},
		}
		names := map[string]string{
			"#deal":       quotesExternalDealAttribute,
			"#updated_at": "updated_at",
		}
		return expr, vals, names
	})
	if err != nil || raw == nil {
		return entities.Quote{}, err
	}
	return decodeQuote(raw)
}

func decodeQuote(raw map[string]types.AttributeValue) (entities.Quote, error) {
	var it quoteItem
	if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
		return entities.Quote{}, err
	}
	return fromQuoteItem(it), nil
}

func decodeQuotes(raws []map[string]types.AttributeValue) ([]entities.Quote, error) {
	var its []quoteItem
	if err := attributevalue.UnmarshalListOfMaps(raws, &its); err != nil {
		return nil, err
	}
	out := make([]entities.Quote, 0, len(its))
	for _, it := range its {
		out = append(out, fromQuoteItem(it))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func toLineItemItems(items []entities.LineItem) []lineItemItem {
	out := make([]lineItemItem, 0, len(items))
	for _, li := range items {
		out = append(out, lineItemItem{
			Description: li.Description,
			Quantity:    li.Quantity,
			UnitPrice:   floatToString(li.UnitPrice),
		})
	}
	return out
}

func toQuoteItem(q entities.Quote) quoteItem {
	return quoteItem{
		ID:             q.ID,
		QuoteRequestID: q.QuoteRequestID,
		QuoteNumber:    q.QuoteNumber,
		ClientName:     q.Client.Name,
		ClientEmail:    q.Client.Email,
		ClientCompany:  q.Client.Company,
		ServiceName:    q.ServiceName,
		LineItems:      toLineItemItems(q.LineItems),
		TotalAmount:    floatToString(q.TotalAmount),
		Status:         string(q.Status),
		ExternalDealID: q.ExternalDealID,
		ValidUntil:     formatTime(q.ValidUntil),
		CreatedBy:      q.CreatedBy,
		CreatedAt:      formatTime(q.CreatedAt),
		UpdatedAt:      formatTime(q.UpdatedAt),
	}
}

func fromQuoteItem(it quoteItem) entities.Quote {
	items := make([]entities.LineItem, 0, len(it.LineItems))
	for _, li := range it.LineItems {
		items = append(items, entities.LineItem{
			Description: li.Description,
			Quantity:    li.Quantity,
			UnitPrice:   parseFloat(li.UnitPrice),
		})
	}
	return entities.Quote{
		ID:             it.ID,
		QuoteRequestID: it.QuoteRequestID,
		QuoteNumber:    it.QuoteNumber,
		Client: entities.ClientSnapshot{
			Name:    it.ClientName,
			Email:   it.ClientEmail,
			Company: it.ClientCompany,
		},
		ServiceName:    it.ServiceName,
		LineItems:      items,
		TotalAmount:    parseFloat(it.TotalAmount),
		Status:         entities.QuoteStatus(it.Status),
		ExternalDealID: it.ExternalDealID,
		ValidUntil:     parseTime(it.ValidUntil),
		CreatedBy:      it.CreatedBy,
		CreatedAt:      parseTime(it.CreatedAt),
		UpdatedAt:      parseTime(it.UpdatedAt),
	}
}
