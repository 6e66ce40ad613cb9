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
	defaultContractsTableName = "contracts"
	contractsEnvelopeIDIndex  = "envelope_id-index"
	contractsQuoteIDIndex     = "quote_id-index"
)

type contractItem struct {
	ID                   string `dynamodbav:"id"`
	ContractNumber       string `dynamodbav:"contract_number"`
	QuoteID              string `dynamodbav:"quote_id"`
	EnvelopeID           string `dynamodbav:"envelope_id"`
	TemplateID           string `dynamodbav:"template_id"`
	Status               string `dynamodbav:"status"`
	SignerName           string `dynamodbav:"signer_name"`
	SignerEmail          string `dynamodbav:"signer_email"`
	SignerCompany        string `dynamodbav:"signer_company,omitempty"`
	SignedAt             string `dynamodbav:"signed_at,omitempty"`
	ArchivedDocumentPath string `dynamodbav:"archived_document_path,omitempty"`
	CreatedAt            string `dynamodbav:"created_at"`
	ExpiresAt            string `dynamodbav:"expires_at"`
	UpdatedAt            string `dynamodbav:"updated_at"`
}

// ContractDynamoRepository persists Contract entities in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//   - GSI: envelope_id-index (PK: envelope_id)
//   - GSI: quote_id-index (PK: quote_id)
type ContractDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.IContractRepository = (*ContractDynamoRepository)(nil)

func NewContractDynamoRepository(ddb *dynamodb.Client, tableName string) *ContractDynamoRepository {
	return &ContractDynamoRepository{
		ddb:       ddb,
		tableName: tableOrDefault(tableName, defaultContractsTableName),
	}
}

func (r *ContractDynamoRepository) Create(ctx context.Context, c entities.Contract) (entities.Contract, error) {
	av, err := attributevalue.MarshalMap(toContractItem(c))
	if err != nil {
		return entities.Contract{}, err
	}
	if err := putIfAbsent(ctx, r.ddb, r.tableName, av); err != nil {
		return entities.Contract{}, err
	}
	return c, nil
}

func (r *ContractDynamoRepository) GetByID(ctx context.Context, id string) (entities.Contract, error) {
	raw, err := getByID(ctx, r.ddb, r.tableName, id)
	if err != nil || len(raw) == 0 {
		return entities.Contract{}, err
	}
	return decodeContract(raw)
}

// GetByEnvelopeID resolves the GSI hit and then re-reads the row by primary
// key so callers see a strongly consistent status.
func (r *ContractDynamoRepository) GetByEnvelopeID(ctx context.Context, envelopeID string) (entities.Contract, error) {
	if envelopeID == "" {
		return entities.Contract{}, nil
	}
	raws, err := queryIndex(ctx, r.ddb, r.tableName, contractsEnvelopeIDIndex, "envelope_id", envelopeID)
	if err != nil || len(raws) == 0 {
		return entities.Contract{}, err
	}
	hit, err := decodeContract(raws[0])
	if err != nil {
		return entities.Contract{}, err
	}
	return r.GetByID(ctx, hit.ID)
}

func (r *ContractDynamoRepository) List(ctx context.Context, filter entities.ContractFilter) ([]entities.Contract, error) {
	var (
		raws []map[string]types.AttributeValue
		err  error
	)
	if filter.QuoteID != "" {
		raws, err = queryIndex(ctx, r.ddb, r.tableName, contractsQuoteIDIndex, "quote_id", filter.QuoteID)
	} else {
		raws, err = scanAll(ctx, r.ddb, r.tableName)
	}
	if err != nil {
		return nil, err
	}
	out := make([]entities.Contract, 0, len(raws))
	for _, raw := range raws {
		c, err := decodeContract(raw)
		if err != nil {
			return nil, err
		}
		if filter.Match(c) {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *ContractDynamoRepository) CompareAndSetStatus(
	ctx context.Context,
	id string,
	from, to entities.ContractStatus,
	patch entities.ContractPatch,
) (entities.Contract, error) {
	raw, err := conditionalUpdate(ctx, r.ddb, r.tableName, id, statusCondition, func(now string) (string, map[string]types.AttributeValue, map[string]string) {
		expr := "SET #status = :status, #updated_at = :updated_at"
		vals := statusValues(string(from), string(to), now)
		names := map[string]string{
			"#status":     "status",
			"#updated_at": "updated_at",
		}
		if patch.SignedAt != nil {
			expr += ", #signed_at = :signed_at"
			vals[":signed_at"] = &types.AttributeValueMemberS{Value: formatTime(*patch.SignedAt)}
			names["#signed_at"] = "signed_at"
		}
		if patch.ArchivedDocumentPath != "" {
			expr += ", #archived = :archived"
			vals[":archived"] = &types.AttributeValueMemberS{Value: patch.ArchivedDocumentPath}
			names["#archived"] = "archived_document_path"
		}
		return expr, vals, names
	})
	if err != nil || raw == nil {
		return entities.Contract{}, err
	}
	return decodeContract(raw)
}

func decodeContract(raw map[string]types.AttributeValue) (entities.Contract, error) {
	var it contractItem
	if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
		return entities.Contract{}, err
	}
	return fromContractItem(it), nil
}

func toContractItem(c entities.Contract) contractItem {
	it := contractItem{
		ID:                   c.ID,
		ContractNumber:       c.ContractNumber,
		QuoteID:              c.QuoteID,
		EnvelopeID:           c.EnvelopeID,
		TemplateID:           c.TemplateID,
		Status:               string(c.Status),
		SignerName:           c.Signer.Name,
		SignerEmail:          c.Signer.Email,
		SignerCompany:        c.Signer.Company,
		ArchivedDocumentPath: c.ArchivedDocumentPath,
		CreatedAt:            formatTime(c.CreatedAt),
		ExpiresAt:            formatTime(c.ExpiresAt),
		UpdatedAt:            formatTime(c.UpdatedAt),
	}
	if c.SignedAt != nil {
		it.SignedAt = formatTime(*c.SignedAt)
	}
	return it
}

func fromContractItem(it contractItem) entities.Contract {
	c := entities.Contract{
		ID:             it.ID,
		ContractNumber: it.ContractNumber,
		QuoteID:        it.QuoteID,
		EnvelopeID:     it.EnvelopeID,
		TemplateID:     it.TemplateID,
		Status:         entities.ContractStatus(it.Status),
		Signer: entities.Signer{
			Name:    it.SignerName,
			Email:   it.SignerEmail,
			Company: it.SignerCompany,
		},
		ArchivedDocumentPath: it.ArchivedDocumentPath,
		CreatedAt:            parseTime(it.CreatedAt),
		ExpiresAt:            parseTime(it.ExpiresAt),
		UpdatedAt:            parseTime(it.UpdatedAt),
	}
	if it.SignedAt != "" {
		t := parseTime(it.SignedAt)
		c.SignedAt = &t
	}
	return c
}
