package repository

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// updateBuilder returns the SET expression and its attribute maps for a
// conditional update. now is the RFC3339Nano timestamp written to updated_at.
type updateBuilder func(now string) (updateExpr string, values map[string]types.AttributeValue, names map[string]string)

// conditionalUpdate runs UpdateItem on table/id guarded by condition. It
// returns nil attributes (and no error) when the condition did not hold.
func conditionalUpdate(
	ctx context.Context,
	ddb *dynamodb.Client,
	table, id, condition string,
	build updateBuilder,
) (map[string]types.AttributeValue, error) {
	updateExpr, values, names := build(formatTime(time.Now()))

	out, err := ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(table),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConditionExpression:       aws.String(condition),
		UpdateExpression:          aws.String(updateExpr),
		ExpressionAttributeValues: values,
		ExpressionAttributeNames:  mergeNames(names, map[string]string{"#id": "id"}),
		ReturnValues:              types.ReturnValueAllNew,
	})
	if err != nil {
		var cfe *types.ConditionalCheckFailedException
		if errors.As(err, &cfe) {
			return nil, nil
		}
		return nil, err
	}
	if len(out.Attributes) == 0 {
		return nil, nil
	}
	return out.Attributes, nil
}

// statusCondition guards a compare-and-set on the status attribute. Callers
// must bind :expected and #status.
const statusCondition = "attribute_exists(#id) AND #status = :expected"

func putIfAbsent(ctx context.Context, ddb *dynamodb.Client, table string, item map[string]types.AttributeValue) error {
	_, err := ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(table),
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(#id)"),
		ExpressionAttributeNames: map[string]string{
			"#id": "id",
		},
	})
	return err
}

func getByID(ctx context.Context, ddb *dynamodb.Client, table, id string) (map[string]types.AttributeValue, error) {
	out, err := ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(table),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return nil, err
	}
	return out.Item, nil
}

// queryIndex returns every item whose index partition key equals value.
func queryIndex(ctx context.Context, ddb *dynamodb.Client, table, index, attr, value string) ([]map[string]types.AttributeValue, error) {
	p := dynamodb.NewQueryPaginator(ddb, &dynamodb.QueryInput{
		TableName:              aws.String(table),
		IndexName:              aws.String(index),
		KeyConditionExpression: aws.String("#k = :v"),
		ExpressionAttributeNames: map[string]string{
			"#k": attr,
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":v": &types.AttributeValueMemberS{Value: value},
		},
	})
	var items []map[string]types.AttributeValue
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		items = append(items, page.Items...)
	}
	return items, nil
}

// scanAll walks the whole table. List endpoints are back-office views over
// small tables, so a filtered scan is acceptable there.
func scanAll(ctx context.Context, ddb *dynamodb.Client, table string) ([]map[string]types.AttributeValue, error) {
	p := dynamodb.NewScanPaginator(ddb, &dynamodb.ScanInput{
		TableName: aws.String(table),
	})
	var items []map[string]types.AttributeValue
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		items = append(items, page.Items...)
	}
	return items, nil
}

func statusValues(expected, next, now string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		":expected":   &types.AttributeValueMemberS{Value: expected},
		":status":     &types.AttributeValueMemberS{Value: next},
		":updated_at": &types.AttributeValueMemberS{Value: now},
	}
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(v string) time.Time {
	t, _ := time.Parse(time.RFC3339Nano, v)
	return t
}

func floatToString(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func parseFloat(v string) float64 {
	f, _ := strconv.ParseFloat(v, 64)
	return f
}

func tableOrDefault(name, def string) string {
	if name != "" {
		return name
	}
	return def
}

func mergeNames(a, b map[string]string) map[string]string {
	if len(a) == 0 {
		return b
	}
	if len(b) == 0 {
		return a
	}
	out := make(map[string]string, len(a)+len(b))
	for k, v := range a {
		out[k] = v
	}
	for k, v := range b {
		out[k] = v
	}
	return out
}
