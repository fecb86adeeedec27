package repository

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/shopspring/decimal"
)

// DynamoDBAPI is the subset of *dynamodb.Client used by the repositories.
type DynamoDBAPI interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
	UpdateItem(ctx context.Context, params *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
	Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
}

var _ DynamoDBAPI = (*dynamodb.Client)(nil)

// table wraps the single-table-per-entity access pattern shared by every
// repository: string PK "id", optional GSIs keyed by one string attribute.
type table struct {
	ddb  DynamoDBAPI
	name string
}

func idKey(id string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"id": &types.AttributeValueMemberS{Value: id},
	}
}

// create writes item only if no record with the same id exists.
func (t table) create(ctx context.Context, item any) error {
	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return err
	}
	_, err = t.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(t.name),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(#id)"),
		ExpressionAttributeNames: map[string]string{
			"#id": "id",
		},
	})
	return err
}

// replace overwrites an existing record. It reports false when the record is
// gone, so callers can return their zero entity.
func (t table) replace(ctx context.Context, item any) (bool, error) {
	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return false, err
	}
	_, err = t.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(t.name),
		Item:                av,
		ConditionExpression: aws.String("attribute_exists(#id)"),
		ExpressionAttributeNames: map[string]string{
			"#id": "id",
		},
	})
	if isConditionFailed(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (t table) delete(ctx context.Context, id string) error {
	_, err := t.ddb.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(t.name),
		Key:       idKey(id),
	})
	return err
}

// get loads the record with the given id into out. It reports false when the
// record does not exist.
func (t table) get(ctx context.Context, id string, out any) (bool, error) {
	res, err := t.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(t.name),
		Key:            idKey(id),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return false, err
	}
	if len(res.Item) == 0 {
		return false, nil
	}
	if err := attributevalue.UnmarshalMap(res.Item, out); err != nil {
		return false, err
	}
	return true, nil
}

// update runs a conditional UpdateItem and decodes the new image into out. A
// failed condition reports false with no error.
func (t table) update(ctx context.Context, in *dynamodb.UpdateItemInput, out any) (bool, error) {
	in.TableName = aws.String(t.name)
	in.ReturnValues = types.ReturnValueAllNew

	res, err := t.ddb.UpdateItem(ctx, in)
	if isConditionFailed(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if len(res.Attributes) == 0 {
		return false, nil
	}
	if err := attributevalue.UnmarshalMap(res.Attributes, out); err != nil {
		return false, err
	}
	return true, nil
}

// scanAll reads the whole table following LastEvaluatedKey.
func scanAll[T any](ctx context.Context, t table) ([]T, error) {
	p := dynamodb.NewScanPaginator(t.ddb, &dynamodb.ScanInput{
		TableName: aws.String(t.name),
	})

	items := make([]T, 0)
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		var batch []T
		if err := attributevalue.UnmarshalListOfMaps(page.Items, &batch); err != nil {
			return nil, err
		}
		items = append(items, batch...)
	}
	return items, nil
}

// queryIndex reads every record whose GSI hash attribute equals value.
func queryIndex[T any](ctx context.Context, t table, index, attr, value string) ([]T, error) {
	p := dynamodb.NewQueryPaginator(t.ddb, &dynamodb.QueryInput{
		TableName:              aws.String(t.name),
		IndexName:              aws.String(index),
		KeyConditionExpression: aws.String("#k = :v"),
		ExpressionAttributeNames: map[string]string{
			"#k": attr,
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":v": &types.AttributeValueMemberS{Value: value},
		},
	})

	items := make([]T, 0)
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		var batch []T
		if err := attributevalue.UnmarshalListOfMaps(page.Items, &batch); err != nil {
			return nil, err
		}
		items = append(items, batch...)
	}
	return items, nil
}

func isConditionFailed(err error) bool {
	var cfe *types.ConditionalCheckFailedException
	return err != nil && errors.As(err, &cfe)
}

// Money and instants are stored as strings so DynamoDB never rounds them.

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339Nano)
}

// parseTime logs malformed values and decodes them as the zero time so one
// bad row does not fail a whole listing.
func parseTime(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		log.Printf("[repository][dynamodb] invalid timestamp value=%q err=%v", s, err)
		return time.Time{}
	}
	return t
}

func formatDecimal(d decimal.Decimal) string {
	return d.String()
}

func parseDecimal(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		if s != "" {
			log.Printf("[repository][dynamodb] invalid decimal value=%q err=%v", s, err)
		}
		return decimal.Zero
	}
	return d
}
