/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	sdk "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"

	"github.com/suparena/modelrepo/repository"
)

// Repository implements repository.Repository[T] over a DynamoDB table keyed
// by a single string `id` attribute. Items are stored with the attribute names
// given at create time; predicates filter on those same names.
type Repository[T any] struct {
	client    *sdk.Client
	tableName string
}

// NewClient initializes a DynamoDB client using static AWS credentials.
func NewClient(awsAccessKey, awsSecretKey, awsRegion string) (*sdk.Client, error) {
	cfg, err := config.LoadDefaultConfig(context.TODO(),
		config.WithRegion(awsRegion),
		config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(awsAccessKey, awsSecretKey, ""),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}
	return sdk.NewFromConfig(cfg), nil
}

// New constructs a Repository for type T over the given table.
func New[T any](awsAccessKey, awsSecretKey, awsRegion, tableName string) (*Repository[T], error) {
	client, err := NewClient(awsAccessKey, awsSecretKey, awsRegion)
	if err != nil {
		return nil, fmt.Errorf("failed to create DynamoDB client: %w", err)
	}
	return &Repository[T]{client: client, tableName: tableName}, nil
}

var _ repository.Repository[struct{}] = (*Repository[struct{}])(nil)

// wrap converts a raw item into a model instance; a nil item wraps to absent.
func (r *Repository[T]) wrap(item map[string]types.AttributeValue) (*T, error) {
	if item == nil {
		return nil, nil
	}
	var raw map[string]any
	if err := attributevalue.UnmarshalMap(item, &raw); err != nil {
		return nil, fmt.Errorf("failed to unmarshal item: %w", err)
	}
	model := new(T)
	if err := repository.Decode(raw, model); err != nil {
		return nil, err
	}
	return model, nil
}

// Create stores the attribute map as one item, generating a UUID id when the
// data carries none. The put is conditional on the id not existing; a
// conditional failure is the uniqueness violation and resolves to absence.
func (r *Repository[T]) Create(ctx context.Context, data map[string]any) (*T, error) {
	doc := make(map[string]any, len(data)+1)
	for k, v := range data {
		doc[k] = v
	}
	if _, ok := doc["id"]; !ok {
		doc["id"] = uuid.NewString()
	}

	item, err := attributevalue.MarshalMap(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal item: %w", err)
	}

	_, err = r.client.PutItem(ctx, &sdk.PutItemInput{
		TableName:           &r.tableName,
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(id)"),
	})
	if err != nil {
		var conditional *types.ConditionalCheckFailedException
		if errors.As(err, &conditional) {
			slog.Error("dynamodb create conditional check failed", "table", r.tableName, "err", err)
			return nil, nil
		}
		return nil, fmt.Errorf("PutItem error: %w", err)
	}
	return r.wrap(item)
}

// GetByID retrieves a single item by its string key, or absent when none.
func (r *Repository[T]) GetByID(ctx context.Context, id string) (*T, error) {
	out, err := r.client.GetItem(ctx, &sdk.GetItemInput{
		TableName: &r.tableName,
		Key:       keyOf(id),
	})
	if err != nil {
		return nil, fmt.Errorf("GetItem error: %w", err)
	}
	return r.wrap(out.Item)
}

// FindOne returns the first matching item from a filtered scan.
func (r *Repository[T]) FindOne(ctx context.Context, query repository.Predicate) (*T, error) {
	one := int64(1)
	models, err := r.FindAll(ctx, query, &repository.FindOptions{Limit: &one})
	if err != nil {
		return nil, err
	}
	if len(models) == 0 {
		return nil, nil
	}
	return models[0], nil
}

// FindAll scans the table with an equality filter expression, then applies
// skip and limit to the collected matches.
func (r *Repository[T]) FindAll(ctx context.Context, query repository.Predicate, opts *repository.FindOptions) ([]*T, error) {
	items, err := r.scan(ctx, query)
	if err != nil {
		return nil, err
	}

	if opts != nil && opts.Skip != nil {
		if skip := *opts.Skip; skip >= int64(len(items)) {
			items = nil
		} else if skip > 0 {
			items = items[skip:]
		}
	}
	// Negative limit reads as unbounded.
	if opts != nil && opts.Limit != nil && *opts.Limit >= 0 && *opts.Limit < int64(len(items)) {
		items = items[:*opts.Limit]
	}

	models := make([]*T, 0, len(items))
	for _, item := range items {
		model, err := r.wrap(item)
		if err != nil {
			return nil, err
		}
		models = append(models, model)
	}
	return models, nil
}

// Update applies the given attributes with a SET expression, conditional on
// the item existing. A conditional failure resolves to absent.
func (r *Repository[T]) Update(ctx context.Context, id string, updates map[string]any) (*T, error) {
	if len(updates) == 0 {
		return r.GetByID(ctx, id)
	}

	expr := "SET "
	names := make(map[string]string, len(updates))
	values := make(map[string]types.AttributeValue, len(updates))
	i := 0
	for k, v := range updates {
		av, err := attributevalue.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal update value %q: %w", k, err)
		}
		n := strconv.Itoa(i)
		if i > 0 {
			expr += ", "
		}
		expr += "#n" + n + " = :v" + n
		names["#n"+n] = k
		values[":v"+n] = av
		i++
	}

	out, err := r.client.UpdateItem(ctx, &sdk.UpdateItemInput{
		TableName:                 &r.tableName,
		Key:                       keyOf(id),
		UpdateExpression:          &expr,
		ExpressionAttributeNames:  names,
		ExpressionAttributeValues: values,
		ConditionExpression:       aws.String("attribute_exists(id)"),
		ReturnValues:              types.ReturnValueAllNew,
	})
	if err != nil {
		var conditional *types.ConditionalCheckFailedException
		if errors.As(err, &conditional) {
			slog.Debug("dynamodb update on missing id", "table", r.tableName, "id", id)
			return nil, nil
		}
		return nil, fmt.Errorf("UpdateItem error: %w", err)
	}
	return r.wrap(out.Attributes)
}

// Delete removes the item, reporting whether one existed.
func (r *Repository[T]) Delete(ctx context.Context, id string) (bool, error) {
	out, err := r.client.DeleteItem(ctx, &sdk.DeleteItemInput{
		TableName:    &r.tableName,
		Key:          keyOf(id),
		ReturnValues: types.ReturnValueAllOld,
	})
	if err != nil {
		return false, fmt.Errorf("DeleteItem error: %w", err)
	}
	return out.Attributes != nil, nil
}

// Count scans with the same filter translation as FindAll, counting only.
func (r *Repository[T]) Count(ctx context.Context, query repository.Predicate) (int64, error) {
	items, err := r.scan(ctx, query)
	if err != nil {
		return 0, err
	}
	return int64(len(items)), nil
}

func (r *Repository[T]) scan(ctx context.Context, query repository.Predicate) ([]map[string]types.AttributeValue, error) {
	input := &sdk.ScanInput{TableName: &r.tableName}
	if len(query) > 0 {
		filter := ""
		names := make(map[string]string, len(query))
		values := make(map[string]types.AttributeValue, len(query))
		i := 0
		for k, v := range query {
			av, err := attributevalue.Marshal(v)
			if err != nil {
				return nil, fmt.Errorf("failed to marshal filter value %q: %w", k, err)
			}
			n := strconv.Itoa(i)
			if i > 0 {
				filter += " AND "
			}
			filter += "#f" + n + " = :f" + n
			names["#f"+n] = k
			values[":f"+n] = av
			i++
		}
		input.FilterExpression = &filter
		input.ExpressionAttributeNames = names
		input.ExpressionAttributeValues = values
	}

	var items []map[string]types.AttributeValue
	for {
		out, err := r.client.Scan(ctx, input)
		if err != nil {
			return nil, fmt.Errorf("Scan error: %w", err)
		}
		items = append(items, out.Items...)
		if out.LastEvaluatedKey == nil {
			break
		}
		input.ExclusiveStartKey = out.LastEvaluatedKey
	}
	return items, nil
}

func keyOf(id string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"id": &types.AttributeValueMemberS{Value: id},
	}
}
