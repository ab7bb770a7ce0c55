/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	sdk "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/suparena/tablestore/storagemodels"
	"github.com/suparena/tablestore/tableclient"
)

// createWaitTimeout bounds how long CreateTable waits for the table to
// become ACTIVE before first use.
const createWaitTimeout = 2 * time.Minute

// Client implements tableclient.Client on top of Amazon DynamoDB. Tables are
// created with a string PK/SK key schema and on-demand billing.
type Client struct {
	sdk    *sdk.Client
	logger *zap.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the structured logger. The default discards all output.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// New creates a DynamoDB-backed table client from a connection string.
// Parsing errors are returned as-is; see ParseConnectionString for the format.
func New(ctx context.Context, connectionString string, opts ...Option) (*Client, error) {
	cs, err := ParseConnectionString(connectionString)
	if err != nil {
		return nil, err
	}

	loadOpts := []func(*config.LoadOptions) error{
		config.WithRegion(cs.Region),
	}
	if cs.AccessKey != "" {
		loadOpts = append(loadOpts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cs.AccessKey, cs.SecretKey, ""),
		))
	}

	cfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, err
	}

	var sdkOpts []func(*sdk.Options)
	if cs.Endpoint != "" {
		sdkOpts = append(sdkOpts, func(o *sdk.Options) {
			o.BaseEndpoint = aws.String(cs.Endpoint)
		})
	}

	c := &Client{
		sdk:    sdk.NewFromConfig(cfg, sdkOpts...),
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}

	c.logger.Info("DynamoDB table client initialized", zap.String("region", cs.Region))
	return c, nil
}

// NewFromSDK wraps an already configured DynamoDB client.
func NewFromSDK(client *sdk.Client, opts ...Option) *Client {
	c := &Client{
		sdk:    client,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// TableExists reports whether the named table exists.
func (c *Client) TableExists(ctx context.Context, name string) (bool, error) {
	_, err := c.sdk.DescribeTable(ctx, &sdk.DescribeTableInput{
		TableName: aws.String(name),
	})
	if err != nil {
		var nf *types.ResourceNotFoundException
		if errors.As(err, &nf) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// CreateTable creates the named table and waits until it is ACTIVE.
// Creating a table that already exists is not an error.
func (c *Client) CreateTable(ctx context.Context, name string) error {
	c.logger.Info("creating table", zap.String("table", name))

	_, err := c.sdk.CreateTable(ctx, &sdk.CreateTableInput{
		TableName: aws.String(name),
		AttributeDefinitions: []types.AttributeDefinition{
			{AttributeName: aws.String(tableclient.AttrPartitionKey), AttributeType: types.ScalarAttributeTypeS},
			{AttributeName: aws.String(tableclient.AttrRowKey), AttributeType: types.ScalarAttributeTypeS},
		},
		KeySchema: []types.KeySchemaElement{
			{AttributeName: aws.String(tableclient.AttrPartitionKey), KeyType: types.KeyTypeHash},
			{AttributeName: aws.String(tableclient.AttrRowKey), KeyType: types.KeyTypeRange},
		},
		BillingMode: types.BillingModePayPerRequest,
	})
	if err != nil {
		var inUse *types.ResourceInUseException
		if !errors.As(err, &inUse) {
			return err
		}
		// Another creator won the race; fall through and wait for ACTIVE.
	}

	waiter := sdk.NewTableExistsWaiter(c.sdk)
	if err := waiter.Wait(ctx, &sdk.DescribeTableInput{TableName: aws.String(name)}, createWaitTimeout); err != nil {
		return err
	}

	c.logger.Info("table ready", zap.String("table", name))
	return nil
}

// Table returns an operation handle bound to the named table.
func (c *Client) Table(name string) tableclient.Handle {
	return &tableHandle{sdk: c.sdk, name: name}
}

// tableHandle performs raw item operations against one DynamoDB table.
type tableHandle struct {
	sdk  *sdk.Client
	name string
}

func itemKey(partitionKey, rowKey string) storagemodels.Item {
	return storagemodels.Item{
		tableclient.AttrPartitionKey: &types.AttributeValueMemberS{Value: partitionKey},
		tableclient.AttrRowKey:       &types.AttributeValueMemberS{Value: rowKey},
	}
}

// withFreshETag copies item and stamps a new concurrency token on the copy.
func withFreshETag(item storagemodels.Item) storagemodels.Item {
	out := make(storagemodels.Item, len(item)+1)
	for k, v := range item {
		out[k] = v
	}
	out[tableclient.AttrETag] = &types.AttributeValueMemberS{Value: uuid.NewString()}
	return out
}

func (h *tableHandle) Insert(ctx context.Context, item storagemodels.Item) (int, error) {
	_, err := h.sdk.PutItem(ctx, &sdk.PutItemInput{
		TableName:           aws.String(h.name),
		Item:                withFreshETag(item),
		ConditionExpression: aws.String("attribute_not_exists(PK) AND attribute_not_exists(SK)"),
	})
	if err != nil {
		var cond *types.ConditionalCheckFailedException
		if errors.As(err, &cond) {
			return http.StatusConflict, nil
		}
		return 0, err
	}
	return http.StatusNoContent, nil
}

func (h *tableHandle) Retrieve(ctx context.Context, partitionKey, rowKey string) (storagemodels.Item, int, error) {
	out, err := h.sdk.GetItem(ctx, &sdk.GetItemInput{
		TableName:      aws.String(h.name),
		Key:            itemKey(partitionKey, rowKey),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return nil, 0, err
	}
	if out.Item == nil {
		return nil, http.StatusNotFound, nil
	}
	return out.Item, http.StatusOK, nil
}

func (h *tableHandle) Replace(ctx context.Context, partitionKey, rowKey, etag string, item storagemodels.Item) (int, error) {
	put := withFreshETag(item)
	put[tableclient.AttrPartitionKey] = &types.AttributeValueMemberS{Value: partitionKey}
	put[tableclient.AttrRowKey] = &types.AttributeValueMemberS{Value: rowKey}

	_, err := h.sdk.PutItem(ctx, &sdk.PutItemInput{
		TableName:           aws.String(h.name),
		Item:                put,
		ConditionExpression: aws.String("ETag = :etag"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":etag": &types.AttributeValueMemberS{Value: etag},
		},
	})
	if err != nil {
		var cond *types.ConditionalCheckFailedException
		if errors.As(err, &cond) {
			return http.StatusPreconditionFailed, nil
		}
		return 0, err
	}
	return http.StatusNoContent, nil
}

func (h *tableHandle) Remove(ctx context.Context, partitionKey, rowKey, etag string) (int, error) {
	_, err := h.sdk.DeleteItem(ctx, &sdk.DeleteItemInput{
		TableName:           aws.String(h.name),
		Key:                 itemKey(partitionKey, rowKey),
		ConditionExpression: aws.String("ETag = :etag"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":etag": &types.AttributeValueMemberS{Value: etag},
		},
	})
	if err != nil {
		var cond *types.ConditionalCheckFailedException
		if errors.As(err, &cond) {
			return http.StatusPreconditionFailed, nil
		}
		return 0, err
	}
	return http.StatusNoContent, nil
}

// Query runs one page of a structured query. A partition key in the spec is
// pushed down as a key condition; without one the whole table is scanned.
func (h *tableHandle) Query(ctx context.Context, spec *storagemodels.QuerySpec) (*storagemodels.Page, error) {
	if spec == nil {
		spec = &storagemodels.QuerySpec{}
	}

	if spec.PartitionKey != nil {
		values := map[string]types.AttributeValue{
			":pk": &types.AttributeValueMemberS{Value: *spec.PartitionKey},
		}
		for k, v := range spec.ExpressionAttributeValues {
			values[k] = v
		}

		out, err := h.sdk.Query(ctx, &sdk.QueryInput{
			TableName:                 aws.String(h.name),
			KeyConditionExpression:    aws.String("PK = :pk"),
			FilterExpression:          spec.FilterExpression,
			ProjectionExpression:      spec.ProjectionExpression,
			ExpressionAttributeValues: values,
			Limit:                     spec.Limit,
			ExclusiveStartKey:         spec.ExclusiveStartKey,
		})
		if err != nil {
			return nil, err
		}
		return &storagemodels.Page{Items: out.Items, LastKey: out.LastEvaluatedKey}, nil
	}

	out, err := h.sdk.Scan(ctx, &sdk.ScanInput{
		TableName:                 aws.String(h.name),
		FilterExpression:          spec.FilterExpression,
		ProjectionExpression:      spec.ProjectionExpression,
		ExpressionAttributeValues: spec.ExpressionAttributeValues,
		Limit:                     spec.Limit,
		ExclusiveStartKey:         spec.ExclusiveStartKey,
	})
	if err != nil {
		return nil, err
	}
	return &storagemodels.Page{Items: out.Items, LastKey: out.LastEvaluatedKey}, nil
}
