/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package tablestore

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/suparena/tablestore/errors"
	"github.com/suparena/tablestore/storagemodels"
	"github.com/suparena/tablestore/tableclient"
)

// Query returns a restartable query over the whole table. Callers compose
// filtering through the builder; Run re-issues the query on every call, so
// results are never cached.
func (t *Table[T]) Query() *Query[T] {
	return &Query[T]{table: t, spec: &storagemodels.QuerySpec{}}
}

// Query is a reusable, restartable query against one table.
type Query[T any] struct {
	table *Table[T]
	spec  *storagemodels.QuerySpec
}

// WithPartitionKey restricts the query to one partition. The match is exact
// and pushed down to the store; use All for case-insensitive matching.
func (q *Query[T]) WithPartitionKey(partitionKey string) *Query[T] {
	q.spec.PartitionKey = aws.String(partitionKey)
	return q
}

// WithFilter passes a filter expression through to the store unmodified.
// Values holds the expression's placeholder values.
func (q *Query[T]) WithFilter(expr string, values map[string]types.AttributeValue) *Query[T] {
	q.spec.FilterExpression = aws.String(expr)
	q.spec.ExpressionAttributeValues = values
	return q
}

// WithProjection narrows the attributes the store returns.
func (q *Query[T]) WithProjection(expr string) *Query[T] {
	q.spec.ProjectionExpression = aws.String(expr)
	return q
}

// WithPageSize sets the store page size for this query.
func (q *Query[T]) WithPageSize(size int32) *Query[T] {
	q.spec.Limit = aws.Int32(size)
	return q
}

// Run executes the query and drains every page. Each call re-evaluates the
// query against the live table.
func (q *Query[T]) Run(ctx context.Context) ([]*T, error) {
	spec := *q.spec

	var results []*T
	for {
		page, err := q.table.handle.Query(ctx, &spec)
		if err != nil {
			return nil, err
		}
		for _, raw := range page.Items {
			entity, err := q.table.unmarshalItem(raw)
			if err != nil {
				return nil, err
			}
			results = append(results, entity)
		}
		if len(page.LastKey) == 0 {
			return results, nil
		}
		spec.ExclusiveStartKey = page.LastKey
	}
}

// First returns the first entity whose partition key matches partitionKey
// case-insensitively, in the store's default enumeration order. A retrieve-
// kind failure with status 404 is returned when nothing matches.
func (t *Table[T]) First(ctx context.Context, partitionKey string) (*T, error) {
	var match *T
	err := t.scanPartition(ctx, partitionKey, func(e *T) bool {
		match = e
		return false
	})
	if err != nil {
		return nil, err
	}
	if match == nil {
		return nil, errors.NewRetrieveError(http.StatusNotFound,
			fmt.Sprintf("no entity with partition key %q in table %q", partitionKey, t.name))
	}
	return match, nil
}

// All returns every entity whose partition key matches partitionKey
// case-insensitively. The result is re-evaluated on each call, never cached.
func (t *Table[T]) All(ctx context.Context, partitionKey string) ([]*T, error) {
	var results []*T
	err := t.scanPartition(ctx, partitionKey, func(e *T) bool {
		results = append(results, e)
		return true
	})
	if err != nil {
		return nil, err
	}
	return results, nil
}

// scanPartition enumerates the table unfiltered and yields entities whose
// partition key matches case-insensitively. The comparison happens client
// side: the store's own filter comparisons are case-sensitive, so pushing
// the partition key down would miss differently-cased values. yield returns
// false to stop early.
func (t *Table[T]) scanPartition(ctx context.Context, partitionKey string, yield func(*T) bool) error {
	spec := storagemodels.QuerySpec{}
	for {
		page, err := t.handle.Query(ctx, &spec)
		if err != nil {
			return err
		}
		for _, raw := range page.Items {
			pk, ok := raw[tableclient.AttrPartitionKey].(*types.AttributeValueMemberS)
			if !ok || !strings.EqualFold(pk.Value, partitionKey) {
				continue
			}
			entity, err := t.unmarshalItem(raw)
			if err != nil {
				return err
			}
			if !yield(entity) {
				return nil
			}
		}
		if len(page.LastKey) == 0 {
			return nil
		}
		spec.ExclusiveStartKey = page.LastKey
	}
}
