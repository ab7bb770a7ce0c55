/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package tablestore

import (
	"context"
	"fmt"
	"net/http"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/suparena/tablestore/errors"
	"github.com/suparena/tablestore/storagemodels"
	"github.com/suparena/tablestore/tableclient"
)

// Entity is implemented by any record stored in a table. The partition key
// groups entities; the row key is unique within a partition.
type Entity interface {
	PartitionKey() string
	RowKey() string
}

// ETagged is implemented by entities that track the store's concurrency
// token. Get stamps the token on retrieved entities; Update and Delete echo
// it back so the store can detect lost updates. Embed ConcurrencyToken to
// satisfy it.
type ETagged interface {
	ETag() string
	SetETag(etag string)
}

// ConcurrencyToken is an embeddable optimistic-concurrency marker. The token
// value is managed by the store and never marshaled with the entity's own
// attributes.
type ConcurrencyToken struct {
	etag string
}

// ETag returns the token captured by the last retrieve.
func (c ConcurrencyToken) ETag() string { return c.etag }

// SetETag records the store's current token for this entity.
func (c *ConcurrencyToken) SetETag(etag string) { c.etag = etag }

// Table is a typed accessor bound to exactly one named remote table. Table
// accessors are created during schema binding (or with NewTable) and live as
// long as the owning DB; the backing table is guaranteed to exist before any
// operation is issued.
//
// A Table holds no entity state: entities are owned by the caller and only
// touched for the duration of a single call.
type Table[T any] struct {
	db         *DB
	likelyName string
	name       string
	handle     tableclient.Handle
}

// NewTable binds a table accessor explicitly, outside of schema reflection,
// creating the backing table if it does not exist.
func NewTable[T any](ctx context.Context, db *DB, name string) (*Table[T], error) {
	t := &Table[T]{}
	if err := t.bindTable(ctx, db, name); err != nil {
		return nil, err
	}
	return t, nil
}

// bindTable ensures the backing table exists and resolves the live handle.
// The existence check and create are not atomic together; the store's
// idempotent create-if-absent is the guard against racing creators.
func (t *Table[T]) bindTable(ctx context.Context, db *DB, likelyName string) error {
	exists, err := db.client.TableExists(ctx, likelyName)
	if err != nil {
		return err
	}
	if !exists {
		if err := db.client.CreateTable(ctx, likelyName); err != nil {
			return err
		}
	}

	t.db = db
	t.likelyName = likelyName
	t.name = likelyName
	t.handle = db.client.Table(t.name)
	return nil
}

// Name returns the resolved remote table name.
func (t *Table[T]) Name() string {
	return t.name
}

// Insert writes a new entity. The insert succeeds only if the store reports
// 201 or 204; any other status is returned as an insert-kind failure.
func (t *Table[T]) Insert(ctx context.Context, entity T) error {
	pk, rk, err := entityKey(entity)
	if err != nil {
		return err
	}

	item, err := marshalEntity(entity, pk, rk)
	if err != nil {
		return err
	}

	status, err := t.handle.Insert(ctx, item)
	if err != nil {
		return err
	}
	if status != http.StatusCreated && status != http.StatusNoContent {
		return errors.NewInsertError(status, fmt.Sprintf("entity %s/%s in table %q", pk, rk, t.name))
	}
	return nil
}

// Get retrieves the entity at (partitionKey, rowKey). Only a 200 from the
// store succeeds; the returned entity carries the store's concurrency token
// when it implements ETagged.
func (t *Table[T]) Get(ctx context.Context, partitionKey, rowKey string) (*T, error) {
	item, status, err := t.handle.Retrieve(ctx, partitionKey, rowKey)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, errors.NewRetrieveError(status, fmt.Sprintf("entity %s/%s in table %q", partitionKey, rowKey, t.name))
	}
	return t.unmarshalItem(item)
}

// Update replaces the stored entity by identity. The entity must carry the
// concurrency token from a prior Get; a stale token surfaces as an
// update-kind failure with status 412. After a successful update the stored
// token has changed, so re-retrieve before updating again.
func (t *Table[T]) Update(ctx context.Context, entity *T) error {
	pk, rk, err := entityKey(entity)
	if err != nil {
		return err
	}

	etag := entityETag(entity)
	if etag == "" {
		return errors.NewUpdateError(http.StatusPreconditionRequired,
			fmt.Sprintf("entity %s/%s carries no concurrency token; retrieve it before updating", pk, rk))
	}

	item, err := marshalEntity(entity, pk, rk)
	if err != nil {
		return err
	}

	status, err := t.handle.Replace(ctx, pk, rk, etag, item)
	if err != nil {
		return err
	}
	if status != http.StatusNoContent {
		return errors.NewUpdateError(status, fmt.Sprintf("entity %s/%s in table %q", pk, rk, t.name))
	}
	return nil
}

// Delete removes the stored entity by identity. Like Update it requires the
// concurrency token from a prior Get; a stale token surfaces as a
// delete-kind failure with status 412.
func (t *Table[T]) Delete(ctx context.Context, entity *T) error {
	pk, rk, err := entityKey(entity)
	if err != nil {
		return err
	}

	etag := entityETag(entity)
	if etag == "" {
		return errors.NewDeleteError(http.StatusPreconditionRequired,
			fmt.Sprintf("entity %s/%s carries no concurrency token; retrieve it before deleting", pk, rk))
	}

	status, err := t.handle.Remove(ctx, pk, rk, etag)
	if err != nil {
		return err
	}
	if status != http.StatusNoContent {
		return errors.NewDeleteError(status, fmt.Sprintf("entity %s/%s in table %q", pk, rk, t.name))
	}
	return nil
}

// entityKey extracts the two-part primary key from an entity.
func entityKey(v any) (string, string, error) {
	e, ok := v.(Entity)
	if !ok {
		return "", "", fmt.Errorf("tablestore: %T does not implement Entity", v)
	}
	return e.PartitionKey(), e.RowKey(), nil
}

// entityETag reads the concurrency token off an entity, if it carries one.
func entityETag(v any) string {
	if tagged, ok := v.(interface{ ETag() string }); ok {
		return tagged.ETag()
	}
	return ""
}

// marshalEntity converts an entity to a raw item and sets the reserved key
// attributes. The concurrency token is never part of the marshaled payload;
// the store client manages the ETag attribute itself.
func marshalEntity(v any, partitionKey, rowKey string) (storagemodels.Item, error) {
	item, err := attributevalue.MarshalMap(v)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal entity: %w", err)
	}
	delete(item, tableclient.AttrETag)
	item[tableclient.AttrPartitionKey] = &types.AttributeValueMemberS{Value: partitionKey}
	item[tableclient.AttrRowKey] = &types.AttributeValueMemberS{Value: rowKey}
	return item, nil
}

// unmarshalItem converts a raw item into a typed entity and stamps the
// concurrency token when the entity tracks one.
func (t *Table[T]) unmarshalItem(item storagemodels.Item) (*T, error) {
	result := new(T)
	if err := attributevalue.UnmarshalMap(item, result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal item: %w", err)
	}
	if tagged, ok := any(result).(ETagged); ok {
		if v, found := item[tableclient.AttrETag].(*types.AttributeValueMemberS); found {
			tagged.SetETag(v.Value)
		}
	}
	return result, nil
}
