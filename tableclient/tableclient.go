/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package tableclient

import (
	"context"

	"github.com/suparena/tablestore/storagemodels"
)

// Reserved attribute names managed by the store clients. Entity attributes
// with these names are overwritten on write.
const (
	AttrPartitionKey = "PK"
	AttrRowKey       = "SK"
	AttrETag         = "ETag"
)

// Client is a handle to the remote table service. Implementations must be
// safe for concurrent use; the typed layer performs no locking of its own.
type Client interface {
	// TableExists reports whether the named table exists.
	TableExists(ctx context.Context, name string) (bool, error)

	// CreateTable creates the named table. Creating a table that already
	// exists is not an error; the store's create-if-absent primitive is the
	// concurrency guard for racing creators.
	CreateTable(ctx context.Context, name string) error

	// Table returns an operation handle bound to the named table. The table
	// is assumed to exist.
	Table(name string) Handle
}

// Handle performs raw item operations against exactly one table. Every call
// returns the store's HTTP-style status code alongside any transport error;
// a non-nil error means no status was obtained.
type Handle interface {
	// Insert writes a new item. The store reports 201 or 204 on success and
	// 409 when an item with the same key already exists.
	Insert(ctx context.Context, item storagemodels.Item) (int, error)

	// Retrieve reads the item at (partitionKey, rowKey). 200 on success,
	// 404 when no item matches.
	Retrieve(ctx context.Context, partitionKey, rowKey string) (storagemodels.Item, int, error)

	// Replace overwrites the item at (partitionKey, rowKey) provided its
	// stored ETag still equals etag. 204 on success, 412 on a stale token.
	Replace(ctx context.Context, partitionKey, rowKey, etag string, item storagemodels.Item) (int, error)

	// Remove deletes the item at (partitionKey, rowKey) provided its stored
	// ETag still equals etag. 204 on success, 412 on a stale token.
	Remove(ctx context.Context, partitionKey, rowKey, etag string) (int, error)

	// Query returns one page of items matching spec.
	Query(ctx context.Context, spec *storagemodels.QuerySpec) (*storagemodels.Page, error)
}
