/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package storagemodels

import (
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// Item is the raw attribute map a table row travels as on the wire.
type Item = map[string]types.AttributeValue

// QuerySpec defines a caller-supplied structured query against one table.
// A zero QuerySpec enumerates the whole table.
type QuerySpec struct {
	// PartitionKey, when set, restricts the query to one partition
	// (exact match, pushed down to the store).
	PartitionKey *string
	// FilterExpression is an optional filter passed through to the store unmodified.
	FilterExpression *string
	// ExpressionAttributeValues contains the values for filter placeholders.
	ExpressionAttributeValues map[string]types.AttributeValue
	// ProjectionExpression optionally narrows the attributes returned.
	ProjectionExpression *string
	// Limit defines an optional limit per query page.
	Limit *int32
	// ExclusiveStartKey resumes enumeration after a previous page.
	ExclusiveStartKey Item
}

// Page is one page of raw query results. A non-empty LastKey means more
// pages remain.
type Page struct {
	Items   []Item
	LastKey Item
}
