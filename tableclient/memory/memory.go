/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package memory provides an in-memory implementation of the table client
// interfaces for testing.
package memory

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"sync"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"

	"github.com/suparena/tablestore/storagemodels"
	"github.com/suparena/tablestore/tableclient"
)

// Client is an in-memory tableclient.Client. It reports 201 Created on
// inserts, exercising the other half of the {201, 204} success set that the
// DynamoDB client never produces.
type Client struct {
	mu     sync.RWMutex
	tables map[string]*memTable

	existsCalls map[string]int
	createCalls map[string]int
}

type memTable struct {
	mu   sync.RWMutex
	rows map[string]storagemodels.Item
}

// rowKey builds the composite map key for one row. NUL is not expected in
// partition or row keys.
func rowKey(partitionKey, rowKeyPart string) string {
	return partitionKey + "\x00" + rowKeyPart
}

// New creates an empty in-memory client.
func New() *Client {
	return &Client{
		tables:      make(map[string]*memTable),
		existsCalls: make(map[string]int),
		createCalls: make(map[string]int),
	}
}

// TableExists reports whether the named table has been created.
func (c *Client) TableExists(ctx context.Context, name string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.existsCalls[name]++
	_, ok := c.tables[name]
	return ok, nil
}

// CreateTable creates the named table. Creating an existing table is a no-op.
func (c *Client) CreateTable(ctx context.Context, name string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.createCalls[name]++
	if _, ok := c.tables[name]; !ok {
		c.tables[name] = &memTable{rows: make(map[string]storagemodels.Item)}
	}
	return nil
}

// Table returns an operation handle bound to the named table.
func (c *Client) Table(name string) tableclient.Handle {
	return &tableHandle{client: c, name: name}
}

// ExistsCalls returns how many existence checks were issued for a table.
func (c *Client) ExistsCalls(name string) int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.existsCalls[name]
}

// CreateCalls returns how many create calls were issued for a table.
func (c *Client) CreateCalls(name string) int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.createCalls[name]
}

func (c *Client) table(name string) (*memTable, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	t, ok := c.tables[name]
	if !ok {
		return nil, fmt.Errorf("table %q does not exist", name)
	}
	return t, nil
}

type tableHandle struct {
	client *Client
	name   string
}

func keyStrings(item storagemodels.Item) (string, string, error) {
	pk, ok := item[tableclient.AttrPartitionKey].(*types.AttributeValueMemberS)
	if !ok {
		return "", "", fmt.Errorf("item missing %s attribute", tableclient.AttrPartitionKey)
	}
	rk, ok := item[tableclient.AttrRowKey].(*types.AttributeValueMemberS)
	if !ok {
		return "", "", fmt.Errorf("item missing %s attribute", tableclient.AttrRowKey)
	}
	return pk.Value, rk.Value, nil
}

func copyWithETag(item storagemodels.Item) storagemodels.Item {
	out := make(storagemodels.Item, len(item)+1)
	for k, v := range item {
		out[k] = v
	}
	out[tableclient.AttrETag] = &types.AttributeValueMemberS{Value: uuid.NewString()}
	return out
}

func storedETag(item storagemodels.Item) string {
	if v, ok := item[tableclient.AttrETag].(*types.AttributeValueMemberS); ok {
		return v.Value
	}
	return ""
}

func (h *tableHandle) Insert(ctx context.Context, item storagemodels.Item) (int, error) {
	t, err := h.client.table(h.name)
	if err != nil {
		return 0, err
	}

	pk, rk, err := keyStrings(item)
	if err != nil {
		return 0, err
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	key := rowKey(pk, rk)
	if _, exists := t.rows[key]; exists {
		return http.StatusConflict, nil
	}
	t.rows[key] = copyWithETag(item)
	return http.StatusCreated, nil
}

func (h *tableHandle) Retrieve(ctx context.Context, partitionKey, rowKeyPart string) (storagemodels.Item, int, error) {
	t, err := h.client.table(h.name)
	if err != nil {
		return nil, 0, err
	}

	t.mu.RLock()
	defer t.mu.RUnlock()

	row, ok := t.rows[rowKey(partitionKey, rowKeyPart)]
	if !ok {
		return nil, http.StatusNotFound, nil
	}
	return row, http.StatusOK, nil
}

func (h *tableHandle) Replace(ctx context.Context, partitionKey, rowKeyPart, etag string, item storagemodels.Item) (int, error) {
	t, err := h.client.table(h.name)
	if err != nil {
		return 0, err
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	key := rowKey(partitionKey, rowKeyPart)
	current, ok := t.rows[key]
	if !ok {
		return http.StatusNotFound, nil
	}
	if storedETag(current) != etag {
		return http.StatusPreconditionFailed, nil
	}

	replacement := copyWithETag(item)
	replacement[tableclient.AttrPartitionKey] = &types.AttributeValueMemberS{Value: partitionKey}
	replacement[tableclient.AttrRowKey] = &types.AttributeValueMemberS{Value: rowKeyPart}
	t.rows[key] = replacement
	return http.StatusNoContent, nil
}

func (h *tableHandle) Remove(ctx context.Context, partitionKey, rowKeyPart, etag string) (int, error) {
	t, err := h.client.table(h.name)
	if err != nil {
		return 0, err
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	key := rowKey(partitionKey, rowKeyPart)
	current, ok := t.rows[key]
	if !ok {
		return http.StatusNotFound, nil
	}
	if storedETag(current) != etag {
		return http.StatusPreconditionFailed, nil
	}

	delete(t.rows, key)
	return http.StatusNoContent, nil
}

// Query enumerates rows in deterministic key order with Limit-sized pages.
// Filter and projection expressions are not implemented; queries carrying
// them fail so tests cannot silently pass against unfiltered data.
func (h *tableHandle) Query(ctx context.Context, spec *storagemodels.QuerySpec) (*storagemodels.Page, error) {
	t, err := h.client.table(h.name)
	if err != nil {
		return nil, err
	}
	if spec == nil {
		spec = &storagemodels.QuerySpec{}
	}
	if spec.FilterExpression != nil || spec.ProjectionExpression != nil {
		return nil, fmt.Errorf("memory client does not support filter or projection expressions")
	}

	t.mu.RLock()
	defer t.mu.RUnlock()

	keys := make([]string, 0, len(t.rows))
	for k := range t.rows {
		if spec.PartitionKey != nil {
			pk, _, found := strings.Cut(k, "\x00")
			if !found || pk != *spec.PartitionKey {
				continue
			}
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	start := 0
	if spec.ExclusiveStartKey != nil {
		pk, rk, err := keyStrings(spec.ExclusiveStartKey)
		if err != nil {
			return nil, err
		}
		after := rowKey(pk, rk)
		start = sort.SearchStrings(keys, after)
		if start < len(keys) && keys[start] == after {
			start++
		}
	}

	end := len(keys)
	if spec.Limit != nil && start+int(*spec.Limit) < end {
		end = start + int(*spec.Limit)
	}

	page := &storagemodels.Page{}
	for _, k := range keys[start:end] {
		page.Items = append(page.Items, t.rows[k])
	}
	if end < len(keys) && len(page.Items) > 0 {
		last := page.Items[len(page.Items)-1]
		page.LastKey = storagemodels.Item{
			tableclient.AttrPartitionKey: last[tableclient.AttrPartitionKey],
			tableclient.AttrRowKey:       last[tableclient.AttrRowKey],
		}
	}
	return page, nil
}
