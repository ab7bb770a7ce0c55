/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package memory

import (
	"context"
	"net/http"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/suparena/tablestore/storagemodels"
	"github.com/suparena/tablestore/tableclient"
)

func testItem(pk, rk, name string) storagemodels.Item {
	return storagemodels.Item{
		tableclient.AttrPartitionKey: &types.AttributeValueMemberS{Value: pk},
		tableclient.AttrRowKey:       &types.AttributeValueMemberS{Value: rk},
		"Name":                       &types.AttributeValueMemberS{Value: name},
	}
}

func newTestHandle(t *testing.T) (*Client, tableclient.Handle) {
	t.Helper()
	ctx := context.Background()

	client := New()
	if err := client.CreateTable(ctx, "Players"); err != nil {
		t.Fatalf("CreateTable failed: %v", err)
	}
	return client, client.Table("Players")
}

func TestTableLifecycle(t *testing.T) {
	ctx := context.Background()
	client := New()

	exists, err := client.TableExists(ctx, "Players")
	if err != nil || exists {
		t.Fatalf("expected no table, got exists=%v err=%v", exists, err)
	}

	if err := client.CreateTable(ctx, "Players"); err != nil {
		t.Fatalf("CreateTable failed: %v", err)
	}
	exists, err = client.TableExists(ctx, "Players")
	if err != nil || !exists {
		t.Fatalf("expected table after create, got exists=%v err=%v", exists, err)
	}

	if client.ExistsCalls("Players") != 2 {
		t.Errorf("expected 2 existence checks, got %d", client.ExistsCalls("Players"))
	}
	if client.CreateCalls("Players") != 1 {
		t.Errorf("expected 1 create call, got %d", client.CreateCalls("Players"))
	}
}

func TestInsertReportsCreated(t *testing.T) {
	ctx := context.Background()
	_, h := newTestHandle(t)

	status, err := h.Insert(ctx, testItem("l1", "p1", "Ada"))
	if err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	if status != http.StatusCreated {
		t.Errorf("expected 201 on first insert, got %d", status)
	}

	status, err = h.Insert(ctx, testItem("l1", "p1", "Ada"))
	if err != nil {
		t.Fatalf("duplicate Insert errored: %v", err)
	}
	if status != http.StatusConflict {
		t.Errorf("expected 409 on duplicate insert, got %d", status)
	}
}

func TestRetrieveStampsETag(t *testing.T) {
	ctx := context.Background()
	_, h := newTestHandle(t)

	if _, err := h.Insert(ctx, testItem("l1", "p1", "Ada")); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	item, status, err := h.Retrieve(ctx, "l1", "p1")
	if err != nil || status != http.StatusOK {
		t.Fatalf("Retrieve = (%d, %v)", status, err)
	}
	if storedETag(item) == "" {
		t.Error("stored item should carry an ETag")
	}

	_, status, err = h.Retrieve(ctx, "l1", "missing")
	if err != nil || status != http.StatusNotFound {
		t.Errorf("Retrieve of missing row = (%d, %v), want 404", status, err)
	}
}

func TestReplaceRequiresCurrentETag(t *testing.T) {
	ctx := context.Background()
	_, h := newTestHandle(t)

	if _, err := h.Insert(ctx, testItem("l1", "p1", "Ada")); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	item, _, err := h.Retrieve(ctx, "l1", "p1")
	if err != nil {
		t.Fatalf("Retrieve failed: %v", err)
	}
	etag := storedETag(item)

	status, err := h.Replace(ctx, "l1", "p1", "stale", testItem("l1", "p1", "Grace"))
	if err != nil || status != http.StatusPreconditionFailed {
		t.Errorf("Replace with stale etag = (%d, %v), want 412", status, err)
	}

	status, err = h.Replace(ctx, "l1", "p1", etag, testItem("l1", "p1", "Grace"))
	if err != nil || status != http.StatusNoContent {
		t.Fatalf("Replace with current etag = (%d, %v), want 204", status, err)
	}

	// A successful replace rotates the token.
	status, err = h.Remove(ctx, "l1", "p1", etag)
	if err != nil || status != http.StatusPreconditionFailed {
		t.Errorf("Remove with rotated etag = (%d, %v), want 412", status, err)
	}
}

func TestRemove(t *testing.T) {
	ctx := context.Background()
	_, h := newTestHandle(t)

	if _, err := h.Insert(ctx, testItem("l1", "p1", "Ada")); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	item, _, err := h.Retrieve(ctx, "l1", "p1")
	if err != nil {
		t.Fatalf("Retrieve failed: %v", err)
	}

	status, err := h.Remove(ctx, "l1", "p1", storedETag(item))
	if err != nil || status != http.StatusNoContent {
		t.Fatalf("Remove = (%d, %v), want 204", status, err)
	}

	status, err = h.Remove(ctx, "l1", "p1", "anything")
	if err != nil || status != http.StatusNotFound {
		t.Errorf("Remove of missing row = (%d, %v), want 404", status, err)
	}
}

func TestQueryPagination(t *testing.T) {
	ctx := context.Background()
	_, h := newTestHandle(t)

	rows := []string{"p1", "p2", "p3", "p4", "p5"}
	for _, rk := range rows {
		if _, err := h.Insert(ctx, testItem("l1", rk, rk)); err != nil {
			t.Fatalf("Insert %s failed: %v", rk, err)
		}
	}

	var seen []string
	spec := &storagemodels.QuerySpec{Limit: aws.Int32(2)}
	for {
		page, err := h.Query(ctx, spec)
		if err != nil {
			t.Fatalf("Query failed: %v", err)
		}
		for _, item := range page.Items {
			seen = append(seen, item[tableclient.AttrRowKey].(*types.AttributeValueMemberS).Value)
		}
		if page.LastKey == nil {
			break
		}
		spec.ExclusiveStartKey = page.LastKey
	}

	if len(seen) != len(rows) {
		t.Fatalf("expected %d rows across pages, got %d", len(rows), len(seen))
	}
	for i, rk := range rows {
		if seen[i] != rk {
			t.Errorf("row %d = %q, want %q (deterministic order)", i, seen[i], rk)
		}
	}
}

func TestQueryPartitionFilter(t *testing.T) {
	ctx := context.Background()
	_, h := newTestHandle(t)

	for _, pk := range []string{"l1", "l2"} {
		if _, err := h.Insert(ctx, testItem(pk, "p1", pk)); err != nil {
			t.Fatalf("Insert failed: %v", err)
		}
	}

	pk := "l1"
	page, err := h.Query(ctx, &storagemodels.QuerySpec{PartitionKey: &pk})
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	if len(page.Items) != 1 {
		t.Fatalf("expected 1 item for partition l1, got %d", len(page.Items))
	}
}

func TestQueryOnMissingTable(t *testing.T) {
	ctx := context.Background()
	client := New()

	if _, err := client.Table("Nope").Query(ctx, nil); err == nil {
		t.Error("expected error querying a table that does not exist")
	}
}
