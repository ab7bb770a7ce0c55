/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestInsertError(t *testing.T) {
	err := NewInsertError(http.StatusConflict, "entity already exists")

	expected := `insert failed with status 409: entity already exists`
	if err.Error() != expected {
		t.Errorf("Expected error message %q, got %q", expected, err.Error())
	}

	if !errors.Is(err, ErrInsertFailed) {
		t.Error("insert StatusError should match ErrInsertFailed")
	}
	if errors.Is(err, ErrUpdateFailed) {
		t.Error("insert StatusError should not match ErrUpdateFailed")
	}
	if !IsInsertFailure(err) {
		t.Error("IsInsertFailure should return true for an insert StatusError")
	}
}

func TestRetrieveError(t *testing.T) {
	err := NewRetrieveError(http.StatusNotFound, "")

	expected := `retrieve failed with status 404`
	if err.Error() != expected {
		t.Errorf("Expected error message %q, got %q", expected, err.Error())
	}

	if !IsRetrieveFailure(err) {
		t.Error("IsRetrieveFailure should return true for a retrieve StatusError")
	}
	if !IsNotFound(err) {
		t.Error("IsNotFound should return true for a 404 StatusError")
	}
}

func TestUpdateAndDeleteAreDistinctKinds(t *testing.T) {
	update := NewUpdateError(http.StatusPreconditionFailed, "etag mismatch")
	del := NewDeleteError(http.StatusPreconditionFailed, "etag mismatch")

	if !IsUpdateFailure(update) || IsDeleteFailure(update) {
		t.Error("update StatusError should match only the update kind")
	}
	if !IsDeleteFailure(del) || IsUpdateFailure(del) {
		t.Error("delete StatusError should match only the delete kind")
	}
	if !IsPreconditionFailed(update) || !IsPreconditionFailed(del) {
		t.Error("412 StatusErrors should report a failed precondition")
	}
}

func TestStatusCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
		ok   bool
	}{
		{"plain error", errors.New("boom"), 0, false},
		{"status error", NewDeleteError(http.StatusPreconditionFailed, "stale token"), 412, true},
		{"wrapped status error", fmt.Errorf("context: %w", NewRetrieveError(404, "missing")), 404, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, ok := StatusCode(tt.err)
			if ok != tt.ok || code != tt.code {
				t.Errorf("StatusCode(%v) = (%d, %v), want (%d, %v)", tt.err, code, ok, tt.code, tt.ok)
			}
		})
	}
}
