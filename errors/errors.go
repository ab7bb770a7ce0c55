/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Op identifies the table operation that produced a failure.
type Op string

const (
	OpInsert   Op = "insert"
	OpRetrieve Op = "retrieve"
	OpUpdate   Op = "update"
	OpDelete   Op = "delete"
)

// Common sentinel errors, one per operation kind
var (
	// ErrInsertFailed is returned when the store rejects an insert
	ErrInsertFailed = errors.New("insert failed")

	// ErrRetrieveFailed is returned when a point retrieve does not return an entity
	ErrRetrieveFailed = errors.New("retrieve failed")

	// ErrUpdateFailed is returned when a replace-by-identity is rejected
	ErrUpdateFailed = errors.New("update failed")

	// ErrDeleteFailed is returned when a delete-by-identity is rejected
	ErrDeleteFailed = errors.New("delete failed")
)

// StatusError carries the remote store's HTTP-style status code for a failed
// table operation. Transport errors from the store client are never wrapped
// in a StatusError; only non-success status codes are.
type StatusError struct {
	Op      Op
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s failed with status %d: %s", e.Op, e.Code, e.Message)
	}
	return fmt.Sprintf("%s failed with status %d", e.Op, e.Code)
}

func (e *StatusError) Is(target error) bool {
	switch e.Op {
	case OpInsert:
		return target == ErrInsertFailed
	case OpRetrieve:
		return target == ErrRetrieveFailed
	case OpUpdate:
		return target == ErrUpdateFailed
	case OpDelete:
		return target == ErrDeleteFailed
	}
	return false
}

// Helper functions for creating errors

// NewInsertError creates a StatusError for a rejected insert
func NewInsertError(code int, message string) error {
	return &StatusError{Op: OpInsert, Code: code, Message: message}
}

// NewRetrieveError creates a StatusError for a failed retrieve
func NewRetrieveError(code int, message string) error {
	return &StatusError{Op: OpRetrieve, Code: code, Message: message}
}

// NewUpdateError creates a StatusError for a rejected update
func NewUpdateError(code int, message string) error {
	return &StatusError{Op: OpUpdate, Code: code, Message: message}
}

// NewDeleteError creates a StatusError for a rejected delete
func NewDeleteError(code int, message string) error {
	return &StatusError{Op: OpDelete, Code: code, Message: message}
}

// StatusCode extracts the remote status code from an error, if it carries one.
func StatusCode(err error) (int, bool) {
	var se *StatusError
	if errors.As(err, &se) {
		return se.Code, true
	}
	return 0, false
}

// IsInsertFailure checks if an error is an insert-kind failure
func IsInsertFailure(err error) bool {
	return errors.Is(err, ErrInsertFailed)
}

// IsRetrieveFailure checks if an error is a retrieve-kind failure
func IsRetrieveFailure(err error) bool {
	return errors.Is(err, ErrRetrieveFailed)
}

// IsUpdateFailure checks if an error is an update-kind failure
func IsUpdateFailure(err error) bool {
	return errors.Is(err, ErrUpdateFailed)
}

// IsDeleteFailure checks if an error is a delete-kind failure
func IsDeleteFailure(err error) bool {
	return errors.Is(err, ErrDeleteFailed)
}

// IsNotFound checks if an error carries a 404 status from the remote store
func IsNotFound(err error) bool {
	code, ok := StatusCode(err)
	return ok && code == http.StatusNotFound
}

// IsPreconditionFailed checks if an error carries a 412 status, meaning the
// entity's concurrency token was stale.
func IsPreconditionFailed(err error) bool {
	code, ok := StatusCode(err)
	return ok && code == http.StatusPreconditionFailed
}
