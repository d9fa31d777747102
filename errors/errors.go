/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package errors

import (
	"errors"
	"fmt"
)

// Common sentinel errors
var (
	// ErrStore is matched by every failure of an underlying store call
	ErrStore = errors.New("store operation failed")

	// ErrIO is matched by failures writing retrieved data to local storage
	ErrIO = errors.New("local i/o failed")

	// ErrNotFound is returned when a row or object does not exist
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")
)

// StoreError wraps a failure reported by a key-value or blob store.
// Page is the 1-based page on which a paged operation failed, or 0 for single calls.
type StoreError struct {
	Op         string
	Collection string
	Page       int
	Err        error
}

func (e *StoreError) Error() string {
	if e.Page > 0 {
		return fmt.Sprintf("%s on %q failed at page %d: %v", e.Op, e.Collection, e.Page, e.Err)
	}
	return fmt.Sprintf("%s on %q failed: %v", e.Op, e.Collection, e.Err)
}

func (e *StoreError) Is(target error) bool {
	return target == ErrStore
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// IOError represents a failure persisting data under a local path
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Is(target error) bool {
	return target == ErrIO
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// NotFoundError represents an error when a row or object is not found
type NotFoundError struct {
	Type string
	Key  string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with key %q not found", e.Type, e.Key)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// ValidationError represents an input validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for field %q: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// Helper functions for creating errors

// NewStoreError creates a new StoreError
func NewStoreError(op, collection string, page int, err error) error {
	return &StoreError{Op: op, Collection: collection, Page: page, Err: err}
}

// NewIOError creates a new IOError
func NewIOError(op, path string, err error) error {
	return &IOError{Op: op, Path: path, Err: err}
}

// NewNotFoundError creates a new NotFoundError
func NewNotFoundError(kind, key string) error {
	return &NotFoundError{Type: kind, Key: key}
}

// NewValidationError creates a new ValidationError
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// IsStoreError checks if an error came from an underlying store call
func IsStoreError(err error) bool {
	return errors.Is(err, ErrStore)
}

// IsIOError checks if an error is a local i/o error
func IsIOError(err error) bool {
	return errors.Is(err, ErrIO)
}

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// Is forwards to the standard errors.Is so callers need only this package
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As forwards to the standard errors.As
func As(err error, target any) bool {
	return errors.As(err, target)
}
