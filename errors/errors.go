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
	// ErrNotFound is returned when a model instance is not found
	ErrNotFound = errors.New("model not found")

	// ErrDuplicate is returned when a write violates a uniqueness constraint
	ErrDuplicate = errors.New("duplicate model")

	// ErrNotRegistered is returned when no repository is registered for a model type
	ErrNotRegistered = errors.New("no repository registered for model type")

	// ErrUnknownBackend is returned when a class path does not resolve to a backend
	ErrUnknownBackend = errors.New("unknown repository backend")

	// ErrInvalidModel is returned when model data cannot be applied to the model type
	ErrInvalidModel = errors.New("invalid model data")
)

// NotFoundError represents an error when a model instance is not found
type NotFoundError struct {
	Model string
	ID    string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with id %q not found", e.Model, e.ID)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// DuplicateError represents a uniqueness-constraint violation
type DuplicateError struct {
	Model  string
	Detail string
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("duplicate %s: %s", e.Model, e.Detail)
}

func (e *DuplicateError) Is(target error) bool {
	return target == ErrDuplicate
}

// NotRegisteredError represents a registry lookup for an unregistered model type
type NotRegisteredError struct {
	Model string
}

func (e *NotRegisteredError) Error() string {
	return fmt.Sprintf("no repository registered for model type %q", e.Model)
}

func (e *NotRegisteredError) Is(target error) bool {
	return target == ErrNotRegistered
}

// UnknownBackendError represents a class path that does not resolve to a
// registered repository backend
type UnknownBackendError struct {
	ClassPath string
}

func (e *UnknownBackendError) Error() string {
	return fmt.Sprintf("unknown repository backend %q", e.ClassPath)
}

func (e *UnknownBackendError) Is(target error) bool {
	return target == ErrUnknownBackend
}

// InvalidModelError represents model data that cannot be decoded into the
// bound model type
type InvalidModelError struct {
	Model  string
	Reason string
}

func (e *InvalidModelError) Error() string {
	return fmt.Sprintf("invalid data for model %s: %s", e.Model, e.Reason)
}

func (e *InvalidModelError) Is(target error) bool {
	return target == ErrInvalidModel
}

// Helper functions for creating errors

// NewNotFoundError creates a new NotFoundError
func NewNotFoundError(model, id string) error {
	return &NotFoundError{Model: model, ID: id}
}

// NewDuplicateError creates a new DuplicateError
func NewDuplicateError(model, detail string) error {
	return &DuplicateError{Model: model, Detail: detail}
}

// NewNotRegisteredError creates a new NotRegisteredError
func NewNotRegisteredError(model string) error {
	return &NotRegisteredError{Model: model}
}

// NewUnknownBackendError creates a new UnknownBackendError
func NewUnknownBackendError(classPath string) error {
	return &UnknownBackendError{ClassPath: classPath}
}

// NewInvalidModelError creates a new InvalidModelError
func NewInvalidModelError(model, reason string) error {
	return &InvalidModelError{Model: model, Reason: reason}
}

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsDuplicate checks if an error is a duplicate error
func IsDuplicate(err error) bool {
	return errors.Is(err, ErrDuplicate)
}

// IsNotRegistered checks if an error is a not registered error
func IsNotRegistered(err error) bool {
	return errors.Is(err, ErrNotRegistered)
}

// IsUnknownBackend checks if an error is an unknown backend error
func IsUnknownBackend(err error) bool {
	return errors.Is(err, ErrUnknownBackend)
}
