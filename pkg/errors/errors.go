// Package errors provides custom error types for the boxoffice system.
// Every failure the ledger can report is a typed error that satisfies
// errors.Is against one of the sentinel values below, so callers can branch
// on the condition and still read the details (remaining stock, held
// quantity) off the concrete type with errors.As.
package errors

import (
	"errors"
	"fmt"
)

// New returns an error that formats as the given text.
// It's an alias for the standard library errors.New for convenience.
var New = errors.New

// Common sentinel errors for the boxoffice system
var (
	// ErrNotFound indicates that a requested resource was not found
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates that a resource already exists
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates that provided input was invalid
	ErrInvalidInput = errors.New("invalid input")
)

// Ledger sentinel errors. These are expected, recoverable conditions.
var (
	// ErrInvalidQuantity indicates a non-positive ticket quantity
	ErrInvalidQuantity = errors.New("invalid quantity")

	// ErrHoldingLimitExceeded indicates a client already holds tickets for the
	// maximum number of distinct events
	ErrHoldingLimitExceeded = errors.New("client holding limit exceeded")

	// ErrSoldOut indicates the event has no tickets remaining
	ErrSoldOut = errors.New("sold out")

	// ErrInsufficientStock indicates fewer tickets remain than were requested
	ErrInsufficientStock = errors.New("insufficient stock")

	// ErrNoSuchHolding indicates the client holds no tickets for the event
	ErrNoSuchHolding = errors.New("no such holding")

	// ErrInsufficientHolding indicates the client holds fewer tickets than requested
	ErrInsufficientHolding = errors.New("insufficient holding")

	// ErrNegativeStock indicates an adjustment would drive remaining stock below zero.
	// The engine checks stock before adjusting, so seeing this is a bug.
	ErrNegativeStock = errors.New("negative stock")

	// ErrConservation indicates remaining plus held tickets no longer equals capacity
	ErrConservation = errors.New("ticket conservation violated")
)

// NotFoundError represents an error when a resource is not found
type NotFoundError struct {
	Resource string
	ID       string
}

// Error implements the error interface
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Resource, e.ID)
}

// Is implements errors.Is support
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// NewNotFoundError creates a new NotFoundError
func NewNotFoundError(resource, id string) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

// AlreadyExistsError represents an attempt to register a duplicate resource
type AlreadyExistsError struct {
	Resource string
	ID       string
}

// Error implements the error interface
func (e *AlreadyExistsError) Error() string {
	return fmt.Sprintf("%s %q already exists", e.Resource, e.ID)
}

// Is implements errors.Is support
func (e *AlreadyExistsError) Is(target error) bool {
	return target == ErrAlreadyExists
}

// NewAlreadyExistsError creates a new AlreadyExistsError
func NewAlreadyExistsError(resource, id string) *AlreadyExistsError {
	return &AlreadyExistsError{Resource: resource, ID: id}
}

// ValidationError represents a validation failure
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for field %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

// Is implements errors.Is support
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewValidationError creates a new ValidationError
func NewValidationError(field string, value interface{}, message string) *ValidationError {
	return &ValidationError{Field: field, Value: value, Message: message}
}

// QuantityError reports a non-positive quantity passed to a transaction
type QuantityError struct {
	Operation string // "sell" or "cancel"
	Quantity  int
}

// Error implements the error interface
func (e *QuantityError) Error() string {
	return fmt.Sprintf("%s: quantity must be positive, got %d", e.Operation, e.Quantity)
}

// Is implements errors.Is support
func (e *QuantityError) Is(target error) bool {
	return target == ErrInvalidQuantity
}

// HoldingLimitError reports that a client cannot take on another event
type HoldingLimitError struct {
	Client string
	Event  string
	Limit  int
}

// Error implements the error interface
func (e *HoldingLimitError) Error() string {
	return fmt.Sprintf("%s already holds tickets for %d events, cannot add %s", e.Client, e.Limit, e.Event)
}

// Is implements errors.Is support
func (e *HoldingLimitError) Is(target error) bool {
	return target == ErrHoldingLimitExceeded
}

// SoldOutError reports an event with no tickets remaining
type SoldOutError struct {
	Event string
}

// Error implements the error interface
func (e *SoldOutError) Error() string {
	return fmt.Sprintf("no tickets remain for %s", e.Event)
}

// Is implements errors.Is support
func (e *SoldOutError) Is(target error) bool {
	return target == ErrSoldOut
}

// InsufficientStockError reports a sale larger than the remaining stock.
// Remaining is the count the caller may retry with.
type InsufficientStockError struct {
	Event     string
	Requested int
	Remaining int
}

// Error implements the error interface
func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("requested %d tickets for %s but only %d remain", e.Requested, e.Event, e.Remaining)
}

// Is implements errors.Is support
func (e *InsufficientStockError) Is(target error) bool {
	return target == ErrInsufficientStock
}

// NoSuchHoldingError reports a cancellation for an event the client does not hold
type NoSuchHoldingError struct {
	Client string
	Event  string
}

// Error implements the error interface
func (e *NoSuchHoldingError) Error() string {
	return fmt.Sprintf("%s holds no tickets for %s", e.Client, e.Event)
}

// Is implements errors.Is support
func (e *NoSuchHoldingError) Is(target error) bool {
	return target == ErrNoSuchHolding
}

// InsufficientHoldingError reports a cancellation larger than the held quantity
type InsufficientHoldingError struct {
	Client    string
	Event     string
	Requested int
	Held      int
}

// Error implements the error interface
func (e *InsufficientHoldingError) Error() string {
	return fmt.Sprintf("%s holds %d tickets for %s, cannot return %d", e.Client, e.Held, e.Event, e.Requested)
}

// Is implements errors.Is support
func (e *InsufficientHoldingError) Is(target error) bool {
	return target == ErrInsufficientHolding
}

// NegativeStockError reports an adjustment that would leave negative stock
type NegativeStockError struct {
	Event     string
	Remaining int
	Delta     int
}

// Error implements the error interface
func (e *NegativeStockError) Error() string {
	return fmt.Sprintf("adjusting %s by %d would leave %d tickets", e.Event, e.Delta, e.Remaining+e.Delta)
}

// Is implements errors.Is support
func (e *NegativeStockError) Is(target error) bool {
	return target == ErrNegativeStock
}

// ConservationError reports an event whose books do not balance
type ConservationError struct {
	Event     string
	Capacity  int
	Remaining int
	Held      int
}

// Error implements the error interface
func (e *ConservationError) Error() string {
	return fmt.Sprintf("%s: %d remaining + %d held != capacity %d", e.Event, e.Remaining, e.Held, e.Capacity)
}

// Is implements errors.Is support
func (e *ConservationError) Is(target error) bool {
	return target == ErrConservation
}

// ConfigError represents a configuration error
type ConfigError struct {
	Component string
	Message   string
	Err       error
}

// Error implements the error interface
func (e *ConfigError) Error() string {
	if e.Component != "" {
		return fmt.Sprintf("configuration error in %s: %s", e.Component, e.Message)
	}
	return fmt.Sprintf("configuration error: %s", e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ConfigError) Unwrap() error {
	return e.Err
}

// NewConfigError creates a new ConfigError
func NewConfigError(component, message string, err error) *ConfigError {
	return &ConfigError{
		Component: component,
		Message:   message,
		Err:       err,
	}
}

// ParseError represents an error when parsing data formats
type ParseError struct {
	Format  string // "text", "yaml"
	File    string
	Line    int
	Message string
	Err     error
}

// Error implements the error interface
func (e *ParseError) Error() string {
	if e.File != "" && e.Line > 0 {
		return fmt.Sprintf("parse error in %s at %s:%d: %s", e.Format, e.File, e.Line, e.Message)
	}
	if e.Line > 0 {
		return fmt.Sprintf("%s parse error at line %d: %s", e.Format, e.Line, e.Message)
	}
	if e.File != "" {
		return fmt.Sprintf("parse error in %s file %s: %s", e.Format, e.File, e.Message)
	}
	return fmt.Sprintf("%s parse error: %s", e.Format, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ParseError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *ParseError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewParseError creates a new ParseError
func NewParseError(format, file string, message string, err error) *ParseError {
	return &ParseError{
		Format:  format,
		File:    file,
		Message: message,
		Err:     err,
	}
}

// IOError represents an error during I/O operations
type IOError struct {
	Operation string // "read", "write", "open", "close"
	Path      string
	Message   string
	Err       error
}

// Error implements the error interface
func (e *IOError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("IO error during %s of %s: %s", e.Operation, e.Path, e.Message)
	}
	return fmt.Sprintf("IO error during %s: %s", e.Operation, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *IOError) Unwrap() error {
	return e.Err
}

// NewIOError creates a new IOError
func NewIOError(operation, path string, err error) *IOError {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &IOError{
		Operation: operation,
		Path:      path,
		Message:   message,
		Err:       err,
	}
}

// Helper functions for error checking

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsAlreadyExists checks if an error is an already exists error
func IsAlreadyExists(err error) bool {
	return errors.Is(err, ErrAlreadyExists)
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsSoldOut checks if an error is a sold out error
func IsSoldOut(err error) bool {
	return errors.Is(err, ErrSoldOut)
}

// IsTransactionRejected reports whether err is one of the expected ledger
// rejections a driver should present to the user rather than abort on.
func IsTransactionRejected(err error) bool {
	for _, target := range []error{
		ErrInvalidQuantity,
		ErrHoldingLimitExceeded,
		ErrSoldOut,
		ErrInsufficientStock,
		ErrNoSuchHolding,
		ErrInsufficientHolding,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// Is is an alias for errors.Is so callers need only one errors import.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As is an alias for errors.As so callers need only one errors import.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// Helper wrapping functions for common patterns

// WrapValidation wraps an error as a ValidationError
func WrapValidation(field string, err error) error {
	if err == nil {
		return nil
	}
	return &ValidationError{Field: field, Message: err.Error()}
}

// WrapIO wraps an error as an IOError
func WrapIO(operation, path string, err error) error {
	if err == nil {
		return nil
	}
	return NewIOError(operation, path, err)
}

// WrapParse wraps an error as a ParseError
func WrapParse(format, file string, err error) error {
	if err == nil {
		return nil
	}
	return NewParseError(format, file, err.Error(), err)
}
