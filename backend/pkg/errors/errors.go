package errors

import (
	"errors"
	"fmt"
	"time"
)

// ErrorType represents the category of error
type ErrorType string

const (
	// ErrorTypeValidation represents bad input rejected before any write
	ErrorTypeValidation ErrorType = "validation"
	// ErrorTypeReferential represents facts referencing nonexistent entities
	ErrorTypeReferential ErrorType = "referential"
	// ErrorTypeStore represents primary store failures
	ErrorTypeStore ErrorType = "store"
	// ErrorTypePropagation represents graph mirror write failures (non-fatal)
	ErrorTypePropagation ErrorType = "propagation"
	// ErrorTypeTraversal represents graph read failures during recommendation
	ErrorTypeTraversal ErrorType = "traversal"
	// ErrorTypeConfig represents configuration errors
	ErrorTypeConfig ErrorType = "config"
)

// BaseError is the base error type with common fields
type BaseError struct {
	Type      ErrorType
	Message   string
	Timestamp time.Time
	Err       error // Wrapped error
}

// Error implements the error interface
func (e *BaseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// Unwrap returns the wrapped error for error unwrapping
func (e *BaseError) Unwrap() error {
	return e.Err
}

// NewBaseError creates a new base error
func NewBaseError(errType ErrorType, message string, err error) *BaseError {
	return &BaseError{
		Type:      errType,
		Message:   message,
		Timestamp: time.Now(),
		Err:       err,
	}
}

// Validation Errors

// ErrValidationFailed is returned when request input fails validation
type ErrValidationFailed struct {
	*BaseError
	Field  string
	Reason string
}

func NewValidationFailed(field, reason string) *ErrValidationFailed {
	return &ErrValidationFailed{
		BaseError: NewBaseError(ErrorTypeValidation, fmt.Sprintf("invalid %s: %s", field, reason), nil),
		Field:     field,
		Reason:    reason,
	}
}

// ErrRatingOutOfRange is returned when a rating value falls outside [1,5]
type ErrRatingOutOfRange struct {
	*BaseError
	Value int
}

func NewRatingOutOfRange(value int) *ErrRatingOutOfRange {
	return &ErrRatingOutOfRange{
		BaseError: NewBaseError(ErrorTypeValidation, fmt.Sprintf("rating value must be between 1 and 5, got %d", value), nil),
		Value:     value,
	}
}

// Referential Errors

// ErrNotFound is returned when a referenced entity does not exist
// in the primary store.
type ErrNotFound struct {
	*BaseError
	Entity string
	ID     int64
}

func NewNotFound(entity string, id int64) *ErrNotFound {
	return &ErrNotFound{
		BaseError: NewBaseError(ErrorTypeReferential, fmt.Sprintf("%s not found: %d", entity, id), nil),
		Entity:    entity,
		ID:        id,
	}
}

// ErrActorsMissing is returned when a movie create references unknown actors
type ErrActorsMissing struct {
	*BaseError
	ActorIDs []int64
}

func NewActorsMissing(actorIDs []int64) *ErrActorsMissing {
	return &ErrActorsMissing{
		BaseError: NewBaseError(ErrorTypeReferential, fmt.Sprintf("actors not found: %v", actorIDs), nil),
		ActorIDs:  actorIDs,
	}
}

// Store Errors

// ErrStoreQueryFailed is returned when a primary store query fails
type ErrStoreQueryFailed struct {
	*BaseError
	Operation string
}

func NewStoreQueryFailed(operation string, err error) *ErrStoreQueryFailed {
	return &ErrStoreQueryFailed{
		BaseError: NewBaseError(ErrorTypeStore, fmt.Sprintf("store operation failed: %s", operation), err),
		Operation: operation,
	}
}

// Propagation Errors

// ErrPropagationFailed is returned when mirroring a committed primary-store
// write into the graph index fails. The primary write stands; callers treat
// this as a warning, never as a request failure.
type ErrPropagationFailed struct {
	*BaseError
	Fact string
}

func NewPropagationFailed(fact string, err error) *ErrPropagationFailed {
	return &ErrPropagationFailed{
		BaseError: NewBaseError(ErrorTypePropagation, fmt.Sprintf("propagation failed: %s", fact), err),
		Fact:      fact,
	}
}

// Traversal Errors

// ErrTraversalUnavailable is returned when the graph index cannot serve a
// recommendation read. The engine converts this into an empty result.
type ErrTraversalUnavailable struct {
	*BaseError
	Strategy string
}

func NewTraversalUnavailable(strategy string, err error) *ErrTraversalUnavailable {
	return &ErrTraversalUnavailable{
		BaseError: NewBaseError(ErrorTypeTraversal, fmt.Sprintf("traversal unavailable: %s", strategy), err),
		Strategy:  strategy,
	}
}

// Config Errors

// ErrConfigMissingRequired is returned when a required config value is missing
type ErrConfigMissingRequired struct {
	*BaseError
	Field string
}

func NewConfigMissingRequired(field string) *ErrConfigMissingRequired {
	return &ErrConfigMissingRequired{
		BaseError: NewBaseError(ErrorTypeConfig, fmt.Sprintf("missing required config: %s", field), nil),
		Field:     field,
	}
}

// Helper functions

// IsErrorType checks if an error is of a specific type
func IsErrorType(err error, errType ErrorType) bool {
	for err != nil {
		if baseErr, ok := err.(*BaseError); ok {
			return baseErr.Type == errType
		}
		if typed, ok := err.(interface{ base() *BaseError }); ok {
			return typed.base().Type == errType
		}
		err = errors.Unwrap(err)
	}
	return false
}

func (e *BaseError) base() *BaseError { return e }

// IsNotFound reports whether err is a referential not-found error
func IsNotFound(err error) bool {
	var nf *ErrNotFound
	return errors.As(err, &nf)
}

// IsValidation reports whether err was rejected before any write
func IsValidation(err error) bool {
	return IsErrorType(err, ErrorTypeValidation)
}
