package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors used across all layers.
var (
	ErrNotFound     = errors.New("not found")
	ErrIntegrity    = errors.New("data integrity fault")
	ErrMissingField = errors.New("missing required field")
	ErrUnknownFrame = errors.New("unknown subcategorization frame")
	ErrUnknownPOS   = errors.New("unknown part of speech")
)

// IntegrityError describes a reference or invariant the lexicon data breaks.
// Integrity faults are fatal: a lexicon carrying one must not be serialized.
type IntegrityError struct {
	Kind string
	Ref  string
}

func (e *IntegrityError) Error() string {
	return fmt.Sprintf("integrity: %s %q", e.Kind, e.Ref)
}

func (e *IntegrityError) Unwrap() error { return ErrIntegrity }

// NewIntegrityError creates an IntegrityError for a single offending reference.
func NewIntegrityError(kind, ref string) *IntegrityError {
	return &IntegrityError{Kind: kind, Ref: ref}
}

// FieldError reports a required field absent from a raw record.
type FieldError struct {
	Record string
	Field  string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: field %q is required", e.Record, e.Field)
}

func (e *FieldError) Unwrap() error { return ErrMissingField }

// NewFieldError creates a FieldError.
func NewFieldError(record, field string) *FieldError {
	return &FieldError{Record: record, Field: field}
}
