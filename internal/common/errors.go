// Package common defines shared constants and sentinel errors used across
// client and server layers of GophDrive. Callers should use errors.Is to
// match these values.
package common

import (
	"errors"
	"strings"
)

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Service-level errors.
	ErrorInternal           = errors.New("internal error")
	ErrorUnauthorized       = errors.New("unauthorized")
	ErrorValidation         = errors.New("validation failed")
	ErrPayloadTooLarge      = errors.New("payload too large")
	ErrStorageInconsistency = errors.New("storage inconsistency")
	ErrCollaboratorFailure  = errors.New("storage backend failure")
	ErrRootFolderProtected  = errors.New("root folder cannot be modified")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")

	// Token lifecycle errors.
	ErrTokenExpired        = errors.New("token expired")
	ErrRefreshTokenExpired = errors.New("refresh token expired")
)

// FieldError describes a single rejected input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError carries per-field detail for rejected input.
// It matches ErrorValidation with errors.Is.
type ValidationError struct {
	Fields []FieldError
}

// NewValidationError builds a ValidationError for a single field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Fields: []FieldError{{Field: field, Message: message}}}
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return ErrorValidation.Error() + ": " + strings.Join(parts, "; ")
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrorValidation
}
