// Package common defines shared constants and sentinel errors used across
// client and server layers of the tracker. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")
	ErrStorage    = errors.New("storage unavailable")

	// Service-level errors (generic/internal flow control).
	ErrorInternal = errors.New("internal error")

	// Account errors.
	ErrDuplicateUsername  = errors.New("username already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")

	// Validation errors.
	ErrValidation   = errors.New("validation error")
	ErrInvalidInput = errors.New("usage values must be non-negative numbers")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")

	// Token lifecycle errors.
	ErrRefreshTokenExpired = errors.New("refresh token expired")

	// Export errors.
	ErrExportDisabled = errors.New("export storage is not configured")
)
