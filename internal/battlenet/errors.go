package battlenet

import "codeberg.org/mutker/armoryd/internal/errors"

const (
	// Credential Errors
	ErrAuthFailure        = errors.ErrAuthFailure
	ErrMissingCredentials = errors.ErrMissingCredentials
	ErrInvalidRegion      = errors.ErrInvalidRegion

	// Request Errors
	ErrRequestFailed = errors.ErrRequestFailed
	ErrThrottled     = errors.ErrThrottled
	ErrDecodeFailed  = errors.ErrDecodeFailed

	// Verification Errors
	ErrCannotConnect     = errors.ErrCannotConnect
	ErrCharacterNotFound = errors.ErrCharacterNotFound
)
