package config

import "codeberg.org/mutker/armoryd/internal/errors"

const (
	// Loading Errors
	ErrBindFlags     = errors.ErrBindFlags
	ErrReadConfig    = errors.ErrReadConfig
	ErrInvalidConfig = errors.ErrInvalidConfig

	// Validation Errors
	ErrInvalidRegion      = errors.ErrInvalidRegion
	ErrMissingCredentials = errors.ErrMissingCredentials
	ErrNoCharacters       = errors.ErrNoCharacters
	ErrInvalidInterval    = errors.ErrInvalidInterval
	ErrInvalidLogLevel    = errors.ErrInvalidLogLevel
)
