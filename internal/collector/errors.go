package collector

import "codeberg.org/mutker/armoryd/internal/errors"

const (
	// Cycle Errors
	ErrCycleFailed = errors.ErrCycleFailed
)
