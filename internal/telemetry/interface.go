package telemetry

import (
	"context"

	"codeberg.org/mutker/armoryd/internal/collector"
)

// Recorder persists poll cycle snapshots
type Recorder interface {
	Record(ctx context.Context, snapshot *collector.Snapshot) error
	Close() error
}

// Repository defines the interface for snapshot storage
type Repository interface {
	Store(ctx context.Context, snapshot *collector.Snapshot) error
	Close() error
}
