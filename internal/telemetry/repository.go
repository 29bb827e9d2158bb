package telemetry

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"sync"

	_ "github.com/mattn/go-sqlite3"

	"codeberg.org/mutker/armoryd/internal/collector"
	"codeberg.org/mutker/armoryd/internal/errors"
	"codeberg.org/mutker/armoryd/internal/logger"
)

type repository struct {
	db     *sql.DB
	logger logger.Logger
	cfg    Config
	mu     sync.Mutex
}

func NewRepository(cfg Config, log logger.Logger) (Repository, error) {
	errFactory := errors.New()

	if cfg.DBPath == "" {
		return nil, errFactory.New(ErrInvalidDBPath)
	}

	// Ensure the directory exists
	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), defaultDirPerm); err != nil {
		return nil, errFactory.WithData(ErrStorageInit, struct {
			Phase string
			Path  string
			Error string
		}{
			Phase: "create_directory",
			Path:  cfg.DBPath,
			Error: err.Error(),
		})
	}

	// Open database with specific pragmas for better performance and safety
	dsn := cfg.DBPath + "?_journal=WAL&_auto_vacuum=2"
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, errFactory.WithData(ErrStorageInit, struct {
			Phase string
			Error string
		}{
			Phase: "open_database",
			Error: err.Error(),
		})
	}

	// Validate if schema is current, with backup if needed
	if err := ValidateAndUpdateSchema(db, cfg.DBPath, log); err != nil {
		db.Close()
		return nil, errFactory.WithData(ErrStorageInit, struct {
			Phase string
			Error string
		}{
			Phase: "schema_version",
			Error: err.Error(),
		})
	}

	log.Info().
		Str("path", cfg.DBPath).
		Int("schema_version", SchemaVersion).
		Msg("Telemetry repository initialized")

	return &repository{
		db:     db,
		logger: log,
		cfg:    cfg,
	}, nil
}

// Store writes every record of one snapshot in a single transaction.
// A cycle every few minutes produces few rows, so no batching.
func (r *repository) Store(ctx context.Context, snapshot *collector.Snapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	errFactory := errors.New()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return errFactory.Wrap(ErrTransactionFailed, err)
	}

	// Track transaction state
	committed := false
	defer func() {
		if !committed {
			if err := tx.Rollback(); err != nil {
				if !errors.Is(err, sql.ErrTxDone) {
					r.logger.Debug().Err(err).Msg("Failed to rollback transaction")
				}
			}
		}
	}()

	taken := snapshot.Taken.Unix()

	charStmt, err := tx.PrepareContext(ctx, insertCharacterSQL)
	if err != nil {
		return errFactory.Wrap(ErrTransactionFailed, err)
	}
	defer charStmt.Close()

	for key, record := range snapshot.Characters {
		if _, err := charStmt.ExecContext(ctx, characterArgs(taken, key, record)...); err != nil {
			return errFactory.WithData(ErrStoreFailed, struct {
				Character string
				Error     string
			}{
				Character: key,
				Error:     err.Error(),
			})
		}
	}

	realmStmt, err := tx.PrepareContext(ctx, insertRealmSQL)
	if err != nil {
		return errFactory.Wrap(ErrTransactionFailed, err)
	}
	defer realmStmt.Close()

	for slug, record := range snapshot.Realms {
		status := record.Status
		if _, err := realmStmt.ExecContext(ctx,
			taken, slug,
			status.Status, status.Population, status.Queue,
			status.Timezone, status.Locale,
		); err != nil {
			return errFactory.WithData(ErrStoreFailed, struct {
				Realm string
				Error string
			}{
				Realm: slug,
				Error: err.Error(),
			})
		}
	}

	if err := tx.Commit(); err != nil {
		return errFactory.Wrap(ErrTransactionFailed, err)
	}
	committed = true

	r.logger.Debug().
		Int("characters", len(snapshot.Characters)).
		Int("realms", len(snapshot.Realms)).
		Msg("Stored snapshot")

	return nil
}

// characterArgs lays out one character row. Disabled categories store
// NULL so history queries can tell "off" from zero.
func characterArgs(taken int64, key string, record collector.CharacterRecord) []any {
	args := []any{
		taken, key,
		record.Info.Level,
		record.Info.ItemLevel,
		record.Info.Gold,
		record.Info.AchievementPoints,
		record.Info.GuildName,
	}

	if pvp := record.PvP; pvp != nil {
		args = append(args, pvp.Rating2v2, pvp.Rating3v3, pvp.RatingRBG, pvp.HonorLevel, pvp.WinsSeason)
	} else {
		args = append(args, nil, nil, nil, nil, nil)
	}

	if raids := record.Raids; raids != nil {
		args = append(args, raids.LFR, raids.Normal, raids.Heroic, raids.Mythic, raids.Total)
	} else {
		args = append(args, nil, nil, nil, nil, nil)
	}

	if mplus := record.MythicPlus; mplus != nil {
		args = append(args, mplus.Score, mplus.BestRun, mplus.RunsCompleted, mplus.RunsTimed, mplus.WeeklyBest)
	} else {
		args = append(args, nil, nil, nil, nil, nil)
	}

	return args
}

func (r *repository) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Checkpoint WAL and cleanup on close
	if _, err := r.db.Exec("PRAGMA wal_checkpoint(TRUNCATE)"); err != nil {
		return errors.New().WithData(ErrStorageClose, struct {
			Phase string
			Error string
		}{
			Phase: "checkpoint_wal",
			Error: err.Error(),
		})
	}

	if err := r.db.Close(); err != nil {
		return errors.New().WithData(ErrStorageClose, struct {
			Phase string
			Error string
		}{
			Phase: "close_database",
			Error: err.Error(),
		})
	}

	r.logger.Debug().Msg("Telemetry repository closed")

	return nil
}
