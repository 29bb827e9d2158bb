package telemetry

import (
	"database/sql"

	"codeberg.org/mutker/armoryd/internal/errors"
	"codeberg.org/mutker/armoryd/internal/logger"
)

const (
	SchemaVersion = 1

	// Optional category columns are NULL when the category is disabled
	createTablesSQL = `
	   CREATE TABLE IF NOT EXISTS schema_versions (
	       version     INTEGER PRIMARY KEY,
	       applied_at  TEXT NOT NULL
	   );
	   CREATE TABLE IF NOT EXISTS character_samples (
	       taken              INTEGER NOT NULL,
	       character          TEXT NOT NULL,
	       level              INTEGER NOT NULL,
	       item_level         INTEGER NOT NULL,
	       gold               INTEGER NOT NULL,
	       achievement_points INTEGER NOT NULL,
	       guild              TEXT NOT NULL,
	       pvp_2v2_rating     INTEGER,
	       pvp_3v3_rating     INTEGER,
	       pvp_rbg_rating     INTEGER,
	       pvp_honor_level    INTEGER,
	       pvp_wins_season    INTEGER,
	       raid_lfr           INTEGER,
	       raid_normal        INTEGER,
	       raid_heroic        INTEGER,
	       raid_mythic        INTEGER,
	       raid_kills_total   INTEGER,
	       mplus_score        INTEGER,
	       mplus_best_run     INTEGER,
	       mplus_runs         INTEGER,
	       mplus_timed        INTEGER,
	       mplus_weekly_best  INTEGER,
	       PRIMARY KEY (taken, character)
	   );
	   CREATE TABLE IF NOT EXISTS realm_samples (
	       taken      INTEGER NOT NULL,
	       realm      TEXT NOT NULL,
	       status     TEXT NOT NULL,
	       population TEXT NOT NULL,
	       queue      INTEGER NOT NULL,
	       timezone   TEXT NOT NULL,
	       locale     TEXT NOT NULL,
	       PRIMARY KEY (taken, realm)
	   );`

	insertCharacterSQL = `
    INSERT INTO character_samples (
        taken, character,
        level, item_level, gold, achievement_points, guild,
        pvp_2v2_rating, pvp_3v3_rating, pvp_rbg_rating, pvp_honor_level, pvp_wins_season,
        raid_lfr, raid_normal, raid_heroic, raid_mythic, raid_kills_total,
        mplus_score, mplus_best_run, mplus_runs, mplus_timed, mplus_weekly_best
    ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	insertRealmSQL = `
    INSERT INTO realm_samples (
        taken, realm, status, population, queue, timezone, locale
    ) VALUES (?, ?, ?, ?, ?, ?, ?)`
)

// InitSchema creates a new database schema with the current version
func InitSchema(db *sql.DB, log logger.Logger) error {
	errFactory := errors.New()

	log.Debug().Msg("Creating database...")

	tx, err := db.Begin()
	if err != nil {
		return errFactory.Wrap(ErrSchemaInitFailed, err)
	}

	// Track transaction state
	committed := false
	defer func() {
		if !committed {
			if err := tx.Rollback(); err != nil {
				if !errors.Is(err, sql.ErrTxDone) {
					log.Debug().Err(err).Msg("Failed to rollback transaction")
				}
			}
		}
	}()

	if _, err := tx.Exec(createTablesSQL); err != nil {
		return errFactory.WithData(ErrSchemaInitFailed, struct {
			Error string
			SQL   string
		}{
			Error: err.Error(),
			SQL:   createTablesSQL,
		})
	}

	if _, err := tx.Exec(`
        INSERT INTO schema_versions (version, applied_at)
        VALUES (?, datetime('now'))
    `, SchemaVersion); err != nil {
		return errFactory.WithData(ErrSchemaInitFailed, struct {
			Error string
			Phase string
		}{
			Error: err.Error(),
			Phase: "record_version",
		})
	}

	if err := tx.Commit(); err != nil {
		return errFactory.Wrap(ErrSchemaInitFailed, err)
	}
	committed = true

	log.Info().
		Int("version", SchemaVersion).
		Msg("Schema initialized successfully")

	return nil
}

// GetSchemaVersion returns the current schema version
func GetSchemaVersion(db *sql.DB) (int, error) {
	errFactory := errors.New()

	exists, err := TableExists(db, "schema_versions")
	if err != nil {
		return 0, errFactory.Wrap(ErrSchemaValidationFailed, err)
	}
	if !exists {
		return 0, nil
	}

	var version int
	err = db.QueryRow(`
        SELECT version
        FROM schema_versions
        ORDER BY version DESC
        LIMIT 1
    `).Scan(&version)

	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, errFactory.WithData(ErrSchemaValidationFailed, struct {
			Phase string
			Error string
		}{
			Phase: "get_version",
			Error: err.Error(),
		})
	}

	return version, nil
}

// TableExists checks if a table exists
func TableExists(db *sql.DB, tableName string) (bool, error) {
	errFactory := errors.New()
	var exists bool
	err := db.QueryRow(`
        SELECT EXISTS (
            SELECT 1 FROM sqlite_master
            WHERE type='table' AND name=?
        )
    `, tableName).Scan(&exists)
	if err != nil {
		return false, errFactory.WithData(ErrSchemaValidationFailed, struct {
			Phase string
			Table string
			Error string
		}{
			Phase: "check_table_exists",
			Table: tableName,
			Error: err.Error(),
		})
	}
	return exists, nil
}
