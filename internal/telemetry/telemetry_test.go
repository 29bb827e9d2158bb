package telemetry_test

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeberg.org/mutker/armoryd/internal/collector"
	"codeberg.org/mutker/armoryd/internal/errors"
	"codeberg.org/mutker/armoryd/internal/extract"
	"codeberg.org/mutker/armoryd/internal/logger"
	"codeberg.org/mutker/armoryd/internal/telemetry"
)

func sampleSnapshot() *collector.Snapshot {
	char := collector.Character{Realm: "Blackrock", Name: "Xuen"}

	return &collector.Snapshot{
		Characters: map[string]collector.CharacterRecord{
			char.Key(): {
				Character: char,
				Info: extract.CharacterInfo{
					Level:             80,
					ItemLevel:         605,
					Gold:              12,
					AchievementPoints: 25000,
					GuildName:         "Honorbound",
				},
				PvP:        &extract.PvPStats{HonorLevel: 10, Rating2v2: 1500, Rating3v3: 1720, RatingRBG: 384, WinsSeason: 38},
				Raids:      &extract.RaidProgress{Heroic: 3, Mythic: 1, Total: 4},
				MythicPlus: &extract.MythicPlus{Score: 2050, BestRun: 10, RunsCompleted: 2, RunsTimed: 1, WeeklyBest: 9},
			},
		},
		Realms: map[string]collector.RealmRecord{
			"blackrock": {
				Realm:  "Blackrock",
				Status: extract.RealmStatus{Status: "Up", Population: "High", Queue: 0, Timezone: "Europe/Paris", Locale: "enGB"},
			},
		},
		Taken:    time.Now(),
		Duration: 2 * time.Second,
	}
}

func TestRepositoryStoresSnapshot(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "armoryd.db")

	repo, err := telemetry.NewRepository(telemetry.Config{DBPath: dbPath, Enabled: true}, logger.Default())
	require.NoError(t, err)

	require.NoError(t, repo.Store(context.Background(), sampleSnapshot()))
	require.NoError(t, repo.Close())

	db, err := sql.Open("sqlite3", dbPath)
	require.NoError(t, err)
	defer db.Close()

	version, err := telemetry.GetSchemaVersion(db)
	require.NoError(t, err)
	assert.Equal(t, telemetry.SchemaVersion, version)

	var level, rating int
	var guild string
	err = db.QueryRow(`
        SELECT level, guild, pvp_2v2_rating
        FROM character_samples
        WHERE character = 'blackrock-xuen'
    `).Scan(&level, &guild, &rating)
	require.NoError(t, err)
	assert.Equal(t, 80, level)
	assert.Equal(t, "Honorbound", guild)
	assert.Equal(t, 1500, rating)

	var status string
	var queue int
	err = db.QueryRow(`
        SELECT status, queue FROM realm_samples WHERE realm = 'blackrock'
    `).Scan(&status, &queue)
	require.NoError(t, err)
	assert.Equal(t, "Up", status)
	assert.Equal(t, 0, queue)
}

func TestRepositoryNullsDisabledCategories(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "armoryd.db")

	repo, err := telemetry.NewRepository(telemetry.Config{DBPath: dbPath, Enabled: true}, logger.Default())
	require.NoError(t, err)

	snapshot := sampleSnapshot()
	for key, record := range snapshot.Characters {
		record.PvP = nil
		record.Raids = nil
		record.MythicPlus = nil
		snapshot.Characters[key] = record
	}

	require.NoError(t, repo.Store(context.Background(), snapshot))
	require.NoError(t, repo.Close())

	db, err := sql.Open("sqlite3", dbPath)
	require.NoError(t, err)
	defer db.Close()

	var nulls int
	err = db.QueryRow(`
        SELECT COUNT(*) FROM character_samples
        WHERE pvp_2v2_rating IS NULL AND raid_kills_total IS NULL AND mplus_score IS NULL
    `).Scan(&nulls)
	require.NoError(t, err)
	assert.Equal(t, 1, nulls, "disabled categories should store NULL")
}

func TestSchemaMigrationBackup(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "armoryd.db")

	// Seed a database with an old schema version
	db, err := sql.Open("sqlite3", dbPath)
	require.NoError(t, err)
	_, err = db.Exec(`CREATE TABLE schema_versions (version INTEGER PRIMARY KEY, applied_at TEXT NOT NULL)`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO schema_versions (version, applied_at) VALUES (99, datetime('now'))`)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	repo, err := telemetry.NewRepository(telemetry.Config{DBPath: dbPath, Enabled: true}, logger.Default())
	require.NoError(t, err)
	require.NoError(t, repo.Close())

	backups, err := filepath.Glob(filepath.Join(dir, "backups", "armoryd_v99_*.db"))
	require.NoError(t, err)
	assert.Len(t, backups, 1, "migration should back up the old database")

	db, err = sql.Open("sqlite3", dbPath)
	require.NoError(t, err)
	defer db.Close()

	version, err := telemetry.GetSchemaVersion(db)
	require.NoError(t, err)
	assert.Equal(t, telemetry.SchemaVersion, version)
}

func TestServiceDisabled(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "armoryd.db")

	recorder, err := telemetry.NewService(telemetry.Config{DBPath: dbPath, Enabled: false}, logger.Default())
	require.NoError(t, err)

	require.NoError(t, recorder.Record(context.Background(), sampleSnapshot()))
	require.NoError(t, recorder.Close())

	_, err = os.Stat(dbPath)
	assert.True(t, os.IsNotExist(err), "disabled service should not create a database")
}

func TestServiceNilSnapshot(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "armoryd.db")

	recorder, err := telemetry.NewService(telemetry.Config{DBPath: dbPath, Enabled: true}, logger.Default())
	require.NoError(t, err)
	defer recorder.Close()

	err = recorder.Record(context.Background(), nil)
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, telemetry.ErrInvalidSnapshot))
}
