// Package collector is the poll coordinator: each cycle it walks the
// tracked characters and realms sequentially, fans out the per-category
// fetches, runs the extractors, and publishes the merged snapshot.
package collector

import (
	"context"
	"sync"
	"time"

	"codeberg.org/mutker/armoryd/internal/battlenet"
	"codeberg.org/mutker/armoryd/internal/errors"
	"codeberg.org/mutker/armoryd/internal/extract"
	"codeberg.org/mutker/armoryd/internal/logger"
	"codeberg.org/mutker/armoryd/internal/observability"
)

const defaultEntityDelay = 100 * time.Millisecond

// Features are the globally enabled metric categories. Basic character
// metrics are always collected.
type Features struct {
	ServerStatus bool
	PvP          bool
	Raids        bool
	MythicPlus   bool
}

// Config carries what one collector needs for its cycles
type Config struct {
	Characters []Character
	Features   Features
	Expansion  string
	SeasonID   int

	// EntityDelay spaces successive fetch bursts as a courtesy to the
	// API; it is not rate-limit accounting.
	EntityDelay time.Duration
}

// State summarizes cycle history for the status surface
type State struct {
	Cycles      int64
	Failures    int64
	LastSuccess time.Time
	LastError   string
}

// Collector runs poll cycles against one API client. Cycles are driven
// externally from a single goroutine; Latest and CycleState are safe to
// call from other goroutines.
type Collector struct {
	api API
	cfg Config
	log logger.Logger

	mu     sync.Mutex
	latest *Snapshot
	state  State
}

// New creates a collector. A zero EntityDelay gets the default spacing.
func New(api API, cfg Config) *Collector {
	if cfg.EntityDelay == 0 {
		cfg.EntityDelay = defaultEntityDelay
	}

	return &Collector{
		api: api,
		cfg: cfg,
		log: logger.Default(),
	}
}

// Latest returns the most recent successful snapshot, or nil before the
// first successful cycle. The snapshot is shared and must be treated as
// read-only.
func (c *Collector) Latest() *Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.latest
}

// CycleState returns the cycle counters and last-error summary
func (c *Collector) CycleState() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.state
}

// RunCycle performs one complete poll cycle and publishes the snapshot.
// On failure the previous snapshot stays published and the error is
// returned for the loop to log; the next tick proceeds normally.
func (c *Collector) RunCycle(ctx context.Context) (*Snapshot, error) {
	start := time.Now()

	snap := &Snapshot{
		Characters: make(map[string]CharacterRecord, len(c.cfg.Characters)),
		Realms:     make(map[string]RealmRecord),
		Taken:      start,
	}

	for i, character := range c.cfg.Characters {
		if i > 0 {
			if err := c.pause(ctx); err != nil {
				return nil, c.fail(start, err)
			}
		}

		record, err := c.collectCharacter(ctx, character)
		if err != nil {
			return nil, c.fail(start, err)
		}
		snap.Characters[character.Key()] = record
	}

	if c.cfg.Features.ServerStatus {
		for _, realm := range c.trackedRealms() {
			if err := c.pause(ctx); err != nil {
				return nil, c.fail(start, err)
			}

			record, err := c.collectRealm(ctx, realm)
			if err != nil {
				return nil, c.fail(start, err)
			}
			snap.Realms[battlenet.RealmSlug(realm)] = record
		}
	}

	snap.Duration = time.Since(start)

	c.mu.Lock()
	c.latest = snap
	c.state.Cycles++
	c.state.LastSuccess = snap.Taken
	c.state.LastError = ""
	c.mu.Unlock()

	observability.RecordCycle(true, snap.Duration)
	observability.SetTracked(len(snap.Characters), len(snap.Realms))
	c.log.Debug().
		Int("characters", len(snap.Characters)).
		Int("realms", len(snap.Realms)).
		Dur("duration", snap.Duration).
		Msg("Cycle completed")

	return snap, nil
}

func (c *Collector) fail(start time.Time, err error) error {
	c.mu.Lock()
	c.state.Cycles++
	c.state.Failures++
	c.state.LastError = err.Error()
	c.mu.Unlock()

	observability.RecordCycle(false, time.Since(start))

	return errors.New().Wrap(ErrCycleFailed, err)
}

func (c *Collector) collectCharacter(ctx context.Context, character Character) (CharacterRecord, error) {
	realm, name := character.Realm, character.Name

	profile, err := c.api.CharacterProfile(ctx, realm, name)
	if err != nil {
		return CharacterRecord{}, err
	}
	equipment, err := c.api.CharacterEquipment(ctx, realm, name)
	if err != nil {
		return CharacterRecord{}, err
	}
	achievements, err := c.api.CharacterAchievements(ctx, realm, name)
	if err != nil {
		return CharacterRecord{}, err
	}

	record := CharacterRecord{
		Character: character,
		Info:      extract.Character(profile, equipment, achievements),
	}

	if c.cfg.Features.PvP {
		summary, err := c.api.CharacterPvPSummary(ctx, realm, name)
		if err != nil {
			return CharacterRecord{}, err
		}

		brackets := make(map[battlenet.Bracket]battlenet.Document, len(battlenet.Brackets))
		for _, bracket := range battlenet.Brackets {
			if err := c.pause(ctx); err != nil {
				return CharacterRecord{}, err
			}
			doc, err := c.api.CharacterPvPBracket(ctx, realm, name, bracket)
			if err != nil {
				return CharacterRecord{}, err
			}
			brackets[bracket] = doc
		}

		pvp := extract.PvP(summary, brackets)
		record.PvP = &pvp
	}

	if c.cfg.Features.Raids {
		raids, err := c.api.CharacterRaids(ctx, realm, name)
		if err != nil {
			return CharacterRecord{}, err
		}

		progress := extract.Raids(raids, c.cfg.Expansion)
		record.Raids = &progress
	}

	if c.cfg.Features.MythicPlus {
		season, err := c.api.MythicKeystoneSeason(ctx, realm, name, c.cfg.SeasonID)
		if err != nil {
			return CharacterRecord{}, err
		}
		keystones, err := c.api.MythicKeystoneProfile(ctx, realm, name)
		if err != nil {
			return CharacterRecord{}, err
		}

		mythicplus := extract.Keystones(season, keystones)
		record.MythicPlus = &mythicplus
	}

	return record, nil
}

func (c *Collector) collectRealm(ctx context.Context, realm string) (RealmRecord, error) {
	info, err := c.api.RealmInfo(ctx, realm)
	if err != nil {
		return RealmRecord{}, err
	}

	connected := battlenet.Document{}
	if id := info.Int("id"); id > 0 {
		connected, err = c.api.ConnectedRealm(ctx, id)
		if err != nil {
			return RealmRecord{}, err
		}
	}

	return RealmRecord{
		Realm:  realm,
		Status: extract.Realm(info, connected),
	}, nil
}

// trackedRealms lists the distinct realms across tracked characters in
// configuration order
func (c *Collector) trackedRealms() []string {
	seen := make(map[string]struct{}, len(c.cfg.Characters))
	realms := make([]string, 0, len(c.cfg.Characters))
	for _, character := range c.cfg.Characters {
		slug := battlenet.RealmSlug(character.Realm)
		if _, ok := seen[slug]; ok {
			continue
		}
		seen[slug] = struct{}{}
		realms = append(realms, character.Realm)
	}

	return realms
}

func (c *Collector) pause(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(c.cfg.EntityDelay):
		return nil
	}
}
