package collector

import (
	"strings"
	"time"

	"codeberg.org/mutker/armoryd/internal/battlenet"
	"codeberg.org/mutker/armoryd/internal/extract"
)

// Character identifies one tracked character by realm and name
type Character struct {
	Realm string
	Name  string
}

// Key is the entity key records are filed under: realm slug and
// lowercased name, e.g. "argent-dawn-xuen"
func (c Character) Key() string {
	return battlenet.RealmSlug(c.Realm) + "-" + strings.ToLower(c.Name)
}

// CharacterRecord is one character's merged cycle result. Category
// pointers are nil when the category is disabled by config.
type CharacterRecord struct {
	Character  Character
	Info       extract.CharacterInfo
	PvP        *extract.PvPStats
	Raids      *extract.RaidProgress
	MythicPlus *extract.MythicPlus
}

// Metrics flattens the record's enabled groups into one metric map.
// Disabled categories contribute no keys; enabled ones always
// contribute their full key set.
func (r CharacterRecord) Metrics() map[string]any {
	metrics := r.Info.Metrics()
	if r.PvP != nil {
		for k, v := range r.PvP.Metrics() {
			metrics[k] = v
		}
	}
	if r.Raids != nil {
		for k, v := range r.Raids.Metrics() {
			metrics[k] = v
		}
	}
	if r.MythicPlus != nil {
		for k, v := range r.MythicPlus.Metrics() {
			metrics[k] = v
		}
	}

	return metrics
}

// Attributes returns the descriptive attributes shown alongside the
// character's metrics
func (r CharacterRecord) Attributes() map[string]any {
	return r.Info.Attributes()
}

// RealmRecord is one tracked realm's cycle result
type RealmRecord struct {
	Realm  string
	Status extract.RealmStatus
}

// Metrics flattens the realm record into its metric map
func (r RealmRecord) Metrics() map[string]any {
	return r.Status.Metrics()
}

// Snapshot is the complete result of one successful cycle: every
// tracked character and realm, keyed by entity key. It is immutable
// once published; consumers must not modify the maps.
type Snapshot struct {
	Characters map[string]CharacterRecord
	Realms     map[string]RealmRecord
	Taken      time.Time
	Duration   time.Duration
}

// Flat is the display form of a snapshot: one flat map of metric keys
// and attributes per entity, ready for JSON
type Flat struct {
	Taken      time.Time                 `json:"taken"`
	DurationMS int64                     `json:"duration_ms"`
	Characters map[string]map[string]any `json:"characters"`
	Realms     map[string]map[string]any `json:"realms"`
}

// Flatten merges each record's metrics and attributes into per-entity
// maps for the HTTP surface and the one-shot output
func (s *Snapshot) Flatten() Flat {
	flat := Flat{
		Taken:      s.Taken,
		DurationMS: s.Duration.Milliseconds(),
		Characters: make(map[string]map[string]any, len(s.Characters)),
		Realms:     make(map[string]map[string]any, len(s.Realms)),
	}

	for key, record := range s.Characters {
		entity := record.Metrics()
		for k, v := range record.Attributes() {
			entity[k] = v
		}
		flat.Characters[key] = entity
	}
	for key, record := range s.Realms {
		flat.Realms[key] = record.Metrics()
	}

	return flat
}
