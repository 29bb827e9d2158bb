// Package extract holds the pure field extractors: each function maps
// one or more raw API documents to a typed metric group with explicit
// zero defaults, so absent or degraded inputs never need special
// handling downstream.
package extract

import (
	"math"

	"codeberg.org/mutker/armoryd/internal/battlenet"
)

// CharacterInfo is the always-collected metric group for one character,
// plus the descriptive attributes displayed alongside every metric.
type CharacterInfo struct {
	Level             int
	ItemLevel         int
	Gold              int
	AchievementPoints int
	GuildName         string

	Class     string
	Race      string
	Spec      string
	Faction   string
	Gender    string
	RealmName string
	LastLogin int64
}

// Character merges the three always-fetched documents into the basic
// metric group. Empty documents produce the zero-valued group.
func Character(profile, equipment, achievements battlenet.Document) CharacterInfo {
	return CharacterInfo{
		Level:             profile.Int("level"),
		ItemLevel:         ItemLevel(equipment),
		Gold:              Gold(profile),
		AchievementPoints: achievements.Int("total_points"),
		GuildName:         profile.Doc("guild").Str("name"),

		Class:     profile.Doc("character_class").Str("name"),
		Race:      profile.Doc("race").Str("name"),
		Spec:      profile.Doc("active_spec").Str("name"),
		Faction:   profile.Doc("faction").Str("name"),
		Gender:    profile.Doc("gender").Str("name"),
		RealmName: profile.Doc("realm").Str("name"),
		LastLogin: profile.Int64("last_login_timestamp"),
	}
}

// ItemLevel averages item_level over the equipped items that carry one.
// Items without (tabards, shirts) count toward neither numerator nor
// denominator. Zero qualifying items yield 0.
func ItemLevel(equipment battlenet.Document) int {
	var total float64
	count := 0
	for _, item := range equipment.Docs("equipped_items") {
		if !item.Has("item_level") {
			continue
		}
		total += item.Float("item_level")
		count++
	}

	if count == 0 {
		return 0
	}

	return int(math.Round(total / float64(count)))
}

// Gold converts the profile's raw copper amount to whole gold.
// 10000 copper is 1 gold; the remainder is discarded.
func Gold(profile battlenet.Document) int {
	return profile.Int("money") / 10000
}

// Metrics emits the basic metric group under its canonical keys
func (c CharacterInfo) Metrics() map[string]any {
	return map[string]any{
		"character_level":      c.Level,
		"character_item_level": c.ItemLevel,
		"character_money":      c.Gold,
		"achievement_points":   c.AchievementPoints,
		"guild_name":           c.GuildName,
	}
}

// Attributes emits the descriptive attributes shown next to every
// metric of the character
func (c CharacterInfo) Attributes() map[string]any {
	return map[string]any{
		"character_class":      c.Class,
		"character_race":       c.Race,
		"spec":                 c.Spec,
		"faction":              c.Faction,
		"gender":               c.Gender,
		"realm":                c.RealmName,
		"last_login_timestamp": c.LastLogin,
	}
}
