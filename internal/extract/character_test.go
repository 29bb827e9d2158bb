package extract

import (
	"testing"

	"codeberg.org/mutker/armoryd/internal/battlenet"
)

func TestItemLevel_AveragesEquippedItems(t *testing.T) {
	equipment := battlenet.Document{
		"equipped_items": []battlenet.Document{
			{"item_level": float64(200)},
			{"item_level": float64(210)},
			{"item_level": float64(190)},
		},
	}

	if got := ItemLevel(equipment); got != 200 {
		t.Errorf("expected item level 200, got %d", got)
	}
}

func TestItemLevel_SkipsItemsWithoutLevel(t *testing.T) {
	// Tabards and shirts carry no item_level and must not drag the
	// average down.
	equipment := battlenet.Document{
		"equipped_items": []battlenet.Document{
			{"item_level": float64(210)},
			{"name": "Stylish Black Shirt"},
			{"item_level": float64(230)},
		},
	}

	if got := ItemLevel(equipment); got != 220 {
		t.Errorf("expected item level 220, got %d", got)
	}
}

func TestItemLevel_NoQualifyingItems(t *testing.T) {
	if got := ItemLevel(battlenet.Document{}); got != 0 {
		t.Errorf("expected 0 for empty document, got %d", got)
	}

	equipment := battlenet.Document{
		"equipped_items": []battlenet.Document{
			{"name": "Tabard of the Argent Dawn"},
		},
	}
	if got := ItemLevel(equipment); got != 0 {
		t.Errorf("expected 0 with no leveled items, got %d", got)
	}
}

func TestItemLevel_RoundsHalfUp(t *testing.T) {
	equipment := battlenet.Document{
		"equipped_items": []battlenet.Document{
			{"item_level": float64(200)},
			{"item_level": float64(201)},
		},
	}

	if got := ItemLevel(equipment); got != 201 {
		t.Errorf("expected 200.5 to round to 201, got %d", got)
	}
}

func TestGold_ConvertsCopper(t *testing.T) {
	if got := Gold(battlenet.Document{"money": float64(12345)}); got != 1 {
		t.Errorf("expected 12345 copper to be 1 gold, got %d", got)
	}
	if got := Gold(battlenet.Document{"money": float64(0)}); got != 0 {
		t.Errorf("expected 0 copper to be 0 gold, got %d", got)
	}
	if got := Gold(battlenet.Document{}); got != 0 {
		t.Errorf("expected empty profile to be 0 gold, got %d", got)
	}
}

func TestCharacter_FullProfile(t *testing.T) {
	profile := battlenet.Document{
		"level":                float64(80),
		"money":                float64(1234567890),
		"last_login_timestamp": float64(1724431200000),
		"guild":                battlenet.Document{"name": "Honestly"},
		"character_class":      battlenet.Document{"name": "Monk"},
		"race":                 battlenet.Document{"name": "Pandaren"},
		"active_spec":          battlenet.Document{"name": "Windwalker"},
		"faction":              battlenet.Document{"name": "Horde"},
		"gender":               battlenet.Document{"name": "Female"},
		"realm":                battlenet.Document{"name": "Blackrock"},
	}
	equipment := battlenet.Document{
		"equipped_items": []battlenet.Document{{"item_level": float64(600)}},
	}
	achievements := battlenet.Document{"total_points": float64(25000)}

	info := Character(profile, equipment, achievements)

	if info.Level != 80 {
		t.Errorf("Level = %d", info.Level)
	}
	if info.ItemLevel != 600 {
		t.Errorf("ItemLevel = %d", info.ItemLevel)
	}
	if info.Gold != 123456 {
		t.Errorf("Gold = %d", info.Gold)
	}
	if info.AchievementPoints != 25000 {
		t.Errorf("AchievementPoints = %d", info.AchievementPoints)
	}
	if info.GuildName != "Honestly" {
		t.Errorf("GuildName = %q", info.GuildName)
	}
	if info.Class != "Monk" || info.Race != "Pandaren" || info.Spec != "Windwalker" {
		t.Errorf("descriptive attributes = %q %q %q", info.Class, info.Race, info.Spec)
	}
	if info.Faction != "Horde" || info.Gender != "Female" || info.RealmName != "Blackrock" {
		t.Errorf("descriptive attributes = %q %q %q", info.Faction, info.Gender, info.RealmName)
	}
	if info.LastLogin != 1724431200000 {
		t.Errorf("LastLogin = %d", info.LastLogin)
	}
}

func TestCharacter_EmptyDocuments(t *testing.T) {
	info := Character(battlenet.Document{}, battlenet.Document{}, battlenet.Document{})

	if info != (CharacterInfo{}) {
		t.Errorf("expected zero-valued group from empty documents, got %+v", info)
	}
}

func TestCharacterMetrics_FullKeySet(t *testing.T) {
	metrics := CharacterInfo{}.Metrics()

	for _, key := range []string{
		"character_level", "character_item_level", "character_money",
		"achievement_points", "guild_name",
	} {
		if _, ok := metrics[key]; !ok {
			t.Errorf("missing metric key %q", key)
		}
	}
}
