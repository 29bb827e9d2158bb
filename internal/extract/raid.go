package extract

import (
	"strings"

	"codeberg.org/mutker/armoryd/internal/battlenet"
)

// RaidProgress buckets completed-boss counts by difficulty tier for
// the current expansion's raids
type RaidProgress struct {
	LFR    int
	Normal int
	Heroic int
	Mythic int
	Total  int
}

// Raids walks the encounter tree (expansions, instances, modes) limited
// to the expansion whose name matches, and accumulates completed counts
// per difficulty tier. Tiers match by case-insensitive substring on the
// difficulty name, first hit wins; the total is the sum of the four
// tiers.
func Raids(raids battlenet.Document, expansion string) RaidProgress {
	var p RaidProgress

	for _, exp := range raids.Docs("expansions") {
		if exp.Doc("expansion").Str("name") != expansion {
			continue
		}

		for _, instance := range exp.Docs("instances") {
			for _, mode := range instance.Docs("modes") {
				difficulty := strings.ToLower(mode.Doc("difficulty").Str("name"))
				completed := mode.Doc("progress").Int("completed_count")

				switch {
				case strings.Contains(difficulty, "raid finder"):
					p.LFR += completed
				case strings.Contains(difficulty, "normal"):
					p.Normal += completed
				case strings.Contains(difficulty, "heroic"):
					p.Heroic += completed
				case strings.Contains(difficulty, "mythic"):
					p.Mythic += completed
				}
			}
		}
	}

	p.Total = p.LFR + p.Normal + p.Heroic + p.Mythic

	return p
}

// Metrics emits the raid metric group under its canonical keys
func (p RaidProgress) Metrics() map[string]any {
	return map[string]any{
		"raid_progress_lfr":    p.LFR,
		"raid_progress_normal": p.Normal,
		"raid_progress_heroic": p.Heroic,
		"raid_progress_mythic": p.Mythic,
		"raid_kills_total":     p.Total,
	}
}
