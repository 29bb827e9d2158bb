package extract

import "codeberg.org/mutker/armoryd/internal/battlenet"

// MythicPlus is the keystone-dungeon metric group for one character
type MythicPlus struct {
	Score         int
	BestRun       int
	RunsCompleted int
	RunsTimed     int
	WeeklyBest    int
}

// Keystones scores the season's best-run list: best run is the highest
// keystone level, the score awards each run its level times 125 when
// timed and 100 when not (an approximation of the in-game formula).
// Weekly best comes from the keystone profile's current period and is
// independent of the season data.
func Keystones(season, profile battlenet.Document) MythicPlus {
	var m MythicPlus

	for _, run := range season.Docs("best_runs") {
		level := run.Int("keystone_level")
		m.RunsCompleted++
		if level > m.BestRun {
			m.BestRun = level
		}
		if run.Bool("is_completed_within_time") {
			m.RunsTimed++
			m.Score += level * 125
		} else {
			m.Score += level * 100
		}
	}

	for _, run := range profile.Doc("current_period").Docs("best_runs") {
		if level := run.Int("keystone_level"); level > m.WeeklyBest {
			m.WeeklyBest = level
		}
	}

	return m
}

// Metrics emits the Mythic+ metric group under its canonical keys
func (m MythicPlus) Metrics() map[string]any {
	return map[string]any{
		"mythicplus_score":          m.Score,
		"mythicplus_best_run":       m.BestRun,
		"mythicplus_runs_completed": m.RunsCompleted,
		"mythicplus_runs_timed":     m.RunsTimed,
		"mythicplus_weekly_best":    m.WeeklyBest,
	}
}
