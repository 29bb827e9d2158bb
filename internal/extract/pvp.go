package extract

import "codeberg.org/mutker/armoryd/internal/battlenet"

// PvPStats is the rated-PvP metric group for one character
type PvPStats struct {
	HonorLevel int
	Rating2v2  int
	Rating3v3  int
	RatingRBG  int
	WinsSeason int
}

// PvP reads the honor level from the summary document and the
// per-bracket ratings from the bracket documents. A bracket without a
// rating field has never been rated this season: its rating stays 0 and
// its match statistics are excluded from the season win total.
func PvP(summary battlenet.Document, brackets map[battlenet.Bracket]battlenet.Document) PvPStats {
	stats := PvPStats{HonorLevel: summary.Int("honor_level")}

	for bracket, doc := range brackets {
		if !doc.Has("rating") {
			continue
		}

		rating := doc.Int("rating")
		stats.WinsSeason += doc.Doc("season_match_statistics").Int("won")

		switch bracket {
		case battlenet.Bracket2v2:
			stats.Rating2v2 = rating
		case battlenet.Bracket3v3:
			stats.Rating3v3 = rating
		case battlenet.BracketRBG:
			stats.RatingRBG = rating
		}
	}

	return stats
}

// Metrics emits the PvP metric group under its canonical keys
func (p PvPStats) Metrics() map[string]any {
	return map[string]any{
		"pvp_2v2_rating":  p.Rating2v2,
		"pvp_3v3_rating":  p.Rating3v3,
		"pvp_rbg_rating":  p.RatingRBG,
		"pvp_honor_level": p.HonorLevel,
		"pvp_wins_season": p.WinsSeason,
	}
}
