package extract

import (
	"testing"

	"codeberg.org/mutker/armoryd/internal/battlenet"
)

func TestPvP_RatedBrackets(t *testing.T) {
	summary := battlenet.Document{"honor_level": float64(55)}
	brackets := map[battlenet.Bracket]battlenet.Document{
		battlenet.Bracket2v2: {
			"rating":                  float64(1500),
			"season_match_statistics": battlenet.Document{"won": float64(10)},
		},
		battlenet.Bracket3v3: {
			"rating":                  float64(1720),
			"season_match_statistics": battlenet.Document{"won": float64(25)},
		},
		battlenet.BracketRBG: {
			"rating":                  float64(384),
			"season_match_statistics": battlenet.Document{"won": float64(3)},
		},
	}

	stats := PvP(summary, brackets)

	if stats.HonorLevel != 55 {
		t.Errorf("HonorLevel = %d", stats.HonorLevel)
	}
	if stats.Rating2v2 != 1500 || stats.Rating3v3 != 1720 || stats.RatingRBG != 384 {
		t.Errorf("ratings = %d %d %d", stats.Rating2v2, stats.Rating3v3, stats.RatingRBG)
	}
	if stats.WinsSeason != 38 {
		t.Errorf("WinsSeason = %d", stats.WinsSeason)
	}
}

func TestPvP_UnratedBracketExcluded(t *testing.T) {
	// A bracket document without a rating field contributes neither a
	// rating nor its win count.
	brackets := map[battlenet.Bracket]battlenet.Document{
		battlenet.Bracket2v2: {
			"rating":                  float64(1500),
			"season_match_statistics": battlenet.Document{"won": float64(10)},
		},
		battlenet.Bracket3v3: {
			"season_match_statistics": battlenet.Document{"won": float64(99)},
		},
	}

	stats := PvP(battlenet.Document{}, brackets)

	if stats.Rating3v3 != 0 {
		t.Errorf("expected unrated 3v3 rating 0, got %d", stats.Rating3v3)
	}
	if stats.WinsSeason != 10 {
		t.Errorf("expected wins from rated brackets only, got %d", stats.WinsSeason)
	}
}

func TestPvP_EmptyInputs(t *testing.T) {
	stats := PvP(battlenet.Document{}, nil)

	if stats != (PvPStats{}) {
		t.Errorf("expected zero-valued group, got %+v", stats)
	}
}

func TestPvP_HonorWithoutBrackets(t *testing.T) {
	stats := PvP(battlenet.Document{"honor_level": float64(12)}, map[battlenet.Bracket]battlenet.Document{
		battlenet.Bracket2v2: {},
		battlenet.Bracket3v3: {},
		battlenet.BracketRBG: {},
	})

	if stats.HonorLevel != 12 {
		t.Errorf("HonorLevel = %d", stats.HonorLevel)
	}
	if stats.WinsSeason != 0 {
		t.Errorf("WinsSeason = %d", stats.WinsSeason)
	}
}
