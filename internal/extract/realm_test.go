package extract

import (
	"testing"

	"codeberg.org/mutker/armoryd/internal/battlenet"
)

func TestRealm_FullDocuments(t *testing.T) {
	info := battlenet.Document{
		"status":     battlenet.Document{"name": "Up"},
		"population": battlenet.Document{"name": "Full"},
		"timezone":   "Europe/Paris",
		"locale":     "enGB",
	}
	connected := battlenet.Document{
		"has_queue":  true,
		"queue_time": float64(15),
	}

	s := Realm(info, connected)

	if s.Status != "Up" || s.Population != "Full" {
		t.Errorf("status/population = %q %q", s.Status, s.Population)
	}
	if s.Queue != 15 {
		t.Errorf("Queue = %d", s.Queue)
	}
	if s.Timezone != "Europe/Paris" || s.Locale != "enGB" {
		t.Errorf("timezone/locale = %q %q", s.Timezone, s.Locale)
	}
}

func TestRealm_EmptyDocumentsDefaultUnknown(t *testing.T) {
	s := Realm(battlenet.Document{}, battlenet.Document{})

	if s.Status != "Unknown" || s.Population != "Unknown" {
		t.Errorf("expected Unknown defaults, got %q %q", s.Status, s.Population)
	}
	if s.Timezone != "Unknown" || s.Locale != "Unknown" {
		t.Errorf("expected Unknown defaults, got %q %q", s.Timezone, s.Locale)
	}
	if s.Queue != 0 {
		t.Errorf("Queue = %d", s.Queue)
	}
}

func TestRealm_QueueRequiresFlag(t *testing.T) {
	// A reported queue_time without has_queue is stale data and stays 0.
	connected := battlenet.Document{
		"has_queue":  false,
		"queue_time": float64(30),
	}

	if s := Realm(battlenet.Document{}, connected); s.Queue != 0 {
		t.Errorf("expected queue 0 without has_queue, got %d", s.Queue)
	}
}
