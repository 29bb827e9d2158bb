package extract

import "codeberg.org/mutker/armoryd/internal/battlenet"

// RealmStatus is the server metric group for one tracked realm
type RealmStatus struct {
	Status     string
	Population string
	Queue      int
	Timezone   string
	Locale     string
}

// Realm reads status, population, timezone and locale from the realm
// document and the login queue from the connected-realm document. Text
// fields default to "Unknown" when absent; the queue is 0 minutes
// unless the connected realm reports has_queue.
func Realm(info, connected battlenet.Document) RealmStatus {
	status := RealmStatus{
		Status:     "Unknown",
		Population: "Unknown",
		Timezone:   "Unknown",
		Locale:     "Unknown",
	}

	if name := info.Doc("status").Str("name"); name != "" {
		status.Status = name
	}
	if name := info.Doc("population").Str("name"); name != "" {
		status.Population = name
	}
	if tz := info.Str("timezone"); tz != "" {
		status.Timezone = tz
	}
	if locale := info.Str("locale"); locale != "" {
		status.Locale = locale
	}
	if connected.Bool("has_queue") {
		status.Queue = connected.Int("queue_time")
	}

	return status
}

// Metrics emits the realm metric group under its canonical keys
func (s RealmStatus) Metrics() map[string]any {
	return map[string]any{
		"realm_status":     s.Status,
		"realm_population": s.Population,
		"realm_queue":      s.Queue,
		"realm_timezone":   s.Timezone,
		"realm_locale":     s.Locale,
	}
}
