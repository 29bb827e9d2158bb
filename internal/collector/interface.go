package collector

import (
	"context"

	"codeberg.org/mutker/armoryd/internal/battlenet"
)

// API is the slice of the Battle.net client the collector consumes.
// Every call returns a document that may be empty; errors are
// cycle-fatal (authentication, cancellation) by the client's contract.
type API interface {
	CharacterProfile(ctx context.Context, realm, name string) (battlenet.Document, error)
	CharacterEquipment(ctx context.Context, realm, name string) (battlenet.Document, error)
	CharacterAchievements(ctx context.Context, realm, name string) (battlenet.Document, error)
	CharacterPvPSummary(ctx context.Context, realm, name string) (battlenet.Document, error)
	CharacterPvPBracket(ctx context.Context, realm, name string, bracket battlenet.Bracket) (battlenet.Document, error)
	CharacterRaids(ctx context.Context, realm, name string) (battlenet.Document, error)
	MythicKeystoneProfile(ctx context.Context, realm, name string) (battlenet.Document, error)
	MythicKeystoneSeason(ctx context.Context, realm, name string, seasonID int) (battlenet.Document, error)
	RealmInfo(ctx context.Context, realm string) (battlenet.Document, error)
	ConnectedRealm(ctx context.Context, id int) (battlenet.Document, error)
}

var _ API = (*battlenet.Client)(nil)
