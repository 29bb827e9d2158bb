package battlenet

import (
	"context"
	"fmt"
	"strings"

	"codeberg.org/mutker/armoryd/internal/errors"
)

// Bracket is a rated PvP matchmaking category
type Bracket string

const (
	Bracket2v2 Bracket = "2v2"
	Bracket3v3 Bracket = "3v3"
	BracketRBG Bracket = "rbg"
)

// Brackets lists the rated categories in fetch order
var Brackets = []Bracket{Bracket2v2, Bracket3v3, BracketRBG}

func (c *Client) characterPath(realm, name string) string {
	return fmt.Sprintf("/profile/wow/character/%s/%s", RealmSlug(realm), strings.ToLower(name))
}

// CharacterProfile fetches the character summary document
func (c *Client) CharacterProfile(ctx context.Context, realm, name string) (Document, error) {
	return c.fetch(ctx, c.characterPath(realm, name), NamespaceProfile)
}

// CharacterEquipment fetches the equipped item list
func (c *Client) CharacterEquipment(ctx context.Context, realm, name string) (Document, error) {
	return c.fetch(ctx, c.characterPath(realm, name)+"/equipment", NamespaceProfile)
}

// CharacterAchievements fetches the achievement summary
func (c *Client) CharacterAchievements(ctx context.Context, realm, name string) (Document, error) {
	return c.fetch(ctx, c.characterPath(realm, name)+"/achievements", NamespaceProfile)
}

// CharacterPvPSummary fetches honor level and bracket references
func (c *Client) CharacterPvPSummary(ctx context.Context, realm, name string) (Document, error) {
	return c.fetch(ctx, c.characterPath(realm, name)+"/pvp-summary", NamespaceProfile)
}

// CharacterPvPBracket fetches one rated bracket's statistics
func (c *Client) CharacterPvPBracket(ctx context.Context, realm, name string, bracket Bracket) (Document, error) {
	return c.fetch(ctx, c.characterPath(realm, name)+"/pvp-bracket/"+string(bracket), NamespaceProfile)
}

// CharacterRaids fetches the raid encounter tree
func (c *Client) CharacterRaids(ctx context.Context, realm, name string) (Document, error) {
	return c.fetch(ctx, c.characterPath(realm, name)+"/encounters/raids", NamespaceProfile)
}

// MythicKeystoneProfile fetches the keystone profile, including the
// current period's best runs
func (c *Client) MythicKeystoneProfile(ctx context.Context, realm, name string) (Document, error) {
	return c.fetch(ctx, c.characterPath(realm, name)+"/mythic-keystone-profile", NamespaceProfile)
}

// MythicKeystoneSeason fetches one season's best runs
func (c *Client) MythicKeystoneSeason(ctx context.Context, realm, name string, seasonID int) (Document, error) {
	path := fmt.Sprintf("%s/mythic-keystone-profile/season/%d", c.characterPath(realm, name), seasonID)
	return c.fetch(ctx, path, NamespaceProfile)
}

// RealmInfo fetches one realm's description, including the connected
// realm reference
func (c *Client) RealmInfo(ctx context.Context, realm string) (Document, error) {
	return c.fetch(ctx, "/data/wow/realm/"+RealmSlug(realm), NamespaceDynamic)
}

// ConnectedRealm fetches the connected-realm cluster by id
func (c *Client) ConnectedRealm(ctx context.Context, id int) (Document, error) {
	return c.fetch(ctx, fmt.Sprintf("/data/wow/connected-realm/%d", id), NamespaceDynamic)
}

// RealmIndex fetches the region's realm list
func (c *Client) RealmIndex(ctx context.Context) (Document, error) {
	return c.fetch(ctx, "/data/wow/realm/index", NamespaceDynamic)
}

// Verify confirms the credentials reach the API: the realm index must
// come back non-empty. Run once at startup before the poll loop.
func (c *Client) Verify(ctx context.Context) error {
	errFactory := errors.New()

	doc, err := c.lookup(ctx, "/data/wow/realm/index", NamespaceDynamic)
	if err != nil {
		return errFactory.Wrap(ErrCannotConnect, err)
	}
	if !doc.Has("realms") {
		return errFactory.New(ErrCannotConnect)
	}

	return nil
}

// CheckCharacter confirms a configured character resolves to a live
// profile on its realm
func (c *Client) CheckCharacter(ctx context.Context, realm, name string) error {
	errFactory := errors.New()

	doc, err := c.lookup(ctx, c.characterPath(realm, name), NamespaceProfile)
	if err != nil {
		return errFactory.Wrap(ErrCannotConnect, err)
	}
	if doc.Str("name") == "" {
		return errFactory.WithData(ErrCharacterNotFound, struct {
			Realm string
			Name  string
		}{realm, name})
	}

	return nil
}
