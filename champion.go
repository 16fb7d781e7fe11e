package paladins

import (
	"context"
	"regexp"
	"sort"
	"strings"
)

var (
	abilityBreakPattern = regexp.MustCompile(` ?<br>(?:<br>)? ?`)
	// composite abilities carry two names and a combined description
	compositeNamePattern = regexp.MustCompile(`(?i)^([a-z ]+)(?:/\w+)? \(([a-z ]+)\)`)
	compositeDescPattern = regexp.MustCompile(`([A-Z][a-zA-Z ]+): ([\w\s\-'%,.]+)(?:<br><br>|\r?\n|$)`)
	abilityIconPattern   = regexp.MustCompile(`[a-z\-]+(\.(?:jpg|png))`)
)

// Ability is a single champion ability.
type Ability struct {
	id          int
	name        string
	Champion    *Champion
	Description string
	Type        AbilityType
	Cooldown    int
	IconURL     string
}

func (a *Ability) ID() int { return a.id }

func (a *Ability) Name() string { return a.name }

func newAbility(champion *Champion, resp abilityResponse) *Ability {
	desc := strings.ReplaceAll(strings.TrimSpace(resp.Description), "\r", "")
	return &Ability{
		id:          resp.ID,
		name:        resp.Summary,
		Champion:    champion,
		Description: abilityBreakPattern.ReplaceAllString(desc, "\n"),
		Type:        parseAbilityType(resp.DamageType),
		Cooldown:    resp.RechargeSeconds,
		IconURL:     resp.URL,
	}
}

// splitAbilities turns one ability payload into one or two Ability objects.
// Composite abilities (two abilities sharing a slot) are described in a
// single payload with both names joined and per-name description sections.
func splitAbilities(champion *Champion, resp abilityResponse) []*Ability {
	match := compositeNamePattern.FindStringSubmatch(resp.Summary)
	if match == nil {
		return []*Ability{newAbility(champion, resp)}
	}
	names := map[string]bool{match[1]: true, match[2]: true}
	var out []*Ability
	for _, section := range compositeDescPattern.FindAllStringSubmatch(resp.Description, -1) {
		name, desc := section[1], section[2]
		if !names[name] {
			continue
		}
		part := resp
		part.Summary = name
		part.Description = desc
		part.URL = abilityIconPattern.ReplaceAllString(
			resp.URL, strings.ReplaceAll(strings.ToLower(name), " ", "-")+"$1")
		out = append(out, newAbility(champion, part))
	}
	if len(out) == 0 {
		return []*Ability{newAbility(champion, resp)}
	}
	return out
}

// Skin is a champion skin.
type Skin struct {
	id       int
	name     string
	Champion *Champion
	Rarity   Rarity
}

func (s *Skin) ID() int { return s.id }

func (s *Skin) Name() string { return s.name }

func newSkin(champion *Champion, resp championSkinResponse) *Skin {
	name := resp.SkinName
	// skin names often carry the champion name as a suffix
	if strings.HasSuffix(name, champion.Name()) {
		name = strings.TrimSpace(strings.TrimSuffix(name, champion.Name()))
	}
	return &Skin{
		id:       resp.SkinID,
		name:     name,
		Champion: champion,
		Rarity:   ParseRarity(resp.Rarity),
	}
}

func newSkinLookup(champion *Champion, resps []championSkinResponse) *Lookup[*Skin] {
	skins := make([]*Skin, 0, len(resps))
	for _, resp := range resps {
		skins = append(skins, newSkin(champion, resp))
	}
	sort.SliceStable(skins, func(i, j int) bool {
		return skins[i].Rarity < skins[j].Rarity
	})
	lookup := NewLookup[*Skin]()
	for _, skin := range skins {
		lookup.Add(skin)
	}
	return lookup
}

// Champion holds a champion's reference data in a single language.
//
// A champion whose card and talent sets are incomplete (as sometimes happens
// right after a patch) reports Complete() == false; its data can still be
// read, but loadout validation against it is unreliable.
type Champion struct {
	client *Client

	id       int
	name     string
	language Language

	Title   string
	Role    string
	Lore    string
	IconURL string
	Health  int
	Speed   int

	Abilities *Lookup[*Ability]
	Cards     *Lookup[*Device]
	Talents   *Lookup[*Device]
	Skins     *Lookup[*Skin]
}

func (c *Champion) ID() int { return c.id }

func (c *Champion) Name() string { return c.name }

// Complete reports whether the champion's card and talent sets have the
// expected cardinality: exactly 16 cards and 3 talents.
func (c *Champion) Complete() bool {
	return c.Cards.Len() == 16 && c.Talents.Len() == 3
}

// cardSortKey pushes cards with an unresolved ability to the very end,
// grouping the rest by ability name.
func cardSortKey(card *Device) string {
	if _, ok := card.Ability.(*Ability); !ok {
		return "z" + card.Ability.Name()
	}
	return card.Ability.Name()
}

func newChampion(
	client *Client,
	language Language,
	resp championResponse,
	devices []*Device,
	skins []championSkinResponse,
) *Champion {
	champion := &Champion{
		client:   client,
		id:       resp.ID,
		name:     resp.Name,
		language: language,
		Title:    resp.Title,
		Role:     strings.ReplaceAll(strings.TrimPrefix(resp.Roles, "Paladins "), "er", ""),
		Lore:     resp.Lore,
		IconURL:  resp.IconURL,
		Health:   resp.Health,
		Speed:    resp.Speed,
	}

	champion.Abilities = NewLookup[*Ability]()
	for _, abilityResp := range resp.abilities() {
		if abilityResp.ID == 0 && abilityResp.Summary == "" {
			continue
		}
		for _, ability := range splitAbilities(champion, abilityResp) {
			champion.Abilities.Add(ability)
		}
	}

	var cards, talents []*Device
	for _, device := range devices {
		switch device.Type {
		case DeviceCard:
			cards = append(cards, device)
		case DeviceTalent:
			talents = append(talents, device)
		}
		// requires the abilities to exist already
		device.attachChampion(champion)
	}
	sort.SliceStable(talents, func(i, j int) bool {
		return talents[i].UnlockedAt < talents[j].UnlockedAt
	})
	sort.SliceStable(cards, func(i, j int) bool {
		return cards[i].Name() < cards[j].Name()
	})
	sort.SliceStable(cards, func(i, j int) bool {
		return cardSortKey(cards[i]) < cardSortKey(cards[j])
	})
	champion.Cards = NewLookup[*Device]()
	for _, card := range cards {
		champion.Cards.Add(card)
	}
	champion.Talents = NewLookup[*Device]()
	for _, talent := range talents {
		champion.Talents.Add(talent)
	}

	champion.Skins = newSkinLookup(champion, skins)
	return champion
}

// GetSkins refetches this champion's skins, refreshing the Skins lookup.
// Uses up a single request.
func (c *Champion) GetSkins(ctx context.Context) ([]*Skin, error) {
	raw, err := c.client.Request(ctx, "getchampionskins", c.id, int(c.language))
	if err != nil {
		return nil, err
	}
	var resps []championSkinResponse
	if err := unmarshalResponse(raw, &resps); err != nil {
		return nil, err
	}
	c.Skins = newSkinLookup(c, resps)
	return c.Skins.All(), nil
}
