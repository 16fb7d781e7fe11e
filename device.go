package paladins

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	deviceAbilityPattern = regexp.MustCompile(`(?s)^\[(.+?)\] (.*)`)
	// "{scale=base|scale}" for per-level values, "{flat}" for constants
	deviceScalePattern = regexp.MustCompile(`\{scale=(\d+|0\.\d+)\|(\d+|0\.\d+)\}|\{(\d+)\}`)
)

// Device is a single purchasable or equippable game piece: a shop item, a
// loadout card or a champion talent. The Type field tells them apart.
type Device struct {
	id   int
	name string

	Type        DeviceType
	Description string
	IconURL     string
	Cooldown    int
	Price       int

	// UnlockedAt is the champion mastery level required to unlock a talent.
	// Zero for cards and shop items.
	UnlockedAt int

	// Ability the device affects. For cards this starts out as a name-only
	// placeholder and is swapped for the rich Ability once the owning
	// champion is built. Items keep an empty placeholder.
	Ability Entity

	// Champion the device belongs to, once attached. Shop items stay with
	// an empty placeholder.
	Champion Entity

	// base and scale drive the per-level value substituted into the
	// description. A flat value has base == scale and scales with level 0.
	base  float64
	scale float64
	flat  bool
}

func (d *Device) ID() int { return d.id }

func (d *Device) Name() string { return d.name }

func deviceTypeOf(itemType string) DeviceType {
	switch {
	case strings.HasPrefix(itemType, "Card Vendor Rank"):
		return DeviceCard
	case strings.Contains(itemType, "Talent"):
		return DeviceTalent
	case strings.HasPrefix(itemType, "Inventory Vendor"):
		return DeviceItem
	}
	return DeviceUndefined
}

func newDevice(resp deviceResponse) *Device {
	device := &Device{
		id:         resp.ItemID,
		name:       resp.DeviceName,
		Type:       deviceTypeOf(resp.ItemType),
		IconURL:    resp.IconURL,
		Cooldown:   resp.RechargeSeconds,
		Price:      resp.Price,
		UnlockedAt: resp.TalentRewardLevel,
		Ability:    NewCacheObject(0, ""),
		Champion:   NewCacheObject(0, ""),
	}
	desc := strings.TrimSpace(resp.Description)
	if match := deviceAbilityPattern.FindStringSubmatch(desc); match != nil {
		device.Ability = NewCacheObject(0, match[1])
		desc = match[2]
	}
	if match := deviceScalePattern.FindStringSubmatch(desc); match != nil {
		if match[3] != "" {
			value, _ := strconv.ParseFloat(match[3], 64)
			device.base, device.scale, device.flat = value, value, true
		} else {
			device.base, _ = strconv.ParseFloat(match[1], 64)
			device.scale, _ = strconv.ParseFloat(match[2], 64)
		}
	}
	device.Description = desc
	return device
}

// attachChampion binds the device to its champion, upgrading the ability
// placeholder to the champion's rich Ability when the names line up.
func (d *Device) attachChampion(champion *Champion) {
	d.Champion = champion
	if name := d.Ability.Name(); name != "" {
		if ability, ok := champion.Abilities.Get(name); ok {
			d.Ability = ability
		}
	}
}

// ScaleAt returns the device's numeric effect value at the given level.
func (d *Device) ScaleAt(level int) float64 {
	if d.flat {
		return d.base
	}
	return d.base + d.scale*float64(level)
}

// DescriptionAt renders the description with the scaling placeholder
// substituted for the value at the given level.
func (d *Device) DescriptionAt(level int) string {
	return deviceScalePattern.ReplaceAllStringFunc(d.Description, func(string) string {
		return strconv.FormatFloat(d.ScaleAt(level), 'f', -1, 64)
	})
}

func (d *Device) String() string {
	return fmt.Sprintf("%s: %s(%d)", d.Type, d.name, d.id)
}

// LoadoutCard pairs a loadout card with the points allocated to it.
type LoadoutCard struct {
	// Card is the underlying device, or a placeholder with incomplete cache.
	Card   Entity
	Points int
}

func (c LoadoutCard) String() string {
	return fmt.Sprintf("%s: %d", c.Card.Name(), c.Points)
}

// Description renders the card's description at the allocated point level,
// when the rich device is available.
func (c LoadoutCard) Description() string {
	if device, ok := c.Card.(*Device); ok {
		return device.DescriptionAt(c.Points)
	}
	return ""
}

// Loadout is a player-created champion deck.
type Loadout struct {
	Player *PartialPlayer

	// Champion the loadout belongs to, or a placeholder with
	// incomplete cache.
	Champion Entity

	DeckID   int
	DeckName string
	Language Language
	Cards    []LoadoutCard
}

func newLoadout(player *PartialPlayer, language Language, entry *CacheEntry, resp loadoutResponse) *Loadout {
	loadout := &Loadout{
		Player:   player,
		Champion: entry.Champions.Resolve(resp.ChampionID, resp.ChampionName),
		DeckID:   resp.DeckID,
		DeckName: resp.DeckName,
		Language: language,
	}
	for _, item := range resp.LoadoutItems {
		loadout.Cards = append(loadout.Cards, LoadoutCard{
			Card:   entry.Cards.Resolve(item.ItemID, item.ItemName),
			Points: item.Points,
		})
	}
	return loadout
}

// MatchItem is a shop item bought during a match, with its purchase level.
type MatchItem struct {
	// Item is the underlying device, or a placeholder with incomplete cache.
	Item  Entity
	Level int
}

func (i MatchItem) String() string {
	return fmt.Sprintf("%s: %d", i.Item.Name(), i.Level)
}

// MatchLoadout is the loadout a player brought into a match: five cards and
// a talent.
type MatchLoadout struct {
	Cards  []LoadoutCard
	Talent Entity
}

// newMatchLoadout builds the loadout from six id+level pairs, where the
// sixth slot carries the talent.
func newMatchLoadout(entry *CacheEntry, pairs [][2]int) MatchLoadout {
	var loadout MatchLoadout
	for i, pair := range pairs {
		id, level := pair[0], pair[1]
		if id == 0 {
			continue
		}
		if i == len(pairs)-1 {
			loadout.Talent = entry.Talents.Resolve(id, "")
			continue
		}
		loadout.Cards = append(loadout.Cards, LoadoutCard{
			Card:   entry.Cards.Resolve(id, ""),
			Points: level,
		})
	}
	return loadout
}
