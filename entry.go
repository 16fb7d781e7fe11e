package paladins

import "time"

// cacheRefreshInterval is how long a CacheEntry stays fresh. Staleness is
// detected lazily, on access.
const cacheRefreshInterval = 12 * time.Hour

// CacheEntry is a snapshot of all champion and device reference data in a
// single language. Entries are immutable after construction, with the sole
// exception of a champion's skins being lazily refetched and swapped.
//
// The partitioned Items, Cards and Talents lookups are views over the same
// device collection held by Devices.
type CacheEntry struct {
	Language  Language
	CreatedAt time.Time

	Champions *Lookup[*Champion]
	Devices   *Lookup[*Device]
	Items     *Lookup[*Device]
	Cards     *Lookup[*Device]
	Talents   *Lookup[*Device]
	Skins     *Lookup[*Skin]
}

// newEmptyEntry builds an entry with empty lookups. Resolving anything
// against it yields placeholder objects. Used when the cache is disabled.
func newEmptyEntry(language Language, createdAt time.Time) *CacheEntry {
	return &CacheEntry{
		Language:  language,
		CreatedAt: createdAt,
		Champions: NewLookup[*Champion](),
		Devices:   NewLookup[*Device](),
		Items:     NewLookup[*Device](),
		Cards:     NewLookup[*Device](),
		Talents:   NewLookup[*Device](),
		Skins:     NewLookup[*Skin](),
	}
}

func newCacheEntry(
	client *Client,
	language Language,
	createdAt time.Time,
	champions []championResponse,
	devices []deviceResponse,
	skins []championSkinResponse,
) *CacheEntry {
	entry := newEmptyEntry(language, createdAt)

	championDevices := make(map[int][]*Device)
	for _, resp := range devices {
		device := newDevice(resp)
		entry.Devices.Add(device)
		switch device.Type {
		case DeviceCard:
			entry.Cards.Add(device)
			championDevices[resp.ChampionID] = append(championDevices[resp.ChampionID], device)
		case DeviceTalent:
			entry.Talents.Add(device)
			championDevices[resp.ChampionID] = append(championDevices[resp.ChampionID], device)
		case DeviceItem:
			entry.Items.Add(device)
		}
	}

	championSkins := make(map[int][]championSkinResponse)
	for _, resp := range skins {
		championSkins[resp.ChampionID] = append(championSkins[resp.ChampionID], resp)
	}

	for _, resp := range champions {
		champion := newChampion(
			client, language, resp, championDevices[resp.ID], championSkins[resp.ID])
		entry.Champions.Add(champion)
		for _, skin := range champion.Skins.All() {
			entry.Skins.Add(skin)
		}
	}
	return entry
}

// stale reports whether the entry has outlived the refresh interval.
func (e *CacheEntry) stale(now time.Time) bool {
	return !now.Before(e.CreatedAt.Add(cacheRefreshInterval))
}
