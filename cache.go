package paladins

import (
	"context"
	"sync"
	"time"
)

// CachePolicy controls whether a fetched CacheEntry gets stored.
type CachePolicy int

const (
	// CacheDefault follows the cache enabled/disabled setting.
	CacheDefault CachePolicy = iota
	// CacheAlways stores the entry even with the cache disabled.
	CacheAlways
	// CacheNever fetches without storing.
	CacheNever
)

// DataCache keeps per-language CacheEntry snapshots of champion and device
// reference data on top of the raw transport. Each language refreshes
// independently; a per-language mutex guarantees a single upstream fetch no
// matter how many callers hit a stale entry concurrently.
type DataCache struct {
	*Endpoint

	client *Client

	mu              sync.Mutex
	entries         map[Language]*CacheEntry
	refreshMu       map[Language]*sync.Mutex
	enabled         bool
	defaultLanguage Language
}

func newDataCache(endpoint *Endpoint) *DataCache {
	return &DataCache{
		Endpoint:        endpoint,
		entries:         make(map[Language]*CacheEntry),
		refreshMu:       make(map[Language]*sync.Mutex),
		enabled:         true,
		defaultLanguage: LanguageEnglish,
	}
}

// SetDefaultLanguage changes the language used when a call doesn't specify
// one. Invalid languages are ignored.
func (dc *DataCache) SetDefaultLanguage(language Language) {
	if !language.Valid() {
		return
	}
	dc.mu.Lock()
	dc.defaultLanguage = language
	dc.mu.Unlock()
}

// DefaultLanguage returns the current default language.
func (dc *DataCache) DefaultLanguage() Language {
	dc.mu.Lock()
	defer dc.mu.Unlock()
	return dc.defaultLanguage
}

// SetCacheEnabled toggles entry storage. Disabling the cache keeps already
// stored entries alive; they just stop being consulted for new data.
func (dc *DataCache) SetCacheEnabled(enabled bool) {
	dc.mu.Lock()
	dc.enabled = enabled
	dc.mu.Unlock()
}

// CacheEnabled reports whether fetched entries get stored.
func (dc *DataCache) CacheEnabled() bool {
	dc.mu.Lock()
	defer dc.mu.Unlock()
	return dc.enabled
}

// Entry returns the stored entry for a language, when one exists. No
// fetching happens.
func (dc *DataCache) Entry(language Language) (*CacheEntry, bool) {
	dc.mu.Lock()
	defer dc.mu.Unlock()
	entry, ok := dc.entries[language]
	return entry, ok
}

// Initialize eagerly fetches cache entries for the given languages, or the
// default language when none are given.
func (dc *DataCache) Initialize(ctx context.Context, languages ...Language) error {
	if len(languages) == 0 {
		languages = []Language{dc.DefaultLanguage()}
	}
	for _, language := range languages {
		if _, err := dc.fetchEntry(ctx, language, false, CacheDefault); err != nil {
			return err
		}
	}
	return nil
}

func (dc *DataCache) resolveLanguage(language Language) Language {
	if !language.Valid() {
		return dc.DefaultLanguage()
	}
	return language
}

func (dc *DataCache) languageMutex(language Language) *sync.Mutex {
	dc.mu.Lock()
	defer dc.mu.Unlock()
	mu, ok := dc.refreshMu[language]
	if !ok {
		mu = &sync.Mutex{}
		dc.refreshMu[language] = mu
	}
	return mu
}

// ensureEntry provides the entry object constructors resolve reference data
// against. With the cache disabled it hands out a fresh empty entry, so all
// resolution falls back to placeholders without any upstream traffic.
func (dc *DataCache) ensureEntry(ctx context.Context, language Language) (*CacheEntry, error) {
	language = dc.resolveLanguage(language)
	if !dc.CacheEnabled() {
		return newEmptyEntry(language, dc.now().UTC()), nil
	}
	entry, err := dc.fetchEntry(ctx, language, false, CacheDefault)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		// upstream had nothing for this language
		return newEmptyEntry(language, dc.now().UTC()), nil
	}
	return entry, nil
}

// fetchEntry returns the entry for a language, fetching or refreshing it as
// needed. A nil entry with a nil error means the upstream returned no data.
//
// The per-language mutex makes concurrent callers of a stale or absent
// entry wait for a single fetch; a fresh entry is returned without any
// upstream requests. A failed refresh over a stale entry serves the stale
// data instead of failing.
func (dc *DataCache) fetchEntry(
	ctx context.Context, language Language, forceRefresh bool, policy CachePolicy,
) (*CacheEntry, error) {
	language = dc.resolveLanguage(language)
	langMu := dc.languageMutex(language)
	langMu.Lock()
	defer langMu.Unlock()

	dc.mu.Lock()
	entry := dc.entries[language]
	enabled := dc.enabled
	dc.mu.Unlock()

	now := dc.now().UTC()
	if !forceRefresh && entry != nil && !entry.stale(now) {
		return entry, nil
	}

	fresh, err := dc.fetchFromUpstream(ctx, language, now)
	if err != nil {
		if entry != nil {
			dc.logger.Warn("cache refresh failed, serving stale entry",
				"language", language.String(), "error", err)
			return entry, nil
		}
		return nil, err
	}
	store := enabled
	switch policy {
	case CacheAlways:
		store = true
	case CacheNever:
		store = false
	}
	if store && fresh != nil {
		dc.mu.Lock()
		dc.entries[language] = fresh
		dc.mu.Unlock()
	}
	return fresh, nil
}

// fetchFromUpstream pulls the three reference data sets a cache entry is
// built from. Uses up three requests.
func (dc *DataCache) fetchFromUpstream(
	ctx context.Context, language Language, now time.Time,
) (*CacheEntry, error) {
	dc.logger.Info("refreshing champion information", "language", language.String())

	rawChampions, err := dc.Request(ctx, "getchampions", int(language))
	if err != nil {
		return nil, err
	}
	var champions []championResponse
	if err := unmarshalResponse(rawChampions, &champions); err != nil {
		return nil, err
	}

	rawDevices, err := dc.Request(ctx, "getitems", int(language))
	if err != nil {
		return nil, err
	}
	var devices []deviceResponse
	if err := unmarshalResponse(rawDevices, &devices); err != nil {
		return nil, err
	}

	// -1 asks for skins of every champion at once
	rawSkins, err := dc.Request(ctx, "getchampionskins", -1, int(language))
	if err != nil {
		return nil, err
	}
	var skins []championSkinResponse
	if err := unmarshalResponse(rawSkins, &skins); err != nil {
		return nil, err
	}

	if len(champions) == 0 || len(devices) == 0 {
		return nil, nil
	}
	return newCacheEntry(dc.client, language, now, champions, devices, skins), nil
}

// GetChampionInfo fetches the champions, talents, cards, shop items and
// skins information snapshot.
//
// To preserve requests, the returned entry is cached for 12 hours per
// language; forceRefresh bypasses the cache. Uses up three requests each
// time the cache is refreshed.
func (dc *DataCache) GetChampionInfo(
	ctx context.Context, language Language, forceRefresh bool,
) (*CacheEntry, error) {
	return dc.GetChampionInfoWithPolicy(ctx, language, forceRefresh, CacheDefault)
}

// GetChampionInfoWithPolicy is GetChampionInfo with an explicit per-call
// storage decision, letting callers cache an entry with the cache disabled,
// or fetch one without storing it.
func (dc *DataCache) GetChampionInfoWithPolicy(
	ctx context.Context, language Language, forceRefresh bool, policy CachePolicy,
) (*CacheEntry, error) {
	entry, err := dc.fetchEntry(ctx, language, forceRefresh, policy)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, notFound("Champion information")
	}
	return entry, nil
}
