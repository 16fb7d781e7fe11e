package paladins

import (
	"fmt"
	"sort"
	"strings"

	"github.com/adrg/strutil"
	"github.com/adrg/strutil/metrics"
)

// FuzzyMatch pairs a matched entity with its similarity score.
type FuzzyMatch struct {
	Value Entity
	Score float64
}

// similarity returns a normalized [0, 1] similarity ratio between two
// already-lowercased names.
func similarity(a, b string) float64 {
	return strutil.Similarity(a, b, metrics.NewSorensenDice())
}

func validateFuzzyArgs(limit int, cutoff float64) error {
	if limit < 1 {
		return fmt.Errorf("limit has to be a positive non-zero integer, got %d", limit)
	}
	if cutoff < 0 || cutoff > 1 {
		return fmt.Errorf("cutoff has to be in the 0-1 range, got %g", cutoff)
	}
	return nil
}

// Lookup indexes entities by their ID and (case-insensitively) by their name,
// preserving insertion order. The key function maps each stored item to the
// entity it should be indexed under.
//
// Besides the primary index, a Lookup keeps a shadow cache of synthesized
// CacheObject placeholders, created by Resolve for IDs and names the primary
// index doesn't know. Resolving the same unknown ID twice yields the same
// placeholder pointer.
type Lookup[T Entity] struct {
	items  []T
	byID   map[int]T
	byName map[string]T

	cachedID   map[int]*CacheObject
	cachedName map[string]*CacheObject

	key func(T) Entity
}

// NewLookup builds an empty Lookup indexed directly by the stored entities.
func NewLookup[T Entity]() *Lookup[T] {
	return NewLookupKeyed[T](func(item T) Entity { return item })
}

// NewLookupKeyed builds an empty Lookup with a custom key function.
func NewLookupKeyed[T Entity](key func(T) Entity) *Lookup[T] {
	return &Lookup[T]{
		byID:       make(map[int]T),
		byName:     make(map[string]T),
		cachedID:   make(map[int]*CacheObject),
		cachedName: make(map[string]*CacheObject),
		key:        key,
	}
}

// Add indexes an item. Later additions overwrite earlier index slots sharing
// the same ID or name, but both remain iterable via All.
func (l *Lookup[T]) Add(item T) {
	l.items = append(l.items, item)
	k := l.key(item)
	l.byID[k.ID()] = item
	l.byName[strings.ToLower(k.Name())] = item
}

// All returns the indexed items in insertion order. The returned slice is
// shared; callers must not modify it.
func (l *Lookup[T]) All() []T {
	return l.items
}

func (l *Lookup[T]) Len() int {
	return len(l.items)
}

// Get looks an item up by its name, case-insensitively.
func (l *Lookup[T]) Get(name string) (T, bool) {
	item, ok := l.byName[strings.ToLower(name)]
	return item, ok
}

// GetByID looks an item up by its ID.
func (l *Lookup[T]) GetByID(id int) (T, bool) {
	item, ok := l.byID[id]
	return item, ok
}

// Cached returns the placeholder objects synthesized by Resolve so far.
func (l *Lookup[T]) Cached() []*CacheObject {
	seen := make(map[*CacheObject]struct{}, len(l.cachedID)+len(l.cachedName))
	out := make([]*CacheObject, 0, len(l.cachedID)+len(l.cachedName))
	for _, obj := range l.cachedID {
		if _, dup := seen[obj]; !dup {
			seen[obj] = struct{}{}
			out = append(out, obj)
		}
	}
	for _, obj := range l.cachedName {
		if _, dup := seen[obj]; !dup {
			seen[obj] = struct{}{}
			out = append(out, obj)
		}
	}
	return out
}

// Resolve substitutes the given ID and name with a rich indexed entity when
// one is known, and falls back to a shadow CacheObject placeholder otherwise.
// Placeholders carrying partial information are merged when the missing half
// arrives; an ID or name that stays unknown keeps resolving to the same
// placeholder instance.
func (l *Lookup[T]) Resolve(id int, name string) Entity {
	if id != 0 {
		if item, ok := l.byID[id]; ok {
			return item
		}
	} else if name != "" {
		if item, ok := l.byName[strings.ToLower(name)]; ok {
			return item
		}
	}
	idHit := false
	if id != 0 {
		if obj, ok := l.cachedID[id]; ok {
			idHit = true
			if !obj.IsDefaultName() || name == "" {
				return obj
			}
		}
	}
	if name != "" && !idHit {
		if obj, ok := l.cachedName[strings.ToLower(name)]; ok {
			if !obj.IsDefaultID() || id == 0 {
				return obj
			}
		}
	}
	// A partial placeholder exists and the missing half just arrived:
	// replace it with a merged one in both maps.
	obj := NewCacheObject(id, name)
	if !obj.IsDefaultID() {
		l.cachedID[obj.ID()] = obj
	}
	if !obj.IsDefaultName() {
		l.cachedName[strings.ToLower(obj.Name())] = obj
	}
	return obj
}

// fuzzyScores scans the name index (and optionally the shadow cache) in a
// deterministic order and collects entries scoring at least cutoff.
func (l *Lookup[T]) fuzzyScores(name string, cutoff float64, withCached bool) []FuzzyMatch {
	target := strings.ToLower(name)
	var scores []FuzzyMatch
	seen := make(map[string]struct{}, len(l.items))
	for _, item := range l.items {
		key := strings.ToLower(l.key(item).Name())
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		indexed, ok := l.byName[key]
		if !ok {
			continue
		}
		if score := similarity(key, target); score >= cutoff {
			scores = append(scores, FuzzyMatch{Value: indexed, Score: score})
		}
	}
	if withCached {
		cachedKeys := make([]string, 0, len(l.cachedName))
		for key := range l.cachedName {
			if _, dup := seen[key]; !dup {
				cachedKeys = append(cachedKeys, key)
			}
		}
		sort.Strings(cachedKeys)
		for _, key := range cachedKeys {
			if score := similarity(key, target); score >= cutoff {
				scores = append(scores, FuzzyMatch{Value: l.cachedName[key], Score: score})
			}
		}
	}
	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].Score > scores[j].Score
	})
	return scores
}

// FuzzyMatchesWithScores performs a case-insensitive fuzzy name lookup,
// returning up to limit entities with a similarity score of at least cutoff,
// sorted by descending score. With withCached set, shadow placeholders
// synthesized by Resolve participate too.
func (l *Lookup[T]) FuzzyMatchesWithScores(
	name string, limit int, cutoff float64, withCached bool,
) ([]FuzzyMatch, error) {
	if err := validateFuzzyArgs(limit, cutoff); err != nil {
		return nil, err
	}
	scores := l.fuzzyScores(name, cutoff, withCached)
	if len(scores) > limit {
		scores = scores[:limit]
	}
	return scores, nil
}

// FuzzyMatches is FuzzyMatchesWithScores with the scores dropped.
func (l *Lookup[T]) FuzzyMatches(
	name string, limit int, cutoff float64, withCached bool,
) ([]Entity, error) {
	scores, err := l.FuzzyMatchesWithScores(name, limit, cutoff, withCached)
	if err != nil {
		return nil, err
	}
	out := make([]Entity, len(scores))
	for i, match := range scores {
		out[i] = match.Value
	}
	return out, nil
}

// Fuzzy returns the single best fuzzy match, or nil when nothing scores at
// least cutoff.
func (l *Lookup[T]) Fuzzy(name string, cutoff float64, withCached bool) (Entity, error) {
	matches, err := l.FuzzyMatches(name, 1, cutoff, withCached)
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return nil, nil
	}
	return matches[0], nil
}

// LookupGroup is a one-to-many Lookup: items sharing a key entity are
// grouped under the same ID and name slots. Used for collections like
// loadouts, which are naturally grouped by champion.
type LookupGroup[T any] struct {
	items  []T
	byID   map[int][]T
	byName map[string][]T
	names  []string
	key    func(T) Entity
}

// NewLookupGroup builds an empty LookupGroup with the given key function.
func NewLookupGroup[T any](key func(T) Entity) *LookupGroup[T] {
	return &LookupGroup[T]{
		byID:   make(map[int][]T),
		byName: make(map[string][]T),
		key:    key,
	}
}

// Add indexes an item under its key entity's group.
func (g *LookupGroup[T]) Add(item T) {
	g.items = append(g.items, item)
	k := g.key(item)
	g.byID[k.ID()] = append(g.byID[k.ID()], item)
	lower := strings.ToLower(k.Name())
	if _, ok := g.byName[lower]; !ok {
		g.names = append(g.names, lower)
	}
	g.byName[lower] = append(g.byName[lower], item)
}

// All returns every indexed item in insertion order.
func (g *LookupGroup[T]) All() []T {
	return g.items
}

func (g *LookupGroup[T]) Len() int {
	return len(g.items)
}

// Get returns the group stored under the given name, case-insensitively.
func (g *LookupGroup[T]) Get(name string) ([]T, bool) {
	group, ok := g.byName[strings.ToLower(name)]
	return group, ok
}

// GetByID returns the group stored under the given ID.
func (g *LookupGroup[T]) GetByID(id int) ([]T, bool) {
	group, ok := g.byID[id]
	return group, ok
}

// FuzzyMatches performs a fuzzy name lookup over the group keys, returning
// up to limit groups sorted by descending similarity score.
func (g *LookupGroup[T]) FuzzyMatches(name string, limit int, cutoff float64) ([][]T, error) {
	if err := validateFuzzyArgs(limit, cutoff); err != nil {
		return nil, err
	}
	target := strings.ToLower(name)
	type scored struct {
		key   string
		score float64
	}
	var scores []scored
	for _, key := range g.names {
		if score := similarity(key, target); score >= cutoff {
			scores = append(scores, scored{key: key, score: score})
		}
	}
	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].score > scores[j].score
	})
	if len(scores) > limit {
		scores = scores[:limit]
	}
	out := make([][]T, len(scores))
	for i, s := range scores {
		out[i] = g.byName[s.key]
	}
	return out, nil
}

// Fuzzy returns the single best-matching group, or nil when nothing scores
// at least cutoff.
func (g *LookupGroup[T]) Fuzzy(name string, cutoff float64) ([]T, error) {
	matches, err := g.FuzzyMatches(name, 1, cutoff)
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return nil, nil
	}
	return matches[0], nil
}
