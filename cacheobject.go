package paladins

import "fmt"

// Entity is the common surface of every identifiable game object: champions,
// devices, skins, abilities and bare CacheObject placeholders all expose an
// ID and a Name, by which lookups are indexed.
type Entity interface {
	ID() int
	Name() string
}

// CacheObject is a minimal id+name placeholder, standing in for a rich object
// the cache couldn't resolve. A zero ID and an empty name are "default"
// values, meaning the corresponding piece of information is missing.
type CacheObject struct {
	id   int
	name string
}

// NewCacheObject builds a placeholder from whatever information is at hand.
// Either argument may be left at its default.
func NewCacheObject(id int, name string) *CacheObject {
	return &CacheObject{id: id, name: name}
}

func (o *CacheObject) ID() int { return o.id }

func (o *CacheObject) Name() string { return o.name }

// IsDefaultID reports whether the ID is missing.
func (o *CacheObject) IsDefaultID() bool { return o.id == 0 }

// IsDefaultName reports whether the name is missing.
func (o *CacheObject) IsDefaultName() bool { return o.name == "" }

func (o *CacheObject) String() string {
	if o.name == "" {
		return fmt.Sprintf("Unknown(%d)", o.id)
	}
	return fmt.Sprintf("%s(%d)", o.name, o.id)
}

// EntitiesEqual compares two entities by ID when both carry one, falling
// back to a name comparison when either side has only a name.
func EntitiesEqual(a, b Entity) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.ID() != 0 && b.ID() != 0 {
		return a.ID() == b.ID()
	}
	return a.Name() == b.Name()
}
