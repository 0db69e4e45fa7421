package contact

import "fmt"

// SurrogatedItem is a persistent item with a surrogate key. A zero key
// means the item has not been saved.
type SurrogatedItem interface {
	GetKey() int64
	WasSaved() bool
	FormatValue() string
	Description() string
}

// HashedItem is an immutable item uniquely identified by a hash of its
// canonical value form. A zero hash key means "not yet computed".
type HashedItem interface {
	SurrogatedItem
	PrepareHash()
	GetHashKey() int64
}

// Item carries the two keys every persistent entity holds: the surrogate
// key assigned by the store on first insert, and the content hash of the
// canonical form. Entities embed it.
type Item struct {
	Key     int64 `json:"key"`
	HashKey int64 `json:"-"`
}

func (i *Item) GetKey() int64     { return i.Key }
func (i *Item) GetHashKey() int64 { return i.HashKey }
func (i *Item) WasSaved() bool    { return i.Key > 0 }

// markDirty invalidates both keys. Called by every setter that changes a
// field participating in the canonical form: the next save re-resolves
// identity from scratch.
func (i *Item) markDirty() {
	i.HashKey = 0
	i.Key = 0
}

func describe(typeName, value string) string {
	return fmt.Sprintf("%s='%s'", typeName, value)
}
