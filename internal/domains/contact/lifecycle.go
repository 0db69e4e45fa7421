package contact

import (
	"context"
	"errors"
)

// Gateway is the capability set every persistence gateway exposes. Lookups
// that match nothing return the zero value with a nil error.
type Gateway[T any] interface {
	FindByID(ctx context.Context, id int64) (T, error)
	FindByHash(ctx context.Context, hashKey int64) (T, error)
	Save(ctx context.Context, item T) (T, error)
	Delete(ctx context.Context, item T) error
	FindAll(ctx context.Context) ([]T, error)
	Count(ctx context.Context) (int64, error)
}

// saveValue persists an immutable hashed value. An already-saved value is
// returned as-is; otherwise identity resolves through the content hash so
// equal values share one row. A lost insert race (unique hash_key) resolves
// by re-reading the winner.
func saveValue[T interface {
	HashedItem
	comparable
}](ctx context.Context, gw Gateway[T], item T) (T, error) {
	var none T
	if item.WasSaved() {
		return item, nil
	}
	item.PrepareHash()
	existing, err := gw.FindByHash(ctx, item.GetHashKey())
	if err != nil {
		return none, err
	}
	if existing != none {
		return existing, nil
	}
	saved, err := gw.Save(ctx, item)
	if errors.Is(err, ErrDuplicateHash) {
		return gw.FindByHash(ctx, item.GetHashKey())
	}
	if err != nil {
		return none, err
	}
	return saved, nil
}

// findItem resolves an item by key when saved, by content hash otherwise.
func findItem[T interface {
	HashedItem
	comparable
}](ctx context.Context, gw Gateway[T], item T) (T, error) {
	if item.WasSaved() {
		return gw.FindByID(ctx, item.GetKey())
	}
	item.PrepareHash()
	return gw.FindByHash(ctx, item.GetHashKey())
}

// removeItem deletes a saved item and reports whether anything was removed.
// Unsaved items are a no-op.
func removeItem[T HashedItem](ctx context.Context, gw Gateway[T], item T) (bool, error) {
	if !item.WasSaved() {
		return false, nil
	}
	if err := gw.Delete(ctx, item); err != nil {
		return false, err
	}
	return true, nil
}
