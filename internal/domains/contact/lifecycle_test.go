package contact

import (
	"context"
	"encoding/json"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"contacts-backend/pkg/hash"
)

// memGateway is an in-memory Gateway used to exercise the lifecycle
// protocol without a database.
type memGateway[T interface {
	HashedItem
	comparable
}] struct {
	nextKey int64
	items   map[int64]T
	setKey  func(T, int64)
}

func newMemGateway[T interface {
	HashedItem
	comparable
}](setKey func(T, int64)) *memGateway[T] {
	return &memGateway[T]{items: map[int64]T{}, setKey: setKey}
}

func (g *memGateway[T]) FindByID(ctx context.Context, id int64) (T, error) {
	return g.items[id], nil
}

func (g *memGateway[T]) FindByHash(ctx context.Context, hashKey int64) (T, error) {
	var none T
	for _, item := range g.items {
		if item.GetHashKey() == hashKey {
			return item, nil
		}
	}
	return none, nil
}

// Save stores the item exactly as handed over. Unlike the SQL gateways it
// never recomputes the hash, so a caller persisting a stale zero hash key
// is visible to tests.
func (g *memGateway[T]) Save(ctx context.Context, item T) (T, error) {
	if !item.WasSaved() {
		g.nextKey++
		g.setKey(item, g.nextKey)
	}
	g.items[item.GetKey()] = item
	return item, nil
}

func (g *memGateway[T]) Delete(ctx context.Context, item T) error {
	delete(g.items, item.GetKey())
	return nil
}

func (g *memGateway[T]) FindAll(ctx context.Context) ([]T, error) {
	results := make([]T, 0, len(g.items))
	for _, item := range g.items {
		results = append(results, item)
	}
	return results, nil
}

func (g *memGateway[T]) Count(ctx context.Context) (int64, error) {
	return int64(len(g.items)), nil
}

type memContacts struct {
	memGateway[*Contact]
}

func newMemContacts() *memContacts {
	return &memContacts{memGateway[*Contact]{
		items:  map[int64]*Contact{},
		setKey: func(c *Contact, key int64) { c.Key = key },
	}}
}

func (g *memContacts) sorted() []*Contact {
	results := make([]*Contact, 0, len(g.items))
	for _, c := range g.items {
		results = append(results, c)
	}
	sort.Slice(results, func(i, j int) bool { return results[i].Name < results[j].Name })
	return results
}

func (g *memContacts) FindLike(ctx context.Context, sample string) ([]*Contact, error) {
	needle := strings.Trim(sample, "%")
	results := []*Contact{}
	for _, c := range g.sorted() {
		if strings.Contains(c.Name, needle) {
			results = append(results, c)
		}
	}
	return results, nil
}

func (g *memContacts) FindMatching(ctx context.Context, sample, city, zip string) ([]*Contact, error) {
	matches, _ := g.FindLike(ctx, sample)
	if city == "" && zip == "" {
		return matches, nil
	}
	results := []*Contact{}
	for _, c := range matches {
		for _, a := range c.Addresses {
			if (city == "" || a.City == city) && (zip == "" || a.PostalCode == zip) {
				results = append(results, c)
				break
			}
		}
	}
	return results, nil
}

func (g *memContacts) FindByEmailHash(ctx context.Context, hashKey int64) ([]*Contact, error) {
	results := []*Contact{}
	for _, c := range g.sorted() {
		for _, e := range c.Emails {
			if e.GetHashKey() == hashKey {
				results = append(results, c)
				break
			}
		}
	}
	return results, nil
}

func (g *memContacts) FindByPhoneHash(ctx context.Context, hashKey int64) ([]*Contact, error) {
	results := []*Contact{}
	for _, c := range g.sorted() {
		for _, p := range c.Phones {
			if p.GetHashKey() == hashKey {
				results = append(results, c)
				break
			}
		}
	}
	return results, nil
}

func (g *memContacts) FindFirst(ctx context.Context) (*Contact, error) {
	sorted := g.sorted()
	if len(sorted) == 0 {
		return nil, nil
	}
	return sorted[0], nil
}

// useMemoryStores installs fresh in-memory gateways and restores the
// previous registry when the test ends.
func useMemoryStores(t *testing.T) *Registry {
	t.Helper()
	previous := stores
	registry := &Registry{
		Contacts:  newMemContacts(),
		Phones:    newMemGateway(func(p *PhoneNumber, key int64) { p.Key = key }),
		Emails:    newMemGateway(func(e *EmailAddress, key int64) { e.Key = key }),
		Addresses: newMemGateway(func(a *MailAddress, key int64) { a.Key = key }),
	}
	Use(registry)
	t.Cleanup(func() { stores = previous })
	return registry
}

func TestSaveValueAssignsKeysOnce(t *testing.T) {
	useMemoryStores(t)
	ctx := context.Background()

	phone, _ := ParsePhone("415-555-1234")
	saved, err := phone.SaveItem(ctx)
	require.NoError(t, err)
	assert.True(t, saved.WasSaved())
	assert.NotZero(t, saved.GetHashKey())

	// an equal value resolves to the existing row
	twin, _ := ParsePhone("415-555-1234")
	savedTwin, err := twin.SaveItem(ctx)
	require.NoError(t, err)
	assert.Equal(t, saved.GetKey(), savedTwin.GetKey())
	assert.Same(t, saved, savedTwin)

	// an already-saved value short-circuits
	again, err := saved.SaveItem(ctx)
	require.NoError(t, err)
	assert.Same(t, saved, again)
}

func TestFindItemByKeyOrHash(t *testing.T) {
	useMemoryStores(t)
	ctx := context.Background()

	email, _ := ParseEmail("jane@example.com")
	saved, err := email.SaveItem(ctx)
	require.NoError(t, err)

	// unsaved probe resolves through the content hash
	probe, _ := ParseEmail("jane@example.com")
	found, err := probe.FindItem(ctx)
	require.NoError(t, err)
	assert.Same(t, saved, found)

	// saved instance resolves by key
	found, err = saved.FindItem(ctx)
	require.NoError(t, err)
	assert.Same(t, saved, found)

	missing, _ := ParseEmail("nobody@example.com")
	found, err = missing.FindItem(ctx)
	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestRemoveItem(t *testing.T) {
	useMemoryStores(t)
	ctx := context.Background()

	address := NewMailAddress("1234 Main St", "", "Los Angeles", "CA", "90066")
	removed, err := address.RemoveItem(ctx)
	require.NoError(t, err)
	assert.False(t, removed, "unsaved items have nothing to remove")

	saved, err := address.SaveItem(ctx)
	require.NoError(t, err)
	removed, err = saved.RemoveItem(ctx)
	require.NoError(t, err)
	assert.True(t, removed)

	found, err := saved.FindItem(ctx)
	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestContactSaveItemResolvesParts(t *testing.T) {
	useMemoryStores(t)
	ctx := context.Background()

	phone, _ := ParsePhone("415-555-1234")
	email, _ := ParseEmail("jane@example.com")
	c := Named("Jane Doe").WithPhone(KindHome, phone).WithEmail(KindWork, email)

	saved, err := c.SaveItem(ctx)
	require.NoError(t, err)
	assert.True(t, saved.WasSaved())
	assert.True(t, saved.Phone(KindHome).WasSaved())
	assert.True(t, saved.Email(KindWork).WasSaved())

	// a second contact sharing the phone resolves to the same row
	sharedPhone, _ := ParsePhone("415-555-1234")
	other := Named("John Doe").WithPhone(KindMobile, sharedPhone)
	otherSaved, err := other.SaveItem(ctx)
	require.NoError(t, err)
	assert.Equal(t, saved.Phone(KindHome).GetKey(), otherSaved.Phone(KindMobile).GetKey())

	// a fresh contact with an existing name resolves to the existing row
	duplicate := Named("Jane Doe")
	resolved, err := duplicate.SaveItem(ctx)
	require.NoError(t, err)
	assert.Same(t, saved, resolved)
}

func TestContactFindWithHash(t *testing.T) {
	useMemoryStores(t)
	ctx := context.Background()

	saved, err := Named("Jane Doe").SaveItem(ctx)
	require.NoError(t, err)

	found, err := Named("jane DOE").FindWithHash(ctx)
	require.NoError(t, err)
	assert.Same(t, saved, found)

	found, err = Named("Nobody Here").FindWithHash(ctx)
	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestSaveItemRehashesAfterWireRoundTrip(t *testing.T) {
	useMemoryStores(t)
	ctx := context.Background()

	saved, err := Named("Jane Doe").SaveItem(ctx)
	require.NoError(t, err)

	// the wire form carries no hash key, so an inbound update arrives
	// with only its surrogate key
	data, err := json.Marshal(saved)
	require.NoError(t, err)
	incoming := &Contact{}
	require.NoError(t, json.Unmarshal(data, incoming))
	require.True(t, incoming.WasSaved())
	require.Zero(t, incoming.HashKey)

	updated, err := incoming.SaveItem(ctx)
	require.NoError(t, err)
	assert.Equal(t, hash.Of("Jane Doe"), updated.GetHashKey())

	// the updated row stays reachable through its name hash
	found, err := Named("Jane Doe").FindWithHash(ctx)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, saved.GetKey(), found.GetKey())
}

func TestLike(t *testing.T) {
	useMemoryStores(t)
	ctx := context.Background()

	for _, name := range []string{"Jane Doe", "John Doe", "Alice Smith"} {
		_, err := Named(name).SaveItem(ctx)
		require.NoError(t, err)
	}

	matches, err := Like(ctx, "Doe")
	require.NoError(t, err)
	require.Len(t, matches, 2)
	assert.Equal(t, "Jane Doe", matches[0].Name)
	assert.Equal(t, "John Doe", matches[1].Name)

	all, err := Like(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestCheckParts(t *testing.T) {
	useMemoryStores(t)
	ctx := context.Background()

	saved, err := Named("Jane Doe").SaveItem(ctx)
	require.NoError(t, err)
	phone, _ := ParsePhone("415-555-1234")
	_, err = phone.SaveItem(ctx)
	require.NoError(t, err)

	t.Run("clear to write", func(t *testing.T) {
		messages, err := CheckParts(ctx, Named("John Doe"))
		require.NoError(t, err)
		assert.Empty(t, messages)
	})

	t.Run("name too short", func(t *testing.T) {
		messages, err := CheckParts(ctx, Named("J"))
		require.NoError(t, err)
		assert.Equal(t, []string{NameLengthMessage}, messages)
	})

	t.Run("duplicate name", func(t *testing.T) {
		messages, err := CheckParts(ctx, Named("Jane Doe"))
		require.NoError(t, err)
		assert.Equal(t, []string{"'Jane Doe' duplicates existing contact"}, messages)
	})

	t.Run("saved contact skips the name check", func(t *testing.T) {
		messages, err := CheckParts(ctx, saved)
		require.NoError(t, err)
		assert.Empty(t, messages)
	})

	t.Run("duplicate unsaved phone", func(t *testing.T) {
		probe, _ := ParsePhone("415-555-1234")
		c := Named("John Doe").WithPhone(KindHome, probe)
		messages, err := CheckParts(ctx, c)
		require.NoError(t, err)
		assert.Equal(t, []string{"'415-555-1234' duplicates existing phone number"}, messages)
	})

	t.Run("saved phone is not reported", func(t *testing.T) {
		installed, _ := ParsePhone("415-555-1234")
		resolved, err := installed.SaveItem(ctx)
		require.NoError(t, err)
		c := Named("John Doe").WithPhone(KindHome, resolved)
		messages, err := CheckParts(ctx, c)
		require.NoError(t, err)
		assert.Empty(t, messages)
	})
}
