package contact

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"contacts-backend/pkg/hash"
)

// MailAddress is a unique, immutable mailing address. The office (building
// unit) is optional; all other fields participate in the canonical form
// alongside it.
type MailAddress struct {
	Item
	Street     string `json:"street"`
	Office     string `json:"office"`
	City       string `json:"city"`
	StateCode  string `json:"state"`
	PostalCode string `json:"zip"`
}

var (
	streetPattern = regexp.MustCompile(`^((\d+\s)[\w\s/#]+)?$`)
	officePattern = regexp.MustCompile(`^[\w\s/#]*$`)
	cityPattern   = regexp.MustCompile(`^[a-zA-Z\s]+$`)
	statePattern  = regexp.MustCompile(`^[A-Z]{2}$`)
	postalPattern = regexp.MustCompile(`^[\w\s]+$`)
)

// ParseMailAddress accepts the comma-separated renderings with 3, 4, or 5
// parts: "street, city, ST zip", "street, office, city, ST zip",
// "street, city, ST, zip", or "street, office, city, ST, zip".
// It returns nil when the text has none of those shapes.
func ParseMailAddress(text string) *MailAddress {
	parts := strings.Split(text, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	switch len(parts) {
	case 3:
		state := strings.Fields(parts[2])
		if len(state) < 2 {
			return nil
		}
		return NewMailAddress(parts[0], "", parts[1], state[0], state[1])
	case 4:
		if state := strings.Fields(parts[3]); len(state) >= 2 {
			return NewMailAddress(parts[0], parts[1], parts[2], state[0], state[1])
		}
		return NewMailAddress(parts[0], "", parts[1], parts[2], parts[3])
	case 5:
		return NewMailAddress(parts[0], parts[1], parts[2], parts[3], parts[4])
	}
	return nil
}

// NewMailAddress builds a normalized address from its parts.
func NewMailAddress(street, office, city, stateCode, postalCode string) *MailAddress {
	return (&MailAddress{}).
		WithStreet(street).
		WithOffice(office).
		WithCity(city).
		WithStateCode(stateCode).
		WithPostalCode(postalCode)
}

// The With* setters normalize their input and invalidate identity; wire
// deserialization bypasses them so saved keys survive a round trip.

func (a *MailAddress) WithStreet(street string) *MailAddress {
	a.Street = NormalizeWords(street)
	a.markDirty()
	return a
}

func (a *MailAddress) WithOffice(office string) *MailAddress {
	a.Office = NormalizeWords(office)
	a.markDirty()
	return a
}

func (a *MailAddress) WithCity(city string) *MailAddress {
	a.City = NormalizeWords(city)
	a.markDirty()
	return a
}

func (a *MailAddress) WithStateCode(stateCode string) *MailAddress {
	a.StateCode = NormalizeCode(stateCode)
	a.markDirty()
	return a
}

func (a *MailAddress) WithPostalCode(postalCode string) *MailAddress {
	a.PostalCode = NormalizeCode(postalCode)
	a.markDirty()
	return a
}

// Validate checks the field structure. Any violation is reported with the
// single canonical format message.
func (a *MailAddress) Validate() []string {
	err := validation.ValidateStruct(a,
		validation.Field(&a.Street, validation.Length(0, 50), validation.Match(streetPattern)),
		validation.Field(&a.Office, validation.Length(0, 50), validation.Match(officePattern)),
		validation.Field(&a.City, validation.Required, validation.Length(5, 50), validation.Match(cityPattern)),
		validation.Field(&a.StateCode, validation.Required, validation.Match(statePattern)),
		validation.Field(&a.PostalCode, validation.Required, validation.Length(5, 15), validation.Match(postalPattern)),
	)
	if err != nil {
		return []string{MailFormatMessage}
	}
	return nil
}

func (a *MailAddress) FormatAddress() string {
	if a.Office == "" {
		return fmt.Sprintf("%s, %s, %s %s", a.Street, a.City, a.StateCode, a.PostalCode)
	}
	return fmt.Sprintf("%s, %s, %s, %s %s", a.Street, a.Office, a.City, a.StateCode, a.PostalCode)
}

func (a *MailAddress) FormatValue() string { return a.FormatAddress() }
func (a *MailAddress) Description() string { return describe("MailAddress", a.FormatAddress()) }

func (a *MailAddress) PrepareHash() {
	if a.HashKey == 0 {
		a.HashKey = hash.Of(a.FormatAddress())
	}
}

// SaveItem persists this address, de-duplicating against the store by hash.
// Callers must use the returned instance.
func (a *MailAddress) SaveItem(ctx context.Context) (*MailAddress, error) {
	return saveValue(ctx, Stores().Addresses, a)
}

// FindItem resolves this address against the store by key or by hash.
func (a *MailAddress) FindItem(ctx context.Context) (*MailAddress, error) {
	return findItem(ctx, Stores().Addresses, a)
}

// RemoveItem deletes this address if it was ever saved.
func (a *MailAddress) RemoveItem(ctx context.Context) (bool, error) {
	return removeItem(ctx, Stores().Addresses, a)
}
