package contact

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"contacts-backend/pkg/hash"
)

// PhoneNumber is a unique, immutable phone number. Equal numbers share one
// database row, keyed by the hash of the formatted value.
type PhoneNumber struct {
	Item
	AreaCode string
	Prefix   string
	Suffix   string
}

// ParsePhone builds a PhoneNumber from its AAA-PPP-SSSS text form.
func ParsePhone(text string) (*PhoneNumber, error) {
	if messages := ValidatePhoneText(text); len(messages) > 0 {
		return nil, fmt.Errorf("%s", messages[0])
	}
	p := &PhoneNumber{}
	p.setFormattedNumber(text)
	return p, nil
}

func (p *PhoneNumber) setFormattedNumber(text string) {
	parts := strings.SplitN(text, "-", 3)
	p.AreaCode, p.Prefix, p.Suffix = parts[0], parts[1], parts[2]
}

// WithNumber replaces the number and invalidates identity.
func (p *PhoneNumber) WithNumber(text string) (*PhoneNumber, error) {
	if messages := ValidatePhoneText(text); len(messages) > 0 {
		return nil, fmt.Errorf("%s", messages[0])
	}
	p.setFormattedNumber(text)
	p.markDirty()
	return p, nil
}

func (p *PhoneNumber) FormatNumber() string {
	return fmt.Sprintf("%s-%s-%s", p.AreaCode, p.Prefix, p.Suffix)
}

func (p *PhoneNumber) FormatValue() string { return p.FormatNumber() }
func (p *PhoneNumber) Description() string { return describe("PhoneNumber", p.FormatNumber()) }

func (p *PhoneNumber) PrepareHash() {
	if p.HashKey == 0 {
		p.HashKey = hash.Of(p.FormatNumber())
	}
}

// SaveItem persists this number, de-duplicating against the store by hash.
// Callers must use the returned instance.
func (p *PhoneNumber) SaveItem(ctx context.Context) (*PhoneNumber, error) {
	return saveValue(ctx, Stores().Phones, p)
}

// FindItem resolves this number against the store by key or by hash.
func (p *PhoneNumber) FindItem(ctx context.Context) (*PhoneNumber, error) {
	return findItem(ctx, Stores().Phones, p)
}

// RemoveItem deletes this number if it was ever saved.
func (p *PhoneNumber) RemoveItem(ctx context.Context) (bool, error) {
	return removeItem(ctx, Stores().Phones, p)
}

type phoneWire struct {
	Key   int64  `json:"key"`
	Value string `json:"value"`
}

func (p *PhoneNumber) MarshalJSON() ([]byte, error) {
	return json.Marshal(phoneWire{Key: p.Key, Value: p.FormatNumber()})
}

func (p *PhoneNumber) UnmarshalJSON(data []byte) error {
	var wire phoneWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	if messages := ValidatePhoneText(wire.Value); len(messages) > 0 {
		return fmt.Errorf("%s", messages[0])
	}
	p.Key = wire.Key
	p.setFormattedNumber(wire.Value)
	return nil
}
