package contact

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"contacts-backend/pkg/hash"
)

// EmailAddress is a unique, immutable email address stored as its local
// part and host name.
type EmailAddress struct {
	Item
	Account  string
	HostName string
}

// ParseEmail builds an EmailAddress from its account@host text form.
func ParseEmail(text string) (*EmailAddress, error) {
	if messages := ValidateEmailText(text); len(messages) > 0 {
		return nil, fmt.Errorf("%s", messages[0])
	}
	e := &EmailAddress{}
	e.setFormattedAddress(text)
	return e, nil
}

func (e *EmailAddress) setFormattedAddress(text string) {
	at := strings.LastIndex(text, "@")
	e.Account, e.HostName = text[:at], text[at+1:]
}

// WithAddress replaces the address and invalidates identity.
func (e *EmailAddress) WithAddress(text string) (*EmailAddress, error) {
	if messages := ValidateEmailText(text); len(messages) > 0 {
		return nil, fmt.Errorf("%s", messages[0])
	}
	e.setFormattedAddress(text)
	e.markDirty()
	return e, nil
}

func (e *EmailAddress) FormatAddress() string {
	return e.Account + "@" + e.HostName
}

func (e *EmailAddress) FormatValue() string { return e.FormatAddress() }
func (e *EmailAddress) Description() string { return describe("EmailAddress", e.FormatAddress()) }

func (e *EmailAddress) PrepareHash() {
	if e.HashKey == 0 {
		e.HashKey = hash.Of(e.FormatAddress())
	}
}

// SaveItem persists this address, de-duplicating against the store by hash.
// Callers must use the returned instance.
func (e *EmailAddress) SaveItem(ctx context.Context) (*EmailAddress, error) {
	return saveValue(ctx, Stores().Emails, e)
}

// FindItem resolves this address against the store by key or by hash.
func (e *EmailAddress) FindItem(ctx context.Context) (*EmailAddress, error) {
	return findItem(ctx, Stores().Emails, e)
}

// RemoveItem deletes this address if it was ever saved.
func (e *EmailAddress) RemoveItem(ctx context.Context) (bool, error) {
	return removeItem(ctx, Stores().Emails, e)
}

type emailWire struct {
	Key   int64  `json:"key"`
	Value string `json:"value"`
}

func (e *EmailAddress) MarshalJSON() ([]byte, error) {
	return json.Marshal(emailWire{Key: e.Key, Value: e.FormatAddress()})
}

func (e *EmailAddress) UnmarshalJSON(data []byte) error {
	var wire emailWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	if messages := ValidateEmailText(wire.Value); len(messages) > 0 {
		return fmt.Errorf("%s", messages[0])
	}
	e.Key = wire.Key
	e.setFormattedAddress(wire.Value)
	return nil
}
