package contact

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"contacts-backend/pkg/hash"
)

// Contact is a uniquely named, mutable composite of contact mechanisms.
// The name fixes its identity hash; the three kind-keyed maps gain and
// lose entries over its lifetime. Saved sub-map entries always reference
// saved mechanism rows, shared with any other contact holding the same
// canonical value.
type Contact struct {
	Item
	Name      string
	Phones    map[Kind]*PhoneNumber
	Emails    map[Kind]*EmailAddress
	Addresses map[Kind]*MailAddress
}

// Named builds a new contact with a normalized name and fresh identity.
func Named(name string) *Contact {
	c := &Contact{}
	c.Name = NormalizeWords(name)
	c.markDirty()
	return c
}

func (c *Contact) FormatValue() string { return c.Name }
func (c *Contact) Description() string { return describe("Contact", c.Name) }

// Brief summarizes this contact as its key and name.
func (c *Contact) Brief() ItemBrief {
	return ItemBrief{Key: c.Key, Type: "name=" + c.Name}
}

func (c *Contact) PrepareHash() {
	if c.HashKey == 0 {
		c.HashKey = hash.Of(c.Name)
	}
}

// likeness renders the name as a LIKE pattern for similarity search.
func (c *Contact) likeness() string {
	if c.Name == "" {
		return "%"
	}
	return "%" + c.Name + "%"
}

// ----- kind-keyed sub-maps ------------------------------------------------

func (c *Contact) WithPhone(kind Kind, phone *PhoneNumber) *Contact {
	if phone == nil {
		delete(c.Phones, kind)
		return c
	}
	if c.Phones == nil {
		c.Phones = map[Kind]*PhoneNumber{}
	}
	c.Phones[kind] = phone
	return c
}

func (c *Contact) WithEmail(kind Kind, email *EmailAddress) *Contact {
	if email == nil {
		delete(c.Emails, kind)
		return c
	}
	if c.Emails == nil {
		c.Emails = map[Kind]*EmailAddress{}
	}
	c.Emails[kind] = email
	return c
}

func (c *Contact) WithAddress(kind Kind, address *MailAddress) *Contact {
	if address == nil {
		delete(c.Addresses, kind)
		return c
	}
	if c.Addresses == nil {
		c.Addresses = map[Kind]*MailAddress{}
	}
	c.Addresses[kind] = address
	return c
}

func (c *Contact) Phone(kind Kind) *PhoneNumber     { return c.Phones[kind] }
func (c *Contact) Email(kind Kind) *EmailAddress    { return c.Emails[kind] }
func (c *Contact) Address(kind Kind) *MailAddress   { return c.Addresses[kind] }
func (c *Contact) RemovePhone(kind Kind) *Contact   { return c.WithPhone(kind, nil) }
func (c *Contact) RemoveEmail(kind Kind) *Contact   { return c.WithEmail(kind, nil) }
func (c *Contact) RemoveAddress(kind Kind) *Contact { return c.WithAddress(kind, nil) }

// ----- lifecycle ----------------------------------------------------------

// SaveItem persists this contact. Sub-map entries are resolved first, each
// replaced with its saved (de-duplicated) instance, so the contact rows
// reference shared mechanism rows. A fresh contact whose name hash already
// exists resolves to the existing row instead of inserting a duplicate.
func (c *Contact) SaveItem(ctx context.Context) (*Contact, error) {
	if err := c.saveParts(ctx); err != nil {
		return nil, err
	}
	r := Stores()
	c.PrepareHash()
	if c.WasSaved() {
		return r.Contacts.Save(ctx, c)
	}
	existing, err := r.Contacts.FindByHash(ctx, c.HashKey)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}
	saved, err := r.Contacts.Save(ctx, c)
	if errors.Is(err, ErrDuplicateHash) {
		return r.Contacts.FindByHash(ctx, c.HashKey)
	}
	return saved, err
}

func (c *Contact) saveParts(ctx context.Context) error {
	for kind, phone := range c.Phones {
		saved, err := phone.SaveItem(ctx)
		if err != nil {
			return fmt.Errorf("saving %s phone: %w", kind, err)
		}
		c.Phones[kind] = saved
	}
	for kind, email := range c.Emails {
		saved, err := email.SaveItem(ctx)
		if err != nil {
			return fmt.Errorf("saving %s email: %w", kind, err)
		}
		c.Emails[kind] = saved
	}
	for kind, address := range c.Addresses {
		saved, err := address.SaveItem(ctx)
		if err != nil {
			return fmt.Errorf("saving %s address: %w", kind, err)
		}
		c.Addresses[kind] = saved
	}
	return nil
}

// FindItem resolves this contact by key when saved, by name hash otherwise.
func (c *Contact) FindItem(ctx context.Context) (*Contact, error) {
	return findItem(ctx, Gateway[*Contact](Stores().Contacts), c)
}

// FindWithHash looks this contact up by its name hash.
func (c *Contact) FindWithHash(ctx context.Context) (*Contact, error) {
	c.PrepareHash()
	return Stores().Contacts.FindByHash(ctx, c.HashKey)
}

// RemoveItem deletes a saved contact. Mechanism rows are shared and stay
// behind; pruning orphans is an explicit, separate act.
func (c *Contact) RemoveItem(ctx context.Context) (bool, error) {
	return removeItem(ctx, Gateway[*Contact](Stores().Contacts), c)
}

// ----- merge --------------------------------------------------------------

// MergePhone merges a phone text into the kind slot. Empty text removes
// the slot; invalid text appends a message and leaves the contact alone;
// text matching the current canonical value is a no-op. The installed
// value is unsaved until the next SaveItem.
func (c *Contact) MergePhone(kind Kind, text string, messages *[]string) {
	if text == "" {
		c.RemovePhone(kind)
		return
	}
	if notes := ValidatePhoneText(text); len(notes) > 0 {
		*messages = append(*messages, mergeMessage(kind, notes))
		return
	}
	value, _ := ParsePhone(text)
	if current := c.Phone(kind); current == nil || current.FormatValue() != text {
		c.WithPhone(kind, value)
	}
}

// MergeEmail merges an email text into the kind slot; same rules as
// MergePhone.
func (c *Contact) MergeEmail(kind Kind, text string, messages *[]string) {
	if text == "" {
		c.RemoveEmail(kind)
		return
	}
	if notes := ValidateEmailText(text); len(notes) > 0 {
		*messages = append(*messages, mergeMessage(kind, notes))
		return
	}
	value, _ := ParseEmail(text)
	if current := c.Email(kind); current == nil || current.FormatValue() != text {
		c.WithEmail(kind, value)
	}
}

// MergeAddress merges a mail address text into the kind slot; same rules
// as MergePhone.
func (c *Contact) MergeAddress(kind Kind, text string, messages *[]string) {
	if text == "" {
		c.RemoveAddress(kind)
		return
	}
	if notes := ValidateMailText(text); len(notes) > 0 {
		*messages = append(*messages, mergeMessage(kind, notes))
		return
	}
	value := ParseMailAddress(text)
	if current := c.Address(kind); current == nil || current.FormatValue() != text {
		c.WithAddress(kind, value)
	}
}

func mergeMessage(kind Kind, notes []string) string {
	return fmt.Sprintf("%s %s", kind, notes[0])
}

// ----- duplicate pre-check ------------------------------------------------

const dupeFormat = "'%s' duplicates existing %s"

// CheckParts reports duplications a write of this contact would collide
// with, plus name well-formedness. Only unsaved entries (key zero) are
// checked: a non-zero key already names its row. An empty result means
// clear to write.
func CheckParts(ctx context.Context, c *Contact) ([]string, error) {
	messages := []string{}
	if length := len([]rune(c.Name)); length < 2 || length > 100 {
		messages = append(messages, NameLengthMessage)
	}
	if !c.WasSaved() {
		existing, err := c.FindWithHash(ctx)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			messages = append(messages, fmt.Sprintf(dupeFormat, existing.FormatValue(), "contact"))
		}
	}
	for _, kind := range PhoneKinds {
		phone := c.Phone(kind)
		if phone == nil || phone.WasSaved() {
			continue
		}
		found, err := phone.FindItem(ctx)
		if err != nil {
			return nil, err
		}
		if found != nil {
			messages = append(messages, fmt.Sprintf(dupeFormat, phone.FormatValue(), "phone number"))
		}
	}
	for _, kind := range EmailKinds {
		email := c.Email(kind)
		if email == nil || email.WasSaved() {
			continue
		}
		found, err := email.FindItem(ctx)
		if err != nil {
			return nil, err
		}
		if found != nil {
			messages = append(messages, fmt.Sprintf(dupeFormat, email.FormatValue(), "email address"))
		}
	}
	for _, kind := range AddressKinds {
		address := c.Address(kind)
		if address == nil || address.WasSaved() {
			continue
		}
		found, err := address.FindItem(ctx)
		if err != nil {
			return nil, err
		}
		if found != nil {
			messages = append(messages, fmt.Sprintf(dupeFormat, address.FormatValue(), "mail address"))
		}
	}
	return messages, nil
}

// ----- wire form ----------------------------------------------------------

type contactWire struct {
	Key        int64              `json:"key"`
	Name       string             `json:"name"`
	Mechanisms []ContactMechanism `json:"mechanisms"`
}

// Mechanisms flattens the three sub-maps into a deterministic list:
// addresses, then phones, then emails, each ordered by kind.
func (c *Contact) Mechanisms() []ContactMechanism {
	results := make([]ContactMechanism, 0, len(c.Addresses)+len(c.Phones)+len(c.Emails))
	for _, kind := range sortedKinds(c.Addresses) {
		results = append(results, ContactMechanism{Type: kind, Mechanism: c.Addresses[kind]})
	}
	for _, kind := range sortedKinds(c.Phones) {
		results = append(results, ContactMechanism{Type: kind, Mechanism: c.Phones[kind]})
	}
	for _, kind := range sortedKinds(c.Emails) {
		results = append(results, ContactMechanism{Type: kind, Mechanism: c.Emails[kind]})
	}
	return results
}

func sortedKinds[T any](m map[Kind]T) []Kind {
	kinds := make([]Kind, 0, len(m))
	for kind := range m {
		kinds = append(kinds, kind)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}

func (c *Contact) MarshalJSON() ([]byte, error) {
	return json.Marshal(contactWire{Key: c.Key, Name: c.Name, Mechanisms: c.Mechanisms()})
}

func (c *Contact) UnmarshalJSON(data []byte) error {
	var wire contactWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	c.Key = wire.Key
	c.HashKey = 0
	c.Name = NormalizeWords(wire.Name)
	c.Phones, c.Emails, c.Addresses = nil, nil, nil
	for _, m := range wire.Mechanisms {
		switch mechanism := m.Mechanism.(type) {
		case *MailAddress:
			c.WithAddress(m.Type, mechanism)
		case *EmailAddress:
			c.WithEmail(m.Type, mechanism)
		case *PhoneNumber:
			c.WithPhone(m.Type, mechanism)
		}
	}
	return nil
}
