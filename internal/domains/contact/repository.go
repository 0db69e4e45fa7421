package contact

import "context"

// ContactStorage extends the generic gateway with the contact-specific
// finders. FindAll and FindLike order by name.
type ContactStorage interface {
	Gateway[*Contact]

	// FindLike matches names against a SQL LIKE pattern.
	FindLike(ctx context.Context, sample string) ([]*Contact, error)

	// FindMatching adds optional city and postal-code filters through the
	// address sub-map join. Empty filters are ignored.
	FindMatching(ctx context.Context, sample, city, zip string) ([]*Contact, error)

	// FindByEmailHash selects contacts holding an email with the hash.
	FindByEmailHash(ctx context.Context, hashKey int64) ([]*Contact, error)

	// FindByPhoneHash selects contacts holding a phone with the hash.
	FindByPhoneHash(ctx context.Context, hashKey int64) ([]*Contact, error)

	// FindFirst returns the contact with the lowest name, or nil.
	FindFirst(ctx context.Context) (*Contact, error)
}

// PhoneStorage, EmailStorage and AddressStorage persist the immutable
// mechanism values.
type (
	PhoneStorage   = Gateway[*PhoneNumber]
	EmailStorage   = Gateway[*EmailAddress]
	AddressStorage = Gateway[*MailAddress]
)
