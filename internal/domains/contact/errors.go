package contact

import "errors"

// Validation messages surfaced to API clients. These travel as message
// lists with a 409 status, never as Go errors.
const (
	PhoneFormatMessage = "phone numbers must have a format like 999-999-9999"
	EmailFormatMessage = "email addresses must have a format like account@host.com"
	MailFormatMessage  = "mail addresses must have a format like 1234 Main St, Los Angeles, CA 90066"
	NameLengthMessage  = "contact name too short or long"
)

var (
	// ErrNotFound reports a strict read of a missing contact.
	ErrNotFound = errors.New("contact not found")

	// ErrMissingKey reports an update submitted without a surrogate key.
	ErrMissingKey = errors.New("contact key is missing")

	// ErrInvalidPart reports an item part whose declared type is unknown.
	ErrInvalidPart = errors.New("invalid part request")

	// ErrDuplicateHash reports an insert that lost the race against a
	// concurrent writer of the same canonical value. The hash_key column
	// carries a unique constraint; callers re-read by hash on this error.
	ErrDuplicateHash = errors.New("duplicate hash key")
)
