package contact

import "context"

// Like finds contacts whose names resemble the text, ordered by name.
func Like(ctx context.Context, text string) ([]*Contact, error) {
	return Stores().Contacts.FindLike(ctx, LikePattern(text))
}

// LikePattern renders free text as the LIKE pattern used for similarity
// search; empty text matches everything.
func LikePattern(text string) string {
	return Named(text).likeness()
}

// Service translates between the HTTP surface and the entity lifecycle.
// Message lists report duplication and validation problems; a nil entity
// with a nil error means "not found" on the lenient reads.
type Service interface {
	CountContacts(ctx context.Context) (ItemBrief, error)
	FindFirstContact(ctx context.Context) (*Contact, error)
	ListBriefs(ctx context.Context, name string) ([]ItemBrief, error)
	ListContacts(ctx context.Context, name, city, zip string) ([]*Contact, error)
	GetContact(ctx context.Context, id int64) (*Contact, error)
	FindWithHash(ctx context.Context, idType IDType, value string) ([]*Contact, error)

	CheckContact(ctx context.Context, c *Contact) ([]string, error)
	CreateContact(ctx context.Context, c *Contact) (ItemBrief, []string, error)
	SaveContact(ctx context.Context, c *Contact) (ItemBrief, []string, error)
	DeleteContact(ctx context.Context, id int64) (bool, error)
	DeleteWithHash(ctx context.Context, idType IDType, value string) (bool, error)
	CreatePart(ctx context.Context, part ItemPart) (ItemBrief, []string, error)
}
