package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"contacts-backend/internal/domains/contact"
	"contacts-backend/pkg/cache"
)

const (
	countKey      = "contacts:count"
	briefsPattern = "contacts:briefs:*"
	cacheTTL      = 30 * time.Second
)

type contactService struct {
	stores *contact.Registry
	cache  cache.Cache
}

// NewService builds the contact service over the boot-time registry with a
// read-through cache for counts and brief listings.
func NewService(stores *contact.Registry, c cache.Cache) contact.Service {
	if c == nil {
		c = cache.Noop{}
	}
	return &contactService{stores: stores, cache: c}
}

func (s *contactService) CountContacts(ctx context.Context) (contact.ItemBrief, error) {
	var brief contact.ItemBrief
	if found, err := s.cache.Get(ctx, countKey, &brief); err == nil && found {
		return brief, nil
	}
	count, err := s.stores.Contacts.Count(ctx)
	if err != nil {
		return contact.ItemBrief{}, fmt.Errorf("counting contacts: %w", err)
	}
	brief = contact.CountBrief(count)
	if err := s.cache.Set(ctx, countKey, brief, cacheTTL); err != nil {
		log.Warn().Err(err).Msg("contact count cache write failed")
	}
	return brief, nil
}

func (s *contactService) FindFirstContact(ctx context.Context) (*contact.Contact, error) {
	return s.stores.Contacts.FindFirst(ctx)
}

func (s *contactService) ListBriefs(ctx context.Context, name string) ([]contact.ItemBrief, error) {
	key := briefsKey(name)
	var briefs []contact.ItemBrief
	if found, err := s.cache.Get(ctx, key, &briefs); err == nil && found {
		return briefs, nil
	}

	var items []*contact.Contact
	var err error
	if name == "" {
		items, err = s.stores.Contacts.FindAll(ctx)
	} else {
		items, err = contact.Like(ctx, name)
	}
	if err != nil {
		return nil, fmt.Errorf("listing contact briefs: %w", err)
	}

	briefs = make([]contact.ItemBrief, 0, len(items))
	for _, c := range items {
		briefs = append(briefs, c.Brief())
	}
	if err := s.cache.Set(ctx, key, briefs, cacheTTL); err != nil {
		log.Warn().Err(err).Msg("contact briefs cache write failed")
	}
	return briefs, nil
}

func briefsKey(name string) string { return "contacts:briefs:" + name }

func (s *contactService) ListContacts(ctx context.Context, name, city, zip string) ([]*contact.Contact, error) {
	return s.stores.Contacts.FindMatching(ctx, contact.LikePattern(name), city, zip)
}

func (s *contactService) GetContact(ctx context.Context, id int64) (*contact.Contact, error) {
	return s.stores.Contacts.FindByID(ctx, id)
}

func (s *contactService) FindWithHash(ctx context.Context, idType contact.IDType, value string) ([]*contact.Contact, error) {
	switch idType {
	case contact.IDName:
		found, err := contact.Named(value).FindWithHash(ctx)
		if err != nil || found == nil {
			return []*contact.Contact{}, err
		}
		return []*contact.Contact{found}, nil
	case contact.IDEmail:
		email, err := contact.ParseEmail(value)
		if err != nil {
			return []*contact.Contact{}, nil
		}
		email.PrepareHash()
		return s.stores.Contacts.FindByEmailHash(ctx, email.GetHashKey())
	case contact.IDPhone:
		phone, err := contact.ParsePhone(value)
		if err != nil {
			return []*contact.Contact{}, nil
		}
		phone.PrepareHash()
		return s.stores.Contacts.FindByPhoneHash(ctx, phone.GetHashKey())
	}
	return []*contact.Contact{}, nil
}

func (s *contactService) CheckContact(ctx context.Context, c *contact.Contact) ([]string, error) {
	return contact.CheckParts(ctx, c)
}

func (s *contactService) CreateContact(ctx context.Context, c *contact.Contact) (contact.ItemBrief, []string, error) {
	messages, err := contact.CheckParts(ctx, c)
	if err != nil {
		return contact.ItemBrief{}, nil, err
	}
	if len(messages) > 0 {
		return contact.ItemBrief{}, messages, nil
	}
	saved, err := c.SaveItem(ctx)
	if err != nil {
		return contact.ItemBrief{}, nil, fmt.Errorf("creating contact: %w", err)
	}
	s.invalidate(ctx)
	return contact.BriefOf(saved), nil, nil
}

func (s *contactService) SaveContact(ctx context.Context, c *contact.Contact) (contact.ItemBrief, []string, error) {
	if !c.WasSaved() {
		return contact.ItemBrief{}, nil, contact.ErrMissingKey
	}
	existing, err := s.stores.Contacts.FindByID(ctx, c.GetKey())
	if err != nil {
		return contact.ItemBrief{}, nil, err
	}
	if existing == nil {
		return contact.ItemBrief{}, nil, contact.ErrNotFound
	}
	messages, err := contact.CheckParts(ctx, c)
	if err != nil {
		return contact.ItemBrief{}, nil, err
	}
	if len(messages) > 0 {
		return contact.ItemBrief{}, messages, nil
	}
	saved, err := c.SaveItem(ctx)
	if err != nil {
		return contact.ItemBrief{}, nil, fmt.Errorf("saving contact: %w", err)
	}
	s.invalidate(ctx)
	return contact.BriefOf(saved), nil, nil
}

func (s *contactService) DeleteContact(ctx context.Context, id int64) (bool, error) {
	c, err := s.stores.Contacts.FindByID(ctx, id)
	if err != nil {
		return false, err
	}
	if c == nil {
		return false, nil
	}
	removed, err := c.RemoveItem(ctx)
	if removed {
		s.invalidate(ctx)
	}
	return removed, err
}

// DeleteWithHash deletes the first matching contact only. Names are unique
// so "first" is "only"; for a phone or email shared across contacts the
// remaining holders keep theirs.
func (s *contactService) DeleteWithHash(ctx context.Context, idType contact.IDType, value string) (bool, error) {
	matches, err := s.FindWithHash(ctx, idType, value)
	if err != nil {
		return false, err
	}
	if len(matches) == 0 {
		return false, nil
	}
	removed, err := matches[0].RemoveItem(ctx)
	if removed {
		s.invalidate(ctx)
	}
	return removed, err
}

func (s *contactService) CreatePart(ctx context.Context, part contact.ItemPart) (contact.ItemBrief, []string, error) {
	if err := part.Validate(); err != nil {
		return contact.ItemBrief{}, []string{err.Error()}, nil
	}
	partType, err := part.PartType()
	if err != nil {
		return contact.ItemBrief{}, []string{contact.ErrInvalidPart.Error()}, nil
	}
	if partType == contact.IDName {
		saved, err := contact.Named(part.Name).SaveItem(ctx)
		if err != nil {
			return contact.ItemBrief{}, nil, fmt.Errorf("creating contact part: %w", err)
		}
		s.invalidate(ctx)
		return contact.BriefOf(saved), nil, nil
	}

	kind, err := part.Kind()
	if err != nil {
		return contact.ItemBrief{}, []string{err.Error()}, nil
	}
	parent, err := contact.Named(part.Name).FindWithHash(ctx)
	if err != nil {
		return contact.ItemBrief{}, nil, err
	}
	if parent == nil {
		return contact.ItemBrief{}, nil, contact.ErrNotFound
	}

	switch partType {
	case contact.IDPhone:
		phone, err := contact.ParsePhone(part.Value())
		if err != nil {
			return contact.ItemBrief{}, []string{err.Error()}, nil
		}
		saved, err := parent.WithPhone(kind, phone).SaveItem(ctx)
		if err != nil {
			return contact.ItemBrief{}, nil, err
		}
		s.invalidate(ctx)
		return contact.BriefOf(saved.Phone(kind)), nil, nil
	case contact.IDEmail:
		email, err := contact.ParseEmail(part.Value())
		if err != nil {
			return contact.ItemBrief{}, []string{err.Error()}, nil
		}
		saved, err := parent.WithEmail(kind, email).SaveItem(ctx)
		if err != nil {
			return contact.ItemBrief{}, nil, err
		}
		s.invalidate(ctx)
		return contact.BriefOf(saved.Email(kind)), nil, nil
	case contact.IDMail:
		if messages := contact.ValidateMailText(part.Value()); len(messages) > 0 {
			return contact.ItemBrief{}, messages, nil
		}
		address := contact.ParseMailAddress(part.Value())
		saved, err := parent.WithAddress(kind, address).SaveItem(ctx)
		if err != nil {
			return contact.ItemBrief{}, nil, err
		}
		s.invalidate(ctx)
		return contact.BriefOf(saved.Address(kind)), nil, nil
	}
	return contact.ItemBrief{}, []string{contact.ErrInvalidPart.Error()}, nil
}

func (s *contactService) invalidate(ctx context.Context) {
	if err := s.cache.Delete(ctx, countKey); err != nil {
		log.Warn().Err(err).Msg("contact count cache invalidation failed")
	}
	if err := s.cache.DeletePattern(ctx, briefsPattern); err != nil {
		log.Warn().Err(err).Msg("contact briefs cache invalidation failed")
	}
}
