package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"contacts-backend/internal/domains/contact"
	"contacts-backend/pkg/database"
)

type contactStorage struct {
	pool *pgxpool.Pool
}

func NewContactStorage(pool *pgxpool.Pool) contact.ContactStorage {
	return &contactStorage{pool: pool}
}

func scanContact(row pgx.Row) (*contact.Contact, error) {
	var c contact.Contact
	err := row.Scan(&c.Key, &c.Name, &c.HashKey)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scanning contact: %w", err)
	}
	return &c, nil
}

func (s *contactStorage) FindByID(ctx context.Context, id int64) (*contact.Contact, error) {
	row := s.pool.QueryRow(ctx, "SELECT id, name, hash_key FROM contact WHERE id = $1", id)
	return s.withMaps(ctx, row)
}

func (s *contactStorage) FindByHash(ctx context.Context, hashKey int64) (*contact.Contact, error) {
	row := s.pool.QueryRow(ctx, "SELECT id, name, hash_key FROM contact WHERE hash_key = $1", hashKey)
	return s.withMaps(ctx, row)
}

func (s *contactStorage) FindFirst(ctx context.Context) (*contact.Contact, error) {
	row := s.pool.QueryRow(ctx, "SELECT id, name, hash_key FROM contact ORDER BY name LIMIT 1")
	return s.withMaps(ctx, row)
}

func (s *contactStorage) FindAll(ctx context.Context) ([]*contact.Contact, error) {
	return s.list(ctx, "SELECT id, name, hash_key FROM contact ORDER BY name")
}

func (s *contactStorage) FindLike(ctx context.Context, sample string) ([]*contact.Contact, error) {
	return s.list(ctx, "SELECT id, name, hash_key FROM contact WHERE name LIKE $1 ORDER BY name", sample)
}

// FindMatching narrows a name pattern by city and postal code through the
// address sub-map. Empty filters are ignored.
func (s *contactStorage) FindMatching(ctx context.Context, sample, city, zip string) ([]*contact.Contact, error) {
	query := "SELECT c.id, c.name, c.hash_key FROM contact c WHERE c.name LIKE $1"
	args := []interface{}{sample}
	if city != "" {
		args = append(args, city)
		query += fmt.Sprintf(` AND EXISTS (
			SELECT 1 FROM contact_addresses ca JOIN mail_address ma ON ma.id = ca.address_id
			WHERE ca.contact_id = c.id AND ma.city = $%d)`, len(args))
	}
	if zip != "" {
		args = append(args, zip)
		query += fmt.Sprintf(` AND EXISTS (
			SELECT 1 FROM contact_addresses ca JOIN mail_address ma ON ma.id = ca.address_id
			WHERE ca.contact_id = c.id AND ma.postal_code = $%d)`, len(args))
	}
	return s.list(ctx, query+" ORDER BY c.name", args...)
}

func (s *contactStorage) FindByEmailHash(ctx context.Context, hashKey int64) ([]*contact.Contact, error) {
	return s.list(ctx,
		`SELECT c.id, c.name, c.hash_key FROM contact c
		 JOIN contact_emails ce ON ce.contact_id = c.id
		 JOIN email_address e ON e.id = ce.email_id
		 WHERE e.hash_key = $1 ORDER BY c.name`, hashKey)
}

func (s *contactStorage) FindByPhoneHash(ctx context.Context, hashKey int64) ([]*contact.Contact, error) {
	return s.list(ctx,
		`SELECT c.id, c.name, c.hash_key FROM contact c
		 JOIN contact_phones cp ON cp.contact_id = c.id
		 JOIN phone_number p ON p.id = cp.phone_id
		 WHERE p.hash_key = $1 ORDER BY c.name`, hashKey)
}

func (s *contactStorage) Count(ctx context.Context) (int64, error) {
	var count int64
	err := s.pool.QueryRow(ctx, "SELECT COUNT(*) FROM contact").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting contacts: %w", err)
	}
	return count, nil
}

// Save upserts the contact row and rewrites its three sub-map link tables
// in one transaction. Every mapped value must already be saved; the link
// rows store foreign keys to the shared mechanism rows.
func (s *contactStorage) Save(ctx context.Context, c *contact.Contact) (*contact.Contact, error) {
	c.PrepareHash()
	err := database.WithTransaction(ctx, s.pool, func(tx pgx.Tx) error {
		if c.WasSaved() {
			_, err := tx.Exec(ctx, "UPDATE contact SET name = $2, hash_key = $3 WHERE id = $1",
				c.Key, c.Name, c.HashKey)
			if err != nil {
				return translate("updating contact", err)
			}
		} else {
			err := tx.QueryRow(ctx, "INSERT INTO contact (name, hash_key) VALUES ($1, $2) RETURNING id",
				c.Name, c.HashKey).Scan(&c.Key)
			if err != nil {
				return translate("inserting contact", err)
			}
		}

		if err := syncLinks(ctx, tx, "contact_phones", "phone_id", c.Key, keyedIDs(c.Phones)); err != nil {
			return err
		}
		if err := syncLinks(ctx, tx, "contact_emails", "email_id", c.Key, keyedIDs(c.Emails)); err != nil {
			return err
		}
		return syncLinks(ctx, tx, "contact_addresses", "address_id", c.Key, keyedIDs(c.Addresses))
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}

// Delete removes the contact row; link rows go with it via ON DELETE
// CASCADE. Mechanism rows are shared and stay.
func (s *contactStorage) Delete(ctx context.Context, c *contact.Contact) error {
	_, err := s.pool.Exec(ctx, "DELETE FROM contact WHERE id = $1", c.Key)
	if err != nil {
		return fmt.Errorf("deleting contact: %w", err)
	}
	return nil
}

func keyedIDs[T contact.HashedItem](m map[contact.Kind]T) map[contact.Kind]int64 {
	ids := make(map[contact.Kind]int64, len(m))
	for kind, item := range m {
		ids[kind] = item.GetKey()
	}
	return ids
}

func syncLinks(ctx context.Context, tx pgx.Tx, table, column string, contactID int64, ids map[contact.Kind]int64) error {
	if _, err := tx.Exec(ctx,
		fmt.Sprintf("DELETE FROM %s WHERE contact_id = $1", table), contactID); err != nil {
		return fmt.Errorf("clearing %s: %w", table, err)
	}
	for kind, id := range ids {
		if _, err := tx.Exec(ctx,
			fmt.Sprintf("INSERT INTO %s (contact_id, kind, %s) VALUES ($1, $2, $3)", table, column),
			contactID, string(kind), id); err != nil {
			return fmt.Errorf("linking %s: %w", table, err)
		}
	}
	return nil
}

func (s *contactStorage) withMaps(ctx context.Context, row pgx.Row) (*contact.Contact, error) {
	c, err := scanContact(row)
	if err != nil || c == nil {
		return c, err
	}
	if err := s.loadMaps(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *contactStorage) list(ctx context.Context, query string, args ...interface{}) ([]*contact.Contact, error) {
	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing contacts: %w", err)
	}
	defer rows.Close()

	results := []*contact.Contact{}
	for rows.Next() {
		c, err := scanContact(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, c := range results {
		if err := s.loadMaps(ctx, c); err != nil {
			return nil, err
		}
	}
	return results, nil
}

func (s *contactStorage) loadMaps(ctx context.Context, c *contact.Contact) error {
	if err := s.loadPhones(ctx, c); err != nil {
		return err
	}
	if err := s.loadEmails(ctx, c); err != nil {
		return err
	}
	return s.loadAddresses(ctx, c)
}

func (s *contactStorage) loadPhones(ctx context.Context, c *contact.Contact) error {
	rows, err := s.pool.Query(ctx,
		`SELECT cp.kind, p.id, p.phone_area, p.phone_prefix, p.phone_suffix, p.hash_key
		 FROM contact_phones cp JOIN phone_number p ON p.id = cp.phone_id
		 WHERE cp.contact_id = $1`, c.Key)
	if err != nil {
		return fmt.Errorf("loading contact phones: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var kind string
		var p contact.PhoneNumber
		if err := rows.Scan(&kind, &p.Key, &p.AreaCode, &p.Prefix, &p.Suffix, &p.HashKey); err != nil {
			return fmt.Errorf("loading contact phones: %w", err)
		}
		c.WithPhone(contact.Kind(kind), &p)
	}
	return rows.Err()
}

func (s *contactStorage) loadEmails(ctx context.Context, c *contact.Contact) error {
	rows, err := s.pool.Query(ctx,
		`SELECT ce.kind, e.id, e.account, e.hostname, e.hash_key
		 FROM contact_emails ce JOIN email_address e ON e.id = ce.email_id
		 WHERE ce.contact_id = $1`, c.Key)
	if err != nil {
		return fmt.Errorf("loading contact emails: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var kind string
		var e contact.EmailAddress
		if err := rows.Scan(&kind, &e.Key, &e.Account, &e.HostName, &e.HashKey); err != nil {
			return fmt.Errorf("loading contact emails: %w", err)
		}
		c.WithEmail(contact.Kind(kind), &e)
	}
	return rows.Err()
}

func (s *contactStorage) loadAddresses(ctx context.Context, c *contact.Contact) error {
	rows, err := s.pool.Query(ctx,
		`SELECT ca.kind, a.id, a.street, a.office, a.city, a.state_code, a.postal_code, a.hash_key
		 FROM contact_addresses ca JOIN mail_address a ON a.id = ca.address_id
		 WHERE ca.contact_id = $1`, c.Key)
	if err != nil {
		return fmt.Errorf("loading contact addresses: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var kind string
		var a contact.MailAddress
		if err := rows.Scan(&kind, &a.Key, &a.Street, &a.Office, &a.City, &a.StateCode, &a.PostalCode, &a.HashKey); err != nil {
			return fmt.Errorf("loading contact addresses: %w", err)
		}
		c.WithAddress(contact.Kind(kind), &a)
	}
	return rows.Err()
}
