package repository

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"contacts-backend/internal/domains/contact"
)

const uniqueViolation = "23505"

// NewRegistry wires one Postgres gateway per entity type. The result is
// handed to contact.Use exactly once at boot.
func NewRegistry(pool *pgxpool.Pool) *contact.Registry {
	return &contact.Registry{
		Contacts:  NewContactStorage(pool),
		Phones:    NewPhoneStorage(pool),
		Emails:    NewEmailStorage(pool),
		Addresses: NewAddressStorage(pool),
	}
}

// translate maps a lost insert race on a hash_key unique constraint onto
// the sentinel the lifecycle re-reads on. Anything else is wrapped as-is.
func translate(op string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return fmt.Errorf("%s: %w", op, contact.ErrDuplicateHash)
	}
	return fmt.Errorf("%s: %w", op, err)
}
