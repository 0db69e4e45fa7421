package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"contacts-backend/internal/domains/contact"
)

type addressStorage struct {
	pool *pgxpool.Pool
}

func NewAddressStorage(pool *pgxpool.Pool) contact.AddressStorage {
	return &addressStorage{pool: pool}
}

const addressColumns = "id, street, office, city, state_code, postal_code, hash_key"

func scanAddress(row pgx.Row) (*contact.MailAddress, error) {
	var a contact.MailAddress
	err := row.Scan(&a.Key, &a.Street, &a.Office, &a.City, &a.StateCode, &a.PostalCode, &a.HashKey)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scanning mail address: %w", err)
	}
	return &a, nil
}

func (s *addressStorage) FindByID(ctx context.Context, id int64) (*contact.MailAddress, error) {
	row := s.pool.QueryRow(ctx,
		"SELECT "+addressColumns+" FROM mail_address WHERE id = $1", id)
	return scanAddress(row)
}

func (s *addressStorage) FindByHash(ctx context.Context, hashKey int64) (*contact.MailAddress, error) {
	row := s.pool.QueryRow(ctx,
		"SELECT "+addressColumns+" FROM mail_address WHERE hash_key = $1", hashKey)
	return scanAddress(row)
}

func (s *addressStorage) Save(ctx context.Context, a *contact.MailAddress) (*contact.MailAddress, error) {
	a.PrepareHash()
	if a.WasSaved() {
		_, err := s.pool.Exec(ctx,
			`UPDATE mail_address SET street = $2, office = $3, city = $4, state_code = $5, postal_code = $6, hash_key = $7
			 WHERE id = $1`,
			a.Key, a.Street, a.Office, a.City, a.StateCode, a.PostalCode, a.HashKey)
		if err != nil {
			return nil, translate("updating mail address", err)
		}
		return a, nil
	}
	err := s.pool.QueryRow(ctx,
		`INSERT INTO mail_address (street, office, city, state_code, postal_code, hash_key)
		 VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`,
		a.Street, a.Office, a.City, a.StateCode, a.PostalCode, a.HashKey).Scan(&a.Key)
	if err != nil {
		return nil, translate("inserting mail address", err)
	}
	return a, nil
}

func (s *addressStorage) Delete(ctx context.Context, a *contact.MailAddress) error {
	_, err := s.pool.Exec(ctx, "DELETE FROM mail_address WHERE id = $1", a.Key)
	if err != nil {
		return fmt.Errorf("deleting mail address: %w", err)
	}
	return nil
}

func (s *addressStorage) FindAll(ctx context.Context) ([]*contact.MailAddress, error) {
	rows, err := s.pool.Query(ctx,
		"SELECT "+addressColumns+" FROM mail_address ORDER BY state_code, city, street")
	if err != nil {
		return nil, fmt.Errorf("listing mail addresses: %w", err)
	}
	defer rows.Close()

	var results []*contact.MailAddress
	for rows.Next() {
		a, err := scanAddress(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, a)
	}
	return results, rows.Err()
}

func (s *addressStorage) Count(ctx context.Context) (int64, error) {
	var count int64
	err := s.pool.QueryRow(ctx, "SELECT COUNT(*) FROM mail_address").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting mail addresses: %w", err)
	}
	return count, nil
}
