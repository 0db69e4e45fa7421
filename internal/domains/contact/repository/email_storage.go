package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"contacts-backend/internal/domains/contact"
)

type emailStorage struct {
	pool *pgxpool.Pool
}

func NewEmailStorage(pool *pgxpool.Pool) contact.EmailStorage {
	return &emailStorage{pool: pool}
}

const emailColumns = "id, account, hostname, hash_key"

func scanEmail(row pgx.Row) (*contact.EmailAddress, error) {
	var e contact.EmailAddress
	err := row.Scan(&e.Key, &e.Account, &e.HostName, &e.HashKey)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scanning email address: %w", err)
	}
	return &e, nil
}

func (s *emailStorage) FindByID(ctx context.Context, id int64) (*contact.EmailAddress, error) {
	row := s.pool.QueryRow(ctx,
		"SELECT "+emailColumns+" FROM email_address WHERE id = $1", id)
	return scanEmail(row)
}

func (s *emailStorage) FindByHash(ctx context.Context, hashKey int64) (*contact.EmailAddress, error) {
	row := s.pool.QueryRow(ctx,
		"SELECT "+emailColumns+" FROM email_address WHERE hash_key = $1", hashKey)
	return scanEmail(row)
}

func (s *emailStorage) Save(ctx context.Context, e *contact.EmailAddress) (*contact.EmailAddress, error) {
	e.PrepareHash()
	if e.WasSaved() {
		_, err := s.pool.Exec(ctx,
			"UPDATE email_address SET account = $2, hostname = $3, hash_key = $4 WHERE id = $1",
			e.Key, e.Account, e.HostName, e.HashKey)
		if err != nil {
			return nil, translate("updating email address", err)
		}
		return e, nil
	}
	err := s.pool.QueryRow(ctx,
		"INSERT INTO email_address (account, hostname, hash_key) VALUES ($1, $2, $3) RETURNING id",
		e.Account, e.HostName, e.HashKey).Scan(&e.Key)
	if err != nil {
		return nil, translate("inserting email address", err)
	}
	return e, nil
}

func (s *emailStorage) Delete(ctx context.Context, e *contact.EmailAddress) error {
	_, err := s.pool.Exec(ctx, "DELETE FROM email_address WHERE id = $1", e.Key)
	if err != nil {
		return fmt.Errorf("deleting email address: %w", err)
	}
	return nil
}

func (s *emailStorage) FindAll(ctx context.Context) ([]*contact.EmailAddress, error) {
	rows, err := s.pool.Query(ctx,
		"SELECT "+emailColumns+" FROM email_address ORDER BY account, hostname")
	if err != nil {
		return nil, fmt.Errorf("listing email addresses: %w", err)
	}
	defer rows.Close()

	var results []*contact.EmailAddress
	for rows.Next() {
		e, err := scanEmail(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, e)
	}
	return results, rows.Err()
}

func (s *emailStorage) Count(ctx context.Context) (int64, error) {
	var count int64
	err := s.pool.QueryRow(ctx, "SELECT COUNT(*) FROM email_address").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting email addresses: %w", err)
	}
	return count, nil
}
