package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"contacts-backend/internal/domains/contact"
)

type phoneStorage struct {
	pool *pgxpool.Pool
}

func NewPhoneStorage(pool *pgxpool.Pool) contact.PhoneStorage {
	return &phoneStorage{pool: pool}
}

const phoneColumns = "id, phone_area, phone_prefix, phone_suffix, hash_key"

func scanPhone(row pgx.Row) (*contact.PhoneNumber, error) {
	var p contact.PhoneNumber
	err := row.Scan(&p.Key, &p.AreaCode, &p.Prefix, &p.Suffix, &p.HashKey)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scanning phone number: %w", err)
	}
	return &p, nil
}

func (s *phoneStorage) FindByID(ctx context.Context, id int64) (*contact.PhoneNumber, error) {
	row := s.pool.QueryRow(ctx,
		"SELECT "+phoneColumns+" FROM phone_number WHERE id = $1", id)
	return scanPhone(row)
}

func (s *phoneStorage) FindByHash(ctx context.Context, hashKey int64) (*contact.PhoneNumber, error) {
	row := s.pool.QueryRow(ctx,
		"SELECT "+phoneColumns+" FROM phone_number WHERE hash_key = $1", hashKey)
	return scanPhone(row)
}

func (s *phoneStorage) Save(ctx context.Context, p *contact.PhoneNumber) (*contact.PhoneNumber, error) {
	p.PrepareHash()
	if p.WasSaved() {
		_, err := s.pool.Exec(ctx,
			`UPDATE phone_number SET phone_area = $2, phone_prefix = $3, phone_suffix = $4, hash_key = $5
			 WHERE id = $1`,
			p.Key, p.AreaCode, p.Prefix, p.Suffix, p.HashKey)
		if err != nil {
			return nil, translate("updating phone number", err)
		}
		return p, nil
	}
	err := s.pool.QueryRow(ctx,
		`INSERT INTO phone_number (phone_area, phone_prefix, phone_suffix, hash_key)
		 VALUES ($1, $2, $3, $4) RETURNING id`,
		p.AreaCode, p.Prefix, p.Suffix, p.HashKey).Scan(&p.Key)
	if err != nil {
		return nil, translate("inserting phone number", err)
	}
	return p, nil
}

func (s *phoneStorage) Delete(ctx context.Context, p *contact.PhoneNumber) error {
	_, err := s.pool.Exec(ctx, "DELETE FROM phone_number WHERE id = $1", p.Key)
	if err != nil {
		return fmt.Errorf("deleting phone number: %w", err)
	}
	return nil
}

func (s *phoneStorage) FindAll(ctx context.Context) ([]*contact.PhoneNumber, error) {
	rows, err := s.pool.Query(ctx,
		"SELECT "+phoneColumns+" FROM phone_number ORDER BY phone_area, phone_prefix, phone_suffix")
	if err != nil {
		return nil, fmt.Errorf("listing phone numbers: %w", err)
	}
	defer rows.Close()

	var results []*contact.PhoneNumber
	for rows.Next() {
		p, err := scanPhone(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, p)
	}
	return results, rows.Err()
}

func (s *phoneStorage) Count(ctx context.Context) (int64, error) {
	var count int64
	err := s.pool.QueryRow(ctx, "SELECT COUNT(*) FROM phone_number").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting phone numbers: %w", err)
	}
	return count, nil
}
