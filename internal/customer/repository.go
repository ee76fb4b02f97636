package customer

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

var ErrCustomerNotFound = errors.New("customer not found")

type Repository interface {
	Get(ctx context.Context, customerID uint) (*Profile, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Get(ctx context.Context, customerID uint) (*Profile, error) {
	query := `
		SELECT id, city, country, contact, email
		FROM customers
		WHERE id = $1
	`

	var p Profile
	err := r.db.QueryRowContext(ctx, query, customerID).Scan(
		&p.CustomerID,
		&p.City,
		&p.Country,
		&p.Contact,
		&p.Email,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCustomerNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get customer profile: %w", err)
	}

	return &p, nil
}
