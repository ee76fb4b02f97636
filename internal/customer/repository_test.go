package customer

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepository_Get(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"id", "city", "country", "contact", "email"}).
			AddRow(3, "Accra", "Ghana", "+233201234567", "buyer@example.com")

		mock.ExpectQuery(`SELECT id, city, country, contact, email FROM customers WHERE id = \$1`).
			WithArgs(uint(3)).
			WillReturnRows(rows)

		p, err := repo.Get(ctx, 3)
		require.NoError(t, err)
		assert.Equal(t, uint(3), p.CustomerID)
		assert.Equal(t, "Accra", p.City)
		assert.Equal(t, "buyer@example.com", p.Email)
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectQuery(`SELECT id, city, country, contact, email FROM customers`).
			WithArgs(uint(99)).
			WillReturnRows(sqlmock.NewRows([]string{"id", "city", "country", "contact", "email"}))

		p, err := repo.Get(ctx, 99)
		assert.ErrorIs(t, err, ErrCustomerNotFound)
		assert.Nil(t, p)
	})

	t.Run("DBError", func(t *testing.T) {
		mock.ExpectQuery(`SELECT id, city, country, contact, email FROM customers`).
			WillReturnError(errors.New("db down"))

		_, err := repo.Get(ctx, 3)
		assert.Error(t, err)
	})
}

func TestProfile_ShippingAddress(t *testing.T) {
	t.Run("CityAndCountry", func(t *testing.T) {
		p := &Profile{City: "Accra", Country: "Ghana"}
		assert.Equal(t, "Accra, Ghana", p.ShippingAddress())
	})

	t.Run("CountryOnly", func(t *testing.T) {
		p := &Profile{Country: "Ghana"}
		assert.Equal(t, "Ghana", p.ShippingAddress())
	})

	t.Run("Empty", func(t *testing.T) {
		p := &Profile{}
		assert.Equal(t, "", p.ShippingAddress())
	})
}
