package cart

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshot_Items(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	snap := NewSnapshot(db)
	ctx := context.Background()
	customerID := uint(5)

	cols := []string{"customer_id", "product_id", "quantity", "unit_price", "created_at"}

	t.Run("Success", func(t *testing.T) {
		rows := sqlmock.NewRows(cols).
			AddRow(customerID, 7, 2, "25.00", time.Now()).
			AddRow(customerID, 9, 1, "10.00", time.Now())

		mock.ExpectQuery(`SELECT customer_id, product_id, quantity, unit_price, created_at FROM carts WHERE customer_id = \$1`).
			WithArgs(customerID).
			WillReturnRows(rows)

		lines, err := snap.Items(ctx, customerID)
		require.NoError(t, err)
		require.Len(t, lines, 2)
		assert.Equal(t, uint(7), lines[0].ProductID)
		assert.Equal(t, 2, lines[0].Quantity)
		assert.True(t, lines[0].UnitPrice.Equal(decimal.RequireFromString("25.00")))
	})

	t.Run("EmptyCartIsEmptySliceNotError", func(t *testing.T) {
		mock.ExpectQuery(`SELECT .* FROM carts`).
			WithArgs(customerID).
			WillReturnRows(sqlmock.NewRows(cols))

		lines, err := snap.Items(ctx, customerID)
		require.NoError(t, err)
		assert.NotNil(t, lines)
		assert.Len(t, lines, 0)
	})

	t.Run("ZeroQuantityDefaultsToOne", func(t *testing.T) {
		rows := sqlmock.NewRows(cols).
			AddRow(customerID, 7, 0, "25.00", time.Now())

		mock.ExpectQuery(`SELECT .* FROM carts`).
			WithArgs(customerID).
			WillReturnRows(rows)

		lines, err := snap.Items(ctx, customerID)
		require.NoError(t, err)
		require.Len(t, lines, 1)
		assert.Equal(t, 1, lines[0].Quantity)
	})

	t.Run("DBError", func(t *testing.T) {
		mock.ExpectQuery(`SELECT .* FROM carts`).
			WillReturnError(errors.New("db down"))

		_, err := snap.Items(ctx, customerID)
		assert.ErrorIs(t, err, ErrFailedGetCartRows)
	})
}

func TestSnapshot_Total(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	snap := NewSnapshot(db)
	customerID := uint(5)

	cols := []string{"customer_id", "product_id", "quantity", "unit_price", "created_at"}

	t.Run("SumsLineSubtotals", func(t *testing.T) {
		rows := sqlmock.NewRows(cols).
			AddRow(customerID, 7, 2, "25.00", time.Now()).
			AddRow(customerID, 9, 1, "10.00", time.Now())

		mock.ExpectQuery(`SELECT .* FROM carts`).
			WithArgs(customerID).
			WillReturnRows(rows)

		total, err := snap.Total(context.Background(), customerID)
		require.NoError(t, err)
		assert.True(t, total.Equal(decimal.RequireFromString("60.00")), "got %s", total)
	})

	t.Run("EmptyCartIsZero", func(t *testing.T) {
		mock.ExpectQuery(`SELECT .* FROM carts`).
			WithArgs(customerID).
			WillReturnRows(sqlmock.NewRows(cols))

		total, err := snap.Total(context.Background(), customerID)
		require.NoError(t, err)
		assert.True(t, total.IsZero())
	})
}

func TestSnapshot_Clear(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	snap := NewSnapshot(db)
	customerID := uint(5)

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec(`DELETE FROM carts WHERE customer_id = \$1`).
			WithArgs(customerID).
			WillReturnResult(sqlmock.NewResult(0, 2))

		assert.NoError(t, snap.Clear(context.Background(), customerID))
	})

	t.Run("AlreadyEmptySucceeds", func(t *testing.T) {
		mock.ExpectExec(`DELETE FROM carts WHERE customer_id = \$1`).
			WithArgs(customerID).
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.NoError(t, snap.Clear(context.Background(), customerID))
	})

	t.Run("DBError", func(t *testing.T) {
		mock.ExpectExec(`DELETE FROM carts`).
			WillReturnError(errors.New("db down"))

		err := snap.Clear(context.Background(), customerID)
		assert.ErrorIs(t, err, ErrFailedClearCart)
	})
}

func TestLine_Subtotal(t *testing.T) {
	l := Line{Quantity: 3, UnitPrice: decimal.RequireFromString("12.50")}
	assert.True(t, l.Subtotal().Equal(decimal.RequireFromString("37.50")))
}
