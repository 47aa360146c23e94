package cart

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepository_Save(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	items := []Item{
		{ID: "p1", Name: "Rose Bush", Price: 12.5, Quantity: 2, Image: "rose.jpg"},
		{ID: "p2", Name: "Fern", Price: 8, Quantity: 1, Image: "fern.jpg"},
	}

	t.Run("Success", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec("DELETE FROM cart_items").
			WithArgs("sess-1").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("INSERT INTO cart_items").
			WithArgs("sess-1", "p1", "Rose Bush", 12.5, 2, "rose.jpg", 0).
			WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectExec("INSERT INTO cart_items").
			WithArgs("sess-1", "p2", "Fern", 8.0, 1, "fern.jpg", 1).
			WillReturnResult(sqlmock.NewResult(2, 1))
		mock.ExpectCommit()

		err := repo.Save(context.Background(), "sess-1", items)
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("EmptyCartDeletesRows", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec("DELETE FROM cart_items").
			WithArgs("sess-1").
			WillReturnResult(sqlmock.NewResult(0, 2))
		mock.ExpectCommit()

		err := repo.Save(context.Background(), "sess-1", nil)
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("InsertError", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec("DELETE FROM cart_items").
			WithArgs("sess-1").
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec("INSERT INTO cart_items").
			WillReturnError(errors.New("db error"))
		mock.ExpectRollback()

		err := repo.Save(context.Background(), "sess-1", items)
		assert.Error(t, err)
	})
}

func TestRepository_Load(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	t.Run("Success", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"product_id", "name", "price", "quantity", "image"}).
			AddRow("p1", "Rose Bush", 12.5, 2, "rose.jpg").
			AddRow("p2", "Fern", 8.0, 1, "fern.jpg")

		mock.ExpectQuery("SELECT product_id, name, price, quantity, image").
			WithArgs("sess-1").
			WillReturnRows(rows)

		items, err := repo.Load(context.Background(), "sess-1")
		require.NoError(t, err)
		require.Len(t, items, 2)
		assert.Equal(t, "p1", items[0].ID)
		assert.Equal(t, 2, items[0].Quantity)
	})

	t.Run("Empty", func(t *testing.T) {
		mock.ExpectQuery("SELECT product_id, name, price, quantity, image").
			WithArgs("sess-2").
			WillReturnRows(sqlmock.NewRows([]string{"product_id", "name", "price", "quantity", "image"}))

		items, err := repo.Load(context.Background(), "sess-2")
		assert.NoError(t, err)
		assert.Empty(t, items)
	})

	t.Run("Error", func(t *testing.T) {
		mock.ExpectQuery("SELECT product_id, name, price, quantity, image").
			WillReturnError(errors.New("db error"))

		_, err := repo.Load(context.Background(), "sess-1")
		assert.Error(t, err)
	})
}

func TestRepository_Clear(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	mock.ExpectExec("DELETE FROM cart_items").
		WithArgs("sess-1").
		WillReturnResult(sqlmock.NewResult(0, 3))

	assert.NoError(t, repo.Clear(context.Background(), "sess-1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
