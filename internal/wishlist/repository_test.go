package wishlist

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
		{ID: "p1", Name: "Rose Bush", Price: 20, Image: "rose.jpg", Stock: 4},
	}

	t.Run("Success", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec("DELETE FROM wishlist_items").
			WithArgs("sess-1").
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec("INSERT INTO wishlist_items").
			WithArgs("sess-1", "p1", "Rose Bush", 20.0, "rose.jpg", 4, 0).
			WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectCommit()

		assert.NoError(t, repo.Save(context.Background(), "sess-1", items))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("InsertError", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec("DELETE FROM wishlist_items").
			WithArgs("sess-1").
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec("INSERT INTO wishlist_items").
			WillReturnError(errors.New("db error"))
		mock.ExpectRollback()

		assert.Error(t, repo.Save(context.Background(), "sess-1", items))
	})
}

func TestRepository_Load(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	t.Run("Success", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"product_id", "name", "price", "image", "stock"}).
			AddRow("p1", "Rose Bush", 20.0, "rose.jpg", 4)

		mock.ExpectQuery("SELECT product_id, name, price, image, stock").
			WithArgs("sess-1").
			WillReturnRows(rows)

		items, err := repo.Load(context.Background(), "sess-1")
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, "Rose Bush", items[0].Name)
		assert.Equal(t, 4, items[0].Stock)
	})

	t.Run("Error", func(t *testing.T) {
		mock.ExpectQuery("SELECT product_id, name, price, image, stock").
			WillReturnError(errors.New("db error"))

		_, err := repo.Load(context.Background(), "sess-1")
		assert.Error(t, err)
	})
}
