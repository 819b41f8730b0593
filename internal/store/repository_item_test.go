package store

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-item-custody/internal/logger"
	"github.com/MKhiriev/go-item-custody/models"
)

func newTestItemRepo(t *testing.T) (ItemRepository, sqlmock.Sqlmock) {
	db, mock := newMockDB(t)
	return NewItemRepository(db, logger.Nop()), mock
}

func TestCreateItem(t *testing.T) {
	repo, mock := newTestItemRepo(t)

	mock.ExpectQuery("INSERT INTO items (user_id,name) VALUES ($1,$2) RETURNING id").
		WithArgs(int64(7), "lamp").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(12))

	item, err := repo.CreateItem(context.Background(), models.Item{OwnerID: 7, Name: "lamp"})
	require.NoError(t, err)
	assert.Equal(t, models.Item{ID: 12, OwnerID: 7, Name: "lamp"}, item)
}

func TestCreateItem_Error(t *testing.T) {
	repo, mock := newTestItemRepo(t)

	mock.ExpectQuery("INSERT INTO items (user_id,name) VALUES ($1,$2) RETURNING id").
		WithArgs(int64(7), "lamp").
		WillReturnError(errors.New("broken pipe"))

	_, err := repo.CreateItem(context.Background(), models.Item{OwnerID: 7, Name: "lamp"})
	assert.ErrorIs(t, err, ErrExecutingQuery)
}

func TestGetItem(t *testing.T) {
	repo, mock := newTestItemRepo(t)

	mock.ExpectQuery("SELECT id, user_id, name FROM items WHERE id = $1").
		WithArgs(int64(12)).
		WillReturnRows(sqlmock.NewRows(itemColumns).AddRow(12, 7, "lamp"))

	item, err := repo.GetItem(context.Background(), 12)
	require.NoError(t, err)
	assert.Equal(t, models.Item{ID: 12, OwnerID: 7, Name: "lamp"}, item)
}

func TestGetItem_NotFound(t *testing.T) {
	repo, mock := newTestItemRepo(t)

	mock.ExpectQuery("SELECT id, user_id, name FROM items WHERE id = $1").
		WithArgs(int64(12)).
		WillReturnRows(sqlmock.NewRows(itemColumns))

	_, err := repo.GetItem(context.Background(), 12)
	assert.ErrorIs(t, err, ErrItemNotFound)
}

func TestListItems(t *testing.T) {
	repo, mock := newTestItemRepo(t)

	mock.ExpectQuery("SELECT id, user_id, name FROM items WHERE user_id = $1 ORDER BY id ASC").
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows(itemColumns).
			AddRow(1, 7, "a").
			AddRow(2, 7, "b").
			AddRow(3, 7, "c"))

	items, err := repo.ListItems(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, items, 3)
	for i, item := range items {
		assert.Equal(t, int64(i+1), item.ID)
	}
}

func TestListItems_Empty(t *testing.T) {
	repo, mock := newTestItemRepo(t)

	mock.ExpectQuery("SELECT id, user_id, name FROM items WHERE user_id = $1 ORDER BY id ASC").
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows(itemColumns))

	items, err := repo.ListItems(context.Background(), 7)
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

func TestListItems_RowError(t *testing.T) {
	repo, mock := newTestItemRepo(t)

	mock.ExpectQuery("SELECT id, user_id, name FROM items WHERE user_id = $1 ORDER BY id ASC").
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows(itemColumns).
			AddRow(1, 7, "a").
			RowError(0, errors.New("row failure")))

	_, err := repo.ListItems(context.Background(), 7)
	assert.ErrorIs(t, err, ErrScanningRows)
}

func TestDeleteItem(t *testing.T) {
	tests := []struct {
		name     string
		affected int64
		want     bool
	}{
		{name: "deleted", affected: 1, want: true},
		{name: "missing or foreign", affected: 0, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newTestItemRepo(t)

			mock.ExpectExec("DELETE FROM items WHERE id = $1 AND user_id = $2").
				WithArgs(int64(12), int64(7)).
				WillReturnResult(sqlmock.NewResult(0, tt.affected))

			deleted, err := repo.DeleteItem(context.Background(), 7, 12)
			require.NoError(t, err)
			assert.Equal(t, tt.want, deleted)
		})
	}
}

func TestTransferOwner(t *testing.T) {
	tests := []struct {
		name     string
		affected int64
		want     bool
	}{
		{name: "moved", affected: 1, want: true},
		{name: "stale owner", affected: 0, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newTestItemRepo(t)

			mock.ExpectExec("UPDATE items SET user_id = $1 WHERE id = $2 AND user_id = $3").
				WithArgs(int64(8), int64(12), int64(7)).
				WillReturnResult(sqlmock.NewResult(0, tt.affected))

			moved, err := repo.TransferOwner(context.Background(), 12, 7, 8)
			require.NoError(t, err)
			assert.Equal(t, tt.want, moved)
		})
	}
}

func TestTransferOwner_Error(t *testing.T) {
	repo, mock := newTestItemRepo(t)

	mock.ExpectExec("UPDATE items SET user_id = $1 WHERE id = $2 AND user_id = $3").
		WithArgs(int64(8), int64(12), int64(7)).
		WillReturnError(errors.New("lost connection"))

	_, err := repo.TransferOwner(context.Background(), 12, 7, 8)
	assert.ErrorIs(t, err, ErrExecutingStatement)
}
