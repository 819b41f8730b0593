package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-item-custody/internal/logger"
	"github.com/MKhiriev/go-item-custody/internal/mock"
	"github.com/MKhiriev/go-item-custody/internal/store"
)

func TestItemService_CreateAndList(t *testing.T) {
	forEachEnv(t, func(t *testing.T, env *testEnv) {
		ctx := context.Background()
		alice := env.registered(t, "alice")
		bob := env.registered(t, "bob")

		first := env.item(t, alice, "lamp")
		env.item(t, bob, "chair")
		second := env.item(t, alice, "lamp")
		assert.NotEqual(t, first.ID, second.ID, "names are not unique, ids are")

		items, err := env.services.ItemService.ListItems(ctx, alice.ID)
		require.NoError(t, err)
		require.Len(t, items, 2)
		assert.Equal(t, first.ID, items[0].ID)
		assert.Equal(t, second.ID, items[1].ID)
		for _, item := range items {
			assert.Equal(t, alice.ID, item.OwnerID)
		}
	})
}

func TestItemService_CreateItem_EmptyName(t *testing.T) {
	env := newMemoryEnv(t)
	alice := env.registered(t, "alice")

	_, err := env.services.ItemService.CreateItem(context.Background(), alice.ID, "")
	assert.ErrorIs(t, err, ErrInvalidDataProvided)
}

func TestItemService_ListItems_Empty(t *testing.T) {
	env := newMemoryEnv(t)
	alice := env.registered(t, "alice")

	items, err := env.services.ItemService.ListItems(context.Background(), alice.ID)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestItemService_GetItem_Missing(t *testing.T) {
	env := newMemoryEnv(t)

	_, err := env.services.ItemService.GetItem(context.Background(), 404)
	assert.ErrorIs(t, err, store.ErrItemNotFound)
}

func TestItemService_DeleteItem(t *testing.T) {
	forEachEnv(t, func(t *testing.T, env *testEnv) {
		ctx := context.Background()
		alice := env.registered(t, "alice")
		bob := env.registered(t, "bob")
		item := env.item(t, alice, "lamp")

		deleted, err := env.services.ItemService.DeleteItem(ctx, bob.ID, item.ID)
		require.NoError(t, err)
		assert.False(t, deleted, "only the owner may delete")

		deleted, err = env.services.ItemService.DeleteItem(ctx, alice.ID, item.ID)
		require.NoError(t, err)
		assert.True(t, deleted)

		deleted, err = env.services.ItemService.DeleteItem(ctx, alice.ID, item.ID)
		require.NoError(t, err)
		assert.False(t, deleted)

		_, err = env.services.ItemService.GetItem(ctx, item.ID)
		assert.ErrorIs(t, err, store.ErrItemNotFound)
	})
}

func TestItemService_DeleteItem_RemovesPendingSendings(t *testing.T) {
	forEachEnv(t, func(t *testing.T, env *testEnv) {
		ctx := context.Background()
		alice := env.registered(t, "alice")
		bob := env.registered(t, "bob")
		item := env.item(t, alice, "lamp")

		token, err := env.services.TransferService.InitiateSending(ctx, alice.ID, bob.ID, item.ID)
		require.NoError(t, err)

		deleted, err := env.services.ItemService.DeleteItem(ctx, alice.ID, item.ID)
		require.NoError(t, err)
		require.True(t, deleted)

		_, err = env.storages.SendingRepository.FindSendingByToken(ctx, token)
		assert.ErrorIs(t, err, store.ErrSendingNotFound)

		status, err := env.services.TransferService.CompleteSending(ctx, token)
		require.NoError(t, err)
		assert.Equal(t, "no_sending", status.String())
	})
}

func TestItemService_DeleteItem_NotOwnedKeepsSendings(t *testing.T) {
	env := newMemoryEnv(t)
	ctx := context.Background()
	alice := env.registered(t, "alice")
	bob := env.registered(t, "bob")
	item := env.item(t, alice, "lamp")

	token, err := env.services.TransferService.InitiateSending(ctx, alice.ID, bob.ID, item.ID)
	require.NoError(t, err)

	deleted, err := env.services.ItemService.DeleteItem(ctx, bob.ID, item.ID)
	require.NoError(t, err)
	require.False(t, deleted)

	sending, err := env.storages.SendingRepository.FindSendingByToken(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, item.ID, sending.ItemID)
}

func TestItemService_DeleteItem_RepositoryError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	items := mock.NewMockItemRepository(ctrl)
	sendings := mock.NewMockSendingRepository(ctrl)
	tx := mock.NewMockTransactor(ctrl)
	svc := NewItemService(items, sendings, tx, logger.Nop())

	dbErr := errors.New("disk full")
	gomock.InOrder(
		tx.EXPECT().InTx(gomock.Any(), gomock.Any()).DoAndReturn(
			func(ctx context.Context, fn func(context.Context) error) error {
				return fn(ctx)
			},
		),
		sendings.EXPECT().DeleteItemSendings(gomock.Any(), int64(7)).Return(int64(1), nil),
		items.EXPECT().DeleteItem(gomock.Any(), int64(1), int64(7)).Return(false, dbErr),
	)

	deleted, err := svc.DeleteItem(context.Background(), 1, 7)
	assert.False(t, deleted)
	assert.ErrorIs(t, err, dbErr)
}
