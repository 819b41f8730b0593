package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-item-custody/internal/config"
	"github.com/MKhiriev/go-item-custody/internal/logger"
	"github.com/MKhiriev/go-item-custody/models"
)

// backends returns a fresh Storages per supported local backend.
func backends(t *testing.T) map[string]func(t *testing.T) *Storages {
	return map[string]func(t *testing.T) *Storages{
		config.DriverMemory: func(t *testing.T) *Storages {
			return NewMemoryStorages(logger.Nop())
		},
		config.DriverSQLite: func(t *testing.T) *Storages {
			s, err := NewStorages(context.Background(), config.Storage{DB: config.DB{
				Driver: config.DriverSQLite,
				DSN:    "file:" + filepath.Join(t.TempDir(), "items.db"),
			}}, logger.Nop())
			require.NoError(t, err)
			t.Cleanup(func() { s.Close() })
			return s
		},
	}
}

func forEachBackend(t *testing.T, test func(t *testing.T, s *Storages)) {
	for name, open := range backends(t) {
		t.Run(name, func(t *testing.T) {
			test(t, open(t))
		})
	}
}

func seedUser(t *testing.T, s *Storages, login string) models.User {
	t.Helper()
	user, err := s.UserRepository.CreateUser(context.Background(), models.User{Login: login, Password: login + "-digest"})
	require.NoError(t, err)
	return user
}

func seedItem(t *testing.T, s *Storages, ownerID int64, name string) models.Item {
	t.Helper()
	item, err := s.ItemRepository.CreateItem(context.Background(), models.Item{OwnerID: ownerID, Name: name})
	require.NoError(t, err)
	return item
}

func TestStorages_Users(t *testing.T) {
	forEachBackend(t, func(t *testing.T, s *Storages) {
		ctx := context.Background()
		alice := seedUser(t, s, "alice")
		assert.NotZero(t, alice.ID)

		_, err := s.UserRepository.CreateUser(ctx, models.User{Login: "alice", Password: "x"})
		assert.ErrorIs(t, err, ErrLoginAlreadyExists)

		_, err = s.UserRepository.UpdateToken(ctx, "alice", "wrong", "tok", time.Now())
		assert.ErrorIs(t, err, ErrNoUserWasFound)

		expiresAt := time.Now().Add(time.Hour).UTC().Truncate(time.Second)
		id, err := s.UserRepository.UpdateToken(ctx, "alice", "alice-digest", "tok-1", expiresAt)
		require.NoError(t, err)
		assert.Equal(t, alice.ID, id)

		found, err := s.UserRepository.FindUserByToken(ctx, "tok-1")
		require.NoError(t, err)
		assert.Equal(t, "alice", found.Login)
		require.NotNil(t, found.TokenExpiredAt)
		assert.True(t, expiresAt.Equal(*found.TokenExpiredAt))

		_, err = s.UserRepository.UpdateToken(ctx, "alice", "alice-digest", "tok-2", expiresAt)
		require.NoError(t, err)

		_, err = s.UserRepository.FindUserByToken(ctx, "tok-1")
		assert.ErrorIs(t, err, ErrNoUserWasFound, "previous token must be overwritten")

		byLogin, err := s.UserRepository.FindUserByLogin(ctx, "alice")
		require.NoError(t, err)
		assert.Equal(t, "tok-2", byLogin.Token)

		_, err = s.UserRepository.FindUserByLogin(ctx, "nobody")
		assert.ErrorIs(t, err, ErrNoUserWasFound)
	})
}

func TestStorages_Items(t *testing.T) {
	forEachBackend(t, func(t *testing.T, s *Storages) {
		ctx := context.Background()
		alice := seedUser(t, s, "alice")
		bob := seedUser(t, s, "bob")

		first := seedItem(t, s, alice.ID, "lamp")
		seedItem(t, s, bob.ID, "chair")
		second := seedItem(t, s, alice.ID, "lamp")

		items, err := s.ItemRepository.ListItems(ctx, alice.ID)
		require.NoError(t, err)
		assert.Equal(t, []models.Item{first, second}, items)

		got, err := s.ItemRepository.GetItem(ctx, first.ID)
		require.NoError(t, err)
		assert.Equal(t, first, got)

		moved, err := s.ItemRepository.TransferOwner(ctx, first.ID, bob.ID, alice.ID)
		require.NoError(t, err)
		assert.False(t, moved, "wrong expected owner")

		moved, err = s.ItemRepository.TransferOwner(ctx, first.ID, alice.ID, bob.ID)
		require.NoError(t, err)
		assert.True(t, moved)

		deleted, err := s.ItemRepository.DeleteItem(ctx, alice.ID, first.ID)
		require.NoError(t, err)
		assert.False(t, deleted, "alice no longer owns the item")

		deleted, err = s.ItemRepository.DeleteItem(ctx, bob.ID, first.ID)
		require.NoError(t, err)
		assert.True(t, deleted)

		_, err = s.ItemRepository.GetItem(ctx, first.ID)
		assert.ErrorIs(t, err, ErrItemNotFound)
	})
}

func TestStorages_Sendings(t *testing.T) {
	forEachBackend(t, func(t *testing.T, s *Storages) {
		ctx := context.Background()
		alice := seedUser(t, s, "alice")
		bob := seedUser(t, s, "bob")
		carol := seedUser(t, s, "carol")
		item := seedItem(t, s, alice.ID, "lamp")

		created, err := s.SendingRepository.CreateSending(ctx, models.Sending{
			ItemID: item.ID, FromUserID: alice.ID, ToUserID: bob.ID, ItemToken: "t-bob",
		})
		require.NoError(t, err)
		assert.True(t, created)

		created, err = s.SendingRepository.CreateSending(ctx, models.Sending{
			ItemID: item.ID, FromUserID: alice.ID, ToUserID: bob.ID, ItemToken: "t-other",
		})
		require.NoError(t, err)
		assert.False(t, created, "same triple must not be inserted twice")

		token, err := s.SendingRepository.FindItemToken(ctx, item.ID, alice.ID, bob.ID)
		require.NoError(t, err)
		assert.Equal(t, "t-bob", token)

		_, err = s.SendingRepository.CreateSending(ctx, models.Sending{
			ItemID: item.ID, FromUserID: alice.ID, ToUserID: carol.ID, ItemToken: "t-carol",
		})
		require.NoError(t, err)

		sending, err := s.SendingRepository.FindSendingByToken(ctx, "t-bob")
		require.NoError(t, err)
		assert.Equal(t, bob.ID, sending.ToUserID)

		n, err := s.SendingRepository.DeleteStaleSendings(ctx, item.ID, alice.ID)
		require.NoError(t, err)
		assert.Zero(t, n)

		n, err = s.SendingRepository.DeleteStaleSendings(ctx, item.ID, bob.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(2), n)

		_, err = s.SendingRepository.FindSendingByToken(ctx, "t-bob")
		assert.ErrorIs(t, err, ErrSendingNotFound)
	})
}

func TestStorages_DeleteItemCascadesToSendings(t *testing.T) {
	forEachBackend(t, func(t *testing.T, s *Storages) {
		ctx := context.Background()
		alice := seedUser(t, s, "alice")
		bob := seedUser(t, s, "bob")
		item := seedItem(t, s, alice.ID, "lamp")

		_, err := s.SendingRepository.CreateSending(ctx, models.Sending{
			ItemID: item.ID, FromUserID: alice.ID, ToUserID: bob.ID, ItemToken: "t",
		})
		require.NoError(t, err)

		deleted, err := s.ItemRepository.DeleteItem(ctx, alice.ID, item.ID)
		require.NoError(t, err)
		require.True(t, deleted)

		_, err = s.SendingRepository.FindSendingByToken(ctx, "t")
		assert.ErrorIs(t, err, ErrSendingNotFound)
	})
}

func TestStorages_InTxRollback(t *testing.T) {
	forEachBackend(t, func(t *testing.T, s *Storages) {
		ctx := context.Background()
		alice := seedUser(t, s, "alice")
		bob := seedUser(t, s, "bob")
		item := seedItem(t, s, alice.ID, "lamp")
		errAbort := errors.New("abort")

		err := s.Transactor.InTx(ctx, func(ctx context.Context) error {
			moved, err := s.ItemRepository.TransferOwner(ctx, item.ID, alice.ID, bob.ID)
			require.NoError(t, err)
			require.True(t, moved)
			return errAbort
		})
		assert.ErrorIs(t, err, errAbort)

		got, err := s.ItemRepository.GetItem(ctx, item.ID)
		require.NoError(t, err)
		assert.Equal(t, alice.ID, got.OwnerID, "ownership change must be rolled back")
	})
}

func TestNewStorages_UnknownDriver(t *testing.T) {
	_, err := NewStorages(context.Background(), config.Storage{DB: config.DB{Driver: "mysql"}}, logger.Nop())
	assert.ErrorIs(t, err, ErrUnknownDriver)
}

func TestStorages_CloseMemory(t *testing.T) {
	assert.NoError(t, NewMemoryStorages(logger.Nop()).Close())
}
