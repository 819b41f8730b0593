package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-item-custody/internal/logger"
	"github.com/MKhiriev/go-item-custody/models"
)

func TestMemoryStore_ListItemsSortedByID(t *testing.T) {
	s := NewMemoryStore(logger.Nop())
	owner, err := s.CreateUser(context.Background(), models.User{Login: "alice"})
	require.NoError(t, err)

	for _, id := range []int64{3, 1, 2} {
		s.state.items[id] = models.Item{ID: id, OwnerID: owner.ID, Name: "item"}
	}

	items, err := s.ListItems(context.Background(), owner.ID)
	require.NoError(t, err)

	ids := make([]int64, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ID)
	}
	assert.Equal(t, []int64{1, 2, 3}, ids)
}

func TestMemoryStore_CancelledContext(t *testing.T) {
	s := NewMemoryStore(logger.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.CreateUser(ctx, models.User{Login: "alice"})
	assert.ErrorIs(t, err, context.Canceled)

	err = s.InTx(ctx, func(ctx context.Context) error { return nil })
	assert.ErrorIs(t, err, ErrBeginningTransaction)
}

func TestMemoryStore_InTxRollsBackCounters(t *testing.T) {
	s := NewMemoryStore(logger.Nop())
	ctx := context.Background()

	_ = s.InTx(ctx, func(ctx context.Context) error {
		_, err := s.CreateUser(ctx, models.User{Login: "ghost"})
		require.NoError(t, err)
		return assert.AnError
	})

	_, err := s.FindUserByLogin(ctx, "ghost")
	assert.ErrorIs(t, err, ErrNoUserWasFound)

	user, err := s.CreateUser(ctx, models.User{Login: "alice"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), user.ID)
}

func TestMemoryStore_CreateItemUnknownOwner(t *testing.T) {
	s := NewMemoryStore(logger.Nop())

	_, err := s.CreateItem(context.Background(), models.Item{OwnerID: 42, Name: "lamp"})
	assert.ErrorIs(t, err, ErrNoUserWasFound)
}

func TestMemoryStore_FindUserByEmptyToken(t *testing.T) {
	s := NewMemoryStore(logger.Nop())
	_, err := s.CreateUser(context.Background(), models.User{Login: "alice"})
	require.NoError(t, err)

	_, err = s.FindUserByToken(context.Background(), "")
	assert.ErrorIs(t, err, ErrNoUserWasFound)
}
