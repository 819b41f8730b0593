package store

import (
	"cmp"
	"context"
	"fmt"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/MKhiriev/go-item-custody/internal/logger"
	"github.com/MKhiriev/go-item-custody/models"
)

// MemoryStore keeps users, items and sendings in process memory. It
// implements every repository interface and [Transactor]; a transaction
// holds the store mutex until it finishes and restores a snapshot when fn
// fails.
type MemoryStore struct {
	mu     sync.Mutex
	state  memoryState
	logger *logger.Logger
}

type memoryState struct {
	users    map[int64]models.User
	items    map[int64]models.Item
	sendings map[int64]models.Sending

	nextUserID    int64
	nextItemID    int64
	nextSendingID int64
}

func (s memoryState) clone() memoryState {
	s.users = maps.Clone(s.users)
	s.items = maps.Clone(s.items)
	s.sendings = maps.Clone(s.sendings)
	return s
}

type memoryTxKey struct{}

// NewMemoryStore returns an empty store.
func NewMemoryStore(logger *logger.Logger) *MemoryStore {
	logger.Debug().Msg("creating memory store")
	return &MemoryStore{
		state: memoryState{
			users:    make(map[int64]models.User),
			items:    make(map[int64]models.Item),
			sendings: make(map[int64]models.Sending),
		},
		logger: logger,
	}
}

func (s *MemoryStore) inTx(ctx context.Context) bool {
	owner, _ := ctx.Value(memoryTxKey{}).(*MemoryStore)
	return owner == s
}

// do runs fn under the store mutex unless ctx already carries a
// transaction of this store.
func (s *MemoryStore) do(ctx context.Context, fn func(st *memoryState) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if !s.inTx(ctx) {
		s.mu.Lock()
		defer s.mu.Unlock()
	}

	return fn(&s.state)
}

// InTx implements [Transactor].
func (s *MemoryStore) InTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if s.inTx(ctx) {
		return fn(ctx)
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.state.clone()

	err := fn(context.WithValue(ctx, memoryTxKey{}, s))
	if err == nil {
		err = ctx.Err()
	}
	if err != nil {
		s.state = snapshot
		return err
	}

	return nil
}

// CreateUser implements [UserRepository].
func (s *MemoryStore) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	err := s.do(ctx, func(st *memoryState) error {
		for _, u := range st.users {
			if u.Login == user.Login {
				return ErrLoginAlreadyExists
			}
		}

		st.nextUserID++
		user.ID = st.nextUserID
		user.Token = ""
		user.TokenExpiredAt = nil
		st.users[user.ID] = user
		return nil
	})
	if err != nil {
		return models.User{}, err
	}

	return user, nil
}

// UpdateToken implements [UserRepository].
func (s *MemoryStore) UpdateToken(ctx context.Context, login, password, token string, expiresAt time.Time) (int64, error) {
	var userID int64
	err := s.do(ctx, func(st *memoryState) error {
		for id, u := range st.users {
			if u.Login != login || u.Password != password {
				continue
			}
			u.Token = token
			u.TokenExpiredAt = &expiresAt
			st.users[id] = u
			userID = id
			return nil
		}
		return ErrNoUserWasFound
	})

	return userID, err
}

// FindUserByToken implements [UserRepository].
func (s *MemoryStore) FindUserByToken(ctx context.Context, token string) (models.User, error) {
	return s.findUser(ctx, func(u models.User) bool {
		return token != "" && u.Token == token
	})
}

// FindUserByLogin implements [UserRepository].
func (s *MemoryStore) FindUserByLogin(ctx context.Context, login string) (models.User, error) {
	return s.findUser(ctx, func(u models.User) bool {
		return u.Login == login
	})
}

func (s *MemoryStore) findUser(ctx context.Context, match func(models.User) bool) (models.User, error) {
	var found models.User
	err := s.do(ctx, func(st *memoryState) error {
		for _, u := range st.users {
			if match(u) {
				found = u
				return nil
			}
		}
		return ErrNoUserWasFound
	})

	return found, err
}

// CreateItem implements [ItemRepository].
func (s *MemoryStore) CreateItem(ctx context.Context, item models.Item) (models.Item, error) {
	err := s.do(ctx, func(st *memoryState) error {
		if _, ok := st.users[item.OwnerID]; !ok {
			return fmt.Errorf("%w: owner %d: %w", ErrExecutingQuery, item.OwnerID, ErrNoUserWasFound)
		}

		st.nextItemID++
		item.ID = st.nextItemID
		st.items[item.ID] = item
		return nil
	})
	if err != nil {
		return models.Item{}, err
	}

	return item, nil
}

// GetItem implements [ItemRepository].
func (s *MemoryStore) GetItem(ctx context.Context, id int64) (models.Item, error) {
	var item models.Item
	err := s.do(ctx, func(st *memoryState) error {
		var ok bool
		if item, ok = st.items[id]; !ok {
			return ErrItemNotFound
		}
		return nil
	})

	return item, err
}

// ListItems implements [ItemRepository].
func (s *MemoryStore) ListItems(ctx context.Context, ownerID int64) ([]models.Item, error) {
	items := make([]models.Item, 0, 16)
	err := s.do(ctx, func(st *memoryState) error {
		for _, item := range st.items {
			if item.OwnerID == ownerID {
				items = append(items, item)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slices.SortFunc(items, func(a, b models.Item) int {
		return cmp.Compare(a.ID, b.ID)
	})

	return items, nil
}

// DeleteItem implements [ItemRepository]. Sendings of the item go with it,
// as the foreign key cascade does in SQL.
func (s *MemoryStore) DeleteItem(ctx context.Context, ownerID, id int64) (bool, error) {
	var deleted bool
	err := s.do(ctx, func(st *memoryState) error {
		item, ok := st.items[id]
		if !ok || item.OwnerID != ownerID {
			return nil
		}

		delete(st.items, id)
		maps.DeleteFunc(st.sendings, func(_ int64, sending models.Sending) bool {
			return sending.ItemID == id
		})
		deleted = true
		return nil
	})

	return deleted, err
}

// TransferOwner implements [ItemRepository].
func (s *MemoryStore) TransferOwner(ctx context.Context, id, expectedOwner, newOwner int64) (bool, error) {
	var moved bool
	err := s.do(ctx, func(st *memoryState) error {
		item, ok := st.items[id]
		if !ok || item.OwnerID != expectedOwner {
			return nil
		}

		item.OwnerID = newOwner
		st.items[id] = item
		moved = true
		return nil
	})

	return moved, err
}

// FindItemToken implements [SendingRepository].
func (s *MemoryStore) FindItemToken(ctx context.Context, itemID, fromUserID, toUserID int64) (string, error) {
	var itemToken string
	err := s.do(ctx, func(st *memoryState) error {
		for _, sending := range st.sendings {
			if sending.ItemID == itemID && sending.FromUserID == fromUserID && sending.ToUserID == toUserID {
				itemToken = sending.ItemToken
				return nil
			}
		}
		return ErrSendingNotFound
	})

	return itemToken, err
}

// CreateSending implements [SendingRepository].
func (s *MemoryStore) CreateSending(ctx context.Context, sending models.Sending) (bool, error) {
	var created bool
	err := s.do(ctx, func(st *memoryState) error {
		if _, ok := st.items[sending.ItemID]; !ok {
			return fmt.Errorf("%w: item %d: %w", ErrExecutingQuery, sending.ItemID, ErrItemNotFound)
		}

		for _, existing := range st.sendings {
			if existing.ItemToken == sending.ItemToken {
				return fmt.Errorf("%w: duplicate item token", ErrExecutingQuery)
			}
			if existing.ItemID == sending.ItemID &&
				existing.FromUserID == sending.FromUserID &&
				existing.ToUserID == sending.ToUserID {
				return nil
			}
		}

		st.nextSendingID++
		sending.ID = st.nextSendingID
		st.sendings[sending.ID] = sending
		created = true
		return nil
	})

	return created, err
}

// FindSendingByToken implements [SendingRepository].
func (s *MemoryStore) FindSendingByToken(ctx context.Context, itemToken string) (models.Sending, error) {
	var found models.Sending
	err := s.do(ctx, func(st *memoryState) error {
		for _, sending := range st.sendings {
			if sending.ItemToken == itemToken {
				found = sending
				return nil
			}
		}
		return ErrSendingNotFound
	})

	return found, err
}

// DeleteSending implements [SendingRepository].
func (s *MemoryStore) DeleteSending(ctx context.Context, id int64) (bool, error) {
	var deleted bool
	err := s.do(ctx, func(st *memoryState) error {
		if _, ok := st.sendings[id]; ok {
			delete(st.sendings, id)
			deleted = true
		}
		return nil
	})

	return deleted, err
}

// DeleteItemSendings implements [SendingRepository].
func (s *MemoryStore) DeleteItemSendings(ctx context.Context, itemID int64) (int64, error) {
	return s.deleteSendings(ctx, func(sending models.Sending) bool {
		return sending.ItemID == itemID
	})
}

// DeleteStaleSendings implements [SendingRepository].
func (s *MemoryStore) DeleteStaleSendings(ctx context.Context, itemID, ownerID int64) (int64, error) {
	return s.deleteSendings(ctx, func(sending models.Sending) bool {
		return sending.ItemID == itemID && sending.FromUserID != ownerID
	})
}

func (s *MemoryStore) deleteSendings(ctx context.Context, match func(models.Sending) bool) (int64, error) {
	var deleted int64
	err := s.do(ctx, func(st *memoryState) error {
		for id, sending := range st.sendings {
			if match(sending) {
				delete(st.sendings, id)
				deleted++
			}
		}
		return nil
	})

	return deleted, err
}
