package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-item-custody/internal/logger"
	"github.com/MKhiriev/go-item-custody/internal/store"
	"github.com/MKhiriev/go-item-custody/models"
)

type itemService struct {
	itemRepository    store.ItemRepository
	sendingRepository store.SendingRepository
	transactor        store.Transactor

	logger *logger.Logger
}

// NewItemService constructs an ItemService. Deletes run inside transactor so
// that an item and its pending sendings disappear together.
func NewItemService(itemRepository store.ItemRepository, sendingRepository store.SendingRepository,
	transactor store.Transactor, logger *logger.Logger) ItemService {
	return &itemService{
		itemRepository:    itemRepository,
		sendingRepository: sendingRepository,
		transactor:        transactor,
		logger:            logger,
	}
}

func (s *itemService) CreateItem(ctx context.Context, ownerID int64, name string) (models.Item, error) {
	log := logger.FromContext(ctx)

	if name == "" {
		log.Error().Int64("owner_id", ownerID).Msg("empty item name provided")
		return models.Item{}, ErrInvalidDataProvided
	}

	item, err := s.itemRepository.CreateItem(ctx, models.Item{OwnerID: ownerID, Name: name})
	if err != nil {
		log.Err(err).Int64("owner_id", ownerID).Msg("item creation ended with error")
		return models.Item{}, fmt.Errorf("item creation ended with error: %w", err)
	}

	return item, nil
}

func (s *itemService) GetItem(ctx context.Context, id int64) (models.Item, error) {
	item, err := s.itemRepository.GetItem(ctx, id)
	if err != nil {
		return models.Item{}, fmt.Errorf("get item %d: %w", id, err)
	}

	return item, nil
}

func (s *itemService) ListItems(ctx context.Context, ownerID int64) ([]models.Item, error) {
	items, err := s.itemRepository.ListItems(ctx, ownerID)
	if err != nil {
		logger.FromContext(ctx).Err(err).Int64("owner_id", ownerID).Msg("listing items failed")
		return nil, fmt.Errorf("listing items failed: %w", err)
	}

	return items, nil
}

// DeleteItem removes the item and every sending that references it. A
// missing item, or one owned by someone else, leaves everything untouched
// and reports false.
func (s *itemService) DeleteItem(ctx context.Context, ownerID, id int64) (bool, error) {
	log := logger.FromContext(ctx)

	err := s.transactor.InTx(ctx, func(ctx context.Context) error {
		if _, err := s.sendingRepository.DeleteItemSendings(ctx, id); err != nil {
			return err
		}

		deleted, err := s.itemRepository.DeleteItem(ctx, ownerID, id)
		if err != nil {
			return err
		}
		if !deleted {
			return errNothingDeleted
		}

		return nil
	})
	if errors.Is(err, errNothingDeleted) {
		log.Debug().Int64("item_id", id).Int64("owner_id", ownerID).Msg("nothing to delete")
		return false, nil
	}
	if err != nil {
		log.Err(err).Int64("item_id", id).Msg("item deletion failed")
		return false, fmt.Errorf("item deletion failed: %w", err)
	}

	return true, nil
}

func (s *itemService) TransferOwner(ctx context.Context, id, expectedOwner, newOwner int64) (bool, error) {
	moved, err := s.itemRepository.TransferOwner(ctx, id, expectedOwner, newOwner)
	if err != nil {
		return false, fmt.Errorf("owner transfer failed: %w", err)
	}

	return moved, nil
}
