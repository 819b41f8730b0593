package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-item-custody/internal/logger"
	"github.com/MKhiriev/go-item-custody/models"
)

// itemRepository is the SQL implementation of [ItemRepository] over the
// "items" table.
type itemRepository struct {
	*DB
	logger *logger.Logger
}

// NewItemRepository constructs an [ItemRepository] backed by db.
func NewItemRepository(db *DB, logger *logger.Logger) ItemRepository {
	logger.Debug().Msg("creating item repository")
	return &itemRepository{
		DB:     db,
		logger: logger,
	}
}

// CreateItem inserts the item and returns it with its new ID.
func (r *itemRepository) CreateItem(ctx context.Context, item models.Item) (models.Item, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildInsertItemQuery(r.dialect.placeholder(), item)
	if err != nil {
		return models.Item{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if err = r.conn(ctx).QueryRowContext(ctx, query, args...).Scan(&item.ID); err != nil {
		log.Err(err).
			Str("func", "itemRepository.CreateItem").
			Int64("owner_id", item.OwnerID).
			Msg("failed to insert item")
		return models.Item{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return item, nil
}

// GetItem implements [ItemRepository].
func (r *itemRepository) GetItem(ctx context.Context, id int64) (models.Item, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectItemQuery(r.dialect.placeholder(), id)
	if err != nil {
		return models.Item{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var item models.Item
	err = r.conn(ctx).QueryRowContext(ctx, query, args...).Scan(&item.ID, &item.OwnerID, &item.Name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Item{}, ErrItemNotFound
		}
		log.Err(err).
			Str("func", "itemRepository.GetItem").
			Int64("item_id", id).
			Msg("failed to scan item row")
		return models.Item{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return item, nil
}

// ListItems returns every item owned by ownerID, ordered by ID. An owner
// with no items gets an empty, non-nil slice.
func (r *itemRepository) ListItems(ctx context.Context, ownerID int64) ([]models.Item, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectItemsByOwnerQuery(r.dialect.placeholder(), ownerID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.conn(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "itemRepository.ListItems").
			Int64("owner_id", ownerID).
			Msg("failed to execute query for listing items")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	items := make([]models.Item, 0, 16)
	for rows.Next() {
		var item models.Item
		if scanErr := rows.Scan(&item.ID, &item.OwnerID, &item.Name); scanErr != nil {
			log.Err(scanErr).
				Str("func", "itemRepository.ListItems").
				Int64("owner_id", ownerID).
				Msg("failed to scan item row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		items = append(items, item)
	}

	if err = rows.Err(); err != nil {
		log.Err(err).
			Str("func", "itemRepository.ListItems").
			Int64("owner_id", ownerID).
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return items, nil
}

// DeleteItem implements [ItemRepository].
func (r *itemRepository) DeleteItem(ctx context.Context, ownerID, id int64) (bool, error) {
	query, args, err := buildDeleteItemQuery(r.dialect.placeholder(), ownerID, id)
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	affected, err := r.exec(ctx, "itemRepository.DeleteItem", query, args)
	return affected > 0, err
}

// TransferOwner implements [ItemRepository].
func (r *itemRepository) TransferOwner(ctx context.Context, id, expectedOwner, newOwner int64) (bool, error) {
	query, args, err := buildTransferOwnerQuery(r.dialect.placeholder(), id, expectedOwner, newOwner)
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	affected, err := r.exec(ctx, "itemRepository.TransferOwner", query, args)
	return affected > 0, err
}
