package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-item-custody/internal/logger"
	"github.com/MKhiriev/go-item-custody/models"
)

// sendingRepository is the SQL implementation of [SendingRepository] over
// the "sendings" table.
type sendingRepository struct {
	*DB
	logger *logger.Logger
}

// NewSendingRepository constructs a [SendingRepository] backed by db.
func NewSendingRepository(db *DB, logger *logger.Logger) SendingRepository {
	logger.Debug().Msg("creating sending repository")
	return &sendingRepository{
		DB:     db,
		logger: logger,
	}
}

// FindItemToken implements [SendingRepository].
func (r *sendingRepository) FindItemToken(ctx context.Context, itemID, fromUserID, toUserID int64) (string, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectItemTokenQuery(r.dialect.placeholder(), itemID, fromUserID, toUserID)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var itemToken string
	if err = r.conn(ctx).QueryRowContext(ctx, query, args...).Scan(&itemToken); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrSendingNotFound
		}
		log.Err(err).
			Str("func", "sendingRepository.FindItemToken").
			Int64("item_id", itemID).
			Msg("failed to scan item token")
		return "", fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return itemToken, nil
}

// CreateSending implements [SendingRepository]. A conflicting insert on the
// triple returns no row and reports false.
func (r *sendingRepository) CreateSending(ctx context.Context, sending models.Sending) (bool, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildInsertSendingQuery(r.dialect.placeholder(), sending)
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var id int64
	if err = r.conn(ctx).QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		log.Err(err).
			Str("func", "sendingRepository.CreateSending").
			Int64("item_id", sending.ItemID).
			Int64("from_user_id", sending.FromUserID).
			Int64("to_user_id", sending.ToUserID).
			Bool("retryable", r.retryable(err)).
			Msg("failed to insert sending")
		return false, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return true, nil
}

// FindSendingByToken implements [SendingRepository]. On PostgreSQL the row
// is selected FOR UPDATE when a transaction is carried by ctx; SQLite
// already holds the database write lock from BEGIN IMMEDIATE.
func (r *sendingRepository) FindSendingByToken(ctx context.Context, itemToken string) (models.Sending, error) {
	log := logger.FromContext(ctx)

	_, inTx := ctx.Value(txCtxKey{}).(*sql.Tx)
	forUpdate := inTx && r.dialect == DialectPostgres

	query, args, err := buildSelectSendingByTokenQuery(r.dialect.placeholder(), itemToken, forUpdate)
	if err != nil {
		return models.Sending{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var s models.Sending
	err = r.conn(ctx).QueryRowContext(ctx, query, args...).
		Scan(&s.ID, &s.ItemID, &s.FromUserID, &s.ToUserID, &s.ItemToken)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Sending{}, ErrSendingNotFound
		}
		log.Err(err).
			Str("func", "sendingRepository.FindSendingByToken").
			Bool("retryable", r.retryable(err)).
			Msg("failed to scan sending row")
		return models.Sending{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return s, nil
}

// DeleteSending implements [SendingRepository].
func (r *sendingRepository) DeleteSending(ctx context.Context, id int64) (bool, error) {
	query, args, err := buildDeleteSendingQuery(r.dialect.placeholder(), id)
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	affected, err := r.exec(ctx, "sendingRepository.DeleteSending", query, args)
	return affected > 0, err
}

// DeleteItemSendings implements [SendingRepository].
func (r *sendingRepository) DeleteItemSendings(ctx context.Context, itemID int64) (int64, error) {
	query, args, err := buildDeleteItemSendingsQuery(r.dialect.placeholder(), itemID)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.exec(ctx, "sendingRepository.DeleteItemSendings", query, args)
}

// DeleteStaleSendings implements [SendingRepository].
func (r *sendingRepository) DeleteStaleSendings(ctx context.Context, itemID, ownerID int64) (int64, error) {
	query, args, err := buildDeleteStaleSendingsQuery(r.dialect.placeholder(), itemID, ownerID)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.exec(ctx, "sendingRepository.DeleteStaleSendings", query, args)
}
