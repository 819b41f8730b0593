package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-item-custody/internal/logger"
	"github.com/MKhiriev/go-item-custody/models"
)

// userRepository is the SQL implementation of [UserRepository] over the
// "users" table.
//
// All methods obtain a context-scoped logger via [logger.FromContext] for
// structured, request-level tracing of database interactions.
type userRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewUserRepository constructs a [UserRepository] backed by the provided
// database connection and logger.
func NewUserRepository(db *DB, logger *logger.Logger) UserRepository {
	logger.Debug().Msg("creating user repository")
	return &userRepository{
		db:     db,
		logger: logger,
	}
}

// CreateUser inserts the user and returns it with the store-assigned ID.
//
// Error handling:
//   - unique violation on login → [ErrLoginAlreadyExists].
//   - any other driver error → wrapped [ErrExecutingQuery].
func (r *userRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildInsertUserQuery(r.db.dialect.placeholder(), user)
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if err = r.db.conn(ctx).QueryRowContext(ctx, query, args...).Scan(&user.ID); err != nil {
		if r.db.isUniqueViolation(err) {
			return models.User{}, ErrLoginAlreadyExists
		}
		log.Err(err).
			Str("func", "*userRepository.CreateUser").
			Bool("retryable", r.db.retryable(err)).
			Msg("error inserting user")
		return models.User{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return user, nil
}

// UpdateToken implements [UserRepository].
func (r *userRepository) UpdateToken(ctx context.Context, login, password, token string, expiresAt time.Time) (int64, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildUpdateTokenQuery(r.db.dialect.placeholder(), login, password, token, expiresAt)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var userID int64
	if err = r.db.conn(ctx).QueryRowContext(ctx, query, args...).Scan(&userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrNoUserWasFound
		}
		log.Err(err).
			Str("func", "*userRepository.UpdateToken").
			Bool("retryable", r.db.retryable(err)).
			Msg("error updating user token")
		return 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return userID, nil
}

// FindUserByToken implements [UserRepository].
func (r *userRepository) FindUserByToken(ctx context.Context, token string) (models.User, error) {
	query, args, err := buildSelectUserByTokenQuery(r.db.dialect.placeholder(), token)
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.findUser(ctx, "*userRepository.FindUserByToken", query, args)
}

// FindUserByLogin implements [UserRepository].
func (r *userRepository) FindUserByLogin(ctx context.Context, login string) (models.User, error) {
	query, args, err := buildSelectUserByLoginQuery(r.db.dialect.placeholder(), login)
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.findUser(ctx, "*userRepository.FindUserByLogin", query, args)
}

func (r *userRepository) findUser(ctx context.Context, funcName, query string, args []any) (models.User, error) {
	log := logger.FromContext(ctx)

	var (
		user      models.User
		token     sql.NullString
		expiredAt sql.NullTime
	)

	err := r.db.conn(ctx).QueryRowContext(ctx, query, args...).
		Scan(&user.ID, &user.Login, &user.Password, &token, &expiredAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrNoUserWasFound
		}
		log.Err(err).Str("func", funcName).Msg("error scanning user")
		return models.User{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	user.Token = token.String
	if expiredAt.Valid {
		t := expiredAt.Time
		user.TokenExpiredAt = &t
	}

	return user, nil
}
