package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-item-custody/internal/config"
	"github.com/MKhiriev/go-item-custody/internal/logger"
	"github.com/MKhiriev/go-item-custody/internal/store"
	"github.com/MKhiriev/go-item-custody/internal/utils"
	"github.com/MKhiriev/go-item-custody/models"
)

// authService is the concrete implementation of AuthService.
// It stores keyed password digests and hands out opaque random bearer
// tokens with a fixed lifetime.
type authService struct {
	// userRepository is the data-access layer used to create and look up users.
	userRepository store.UserRepository

	// hashKey is the HMAC secret used when hashing user passwords before
	// storage or comparison. Must match the value used at registration time.
	hashKey string

	// tokenTTL controls how long a newly issued token remains valid.
	tokenTTL time.Duration

	now      func() time.Time
	newToken func() (string, error)

	logger *logger.Logger
}

// NewAuthService constructs a new AuthService wired to the given UserRepository
// and populated with security parameters from cfg.
//
// The returned service is safe for concurrent use; all state is read-only after
// construction.
func NewAuthService(userRepository store.UserRepository, cfg config.App, logger *logger.Logger) AuthService {
	return &authService{
		userRepository: userRepository,
		hashKey:        cfg.PasswordHashKey,
		tokenTTL:       cfg.TokenTTL,
		now:            time.Now,
		newToken:       utils.GenerateToken,
		logger:         logger,
	}
}

// RegisterUser creates a new user account with no token.
//
// Returns the persisted user (with a store-assigned ID) or:
//   - ErrInvalidDataProvided if login or password is empty.
//   - A wrapped store.ErrLoginAlreadyExists if the login is taken.
func (a *authService) RegisterUser(ctx context.Context, login, password string) (models.User, error) {
	log := logger.FromContext(ctx)

	if login == "" || password == "" {
		log.Error().Str("login", login).Msg("invalid user data provided")
		return models.User{}, ErrInvalidDataProvided
	}

	registeredUser, err := a.userRepository.CreateUser(ctx, models.User{
		Login:    login,
		Password: utils.HashString(password, a.hashKey),
	})
	if err != nil {
		log.Err(err).Str("login", login).Msg("user creation ended with error")
		return models.User{}, fmt.Errorf("user creation ended with error: %w", err)
	}

	return registeredUser, nil
}

// Login issues a new token for the user matching login and password. The
// match and the token write happen in one conditional update, so the old
// token stops working the moment the new one is stored.
func (a *authService) Login(ctx context.Context, login, password string) (models.Session, error) {
	log := logger.FromContext(ctx)

	if login == "" || password == "" {
		log.Error().Str("login", login).Msg("invalid user data provided")
		return models.Session{}, ErrInvalidCredentials
	}

	token, err := a.newToken()
	if err != nil {
		log.Err(err).Msg("token generation failed")
		return models.Session{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}
	expiresAt := a.now().Add(a.tokenTTL).UTC()

	userID, err := a.userRepository.UpdateToken(ctx, login, utils.HashString(password, a.hashKey), token, expiresAt)
	if errors.Is(err, store.ErrNoUserWasFound) {
		log.Debug().Str("login", login).Msg("wrong login or password")
		return models.Session{}, ErrInvalidCredentials
	}
	if err != nil {
		log.Err(err).Str("login", login).Msg("token update failed")
		return models.Session{}, fmt.Errorf("token update failed: %w", err)
	}

	return models.Session{
		UserID:    userID,
		Token:     token,
		ExpiresAt: expiresAt,
	}, nil
}

// Authenticate resolves a bearer token to its user. Unknown, empty and
// expired tokens all yield ErrUnauthenticated; store failures are wrapped
// and returned as is.
func (a *authService) Authenticate(ctx context.Context, token string) (models.User, error) {
	log := logger.FromContext(ctx)

	if token == "" {
		return models.User{}, ErrUnauthenticated
	}

	user, err := a.userRepository.FindUserByToken(ctx, token)
	if errors.Is(err, store.ErrNoUserWasFound) {
		log.Debug().Msg("unknown token")
		return models.User{}, ErrUnauthenticated
	}
	if err != nil {
		log.Err(err).Msg("user search by token failed")
		return models.User{}, fmt.Errorf("user search by token failed: %w", err)
	}

	if !user.HasValidToken(a.now()) {
		log.Debug().Int64("user_id", user.ID).Msg("expired token")
		return models.User{}, ErrUnauthenticated
	}

	return user, nil
}

func (a *authService) FindRecipient(ctx context.Context, login string) (models.User, error) {
	user, err := a.userRepository.FindUserByLogin(ctx, login)
	if errors.Is(err, store.ErrNoUserWasFound) {
		return models.User{}, ErrRecipientNotFound
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("login", login).Msg("user search by login failed")
		return models.User{}, fmt.Errorf("user search by login failed: %w", err)
	}

	return user, nil
}
