// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-item-custody/internal/logger"
	"github.com/MKhiriev/go-item-custody/internal/store"
	"github.com/MKhiriev/go-item-custody/internal/utils"
	"github.com/MKhiriev/go-item-custody/models"
)

// anyRecipient disables the addressee check in complete.
const anyRecipient int64 = 0

type transferService struct {
	itemService       ItemService
	authService       AuthService
	sendingRepository store.SendingRepository
	transactor        store.Transactor

	now      func() time.Time
	newToken func() (string, error)

	logger *logger.Logger
}

// NewTransferService constructs a TransferService. Completion runs inside
// transactor: the owner change, the sending removal and the cleanup of
// stale offers either all apply or none do.
func NewTransferService(itemService ItemService, authService AuthService, sendingRepository store.SendingRepository,
	transactor store.Transactor, logger *logger.Logger) TransferService {
	return &transferService{
		itemService:       itemService,
		authService:       authService,
		sendingRepository: sendingRepository,
		transactor:        transactor,
		now:               time.Now,
		newToken:          utils.GenerateToken,
		logger:            logger,
	}
}

// InitiateSending is idempotent per (item, sender, recipient): repeated
// calls return the same token for as long as the sending is pending.
func (t *transferService) InitiateSending(ctx context.Context, fromUserID, toUserID, itemID int64) (string, error) {
	log := logger.FromContext(ctx).With().
		Int64("item_id", itemID).
		Int64("from_user_id", fromUserID).
		Int64("to_user_id", toUserID).
		Logger()

	if fromUserID == toUserID {
		return "", ErrSelfSending
	}

	token, err := t.sendingRepository.FindItemToken(ctx, itemID, fromUserID, toUserID)
	if err == nil {
		log.Debug().Msg("reusing pending sending")
		return token, nil
	}
	if !errors.Is(err, store.ErrSendingNotFound) {
		log.Err(err).Msg("sending lookup failed")
		return "", fmt.Errorf("sending lookup failed: %w", err)
	}

	token, err = t.newToken()
	if err != nil {
		log.Err(err).Msg("item token generation failed")
		return "", fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	created, err := t.sendingRepository.CreateSending(ctx, models.Sending{
		ItemID:     itemID,
		FromUserID: fromUserID,
		ToUserID:   toUserID,
		ItemToken:  token,
	})
	if err != nil {
		log.Err(err).Msg("sending creation failed")
		return "", fmt.Errorf("sending creation failed: %w", err)
	}
	if created {
		log.Info().Msg("sending created")
		return token, nil
	}

	// a concurrent call inserted the same triple first
	token, err = t.sendingRepository.FindItemToken(ctx, itemID, fromUserID, toUserID)
	if err != nil {
		log.Err(err).Msg("sending lookup after conflict failed")
		return "", fmt.Errorf("sending lookup failed: %w", err)
	}

	return token, nil
}

func (t *transferService) CompleteSending(ctx context.Context, itemToken string) (models.SendingStatus, error) {
	return t.complete(ctx, itemToken, anyRecipient)
}

// SendItem checks, in order: self-send by login, item ownership, recipient
// existence and self-send by ID. Nothing is written unless all pass.
func (t *transferService) SendItem(ctx context.Context, sender models.User, itemID int64, recipientLogin string) (models.SendingOffer, error) {
	if sender.Login == recipientLogin {
		return models.SendingOffer{}, ErrSelfSending
	}

	item, err := t.itemService.GetItem(ctx, itemID)
	if err != nil {
		return models.SendingOffer{}, err
	}
	if item.OwnerID != sender.ID {
		return models.SendingOffer{}, fmt.Errorf("item %d of user %d: %w", itemID, sender.ID, store.ErrItemNotFound)
	}

	recipient, err := t.authService.FindRecipient(ctx, recipientLogin)
	if err != nil {
		return models.SendingOffer{}, err
	}

	itemToken, err := t.InitiateSending(ctx, sender.ID, recipient.ID, item.ID)
	if err != nil {
		return models.SendingOffer{}, err
	}

	offer := models.SendingOffer{ItemToken: itemToken}
	if recipient.HasValidToken(t.now()) {
		offer.RecipientToken = recipient.Token
	}

	return offer, nil
}

func (t *transferService) ClaimSending(ctx context.Context, recipient models.User, itemToken string) (models.SendingStatus, error) {
	return t.complete(ctx, itemToken, recipient.ID)
}

// complete redeems itemToken. When recipientID is not anyRecipient, a
// sending addressed to another user is reported as absent.
func (t *transferService) complete(ctx context.Context, itemToken string, recipientID int64) (models.SendingStatus, error) {
	log := logger.FromContext(ctx)

	status := models.SendingStatusNoSending
	if itemToken == "" {
		return status, nil
	}

	err := t.transactor.InTx(ctx, func(ctx context.Context) error {
		sending, err := t.sendingRepository.FindSendingByToken(ctx, itemToken)
		if errors.Is(err, store.ErrSendingNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		if recipientID != anyRecipient && sending.ToUserID != recipientID {
			log.Warn().Int64("sending_id", sending.ID).Int64("user_id", recipientID).Msg("claim by non-addressee")
			return nil
		}

		moved, err := t.itemService.TransferOwner(ctx, sending.ItemID, sending.FromUserID, sending.ToUserID)
		if err != nil {
			return err
		}
		if !moved {
			return errTransferRejected
		}

		deleted, err := t.sendingRepository.DeleteSending(ctx, sending.ID)
		if err != nil {
			return err
		}
		if !deleted {
			return errTransferRejected
		}

		if _, err = t.sendingRepository.DeleteStaleSendings(ctx, sending.ItemID, sending.ToUserID); err != nil {
			return err
		}

		log.Info().
			Int64("item_id", sending.ItemID).
			Int64("from_user_id", sending.FromUserID).
			Int64("to_user_id", sending.ToUserID).
			Msg("item transferred")
		status = models.SendingStatusCompleted
		return nil
	})
	if errors.Is(err, errTransferRejected) {
		log.Warn().Msg("sending could not be completed, rolled back")
		return models.SendingStatusFailed, nil
	}
	if err != nil {
		log.Err(err).Msg("sending completion failed")
		return models.SendingStatusFailed, fmt.Errorf("sending completion failed: %w", err)
	}

	return status, nil
}
