// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-item-custody/internal/config"
	"github.com/MKhiriev/go-item-custody/internal/logger"
)

// Storages groups the repositories and the transaction runner of one
// backend so they can be handed to the service layer as a unit.
type Storages struct {
	UserRepository    UserRepository
	ItemRepository    ItemRepository
	SendingRepository SendingRepository
	Transactor        Transactor

	db *DB
}

// NewStorages opens the backend selected by cfg.DB.Driver:
//   - "postgres": pgx connection pool, schema migrated with goose;
//   - "sqlite": single file database, schema migrated with goose;
//   - "memory": [MemoryStore], nothing persisted.
func NewStorages(ctx context.Context, cfg config.Storage, logger *logger.Logger) (*Storages, error) {
	logger.Info().Str("driver", cfg.DB.Driver).Msg("creating new storages...")

	var (
		db  *DB
		err error
	)

	switch cfg.DB.Driver {
	case config.DriverMemory:
		return NewMemoryStorages(logger), nil
	case config.DriverPostgres:
		db, err = NewConnectPostgres(ctx, cfg.DB, logger)
	case config.DriverSQLite:
		db, err = NewConnectSQLite(ctx, cfg.DB, logger)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, cfg.DB.Driver)
	}
	if err != nil {
		return nil, fmt.Errorf("%s connection error: %w", cfg.DB.Driver, err)
	}

	if err = db.Migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return NewSQLStorages(db, logger), nil
}

// NewSQLStorages wires the SQL repositories over an open DB.
func NewSQLStorages(db *DB, logger *logger.Logger) *Storages {
	return &Storages{
		UserRepository:    NewUserRepository(db, logger),
		ItemRepository:    NewItemRepository(db, logger),
		SendingRepository: NewSendingRepository(db, logger),
		Transactor:        db,
		db:                db,
	}
}

// NewMemoryStorages wires every repository to one fresh [MemoryStore].
func NewMemoryStorages(logger *logger.Logger) *Storages {
	memory := NewMemoryStore(logger)
	return &Storages{
		UserRepository:    memory,
		ItemRepository:    memory,
		SendingRepository: memory,
		Transactor:        memory,
	}
}

// Close releases the database connection, if any.
func (s *Storages) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}
