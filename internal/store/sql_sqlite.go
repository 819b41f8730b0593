package store

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"github.com/MKhiriev/go-item-custody/internal/config"
	"github.com/MKhiriev/go-item-custody/internal/logger"
)

// sqliteDefaults are appended to the DSN unless already present: foreign
// keys must be enforced for the cascade on items, and BEGIN must take the
// write lock so concurrent claims serialize instead of failing on upgrade.
var sqliteDefaults = map[string]string{
	"_foreign_keys": "on",
	"_txlock":       "immediate",
	"_busy_timeout": "5000",
}

// NewConnectSQLite opens an SQLite database. The pool is limited to one
// connection; SQLite allows a single writer anyway.
func NewConnectSQLite(ctx context.Context, cfg config.DB, log *logger.Logger) (*DB, error) {
	dsn := sqliteDSN(cfg.DSN)

	conn, err := sql.Open("sqlite3", dsn)
	if err != nil {
		log.Err(err).Str("func", "NewConnectSQLite").Msg("error connecting database")
		return nil, fmt.Errorf("error opening connection to DB: %w", err)
	}
	conn.SetMaxOpenConns(1)

	if err = conn.PingContext(ctx); err != nil {
		log.Err(err).Str("func", "NewConnectSQLite").Msg("error connecting database (ping)")
		conn.Close()
		return nil, err
	}
	log.Info().Str("func", "NewConnectSQLite").Str("dsn", dsn).Msg("connected to database successfully")

	return &DB{
		DB:                 conn,
		dialect:            DialectSQLite,
		logger:             log,
		errorClassificator: NewSQLiteErrorClassifier(),
	}, nil
}

// sqliteDSN adds the connection parameters from sqliteDefaults that dsn
// does not set itself.
func sqliteDSN(dsn string) string {
	base, rawQuery, _ := strings.Cut(dsn, "?")
	query, err := url.ParseQuery(rawQuery)
	if err != nil {
		query = url.Values{}
	}

	for key, value := range sqliteDefaults {
		if !query.Has(key) {
			query.Set(key, value)
		}
	}

	return base + "?" + query.Encode()
}
