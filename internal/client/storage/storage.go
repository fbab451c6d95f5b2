// Package storage opens the local client database and applies its
// migrations.
package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/carpark/internal/client/migrations"
	"github.com/dmitrijs2005/carpark/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/carpark/internal/dbx"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"
)

type Store struct {
	DB       *sql.DB
	Metadata metadata.Repository
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("goose dialect: %w", err)
	}
	if err := gooseUpContext(ctx, db, "."); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

// Open opens (creating if needed) the sqlite database at dsn and brings its
// schema up to date.
func Open(ctx context.Context, dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", dsn, err)
	}
	// a single connection keeps ":memory:" databases shared
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("open %s: %w", dsn, err)
	}
	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Store{DB: db, Metadata: metadata.NewSQLiteRepository(db)}, nil
}

// Settings returns every stored setting by key.
func (s *Store) Settings(ctx context.Context) (map[string][]byte, error) {
	return s.Metadata.List(ctx)
}

// Forget deletes the given settings, or all of them when keys is empty, in
// one transaction.
func (s *Store) Forget(ctx context.Context, keys ...string) error {
	return dbx.WithTx(ctx, s.DB, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)
		if len(keys) == 0 {
			return repo.Clear(ctx)
		}
		for _, key := range keys {
			if err := repo.Delete(ctx, key); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *Store) Close() error {
	return s.DB.Close()
}
