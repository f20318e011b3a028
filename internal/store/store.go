// Package store persists production rates and versioned bids in SQLite.
package store

import (
	"database/sql"
	"errors"

	"go.uber.org/zap"
)

var (
	ErrNotFound = errors.New("not found")
	// ErrVersionLocked is returned when changing a version that was sent.
	ErrVersionLocked = errors.New("bid version is locked")
)

type Store struct {
	db  *sql.DB
	log *zap.Logger
}

func New(db *sql.DB, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{db: db, log: log}
}
