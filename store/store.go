// Package store is the gorm-backed record store for restaurants, contacts,
// interactions, addresses and users. Every multi-row mutation runs inside a
// single transaction.
package store

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"kam-api/apperrors"
)

type Store struct {
	db  *gorm.DB
	now func() time.Time
}

func New(db *gorm.DB) *Store {
	return &Store{db: db, now: time.Now}
}

// WithClock overrides the clock used to default interaction dates.
func (s *Store) WithClock(now func() time.Time) *Store {
	s.now = now
	return s
}

// DB exposes the underlying handle for health checks and migrations.
func (s *Store) DB() *gorm.DB { return s.db }

// Ping checks the database connection.
func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return apperrors.Upstream(err, "database handle")
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return apperrors.Upstream(err, "database ping")
	}
	return nil
}

// translate maps driver errors onto the apperrors taxonomy. Errors that are
// already typed pass through untouched.
func translate(err error, resource string) error {
	if err == nil {
		return nil
	}
	var appErr *apperrors.Error
	if errors.As(err, &appErr) {
		return err
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.NotFound(resource)
	}
	if isDuplicate(err) {
		return apperrors.Conflict("%s already exists", resource)
	}
	return apperrors.Upstream(err, "%s store", strings.ToLower(resource))
}

func isDuplicate(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") || strings.Contains(msg, "duplicate key")
}
