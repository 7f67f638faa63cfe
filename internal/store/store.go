// Package store implements PostgreSQL persistence for the console backend.
//
// Repositories are hand-written SQL over the shared pgxpool; schema field
// lists and instance value sets live in JSONB columns so a template change
// never needs a DDL migration.
package store

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	apperrors "github.com/sidyfoba/solarcom-console/internal/pkg/errors"
)

// Store bundles all repositories over one shared connection pool.
type Store struct {
	pool *pgxpool.Pool
}

// New creates a Store over the shared pool.
func New(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// Pool exposes the underlying pool for components that need it directly
// (River shares the same pool).
func (s *Store) Pool() *pgxpool.Pool {
	return s.pool
}

const pgUniqueViolation = "23505"

// errNoRowsAffected lets update/delete paths reuse the not-found mapping
// when the targeted row does not exist.
var errNoRowsAffected = pgx.ErrNoRows

// mapErr translates driver errors into the application's sentinel errors so
// callers never import pgx.
func mapErr(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s: %w", op, apperrors.ErrNotFound)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return fmt.Errorf("%s: %w", op, apperrors.ErrAlreadyExists)
	}
	return fmt.Errorf("%s: %w", op, err)
}
