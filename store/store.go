// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"database/sql"
	"errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/lib/pq"
)

var (
	// ErrNotFound indicates the referenced row does not exist.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateVolunteer indicates a unique-constraint violation on
	// volunteer creation.
	ErrDuplicateVolunteer = errors.New("a volunteer with this information already exists")
)

// psql builds queries with Postgres $N placeholders.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// Store wraps the database handle with the query surface the handlers and
// the filter engine need. Its lifecycle (connection, credentials, close)
// is owned by the caller.
type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// IsUniqueViolation reports whether err is a Postgres unique-constraint
// violation (SQLSTATE 23505).
func IsUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
