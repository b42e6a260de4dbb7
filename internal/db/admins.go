package db

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jonathan/brand-ad-studio/internal/types"
)

// -----------------------------------------------------------------------------
// Admin Methods
// -----------------------------------------------------------------------------

// uniqueViolation is the PostgreSQL error code for a unique constraint violation
const uniqueViolation = "23505"

// CreateAdmin stores an admin with an already hashed password
func (db *DB) CreateAdmin(ctx context.Context, email, name, passwordHash string) (*types.Admin, error) {
	var a types.Admin
	err := db.pool.QueryRow(ctx,
		`INSERT INTO admins (email, name, password_hash)
		 VALUES ($1, $2, $3)
		 RETURNING id, email, name, created_at`,
		normalizeEmail(email), name, passwordHash,
	).Scan(&a.ID, &a.Email, &a.Name, &a.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, ErrAdminExists
		}
		return nil, fmt.Errorf("failed to create admin: %w", err)
	}
	return &a, nil
}

// GetAdminByEmail returns the admin and its password hash, or nil when unknown
func (db *DB) GetAdminByEmail(ctx context.Context, email string) (*types.Admin, string, error) {
	var (
		a    types.Admin
		hash string
	)
	err := db.pool.QueryRow(ctx,
		`SELECT id, email, name, password_hash, created_at FROM admins WHERE email = $1`,
		normalizeEmail(email),
	).Scan(&a.ID, &a.Email, &a.Name, &hash, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, "", nil
		}
		return nil, "", fmt.Errorf("failed to get admin: %w", err)
	}
	return &a, hash, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
