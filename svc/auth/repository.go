package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository is the pgx-backed Storage implementation.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a Repository on the given pool.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// SaveSignIn upserts the user and records the device row in one transaction.
// Either both rows land or neither does.
func (r *Repository) SaveSignIn(ctx context.Context, user User, device Device) (User, error) {
	var stored User

	err := r.withTx(ctx, func(tx pgx.Tx) error {
		var err error
		stored, err = upsertUser(ctx, tx, user)
		if err != nil {
			return err
		}

		device.UserID = stored.ID
		return insertDevice(ctx, tx, device)
	})
	if err != nil {
		return User{}, errors.Join(ErrStorage, err)
	}
	return stored, nil
}

// withTx runs fn inside a transaction, committing on success and rolling
// back on error or panic.
func (r *Repository) withTx(ctx context.Context, fn func(pgx.Tx) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func upsertUser(ctx context.Context, tx pgx.Tx, user User) (User, error) {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}

	const query = `
		INSERT INTO users (id, provider, provider_uid, email, name, avatar_url, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (provider, provider_uid) DO UPDATE
		SET email = EXCLUDED.email,
		    name = EXCLUDED.name,
		    avatar_url = EXCLUDED.avatar_url
		RETURNING id, provider, provider_uid, email, name, avatar_url, created_at`

	row := tx.QueryRow(ctx, query,
		user.ID, user.Provider, user.ProviderUID,
		user.Email, user.Name, user.AvatarURL, user.CreatedAt,
	)

	var stored User
	if err := row.Scan(
		&stored.ID, &stored.Provider, &stored.ProviderUID,
		&stored.Email, &stored.Name, &stored.AvatarURL, &stored.CreatedAt,
	); err != nil {
		return User{}, fmt.Errorf("upsert user: %w", err)
	}
	return stored, nil
}

func insertDevice(ctx context.Context, tx pgx.Tx, device Device) error {
	if device.ID == uuid.Nil {
		device.ID = uuid.New()
	}
	if device.CreatedAt.IsZero() {
		device.CreatedAt = time.Now().UTC()
	}

	const query = `
		INSERT INTO device_info (id, user_id, ip, user_agent, accept_language, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	if _, err := tx.Exec(ctx, query,
		device.ID, device.UserID, device.IP,
		device.UserAgent, device.AcceptLanguage, device.CreatedAt,
	); err != nil {
		return fmt.Errorf("insert device: %w", err)
	}
	return nil
}

var _ Storage = (*Repository)(nil)
