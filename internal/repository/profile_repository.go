package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Profile is a participant identity keyed by wallet address. Profiles are
// created on first reference and never deleted.
type Profile struct {
	ID            string
	WalletAddress string
	Email         *string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type ProfileRepository interface {
	Ensure(ctx context.Context, walletAddress string) error
	FindByWallet(ctx context.Context, walletAddress string) (*Profile, error)
	FindByEmail(ctx context.Context, email string) (*Profile, error)
	LinkEmail(ctx context.Context, walletAddress, email string) (*Profile, error)
}

type pgProfileRepository struct {
	pool *pgxpool.Pool
}

func NewProfileRepository(pool *pgxpool.Pool) ProfileRepository {
	return &pgProfileRepository{pool: pool}
}

// Ensure creates a profile with no email if one does not exist yet.
func (r *pgProfileRepository) Ensure(ctx context.Context, walletAddress string) error {
	query := `
		INSERT INTO profiles (id, wallet_address)
		VALUES ($1, $2)
		ON CONFLICT (wallet_address) DO NOTHING
	`
	_, err := r.pool.Exec(ctx, query, uuid.New().String(), walletAddress)
	return err
}

func (r *pgProfileRepository) FindByWallet(ctx context.Context, walletAddress string) (*Profile, error) {
	query := `
		SELECT id, wallet_address, email, created_at, updated_at
		FROM profiles WHERE wallet_address = $1
	`
	profile := &Profile{}
	err := r.pool.QueryRow(ctx, query, walletAddress).Scan(
		&profile.ID, &profile.WalletAddress, &profile.Email,
		&profile.CreatedAt, &profile.UpdatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return profile, nil
}

func (r *pgProfileRepository) FindByEmail(ctx context.Context, email string) (*Profile, error) {
	query := `
		SELECT id, wallet_address, email, created_at, updated_at
		FROM profiles WHERE email = $1
	`
	profile := &Profile{}
	err := r.pool.QueryRow(ctx, query, email).Scan(
		&profile.ID, &profile.WalletAddress, &profile.Email,
		&profile.CreatedAt, &profile.UpdatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return profile, nil
}

// LinkEmail attaches an authenticated email identity to a wallet, creating
// the profile if needed.
func (r *pgProfileRepository) LinkEmail(ctx context.Context, walletAddress, email string) (*Profile, error) {
	query := `
		INSERT INTO profiles (id, wallet_address, email)
		VALUES ($1, $2, $3)
		ON CONFLICT (wallet_address) DO UPDATE
		SET email = EXCLUDED.email, updated_at = now()
		RETURNING id, wallet_address, email, created_at, updated_at
	`
	profile := &Profile{}
	err := r.pool.QueryRow(ctx, query, uuid.New().String(), walletAddress, email).Scan(
		&profile.ID, &profile.WalletAddress, &profile.Email,
		&profile.CreatedAt, &profile.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return profile, nil
}
