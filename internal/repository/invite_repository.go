package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/squadhq/squad-backend/internal/types"
)

// ErrDuplicateInvite is returned by Create when a PENDING or ACCEPTED invite
// already exists for the same (squad_name, invitee_wallet) pair.
var ErrDuplicateInvite = errors.New("invite already exists for squad and invitee")

// SquadInvite is a single creator-to-invitee proposal with its own expiry.
type SquadInvite struct {
	ID            string
	SquadName     string
	CreatorWallet string
	InviteeWallet string
	Status        string
	ExpiresAt     time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type InviteRepository interface {
	Create(ctx context.Context, invite *SquadInvite) error
	FindByID(ctx context.Context, id string) (*SquadInvite, error)
	FindBySquadAndInvitee(ctx context.Context, squadName, inviteeWallet string) (*SquadInvite, error)
	FindByInvitee(ctx context.Context, inviteeWallet string) ([]*SquadInvite, error)
	FindByCreator(ctx context.Context, creatorWallet string) ([]*SquadInvite, error)
	FindBySquad(ctx context.Context, creatorWallet, squadName string) ([]*SquadInvite, error)
	MarkExpired(ctx context.Context, id string, now time.Time) (*SquadInvite, error)
	MarkAccepted(ctx context.Context, id string, now time.Time) (*SquadInvite, error)
	CountByStatus(ctx context.Context) (map[string]int, error)
}

type pgInviteRepository struct {
	pool *pgxpool.Pool
}

func NewInviteRepository(pool *pgxpool.Pool) InviteRepository {
	return &pgInviteRepository{pool: pool}
}

const inviteColumns = `id, squad_name, creator_wallet, invitee_wallet, status, expires_at, created_at, updated_at`

func scanInvite(row pgx.Row) (*SquadInvite, error) {
	invite := &SquadInvite{}
	err := row.Scan(
		&invite.ID, &invite.SquadName, &invite.CreatorWallet, &invite.InviteeWallet,
		&invite.Status, &invite.ExpiresAt, &invite.CreatedAt, &invite.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return invite, nil
}

// Create persists a new PENDING invite together with the profile rows for
// both wallets in one transaction. The (squad_name, invitee_wallet) pair is
// guarded by a unique constraint; an existing EXPIRED row is replaced in
// place (implicit re-invite) while a PENDING or ACCEPTED row yields
// ErrDuplicateInvite. An ACCEPTED row can never be overwritten.
func (r *pgInviteRepository) Create(ctx context.Context, invite *SquadInvite) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	ensureProfile := `
		INSERT INTO profiles (id, wallet_address)
		VALUES ($1, $2)
		ON CONFLICT (wallet_address) DO NOTHING
	`
	if _, err := tx.Exec(ctx, ensureProfile, uuid.New().String(), invite.CreatorWallet); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, ensureProfile, uuid.New().String(), invite.InviteeWallet); err != nil {
		return err
	}

	invite.ID = uuid.New().String()
	invite.Status = types.InviteStatusPending

	query := `
		INSERT INTO squad_invites (id, squad_name, creator_wallet, invitee_wallet, status, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (squad_name, invitee_wallet) DO UPDATE
		SET id = EXCLUDED.id,
		    creator_wallet = EXCLUDED.creator_wallet,
		    status = EXCLUDED.status,
		    expires_at = EXCLUDED.expires_at,
		    created_at = now(),
		    updated_at = now()
		WHERE squad_invites.status = $7
		RETURNING created_at, updated_at
	`
	err = tx.QueryRow(ctx, query,
		invite.ID, invite.SquadName, invite.CreatorWallet, invite.InviteeWallet,
		invite.Status, invite.ExpiresAt, types.InviteStatusExpired,
	).Scan(&invite.CreatedAt, &invite.UpdatedAt)
	if err == pgx.ErrNoRows {
		return ErrDuplicateInvite
	}
	if err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *pgInviteRepository) FindByID(ctx context.Context, id string) (*SquadInvite, error) {
	query := `SELECT ` + inviteColumns + ` FROM squad_invites WHERE id = $1`
	invite, err := scanInvite(r.pool.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return invite, nil
}

func (r *pgInviteRepository) FindBySquadAndInvitee(ctx context.Context, squadName, inviteeWallet string) (*SquadInvite, error) {
	query := `
		SELECT ` + inviteColumns + `
		FROM squad_invites WHERE squad_name = $1 AND invitee_wallet = $2
	`
	invite, err := scanInvite(r.pool.QueryRow(ctx, query, squadName, inviteeWallet))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return invite, nil
}

func (r *pgInviteRepository) FindByInvitee(ctx context.Context, inviteeWallet string) ([]*SquadInvite, error) {
	query := `
		SELECT ` + inviteColumns + `
		FROM squad_invites WHERE invitee_wallet = $1
		ORDER BY created_at DESC
	`
	return r.queryInvites(ctx, query, inviteeWallet)
}

func (r *pgInviteRepository) FindByCreator(ctx context.Context, creatorWallet string) ([]*SquadInvite, error) {
	query := `
		SELECT ` + inviteColumns + `
		FROM squad_invites WHERE creator_wallet = $1
		ORDER BY squad_name ASC, created_at ASC
	`
	return r.queryInvites(ctx, query, creatorWallet)
}

func (r *pgInviteRepository) FindBySquad(ctx context.Context, creatorWallet, squadName string) ([]*SquadInvite, error) {
	query := `
		SELECT ` + inviteColumns + `
		FROM squad_invites WHERE creator_wallet = $1 AND squad_name = $2
		ORDER BY created_at ASC
	`
	return r.queryInvites(ctx, query, creatorWallet, squadName)
}

func (r *pgInviteRepository) queryInvites(ctx context.Context, query string, args ...interface{}) ([]*SquadInvite, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var invites []*SquadInvite
	for rows.Next() {
		invite, err := scanInvite(rows)
		if err != nil {
			return nil, err
		}
		invites = append(invites, invite)
	}
	return invites, rows.Err()
}

// MarkExpired flips a stale PENDING invite to EXPIRED in a single conditional
// update. Returns nil when the invite was not pending or not yet past its
// deadline, which makes double reconciliation a no-op rather than an error.
func (r *pgInviteRepository) MarkExpired(ctx context.Context, id string, now time.Time) (*SquadInvite, error) {
	query := `
		UPDATE squad_invites
		SET status = $1, updated_at = $2
		WHERE id = $3 AND status = $4 AND expires_at < $2
		RETURNING ` + inviteColumns
	invite, err := scanInvite(r.pool.QueryRow(ctx, query,
		types.InviteStatusExpired, now, id, types.InviteStatusPending))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return invite, nil
}

// MarkAccepted transitions PENDING to ACCEPTED with a compare-and-set guarded
// by both the current status and the deadline. The loser of a concurrent
// accept observes nil and must re-read to classify the failure.
func (r *pgInviteRepository) MarkAccepted(ctx context.Context, id string, now time.Time) (*SquadInvite, error) {
	query := `
		UPDATE squad_invites
		SET status = $1, updated_at = $2
		WHERE id = $3 AND status = $4 AND expires_at >= $2
		RETURNING ` + inviteColumns
	invite, err := scanInvite(r.pool.QueryRow(ctx, query,
		types.InviteStatusAccepted, now, id, types.InviteStatusPending))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return invite, nil
}

func (r *pgInviteRepository) CountByStatus(ctx context.Context) (map[string]int, error) {
	query := `SELECT status, COUNT(*) FROM squad_invites GROUP BY status`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		counts[status] = count
	}
	return counts, rows.Err()
}
