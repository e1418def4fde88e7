package repository

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repositories struct {
	ProfileRepo ProfileRepository
	InviteRepo  InviteRepository
}

func NewRepositories(pool *pgxpool.Pool) *Repositories {
	return &Repositories{
		ProfileRepo: NewProfileRepository(pool),
		InviteRepo:  NewInviteRepository(pool),
	}
}
