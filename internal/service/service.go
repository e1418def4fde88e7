package service

import (
	"errors"

	"github.com/squadhq/squad-backend/internal/config"
	"github.com/squadhq/squad-backend/internal/db"
	"github.com/squadhq/squad-backend/internal/email"
	"github.com/squadhq/squad-backend/internal/repository"
	"github.com/squadhq/squad-backend/internal/socket"
)

var ErrInvalidToken = errors.New("invalid token")

// ============================================
// Services Container
// ============================================

type Services struct {
	Auth        AuthService
	Invite      InviteService
	Profile     ProfileService
	Broadcaster *socket.Broadcaster
}

// ServiceDeps contains all dependencies needed to create services
type ServiceDeps struct {
	Config      *config.Config
	Repos       *repository.Repositories
	EmailSvc    *email.Service
	Broadcaster *socket.Broadcaster
	Cache       *db.RedisDB
}

func NewServices(deps *ServiceDeps) *Services {
	return &Services{
		Auth: NewAuthService(deps.Config),
		Invite: NewInviteService(
			deps.Repos.InviteRepo,
			deps.Repos.ProfileRepo,
			deps.EmailSvc,
			deps.Broadcaster,
			deps.Config.FrontendURL,
		),
		Profile:     NewProfileService(deps.Repos.ProfileRepo, deps.Cache),
		Broadcaster: deps.Broadcaster,
	}
}
