package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/squadhq/squad-backend/internal/apperr"
	"github.com/squadhq/squad-backend/internal/db"
	"github.com/squadhq/squad-backend/internal/repository"
	"github.com/squadhq/squad-backend/internal/wallet"
)

const profileCacheTTL = 5 * time.Minute

// ProfileService manages the link between an authenticated email identity
// and a wallet address.
type ProfileService interface {
	GetByEmail(ctx context.Context, email string) (*repository.Profile, error)
	LinkWallet(ctx context.Context, email, walletAddress string) (*repository.Profile, error)
}

type profileService struct {
	profileRepo repository.ProfileRepository
	cache       *db.RedisDB
}

func NewProfileService(profileRepo repository.ProfileRepository, cache *db.RedisDB) ProfileService {
	return &profileService{profileRepo: profileRepo, cache: cache}
}

func (s *profileService) GetByEmail(ctx context.Context, email string) (*repository.Profile, error) {
	if email == "" {
		return nil, apperr.Validation("Email is required")
	}

	if s.cache != nil {
		var cached repository.Profile
		if err := s.cache.GetCache(ctx, profileCacheKey(email), &cached); err == nil {
			return &cached, nil
		}
	}

	profile, err := s.profileRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if profile == nil {
		return nil, apperr.NotFound("Profile not found")
	}

	s.cacheProfile(ctx, email, profile)
	return profile, nil
}

func (s *profileService) LinkWallet(ctx context.Context, email, walletAddress string) (*repository.Profile, error) {
	if email == "" {
		return nil, apperr.Validation("Email is required")
	}
	if !wallet.IsValid(walletAddress) {
		return nil, apperr.Validation("Invalid wallet address format")
	}
	walletAddress = wallet.Normalize(walletAddress)

	// A wallet already linked to a different email stays with that email.
	existing, err := s.profileRepo.FindByWallet(ctx, walletAddress)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if existing != nil && existing.Email != nil && *existing.Email != email {
		return nil, apperr.Conflict("Wallet is already linked to another account")
	}

	profile, err := s.profileRepo.LinkEmail(ctx, walletAddress, email)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	s.cacheProfile(ctx, email, profile)
	return profile, nil
}

func (s *profileService) cacheProfile(ctx context.Context, email string, profile *repository.Profile) {
	if s.cache == nil {
		return
	}
	if err := s.cache.SetCache(ctx, profileCacheKey(email), profile, profileCacheTTL); err != nil {
		log.Printf("[Profile] Cache write failed for %s: %v", email, err)
	}
}

func profileCacheKey(email string) string {
	return fmt.Sprintf("profile:email:%s", email)
}
