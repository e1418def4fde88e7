package service

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"github.com/squadhq/squad-backend/internal/config"
)

// ============================================
// Auth Service
// ============================================

// AuthService validates session tokens issued by the identity provider.
// Tokens are not minted here; sign-in happens upstream and this backend only
// verifies the shared-secret signature and extracts the email claim.
type AuthService interface {
	ValidateToken(tokenString string) (*jwt.Token, error)
	GetEmailFromToken(token *jwt.Token) (string, error)
}

type authService struct {
	cfg *config.Config
}

func NewAuthService(cfg *config.Config) AuthService {
	return &authService{cfg: cfg}
}

func (s *authService) ValidateToken(tokenString string) (*jwt.Token, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.cfg.SessionSecret), nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}
	return token, nil
}

func (s *authService) GetEmailFromToken(token *jwt.Token) (string, error) {
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", ErrInvalidToken
	}
	email, ok := claims["email"].(string)
	if !ok || email == "" {
		return "", ErrInvalidToken
	}
	return email, nil
}
