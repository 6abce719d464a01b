// Package service contains application services for items, categories and login.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	pkgcrypto "github.com/and161185/clipy/internal/crypto"
	"github.com/and161185/clipy/internal/errs"
	"github.com/and161185/clipy/internal/limiter"
	"github.com/and161185/clipy/internal/model"
	"github.com/and161185/clipy/internal/repository"
)

// AuthService verifies fixed-account credentials.
type AuthService interface {
	// LoginWithIP applies rate-limiting and authenticates the user.
	// The returned token is a signed session marker; routes are not
	// gated on it.
	LoginWithIP(ctx context.Context, login, password, ip string) (model.User, string, error)
}

type AuthServiceImpl struct {
	users     repository.UserRepository
	signKey   []byte
	accessTTL time.Duration
	lim       limiter.Limiter
}

// NewAuthService constructs AuthService with required dependencies.
func NewAuthService(users repository.UserRepository, signKey []byte, accessTTL time.Duration, lim limiter.Limiter) *AuthServiceImpl {
	return &AuthServiceImpl{users: users, signKey: signKey, accessTTL: accessTTL, lim: lim}
}

// LoginWithIP authenticates with rate limiting by (login, ip).
func (s *AuthServiceImpl) LoginWithIP(ctx context.Context, login, password, ip string) (model.User, string, error) {
	if login == "" || password == "" {
		return model.User{}, "", fmt.Errorf("%w: empty login/password", errs.ErrValidation)
	}
	ipHash := limiter.HashIP(ip)

	allowed, _, err := s.lim.Allow(ctx, login, ipHash)
	if err != nil {
		return model.User{}, "", err
	}
	if !allowed {
		return model.User{}, "", errs.ErrRateLimited
	}

	u, err := s.users.GetByLogin(ctx, login)
	if err != nil || !pkgcrypto.VerifyPassword([]byte(password), u.Salt, u.PwdHash) {
		if blocked, _, ferr := s.lim.Failure(ctx, login, ipHash); ferr == nil && blocked {
			return model.User{}, "", errs.ErrRateLimited
		}
		if err != nil && !errors.Is(err, errs.ErrNotFound) {
			return model.User{}, "", err
		}
		// hide whether the account exists
		return model.User{}, "", errs.ErrUnauthorized
	}

	// Success: reset counters (best-effort).
	_ = s.lim.Success(ctx, login, ipHash)

	token, err := s.issueToken(u.ID)
	if err != nil {
		return model.User{}, "", err
	}
	return *u, token, nil
}

// issueToken creates a signed HS256 JWT for the given subject.
func (s *AuthServiceImpl) issueToken(userID string) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.accessTTL)),
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tok.SignedString(s.signKey)
}
