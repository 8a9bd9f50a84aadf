package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"eduxchange/internal/application/ports"
	"eduxchange/internal/domain/account"
	"eduxchange/internal/domain/profile"
	"eduxchange/internal/infrastructure/jwt"
	"eduxchange/internal/infrastructure/metrics"
)

var (
	ErrInvalidCredentials    = errors.New("invalid credentials")
	ErrFailedToGenerateToken = errors.New("failed to generate token")
	ErrTokenRevoked          = errors.New("token revoked")
)

type AuthService struct {
	accountRepository account.Repository
	profileRepository profile.Repository
	jwtService        *jwt.Service
	sessions          ports.SessionStore
	tokenTTL          time.Duration
	logger            *zap.Logger
	mCounter          *prometheus.CounterVec
	now               func() time.Time
}

func NewAuthService(
	accountRepository account.Repository,
	profileRepository profile.Repository,
	jwtService *jwt.Service,
	sessions ports.SessionStore,
	tokenTTL time.Duration,
	logger *zap.Logger,
	mCounter *prometheus.CounterVec,
) *AuthService {
	return &AuthService{
		accountRepository: accountRepository,
		profileRepository: profileRepository,
		jwtService:        jwtService,
		sessions:          sessions,
		tokenTTL:          tokenTTL,
		logger:            logger,
		mCounter:          mCounter,
		now:               time.Now,
	}
}

func (as *AuthService) SignUp(ctx context.Context, email, password, fullName string) (*account.Account, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	a, err := as.accountRepository.CreateAccount(ctx, normalizeEmail(email), string(hash))
	if err != nil {
		return nil, err
	}

	// a missing profile row is tolerated; the profile can be filled in later
	p := profile.Profile{ID: a.ID}
	if name := strings.TrimSpace(fullName); name != "" {
		p.FullName = &name
	}
	if _, err = as.profileRepository.UpsertProfile(ctx, p); err != nil {
		as.logger.Error("UpsertProfile() error", zap.Error(err), zap.Stringer("user_id", a.ID))
	}

	as.mCounter.WithLabelValues(metrics.AccountsCreated).Inc()

	return a, nil
}

func (as *AuthService) SignIn(ctx context.Context, email, password string) (string, error) {
	a, err := as.accountRepository.FetchAccountByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return "", err
	}
	if a == nil {
		return "", ErrInvalidCredentials
	}

	if err = bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	token, err := as.jwtService.GenerateJWT(a.ID.String(), a.Email, as.tokenTTL)
	if err != nil {
		return "", ErrFailedToGenerateToken
	}

	return token, nil
}

func (as *AuthService) SignOut(ctx context.Context, claims *jwt.Claims) error {
	if claims == nil || claims.ID == "" {
		return nil
	}

	ttl := as.tokenTTL
	if claims.ExpiresAt != nil {
		ttl = claims.ExpiresAt.Time.Sub(as.now())
	}
	if err := as.sessions.Revoke(ctx, claims.ID, ttl); err != nil {
		return fmt.Errorf("revoke session: %w", err)
	}

	as.mCounter.WithLabelValues(metrics.SessionsRevoked).Inc()

	return nil
}

func (as *AuthService) Authenticate(ctx context.Context, token string) (*jwt.Claims, error) {
	claims, err := as.jwtService.ValidateToken(token)
	if err != nil {
		return nil, err
	}

	revoked, err := as.sessions.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, fmt.Errorf("session lookup: %w", err)
	}
	if revoked {
		return nil, ErrTokenRevoked
	}

	return claims, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
