package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"eduxchange/internal/infrastructure/jwt"
	"eduxchange/internal/infrastructure/metrics"
	"eduxchange/internal/infrastructure/session"
)

func newAuthFixture() (*AuthService, *fakeAccounts, *fakeProfiles) {
	accounts := newFakeAccounts()
	profiles := newFakeProfiles()
	svc := NewAuthService(
		accounts,
		profiles,
		jwt.New("test-secret"),
		session.NewMemory(),
		time.Hour,
		zap.NewNop(),
		metrics.NewUnregistered(),
	)
	return svc, accounts, profiles
}

func TestAuthService_SignUp(t *testing.T) {
	svc, accounts, profiles := newAuthFixture()

	a, err := svc.SignUp(context.Background(), "  Ada@Uni.TEST ", "s3cret-pass", " Ada ")
	require.NoError(t, err)

	assert.Equal(t, "ada@uni.test", a.Email)
	assert.NotEqual(t, "s3cret-pass", accounts.byEmail["ada@uni.test"].PasswordHash)
	require.Contains(t, profiles.rows, a.ID)
	assert.Equal(t, "Ada", *profiles.rows[a.ID].FullName)
}

func TestAuthService_SignUp_ProfileFailureTolerated(t *testing.T) {
	svc, _, profiles := newAuthFixture()
	profiles.upsertErr = errors.New("db down")

	a, err := svc.SignUp(context.Background(), "bob@uni.test", "password1", "")
	require.NoError(t, err)
	assert.NotNil(t, a)
}

func TestAuthService_SignUp_AccountError(t *testing.T) {
	svc, accounts, _ := newAuthFixture()
	accounts.createErr = errors.New("email taken")

	_, err := svc.SignUp(context.Background(), "bob@uni.test", "password1", "")
	assert.EqualError(t, err, "email taken")
}

func TestAuthService_SignIn(t *testing.T) {
	svc, _, _ := newAuthFixture()
	ctx := context.Background()
	_, err := svc.SignUp(ctx, "ada@uni.test", "right-pass", "")
	require.NoError(t, err)

	tests := []struct {
		name     string
		email    string
		password string
		wantErr  error
	}{
		{name: "ok", email: "ADA@uni.test", password: "right-pass"},
		{name: "wrong password", email: "ada@uni.test", password: "nope", wantErr: ErrInvalidCredentials},
		{name: "unknown email", email: "eve@uni.test", password: "right-pass", wantErr: ErrInvalidCredentials},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			token, err := svc.SignIn(ctx, tt.email, tt.password)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, token)
				return
			}
			require.NoError(t, err)

			claims, err := svc.Authenticate(ctx, token)
			require.NoError(t, err)
			assert.Equal(t, "ada@uni.test", claims.Email)
		})
	}
}

func TestAuthService_SignOut_RevokesToken(t *testing.T) {
	svc, _, _ := newAuthFixture()
	ctx := context.Background()
	_, err := svc.SignUp(ctx, "ada@uni.test", "right-pass", "")
	require.NoError(t, err)

	token, err := svc.SignIn(ctx, "ada@uni.test", "right-pass")
	require.NoError(t, err)
	claims, err := svc.Authenticate(ctx, token)
	require.NoError(t, err)

	require.NoError(t, svc.SignOut(ctx, claims))

	_, err = svc.Authenticate(ctx, token)
	assert.ErrorIs(t, err, ErrTokenRevoked)

	other, err := svc.SignIn(ctx, "ada@uni.test", "right-pass")
	require.NoError(t, err)
	_, err = svc.Authenticate(ctx, other)
	assert.NoError(t, err, "a fresh login is unaffected")
}

func TestAuthService_SignOut_NoClaims(t *testing.T) {
	svc, _, _ := newAuthFixture()
	assert.NoError(t, svc.SignOut(context.Background(), nil))
}

func TestAuthService_Authenticate_Invalid(t *testing.T) {
	svc, _, _ := newAuthFixture()
	_, err := svc.Authenticate(context.Background(), "not-a-jwt")
	assert.Error(t, err)
}
