package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"studyon-billing/internal/adapters/persistence/repositories"
	"studyon-billing/internal/config"
	"studyon-billing/internal/core/domain"
	"studyon-billing/internal/core/services"
	"studyon-billing/internal/pkg/password"
	"studyon-billing/internal/testutil"
)

func testConfig() *config.Config {
	return &config.Config{
		AppMode: "dev",
		JWT: config.JWTConfig{
			Secret:           "access-secret",
			RefreshSecret:    "refresh-secret",
			AccessTokenMins:  15,
			RefreshTokenDays: 30,
		},
	}
}

func newAuthService(t *testing.T) *services.AuthService {
	t.Helper()
	password.Cost = bcrypt.MinCost
	t.Cleanup(func() { password.Cost = password.DefaultCost })

	store := repositories.NewStore(testutil.NewDB(t))
	return services.NewAuthService(store.Users, store.RefreshTokens, testConfig())
}

func TestAuthService_RegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	auth := newAuthService(t)

	reg, err := auth.Register(ctx, &services.RegisterInput{Username: "new_user@gmail.com", Password: "new_user"})
	require.NoError(t, err)
	assert.NotEmpty(t, reg.Token)
	assert.NotEmpty(t, reg.RefreshToken)
	assert.Equal(t, []string{string(domain.RoleUser)}, reg.Roles)
	assert.True(t, reg.User.Balance.IsZero())

	claims, err := auth.ValidateAccessToken(reg.Token)
	require.NoError(t, err)
	assert.Equal(t, "new_user@gmail.com", claims.Email)

	_, err = auth.Register(ctx, &services.RegisterInput{Username: "new_user@gmail.com", Password: "other1"})
	assert.ErrorIs(t, err, domain.ErrEmailTaken)

	login, err := auth.Login(ctx, &services.LoginInput{Username: "new_user@gmail.com", Password: "new_user"})
	require.NoError(t, err)
	assert.NotEmpty(t, login.Token)

	_, err = auth.Login(ctx, &services.LoginInput{Username: "new_user@gmail.com", Password: "wrong"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = auth.Login(ctx, &services.LoginInput{Username: "ghost@gmail.com", Password: "new_user"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestAuthService_RefreshRotatesTokens(t *testing.T) {
	ctx := context.Background()
	auth := newAuthService(t)

	reg, err := auth.Register(ctx, &services.RegisterInput{Username: "user@gmail.com", Password: "secret1"})
	require.NoError(t, err)

	refreshed, err := auth.RefreshToken(ctx, reg.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, reg.RefreshToken, refreshed.RefreshToken)

	_, err = auth.RefreshToken(ctx, reg.RefreshToken)
	assert.ErrorIs(t, err, domain.ErrTokenRevoked, "old token was rotated out")

	require.NoError(t, auth.Logout(ctx, refreshed.RefreshToken))
	_, err = auth.RefreshToken(ctx, refreshed.RefreshToken)
	assert.ErrorIs(t, err, domain.ErrTokenRevoked)

	_, err = auth.RefreshToken(ctx, "garbage")
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)
}

func TestNewCronService_RejectsBadSpec(t *testing.T) {
	_, err := services.NewCronService(nil, nil, config.JobsConfig{ReportSpec: "not a spec", RentNoticeSpec: "0 9 * * *"}, nil)
	assert.Error(t, err)

	cron, err := services.NewCronService(nil, nil, config.JobsConfig{ReportSpec: "5 0 1 * *", RentNoticeSpec: "0 9 * * *"}, nil)
	require.NoError(t, err)
	cron.Start()
	cron.Stop()
}
