package service

import (
	"context"
	"testing"
	"time"

	"ctchen222/ShareBnB/internal/api/apperror"
	"ctchen222/ShareBnB/internal/api/models"
	"ctchen222/ShareBnB/internal/auth"

	"github.com/stretchr/testify/require"
)

func TestUserService_SignupIssuesToken(t *testing.T) {
	f := newFixture(t)

	token, err := f.users.Signup(context.Background(), signupReq("alice"))
	require.NoError(t, err)

	claims, err := f.issuer.Verify(token)
	require.NoError(t, err)
	require.Equal(t, "alice", claims.Subject)

	stored, err := f.userRepo.GetUserByUsername(context.Background(), "alice")
	require.NoError(t, err)
	require.NotEqual(t, "secret", stored.Password)
	require.True(t, f.hasher.Verify("secret", stored.Password))
}

func TestUserService_SignupDuplicate(t *testing.T) {
	f := newFixture(t)
	f.signup(t, "alice")

	dup := signupReq("alice")
	dup.Email = "someone-else@example.com"
	dup.FirstName = "Other"
	_, err := f.users.Signup(context.Background(), dup)
	require.ErrorIs(t, err, apperror.ErrDuplicate)
}

func TestUserService_SignupValidation(t *testing.T) {
	f := newFixture(t)

	req := signupReq("alice")
	req.Email = "not-an-email"
	_, err := f.users.Signup(context.Background(), req)
	require.ErrorIs(t, err, apperror.ErrValidation)
}

func TestUserService_Authenticate(t *testing.T) {
	f := newFixture(t)
	f.signup(t, "alice")
	ctx := context.Background()

	user, ok, err := f.users.Authenticate(ctx, "alice", "secret")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "alice", user.Username)

	tests := []struct {
		name     string
		username string
		password string
	}{
		{name: "wrong password", username: "alice", password: "wrong"},
		{name: "unknown user", username: "mallory", password: "secret"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, ok, err := f.users.Authenticate(ctx, tt.username, tt.password)
			require.NoError(t, err)
			require.False(t, ok)
			require.Nil(t, user)

			_, err = f.users.Login(ctx, &models.LoginRequest{Username: tt.username, Password: tt.password})
			require.ErrorIs(t, err, ErrInvalidCredentials)
		})
	}
}

func TestUserService_UpdateUser(t *testing.T) {
	f := newFixture(t)
	f.signup(t, "alice")
	f.signup(t, "bob")
	ctx := context.Background()

	bio := "Superhost"
	user, err := f.users.UpdateUser(ctx, "alice", "alice", &models.UpdateUserRequest{Bio: &bio})
	require.NoError(t, err)
	require.Equal(t, "Superhost", user.Bio)
	require.Equal(t, "alice@example.com", user.Email)

	_, err = f.users.UpdateUser(ctx, "bob", "alice", &models.UpdateUserRequest{Bio: &bio})
	require.ErrorIs(t, err, apperror.ErrForbidden)

	taken := "bob@example.com"
	_, err = f.users.UpdateUser(ctx, "alice", "alice", &models.UpdateUserRequest{Email: &taken})
	require.ErrorIs(t, err, apperror.ErrEmailTaken)
	require.ErrorIs(t, err, apperror.ErrDuplicate)
}

func TestUserService_DeleteUser(t *testing.T) {
	f := newFixture(t)
	f.signup(t, "alice")
	ctx := context.Background()

	require.NoError(t, f.users.DeleteUser(ctx, "alice"))
	_, err := f.users.GetUser(ctx, "alice")
	require.ErrorIs(t, err, apperror.ErrNotFound)
	require.ErrorIs(t, f.users.DeleteUser(ctx, "alice"), apperror.ErrNotFound)
}

type fakeRevoker struct {
	jti   string
	until time.Time
}

func (r *fakeRevoker) Revoke(_ context.Context, jti string, until time.Time) error {
	r.jti, r.until = jti, until
	return nil
}

func (r *fakeRevoker) IsRevoked(_ context.Context, jti string) (bool, error) {
	return r.jti == jti, nil
}

func TestUserService_Logout(t *testing.T) {
	f := newFixture(t)
	claims := auth.ClaimsFor(&models.User{Username: "alice"}, time.Now(), time.Hour)

	require.ErrorIs(t, f.users.Logout(context.Background(), &claims), ErrLogoutUnavailable)

	revoker := &fakeRevoker{}
	svc := NewUserService(f.userRepo, f.hasher, f.issuer, revoker)
	require.NoError(t, svc.Logout(context.Background(), &claims))
	require.Equal(t, claims.ID, revoker.jti)
	require.True(t, claims.ExpiresAt.Time.Equal(revoker.until))

	noExpiry := auth.ClaimsFor(&models.User{Username: "alice"}, time.Now(), 0)
	require.NoError(t, svc.Logout(context.Background(), &noExpiry))
	require.True(t, revoker.until.IsZero())
}
