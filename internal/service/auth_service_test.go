package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/mahfuzul873/m873/internal/model"
	appErr "github.com/mahfuzul873/m873/internal/pkg/errors"
	"github.com/mahfuzul873/m873/internal/pkg/jwt"
	"github.com/mahfuzul873/m873/internal/pkg/password"
	"github.com/mahfuzul873/m873/internal/service"
)

type fakeUserStore struct {
	users map[string]*model.User
}

func (f *fakeUserStore) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	for _, user := range f.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, appErr.ErrNotFound
}

func (f *fakeUserStore) GetByID(ctx context.Context, id string) (*model.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, appErr.ErrNotFound
	}
	return user, nil
}

type fakeRoleStore struct {
	roles map[string][]string
}

func (f *fakeRoleStore) HasRole(ctx context.Context, userID, role string) (bool, error) {
	for _, r := range f.roles[userID] {
		if r == role {
			return true, nil
		}
	}
	return false, nil
}

const testSecret = "test-secret"

func setupAuth(t *testing.T, owner bool) (*service.AuthService, *fakeOTPStore) {
	t.Helper()
	hash, err := password.Hash("correct-horse")
	require.NoError(t, err)

	users := &fakeUserStore{users: map[string]*model.User{
		"user-1": {ID: "user-1", Email: "owner@m873.example", PasswordHash: hash},
	}}
	roles := &fakeRoleStore{roles: map[string][]string{}}
	if owner {
		roles.roles["user-1"] = []string{model.RoleOwner}
	}

	otpStore := newFakeOTPStore()
	otps := service.NewOTPService(otpStore, nil, service.OTPServiceOptions{TTL: 10 * time.Minute})
	return service.NewAuthService(users, roles, otps, []byte(testSecret), time.Hour), otpStore
}

func TestOwnerLoginFlow(t *testing.T) {
	auth, store := setupAuth(t, true)

	issue, err := auth.StartLogin(context.Background(), "owner@m873.example", "correct-horse")
	require.NoError(t, err)
	require.NotNil(t, issue)

	code := store.rows["owner@m873.example"].Code
	user, token, err := auth.CompleteLogin(context.Background(), "owner@m873.example", code)
	require.NoError(t, err)
	require.Equal(t, "user-1", user.ID)

	claims, err := jwt.ParseToken(token, []byte(testSecret))
	require.NoError(t, err)
	require.Equal(t, "user-1", claims.UserID)
	require.Equal(t, "owner@m873.example", claims.Email)
}

func TestStartLoginWrongPassword(t *testing.T) {
	auth, _ := setupAuth(t, true)
	_, err := auth.StartLogin(context.Background(), "owner@m873.example", "wrong")
	require.ErrorIs(t, err, appErr.ErrUnauthorized)
}

func TestStartLoginUnknownEmail(t *testing.T) {
	auth, _ := setupAuth(t, true)
	_, err := auth.StartLogin(context.Background(), "nobody@m873.example", "correct-horse")
	require.ErrorIs(t, err, appErr.ErrUnauthorized)
}

func TestCompleteLoginWrongCode(t *testing.T) {
	auth, store := setupAuth(t, true)

	_, err := auth.StartLogin(context.Background(), "owner@m873.example", "correct-horse")
	require.NoError(t, err)

	wrong := "000000"
	if store.rows["owner@m873.example"].Code == wrong {
		wrong = "000001"
	}
	_, _, err = auth.CompleteLogin(context.Background(), "owner@m873.example", wrong)
	require.ErrorIs(t, err, appErr.ErrUnauthorized)
}

func TestCompleteLoginRequiresOwnerRole(t *testing.T) {
	auth, store := setupAuth(t, false)

	_, err := auth.StartLogin(context.Background(), "owner@m873.example", "correct-horse")
	require.NoError(t, err)

	code := store.rows["owner@m873.example"].Code
	_, _, err = auth.CompleteLogin(context.Background(), "owner@m873.example", code)
	require.ErrorIs(t, err, appErr.ErrUnauthorized)
}

func TestCompleteLoginCodeNotReusable(t *testing.T) {
	auth, store := setupAuth(t, true)

	_, err := auth.StartLogin(context.Background(), "owner@m873.example", "correct-horse")
	require.NoError(t, err)

	code := store.rows["owner@m873.example"].Code
	_, _, err = auth.CompleteLogin(context.Background(), "owner@m873.example", code)
	require.NoError(t, err)

	_, _, err = auth.CompleteLogin(context.Background(), "owner@m873.example", code)
	require.ErrorIs(t, err, appErr.ErrUnauthorized)
}

func TestIsOwner(t *testing.T) {
	auth, _ := setupAuth(t, true)
	ok, err := auth.IsOwner(context.Background(), "user-1")
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = auth.IsOwner(context.Background(), "user-2")
	require.NoError(t, err)
	require.False(t, ok)
}
