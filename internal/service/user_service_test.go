package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	apperrors "github.com/sidyfoba/solarcom-console/internal/pkg/errors"
)

type staticIssuer struct {
	token string
}

func (i staticIssuer) Issue(userID, username string, roles []string) (string, time.Time, error) {
	return i.token, time.Now().Add(time.Hour), nil
}

func TestUserService_Register(t *testing.T) {
	fs := newFakeStore()
	svc := NewUserService(fs, staticIssuer{token: "tok"}, 4)

	u, err := svc.Register(context.Background(), RegisterInput{
		Username:        "amina",
		Email:           "amina@solarcom.example",
		Password:        "s3cret-pass",
		ConfirmPassword: "s3cret-pass",
	})
	require.NoError(t, err)
	require.NotEmpty(t, u.ID)
	require.NotEqual(t, "s3cret-pass", u.PasswordHash)
	require.Equal(t, []string{"operator"}, u.Roles)
}

func TestUserService_Register_PasswordMismatchShortCircuits(t *testing.T) {
	fs := newFakeStore()
	svc := NewUserService(fs, staticIssuer{}, 4)

	_, err := svc.Register(context.Background(), RegisterInput{
		Username:        "amina",
		Password:        "one",
		ConfirmPassword: "two",
	})
	appErr, ok := apperrors.IsAppError(err)
	require.True(t, ok)
	require.Equal(t, apperrors.CodePasswordMismatch, appErr.Code)

	// Nothing was persisted.
	require.Empty(t, fs.users)
}

func TestUserService_Register_MalformedEmail(t *testing.T) {
	fs := newFakeStore()
	svc := NewUserService(fs, staticIssuer{}, 4)

	for _, email := range []string{"not-an-address", "missing@domain@twice", "trailing@"} {
		_, err := svc.Register(context.Background(), RegisterInput{
			Username:        "amina",
			Email:           email,
			Password:        "pw-123456",
			ConfirmPassword: "pw-123456",
		})
		appErr, ok := apperrors.IsAppError(err)
		require.True(t, ok, "email %q", email)
		require.Equal(t, apperrors.CodeValidationFailed, appErr.Code)
		require.Len(t, appErr.FieldErrors, 1)
		require.Equal(t, "email", appErr.FieldErrors[0].Field)
	}
	require.Empty(t, fs.users)

	// An empty email stays optional.
	_, err := svc.Register(context.Background(), RegisterInput{
		Username:        "amina",
		Password:        "pw-123456",
		ConfirmPassword: "pw-123456",
	})
	require.NoError(t, err)
}

func TestUserService_Register_DuplicateUsername(t *testing.T) {
	fs := newFakeStore()
	svc := NewUserService(fs, staticIssuer{}, 4)

	in := RegisterInput{Username: "amina", Password: "pw-123456", ConfirmPassword: "pw-123456"}
	_, err := svc.Register(context.Background(), in)
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), in)
	appErr, ok := apperrors.IsAppError(err)
	require.True(t, ok)
	require.Equal(t, apperrors.CodeUserExists, appErr.Code)
}

func TestUserService_CheckLogin(t *testing.T) {
	fs := newFakeStore()
	svc := NewUserService(fs, staticIssuer{token: "tok-1"}, 4)

	_, err := svc.Register(context.Background(), RegisterInput{
		Username:        "amina",
		Password:        "pw-123456",
		ConfirmPassword: "pw-123456",
	})
	require.NoError(t, err)

	res, err := svc.CheckLogin(context.Background(), "amina", "pw-123456")
	require.NoError(t, err)
	require.Equal(t, "tok-1", res.Token)
	require.Equal(t, "amina", res.User.Username)
}

func TestUserService_CheckLogin_BadCredentials(t *testing.T) {
	fs := newFakeStore()
	svc := NewUserService(fs, staticIssuer{}, 4)

	_, err := svc.Register(context.Background(), RegisterInput{
		Username:        "amina",
		Password:        "pw-123456",
		ConfirmPassword: "pw-123456",
	})
	require.NoError(t, err)

	for _, tc := range []struct {
		name     string
		username string
		password string
	}{
		{"wrong password", "amina", "nope"},
		{"unknown user", "ghost", "pw-123456"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.CheckLogin(context.Background(), tc.username, tc.password)
			appErr, ok := apperrors.IsAppError(err)
			require.True(t, ok)
			require.Equal(t, apperrors.CodeLoginFailed, appErr.Code)
		})
	}
}
