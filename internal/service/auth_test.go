package service_test

import (
	"testing"
	"time"

	"github.com/stashbin/stashbin/internal/repository"
	"github.com/stashbin/stashbin/internal/repository/testutil"
	"github.com/stashbin/stashbin/internal/service"
	"github.com/stretchr/testify/require"
)

func newAuthService(t *testing.T) (*service.AuthService, repository.SessionRepository) {
	t.Helper()
	db := testutil.NewTestDB(t)
	sessionRepo := repository.NewSessionRepository(db)
	svc := service.NewAuthService(
		repository.NewUserRepository(db),
		sessionRepo,
		"test-secret",
		false,
		24*time.Hour,
	)
	return svc, sessionRepo
}

func TestAuthService_RegisterAndLogin(t *testing.T) {
	svc, _ := newAuthService(t)

	user, err := svc.Register("A@X.com", "a strong passphrase")
	require.NoError(t, err)
	require.Equal(t, "a@x.com", user.Email)
	require.NotEqual(t, "a strong passphrase", user.PasswordHash)

	got, err := svc.Login("a@x.com", "a strong passphrase")
	require.NoError(t, err)
	require.Equal(t, user.ID, got.ID)
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	svc, _ := newAuthService(t)

	_, err := svc.Register("a@x.com", "a strong passphrase")
	require.NoError(t, err)

	_, err = svc.Register("a@x.com", "another passphrase!")
	require.ErrorIs(t, err, service.ErrEmailAlreadyExists)
}

func TestAuthService_Register_RejectsWeakInput(t *testing.T) {
	svc, _ := newAuthService(t)

	_, err := svc.Register("not-an-email", "a strong passphrase")
	require.Error(t, err)

	_, err = svc.Register("a@x.com", "short")
	require.Error(t, err)
}

func TestAuthService_Login_InvalidCredentials(t *testing.T) {
	svc, _ := newAuthService(t)

	_, err := svc.Register("a@x.com", "a strong passphrase")
	require.NoError(t, err)

	_, err = svc.Login("a@x.com", "wrong passphrase")
	require.ErrorIs(t, err, service.ErrInvalidCredentials)

	// Unknown email reads exactly like a bad password
	_, err = svc.Login("nobody@x.com", "a strong passphrase")
	require.ErrorIs(t, err, service.ErrInvalidCredentials)
}

func TestAuthService_SessionRoundTrip(t *testing.T) {
	svc, _ := newAuthService(t)

	user, err := svc.Register("a@x.com", "a strong passphrase")
	require.NoError(t, err)

	token, session, err := svc.StartSession(user)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	gotUser, gotSession, err := svc.Authenticate(token)
	require.NoError(t, err)
	require.Equal(t, user.ID, gotUser.ID)
	require.Equal(t, session.ID, gotSession.ID)
}

func TestAuthService_Authenticate_RevokedSession(t *testing.T) {
	svc, _ := newAuthService(t)

	user, err := svc.Register("a@x.com", "a strong passphrase")
	require.NoError(t, err)

	token, session, err := svc.StartSession(user)
	require.NoError(t, err)

	require.NoError(t, svc.EndSession(session.ID))

	// The JWT is still signed and unexpired, but the row is gone
	_, _, err = svc.Authenticate(token)
	require.ErrorIs(t, err, service.ErrInvalidSession)
}

func TestAuthService_Authenticate_GarbageToken(t *testing.T) {
	svc, _ := newAuthService(t)

	_, _, err := svc.Authenticate("not-a-jwt")
	require.ErrorIs(t, err, service.ErrInvalidSession)
}

func TestAuthService_Authenticate_ExpiredSession(t *testing.T) {
	db := testutil.NewTestDB(t)
	sessionRepo := repository.NewSessionRepository(db)
	svc := service.NewAuthService(
		repository.NewUserRepository(db),
		sessionRepo,
		"test-secret",
		false,
		-time.Minute, // sessions are born expired
	)

	user, err := svc.Register("a@x.com", "a strong passphrase")
	require.NoError(t, err)

	token, session, err := svc.StartSession(user)
	require.NoError(t, err)

	got, err := sessionRepo.ByID(session.ID)
	require.NoError(t, err)
	require.True(t, got.IsExpired())

	_, _, err = svc.Authenticate(token)
	require.ErrorIs(t, err, service.ErrInvalidSession)
}
