package services

import (
	"testing"
	"time"

	"github.com/arzan03/EstateHub/internal/models"
	"github.com/arzan03/EstateHub/internal/testhelpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuth(users *testhelpers.UserRepo) *AuthService {
	return NewAuthService(users, "test-secret", time.Hour)
}

func TestSignupRejectsShortPasswordBeforeStorage(t *testing.T) {
	users := testhelpers.NewUserRepo()
	auth := newAuth(users)

	_, err := auth.Signup(t.Context(), SignupRequest{Name: "Ann", Email: "ann@example.com", Password: "short"})

	require.Error(t, err)
	assert.True(t, IsValidation(err))
	assert.Contains(t, err.Error(), "password")
	assert.Zero(t, users.Calls)
}

func TestSignupRejectsMalformedEmail(t *testing.T) {
	users := testhelpers.NewUserRepo()

	_, err := newAuth(users).Signup(t.Context(), SignupRequest{Name: "Ann", Email: "not-an-email", Password: "password123"})

	assert.True(t, IsValidation(err))
	assert.Zero(t, users.Calls)
}

func TestSignupCreatesPlainUser(t *testing.T) {
	users := testhelpers.NewUserRepo()

	user, err := newAuth(users).Signup(t.Context(), SignupRequest{Name: " Ann ", Email: "Ann@Example.com ", Password: "password123"})

	require.NoError(t, err)
	assert.Equal(t, "Ann", user.Name)
	assert.Equal(t, "ann@example.com", user.Email)
	assert.Equal(t, models.RoleUser, user.Role)
	assert.Empty(t, user.Password)

	stored, ok := users.Get(user.ID)
	require.True(t, ok)
	assert.NotEqual(t, "password123", stored.Password)
	assert.True(t, VerifyPassword("password123", stored.Password))
}

func TestSignupDuplicateEmail(t *testing.T) {
	users := testhelpers.NewUserRepo()
	testhelpers.NewUser(t, users, "Ann", "ann@example.com", "password123", models.RoleUser)

	_, err := newAuth(users).Signup(t.Context(), SignupRequest{Name: "Other", Email: "ANN@example.com", Password: "password456"})

	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestLogin(t *testing.T) {
	users := testhelpers.NewUserRepo()
	admin := testhelpers.NewUser(t, users, "Root", "root@example.com", "password123", models.RoleAdmin)
	auth := newAuth(users)

	t.Run("valid credentials", func(t *testing.T) {
		token, user, err := auth.Login(t.Context(), LoginRequest{Email: "Root@example.com", Password: "password123"})
		require.NoError(t, err)
		assert.NotEmpty(t, token)
		assert.Equal(t, admin.ID, user.ID)
		assert.Empty(t, user.Password)

		session, err := auth.ParseToken(token)
		require.NoError(t, err)
		assert.Equal(t, admin.ID.Hex(), session.UserID)
		assert.Equal(t, models.RoleAdmin, session.Role)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, _, err := auth.Login(t.Context(), LoginRequest{Email: "root@example.com", Password: "nope-nope"})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, _, err := auth.Login(t.Context(), LoginRequest{Email: "ghost@example.com", Password: "password123"})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("missing fields", func(t *testing.T) {
		_, _, err := auth.Login(t.Context(), LoginRequest{Email: "root@example.com"})
		assert.True(t, IsValidation(err))
	})
}

func TestParseTokenRejectsBadTokens(t *testing.T) {
	auth := newAuth(testhelpers.NewUserRepo())

	other := NewAuthService(nil, "other-secret", time.Hour)
	foreign, err := other.GenerateJWT("65f000000000000000000001", models.RoleUser)
	require.NoError(t, err)

	expired, err := NewAuthService(nil, "test-secret", -time.Minute).GenerateJWT("65f000000000000000000001", models.RoleUser)
	require.NoError(t, err)

	noUser, err := auth.GenerateJWT("", models.RoleUser)
	require.NoError(t, err)

	for name, token := range map[string]string{
		"garbage":      "not.a.token",
		"wrong secret": foreign,
		"expired":      expired,
		"empty user":   noUser,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := auth.ParseToken(token)
			assert.ErrorIs(t, err, ErrUnauthenticated)
		})
	}
}
