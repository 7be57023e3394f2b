package service

import (
	"strings"
	"testing"

	"skillmatrix_backend/internal/model"
	"skillmatrix_backend/internal/repository"
	"skillmatrix_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newAuthService(t *testing.T) (*AuthService, *repository.UserRepository) {
	t.Helper()
	db := newTestDB(t)
	userRepo := repository.NewUserRepository(db)
	return NewAuthService(userRepo, testConfig()), userRepo
}

func TestOnboardingFlow(t *testing.T) {
	auth, _ := newAuthService(t)

	user, err := auth.Register("Alice@Example.com", "Alice Smith")
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", user.Email)
	require.NotEmpty(t, user.VerificationCode)

	// Login before verification only hints at the next step.
	resp, err := auth.Login(user.Email, "whatever")
	require.NoError(t, err)
	assert.True(t, resp.NeedsVerification)
	assert.Empty(t, resp.Token)

	_, err = auth.VerifyEmail(user.Email, "000000x")
	assert.ErrorIs(t, err, util.ErrInvalidVerification)

	verified, err := auth.VerifyEmail(user.Email, user.VerificationCode)
	require.NoError(t, err)
	assert.True(t, verified.EmailVerified)
	assert.Empty(t, verified.VerificationCode)

	resp, err = auth.Login(user.Email, "whatever")
	require.NoError(t, err)
	assert.True(t, resp.NeedsPassword)

	resp, err = auth.SetPassword(user.Email, "hunter2hunter2", "First pet?", "Rex")
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)

	resp, err = auth.Login(user.Email, "hunter2hunter2")
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.False(t, resp.NeedsVerification)
	assert.False(t, resp.NeedsPassword)

	_, err = auth.Login(user.Email, "wrong password")
	assert.ErrorIs(t, err, util.ErrInvalidCredentials)
}

func TestFirstAccountBecomesRoot(t *testing.T) {
	auth, _ := newAuthService(t)

	first, err := auth.Register("root@example.com", "Root User")
	require.NoError(t, err)
	assert.Equal(t, model.RoleRoot, first.Role)

	second, err := auth.Register("dev@example.com", "Second User")
	require.NoError(t, err)
	assert.Equal(t, model.RoleDeveloper, second.Role)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	auth, _ := newAuthService(t)

	_, err := auth.Register("dup@example.com", "First")
	require.NoError(t, err)

	_, err = auth.Register("DUP@example.com", "Second")
	assert.ErrorIs(t, err, util.ErrEmailRegistered)
}

func TestInviteUserKeepsGivenRole(t *testing.T) {
	auth, _ := newAuthService(t)

	// Even as the first account, an invited user keeps the assigned role.
	user, err := auth.InviteUser("admin@example.com", "Team Admin", model.RoleTeamAdmin)
	require.NoError(t, err)
	assert.Equal(t, model.RoleTeamAdmin, user.Role)
	assert.NotEmpty(t, user.VerificationCode)
}

func TestResetPasswordViaSecurityAnswer(t *testing.T) {
	auth, _ := newAuthService(t)

	user, err := auth.Register("alice@example.com", "Alice Smith")
	require.NoError(t, err)
	_, err = auth.VerifyEmail(user.Email, user.VerificationCode)
	require.NoError(t, err)
	_, err = auth.SetPassword(user.Email, "originalpass1", "First pet?", "Rex")
	require.NoError(t, err)

	question, err := auth.SecurityQuestion(user.Email)
	require.NoError(t, err)
	assert.Equal(t, "First pet?", question)

	_, err = auth.ResetPassword(user.Email, "not rex", "newpassword1")
	assert.ErrorIs(t, err, util.ErrInvalidSecurityAnswer)

	// Answer matching ignores case and surrounding whitespace.
	resp, err := auth.ResetPassword(user.Email, "  REX ", "newpassword1")
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)

	_, err = auth.Login(user.Email, "originalpass1")
	assert.ErrorIs(t, err, util.ErrInvalidCredentials)

	resp, err = auth.Login(user.Email, "newpassword1")
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
}

func TestSecurityAnswerStoredAsBcryptHash(t *testing.T) {
	auth, users := newAuthService(t)

	user, err := auth.Register("alice@example.com", "Alice Smith")
	require.NoError(t, err)
	_, err = auth.VerifyEmail(user.Email, user.VerificationCode)
	require.NoError(t, err)
	_, err = auth.SetPassword(user.Email, "hunter2hunter2", "Favorite color?", "Crimson Red")
	require.NoError(t, err)

	// The recovery answer is a secret like the password and never lands in
	// the database as recoverable text.
	stored, err := users.FindByEmail(user.Email)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(stored.SecurityAnswer, "$2"))
	assert.NotContains(t, strings.ToLower(stored.SecurityAnswer), "crimson")
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.SecurityAnswer), []byte("crimson red")))

	resp, err := auth.ResetPassword(user.Email, "crimson red", "rotated-pass-1")
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
}

func TestLoginUnknownEmail(t *testing.T) {
	auth, _ := newAuthService(t)

	_, err := auth.Login("ghost@example.com", "whatever")
	assert.ErrorIs(t, err, util.ErrInvalidCredentials)
}

func TestIssuedTokenCarriesClaims(t *testing.T) {
	auth, _ := newAuthService(t)

	user, err := auth.Register("alice@example.com", "Alice Smith")
	require.NoError(t, err)
	_, err = auth.VerifyEmail(user.Email, user.VerificationCode)
	require.NoError(t, err)
	resp, err := auth.SetPassword(user.Email, "hunter2hunter2", "q", "a")
	require.NoError(t, err)

	claims, err := util.ParseJWT(resp.Token, testConfig().JWT.Secret)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, user.Email, claims.Email)
	assert.Equal(t, model.RoleRoot, claims.Role)
}
