package service_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"devtasks/internal/domain"
	"devtasks/internal/oauth"
	"devtasks/internal/service"
)

func TestRegisterAndLogin(t *testing.T) {
	f := newFixture(t)

	u, err := f.auth.Register("Bob@Example.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, "bob@example.com", u.Email)
	assert.False(t, u.IsAdmin)
	assert.True(t, u.HasPassword())

	got, err := f.auth.Login("bob@example.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	_, err = f.auth.Login("bob@example.com", "wrong")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = f.auth.Login("nobody@example.com", "secret1")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestRegisterDuplicateEmailCaseInsensitive(t *testing.T) {
	f := newFixture(t)

	_, err := f.auth.Register("A@x.com", "secret1")
	require.NoError(t, err)

	_, err = f.auth.Register("a@x.com", "secret1")
	assert.ErrorIs(t, err, domain.ErrDuplicateEmail)
}

func TestRegisterValidation(t *testing.T) {
	f := newFixture(t)

	_, err := f.auth.Register("not-an-email", "secret1")
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = f.auth.Register("ok@x.com", "short")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestRegisterBootstrapAdminEmail(t *testing.T) {
	f := newFixture(t)

	u, err := f.auth.Register("Admin@Admin.com", "secret1")
	require.NoError(t, err)
	assert.True(t, u.IsAdmin)
}

func TestFederatedSignInCreatesUser(t *testing.T) {
	f := newFixture(t)

	u, err := f.auth.FederatedSignIn("google", oauth.Profile{
		Email:   "Carol@Example.com",
		Subject: "goog-123",
		Name:    "Carol",
	})
	require.NoError(t, err)
	assert.Equal(t, "carol@example.com", u.Email)
	assert.Equal(t, "google", u.OAuthProvider)
	assert.Equal(t, "goog-123", u.OAuthSub)
	assert.False(t, u.HasPassword())
}

func TestFederatedSignInLinksExistingAccount(t *testing.T) {
	f := newFixture(t)

	local, err := f.auth.Register("dave@example.com", "secret1")
	require.NoError(t, err)

	linked, err := f.auth.FederatedSignIn("github", oauth.Profile{
		Email:   "dave@example.com",
		Subject: "42",
	})
	require.NoError(t, err)
	assert.Equal(t, local.ID, linked.ID)
	assert.Equal(t, "github", linked.OAuthProvider)
	assert.True(t, linked.HasPassword())
}

func TestFederatedSignInEmailMissing(t *testing.T) {
	f := newFixture(t)

	_, err := f.auth.FederatedSignIn("github", oauth.Profile{Subject: "42"})
	assert.ErrorIs(t, err, domain.ErrEmailMissing)

	users, err := f.users.List()
	require.NoError(t, err)
	assert.Empty(t, users)
}

func TestFederatedSignInBootstrapAdmin(t *testing.T) {
	f := newFixture(t)

	u, err := f.auth.FederatedSignIn("facebook", oauth.Profile{
		Email:   "admin@admin.com",
		Subject: "fb-1",
	})
	require.NoError(t, err)
	assert.True(t, u.IsAdmin)
}

func TestUpdateProfile(t *testing.T) {
	f := newFixture(t)
	u, err := f.auth.Register("eve@example.com", "secret1")
	require.NoError(t, err)

	got, err := f.auth.UpdateProfile(u.ID, profile("Eve", "hi", "https://a/e.png", "", ""))
	require.NoError(t, err)
	assert.Equal(t, "Eve", got.Name)
	assert.Equal(t, "hi", got.Bio)

	// 换口令要先验旧口令
	_, err = f.auth.UpdateProfile(u.ID, profile("Eve", "", "", "wrong", "newsecret"))
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = f.auth.UpdateProfile(u.ID, profile("Eve", "", "", "secret1", "newsecret"))
	require.NoError(t, err)

	_, err = f.auth.Login("eve@example.com", "newsecret")
	assert.NoError(t, err)
}

func TestUpdateProfileFederationOnlySetsFirstPassword(t *testing.T) {
	f := newFixture(t)
	u, err := f.auth.FederatedSignIn("google", oauth.Profile{Email: "fred@example.com", Subject: "g-9"})
	require.NoError(t, err)

	_, err = f.auth.UpdateProfile(u.ID, profile("Fred", "", "", "", "secret1"))
	require.NoError(t, err)

	_, err = f.auth.Login("fred@example.com", "secret1")
	assert.NoError(t, err)
}

func TestBootstrapIdempotent(t *testing.T) {
	f := newFixture(t)

	created, err := f.auth.Bootstrap("admin@admin.com", "admin")
	require.NoError(t, err)
	assert.True(t, created)

	created, err = f.auth.Bootstrap("admin@admin.com", "admin")
	require.NoError(t, err)
	assert.False(t, created)

	u, err := f.users.FindByEmail("admin@admin.com")
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.True(t, u.IsAdmin)
}

func profile(name, bio, avatar, current, newPw string) service.ProfileUpdate {
	return service.ProfileUpdate{
		Name:            name,
		Bio:             bio,
		Avatar:          avatar,
		CurrentPassword: current,
		NewPassword:     newPw,
	}
}
