package auth

import (
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"crm-backend/internal/models"
	"crm-backend/internal/repository"
)

type resolverTestEnv struct {
	db       *gorm.DB
	tokens   *TokenIssuer
	resolver *Resolver
}

func setupResolverTestEnv(t *testing.T) resolverTestEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Org{},
		&models.Profile{},
	)
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	tokens := NewTokenIssuer("test-secret", time.Hour)
	resolver := NewResolver(
		tokens,
		repository.NewUserRepository(db),
		repository.NewOrgRepository(db),
		repository.NewProfileRepository(db),
	)

	return resolverTestEnv{db: db, tokens: tokens, resolver: resolver}
}

func (env resolverTestEnv) createUser(t *testing.T, email string) *models.User {
	t.Helper()
	user := &models.User{Email: email, PasswordHash: "x", IsActive: true}
	require.NoError(t, env.db.Create(user).Error)
	return user
}

func (env resolverTestEnv) createOrg(t *testing.T, name, apiKey string) *models.Org {
	t.Helper()
	org := &models.Org{Name: name, APIKey: apiKey}
	require.NoError(t, env.db.Create(org).Error)
	return org
}

func (env resolverTestEnv) createProfile(t *testing.T, user *models.User, org *models.Org, role string, active bool) *models.Profile {
	t.Helper()
	profile := &models.Profile{
		UserID:   user.ID,
		OrgID:    org.ID,
		Role:     role,
		IsActive: active,
	}
	require.NoError(t, env.db.Create(profile).Error)
	return profile
}

func (env resolverTestEnv) bearer(t *testing.T, userID uint64) string {
	t.Helper()
	token, err := env.tokens.Generate(userID)
	require.NoError(t, err)
	return "Bearer " + token
}

func TestResolver_NoCredentials(t *testing.T) {
	env := setupResolverTestEnv(t)

	rctx, err := env.resolver.Resolve(Credentials{})
	require.NoError(t, err)
	require.NotNil(t, rctx)
	require.False(t, rctx.Authenticated())
	require.Nil(t, rctx.User)
	require.Nil(t, rctx.Profile)
}

func TestResolver_OrgHeaderSelectsMatchingProfile(t *testing.T) {
	env := setupResolverTestEnv(t)

	user := env.createUser(t, "alice@example.com")
	acme := env.createOrg(t, "Acme", "key-acme")
	beta := env.createOrg(t, "Beta", "key-beta")
	env.createProfile(t, user, acme, models.RoleUser, true)
	betaProfile := env.createProfile(t, user, beta, models.RoleUser, true)

	rctx, err := env.resolver.Resolve(Credentials{
		Authorization: env.bearer(t, user.ID),
		OrgHeader:     strconv.FormatUint(beta.ID, 10),
	})
	require.NoError(t, err)
	require.True(t, rctx.Authenticated())
	require.Equal(t, user.ID, rctx.User.ID)
	require.Equal(t, betaProfile.ID, rctx.Profile.ID)
	require.Equal(t, beta.ID, rctx.OrgID())
}

func TestResolver_NoOrgHeaderFallsBackToLowestProfile(t *testing.T) {
	env := setupResolverTestEnv(t)

	user := env.createUser(t, "alice@example.com")
	acme := env.createOrg(t, "Acme", "key-acme")
	beta := env.createOrg(t, "Beta", "key-beta")
	first := env.createProfile(t, user, acme, models.RoleUser, true)
	env.createProfile(t, user, beta, models.RoleUser, true)

	rctx, err := env.resolver.Resolve(Credentials{
		Authorization: env.bearer(t, user.ID),
	})
	require.NoError(t, err)
	require.True(t, rctx.Authenticated())
	require.Equal(t, first.ID, rctx.Profile.ID)
	require.Equal(t, acme.ID, rctx.OrgID())
}

func TestResolver_FallbackSkipsInactiveProfiles(t *testing.T) {
	env := setupResolverTestEnv(t)

	user := env.createUser(t, "alice@example.com")
	acme := env.createOrg(t, "Acme", "key-acme")
	beta := env.createOrg(t, "Beta", "key-beta")
	env.createProfile(t, user, acme, models.RoleUser, false)
	active := env.createProfile(t, user, beta, models.RoleUser, true)

	rctx, err := env.resolver.Resolve(Credentials{
		Authorization: env.bearer(t, user.ID),
	})
	require.NoError(t, err)
	require.Equal(t, active.ID, rctx.Profile.ID)
}

func TestResolver_OrgHeaderWithoutMembershipFails(t *testing.T) {
	env := setupResolverTestEnv(t)

	user := env.createUser(t, "alice@example.com")
	acme := env.createOrg(t, "Acme", "key-acme")
	beta := env.createOrg(t, "Beta", "key-beta")
	env.createProfile(t, user, acme, models.RoleUser, true)

	// Member of Acme only; asking for Beta must fail rather than fall back.
	rctx, err := env.resolver.Resolve(Credentials{
		Authorization: env.bearer(t, user.ID),
		OrgHeader:     strconv.FormatUint(beta.ID, 10),
	})
	require.ErrorIs(t, err, ErrNoActiveProfile)
	require.Nil(t, rctx)
}

func TestResolver_OrgHeaderWithInactiveProfileFails(t *testing.T) {
	env := setupResolverTestEnv(t)

	user := env.createUser(t, "alice@example.com")
	acme := env.createOrg(t, "Acme", "key-acme")
	env.createProfile(t, user, acme, models.RoleUser, false)

	_, err := env.resolver.Resolve(Credentials{
		Authorization: env.bearer(t, user.ID),
		OrgHeader:     strconv.FormatUint(acme.ID, 10),
	})
	require.ErrorIs(t, err, ErrNoActiveProfile)
}

func TestResolver_UserWithoutAnyProfileFails(t *testing.T) {
	env := setupResolverTestEnv(t)

	user := env.createUser(t, "orphan@example.com")

	_, err := env.resolver.Resolve(Credentials{
		Authorization: env.bearer(t, user.ID),
	})
	require.ErrorIs(t, err, ErrNoActiveProfile)
}

func TestResolver_InvalidOrgHeader(t *testing.T) {
	env := setupResolverTestEnv(t)

	user := env.createUser(t, "alice@example.com")
	acme := env.createOrg(t, "Acme", "key-acme")
	env.createProfile(t, user, acme, models.RoleUser, true)

	_, err := env.resolver.Resolve(Credentials{
		Authorization: env.bearer(t, user.ID),
		OrgHeader:     "not-a-number",
	})
	require.ErrorIs(t, err, ErrInvalidOrgHeader)
}

func TestResolver_MalformedAuthorizationHeader(t *testing.T) {
	env := setupResolverTestEnv(t)

	for _, header := range []string{"Bearer", "Bearer ", "Basic abc", "token-without-scheme"} {
		_, err := env.resolver.Resolve(Credentials{Authorization: header})
		require.ErrorIs(t, err, ErrMalformedAuthHeader, "header %q", header)
	}
}

func TestResolver_InvalidToken(t *testing.T) {
	env := setupResolverTestEnv(t)

	_, err := env.resolver.Resolve(Credentials{
		Authorization: "Bearer not.a.jwt",
	})
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestResolver_TokenSignedWithOtherSecret(t *testing.T) {
	env := setupResolverTestEnv(t)

	other := NewTokenIssuer("other-secret", time.Hour)
	token, err := other.Generate(1)
	require.NoError(t, err)

	_, err = env.resolver.Resolve(Credentials{
		Authorization: "Bearer " + token,
	})
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestResolver_TokenForDeletedUser(t *testing.T) {
	env := setupResolverTestEnv(t)

	user := env.createUser(t, "gone@example.com")
	acme := env.createOrg(t, "Acme", "key-acme")
	env.createProfile(t, user, acme, models.RoleUser, true)
	require.NoError(t, env.db.Delete(&models.User{}, user.ID).Error)

	_, err := env.resolver.Resolve(Credentials{
		Authorization: env.bearer(t, user.ID),
	})
	require.ErrorIs(t, err, ErrUnknownUser)
}

func TestResolver_TokenForDeactivatedUser(t *testing.T) {
	env := setupResolverTestEnv(t)

	user := env.createUser(t, "benched@example.com")
	acme := env.createOrg(t, "Acme", "key-acme")
	env.createProfile(t, user, acme, models.RoleUser, true)

	token := env.bearer(t, user.ID)
	require.NoError(t, env.db.Model(&models.User{}).Where("id = ?", user.ID).Update("is_active", false).Error)

	// An unexpired token no longer resolves once the account is deactivated.
	rctx, err := env.resolver.Resolve(Credentials{Authorization: token})
	require.ErrorIs(t, err, ErrInactiveUser)
	require.Nil(t, rctx)
}

func TestResolver_APIKeyPinsOrgAndActsAsFirstAdmin(t *testing.T) {
	env := setupResolverTestEnv(t)

	admin1 := env.createUser(t, "admin1@example.com")
	admin2 := env.createUser(t, "admin2@example.com")
	acme := env.createOrg(t, "Acme", "key-acme")
	firstAdmin := env.createProfile(t, admin1, acme, models.RoleAdmin, true)
	env.createProfile(t, admin2, acme, models.RoleAdmin, true)

	rctx, err := env.resolver.Resolve(Credentials{APIKey: "key-acme"})
	require.NoError(t, err)
	require.True(t, rctx.Authenticated())
	require.True(t, rctx.OrgFromAPIKey)
	require.Equal(t, firstAdmin.ID, rctx.Profile.ID)
	require.Equal(t, admin1.ID, rctx.User.ID)
	require.Equal(t, acme.ID, rctx.OrgID())
}

func TestResolver_APIKeyIgnoresOrgHeader(t *testing.T) {
	env := setupResolverTestEnv(t)

	admin := env.createUser(t, "admin@example.com")
	acme := env.createOrg(t, "Acme", "key-acme")
	beta := env.createOrg(t, "Beta", "key-beta")
	env.createProfile(t, admin, acme, models.RoleAdmin, true)
	env.createProfile(t, admin, beta, models.RoleAdmin, true)

	// The key decides the tenant; a contradicting org header changes nothing.
	rctx, err := env.resolver.Resolve(Credentials{
		APIKey:    "key-acme",
		OrgHeader: strconv.FormatUint(beta.ID, 10),
	})
	require.NoError(t, err)
	require.Equal(t, acme.ID, rctx.OrgID())
}

func TestResolver_APIKeyOverridesBearerToken(t *testing.T) {
	env := setupResolverTestEnv(t)

	human := env.createUser(t, "human@example.com")
	admin := env.createUser(t, "admin@example.com")
	acme := env.createOrg(t, "Acme", "key-acme")
	beta := env.createOrg(t, "Beta", "key-beta")
	env.createProfile(t, human, beta, models.RoleUser, true)
	adminProfile := env.createProfile(t, admin, acme, models.RoleAdmin, true)

	rctx, err := env.resolver.Resolve(Credentials{
		Authorization: env.bearer(t, human.ID),
		APIKey:        "key-acme",
	})
	require.NoError(t, err)
	require.Equal(t, admin.ID, rctx.User.ID)
	require.Equal(t, adminProfile.ID, rctx.Profile.ID)
	require.Equal(t, acme.ID, rctx.OrgID())
}

func TestResolver_UnknownAPIKey(t *testing.T) {
	env := setupResolverTestEnv(t)

	_, err := env.resolver.Resolve(Credentials{APIKey: "never-issued"})
	require.ErrorIs(t, err, ErrUnknownAPIKey)
}

func TestResolver_APIKeyWithDeactivatedAdmin(t *testing.T) {
	env := setupResolverTestEnv(t)

	admin := env.createUser(t, "admin@example.com")
	acme := env.createOrg(t, "Acme", "key-acme")
	env.createProfile(t, admin, acme, models.RoleAdmin, true)
	require.NoError(t, env.db.Model(&models.User{}).Where("id = ?", admin.ID).Update("is_active", false).Error)

	_, err := env.resolver.Resolve(Credentials{APIKey: "key-acme"})
	require.ErrorIs(t, err, ErrInactiveUser)
}

func TestResolver_APIKeyForOrgWithoutAdmin(t *testing.T) {
	env := setupResolverTestEnv(t)

	member := env.createUser(t, "member@example.com")
	acme := env.createOrg(t, "Acme", "key-acme")
	env.createProfile(t, member, acme, models.RoleUser, true)

	_, err := env.resolver.Resolve(Credentials{APIKey: "key-acme"})
	require.ErrorIs(t, err, ErrNoAdminProfile)
}
