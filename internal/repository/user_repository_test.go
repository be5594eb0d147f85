package repository

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"crm-backend/internal/models"
)

func TestUserRepository_FindByEmailCaseInsensitive(t *testing.T) {
	db := setupOrgRepoTestDB(t)
	repo := NewUserRepository(db)

	require.NoError(t, db.Create(&models.User{Email: "alice@example.com", PasswordHash: "x", IsActive: true}).Error)

	user, err := repo.FindByEmail("Alice@Example.COM")
	require.NoError(t, err)
	require.Equal(t, "alice@example.com", user.Email)

	_, err = repo.FindByEmail("nobody@example.com")
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestUserRepository_CreateWithProfile(t *testing.T) {
	db := setupOrgRepoTestDB(t)
	repo := NewUserRepository(db)

	org := &models.Org{Name: "acme", APIKey: "key-acme"}
	require.NoError(t, db.Create(org).Error)

	user := &models.User{Email: "hire@example.com", PasswordHash: "x", IsActive: true}
	profile := &models.Profile{OrgID: org.ID, Role: models.RoleUser, IsActive: true}

	require.NoError(t, repo.CreateWithProfile(user, profile))
	require.NotZero(t, user.ID)
	require.Equal(t, user.ID, profile.UserID)

	var stored models.Profile
	require.NoError(t, db.Where("user_id = ?", user.ID).First(&stored).Error)
	require.Equal(t, org.ID, stored.OrgID)
}

func TestUserRepository_DeleteRemovesProfiles(t *testing.T) {
	db := setupOrgRepoTestDB(t)
	repo := NewUserRepository(db)

	org := &models.Org{Name: "acme", APIKey: "key-acme"}
	require.NoError(t, db.Create(org).Error)

	user := &models.User{Email: "leaver@example.com", PasswordHash: "x", IsActive: true}
	require.NoError(t, db.Create(user).Error)
	require.NoError(t, db.Create(&models.Profile{UserID: user.ID, OrgID: org.ID, Role: models.RoleUser, IsActive: true}).Error)

	require.NoError(t, repo.Delete(user.ID))

	var users, profiles int64
	require.NoError(t, db.Model(&models.User{}).Where("id = ?", user.ID).Count(&users).Error)
	require.NoError(t, db.Model(&models.Profile{}).Where("user_id = ?", user.ID).Count(&profiles).Error)
	require.Zero(t, users)
	require.Zero(t, profiles)
}
