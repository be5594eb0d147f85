package repository

import (
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"crm-backend/internal/models"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{})
	require.NoError(t, err)

	return db, mock
}

func TestOrgRepository_CreateWithAdminProfileCommits(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewOrgRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "orgs"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectQuery(`INSERT INTO "profiles"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectCommit()

	org := &models.Org{Name: "Acme", APIKey: "key-acme"}
	profile := &models.Profile{UserID: 1, Role: models.RoleAdmin, IsOrganizationAdmin: true, IsActive: true}

	require.NoError(t, repo.CreateWithAdminProfile(org, profile))
	require.Equal(t, org.ID, profile.OrgID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestOrgRepository_CreateWithAdminProfileRollsBack(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewOrgRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "orgs"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectQuery(`INSERT INTO "profiles"`).
		WillReturnError(errors.New("constraint violation"))
	mock.ExpectRollback()

	org := &models.Org{Name: "Acme", APIKey: "key-acme"}
	profile := &models.Profile{UserID: 1, Role: models.RoleAdmin}

	err := repo.CreateWithAdminProfile(org, profile)
	require.ErrorIs(t, err, ErrCreateAdminProfile)
	require.NoError(t, mock.ExpectationsWereMet())
}

func setupOrgRepoTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Org{}, &models.Profile{}))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return db
}

func TestOrgRepository_FirstOrCreateByNameIsIdempotent(t *testing.T) {
	db := setupOrgRepoTestDB(t)
	repo := NewOrgRepository(db)

	first, err := repo.FirstOrCreateByName("Default Org", "key-one")
	require.NoError(t, err)
	require.Equal(t, "key-one", first.APIKey)

	// Second call returns the existing org and keeps its key.
	second, err := repo.FirstOrCreateByName("Default Org", "key-two")
	require.NoError(t, err)
	require.Equal(t, first.ID, second.ID)
	require.Equal(t, "key-one", second.APIKey)

	var count int64
	require.NoError(t, db.Model(&models.Org{}).Count(&count).Error)
	require.Equal(t, int64(1), count)
}

func TestOrgRepository_FindByAPIKey(t *testing.T) {
	db := setupOrgRepoTestDB(t)
	repo := NewOrgRepository(db)

	require.NoError(t, db.Create(&models.Org{Name: "Acme", APIKey: "key-acme"}).Error)

	org, err := repo.FindByAPIKey("key-acme")
	require.NoError(t, err)
	require.Equal(t, "Acme", org.Name)

	_, err = repo.FindByAPIKey("missing")
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestOrgRepository_FindByNameCaseInsensitive(t *testing.T) {
	db := setupOrgRepoTestDB(t)
	repo := NewOrgRepository(db)

	require.NoError(t, db.Create(&models.Org{Name: "Acme", APIKey: "key-acme"}).Error)

	org, err := repo.FindByName("ACME")
	require.NoError(t, err)
	require.Equal(t, "Acme", org.Name)
}
