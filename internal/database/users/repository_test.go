package users

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/libsysapp/libsys-server/internal/entities"
)

func setupTestDB(t *testing.T) (*Repository, func()) {
	dbPath := "./test_users_" + t.Name() + ".db"

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(&entities.User{})
	require.NoError(t, err)

	repo := NewRepository(db)

	cleanup := func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
		os.Remove(dbPath)
	}

	return repo, cleanup
}

func TestRepository_CreateUser(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	user, err := repo.CreateUser("Ada Lovelace", "ada", "$2a$12$hash", "+1-555-0101")

	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.Equal(t, "Ada Lovelace", user.FullName)
	assert.Equal(t, "ada", user.Username)
	assert.Equal(t, "$2a$12$hash", user.PasswordHash)
}

func TestRepository_CreateUser_DuplicateUsername(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	_, err := repo.CreateUser("Ada Lovelace", "ada", "$2a$12$hash", "")
	require.NoError(t, err)

	_, err = repo.CreateUser("Ada Byron", "ada", "$2a$12$other", "")
	assert.Error(t, err) // unique index on username
}

func TestRepository_GetUserByUsername(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	created, err := repo.CreateUser("Ada Lovelace", "ada", "$2a$12$hash", "")
	require.NoError(t, err)

	user, err := repo.GetUserByUsername("ada")

	require.NoError(t, err)
	assert.Equal(t, created.ID, user.ID)
}

func TestRepository_GetUserByUsername_NotFound(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	_, err := repo.GetUserByUsername("nobody")

	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRepository_CountUsers(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	count, err := repo.CountUsers()
	require.NoError(t, err)
	assert.Zero(t, count)

	_, err = repo.CreateUser("Ada Lovelace", "ada", "$2a$12$hash", "")
	require.NoError(t, err)

	count, err = repo.CountUsers()
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}
