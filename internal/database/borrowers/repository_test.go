package borrowers

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
	dbPath := "./test_borrowers_" + t.Name() + ".db"

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(&entities.Borrower{})
	require.NoError(t, err)

	repo := NewRepository(db)

	cleanup := func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
		os.Remove(dbPath)
	}

	return repo, cleanup
}

func TestRepository_CreateBorrower(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	borrower, err := repo.CreateBorrower("Alice", "Thompson", "+1-555-0101")

	require.NoError(t, err)
	assert.NotZero(t, borrower.ID)
	assert.Equal(t, "Alice", borrower.Name)
	assert.Equal(t, "Thompson", borrower.Surname)
	assert.Equal(t, "+1-555-0101", borrower.ContactNumber)
}

func TestRepository_GetBorrowerByName(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	created, err := repo.CreateBorrower("Alice", "Thompson", "+1-555-0101")
	require.NoError(t, err)

	borrower, err := repo.GetBorrowerByName("Alice")

	require.NoError(t, err)
	assert.Equal(t, created.ID, borrower.ID)
}

func TestRepository_GetBorrowerByName_NotFound(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	_, err := repo.GetBorrowerByName("Mallory")

	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRepository_GetBorrowerByName_DuplicateNamesFirstWins(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	first, err := repo.CreateBorrower("Alice", "Thompson", "+1-555-0101")
	require.NoError(t, err)
	_, err = repo.CreateBorrower("Alice", "Varga", "+1-555-0199")
	require.NoError(t, err)

	borrower, err := repo.GetBorrowerByName("Alice")

	require.NoError(t, err)
	assert.Equal(t, first.ID, borrower.ID)
}

func TestRepository_GetAllBorrowers(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	_, err := repo.CreateBorrower("Alice", "Thompson", "+1-555-0101")
	require.NoError(t, err)
	_, err = repo.CreateBorrower("Bob", "Marsh", "+1-555-0102")
	require.NoError(t, err)

	all, err := repo.GetAllBorrowers()

	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestRepository_DeleteBorrower(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	_, err := repo.CreateBorrower("Alice", "Thompson", "+1-555-0101")
	require.NoError(t, err)

	t.Run("surname must match", func(t *testing.T) {
		removed, err := repo.DeleteBorrower("Alice", "Varga")
		require.NoError(t, err)
		assert.Zero(t, removed)
	})

	t.Run("removes on full match", func(t *testing.T) {
		removed, err := repo.DeleteBorrower("Alice", "Thompson")
		require.NoError(t, err)
		assert.Equal(t, int64(1), removed)
	})
}
