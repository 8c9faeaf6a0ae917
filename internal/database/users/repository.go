// Package users provides database operations for librarian accounts.
package users

import (
	"gorm.io/gorm"

	"github.com/libsysapp/libsys-server/internal/entities"
)

// Repository handles all user database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new users repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// CreateUser inserts a new librarian account. The password must already
// be hashed by the auth service.
func (r *Repository) CreateUser(fullName, username, passwordHash, contact string) (*entities.User, error) {
	user := &entities.User{
		FullName:     fullName,
		Username:     username,
		PasswordHash: passwordHash,
		Contact:      contact,
	}
	if err := r.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// GetUserByID retrieves a user by ID.
func (r *Repository) GetUserByID(id uint) (*entities.User, error) {
	var user entities.User
	if err := r.db.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUserByUsername retrieves a user by username.
func (r *Repository) GetUserByUsername(username string) (*entities.User, error) {
	var user entities.User
	if err := r.db.Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// CountUsers returns how many accounts exist, used to detect first-run setup.
func (r *Repository) CountUsers() (int64, error) {
	var count int64
	err := r.db.Model(&entities.User{}).Count(&count).Error
	return count, err
}
