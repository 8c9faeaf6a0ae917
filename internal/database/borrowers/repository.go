// Package borrowers provides database operations for library patrons.
package borrowers

import (
	"gorm.io/gorm"

	"github.com/libsysapp/libsys-server/internal/entities"
)

// Repository handles all borrower database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new borrowers repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// CreateBorrower registers a new patron.
func (r *Repository) CreateBorrower(name, surname, contactNumber string) (*entities.Borrower, error) {
	borrower := &entities.Borrower{
		Name:          name,
		Surname:       surname,
		ContactNumber: contactNumber,
	}
	if err := r.db.Create(borrower).Error; err != nil {
		return nil, err
	}
	return borrower, nil
}

// GetBorrowerByID retrieves a borrower by ID.
func (r *Repository) GetBorrowerByID(id uint) (*entities.Borrower, error) {
	var borrower entities.Borrower
	if err := r.db.First(&borrower, id).Error; err != nil {
		return nil, err
	}
	return &borrower, nil
}

// GetBorrowerByName retrieves a borrower by first name. Names are not
// unique; the first row wins when duplicates exist.
func (r *Repository) GetBorrowerByName(name string) (*entities.Borrower, error) {
	var borrower entities.Borrower
	if err := r.db.Where("name = ?", name).Order("id ASC").First(&borrower).Error; err != nil {
		return nil, err
	}
	return &borrower, nil
}

// GetAllBorrowers retrieves all borrowers ordered by ID.
func (r *Repository) GetAllBorrowers() ([]entities.Borrower, error) {
	var list []entities.Borrower
	err := r.db.Order("id ASC").Find(&list).Error
	return list, err
}

// DeleteBorrower removes borrowers matching name and surname. Returns
// the number of rows removed.
func (r *Repository) DeleteBorrower(name, surname string) (int64, error) {
	result := r.db.Where("name = ? AND surname = ?", name, surname).Delete(&entities.Borrower{})
	return result.RowsAffected, result.Error
}
