// Package books provides database operations for catalog books.
//
// # Usage
//
//	repo := books.NewRepository(db)
//	book, err := repo.GetBookByTitle("Dune")
package books

import (
	"gorm.io/gorm"

	"github.com/libsysapp/libsys-server/internal/entities"
)

// Repository handles all book database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new books repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// CreateBook inserts a new book. New books start out available.
func (r *Repository) CreateBook(title, author string, publicationYear int) (*entities.Book, error) {
	book := &entities.Book{
		Title:           title,
		Author:          author,
		PublicationYear: publicationYear,
	}
	if err := r.db.Create(book).Error; err != nil {
		return nil, err
	}
	return book, nil
}

// GetBookByID retrieves a book by its ID.
func (r *Repository) GetBookByID(id uint) (*entities.Book, error) {
	var book entities.Book
	if err := r.db.First(&book, id).Error; err != nil {
		return nil, err
	}
	return &book, nil
}

// GetBookByTitle retrieves a book by title. Titles are not unique; when
// several books share one, the first row wins, matching how the rest of
// the application resolves titles.
func (r *Repository) GetBookByTitle(title string) (*entities.Book, error) {
	var book entities.Book
	if err := r.db.Where("title = ?", title).Order("id ASC").First(&book).Error; err != nil {
		return nil, err
	}
	return &book, nil
}

// GetAllBooks retrieves all books ordered by ID.
func (r *Repository) GetAllBooks() ([]entities.Book, error) {
	var books []entities.Book
	err := r.db.Order("id ASC").Find(&books).Error
	return books, err
}

// SearchBooks searches books by title or author (case-insensitive partial match).
func (r *Repository) SearchBooks(query string) ([]entities.Book, error) {
	var books []entities.Book
	pattern := "%" + query + "%"
	err := r.db.
		Where("LOWER(title) LIKE LOWER(?) OR LOWER(author) LIKE LOWER(?)", pattern, pattern).
		Order("id ASC").
		Find(&books).Error
	return books, err
}

// DeleteBookByTitle removes all books with the given title. Returns the
// number of rows removed so callers can report "not found".
func (r *Repository) DeleteBookByTitle(title string) (int64, error) {
	result := r.db.Where("title = ?", title).Delete(&entities.Book{})
	return result.RowsAffected, result.Error
}
