// Package loans provides database operations for borrow/return records.
//
// The two mutations of a borrow (flip the book's borrowed flag, insert
// the loan row) and of a return (flip the flag back, stamp the open
// loan) each happen inside a single database transaction, so the
// borrowed flag can never get out of sync with the open loan row.
package loans

import (
	"gorm.io/gorm"

	"github.com/libsysapp/libsys-server/internal/entities"
)

// Record is one row of the joined loan listing shown to librarians.
type Record struct {
	ID           uint    `json:"id"`
	BookTitle    string  `json:"book_title"`
	BorrowerName string  `json:"borrower_name"`
	BorrowDate   string  `json:"borrow_date"`
	ReturnDate   *string `json:"return_date"`
}

// Repository handles all loan database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new loans repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// RecordBorrow marks the book borrowed and opens a loan, atomically.
// The caller is responsible for having checked that the book is
// currently available.
func (r *Repository) RecordBorrow(bookID, borrowerID uint, borrowDate string) (*entities.Loan, error) {
	loan := &entities.Loan{
		BookID:     bookID,
		BorrowerID: borrowerID,
		BorrowDate: borrowDate,
	}
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&entities.Book{}).Where("id = ?", bookID).
			Update("is_borrowed", true).Error; err != nil {
			return err
		}
		return tx.Create(loan).Error
	})
	if err != nil {
		return nil, err
	}
	return loan, nil
}

// RecordReturn marks the book available and closes its open loan,
// atomically. By construction there is at most one open loan per book.
func (r *Repository) RecordReturn(bookID uint, returnDate string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&entities.Book{}).Where("id = ?", bookID).
			Update("is_borrowed", false).Error; err != nil {
			return err
		}
		return tx.Model(&entities.Loan{}).
			Where("book_id = ? AND return_date IS NULL", bookID).
			Update("return_date", returnDate).Error
	})
}

// GetOpenLoanForBook retrieves the book's outstanding loan, if any.
func (r *Repository) GetOpenLoanForBook(bookID uint) (*entities.Loan, error) {
	var loan entities.Loan
	err := r.db.Where("book_id = ? AND return_date IS NULL", bookID).First(&loan).Error
	if err != nil {
		return nil, err
	}
	return &loan, nil
}

// CountOpenLoansForBook returns how many loans for the book are still open.
func (r *Repository) CountOpenLoansForBook(bookID uint) (int64, error) {
	var count int64
	err := r.db.Model(&entities.Loan{}).
		Where("book_id = ? AND return_date IS NULL", bookID).
		Count(&count).Error
	return count, err
}

// GetLoansForBook retrieves every loan recorded for the book, oldest first.
func (r *Repository) GetLoansForBook(bookID uint) ([]entities.Loan, error) {
	var list []entities.Loan
	err := r.db.Where("book_id = ?", bookID).Order("id ASC").Find(&list).Error
	return list, err
}

// ListLoans returns the joined loan history (book title and borrower
// name resolved) ordered by loan ID, for display refresh after a
// successful borrow or return.
func (r *Repository) ListLoans() ([]Record, error) {
	var records []Record
	err := r.db.Model(&entities.Loan{}).
		Select("transactions.id, books.title AS book_title, borrowers.name AS borrower_name, transactions.borrow_date, transactions.return_date").
		Joins("JOIN books ON transactions.book_id = books.id").
		Joins("JOIN borrowers ON transactions.borrower_id = borrowers.id").
		Order("transactions.id ASC").
		Scan(&records).Error
	return records, err
}
