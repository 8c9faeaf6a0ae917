// Package ledger enforces the borrow/return workflow and the per-book
// availability invariant: a book's borrowed flag is true iff exactly one
// loan for it is still open.
//
// Each operation holds a per-book mutex for its whole duration, so two
// concurrent borrows of the same book cannot both pass the availability
// check; the loser blocks until the winner commits and then fails with a
// conflict. The paired store writes additionally run inside a single
// database transaction (see the loans repository), so a failure midway
// leaves no partial state.
package ledger

import (
	"errors"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/libsysapp/libsys-server/internal/database/books"
	"github.com/libsysapp/libsys-server/internal/database/borrowers"
	"github.com/libsysapp/libsys-server/internal/database/loans"
	"github.com/libsysapp/libsys-server/internal/entities"
)

// Failure messages surfaced verbatim to the caller.
const (
	msgFillAllFields       = "fill all fields"
	msgBookNotFound        = "book not found"
	msgBookAlreadyBorrowed = "book already borrowed"
	msgBorrowerNotFound    = "borrower not found"
	msgInvalidDateFormat   = "invalid date format"
	msgEnterTitle          = "enter a title"
	msgBookNotBorrowed     = "book not borrowed"
)

// Service is the loan ledger. It is stateless aside from the repository
// handles and the per-book lock table, and is safe for concurrent use.
type Service struct {
	books     *books.Repository
	borrowers *borrowers.Repository
	loans     *loans.Repository

	now func() time.Time

	mu        sync.Mutex
	bookLocks map[uint]*sync.Mutex
}

// NewService creates a loan ledger over the given repositories.
func NewService(bookRepo *books.Repository, borrowerRepo *borrowers.Repository, loanRepo *loans.Repository) *Service {
	return &Service{
		books:     bookRepo,
		borrowers: borrowerRepo,
		loans:     loanRepo,
		now:       time.Now,
		bookLocks: make(map[uint]*sync.Mutex),
	}
}

// BorrowBook records a loan of the titled book to the named borrower.
// Checks run in order and stop at the first failure: all fields present,
// book exists, book available, borrower exists, date well-formed. On
// success the book is flagged borrowed and an open loan is inserted
// atomically; the created loan is returned.
//
// Titles and borrower names are not unique in the catalog; the first
// matching row wins, same as everywhere else in the application.
func (s *Service) BorrowBook(title, borrowerName, borrowDate string) (*entities.Loan, error) {
	if title == "" || borrowerName == "" || borrowDate == "" {
		return nil, &ValidationError{Message: msgFillAllFields}
	}

	book, err := s.books.GetBookByTitle(title)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Message: msgBookNotFound}
		}
		return nil, &StoreError{Op: "look up book", Err: err}
	}

	unlock := s.lockBook(book.ID)
	defer unlock()

	// Re-read under the lock so the availability check and the borrow
	// commit below form one serialized unit per book.
	book, err = s.books.GetBookByID(book.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Message: msgBookNotFound}
		}
		return nil, &StoreError{Op: "look up book", Err: err}
	}
	if book.IsBorrowed {
		return nil, &ConflictError{Message: msgBookAlreadyBorrowed}
	}

	borrower, err := s.borrowers.GetBorrowerByName(borrowerName)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Message: msgBorrowerNotFound}
		}
		return nil, &StoreError{Op: "look up borrower", Err: err}
	}

	parsed, err := time.Parse(entities.DateFormat, borrowDate)
	if err != nil {
		return nil, &ValidationError{Message: msgInvalidDateFormat}
	}

	loan, err := s.loans.RecordBorrow(book.ID, borrower.ID, parsed.Format(entities.DateFormat))
	if err != nil {
		return nil, &StoreError{Op: "record borrow", Err: err}
	}
	return loan, nil
}

// ReturnBook closes the open loan for the titled book, stamping it with
// the current date. Fails with a conflict if the book is not out.
func (s *Service) ReturnBook(title string) error {
	if title == "" {
		return &ValidationError{Message: msgEnterTitle}
	}

	book, err := s.books.GetBookByTitle(title)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &NotFoundError{Message: msgBookNotFound}
		}
		return &StoreError{Op: "look up book", Err: err}
	}

	unlock := s.lockBook(book.ID)
	defer unlock()

	book, err = s.books.GetBookByID(book.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &NotFoundError{Message: msgBookNotFound}
		}
		return &StoreError{Op: "look up book", Err: err}
	}
	if !book.IsBorrowed {
		return &ConflictError{Message: msgBookNotBorrowed}
	}

	returnedOn := s.now().Format(entities.DateFormat)
	if err := s.loans.RecordReturn(book.ID, returnedOn); err != nil {
		return &StoreError{Op: "record return", Err: err}
	}
	return nil
}

// lockBook acquires the mutex for the given book, creating it on first
// use. Lock entries are never removed; the table grows with the catalog,
// one mutex per book ever borrowed or returned.
func (s *Service) lockBook(id uint) (unlock func()) {
	s.mu.Lock()
	m, ok := s.bookLocks[id]
	if !ok {
		m = &sync.Mutex{}
		s.bookLocks[id] = m
	}
	s.mu.Unlock()

	m.Lock()
	return m.Unlock
}
