package entities

import (
	"time"
)

// DateFormat is the calendar date layout used for loan dates, both for
// user-supplied borrow dates and system-generated return dates.
const DateFormat = "2006-01-02"

// Book is a single catalog entry. IsBorrowed mirrors the loan ledger:
// it is true iff exactly one Loan for this book has a null ReturnDate.
type Book struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	Title           string    `gorm:"index;size:512" json:"title"`
	Author          string    `gorm:"size:256" json:"author"`
	PublicationYear int       `json:"publication_year,omitempty"`
	IsBorrowed      bool      `gorm:"default:false" json:"is_borrowed"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// Borrower is a registered library patron.
type Borrower struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Name          string    `gorm:"index;size:256" json:"name"`
	Surname       string    `gorm:"size:256" json:"surname"`
	ContactNumber string    `gorm:"size:64" json:"contact_number,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// User is a librarian account used to sign in to the application.
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	FullName     string    `gorm:"size:256" json:"full_name"`
	Username     string    `gorm:"uniqueIndex;size:100" json:"username"`
	PasswordHash string    `gorm:"size:100" json:"-"`
	Contact      string    `gorm:"size:64" json:"contact,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Loan records one borrow/return cycle for a book. An open loan (null
// ReturnDate) means the book is currently out; at most one loan per
// book may be open at any time. Loans are closed on return, never
// deleted.
type Loan struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	BookID     uint      `gorm:"index" json:"book_id"`
	BorrowerID uint      `gorm:"index" json:"borrower_id"`
	BorrowDate string    `gorm:"size:10" json:"borrow_date"`
	ReturnDate *string   `gorm:"size:10" json:"return_date,omitempty"`
	Book       Book      `gorm:"foreignKey:BookID" json:"-"`
	Borrower   Borrower  `gorm:"foreignKey:BorrowerID" json:"-"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// TableName keeps the transactions table name from earlier versions of
// the application.
func (Loan) TableName() string {
	return "transactions"
}

// Open reports whether the loan is still outstanding.
func (l *Loan) Open() bool {
	return l.ReturnDate == nil
}
