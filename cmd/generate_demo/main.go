// Command generate_demo creates a demo library database with a small
// catalog of public domain books and a few borrowers.
// Usage: go run cmd/generate_demo/main.go [-db path/to/demo.db]
package main

import (
	"flag"
	"log"
	"os"
	"path/filepath"

	"github.com/libsysapp/libsys-server/internal/database"
	"github.com/libsysapp/libsys-server/internal/database/books"
	"github.com/libsysapp/libsys-server/internal/database/borrowers"
	"github.com/libsysapp/libsys-server/internal/database/loans"
	"github.com/libsysapp/libsys-server/internal/ledger"
)

const defaultDemoDatabasePath = "./demo/demo.db"

type demoBook struct {
	title  string
	author string
	year   int
}

type demoBorrower struct {
	name    string
	surname string
	contact string
}

func main() {
	dbPath := flag.String("db", defaultDemoDatabasePath, "path to the demo database file")
	flag.Parse()

	log.Printf("Generating demo database at %s...", *dbPath)

	// Delete existing demo database to start fresh
	if err := os.Remove(*dbPath); err != nil && !os.IsNotExist(err) {
		log.Fatalf("Failed to remove existing demo database: %v", err)
	}
	if err := os.MkdirAll(filepath.Dir(*dbPath), 0755); err != nil {
		log.Fatalf("Failed to create demo directory: %v", err)
	}

	db, err := database.NewDatabase(*dbPath)
	if err != nil {
		log.Fatalf("Failed to create database: %v", err)
	}
	defer db.Close()

	bookRepo := books.NewRepository(db.DB)
	borrowerRepo := borrowers.NewRepository(db.DB)
	loanRepo := loans.NewRepository(db.DB)

	for _, b := range demoBooks() {
		if _, err := bookRepo.CreateBook(b.title, b.author, b.year); err != nil {
			log.Fatalf("Failed to add book %q: %v", b.title, err)
		}
		log.Printf("Added: %s by %s (%d)", b.title, b.author, b.year)
	}

	for _, b := range demoBorrowers() {
		if _, err := borrowerRepo.CreateBorrower(b.name, b.surname, b.contact); err != nil {
			log.Fatalf("Failed to add borrower %s %s: %v", b.name, b.surname, err)
		}
		log.Printf("Added borrower: %s %s", b.name, b.surname)
	}

	// A couple of outstanding loans so the demo opens with activity
	ledgerService := ledger.NewService(bookRepo, borrowerRepo, loanRepo)
	if _, err := ledgerService.BorrowBook("Moby-Dick", "Alice", "2024-01-10"); err != nil {
		log.Fatalf("Failed to record demo loan: %v", err)
	}
	if _, err := ledgerService.BorrowBook("Frankenstein", "Bob", "2024-02-03"); err != nil {
		log.Fatalf("Failed to record demo loan: %v", err)
	}

	log.Printf("Demo database ready at %s", *dbPath)
}

func demoBooks() []demoBook {
	return []demoBook{
		{"Moby-Dick", "Herman Melville", 1851},
		{"Frankenstein", "Mary Shelley", 1818},
		{"Pride and Prejudice", "Jane Austen", 1813},
		{"The Count of Monte Cristo", "Alexandre Dumas", 1844},
		{"Dracula", "Bram Stoker", 1897},
		{"The Picture of Dorian Gray", "Oscar Wilde", 1890},
	}
}

func demoBorrowers() []demoBorrower {
	return []demoBorrower{
		{"Alice", "Thompson", "+1-555-0101"},
		{"Bob", "Marsh", "+1-555-0102"},
		{"Clara", "Velez", "+1-555-0103"},
	}
}
