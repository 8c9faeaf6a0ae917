package cli

import (
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/libsysapp/libsys-server/internal/config"
	"github.com/libsysapp/libsys-server/internal/database"
	"github.com/libsysapp/libsys-server/internal/database/books"
	"github.com/libsysapp/libsys-server/internal/database/borrowers"
)

// ImportCatalogCommand bulk-loads books and borrowers from CSV files.
//
// Books CSV columns: title, author, publication_year.
// Borrowers CSV columns: name, surname, contact_number.
// A first row starting with the literal column name is treated as a
// header and skipped; every other row must be valid data.
type ImportCatalogCommand struct {
	DatabasePath  string
	BooksPath     string
	BorrowersPath string
	Verbose       bool
}

func NewImportCatalogCommand() *ImportCatalogCommand {
	return &ImportCatalogCommand{}
}

func (cmd *ImportCatalogCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("import-catalog", flag.ExitOnError)

	fs.StringVar(&cmd.DatabasePath, "db", config.DefaultDatabasePath, "Path to the library database file")
	fs.StringVar(&cmd.BooksPath, "books", "", "Path to a CSV file of books (title,author,publication_year)")
	fs.StringVar(&cmd.BorrowersPath, "borrowers", "", "Path to a CSV file of borrowers (name,surname,contact_number)")
	fs.BoolVar(&cmd.Verbose, "verbose", false, "Log every imported row")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s import-catalog [-books <path>] [-borrowers <path>] [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Bulk-load books and borrowers into the catalog from CSV files.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if cmd.BooksPath == "" && cmd.BorrowersPath == "" {
		return fmt.Errorf("at least one of -books or -borrowers must be provided")
	}
	return nil
}

func (cmd *ImportCatalogCommand) Run() error {
	db, err := database.NewDatabase(cmd.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	if cmd.BooksPath != "" {
		count, err := cmd.importBooks(books.NewRepository(db.DB))
		if err != nil {
			return err
		}
		fmt.Printf("Imported %d books from %s\n", count, cmd.BooksPath)
	}

	if cmd.BorrowersPath != "" {
		count, err := cmd.importBorrowers(borrowers.NewRepository(db.DB))
		if err != nil {
			return err
		}
		fmt.Printf("Imported %d borrowers from %s\n", count, cmd.BorrowersPath)
	}
	return nil
}

func (cmd *ImportCatalogCommand) importBooks(repo *books.Repository) (int, error) {
	rows, err := readCSV(cmd.BooksPath, 3)
	if err != nil {
		return 0, err
	}

	count := 0
	for i, row := range rows {
		if i == 0 && row[0] == "title" {
			continue // header row
		}
		year, err := strconv.Atoi(row[2])
		if err != nil {
			return count, fmt.Errorf("row %d: bad publication year %q", i+1, row[2])
		}
		book, err := repo.CreateBook(row[0], row[1], year)
		if err != nil {
			return count, fmt.Errorf("row %d: %w", i+1, err)
		}
		if cmd.Verbose {
			fmt.Printf("Added book %q by %s (id %d)\n", book.Title, book.Author, book.ID)
		}
		count++
	}
	return count, nil
}

func (cmd *ImportCatalogCommand) importBorrowers(repo *borrowers.Repository) (int, error) {
	rows, err := readCSV(cmd.BorrowersPath, 3)
	if err != nil {
		return 0, err
	}

	count := 0
	for i, row := range rows {
		if i == 0 && row[0] == "name" {
			continue // header row
		}
		borrower, err := repo.CreateBorrower(row[0], row[1], row[2])
		if err != nil {
			return count, fmt.Errorf("row %d: %w", i+1, err)
		}
		if cmd.Verbose {
			fmt.Printf("Added borrower %s %s (id %d)\n", borrower.Name, borrower.Surname, borrower.ID)
		}
		count++
	}
	return count, nil
}

func readCSV(path string, wantFields int) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = wantFields
	reader.TrimLeadingSpace = true

	var rows [][]string
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}
