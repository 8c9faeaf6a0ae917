package cli

import (
	"flag"
	"fmt"
	"os"

	"github.com/libsysapp/libsys-server/internal/auth"
	"github.com/libsysapp/libsys-server/internal/config"
	"github.com/libsysapp/libsys-server/internal/database"
	"github.com/libsysapp/libsys-server/internal/database/users"
)

// CreateUserCommand creates a librarian account from the command line,
// used to bootstrap the first login before the server is reachable.
type CreateUserCommand struct {
	DatabasePath string
	FullName     string
	Username     string
	Password     string
	Contact      string
}

func NewCreateUserCommand() *CreateUserCommand {
	return &CreateUserCommand{}
}

func (cmd *CreateUserCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("create-user", flag.ExitOnError)

	fs.StringVar(&cmd.DatabasePath, "db", config.DefaultDatabasePath, "Path to the library database file")
	fs.StringVar(&cmd.FullName, "fullname", "", "Full name of the librarian (required)")
	fs.StringVar(&cmd.Username, "username", "", "Login username (required)")
	fs.StringVar(&cmd.Password, "password", "", "Login password (required)")
	fs.StringVar(&cmd.Contact, "contact", "", "Contact number")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s create-user -fullname <name> -username <login> -password <password> [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Create a librarian account for signing in to the server.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if cmd.FullName == "" || cmd.Username == "" || cmd.Password == "" {
		return fmt.Errorf("required flags -fullname, -username and -password must all be provided")
	}
	return nil
}

func (cmd *CreateUserCommand) Run() error {
	db, err := database.NewDatabase(cmd.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	cfg := config.NewConfig()
	service := auth.NewService(users.NewRepository(db.DB), cfg.Auth)

	user, err := service.Register(cmd.FullName, cmd.Username, cmd.Password, cmd.Contact)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	fmt.Printf("Created user %q (id %d)\n", user.Username, user.ID)
	return nil
}
