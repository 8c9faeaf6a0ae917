package http

import (
	"github.com/gin-gonic/gin"

	"github.com/libsysapp/libsys-server/internal/audit"
	"github.com/libsysapp/libsys-server/internal/auth"
	"github.com/libsysapp/libsys-server/internal/config"
	"github.com/libsysapp/libsys-server/internal/database"
	"github.com/libsysapp/libsys-server/internal/database/books"
	"github.com/libsysapp/libsys-server/internal/database/borrowers"
	"github.com/libsysapp/libsys-server/internal/database/loans"
	"github.com/libsysapp/libsys-server/internal/ledger"
)

// RouterConfig carries all dependencies for NewRouter, improving
// testability and reducing parameter count.
type RouterConfig struct {
	Database   *database.Database
	Books      *books.Repository
	Borrowers  *borrowers.Repository
	Loans      *loans.Repository
	Ledger     *ledger.Service
	Auditor    *audit.Auditor
	Version    string
	AuthConfig config.Auth

	// Optional: nil when auth mode is "none"
	AuthService    *auth.Service
	SessionManager *auth.SessionManager
	AuthMiddleware *auth.Middleware
	CSRFSecret     []byte
}

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	// CSRF must run before session so that session context is preserved
	if len(cfg.CSRFSecret) > 0 {
		router.Use(auth.CSRFMiddleware(cfg.CSRFSecret, cfg.AuthConfig.SecureCookies))
	}

	if cfg.SessionManager != nil {
		router.Use(cfg.SessionManager.SessionLoadSave())
	}

	if cfg.AuthMiddleware != nil {
		router.Use(cfg.AuthMiddleware.Handler())
	} else {
		// No auth - inject default user ID
		router.Use(func(c *gin.Context) {
			c.Set(auth.ContextKeyUserID, auth.DefaultUserID)
			c.Set(auth.ContextKeyAuthType, auth.AuthTypeNone)
			c.Next()
		})
	}

	health := NewHealthController(cfg.Database, cfg.Version)
	booksController := NewBooksController(cfg.Books)
	borrowersController := NewBorrowersController(cfg.Borrowers)
	loansController := NewLoansController(cfg.Ledger, cfg.Loans, cfg.Auditor)

	router.GET("/health", health.Status)

	if cfg.AuthService != nil && cfg.AuthService.IsAuthEnabled() {
		authController := NewAuthController(cfg.AuthService, cfg.SessionManager)
		router.POST("/api/auth/register", authController.Register)
		router.POST("/api/auth/login", authController.Login)
		router.POST("/api/auth/logout", authController.Logout)
	}

	api := router.Group("/api")
	{
		api.GET("/books", booksController.GetAllBooks)
		api.GET("/books/find", booksController.GetBookByTitle)
		api.GET("/books/search", booksController.SearchBooks)
		api.POST("/books", booksController.AddBook)
		api.DELETE("/books", booksController.RemoveBook)

		api.GET("/borrowers", borrowersController.GetAllBorrowers)
		api.POST("/borrowers", borrowersController.AddBorrower)
		api.DELETE("/borrowers", borrowersController.RemoveBorrower)

		api.GET("/loans", loansController.List)
		api.POST("/loans/borrow", loansController.Borrow)
		api.POST("/loans/return", loansController.Return)
	}

	return router
}
