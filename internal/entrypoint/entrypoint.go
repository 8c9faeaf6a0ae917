package entrypoint

import (
	"context"
	"encoding/hex"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/libsysapp/libsys-server/internal/audit"
	"github.com/libsysapp/libsys-server/internal/auth"
	"github.com/libsysapp/libsys-server/internal/config"
	"github.com/libsysapp/libsys-server/internal/database"
	"github.com/libsysapp/libsys-server/internal/database/books"
	"github.com/libsysapp/libsys-server/internal/database/borrowers"
	"github.com/libsysapp/libsys-server/internal/database/loans"
	"github.com/libsysapp/libsys-server/internal/database/users"
	http_controllers "github.com/libsysapp/libsys-server/internal/http"
	"github.com/libsysapp/libsys-server/internal/ledger"
	"github.com/libsysapp/libsys-server/internal/scheduler"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

func Serve(router *gin.Engine, cfg *config.Config, onShutdown ShutdownFunc) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: router,
	}

	go func() {
		log.Printf("Starting server at %s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Printf("Shutdown server, waiting %v before killing", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if onShutdown != nil {
		onShutdown(ctx)
	}

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server shutdown:", err)
	}

	log.Println("Server exiting")
}

func Run(cfg *config.Config, version string) {
	log.Printf("Starting LibSys v%s", version)

	db, err := database.NewDatabase(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	bookRepo := books.NewRepository(db.DB)
	borrowerRepo := borrowers.NewRepository(db.DB)
	loanRepo := loans.NewRepository(db.DB)
	userRepo := users.NewRepository(db.DB)

	ledgerService := ledger.NewService(bookRepo, borrowerRepo, loanRepo)

	var auditor *audit.Auditor
	var auditCleanup *scheduler.AuditCleanupScheduler
	if cfg.Audit.Enabled {
		auditor = audit.NewAuditor(cfg.Audit.Dir)
		auditCleanup = scheduler.NewAuditCleanupScheduler(auditor, cfg.Audit)
		if err := auditCleanup.Start(); err != nil {
			log.Fatalf("Failed to start audit cleanup scheduler: %v", err)
		}
	}

	routerConfig := http_controllers.RouterConfig{
		Database:   db,
		Books:      bookRepo,
		Borrowers:  borrowerRepo,
		Loans:      loanRepo,
		Ledger:     ledgerService,
		Auditor:    auditor,
		Version:    version,
		AuthConfig: cfg.Auth,
	}

	if cfg.Auth.Mode == config.AuthModeLocal {
		sqlDB, err := db.DB.DB()
		if err != nil {
			log.Fatalf("Failed to get SQL connection for sessions: %v", err)
		}

		sessionManager, err := auth.NewSessionManager(sqlDB, cfg.Auth)
		if err != nil {
			log.Fatalf("Failed to initialize session manager: %v", err)
		}

		secret := cfg.Auth.SessionSecret
		if secret == "" {
			secret, err = auth.GenerateSessionSecret()
			if err != nil {
				log.Fatalf("Failed to generate session secret: %v", err)
			}
			log.Printf("WARNING: AUTH_SESSION_SECRET not set; generated an ephemeral secret, sessions will not survive restarts")
		}
		csrfSecret, err := hex.DecodeString(secret)
		if err != nil || len(csrfSecret) != 32 {
			log.Fatalf("AUTH_SESSION_SECRET must be 32 bytes hex encoded")
		}

		authService := auth.NewService(userRepo, cfg.Auth)

		routerConfig.AuthService = authService
		routerConfig.SessionManager = sessionManager
		routerConfig.AuthMiddleware = auth.NewMiddleware(authService, sessionManager, cfg.Auth)
		routerConfig.CSRFSecret = csrfSecret
	} else {
		log.Printf("WARNING: Auth is disabled (AUTH_MODE=none). Anyone with network access can use the API.")
	}

	router := http_controllers.NewRouter(routerConfig)

	Serve(router, cfg, func(ctx context.Context) {
		if auditCleanup != nil {
			auditCleanup.Stop()
		}
		if err := db.Close(); err != nil {
			log.Printf("Failed to close database: %v", err)
		}
	})
}
