package http

import (
	"encoding/hex"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/libsysapp/libsys-server/internal/audit"
	"github.com/libsysapp/libsys-server/internal/auth"
	"github.com/libsysapp/libsys-server/internal/config"
	"github.com/libsysapp/libsys-server/internal/database"
	"github.com/libsysapp/libsys-server/internal/database/books"
	"github.com/libsysapp/libsys-server/internal/database/borrowers"
	"github.com/libsysapp/libsys-server/internal/database/loans"
	"github.com/libsysapp/libsys-server/internal/database/users"
	"github.com/libsysapp/libsys-server/internal/ledger"
)

// authedRouterFixture drives the full router over a real HTTP server
// with local auth enabled, the way a browser client would: cookies in a
// jar, CSRF tokens read from response headers.
type authedRouterFixture struct {
	server    *httptest.Server
	client    *http.Client
	users     *users.Repository
	books     *books.Repository
	borrowers *borrowers.Repository
}

func setupAuthedRouter(t *testing.T) (*authedRouterFixture, func()) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dbPath := "./test_router_" + strings.ReplaceAll(t.Name(), "/", "_") + ".db"
	db, err := database.NewDatabase(dbPath)
	require.NoError(t, err)

	authCfg := config.Auth{
		Mode:            config.AuthModeLocal,
		SessionLifetime: time.Hour,
		BcryptCost:      4, // keep tests fast
		SecureCookies:   false,
	}

	sqlDB, err := db.DB.DB()
	require.NoError(t, err)
	sessions, err := auth.NewSessionManager(sqlDB, authCfg)
	require.NoError(t, err)

	userRepo := users.NewRepository(db.DB)
	bookRepo := books.NewRepository(db.DB)
	borrowerRepo := borrowers.NewRepository(db.DB)
	loanRepo := loans.NewRepository(db.DB)
	authService := auth.NewService(userRepo, authCfg)

	secret, err := auth.GenerateSessionSecret()
	require.NoError(t, err)
	csrfSecret, err := hex.DecodeString(secret)
	require.NoError(t, err)

	router := NewRouter(RouterConfig{
		Database:       db,
		Books:          bookRepo,
		Borrowers:      borrowerRepo,
		Loans:          loanRepo,
		Ledger:         ledger.NewService(bookRepo, borrowerRepo, loanRepo),
		Auditor:        audit.NewAuditor(t.TempDir()),
		Version:        "test",
		AuthConfig:     authCfg,
		AuthService:    authService,
		SessionManager: sessions,
		AuthMiddleware: auth.NewMiddleware(authService, sessions, authCfg),
		CSRFSecret:     csrfSecret,
	})

	server := httptest.NewServer(router)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)

	f := &authedRouterFixture{
		server:    server,
		client:    &http.Client{Jar: jar},
		users:     userRepo,
		books:     bookRepo,
		borrowers: borrowerRepo,
	}
	cleanup := func() {
		server.Close()
		db.Close()
		os.Remove(dbPath)
	}
	return f, cleanup
}

// csrfToken fetches a token the way a client would: any response
// through the middleware carries one in the X-CSRF-Token header.
func (f *authedRouterFixture) csrfToken(t *testing.T) string {
	t.Helper()

	resp, err := f.client.Get(f.server.URL + "/health")
	require.NoError(t, err)
	_, _ = io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	token := resp.Header.Get(auth.CSRFTokenHeader)
	require.NotEmpty(t, token, "responses must expose the CSRF token header")
	return token
}

func (f *authedRouterFixture) post(t *testing.T, path, body, csrfToken string) (int, string) {
	t.Helper()

	req, err := http.NewRequest("POST", f.server.URL+path, strings.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if csrfToken != "" {
		req.Header.Set(auth.CSRFTokenHeader, csrfToken)
	}

	resp, err := f.client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(data)
}

func TestRouter_CSRFRejectionBlocksHandler(t *testing.T) {
	f, cleanup := setupAuthedRouter(t)
	defer cleanup()

	// Establish the CSRF base cookie, then post without the token.
	f.csrfToken(t)
	code, body := f.post(t, "/api/auth/register",
		`{"full_name":"Ada Lovelace","username":"ada","password":"analytical engine"}`, "")

	assert.Equal(t, http.StatusForbidden, code)
	assert.Contains(t, body, "CSRF token invalid")
	// The rejection must stop the chain: no handler output, no row.
	assert.NotContains(t, body, "user registered")

	count, err := f.users.CountUsers()
	require.NoError(t, err)
	assert.Zero(t, count, "rejected request must not create the user")
}

func TestRouter_CSRFTokenExposedOnEveryResponse(t *testing.T) {
	f, cleanup := setupAuthedRouter(t)
	defer cleanup()

	first := f.csrfToken(t)
	assert.NotEmpty(t, first)

	// A token from one response is accepted on the next mutation.
	code, body := f.post(t, "/api/auth/register",
		`{"full_name":"Ada Lovelace","username":"ada","password":"analytical engine"}`, first)
	assert.Equal(t, http.StatusCreated, code)
	assert.Contains(t, body, "user registered")
}

func TestRouter_RegisterLoginBorrowFlow(t *testing.T) {
	f, cleanup := setupAuthedRouter(t)
	defer cleanup()

	_, err := f.books.CreateBook("Dune", "Frank Herbert", 1965)
	require.NoError(t, err)
	_, err = f.borrowers.CreateBorrower("Alice", "Thompson", "+1-555-0101")
	require.NoError(t, err)

	code, _ := f.post(t, "/api/auth/register",
		`{"full_name":"Ada Lovelace","username":"ada","password":"analytical engine"}`,
		f.csrfToken(t))
	require.Equal(t, http.StatusCreated, code)

	code, body := f.post(t, "/api/auth/login",
		`{"username":"ada","password":"analytical engine"}`, f.csrfToken(t))
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, "logged in")

	code, body = f.post(t, "/api/loans/borrow",
		`{"title":"Dune","borrower_name":"Alice","borrow_date":"2024-01-10"}`,
		f.csrfToken(t))
	assert.Equal(t, http.StatusCreated, code)
	assert.Contains(t, body, "book borrowed")

	updated, err := f.books.GetBookByTitle("Dune")
	require.NoError(t, err)
	assert.True(t, updated.IsBorrowed)
}

func TestRouter_UnauthenticatedRequestRejected(t *testing.T) {
	f, cleanup := setupAuthedRouter(t)
	defer cleanup()

	// Fresh client, no session cookie: protected reads are refused.
	resp, err := http.Get(f.server.URL + "/api/loans")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
