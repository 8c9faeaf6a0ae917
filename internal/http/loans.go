package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/libsysapp/libsys-server/internal/audit"
	"github.com/libsysapp/libsys-server/internal/database/loans"
	"github.com/libsysapp/libsys-server/internal/ledger"
)

// LoansController exposes the loan ledger over HTTP. After a successful
// borrow or return, clients are expected to refresh their transaction
// listing via GET /api/loans.
type LoansController struct {
	ledger  *ledger.Service
	loans   *loans.Repository
	auditor *audit.Auditor
}

func NewLoansController(ledgerService *ledger.Service, loanRepo *loans.Repository, auditor *audit.Auditor) *LoansController {
	return &LoansController{
		ledger:  ledgerService,
		loans:   loanRepo,
		auditor: auditor,
	}
}

type borrowRequest struct {
	Title        string `json:"title"`
	BorrowerName string `json:"borrower_name"`
	BorrowDate   string `json:"borrow_date"`
}

type returnRequest struct {
	Title string `json:"title"`
}

// Borrow records a loan of a book to a borrower.
func (controller *LoansController) Borrow(c *gin.Context) {
	var req borrowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	loan, err := controller.ledger.BorrowBook(req.Title, req.BorrowerName, req.BorrowDate)
	if controller.auditor != nil {
		controller.auditor.RecordBorrow(req.Title, req.BorrowerName, err)
	}
	if err != nil {
		respondLedgerError(c, err)
		return
	}

	c.JSON(http.StatusCreated, SuccessResponse{Message: "book borrowed", Data: loan})
}

// Return closes the open loan for a book.
func (controller *LoansController) Return(c *gin.Context) {
	var req returnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	err := controller.ledger.ReturnBook(req.Title)
	if controller.auditor != nil {
		controller.auditor.RecordReturn(req.Title, err)
	}
	if err != nil {
		respondLedgerError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Message: "book returned"})
}

// List returns the joined loan history for display.
func (controller *LoansController) List(c *gin.Context) {
	records, err := controller.loans.ListLoans()
	if err != nil {
		respondInternalError(c, err)
		return
	}
	c.IndentedJSON(http.StatusOK, gin.H{"loans": records, "count": len(records)})
}
