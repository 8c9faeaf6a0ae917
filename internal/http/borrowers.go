package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/libsysapp/libsys-server/internal/database/borrowers"
)

type BorrowersController struct {
	repo *borrowers.Repository
}

func NewBorrowersController(repo *borrowers.Repository) *BorrowersController {
	return &BorrowersController{
		repo: repo,
	}
}

type addBorrowerRequest struct {
	Name          string `json:"name"`
	Surname       string `json:"surname"`
	ContactNumber string `json:"contact_number"`
}

type removeBorrowerRequest struct {
	Name    string `json:"name"`
	Surname string `json:"surname"`
}

func (controller *BorrowersController) GetAllBorrowers(c *gin.Context) {
	all, err := controller.repo.GetAllBorrowers()
	if err != nil {
		respondInternalError(c, err)
		return
	}
	c.IndentedJSON(http.StatusOK, gin.H{"borrowers": all, "count": len(all)})
}

func (controller *BorrowersController) AddBorrower(c *gin.Context) {
	var req addBorrowerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}
	if req.Name == "" || req.Surname == "" || req.ContactNumber == "" {
		respondBadRequest(c, "fill all fields")
		return
	}

	borrower, err := controller.repo.CreateBorrower(req.Name, req.Surname, req.ContactNumber)
	if err != nil {
		respondInternalError(c, err)
		return
	}
	c.JSON(http.StatusCreated, SuccessResponse{Message: "borrower added", Data: borrower})
}

func (controller *BorrowersController) RemoveBorrower(c *gin.Context) {
	var req removeBorrowerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}
	if req.Name == "" || req.Surname == "" {
		respondBadRequest(c, "fill all fields")
		return
	}

	removed, err := controller.repo.DeleteBorrower(req.Name, req.Surname)
	if err != nil {
		respondInternalError(c, err)
		return
	}
	if removed == 0 {
		respondNotFound(c, "borrower")
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "borrower removed"})
}
