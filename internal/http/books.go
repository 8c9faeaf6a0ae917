package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/libsysapp/libsys-server/internal/database/books"
)

type BooksController struct {
	repo *books.Repository
}

func NewBooksController(repo *books.Repository) *BooksController {
	return &BooksController{
		repo: repo,
	}
}

type addBookRequest struct {
	Title           string `json:"title"`
	Author          string `json:"author"`
	PublicationYear int    `json:"publication_year"`
}

type removeBookRequest struct {
	Title string `json:"title"`
}

func (controller *BooksController) GetAllBooks(c *gin.Context) {
	all, err := controller.repo.GetAllBooks()
	if err != nil {
		respondInternalError(c, err)
		return
	}
	c.IndentedJSON(http.StatusOK, gin.H{"books": all, "count": len(all)})
}

func (controller *BooksController) GetBookByTitle(c *gin.Context) {
	title := c.Query("title")
	if title == "" {
		respondBadRequest(c, "title query parameter is required")
		return
	}

	book, err := controller.repo.GetBookByTitle(title)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "book")
			return
		}
		respondInternalError(c, err)
		return
	}
	c.IndentedJSON(http.StatusOK, book)
}

func (controller *BooksController) SearchBooks(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		respondBadRequest(c, "q query parameter is required")
		return
	}

	found, err := controller.repo.SearchBooks(query)
	if err != nil {
		respondInternalError(c, err)
		return
	}
	c.IndentedJSON(http.StatusOK, gin.H{"books": found, "count": len(found)})
}

func (controller *BooksController) AddBook(c *gin.Context) {
	var req addBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}
	if req.Title == "" || req.Author == "" || req.PublicationYear == 0 {
		respondBadRequest(c, "fill all fields")
		return
	}

	book, err := controller.repo.CreateBook(req.Title, req.Author, req.PublicationYear)
	if err != nil {
		respondInternalError(c, err)
		return
	}
	c.JSON(http.StatusCreated, SuccessResponse{Message: "book added", Data: book})
}

func (controller *BooksController) RemoveBook(c *gin.Context) {
	var req removeBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}
	if req.Title == "" {
		respondBadRequest(c, "enter a title")
		return
	}

	removed, err := controller.repo.DeleteBookByTitle(req.Title)
	if err != nil {
		respondInternalError(c, err)
		return
	}
	if removed == 0 {
		respondNotFound(c, "book")
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "book removed"})
}
