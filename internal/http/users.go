package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/libsysapp/libsys-server/internal/auth"
)

// AuthController handles librarian registration, login and logout.
type AuthController struct {
	service  *auth.Service
	sessions *auth.SessionManager
}

func NewAuthController(service *auth.Service, sessions *auth.SessionManager) *AuthController {
	return &AuthController{
		service:  service,
		sessions: sessions,
	}
}

type registerRequest struct {
	FullName string `json:"full_name"`
	Username string `json:"username"`
	Password string `json:"password"`
	Contact  string `json:"contact"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (controller *AuthController) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	user, err := controller.service.Register(req.FullName, req.Username, req.Password, req.Contact)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrUsernameTaken):
			c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
		case errors.Is(err, auth.ErrAllFieldsRequired),
			errors.Is(err, auth.ErrUsernameInvalid),
			errors.Is(err, auth.ErrPasswordTooShort),
			errors.Is(err, auth.ErrPasswordTooLong):
			respondBadRequest(c, err.Error())
		default:
			respondInternalError(c, err)
		}
		return
	}

	c.JSON(http.StatusCreated, SuccessResponse{Message: "user registered", Data: user})
}

func (controller *AuthController) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	user, err := controller.service.Authenticate(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, ErrorResponse{Error: err.Error()})
			return
		}
		respondInternalError(c, err)
		return
	}

	if controller.sessions != nil {
		if err := controller.sessions.CreateSession(c.Request, user); err != nil {
			respondInternalError(c, err)
			return
		}
	}

	c.JSON(http.StatusOK, SuccessResponse{Message: "logged in", Data: user})
}

func (controller *AuthController) Logout(c *gin.Context) {
	if controller.sessions != nil {
		if err := controller.sessions.DestroySession(c.Request); err != nil {
			respondInternalError(c, err)
			return
		}
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "logged out"})
}
