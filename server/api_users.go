package shopserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	userhttpmapper "github.com/myjhye/shop/internal/domains/users/adapters/http/mapper"
	userdomain "github.com/myjhye/shop/internal/domains/users/domain"
	userports "github.com/myjhye/shop/internal/domains/users/ports"
	apierrors "github.com/myjhye/shop/internal/shared/errors"
)

// UsersAPI implements the account endpoints.
type UsersAPI struct {
	service userports.Service
}

// NewUsersAPI wires dependencies.
func NewUsersAPI(service userports.Service) UsersAPI {
	return UsersAPI{service: service}
}

type signupRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Post /api/users/signup
func (api *UsersAPI) Signup(c *gin.Context) {
	var payload signupRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	user, err := api.service.Signup(c.Request.Context(), payload.Email, payload.Username, payload.Password)
	if err != nil {
		respondUserError(c, err)
		return
	}
	c.JSON(http.StatusCreated, userhttpmapper.FromDomainUser(user))
}

// Post /api/users/login
func (api *UsersAPI) Login(c *gin.Context) {
	var payload loginRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	token, err := api.service.Login(c.Request.Context(), payload.Email, payload.Password)
	if err != nil {
		respondUserError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token})
}

// Post /api/users/logout
func (api *UsersAPI) Logout(c *gin.Context) {
	api.service.Logout(c.Request.Context(), bearerToken(c))
	c.JSON(http.StatusOK, gin.H{"message": "logout successful"})
}

// Get /api/users/me
func (api *UsersAPI) Me(c *gin.Context) {
	user, ok := mustCurrentUser(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, userhttpmapper.FromDomainUser(user))
}

func respondUserError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	switch {
	case errors.Is(err, userports.ErrInvalidCredentials):
		respondProblem(c, apierrors.ErrUnauthorized.WithDetail(err.Error()))
	case errors.Is(err, userports.ErrEmailTaken):
		respondProblem(c, apierrors.ErrConflict.WithDetail(err.Error()))
	case errors.Is(err, userports.ErrNotFound):
		respondProblem(c, apierrors.NewNotFoundProblem("user", "unknown"))
	case errors.Is(err, userdomain.ErrEmptyEmail),
		errors.Is(err, userdomain.ErrInvalidEmail),
		errors.Is(err, userdomain.ErrEmptyUsername),
		errors.Is(err, userdomain.ErrEmptyPassword),
		errors.Is(err, userdomain.ErrWeakPassword):
		respondProblem(c, apierrors.ErrValidation.WithDetail(err.Error()))
	default:
		respondError(c, http.StatusInternalServerError, err)
	}
}
