package api

import (
	"alcyxob/coach-log/internal/domain"
	"alcyxob/coach-log/internal/service"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// AuthHandler holds the authentication service dependency.
type AuthHandler struct {
	authService service.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type LoginRequest struct {
	Role domain.Role `json:"role" binding:"required,oneof=coach client"`
	PIN  string      `json:"pin" binding:"required"`
}

type LoginResponse struct {
	Token string      `json:"token"`
	Role  domain.Role `json:"role"`
}

// Login godoc
// @Summary Log in as coach or client
// @Description Checks the role's PIN and returns a JWT carrying the role.
// @Tags Auth
// @Accept json
// @Produce json
// @Param credentials body LoginRequest true "Role and PIN"
// @Success 200 {object} LoginResponse
// @Failure 400 {object} gin.H "Invalid input (validation error)"
// @Failure 401 {object} gin.H "Wrong role or PIN"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	token, err := h.authService.Login(req.Role, req.PIN)
	if err != nil {
		if errors.Is(err, service.ErrAuthenticationFailed) {
			abortWithError(c, http.StatusUnauthorized, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Login failed due to an internal error.")
		}
		return
	}

	c.JSON(http.StatusOK, LoginResponse{Token: token, Role: req.Role})
}
