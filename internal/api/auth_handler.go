package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/innovatefest/hackathon-api/internal/models"
	"github.com/innovatefest/hackathon-api/internal/services"
)

// AuthHandler handles authentication and account operations
type AuthHandler struct {
	authService services.AuthService
	timeout     time.Duration
}

// NewAuthHandler creates a new auth handler with service injection
func NewAuthHandler(authService services.AuthService, timeout time.Duration) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		timeout:     timeout,
	}
}

// Login exchanges credentials for a bearer token
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "username and password are required", err)
		return
	}

	ctx, cancel := requestContext(c, h.timeout)
	defer cancel()

	resp, err := h.authService.Login(ctx, req.Username, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// CreateUser creates an admin or judge account (Admin only)
func (h *AuthHandler) CreateUser(c *gin.Context) {
	var req models.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid user: "+err.Error(), err)
		return
	}

	ctx, cancel := requestContext(c, h.timeout)
	defer cancel()

	user, err := h.authService.CreateUser(ctx, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"user":    user,
	})
}
