package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/tsaratour/service-booking/internal/application"
	"github.com/tsaratour/service-booking/internal/platform/middleware"
	"github.com/tsaratour/service-booking/internal/platform/response"
)

// AuthHandler handles login and session requests.
type AuthHandler struct {
	service *application.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(service *application.AuthService) *AuthHandler {
	return &AuthHandler{service: service}
}

// RegisterRoutes registers auth routes. Login is public.
func (h *AuthHandler) RegisterRoutes(r *gin.RouterGroup, authMW gin.HandlerFunc) {
	a := r.Group("/api/v1/auth")
	a.POST("/login", h.Login)
	a.POST("/logout", authMW, h.Logout)
	a.GET("/session", authMW, h.Session)
}

// Login handles POST /api/v1/auth/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req application.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "email et mot de passe requis")
		return
	}

	result, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// Logout handles POST /api/v1/auth/logout.
func (h *AuthHandler) Logout(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "authentification requise")
		return
	}

	h.service.Logout(c.Request.Context(), userID)
	response.Success(c, gin.H{"logged_out": true})
}

// Session handles GET /api/v1/auth/session.
func (h *AuthHandler) Session(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "authentification requise")
		return
	}
	role, _ := middleware.GetUserRole(c)

	result, err := h.service.Session(c.Request.Context(), userID, role)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}
