package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/tsaratour/service-booking/internal/application"
	"github.com/tsaratour/service-booking/internal/platform/auth"
	"github.com/tsaratour/service-booking/internal/platform/middleware"
	"github.com/tsaratour/service-booking/internal/platform/response"
)

// ClientHandler serves the client lookup of the first wizard step.
type ClientHandler struct {
	service *application.ClientService
}

// NewClientHandler creates a new ClientHandler.
func NewClientHandler(service *application.ClientService) *ClientHandler {
	return &ClientHandler{service: service}
}

// RegisterRoutes registers client lookup routes.
func (h *ClientHandler) RegisterRoutes(r *gin.RouterGroup, authMW gin.HandlerFunc, authorizer *auth.Authorizer) {
	clients := r.Group("/api/v1/clients")
	clients.Use(authMW, middleware.RequirePermission(authorizer, auth.ResourceClients))
	{
		clients.GET("", h.ListClients)
		clients.GET("/:id", h.GetClient)
	}
}

// ListClients handles GET /api/v1/clients?search=.
func (h *ClientHandler) ListClients(c *gin.Context) {
	result, err := h.service.ListClients(c.Request.Context(), c.Query("search"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// GetClient handles GET /api/v1/clients/:id.
func (h *ClientHandler) GetClient(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.BadRequest(c, "identifiant de client invalide")
		return
	}

	result, err := h.service.GetClient(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}
