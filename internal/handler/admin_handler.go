package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/tsaratour/service-booking/internal/application"
	"github.com/tsaratour/service-booking/internal/platform/auth"
	"github.com/tsaratour/service-booking/internal/platform/middleware"
	"github.com/tsaratour/service-booking/internal/platform/response"
)

// AdminHandler handles the admin dashboard and submission audit requests.
type AdminHandler struct {
	dashboard   *application.DashboardService
	submissions *application.SubmissionService
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(dashboard *application.DashboardService, submissions *application.SubmissionService) *AdminHandler {
	return &AdminHandler{dashboard: dashboard, submissions: submissions}
}

// RegisterRoutes registers admin routes.
func (h *AdminHandler) RegisterRoutes(r *gin.RouterGroup, authMW gin.HandlerFunc, authorizer *auth.Authorizer) {
	admin := r.Group("/api/v1/admin")
	admin.Use(authMW)
	{
		admin.GET("/dashboard/revenue", middleware.RequirePermission(authorizer, auth.ResourceDashboard), h.Revenue)
		admin.GET("/submissions", middleware.RequirePermission(authorizer, auth.ResourceSubmissions), h.ListSubmissions)
		admin.GET("/submissions/:reference", middleware.RequirePermission(authorizer, auth.ResourceSubmissions), h.GetSubmission)
		admin.GET("/stats/submissions", middleware.RequirePermission(authorizer, auth.ResourceSubmissions), h.SubmissionStats)
	}
}

// Revenue handles GET /api/v1/admin/dashboard/revenue.
func (h *AdminHandler) Revenue(c *gin.Context) {
	result, err := h.dashboard.Revenue(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// ListSubmissions handles GET /api/v1/admin/submissions.
func (h *AdminHandler) ListSubmissions(c *gin.Context) {
	page, limit := parsePagination(c)

	result, err := h.submissions.ListSubmissions(c.Request.Context(), page, limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Paginated(c, result.Items, result.Total, result.Page, result.Limit)
}

// GetSubmission handles GET /api/v1/admin/submissions/:reference.
func (h *AdminHandler) GetSubmission(c *gin.Context) {
	result, err := h.submissions.GetSubmission(c.Request.Context(), c.Param("reference"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// SubmissionStats handles GET /api/v1/admin/stats/submissions.
func (h *AdminHandler) SubmissionStats(c *gin.Context) {
	stats, err := h.submissions.GetSubmissionStats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, stats)
}
