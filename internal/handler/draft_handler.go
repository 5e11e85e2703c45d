package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/tsaratour/service-booking/internal/application"
	"github.com/tsaratour/service-booking/internal/domain/draft"
	"github.com/tsaratour/service-booking/internal/platform/auth"
	"github.com/tsaratour/service-booking/internal/platform/middleware"
	"github.com/tsaratour/service-booking/internal/platform/response"
)

// DraftHandler handles HTTP requests for the booking wizard.
type DraftHandler struct {
	wizard      *application.WizardService
	submissions *application.SubmissionService
}

// NewDraftHandler creates a new DraftHandler.
func NewDraftHandler(wizard *application.WizardService, submissions *application.SubmissionService) *DraftHandler {
	return &DraftHandler{wizard: wizard, submissions: submissions}
}

// RegisterRoutes registers all wizard routes on the given router group.
func (h *DraftHandler) RegisterRoutes(r *gin.RouterGroup, authMW gin.HandlerFunc, authorizer *auth.Authorizer) {
	drafts := r.Group("/api/v1/drafts")
	drafts.Use(authMW, middleware.RequirePermission(authorizer, auth.ResourceDrafts))
	{
		drafts.POST("", h.StartDraft)
		drafts.POST("/resume", h.ResumeEdit)
		drafts.GET("/:id", h.GetDraft)
		drafts.DELETE("/:id", h.DiscardDraft)
		drafts.PUT("/:id/client", h.SetClient)
		drafts.POST("/:id/flights", h.AddFlight)
		drafts.POST("/:id/accommodations", h.AddAccommodation)
		drafts.POST("/:id/vehicles", h.AddVehicle)
		drafts.POST("/:id/activities", h.AddActivity)
		drafts.DELETE("/:id/items/:kind/:itemId", h.RemoveItem)
		drafts.POST("/:id/steps/next", h.NextStep)
		drafts.POST("/:id/steps/prev", h.PrevStep)
		drafts.POST("/:id/steps/:step", h.GoToStep)
		drafts.POST("/:id/submit", h.Submit)
	}

	reservations := r.Group("/api/v1/reservations")
	reservations.Use(authMW, middleware.RequirePermission(authorizer, auth.ResourceReservations))
	{
		reservations.POST("/:id/edit", h.PrepareEdit)
	}

	submissions := r.Group("/api/v1/submissions")
	submissions.Use(authMW, middleware.RequirePermission(authorizer, auth.ResourceDrafts))
	{
		submissions.GET("", h.ListMySubmissions)
	}
}

// StartDraft handles POST /api/v1/drafts.
func (h *DraftHandler) StartDraft(c *gin.Context) {
	owner, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "authentification requise")
		return
	}

	result, err := h.wizard.StartDraft(c.Request.Context(), owner)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, result)
}

// GetDraft handles GET /api/v1/drafts/:id.
func (h *DraftHandler) GetDraft(c *gin.Context) {
	owner, id, ok := draftParams(c)
	if !ok {
		return
	}

	result, err := h.wizard.GetDraft(c.Request.Context(), owner, id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// DiscardDraft handles DELETE /api/v1/drafts/:id.
func (h *DraftHandler) DiscardDraft(c *gin.Context) {
	owner, id, ok := draftParams(c)
	if !ok {
		return
	}

	if err := h.wizard.DiscardDraft(c.Request.Context(), owner, id); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, gin.H{"discarded": true})
}

// SetClient handles PUT /api/v1/drafts/:id/client.
func (h *DraftHandler) SetClient(c *gin.Context) {
	owner, id, ok := draftParams(c)
	if !ok {
		return
	}

	var req application.SetClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.wizard.SetClient(c.Request.Context(), owner, id, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// AddFlight handles POST /api/v1/drafts/:id/flights.
func (h *DraftHandler) AddFlight(c *gin.Context) {
	owner, id, ok := draftParams(c)
	if !ok {
		return
	}

	var req application.AddFlightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.wizard.AddFlight(c.Request.Context(), owner, id, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, result)
}

// AddAccommodation handles POST /api/v1/drafts/:id/accommodations.
func (h *DraftHandler) AddAccommodation(c *gin.Context) {
	owner, id, ok := draftParams(c)
	if !ok {
		return
	}

	var req application.AddAccommodationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.wizard.AddAccommodation(c.Request.Context(), owner, id, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, result)
}

// AddVehicle handles POST /api/v1/drafts/:id/vehicles.
func (h *DraftHandler) AddVehicle(c *gin.Context) {
	owner, id, ok := draftParams(c)
	if !ok {
		return
	}

	var req application.AddVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.wizard.AddVehicle(c.Request.Context(), owner, id, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, result)
}

// AddActivity handles POST /api/v1/drafts/:id/activities.
func (h *DraftHandler) AddActivity(c *gin.Context) {
	owner, id, ok := draftParams(c)
	if !ok {
		return
	}

	var req application.AddActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.wizard.AddActivity(c.Request.Context(), owner, id, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, result)
}

// RemoveItem handles DELETE /api/v1/drafts/:id/items/:kind/:itemId.
func (h *DraftHandler) RemoveItem(c *gin.Context) {
	owner, id, ok := draftParams(c)
	if !ok {
		return
	}

	kind, err := draft.ParseKind(c.Param("kind"))
	if err != nil {
		response.BadRequest(c, "catégorie inconnue")
		return
	}

	result, err := h.wizard.RemoveItem(c.Request.Context(), owner, id, kind, c.Param("itemId"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// NextStep handles POST /api/v1/drafts/:id/steps/next.
func (h *DraftHandler) NextStep(c *gin.Context) {
	owner, id, ok := draftParams(c)
	if !ok {
		return
	}

	result, err := h.wizard.NextStep(c.Request.Context(), owner, id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// PrevStep handles POST /api/v1/drafts/:id/steps/prev.
func (h *DraftHandler) PrevStep(c *gin.Context) {
	owner, id, ok := draftParams(c)
	if !ok {
		return
	}

	result, err := h.wizard.PrevStep(c.Request.Context(), owner, id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// GoToStep handles POST /api/v1/drafts/:id/steps/:step.
func (h *DraftHandler) GoToStep(c *gin.Context) {
	owner, id, ok := draftParams(c)
	if !ok {
		return
	}

	step, err := strconv.Atoi(c.Param("step"))
	if err != nil {
		response.BadRequest(c, "numéro d'étape invalide")
		return
	}

	result, err := h.wizard.GoToStep(c.Request.Context(), owner, id, step)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// Submit handles POST /api/v1/drafts/:id/submit.
func (h *DraftHandler) Submit(c *gin.Context) {
	owner, id, ok := draftParams(c)
	if !ok {
		return
	}

	result, err := h.wizard.Submit(c.Request.Context(), owner, id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// PrepareEdit handles POST /api/v1/reservations/:id/edit.
func (h *DraftHandler) PrepareEdit(c *gin.Context) {
	owner, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "authentification requise")
		return
	}

	reservationID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || reservationID <= 0 {
		response.BadRequest(c, "identifiant de réservation invalide")
		return
	}

	result, err := h.wizard.PrepareEdit(c.Request.Context(), owner, reservationID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// ResumeEdit handles POST /api/v1/drafts/resume.
func (h *DraftHandler) ResumeEdit(c *gin.Context) {
	owner, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "authentification requise")
		return
	}

	result, err := h.wizard.ResumeEdit(c.Request.Context(), owner)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, result)
}

// ListMySubmissions handles GET /api/v1/submissions.
func (h *DraftHandler) ListMySubmissions(c *gin.Context) {
	owner, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "authentification requise")
		return
	}

	page, limit := parsePagination(c)
	result, err := h.submissions.ListOwnerSubmissions(c.Request.Context(), owner, page, limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Paginated(c, result.Items, result.Total, result.Page, result.Limit)
}

// draftParams reads the caller and the :id draft parameter, writing the error
// response itself when either is missing.
func draftParams(c *gin.Context) (string, uuid.UUID, bool) {
	owner, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "authentification requise")
		return "", uuid.Nil, false
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "identifiant de brouillon invalide")
		return "", uuid.Nil, false
	}
	return owner, id, true
}

func parsePagination(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}

	return page, limit
}
