package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "fundportal/internal/errors"
	"fundportal/internal/services"
)

// UpdateHandler handles the investor updates feed.
type UpdateHandler struct {
	updateService services.UpdateServicer
	auditService  services.AuditServicer
}

// NewUpdateHandler creates a new UpdateHandler.
func NewUpdateHandler(updateService services.UpdateServicer, auditService services.AuditServicer) *UpdateHandler {
	return &UpdateHandler{updateService: updateService, auditService: auditService}
}

// PostUpdateRequest carries a Markdown message for the investor.
type PostUpdateRequest struct {
	Message string `json:"message" binding:"required,max=20000"`
}

// PostUpdate handles posting a message to an investor's feed.
// @Summary     Post an investor update
// @Tags        admin-updates
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string            true "Investor ID"
// @Param       request body PostUpdateRequest true "Markdown message"
// @Success     201 {object} services.RenderedUpdate "Update posted"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Investor not found"
// @Router      /admin/investors/{id}/updates [post]
func (h *UpdateHandler) PostUpdate(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req PostUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	update, err := h.updateService.PostUpdate(c.Param("id"), userID, req.Message)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "POST_UPDATE", "investor_update", update.ID, c.ClientIP(),
		map[string]interface{}{"investor_id": update.InvestorID})

	c.JSON(http.StatusCreated, gin.H{"update": update})
}

// GetUpdates handles listing an investor's feed.
// @Summary     Get investor updates
// @Tags        admin-updates
// @Produce     json
// @Security    BearerAuth
// @Param       id        path  string true  "Investor ID"
// @Param       page      query int    false "Page number (default 1)"
// @Param       page_size query int    false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[services.RenderedUpdate] "Paginated updates"
// @Router      /admin/investors/{id}/updates [get]
func (h *UpdateHandler) GetUpdates(c *gin.Context) {
	page, err := bindPage(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	result, err := h.updateService.GetUpdates(c.Param("id"), page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// DeleteUpdate handles removing a message from the feed.
// @Summary     Delete investor update
// @Tags        admin-updates
// @Produce     json
// @Security    BearerAuth
// @Param       id       path string true "Investor ID"
// @Param       updateId path string true "Update ID"
// @Success     200 {object} map[string]string "Update deleted"
// @Failure     404 {object} ErrorResponse "Update not found"
// @Router      /admin/investors/{id}/updates/{updateId} [delete]
func (h *UpdateHandler) DeleteUpdate(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	updateID := c.Param("updateId")
	if err := h.updateService.DeleteUpdate(c.Param("id"), updateID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "DELETE_UPDATE", "investor_update", updateID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"message": "Update deleted successfully"})
}
