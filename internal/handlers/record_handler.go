package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	apperrors "fundportal/internal/errors"
	"fundportal/internal/models"
	"fundportal/internal/services"
)

// RecordHandler exposes CRUD for one investor-scoped record type under
// /admin/investors/:id/<resource>.
type RecordHandler[T models.Record] struct {
	resource     string
	service      services.RecordServicer[T]
	auditService services.AuditServicer
}

// NewRecordHandler creates a RecordHandler. resource names the record type in
// responses and audit entries, e.g. "contribution".
func NewRecordHandler[T models.Record](resource string, service services.RecordServicer[T], auditService services.AuditServicer) *RecordHandler[T] {
	return &RecordHandler[T]{resource: resource, service: service, auditService: auditService}
}

func (h *RecordHandler[T]) action(verb string) string {
	return verb + "_" + strings.ToUpper(h.resource)
}

// Create adds a record for the investor. An id in the body is kept when it
// is free; otherwise one is generated.
func (h *RecordHandler[T]) Create(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var record T
	if err := c.ShouldBindJSON(&record); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	created, err := h.service.Create(c.Param("id"), &record)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, h.action("CREATE"), h.resource, (*created).GetID(), c.ClientIP(),
		map[string]interface{}{"investor_id": c.Param("id")})

	c.JSON(http.StatusCreated, gin.H{h.resource: created})
}

// List returns a page of the investor's records.
func (h *RecordHandler[T]) List(c *gin.Context) {
	page, err := bindPage(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	result, err := h.service.List(c.Param("id"), page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// Get returns one record.
func (h *RecordHandler[T]) Get(c *gin.Context) {
	record, err := h.service.Get(c.Param("id"), c.Param("recordId"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{h.resource: record})
}

// Update replaces a record's fields. Its id and investor never change.
func (h *RecordHandler[T]) Update(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var record T
	if err := c.ShouldBindJSON(&record); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	updated, err := h.service.Update(c.Param("id"), c.Param("recordId"), &record)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, h.action("UPDATE"), h.resource, c.Param("recordId"), c.ClientIP(),
		map[string]interface{}{"investor_id": c.Param("id")})

	c.JSON(http.StatusOK, gin.H{h.resource: updated})
}

// Delete removes a record.
func (h *RecordHandler[T]) Delete(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.service.Delete(c.Param("id"), c.Param("recordId")); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, h.action("DELETE"), h.resource, c.Param("recordId"), c.ClientIP(),
		map[string]interface{}{"investor_id": c.Param("id")})

	c.JSON(http.StatusOK, gin.H{"message": "Record deleted successfully"})
}

// Register mounts the CRUD routes on group, which must carry the :id
// investor parameter.
func (h *RecordHandler[T]) Register(group *gin.RouterGroup, path string) {
	g := group.Group(path)
	g.POST("", h.Create)
	g.GET("", h.List)
	g.GET("/:recordId", h.Get)
	g.PUT("/:recordId", h.Update)
	g.DELETE("/:recordId", h.Delete)
}
