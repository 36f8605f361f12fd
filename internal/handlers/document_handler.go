package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "fundportal/internal/errors"
	"fundportal/internal/services"
)

// DocumentHandler handles the document room.
type DocumentHandler struct {
	documentService services.DocumentServicer
	auditService    services.AuditServicer
}

// NewDocumentHandler creates a new DocumentHandler.
func NewDocumentHandler(documentService services.DocumentServicer, auditService services.AuditServicer) *DocumentHandler {
	return &DocumentHandler{documentService: documentService, auditService: auditService}
}

// DocumentForm holds the metadata fields of a document. Upload sends it as
// multipart form fields next to the file; Update sends it as JSON.
type DocumentForm struct {
	Title                 string `form:"title" json:"title" binding:"required,max=200"`
	Category              string `form:"category" json:"category" binding:"required,max=100"`
	Description           string `form:"description" json:"description" binding:"max=1000"`
	Date                  string `form:"date" json:"date"`
	Downloadable          bool   `form:"downloadable" json:"downloadable"`
	Copyable              bool   `form:"copyable" json:"copyable"`
	Confidential          bool   `form:"confidential" json:"confidential"`
	ShowToCurrentInvestor bool   `form:"show_to_current_investor" json:"show_to_current_investor"`
}

func (f DocumentForm) input() (services.DocumentInput, error) {
	date, err := parseDate("date", f.Date)
	if err != nil {
		return services.DocumentInput{}, err
	}
	return services.DocumentInput{
		Title:                 f.Title,
		Category:              f.Category,
		Description:           f.Description,
		Date:                  date,
		Downloadable:          f.Downloadable,
		Copyable:              f.Copyable,
		Confidential:          f.Confidential,
		ShowToCurrentInvestor: f.ShowToCurrentInvestor,
	}, nil
}

// UploadDocument handles a multipart document upload.
// @Summary     Upload a document
// @Description Store a document for the investor. The file field is optional.
// @Tags        admin-documents
// @Accept      multipart/form-data
// @Produce     json
// @Security    BearerAuth
// @Param       id                       path     string true  "Investor ID"
// @Param       file                     formData file   false "Attachment"
// @Param       title                    formData string true  "Title"
// @Param       category                 formData string true  "Category"
// @Param       description              formData string false "Description"
// @Param       date                     formData string false "Document date (YYYY-MM-DD)"
// @Param       downloadable             formData bool   false "Investor may download"
// @Param       copyable                 formData bool   false "Investor may copy"
// @Param       confidential             formData bool   false "Confidential"
// @Param       show_to_current_investor formData bool   false "Show side letter to its investor"
// @Success     201 {object} models.Document "Document created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Investor not found"
// @Failure     413 {object} ErrorResponse "File too large"
// @Failure     415 {object} ErrorResponse "Unsupported file type"
// @Router      /admin/investors/{id}/documents [post]
func (h *DocumentHandler) UploadDocument(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var form DocumentForm
	if err := c.ShouldBind(&form); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}
	in, err := form.input()
	if err != nil {
		respondWithError(c, err)
		return
	}

	var upload services.FileUpload
	if header, err := c.FormFile("file"); err == nil {
		file, err := header.Open()
		if err != nil {
			respondWithError(c, apperrors.Wrap(apperrors.ErrInvalidInput, err))
			return
		}
		defer file.Close()
		upload = services.FileUpload{Filename: header.Filename, Size: header.Size, Content: file}
	} else if err != http.ErrMissingFile {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	doc, err := h.documentService.UploadDocument(c.Request.Context(), c.Param("id"), in, upload)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "UPLOAD_DOCUMENT", "document", doc.ID, c.ClientIP(),
		map[string]interface{}{"investor_id": doc.InvestorID, "title": doc.Title, "category": doc.Category, "attachment": doc.AttachmentName})

	c.JSON(http.StatusCreated, gin.H{"document": doc})
}

// GetDocuments handles listing every document of an investor, side letters included.
// @Summary     Get documents
// @Tags        admin-documents
// @Produce     json
// @Security    BearerAuth
// @Param       id        path  string true  "Investor ID"
// @Param       category  query string false "Filter by category"
// @Param       page      query int    false "Page number (default 1)"
// @Param       page_size query int    false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.Document] "Paginated documents"
// @Router      /admin/investors/{id}/documents [get]
func (h *DocumentHandler) GetDocuments(c *gin.Context) {
	page, err := bindPage(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	result, err := h.documentService.GetDocuments(c.Param("id"), page, optionalQuery(c, "category"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetDocument handles retrieving a specific document.
// @Summary     Get document
// @Tags        admin-documents
// @Produce     json
// @Security    BearerAuth
// @Param       id    path string true "Investor ID"
// @Param       docId path string true "Document ID"
// @Success     200 {object} models.Document "Document details"
// @Failure     404 {object} ErrorResponse "Document not found"
// @Router      /admin/investors/{id}/documents/{docId} [get]
func (h *DocumentHandler) GetDocument(c *gin.Context) {
	doc, err := h.documentService.GetDocumentByID(c.Param("id"), c.Param("docId"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"document": doc})
}

// UpdateDocument handles editing a document's metadata. The attachment is kept.
// @Summary     Update document
// @Tags        admin-documents
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string       true "Investor ID"
// @Param       docId   path string       true "Document ID"
// @Param       request body DocumentForm true "Document metadata"
// @Success     200 {object} models.Document "Updated document"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Document not found"
// @Router      /admin/investors/{id}/documents/{docId} [put]
func (h *DocumentHandler) UpdateDocument(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var form DocumentForm
	if err := c.ShouldBindJSON(&form); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}
	in, err := form.input()
	if err != nil {
		respondWithError(c, err)
		return
	}

	doc, err := h.documentService.UpdateDocument(c.Param("id"), c.Param("docId"), in)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "UPDATE_DOCUMENT", "document", doc.ID, c.ClientIP(),
		map[string]interface{}{"title": doc.Title, "downloadable": doc.Downloadable, "show_to_current_investor": doc.ShowToCurrentInvestor})

	c.JSON(http.StatusOK, gin.H{"document": doc})
}

// DeleteDocument handles deleting a document and its attachment.
// @Summary     Delete document
// @Tags        admin-documents
// @Produce     json
// @Security    BearerAuth
// @Param       id    path string true "Investor ID"
// @Param       docId path string true "Document ID"
// @Success     200 {object} map[string]string "Document deleted"
// @Failure     404 {object} ErrorResponse "Document not found"
// @Router      /admin/investors/{id}/documents/{docId} [delete]
func (h *DocumentHandler) DeleteDocument(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	docID := c.Param("docId")
	if err := h.documentService.DeleteDocument(c.Request.Context(), c.Param("id"), docID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "DELETE_DOCUMENT", "document", docID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"message": "Document deleted successfully"})
}
