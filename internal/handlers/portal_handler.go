package handlers

import (
	"bytes"
	"io"
	"mime"
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"

	apperrors "fundportal/internal/errors"
	"fundportal/internal/logger"
	"fundportal/internal/models"
	"fundportal/internal/report"
	"fundportal/internal/services"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// PortalHandler serves the signed-in investor's own data.
type PortalHandler struct {
	investors       services.InvestorServicer
	dashboard       services.DashboardServicer
	contributions   services.RecordServicer[models.CapitalContribution]
	fees            services.RecordServicer[models.FeeCharge]
	distributions   services.RecordServicer[models.Distribution]
	navs            services.RecordServicer[models.NAVStatement]
	coInvestments   services.RecordServicer[models.CoInvestment]
	drawdowns       services.DrawdownServicer
	documents       services.DocumentServicer
	fundInvestments services.FundInvestmentServicer
	updates         services.UpdateServicer
}

// PortalServices groups the collaborators of a PortalHandler.
type PortalServices struct {
	Investors       services.InvestorServicer
	Dashboard       services.DashboardServicer
	Contributions   services.RecordServicer[models.CapitalContribution]
	Fees            services.RecordServicer[models.FeeCharge]
	Distributions   services.RecordServicer[models.Distribution]
	NAVs            services.RecordServicer[models.NAVStatement]
	CoInvestments   services.RecordServicer[models.CoInvestment]
	Drawdowns       services.DrawdownServicer
	Documents       services.DocumentServicer
	FundInvestments services.FundInvestmentServicer
	Updates         services.UpdateServicer
}

// NewPortalHandler creates a new PortalHandler.
func NewPortalHandler(s PortalServices) *PortalHandler {
	return &PortalHandler{
		investors:       s.Investors,
		dashboard:       s.Dashboard,
		contributions:   s.Contributions,
		fees:            s.Fees,
		distributions:   s.Distributions,
		navs:            s.NAVs,
		coInvestments:   s.CoInvestments,
		drawdowns:       s.Drawdowns,
		documents:       s.Documents,
		fundInvestments: s.FundInvestments,
		updates:         s.Updates,
	}
}

// investorID resolves the caller's investor or writes the error response.
func (h *PortalHandler) investorID(c *gin.Context) (string, bool) {
	investor, err := linkedInvestor(c, h.investors)
	if err != nil {
		respondWithError(c, err)
		return "", false
	}
	return investor.ID, true
}

// GetSummary returns the dashboard figures of the signed-in investor.
// @Summary     Dashboard summary
// @Description Commitment, contributions, fees, NAV, performance and fee tier of the signed-in investor
// @Tags        portal
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} aggregate.DashboardSummary "Dashboard summary"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "No linked investor"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /portal/summary [get]
func (h *PortalHandler) GetSummary(c *gin.Context) {
	investorID, ok := h.investorID(c)
	if !ok {
		return
	}

	summary, err := h.dashboard.GetSummary(c.Request.Context(), investorID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"summary": summary})
}

// GetContributions lists the investor's capital contributions.
// @Summary     Capital contributions
// @Tags        portal
// @Produce     json
// @Security    BearerAuth
// @Param       page      query int    false "Page number (default 1)"
// @Param       page_size query int    false "Items per page (default 20, max 100)"
// @Param       sort      query string false "Sort column, prefix with - for descending"
// @Success     200 {object} pagination.PageResponse[models.CapitalContribution] "Paginated contributions"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "No linked investor"
// @Router      /portal/contributions [get]
func (h *PortalHandler) GetContributions(c *gin.Context) {
	listOwn(c, h, h.contributions)
}

// GetFees lists the investor's fee charges.
// @Summary     Fee charges
// @Tags        portal
// @Produce     json
// @Security    BearerAuth
// @Param       page      query int    false "Page number (default 1)"
// @Param       page_size query int    false "Items per page (default 20, max 100)"
// @Param       sort      query string false "Sort column, prefix with - for descending"
// @Success     200 {object} pagination.PageResponse[models.FeeCharge] "Paginated fees"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "No linked investor"
// @Router      /portal/fees [get]
func (h *PortalHandler) GetFees(c *gin.Context) {
	listOwn(c, h, h.fees)
}

// GetDistributions lists the investor's distributions.
// @Summary     Distributions
// @Tags        portal
// @Produce     json
// @Security    BearerAuth
// @Param       page      query int    false "Page number (default 1)"
// @Param       page_size query int    false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.Distribution] "Paginated distributions"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "No linked investor"
// @Router      /portal/distributions [get]
func (h *PortalHandler) GetDistributions(c *gin.Context) {
	listOwn(c, h, h.distributions)
}

// GetNAVStatements lists the investor's NAV statements.
// @Summary     NAV statements
// @Tags        portal
// @Produce     json
// @Security    BearerAuth
// @Param       page      query int    false "Page number (default 1)"
// @Param       page_size query int    false "Items per page (default 20, max 100)"
// @Param       sort      query string false "Sort column, prefix with - for descending"
// @Success     200 {object} pagination.PageResponse[models.NAVStatement] "Paginated NAV statements"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "No linked investor"
// @Router      /portal/nav [get]
func (h *PortalHandler) GetNAVStatements(c *gin.Context) {
	listOwn(c, h, h.navs)
}

// GetCoInvestments lists the co-investments offered to the investor.
// @Summary     Co-investments
// @Tags        portal
// @Produce     json
// @Security    BearerAuth
// @Param       page      query int    false "Page number (default 1)"
// @Param       page_size query int    false "Items per page (default 20, max 100)"
// @Param       sort      query string false "Sort column, prefix with - for descending"
// @Success     200 {object} pagination.PageResponse[models.CoInvestment] "Paginated co-investments"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "No linked investor"
// @Router      /portal/co-investments [get]
func (h *PortalHandler) GetCoInvestments(c *gin.Context) {
	listOwn(c, h, h.coInvestments)
}

func listOwn[T any](c *gin.Context, h *PortalHandler, svc services.RecordServicer[T]) {
	investorID, ok := h.investorID(c)
	if !ok {
		return
	}
	page, err := bindPage(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	result, err := svc.List(investorID, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetNotices lists the investor's drawdown notices. Drafts are never shown.
// @Summary     Drawdown notices
// @Tags        portal
// @Produce     json
// @Security    BearerAuth
// @Param       status    query string false "Filter by status (Sent, Pending, Paid)"
// @Param       page      query int    false "Page number (default 1)"
// @Param       page_size query int    false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.DrawdownNotice] "Paginated notices"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "No linked investor"
// @Router      /portal/notices [get]
func (h *PortalHandler) GetNotices(c *gin.Context) {
	investorID, ok := h.investorID(c)
	if !ok {
		return
	}
	page, err := bindPage(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	status, err := noticeStatusFilter(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	if status != nil && *status == models.NoticeDraft {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "status must be Sent, Pending or Paid"))
		return
	}

	result, err := h.drawdowns.GetNotices(investorID, page, services.NoticeFilter{Status: status, IssuedOnly: true})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetPendingNotices lists the notices that are past due and unpaid.
// @Summary     Pending drawdown notices
// @Tags        portal
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} map[string][]models.DrawdownNotice "Pending notices"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "No linked investor"
// @Router      /portal/notices/pending [get]
func (h *PortalHandler) GetPendingNotices(c *gin.Context) {
	investorID, ok := h.investorID(c)
	if !ok {
		return
	}

	notices, err := h.dashboard.GetPendingNotices(c.Request.Context(), investorID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"notices": notices})
}

// GetDocuments lists the documents visible to the investor.
// @Summary     Documents
// @Description Fund documents plus the investor's own side letters when flagged for display
// @Tags        portal
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} map[string][]models.Document "Visible documents"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "No linked investor"
// @Router      /portal/documents [get]
func (h *PortalHandler) GetDocuments(c *gin.Context) {
	investorID, ok := h.investorID(c)
	if !ok {
		return
	}

	docs, err := h.documents.GetVisibleDocuments(investorID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"documents": docs})
}

// ViewDocument streams a document for display in the browser.
// @Summary     View document
// @Tags        portal
// @Produce     octet-stream
// @Security    BearerAuth
// @Param       id path string true "Document ID"
// @Success     200 {file} binary "Document content"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Document not found"
// @Router      /portal/documents/{id}/view [get]
func (h *PortalHandler) ViewDocument(c *gin.Context) {
	h.serveDocument(c, false)
}

// DownloadDocument streams a downloadable document as an attachment.
// @Summary     Download document
// @Tags        portal
// @Produce     octet-stream
// @Security    BearerAuth
// @Param       id path string true "Document ID"
// @Success     200 {file} binary "Document content"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Document is view-only"
// @Failure     404 {object} ErrorResponse "Document not found"
// @Router      /portal/documents/{id}/download [get]
func (h *PortalHandler) DownloadDocument(c *gin.Context) {
	h.serveDocument(c, true)
}

func (h *PortalHandler) serveDocument(c *gin.Context, download bool) {
	investorID, ok := h.investorID(c)
	if !ok {
		return
	}

	doc, content, err := h.documents.OpenDocument(c.Request.Context(), investorID, c.Param("id"), download)
	if err != nil {
		respondWithError(c, err)
		return
	}
	defer content.Close()

	disposition := "inline"
	if download {
		disposition = "attachment"
	}
	contentType := mime.TypeByExtension(filepath.Ext(doc.AttachmentName))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	c.Header("Content-Disposition", mime.FormatMediaType(disposition, map[string]string{"filename": doc.AttachmentName}))
	c.Header("Content-Type", contentType)
	if !doc.Copyable {
		c.Header("Cache-Control", "no-store")
	}
	c.Status(http.StatusOK)
	if _, err := io.Copy(c.Writer, content); err != nil {
		logger.Get().Warnw("document stream interrupted", "document_id", doc.ID, "error", err)
	}
}

// GetFundInvestments lists the fund's portfolio companies.
// @Summary     Fund investments
// @Tags        portal
// @Produce     json
// @Security    BearerAuth
// @Param       status    query string false "Filter by status (Active, Exited)"
// @Param       page      query int    false "Page number (default 1)"
// @Param       page_size query int    false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.FundInvestment] "Paginated investments"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "No linked investor"
// @Router      /portal/fund-investments [get]
func (h *PortalHandler) GetFundInvestments(c *gin.Context) {
	if _, ok := h.investorID(c); !ok {
		return
	}
	page, err := bindPage(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	result, err := h.fundInvestments.GetFundInvestments(page, optionalQuery(c, "status"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetUpdates lists the investor's update feed, newest first.
// @Summary     Investor updates
// @Tags        portal
// @Produce     json
// @Security    BearerAuth
// @Param       page      query int false "Page number (default 1)"
// @Param       page_size query int false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[services.RenderedUpdate] "Paginated updates"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "No linked investor"
// @Router      /portal/updates [get]
func (h *PortalHandler) GetUpdates(c *gin.Context) {
	investorID, ok := h.investorID(c)
	if !ok {
		return
	}
	page, err := bindPage(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	result, err := h.updates.GetUpdates(investorID, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetStatement exports the capital account statement as a spreadsheet.
// @Summary     Capital account statement
// @Tags        portal
// @Produce     application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security    BearerAuth
// @Success     200 {file} binary "Statement workbook"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "No linked investor"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /portal/statement [get]
func (h *PortalHandler) GetStatement(c *gin.Context) {
	investorID, ok := h.investorID(c)
	if !ok {
		return
	}
	writeStatement(c, h.dashboard, investorID)
}

// writeStatement renders the workbook into memory first so a failure can
// still be reported as JSON.
func writeStatement(c *gin.Context, dashboard services.DashboardServicer, investorID string) {
	view, summary, err := dashboard.GetReport(c.Request.Context(), investorID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var buf bytes.Buffer
	if err := report.WriteStatement(&buf, *view, *summary); err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrInternalServer, err))
		return
	}

	c.Header("Content-Disposition", "attachment; filename="+report.StatementFilename(investorID))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

func noticeStatusFilter(c *gin.Context) (*models.NoticeStatus, error) {
	v := c.Query("status")
	if v == "" {
		return nil, nil
	}
	s := models.NoticeStatus(v)
	switch s {
	case models.NoticeDraft, models.NoticeSent, models.NoticePending, models.NoticePaid:
		return &s, nil
	}
	return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "status must be Draft, Sent, Pending or Paid")
}
