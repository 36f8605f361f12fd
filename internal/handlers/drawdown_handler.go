package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "fundportal/internal/errors"
	"fundportal/internal/services"
)

// DrawdownHandler handles drawdown notices and their payments.
type DrawdownHandler struct {
	drawdownService services.DrawdownServicer
	auditService    services.AuditServicer
}

// NewDrawdownHandler creates a new DrawdownHandler.
func NewDrawdownHandler(drawdownService services.DrawdownServicer, auditService services.AuditServicer) *DrawdownHandler {
	return &DrawdownHandler{drawdownService: drawdownService, auditService: auditService}
}

// NoticeRequest represents the request payload for creating or editing a notice.
type NoticeRequest struct {
	IssueDate  string          `json:"issue_date" binding:"required"`
	DueDate    string          `json:"due_date" binding:"required"`
	Amount     decimal.Decimal `json:"amount"`
	Percentage decimal.Decimal `json:"percentage"`
	Purpose    string          `json:"purpose" binding:"max=500"`
}

// PaymentRequest represents a payment received against a notice.
type PaymentRequest struct {
	Date      string          `json:"date"`
	Amount    decimal.Decimal `json:"amount"`
	Method    string          `json:"method" binding:"max=50"`
	Reference string          `json:"reference" binding:"max=100"`
}

// MarkOverdueRequest optionally sets the reference date of the overdue sweep.
type MarkOverdueRequest struct {
	AsOf string `json:"as_of"`
}

func (r NoticeRequest) input() (services.NoticeInput, error) {
	issue, err := parseDate("issue_date", r.IssueDate)
	if err != nil {
		return services.NoticeInput{}, err
	}
	due, err := parseDate("due_date", r.DueDate)
	if err != nil {
		return services.NoticeInput{}, err
	}
	return services.NoticeInput{
		IssueDate:  issue,
		DueDate:    due,
		Amount:     r.Amount,
		Percentage: r.Percentage,
		Purpose:    r.Purpose,
	}, nil
}

func bindNotice(c *gin.Context) (services.NoticeInput, error) {
	var req NoticeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return services.NoticeInput{}, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error())
	}
	return req.input()
}

// CreateNotice handles issuing a new draft notice.
// @Summary     Create a drawdown notice
// @Description Create a draft capital call. A zero percentage is derived from the commitment.
// @Tags        admin-notices
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string        true "Investor ID"
// @Param       request body NoticeRequest true "Notice details"
// @Success     201 {object} models.DrawdownNotice "Notice created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Investor not found"
// @Router      /admin/investors/{id}/notices [post]
func (h *DrawdownHandler) CreateNotice(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	in, err := bindNotice(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	notice, err := h.drawdownService.CreateNotice(c.Param("id"), in)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "CREATE_NOTICE", "drawdown_notice", notice.ID, c.ClientIP(),
		map[string]interface{}{"investor_id": notice.InvestorID, "amount": notice.Amount.String(), "due_date": in.DueDate.Format(dateLayout)})

	c.JSON(http.StatusCreated, gin.H{"notice": notice})
}

// GetNotices handles listing an investor's notices.
// @Summary     Get drawdown notices
// @Tags        admin-notices
// @Produce     json
// @Security    BearerAuth
// @Param       id        path  string true  "Investor ID"
// @Param       status    query string false "Filter by status"
// @Param       page      query int    false "Page number (default 1)"
// @Param       page_size query int    false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.DrawdownNotice] "Paginated notices"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Router      /admin/investors/{id}/notices [get]
func (h *DrawdownHandler) GetNotices(c *gin.Context) {
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

	result, err := h.drawdownService.GetNotices(c.Param("id"), page, services.NoticeFilter{Status: status})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetNotice handles retrieving a specific notice.
// @Summary     Get drawdown notice
// @Tags        admin-notices
// @Produce     json
// @Security    BearerAuth
// @Param       id       path string true "Investor ID"
// @Param       noticeId path string true "Notice ID"
// @Success     200 {object} models.DrawdownNotice "Notice details"
// @Failure     404 {object} ErrorResponse "Notice not found"
// @Router      /admin/investors/{id}/notices/{noticeId} [get]
func (h *DrawdownHandler) GetNotice(c *gin.Context) {
	notice, err := h.drawdownService.GetNoticeByID(c.Param("id"), c.Param("noticeId"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"notice": notice})
}

// UpdateNotice handles editing a draft notice.
// @Summary     Update drawdown notice
// @Tags        admin-notices
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id       path string        true "Investor ID"
// @Param       noticeId path string        true "Notice ID"
// @Param       request  body NoticeRequest true "Notice details"
// @Success     200 {object} models.DrawdownNotice "Updated notice"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Notice not found"
// @Failure     409 {object} ErrorResponse "Notice already sent"
// @Router      /admin/investors/{id}/notices/{noticeId} [put]
func (h *DrawdownHandler) UpdateNotice(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	in, err := bindNotice(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	notice, err := h.drawdownService.UpdateNotice(c.Param("id"), c.Param("noticeId"), in)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "UPDATE_NOTICE", "drawdown_notice", notice.ID, c.ClientIP(),
		map[string]interface{}{"amount": notice.Amount.String()})

	c.JSON(http.StatusOK, gin.H{"notice": notice})
}

// DeleteNotice handles deleting an unpaid notice.
// @Summary     Delete drawdown notice
// @Tags        admin-notices
// @Produce     json
// @Security    BearerAuth
// @Param       id       path string true "Investor ID"
// @Param       noticeId path string true "Notice ID"
// @Success     200 {object} map[string]string "Notice deleted"
// @Failure     404 {object} ErrorResponse "Notice not found"
// @Failure     409 {object} ErrorResponse "Notice already paid"
// @Router      /admin/investors/{id}/notices/{noticeId} [delete]
func (h *DrawdownHandler) DeleteNotice(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	noticeID := c.Param("noticeId")
	if err := h.drawdownService.DeleteNotice(c.Param("id"), noticeID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "DELETE_NOTICE", "drawdown_notice", noticeID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"message": "Notice deleted successfully"})
}

// SendNotice handles delivering a draft notice to the investor.
// @Summary     Send drawdown notice
// @Tags        admin-notices
// @Produce     json
// @Security    BearerAuth
// @Param       id       path string true "Investor ID"
// @Param       noticeId path string true "Notice ID"
// @Success     200 {object} models.DrawdownNotice "Sent notice"
// @Failure     404 {object} ErrorResponse "Notice not found"
// @Failure     409 {object} ErrorResponse "Notice is not a draft"
// @Router      /admin/investors/{id}/notices/{noticeId}/send [post]
func (h *DrawdownHandler) SendNotice(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	notice, err := h.drawdownService.SendNotice(c.Param("id"), c.Param("noticeId"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "SEND_NOTICE", "drawdown_notice", notice.ID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"notice": notice})
}

// RecordPayment handles a payment received against a notice.
// @Summary     Record notice payment
// @Description Marks the notice Paid and books the linked capital contribution
// @Tags        admin-notices
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id       path string         true "Investor ID"
// @Param       noticeId path string         true "Notice ID"
// @Param       request  body PaymentRequest true "Payment details"
// @Success     201 {object} map[string]interface{} "Paid notice and contribution"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Notice not found"
// @Failure     409 {object} ErrorResponse "Notice cannot be paid"
// @Router      /admin/investors/{id}/notices/{noticeId}/payments [post]
func (h *DrawdownHandler) RecordPayment(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req PaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}
	date, err := parseDate("date", req.Date)
	if err != nil {
		respondWithError(c, err)
		return
	}
	if req.Amount.IsNegative() {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidAmount, "payment amount must not be negative"))
		return
	}

	notice, contribution, err := h.drawdownService.RecordPayment(c.Param("id"), c.Param("noticeId"), services.PaymentInput{
		Date:      date,
		Amount:    req.Amount,
		Method:    req.Method,
		Reference: req.Reference,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "RECORD_PAYMENT", "drawdown_notice", notice.ID, c.ClientIP(),
		map[string]interface{}{"contribution_id": contribution.ID, "amount": contribution.Amount.String()})

	c.JSON(http.StatusCreated, gin.H{"notice": notice, "contribution": contribution})
}

// MarkOverdue moves every sent notice past its due date to Pending.
// @Summary     Mark overdue notices
// @Description Sweeps all investors. as_of defaults to today.
// @Tags        admin-notices
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body MarkOverdueRequest false "Reference date"
// @Success     200 {object} map[string]interface{} "Notices moved to Pending"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Router      /admin/notices/mark-overdue [post]
func (h *DrawdownHandler) MarkOverdue(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req MarkOverdueRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
			return
		}
	}
	asOf, err := parseDate("as_of", req.AsOf)
	if err != nil {
		respondWithError(c, err)
		return
	}
	if asOf.IsZero() {
		asOf = time.Now().UTC().Truncate(24 * time.Hour)
	}

	moved, err := h.drawdownService.MarkOverdue(asOf)
	if err != nil {
		respondWithError(c, err)
		return
	}

	ids := make([]string, 0, len(moved))
	for _, n := range moved {
		ids = append(ids, n.ID)
	}
	h.auditService.Log(userID, "MARK_OVERDUE", "drawdown_notice", "", c.ClientIP(),
		map[string]interface{}{"as_of": asOf.Format(dateLayout), "notices": ids})

	c.JSON(http.StatusOK, gin.H{"count": len(moved), "notices": moved})
}
