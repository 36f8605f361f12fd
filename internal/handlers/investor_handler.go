package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "fundportal/internal/errors"
	"fundportal/internal/models"
	"fundportal/internal/services"
)

// InvestorHandler handles investor administration.
type InvestorHandler struct {
	investorService  services.InvestorServicer
	dashboardService services.DashboardServicer
	auditService     services.AuditServicer
}

// NewInvestorHandler creates a new InvestorHandler.
func NewInvestorHandler(investorService services.InvestorServicer, dashboardService services.DashboardServicer, auditService services.AuditServicer) *InvestorHandler {
	return &InvestorHandler{investorService: investorService, dashboardService: dashboardService, auditService: auditService}
}

// CommitmentRequest is the capital commitment of an investor.
type CommitmentRequest struct {
	Total     decimal.Decimal `json:"total"`
	Currency  string          `json:"currency" binding:"omitempty,iso4217"`
	UnitClass string          `json:"unit_class" binding:"max=50"`
	Units     decimal.Decimal `json:"units"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	StartDate time.Time       `json:"start_date"`
}

// InvestorRequest represents the request payload for creating or replacing an investor.
type InvestorRequest struct {
	Name          string                `json:"name" binding:"required,min=1,max=200"`
	Email         string                `json:"email" binding:"required,email,max=255"`
	ContactPerson string                `json:"contact_person" binding:"max=200"`
	ContactPhone  string                `json:"contact_phone" binding:"max=50"`
	Address       string                `json:"address" binding:"max=500"`
	Status        models.InvestorStatus `json:"status" binding:"omitempty,investor_status"`
	Commitment    CommitmentRequest     `json:"capital_commitment"`
}

// CreateInvestorRequest optionally creates the investor's portal login.
type CreateInvestorRequest struct {
	InvestorRequest
	LoginEmail    string `json:"login_email" binding:"omitempty,email,max=255"`
	LoginPassword string `json:"login_password" binding:"max=128"`
}

func (r InvestorRequest) input() services.InvestorInput {
	return services.InvestorInput{
		Name:          r.Name,
		Email:         r.Email,
		ContactPerson: r.ContactPerson,
		ContactPhone:  r.ContactPhone,
		Address:       r.Address,
		Status:        r.Status,
		Commitment: models.CapitalCommitment{
			Total:     r.Commitment.Total,
			Currency:  r.Commitment.Currency,
			UnitClass: r.Commitment.UnitClass,
			Units:     r.Commitment.Units,
			UnitPrice: r.Commitment.UnitPrice,
			StartDate: r.Commitment.StartDate,
		},
	}
}

// CreateInvestor handles the creation of a new investor.
// @Summary     Create an investor
// @Description Create an investor and, when login_email is given, its portal login
// @Tags        admin-investors
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateInvestorRequest true "Investor details"
// @Success     201 {object} models.Investor "Investor created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Forbidden"
// @Failure     409 {object} ErrorResponse "Login email taken"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /admin/investors [post]
func (h *InvestorHandler) CreateInvestor(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateInvestorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	var login *services.LoginInput
	if req.LoginEmail != "" {
		if len(req.LoginPassword) < 8 {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "login_password must be at least 8 characters"))
			return
		}
		login = &services.LoginInput{Email: req.LoginEmail, Password: req.LoginPassword}
	}

	investor, err := h.investorService.CreateInvestor(req.input(), login)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "CREATE_INVESTOR", "investor", investor.ID, c.ClientIP(),
		map[string]interface{}{"name": investor.Name, "commitment": investor.Commitment.Total.String(), "with_login": login != nil})

	c.JSON(http.StatusCreated, gin.H{"investor": investor})
}

// GetInvestors handles listing investors.
// @Summary     Get investors
// @Tags        admin-investors
// @Produce     json
// @Security    BearerAuth
// @Param       status    query string false "Filter by status (Active, Inactive)"
// @Param       page      query int    false "Page number (default 1)"
// @Param       page_size query int    false "Items per page (default 20, max 100)"
// @Param       sort      query string false "Sort column, prefix with - for descending"
// @Success     200 {object} pagination.PageResponse[models.Investor] "Paginated investors"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Forbidden"
// @Router      /admin/investors [get]
func (h *InvestorHandler) GetInvestors(c *gin.Context) {
	page, err := bindPage(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var status *models.InvestorStatus
	if v := c.Query("status"); v != "" {
		s := models.InvestorStatus(v)
		if s != models.InvestorActive && s != models.InvestorInactive {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "status must be 'Active' or 'Inactive'"))
			return
		}
		status = &s
	}

	result, err := h.investorService.GetInvestors(page, status)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetInvestor handles retrieving a specific investor.
// @Summary     Get investor by ID
// @Tags        admin-investors
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Investor ID"
// @Success     200 {object} models.Investor "Investor details"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Investor not found"
// @Router      /admin/investors/{id} [get]
func (h *InvestorHandler) GetInvestor(c *gin.Context) {
	investor, err := h.investorService.GetInvestorByID(c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"investor": investor})
}

// UpdateInvestor handles replacing an investor's editable fields.
// @Summary     Update investor
// @Tags        admin-investors
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string          true "Investor ID"
// @Param       request body InvestorRequest true "Investor details"
// @Success     200 {object} models.Investor "Updated investor"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Investor not found"
// @Router      /admin/investors/{id} [put]
func (h *InvestorHandler) UpdateInvestor(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req InvestorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	investor, err := h.investorService.UpdateInvestor(c.Param("id"), req.input())
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "UPDATE_INVESTOR", "investor", investor.ID, c.ClientIP(),
		map[string]interface{}{"name": investor.Name, "status": investor.Status, "commitment": investor.Commitment.Total.String()})

	c.JSON(http.StatusOK, gin.H{"investor": investor})
}

// DeleteInvestor handles deleting an investor together with its records.
// @Summary     Delete investor
// @Tags        admin-investors
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Investor ID"
// @Success     200 {object} map[string]string "Investor deleted"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Investor not found"
// @Router      /admin/investors/{id} [delete]
func (h *InvestorHandler) DeleteInvestor(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	id := c.Param("id")
	if err := h.investorService.DeleteInvestor(id); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "DELETE_INVESTOR", "investor", id, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"message": "Investor deleted successfully"})
}

// GetInvestorSummary returns the dashboard figures of any investor.
// @Summary     Investor dashboard summary
// @Tags        admin-investors
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Investor ID"
// @Success     200 {object} aggregate.DashboardSummary "Dashboard summary"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Investor not found"
// @Router      /admin/investors/{id}/summary [get]
func (h *InvestorHandler) GetInvestorSummary(c *gin.Context) {
	summary, err := h.dashboardService.GetSummary(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"summary": summary})
}

// GetInvestorStatement exports any investor's statement workbook.
// @Summary     Investor statement
// @Tags        admin-investors
// @Produce     application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security    BearerAuth
// @Param       id path string true "Investor ID"
// @Success     200 {file} binary "Statement workbook"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Investor not found"
// @Router      /admin/investors/{id}/statement [get]
func (h *InvestorHandler) GetInvestorStatement(c *gin.Context) {
	writeStatement(c, h.dashboardService, c.Param("id"))
}
