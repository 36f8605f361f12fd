package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "fundportal/internal/errors"
	"fundportal/internal/services"
)

// FundInvestmentHandler handles the fund's portfolio companies.
type FundInvestmentHandler struct {
	fundInvestmentService services.FundInvestmentServicer
	auditService          services.AuditServicer
}

// NewFundInvestmentHandler creates a new FundInvestmentHandler.
func NewFundInvestmentHandler(fundInvestmentService services.FundInvestmentServicer, auditService services.AuditServicer) *FundInvestmentHandler {
	return &FundInvestmentHandler{fundInvestmentService: fundInvestmentService, auditService: auditService}
}

// FundInvestmentRequest represents the request payload for a portfolio company.
type FundInvestmentRequest struct {
	Name           string           `json:"name" binding:"required,min=1,max=200"`
	Sector         string           `json:"sector" binding:"max=100"`
	Type           string           `json:"type" binding:"max=100"`
	InvestmentDate string           `json:"investment_date"`
	InitialAmount  decimal.Decimal  `json:"initial_amount"`
	CurrentValue   decimal.Decimal  `json:"current_value"`
	Performance    *decimal.Decimal `json:"performance"`
	Status         string           `json:"status" binding:"omitempty,oneof=Active Exited"`
	Description    string           `json:"description" binding:"max=1000"`
	Color          string           `json:"color" binding:"omitempty,hex_color"`
}

func bindFundInvestment(c *gin.Context) (services.FundInvestmentInput, error) {
	var req FundInvestmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return services.FundInvestmentInput{}, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error())
	}
	date, err := parseDate("investment_date", req.InvestmentDate)
	if err != nil {
		return services.FundInvestmentInput{}, err
	}
	return services.FundInvestmentInput{
		Name:           req.Name,
		Sector:         req.Sector,
		Type:           req.Type,
		InvestmentDate: date,
		InitialAmount:  req.InitialAmount,
		CurrentValue:   req.CurrentValue,
		Performance:    req.Performance,
		Status:         req.Status,
		Description:    req.Description,
		Color:          req.Color,
	}, nil
}

// CreateFundInvestment handles adding a portfolio company.
// @Summary     Create a fund investment
// @Description Performance is derived from the amounts when omitted
// @Tags        admin-fund-investments
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body FundInvestmentRequest true "Investment details"
// @Success     201 {object} models.FundInvestment "Investment created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Router      /admin/fund-investments [post]
func (h *FundInvestmentHandler) CreateFundInvestment(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	in, err := bindFundInvestment(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	inv, err := h.fundInvestmentService.CreateFundInvestment(in)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "CREATE_FUND_INVESTMENT", "fund_investment", inv.ID, c.ClientIP(),
		map[string]interface{}{"name": inv.Name, "initial_amount": inv.InitialAmount.String()})

	c.JSON(http.StatusCreated, gin.H{"investment": inv})
}

// GetFundInvestments handles listing the portfolio.
// @Summary     Get fund investments
// @Tags        admin-fund-investments
// @Produce     json
// @Security    BearerAuth
// @Param       status    query string false "Filter by status (Active, Exited)"
// @Param       page      query int    false "Page number (default 1)"
// @Param       page_size query int    false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.FundInvestment] "Paginated investments"
// @Router      /admin/fund-investments [get]
func (h *FundInvestmentHandler) GetFundInvestments(c *gin.Context) {
	page, err := bindPage(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	result, err := h.fundInvestmentService.GetFundInvestments(page, optionalQuery(c, "status"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetFundInvestment handles retrieving a portfolio company.
// @Summary     Get fund investment
// @Tags        admin-fund-investments
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Investment ID"
// @Success     200 {object} models.FundInvestment "Investment details"
// @Failure     404 {object} ErrorResponse "Investment not found"
// @Router      /admin/fund-investments/{id} [get]
func (h *FundInvestmentHandler) GetFundInvestment(c *gin.Context) {
	inv, err := h.fundInvestmentService.GetFundInvestmentByID(c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"investment": inv})
}

// UpdateFundInvestment handles revaluing or editing a portfolio company.
// @Summary     Update fund investment
// @Tags        admin-fund-investments
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string                true "Investment ID"
// @Param       request body FundInvestmentRequest true "Investment details"
// @Success     200 {object} models.FundInvestment "Updated investment"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Investment not found"
// @Router      /admin/fund-investments/{id} [put]
func (h *FundInvestmentHandler) UpdateFundInvestment(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	in, err := bindFundInvestment(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	inv, err := h.fundInvestmentService.UpdateFundInvestment(c.Param("id"), in)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "UPDATE_FUND_INVESTMENT", "fund_investment", inv.ID, c.ClientIP(),
		map[string]interface{}{"current_value": inv.CurrentValue.String(), "status": inv.Status})

	c.JSON(http.StatusOK, gin.H{"investment": inv})
}

// DeleteFundInvestment handles removing a portfolio company.
// @Summary     Delete fund investment
// @Tags        admin-fund-investments
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Investment ID"
// @Success     200 {object} map[string]string "Investment deleted"
// @Failure     404 {object} ErrorResponse "Investment not found"
// @Router      /admin/fund-investments/{id} [delete]
func (h *FundInvestmentHandler) DeleteFundInvestment(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	id := c.Param("id")
	if err := h.fundInvestmentService.DeleteFundInvestment(id); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "DELETE_FUND_INVESTMENT", "fund_investment", id, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"message": "Investment deleted successfully"})
}

// GetSummary handles the portfolio roll-up.
// @Summary     Fund investment summary
// @Tags        admin-fund-investments
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} aggregate.InvestmentSummary "Active portfolio summary"
// @Router      /admin/fund-investments/summary [get]
func (h *FundInvestmentHandler) GetSummary(c *gin.Context) {
	summary, err := h.fundInvestmentService.GetSummary()
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"summary": summary})
}
