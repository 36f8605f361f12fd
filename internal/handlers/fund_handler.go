package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "fundportal/internal/errors"
	"fundportal/internal/models"
)

// FundHandler serves the fund's closing timeline and term.
type FundHandler struct {
	info models.FundInformation
	now  func() time.Time
}

// NewFundHandler creates a new FundHandler.
func NewFundHandler(info models.FundInformation) *FundHandler {
	return &FundHandler{info: info, now: time.Now}
}

// GetFund returns the fund information.
// @Summary     Fund information
// @Description First close, subsequent closings, final close, commitment period and fund life
// @Tags        portal
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} map[string]interface{} "Fund information and whether the commitment period is open"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Fund information not configured"
// @Router      /portal/fund [get]
func (h *FundHandler) GetFund(c *gin.Context) {
	if h.info.FirstCloseDate.IsZero() {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrNotFound, "fund information is not configured"))
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"fund":                 h.info,
		"in_commitment_period": h.info.InCommitmentPeriod(h.now().UTC()),
	})
}
