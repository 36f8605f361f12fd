package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	apperrors "fundportal/internal/errors"
	"fundportal/internal/middleware"
	"fundportal/internal/models"
	"fundportal/internal/pagination"
	"fundportal/internal/services"
)

const dateLayout = "2006-01-02"

// ErrorDetail represents the inner error object in an error response.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// getUserID extracts the authenticated user ID from the Gin context.
// Returns ErrUnauthorized if not present.
func getUserID(c *gin.Context) (string, error) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return "", apperrors.ErrUnauthorized
	}
	return userID, nil
}

// linkedInvestor resolves the investor profile of the authenticated login.
// Logins without one (administrators) get ErrNoLinkedInvestor.
func linkedInvestor(c *gin.Context, investors services.InvestorServicer) (*models.Investor, error) {
	userID, err := getUserID(c)
	if err != nil {
		return nil, err
	}
	return investors.GetInvestorByUserID(userID)
}

// bindPage parses and defaults the pagination query parameters.
func bindPage(c *gin.Context) (pagination.PageRequest, error) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		return page, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error())
	}
	page.Defaults()
	return page, nil
}

// optionalQuery returns a pointer to the query value, or nil when it is absent.
func optionalQuery(c *gin.Context, key string) *string {
	v := c.Query(key)
	if v == "" {
		return nil
	}
	return &v
}

// parseDate parses a YYYY-MM-DD value. An empty value yields the zero time.
func parseDate(field, v string) (time.Time, error) {
	if v == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(dateLayout, v)
	if err != nil {
		return time.Time{}, apperrors.WithMessage(apperrors.ErrInvalidInput, field+" must be a YYYY-MM-DD date")
	}
	return t, nil
}

// respondWithError renders err through the shared middleware renderer so
// handler and middleware failures share one response shape.
func respondWithError(c *gin.Context, err error) {
	middleware.RenderError(c, err)
}
