// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"regexp"

	"fundportal/internal/models"

	"github.com/Rhymond/go-money"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var hexColorRegex = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("iso4217", validateISO4217)
		_ = v.RegisterValidation("hex_color", validateHexColor)
		_ = v.RegisterValidation("notice_status", validateNoticeStatus)
		_ = v.RegisterValidation("fee_status", validateFeeStatus)
		_ = v.RegisterValidation("investor_status", validateInvestorStatus)
		_ = v.RegisterValidation("role", validateRole)
	}
}

// validateISO4217 accepts the codes go-money can format.
func validateISO4217(fl validator.FieldLevel) bool {
	code := fl.Field().String()
	return len(code) == 3 && money.GetCurrency(code) != nil
}

func validateHexColor(fl validator.FieldLevel) bool {
	return hexColorRegex.MatchString(fl.Field().String())
}

func validateNoticeStatus(fl validator.FieldLevel) bool {
	switch models.NoticeStatus(fl.Field().String()) {
	case models.NoticeDraft, models.NoticeSent, models.NoticePaid, models.NoticePending:
		return true
	}
	return false
}

func validateFeeStatus(fl validator.FieldLevel) bool {
	switch models.FeeStatus(fl.Field().String()) {
	case models.FeePaid, models.FeePending:
		return true
	}
	return false
}

func validateInvestorStatus(fl validator.FieldLevel) bool {
	switch models.InvestorStatus(fl.Field().String()) {
	case models.InvestorActive, models.InvestorInactive:
		return true
	}
	return false
}

func validateRole(fl validator.FieldLevel) bool {
	switch models.Role(fl.Field().String()) {
	case models.RoleInvestor, models.RoleAdmin:
		return true
	}
	return false
}
