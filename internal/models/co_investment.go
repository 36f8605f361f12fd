package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	apperrors "fundportal/internal/errors"
)

// CoInvestmentStatus values.
const (
	CoInvestmentActive = "Active"
	CoInvestmentExited = "Exited"
)

// CoInvestmentDocument links a term sheet or agreement to a co-investment.
type CoInvestmentDocument struct {
	Title string     `json:"title"`
	URL   string     `json:"url,omitempty"`
	Date  *time.Time `json:"date,omitempty"`
}

// CoInvestment is a direct investment offered alongside the fund to a single
// investor. Unlike FundInvestment it is only visible to that investor.
type CoInvestment struct {
	Base
	InvestorScope
	Name      string                 `gorm:"not null" json:"name"`
	Date      time.Time              `gorm:"not null" json:"date"`
	Amount    decimal.Decimal        `gorm:"type:numeric(20,4);not null" json:"amount"`
	Status    string                 `gorm:"not null;default:'Active'" json:"status"`
	Documents []CoInvestmentDocument `gorm:"type:text;serializer:json" json:"documents"`
}

func (c CoInvestment) Validate() error {
	if err := requireID(c.ID); err != nil {
		return err
	}
	if strings.TrimSpace(c.Name) == "" {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "co-investment name is required")
	}
	if err := positive("co-investment amount", c.Amount); err != nil {
		return err
	}
	switch c.Status {
	case CoInvestmentActive, CoInvestmentExited:
	default:
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid co-investment status")
	}
	for _, doc := range c.Documents {
		if strings.TrimSpace(doc.Title) == "" {
			return apperrors.WithMessage(apperrors.ErrInvalidInput, "co-investment document title is required")
		}
	}
	return nil
}
