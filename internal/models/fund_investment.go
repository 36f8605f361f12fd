package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// FundInvestmentStatus values used by the portfolio summary.
const (
	FundInvestmentActive = "Active"
	FundInvestmentExited = "Exited"
)

// FundInvestment is a portfolio company held by the fund. It is fund-wide
// and visible to every investor.
type FundInvestment struct {
	Base
	Name           string          `gorm:"not null" json:"name"`
	Sector         string          `json:"sector"`
	Type           string          `json:"type"`
	InvestmentDate time.Time       `json:"investment_date"`
	InitialAmount  decimal.Decimal `gorm:"type:numeric(20,4);not null" json:"initial_amount"`
	CurrentValue   decimal.Decimal `gorm:"type:numeric(20,4);not null" json:"current_value"`
	Performance    decimal.Decimal `gorm:"type:numeric(9,4);not null;default:0" json:"performance"`
	Status         string          `gorm:"not null;default:'Active'" json:"status"`
	Description    string          `json:"description"`
	Color          string          `json:"color,omitempty" binding:"omitempty,hex_color"`
}

// ExpectedPerformance derives (CurrentValue/InitialAmount - 1) * 100.
// ok is false when the initial amount is zero.
func (f FundInvestment) ExpectedPerformance() (pct decimal.Decimal, ok bool) {
	if f.InitialAmount.IsZero() {
		return decimal.Zero, false
	}
	return f.CurrentValue.Div(f.InitialAmount).Sub(decimal.NewFromInt(1)).Mul(decimal.NewFromInt(100)), true
}

func (f FundInvestment) Validate() error {
	if err := requireID(f.ID); err != nil {
		return err
	}
	if err := nonNegative("initial amount", f.InitialAmount); err != nil {
		return err
	}
	return nonNegative("current value", f.CurrentValue)
}
