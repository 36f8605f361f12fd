package models

import (
	"time"

	"github.com/shopspring/decimal"

	apperrors "fundportal/internal/errors"
)

// FeeStatus is the settlement state of a fee charge. It is informational
// and does not affect fee totals.
type FeeStatus string

const (
	FeePaid    FeeStatus = "Paid"
	FeePending FeeStatus = "Pending"
)

// FeeCharge is a fee levied on an investor, e.g. a management fee.
type FeeCharge struct {
	Base
	InvestorScope
	Date        time.Time       `gorm:"not null" json:"date"`
	Type        string          `gorm:"not null" json:"type"`
	Amount      decimal.Decimal `gorm:"type:numeric(20,4);not null" json:"amount"`
	Status      FeeStatus       `gorm:"not null;default:'Pending'" json:"status" binding:"omitempty,fee_status"`
	Description string          `json:"description"`
}

func (f FeeCharge) Validate() error {
	if err := requireID(f.ID); err != nil {
		return err
	}
	switch f.Status {
	case FeePaid, FeePending:
	default:
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "fee status must be Paid or Pending")
	}
	return nonNegative("fee amount", f.Amount)
}

// Distribution is capital returned to an investor.
type Distribution struct {
	Base
	InvestorScope
	Type   string          `json:"type"`
	Date   time.Time       `gorm:"not null" json:"date"`
	Amount decimal.Decimal `gorm:"type:numeric(20,4);not null" json:"amount"`
}

func (d Distribution) Validate() error {
	if err := requireID(d.ID); err != nil {
		return err
	}
	return nonNegative("distribution amount", d.Amount)
}
